package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MikeMC777/cafe-demo/internal/apperr"
)

var personSchema = MustCompile(`{
	"type": "object",
	"required": ["name", "email"],
	"properties": {
		"name":  {"type": "string", "pattern": "\\S"},
		"email": {"type": "string", "format": "email"},
		"age":   {"type": "integer", "minimum": 1, "maximum": 20}
	}
}`)

type person struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age,omitempty"`
}

func TestCheck(t *testing.T) {
	assert.NoError(t, personSchema.Check(person{Name: "Ana", Email: "ana@example.com", Age: 4}))

	err := personSchema.Check(person{Name: "  ", Email: "nope", Age: 30})
	assert.True(t, apperr.Is(err, apperr.CodeValidation))
	msg := apperr.PublicMessage(err)
	assert.Contains(t, msg, "name")
	assert.Contains(t, msg, "email")
	assert.Contains(t, msg, "age")
}

func TestEmail(t *testing.T) {
	assert.True(t, Email("ana@example.com"))
	assert.False(t, Email("ana"))
	assert.False(t, Email(""))
}

func TestMustCompilePanics(t *testing.T) {
	assert.Panics(t, func() { MustCompile(`{"type": 12}`) })
}
