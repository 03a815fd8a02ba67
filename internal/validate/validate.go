// Package validate checks request payloads against JSON schemas.
package validate

import (
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/MikeMC777/cafe-demo/internal/apperr"
)

type Schema struct {
	s *gojsonschema.Schema
}

// MustCompile panics on an invalid schema; schemas are package-level literals.
func MustCompile(src string) *Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic("validate: " + err.Error())
	}
	return &Schema{s: s}
}

// Check validates doc (marshalled through its json tags) and returns an
// apperr validation error listing every violated field.
func (s *Schema) Check(doc interface{}) error {
	res, err := s.s.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return apperr.Validation("Solicitud inválida")
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.Field()+": "+e.Description())
	}
	return apperr.Validation("Datos inválidos: %s", strings.Join(msgs, "; "))
}

var emailSchema = MustCompile(`{"type":"string","format":"email"}`)

// Email reports whether addr is a well-formed address.
func Email(addr string) bool {
	return emailSchema.Check(addr) == nil
}
