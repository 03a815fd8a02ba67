package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/cafe-demo/internal/apperr"
	"github.com/MikeMC777/cafe-demo/internal/logger"
)

type staticVerifier map[string]string

func (v staticVerifier) Verify(raw string) (string, error) {
	sub, ok := v[raw]
	if !ok {
		return "", errors.New("bad token")
	}
	return sub, nil
}

type fixedLimiter struct {
	ok  bool
	err error
}

func (l fixedLimiter) Allow(ctx context.Context, key string) (bool, error) { return l.ok, l.err }

func do(r http.Handler, method, target string, hdr map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(w, req)
	return w
}

func decodeErr(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRequestID_GeneratesAndEchoes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, RID(c)) })

	w := do(r, http.MethodGet, "/x", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, w.Header().Get("X-Request-ID"), w.Body.String())

	w = do(r, http.MethodGet, "/x", map[string]string{"X-Request-ID": "abc"})
	assert.Equal(t, "abc", w.Body.String())
}

func TestRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", RequireAdmin(staticVerifier{"good": "admin"}), func(c *gin.Context) {
		c.String(http.StatusOK, Principal(c))
	})

	w := do(r, http.MethodGet, "/admin", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", decodeErr(t, w)["code"])

	w = do(r, http.MethodGet, "/admin", map[string]string{"Authorization": "Bearer nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodGet, "/admin", map[string]string{"Authorization": "Bearer good"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", w.Body.String())
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ok := func(c *gin.Context) { c.Status(http.StatusNoContent) }

	cases := []struct {
		name string
		l    fixedLimiter
		want int
	}{
		{"allowed", fixedLimiter{ok: true}, http.StatusNoContent},
		{"exhausted", fixedLimiter{ok: false}, http.StatusTooManyRequests},
		{"limiter down", fixedLimiter{err: errors.New("redis down")}, http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/chat", RateLimit(tc.l, logger.NewTest(t)), ok)
			w := do(r, http.MethodPost, "/chat", nil)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

type keyedLimiter struct {
	limit int
	seen  map[string]int
}

func (l *keyedLimiter) Allow(ctx context.Context, key string) (bool, error) {
	l.seen[key]++
	return l.seen[key] <= l.limit, nil
}

func TestRateLimit_IgnoresSpoofedForwardedFor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l := &keyedLimiter{limit: 1, seen: map[string]int{}}
	r := gin.New()
	require.NoError(t, r.SetTrustedProxies(nil))
	r.POST("/chat", RateLimit(l, logger.NewTest(t)), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := []int{}
	for _, xff := range []string{"1.1.1.1", "2.2.2.2", "3.3.3.3"} {
		w := do(r, http.MethodPost, "/chat", map[string]string{"X-Forwarded-For": xff})
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
	assert.Equal(t, map[string]int{"192.0.2.1": 3}, l.seen)
}

func TestFail_MapsCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		err    error
		status int
		code   string
		msg    string
	}{
		{apperr.Validation("malo"), http.StatusBadRequest, "VALIDATION_ERROR", "malo"},
		{apperr.Conflict("lleno"), http.StatusConflict, "CONFLICT", "lleno"},
		{apperr.NotFound("nada"), http.StatusNotFound, "NOT_FOUND", "nada"},
		{errors.New("pg: connection refused"), http.StatusInternalServerError, "INTERNAL_ERROR", "Error interno del servidor"},
	}
	for _, tc := range cases {
		r := gin.New()
		r.GET("/x", func(c *gin.Context) { Fail(c, logger.NewTest(t), tc.err) })
		w := do(r, http.MethodGet, "/x", nil)
		assert.Equal(t, tc.status, w.Code)
		body := decodeErr(t, w)
		assert.Equal(t, tc.code, body["code"])
		assert.Equal(t, tc.msg, body["error"])
	}
}

func TestParamID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/o/:id", func(c *gin.Context) {
		id, err := ParamID(c, "id")
		if err != nil {
			Fail(c, logger.NewNop(), err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/o/12", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/o/abc", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/o/0", nil).Code)
}
