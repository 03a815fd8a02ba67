// Package httpx holds the gin middleware and error rendering shared by the API routes.
package httpx

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MikeMC777/cafe-demo/internal/apperr"
	"github.com/MikeMC777/cafe-demo/internal/logger"
	"github.com/MikeMC777/cafe-demo/internal/metrics"
)

const (
	ridKey       = "rid"
	principalKey = "principal"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(ridKey, rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}

// RID returns the request id set by RequestID.
func RID(c *gin.Context) string {
	return c.GetString(ridKey)
}

func Logger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		fields := map[string]interface{}{
			"rid":    RID(c),
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": c.Writer.Status(),
			"dur":    time.Since(start).String(),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Warn("http request", fields)
			return
		}
		log.Info("http request", fields)
	}
}

// Metrics records request counts and latency by route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// TokenVerifier resolves a bearer token to its principal.
type TokenVerifier interface {
	Verify(raw string) (string, error)
}

// RequireAdmin rejects requests without a valid bearer token.
func RequireAdmin(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		const prefix = "bearer "
		if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
			abort(c, apperr.Unauthorized("No autenticado"))
			return
		}
		sub, err := v.Verify(strings.TrimSpace(h[len(prefix):]))
		if err != nil {
			abort(c, apperr.Unauthorized("Token inválido o expirado"))
			return
		}
		c.Set(principalKey, sub)
		c.Next()
	}
}

// Principal returns the admin authenticated by RequireAdmin.
func Principal(c *gin.Context) string {
	return c.GetString(principalKey)
}

// Limiter is a per-key request budget.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit answers 429 once the client IP exceeds its budget. Limiter errors let
// the request through.
func RateLimit(l Limiter, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.WithError(err).Warn("rate limiter unavailable", map[string]interface{}{"rid": RID(c)})
			c.Next()
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Demasiadas solicitudes, inténtalo de nuevo en un momento",
				"code":  "RATE_LIMITED",
			})
			return
		}
		c.Next()
	}
}

// Fail renders err as {"error","code"} with the status of its class. Internal
// causes are logged and never returned.
func Fail(c *gin.Context, log logger.Logger, err error) {
	if apperr.CodeOf(err) == apperr.CodeInternal {
		log.WithError(err).Error("request failed", map[string]interface{}{
			"rid":  RID(c),
			"path": c.Request.URL.Path,
		})
	}
	abort(c, err)
}

func abort(c *gin.Context, err error) {
	c.AbortWithStatusJSON(apperr.HTTPStatus(err), gin.H{
		"error": apperr.PublicMessage(err),
		"code":  apperr.CodeOf(err),
	})
}

// BadJSON is the error for an unparseable request body.
func BadJSON(err error) error {
	return apperr.Validation("JSON inválido: %v", err)
}

// ParamID parses the :name path parameter as a positive integer id.
func ParamID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("ID inválido: %q", c.Param(name))
	}
	return id, nil
}

// QueryInt reads an optional integer query parameter.
func QueryInt(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apperr.Validation("Parámetro %s inválido", name)
	}
	return n, nil
}
