package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	corsAllowMethods   = "GET, POST, OPTIONS"
	corsAllowHeaders   = "Content-Type, X-Request-ID"
	corsExposedHeaders = "X-Damage-Stage, X-Render-Seed, X-Request-ID, X-Cache, X-Attempts"
)

// originPolicy decides which Origin values may read responses.
type originPolicy struct {
	any     bool
	allowed map[string]struct{}
}

func newOriginPolicy(origins []string) originPolicy {
	p := originPolicy{allowed: make(map[string]struct{}, len(origins))}
	if len(origins) == 0 {
		p.any = true
	}
	for _, o := range origins {
		o = strings.ToLower(strings.TrimSpace(o))
		if o == "*" {
			p.any = true
		}
		if o != "" {
			p.allowed[o] = struct{}{}
		}
	}
	return p
}

// allowOrigin returns the value for Access-Control-Allow-Origin, or "" when
// the origin is not permitted.
func (p originPolicy) allowOrigin(origin string) string {
	if p.any {
		return "*"
	}
	if _, ok := p.allowed[strings.ToLower(origin)]; ok {
		return origin
	}
	return ""
}

// corsMiddleware answers preflight requests and exposes the render metadata
// headers to browser clients.
func corsMiddleware(origins []string) gin.HandlerFunc {
	policy := newOriginPolicy(origins)
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Add("Vary", "Origin")
		if allow := policy.allowOrigin(c.GetHeader("Origin")); allow != "" {
			h.Set("Access-Control-Allow-Origin", allow)
			h.Set("Access-Control-Allow-Methods", corsAllowMethods)
			h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
			h.Set("Access-Control-Expose-Headers", corsExposedHeaders)
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
