package transport

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// CORSConfig configures cross-origin access to the definition endpoints.
type CORSConfig struct {
	// AllowOrigins lists exact origins, or "*" alone for any origin.
	AllowOrigins []string

	// AllowHeaders defaults to Content-Type and X-Request-ID.
	AllowHeaders []string

	// ExposeHeaders defaults to X-Request-ID.
	ExposeHeaders []string

	// MaxAge is the preflight cache lifetime in seconds. Default: 3600.
	MaxAge int
}

// DefaultCORSConfig allows any origin to read definitions.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{AllowOrigins: []string{"*"}}
}

func (c CORSConfig) withDefaults() CORSConfig {
	if len(c.AllowHeaders) == 0 {
		c.AllowHeaders = []string{"Content-Type", HeaderRequestID}
	}
	if len(c.ExposeHeaders) == 0 {
		c.ExposeHeaders = []string{HeaderRequestID}
	}
	if c.MaxAge == 0 {
		c.MaxAge = 3600
	}
	return c
}

func (c CORSConfig) allowOrigin(origin string) string {
	if len(c.AllowOrigins) == 1 && c.AllowOrigins[0] == "*" {
		return "*"
	}
	if origin != "" && slices.Contains(c.AllowOrigins, origin) {
		return origin
	}
	return ""
}

// CORSHandler wraps next with CORS headers. Definitions are read-only, so
// only GET and OPTIONS are ever allowed.
func CORSHandler(config CORSConfig, next http.Handler) http.Handler {
	config = config.withDefaults()
	allowHeaders := strings.Join(config.AllowHeaders, ", ")
	exposeHeaders := strings.Join(config.ExposeHeaders, ", ")
	maxAge := strconv.Itoa(config.MaxAge)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed := config.allowOrigin(r.Header.Get("Origin"))
		if allowed == "" {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Access-Control-Allow-Origin", allowed)
		if allowed != "*" {
			w.Header().Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", allowHeaders)
			w.Header().Set("Access-Control-Max-Age", maxAge)
			w.WriteHeader(http.StatusNoContent)
			return
		}

		w.Header().Set("Access-Control-Expose-Headers", exposeHeaders)
		next.ServeHTTP(w, r)
	})
}

// WithCORS configures CORS for the HTTP transport.
func WithCORS(config CORSConfig) HTTPOption {
	return func(h *HTTP) {
		h.corsConfig = &config
	}
}

// WithDefaultCORS enables CORS for any origin.
func WithDefaultCORS() HTTPOption {
	return WithCORS(DefaultCORSConfig())
}
