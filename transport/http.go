package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/felixgeelhaar/fortify/ratelimit"
	"github.com/google/uuid"

	"github.com/felixgeelhaar/arri-go/middleware"
	"github.com/felixgeelhaar/arri-go/protocol"
)

// HTTP serves definitions over plain HTTP.
type HTTP struct {
	addr         string
	readTimeout  time.Duration
	writeTimeout time.Duration
	corsConfig   *CORSConfig
	allow        func(ctx context.Context, key string) bool
	logger       middleware.Logger

	mu         sync.RWMutex
	listenAddr string
	server     *http.Server
}

// HTTPOption configures the HTTP transport.
type HTTPOption func(*HTTP)

// WithReadTimeout sets the read timeout for HTTP requests.
func WithReadTimeout(d time.Duration) HTTPOption {
	return func(h *HTTP) {
		h.readTimeout = d
	}
}

// WithWriteTimeout sets the write timeout for HTTP responses.
func WithWriteTimeout(d time.Duration) HTTPOption {
	return func(h *HTTP) {
		h.writeTimeout = d
	}
}

// WithRateLimit limits each client address to rate requests per second
// with the given burst. Throttled requests get a 429.
func WithRateLimit(rate, burst int) HTTPOption {
	return func(h *HTTP) {
		limiter := ratelimit.New(&ratelimit.Config{
			Rate:     rate,
			Burst:    burst,
			Interval: time.Second,
		})
		h.allow = limiter.Allow
	}
}

// WithHTTPLogger sets the logger for request events.
func WithHTTPLogger(l middleware.Logger) HTTPOption {
	return func(h *HTTP) {
		h.logger = l
	}
}

// NewHTTP creates a new HTTP transport.
func NewHTTP(addr string, opts ...HTTPOption) *HTTP {
	h := &HTTP{
		addr:         addr,
		readTimeout:  30 * time.Second,
		writeTimeout: 30 * time.Second,
		logger:       middleware.NopLogger{},
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Addr returns the configured address.
func (h *HTTP) Addr() string {
	return h.addr
}

// ListenAddr returns the actual address the server is listening on.
func (h *HTTP) ListenAddr() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.listenAddr
}

// Serve starts the HTTP server and handles requests.
func (h *HTTP) Serve(ctx context.Context, src Source) error {
	listener, err := net.Listen("tcp", h.addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	h.mu.Lock()
	h.listenAddr = listener.Addr().String()
	h.server = &http.Server{
		Handler:      h.Handler(src),
		ReadTimeout:  h.readTimeout,
		WriteTimeout: h.writeTimeout,
	}
	server := h.server
	h.mu.Unlock()

	h.logger.Info("http transport listening", middleware.F("addr", listener.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// Handler returns the HTTP handler serving src.
func (h *HTTP) Handler(src Source) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET "+protocol.PathHealth, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET "+protocol.PathDefinitions, func(w http.ResponseWriter, r *http.Request) {
		doc, err := src.Definitions(r.Context())
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		out, _ := doc.Serialize()
		h.writeJSON(w, out)
	})

	mux.HandleFunc("GET "+protocol.PathDefinitions+"/{name}", func(w http.ResponseWriter, r *http.Request) {
		node, err := src.Lookup(r.Context(), r.PathValue("name"))
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		out, ok := node.Serialize()
		if !ok {
			out = "{}"
		}
		h.writeJSON(w, out)
	})

	var handler http.Handler = mux
	handler = h.rateLimit(handler)
	handler = withRequestID(handler)
	if h.corsConfig != nil {
		handler = CORSHandler(*h.corsConfig, handler)
	}
	return handler
}

func (h *HTTP) writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func (h *HTTP) writeError(w http.ResponseWriter, r *http.Request, err error) {
	perr := asProtocolError(err)
	status := statusFor(perr)

	h.logger.Warn("request failed",
		middleware.F("path", r.URL.Path),
		middleware.F("status", status),
		middleware.F("request_id", middleware.RequestIDFromContext(r.Context())),
		middleware.F("error", perr.Error()),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(protocol.NewErrorMessage(perr))
}

// rateLimit throttles requests per client address.
func (h *HTTP) rateLimit(next http.Handler) http.Handler {
	if h.allow == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != protocol.PathHealth && !h.allow(r.Context(), clientKey(r)) {
			h.writeError(w, r, protocol.NewRateLimited(""))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// withRequestID propagates the X-Request-ID header, generating one when
// absent, so exports log under the caller's ID.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r.WithContext(middleware.ContextWithRequestID(r.Context(), id)))
	})
}
