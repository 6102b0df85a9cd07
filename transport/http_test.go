package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/felixgeelhaar/arri-go/export"
	"github.com/felixgeelhaar/arri-go/protocol"
	"github.com/felixgeelhaar/arri-go/registry"
)

type User struct {
	ID   string
	Name string
}

func newRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New(export.New())
	if err := registry.Register[User](reg); err != nil {
		t.Fatal(err)
	}
	return reg
}

func TestNewHTTP(t *testing.T) {
	t.Run("creates http transport with address", func(t *testing.T) {
		transport := NewHTTP(":8080")

		if transport.Addr() != ":8080" {
			t.Errorf("Addr() = %q, want %q", transport.Addr(), ":8080")
		}
		if transport.allow != nil {
			t.Error("rate limiting should be off by default")
		}
	})

	t.Run("creates http transport with options", func(t *testing.T) {
		transport := NewHTTP(":8080",
			WithReadTimeout(5*time.Second),
			WithWriteTimeout(10*time.Second),
			WithRateLimit(1, 1),
			WithDefaultCORS(),
		)

		if transport.readTimeout != 5*time.Second {
			t.Errorf("readTimeout = %v, want %v", transport.readTimeout, 5*time.Second)
		}
		if transport.writeTimeout != 10*time.Second {
			t.Errorf("writeTimeout = %v, want %v", transport.writeTimeout, 10*time.Second)
		}
		if transport.allow == nil {
			t.Error("expected rate limiter")
		}
		if transport.corsConfig == nil {
			t.Error("expected CORS config")
		}
	})
}

func TestHTTP_Handler(t *testing.T) {
	handler := NewHTTP(":0").Handler(newRegistry(t))

	t.Run("serves the definitions document", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/definitions", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		want := `{"schemaVersion":"0.0.8","definitions":{"User":{"properties":{"id":{"type":"string"},"name":{"type":"string"}},"optionalProperties":{},"metadata":{"id":"User"}}}}`
		if got := rec.Body.String(); got != want {
			t.Errorf("body\n got: %s\nwant: %s", got, want)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
	})

	t.Run("serves a single definition", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/definitions/User", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if !strings.HasPrefix(rec.Body.String(), `{"properties":{"id":`) {
			t.Errorf("unexpected body %s", rec.Body.String())
		}
	})

	t.Run("returns 404 for unknown definition", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/definitions/Missing", nil))

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
		var msg protocol.Message
		if err := json.Unmarshal(rec.Body.Bytes(), &msg); err != nil {
			t.Fatal(err)
		}
		if msg.Type != protocol.MessageError || msg.Error == nil || msg.Error.Kind != protocol.KindNotFound {
			t.Errorf("unexpected error message %+v", msg)
		}
	})

	t.Run("returns 405 for non-GET", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/definitions", nil))

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
		}
	})

	t.Run("handles /health endpoint", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
			t.Errorf("expected status ok in response, got %q", rec.Body.String())
		}
	})

	t.Run("echoes request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(HeaderRequestID, "req-42")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get(HeaderRequestID); got != "req-42" {
			t.Errorf("%s = %q, want req-42", HeaderRequestID, got)
		}
	})

	t.Run("generates request id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		if rec.Header().Get(HeaderRequestID) == "" {
			t.Error("expected generated request id")
		}
	})
}

func TestHTTP_ExportFailure(t *testing.T) {
	reg := registry.New(export.New())
	_ = reg.Add("Fn", reflect.TypeOf(func() {}))
	handler := NewHTTP(":0").Handler(reg)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/definitions", nil))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
	if !strings.Contains(rec.Body.String(), `"kind":"unsupported_type"`) {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestHTTP_RateLimit(t *testing.T) {
	handler := NewHTTP(":0", WithRateLimit(1, 1)).Handler(newRegistry(t))

	codes := make([]int, 0, 3)
	for range 3 {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/definitions", nil))
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK {
		t.Errorf("first request status = %d, want %d", codes[0], http.StatusOK)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want a 429 once the burst is spent", codes)
	}

	t.Run("health is never throttled", func(t *testing.T) {
		for range 3 {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
			}
		}
	})
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  *protocol.Error
		want int
	}{
		{protocol.NewNotFound("x"), http.StatusNotFound},
		{protocol.NewRateLimited("x"), http.StatusTooManyRequests},
		{protocol.NewInternal("x"), http.StatusInternalServerError},
		{protocol.NewDanglingReference("x"), http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(string(tt.err.Kind), func(t *testing.T) {
			if got := statusFor(tt.err); got != tt.want {
				t.Errorf("statusFor = %d, want %d", got, tt.want)
			}
		})
	}

	t.Run("plain errors become internal", func(t *testing.T) {
		if got := asProtocolError(context.Canceled); got.Kind != protocol.KindInternal {
			t.Errorf("Kind = %s, want internal", got.Kind)
		}
	})
}

func TestHTTP_Serve(t *testing.T) {
	t.Run("starts and stops server", func(t *testing.T) {
		transport := NewHTTP("127.0.0.1:0")

		ctx, cancel := context.WithCancel(context.Background())

		errCh := make(chan error, 1)
		go func() {
			errCh <- transport.Serve(ctx, newRegistry(t))
		}()

		time.Sleep(50 * time.Millisecond)
		cancel()

		select {
		case err := <-errCh:
			if err != nil && err != context.Canceled && err != http.ErrServerClosed {
				t.Errorf("unexpected error: %v", err)
			}
		case <-time.After(time.Second):
			t.Error("server did not stop in time")
		}
	})

	t.Run("accepts requests while running", func(t *testing.T) {
		transport := NewHTTP("127.0.0.1:0")

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go func() {
			_ = transport.Serve(ctx, newRegistry(t))
		}()

		time.Sleep(50 * time.Millisecond)

		addr := transport.ListenAddr()
		if addr == "" {
			t.Skip("could not get listen address")
		}

		resp, err := http.Get("http://" + addr + "/definitions/User")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		if !strings.Contains(string(body), `"metadata":{"id":"User"}`) {
			t.Errorf("unexpected response: %s", body)
		}
	})
}
