// Package testutil provides testing helpers for Arri schemas.
//
// Example usage:
//
//	func TestUserSchema(t *testing.T) {
//	    node := testutil.MustExport[User](t, export.New())
//	    testutil.AssertSerialized(t, node, `{"properties":{...}}`)
//	    testutil.AssertKeyOrder(t, node, "properties", "id", "name")
//	}
//
// TestClient runs the HTTP transport in-process against a registry:
//
//	tc := testutil.NewTestClient(t, reg)
//	defer tc.Close()
//	tc.AssertDefinitionExists("User")
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/felixgeelhaar/arri-go/export"
	"github.com/felixgeelhaar/arri-go/protocol"
	"github.com/felixgeelhaar/arri-go/schema"
	"github.com/felixgeelhaar/arri-go/transport"
)

// MustExport exports T or fails the test.
func MustExport[T any](t testing.TB, e *export.Exporter) schema.Node {
	t.Helper()
	n, err := e.Export(export.TypeOf[T]())
	if err != nil {
		t.Fatalf("export %s: %v", export.TypeOf[T](), err)
	}
	return n
}

// MustSerialize serializes s or fails the test if it is absent.
func MustSerialize(t testing.TB, s schema.Serializable) string {
	t.Helper()
	out, ok := s.Serialize()
	if !ok {
		t.Fatal("serialized to nothing")
	}
	if !json.Valid([]byte(out)) {
		t.Fatalf("serialized to invalid JSON: %s", out)
	}
	return out
}

// AssertSerialized checks the exact serialized bytes of s.
func AssertSerialized(t testing.TB, s schema.Serializable, want string) {
	t.Helper()
	if got := MustSerialize(t, s); got != want {
		t.Errorf("serialized\n got: %s\nwant: %s", got, want)
	}
}

// AssertJSONEqual compares two JSON documents ignoring key order and
// whitespace.
func AssertJSONEqual(t testing.TB, got, want string) {
	t.Helper()
	var g, w any
	if err := json.Unmarshal([]byte(got), &g); err != nil {
		t.Fatalf("got is not JSON: %v: %s", err, got)
	}
	if err := json.Unmarshal([]byte(want), &w); err != nil {
		t.Fatalf("want is not JSON: %v: %s", err, want)
	}
	if !reflect.DeepEqual(g, w) {
		t.Errorf("JSON mismatch\n got: %s\nwant: %s", got, want)
	}
}

// KeyOrder returns the key order of every object in raw, by dotted path.
// The root object has the empty path. Array elements share their array's
// path.
func KeyOrder(raw string) (map[string][]string, error) {
	result := make(map[string][]string)
	dec := json.NewDecoder(strings.NewReader(raw))

	var walk func(path string) error
	walk = func(path string) error {
		token, err := dec.Token()
		if err != nil {
			return err
		}
		delim, ok := token.(json.Delim)
		if !ok {
			return nil
		}

		switch delim {
		case '{':
			keys := []string{}
			for dec.More() {
				keyToken, err := dec.Token()
				if err != nil {
					return err
				}
				key := keyToken.(string)
				keys = append(keys, key)

				child := key
				if path != "" {
					child = path + "." + key
				}
				if err := walk(child); err != nil {
					return err
				}
			}
			if _, err := dec.Token(); err != nil {
				return err
			}
			if _, seen := result[path]; !seen {
				result[path] = keys
			}
		case '[':
			for dec.More() {
				if err := walk(path); err != nil {
					return err
				}
			}
			if _, err := dec.Token(); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(""); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertKeyOrder checks the key order of the object at path in the
// serialized form of s.
func AssertKeyOrder(t testing.TB, s schema.Serializable, path string, keys ...string) {
	t.Helper()
	order, err := KeyOrder(MustSerialize(t, s))
	if err != nil {
		t.Fatalf("KeyOrder: %v", err)
	}
	got, ok := order[path]
	if !ok {
		t.Fatalf("no object at path %q", path)
	}
	if len(keys) == 0 {
		keys = []string{}
	}
	if !reflect.DeepEqual(got, keys) {
		t.Errorf("key order at %q = %v, want %v", path, got, keys)
	}
}

// TestClient issues requests against an in-process HTTP transport.
type TestClient struct {
	t      testing.TB
	server *httptest.Server
}

// NewTestClient serves src over the HTTP transport for the duration of a test.
func NewTestClient(t testing.TB, src transport.Source, opts ...transport.HTTPOption) *TestClient {
	t.Helper()
	h := transport.NewHTTP("", opts...)
	return &TestClient{t: t, server: httptest.NewServer(h.Handler(src))}
}

// URL returns the base URL of the test server.
func (tc *TestClient) URL() string { return tc.server.URL }

// Close stops the test server.
func (tc *TestClient) Close() {
	tc.server.Close()
}

// Get fetches path and returns the status code and body.
func (tc *TestClient) Get(path string) (int, string) {
	tc.t.Helper()
	resp, err := tc.server.Client().Get(tc.server.URL + path)
	if err != nil {
		tc.t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		tc.t.Fatalf("GET %s: reading body: %v", path, err)
	}
	return resp.StatusCode, buf.String()
}

// Definitions fetches the definitions document.
func (tc *TestClient) Definitions() string {
	tc.t.Helper()
	status, body := tc.Get(protocol.PathDefinitions)
	if status != http.StatusOK {
		tc.t.Fatalf("GET %s: status %d: %s", protocol.PathDefinitions, status, body)
	}
	return body
}

// Definition fetches a single definition. A failure is returned as the
// decoded protocol error.
func (tc *TestClient) Definition(name string) (string, *protocol.Error) {
	tc.t.Helper()
	status, body := tc.Get(protocol.PathDefinitions + "/" + name)
	if status == http.StatusOK {
		return body, nil
	}

	var msg protocol.Message
	if err := json.Unmarshal([]byte(body), &msg); err != nil || msg.Error == nil {
		tc.t.Fatalf("GET definition %s: status %d with undecodable body %s", name, status, body)
	}
	return "", msg.Error
}

// AssertDefinitionExists fails the test if name is not served.
func (tc *TestClient) AssertDefinitionExists(name string) {
	tc.t.Helper()
	if _, perr := tc.Definition(name); perr != nil {
		tc.t.Errorf("definition %q not served: %v", name, perr)
	}
}

// AssertDefinitionNames checks the served definition names, in order.
func (tc *TestClient) AssertDefinitionNames(names ...string) {
	tc.t.Helper()
	order, err := KeyOrder(tc.Definitions())
	if err != nil {
		tc.t.Fatalf("KeyOrder: %v", err)
	}
	got := order[protocol.KeyDefinitions]
	if len(names) == 0 {
		names = []string{}
	}
	if !reflect.DeepEqual(got, names) {
		tc.t.Errorf("definition names = %v, want %v", got, names)
	}
}
