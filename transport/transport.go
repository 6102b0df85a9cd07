package transport

import (
	"context"
	"errors"
	"net/http"

	"github.com/felixgeelhaar/arri-go/protocol"
	"github.com/felixgeelhaar/arri-go/registry"
	"github.com/felixgeelhaar/arri-go/schema"
)

// Source provides the definitions a transport serves.
type Source interface {
	Definitions(ctx context.Context) (*registry.Document, error)
	Lookup(ctx context.Context, name string) (schema.Node, error)
}

// Watcher is a Source that reports changes.
type Watcher interface {
	Source
	Subscribe() (<-chan struct{}, func())
}

// Transport serves a Source until its context ends.
type Transport interface {
	// Serve starts the transport, blocking until ctx is canceled or an error occurs.
	Serve(ctx context.Context, src Source) error

	// Addr returns the transport's address description.
	Addr() string
}

// HeaderRequestID carries the request ID on HTTP requests and responses.
const HeaderRequestID = "X-Request-ID"

// asProtocolError converts err into the error sent to clients.
func asProtocolError(err error) *protocol.Error {
	var perr *protocol.Error
	if errors.As(err, &perr) {
		return perr
	}
	return protocol.NewInternal(err.Error())
}

// statusFor maps an error kind to an HTTP status code.
func statusFor(err *protocol.Error) int {
	switch err.Kind {
	case protocol.KindNotFound:
		return http.StatusNotFound
	case protocol.KindRateLimited:
		return http.StatusTooManyRequests
	case protocol.KindInternal:
		return http.StatusInternalServerError
	default:
		// Every other kind is a schema construction failure on the server.
		return http.StatusUnprocessableEntity
	}
}
