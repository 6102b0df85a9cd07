// Package transport serves a definitions registry to clients.
//
// # HTTP Transport
//
// The HTTP transport answers plain GET requests:
//
//	t := transport.NewHTTP(":8080",
//	    transport.WithReadTimeout(10*time.Second),
//	    transport.WithDefaultCORS(),
//	    transport.WithRateLimit(50, 100),
//	)
//	err := t.Serve(ctx, reg)
//
// Endpoints:
//   - GET /health - health check
//   - GET /definitions - the full definitions document
//   - GET /definitions/{name} - a single definition
//
// Failures are written as a JSON error message with a status code chosen
// from the error kind (404 for unknown names, 429 when throttled).
//
// # WebSocket Transport
//
// The WebSocket transport pushes the definitions object to each client
// on connect and again after every registry change:
//
//	ws := transport.NewWebSocket(":8081")
//	err := ws.Serve(ctx, reg)
package transport
