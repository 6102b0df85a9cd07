package transport

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/felixgeelhaar/arri-go/middleware"
	"github.com/felixgeelhaar/arri-go/protocol"
)

// WebSocket pushes definitions to connected clients.
type WebSocket struct {
	addr     string
	upgrader websocket.Upgrader
	logger   middleware.Logger

	readTimeout  time.Duration
	writeTimeout time.Duration

	mu      sync.RWMutex
	server  *http.Server
	clients map[*wsClient]struct{}
}

type wsClient struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

// WebSocketOption configures a WebSocket transport.
type WebSocketOption func(*WebSocket)

// WithWebSocketReadTimeout sets how long a connection may stay silent.
// Clients keep it alive with pings or any message.
func WithWebSocketReadTimeout(d time.Duration) WebSocketOption {
	return func(ws *WebSocket) {
		ws.readTimeout = d
	}
}

// WithWebSocketWriteTimeout sets the write timeout for WebSocket messages.
func WithWebSocketWriteTimeout(d time.Duration) WebSocketOption {
	return func(ws *WebSocket) {
		ws.writeTimeout = d
	}
}

// WithWebSocketCheckOrigin sets the origin check function for WebSocket upgrades.
func WithWebSocketCheckOrigin(fn func(r *http.Request) bool) WebSocketOption {
	return func(ws *WebSocket) {
		ws.upgrader.CheckOrigin = fn
	}
}

// WithWebSocketLogger sets the logger for connection events.
func WithWebSocketLogger(l middleware.Logger) WebSocketOption {
	return func(ws *WebSocket) {
		ws.logger = l
	}
}

// NewWebSocket creates a new WebSocket transport.
func NewWebSocket(addr string, opts ...WebSocketOption) *WebSocket {
	ws := &WebSocket{
		addr: addr,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger:       middleware.NopLogger{},
		readTimeout:  60 * time.Second,
		writeTimeout: 10 * time.Second,
		clients:      make(map[*wsClient]struct{}),
	}

	for _, opt := range opts {
		opt(ws)
	}

	return ws
}

// Addr returns the transport address.
func (ws *WebSocket) Addr() string {
	return ws.addr
}

// Clients returns the number of open connections.
func (ws *WebSocket) Clients() int {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	return len(ws.clients)
}

// Serve starts the WebSocket server.
func (ws *WebSocket) Serve(ctx context.Context, src Source) error {
	server := &http.Server{
		Addr:    ws.addr,
		Handler: ws.Handler(ctx, src),
	}
	ws.mu.Lock()
	ws.server = server
	ws.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		ws.closeAllClients()
		return server.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}

// Handler returns the upgrade handler. Connections close when ctx ends.
func (ws *WebSocket) Handler(ctx context.Context, src Source) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws.handleConnection(ctx, w, r, src)
	})
}

func (ws *WebSocket) handleConnection(ctx context.Context, w http.ResponseWriter, r *http.Request, src Source) {
	conn, err := ws.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	client := &wsClient{id: uuid.NewString(), conn: conn}

	ws.mu.Lock()
	ws.clients[client] = struct{}{}
	ws.mu.Unlock()

	ws.logger.Debug("websocket client connected", middleware.F("client", client.id))

	defer func() {
		ws.mu.Lock()
		delete(ws.clients, client)
		ws.mu.Unlock()
		_ = conn.Close()
		ws.logger.Debug("websocket client disconnected", middleware.F("client", client.id))
	}()

	var changes <-chan struct{}
	if watcher, ok := src.(Watcher); ok {
		ch, cancel := watcher.Subscribe()
		defer cancel()
		changes = ch
	}

	// The read loop only detects disconnects; client messages are ignored.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if ws.readTimeout > 0 {
				_ = conn.SetReadDeadline(time.Now().Add(ws.readTimeout))
			}
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	reqCtx := middleware.ContextWithRequestID(ctx, client.id)
	if err := ws.push(reqCtx, client, src); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-closed:
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			if err := ws.push(reqCtx, client, src); err != nil {
				return
			}
		}
	}
}

// push sends the current definitions, or the export error, to client.
func (ws *WebSocket) push(ctx context.Context, client *wsClient, src Source) error {
	doc, err := src.Definitions(ctx)
	if err != nil {
		ws.logger.Warn("definitions export failed",
			middleware.F("client", client.id),
			middleware.F("error", err.Error()),
		)
		return client.writeJSON(protocol.NewErrorMessage(asProtocolError(err)), ws.writeTimeout)
	}
	return client.writeJSON(protocol.NewDefinitionsMessage(doc.DefinitionsJSON()), ws.writeTimeout)
}

func (ws *WebSocket) closeAllClients() {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	for client := range ws.clients {
		client.close()
	}
}

func (c *wsClient) writeJSON(v any, timeout time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if timeout > 0 {
		_ = c.conn.SetWriteDeadline(time.Now().Add(timeout))
	}
	return c.conn.WriteJSON(v)
}

func (c *wsClient) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = c.conn.Close()
}
