package ws

import (
	"context"
	"net/http"
	"sync"

	"github.com/GriffinCanCode/webdesk/internal/domain/registry"
	"github.com/GriffinCanCode/webdesk/internal/domain/window"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/config"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/logging"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/webdesk/internal/presentation"
	"github.com/GriffinCanCode/webdesk/internal/shared/types"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub tracks connected desktop views. It publishes state changes to all
// of them and binds the newest one as the presentation port.
type Hub struct {
	mu      sync.Mutex
	clients []*Client // Protected by mu, oldest first
	closed  bool      // Protected by mu
	serving sync.WaitGroup

	binding  *presentation.Binding
	registry *registry.Registry
	store    *window.Store
	options  config.Options
	logger   *zap.Logger
	metrics  *monitoring.Metrics
	tracer   *tracing.Tracer
}

// NewHub creates a hub that binds views into binding
func NewHub(binding *presentation.Binding, options config.Options) *Hub {
	if options == nil {
		options = config.Options{}
	}
	return &Hub{
		binding: binding,
		options: options,
		logger:  zap.NewNop(),
	}
}

// WithState sets the registry and store whose state is sent on connect.
// They are set after construction because both publish into the hub.
func (h *Hub) WithState(registry *registry.Registry, store *window.Store) *Hub {
	h.registry = registry
	h.store = store
	return h
}

// WithLogger adds logging to the hub
func (h *Hub) WithLogger(logger *zap.Logger) *Hub {
	if logger != nil {
		h.logger = logger
	}
	return h
}

// WithMetrics adds metrics tracking to the hub
func (h *Hub) WithMetrics(metrics *monitoring.Metrics) *Hub {
	h.metrics = metrics
	return h
}

// WithTracer traces every inbound stream message
func (h *Hub) WithTracer(tracer *tracing.Tracer) *Hub {
	h.tracer = tracer
	return h
}

// Publish broadcasts an event to every view. It never blocks.
func (h *Hub) Publish(e types.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	msg := types.StreamMessage{Type: e.Type, Payload: e.Payload}
	for _, c := range h.clients {
		c.Send(msg)
	}
}

// Count returns the number of connected views
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// HandleConnection upgrades the request and serves the view until it
// disconnects
func (h *Hub) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.serving.Add(1)
	h.mu.Unlock()
	defer h.serving.Done()

	client := newClient(conn, h.logger, h.metrics, h.tracer)
	client.onBounds = func() { h.relayout(client) }
	go client.writePump()

	h.register(client)
	defer h.unregister(client)

	client.readPump()
}

// relayout refits the windows when the bound view reports new bounds
func (h *Hub) relayout(client *Client) {
	if h.store == nil || h.binding.Current() != presentation.Port(client.Port()) {
		return
	}
	h.store.Relayout()
}

// register sends the hello snapshot and adds the client. The snapshot
// and the registration happen under the store and registry locks so no
// change falls between them.
func (h *Hub) register(client *Client) {
	attach := func(windows []types.WindowSnapshot, launcher []types.LauncherEntry) {
		client.Send(types.StreamMessage{
			Type: MsgHello,
			Payload: Hello{
				ClientID: client.ID(),
				Options:  h.options,
				Launcher: launcher,
				Windows:  windows,
			},
		})

		h.mu.Lock()
		h.clients = append(h.clients, client)
		closed := h.closed
		h.mu.Unlock()

		// Close raced with the upgrade
		if closed {
			client.Close()
		}
	}

	switch {
	case h.store != nil && h.registry != nil:
		h.store.View(func(windows []types.WindowSnapshot) {
			h.registry.View(func(launcher []types.LauncherEntry) {
				attach(windows, launcher)
			})
		})
	default:
		attach([]types.WindowSnapshot{}, []types.LauncherEntry{})
	}

	h.binding.Bind(client.Port())
	h.metrics.IncWSConnections()
	h.logger.Info("desktop view connected", logging.ClientID(client.ID()))
}

// unregister removes the client and hands the port to the newest
// remaining view
func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	for i, c := range h.clients {
		if c == client {
			h.clients = append(h.clients[:i], h.clients[i+1:]...)
			break
		}
	}
	var newest *Client
	if len(h.clients) > 0 {
		newest = h.clients[len(h.clients)-1]
	}
	h.mu.Unlock()

	if h.binding.Unbind(client.Port()) {
		if newest != nil {
			h.binding.Bind(newest.Port())
		}
		if h.store != nil {
			h.store.Relayout()
		}
	}
	client.Close()
	client.Port().Close()

	h.metrics.DecWSConnections()
	h.logger.Info("desktop view disconnected", logging.ClientID(client.ID()))
}

// Close disconnects every view and waits until their connections have
// been served or ctx ends. Later connections are refused.
func (h *Hub) Close(ctx context.Context) error {
	h.mu.Lock()
	h.closed = true
	clients := append([]*Client(nil), h.clients...)
	h.mu.Unlock()

	for _, c := range clients {
		c.Close()
	}

	done := make(chan struct{})
	go func() {
		h.serving.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		h.logger.Warn("desktop views still connected at shutdown", zap.Int("views", h.Count()))
		return ctx.Err()
	}
}
