package ws

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/GriffinCanCode/webdesk/internal/infrastructure/logging"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/webdesk/internal/shared/codec"
	"github.com/GriffinCanCode/webdesk/internal/shared/types"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	sendBuffer     = 256
)

// Client is one connected desktop view
type Client struct {
	id      string
	conn    *websocket.Conn
	port    *RemotePort
	send    chan []byte
	done    chan struct{}
	once    sync.Once
	logger  *zap.Logger
	metrics *monitoring.Metrics
	tracer  *tracing.Tracer

	// onBounds runs after the view reports its layout bounds
	onBounds func()
}

func newClient(conn *websocket.Conn, logger *zap.Logger, metrics *monitoring.Metrics, tracer *tracing.Tracer) *Client {
	id := uuid.New().String()
	c := &Client{
		id:      id,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		done:    make(chan struct{}),
		logger:  logger.With(logging.ClientID(id)),
		metrics: metrics,
		tracer:  tracer,
	}
	c.port = NewRemotePort(c.Send)
	return c
}

// ID returns the connection id
func (c *Client) ID() string {
	return c.id
}

// Port returns the client's presentation port
func (c *Client) Port() *RemotePort {
	return c.port
}

// Send queues msg without blocking. Messages to a closed or slow client
// are dropped.
func (c *Client) Send(msg types.StreamMessage) bool {
	data, err := codec.Marshal(msg)
	if err != nil {
		c.logger.Error("failed to encode message", zap.String("type", msg.Type), zap.Error(err))
		return false
	}

	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- data:
		c.metrics.RecordWSMessage("out", msg.Type)
		return true
	default:
		c.logger.Warn("send buffer full, dropping message", zap.String("type", msg.Type))
		return false
	}
}

// Close stops the write pump, which closes the connection
func (c *Client) Close() {
	c.once.Do(func() {
		close(c.done)
	})
}

// writePump drains the send buffer and keeps the connection alive
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
		c.conn.Close()
	}()

	for {
		select {
		case data := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.logger.Debug("write failed", zap.Error(err))
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

// readPump dispatches inbound messages until the connection fails
func (c *Client) readPump() {
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("connection closed unexpectedly", zap.Error(err))
			}
			return
		}
		c.conn.SetReadDeadline(time.Now().Add(pongWait))

		var msg types.StreamMessage
		if err := codec.Unmarshal(data, &msg); err != nil {
			c.sendError("malformed message")
			continue
		}
		c.metrics.RecordWSMessage("in", msg.Type)
		if err := c.dispatch(msg); err != nil {
			c.sendError(err.Error())
		}
	}
}

// dispatch handles msg inside a span when tracing is enabled
func (c *Client) dispatch(msg types.StreamMessage) error {
	if c.tracer == nil {
		return c.handle(msg)
	}
	fields := []zap.Field{logging.ClientID(c.id)}
	if msg.WindowID > 0 {
		fields = append(fields, logging.WindowID(msg.WindowID))
	}
	return c.tracer.Trace(context.Background(), "stream."+msg.Type, func(context.Context) error {
		return c.handle(msg)
	}, fields...)
}

// handle applies one inbound message to the port
func (c *Client) handle(msg types.StreamMessage) error {
	switch msg.Type {
	case MsgBounds:
		c.port.SetBounds(msg.Width, msg.Height)
		if c.onBounds != nil {
			c.onBounds()
		}
	case MsgBindWindow, MsgBindDock:
		if msg.Rect == nil || msg.WindowID <= 0 {
			return errors.New(msg.Type + " needs window_id and rect")
		}
		c.port.BindElement(targetOf(msg.Type), msg.WindowID, *msg.Rect)
	case MsgUnbindWindow, MsgUnbindDock:
		c.port.UnbindElement(targetOf(msg.Type), msg.WindowID)
	case MsgTransitionEnd:
		target := msg.Target
		if target == "" {
			target = types.TargetWindow
		}
		c.port.EndTransition(target, msg.WindowID)
	case MsgFrame:
		c.port.Frame()
	case MsgPing:
		c.Send(types.StreamMessage{Type: MsgPong})
	default:
		return errUnknownMessage
	}
	return nil
}

var errUnknownMessage = errors.New("unknown message type")

func (c *Client) sendError(message string) {
	c.Send(types.StreamMessage{Type: MsgError, Message: message})
}

// targetOf maps bind and unbind message types to an element target
func targetOf(msgType string) string {
	if msgType == MsgBindDock || msgType == MsgUnbindDock {
		return types.TargetDock
	}
	return types.TargetWindow
}
