package canvas

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Harsh-Thanki/SketchScript-2.0/pkg/logger"
	"github.com/Harsh-Thanki/SketchScript-2.0/pkg/shared"

	"github.com/gorilla/websocket"
)

var newline = []byte{'\n'}

// Client is one connected canvas websocket session.
type Client struct {
	conn      *websocket.Conn
	send      chan []byte
	handler   *Handler
	ipAddress string
	sessionID string
	username  string // empty for guest sessions
	lastPong  time.Time
	shutdown  chan struct{}

	runMu     sync.Mutex
	cancelRun context.CancelFunc
}

// Send queues a message for the client without blocking the caller. A client
// whose channel stays blocked is scheduled for cleanup.
func (c *Client) Send(message []byte) {
	c.handler.mutex.RLock()
	_, clientExists := c.handler.clients[c]
	c.handler.mutex.RUnlock()
	if !clientExists {
		return
	}

	select {
	case c.send <- message:
	case <-time.After(100 * time.Millisecond):
		logger.WebSocketWarn("Send timeout for client %s, scheduling cleanup", c.conn.RemoteAddr())
		go c.handler.cleanupClient(c)
	}
}

// SendMessage marshals and queues a shared.Message.
func (c *Client) SendMessage(msg shared.Message) {
	if msg.SessionID == "" {
		msg.SessionID = c.sessionID
	}
	jsonMsg, err := json.Marshal(msg)
	if err != nil {
		return
	}
	c.Send(jsonMsg)
}

// canvasRequest is a client-to-server message on the canvas websocket.
type canvasRequest struct {
	Type    string `json:"type"`              // "run", "stop" or "keepalive"
	Program string `json:"program,omitempty"` // source for "run"
}

// readPump reads run and stop requests from the websocket until the
// connection drops.
func (c *Client) readPump() {
	defer func() {
		c.stopRun()
		c.handler.cleanupClient(c)
	}()

	c.conn.SetReadLimit(getMaxMessageSize())
	c.conn.SetReadDeadline(time.Now().Add(getPongWait()))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(getPongWait()))
		c.lastPong = time.Now()
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNoStatusReceived) {
				logger.WebSocketWarn("Unexpected close for client %s: %v", c.conn.RemoteAddr(), err)
			}
			break
		}

		var request canvasRequest
		if err := json.Unmarshal(message, &request); err != nil {
			logger.WebSocketWarn("Failed to parse JSON from client %s: %v", c.conn.RemoteAddr(), err)
			c.SendMessage(shared.Message{
				Type:    shared.MessageTypeError,
				Content: "Invalid message format",
			})
			continue
		}

		switch request.Type {
		case "keepalive":
			continue
		case "run":
			if err := c.handler.manager.CheckRateLimit(c.ipAddress); err != nil {
				c.SendMessage(shared.Message{
					Type:    shared.MessageTypeError,
					Content: "Too many run requests, please wait",
				})
				time.Sleep(time.Second)
				continue
			}
			c.startRun(request.Program)
		case "stop":
			c.stopRun()
			c.SendMessage(shared.Message{
				Type:     shared.MessageTypeRunState,
				RunState: "stopped",
			})
		default:
			logger.WebSocketDebug("Unknown request type %q from session %s", request.Type, c.sessionID)
		}
	}
}

// writePump writes queued messages to the websocket and keeps the connection
// alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(getPingPeriod())
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(getWriteWait()))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Drain additional queued messages into the same frame, with a
			// timeout so a concurrent close cannot wedge the pump.
			timeout := time.NewTimer(10 * time.Millisecond)
			n := len(c.send)
			for i := 0; i < n; i++ {
				select {
				case additionalMsg := <-c.send:
					w.Write(newline)
					w.Write(additionalMsg)
				case <-timeout.C:
					i = n
				}
			}
			timeout.Stop()

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(getWriteWait()))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.WebSocketDebug("Failed to send ping to client %s: %v", c.conn.RemoteAddr(), err)
				return
			}
		case <-c.shutdown:
			return
		}
	}
}
