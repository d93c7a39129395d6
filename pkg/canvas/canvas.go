// Package canvas serves the drawing websocket: it authenticates clients,
// feeds their programs to the interpreter and streams drawing messages back.
package canvas

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Harsh-Thanki/SketchScript-2.0/pkg/auth"
	"github.com/Harsh-Thanki/SketchScript-2.0/pkg/configuration"
	"github.com/Harsh-Thanki/SketchScript-2.0/pkg/logger"
	"github.com/Harsh-Thanki/SketchScript-2.0/pkg/shared"

	"github.com/gorilla/websocket"
)

// Websocket tuning values come from the [Network] section of settings.cfg.

func getWriteWait() time.Duration {
	return configuration.GetDuration("Network", "write_wait_timeout", 10*time.Second)
}

func getPongWait() time.Duration {
	return configuration.GetDuration("Network", "pong_timeout", 90*time.Second)
}

func getPingPeriod() time.Duration {
	pongWait := getPongWait()
	return (pongWait * 9) / 10
}

func getMaxMessageSize() int64 {
	return int64(configuration.GetInt("Network", "max_message_size_kb", 64) * 1024)
}

func getMaxChannelBuffer() int {
	return configuration.GetInt("Network", "max_channel_buffer", 10000)
}

func getMaxRunsPerMinute() int {
	return configuration.GetInt("Network", "max_runs_per_minute", 60)
}

// Handler manages canvas websocket connections.
type Handler struct {
	clients  map[*Client]bool
	mutex    sync.RWMutex
	upgrader websocket.Upgrader
	manager  *ClientManager
}

// NewHandler creates a canvas handler with origin checking from the
// configuration.
func NewHandler() *Handler {
	return &Handler{
		clients: make(map[*Client]bool),
		manager: NewClientManager(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  configuration.GetInt("Network", "read_buffer_size", 16384),
			WriteBufferSize: configuration.GetInt("Network", "write_buffer_size", 16384),
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					logger.WebSocketWarn("Websocket request without Origin header rejected")
					return false
				}

				allowedOriginsStr := configuration.GetString("Network", "allowed_origins", "http://localhost:8080,http://127.0.0.1:8080")
				for _, allowed := range strings.Split(allowedOriginsStr, ",") {
					if origin == strings.TrimSpace(allowed) {
						return true
					}
				}

				logger.WebSocketWarn("Websocket request from disallowed origin rejected: %s", origin)
				return false
			},
		},
	}
}

// clientIP extracts the client address, honoring X-Forwarded-For.
func clientIP(r *http.Request) string {
	forwardedFor := r.Header.Get("X-Forwarded-For")
	if forwardedFor != "" {
		parts := strings.Split(forwardedFor, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	return r.RemoteAddr
}

// HandleWebSocket upgrades GET /ws to a canvas websocket. A valid session
// token (guest or user) is required; the websocket upgrade path passes it as
// a query parameter.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	ipAddress := clientIP(r)

	h.mutex.RLock()
	clientCount := len(h.clients)
	h.mutex.RUnlock()
	if clientCount >= MaxClientsDefault {
		logger.WebSocketWarn("Maximum clients reached, connection rejected: %s", ipAddress)
		http.Error(w, "Server overloaded", http.StatusServiceUnavailable)
		return
	}

	tokenString, err := auth.ExtractTokenFromRequest(r)
	if err != nil {
		logger.AuthWarn("Websocket request without token from %s: %v", ipAddress, err)
		http.Error(w, "Unauthorized: token missing", http.StatusUnauthorized)
		return
	}

	claims, isUser, err := auth.ValidateToken(tokenString)
	if err != nil {
		logger.AuthWarn("Invalid token in websocket request from %s: %v", ipAddress, err)
		http.Error(w, "Unauthorized: invalid token", http.StatusUnauthorized)
		return
	}

	var sessionID, username string
	if isUser {
		userClaims := claims.(*auth.UserClaims)
		sessionID = userClaims.SessionID
		username = userClaims.Username
	} else {
		sessionID = claims.(*auth.GuestClaims).SessionID
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.WebSocketError("Websocket upgrade failed for %s: %v", ipAddress, err)
		return
	}

	client := &Client{
		conn:      conn,
		send:      make(chan []byte, getMaxChannelBuffer()),
		handler:   h,
		ipAddress: ipAddress,
		sessionID: sessionID,
		username:  username,
		shutdown:  make(chan struct{}),
	}

	h.mutex.Lock()
	h.clients[client] = true
	h.mutex.Unlock()
	h.manager.AddClient(sessionID, client)

	logger.WebSocketInfo("Canvas session %s connected from %s (user=%q)", sessionID, ipAddress, username)

	go client.readPump()
	go client.writePump()

	client.SendMessage(shared.Message{
		Type:      shared.MessageTypeSession,
		SessionID: sessionID,
	})
}

// cleanupClient closes a client's connection and removes it from tracking.
func (h *Handler) cleanupClient(client *Client) {
	if client.conn != nil {
		client.conn.Close()
	}

	select {
	case <-client.shutdown:
		// Already closed
	default:
		close(client.shutdown)
	}

	h.mutex.Lock()
	_, tracked := h.clients[client]
	delete(h.clients, client)
	h.mutex.Unlock()

	if tracked {
		h.manager.RemoveClient(client.sessionID)
		logger.WebSocketInfo("Canvas session %s disconnected", client.sessionID)
	}
}
