package canvas

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Harsh-Thanki/SketchScript-2.0/pkg/logger"
	"github.com/Harsh-Thanki/SketchScript-2.0/pkg/shared"
)

// Maximum number of simultaneous canvas clients
const MaxClientsDefault = 100

// RateLimitInfo tracks per-IP request counts.
type RateLimitInfo struct {
	requests  int
	lastReset time.Time
}

// ClientManager tracks connected clients by session ID and applies per-IP
// rate limiting to run requests.
type ClientManager struct {
	clients    map[string]*Client        // sessionID -> Client
	rateLimits map[string]*RateLimitInfo // ipAddress -> RateLimitInfo
	mu         sync.RWMutex
}

// NewClientManager creates an empty client manager.
func NewClientManager() *ClientManager {
	return &ClientManager{
		clients:    make(map[string]*Client),
		rateLimits: make(map[string]*RateLimitInfo),
	}
}

// AddClient registers a client under its session ID.
func (cm *ClientManager) AddClient(sessionID string, client *Client) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.clients[sessionID] = client
	logger.WebSocketDebug("Client added for session %s", sessionID)
}

// RemoveClient unregisters a client and closes its send channel.
func (cm *ClientManager) RemoveClient(sessionID string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if client, exists := cm.clients[sessionID]; exists {
		select {
		case <-client.send:
			// Channel already closed
		default:
			close(client.send)
		}
		delete(cm.clients, sessionID)
		logger.WebSocketDebug("Client removed for session %s", sessionID)
	}
}

// SendToClient sends a message to the client of a specific session.
func (cm *ClientManager) SendToClient(sessionID string, message shared.Message) error {
	cm.mu.RLock()
	client, exists := cm.clients[sessionID]
	cm.mu.RUnlock()
	if !exists {
		return fmt.Errorf("client not found for session %s", sessionID)
	}

	jsonData, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %v", err)
	}

	select {
	case client.send <- jsonData:
		return nil
	case <-time.After(time.Second):
		return fmt.Errorf("send timeout for session %s", sessionID)
	}
}

// GetClientCount returns the number of connected clients.
func (cm *ClientManager) GetClientCount() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.clients)
}

// HasClient reports whether a client exists for the session.
func (cm *ClientManager) HasClient(sessionID string) bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	_, exists := cm.clients[sessionID]
	return exists
}

// CheckRateLimit counts a run request against the per-IP budget.
func (cm *ClientManager) CheckRateLimit(ipAddress string) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	now := time.Now()
	if _, exists := cm.rateLimits[ipAddress]; !exists {
		cm.rateLimits[ipAddress] = &RateLimitInfo{lastReset: now}
	}

	rateLimit := cm.rateLimits[ipAddress]
	if now.Sub(rateLimit.lastReset) > time.Minute {
		rateLimit.requests = 0
		rateLimit.lastReset = now
	}
	rateLimit.requests++

	maxPerMinute := getMaxRunsPerMinute()
	if rateLimit.requests > maxPerMinute {
		logger.WebSocketWarn("Rate limit exceeded for IP %s: %d run requests in last minute", ipAddress, rateLimit.requests)
		return fmt.Errorf("rate limit exceeded: too many requests from %s", ipAddress)
	}

	return nil
}
