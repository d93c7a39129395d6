package canvas

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientIPPrefersForwardedFor(t *testing.T) {
	r := httptest.NewRequest("GET", "/ws", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	if got := clientIP(r); got != "10.0.0.1:1234" {
		t.Errorf("clientIP = %q, want RemoteAddr", got)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := clientIP(r); got != "203.0.113.9" {
		t.Errorf("clientIP = %q, want first forwarded address", got)
	}
}

func TestRateLimitResetsAfterWindow(t *testing.T) {
	cm := NewClientManager()
	ip := "203.0.113.9"

	limit := getMaxRunsPerMinute()
	for i := 0; i < limit; i++ {
		if err := cm.CheckRateLimit(ip); err != nil {
			t.Fatalf("request %d unexpectedly limited: %v", i, err)
		}
	}
	if err := cm.CheckRateLimit(ip); err == nil {
		t.Fatal("expected rate limit after exceeding the budget")
	}

	// Age the window out and verify the counter resets.
	cm.rateLimits[ip].lastReset = time.Now().Add(-2 * time.Minute)
	if err := cm.CheckRateLimit(ip); err != nil {
		t.Errorf("expected reset after window expiry, got %v", err)
	}
}

func TestClientManagerTracksSessions(t *testing.T) {
	cm := NewClientManager()
	client := &Client{send: make(chan []byte, 1)}

	cm.AddClient("session-1", client)
	if !cm.HasClient("session-1") {
		t.Error("HasClient = false after AddClient")
	}
	if got := cm.GetClientCount(); got != 1 {
		t.Errorf("client count = %d, want 1", got)
	}

	cm.RemoveClient("session-1")
	if cm.HasClient("session-1") {
		t.Error("HasClient = true after RemoveClient")
	}
	// The send channel is closed so the write pump can exit.
	select {
	case _, ok := <-client.send:
		if ok {
			t.Error("send channel delivered a value instead of closing")
		}
	default:
		t.Error("send channel not closed by RemoveClient")
	}
}
