package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Harsh-Thanki/SketchScript-2.0/pkg/auth"
)

func TestGuestTokenRoundTrip(t *testing.T) {
	token, err := auth.GenerateGuestToken("session-123")
	if err != nil {
		t.Fatalf("GenerateGuestToken failed: %v", err)
	}

	claims, err := auth.ValidateGuestToken(token)
	if err != nil {
		t.Fatalf("ValidateGuestToken failed: %v", err)
	}
	if claims.SessionID != "session-123" {
		t.Errorf("session ID = %q, want session-123", claims.SessionID)
	}
	if claims.Subject != "guest" {
		t.Errorf("subject = %q, want guest", claims.Subject)
	}
}

func TestUserTokenRoundTrip(t *testing.T) {
	token, err := auth.GenerateUserToken("session-456", "harsh")
	if err != nil {
		t.Fatalf("GenerateUserToken failed: %v", err)
	}

	claims, err := auth.ValidateUserToken(token)
	if err != nil {
		t.Fatalf("ValidateUserToken failed: %v", err)
	}
	if claims.Username != "harsh" {
		t.Errorf("username = %q, want harsh", claims.Username)
	}
	if claims.SessionID != "session-456" {
		t.Errorf("session ID = %q, want session-456", claims.SessionID)
	}
}

func TestValidateTokenDetectsType(t *testing.T) {
	guestToken, _ := auth.GenerateGuestToken("g-1")
	userToken, _ := auth.GenerateUserToken("u-1", "harsh")

	_, isUser, err := auth.ValidateToken(guestToken)
	if err != nil {
		t.Fatalf("ValidateToken(guest) failed: %v", err)
	}
	if isUser {
		t.Error("guest token classified as user token")
	}

	claims, isUser, err := auth.ValidateToken(userToken)
	if err != nil {
		t.Fatalf("ValidateToken(user) failed: %v", err)
	}
	if !isUser {
		t.Error("user token classified as guest token")
	}
	if uc, ok := claims.(*auth.UserClaims); !ok || uc.Username != "harsh" {
		t.Errorf("unexpected claims %+v", claims)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	if _, err := auth.ValidateGuestToken("not.a.token"); err == nil {
		t.Error("expected error for malformed token")
	}
	if _, _, err := auth.ValidateToken(""); err == nil {
		t.Error("expected error for empty token")
	}
}

func TestExtractTokenFromRequest(t *testing.T) {
	// Bearer header
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer abc123")
	token, err := auth.ExtractTokenFromRequest(r)
	if err != nil || token != "abc123" {
		t.Errorf("header extraction = (%q, %v)", token, err)
	}

	// Cookie
	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "session_token", Value: "cookie-token"})
	token, err = auth.ExtractTokenFromRequest(r)
	if err != nil || token != "cookie-token" {
		t.Errorf("cookie extraction = (%q, %v)", token, err)
	}

	// Query parameter (websocket upgrade path)
	r = httptest.NewRequest(http.MethodGet, "/ws?token=query-token", nil)
	token, err = auth.ExtractTokenFromRequest(r)
	if err != nil || token != "query-token" {
		t.Errorf("query extraction = (%q, %v)", token, err)
	}

	// Nothing at all
	r = httptest.NewRequest(http.MethodGet, "/", nil)
	if _, err = auth.ExtractTokenFromRequest(r); err == nil {
		t.Error("expected error when no token is present")
	}
}

func TestRequireTokenMiddleware(t *testing.T) {
	called := false
	handler := auth.RequireToken(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if sid := auth.SessionIDFromContext(r.Context()); sid != "mw-session" {
			t.Errorf("session ID in context = %q, want mw-session", sid)
		}
	})

	token, _ := auth.GenerateGuestToken("mw-session")
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler(w, r)
	if !called {
		t.Fatal("handler not called for valid token")
	}

	// Missing token is rejected.
	w = httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRequireUserTokenRejectsGuests(t *testing.T) {
	handler := auth.RequireUserToken(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not be called for a guest token")
	})

	token, _ := auth.GenerateGuestToken("guest-session")
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler(w, r)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestUsernameFromContext(t *testing.T) {
	ctx := auth.AddIdentityToContext(context.Background(), &auth.UserClaims{
		SessionID: "s", Username: "harsh",
	}, true)
	if name, ok := auth.UsernameFromContext(ctx); !ok || name != "harsh" {
		t.Errorf("username = (%q, %v), want (harsh, true)", name, ok)
	}

	guestCtx := auth.AddIdentityToContext(context.Background(), &auth.GuestClaims{SessionID: "g"}, false)
	if _, ok := auth.UsernameFromContext(guestCtx); ok {
		t.Error("guest context should carry no username")
	}
}
