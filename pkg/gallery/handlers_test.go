package gallery_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Harsh-Thanki/SketchScript-2.0/pkg/auth"
	"github.com/Harsh-Thanki/SketchScript-2.0/pkg/gallery"
)

type authResult struct {
	Success   bool   `json:"success"`
	Token     string `json:"token"`
	SessionID string `json:"sessionId"`
	Username  string `json:"username"`
	Message   string `json:"message"`
}

func postJSON(t *testing.T, handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, r)
	return w
}

func TestRegisterLoginEndpoints(t *testing.T) {
	store, err := gallery.InitDB(filepath.Join(t.TempDir(), "handlers_test.db"))
	if err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	defer store.Close()

	w := postJSON(t, store.HandleRegister, "/api/register",
		`{"username":"harsh","password":"correct-horse-battery"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("register status = %d, body = %s", w.Code, w.Body.String())
	}
	var reg authResult
	if err := json.Unmarshal(w.Body.Bytes(), &reg); err != nil {
		t.Fatalf("register response not JSON: %v", err)
	}
	if !reg.Success || reg.Token == "" {
		t.Fatalf("register response = %+v", reg)
	}
	// The returned token must be a valid user token.
	claims, err := auth.ValidateUserToken(reg.Token)
	if err != nil || claims.Username != "harsh" {
		t.Errorf("register token invalid: claims=%+v err=%v", claims, err)
	}

	// Duplicate registration conflicts.
	w = postJSON(t, store.HandleRegister, "/api/register",
		`{"username":"harsh","password":"correct-horse-battery"}`)
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want 409", w.Code)
	}

	w = postJSON(t, store.HandleLogin, "/api/login",
		`{"username":"harsh","password":"correct-horse-battery"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", w.Code, w.Body.String())
	}

	w = postJSON(t, store.HandleLogin, "/api/login",
		`{"username":"harsh","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad login status = %d, want 401", w.Code)
	}
}

func TestGuestSessionEndpoint(t *testing.T) {
	w := postJSON(t, gallery.HandleGuestSession, "/api/session", `{}`)
	if w.Code != http.StatusOK {
		t.Fatalf("session status = %d, body = %s", w.Code, w.Body.String())
	}
	var res authResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("session response not JSON: %v", err)
	}
	if res.Token == "" || res.SessionID == "" {
		t.Fatalf("session response = %+v", res)
	}
	claims, err := auth.ValidateGuestToken(res.Token)
	if err != nil || claims.SessionID != res.SessionID {
		t.Errorf("guest token invalid: claims=%+v err=%v", claims, err)
	}
}

func TestSketchEndpointsRequireUser(t *testing.T) {
	store, err := gallery.InitDB(filepath.Join(t.TempDir(), "handlers_test.db"))
	if err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	defer store.Close()
	if err := store.RegisterUser("harsh", "correct-horse-battery"); err != nil {
		t.Fatalf("RegisterUser failed: %v", err)
	}

	handler := auth.RequireUserToken(store.HandleSketches)
	token, _ := auth.GenerateUserToken("s-1", "harsh")

	// Save a sketch.
	r := httptest.NewRequest(http.MethodPost, "/api/sketches",
		strings.NewReader(`{"title":"Spiral","program":"MOVE 10 Forward"}`))
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("save status = %d, body = %s", w.Code, w.Body.String())
	}
	var saved struct {
		ID string `json:"id"`
	}
	json.Unmarshal(w.Body.Bytes(), &saved)
	if saved.ID == "" {
		t.Fatal("save response has no sketch ID")
	}

	// Load it back by ID.
	r = httptest.NewRequest(http.MethodGet, "/api/sketches/"+saved.ID, nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	handler(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("load status = %d, body = %s", w.Code, w.Body.String())
	}
	var sketch gallery.Sketch
	json.Unmarshal(w.Body.Bytes(), &sketch)
	if sketch.Program != "MOVE 10 Forward" {
		t.Errorf("loaded program = %q", sketch.Program)
	}

	// Guest tokens are rejected.
	guestToken, _ := auth.GenerateGuestToken("g-1")
	r = httptest.NewRequest(http.MethodGet, "/api/sketches", nil)
	r.Header.Set("Authorization", "Bearer "+guestToken)
	w = httptest.NewRecorder()
	handler(w, r)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("guest access status = %d, want 401", w.Code)
	}
}

func TestSyntaxEndpoint(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/syntax", nil)
	w := httptest.NewRecorder()
	gallery.HandleSyntax(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("syntax status = %d", w.Code)
	}
	var res struct {
		Syntax []string `json:"syntax"`
		Sample string   `json:"sample"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("syntax response not JSON: %v", err)
	}
	if len(res.Syntax) == 0 || res.Sample == "" {
		t.Error("syntax endpoint returned empty reference")
	}
}
