package gallery

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Harsh-Thanki/SketchScript-2.0/pkg/auth"
	"github.com/Harsh-Thanki/SketchScript-2.0/pkg/configuration"
	"github.com/Harsh-Thanki/SketchScript-2.0/pkg/logger"
	"github.com/Harsh-Thanki/SketchScript-2.0/pkg/sketchscript"

	"github.com/google/uuid"
)

// credentialsRequest is the body of register and login requests.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// authResponse is returned by register, login and session endpoints.
type authResponse struct {
	Success   bool   `json:"success"`
	Token     string `json:"token,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
	Username  string `json:"username,omitempty"`
	Message   string `json:"message"`
}

// sketchRequest is the body of save and update requests.
type sketchRequest struct {
	Title   string `json:"title"`
	Program string `json:"program"`
}

// setCORSHeaders applies the shared CORS and content-type headers. Returns
// true when the request was an OPTIONS preflight and is already answered.
func setCORSHeaders(w http.ResponseWriter, r *http.Request, methods string) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", methods+", OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Content-Type", "application/json")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

// respondWithError sends a JSON error response.
func respondWithError(w http.ResponseWriter, message string, statusCode int) {
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(authResponse{Success: false, Message: message})
}

// HandleRegister creates a new user account and returns a user token.
// POST /api/register
func (s *Store) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if setCORSHeaders(w, r, "POST") {
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if err := s.RegisterUser(req.Username, req.Password); err != nil {
		if errors.Is(err, ErrUserExists) {
			respondWithError(w, err.Error(), http.StatusConflict)
		} else {
			respondWithError(w, err.Error(), http.StatusBadRequest)
		}
		return
	}

	sessionID := uuid.New().String()
	token, err := auth.GenerateUserToken(sessionID, strings.TrimSpace(req.Username))
	if err != nil {
		logger.AuthError("Failed to generate token after registration: %v", err)
		respondWithError(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(authResponse{
		Success:   true,
		Token:     token,
		SessionID: sessionID,
		Username:  strings.TrimSpace(req.Username),
		Message:   "Registration successful",
	})
}

// HandleLogin verifies credentials and returns a user token.
// POST /api/login
func (s *Store) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if setCORSHeaders(w, r, "POST") {
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if err := s.AuthenticateUser(req.Username, req.Password); err != nil {
		respondWithError(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}

	sessionID := uuid.New().String()
	username := strings.TrimSpace(req.Username)
	token, err := auth.GenerateUserToken(sessionID, username)
	if err != nil {
		logger.AuthError("Failed to generate token for user '%s': %v", username, err)
		respondWithError(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session_token",
		Value:    token,
		Path:     "/",
		MaxAge:   configuration.GetInt("JWT", "token_expiration_hours", 24) * 3600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	json.NewEncoder(w).Encode(authResponse{
		Success:   true,
		Token:     token,
		SessionID: sessionID,
		Username:  username,
		Message:   "Login successful",
	})
}

// HandleGuestSession issues an anonymous session token so visitors can run
// programs on the canvas without an account.
// POST /api/session
func HandleGuestSession(w http.ResponseWriter, r *http.Request) {
	if setCORSHeaders(w, r, "POST") {
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !configuration.GetBool("Authentication", "enable_guest_access", true) {
		respondWithError(w, "Guest access is disabled", http.StatusForbidden)
		return
	}

	sessionID := uuid.New().String()
	token, err := auth.GenerateGuestToken(sessionID)
	if err != nil {
		logger.AuthError("Failed to generate guest token: %v", err)
		respondWithError(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(authResponse{
		Success:   true,
		Token:     token,
		SessionID: sessionID,
		Message:   "Guest session created",
	})
}

// HandleSketches dispatches /api/sketches and /api/sketches/{id} by method.
// Requires a user token; guests cannot save sketches.
func (s *Store) HandleSketches(w http.ResponseWriter, r *http.Request) {
	if setCORSHeaders(w, r, "GET, POST, PUT, DELETE") {
		return
	}

	username, ok := auth.UsernameFromContext(r.Context())
	if !ok {
		respondWithError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/sketches")
	id = strings.Trim(id, "/")

	switch {
	case r.Method == "GET" && id == "":
		s.handleListSketches(w, username)
	case r.Method == "GET":
		s.handleGetSketch(w, username, id)
	case r.Method == "POST" && id == "":
		s.handleSaveSketch(w, r, username)
	case r.Method == "PUT" && id != "":
		s.handleUpdateSketch(w, r, username, id)
	case r.Method == "DELETE" && id != "":
		s.handleDeleteSketch(w, username, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Store) handleListSketches(w http.ResponseWriter, username string) {
	sketches, err := s.ListSketches(username)
	if err != nil {
		logger.Error(logger.AreaGallery, "Failed to list sketches for '%s': %v", username, err)
		respondWithError(w, "Failed to list sketches", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(sketches)
}

func (s *Store) handleGetSketch(w http.ResponseWriter, username, id string) {
	sketch, err := s.GetSketch(username, id)
	if errors.Is(err, ErrSketchNotFound) {
		respondWithError(w, "Sketch not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Error(logger.AreaGallery, "Failed to load sketch %s: %v", id, err)
		respondWithError(w, "Failed to load sketch", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(sketch)
}

func (s *Store) handleSaveSketch(w http.ResponseWriter, r *http.Request, username string) {
	var req sketchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	id, err := s.SaveSketch(username, req.Title, req.Program)
	switch {
	case errors.Is(err, ErrSketchTooLarge):
		respondWithError(w, "Sketch program too large", http.StatusRequestEntityTooLarge)
		return
	case errors.Is(err, ErrSketchQuota):
		respondWithError(w, "Sketch limit reached", http.StatusForbidden)
		return
	case err != nil:
		logger.Error(logger.AreaGallery, "Failed to save sketch for '%s': %v", username, err)
		respondWithError(w, "Failed to save sketch", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "id": id})
}

func (s *Store) handleUpdateSketch(w http.ResponseWriter, r *http.Request, username, id string) {
	var req sketchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	err := s.UpdateSketch(username, id, req.Title, req.Program)
	switch {
	case errors.Is(err, ErrSketchNotFound):
		respondWithError(w, "Sketch not found", http.StatusNotFound)
		return
	case errors.Is(err, ErrSketchTooLarge):
		respondWithError(w, "Sketch program too large", http.StatusRequestEntityTooLarge)
		return
	case err != nil:
		logger.Error(logger.AreaGallery, "Failed to update sketch %s: %v", id, err)
		respondWithError(w, "Failed to update sketch", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "id": id})
}

func (s *Store) handleDeleteSketch(w http.ResponseWriter, username, id string) {
	err := s.DeleteSketch(username, id)
	if errors.Is(err, ErrSketchNotFound) {
		respondWithError(w, "Sketch not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Error(logger.AreaGallery, "Failed to delete sketch %s: %v", id, err)
		respondWithError(w, "Failed to delete sketch", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
}

// HandleSyntax returns the language reference shown by the editor help panel.
// GET /api/syntax
func HandleSyntax(w http.ResponseWriter, r *http.Request) {
	if setCORSHeaders(w, r, "GET") {
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"syntax": sketchscript.SyntaxHelp,
		"sample": sketchscript.SampleProgram,
	})
}
