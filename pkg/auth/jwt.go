// Package auth issues and validates the JWT session tokens that gate the
// canvas websocket and the gallery API.
package auth

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Harsh-Thanki/SketchScript-2.0/pkg/configuration"
	"github.com/Harsh-Thanki/SketchScript-2.0/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// Default values - actual values are loaded from configuration
	defaultJWTSecret       = "fallback_secret_change_in_production"
	defaultTokenExpiration = 24 * time.Hour

	issuerName = "sketchscript"
)

// getJWTSecret retrieves the JWT secret from environment variable or configuration
func getJWTSecret() string {
	if envSecret := os.Getenv("JWT_SECRET_KEY"); envSecret != "" {
		return envSecret
	}

	secret := configuration.GetString("JWT", "secret_key", defaultJWTSecret)
	if secret == defaultJWTSecret || secret == "ENVIRONMENT_VARIABLE_NOT_SET_FALLBACK" {
		logger.AuthWarn("Using fallback JWT secret - set JWT_SECRET_KEY environment variable for production!")
	}
	return secret
}

// getTokenExpiration retrieves the token expiration duration from configuration
func getTokenExpiration() time.Duration {
	hours := configuration.GetInt("JWT", "token_expiration_hours", 24)
	return time.Duration(hours) * time.Hour
}

// GuestClaims are the claims of an anonymous canvas session token. Guests can
// run programs but not save sketches.
type GuestClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// UserClaims are the claims of a logged-in user session token.
type UserClaims struct {
	SessionID string `json:"sid"`
	Username  string `json:"username"`
	jwt.RegisteredClaims
}

// GenerateGuestToken generates a JWT token for an anonymous canvas session
func GenerateGuestToken(sessionID string) (string, error) {
	secretKey := getJWTSecret()
	tokenExpiration := getTokenExpiration()

	now := time.Now()

	claims := GuestClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuerName,
			Subject:   "guest",
			ID:        sessionID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", fmt.Errorf("token could not be signed: %v", err)
	}
	logger.AuthInfo("Guest token generated for session ID: %s", sessionID)
	return signedToken, nil
}

// GenerateUserToken generates a JWT token for a logged-in user session
func GenerateUserToken(sessionID, username string) (string, error) {
	secretKey := getJWTSecret()
	tokenExpiration := getTokenExpiration()

	now := time.Now()

	claims := UserClaims{
		SessionID: sessionID,
		Username:  username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuerName,
			Subject:   username,
			ID:        sessionID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", fmt.Errorf("token could not be signed: %v", err)
	}

	logger.AuthInfo("User token generated for session ID: %s, username: %s", sessionID, username)
	return signedToken, nil
}

// ValidateGuestToken validates a JWT token for an anonymous session
func ValidateGuestToken(tokenString string) (*GuestClaims, error) {
	secretKey := getJWTSecret()

	token, err := jwt.ParseWithClaims(
		tokenString,
		&GuestClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing algorithm: %v", token.Header["alg"])
			}
			return []byte(secretKey), nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("token parsing failed: %v", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(*GuestClaims)
	if !ok {
		return nil, fmt.Errorf("could not extract token claims")
	}

	if claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, fmt.Errorf("token has expired")
	}
	return claims, nil
}

// ValidateUserToken validates a JWT token for a logged-in user session
func ValidateUserToken(tokenString string) (*UserClaims, error) {
	secretKey := getJWTSecret()

	token, err := jwt.ParseWithClaims(
		tokenString,
		&UserClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing algorithm: %v", token.Header["alg"])
			}
			return []byte(secretKey), nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("token parsing failed: %v", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok {
		return nil, fmt.Errorf("could not extract token claims")
	}
	if claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, fmt.Errorf("token has expired")
	}

	return claims, nil
}

// ValidateToken validates a JWT token and returns either UserClaims or
// GuestClaims, detecting the token type from the subject field. The bool
// result reports whether the token belongs to a logged-in user.
func ValidateToken(tokenString string) (interface{}, bool, error) {
	secretKey := getJWTSecret()

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing algorithm: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		return nil, false, fmt.Errorf("token parsing failed: %v", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok {
		subject, exists := claims["sub"].(string)
		if !exists {
			return nil, false, fmt.Errorf("no subject found in token")
		}
		if subject == "guest" {
			guestClaims, err := ValidateGuestToken(tokenString)
			return guestClaims, false, err
		}
		userClaims, err := ValidateUserToken(tokenString)
		return userClaims, true, err
	}

	return nil, false, fmt.Errorf("could not extract claims from token")
}

// ExtractTokenFromRequest extracts the JWT token from the HTTP request.
// The token can be passed in the Authorization header (Bearer token), as a
// cookie, or as a URL query parameter (the websocket upgrade path).
func ExtractTokenFromRequest(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" { // Format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1], nil
		}
		return "", fmt.Errorf("invalid authorization header format")
	}

	cookie, err := r.Cookie("session_token")
	if err == nil {
		return cookie.Value, nil
	}

	token := r.URL.Query().Get("token")
	if token != "" {
		return token, nil
	}

	return "", fmt.Errorf("no token found in request")
}

// RequireToken is middleware that accepts any valid session token, guest or
// user, and stores the session identity in the request context.
func RequireToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "OPTIONS" {
			next(w, r)
			return
		}
		tokenString, err := ExtractTokenFromRequest(r)
		if err != nil {
			logger.AuthWarn("No token found in request: %v", err)
			http.Error(w, "Unauthorized: token missing", http.StatusUnauthorized)
			return
		}

		claims, isUser, err := ValidateToken(tokenString)
		if err != nil {
			logger.AuthWarn("Invalid token: %v", err)
			http.Error(w, "Unauthorized: invalid token", http.StatusUnauthorized)
			return
		}

		r = r.WithContext(AddIdentityToContext(r.Context(), claims, isUser))
		next(w, r)
	}
}

// RequireUserToken is middleware that only accepts logged-in user tokens.
func RequireUserToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "OPTIONS" {
			next(w, r)
			return
		}
		tokenString, err := ExtractTokenFromRequest(r)
		if err != nil {
			http.Error(w, "Unauthorized: token missing", http.StatusUnauthorized)
			return
		}

		claims, err := ValidateUserToken(tokenString)
		if err != nil {
			logger.AuthWarn("Invalid user token: %v", err)
			http.Error(w, "Unauthorized: invalid token", http.StatusUnauthorized)
			return
		}

		r = r.WithContext(AddIdentityToContext(r.Context(), claims, true))
		next(w, r)
	}
}
