package gallery

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Harsh-Thanki/SketchScript-2.0/pkg/configuration"
	"github.com/Harsh-Thanki/SketchScript-2.0/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrUserExists is returned when registering a username that is taken.
	ErrUserExists = fmt.Errorf("username already exists")
	// ErrInvalidCredentials is returned when login fails. Deliberately the
	// same for unknown user and wrong password.
	ErrInvalidCredentials = fmt.Errorf("invalid username or password")
)

// validateUsername checks the username against the configured length limits
// and the allowed character set.
func validateUsername(username string) error {
	minLen := configuration.GetInt("Authentication", "min_username_length", 3)
	maxLen := configuration.GetInt("Authentication", "max_username_length", 20)
	if len(username) < minLen || len(username) > maxLen {
		return fmt.Errorf("username must be between %d and %d characters", minLen, maxLen)
	}
	for _, r := range username {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != '_' {
			return fmt.Errorf("username may only contain letters, digits and underscores")
		}
	}
	return nil
}

// validatePassword checks the password against the configured length limits.
func validatePassword(password string) error {
	minLen := configuration.GetInt("Authentication", "min_password_length", 8)
	maxLen := configuration.GetInt("Authentication", "max_password_length", 72)
	if len(password) < minLen {
		return fmt.Errorf("password must be at least %d characters", minLen)
	}
	if len(password) > maxLen {
		return fmt.Errorf("password must be at most %d characters", maxLen)
	}
	return nil
}

// RegisterUser creates a new user account with a bcrypt-hashed password.
func (s *Store) RegisterUser(username, password string) error {
	username = strings.TrimSpace(username)
	if err := validateUsername(username); err != nil {
		return err
	}
	if err := validatePassword(password); err != nil {
		return err
	}

	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM users WHERE username = ?", username).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check for existing user: %w", err)
	}
	if count > 0 {
		return ErrUserExists
	}

	cost := configuration.GetInt("Authentication", "password_hash_cost", bcrypt.DefaultCost)
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO users (username, password, last_login, created_at)
		VALUES (?, ?, ?, ?)
	`, username, string(hashedPassword), 0, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	logger.AuthInfo("User '%s' registered", username)
	return nil
}

// AuthenticateUser verifies the password for the given username and records
// the login time on success.
func (s *Store) AuthenticateUser(username, password string) error {
	username = strings.TrimSpace(username)

	var storedHash string
	err := s.db.QueryRow("SELECT password FROM users WHERE username = ?", username).Scan(&storedHash)
	if err != nil {
		if err == sql.ErrNoRows {
			logger.AuthWarn("Login attempt for unknown user '%s'", username)
		} else {
			logger.AuthWarn("Database error during password verification for user '%s': %v", username, err)
		}
		return ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)); err != nil {
		logger.AuthWarn("Password verification failed for user '%s'", username)
		return ErrInvalidCredentials
	}

	_, err = s.db.Exec("UPDATE users SET last_login = ? WHERE username = ?", time.Now().Unix(), username)
	if err != nil {
		logger.AuthWarn("Failed to record login time for user '%s': %v", username, err)
	}

	logger.AuthInfo("User '%s' logged in", username)
	return nil
}
