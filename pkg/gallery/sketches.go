package gallery

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Harsh-Thanki/SketchScript-2.0/pkg/configuration"
	"github.com/Harsh-Thanki/SketchScript-2.0/pkg/logger"

	"github.com/google/uuid"
)

var (
	// ErrSketchNotFound is returned when a sketch ID does not exist or does
	// not belong to the requesting user.
	ErrSketchNotFound = fmt.Errorf("sketch not found")
	// ErrSketchTooLarge is returned when a program exceeds the configured
	// size limit.
	ErrSketchTooLarge = fmt.Errorf("sketch program too large")
	// ErrSketchQuota is returned when a user has reached the configured
	// number of saved sketches.
	ErrSketchQuota = fmt.Errorf("sketch limit reached")
)

// Sketch is a saved program with its metadata.
type Sketch struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Title     string    `json:"title"`
	Program   string    `json:"program"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SaveSketch stores a new sketch for the user and returns its generated ID.
func (s *Store) SaveSketch(username, title, program string) (string, error) {
	maxSizeKB := configuration.GetInt("Gallery", "max_sketch_size_kb", 64)
	if len(program) > maxSizeKB*1024 {
		return "", ErrSketchTooLarge
	}
	if title == "" {
		title = "Untitled"
	}

	maxSketches := configuration.GetInt("Gallery", "max_sketches_per_user", 100)
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM sketches WHERE username = ?", username).Scan(&count)
	if err != nil {
		return "", fmt.Errorf("failed to count sketches: %w", err)
	}
	if count >= maxSketches {
		return "", ErrSketchQuota
	}

	id := uuid.New().String()
	now := time.Now().Unix()
	_, err = s.db.Exec(`
		INSERT INTO sketches (id, username, title, program, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, username, title, program, now, now)
	if err != nil {
		return "", fmt.Errorf("failed to save sketch: %w", err)
	}

	logger.Info(logger.AreaGallery, "Sketch %s saved for user '%s'", id, username)
	return id, nil
}

// UpdateSketch replaces the title and program of an existing sketch owned by
// the user.
func (s *Store) UpdateSketch(username, id, title, program string) error {
	maxSizeKB := configuration.GetInt("Gallery", "max_sketch_size_kb", 64)
	if len(program) > maxSizeKB*1024 {
		return ErrSketchTooLarge
	}

	res, err := s.db.Exec(`
		UPDATE sketches SET title = ?, program = ?, updated_at = ?
		WHERE id = ? AND username = ?
	`, title, program, time.Now().Unix(), id, username)
	if err != nil {
		return fmt.Errorf("failed to update sketch: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update sketch: %w", err)
	}
	if rows == 0 {
		return ErrSketchNotFound
	}
	return nil
}

// GetSketch loads a single sketch owned by the user.
func (s *Store) GetSketch(username, id string) (*Sketch, error) {
	var sk Sketch
	var created, updated int64
	err := s.db.QueryRow(`
		SELECT id, username, title, program, created_at, updated_at
		FROM sketches WHERE id = ? AND username = ?
	`, id, username).Scan(&sk.ID, &sk.Username, &sk.Title, &sk.Program, &created, &updated)
	if err == sql.ErrNoRows {
		return nil, ErrSketchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load sketch: %w", err)
	}
	sk.CreatedAt = time.Unix(created, 0)
	sk.UpdatedAt = time.Unix(updated, 0)
	return &sk, nil
}

// ListSketches returns the user's sketches, newest first, without the program
// bodies.
func (s *Store) ListSketches(username string) ([]Sketch, error) {
	rows, err := s.db.Query(`
		SELECT id, username, title, created_at, updated_at
		FROM sketches WHERE username = ?
		ORDER BY updated_at DESC
	`, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list sketches: %w", err)
	}
	defer rows.Close()

	sketches := []Sketch{}
	for rows.Next() {
		var sk Sketch
		var created, updated int64
		if err := rows.Scan(&sk.ID, &sk.Username, &sk.Title, &created, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan sketch row: %w", err)
		}
		sk.CreatedAt = time.Unix(created, 0)
		sk.UpdatedAt = time.Unix(updated, 0)
		sketches = append(sketches, sk)
	}
	return sketches, rows.Err()
}

// DeleteSketch removes a sketch owned by the user.
func (s *Store) DeleteSketch(username, id string) error {
	res, err := s.db.Exec("DELETE FROM sketches WHERE id = ? AND username = ?", id, username)
	if err != nil {
		return fmt.Errorf("failed to delete sketch: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete sketch: %w", err)
	}
	if rows == 0 {
		return ErrSketchNotFound
	}
	logger.Info(logger.AreaGallery, "Sketch %s deleted by user '%s'", id, username)
	return nil
}
