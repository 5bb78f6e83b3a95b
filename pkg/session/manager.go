package session

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"taskmanager/pkg/generator"
)

type MySQLSessionRepo struct {
	DB *sql.DB
}

func NewMySQLSessionRepo(db *sql.DB) *MySQLSessionRepo {
	return &MySQLSessionRepo{DB: db}
}

// Create appends a new session for the user; existing sessions are left
// untouched so several devices can stay logged in at once. Already-expired
// rows of the same user are pruned on the way.
func (r *MySQLSessionRepo) Create(userID string) (*Session, error) {
	token, err := generator.GenerateRandomID(generator.LenRefreshToken)
	if err != nil {
		return nil, fmt.Errorf("refresh token gen error: %w", err)
	}

	now := time.Now()
	s := &Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(RefreshTokenTTL),
	}

	if _, err := r.DB.Exec(`
		DELETE FROM sessions WHERE user_id = ? AND expires_at <= ?
	`, userID, now); err != nil {
		return nil, err
	}

	if _, err := r.DB.Exec(`
		INSERT INTO sessions (token, user_id, created_at, expires_at)
		VALUES (?, ?, ?, ?)
	`, s.Token, s.UserID, s.CreatedAt, s.ExpiresAt); err != nil {
		return nil, err
	}

	return s, nil
}

// FindByUserIDAndToken returns (nil, nil) when either the user or the token
// does not match. Callers must not learn which half failed.
func (r *MySQLSessionRepo) FindByUserIDAndToken(userID, token string) (*Session, error) {
	var s Session
	err := r.DB.QueryRow(`
		SELECT token, user_id, created_at, expires_at FROM sessions
		WHERE user_id = ? AND token = ?
	`, userID, token).Scan(&s.Token, &s.UserID, &s.CreatedAt, &s.ExpiresAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *MySQLSessionRepo) Invalidate(userID string) error {
	_, err := r.DB.Exec(`
		DELETE FROM sessions WHERE user_id = ?
	`, userID)
	return err
}
