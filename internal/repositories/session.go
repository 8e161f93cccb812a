package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/spotdash/internal/models"
	"github.com/desertthunder/spotdash/internal/shared"
	"golang.org/x/oauth2"
)

var _ models.Repository[*models.Session] = (*SessionRepository)(nil)

// SessionRepository implements [models.Repository] for [models.Session].
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new [SessionRepository] with the given database connection
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session with a generated ID
func (r *SessionRepository) Create(session *models.Session) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	id := shared.GenerateID()

	query := `
		INSERT INTO sessions (id, access_token, refresh_token, token_type, expiry, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		id,
		session.AccessToken(),
		session.RefreshToken(),
		session.TokenType(),
		nullTime(session.Expiry()),
		session.CreatedAt(),
		session.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	session.SetID(id)
	return nil
}

// Get retrieves a session by ID, excluding soft-deleted sessions.
//
// Returns [shared.ErrSessionNotFound] when no live session matches.
func (r *SessionRepository) Get(id string) (*models.Session, error) {
	query := `
		SELECT id, access_token, refresh_token, token_type, expiry, created_at, updated_at, deleted_at
		FROM sessions
		WHERE id = ? AND deleted_at IS NULL
	`

	session, err := scanSession(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	return session, nil
}

// Update stores the session's current token and bumps updated_at.
func (r *SessionRepository) Update(session *models.Session) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now().UTC()

	query := `
		UPDATE sessions
		SET access_token = ?, refresh_token = ?, token_type = ?, expiry = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		session.AccessToken(),
		session.RefreshToken(),
		session.TokenType(),
		nullTime(session.Expiry()),
		now,
		session.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	if err := expectOneRow(result, session.ID()); err != nil {
		return err
	}

	session.SetUpdatedAt(now)
	return nil
}

// Delete soft-deletes a session.
func (r *SessionRepository) Delete(id string) error {
	query := `UPDATE sessions SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`

	result, err := r.db.Exec(query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return expectOneRow(result, id)
}

// PurgeDeleted permanently removes sessions soft-deleted before cutoff and returns how many rows went.
func (r *SessionRepository) PurgeDeleted(cutoff time.Time) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM sessions WHERE deleted_at IS NOT NULL AND deleted_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to purge sessions: %w", err)
	}
	return result.RowsAffected()
}

func expectOneRow(result sql.Result, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrSessionNotFound, id)
	}
	return nil
}

func scanSession(row rowScanner) (*models.Session, error) {
	var (
		id           string
		accessToken  string
		refreshToken string
		tokenType    string
		expiry       sql.NullTime
		createdAt    time.Time
		updatedAt    time.Time
		deletedAt    sql.NullTime
	)

	if err := row.Scan(&id, &accessToken, &refreshToken, &tokenType, &expiry, &createdAt, &updatedAt, &deletedAt); err != nil {
		return nil, err
	}

	session := models.NewSession(&oauth2.Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    tokenType,
		Expiry:       expiry.Time,
	})
	session.SetID(id)
	session.SetCreatedAt(createdAt)
	session.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		session.SetDeletedAt(&deletedAt.Time)
	}

	return session, nil
}
