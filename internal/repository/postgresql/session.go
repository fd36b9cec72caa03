package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/eldar-magrafta/hilan-calculator/internal/domain/attendance"
	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/calendar"
	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// SessionSchema creates the sessions table.
const SessionSchema = `
	CREATE TABLE IF NOT EXISTS hours_sessions (
		id              TEXT PRIMARY KEY,
		month           INTEGER NOT NULL,
		year            INTEGER NOT NULL,
		entries         JSONB NOT NULL,
		classifications JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		expires_at      TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_hours_sessions_expires_at ON hours_sessions (expires_at);
`

type sessionRepositoryImpl struct {
	db *database.DB
}

// NewSessionRepository creates a new instance of SessionRepository.
func NewSessionRepository(db *database.DB) attendance.SessionRepository {
	return &sessionRepositoryImpl{db: db}
}

// EnsureSessionSchema creates the sessions table when missing.
func EnsureSessionSchema(ctx context.Context, db *database.DB) error {
	if _, err := db.Exec(ctx, SessionSchema); err != nil {
		return fmt.Errorf("create hours_sessions: %w", err)
	}
	return nil
}

func (r *sessionRepositoryImpl) Create(ctx context.Context, session attendance.Session) (attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	entries, err := json.Marshal(session.Entries)
	if err != nil {
		return attendance.Session{}, fmt.Errorf("encode entries: %w", err)
	}
	classifications, err := json.Marshal(attendance.ClassificationsByKey(session.Classifications))
	if err != nil {
		return attendance.Session{}, fmt.Errorf("encode classifications: %w", err)
	}

	query := `
		INSERT INTO hours_sessions (id, month, year, entries, classifications, created_at, updated_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = q.Exec(ctx, query,
		session.ID,
		session.Month.Month,
		session.Month.Year,
		entries,
		classifications,
		session.CreatedAt.UTC(),
		session.UpdatedAt.UTC(),
		session.ExpiresAt.UTC(),
	)
	if err != nil {
		return attendance.Session{}, fmt.Errorf("insert session: %w", err)
	}
	return session, nil
}

func (r *sessionRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Session, error) {
	return r.get(ctx, id, false)
}

func (r *sessionRepositoryImpl) get(ctx context.Context, id string, forUpdate bool) (attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, month, year, entries, classifications, created_at, updated_at, expires_at
		FROM hours_sessions
		WHERE id = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var (
		session         attendance.Session
		entries         []byte
		classifications []byte
	)
	err := q.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.Month.Month,
		&session.Month.Year,
		&entries,
		&classifications,
		&session.CreatedAt,
		&session.UpdatedAt,
		&session.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Session{}, attendance.ErrSessionNotFound
		}
		return attendance.Session{}, fmt.Errorf("select session: %w", err)
	}

	if err := json.Unmarshal(entries, &session.Entries); err != nil {
		return attendance.Session{}, fmt.Errorf("decode entries: %w", err)
	}
	byKey := make(map[string]attendance.Classification)
	if err := json.Unmarshal(classifications, &byKey); err != nil {
		return attendance.Session{}, fmt.Errorf("decode classifications: %w", err)
	}
	session.Classifications = attendance.ClassificationsFromKeys(byKey)

	return session, nil
}

func (r *sessionRepositoryImpl) SetClassification(ctx context.Context, id string, date calendar.Date, classification attendance.Classification) (attendance.Session, error) {
	var updated attendance.Session

	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		session, err := r.get(ctx, id, true)
		if err != nil {
			return err
		}

		if session.Classifications == nil {
			session.Classifications = make(map[calendar.Date]attendance.Classification)
		}
		session.Classifications[date] = classification
		session.UpdatedAt = time.Now().UTC()

		classifications, err := json.Marshal(attendance.ClassificationsByKey(session.Classifications))
		if err != nil {
			return fmt.Errorf("encode classifications: %w", err)
		}

		q := GetQuerier(ctx, r.db)
		query := `
			UPDATE hours_sessions
			SET classifications = $2, updated_at = $3
			WHERE id = $1
		`
		if _, err := q.Exec(ctx, query, id, classifications, session.UpdatedAt); err != nil {
			return fmt.Errorf("update classifications: %w", err)
		}

		updated = session
		return nil
	})
	if err != nil {
		return attendance.Session{}, err
	}
	return updated, nil
}

func (r *sessionRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM hours_sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *sessionRepositoryImpl) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM hours_sessions WHERE expires_at <= $1`, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
