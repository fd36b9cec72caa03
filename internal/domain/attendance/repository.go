package attendance

import (
	"context"
	"time"

	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/calendar"
)

// SessionRepository stores the per-user working sets. Sessions are never
// durable beyond their expiry.
type SessionRepository interface {
	// Create stores a new session
	Create(ctx context.Context, session Session) (Session, error)

	// GetByID returns ErrSessionNotFound for unknown ids
	GetByID(ctx context.Context, id string) (Session, error)

	// SetClassification stores an override and returns the updated session
	SetClassification(ctx context.Context, id string, date calendar.Date, classification Classification) (Session, error)

	// Delete removes a session; deleting an unknown id is not an error
	Delete(ctx context.Context, id string) error

	// DeleteExpired removes sessions whose expiry is at or before now
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
