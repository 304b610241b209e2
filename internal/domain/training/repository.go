package training

import "context"

type SessionRepository interface {
	Create(ctx context.Context, s Session) (Session, error)

	// GetByID loads the session with its participants.
	GetByID(ctx context.Context, id string) (Session, error)
	List(ctx context.Context, filter SessionFilter) ([]Session, int64, error)
	Update(ctx context.Context, s Session) (Session, error)
	Delete(ctx context.Context, id string) error

	// AddParticipant enforces capacity under a row lock on the session.
	AddParticipant(ctx context.Context, sessionID, employeID string) error
	RemoveParticipant(ctx context.Context, sessionID, employeID string) error
}
