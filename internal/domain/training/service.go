package training

import "context"

type TrainingService interface {
	Create(ctx context.Context, req CreateSessionRequest) (SessionResponse, error)
	List(ctx context.Context, filter SessionFilter) (ListSessionResponse, error)
	Get(ctx context.Context, id string) (SessionResponse, error)
	Update(ctx context.Context, req UpdateSessionRequest) (SessionResponse, error)
	Delete(ctx context.Context, id string) error

	// Enroll and Unenroll act on the caller.
	Enroll(ctx context.Context, sessionID string) (SessionResponse, error)
	Unenroll(ctx context.Context, sessionID string) (SessionResponse, error)

	AddParticipant(ctx context.Context, sessionID, employeID string) (SessionResponse, error)
	RemoveParticipant(ctx context.Context, sessionID, employeID string) (SessionResponse, error)
}
