package leave

import (
	"context"
	"time"
)

type LeaveRequestRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveFilter) ([]LeaveRequest, int64, error)
	Update(ctx context.Context, req LeaveRequest) (LeaveRequest, error)

	// UpdateStatus sets statut, commentaire and the processing stamp.
	UpdateStatus(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	Delete(ctx context.Context, id string) error

	// HasOverlap reports whether a pending or approved request of the employee
	// intersects [from, to], ignoring excludeID.
	HasOverlap(ctx context.Context, employeID string, from, to time.Time, excludeID string) (bool, error)
}
