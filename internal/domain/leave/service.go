package leave

import (
	"context"
)

type LeaveService interface {
	CreateRequest(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	ListRequests(ctx context.Context, filter LeaveFilter) (ListLeaveResponse, error)
	MyRequests(ctx context.Context, filter LeaveFilter) (ListLeaveResponse, error)
	GetRequest(ctx context.Context, id string) (LeaveResponse, error)
	UpdateRequest(ctx context.Context, req UpdateLeaveRequest) (LeaveResponse, error)

	// ApproveRequest also marks every covered day as Congé in attendance.
	ApproveRequest(ctx context.Context, req DecisionRequest) (LeaveResponse, error)
	RejectRequest(ctx context.Context, req DecisionRequest) (LeaveResponse, error)
	DeleteRequest(ctx context.Context, id string) error
}
