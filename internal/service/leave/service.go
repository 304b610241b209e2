package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/attendance"
	"github.com/Traore-oss/SGRH-sub001/internal/domain/auth"
	"github.com/Traore-oss/SGRH-sub001/internal/domain/leave"
	"github.com/Traore-oss/SGRH-sub001/internal/domain/user"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/database"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/jwt"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/metrics"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/sanitize"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	tx database.Transactor
	leave.LeaveRequestRepository
	attendance.AttendanceRepository
	user.UserRepository
	metrics metrics.Recorder
	now     func() time.Time
}

func NewLeaveService(
	tx database.Transactor,
	leaveRequestRepository leave.LeaveRequestRepository,
	attendanceRepository attendance.AttendanceRepository,
	userRepository user.UserRepository,
	recorder metrics.Recorder,
) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:                     tx,
		LeaveRequestRepository: leaveRequestRepository,
		AttendanceRepository:   attendanceRepository,
		UserRepository:         userRepository,
		metrics:                recorder,
		now:                    time.Now,
	}
}

func toList(requests []leave.LeaveRequest, total int64, filter leave.LeaveFilter) leave.ListLeaveResponse {
	responses := make([]leave.LeaveResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.ToResponse(r))
	}
	return leave.ListLeaveResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Requests:   responses,
	}
}

// CreateRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateRequest(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, auth.ErrUnauthenticated
	}

	employeID := principal.UserID
	if req.EmployeID != nil && *req.EmployeID != principal.UserID {
		if !principal.Can(user.PermissionLeaveManage) {
			return leave.LeaveResponse{}, leave.ErrNotOwner
		}
		employeID = *req.EmployeID
	}

	if _, err := s.UserRepository.GetByID(ctx, employeID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return leave.LeaveResponse{}, leave.ErrEmployeeNotFound
		}
		return leave.LeaveResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	start, _ := validator.IsValidDate(req.DateDebut)
	end, _ := validator.IsValidDate(req.DateFin)
	days, err := leave.CountDays(start, end)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	var created leave.LeaveRequest
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		overlap, err := s.LeaveRequestRepository.HasOverlap(txCtx, employeID, start, end, "")
		if err != nil {
			return err
		}
		if overlap {
			return leave.ErrOverlappingRequest
		}

		created, err = s.LeaveRequestRepository.Create(txCtx, leave.LeaveRequest{
			EmployeID:   employeID,
			TypeConge:   req.TypeConge,
			DateDebut:   start,
			DateFin:     end,
			NombreJours: days,
			Motif:       sanitize.Text(req.Motif),
			Statut:      leave.StatusPending,
		})
		return err
	})
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return leave.ToResponse(created), nil
}

// ListRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) ListRequests(ctx context.Context, filter leave.LeaveFilter) (leave.ListLeaveResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveResponse{}, err
	}

	requests, total, err := s.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return toList(requests, total, filter), nil
}

// MyRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) MyRequests(ctx context.Context, filter leave.LeaveFilter) (leave.ListLeaveResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return leave.ListLeaveResponse{}, auth.ErrUnauthenticated
	}
	filter.EmployeID = &principal.UserID
	return s.ListRequests(ctx, filter)
}

// GetRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) GetRequest(ctx context.Context, id string) (leave.LeaveResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, auth.ErrUnauthenticated
	}
	if !validator.IsValidUUID(id) {
		return leave.LeaveResponse{}, leave.ErrLeaveRequestNotFound
	}

	request, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	if request.EmployeID != principal.UserID && !principal.Can(user.PermissionLeaveViewAll) {
		return leave.LeaveResponse{}, leave.ErrNotOwner
	}
	return leave.ToResponse(request), nil
}

// UpdateRequest implements leave.LeaveService. Only the owner edits, and only
// while the request is pending.
func (s *LeaveServiceImpl) UpdateRequest(ctx context.Context, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, auth.ErrUnauthenticated
	}

	var updated leave.LeaveRequest
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.LeaveRequestRepository.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}
		if existing.EmployeID != principal.UserID {
			return leave.ErrNotOwner
		}
		if !existing.IsPending() {
			return leave.ErrLeaveRequestAlreadyProcessed
		}

		if req.TypeConge != nil {
			existing.TypeConge = *req.TypeConge
		}
		if req.DateDebut != nil {
			existing.DateDebut, _ = validator.IsValidDate(*req.DateDebut)
		}
		if req.DateFin != nil {
			existing.DateFin, _ = validator.IsValidDate(*req.DateFin)
		}
		if req.Motif != nil {
			existing.Motif = sanitize.Text(*req.Motif)
		}

		existing.NombreJours, err = leave.CountDays(existing.DateDebut, existing.DateFin)
		if err != nil {
			return err
		}

		overlap, err := s.LeaveRequestRepository.HasOverlap(txCtx, existing.EmployeID, existing.DateDebut, existing.DateFin, existing.ID)
		if err != nil {
			return err
		}
		if overlap {
			return leave.ErrOverlappingRequest
		}

		updated, err = s.LeaveRequestRepository.Update(txCtx, existing)
		return err
	})
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	return leave.ToResponse(updated), nil
}

// decide moves a pending request to statut. apply runs in the same transaction.
func (s *LeaveServiceImpl) decide(ctx context.Context, req leave.DecisionRequest, statut leave.Status, apply func(ctx context.Context, l leave.LeaveRequest) error) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, auth.ErrUnauthenticated
	}

	var decided leave.LeaveRequest
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.LeaveRequestRepository.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}
		if existing.EmployeID == principal.UserID {
			return user.ErrInsufficientPermissions
		}
		if !existing.IsPending() {
			return leave.ErrLeaveRequestAlreadyProcessed
		}

		now := s.now()
		existing.Statut = statut
		existing.Commentaire = sanitize.Text(req.Commentaire)
		existing.TraitePar = &principal.UserID
		existing.TraiteLe = &now

		decided, err = s.LeaveRequestRepository.UpdateStatus(txCtx, existing)
		if err != nil {
			return err
		}
		if apply != nil {
			return apply(txCtx, decided)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to process leave request: %w", err)
	}

	s.metrics.RecordLeaveDecision(string(statut))
	slog.Info("leave request processed", "leave_id", decided.ID, "statut", statut, "by", principal.UserID)
	return leave.ToResponse(decided), nil
}

// markLeaveDays flags every day of the request as Congé in attendance.
func (s *LeaveServiceImpl) markLeaveDays(ctx context.Context, l leave.LeaveRequest) error {
	for _, day := range l.Days() {
		record, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, l.EmployeID, day)
		if err != nil {
			if !errors.Is(err, attendance.ErrAttendanceNotFound) {
				return err
			}
			record = attendance.NewRecord(l.EmployeID, day)
		}
		record.MarkLeave()
		if _, err := s.AttendanceRepository.Upsert(ctx, record); err != nil {
			return fmt.Errorf("failed to mark %s as leave: %w", day.Format("2006-01-02"), err)
		}
	}
	return nil
}

// ApproveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) ApproveRequest(ctx context.Context, req leave.DecisionRequest) (leave.LeaveResponse, error) {
	return s.decide(ctx, req, leave.StatusApproved, s.markLeaveDays)
}

// RejectRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) RejectRequest(ctx context.Context, req leave.DecisionRequest) (leave.LeaveResponse, error) {
	return s.decide(ctx, req, leave.StatusRefused, nil)
}

// DeleteRequest implements leave.LeaveService. Owners cancel pending
// requests; Admin and RH may remove any request.
func (s *LeaveServiceImpl) DeleteRequest(ctx context.Context, id string) error {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return auth.ErrUnauthenticated
	}
	if !validator.IsValidUUID(id) {
		return leave.ErrLeaveRequestNotFound
	}

	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.LeaveRequestRepository.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if !principal.Can(user.PermissionLeaveManage) {
			if existing.EmployeID != principal.UserID {
				return leave.ErrNotOwner
			}
			if !existing.IsPending() {
				return leave.ErrLeaveRequestAlreadyProcessed
			}
		}
		return s.LeaveRequestRepository.Delete(txCtx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete leave request: %w", err)
	}
	return nil
}
