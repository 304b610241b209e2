package performance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/auth"
	"github.com/Traore-oss/SGRH-sub001/internal/domain/performance"
	"github.com/Traore-oss/SGRH-sub001/internal/domain/user"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/jwt"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/sanitize"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/validator"
)

type PerformanceServiceImpl struct {
	performance.EvaluationRepository
	user.UserRepository
	now func() time.Time
}

func NewPerformanceService(evaluationRepository performance.EvaluationRepository, userRepository user.UserRepository) performance.PerformanceService {
	return &PerformanceServiceImpl{
		EvaluationRepository: evaluationRepository,
		UserRepository:       userRepository,
		now:                  time.Now,
	}
}

func toList(evaluations []performance.Evaluation, total int64, filter performance.EvaluationFilter) performance.ListEvaluationResponse {
	responses := make([]performance.EvaluationResponse, 0, len(evaluations))
	for _, e := range evaluations {
		responses = append(responses, performance.ToResponse(e))
	}
	return performance.ListEvaluationResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  int(math.Ceil(float64(total) / float64(filter.Limit))),
		Evaluations: responses,
	}
}

// Create implements performance.PerformanceService. The caller is recorded
// as the evaluator.
func (s *PerformanceServiceImpl) Create(ctx context.Context, req performance.CreateEvaluationRequest) (performance.EvaluationResponse, error) {
	if err := req.Validate(); err != nil {
		return performance.EvaluationResponse{}, err
	}

	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return performance.EvaluationResponse{}, auth.ErrUnauthenticated
	}
	if req.EmployeID == principal.UserID {
		return performance.EvaluationResponse{}, performance.ErrSelfEvaluation
	}

	if _, err := s.UserRepository.GetByID(ctx, req.EmployeID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return performance.EvaluationResponse{}, performance.ErrEmployeeNotFound
		}
		return performance.EvaluationResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	date := time.Date(s.now().Year(), s.now().Month(), s.now().Day(), 0, 0, 0, 0, time.UTC)
	if req.DateEvaluation != nil {
		date, _ = validator.IsValidDate(*req.DateEvaluation)
	}

	created, err := s.EvaluationRepository.Create(ctx, performance.Evaluation{
		EmployeID:      req.EmployeID,
		EvaluateurID:   &principal.UserID,
		Periode:        sanitize.Text(req.Periode),
		Objectifs:      sanitize.Text(req.Objectifs),
		Note:           req.Note,
		Commentaire:    sanitize.Text(req.Commentaire),
		DateEvaluation: date,
	})
	if err != nil {
		return performance.EvaluationResponse{}, fmt.Errorf("failed to create evaluation: %w", err)
	}

	return performance.ToResponse(created), nil
}

// List implements performance.PerformanceService.
func (s *PerformanceServiceImpl) List(ctx context.Context, filter performance.EvaluationFilter) (performance.ListEvaluationResponse, error) {
	if err := filter.Validate(); err != nil {
		return performance.ListEvaluationResponse{}, err
	}

	evaluations, total, err := s.EvaluationRepository.List(ctx, filter)
	if err != nil {
		return performance.ListEvaluationResponse{}, fmt.Errorf("failed to list evaluations: %w", err)
	}
	return toList(evaluations, total, filter), nil
}

// Mine implements performance.PerformanceService.
func (s *PerformanceServiceImpl) Mine(ctx context.Context, filter performance.EvaluationFilter) (performance.ListEvaluationResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return performance.ListEvaluationResponse{}, auth.ErrUnauthenticated
	}
	filter.EmployeID = &principal.UserID
	return s.List(ctx, filter)
}

// Get implements performance.PerformanceService.
func (s *PerformanceServiceImpl) Get(ctx context.Context, id string) (performance.EvaluationResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return performance.EvaluationResponse{}, auth.ErrUnauthenticated
	}
	if !validator.IsValidUUID(id) {
		return performance.EvaluationResponse{}, performance.ErrEvaluationNotFound
	}

	e, err := s.EvaluationRepository.GetByID(ctx, id)
	if err != nil {
		return performance.EvaluationResponse{}, fmt.Errorf("failed to get evaluation: %w", err)
	}
	if e.EmployeID != principal.UserID && !principal.Can(user.PermissionPerformanceManage) {
		return performance.EvaluationResponse{}, user.ErrInsufficientPermissions
	}
	return performance.ToResponse(e), nil
}

// Update implements performance.PerformanceService.
func (s *PerformanceServiceImpl) Update(ctx context.Context, req performance.UpdateEvaluationRequest) (performance.EvaluationResponse, error) {
	if err := req.Validate(); err != nil {
		return performance.EvaluationResponse{}, err
	}

	existing, err := s.EvaluationRepository.GetByID(ctx, req.ID)
	if err != nil {
		return performance.EvaluationResponse{}, fmt.Errorf("failed to get evaluation: %w", err)
	}

	if req.Periode != nil {
		existing.Periode = sanitize.Text(*req.Periode)
	}
	if req.Objectifs != nil {
		existing.Objectifs = sanitize.Text(*req.Objectifs)
	}
	if req.Note != nil {
		existing.Note = *req.Note
	}
	if req.Commentaire != nil {
		existing.Commentaire = sanitize.Text(*req.Commentaire)
	}
	if req.DateEvaluation != nil {
		existing.DateEvaluation, _ = validator.IsValidDate(*req.DateEvaluation)
	}

	updated, err := s.EvaluationRepository.Update(ctx, existing)
	if err != nil {
		return performance.EvaluationResponse{}, fmt.Errorf("failed to update evaluation: %w", err)
	}
	return performance.ToResponse(updated), nil
}

// Delete implements performance.PerformanceService.
func (s *PerformanceServiceImpl) Delete(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return performance.ErrEvaluationNotFound
	}
	if err := s.EvaluationRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete evaluation: %w", err)
	}
	return nil
}
