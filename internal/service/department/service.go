package department

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/department"
	"github.com/Traore-oss/SGRH-sub001/internal/domain/user"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/database"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/sanitize"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/validator"
)

type DepartmentServiceImpl struct {
	tx database.Transactor
	department.DepartmentRepository
	user.UserRepository
}

func NewDepartmentService(tx database.Transactor, departmentRepository department.DepartmentRepository, userRepository user.UserRepository) department.DepartmentService {
	return &DepartmentServiceImpl{
		tx:                   tx,
		DepartmentRepository: departmentRepository,
		UserRepository:       userRepository,
	}
}

// Create implements department.DepartmentService.
func (s *DepartmentServiceImpl) Create(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	created, err := s.DepartmentRepository.Create(ctx, department.Department{
		Nom:           strings.TrimSpace(req.Nom),
		Code:          req.Code,
		Description:   sanitize.Text(req.Description),
		ResponsableID: req.ResponsableID,
	})
	if err != nil {
		return department.DepartmentResponse{}, fmt.Errorf("failed to create department: %w", err)
	}

	slog.Info("department created", "department_id", created.ID, "code", created.Code)
	return department.ToResponse(created), nil
}

// Get implements department.DepartmentService.
func (s *DepartmentServiceImpl) Get(ctx context.Context, id string) (department.DepartmentResponse, error) {
	if !validator.IsValidUUID(id) {
		return department.DepartmentResponse{}, department.ErrDepartmentNotFound
	}
	d, err := s.DepartmentRepository.GetByID(ctx, id)
	if err != nil {
		return department.DepartmentResponse{}, fmt.Errorf("failed to get department: %w", err)
	}
	return department.ToResponse(d), nil
}

// List implements department.DepartmentService.
func (s *DepartmentServiceImpl) List(ctx context.Context) ([]department.DepartmentResponse, error) {
	departments, err := s.DepartmentRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	responses := make([]department.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		responses = append(responses, department.ToResponse(d))
	}
	return responses, nil
}

// Update implements department.DepartmentService.
func (s *DepartmentServiceImpl) Update(ctx context.Context, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	var updated department.Department
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.DepartmentRepository.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		if req.Nom != nil {
			existing.Nom = strings.TrimSpace(*req.Nom)
		}
		if req.Code != nil {
			existing.Code = *req.Code
		}
		if req.Description != nil {
			existing.Description = sanitize.Text(*req.Description)
		}
		if req.ResponsableID != nil {
			if *req.ResponsableID == "" {
				existing.ResponsableID = nil
			} else {
				existing.ResponsableID = req.ResponsableID
			}
		}

		updated, err = s.DepartmentRepository.Update(txCtx, existing)
		return err
	})
	if err != nil {
		return department.DepartmentResponse{}, fmt.Errorf("failed to update department: %w", err)
	}

	return department.ToResponse(updated), nil
}

// Delete implements department.DepartmentService. Departments with attached
// employees are kept.
func (s *DepartmentServiceImpl) Delete(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return department.ErrDepartmentNotFound
	}

	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		count, err := s.DepartmentRepository.CountEmployees(txCtx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return department.ErrDepartmentHasEmployee
		}
		return s.DepartmentRepository.Delete(txCtx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete department: %w", err)
	}
	return nil
}

// ListEmployees implements department.DepartmentService.
func (s *DepartmentServiceImpl) ListEmployees(ctx context.Context, id string) ([]user.UserResponse, error) {
	if !validator.IsValidUUID(id) {
		return nil, department.ErrDepartmentNotFound
	}
	if _, err := s.DepartmentRepository.GetByID(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to get department: %w", err)
	}

	users, _, err := s.UserRepository.List(ctx, user.UserFilter{DepartementID: &id})
	if err != nil {
		return nil, fmt.Errorf("failed to list department employees: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.ToResponse(u))
	}
	return responses, nil
}
