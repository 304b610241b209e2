package department

import (
	"context"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/user"
)

type DepartmentService interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	Get(ctx context.Context, id string) (DepartmentResponse, error)
	List(ctx context.Context) ([]DepartmentResponse, error)
	Update(ctx context.Context, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, id string) error
	ListEmployees(ctx context.Context, id string) ([]user.UserResponse, error)
}
