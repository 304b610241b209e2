package payroll

import "context"

// PaymentRepository defines data access methods for payments.
type PaymentRepository interface {
	Create(ctx context.Context, p Payment) (Payment, error)
	GetByID(ctx context.Context, id string) (Payment, error)

	// List returns every match when filter.Limit is 0.
	List(ctx context.Context, filter PaymentFilter) ([]Payment, int64, error)
	Update(ctx context.Context, p Payment) (Payment, error)
	Delete(ctx context.Context, id string) error
}
