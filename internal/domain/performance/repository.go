package performance

import "context"

type EvaluationRepository interface {
	Create(ctx context.Context, e Evaluation) (Evaluation, error)
	GetByID(ctx context.Context, id string) (Evaluation, error)
	List(ctx context.Context, filter EvaluationFilter) ([]Evaluation, int64, error)
	Update(ctx context.Context, e Evaluation) (Evaluation, error)
	Delete(ctx context.Context, id string) error
}
