package performance

import "context"

type PerformanceService interface {
	Create(ctx context.Context, req CreateEvaluationRequest) (EvaluationResponse, error)
	List(ctx context.Context, filter EvaluationFilter) (ListEvaluationResponse, error)
	Mine(ctx context.Context, filter EvaluationFilter) (ListEvaluationResponse, error)
	Get(ctx context.Context, id string) (EvaluationResponse, error)
	Update(ctx context.Context, req UpdateEvaluationRequest) (EvaluationResponse, error)
	Delete(ctx context.Context, id string) error
}
