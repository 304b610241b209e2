package performance

import "errors"

var (
	ErrEvaluationNotFound = errors.New("evaluation not found")
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrSelfEvaluation     = errors.New("an evaluator cannot grade themself")
)
