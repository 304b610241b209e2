package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/performance"
	"github.com/Traore-oss/SGRH-sub001/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PerformanceHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Mine(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type performanceHandlerImpl struct {
	performanceService performance.PerformanceService
}

func NewPerformanceHandler(performanceService performance.PerformanceService) PerformanceHandler {
	return &performanceHandlerImpl{performanceService: performanceService}
}

func evaluationFilter(r *http.Request) performance.EvaluationFilter {
	filter := performance.EvaluationFilter{
		EmployeID: optionalQuery(r, "employeId"),
		Periode:   optionalQuery(r, "periode"),
	}
	filter.Page, filter.Limit = pagination(r)
	return filter
}

// Create implements PerformanceHandler.
func (h *performanceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req performance.CreateEvaluationRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateEvaluation decode error", "error", err)
		response.BadRequest(w, "Format de requête invalide", nil)
		return
	}

	created, err := h.performanceService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Évaluation enregistrée", created)
}

// List implements PerformanceHandler.
func (h *performanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.performanceService.List(r.Context(), evaluationFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, list)
}

// Mine implements PerformanceHandler.
func (h *performanceHandlerImpl) Mine(w http.ResponseWriter, r *http.Request) {
	list, err := h.performanceService.Mine(r.Context(), evaluationFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, list)
}

// Get implements PerformanceHandler.
func (h *performanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	evaluation, err := h.performanceService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, evaluation)
}

// Update implements PerformanceHandler.
func (h *performanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req performance.UpdateEvaluationRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateEvaluation decode error", "error", err)
		response.BadRequest(w, "Format de requête invalide", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.performanceService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Évaluation mise à jour", updated)
}

// Delete implements PerformanceHandler.
func (h *performanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.performanceService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Évaluation supprimée", nil)
}
