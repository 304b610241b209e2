package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/training"
	"github.com/Traore-oss/SGRH-sub001/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type TrainingHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	Enroll(w http.ResponseWriter, r *http.Request)
	Unenroll(w http.ResponseWriter, r *http.Request)
	AddParticipant(w http.ResponseWriter, r *http.Request)
	RemoveParticipant(w http.ResponseWriter, r *http.Request)
}

type trainingHandlerImpl struct {
	trainingService training.TrainingService
}

func NewTrainingHandler(trainingService training.TrainingService) TrainingHandler {
	return &trainingHandlerImpl{trainingService: trainingService}
}

// Create implements TrainingHandler.
func (h *trainingHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req training.CreateSessionRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateSession decode error", "error", err)
		response.BadRequest(w, "Format de requête invalide", nil)
		return
	}

	created, err := h.trainingService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Formation créée", created)
}

// List implements TrainingHandler. ?aVenir=true keeps sessions that have
// not ended yet.
func (h *trainingHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := training.SessionFilter{Search: optionalQuery(r, "search")}
	if upcoming := optionalBoolQuery(r, "aVenir"); upcoming != nil {
		filter.Upcoming = *upcoming
	}
	filter.Page, filter.Limit = pagination(r)

	list, err := h.trainingService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, list)
}

// Get implements TrainingHandler.
func (h *trainingHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.trainingService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, session)
}

// Update implements TrainingHandler.
func (h *trainingHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req training.UpdateSessionRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateSession decode error", "error", err)
		response.BadRequest(w, "Format de requête invalide", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.trainingService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Formation mise à jour", updated)
}

// Delete implements TrainingHandler.
func (h *trainingHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.trainingService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Formation supprimée", nil)
}

// Enroll implements TrainingHandler.
func (h *trainingHandlerImpl) Enroll(w http.ResponseWriter, r *http.Request) {
	session, err := h.trainingService.Enroll(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Inscription enregistrée", session)
}

// Unenroll implements TrainingHandler.
func (h *trainingHandlerImpl) Unenroll(w http.ResponseWriter, r *http.Request) {
	session, err := h.trainingService.Unenroll(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Inscription annulée", session)
}

// AddParticipant implements TrainingHandler.
func (h *trainingHandlerImpl) AddParticipant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EmployeID string `json:"employeId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AddParticipant decode error", "error", err)
		response.BadRequest(w, "Format de requête invalide", nil)
		return
	}

	session, err := h.trainingService.AddParticipant(r.Context(), chi.URLParam(r, "id"), req.EmployeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Participant ajouté", session)
}

// RemoveParticipant implements TrainingHandler.
func (h *trainingHandlerImpl) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	session, err := h.trainingService.RemoveParticipant(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "employeId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Participant retiré", session)
}
