package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/recruitment"
	"github.com/Traore-oss/SGRH-sub001/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type RecruitmentHandler interface {
	ListPublicOffers(w http.ResponseWriter, r *http.Request)
	Apply(w http.ResponseWriter, r *http.Request)

	CreateOffer(w http.ResponseWriter, r *http.Request)
	ListOffers(w http.ResponseWriter, r *http.Request)
	GetOffer(w http.ResponseWriter, r *http.Request)
	UpdateOffer(w http.ResponseWriter, r *http.Request)
	DeleteOffer(w http.ResponseWriter, r *http.Request)

	UpdateCandidateStatus(w http.ResponseWriter, r *http.Request)
	DeleteCandidate(w http.ResponseWriter, r *http.Request)
}

type RecruitmentHandlerImpl struct {
	recruitmentService recruitment.RecruitmentService
}

// ListPublicOffers implements RecruitmentHandler.
func (h *RecruitmentHandlerImpl) ListPublicOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := h.recruitmentService.ListPublicOffers(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, offers)
}

// Apply implements RecruitmentHandler. The form carries the candidate
// fields and the CV under "cv".
func (h *RecruitmentHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Formulaire invalide", nil)
		return
	}

	req := recruitment.ApplyRequest{
		OffreID:   chi.URLParam(r, "id"),
		Nom:       r.FormValue("nom"),
		Prenom:    r.FormValue("prenom"),
		Email:     r.FormValue("email"),
		Telephone: r.FormValue("telephone"),
		Lettre:    r.FormValue("lettre"),
	}

	// a missing CV is reported by validation
	if file, header, err := r.FormFile("cv"); err == nil {
		defer file.Close()
		req.CV = file
		req.CVFilename = header.Filename
		req.CVSize = header.Size
	}

	candidate, err := h.recruitmentService.Apply(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Candidature envoyée", candidate)
}

// CreateOffer implements RecruitmentHandler.
func (h *RecruitmentHandlerImpl) CreateOffer(w http.ResponseWriter, r *http.Request) {
	var req recruitment.CreateOfferRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateOffer decode error", "error", err)
		response.BadRequest(w, "Format de requête invalide", nil)
		return
	}

	created, err := h.recruitmentService.CreateOffer(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Offre publiée", created)
}

// ListOffers implements RecruitmentHandler.
func (h *RecruitmentHandlerImpl) ListOffers(w http.ResponseWriter, r *http.Request) {
	filter := recruitment.OfferFilter{Statut: optionalQuery(r, "statut")}
	filter.Page, filter.Limit = pagination(r)

	list, err := h.recruitmentService.ListOffers(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, list)
}

// GetOffer implements RecruitmentHandler.
func (h *RecruitmentHandlerImpl) GetOffer(w http.ResponseWriter, r *http.Request) {
	offer, err := h.recruitmentService.GetOffer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, offer)
}

// UpdateOffer implements RecruitmentHandler.
func (h *RecruitmentHandlerImpl) UpdateOffer(w http.ResponseWriter, r *http.Request) {
	var req recruitment.UpdateOfferRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateOffer decode error", "error", err)
		response.BadRequest(w, "Format de requête invalide", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.recruitmentService.UpdateOffer(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Offre mise à jour", updated)
}

// DeleteOffer implements RecruitmentHandler.
func (h *RecruitmentHandlerImpl) DeleteOffer(w http.ResponseWriter, r *http.Request) {
	if err := h.recruitmentService.DeleteOffer(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Offre supprimée", nil)
}

// UpdateCandidateStatus implements RecruitmentHandler.
func (h *RecruitmentHandlerImpl) UpdateCandidateStatus(w http.ResponseWriter, r *http.Request) {
	var req recruitment.UpdateCandidateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateCandidateStatus decode error", "error", err)
		response.BadRequest(w, "Format de requête invalide", nil)
		return
	}
	req.OffreID = chi.URLParam(r, "id")
	req.CandidatID = chi.URLParam(r, "candidatId")

	candidate, err := h.recruitmentService.UpdateCandidateStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Statut du candidat mis à jour", candidate)
}

// DeleteCandidate implements RecruitmentHandler.
func (h *RecruitmentHandlerImpl) DeleteCandidate(w http.ResponseWriter, r *http.Request) {
	if err := h.recruitmentService.DeleteCandidate(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "candidatId")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Candidat supprimé", nil)
}

func NewRecruitmentHandler(recruitmentService recruitment.RecruitmentService) RecruitmentHandler {
	return &RecruitmentHandlerImpl{recruitmentService: recruitmentService}
}
