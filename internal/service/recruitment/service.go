package recruitment

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/attendance"
	"github.com/Traore-oss/SGRH-sub001/internal/domain/recruitment"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/database"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/metrics"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/sanitize"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/validator"
	"github.com/Traore-oss/SGRH-sub001/internal/service/file"
)

type RecruitmentServiceImpl struct {
	tx database.Transactor
	recruitment.OfferRepository
	file.FileService
	metrics metrics.Recorder
	loc     *time.Location
	now     func() time.Time
}

func NewRecruitmentService(
	tx database.Transactor,
	offerRepository recruitment.OfferRepository,
	fileService file.FileService,
	recorder metrics.Recorder,
	loc *time.Location,
) recruitment.RecruitmentService {
	if loc == nil {
		loc = time.UTC
	}
	return &RecruitmentServiceImpl{
		tx:              tx,
		OfferRepository: offerRepository,
		FileService:     fileService,
		metrics:         recorder,
		loc:             loc,
		now:             time.Now,
	}
}

func (s *RecruitmentServiceImpl) today() time.Time {
	return attendance.DateOf(s.now(), s.loc)
}

func (s *RecruitmentServiceImpl) toResponse(o recruitment.Offer) recruitment.OfferResponse {
	return recruitment.ToResponse(o, s.FileService.FileURL)
}

// ListPublicOffers implements recruitment.RecruitmentService.
func (s *RecruitmentServiceImpl) ListPublicOffers(ctx context.Context) ([]recruitment.PublicOfferResponse, error) {
	open := string(recruitment.OfferOpen)
	filter := recruitment.OfferFilter{Statut: &open, OpenOnly: true, Page: 1}

	offers, _, err := s.OfferRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}

	responses := make([]recruitment.PublicOfferResponse, 0, len(offers))
	for _, o := range offers {
		responses = append(responses, recruitment.ToPublicResponse(o))
	}
	return responses, nil
}

// Apply implements recruitment.RecruitmentService. The CV is stored before
// the candidate row and removed again when the insert fails.
func (s *RecruitmentServiceImpl) Apply(ctx context.Context, req recruitment.ApplyRequest) (recruitment.CandidateResponse, error) {
	if err := req.Validate(); err != nil {
		return recruitment.CandidateResponse{}, err
	}

	offer, err := s.OfferRepository.GetByID(ctx, req.OffreID)
	if err != nil {
		return recruitment.CandidateResponse{}, fmt.Errorf("failed to get offer: %w", err)
	}
	if !offer.AcceptsApplications(s.today()) {
		return recruitment.CandidateResponse{}, recruitment.ErrOfferClosed
	}

	applied, err := s.OfferRepository.HasApplied(ctx, offer.ID, req.Email)
	if err != nil {
		return recruitment.CandidateResponse{}, fmt.Errorf("failed to check previous applications: %w", err)
	}
	if applied {
		return recruitment.CandidateResponse{}, recruitment.ErrAlreadyApplied
	}

	key, err := s.FileService.UploadCV(ctx, offer.ID, req.CV, req.CVFilename)
	if err != nil {
		return recruitment.CandidateResponse{}, err
	}

	candidate, err := s.OfferRepository.AddCandidate(ctx, recruitment.Candidate{
		OffreID:   offer.ID,
		Nom:       sanitize.Text(req.Nom),
		Prenom:    sanitize.Text(req.Prenom),
		Email:     req.Email,
		Telephone: sanitize.Text(req.Telephone),
		Lettre:    sanitize.Text(req.Lettre),
		CV:        key,
		Statut:    recruitment.CandidateReceived,
	})
	if err != nil {
		if delErr := s.FileService.DeleteFile(ctx, key); delErr != nil {
			slog.Warn("failed to remove orphan cv", "key", key, "error", delErr)
		}
		return recruitment.CandidateResponse{}, fmt.Errorf("failed to save application: %w", err)
	}

	s.metrics.RecordApplication()
	slog.Info("application received", "offre_id", offer.ID, "candidat_id", candidate.ID)
	return recruitment.ToCandidateResponse(candidate, s.FileService.FileURL(candidate.CV)), nil
}

// CreateOffer implements recruitment.RecruitmentService.
func (s *RecruitmentServiceImpl) CreateOffer(ctx context.Context, req recruitment.CreateOfferRequest) (recruitment.OfferResponse, error) {
	if err := req.Validate(); err != nil {
		return recruitment.OfferResponse{}, err
	}

	offer := recruitment.Offer{
		Titre:         sanitize.Text(req.Titre),
		Description:   sanitize.Text(req.Description),
		DepartementID: req.DepartementID,
		TypeContrat:   req.TypeContrat,
		Lieu:          sanitize.Text(req.Lieu),
		Statut:        recruitment.OfferOpen,
	}
	if req.DateLimite != nil {
		d, _ := validator.IsValidDate(*req.DateLimite)
		offer.DateLimite = &d
	}

	created, err := s.OfferRepository.Create(ctx, offer)
	if err != nil {
		return recruitment.OfferResponse{}, fmt.Errorf("failed to create offer: %w", err)
	}
	return s.toResponse(created), nil
}

// ListOffers implements recruitment.RecruitmentService.
func (s *RecruitmentServiceImpl) ListOffers(ctx context.Context, filter recruitment.OfferFilter) (recruitment.ListOfferResponse, error) {
	if err := filter.Validate(); err != nil {
		return recruitment.ListOfferResponse{}, err
	}

	offers, total, err := s.OfferRepository.List(ctx, filter)
	if err != nil {
		return recruitment.ListOfferResponse{}, fmt.Errorf("failed to list offers: %w", err)
	}

	responses := make([]recruitment.OfferResponse, 0, len(offers))
	for _, o := range offers {
		responses = append(responses, s.toResponse(o))
	}
	return recruitment.ListOfferResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Offers:     responses,
	}, nil
}

// GetOffer implements recruitment.RecruitmentService.
func (s *RecruitmentServiceImpl) GetOffer(ctx context.Context, id string) (recruitment.OfferResponse, error) {
	if !validator.IsValidUUID(id) {
		return recruitment.OfferResponse{}, recruitment.ErrOfferNotFound
	}
	offer, err := s.OfferRepository.GetByID(ctx, id)
	if err != nil {
		return recruitment.OfferResponse{}, fmt.Errorf("failed to get offer: %w", err)
	}
	return s.toResponse(offer), nil
}

// UpdateOffer implements recruitment.RecruitmentService. An empty
// departementId or dateLimite clears the field.
func (s *RecruitmentServiceImpl) UpdateOffer(ctx context.Context, req recruitment.UpdateOfferRequest) (recruitment.OfferResponse, error) {
	if err := req.Validate(); err != nil {
		return recruitment.OfferResponse{}, err
	}

	var updated recruitment.Offer
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.OfferRepository.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		if req.Titre != nil {
			existing.Titre = sanitize.Text(*req.Titre)
		}
		if req.Description != nil {
			existing.Description = sanitize.Text(*req.Description)
		}
		if req.DepartementID != nil {
			existing.DepartementID = req.DepartementID
			if *req.DepartementID == "" {
				existing.DepartementID = nil
			}
		}
		if req.TypeContrat != nil {
			existing.TypeContrat = *req.TypeContrat
		}
		if req.Lieu != nil {
			existing.Lieu = sanitize.Text(*req.Lieu)
		}
		if req.DateLimite != nil {
			existing.DateLimite = nil
			if *req.DateLimite != "" {
				d, _ := validator.IsValidDate(*req.DateLimite)
				existing.DateLimite = &d
			}
		}
		if req.Statut != nil {
			existing.Statut = recruitment.OfferStatus(*req.Statut)
		}

		updated, err = s.OfferRepository.Update(txCtx, existing)
		return err
	})
	if err != nil {
		return recruitment.OfferResponse{}, fmt.Errorf("failed to update offer: %w", err)
	}
	return s.toResponse(updated), nil
}

// removeFiles deletes stored CVs; failures are logged only.
func (s *RecruitmentServiceImpl) removeFiles(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.FileService.DeleteFile(ctx, key); err != nil {
			slog.Warn("failed to delete cv", "key", key, "error", err)
		}
	}
}

// DeleteOffer implements recruitment.RecruitmentService.
func (s *RecruitmentServiceImpl) DeleteOffer(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return recruitment.ErrOfferNotFound
	}

	keys, err := s.OfferRepository.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete offer: %w", err)
	}
	s.removeFiles(ctx, keys...)
	return nil
}

// UpdateCandidateStatus implements recruitment.RecruitmentService.
func (s *RecruitmentServiceImpl) UpdateCandidateStatus(ctx context.Context, req recruitment.UpdateCandidateRequest) (recruitment.CandidateResponse, error) {
	if err := req.Validate(); err != nil {
		return recruitment.CandidateResponse{}, err
	}

	candidate, err := s.OfferRepository.UpdateCandidateStatus(ctx, req.OffreID, req.CandidatID, recruitment.CandidateStatus(req.Statut))
	if err != nil {
		return recruitment.CandidateResponse{}, fmt.Errorf("failed to update candidate: %w", err)
	}
	return recruitment.ToCandidateResponse(candidate, s.FileService.FileURL(candidate.CV)), nil
}

// DeleteCandidate implements recruitment.RecruitmentService.
func (s *RecruitmentServiceImpl) DeleteCandidate(ctx context.Context, offreID, candidatID string) error {
	if !validator.IsValidUUID(offreID) || !validator.IsValidUUID(candidatID) {
		return recruitment.ErrCandidateNotFound
	}

	var cv string
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		candidate, err := s.OfferRepository.GetCandidate(txCtx, offreID, candidatID)
		if err != nil {
			return err
		}
		cv = candidate.CV
		return s.OfferRepository.DeleteCandidate(txCtx, offreID, candidatID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}
	s.removeFiles(ctx, cv)
	return nil
}
