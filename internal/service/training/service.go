package training

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/auth"
	"github.com/Traore-oss/SGRH-sub001/internal/domain/training"
	"github.com/Traore-oss/SGRH-sub001/internal/domain/user"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/database"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/jwt"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/sanitize"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/validator"
)

type TrainingServiceImpl struct {
	tx database.Transactor
	training.SessionRepository
	user.UserRepository
}

func NewTrainingService(tx database.Transactor, sessionRepository training.SessionRepository, userRepository user.UserRepository) training.TrainingService {
	return &TrainingServiceImpl{
		tx:                tx,
		SessionRepository: sessionRepository,
		UserRepository:    userRepository,
	}
}

// Create implements training.TrainingService.
func (s *TrainingServiceImpl) Create(ctx context.Context, req training.CreateSessionRequest) (training.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return training.SessionResponse{}, err
	}

	start, _ := validator.IsValidDate(req.DateDebut)
	end, _ := validator.IsValidDate(req.DateFin)

	created, err := s.SessionRepository.Create(ctx, training.Session{
		Titre:       sanitize.Text(req.Titre),
		Description: sanitize.Text(req.Description),
		Formateur:   sanitize.Text(req.Formateur),
		Lieu:        sanitize.Text(req.Lieu),
		DateDebut:   start,
		DateFin:     end,
		Capacite:    req.Capacite,
	})
	if err != nil {
		return training.SessionResponse{}, fmt.Errorf("failed to create training session: %w", err)
	}
	return training.ToResponse(created), nil
}

// List implements training.TrainingService.
func (s *TrainingServiceImpl) List(ctx context.Context, filter training.SessionFilter) (training.ListSessionResponse, error) {
	if err := filter.Validate(); err != nil {
		return training.ListSessionResponse{}, err
	}

	sessions, total, err := s.SessionRepository.List(ctx, filter)
	if err != nil {
		return training.ListSessionResponse{}, fmt.Errorf("failed to list training sessions: %w", err)
	}

	responses := make([]training.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		responses = append(responses, training.ToResponse(session))
	}
	return training.ListSessionResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Sessions:   responses,
	}, nil
}

// Get implements training.TrainingService.
func (s *TrainingServiceImpl) Get(ctx context.Context, id string) (training.SessionResponse, error) {
	if !validator.IsValidUUID(id) {
		return training.SessionResponse{}, training.ErrSessionNotFound
	}
	session, err := s.SessionRepository.GetByID(ctx, id)
	if err != nil {
		return training.SessionResponse{}, fmt.Errorf("failed to get training session: %w", err)
	}
	return training.ToResponse(session), nil
}

// Update implements training.TrainingService.
func (s *TrainingServiceImpl) Update(ctx context.Context, req training.UpdateSessionRequest) (training.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return training.SessionResponse{}, err
	}

	var updated training.Session
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.SessionRepository.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		if req.Titre != nil {
			existing.Titre = sanitize.Text(*req.Titre)
		}
		if req.Description != nil {
			existing.Description = sanitize.Text(*req.Description)
		}
		if req.Formateur != nil {
			existing.Formateur = sanitize.Text(*req.Formateur)
		}
		if req.Lieu != nil {
			existing.Lieu = sanitize.Text(*req.Lieu)
		}
		if req.DateDebut != nil {
			existing.DateDebut, _ = validator.IsValidDate(*req.DateDebut)
		}
		if req.DateFin != nil {
			existing.DateFin, _ = validator.IsValidDate(*req.DateFin)
		}
		if existing.DateFin.Before(existing.DateDebut) {
			return validator.ValidationErrors{{Field: "dateFin", Message: "la date de fin doit être postérieure ou égale à la date de début"}}
		}
		if req.Capacite != nil {
			if *req.Capacite > 0 && *req.Capacite < len(existing.Participants) {
				return training.ErrCapacityBelowCount
			}
			existing.Capacite = *req.Capacite
		}

		updated, err = s.SessionRepository.Update(txCtx, existing)
		return err
	})
	if err != nil {
		return training.SessionResponse{}, fmt.Errorf("failed to update training session: %w", err)
	}
	return training.ToResponse(updated), nil
}

// Delete implements training.TrainingService.
func (s *TrainingServiceImpl) Delete(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return training.ErrSessionNotFound
	}
	if err := s.SessionRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete training session: %w", err)
	}
	return nil
}

// addParticipant enrolls employeID and returns the refreshed session.
func (s *TrainingServiceImpl) addParticipant(ctx context.Context, sessionID, employeID string) (training.SessionResponse, error) {
	if !validator.IsValidUUID(sessionID) {
		return training.SessionResponse{}, training.ErrSessionNotFound
	}

	employee, err := s.UserRepository.GetByID(ctx, employeID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return training.SessionResponse{}, training.ErrEmployeeNotFound
		}
		return training.SessionResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !employee.Actif {
		return training.SessionResponse{}, training.ErrEmployeeInactive
	}

	var session training.Session
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.SessionRepository.AddParticipant(txCtx, sessionID, employeID); err != nil {
			return err
		}
		session, err = s.SessionRepository.GetByID(txCtx, sessionID)
		return err
	})
	if err != nil {
		return training.SessionResponse{}, fmt.Errorf("failed to enroll employee: %w", err)
	}

	slog.Info("employee enrolled", "formation_id", sessionID, "employe_id", employeID)
	return training.ToResponse(session), nil
}

func (s *TrainingServiceImpl) removeParticipant(ctx context.Context, sessionID, employeID string) (training.SessionResponse, error) {
	if !validator.IsValidUUID(sessionID) {
		return training.SessionResponse{}, training.ErrSessionNotFound
	}
	if !validator.IsValidUUID(employeID) {
		return training.SessionResponse{}, training.ErrNotEnrolled
	}

	var session training.Session
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.SessionRepository.GetByID(txCtx, sessionID); err != nil {
			return err
		}
		if err := s.SessionRepository.RemoveParticipant(txCtx, sessionID, employeID); err != nil {
			return err
		}
		var err error
		session, err = s.SessionRepository.GetByID(txCtx, sessionID)
		return err
	})
	if err != nil {
		return training.SessionResponse{}, fmt.Errorf("failed to unenroll employee: %w", err)
	}
	return training.ToResponse(session), nil
}

// Enroll implements training.TrainingService.
func (s *TrainingServiceImpl) Enroll(ctx context.Context, sessionID string) (training.SessionResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return training.SessionResponse{}, auth.ErrUnauthenticated
	}
	return s.addParticipant(ctx, sessionID, principal.UserID)
}

// Unenroll implements training.TrainingService.
func (s *TrainingServiceImpl) Unenroll(ctx context.Context, sessionID string) (training.SessionResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return training.SessionResponse{}, auth.ErrUnauthenticated
	}
	return s.removeParticipant(ctx, sessionID, principal.UserID)
}

// AddParticipant implements training.TrainingService.
func (s *TrainingServiceImpl) AddParticipant(ctx context.Context, sessionID, employeID string) (training.SessionResponse, error) {
	if !validator.IsValidUUID(employeID) {
		return training.SessionResponse{}, training.ErrEmployeeNotFound
	}
	return s.addParticipant(ctx, sessionID, employeID)
}

// RemoveParticipant implements training.TrainingService.
func (s *TrainingServiceImpl) RemoveParticipant(ctx context.Context, sessionID, employeID string) (training.SessionResponse, error) {
	return s.removeParticipant(ctx, sessionID, employeID)
}
