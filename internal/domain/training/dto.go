package training

import (
	"time"

	"github.com/Traore-oss/SGRH-sub001/internal/pkg/validator"
)

type ParticipantResponse struct {
	EmployeID string `json:"employeId"`
	Nom       string `json:"nom"`
	Prenom    string `json:"prenom"`
	Matricule string `json:"matricule"`
	InscritLe string `json:"inscritLe"`
}

type SessionResponse struct {
	ID              string                `json:"id"`
	Titre           string                `json:"titre"`
	Description     string                `json:"description"`
	Formateur       string                `json:"formateur"`
	Lieu            string                `json:"lieu"`
	DateDebut       string                `json:"dateDebut"`
	DateFin         string                `json:"dateFin"`
	Capacite        int                   `json:"capacite"`
	PlacesRestantes *int                  `json:"placesRestantes"`
	Participants    []ParticipantResponse `json:"participants"`
	CreatedAt       string                `json:"createdAt"`
	UpdatedAt       string                `json:"updatedAt"`
}

func ToResponse(s Session) SessionResponse {
	resp := SessionResponse{
		ID:           s.ID,
		Titre:        s.Titre,
		Description:  s.Description,
		Formateur:    s.Formateur,
		Lieu:         s.Lieu,
		DateDebut:    s.DateDebut.Format("2006-01-02"),
		DateFin:      s.DateFin.Format("2006-01-02"),
		Capacite:     s.Capacite,
		Participants: make([]ParticipantResponse, 0, len(s.Participants)),
		CreatedAt:    s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    s.UpdatedAt.Format(time.RFC3339),
	}
	if s.Capacite > 0 {
		left := s.Capacite - len(s.Participants)
		if left < 0 {
			left = 0
		}
		resp.PlacesRestantes = &left
	}
	for _, p := range s.Participants {
		resp.Participants = append(resp.Participants, ParticipantResponse{
			EmployeID: p.EmployeID,
			Nom:       p.Nom,
			Prenom:    p.Prenom,
			Matricule: p.Matricule,
			InscritLe: p.InscritLe.Format(time.RFC3339),
		})
	}
	return resp
}

type ListSessionResponse struct {
	TotalCount int64             `json:"totalCount"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"totalPages"`
	Sessions   []SessionResponse `json:"formations"`
}

type CreateSessionRequest struct {
	Titre       string `json:"titre"`
	Description string `json:"description"`
	Formateur   string `json:"formateur"`
	Lieu        string `json:"lieu"`
	DateDebut   string `json:"dateDebut"`
	DateFin     string `json:"dateFin"`
	Capacite    int    `json:"capacite"`
}

func (r *CreateSessionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Titre) {
		errs = append(errs, validator.ValidationError{Field: "titre", Message: "le titre est obligatoire"})
	} else if len(r.Titre) > 200 {
		errs = append(errs, validator.ValidationError{Field: "titre", Message: "le titre ne doit pas dépasser 200 caractères"})
	}
	start, okStart := validator.IsValidDate(r.DateDebut)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "dateDebut", Message: "date de début invalide (AAAA-MM-JJ)"})
	}
	end, okEnd := validator.IsValidDate(r.DateFin)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "dateFin", Message: "date de fin invalide (AAAA-MM-JJ)"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "dateFin", Message: "la date de fin doit être postérieure ou égale à la date de début"})
	}
	if r.Capacite < 0 {
		errs = append(errs, validator.ValidationError{Field: "capacite", Message: "la capacité ne peut pas être négative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateSessionRequest struct {
	ID          string  `json:"-"`
	Titre       *string `json:"titre,omitempty"`
	Description *string `json:"description,omitempty"`
	Formateur   *string `json:"formateur,omitempty"`
	Lieu        *string `json:"lieu,omitempty"`
	DateDebut   *string `json:"dateDebut,omitempty"`
	DateFin     *string `json:"dateFin,omitempty"`
	Capacite    *int    `json:"capacite,omitempty"`
}

func (r *UpdateSessionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "identifiant invalide"})
	}
	if r.Titre != nil && validator.IsEmpty(*r.Titre) {
		errs = append(errs, validator.ValidationError{Field: "titre", Message: "le titre ne peut pas être vide"})
	}
	if r.DateDebut != nil {
		if _, ok := validator.IsValidDate(*r.DateDebut); !ok {
			errs = append(errs, validator.ValidationError{Field: "dateDebut", Message: "date de début invalide (AAAA-MM-JJ)"})
		}
	}
	if r.DateFin != nil {
		if _, ok := validator.IsValidDate(*r.DateFin); !ok {
			errs = append(errs, validator.ValidationError{Field: "dateFin", Message: "date de fin invalide (AAAA-MM-JJ)"})
		}
	}
	if r.Capacite != nil && *r.Capacite < 0 {
		errs = append(errs, validator.ValidationError{Field: "capacite", Message: "la capacité ne peut pas être négative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SessionFilter struct {
	// Upcoming keeps sessions ending today or later.
	Upcoming bool
	Search   *string
	Page     int
	Limit    int
}

func (f *SessionFilter) Validate() error {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
	return nil
}
