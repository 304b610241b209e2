package performance

import (
	"time"

	"github.com/Traore-oss/SGRH-sub001/internal/pkg/validator"
)

type EvaluationResponse struct {
	ID             string  `json:"id"`
	EmployeID      string  `json:"employeId"`
	EmployeNom     *string `json:"employeNom,omitempty"`
	EmployePrenom  *string `json:"employePrenom,omitempty"`
	EvaluateurID   *string `json:"evaluateurId"`
	EvaluateurNom  *string `json:"evaluateurNom,omitempty"`
	Periode        string  `json:"periode"`
	Objectifs      string  `json:"objectifs"`
	Note           float64 `json:"note"`
	Commentaire    string  `json:"commentaire"`
	DateEvaluation string  `json:"dateEvaluation"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

func ToResponse(e Evaluation) EvaluationResponse {
	return EvaluationResponse{
		ID:             e.ID,
		EmployeID:      e.EmployeID,
		EmployeNom:     e.EmployeNom,
		EmployePrenom:  e.EmployePrenom,
		EvaluateurID:   e.EvaluateurID,
		EvaluateurNom:  e.EvaluateurNom,
		Periode:        e.Periode,
		Objectifs:      e.Objectifs,
		Note:           e.Note,
		Commentaire:    e.Commentaire,
		DateEvaluation: e.DateEvaluation.Format("2006-01-02"),
		CreatedAt:      e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      e.UpdatedAt.Format(time.RFC3339),
	}
}

type ListEvaluationResponse struct {
	TotalCount  int64                `json:"totalCount"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"totalPages"`
	Evaluations []EvaluationResponse `json:"performances"`
}

func validNote(note float64) bool {
	return note >= 0 && note <= MaxNote
}

type CreateEvaluationRequest struct {
	EmployeID      string  `json:"employeId"`
	Periode        string  `json:"periode"`
	Objectifs      string  `json:"objectifs"`
	Note           float64 `json:"note"`
	Commentaire    string  `json:"commentaire"`
	DateEvaluation *string `json:"dateEvaluation,omitempty"`
}

func (r *CreateEvaluationRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeID) {
		errs = append(errs, validator.ValidationError{Field: "employeId", Message: "identifiant d'employé invalide"})
	}
	if validator.IsEmpty(r.Periode) {
		errs = append(errs, validator.ValidationError{Field: "periode", Message: "la période est obligatoire"})
	} else if len(r.Periode) > 50 {
		errs = append(errs, validator.ValidationError{Field: "periode", Message: "la période ne doit pas dépasser 50 caractères"})
	}
	if !validNote(r.Note) {
		errs = append(errs, validator.ValidationError{Field: "note", Message: "la note doit être comprise entre 0 et 20"})
	}
	if r.DateEvaluation != nil {
		if _, ok := validator.IsValidDate(*r.DateEvaluation); !ok {
			errs = append(errs, validator.ValidationError{Field: "dateEvaluation", Message: "date invalide (AAAA-MM-JJ)"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEvaluationRequest struct {
	ID             string   `json:"-"`
	Periode        *string  `json:"periode,omitempty"`
	Objectifs      *string  `json:"objectifs,omitempty"`
	Note           *float64 `json:"note,omitempty"`
	Commentaire    *string  `json:"commentaire,omitempty"`
	DateEvaluation *string  `json:"dateEvaluation,omitempty"`
}

func (r *UpdateEvaluationRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "identifiant invalide"})
	}
	if r.Periode != nil && validator.IsEmpty(*r.Periode) {
		errs = append(errs, validator.ValidationError{Field: "periode", Message: "la période ne peut pas être vide"})
	}
	if r.Note != nil && !validNote(*r.Note) {
		errs = append(errs, validator.ValidationError{Field: "note", Message: "la note doit être comprise entre 0 et 20"})
	}
	if r.DateEvaluation != nil {
		if _, ok := validator.IsValidDate(*r.DateEvaluation); !ok {
			errs = append(errs, validator.ValidationError{Field: "dateEvaluation", Message: "date invalide (AAAA-MM-JJ)"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EvaluationFilter struct {
	EmployeID *string
	Periode   *string
	Page      int
	Limit     int
}

func (f *EvaluationFilter) Validate() error {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.EmployeID != nil && !validator.IsValidUUID(*f.EmployeID) {
		return validator.ValidationErrors{{Field: "employeId", Message: "identifiant d'employé invalide"}}
	}
	return nil
}
