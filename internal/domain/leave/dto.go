package leave

import (
	"time"

	"github.com/Traore-oss/SGRH-sub001/internal/pkg/validator"
)

type LeaveResponse struct {
	ID            string  `json:"id"`
	EmployeID     string  `json:"employeId"`
	EmployeNom    *string `json:"employeNom,omitempty"`
	EmployePrenom *string `json:"employePrenom,omitempty"`
	Matricule     *string `json:"matricule,omitempty"`
	TypeConge     string  `json:"typeConge"`
	DateDebut     string  `json:"dateDebut"`
	DateFin       string  `json:"dateFin"`
	NombreJours   int     `json:"nombreJours"`
	Motif         string  `json:"motif"`
	Statut        string  `json:"statut"`
	Commentaire   string  `json:"commentaire"`
	TraitePar     *string `json:"traitePar"`
	TraiteLe      *string `json:"traiteLe"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

func ToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:            l.ID,
		EmployeID:     l.EmployeID,
		EmployeNom:    l.EmployeNom,
		EmployePrenom: l.EmployePrenom,
		Matricule:     l.Matricule,
		TypeConge:     l.TypeConge,
		DateDebut:     l.DateDebut.Format("2006-01-02"),
		DateFin:       l.DateFin.Format("2006-01-02"),
		NombreJours:   l.NombreJours,
		Motif:         l.Motif,
		Statut:        string(l.Statut),
		Commentaire:   l.Commentaire,
		TraitePar:     l.TraitePar,
		CreatedAt:     l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     l.UpdatedAt.Format(time.RFC3339),
	}
	if l.TraiteLe != nil {
		s := l.TraiteLe.Format(time.RFC3339)
		resp.TraiteLe = &s
	}
	return resp
}

type ListLeaveResponse struct {
	TotalCount int64           `json:"totalCount"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
	Requests   []LeaveResponse `json:"conges"`
}

// validateRange checks both dates and their order, returning the parsed bounds.
func validateRange(debut, fin string) (time.Time, time.Time, validator.ValidationErrors) {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(debut)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "dateDebut", Message: "date de début invalide (AAAA-MM-JJ)"})
	}
	end, okEnd := validator.IsValidDate(fin)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "dateFin", Message: "date de fin invalide (AAAA-MM-JJ)"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "dateFin", Message: "la date de fin doit être postérieure ou égale à la date de début"})
	}
	return start, end, errs
}

type CreateLeaveRequest struct {
	TypeConge string `json:"typeConge"`
	DateDebut string `json:"dateDebut"`
	DateFin   string `json:"dateFin"`
	Motif     string `json:"motif"`

	// EmployeID lets Admin and RH file a request on behalf of an employee.
	EmployeID *string `json:"employeId,omitempty"`
}

func (r *CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.TypeConge, LeaveTypes) {
		errs = append(errs, validator.ValidationError{Field: "typeConge", Message: "type de congé invalide"})
	}
	_, _, rangeErrs := validateRange(r.DateDebut, r.DateFin)
	errs = append(errs, rangeErrs...)
	if len(r.Motif) > 1000 {
		errs = append(errs, validator.ValidationError{Field: "motif", Message: "le motif ne doit pas dépasser 1000 caractères"})
	}
	if r.EmployeID != nil && !validator.IsValidUUID(*r.EmployeID) {
		errs = append(errs, validator.ValidationError{Field: "employeId", Message: "identifiant d'employé invalide"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateLeaveRequest struct {
	ID        string  `json:"-"`
	TypeConge *string `json:"typeConge,omitempty"`
	DateDebut *string `json:"dateDebut,omitempty"`
	DateFin   *string `json:"dateFin,omitempty"`
	Motif     *string `json:"motif,omitempty"`
}

func (r *UpdateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "identifiant invalide"})
	}
	if r.TypeConge != nil && !validator.IsInSlice(*r.TypeConge, LeaveTypes) {
		errs = append(errs, validator.ValidationError{Field: "typeConge", Message: "type de congé invalide"})
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
	if r.Motif != nil && len(*r.Motif) > 1000 {
		errs = append(errs, validator.ValidationError{Field: "motif", Message: "le motif ne doit pas dépasser 1000 caractères"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DecisionRequest approves or refuses a pending request.
type DecisionRequest struct {
	ID          string `json:"-"`
	Commentaire string `json:"commentaire"`
}

func (r *DecisionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "identifiant invalide"})
	}
	if len(r.Commentaire) > 1000 {
		errs = append(errs, validator.ValidationError{Field: "commentaire", Message: "le commentaire ne doit pas dépasser 1000 caractères"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveFilter struct {
	EmployeID *string
	Statut    *string
	TypeConge *string
	From      *string
	To        *string
	Page      int
	Limit     int
}

func (f *LeaveFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.EmployeID != nil && !validator.IsValidUUID(*f.EmployeID) {
		errs = append(errs, validator.ValidationError{Field: "employeId", Message: "identifiant d'employé invalide"})
	}
	if f.Statut != nil && !validator.IsInSlice(*f.Statut, Statuses) {
		errs = append(errs, validator.ValidationError{Field: "statut", Message: "statut invalide"})
	}
	if f.TypeConge != nil && !validator.IsInSlice(*f.TypeConge, LeaveTypes) {
		errs = append(errs, validator.ValidationError{Field: "typeConge", Message: "type de congé invalide"})
	}
	if f.From != nil {
		if _, ok := validator.IsValidDate(*f.From); !ok {
			errs = append(errs, validator.ValidationError{Field: "from", Message: "date invalide (AAAA-MM-JJ)"})
		}
	}
	if f.To != nil {
		if _, ok := validator.IsValidDate(*f.To); !ok {
			errs = append(errs, validator.ValidationError{Field: "to", Message: "date invalide (AAAA-MM-JJ)"})
		}
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
