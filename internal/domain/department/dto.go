package department

import (
	"strings"
	"time"

	"github.com/Traore-oss/SGRH-sub001/internal/pkg/validator"
)

type DepartmentResponse struct {
	ID             string  `json:"id"`
	Nom            string  `json:"nom"`
	Code           string  `json:"code"`
	Description    string  `json:"description"`
	ResponsableID  *string `json:"responsableId"`
	ResponsableNom *string `json:"responsableNom,omitempty"`
	NombreEmployes int64   `json:"nombreEmployes"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

func ToResponse(d Department) DepartmentResponse {
	return DepartmentResponse{
		ID:             d.ID,
		Nom:            d.Nom,
		Code:           d.Code,
		Description:    d.Description,
		ResponsableID:  d.ResponsableID,
		ResponsableNom: d.ResponsableNom,
		NombreEmployes: d.EmployeeCount,
		CreatedAt:      d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      d.UpdatedAt.Format(time.RFC3339),
	}
}

type CreateDepartmentRequest struct {
	Nom           string  `json:"nom"`
	Code          string  `json:"code"`
	Description   string  `json:"description"`
	ResponsableID *string `json:"responsableId,omitempty"`
}

func (r *CreateDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))

	if validator.IsEmpty(r.Nom) {
		errs = append(errs, validator.ValidationError{Field: "nom", Message: "le nom est obligatoire"})
	} else if len(r.Nom) > 150 {
		errs = append(errs, validator.ValidationError{Field: "nom", Message: "le nom ne doit pas dépasser 150 caractères"})
	}
	if !validator.IsValidDepartmentCode(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "code invalide (2 à 20 caractères A-Z, 0-9, _ ou -)"})
	}
	if r.ResponsableID != nil && !validator.IsValidUUID(*r.ResponsableID) {
		errs = append(errs, validator.ValidationError{Field: "responsableId", Message: "identifiant du responsable invalide"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateDepartmentRequest struct {
	ID            string  `json:"-"`
	Nom           *string `json:"nom,omitempty"`
	Code          *string `json:"code,omitempty"`
	Description   *string `json:"description,omitempty"`
	ResponsableID *string `json:"responsableId,omitempty"`
}

func (r *UpdateDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "identifiant invalide"})
	}
	if r.Nom != nil && validator.IsEmpty(*r.Nom) {
		errs = append(errs, validator.ValidationError{Field: "nom", Message: "le nom ne peut pas être vide"})
	}
	if r.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*r.Code))
		r.Code = &code
		if !validator.IsValidDepartmentCode(code) {
			errs = append(errs, validator.ValidationError{Field: "code", Message: "code invalide (2 à 20 caractères A-Z, 0-9, _ ou -)"})
		}
	}
	// an empty responsableId detaches the current head
	if r.ResponsableID != nil && *r.ResponsableID != "" && !validator.IsValidUUID(*r.ResponsableID) {
		errs = append(errs, validator.ValidationError{Field: "responsableId", Message: "identifiant du responsable invalide"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
