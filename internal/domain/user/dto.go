package user

import (
	"io"
	"strings"
	"time"

	"github.com/Traore-oss/SGRH-sub001/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID             string  `json:"id"`
	Nom            string  `json:"nom"`
	Prenom         string  `json:"prenom"`
	Email          string  `json:"email"`
	Role           string  `json:"role"`
	Matricule      string  `json:"matricule"`
	Telephone      string  `json:"telephone"`
	Adresse        string  `json:"adresse"`
	Poste          string  `json:"poste"`
	DepartementID  *string `json:"departementId"`
	DepartementNom *string `json:"departementNom,omitempty"`
	SalaireBase    float64 `json:"salaireBase"`
	TypeContrat    string  `json:"typeContrat"`
	DateEmbauche   *string `json:"dateEmbauche"`
	Photo          *string `json:"photo"`
	Actif          bool    `json:"actif"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

// ToResponse converts a User to its API representation. The password hash
// never leaves this package.
func ToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:             u.ID,
		Nom:            u.Nom,
		Prenom:         u.Prenom,
		Email:          u.Email,
		Role:           string(u.Role),
		Matricule:      u.Matricule,
		Telephone:      u.Telephone,
		Adresse:        u.Adresse,
		Poste:          u.Poste,
		DepartementID:  u.DepartementID,
		DepartementNom: u.DepartementNom,
		SalaireBase:    u.SalaireBase,
		TypeContrat:    u.TypeContrat,
		Photo:          u.Photo,
		Actif:          u.Actif,
		CreatedAt:      u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      u.UpdatedAt.Format(time.RFC3339),
	}
	if u.DateEmbauche != nil {
		d := u.DateEmbauche.Format("2006-01-02")
		resp.DateEmbauche = &d
	}
	return resp
}

// CreateUserRequest represents request to create a new employee account
type CreateUserRequest struct {
	Nom           string  `json:"nom"`
	Prenom        string  `json:"prenom"`
	Email         string  `json:"email"`
	MotDePasse    string  `json:"motDePasse"`
	Role          string  `json:"role"`
	Telephone     string  `json:"telephone"`
	Adresse       string  `json:"adresse"`
	Poste         string  `json:"poste"`
	DepartementID *string `json:"departementId,omitempty"`
	SalaireBase   float64 `json:"salaireBase"`
	TypeContrat   string  `json:"typeContrat"`
	DateEmbauche  *string `json:"dateEmbauche,omitempty"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Nom) {
		errs = append(errs, validator.ValidationError{Field: "nom", Message: "le nom est obligatoire"})
	}
	if validator.IsEmpty(r.Prenom) {
		errs = append(errs, validator.ValidationError{Field: "prenom", Message: "le prénom est obligatoire"})
	}

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "l'email est obligatoire"})
	} else if !validator.IsValidEmail(strings.TrimSpace(r.Email)) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "format d'email invalide"})
	}

	if validator.IsEmpty(r.MotDePasse) {
		errs = append(errs, validator.ValidationError{Field: "motDePasse", Message: "le mot de passe est obligatoire"})
	} else if len(r.MotDePasse) < 6 {
		errs = append(errs, validator.ValidationError{Field: "motDePasse", Message: "le mot de passe doit contenir au moins 6 caractères"})
	}

	if validator.IsEmpty(r.Role) {
		r.Role = string(RoleEmployee)
	} else if !validator.IsInSlice(r.Role, Roles) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "rôle invalide"})
	}

	if !validator.IsEmpty(r.Telephone) && !validator.IsValidPhoneNumber(r.Telephone) {
		errs = append(errs, validator.ValidationError{Field: "telephone", Message: "numéro de téléphone invalide"})
	}

	if r.DepartementID != nil && !validator.IsValidUUID(*r.DepartementID) {
		errs = append(errs, validator.ValidationError{Field: "departementId", Message: "identifiant de département invalide"})
	}

	if r.SalaireBase < 0 {
		errs = append(errs, validator.ValidationError{Field: "salaireBase", Message: "le salaire de base ne peut pas être négatif"})
	}

	if validator.IsEmpty(r.TypeContrat) {
		r.TypeContrat = "CDI"
	} else if !validator.IsInSlice(r.TypeContrat, ContractTypes) {
		errs = append(errs, validator.ValidationError{Field: "typeContrat", Message: "type de contrat invalide"})
	}

	if r.DateEmbauche != nil && !isDate(*r.DateEmbauche) {
		errs = append(errs, validator.ValidationError{Field: "dateEmbauche", Message: "date d'embauche invalide (AAAA-MM-JJ)"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateUserRequest represents request to update an employee.
// Matricule and password are not updatable here.
type UpdateUserRequest struct {
	ID            string   `json:"-"`
	Nom           *string  `json:"nom,omitempty"`
	Prenom        *string  `json:"prenom,omitempty"`
	Email         *string  `json:"email,omitempty"`
	Role          *string  `json:"role,omitempty"`
	Telephone     *string  `json:"telephone,omitempty"`
	Adresse       *string  `json:"adresse,omitempty"`
	Poste         *string  `json:"poste,omitempty"`
	DepartementID *string  `json:"departementId,omitempty"`
	SalaireBase   *float64 `json:"salaireBase,omitempty"`
	TypeContrat   *string  `json:"typeContrat,omitempty"`
	DateEmbauche  *string  `json:"dateEmbauche,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "identifiant invalide"})
	}
	if r.Nom != nil && validator.IsEmpty(*r.Nom) {
		errs = append(errs, validator.ValidationError{Field: "nom", Message: "le nom ne peut pas être vide"})
	}
	if r.Prenom != nil && validator.IsEmpty(*r.Prenom) {
		errs = append(errs, validator.ValidationError{Field: "prenom", Message: "le prénom ne peut pas être vide"})
	}
	if r.Email != nil && !validator.IsValidEmail(strings.TrimSpace(*r.Email)) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "format d'email invalide"})
	}
	if r.Role != nil && !validator.IsInSlice(*r.Role, Roles) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "rôle invalide"})
	}
	if r.Telephone != nil && !validator.IsEmpty(*r.Telephone) && !validator.IsValidPhoneNumber(*r.Telephone) {
		errs = append(errs, validator.ValidationError{Field: "telephone", Message: "numéro de téléphone invalide"})
	}
	if r.DepartementID != nil && *r.DepartementID != "" && !validator.IsValidUUID(*r.DepartementID) {
		errs = append(errs, validator.ValidationError{Field: "departementId", Message: "identifiant de département invalide"})
	}
	if r.SalaireBase != nil && *r.SalaireBase < 0 {
		errs = append(errs, validator.ValidationError{Field: "salaireBase", Message: "le salaire de base ne peut pas être négatif"})
	}
	if r.TypeContrat != nil && !validator.IsInSlice(*r.TypeContrat, ContractTypes) {
		errs = append(errs, validator.ValidationError{Field: "typeContrat", Message: "type de contrat invalide"})
	}
	if r.DateEmbauche != nil && !isDate(*r.DateEmbauche) {
		errs = append(errs, validator.ValidationError{Field: "dateEmbauche", Message: "date d'embauche invalide (AAAA-MM-JJ)"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UserFilter represents query parameters of the employee listing
type UserFilter struct {
	DepartementID *string
	Role          *string
	Actif         *bool
	Search        *string
	Page          int
	Limit         int
}

func (f *UserFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.DepartementID != nil && !validator.IsValidUUID(*f.DepartementID) {
		errs = append(errs, validator.ValidationError{Field: "departementId", Message: "identifiant de département invalide"})
	}
	if f.Role != nil && !validator.IsInSlice(*f.Role, Roles) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "rôle invalide"})
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

// ListUserResponse represents a paginated employee listing
type ListUserResponse struct {
	TotalCount int64          `json:"totalCount"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"totalPages"`
	Users      []UserResponse `json:"users"`
}

// UploadPhotoRequest carries a multipart photo for an employee
type UploadPhotoRequest struct {
	UserID   string
	Filename string
	Size     int64
	File     io.Reader
}

func (r *UploadPhotoRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.UserID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "identifiant invalide"})
	}
	if r.File == nil || r.Size == 0 {
		errs = append(errs, validator.ValidationError{Field: "photo", Message: "la photo est obligatoire"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func isDate(s string) bool {
	_, ok := validator.IsValidDate(s)
	return ok
}
