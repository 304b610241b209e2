package auth

import (
	"strings"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/user"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/validator"
)

type RegisterRequest struct {
	Nom        string `json:"nom"`
	Prenom     string `json:"prenom"`
	Email      string `json:"email"`
	MotDePasse string `json:"motDePasse"`
}

func (r *RegisterRequest) Validate() error {
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
	if len(r.MotDePasse) < 6 {
		errs = append(errs, validator.ValidationError{Field: "motDePasse", Message: "le mot de passe doit contenir au moins 6 caractères"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LoginRequest struct {
	Email      string `json:"email"`
	MotDePasse string `json:"motDePasse"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "l'email est obligatoire"})
	}
	if validator.IsEmpty(r.MotDePasse) {
		errs = append(errs, validator.ValidationError{Field: "motDePasse", Message: "le mot de passe est obligatoire"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ChangePasswordRequest struct {
	AncienMotDePasse  string `json:"ancienMotDePasse"`
	NouveauMotDePasse string `json:"nouveauMotDePasse"`
}

func (r *ChangePasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AncienMotDePasse) {
		errs = append(errs, validator.ValidationError{Field: "ancienMotDePasse", Message: "l'ancien mot de passe est obligatoire"})
	}
	if len(r.NouveauMotDePasse) < 6 {
		errs = append(errs, validator.ValidationError{Field: "nouveauMotDePasse", Message: "le nouveau mot de passe doit contenir au moins 6 caractères"})
	} else if r.NouveauMotDePasse == r.AncienMotDePasse {
		errs = append(errs, validator.ValidationError{Field: "nouveauMotDePasse", Message: "le nouveau mot de passe doit être différent de l'ancien"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TokenResponse struct {
	AccessToken string            `json:"token"`
	ExpiresAt   int64             `json:"expiresAt"`
	User        user.UserResponse `json:"user"`
}
