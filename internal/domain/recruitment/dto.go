package recruitment

import (
	"io"
	"strings"
	"time"

	"github.com/Traore-oss/SGRH-sub001/internal/pkg/validator"
)

var contractTypes = []string{"CDI", "CDD", "Stage", "Freelance"}

type CandidateResponse struct {
	ID        string `json:"id"`
	OffreID   string `json:"offreId"`
	Nom       string `json:"nom"`
	Prenom    string `json:"prenom"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
	Lettre    string `json:"lettre"`
	CV        string `json:"cv"`
	Statut    string `json:"statut"`
	CreatedAt string `json:"createdAt"`
}

func ToCandidateResponse(c Candidate, cvURL string) CandidateResponse {
	return CandidateResponse{
		ID:        c.ID,
		OffreID:   c.OffreID,
		Nom:       c.Nom,
		Prenom:    c.Prenom,
		Email:     c.Email,
		Telephone: c.Telephone,
		Lettre:    c.Lettre,
		CV:        cvURL,
		Statut:    string(c.Statut),
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}

// PublicOfferResponse omits candidates.
type PublicOfferResponse struct {
	ID             string  `json:"id"`
	Titre          string  `json:"titre"`
	Description    string  `json:"description"`
	DepartementNom *string `json:"departementNom,omitempty"`
	TypeContrat    string  `json:"typeContrat"`
	Lieu           string  `json:"lieu"`
	DateLimite     *string `json:"dateLimite"`
	CreatedAt      string  `json:"createdAt"`
}

type OfferResponse struct {
	PublicOfferResponse
	DepartementID   *string             `json:"departementId"`
	Statut          string              `json:"statut"`
	NombreCandidats int64               `json:"nombreCandidats"`
	Candidats       []CandidateResponse `json:"candidats,omitempty"`
	UpdatedAt       string              `json:"updatedAt"`
}

func ToPublicResponse(o Offer) PublicOfferResponse {
	resp := PublicOfferResponse{
		ID:             o.ID,
		Titre:          o.Titre,
		Description:    o.Description,
		DepartementNom: o.DepartementNom,
		TypeContrat:    o.TypeContrat,
		Lieu:           o.Lieu,
		CreatedAt:      o.CreatedAt.Format(time.RFC3339),
	}
	if o.DateLimite != nil {
		d := o.DateLimite.Format("2006-01-02")
		resp.DateLimite = &d
	}
	return resp
}

// ToResponse builds the back-office view; cvURL maps stored CV keys to URLs.
func ToResponse(o Offer, cvURL func(string) string) OfferResponse {
	resp := OfferResponse{
		PublicOfferResponse: ToPublicResponse(o),
		DepartementID:       o.DepartementID,
		Statut:              string(o.Statut),
		NombreCandidats:     o.CandidateCount,
		UpdatedAt:           o.UpdatedAt.Format(time.RFC3339),
	}
	if o.Candidats != nil {
		resp.NombreCandidats = int64(len(o.Candidats))
		resp.Candidats = make([]CandidateResponse, 0, len(o.Candidats))
		for _, c := range o.Candidats {
			resp.Candidats = append(resp.Candidats, ToCandidateResponse(c, cvURL(c.CV)))
		}
	}
	return resp
}

type ListOfferResponse struct {
	TotalCount int64           `json:"totalCount"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
	Offers     []OfferResponse `json:"offres"`
}

type CreateOfferRequest struct {
	Titre         string  `json:"titre"`
	Description   string  `json:"description"`
	DepartementID *string `json:"departementId,omitempty"`
	TypeContrat   string  `json:"typeContrat"`
	Lieu          string  `json:"lieu"`
	DateLimite    *string `json:"dateLimite,omitempty"`
}

func (r *CreateOfferRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Titre) {
		errs = append(errs, validator.ValidationError{Field: "titre", Message: "le titre est obligatoire"})
	} else if len(r.Titre) > 200 {
		errs = append(errs, validator.ValidationError{Field: "titre", Message: "le titre ne doit pas dépasser 200 caractères"})
	}
	if r.DepartementID != nil && !validator.IsValidUUID(*r.DepartementID) {
		errs = append(errs, validator.ValidationError{Field: "departementId", Message: "identifiant de département invalide"})
	}
	if validator.IsEmpty(r.TypeContrat) {
		r.TypeContrat = "CDI"
	} else if !validator.IsInSlice(r.TypeContrat, contractTypes) {
		errs = append(errs, validator.ValidationError{Field: "typeContrat", Message: "type de contrat invalide"})
	}
	if r.DateLimite != nil {
		if _, ok := validator.IsValidDate(*r.DateLimite); !ok {
			errs = append(errs, validator.ValidationError{Field: "dateLimite", Message: "date limite invalide (AAAA-MM-JJ)"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateOfferRequest struct {
	ID            string  `json:"-"`
	Titre         *string `json:"titre,omitempty"`
	Description   *string `json:"description,omitempty"`
	DepartementID *string `json:"departementId,omitempty"`
	TypeContrat   *string `json:"typeContrat,omitempty"`
	Lieu          *string `json:"lieu,omitempty"`
	DateLimite    *string `json:"dateLimite,omitempty"`
	Statut        *string `json:"statut,omitempty"`
}

func (r *UpdateOfferRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "identifiant invalide"})
	}
	if r.Titre != nil && validator.IsEmpty(*r.Titre) {
		errs = append(errs, validator.ValidationError{Field: "titre", Message: "le titre ne peut pas être vide"})
	}
	if r.DepartementID != nil && *r.DepartementID != "" && !validator.IsValidUUID(*r.DepartementID) {
		errs = append(errs, validator.ValidationError{Field: "departementId", Message: "identifiant de département invalide"})
	}
	if r.TypeContrat != nil && !validator.IsInSlice(*r.TypeContrat, contractTypes) {
		errs = append(errs, validator.ValidationError{Field: "typeContrat", Message: "type de contrat invalide"})
	}
	if r.DateLimite != nil && *r.DateLimite != "" {
		if _, ok := validator.IsValidDate(*r.DateLimite); !ok {
			errs = append(errs, validator.ValidationError{Field: "dateLimite", Message: "date limite invalide (AAAA-MM-JJ)"})
		}
	}
	if r.Statut != nil && !validator.IsInSlice(*r.Statut, OfferStatuses) {
		errs = append(errs, validator.ValidationError{Field: "statut", Message: "statut invalide"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ApplyRequest is read from a public multipart form.
type ApplyRequest struct {
	OffreID    string
	Nom        string
	Prenom     string
	Email      string
	Telephone  string
	Lettre     string
	CVFilename string
	CVSize     int64
	CV         io.Reader
}

func (r *ApplyRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	if !validator.IsValidUUID(r.OffreID) {
		errs = append(errs, validator.ValidationError{Field: "offreId", Message: "identifiant d'offre invalide"})
	}
	if validator.IsEmpty(r.Nom) {
		errs = append(errs, validator.ValidationError{Field: "nom", Message: "le nom est obligatoire"})
	}
	if validator.IsEmpty(r.Prenom) {
		errs = append(errs, validator.ValidationError{Field: "prenom", Message: "le prénom est obligatoire"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "format d'email invalide"})
	}
	if !validator.IsEmpty(r.Telephone) && !validator.IsValidPhoneNumber(r.Telephone) {
		errs = append(errs, validator.ValidationError{Field: "telephone", Message: "numéro de téléphone invalide"})
	}
	if len(r.Lettre) > 5000 {
		errs = append(errs, validator.ValidationError{Field: "lettre", Message: "la lettre ne doit pas dépasser 5000 caractères"})
	}
	if r.CV == nil || r.CVSize == 0 {
		errs = append(errs, validator.ValidationError{Field: "cv", Message: "le CV est obligatoire"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateCandidateRequest struct {
	OffreID    string `json:"-"`
	CandidatID string `json:"-"`
	Statut     string `json:"statut"`
}

func (r *UpdateCandidateRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.OffreID) {
		errs = append(errs, validator.ValidationError{Field: "offreId", Message: "identifiant d'offre invalide"})
	}
	if !validator.IsValidUUID(r.CandidatID) {
		errs = append(errs, validator.ValidationError{Field: "candidatId", Message: "identifiant de candidat invalide"})
	}
	if !validator.IsInSlice(r.Statut, CandidateStatuses) {
		errs = append(errs, validator.ValidationError{Field: "statut", Message: "statut invalide"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type OfferFilter struct {
	Statut   *string
	OpenOnly bool
	Page     int
	Limit    int
}

func (f *OfferFilter) Validate() error {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Statut != nil && !validator.IsInSlice(*f.Statut, OfferStatuses) {
		return validator.ValidationErrors{{Field: "statut", Message: "statut invalide"}}
	}
	return nil
}
