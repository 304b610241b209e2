package payroll

import (
	"time"

	"github.com/Traore-oss/SGRH-sub001/internal/pkg/validator"
)

type PaymentResponse struct {
	ID                    string  `json:"id"`
	EmployeID             string  `json:"employeId"`
	EmployeNom            *string `json:"employeNom,omitempty"`
	EmployePrenom         *string `json:"employePrenom,omitempty"`
	Matricule             *string `json:"matricule,omitempty"`
	Mois                  string  `json:"mois"`
	SalaireBase           float64 `json:"salaireBase"`
	Primes                float64 `json:"primes"`
	HeuresSupplementaires float64 `json:"heuresSupplementaires"`
	Deductions            float64 `json:"deductions"`
	JoursAbsence          float64 `json:"joursAbsence"`
	SalaireNet            float64 `json:"salaireNet"`
	Statut                string  `json:"statut"`
	DatePaiement          *string `json:"datePaiement"`
	CreatedAt             string  `json:"createdAt"`
	UpdatedAt             string  `json:"updatedAt"`
}

func ToResponse(p Payment) PaymentResponse {
	resp := PaymentResponse{
		ID:                    p.ID,
		EmployeID:             p.EmployeID,
		EmployeNom:            p.EmployeNom,
		EmployePrenom:         p.EmployePrenom,
		Matricule:             p.Matricule,
		Mois:                  p.Mois,
		SalaireBase:           p.SalaireBase,
		Primes:                p.Primes,
		HeuresSupplementaires: p.HeuresSupplementaires,
		Deductions:            p.Deductions,
		JoursAbsence:          p.JoursAbsence,
		SalaireNet:            p.SalaireNet,
		Statut:                string(p.Statut),
		CreatedAt:             p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:             p.UpdatedAt.Format(time.RFC3339),
	}
	if p.DatePaiement != nil {
		s := p.DatePaiement.Format(time.RFC3339)
		resp.DatePaiement = &s
	}
	return resp
}

type ListPaymentResponse struct {
	TotalCount int64             `json:"totalCount"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"totalPages"`
	Payments   []PaymentResponse `json:"salaires"`
}

type SimulationResponse struct {
	EmployeID string    `json:"employeId"`
	Mois      string    `json:"mois"`
	Detail    Breakdown `json:"detail"`
}

func validateAmount(errs validator.ValidationErrors, field string, value *float64) validator.ValidationErrors {
	if value != nil && *value < 0 {
		errs = append(errs, validator.ValidationError{Field: field, Message: "la valeur ne peut pas être négative"})
	}
	return errs
}

// CreatePaymentRequest omitting salaireBase uses the employee's base salary;
// omitting joursAbsence counts the month's Absent attendance records.
type CreatePaymentRequest struct {
	EmployeID             string   `json:"employeId"`
	Mois                  string   `json:"mois"`
	SalaireBase           *float64 `json:"salaireBase,omitempty"`
	Primes                float64  `json:"primes"`
	HeuresSupplementaires float64  `json:"heuresSupplementaires"`
	Deductions            float64  `json:"deductions"`
	JoursAbsence          *float64 `json:"joursAbsence,omitempty"`
}

func (r *CreatePaymentRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeID) {
		errs = append(errs, validator.ValidationError{Field: "employeId", Message: "identifiant d'employé invalide"})
	}
	if _, ok := validator.IsValidMonth(r.Mois); !ok {
		errs = append(errs, validator.ValidationError{Field: "mois", Message: "mois invalide (AAAA-MM)"})
	}
	errs = validateAmount(errs, "salaireBase", r.SalaireBase)
	errs = validateAmount(errs, "primes", &r.Primes)
	errs = validateAmount(errs, "heuresSupplementaires", &r.HeuresSupplementaires)
	errs = validateAmount(errs, "deductions", &r.Deductions)
	errs = validateAmount(errs, "joursAbsence", r.JoursAbsence)
	if r.JoursAbsence != nil && *r.JoursAbsence > DaysPerMonth {
		errs = append(errs, validator.ValidationError{Field: "joursAbsence", Message: "au plus 30 jours d'absence par mois"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdatePaymentRequest struct {
	ID                    string   `json:"-"`
	SalaireBase           *float64 `json:"salaireBase,omitempty"`
	Primes                *float64 `json:"primes,omitempty"`
	HeuresSupplementaires *float64 `json:"heuresSupplementaires,omitempty"`
	Deductions            *float64 `json:"deductions,omitempty"`
	JoursAbsence          *float64 `json:"joursAbsence,omitempty"`
}

func (r *UpdatePaymentRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "identifiant invalide"})
	}
	errs = validateAmount(errs, "salaireBase", r.SalaireBase)
	errs = validateAmount(errs, "primes", r.Primes)
	errs = validateAmount(errs, "heuresSupplementaires", r.HeuresSupplementaires)
	errs = validateAmount(errs, "deductions", r.Deductions)
	errs = validateAmount(errs, "joursAbsence", r.JoursAbsence)
	if r.JoursAbsence != nil && *r.JoursAbsence > DaysPerMonth {
		errs = append(errs, validator.ValidationError{Field: "joursAbsence", Message: "au plus 30 jours d'absence par mois"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PaymentFilter struct {
	EmployeID *string
	Mois      *string
	Statut    *string
	Page      int
	Limit     int
}

func (f *PaymentFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.EmployeID != nil && !validator.IsValidUUID(*f.EmployeID) {
		errs = append(errs, validator.ValidationError{Field: "employeId", Message: "identifiant d'employé invalide"})
	}
	if f.Mois != nil {
		if _, ok := validator.IsValidMonth(*f.Mois); !ok {
			errs = append(errs, validator.ValidationError{Field: "mois", Message: "mois invalide (AAAA-MM)"})
		}
	}
	if f.Statut != nil && !validator.IsInSlice(*f.Statut, Statuses) {
		errs = append(errs, validator.ValidationError{Field: "statut", Message: "statut invalide"})
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
