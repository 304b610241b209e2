package attendance

import (
	"time"

	"github.com/Traore-oss/SGRH-sub001/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type AttendanceResponse struct {
	ID                string  `json:"id"`
	EmployeID         string  `json:"employeId"`
	EmployeNom        *string `json:"employeNom,omitempty"`
	EmployePrenom     *string `json:"employePrenom,omitempty"`
	Matricule         *string `json:"matricule,omitempty"`
	DepartementNom    *string `json:"departementNom,omitempty"`
	Date              string  `json:"date"`
	HeureArrivee      *string `json:"heureArrivee"`
	HeureDepart       *string `json:"heureDepart"`
	Statut            string  `json:"statut"`
	Retard            string  `json:"retard"`
	HeuresTravaillees string  `json:"heuresTravaillees"`
	CreatedAt         string  `json:"createdAt"`
	UpdatedAt         string  `json:"updatedAt"`
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func ToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:                a.ID,
		EmployeID:         a.EmployeID,
		EmployeNom:        a.EmployeNom,
		EmployePrenom:     a.EmployePrenom,
		Matricule:         a.Matricule,
		DepartementNom:    a.DepartementNom,
		Date:              a.Date.Format("2006-01-02"),
		HeureArrivee:      formatTime(a.HeureArrivee),
		HeureDepart:       formatTime(a.HeureDepart),
		Statut:            string(a.Statut),
		Retard:            a.Retard,
		HeuresTravaillees: a.HeuresTravaillees,
		CreatedAt:         a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         a.UpdatedAt.Format(time.RFC3339),
	}
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"totalCount"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"totalPages"`
	Attendances []AttendanceResponse `json:"pointages"`
}

func isClockTime(value string) bool {
	_, err := ParseClockTime(time.Now(), value, time.UTC)
	return err == nil
}

func isDate(value string) bool {
	_, ok := validator.IsValidDate(value)
	return ok
}

type CreateAttendanceRequest struct {
	EmployeID    string  `json:"employeId"`
	Date         string  `json:"date"`
	HeureArrivee *string `json:"heureArrivee,omitempty"`
	HeureDepart  *string `json:"heureDepart,omitempty"`
}

func (r *CreateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeID) {
		errs = append(errs, validator.ValidationError{Field: "employeId", Message: "identifiant d'employé invalide"})
	}
	if !isDate(r.Date) {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date invalide (AAAA-MM-JJ)"})
	}
	if r.HeureArrivee != nil && !isClockTime(*r.HeureArrivee) {
		errs = append(errs, validator.ValidationError{Field: "heureArrivee", Message: "heure d'arrivée invalide"})
	}
	if r.HeureDepart != nil {
		if r.HeureArrivee == nil {
			errs = append(errs, validator.ValidationError{Field: "heureDepart", Message: "une heure de départ exige une heure d'arrivée"})
		} else if !isClockTime(*r.HeureDepart) {
			errs = append(errs, validator.ValidationError{Field: "heureDepart", Message: "heure de départ invalide"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MarkArrivalRequest is used by Admin, RH and Manager. Present=false marks the
// employee absent and clears the record.
type MarkArrivalRequest struct {
	EmployeID string  `json:"employeId"`
	Date      *string `json:"date,omitempty"`
	Heure     *string `json:"heure,omitempty"`
	Present   *bool   `json:"present,omitempty"`
}

func (r *MarkArrivalRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeID) {
		errs = append(errs, validator.ValidationError{Field: "employeId", Message: "identifiant d'employé invalide"})
	}
	if r.Date != nil && !isDate(*r.Date) {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date invalide (AAAA-MM-JJ)"})
	}
	if r.Heure != nil && !isClockTime(*r.Heure) {
		errs = append(errs, validator.ValidationError{Field: "heure", Message: "heure invalide"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MarkDepartureRequest struct {
	EmployeID string  `json:"employeId"`
	Date      *string `json:"date,omitempty"`
	Heure     *string `json:"heure,omitempty"`
}

func (r *MarkDepartureRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeID) {
		errs = append(errs, validator.ValidationError{Field: "employeId", Message: "identifiant d'employé invalide"})
	}
	if r.Date != nil && !isDate(*r.Date) {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date invalide (AAAA-MM-JJ)"})
	}
	if r.Heure != nil && !isClockTime(*r.Heure) {
		errs = append(errs, validator.ValidationError{Field: "heure", Message: "heure invalide"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DailySheetRequest struct {
	Date *string `json:"date,omitempty"`
}

func (r *DailySheetRequest) Validate() error {
	if r.Date != nil && !isDate(*r.Date) {
		return validator.ValidationErrors{{Field: "date", Message: "date invalide (AAAA-MM-JJ)"}}
	}
	return nil
}

type DailySheetResponse struct {
	Date    string `json:"date"`
	Created int64  `json:"created"`
}

type AttendanceFilter struct {
	EmployeID     *string
	DepartementID *string
	Date          *string
	From          *string
	To            *string
	Statut        *string
	Page          int
	Limit         int
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.EmployeID != nil && !validator.IsValidUUID(*f.EmployeID) {
		errs = append(errs, validator.ValidationError{Field: "employeId", Message: "identifiant d'employé invalide"})
	}
	if f.DepartementID != nil && !validator.IsValidUUID(*f.DepartementID) {
		errs = append(errs, validator.ValidationError{Field: "departementId", Message: "identifiant de département invalide"})
	}
	if f.Date != nil && !isDate(*f.Date) {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date invalide (AAAA-MM-JJ)"})
	}
	if f.From != nil && !isDate(*f.From) {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "date invalide (AAAA-MM-JJ)"})
	}
	if f.To != nil && !isDate(*f.To) {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "date invalide (AAAA-MM-JJ)"})
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
