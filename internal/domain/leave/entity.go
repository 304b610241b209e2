package leave

import (
	"time"
)

type Status string

const (
	StatusPending  Status = "En attente"
	StatusApproved Status = "Approuvé"
	StatusRefused  Status = "Refusé"
)

var Statuses = []string{string(StatusPending), string(StatusApproved), string(StatusRefused)}

var LeaveTypes = []string{"Annuel", "Maladie", "Maternité", "Paternité", "Sans solde", "Exceptionnel"}

// LeaveRequest entity
type LeaveRequest struct {
	ID          string
	EmployeID   string
	TypeConge   string
	DateDebut   time.Time
	DateFin     time.Time
	NombreJours int
	Motif       string
	Statut      Status
	Commentaire string
	TraitePar   *string
	TraiteLe    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO / Join
	EmployeNom    *string
	EmployePrenom *string
	Matricule     *string
}

func (l *LeaveRequest) IsPending() bool {
	return l.Statut == StatusPending
}

// Days lists every calendar day of the request, both bounds included.
func (l *LeaveRequest) Days() []time.Time {
	days := make([]time.Time, 0, l.NombreJours)
	for d := l.DateDebut; !d.After(l.DateFin); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// CountDays returns the inclusive number of calendar days between start and end.
func CountDays(start, end time.Time) (int, error) {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	if e.Before(s) {
		return 0, ErrInvalidDateRange
	}
	return int(e.Sub(s).Hours()/24) + 1, nil
}
