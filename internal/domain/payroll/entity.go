package payroll

import "time"

type Status string

const (
	StatusPending Status = "En attente"
	StatusPaid    Status = "Payé"
)

var Statuses = []string{string(StatusPending), string(StatusPaid)}

// Payment is the salary record of one employee for one month.
type Payment struct {
	ID                    string
	EmployeID             string
	Mois                  string // YYYY-MM
	SalaireBase           float64
	Primes                float64
	HeuresSupplementaires float64
	Deductions            float64
	JoursAbsence          float64
	SalaireNet            float64
	Statut                Status
	DatePaiement          *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time

	// DTO / Join
	EmployeNom     *string
	EmployePrenom  *string
	Matricule      *string
	Poste          *string
	DepartementNom *string
}

func (p *Payment) IsPaid() bool {
	return p.Statut == StatusPaid
}

// Recompute refreshes SalaireNet from the stored components.
func (p *Payment) Recompute() {
	p.SalaireNet = NetSalary(p.Components())
}

func (p *Payment) Components() Components {
	return Components{
		SalaireBase:           p.SalaireBase,
		Primes:                p.Primes,
		HeuresSupplementaires: p.HeuresSupplementaires,
		Deductions:            p.Deductions,
		JoursAbsence:          p.JoursAbsence,
	}
}
