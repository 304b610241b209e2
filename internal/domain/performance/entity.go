package performance

import "time"

// MaxNote is the top of the 0..20 grading scale.
const MaxNote = 20.0

type Evaluation struct {
	ID             string
	EmployeID      string
	EvaluateurID   *string
	Periode        string
	Objectifs      string
	Note           float64
	Commentaire    string
	DateEvaluation time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// DTO / Join
	EmployeNom    *string
	EmployePrenom *string
	EvaluateurNom *string
}
