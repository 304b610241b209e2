package department

import "time"

type Department struct {
	ID            string
	Nom           string
	Code          string
	Description   string
	ResponsableID *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DTO / Join
	ResponsableNom *string
	EmployeeCount  int64
}
