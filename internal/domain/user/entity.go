package user

import "time"

type Role string

const (
	RoleAdmin    Role = "Admin"   // Full access, account activation
	RoleRH       Role = "RH"      // Human resources
	RoleManager  Role = "Manager" // Approves leave, marks attendance, evaluates
	RoleEmployee Role = "Employe" // Self-service only
)

var Roles = []string{string(RoleAdmin), string(RoleRH), string(RoleManager), string(RoleEmployee)}

var ContractTypes = []string{"CDI", "CDD", "Stage", "Freelance"}

type User struct {
	ID            string
	Nom           string
	Prenom        string
	Email         string
	PasswordHash  string
	Role          Role
	Matricule     string
	Telephone     string
	Adresse       string
	Poste         string
	DepartementID *string
	SalaireBase   float64
	TypeContrat   string
	DateEmbauche  *time.Time
	Photo         *string
	Actif         bool
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DTO / Join
	DepartementNom *string
}

func (u *User) FullName() string {
	return u.Prenom + " " + u.Nom
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
