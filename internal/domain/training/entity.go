package training

import "time"

type Session struct {
	ID          string
	Titre       string
	Description string
	Formateur   string
	Lieu        string
	DateDebut   time.Time
	DateFin     time.Time
	Capacite    int // 0 = unlimited
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Participants []Participant
}

type Participant struct {
	EmployeID string
	Nom       string
	Prenom    string
	Matricule string
	InscritLe time.Time
}

// IsFull reports whether count participants exhaust the capacity.
func (s *Session) IsFull(count int) bool {
	return s.Capacite > 0 && count >= s.Capacite
}

func (s *Session) HasParticipant(employeID string) bool {
	for _, p := range s.Participants {
		if p.EmployeID == employeID {
			return true
		}
	}
	return false
}
