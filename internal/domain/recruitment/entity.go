package recruitment

import "time"

type OfferStatus string

const (
	OfferOpen   OfferStatus = "Ouverte"
	OfferClosed OfferStatus = "Fermée"
)

var OfferStatuses = []string{string(OfferOpen), string(OfferClosed)}

type CandidateStatus string

const (
	CandidateReceived  CandidateStatus = "Reçue"
	CandidateInterview CandidateStatus = "Entretien"
	CandidateRetained  CandidateStatus = "Retenue"
	CandidateRejected  CandidateStatus = "Rejetée"
)

var CandidateStatuses = []string{
	string(CandidateReceived),
	string(CandidateInterview),
	string(CandidateRetained),
	string(CandidateRejected),
}

type Offer struct {
	ID            string
	Titre         string
	Description   string
	DepartementID *string
	TypeContrat   string
	Lieu          string
	DateLimite    *time.Time
	Statut        OfferStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Candidats []Candidate

	// DTO / Join
	DepartementNom *string
	CandidateCount int64
}

// AcceptsApplications reports whether the offer is open on day (a calendar
// date); the deadline day itself is still accepted.
func (o *Offer) AcceptsApplications(day time.Time) bool {
	if o.Statut != OfferOpen {
		return false
	}
	if o.DateLimite != nil && day.After(*o.DateLimite) {
		return false
	}
	return true
}

type Candidate struct {
	ID        string
	OffreID   string
	Nom       string
	Prenom    string
	Email     string
	Telephone string
	Lettre    string
	CV        string
	Statut    CandidateStatus
	CreatedAt time.Time
}
