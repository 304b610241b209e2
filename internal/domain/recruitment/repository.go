package recruitment

import "context"

type OfferRepository interface {
	Create(ctx context.Context, o Offer) (Offer, error)

	// GetByID loads the offer with its candidates.
	GetByID(ctx context.Context, id string) (Offer, error)
	List(ctx context.Context, filter OfferFilter) ([]Offer, int64, error)
	Update(ctx context.Context, o Offer) (Offer, error)

	// Delete removes the offer and returns the CV keys of its candidates.
	Delete(ctx context.Context, id string) ([]string, error)

	AddCandidate(ctx context.Context, c Candidate) (Candidate, error)
	GetCandidate(ctx context.Context, offreID, candidatID string) (Candidate, error)
	UpdateCandidateStatus(ctx context.Context, offreID, candidatID string, statut CandidateStatus) (Candidate, error)
	DeleteCandidate(ctx context.Context, offreID, candidatID string) error
	HasApplied(ctx context.Context, offreID, email string) (bool, error)
}
