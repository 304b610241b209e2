package recruitment

import "context"

type RecruitmentService interface {
	// ListPublicOffers returns open offers whose deadline has not passed.
	ListPublicOffers(ctx context.Context) ([]PublicOfferResponse, error)
	Apply(ctx context.Context, req ApplyRequest) (CandidateResponse, error)

	CreateOffer(ctx context.Context, req CreateOfferRequest) (OfferResponse, error)
	ListOffers(ctx context.Context, filter OfferFilter) (ListOfferResponse, error)
	GetOffer(ctx context.Context, id string) (OfferResponse, error)
	UpdateOffer(ctx context.Context, req UpdateOfferRequest) (OfferResponse, error)
	DeleteOffer(ctx context.Context, id string) error

	UpdateCandidateStatus(ctx context.Context, req UpdateCandidateRequest) (CandidateResponse, error)
	DeleteCandidate(ctx context.Context, offreID, candidatID string) error
}
