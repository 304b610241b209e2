package recruitment

import "errors"

var (
	ErrOfferNotFound     = errors.New("offer not found")
	ErrOfferClosed       = errors.New("offer is closed or past its deadline")
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrAlreadyApplied    = errors.New("this email already applied to the offer")
)
