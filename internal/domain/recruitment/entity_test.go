package recruitment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOffer_AcceptsApplications(t *testing.T) {
	deadline := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		offer Offer
		day   time.Time
		want  bool
	}{
		{"open without deadline", Offer{Statut: OfferOpen}, deadline, true},
		{"before deadline", Offer{Statut: OfferOpen, DateLimite: &deadline}, deadline.AddDate(0, 0, -1), true},
		{"on deadline", Offer{Statut: OfferOpen, DateLimite: &deadline}, deadline, true},
		{"after deadline", Offer{Statut: OfferOpen, DateLimite: &deadline}, deadline.AddDate(0, 0, 1), false},
		{"closed", Offer{Statut: OfferClosed}, deadline, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.offer.AcceptsApplications(tt.day))
		})
	}
}
