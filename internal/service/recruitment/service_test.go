package recruitment

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/recruitment"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/metrics"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/storage"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/testutil"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/validator"
	"github.com/Traore-oss/SGRH-sub001/internal/service/file"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOfferRepo struct {
	offers     map[string]recruitment.Offer
	candidates map[string]recruitment.Candidate
}

func newFakeOfferRepo() *fakeOfferRepo {
	return &fakeOfferRepo{offers: make(map[string]recruitment.Offer), candidates: make(map[string]recruitment.Candidate)}
}

func (f *fakeOfferRepo) Create(ctx context.Context, o recruitment.Offer) (recruitment.Offer, error) {
	o.ID = uuid.NewString()
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	f.offers[o.ID] = o
	return o, nil
}

func (f *fakeOfferRepo) GetByID(ctx context.Context, id string) (recruitment.Offer, error) {
	o, ok := f.offers[id]
	if !ok {
		return recruitment.Offer{}, recruitment.ErrOfferNotFound
	}
	o.Candidats = make([]recruitment.Candidate, 0)
	for _, c := range f.candidates {
		if c.OffreID == id {
			o.Candidats = append(o.Candidats, c)
		}
	}
	return o, nil
}

func (f *fakeOfferRepo) List(ctx context.Context, filter recruitment.OfferFilter) ([]recruitment.Offer, int64, error) {
	out := make([]recruitment.Offer, 0)
	for _, o := range f.offers {
		if filter.Statut != nil && string(o.Statut) != *filter.Statut {
			continue
		}
		out = append(out, o)
	}
	return out, int64(len(out)), nil
}

func (f *fakeOfferRepo) Update(ctx context.Context, o recruitment.Offer) (recruitment.Offer, error) {
	f.offers[o.ID] = o
	return o, nil
}

func (f *fakeOfferRepo) Delete(ctx context.Context, id string) ([]string, error) {
	if _, ok := f.offers[id]; !ok {
		return nil, recruitment.ErrOfferNotFound
	}
	var keys []string
	for cid, c := range f.candidates {
		if c.OffreID == id {
			keys = append(keys, c.CV)
			delete(f.candidates, cid)
		}
	}
	delete(f.offers, id)
	return keys, nil
}

func (f *fakeOfferRepo) AddCandidate(ctx context.Context, c recruitment.Candidate) (recruitment.Candidate, error) {
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now()
	f.candidates[c.ID] = c
	return c, nil
}

func (f *fakeOfferRepo) GetCandidate(ctx context.Context, offreID, candidatID string) (recruitment.Candidate, error) {
	c, ok := f.candidates[candidatID]
	if !ok || c.OffreID != offreID {
		return recruitment.Candidate{}, recruitment.ErrCandidateNotFound
	}
	return c, nil
}

func (f *fakeOfferRepo) UpdateCandidateStatus(ctx context.Context, offreID, candidatID string, statut recruitment.CandidateStatus) (recruitment.Candidate, error) {
	c, err := f.GetCandidate(ctx, offreID, candidatID)
	if err != nil {
		return recruitment.Candidate{}, err
	}
	c.Statut = statut
	f.candidates[c.ID] = c
	return c, nil
}

func (f *fakeOfferRepo) DeleteCandidate(ctx context.Context, offreID, candidatID string) error {
	if _, err := f.GetCandidate(ctx, offreID, candidatID); err != nil {
		return err
	}
	delete(f.candidates, candidatID)
	return nil
}

func (f *fakeOfferRepo) HasApplied(ctx context.Context, offreID, email string) (bool, error) {
	for _, c := range f.candidates {
		if c.OffreID == offreID && strings.EqualFold(c.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

type fixture struct {
	svc  *RecruitmentServiceImpl
	root string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	local, err := storage.NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	svc := NewRecruitmentService(testutil.Tx{}, newFakeOfferRepo(), file.NewFileService(local),
		metrics.NewCollector(prometheus.NewRegistry()), time.UTC).(*RecruitmentServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC) }
	return &fixture{svc: svc, root: local.Root()}
}

func application(offreID, email, filename string) recruitment.ApplyRequest {
	body := "%PDF-1.4 cv"
	return recruitment.ApplyRequest{
		OffreID: offreID, Nom: "Barry", Prenom: "Ousmane", Email: email,
		Lettre: "<script>x</script>Motivé", CVFilename: filename, CVSize: int64(len(body)), CV: strings.NewReader(body),
	}
}

func TestApply_StoresCandidateAndCV(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	deadline := "2024-03-15"
	offer, err := f.svc.CreateOffer(ctx, recruitment.CreateOfferRequest{Titre: "Comptable", DateLimite: &deadline})
	require.NoError(t, err)
	assert.Equal(t, "CDI", offer.TypeContrat)

	res, err := f.svc.Apply(ctx, application(offer.ID, "Ousmane@Mail.com", "cv.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "ousmane@mail.com", res.Email)
	assert.Equal(t, "Reçue", res.Statut)
	assert.Equal(t, "Motivé", res.Lettre)
	require.True(t, strings.HasPrefix(res.CV, "/uploads/cv/"+offer.ID+"/"))
	assert.FileExists(t, filepath.Join(f.root, strings.TrimPrefix(res.CV, "/uploads/")))

	_, err = f.svc.Apply(ctx, application(offer.ID, "ousmane@mail.com", "cv.pdf"))
	assert.ErrorIs(t, err, recruitment.ErrAlreadyApplied)

	full, err := f.svc.GetOffer(ctx, offer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), full.NombreCandidats)
}

func TestApply_RejectsBadCVExtension(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	offer, err := f.svc.CreateOffer(ctx, recruitment.CreateOfferRequest{Titre: "Chauffeur"})
	require.NoError(t, err)

	_, err = f.svc.Apply(ctx, application(offer.ID, "a@mail.com", "cv.exe"))
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "cv", verrs[0].Field)
}

func TestApply_ClosedOrExpired(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	past := "2024-03-14"
	expired, err := f.svc.CreateOffer(ctx, recruitment.CreateOfferRequest{Titre: "Stagiaire", DateLimite: &past})
	require.NoError(t, err)
	_, err = f.svc.Apply(ctx, application(expired.ID, "a@mail.com", "cv.pdf"))
	assert.ErrorIs(t, err, recruitment.ErrOfferClosed)

	open, err := f.svc.CreateOffer(ctx, recruitment.CreateOfferRequest{Titre: "Juriste"})
	require.NoError(t, err)
	closed := string(recruitment.OfferClosed)
	_, err = f.svc.UpdateOffer(ctx, recruitment.UpdateOfferRequest{ID: open.ID, Statut: &closed})
	require.NoError(t, err)
	_, err = f.svc.Apply(ctx, application(open.ID, "a@mail.com", "cv.pdf"))
	assert.ErrorIs(t, err, recruitment.ErrOfferClosed)

	public, err := f.svc.ListPublicOffers(ctx)
	require.NoError(t, err)
	for _, o := range public {
		assert.NotEqual(t, open.ID, o.ID)
	}
}

func TestDeleteOffer_RemovesCVs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	offer, err := f.svc.CreateOffer(ctx, recruitment.CreateOfferRequest{Titre: "Développeur Go"})
	require.NoError(t, err)
	first, err := f.svc.Apply(ctx, application(offer.ID, "a@mail.com", "cv.pdf"))
	require.NoError(t, err)
	second, err := f.svc.Apply(ctx, application(offer.ID, "b@mail.com", "cv.docx"))
	require.NoError(t, err)

	retained, err := f.svc.UpdateCandidateStatus(ctx, recruitment.UpdateCandidateRequest{
		OffreID: offer.ID, CandidatID: first.ID, Statut: string(recruitment.CandidateRetained),
	})
	require.NoError(t, err)
	assert.Equal(t, "Retenue", retained.Statut)

	require.NoError(t, f.svc.DeleteCandidate(ctx, offer.ID, second.ID))
	assert.NoFileExists(t, filepath.Join(f.root, strings.TrimPrefix(second.CV, "/uploads/")))

	require.NoError(t, f.svc.DeleteOffer(ctx, offer.ID))
	_, err = os.Stat(filepath.Join(f.root, strings.TrimPrefix(first.CV, "/uploads/")))
	assert.True(t, os.IsNotExist(err))

	_, err = f.svc.GetOffer(ctx, offer.ID)
	assert.ErrorIs(t, err, recruitment.ErrOfferNotFound)
}
