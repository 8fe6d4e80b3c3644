package services

import (
	"testing"

	"github.com/ayonpaul8906/trustbridge-new/internal/domain"
	"github.com/ayonpaul8906/trustbridge-new/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lenderFixture struct {
	users    *fakeUserRepo
	profiles *fakeProfileRepo
	lenders  *fakeLenderRepo
	scores   *fakeScoreRepo
	svc      LenderService
}

func newLenderFixture() *lenderFixture {
	f := &lenderFixture{
		users:    newFakeUserRepo(),
		profiles: newFakeProfileRepo(),
		lenders:  newFakeLenderRepo(),
		scores:   newFakeScoreRepo(),
	}
	f.svc = NewLenderService(f.users, f.profiles, f.lenders, f.scores)
	return f
}

func TestRegisterLender(t *testing.T) {
	f := newLenderFixture()
	u, _ := f.users.CreateUser(&domain.User{Email: "l@b.com", Role: domain.RoleBorrower, Status: "active"})
	require.NoError(t, f.profiles.CreateProfile(&domain.Profile{UserID: u.ID, Email: u.Email, Role: u.Role}))

	require.NoError(t, f.svc.RegisterLender(u.ID))

	assert.Equal(t, domain.RoleLender, f.users.users["l@b.com"].Role)
	profile, _ := f.profiles.FindByUserID(u.ID)
	assert.Equal(t, domain.RoleLender, profile.Role)

	// switching again is a no-op
	require.NoError(t, f.svc.RegisterLender(u.ID))
}

func TestPostOffer(t *testing.T) {
	f := newLenderFixture()

	res, err := f.svc.PostOffer(3, dto.LenderOfferRequest{
		Amount:       5000,
		InterestRate: 2.5,
		Wallet:       "0xdef",
	})
	require.NoError(t, err)
	assert.NotZero(t, res.OfferID)

	offers, err := f.svc.ListOffers(3)
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, 5000.0, offers[0].Amount)
}

func TestPostOffer_Validation(t *testing.T) {
	f := newLenderFixture()

	cases := []struct {
		name  string
		input dto.LenderOfferRequest
		field string
	}{
		{"zero amount", dto.LenderOfferRequest{InterestRate: 2, Wallet: "0xdef"}, "amount"},
		{"zero rate", dto.LenderOfferRequest{Amount: 100, Wallet: "0xdef"}, "interest_rate"},
		{"missing wallet", dto.LenderOfferRequest{Amount: 100, InterestRate: 2}, "wallet"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.PostOffer(3, tc.input)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestListBorrowers(t *testing.T) {
	f := newLenderFixture()

	u, _ := f.users.CreateUser(&domain.User{Email: "b@b.com", Role: domain.RoleBorrower})
	require.NoError(t, f.profiles.CreateProfile(&domain.Profile{
		UserID:      u.ID,
		Email:       u.Email,
		FullName:    "Asha Rao",
		LoanPurpose: "tuition",
		Role:        domain.RoleBorrower,
	}))
	score, _ := f.scores.FindOrCreate(u.ID)
	score.Current = 72

	borrowers, err := f.svc.ListBorrowers()
	require.NoError(t, err)
	require.Len(t, borrowers, 1)

	assert.Equal(t, "Asha Rao", borrowers[0].FullName)
	assert.Equal(t, 72, borrowers[0].TrustScore)
	assert.Equal(t, "tuition", borrowers[0].LoanPurpose)
}
