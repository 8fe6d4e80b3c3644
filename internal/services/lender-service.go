package services

import (
	"errors"
	"strings"
	"time"

	"github.com/ayonpaul8906/trustbridge-new/internal/domain"
	"github.com/ayonpaul8906/trustbridge-new/internal/dto"
	"github.com/ayonpaul8906/trustbridge-new/internal/repository"
)

type LenderService interface {
	// RegisterLender switches an authenticated account to the lender role.
	RegisterLender(userID uint) error
	PostOffer(userID uint, input dto.LenderOfferRequest) (*dto.LenderOfferResponse, error)
	ListOffers(userID uint) ([]dto.LenderOfferResponse, error)
	// ListBorrowers returns every borrower profile with its current trust
	// score, for the lender dashboard.
	ListBorrowers() ([]dto.BorrowerSummary, error)
}

type lenderService struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	lenders  repository.LenderRepository
	scores   repository.TrustScoreRepository
}

func NewLenderService(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	lenders repository.LenderRepository,
	scores repository.TrustScoreRepository,
) LenderService {
	return &lenderService{
		users:    users,
		profiles: profiles,
		lenders:  lenders,
		scores:   scores,
	}
}

func (s *lenderService) RegisterLender(userID uint) error {
	if userID == 0 {
		return domain.ErrMissingInput
	}

	user, err := s.users.FindUserById(userID)
	if err != nil || user == nil {
		return errors.New("user not found")
	}
	if user.Role == domain.RoleLender {
		return nil
	}

	user.Role = domain.RoleLender
	if err := s.users.SaveUser(user); err != nil {
		return err
	}

	if profile, err := s.profiles.FindByUserID(userID); err == nil && profile != nil {
		profile.Role = domain.RoleLender
		if err := s.profiles.SaveProfile(profile); err != nil {
			return err
		}
	}
	return nil
}

func (s *lenderService) PostOffer(userID uint, input dto.LenderOfferRequest) (*dto.LenderOfferResponse, error) {
	if userID == 0 {
		return nil, domain.ErrMissingInput
	}
	if input.Amount <= 0 {
		return nil, &domain.ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if input.InterestRate <= 0 {
		return nil, &domain.ValidationError{Field: "interest_rate", Reason: "must be positive"}
	}
	if strings.TrimSpace(input.Wallet) == "" {
		return nil, &domain.ValidationError{Field: "wallet", Reason: "is required"}
	}

	offer := &domain.LenderOffer{
		UserID:       userID,
		Amount:       input.Amount,
		InterestRate: input.InterestRate,
		Wallet:       strings.TrimSpace(input.Wallet),
	}
	if err := s.lenders.CreateOffer(offer); err != nil {
		return nil, err
	}

	return offerToResponse(offer), nil
}

func (s *lenderService) ListOffers(userID uint) ([]dto.LenderOfferResponse, error) {
	if userID == 0 {
		return nil, domain.ErrMissingInput
	}
	offers, err := s.lenders.ListOffersByUserID(userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LenderOfferResponse, 0, len(offers))
	for i := range offers {
		out = append(out, *offerToResponse(&offers[i]))
	}
	return out, nil
}

func (s *lenderService) ListBorrowers() ([]dto.BorrowerSummary, error) {
	profiles, err := s.profiles.ListByRole(domain.RoleBorrower)
	if err != nil {
		return nil, err
	}

	out := make([]dto.BorrowerSummary, 0, len(profiles))
	for _, p := range profiles {
		summary := dto.BorrowerSummary{
			UserID:      p.UserID,
			FullName:    p.FullName,
			Email:       p.Email,
			LoanPurpose: p.LoanPurpose,
		}
		if score, err := s.scores.FindOrCreate(p.UserID); err == nil {
			summary.TrustScore = score.Current
		}
		out = append(out, summary)
	}
	return out, nil
}

func offerToResponse(offer *domain.LenderOffer) *dto.LenderOfferResponse {
	return &dto.LenderOfferResponse{
		OfferID:      offer.ID,
		Amount:       offer.Amount,
		InterestRate: offer.InterestRate,
		Wallet:       offer.Wallet,
		CreatedAt:    offer.CreatedAt.Format(time.RFC3339),
	}
}
