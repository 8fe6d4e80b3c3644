package services

import (
	"errors"
	"strings"
	"time"

	"github.com/ayonpaul8906/trustbridge-new/internal/domain"
	"github.com/ayonpaul8906/trustbridge-new/internal/dto"
	"github.com/ayonpaul8906/trustbridge-new/internal/helper"
	"github.com/ayonpaul8906/trustbridge-new/internal/repository"
	"gorm.io/gorm"
)

type UserService interface {
	Login(input dto.UserLogin) (*domain.User, error)
	GetProfile(userID uint) (*dto.UserProfileResponse, error)
	UpdateProfile(userID uint, input dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
	HasRole(userID uint, role string) (bool, error)
}

type userService struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	auth     helper.Auth
}

func NewUserService(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	auth helper.Auth,
) UserService {
	return &userService{
		users:    users,
		profiles: profiles,
		auth:     auth,
	}
}

func (s *userService) Login(input dto.UserLogin) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := strings.TrimSpace(input.Password)

	if email == "" || password == "" {
		return nil, errors.New("invalid email or password")
	}

	user, err := s.users.FindUserByEmail(email)
	if err != nil || user == nil || user.ID == 0 {
		return nil, errors.New("invalid email or password")
	}

	if user.Status != "" && user.Status != "active" {
		return nil, errors.New("account is not active")
	}

	if err := s.auth.VerifyPassword(password, user.PasswordHash); err != nil {
		return nil, errors.New("invalid email or password")
	}

	return user, nil
}

func (s *userService) GetProfile(userID uint) (*dto.UserProfileResponse, error) {
	if userID == 0 {
		return nil, errors.New("invalid user id")
	}

	profile, err := s.profiles.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	return profileToResponse(profile), nil
}

// UpdateProfile patches the profile record. If the record is missing (the
// partial-registration window) it is created from the account plus whatever
// fields the client resubmits.
func (s *userService) UpdateProfile(userID uint, input dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	if userID == 0 {
		return nil, errors.New("invalid user id")
	}

	profile, err := s.profiles.FindByUserID(userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user, uerr := s.users.FindUserById(userID)
		if uerr != nil || user == nil {
			return nil, errors.New("user not found")
		}
		profile = &domain.Profile{
			UserID: userID,
			Email:  user.Email,
			Role:   user.Role,
		}
	}

	if input.FullName != nil {
		fn := strings.TrimSpace(*input.FullName)
		if fn == "" {
			return nil, errors.New("full_name cannot be empty")
		}
		profile.FullName = fn
	}
	if input.Phone != nil {
		p := strings.TrimSpace(*input.Phone)
		if p == "" {
			return nil, errors.New("phone cannot be empty")
		}
		profile.Phone = p
	}
	if input.MonthlyIncome != nil {
		profile.MonthlyIncome = strings.TrimSpace(*input.MonthlyIncome)
	}
	if input.Education != nil {
		profile.Education = strings.TrimSpace(*input.Education)
	}
	if input.LoanPurpose != nil {
		profile.LoanPurpose = strings.TrimSpace(*input.LoanPurpose)
	}

	if profile.ID == 0 {
		if err := s.profiles.CreateProfile(profile); err != nil {
			return nil, err
		}
	} else if err := s.profiles.SaveProfile(profile); err != nil {
		return nil, err
	}

	return profileToResponse(profile), nil
}

func (s *userService) HasRole(userID uint, role string) (bool, error) {
	if userID == 0 {
		return false, errors.New("invalid user id")
	}
	user, err := s.users.FindUserById(userID)
	if err != nil || user == nil {
		return false, errors.New("user not found")
	}
	return user.Role == role, nil
}

func profileToResponse(p *domain.Profile) *dto.UserProfileResponse {
	return &dto.UserProfileResponse{
		UserID:        p.UserID,
		Email:         p.Email,
		Role:          p.Role,
		FullName:      p.FullName,
		DOB:           p.DOB,
		Gender:        p.Gender,
		Phone:         p.Phone,
		MonthlyIncome: p.MonthlyIncome,
		Education:     p.Education,
		LoanPurpose:   p.LoanPurpose,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
}
