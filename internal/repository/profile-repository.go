package repository

import (
	"errors"

	"github.com/ayonpaul8906/trustbridge-new/internal/domain"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	CreateProfile(profile *domain.Profile) error
	FindByUserID(userID uint) (*domain.Profile, error)
	SaveProfile(profile *domain.Profile) error
	ListByRole(role string) ([]domain.Profile, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) CreateProfile(profile *domain.Profile) error {
	if profile == nil {
		return errors.New("nil profile")
	}
	return r.db.Create(profile).Error
}

func (r *profileRepository) FindByUserID(userID uint) (*domain.Profile, error) {
	profile := &domain.Profile{}
	if err := r.db.First(profile, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *profileRepository) SaveProfile(profile *domain.Profile) error {
	if profile == nil {
		return errors.New("nil profile")
	}
	return r.db.Save(profile).Error
}

func (r *profileRepository) ListByRole(role string) ([]domain.Profile, error) {
	var profiles []domain.Profile
	err := r.db.Where("role = ?", role).Order("created_at ASC").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}
