package repository

import (
	"errors"

	"github.com/ayonpaul8906/trustbridge-new/internal/domain"
	"gorm.io/gorm"
)

type AttemptRepository interface {
	// FindOrCreate returns the open attempt for the email, creating it if
	// this is the first contact of a new registration.
	FindOrCreate(email string) (*domain.RegistrationAttempt, error)
	FindByEmail(email string) (*domain.RegistrationAttempt, error)
	SaveAttempt(attempt *domain.RegistrationAttempt) error
	DeleteAttempt(attempt *domain.RegistrationAttempt) error
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) FindOrCreate(email string) (*domain.RegistrationAttempt, error) {
	attempt := &domain.RegistrationAttempt{}
	err := r.db.Where(domain.RegistrationAttempt{Email: email}).FirstOrCreate(attempt).Error
	if err != nil {
		return nil, err
	}
	return attempt, nil
}

func (r *attemptRepository) FindByEmail(email string) (*domain.RegistrationAttempt, error) {
	attempt := &domain.RegistrationAttempt{}
	if err := r.db.First(attempt, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAttemptNotFound
		}
		return nil, err
	}
	return attempt, nil
}

func (r *attemptRepository) SaveAttempt(attempt *domain.RegistrationAttempt) error {
	if attempt == nil {
		return errors.New("nil attempt")
	}
	return r.db.Save(attempt).Error
}

func (r *attemptRepository) DeleteAttempt(attempt *domain.RegistrationAttempt) error {
	if attempt == nil {
		return errors.New("nil attempt")
	}
	return r.db.Delete(attempt).Error
}
