package repository

import (
	"errors"

	"github.com/ayonpaul8906/trustbridge-new/internal/domain"
	"gorm.io/gorm"
)

type LenderRepository interface {
	CreateOffer(offer *domain.LenderOffer) error
	ListOffersByUserID(userID uint) ([]domain.LenderOffer, error)
}

type lenderRepository struct {
	db *gorm.DB
}

func NewLenderRepository(db *gorm.DB) LenderRepository {
	return &lenderRepository{db: db}
}

func (r *lenderRepository) CreateOffer(offer *domain.LenderOffer) error {
	if offer == nil {
		return errors.New("nil offer")
	}
	return r.db.Create(offer).Error
}

func (r *lenderRepository) ListOffersByUserID(userID uint) ([]domain.LenderOffer, error) {
	var offers []domain.LenderOffer
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&offers).Error
	if err != nil {
		return nil, err
	}
	return offers, nil
}
