package repository

import (
	"errors"

	"github.com/ayonpaul8906/trustbridge-new/internal/domain"
	"gorm.io/gorm"
)

type TrustScoreRepository interface {
	FindOrCreate(userID uint) (*domain.TrustScore, error)
	SaveScore(score *domain.TrustScore) error
	AddHistory(entry *domain.ScoreHistoryEntry) error
	ListHistory(userID uint) ([]domain.ScoreHistoryEntry, error)

	AddDocument(doc *domain.FinancialDocument) error
	RemoveDocument(userID, docID uint) error
	ListDocuments(userID uint) ([]domain.FinancialDocument, error)
}

type trustScoreRepository struct {
	db *gorm.DB
}

func NewTrustScoreRepository(db *gorm.DB) TrustScoreRepository {
	return &trustScoreRepository{db: db}
}

func (r *trustScoreRepository) FindOrCreate(userID uint) (*domain.TrustScore, error) {
	score := &domain.TrustScore{}
	err := r.db.Where(domain.TrustScore{UserID: userID}).FirstOrCreate(score).Error
	if err != nil {
		return nil, err
	}
	return score, nil
}

func (r *trustScoreRepository) SaveScore(score *domain.TrustScore) error {
	if score == nil {
		return errors.New("nil score")
	}
	return r.db.Save(score).Error
}

func (r *trustScoreRepository) AddHistory(entry *domain.ScoreHistoryEntry) error {
	return r.db.Create(entry).Error
}

func (r *trustScoreRepository) ListHistory(userID uint) ([]domain.ScoreHistoryEntry, error) {
	var entries []domain.ScoreHistoryEntry
	err := r.db.Where("user_id = ?", userID).Order("id ASC").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *trustScoreRepository) AddDocument(doc *domain.FinancialDocument) error {
	return r.db.Create(doc).Error
}

func (r *trustScoreRepository) RemoveDocument(userID, docID uint) error {
	res := r.db.Where("user_id = ?", userID).Delete(&domain.FinancialDocument{}, docID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListDocuments preserves upload order.
func (r *trustScoreRepository) ListDocuments(userID uint) ([]domain.FinancialDocument, error) {
	var docs []domain.FinancialDocument
	err := r.db.Where("user_id = ?", userID).Order("id ASC").Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}
