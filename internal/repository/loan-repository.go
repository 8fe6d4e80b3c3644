package repository

import (
	"errors"

	"github.com/ayonpaul8906/trustbridge-new/internal/domain"
	"gorm.io/gorm"
)

type LoanRepository interface {
	CreateLoan(loan *domain.Loan) error
	FindByID(loanID uint) (*domain.Loan, error)
	ListByUserID(userID uint) ([]domain.Loan, error)
	SetStatus(loanID uint, status domain.LoanStatus) error
}

type loanRepository struct {
	db *gorm.DB
}

func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) CreateLoan(loan *domain.Loan) error {
	if loan == nil {
		return errors.New("nil loan")
	}
	return r.db.Create(loan).Error
}

func (r *loanRepository) FindByID(loanID uint) (*domain.Loan, error) {
	loan := &domain.Loan{}
	if err := r.db.First(loan, loanID).Error; err != nil {
		return nil, err
	}
	return loan, nil
}

func (r *loanRepository) ListByUserID(userID uint) ([]domain.Loan, error) {
	var loans []domain.Loan
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&loans).Error
	if err != nil {
		return nil, err
	}
	return loans, nil
}

func (r *loanRepository) SetStatus(loanID uint, status domain.LoanStatus) error {
	res := r.db.Model(&domain.Loan{}).
		Where("id = ? AND status = ?", loanID, domain.LoanStatusPending).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
