package services

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/ayonpaul8906/trustbridge-new/internal/domain"
	"github.com/ayonpaul8906/trustbridge-new/internal/dto"
	"github.com/ayonpaul8906/trustbridge-new/internal/repository"
)

const (
	loanTermDays        = 30
	monthlyInterestRate = 0.02
	dateLayout          = "2006-01-02"
)

type LoanService interface {
	RequestLoan(userID uint, input dto.LoanRequest) (*dto.LoanResponse, error)
	ListLoans(userID uint) ([]dto.LoanResponse, error)
	LoanStatus(userID, loanID uint) (*dto.LoanStatusResponse, error)
	DecideLoan(loanID uint, decision string) error
}

type loanService struct {
	loans repository.LoanRepository
}

func NewLoanService(loans repository.LoanRepository) LoanService {
	return &loanService{loans: loans}
}

func (s *loanService) RequestLoan(userID uint, input dto.LoanRequest) (*dto.LoanResponse, error) {
	if userID == 0 {
		return nil, domain.ErrMissingInput
	}
	if input.Amount <= 0 {
		return nil, &domain.ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if strings.TrimSpace(input.Purpose) == "" {
		return nil, &domain.ValidationError{Field: "purpose", Reason: "is required"}
	}
	if strings.TrimSpace(input.Wallet) == "" {
		return nil, &domain.ValidationError{Field: "wallet", Reason: "is required"}
	}

	loan := &domain.Loan{
		UserID:  userID,
		Amount:  input.Amount,
		Purpose: strings.TrimSpace(input.Purpose),
		Wallet:  strings.TrimSpace(input.Wallet),
		Status:  domain.LoanStatusPending,
		DueDate: time.Now().UTC().AddDate(0, 0, loanTermDays),
	}
	if err := s.loans.CreateLoan(loan); err != nil {
		return nil, err
	}

	return loanToResponse(loan), nil
}

func (s *loanService) ListLoans(userID uint) ([]dto.LoanResponse, error) {
	if userID == 0 {
		return nil, domain.ErrMissingInput
	}
	loans, err := s.loans.ListByUserID(userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LoanResponse, 0, len(loans))
	for i := range loans {
		out = append(out, *loanToResponse(&loans[i]))
	}
	return out, nil
}

func (s *loanService) LoanStatus(userID, loanID uint) (*dto.LoanStatusResponse, error) {
	loan, err := s.loans.FindByID(loanID)
	if err != nil {
		return nil, err
	}
	if loan.UserID != userID {
		return nil, errors.New("loan not found")
	}

	now := time.Now().UTC()
	return &dto.LoanStatusResponse{
		LoanID:            loan.ID,
		Principal:         loan.Amount,
		TotalDue:          TotalDue(loan.Amount, loan.CreatedAt, now),
		IssueDate:         loan.CreatedAt.UTC().Format(dateLayout),
		DueDate:           loan.DueDate.UTC().Format(dateLayout),
		CurrentDate:       now.Format(dateLayout),
		DocumentsReleased: now.After(loan.DueDate),
		Status:            string(loan.Status),
	}, nil
}

func (s *loanService) DecideLoan(loanID uint, decision string) error {
	decision = strings.TrimSpace(strings.ToLower(decision))
	if decision != string(domain.LoanStatusApproved) && decision != string(domain.LoanStatusRejected) {
		return &domain.ValidationError{Field: "decision", Reason: "must be 'approved' or 'rejected'"}
	}
	return s.loans.SetStatus(loanID, domain.LoanStatus(decision))
}

// TotalDue computes principal plus simple interest accrued since issue,
// pro-rated daily at the monthly rate.
func TotalDue(principal float64, issued, now time.Time) float64 {
	days := now.Sub(issued).Hours() / 24
	if days < 0 {
		days = 0
	}
	interest := principal * monthlyInterestRate * days / loanTermDays
	return math.Round((principal+interest)*100) / 100
}

func loanToResponse(loan *domain.Loan) *dto.LoanResponse {
	return &dto.LoanResponse{
		LoanID:    loan.ID,
		Amount:    loan.Amount,
		Purpose:   loan.Purpose,
		Wallet:    loan.Wallet,
		Status:    string(loan.Status),
		IssueDate: loan.CreatedAt.UTC().Format(dateLayout),
		DueDate:   loan.DueDate.UTC().Format(dateLayout),
	}
}
