package domain

import (
	"time"

	"gorm.io/gorm"
)

type LoanStatus string

const (
	LoanStatusPending  LoanStatus = "pending"
	LoanStatusApproved LoanStatus = "approved"
	LoanStatusRejected LoanStatus = "rejected"
)

type Loan struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`

	Amount  float64    `gorm:"not null" json:"amount"`
	Purpose string     `gorm:"type:text;not null" json:"purpose"`
	Wallet  string     `gorm:"not null" json:"wallet"`
	Status  LoanStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	DueDate time.Time  `gorm:"not null" json:"due_date"`

	gorm.Model
}
