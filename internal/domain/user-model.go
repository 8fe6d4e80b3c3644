package domain

import "gorm.io/gorm"

const (
	RoleBorrower = "borrower"
	RoleLender   = "lender"
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `json:"-"`
	Role         string `gorm:"type:varchar(20);not null" json:"role"`
	Status       string `gorm:"type:varchar(20);not null;default:active" json:"status"`
	gorm.Model
}

// Profile is the persisted user record written once after registration
// succeeds. It carries the registration draft minus the password fields.
type Profile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	FullName      string `gorm:"not null" json:"full_name"`
	DOB           string `gorm:"type:varchar(10)" json:"dob"` // DD/MM/YYYY
	Gender        string `gorm:"type:varchar(10)" json:"gender"`
	Phone         string `gorm:"type:varchar(20)" json:"phone"`
	Email         string `gorm:"not null" json:"email"`
	MonthlyIncome string `gorm:"type:varchar(20)" json:"monthly_income"`
	Education     string `gorm:"type:varchar(30)" json:"education"`
	LoanPurpose   string `gorm:"type:text" json:"loan_purpose"`
	AgreedToTerms bool   `json:"agreed_to_terms"`
	Role          string `gorm:"type:varchar(20);not null" json:"role"`

	gorm.Model
}
