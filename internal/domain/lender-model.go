package domain

import "gorm.io/gorm"

type LenderOffer struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`

	Amount       float64 `gorm:"not null" json:"amount"`
	InterestRate float64 `gorm:"not null" json:"interest_rate"`
	Wallet       string  `gorm:"not null" json:"wallet"`

	gorm.Model
}
