package domain

import (
	"time"

	"gorm.io/gorm"
)

const (
	ScorePhaseIdentity  = "identity"
	ScorePhaseFinancial = "financial"
)

// TrustScore holds the current 0-100 score for a user. Each successful
// scoring response replaces Current wholesale.
type TrustScore struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	Current int `gorm:"not null;default:0" json:"current"`

	// identity phase locks once it succeeds
	IdentityScored    bool       `gorm:"not null;default:false" json:"identity_scored"`
	IdentityScoredAt  *time.Time `json:"identity_scored_at,omitempty"`
	FinancialScoredAt *time.Time `json:"financial_scored_at,omitempty"`

	gorm.Model
}

type ScoreHistoryEntry struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
	Phase  string `gorm:"type:varchar(20);not null" json:"phase"`
	Score  int    `gorm:"not null" json:"score"`
	Reason string `gorm:"type:text" json:"reason"`
	gorm.Model
}

// FinancialDocument is one entry of the accumulating phase-2 upload list.
// Entries are additive, individually removable and never deduplicated.
type FinancialDocument struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	Filename string `gorm:"not null" json:"filename"`
	FileURL  string `gorm:"type:text;not null" json:"file_url"`
	gorm.Model
}
