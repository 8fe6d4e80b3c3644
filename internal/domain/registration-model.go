package domain

import "gorm.io/gorm"

// RegistrationAttempt tracks the two verification gates for one registration.
// Each gate flips false -> true at most once per attempt; starting a new
// attempt (after the previous one completes) gets a fresh row.
type RegistrationAttempt struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Email string `gorm:"uniqueIndex;not null" json:"email"`

	PasscodeConfirmed bool `gorm:"not null;default:false" json:"passcode_confirmed"`
	IdentityConfirmed bool `gorm:"not null;default:false" json:"identity_confirmed"`

	// filled by the identity gate
	FaceMatchScore *float64 `json:"face_match_score,omitempty"`
	SelfieURL      string   `gorm:"type:text" json:"selfie_url,omitempty"`
	DocumentURL    string   `gorm:"type:text" json:"document_url,omitempty"`

	gorm.Model
}
