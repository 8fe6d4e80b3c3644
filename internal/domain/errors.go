package domain

import (
	"errors"
	"fmt"
)

// Workflow errors. Validation and gate errors are raised before any external
// call; the rest map responses from the credential/profile/verification
// collaborators.
var (
	ErrMissingInput         = errors.New("required input is missing")
	ErrPasscodeRejected     = errors.New("invalid or expired passcode")
	ErrMissingEvidence      = errors.New("document image and selfie are both required")
	ErrMissingProfileFields = errors.New("full name and phone are required before identity verification")

	ErrDuplicateEmail   = errors.New("email already registered")
	ErrWeakPassword     = errors.New("password does not meet strength requirements")
	ErrInvalidEmail     = errors.New("email address is not valid")
	ErrProviderDisabled = errors.New("registration is currently disabled")

	// credential created but the profile write failed; the account exists
	// without a profile record and the client must retry the profile write
	ErrPartialRegistration = errors.New("account created but profile could not be saved")

	ErrInvalidPhone          = errors.New("phone number must be exactly 10 digits")
	ErrMissingDocuments      = errors.New("at least one identity document is required")
	ErrIdentityAlreadyScored = errors.New("identity documents already scored")
	ErrPhaseOrderViolation   = errors.New("identity scoring must complete before financial scoring")
	ErrNoDocuments           = errors.New("no financial documents uploaded")

	ErrAttemptNotFound = errors.New("registration attempt not found")
)

const (
	GatePasscode = "passcode"
	GateIdentity = "identity"
)

// GateError reports which verification gate blocked an action.
type GateError struct {
	Gate string
}

func (e *GateError) Error() string {
	return fmt.Sprintf("%s verification not completed", e.Gate)
}

// ValidationError is field-scoped and always precedes any network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
