package handlers

import (
	"errors"

	"github.com/ayonpaul8906/trustbridge-new/internal/domain"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// statusFor maps workflow errors onto HTTP statuses so every handler
// surfaces the same code for the same failure.
func statusFor(err error) int {
	var ve *domain.ValidationError
	var ge *domain.GateError

	switch {
	case errors.As(err, &ve):
		return fiber.StatusBadRequest
	case errors.As(err, &ge):
		return fiber.StatusPreconditionFailed
	case errors.Is(err, domain.ErrMissingInput),
		errors.Is(err, domain.ErrMissingEvidence),
		errors.Is(err, domain.ErrMissingProfileFields),
		errors.Is(err, domain.ErrMissingDocuments),
		errors.Is(err, domain.ErrNoDocuments),
		errors.Is(err, domain.ErrInvalidPhone),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrWeakPassword),
		errors.Is(err, domain.ErrPasscodeRejected):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrIdentityAlreadyScored),
		errors.Is(err, domain.ErrPhaseOrderViolation):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrAttemptNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.StatusNotFound
	// credential exists but the profile write failed; the client branches on
	// this status to route the user to a profile-repair retry
	case errors.Is(err, domain.ErrPartialRegistration):
		return fiber.StatusFailedDependency
	case errors.Is(err, domain.ErrProviderDisabled):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
