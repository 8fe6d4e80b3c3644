package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/ayonpaul8906/trustbridge-new/internal/domain"
	"github.com/ayonpaul8906/trustbridge-new/internal/dto"
	"github.com/ayonpaul8906/trustbridge-new/internal/helper"
	"github.com/ayonpaul8906/trustbridge-new/internal/helper/utils"
	"github.com/ayonpaul8906/trustbridge-new/internal/interfaces"
	"github.com/ayonpaul8906/trustbridge-new/internal/repository"
	pkgutils "github.com/ayonpaul8906/trustbridge-new/pkg/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	passcodeDigits = 6

	// PasscodeTTL bounds both the redis entry and the expiry announced in the
	// passcode event; the store is wired with this same value.
	PasscodeTTL = 10 * time.Minute

	imageMaxWidth   = 1200
	imageJPGQuality = 85
)

// RegistrationService drives the borrower registration workflow: two
// independent gates (passcode, identity) that must both pass before the
// credential is created and the profile record persisted.
type RegistrationService interface {
	RequestPasscode(ctx context.Context, email string) error
	ConfirmPasscode(ctx context.Context, email, code string) error
	VerifyIdentity(ctx context.Context, input dto.IdentityEvidence) (*dto.IdentityVerifyResponse, error)
	SubmitRegistration(ctx context.Context, draft dto.RegistrationDraft) (*dto.RegistrationResult, error)
	AttemptStatus(email string) (*dto.AttemptStatusResponse, error)
}

type registrationService struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	attempts repository.AttemptRepository

	passcodes interfaces.PasscodeStore
	vision    interfaces.VerificationClient
	uploader  interfaces.Uploader
	producer  interfaces.ProducerHandler

	registrationOpen bool
}

func NewRegistrationService(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	attempts repository.AttemptRepository,
	passcodes interfaces.PasscodeStore,
	vision interfaces.VerificationClient,
	uploader interfaces.Uploader,
	producer interfaces.ProducerHandler,
	registrationOpen bool,
) RegistrationService {
	return &registrationService{
		users:            users,
		profiles:         profiles,
		attempts:         attempts,
		passcodes:        passcodes,
		vision:           vision,
		uploader:         uploader,
		producer:         producer,
		registrationOpen: registrationOpen,
	}
}

func (s *registrationService) RequestPasscode(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return domain.ErrMissingInput
	}

	attempt, err := s.attempts.FindOrCreate(email)
	if err != nil {
		return err
	}

	// email is pinned once confirmed; nothing left to send
	if attempt.PasscodeConfirmed {
		return nil
	}

	code, err := utils.RandomPasscode(passcodeDigits)
	if err != nil {
		return errors.New("failed to generate passcode")
	}

	if err := s.passcodes.Put(ctx, email, utils.Sha256Hex(code)); err != nil {
		return fmt.Errorf("failed to store passcode: %w", err)
	}

	if s.producer != nil {
		exp := time.Now().Add(PasscodeTTL)
		payload, err := json.Marshal(map[string]string{
			"email":      email,
			"code":       code,
			"expires_at": exp.Format(time.RFC3339),
		})
		if err != nil {
			return fmt.Errorf("encode passcode event: %w", err)
		}
		if err := s.producer.PublishMessage([]byte("user.passcode"), payload); err != nil {
			log.Printf("passcode event publish failed: %v", err)
		}
	}

	return nil
}

func (s *registrationService) ConfirmPasscode(ctx context.Context, email, code string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return domain.ErrMissingInput
	}

	attempt, err := s.attempts.FindByEmail(email)
	if err != nil {
		return err
	}

	// confirming twice is a no-op; the gate never resets within an attempt
	if attempt.PasscodeConfirmed {
		return nil
	}

	ok, err := s.passcodes.Consume(ctx, email, utils.Sha256Hex(code))
	if err != nil {
		return fmt.Errorf("failed to check passcode: %w", err)
	}
	if !ok {
		return domain.ErrPasscodeRejected
	}

	attempt.PasscodeConfirmed = true
	return s.attempts.SaveAttempt(attempt)
}

func (s *registrationService) VerifyIdentity(ctx context.Context, input dto.IdentityEvidence) (*dto.IdentityVerifyResponse, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" {
		return nil, domain.ErrMissingInput
	}

	name := strings.TrimSpace(input.FullName)
	phone := strings.TrimSpace(input.Phone)
	if name == "" || phone == "" {
		return nil, domain.ErrMissingProfileFields
	}

	if len(input.Selfie.Bytes) == 0 || len(input.Document.Bytes) == 0 {
		return nil, domain.ErrMissingEvidence
	}

	attempt, err := s.attempts.FindOrCreate(email)
	if err != nil {
		return nil, err
	}

	// already matched: re-verification is disabled, not re-run
	if attempt.IdentityConfirmed {
		return &dto.IdentityVerifyResponse{
			Match:       true,
			Message:     "identity already verified",
			SelfieURL:   attempt.SelfieURL,
			DocumentURL: attempt.DocumentURL,
		}, nil
	}

	selfie, err := pkgutils.NormalizeToJPG(input.Selfie.Bytes, imageMaxWidth, imageJPGQuality)
	if err != nil {
		return nil, fmt.Errorf("normalize selfie failed: %w", err)
	}
	document, err := pkgutils.NormalizeToJPG(input.Document.Bytes, imageMaxWidth, imageJPGQuality)
	if err != nil {
		return nil, fmt.Errorf("normalize document failed: %w", err)
	}

	folder := fmt.Sprintf("trustbridge/attempts/%d", attempt.ID)
	selfieURL, err := s.uploader.UploadBytes(ctx, folder, "selfie_"+uuid.NewString(), selfie)
	if err != nil {
		return nil, fmt.Errorf("upload selfie failed: %w", err)
	}
	docURL, err := s.uploader.UploadBytes(ctx, folder, "document_"+uuid.NewString(), document)
	if err != nil {
		return nil, fmt.Errorf("upload document failed: %w", err)
	}

	res, err := s.vision.VerifyFace(
		ctx,
		strconv.FormatUint(uint64(attempt.ID), 10),
		name,
		phone,
		"selfie.jpg", bytes.NewReader(selfie),
		"document.jpg", bytes.NewReader(document),
	)
	if err != nil {
		return nil, err
	}

	attempt.SelfieURL = selfieURL
	attempt.DocumentURL = docURL
	attempt.FaceMatchScore = &res.Confidence
	if res.Match {
		attempt.IdentityConfirmed = true
	}
	if err := s.attempts.SaveAttempt(attempt); err != nil {
		return nil, err
	}

	return &dto.IdentityVerifyResponse{
		Match:       res.Match,
		Confidence:  res.Confidence,
		Message:     res.Message,
		SelfieURL:   selfieURL,
		DocumentURL: docURL,
	}, nil
}

func (s *registrationService) SubmitRegistration(ctx context.Context, draft dto.RegistrationDraft) (*dto.RegistrationResult, error) {
	email := strings.TrimSpace(strings.ToLower(draft.Email))
	if email == "" {
		return nil, domain.ErrMissingInput
	}

	// gates first: an unmet gate blocks submission before anything is sent
	attempt, err := s.attempts.FindByEmail(email)
	if err != nil {
		if errors.Is(err, domain.ErrAttemptNotFound) {
			return nil, &domain.GateError{Gate: domain.GatePasscode}
		}
		return nil, err
	}
	if !attempt.PasscodeConfirmed {
		return nil, &domain.GateError{Gate: domain.GatePasscode}
	}
	if !attempt.IdentityConfirmed {
		return nil, &domain.GateError{Gate: domain.GateIdentity}
	}

	if err := utils.ValidateDraft(draft); err != nil {
		return nil, err
	}

	user, err := s.createCredential(email, draft.Password)
	if err != nil {
		return nil, err
	}

	profile := &domain.Profile{
		UserID:        user.ID,
		FullName:      strings.TrimSpace(draft.FullName),
		DOB:           strings.TrimSpace(draft.DOB),
		Gender:        strings.ToLower(strings.TrimSpace(draft.Gender)),
		Phone:         strings.TrimSpace(draft.Phone),
		Email:         email,
		MonthlyIncome: strings.TrimSpace(draft.MonthlyIncome),
		Education:     strings.TrimSpace(draft.Education),
		LoanPurpose:   strings.TrimSpace(draft.LoanPurpose),
		AgreedToTerms: draft.AgreedToTerms,
		Role:          domain.RoleBorrower,
	}

	if err := s.profiles.CreateProfile(profile); err != nil {
		// the credential exists but the profile record does not; surfaced
		// distinctly so the client can retry the profile write
		log.Printf("profile write failed after credential creation (user %d): %v", user.ID, err)
		return nil, fmt.Errorf("%w: %v", domain.ErrPartialRegistration, err)
	}

	if err := s.attempts.DeleteAttempt(attempt); err != nil {
		log.Printf("failed to close registration attempt %d: %v", attempt.ID, err)
	}

	if s.producer != nil {
		payload, err := json.Marshal(map[string]any{
			"user_id": user.ID,
			"email":   user.Email,
			"role":    user.Role,
		})
		if err == nil {
			_ = s.producer.PublishMessage([]byte("user.registered"), payload)
		}
	}

	return &dto.RegistrationResult{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}, nil
}

// createCredential asks the credential store for a new account and maps its
// failure modes onto the workflow error set.
func (s *registrationService) createCredential(email, password string) (*domain.User, error) {
	if !s.registrationOpen {
		return nil, domain.ErrProviderDisabled
	}
	if !utils.IsValidEmail(email) {
		return nil, domain.ErrInvalidEmail
	}
	if !utils.IsStrongPassword(password) {
		return nil, domain.ErrWeakPassword
	}

	if existing, err := s.users.FindUserByEmail(email); err == nil && existing != nil && existing.ID != 0 {
		return nil, domain.ErrDuplicateEmail
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.ErrWeakPassword
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hashed),
		Role:         domain.RoleBorrower,
		Status:       "active",
	}

	created, err := s.users.CreateUser(user)
	if err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	if created == nil || created.ID == 0 {
		return nil, errors.New("failed to create user")
	}
	return created, nil
}

func (s *registrationService) AttemptStatus(email string) (*dto.AttemptStatusResponse, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, domain.ErrMissingInput
	}

	attempt, err := s.attempts.FindByEmail(email)
	if err != nil {
		return nil, err
	}

	return &dto.AttemptStatusResponse{
		Email:             attempt.Email,
		PasscodeConfirmed: attempt.PasscodeConfirmed,
		IdentityConfirmed: attempt.IdentityConfirmed,
	}, nil
}
