package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ayonpaul8906/trustbridge-new/internal/clients/trustvision"
	"github.com/ayonpaul8906/trustbridge-new/internal/domain"
	"github.com/ayonpaul8906/trustbridge-new/internal/dto"
	"github.com/ayonpaul8906/trustbridge-new/internal/helper/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registrationFixture struct {
	users     *fakeUserRepo
	profiles  *fakeProfileRepo
	attempts  *fakeAttemptRepo
	passcodes *fakePasscodeStore
	vision    *fakeVision
	uploader  *fakeUploader
	producer  *fakeProducer
	svc       RegistrationService
}

func newRegistrationFixture(registrationOpen bool) *registrationFixture {
	f := &registrationFixture{
		users:     newFakeUserRepo(),
		profiles:  newFakeProfileRepo(),
		attempts:  newFakeAttemptRepo(),
		passcodes: newFakePasscodeStore(),
		vision:    &fakeVision{},
		uploader:  &fakeUploader{},
		producer:  &fakeProducer{},
	}
	f.svc = NewRegistrationService(
		f.users, f.profiles, f.attempts,
		f.passcodes, f.vision, f.uploader, f.producer,
		registrationOpen,
	)
	return f
}

func validDraft() dto.RegistrationDraft {
	return dto.RegistrationDraft{
		FullName:        "Asha Rao",
		DOB:             "12/04/1999",
		Gender:          "female",
		Phone:           "9876543210",
		Email:           "a@b.com",
		Password:        "Abcdef1!",
		ConfirmPassword: "Abcdef1!",
		MonthlyIncome:   "20k_50k",
		Education:       "undergraduate",
		LoanPurpose:     "tuition",
		AgreedToTerms:   true,
	}
}

func TestRequestPasscode(t *testing.T) {
	f := newRegistrationFixture(true)

	err := f.svc.RequestPasscode(context.Background(), "A@B.com ")
	require.NoError(t, err)

	assert.Equal(t, 1, f.passcodes.putCalls)
	assert.Contains(t, f.passcodes.stored, "a@b.com")

	require.Len(t, f.producer.messages, 1)
	assert.Equal(t, "user.passcode", f.producer.messages[0].key)
	assert.Contains(t, f.producer.messages[0].value, `"email":"a@b.com"`)
}

func TestRequestPasscode_PayloadIsValidJSON(t *testing.T) {
	f := newRegistrationFixture(true)

	// quoted local parts are legal in addresses and must not break the event
	email := `"we\"ird"@b.com`
	err := f.svc.RequestPasscode(context.Background(), email)
	require.NoError(t, err)

	require.Len(t, f.producer.messages, 1)
	var evt struct {
		Email     string `json:"email"`
		Code      string `json:"code"`
		ExpiresAt string `json:"expires_at"`
	}
	require.NoError(t, json.Unmarshal([]byte(f.producer.messages[0].value), &evt))
	assert.Equal(t, email, evt.Email)
	assert.Len(t, evt.Code, 6)
	assert.NotEmpty(t, evt.ExpiresAt)
}

func TestRequestPasscode_MissingEmail(t *testing.T) {
	f := newRegistrationFixture(true)

	err := f.svc.RequestPasscode(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrMissingInput)
}

func TestRequestPasscode_NoopAfterConfirmation(t *testing.T) {
	f := newRegistrationFixture(true)
	attempt, _ := f.attempts.FindOrCreate("a@b.com")
	attempt.PasscodeConfirmed = true

	err := f.svc.RequestPasscode(context.Background(), "a@b.com")
	require.NoError(t, err)

	assert.Zero(t, f.passcodes.putCalls)
	assert.Empty(t, f.producer.messages)
}

func TestConfirmPasscode(t *testing.T) {
	f := newRegistrationFixture(true)
	_, _ = f.attempts.FindOrCreate("a@b.com")
	_ = f.passcodes.Put(context.Background(), "a@b.com", utils.Sha256Hex("123456"))

	err := f.svc.ConfirmPasscode(context.Background(), "a@b.com", "123456")
	require.NoError(t, err)

	attempt, _ := f.attempts.FindByEmail("a@b.com")
	assert.True(t, attempt.PasscodeConfirmed)
}

func TestConfirmPasscode_WrongCode(t *testing.T) {
	f := newRegistrationFixture(true)
	_, _ = f.attempts.FindOrCreate("a@b.com")
	_ = f.passcodes.Put(context.Background(), "a@b.com", utils.Sha256Hex("123456"))

	err := f.svc.ConfirmPasscode(context.Background(), "a@b.com", "654321")
	assert.ErrorIs(t, err, domain.ErrPasscodeRejected)

	attempt, _ := f.attempts.FindByEmail("a@b.com")
	assert.False(t, attempt.PasscodeConfirmed)
}

func TestConfirmPasscode_IdempotentOnceConfirmed(t *testing.T) {
	f := newRegistrationFixture(true)
	attempt, _ := f.attempts.FindOrCreate("a@b.com")
	attempt.PasscodeConfirmed = true

	err := f.svc.ConfirmPasscode(context.Background(), "a@b.com", "whatever")
	require.NoError(t, err)

	// the stored code is never consulted again
	assert.Zero(t, f.passcodes.consumeCalls)
}

func TestConfirmPasscode_UnknownAttempt(t *testing.T) {
	f := newRegistrationFixture(true)

	err := f.svc.ConfirmPasscode(context.Background(), "nobody@b.com", "123456")
	assert.ErrorIs(t, err, domain.ErrAttemptNotFound)
}

func TestVerifyIdentity_MissingEvidence(t *testing.T) {
	f := newRegistrationFixture(true)

	_, err := f.svc.VerifyIdentity(context.Background(), dto.IdentityEvidence{
		Email:    "a@b.com",
		FullName: "Asha Rao",
		Phone:    "9876543210",
	})
	assert.ErrorIs(t, err, domain.ErrMissingEvidence)
	assert.Zero(t, f.vision.verifyCalls)
	assert.Zero(t, f.uploader.calls)
}

func TestVerifyIdentity_MissingProfileFields(t *testing.T) {
	f := newRegistrationFixture(true)
	img := tinyJPEG(t)

	_, err := f.svc.VerifyIdentity(context.Background(), dto.IdentityEvidence{
		Email:    "a@b.com",
		Selfie:   dto.FileInput{Filename: "selfie.jpg", Bytes: img},
		Document: dto.FileInput{Filename: "doc.jpg", Bytes: img},
	})
	assert.ErrorIs(t, err, domain.ErrMissingProfileFields)
	assert.Zero(t, f.vision.verifyCalls)
}

func TestVerifyIdentity_MatchOpensGate(t *testing.T) {
	f := newRegistrationFixture(true)
	f.vision.verifyRes = &trustvision.FaceVerifyResponse{
		Match:      true,
		Confidence: 0.93,
		Message:    "faces match",
	}
	img := tinyJPEG(t)

	res, err := f.svc.VerifyIdentity(context.Background(), dto.IdentityEvidence{
		Email:    "a@b.com",
		FullName: "Asha Rao",
		Phone:    "9876543210",
		Selfie:   dto.FileInput{Filename: "selfie.jpg", Bytes: img},
		Document: dto.FileInput{Filename: "doc.jpg", Bytes: img},
	})
	require.NoError(t, err)

	assert.True(t, res.Match)
	assert.Equal(t, 0.93, res.Confidence)
	assert.Equal(t, 2, f.uploader.calls)

	attempt, _ := f.attempts.FindByEmail("a@b.com")
	assert.True(t, attempt.IdentityConfirmed)
	require.NotNil(t, attempt.FaceMatchScore)
	assert.Equal(t, 0.93, *attempt.FaceMatchScore)
}

func TestVerifyIdentity_NoMatchLeavesGateClosed(t *testing.T) {
	f := newRegistrationFixture(true)
	f.vision.verifyRes = &trustvision.FaceVerifyResponse{
		Match:      false,
		Confidence: 0.31,
		Message:    "faces do not match",
	}
	img := tinyJPEG(t)

	res, err := f.svc.VerifyIdentity(context.Background(), dto.IdentityEvidence{
		Email:    "a@b.com",
		FullName: "Asha Rao",
		Phone:    "9876543210",
		Selfie:   dto.FileInput{Filename: "selfie.jpg", Bytes: img},
		Document: dto.FileInput{Filename: "doc.jpg", Bytes: img},
	})
	require.NoError(t, err)

	assert.False(t, res.Match)
	attempt, _ := f.attempts.FindByEmail("a@b.com")
	assert.False(t, attempt.IdentityConfirmed)
}

func TestVerifyIdentity_AlreadyConfirmedSkipsProvider(t *testing.T) {
	f := newRegistrationFixture(true)
	attempt, _ := f.attempts.FindOrCreate("a@b.com")
	attempt.IdentityConfirmed = true
	attempt.SelfieURL = "https://cdn.example.com/selfie"
	img := tinyJPEG(t)

	res, err := f.svc.VerifyIdentity(context.Background(), dto.IdentityEvidence{
		Email:    "a@b.com",
		FullName: "Asha Rao",
		Phone:    "9876543210",
		Selfie:   dto.FileInput{Filename: "selfie.jpg", Bytes: img},
		Document: dto.FileInput{Filename: "doc.jpg", Bytes: img},
	})
	require.NoError(t, err)

	assert.True(t, res.Match)
	assert.Zero(t, f.vision.verifyCalls)
	assert.Zero(t, f.uploader.calls)
}

func TestSubmit_PasscodeGateBlocksBeforeValidation(t *testing.T) {
	f := newRegistrationFixture(true)

	// deliberately broken draft: the gate must fire before any field check
	draft := validDraft()
	draft.Password = "x"

	_, err := f.svc.SubmitRegistration(context.Background(), draft)

	var ge *domain.GateError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, domain.GatePasscode, ge.Gate)
	assert.Empty(t, f.users.users)
}

func TestSubmit_IdentityGateBlocks(t *testing.T) {
	f := newRegistrationFixture(true)
	attempt, _ := f.attempts.FindOrCreate("a@b.com")
	attempt.PasscodeConfirmed = true

	_, err := f.svc.SubmitRegistration(context.Background(), validDraft())

	var ge *domain.GateError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, domain.GateIdentity, ge.Gate)
	assert.Empty(t, f.users.users)
}

func TestSubmit_ValidationAfterGates(t *testing.T) {
	f := newRegistrationFixture(true)
	attempt, _ := f.attempts.FindOrCreate("a@b.com")
	attempt.PasscodeConfirmed = true
	attempt.IdentityConfirmed = true

	draft := validDraft()
	draft.ConfirmPassword = "Mismatch1!"

	_, err := f.svc.SubmitRegistration(context.Background(), draft)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "confirm_password", ve.Field)
	assert.Empty(t, f.users.users)
}

func TestSubmit_HappyPath(t *testing.T) {
	f := newRegistrationFixture(true)
	attempt, _ := f.attempts.FindOrCreate("a@b.com")
	attempt.PasscodeConfirmed = true
	attempt.IdentityConfirmed = true

	res, err := f.svc.SubmitRegistration(context.Background(), validDraft())
	require.NoError(t, err)

	assert.Equal(t, "a@b.com", res.Email)
	assert.Equal(t, domain.RoleBorrower, res.Role)
	assert.NotZero(t, res.UserID)

	user := f.users.users["a@b.com"]
	require.NotNil(t, user)
	assert.NotEqual(t, "Abcdef1!", user.PasswordHash)

	profile := f.profiles.profiles[user.ID]
	require.NotNil(t, profile)
	assert.Equal(t, "Asha Rao", profile.FullName)
	assert.Equal(t, domain.RoleBorrower, profile.Role)

	// attempt is closed and the event published
	assert.Contains(t, f.attempts.deleted, "a@b.com")
	require.Len(t, f.producer.messages, 1)
	assert.Equal(t, "user.registered", f.producer.messages[0].key)
}

func TestSubmit_DuplicateEmail(t *testing.T) {
	f := newRegistrationFixture(true)
	attempt, _ := f.attempts.FindOrCreate("a@b.com")
	attempt.PasscodeConfirmed = true
	attempt.IdentityConfirmed = true

	_, _ = f.users.CreateUser(&domain.User{Email: "a@b.com", Role: domain.RoleBorrower})

	_, err := f.svc.SubmitRegistration(context.Background(), validDraft())
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestSubmit_RegistrationClosed(t *testing.T) {
	f := newRegistrationFixture(false)
	attempt, _ := f.attempts.FindOrCreate("a@b.com")
	attempt.PasscodeConfirmed = true
	attempt.IdentityConfirmed = true

	_, err := f.svc.SubmitRegistration(context.Background(), validDraft())
	assert.ErrorIs(t, err, domain.ErrProviderDisabled)
}

func TestSubmit_PartialRegistration(t *testing.T) {
	f := newRegistrationFixture(true)
	attempt, _ := f.attempts.FindOrCreate("a@b.com")
	attempt.PasscodeConfirmed = true
	attempt.IdentityConfirmed = true

	f.profiles.createErr = errors.New("db down")

	_, err := f.svc.SubmitRegistration(context.Background(), validDraft())
	assert.ErrorIs(t, err, domain.ErrPartialRegistration)

	// the credential survives so the client can repair the profile later
	assert.NotNil(t, f.users.users["a@b.com"])
}

func TestAttemptStatus(t *testing.T) {
	f := newRegistrationFixture(true)
	attempt, _ := f.attempts.FindOrCreate("a@b.com")
	attempt.PasscodeConfirmed = true

	res, err := f.svc.AttemptStatus("a@b.com")
	require.NoError(t, err)

	assert.True(t, res.PasscodeConfirmed)
	assert.False(t, res.IdentityConfirmed)
}
