package utils

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/ayonpaul8906/trustbridge-new/internal/domain"
	"github.com/ayonpaul8906/trustbridge-new/internal/dto"
)

var (
	emailRx = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	dobRx   = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	phoneRx = regexp.MustCompile(`^\d{10,}$`)
)

var Genders = []string{"male", "female", "other"}

var IncomeBrackets = []string{
	"below_20k",
	"20k_50k",
	"50k_1l",
	"above_1l",
}

var EducationLevels = []string{
	"high_school",
	"undergraduate",
	"postgraduate",
	"other",
}

func IsValidEmail(email string) bool {
	return emailRx.MatchString(strings.TrimSpace(email))
}

// IsStrongPassword requires at least 8 characters with an upper-case letter,
// a lower-case letter, a digit and a symbol.
func IsStrongPassword(pw string) bool {
	if len(pw) < 8 {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

func IsTenDigitPhone(phone string) bool {
	phone = strings.TrimSpace(phone)
	if len(phone) != 10 {
		return false
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// ValidateDraft runs the full pre-submission field validation. The first
// failing field is reported; nothing is sent anywhere until this passes.
func ValidateDraft(d dto.RegistrationDraft) error {
	if strings.TrimSpace(d.FullName) == "" {
		return &domain.ValidationError{Field: "full_name", Reason: "is required"}
	}
	if !dobRx.MatchString(strings.TrimSpace(d.DOB)) {
		return &domain.ValidationError{Field: "dob", Reason: "must match DD/MM/YYYY"}
	}
	if !oneOf(strings.ToLower(strings.TrimSpace(d.Gender)), Genders) {
		return &domain.ValidationError{Field: "gender", Reason: "is not a recognised value"}
	}
	if !phoneRx.MatchString(strings.TrimSpace(d.Phone)) {
		return &domain.ValidationError{Field: "phone", Reason: "must be at least 10 digits"}
	}
	if !IsValidEmail(d.Email) {
		return &domain.ValidationError{Field: "email", Reason: "is not a valid email address"}
	}
	if !IsStrongPassword(d.Password) {
		return &domain.ValidationError{Field: "password", Reason: "must be 8+ chars with upper, lower, digit and symbol"}
	}
	if d.ConfirmPassword != d.Password {
		return &domain.ValidationError{Field: "confirm_password", Reason: "does not match password"}
	}
	if !oneOf(strings.TrimSpace(d.MonthlyIncome), IncomeBrackets) {
		return &domain.ValidationError{Field: "monthly_income", Reason: "is not a recognised bracket"}
	}
	if !oneOf(strings.TrimSpace(d.Education), EducationLevels) {
		return &domain.ValidationError{Field: "education", Reason: "is not a recognised level"}
	}
	if strings.TrimSpace(d.LoanPurpose) == "" {
		return &domain.ValidationError{Field: "loan_purpose", Reason: "is required"}
	}
	if !d.AgreedToTerms {
		return &domain.ValidationError{Field: "agreed_to_terms", Reason: "must be accepted"}
	}
	return nil
}
