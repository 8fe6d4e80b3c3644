package dto

type RequestPasscodeRequest struct {
	Email string `json:"email"`
}

type ConfirmPasscodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// IdentityEvidence carries the captured selfie and the selected document
// image, already read out of the multipart form.
type IdentityEvidence struct {
	Email    string
	FullName string
	Phone    string

	Selfie   FileInput
	Document FileInput
}

type FileInput struct {
	Filename string
	Bytes    []byte
}

type IdentityVerifyResponse struct {
	Match       bool    `json:"match"`
	Confidence  float64 `json:"confidence"`
	Message     string  `json:"message"`
	SelfieURL   string  `json:"selfie_url,omitempty"`
	DocumentURL string  `json:"document_url,omitempty"`
}

// RegistrationDraft mirrors the registration form. It is never persisted as-is:
// the password pair feeds the credential store only and the rest becomes the
// profile record.
type RegistrationDraft struct {
	FullName        string `json:"full_name"`
	DOB             string `json:"dob"` // DD/MM/YYYY
	Gender          string `json:"gender"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	MonthlyIncome   string `json:"monthly_income"`
	Education       string `json:"education"`
	LoanPurpose     string `json:"loan_purpose"`
	AgreedToTerms   bool   `json:"agreed_to_terms"`
}

type RegistrationResult struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type AttemptStatusResponse struct {
	Email             string `json:"email"`
	PasscodeConfirmed bool   `json:"passcode_confirmed"`
	IdentityConfirmed bool   `json:"identity_confirmed"`
}
