package dto

type UserProfileResponse struct {
	UserID        uint   `json:"user_id"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	FullName      string `json:"full_name"`
	DOB           string `json:"dob"`
	Gender        string `json:"gender"`
	Phone         string `json:"phone"`
	MonthlyIncome string `json:"monthly_income"`
	Education     string `json:"education"`
	LoanPurpose   string `json:"loan_purpose"`
	CreatedAt     string `json:"created_at"`
}

type UpdateProfileRequest struct {
	FullName      *string `json:"full_name,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	MonthlyIncome *string `json:"monthly_income,omitempty"`
	Education     *string `json:"education,omitempty"`
	LoanPurpose   *string `json:"loan_purpose,omitempty"`
}
