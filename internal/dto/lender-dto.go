package dto

type LenderOfferRequest struct {
	Amount       float64 `json:"amount"`
	InterestRate float64 `json:"interest_rate"`
	Wallet       string  `json:"wallet"`
}

type LenderOfferResponse struct {
	OfferID      uint    `json:"offer_id"`
	Amount       float64 `json:"amount"`
	InterestRate float64 `json:"interest_rate"`
	Wallet       string  `json:"wallet"`
	CreatedAt    string  `json:"created_at"`
}

type BorrowerSummary struct {
	UserID      uint   `json:"user_id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	TrustScore  int    `json:"trust_score"`
	LoanPurpose string `json:"loan_purpose"`
}
