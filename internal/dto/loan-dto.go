package dto

type LoanRequest struct {
	Amount  float64 `json:"amount"`
	Purpose string  `json:"purpose"`
	Wallet  string  `json:"wallet"`
}

type LoanResponse struct {
	LoanID    uint    `json:"loan_id"`
	Amount    float64 `json:"amount"`
	Purpose   string  `json:"purpose"`
	Wallet    string  `json:"wallet"`
	Status    string  `json:"status"`
	IssueDate string  `json:"issue_date"`
	DueDate   string  `json:"due_date"`
}

type LoanStatusResponse struct {
	LoanID            uint    `json:"loan_id"`
	Principal         float64 `json:"principal"`
	TotalDue          float64 `json:"total_due"`
	IssueDate         string  `json:"issue_date"`
	DueDate           string  `json:"due_date"`
	CurrentDate       string  `json:"current_date"`
	DocumentsReleased bool    `json:"documents_released"`
	Status            string  `json:"status"`
}

type LoanDecisionRequest struct {
	Decision string `json:"decision"` // approved | rejected
}
