package dto

type IdentityScoreInput struct {
	Phone     string
	Documents []FileInput
}

type IdentityScoreResponse struct {
	TrustScore      int                 `json:"trust_score"`
	PANVerified     bool                `json:"pan_verified"`
	AadhaarVerified bool                `json:"aadhaar_verified"`
	Results         []ExtractedDocument `json:"results"`
	Message         string              `json:"message"`
}

type ExtractedDocument struct {
	Filename      string `json:"filename"`
	ExtractedText string `json:"extracted_text"`
}

type FinancialDocumentResponse struct {
	ID       uint   `json:"id"`
	Filename string `json:"filename"`
	FileURL  string `json:"file_url"`
}

type FinancialScoreResponse struct {
	TrustScore  int    `json:"trust_score"`
	Explanation string `json:"explanation"`
	Message     string `json:"message"`
}

type TrustScoreResponse struct {
	Current        int                 `json:"current"`
	IdentityScored bool                `json:"identity_scored"`
	History        []ScoreHistoryEntry `json:"history"`
}

type ScoreHistoryEntry struct {
	Phase  string `json:"phase"`
	Score  int    `json:"score"`
	Reason string `json:"reason"`
	Date   string `json:"date"`
}
