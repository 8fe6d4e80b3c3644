package trustvision

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Client talks to the TrustVision verification/scoring service: face vs
// document matching plus OCR-driven identity and financial trust scoring.
// The service owns all OCR and scoring logic; we only carry its answers.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

type DocumentFile struct {
	Filename string
	Bytes    []byte
}

// StoredDocument references an already-uploaded document by URL; the scoring
// service fetches it itself.
type StoredDocument struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

type ExtractedResult struct {
	Filename      string `json:"filename"`
	ExtractedText string `json:"extracted_text"`
}

type FaceVerifyResponse struct {
	Match        bool    `json:"match"`
	Confidence   float64 `json:"confidence"`
	Message      string  `json:"message"`
	LiveImageURL string  `json:"live_image_url,omitempty"`
	DocImageURL  string  `json:"doc_image_url,omitempty"`
	ErrorMessage string  `json:"error,omitempty"`
}

type IdentityScoreResponse struct {
	TrustScore      int               `json:"trust_score"`
	PANVerified     bool              `json:"pan_verified"`
	AadhaarVerified bool              `json:"aadhaar_verified"`
	NameExtracted   string            `json:"name_extracted,omitempty"`
	PhoneExtracted  string            `json:"phone_extracted,omitempty"`
	Results         []ExtractedResult `json:"results"`
	Message         string            `json:"message"`
	ErrorMessage    string            `json:"error,omitempty"`
}

type FinancialScoreResponse struct {
	TrustScore   int               `json:"trust_score"`
	Results      []ExtractedResult `json:"results"`
	Explanation  string            `json:"explanation"`
	Message      string            `json:"message"`
	ErrorMessage string            `json:"error,omitempty"`
}

// VerifyFace compares a live selfie against a document photo.
// Endpoint: POST /face/verify
func (c *Client) VerifyFace(
	ctx context.Context,
	uid string,
	name string,
	phone string,
	selfieFilename string,
	selfie io.Reader,
	documentFilename string,
	document io.Reader,
) (*FaceVerifyResponse, error) {
	if c.apiKey == "" {
		return nil, errors.New("missing trustvision api key")
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("uid", uid); err != nil {
		return nil, err
	}
	if err := w.WriteField("name", name); err != nil {
		return nil, err
	}
	if err := w.WriteField("phone", phone); err != nil {
		return nil, err
	}

	fw, err := w.CreateFormFile("live_image", selfieFilename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(fw, selfie); err != nil {
		return nil, err
	}

	fw, err = w.CreateFormFile("doc_image", documentFilename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(fw, document); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	var out FaceVerifyResponse
	if err := c.post(ctx, "/face/verify", w.FormDataContentType(), &buf, &out, &out.ErrorMessage); err != nil {
		return nil, err
	}
	return &out, nil
}

// ScoreIdentity submits identity documents plus the claimed phone number for
// first-stage trust scoring.
// Endpoint: POST /vision/first-trustscore
func (c *Client) ScoreIdentity(
	ctx context.Context,
	uid string,
	phone string,
	docs []DocumentFile,
) (*IdentityScoreResponse, error) {
	if c.apiKey == "" {
		return nil, errors.New("missing trustvision api key")
	}
	if len(docs) == 0 {
		return nil, errors.New("no documents to score")
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("uid", uid); err != nil {
		return nil, err
	}
	if err := w.WriteField("phone", phone); err != nil {
		return nil, err
	}
	for _, d := range docs {
		fw, err := w.CreateFormFile("document", d.Filename)
		if err != nil {
			return nil, err
		}
		if _, err := fw.Write(d.Bytes); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	var out IdentityScoreResponse
	if err := c.post(ctx, "/vision/first-trustscore", w.FormDataContentType(), &buf, &out, &out.ErrorMessage); err != nil {
		return nil, err
	}
	return &out, nil
}

// ScoreFinancial submits the accumulated financial documents (already in
// object storage) for second-stage scoring.
// Endpoint: POST /vision/financial-trustscore
func (c *Client) ScoreFinancial(
	ctx context.Context,
	uid string,
	docs []StoredDocument,
) (*FinancialScoreResponse, error) {
	if c.apiKey == "" {
		return nil, errors.New("missing trustvision api key")
	}
	if len(docs) == 0 {
		return nil, errors.New("no documents to score")
	}

	body, err := json.Marshal(map[string]any{
		"uid":       uid,
		"documents": docs,
	})
	if err != nil {
		return nil, err
	}

	var out FinancialScoreResponse
	if err := c.post(ctx, "/vision/financial-trustscore", "application/json", bytes.NewReader(body), &out, &out.ErrorMessage); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) post(ctx context.Context, path, contentType string, body io.Reader, out any, outErr *string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	// non-2xx: surface the service-provided message verbatim when present
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if json.Unmarshal(raw, out) == nil && outErr != nil && *outErr != "" {
			return fmt.Errorf("trustvision error (%d): %s", resp.StatusCode, *outErr)
		}
		return fmt.Errorf("trustvision http error (%d): %s", resp.StatusCode, string(raw))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return err
	}

	// some failures ride in on a 200
	if outErr != nil && *outErr != "" {
		return errors.New(*outErr)
	}
	return nil
}
