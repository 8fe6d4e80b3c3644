package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ayonpaul8906/trustbridge-new/internal/clients/trustvision"
	"github.com/ayonpaul8906/trustbridge-new/internal/domain"
	"github.com/ayonpaul8906/trustbridge-new/internal/dto"
	"github.com/ayonpaul8906/trustbridge-new/internal/helper/utils"
	"github.com/ayonpaul8906/trustbridge-new/internal/interfaces"
	"github.com/ayonpaul8906/trustbridge-new/internal/repository"
	pkgutils "github.com/ayonpaul8906/trustbridge-new/pkg/utils"
	"github.com/google/uuid"
)

// TrustScoreService runs the two-phase scoring workflow. Phase 1 (identity
// documents + phone) locks once it succeeds; phase 2 (financial documents)
// is gated on phase 1 and may be re-run as the document list grows.
type TrustScoreService interface {
	ScoreIdentity(ctx context.Context, userID uint, input dto.IdentityScoreInput) (*dto.IdentityScoreResponse, error)
	AddFinancialDocument(ctx context.Context, userID uint, file dto.FileInput) (*dto.FinancialDocumentResponse, error)
	RemoveFinancialDocument(userID, docID uint) error
	ListFinancialDocuments(userID uint) ([]dto.FinancialDocumentResponse, error)
	ScoreFinancial(ctx context.Context, userID uint) (*dto.FinancialScoreResponse, error)
	GetTrustScore(userID uint) (*dto.TrustScoreResponse, error)
}

type trustScoreService struct {
	scores   repository.TrustScoreRepository
	vision   interfaces.VerificationClient
	uploader interfaces.Uploader
}

func NewTrustScoreService(
	scores repository.TrustScoreRepository,
	vision interfaces.VerificationClient,
	uploader interfaces.Uploader,
) TrustScoreService {
	return &trustScoreService{
		scores:   scores,
		vision:   vision,
		uploader: uploader,
	}
}

func (s *trustScoreService) ScoreIdentity(ctx context.Context, userID uint, input dto.IdentityScoreInput) (*dto.IdentityScoreResponse, error) {
	if userID == 0 {
		return nil, domain.ErrMissingInput
	}
	if !utils.IsTenDigitPhone(input.Phone) {
		return nil, domain.ErrInvalidPhone
	}
	if len(input.Documents) == 0 {
		return nil, domain.ErrMissingDocuments
	}

	score, err := s.scores.FindOrCreate(userID)
	if err != nil {
		return nil, err
	}

	// phase 1 inputs lock after the first success
	if score.IdentityScored {
		return nil, domain.ErrIdentityAlreadyScored
	}

	docs := make([]trustvision.DocumentFile, 0, len(input.Documents))
	for _, f := range input.Documents {
		if len(f.Bytes) == 0 {
			return nil, domain.ErrMissingDocuments
		}
		b := f.Bytes
		// PDFs pass through untouched; images get normalized
		if norm, err := pkgutils.NormalizeToJPG(f.Bytes, imageMaxWidth, imageJPGQuality); err == nil {
			b = norm
		}
		docs = append(docs, trustvision.DocumentFile{
			Filename: f.Filename,
			Bytes:    b,
		})
	}

	res, err := s.vision.ScoreIdentity(ctx, strconv.FormatUint(uint64(userID), 10), strings.TrimSpace(input.Phone), docs)
	if err != nil {
		// stored score stays untouched on any failure
		return nil, err
	}

	now := time.Now()
	score.Current = res.TrustScore
	score.IdentityScored = true
	score.IdentityScoredAt = &now
	if err := s.scores.SaveScore(score); err != nil {
		return nil, err
	}

	_ = s.scores.AddHistory(&domain.ScoreHistoryEntry{
		UserID: userID,
		Phase:  domain.ScorePhaseIdentity,
		Score:  res.TrustScore,
		Reason: res.Message,
	})

	out := &dto.IdentityScoreResponse{
		TrustScore:      res.TrustScore,
		PANVerified:     res.PANVerified,
		AadhaarVerified: res.AadhaarVerified,
		Message:         res.Message,
	}
	for _, r := range res.Results {
		out.Results = append(out.Results, dto.ExtractedDocument{
			Filename:      r.Filename,
			ExtractedText: r.ExtractedText,
		})
	}
	return out, nil
}

func (s *trustScoreService) AddFinancialDocument(ctx context.Context, userID uint, file dto.FileInput) (*dto.FinancialDocumentResponse, error) {
	if userID == 0 || strings.TrimSpace(file.Filename) == "" || len(file.Bytes) == 0 {
		return nil, domain.ErrMissingInput
	}

	b := file.Bytes
	if norm, err := pkgutils.NormalizeToJPG(file.Bytes, imageMaxWidth, imageJPGQuality); err == nil {
		b = norm
	}

	folder := fmt.Sprintf("trustbridge/%d/financial", userID)
	url, err := s.uploader.UploadBytes(ctx, folder, "doc_"+uuid.NewString(), b)
	if err != nil {
		return nil, fmt.Errorf("upload financial document failed: %w", err)
	}

	doc := &domain.FinancialDocument{
		UserID:   userID,
		Filename: file.Filename,
		FileURL:  url,
	}
	if err := s.scores.AddDocument(doc); err != nil {
		return nil, err
	}

	return &dto.FinancialDocumentResponse{
		ID:       doc.ID,
		Filename: doc.Filename,
		FileURL:  doc.FileURL,
	}, nil
}

func (s *trustScoreService) RemoveFinancialDocument(userID, docID uint) error {
	if userID == 0 || docID == 0 {
		return domain.ErrMissingInput
	}
	return s.scores.RemoveDocument(userID, docID)
}

func (s *trustScoreService) ListFinancialDocuments(userID uint) ([]dto.FinancialDocumentResponse, error) {
	docs, err := s.scores.ListDocuments(userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FinancialDocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, dto.FinancialDocumentResponse{
			ID:       d.ID,
			Filename: d.Filename,
			FileURL:  d.FileURL,
		})
	}
	return out, nil
}

func (s *trustScoreService) ScoreFinancial(ctx context.Context, userID uint) (*dto.FinancialScoreResponse, error) {
	if userID == 0 {
		return nil, domain.ErrMissingInput
	}

	score, err := s.scores.FindOrCreate(userID)
	if err != nil {
		return nil, err
	}

	// phase order is checked before the document list, so a violation never
	// reaches the network
	if !score.IdentityScored {
		return nil, domain.ErrPhaseOrderViolation
	}

	docs, err := s.scores.ListDocuments(userID)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, domain.ErrNoDocuments
	}

	stored := make([]trustvision.StoredDocument, 0, len(docs))
	for _, d := range docs {
		stored = append(stored, trustvision.StoredDocument{
			Filename: d.Filename,
			URL:      d.FileURL,
		})
	}

	res, err := s.vision.ScoreFinancial(ctx, strconv.FormatUint(uint64(userID), 10), stored)
	if err != nil {
		return nil, err
	}

	// the score is replaced wholesale, never merged
	now := time.Now()
	score.Current = res.TrustScore
	score.FinancialScoredAt = &now
	if err := s.scores.SaveScore(score); err != nil {
		return nil, err
	}

	_ = s.scores.AddHistory(&domain.ScoreHistoryEntry{
		UserID: userID,
		Phase:  domain.ScorePhaseFinancial,
		Score:  res.TrustScore,
		Reason: res.Explanation,
	})

	return &dto.FinancialScoreResponse{
		TrustScore:  res.TrustScore,
		Explanation: res.Explanation,
		Message:     res.Message,
	}, nil
}

func (s *trustScoreService) GetTrustScore(userID uint) (*dto.TrustScoreResponse, error) {
	if userID == 0 {
		return nil, domain.ErrMissingInput
	}

	score, err := s.scores.FindOrCreate(userID)
	if err != nil {
		return nil, err
	}
	history, err := s.scores.ListHistory(userID)
	if err != nil {
		return nil, err
	}

	out := &dto.TrustScoreResponse{
		Current:        score.Current,
		IdentityScored: score.IdentityScored,
		History:        make([]dto.ScoreHistoryEntry, 0, len(history)),
	}
	for _, h := range history {
		out.History = append(out.History, dto.ScoreHistoryEntry{
			Phase:  h.Phase,
			Score:  h.Score,
			Reason: h.Reason,
			Date:   h.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}
