package interfaces

import (
	"context"
	"io"

	"github.com/ayonpaul8906/trustbridge-new/internal/clients/trustvision"
)

// VerificationClient is the TrustVision surface the workflows depend on.
type VerificationClient interface {
	VerifyFace(ctx context.Context, uid, name, phone string,
		selfieFilename string, selfie io.Reader,
		documentFilename string, document io.Reader) (*trustvision.FaceVerifyResponse, error)
	ScoreIdentity(ctx context.Context, uid, phone string,
		docs []trustvision.DocumentFile) (*trustvision.IdentityScoreResponse, error)
	ScoreFinancial(ctx context.Context, uid string,
		docs []trustvision.StoredDocument) (*trustvision.FinancialScoreResponse, error)
}
