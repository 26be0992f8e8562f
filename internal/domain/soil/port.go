package soil

import "context"

// Repository port (interface untuk persistence)
type Repository interface {
	Save(ctx context.Context, a *Analysis) error
	Get(ctx context.Context, id AnalysisID) (*Analysis, error)
	Paginate(ctx context.Context, userID string, page, pageSize int) ([]*Analysis, error)
}

// Advisor port: one request-scoped conversational exchange with the
// advisory service. Implementations must not keep state across calls.
type Advisor interface {
	Advise(ctx context.Context, req AdviceRequest) (string, error)
}

// AdviceRequest carries everything the advisory service needs for a
// single exchange. EvidencePath is empty for text-only submissions.
type AdviceRequest struct {
	SessionID    string
	SystemPrompt string
	Prompt       string
	EvidencePath string
	EvidenceMIME string
}

// EvidenceStager stages raw image bytes as a private temporary resource.
// The returned evidence must be released on every exit path.
type EvidenceStager interface {
	Stage(data []byte, mimeType string) (StagedEvidence, error)
}

// StagedEvidence is a scoped, addressable copy of the image payload.
type StagedEvidence interface {
	Path() string
	MIMEType() string
	Release() error
}

// ImageArchive port (long-term storage for submitted soil images)
type ImageArchive interface {
	Upload(ctx context.Context, localPath, key string) (string, error)
}
