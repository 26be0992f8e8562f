package soil

import (
	"context"
	"encoding/base64"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/farmtech/farmtech-api/internal/domain/soil"
	"github.com/farmtech/farmtech-api/internal/infra/ai/prompt"
)

// DefaultAdvisorTimeout bounds the advisory call. The upstream behavior had
// no deadline at all; 60s is generous for a single multimodal completion.
const DefaultAdvisorTimeout = 60 * time.Second

// Service implements the soil analysis use-case.
// Service is designed to be used concurrently and is thread-safe: every
// analyze call is independent, with no shared mutable state.
type Service struct {
	Repo    domain.Repository
	Advisor domain.Advisor
	Stager  domain.EvidenceStager
	Archive domain.ImageArchive // optional; nil disables image archiving
	Clock   Clock
	Log     *zap.Logger

	// AdvisorTimeout overrides DefaultAdvisorTimeout when > 0.
	AdvisorTimeout time.Duration
}

// Clock abstraction supaya gampang ditest
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

//
// ==== USE CASES ====
//

// Command untuk analyze
type AnalyzeCommand struct {
	UserID      string
	ImageBase64 string
	Description string
	Location    map[string]any
}

type AnalyzeResult struct {
	AnalysisID string    `json:"analysis_id"`
	Result     string    `json:"result"`
	Timestamp  time.Time `json:"timestamp"`

	// Source is reported for metrics, not part of the response body.
	Source domain.Source `json:"-"`
}

// Analyze runs the whole pipeline: build prompt → attach evidence →
// consult advisor → resolve outcome → persist → respond. The operation
// never fails on advisory errors; any failure resolves to the fallback
// advisory so the caller always gets usable content.
func (s *Service) Analyze(ctx context.Context, cmd AnalyzeCommand) (AnalyzeResult, error) {
	now := s.Clock.Now().UTC()
	id := uuid.New().String()

	// fresh session per request, no cross-request state at the provider
	session := fmt.Sprintf("soil_analysis_%s_%d", cmd.UserID, now.UnixNano())

	userPrompt := prompt.GetUserPrompt(
		prompt.FormatLocation(cmd.Location),
		cmd.Description,
		cmd.ImageBase64 != "",
	)

	advice, imageURL, err := s.consult(ctx, cmd, domain.AdviceRequest{
		SessionID:    session,
		SystemPrompt: prompt.GetSystemPrompt(),
		Prompt:       userPrompt,
	}, id)

	outcome := domain.Resolve(advice, err, prompt.FallbackAdvisory)
	if outcome.Source == domain.SourceFallback {
		s.logger().Warn("advisory service unavailable, serving fallback",
			zap.String("analysis_id", id), zap.Error(err))
	}

	rec := &domain.Analysis{
		ID:        domain.AnalysisID(id),
		UserID:    cmd.UserID,
		Result:    outcome.Text,
		Source:    outcome.Source,
		ImageURL:  imageURL,
		CreatedAt: now,
		Location:  cmd.Location,
	}
	if err := s.Repo.Save(ctx, rec); err != nil {
		// The endpoint contract is availability-first: the advice is already
		// finalized, so a lost record must not turn into a failed response.
		s.logger().Error("failed to persist analysis record",
			zap.String("analysis_id", id), zap.Error(err))
	}

	return AnalyzeResult{
		AnalysisID: string(rec.ID),
		Result:     rec.Result,
		Timestamp:  rec.CreatedAt,
		Source:     rec.Source,
	}, nil
}

// consult performs the advisory exchange, staging image evidence when
// present. Image-path failures (bad base64, staging error, provider
// rejection) degrade to a text-only exchange within the same call.
func (s *Service) consult(ctx context.Context, cmd AnalyzeCommand, req domain.AdviceRequest, id string) (advice string, imageURL string, err error) {
	timeout := s.AdvisorTimeout
	if timeout <= 0 {
		timeout = DefaultAdvisorTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if cmd.ImageBase64 == "" {
		advice, err = s.Advisor.Advise(ctx, req)
		return advice, "", err
	}

	data, decErr := base64.StdEncoding.DecodeString(cmd.ImageBase64)
	if decErr != nil {
		s.logger().Warn("malformed image payload, degrading to text-only",
			zap.String("analysis_id", id), zap.Error(decErr))
		advice, err = s.Advisor.Advise(ctx, req)
		return advice, "", err
	}

	ev, stageErr := s.Stager.Stage(data, "image/jpeg")
	if stageErr != nil {
		s.logger().Warn("failed to stage image evidence, degrading to text-only",
			zap.String("analysis_id", id), zap.Error(stageErr))
		advice, err = s.Advisor.Advise(ctx, req)
		return advice, "", err
	}
	defer ev.Release()

	imageURL = s.archive(ctx, cmd.UserID, ev)

	withImage := req
	withImage.EvidencePath = ev.Path()
	withImage.EvidenceMIME = ev.MIMEType()
	advice, err = s.Advisor.Advise(ctx, withImage)
	if err != nil {
		s.logger().Warn("image submission rejected, degrading to text-only",
			zap.String("analysis_id", id), zap.Error(err))
		advice, err = s.Advisor.Advise(ctx, req)
	}
	return advice, imageURL, err
}

// archive keeps a copy of the submitted image for later review. Best
// effort only; the analysis proceeds regardless.
func (s *Service) archive(ctx context.Context, userID string, ev domain.StagedEvidence) string {
	if s.Archive == nil {
		return ""
	}
	key := fmt.Sprintf("soil/%s/%s", userID, filepath.Base(ev.Path()))
	url, err := s.Archive.Upload(ctx, ev.Path(), key)
	if err != nil {
		s.logger().Warn("failed to archive soil image", zap.String("key", key), zap.Error(err))
		return ""
	}
	return url
}

// Get returns one stored analysis by id.
func (s *Service) Get(ctx context.Context, id domain.AnalysisID) (*domain.Analysis, error) {
	return s.Repo.Get(ctx, id)
}

// History returns a page of a user's past analyses, newest first.
func (s *Service) History(ctx context.Context, userID string, page, pageSize int) ([]*domain.Analysis, error) {
	return s.Repo.Paginate(ctx, userID, page, pageSize)
}

func (s *Service) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}
