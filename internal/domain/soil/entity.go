package soil

import (
	"time"
)

// AnalysisID tipe untuk Analysis
type AnalysisID string

// Aggregate Root: Analysis
// One row per analyze call, whether the advice came from the live
// advisory service or from the fallback text. Append-only.
type Analysis struct {
	ID        AnalysisID     `json:"id"`
	UserID    string         `json:"user_id"`
	Result    string         `json:"analysis_result"`
	Source    Source         `json:"source"`
	ImageURL  string         `json:"image_url,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	Location  map[string]any `json:"location,omitempty"`
}

// Source enum
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)
