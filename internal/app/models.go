package app

import (
	"time"

	"dewi/internal/script"
)

// RenderStatus tracks a video through the pipeline.
type RenderStatus string

const (
	StatusPending    RenderStatus = "pending"
	StatusProcessing RenderStatus = "processing"
	StatusComplete   RenderStatus = "complete"
	// StatusPendingToolchain marks renders that finished with a
	// placeholder artifact because ffmpeg was unavailable.
	StatusPendingToolchain RenderStatus = "pending_toolchain"
)

// Fact is an atomic piece of educational content to build a video from.
type Fact struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Video is a generated script bound to a fact and vibe. One video
// exists per (fact, vibe) pair; repeated generation returns the cached
// record.
type Video struct {
	ID          string         `json:"id"`
	FactID      string         `json:"fact_id"`
	Vibe        string         `json:"vibe"`
	Script      *script.Script `json:"script"`
	Status      RenderStatus   `json:"status"`
	AIAvailable bool           `json:"ai_available"`
	CreatedAt   time.Time      `json:"created_at"`
}

// RenderResult is one render attempt. Renders are never deduplicated:
// each call produces a fresh result with its own id and artifacts.
type RenderResult struct {
	RenderID        string       `json:"render_id"`
	VideoID         string       `json:"video_id"`
	Status          RenderStatus `json:"status"`
	NarrationText   string       `json:"narration_text"`
	AudioPath       string       `json:"audio_path,omitempty"`
	VideoPath       string       `json:"video_path,omitempty"`
	PlaceholderPath string       `json:"placeholder_path,omitempty"`
	AudioGenerated  bool         `json:"audio_generated"`
	CreatedAt       time.Time    `json:"created_at"`
}
