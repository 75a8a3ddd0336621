package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"dewi/internal/llm"
	"dewi/internal/script"
	"dewi/internal/speech"
	"dewi/internal/storage"
	"dewi/internal/video"
)

// ErrNotFound is returned for lookups of unknown facts, videos, or
// renders.
var ErrNotFound = errors.New("not found")

const narrationPreviewLen = 200

// Service orchestrates the pipeline: fact -> script -> narration ->
// assembled clip. Script generation is memoized per (fact, vibe);
// rendering is not, so every render call produces fresh artifacts.
type Service struct {
	facts   *FactStore
	videos  *VideoStore
	renders *RenderStore

	generator   llm.Generator
	tts         speech.Provider
	store       *storage.LocalStorage
	assembler   *video.Assembler
	defaultVibe string
}

type ServiceOptions struct {
	Generator   llm.Generator
	TTS         speech.Provider
	Store       *storage.LocalStorage
	Assembler   *video.Assembler
	DefaultVibe string
}

func NewService(opts ServiceOptions) *Service {
	defaultVibe := opts.DefaultVibe
	if defaultVibe == "" {
		defaultVibe = "hype"
	}

	return &Service{
		facts:       NewFactStore(),
		videos:      NewVideoStore(),
		renders:     NewRenderStore(),
		generator:   opts.Generator,
		tts:         opts.TTS,
		store:       opts.Store,
		assembler:   opts.Assembler,
		defaultVibe: defaultVibe,
	}
}

// AddFact registers a fact and returns it with a fresh id.
func (s *Service) AddFact(text string) *Fact {
	fact := &Fact{
		ID:        uuid.NewString(),
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	s.facts.Put(fact)
	return fact
}

func (s *Service) GetFact(id string) (*Fact, error) {
	fact, ok := s.facts.Get(id)
	if !ok {
		return nil, fmt.Errorf("fact %s: %w", id, ErrNotFound)
	}
	return fact, nil
}

func (s *Service) ListFacts() []*Fact {
	return s.facts.List()
}

// GenerateVideo produces a script for the fact in the given vibe. The
// result is cached per (fact, vibe); a second call returns the same
// record without touching the generator. Generation itself always
// succeeds: when the generator is missing or fails, the deterministic
// fallback script is used instead.
func (s *Service) GenerateVideo(ctx context.Context, factID, vibe string) (*Video, error) {
	fact, ok := s.facts.Get(factID)
	if !ok {
		return nil, fmt.Errorf("fact %s: %w", factID, ErrNotFound)
	}
	if vibe == "" {
		vibe = s.defaultVibe
	}

	if cached, ok := s.videos.Get(factID, vibe); ok {
		return cached, nil
	}

	scr, aiUsed := s.generateScript(ctx, fact.Text, vibe)

	v := &Video{
		ID:          uuid.NewString(),
		FactID:      factID,
		Vibe:        vibe,
		Script:      scr,
		Status:      StatusPending,
		AIAvailable: aiUsed,
		CreatedAt:   time.Now().UTC(),
	}
	s.videos.Put(v)

	slog.Info("Generated video script", "video_id", v.ID, "fact_id", factID, "vibe", vibe, "ai", aiUsed)
	return v, nil
}

func (s *Service) generateScript(ctx context.Context, factText, vibe string) (*script.Script, bool) {
	if s.generator == nil || !s.generator.Available() {
		return script.Fallback(factText, vibe), false
	}

	scr, err := s.generator.GenerateScript(ctx, factText, vibe)
	if err != nil {
		slog.Warn("Script generation failed, using fallback", "error", err)
		return script.Fallback(factText, vibe), false
	}
	return scr, true
}

// BatchItem is the per-fact outcome of a batch generation.
type BatchItem struct {
	FactID string `json:"fact_id"`
	Video  *Video `json:"video,omitempty"`
	Error  string `json:"error,omitempty"`
}

// BatchGenerate generates scripts for several facts in one call, at
// most limit of them (limit <= 0 means no cap). Unknown fact ids
// produce a failed item rather than failing the batch.
func (s *Service) BatchGenerate(ctx context.Context, factIDs []string, vibe string, limit int) []BatchItem {
	if limit > 0 && len(factIDs) > limit {
		factIDs = factIDs[:limit]
	}

	items := make([]BatchItem, 0, len(factIDs))
	for _, factID := range factIDs {
		item := BatchItem{FactID: factID}
		v, err := s.GenerateVideo(ctx, factID, vibe)
		if err != nil {
			slog.Warn("Batch generation failed for fact", "fact_id", factID, "error", err)
			item.Error = err.Error()
		} else {
			item.Video = v
		}
		items = append(items, item)
	}
	return items
}

func (s *Service) GetVideo(id string) (*Video, error) {
	v, ok := s.videos.GetByID(id)
	if !ok {
		return nil, fmt.Errorf("video %s: %w", id, ErrNotFound)
	}
	return v, nil
}

// ListVideos pages through generated videos in insertion order.
// Negative skip is treated as zero; limit <= 0 means no cap.
func (s *Service) ListVideos(skip, limit int) []*Video {
	videos := s.videos.List()
	if skip < 0 {
		skip = 0
	}
	if skip >= len(videos) {
		return nil
	}
	videos = videos[skip:]
	if limit > 0 && len(videos) > limit {
		videos = videos[:limit]
	}
	return videos
}

// VideoCount reports how many unique videos exist, independent of
// pagination.
func (s *Service) VideoCount() int {
	return s.videos.Count()
}

// RenderVideo synthesizes narration and assembles the clip for a
// previously generated video. Every call is a fresh render with its
// own render id; nothing is deduplicated. Narration failures degrade
// to a silent clip; only artifact writes are fatal.
func (s *Service) RenderVideo(ctx context.Context, videoID string, includeAudio bool, voice string) (*RenderResult, error) {
	v, ok := s.videos.GetByID(videoID)
	if !ok {
		return nil, fmt.Errorf("video %s: %w", videoID, ErrNotFound)
	}

	s.videos.SetStatus(videoID, StatusProcessing)

	renderID := uuid.NewString()
	narration := NarrationText(v.Script)
	slog.Info("Rendering video", "render_id", renderID, "video_id", videoID,
		"narration_preview", preview(narration, narrationPreviewLen))

	result := &RenderResult{
		RenderID:      renderID,
		VideoID:       videoID,
		NarrationText: narration,
		CreatedAt:     time.Now().UTC(),
	}

	audioPath := ""
	if includeAudio {
		path, err := s.synthesizeNarration(ctx, narration, voice, renderID)
		if err != nil {
			return nil, err
		}
		if path != "" {
			audioPath = path
			result.AudioPath = path
			result.AudioGenerated = true
		}
	}

	assembled, err := s.assembler.Assemble(ctx, v.Script, audioPath, renderID)
	if err != nil {
		return nil, fmt.Errorf("assemble video: %w", err)
	}

	if assembled.Placeholder {
		result.Status = StatusPendingToolchain
		result.PlaceholderPath = assembled.OutputPath
	} else {
		result.Status = StatusComplete
		result.VideoPath = assembled.OutputPath
	}

	s.videos.SetStatus(videoID, result.Status)
	s.renders.Put(result)

	slog.Info("Render finished", "render_id", renderID, "status", result.Status, "audio", result.AudioGenerated)
	return result, nil
}

// synthesizeNarration returns the saved audio path, or "" when
// narration was skipped or failed. A failed save of synthesized audio
// is the one fatal case.
func (s *Service) synthesizeNarration(ctx context.Context, narration, voice, renderID string) (string, error) {
	if s.tts == nil || !s.tts.Available() {
		slog.Warn("Narration provider unavailable, rendering without audio")
		return "", nil
	}
	if voice == "" {
		voice = speech.VoiceSeal
	}

	data, err := s.tts.Synthesize(ctx, narration, voice)
	if err != nil {
		slog.Warn("Narration synthesis failed, rendering without audio", "error", err)
		return "", nil
	}

	path := s.store.AudioPath(renderID)
	if err := speech.SaveAudio(data, path); err != nil {
		return "", fmt.Errorf("save narration audio: %w", err)
	}
	return path, nil
}

func (s *Service) GetRender(id string) (*RenderResult, error) {
	r, ok := s.renders.Get(id)
	if !ok {
		return nil, fmt.Errorf("render %s: %w", id, ErrNotFound)
	}
	return r, nil
}

// RenderedArtifact returns the path of a finished clip. Renders that
// ended with a placeholder, or whose file has since disappeared, report
// not found.
func (s *Service) RenderedArtifact(renderID string) (string, error) {
	r, err := s.GetRender(renderID)
	if err != nil {
		return "", err
	}
	if r.VideoPath == "" {
		return "", fmt.Errorf("render %s has no video artifact: %w", renderID, ErrNotFound)
	}
	if _, err := os.Stat(r.VideoPath); err != nil {
		return "", fmt.Errorf("video artifact for render %s: %w", renderID, ErrNotFound)
	}
	return r.VideoPath, nil
}

// NarrationArtifact returns the path of the saved narration audio.
func (s *Service) NarrationArtifact(renderID string) (string, error) {
	r, err := s.GetRender(renderID)
	if err != nil {
		return "", err
	}
	if r.AudioPath == "" {
		return "", fmt.Errorf("render %s has no audio artifact: %w", renderID, ErrNotFound)
	}
	if _, err := os.Stat(r.AudioPath); err != nil {
		return "", fmt.Errorf("audio artifact for render %s: %w", renderID, ErrNotFound)
	}
	return r.AudioPath, nil
}

// ServiceStatus reports which external capabilities are live.
type ServiceStatus struct {
	AIAvailable     bool `json:"ai_available"`
	TTSAvailable    bool `json:"tts_available"`
	FFmpegAvailable bool `json:"ffmpeg_available"`
}

func (s *Service) Status() ServiceStatus {
	return ServiceStatus{
		AIAvailable:     s.generator != nil && s.generator.Available(),
		TTSAvailable:    s.tts != nil && s.tts.Available(),
		FFmpegAvailable: s.assembler.Available(),
	}
}

// NarrationText flattens a script into the text read aloud over the
// clip: hook, body, then the repeat phrase as a closing reminder.
func NarrationText(scr *script.Script) string {
	return fmt.Sprintf("%s... %s. Remember: %s!",
		scr.Hook, strings.Join(scr.Body, " "), scr.RepeatPhrase)
}

func preview(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
