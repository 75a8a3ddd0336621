package script

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultDuration is the fixed length of a generated clip in seconds.
const DefaultDuration = 15

type MascotCue struct {
	Timestamp string `json:"timestamp"`
	Character string `json:"character"`
	Action    string `json:"action"`
}

type Script struct {
	Hook            string      `json:"hook"`
	Body            []string    `json:"body"`
	RepeatPhrase    string      `json:"repeat_phrase"`
	MascotCues      []MascotCue `json:"mascot_cues"`
	Background      string      `json:"background"`
	AudioVibe       string      `json:"audio_vibe"`
	DurationSeconds int         `json:"duration_seconds"`
}

// Lines returns the on-screen text in display order: hook, body lines,
// then the repeat phrase marked with the loop emoji.
func (s *Script) Lines() []string {
	lines := make([]string, 0, len(s.Body)+2)
	lines = append(lines, s.Hook)
	lines = append(lines, s.Body...)
	lines = append(lines, "🔁 "+s.RepeatPhrase)
	return lines
}

// generated mirrors the JSON shape the generation capability returns.
type generated struct {
	Hook         *string      `json:"hook"`
	Body         *[]string    `json:"body"`
	RepeatPhrase *string      `json:"repeat_phrase"`
	MascotCues   *[]MascotCue `json:"mascot_cues"`
	BgSuggestion *string      `json:"bg_suggestion"`
	AudioVibe    *string      `json:"audio_vibe"`
}

// Parse decodes generator output into a Script. It fails closed: any
// missing or empty field is an error rather than a silent default, so
// malformed upstream output always routes to the deterministic fallback.
func Parse(raw string) (*Script, error) {
	obj, err := extractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var g generated
	if err := json.Unmarshal([]byte(obj), &g); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}

	if g.Hook == nil || *g.Hook == "" {
		return nil, fmt.Errorf("script missing hook")
	}
	if g.Body == nil || len(*g.Body) == 0 {
		return nil, fmt.Errorf("script missing body")
	}
	for i, line := range *g.Body {
		if strings.TrimSpace(line) == "" {
			return nil, fmt.Errorf("script body line %d is empty", i)
		}
	}
	if g.RepeatPhrase == nil || *g.RepeatPhrase == "" {
		return nil, fmt.Errorf("script missing repeat_phrase")
	}
	if g.MascotCues == nil {
		return nil, fmt.Errorf("script missing mascot_cues")
	}
	if g.BgSuggestion == nil || *g.BgSuggestion == "" {
		return nil, fmt.Errorf("script missing bg_suggestion")
	}
	if g.AudioVibe == nil || *g.AudioVibe == "" {
		return nil, fmt.Errorf("script missing audio_vibe")
	}

	return &Script{
		Hook:            *g.Hook,
		Body:            *g.Body,
		RepeatPhrase:    *g.RepeatPhrase,
		MascotCues:      *g.MascotCues,
		Background:      *g.BgSuggestion,
		AudioVibe:       *g.AudioVibe,
		DurationSeconds: DefaultDuration,
	}, nil
}

// extractJSONObject cuts the first top-level JSON object out of model
// output that may be wrapped in prose or markdown fences.
func extractJSONObject(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no JSON object in response")
	}
	return raw[start : end+1], nil
}
