package video

import (
	"strings"
	"unicode/utf8"

	"dewi/internal/script"
)

// Font size tiers for on-screen text, chosen by line length.
const (
	FontSizeLarge  = 72
	FontSizeMedium = 56
	FontSizeSmall  = 48

	mediumThreshold = 30
	smallThreshold  = 50
)

// TextCue is one timed on-screen line. Cue windows are contiguous,
// non-overlapping, and together cover exactly [0, duration).
type TextCue struct {
	Text     string
	Start    float64
	End      float64
	FontSize int
}

// BuildCues partitions the script's display lines evenly across the
// clip duration. Pure and deterministic for a given script.
func BuildCues(s *script.Script) []TextCue {
	lines := s.Lines()
	total := float64(s.DurationSeconds)
	if total <= 0 {
		total = script.DefaultDuration
	}

	perLine := total / float64(len(lines))
	cues := make([]TextCue, len(lines))
	for i, line := range lines {
		end := float64(i+1) * perLine
		if i == len(lines)-1 {
			// Close the last window at the exact total so rounding
			// never leaves a gap at the end of the clip.
			end = total
		}
		cues[i] = TextCue{
			Text:     line,
			Start:    float64(i) * perLine,
			End:      end,
			FontSize: fontSizeFor(line),
		}
	}

	return cues
}

func fontSizeFor(line string) int {
	switch n := utf8.RuneCountInString(line); {
	case n < mediumThreshold:
		return FontSizeLarge
	case n < smallThreshold:
		return FontSizeMedium
	default:
		return FontSizeSmall
	}
}

// EscapeDrawText escapes characters that are syntactically significant
// to the drawtext filter. UnescapeDrawText inverts it exactly.
func EscapeDrawText(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\', '\'', ':':
			sb.WriteRune('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func UnescapeDrawText(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	escaped := false
	for _, r := range s {
		if !escaped && r == '\\' {
			escaped = true
			continue
		}
		escaped = false
		sb.WriteRune(r)
	}
	return sb.String()
}
