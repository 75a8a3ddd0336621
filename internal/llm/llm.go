package llm

import (
	"context"

	"dewi/internal/script"
)

// Generator is the script-generation capability. Implementations may
// fail; callers fall back to script.Fallback and never surface the
// error to their own callers.
type Generator interface {
	GenerateScript(ctx context.Context, factText, vibe string) (*script.Script, error)
	Available() bool
}

var vibeStyles = map[string]string{
	"hype":     "energetic, excited, 'OKAY BUT LIKE', 'NO BECAUSE'",
	"cozy":     "calm, reassuring, 'hey bestie', 'we got this'",
	"chaotic":  "unhinged, 'SCREAMING', 'HELP', 'NOT ME'",
	"unhinged": "maximum chaos, 'why is no one talking about this??'",
}

// StyleFor maps a vibe to its prompt style hint. Unknown vibes are
// passed through verbatim so callers can experiment with free-form
// styles.
func StyleFor(vibe string) string {
	if style, ok := vibeStyles[vibe]; ok {
		return style
	}
	if vibe != "" {
		return vibe
	}
	return vibeStyles["hype"]
}
