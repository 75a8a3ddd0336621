package speech

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// MaxChars is the provider's hard input limit. Longer narration text is
// truncated before submission, never rejected.
const MaxChars = 5000

const (
	// VoiceSeal is the warm, friendly mascot voice.
	VoiceSeal = "seal"
	// VoicePenguin is the clear, educational mascot voice.
	VoicePenguin = "penguin"
)

// Provider is the narration-synthesis capability.
type Provider interface {
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
	Available() bool
}

// Truncate enforces the provider input limit.
func Truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxChars {
		return text
	}
	return string(runes[:MaxChars])
}

// SaveAudio writes synthesized audio to path, creating parent
// directories as needed. The file is closed even when the write fails,
// and a partial write surfaces as an error for the whole call.
func SaveAudio(data []byte, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create audio directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create audio file: %w", err)
	}

	_, writeErr := f.Write(data)
	closeErr := f.Close()
	if writeErr != nil {
		return fmt.Errorf("write audio file: %w", writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close audio file: %w", closeErr)
	}

	return nil
}
