package app

import (
	"fmt"
	"log/slog"

	"dewi/internal/llm"
	"dewi/internal/speech"
	"dewi/internal/storage"
	"dewi/internal/video"
	"dewi/pkg/config"
	"dewi/pkg/prompts"
)

// BuildService wires the full pipeline from configuration. Missing API
// keys degrade the corresponding capability instead of failing the
// build; only filesystem setup errors are fatal.
func BuildService(cfg *config.Config) (*Service, *storage.LocalStorage, error) {
	p, err := prompts.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load prompts: %w", err)
	}

	store := storage.NewLocalStorage(cfg.Video.AssetsDir, cfg.Video.OutputDir, cfg.Video.AudioDir)
	if err := store.EnsureDirectories(); err != nil {
		return nil, nil, fmt.Errorf("prepare storage: %w", err)
	}

	var generator llm.Generator
	if cfg.GroqAPIKey != "" {
		g, err := llm.NewGroqGenerator(cfg.GroqAPIKey, cfg.Groq.Model, p)
		if err != nil {
			slog.Warn("Groq client unavailable, scripts will use fallback", "error", err)
		} else {
			generator = g
		}
	} else {
		slog.Warn("GROQ_API_KEY not set, scripts will use fallback")
	}

	var tts speech.Provider
	if cfg.ElevenLabsAPIKey != "" {
		tts = speech.NewElevenLabsClient(cfg.ElevenLabsAPIKey, speech.ElevenLabsOptions{
			Model:        cfg.ElevenLabs.Model,
			Stability:    cfg.ElevenLabs.Stability,
			Similarity:   cfg.ElevenLabs.Similarity,
			SealVoice:    cfg.ElevenLabs.SealVoice,
			PenguinVoice: cfg.ElevenLabs.PenguinVoice,
		})
	} else {
		slog.Warn("ELEVENLABS_API_KEY not set, renders will be silent")
	}

	assembler := video.NewAssembler(video.AssemblerOptions{
		FFmpegPath:  cfg.Video.FFmpegPath,
		OutputDir:   cfg.Video.OutputDir,
		Resolution:  cfg.Video.Resolution,
		Duration:    cfg.Video.Duration,
		FontFile:    cfg.Video.FontFile,
		Backgrounds: store,
	})

	svc := NewService(ServiceOptions{
		Generator:   generator,
		TTS:         tts,
		Store:       store,
		Assembler:   assembler,
		DefaultVibe: cfg.Video.DefaultVibe,
	})

	return svc, store, nil
}
