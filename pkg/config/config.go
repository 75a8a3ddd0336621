package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigPath      = "config.yaml"
	defaultListenAddr      = ":8000"
	defaultAssetsDir       = "./data/assets"
	defaultVideoDir        = "./data/videos"
	defaultAudioDir        = "./data/audio"
	defaultResolution      = "1080x1920"
	defaultDuration        = 15
	defaultGroqModel       = "llama-3.3-70b-versatile"
	defaultElevenLabsModel = "eleven_turbo_v2_5"
	defaultSealVoice       = "EXAVITQu4vr4xnSDxMaL"
	defaultPenguinVoice    = "pNInz6obpgDQGcFmaJgB"
	defaultStability       = 0.5
	defaultSimilarity      = 0.75
	defaultVibe            = "hype"
	defaultGCSPrefix       = "backgrounds"
)

type Config struct {
	GroqAPIKey       string
	ElevenLabsAPIKey string
	GCSBucket        string

	Server     ServerConfig     `yaml:"server"`
	Groq       GroqConfig       `yaml:"groq"`
	ElevenLabs ElevenLabsConfig `yaml:"elevenlabs"`
	Video      VideoConfig      `yaml:"video"`
	GCS        GCSConfig        `yaml:"gcs"`
}

type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

type GroqConfig struct {
	Model string `yaml:"model"`
}

type ElevenLabsConfig struct {
	Model        string  `yaml:"model"`
	Stability    float64 `yaml:"stability"`
	Similarity   float64 `yaml:"similarity"`
	SealVoice    string  `yaml:"seal_voice"`
	PenguinVoice string  `yaml:"penguin_voice"`
}

type VideoConfig struct {
	AssetsDir   string `yaml:"assets_dir"`
	OutputDir   string `yaml:"output_dir"`
	AudioDir    string `yaml:"audio_dir"`
	Resolution  string `yaml:"resolution"`
	Duration    int    `yaml:"duration"`
	FFmpegPath  string `yaml:"ffmpeg_path"`
	FontFile    string `yaml:"font_file"`
	DefaultVibe string `yaml:"default_vibe"`
}

type GCSConfig struct {
	Enabled       bool   `yaml:"enabled"`
	BackgroundDir string `yaml:"background_dir"`
}

// GCSSyncEnabled reports whether background clips should be mirrored
// from GCS: the mirror must be enabled and a bucket configured.
func (c *Config) GCSSyncEnabled() bool {
	return c.GCS.Enabled && c.GCSBucket != ""
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		GroqAPIKey:       os.Getenv("GROQ_API_KEY"),
		ElevenLabsAPIKey: os.Getenv("ELEVENLABS_API_KEY"),
		GCSBucket:        os.Getenv("GCS_BUCKET"),
	}

	loadYAMLConfig(cfg)
	applyDefaults(cfg)

	return cfg
}

func loadYAMLConfig(cfg *Config) {
	data, err := os.ReadFile(defaultConfigPath)
	if err != nil {
		slog.Warn("No config.yaml found, using defaults")
		return
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		slog.Error("Failed to parse config.yaml", "error", err)
	}
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(cfg)
	applyGroqDefaults(cfg)
	applyElevenLabsDefaults(cfg)
	applyVideoDefaults(cfg)
	applyGCSDefaults(cfg)
}

func applyServerDefaults(cfg *Config) {
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = defaultListenAddr
	}
}

func applyGroqDefaults(cfg *Config) {
	if cfg.Groq.Model == "" {
		cfg.Groq.Model = defaultGroqModel
	}
}

func applyElevenLabsDefaults(cfg *Config) {
	if cfg.ElevenLabs.Model == "" {
		cfg.ElevenLabs.Model = defaultElevenLabsModel
	}
	if cfg.ElevenLabs.Stability == 0 {
		cfg.ElevenLabs.Stability = defaultStability
	}
	if cfg.ElevenLabs.Similarity == 0 {
		cfg.ElevenLabs.Similarity = defaultSimilarity
	}
	if cfg.ElevenLabs.SealVoice == "" {
		cfg.ElevenLabs.SealVoice = defaultSealVoice
	}
	if cfg.ElevenLabs.PenguinVoice == "" {
		cfg.ElevenLabs.PenguinVoice = defaultPenguinVoice
	}
}

func applyVideoDefaults(cfg *Config) {
	if cfg.Video.AssetsDir == "" {
		cfg.Video.AssetsDir = defaultAssetsDir
	}
	if cfg.Video.OutputDir == "" {
		cfg.Video.OutputDir = defaultVideoDir
	}
	if cfg.Video.AudioDir == "" {
		cfg.Video.AudioDir = defaultAudioDir
	}
	if cfg.Video.Resolution == "" {
		cfg.Video.Resolution = defaultResolution
	}
	if cfg.Video.Duration == 0 {
		cfg.Video.Duration = defaultDuration
	}
	if cfg.Video.FFmpegPath == "" {
		cfg.Video.FFmpegPath = "ffmpeg"
	}
	if cfg.Video.DefaultVibe == "" {
		cfg.Video.DefaultVibe = defaultVibe
	}
}

func applyGCSDefaults(cfg *Config) {
	if cfg.GCS.BackgroundDir == "" {
		cfg.GCS.BackgroundDir = defaultGCSPrefix
	}
}
