package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	elevenLabsBaseURL = "https://api.elevenlabs.io/v1/text-to-speech"
	defaultTimeout    = 60 * time.Second
)

type elevenlabsRequest struct {
	Text          string                `json:"text"`
	ModelID       string                `json:"model_id"`
	VoiceSettings elevenlabsVoiceConfig `json:"voice_settings"`
}

type elevenlabsVoiceConfig struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

type elevenlabsErrorResponse struct {
	Detail struct {
		Message string `json:"message"`
	} `json:"detail"`
}

// ElevenLabsClient implements Provider using the ElevenLabs API.
type ElevenLabsClient struct {
	apiKey     string
	httpClient *http.Client
	model      string
	stability  float64
	similarity float64
	voices     map[string]string
	baseURL    string
}

// ElevenLabsOptions configures the ElevenLabs client. SealVoice and
// PenguinVoice are provider voice IDs for the two mascot identities.
type ElevenLabsOptions struct {
	Model        string
	Stability    float64
	Similarity   float64
	SealVoice    string
	PenguinVoice string
}

func NewElevenLabsClient(apiKey string, opts ElevenLabsOptions) *ElevenLabsClient {
	return &ElevenLabsClient{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		model:      opts.Model,
		stability:  opts.Stability,
		similarity: opts.Similarity,
		voices: map[string]string{
			VoiceSeal:    opts.SealVoice,
			VoicePenguin: opts.PenguinVoice,
		},
		baseURL: elevenLabsBaseURL,
	}
}

// Available reports whether the client is configured. When false,
// Synthesize fails immediately without network I/O.
func (c *ElevenLabsClient) Available() bool {
	return c.apiKey != ""
}

// Synthesize converts text to audio bytes using the given mascot voice.
// Unknown voice selectors fall back to the seal voice.
func (c *ElevenLabsClient) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	if !c.Available() {
		return nil, fmt.Errorf("elevenlabs: not configured")
	}

	text = Truncate(text)
	voiceID := c.voiceID(voice)

	reqBody := elevenlabsRequest{
		Text:    text,
		ModelID: c.model,
		VoiceSettings: elevenlabsVoiceConfig{
			Stability:       c.stability,
			SimilarityBoost: c.similarity,
			Style:           0.3,
			UseSpeakerBoost: true,
		},
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp elevenlabsErrorResponse
		if jsonErr := json.Unmarshal(body, &errResp); jsonErr == nil && errResp.Detail.Message != "" {
			return nil, fmt.Errorf("elevenlabs: %s", errResp.Detail.Message)
		}
		return nil, fmt.Errorf("elevenlabs: %s", resp.Status)
	}

	if len(body) == 0 {
		return nil, fmt.Errorf("elevenlabs: empty audio response")
	}

	return body, nil
}

func (c *ElevenLabsClient) voiceID(voice string) string {
	if id, ok := c.voices[voice]; ok && id != "" {
		return id
	}
	return c.voices[VoiceSeal]
}

// SetBaseURL sets the base URL for testing.
func (c *ElevenLabsClient) SetBaseURL(url string) {
	c.baseURL = url
}
