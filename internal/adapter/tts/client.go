package tts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bytedance/sonic"

	"github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/domain"
)

// ErrNotConfigured is returned when the adapter has no API key.
var ErrNotConfigured = errors.New("tts: service not configured")

// PlaceholderAudioURL is returned by FallbackAudio when synthesis of the
// apology itself fails. It must always be playable by the client.
const PlaceholderAudioURL = "https://example.com/fallback-audio.mp3"

// Client is the Murf speech-generation client.
type Client struct {
	baseURL    string
	apiKey     string
	maxTextLen int
	httpClient *http.Client
}

// NewClient creates a new Murf client. maxTextLen is the provider's input
// limit; longer text is truncated, not rejected.
func NewClient(baseURL, apiKey string, maxTextLen int, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		maxTextLen: maxTextLen,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// IsConfigured reports whether an API key is present.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

type generateRequest struct {
	Text              string  `json:"text"`
	Style             string  `json:"style"`
	MultiNativeLocale string  `json:"multiNativeLocale"`
	Speed             float64 `json:"speed"`
	Pitch             float64 `json:"pitch"`
	Volume            float64 `json:"volume"`
	Language          string  `json:"language"`
	VoiceID           string  `json:"voice_id"`
}

type generateResponse struct {
	AudioFile string `json:"audioFile"`
}

// Synthesize generates speech for the text and returns the audio URL.
func (c *Client) Synthesize(ctx context.Context, text string, voice domain.VoiceParams) (*Result, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	truncated := false
	if len(text) > c.maxTextLen {
		original := len(text)
		cut := c.maxTextLen - 3
		if cut < 0 {
			cut = 0
		}
		// Back up to a rune boundary so the cut never splits a
		// multi-byte character.
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut] + "..."
		truncated = true
		log.Printf("WARN: TTS text truncated from %d to %d characters", original, len(text))
	}

	payload, err := sonic.Marshal(generateRequest{
		Text:              text,
		Style:             voice.Style,
		MultiNativeLocale: "en-US",
		Speed:             voice.Speed,
		Pitch:             voice.Pitch,
		Volume:            voice.Volume,
		Language:          "en-US",
		VoiceID:           voice.VoiceID,
	})
	if err != nil {
		return nil, fmt.Errorf("tts: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/speech/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("tts: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("tts: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("tts: murf API error [%d]: %s", resp.StatusCode, string(body))
	}

	var result generateResponse
	if err := sonic.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("tts: failed to unmarshal response: %w", err)
	}
	if result.AudioFile == "" {
		return nil, errors.New("tts: no audio URL in response")
	}

	return &Result{AudioURL: result.AudioFile, Truncated: truncated}, nil
}

// FallbackAudio synthesizes the apology message best-effort. Any failure
// degrades to the constant placeholder so the caller always gets a URL.
func (c *Client) FallbackAudio(ctx context.Context, message string) string {
	if !c.IsConfigured() {
		return PlaceholderAudioURL
	}

	result, err := c.Synthesize(ctx, message, domain.VoiceParams{
		VoiceID: "en-US-natalie",
		Style:   "Conversational",
		Speed:   1.0,
		Pitch:   1.0,
		Volume:  1.0,
	})
	if err != nil {
		log.Printf("WARN: fallback audio synthesis failed: %v", err)
		return PlaceholderAudioURL
	}
	return result.AudioURL
}
