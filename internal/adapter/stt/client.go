package stt

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

	"github.com/bytedance/sonic"

	"github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/domain"
)

// ErrNotConfigured is returned when the adapter has no API key.
var ErrNotConfigured = errors.New("stt: service not configured")

const pollInterval = 500 * time.Millisecond

// Client is the AssemblyAI transcription client. Transcription is a
// three-step flow: upload the audio bytes, create a transcript job, then
// poll the job until it completes or errors.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new AssemblyAI client. The timeout bounds the whole
// upload-create-poll sequence for one transcription.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// IsConfigured reports whether an API key is present.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

type uploadResponse struct {
	UploadURL string `json:"upload_url"`
}

type transcriptRequest struct {
	AudioURL string `json:"audio_url"`
}

type transcriptResponse struct {
	ID         string   `json:"id"`
	Status     string   `json:"status"`
	Text       string   `json:"text"`
	Confidence *float64 `json:"confidence"`
	Error      string   `json:"error"`
}

// Transcribe uploads the audio and polls the transcript job to completion.
func (c *Client) Transcribe(ctx context.Context, audio []byte) (*domain.Transcript, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	uploadURL, err := c.upload(ctx, audio)
	if err != nil {
		return nil, fmt.Errorf("stt: upload failed: %w", err)
	}

	jobID, err := c.createTranscript(ctx, uploadURL)
	if err != nil {
		return nil, fmt.Errorf("stt: create transcript failed: %w", err)
	}

	for {
		tr, err := c.getTranscript(ctx, jobID)
		if err != nil {
			return nil, fmt.Errorf("stt: poll transcript failed: %w", err)
		}

		switch tr.Status {
		case "completed":
			return &domain.Transcript{Text: tr.Text, Confidence: tr.Confidence}, nil
		case "error":
			return nil, fmt.Errorf("stt: transcription error: %s", tr.Error)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

// upload pushes raw audio bytes and returns the provider-hosted URL.
func (c *Client) upload(ctx context.Context, audio []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/upload", bytes.NewReader(audio))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	body, err := c.do(req)
	if err != nil {
		return "", err
	}

	var resp uploadResponse
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to unmarshal upload response: %w", err)
	}
	if resp.UploadURL == "" {
		return "", errors.New("no upload_url in response")
	}
	return resp.UploadURL, nil
}

func (c *Client) createTranscript(ctx context.Context, audioURL string) (string, error) {
	payload, err := sonic.Marshal(transcriptRequest{AudioURL: audioURL})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/transcript", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return "", err
	}

	var resp transcriptResponse
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to unmarshal transcript response: %w", err)
	}
	if resp.ID == "" {
		return "", errors.New("no transcript id in response")
	}
	return resp.ID, nil
}

func (c *Client) getTranscript(ctx context.Context, id string) (*transcriptResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v2/transcript/"+id, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.apiKey)

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var resp transcriptResponse
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transcript response: %w", err)
	}
	return &resp, nil
}

// do executes the request and returns the body, treating non-2xx as errors.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("ERROR: AssemblyAI returned status %d: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("assemblyai API error [%d]", resp.StatusCode)
	}
	return body, nil
}
