// Package http provides the HTTP handlers for the voice agent.
package http

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/config"
	"github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/domain"
	"github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/service"
)

// Version is the reported application version.
const Version = "1.0.0"

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
	config  *config.Config
}

// NewHandler creates a new handler.
func NewHandler(svc *service.Service, cfg *config.Config) *Handler {
	return &Handler{
		service: svc,
		config:  cfg,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)

	// Single-stage endpoints
	e.POST("/transcribe/file", h.TranscribeFile)
	e.POST("/tts", h.GenerateTTS)
	e.POST("/tts/echo", h.EchoTTS)

	// Pipeline endpoints
	e.POST("/llm/query", h.QueryLLM)
	e.POST("/agent/chat/:session_id", h.AgentChat)
	e.DELETE("/agent/chat/:session_id", h.ClearSession)
}

// Health returns health status and per-provider credential presence.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":              "healthy",
		"api_keys_configured": h.config.APIKeyStatus(),
		"timestamp":           time.Now().UTC().Format(time.RFC3339),
		"version":             Version,
	})
}

// TranscribeFile transcribes an uploaded audio file to text.
// POST /transcribe/file
func (h *Handler) TranscribeFile(c echo.Context) error {
	if !h.service.STTConfigured() {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Speech-to-text service not configured"})
	}

	audio, err := h.readUpload(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	transcript, err := h.service.TranscribeFile(c.Request().Context(), audio)
	if err != nil {
		log.Printf("ERROR: transcription endpoint failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "transcription failed"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"transcription": transcript.Text,
		"confidence":    transcript.Confidence,
		"success":       true,
	})
}

type ttsRequest struct {
	Text    string  `json:"text"`
	VoiceID string  `json:"voice_id"`
	Style   string  `json:"style"`
	Speed   float64 `json:"speed"`
	Pitch   float64 `json:"pitch"`
	Volume  float64 `json:"volume"`
}

// GenerateTTS converts text into speech.
// POST /tts
func (h *Handler) GenerateTTS(c echo.Context) error {
	if !h.service.TTSConfigured() {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Text-to-speech service not configured"})
	}

	var req ttsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Text == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "text is required"})
	}

	voice, err := h.normalizeVoice(req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	result, err := h.service.Speak(c.Request().Context(), req.Text, voice)
	if err != nil {
		log.Printf("ERROR: TTS endpoint failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "speech generation failed"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"audio_url": result.AudioURL,
		"truncated": result.Truncated,
		"success":   true,
	})
}

// EchoTTS transcribes the upload and speaks the transcript back.
// POST /tts/echo
func (h *Handler) EchoTTS(c echo.Context) error {
	audio, err := h.readUpload(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, h.service.Echo(c.Request().Context(), audio))
}

// QueryLLM runs the full stateless voice pipeline.
// POST /llm/query
func (h *Handler) QueryLLM(c echo.Context) error {
	audio, err := h.readUpload(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, h.service.RunStatelessQuery(c.Request().Context(), audio))
}

// AgentChat runs one conversational turn against a session.
// POST /agent/chat/:session_id
func (h *Handler) AgentChat(c echo.Context) error {
	sessionID := c.Param("session_id")

	audio, err := h.readUpload(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, h.service.RunSessionTurn(c.Request().Context(), sessionID, audio))
}

// ClearSession removes the conversation history for a session.
// DELETE /agent/chat/:session_id
func (h *Handler) ClearSession(c echo.Context) error {
	sessionID := c.Param("session_id")

	if err := h.service.ClearSession(c.Request().Context(), sessionID); err != nil {
		log.Printf("ERROR: failed to clear session: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to clear session"})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session %s cleared", sessionID),
	})
}

// readUpload materializes the multipart "file" field under the temp upload
// directory, reads it back, and removes it before returning. The core only
// ever sees the decoded bytes.
func (h *Handler) readUpload(c echo.Context) ([]byte, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("file is required")
	}
	if file.Size > h.config.MaxUploadSize {
		return nil, fmt.Errorf("file exceeds maximum size of %d bytes", h.config.MaxUploadSize)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(h.config.TempUploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	path := filepath.Join(h.config.TempUploadDir, uuid.New().String()+filepath.Ext(file.Filename))
	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(path)

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return nil, fmt.Errorf("failed to save upload: %w", err)
	}
	dst.Close()

	return os.ReadFile(path)
}

// normalizeVoice fills defaults and validates parameter bounds.
func (h *Handler) normalizeVoice(req ttsRequest) (domain.VoiceParams, error) {
	voice := domain.VoiceParams{
		VoiceID: req.VoiceID,
		Style:   req.Style,
		Speed:   req.Speed,
		Pitch:   req.Pitch,
		Volume:  req.Volume,
	}
	if voice.VoiceID == "" {
		voice.VoiceID = h.config.DefaultVoiceID
	}
	if voice.Style == "" {
		voice.Style = h.config.DefaultVoiceStyle
	}
	if voice.Speed == 0 {
		voice.Speed = 1.0
	}
	if voice.Pitch == 0 {
		voice.Pitch = 1.0
	}
	if voice.Volume == 0 {
		voice.Volume = 1.0
	}

	if voice.Speed < 0.5 || voice.Speed > 2.0 {
		return voice, fmt.Errorf("speed must be between 0.5 and 2.0")
	}
	if voice.Pitch < 0.5 || voice.Pitch > 2.0 {
		return voice, fmt.Errorf("pitch must be between 0.5 and 2.0")
	}
	if voice.Volume < 0.1 || voice.Volume > 2.0 {
		return voice, fmt.Errorf("volume must be between 0.1 and 2.0")
	}
	return voice, nil
}
