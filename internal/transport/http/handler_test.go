package http

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/adapter/llm"
	"github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/adapter/stt"
	"github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/adapter/tts"
	"github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/config"
	"github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/repository"
	"github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/service"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		AssemblyAIAPIKey:  "a",
		GeminiAPIKey:      "g",
		MurfAPIKey:        "m",
		MaxHistoryLength:  50,
		DefaultVoiceID:    "en-US-natalie",
		DefaultVoiceStyle: "Conversational",
		STTTimeout:        time.Second,
		LLMTimeout:        time.Second,
		TTSTimeout:        time.Second,
		TempUploadDir:     t.TempDir(),
		MaxUploadSize:     1024 * 1024,
	}
}

func newTestServer(t *testing.T, sttMock *stt.Mock, llmMock *llm.Mock, ttsMock *tts.Mock) *echo.Echo {
	t.Helper()
	cfg := testConfig(t)
	store := repository.NewMemoryStore(cfg.MaxHistoryLength)
	svc := service.New(sttMock, llmMock, ttsMock, store, cfg)

	e := echo.New()
	NewHandler(svc, cfg).RegisterRoutes(e)
	return e
}

func audioUpload(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "recording.webm")
	require.NoError(t, err)
	_, err = io.Copy(part, strings.NewReader("fake-audio-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealthEndpoint(t *testing.T) {
	e := newTestServer(t, stt.NewMock("x"), llm.NewMock("x"), tts.NewMock("http://x/a.mp3"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, Version, body["version"])
	keys, ok := body["api_keys_configured"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, keys["assemblyai"])
	assert.Equal(t, true, keys["gemini"])
	assert.Equal(t, true, keys["murf"])
}

func TestAgentChatSuccess(t *testing.T) {
	e := newTestServer(t, stt.NewMock("hello"), llm.NewMock("hi there"), tts.NewMock("http://x/a.mp3"))

	buf, contentType := audioUpload(t)
	req := httptest.NewRequest(http.MethodPost, "/agent/chat/session-1", buf)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "session-1", body["session_id"])
	assert.Equal(t, "hello", body["transcription"])
	assert.Equal(t, "hi there", body["llm_response"])
	assert.Equal(t, "http://x/a.mp3", body["audio_url"])
	assert.Equal(t, float64(2), body["history_length"])
	assert.Equal(t, true, body["success"])
	_, hasError := body["error"]
	assert.False(t, hasError, "successful envelopes omit the error field")
}

func TestAgentChatFailureStillReturns200(t *testing.T) {
	sttMock := &stt.Mock{Configured: false}
	e := newTestServer(t, sttMock, llm.NewMock("x"), &tts.Mock{Configured: false})

	buf, contentType := audioUpload(t)
	req := httptest.NewRequest(http.MethodPost, "/agent/chat/session-1", buf)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, "pipeline failures answer 200 with a fallback envelope")
	body := decodeBody(t, rec)
	assert.Equal(t, "api_keys_missing", body["error"])
	assert.Equal(t, false, body["success"])
	assert.Equal(t, tts.MockFallbackURL, body["audio_url"])
}

func TestAgentChatRequiresFile(t *testing.T) {
	e := newTestServer(t, stt.NewMock("x"), llm.NewMock("x"), tts.NewMock("http://x/a.mp3"))

	req := httptest.NewRequest(http.MethodPost, "/agent/chat/session-1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQueryLLMOmitsSessionFields(t *testing.T) {
	e := newTestServer(t, stt.NewMock("hello"), llm.NewMock("hi"), tts.NewMock("http://x/a.mp3"))

	buf, contentType := audioUpload(t)
	req := httptest.NewRequest(http.MethodPost, "/llm/query", buf)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	_, hasSession := body["session_id"]
	assert.False(t, hasSession)
	_, hasHistory := body["history_length"]
	assert.False(t, hasHistory)
}

func TestTranscribeFileSuccess(t *testing.T) {
	e := newTestServer(t, stt.NewMock("typed out"), llm.NewMock("x"), tts.NewMock("http://x/a.mp3"))

	buf, contentType := audioUpload(t)
	req := httptest.NewRequest(http.MethodPost, "/transcribe/file", buf)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "typed out", body["transcription"])
	assert.Equal(t, true, body["success"])
}

func TestTranscribeFileUnconfigured(t *testing.T) {
	e := newTestServer(t, &stt.Mock{Configured: false}, llm.NewMock("x"), tts.NewMock("http://x/a.mp3"))

	buf, contentType := audioUpload(t)
	req := httptest.NewRequest(http.MethodPost, "/transcribe/file", buf)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGenerateTTSSuccess(t *testing.T) {
	e := newTestServer(t, stt.NewMock("x"), llm.NewMock("x"), tts.NewMock("http://x/speech.mp3"))

	payload := `{"text": "read this aloud"}`
	req := httptest.NewRequest(http.MethodPost, "/tts", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "http://x/speech.mp3", body["audio_url"])
	assert.Equal(t, true, body["success"])
}

func TestGenerateTTSValidation(t *testing.T) {
	e := newTestServer(t, stt.NewMock("x"), llm.NewMock("x"), tts.NewMock("http://x/a.mp3"))

	cases := []struct {
		name    string
		payload string
	}{
		{"empty text", `{"text": ""}`},
		{"speed out of range", `{"text": "hi", "speed": 3.0}`},
		{"pitch out of range", `{"text": "hi", "pitch": 0.1}`},
		{"volume out of range", `{"text": "hi", "volume": 5.0}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/tts", strings.NewReader(tc.payload))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestEchoTTSEndpoint(t *testing.T) {
	llmMock := llm.NewMock("unused")
	e := newTestServer(t, stt.NewMock("say it back"), llmMock, tts.NewMock("http://x/echo.mp3"))

	buf, contentType := audioUpload(t)
	req := httptest.NewRequest(http.MethodPost, "/tts/echo", buf)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "say it back", body["transcription"])
	assert.Equal(t, "http://x/echo.mp3", body["audio_url"])
	assert.Zero(t, llmMock.Calls)
}

func TestClearSessionEndpoint(t *testing.T) {
	e := newTestServer(t, stt.NewMock("hello"), llm.NewMock("hi"), tts.NewMock("http://x/a.mp3"))

	// Seed a turn, clear it, then clear again to confirm idempotence.
	buf, contentType := audioUpload(t)
	req := httptest.NewRequest(http.MethodPost, "/agent/chat/session-1", buf)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	for i := 0; i < 2; i++ {
		req = httptest.NewRequest(http.MethodDelete, "/agent/chat/session-1", nil)
		rec = httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Session session-1 cleared", body["message"])
	}

	// A fresh turn starts from an empty window.
	buf, contentType = audioUpload(t)
	req = httptest.NewRequest(http.MethodPost, "/agent/chat/session-1", buf)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(2), body["history_length"])
}

func TestUploadSizeLimit(t *testing.T) {
	e := newTestServer(t, stt.NewMock("x"), llm.NewMock("x"), tts.NewMock("http://x/a.mp3"))

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "huge.webm")
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("a"), 2*1024*1024))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/transcribe/file", &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
