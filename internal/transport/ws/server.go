// Package ws provides the streaming transcription websocket endpoint.
//
// Clients stream binary audio frames and receive JSON transcript events.
// The server relays each frame to the provider's realtime transcription
// socket; this surface bypasses the pipeline and touches no session state.
package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/config"
)

const (
	writeTimeout = 10 * time.Second
	readTimeout  = 60 * time.Second
	pingInterval = 25 * time.Second
)

// TranscriptEvent is the JSON frame sent to the client.
type TranscriptEvent struct {
	Type string `json:"type"` // "partial", "final" or "error"
	Text string `json:"text,omitempty"`
}

// providerMessage is the JSON frame received from the realtime endpoint.
type providerMessage struct {
	MessageType string `json:"message_type"`
	Text        string `json:"text"`
	Error       string `json:"error"`
}

// Server handles websocket transcription connections.
type Server struct {
	cfg      *config.Config
	upgrader websocket.Upgrader

	// dialProvider is swapped in tests to point at a stub endpoint.
	dialProvider func() (*websocket.Conn, error)
}

// NewServer creates a new websocket transcription server.
func NewServer(cfg *config.Config) *Server {
	s := &Server{
		cfg: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	s.dialProvider = s.dialRealtime
	return s
}

// dialRealtime connects to the provider's realtime transcription socket.
func (s *Server) dialRealtime() (*websocket.Conn, error) {
	url := strings.Replace(s.cfg.AssemblyAIBaseURL, "http", "ws", 1) + "/v2/realtime/ws?sample_rate=16000"

	headers := http.Header{}
	headers.Set("Authorization", s.cfg.AssemblyAIAPIKey)

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.Dial(url, headers)
	return conn, err
}

// HandleTranscribe handles websocket upgrade and the relay lifecycle.
// GET /ws/transcribe
func (s *Server) HandleTranscribe(c echo.Context) error {
	if s.cfg.AssemblyAIAPIKey == "" {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "Speech-to-text service not configured"})
	}

	client, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Printf("ERROR: websocket upgrade failed: %v", err)
		return err
	}

	conn := &clientConn{Conn: client}

	provider, err := s.dialProvider()
	if err != nil {
		log.Printf("ERROR: failed to reach realtime transcription: %v", err)
		conn.writeEvent(TranscriptEvent{Type: "error", Text: "transcription service unavailable"})
		conn.close()
		return nil
	}

	done := make(chan struct{})
	go s.relayTranscripts(conn, provider, done)
	go s.pingLoop(conn, done)
	s.relayAudio(conn, provider)

	<-done
	return nil
}

// relayAudio forwards client audio frames to the provider until the client
// goes away. Runs on the handler goroutine.
func (s *Server) relayAudio(conn *clientConn, provider *websocket.Conn) {
	defer provider.Close()

	conn.SetReadLimit(1 << 20)
	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	for {
		msgType, frame, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WARN: websocket read error: %v", err)
			}
			return
		}
		if msgType != websocket.BinaryMessage {
			continue
		}

		provider.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := provider.WriteMessage(websocket.BinaryMessage, frame); err != nil {
			log.Printf("ERROR: failed to forward audio frame: %v", err)
			return
		}
	}
}

// relayTranscripts forwards provider transcript messages to the client.
func (s *Server) relayTranscripts(conn *clientConn, provider *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	defer conn.close()

	for {
		_, message, err := provider.ReadMessage()
		if err != nil {
			return
		}

		var msg providerMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("WARN: unparseable transcript message: %v", err)
			continue
		}

		if msg.Error != "" {
			conn.writeEvent(TranscriptEvent{Type: "error", Text: msg.Error})
			return
		}

		var event TranscriptEvent
		switch msg.MessageType {
		case "PartialTranscript":
			event = TranscriptEvent{Type: "partial", Text: msg.Text}
		case "FinalTranscript":
			event = TranscriptEvent{Type: "final", Text: msg.Text}
		default:
			continue
		}

		if err := conn.writeEvent(event); err != nil {
			return
		}
	}
}

// pingLoop keeps the client connection alive.
func (s *Server) pingLoop(conn *clientConn, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.ping(); err != nil {
				return
			}
		}
	}
}

// clientConn serializes writes to the client socket, which receives frames
// from both the transcript relay and the ping loop.
type clientConn struct {
	*websocket.Conn
	writeMu sync.Mutex
}

func (c *clientConn) writeEvent(event TranscriptEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.WriteMessage(websocket.TextMessage, payload)
}

func (c *clientConn) ping() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.WriteMessage(websocket.PingMessage, nil)
}

func (c *clientConn) close() {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.SetWriteDeadline(time.Now().Add(2 * time.Second))
	c.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.Conn.Close()
}
