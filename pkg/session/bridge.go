package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/soralabs/voice-agent/pkg/model"
)

// Bridge errors.
var (
	ErrNoRuntimeURL = errors.New("session: runtime URL required")
	ErrBridgeClosed = errors.New("session: bridge closed")
)

const (
	handshakeTimeout = 10 * time.Second
	keepaliveEvery   = 30 * time.Second
	readDeadline     = 120 * time.Second
)

// Bridge is a Runtime implementation that drives a deployed agent
// runtime over its WebSocket control socket. Construction does not dial;
// the connection is opened when StartSession is called and torn down
// when the runtime reports the session ended.
type Bridge struct {
	url    string
	apiKey string
	logger *slog.Logger

	ws   *websocket.Conn
	wsMu sync.Mutex

	usageMu   sync.Mutex
	lastUsage *UsageSummary

	closed atomic.Bool
}

// NewBridge creates a runtime bridge for the control socket at url.
// apiKey is sent as a bearer token on the handshake.
func NewBridge(url, apiKey string, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge{
		url:    url,
		apiKey: apiKey,
		logger: logger.With("component", "runtime-bridge"),
	}
}

// startPayload is the wire form of the session handoff. Model handles
// are flattened into per-slot blocks the runtime can connect with.
type startPayload struct {
	Type    string             `json:"type"`
	Session *Session           `json:"session"`
	Models  map[string]slotRef `json:"models"`
}

type slotRef struct {
	Provider string            `json:"provider"`
	Endpoint string            `json:"endpoint"`
	APIKey   string            `json:"api_key"`
	Settings map[string]string `json:"settings"`
}

// event is a control message from the runtime.
type event struct {
	Type  string        `json:"type"`
	Error string        `json:"error,omitempty"`
	Usage *UsageSummary `json:"usage,omitempty"`
}

// StartSession connects to the runtime, sends the session.start message
// and blocks until the runtime reports the session ended, an error
// occurs, or ctx is cancelled.
func (b *Bridge) StartSession(ctx context.Context, s *Session) error {
	if b.url == "" {
		return ErrNoRuntimeURL
	}
	if b.closed.Load() {
		return ErrBridgeClosed
	}

	header := http.Header{}
	if b.apiKey != "" {
		header.Set("Authorization", "Bearer "+b.apiKey)
	}

	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	ws, _, err := dialer.DialContext(ctx, b.url, header)
	if err != nil {
		return fmt.Errorf("session: connect runtime: %w", err)
	}
	b.wsMu.Lock()
	b.ws = ws
	b.wsMu.Unlock()
	defer b.Close()

	ws.SetPingHandler(func(appData string) error {
		b.wsMu.Lock()
		defer b.wsMu.Unlock()
		return ws.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(5*time.Second))
	})
	ws.SetReadDeadline(time.Now().Add(readDeadline))

	payload := startPayload{
		Type:    "session.start",
		Session: s,
		Models: map[string]slotRef{
			string(model.SlotLLM): refFor(s.LLM),
			string(model.SlotTTS): refFor(s.TTS),
			string(model.SlotSTT): refFor(s.STT),
		},
	}
	if err := b.writeJSON(payload); err != nil {
		return fmt.Errorf("session: send session.start: %w", err)
	}
	b.logger.Info("session handed to runtime", "session", s.ID, "url", b.url)

	done := make(chan error, 1)
	go b.readEvents(s.ID, done)
	go b.keepAlive(ctx)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

// readEvents consumes control messages until the session ends.
func (b *Bridge) readEvents(sessionID string, done chan<- error) {
	for {
		b.wsMu.Lock()
		ws := b.ws
		b.wsMu.Unlock()
		if ws == nil {
			done <- ErrBridgeClosed
			return
		}

		var ev event
		if err := ws.ReadJSON(&ev); err != nil {
			if b.closed.Load() {
				done <- nil
			} else {
				done <- fmt.Errorf("session: runtime connection lost: %w", err)
			}
			return
		}
		ws.SetReadDeadline(time.Now().Add(readDeadline))

		switch ev.Type {
		case "session.ready":
			b.logger.Info("runtime session ready", "session", sessionID)
		case "session.ended":
			b.logger.Info("runtime session ended", "session", sessionID)
			if ev.Usage != nil {
				b.usageMu.Lock()
				b.lastUsage = ev.Usage
				b.usageMu.Unlock()
			}
			done <- nil
			return
		case "error":
			done <- fmt.Errorf("session: runtime error: %s", ev.Error)
			return
		default:
			b.logger.Debug("runtime event", "session", sessionID, "type", ev.Type)
		}
	}
}

// keepAlive sends periodic pings so idle sessions stay connected.
func (b *Bridge) keepAlive(ctx context.Context) {
	ticker := time.NewTicker(keepaliveEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.wsMu.Lock()
			ws := b.ws
			if ws == nil || b.closed.Load() {
				b.wsMu.Unlock()
				return
			}
			err := ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
			b.wsMu.Unlock()
			if err != nil {
				b.logger.Warn("keepalive ping failed", "error", err)
				return
			}
		}
	}
}

// writeJSON sends a JSON message under the write lock.
func (b *Bridge) writeJSON(v any) error {
	b.wsMu.Lock()
	defer b.wsMu.Unlock()
	if b.ws == nil {
		return ErrBridgeClosed
	}
	return b.ws.WriteJSON(v)
}

// Close tears down the connection. Safe to call more than once.
func (b *Bridge) Close() error {
	if b.closed.Swap(true) {
		return nil
	}
	b.wsMu.Lock()
	defer b.wsMu.Unlock()
	if b.ws == nil {
		return nil
	}
	deadline := time.Now().Add(time.Second)
	b.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	err := b.ws.Close()
	b.ws = nil
	return err
}

// Usage returns the usage summary from the last ended session, if the
// runtime reported one.
func (b *Bridge) Usage() *UsageSummary {
	b.usageMu.Lock()
	defer b.usageMu.Unlock()
	return b.lastUsage
}

// refFor flattens a handle for the wire.
func refFor(h *model.Handle) slotRef {
	return slotRef{
		Provider: string(h.Provider()),
		Endpoint: h.Endpoint(),
		APIKey:   h.APIKey(),
		Settings: h.Settings(),
	}
}
