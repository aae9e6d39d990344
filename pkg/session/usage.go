package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/soralabs/voice-agent/internal/httpc"
)

// UsageSummary aggregates token and audio usage for one session, as
// reported by the runtime at shutdown.
type UsageSummary struct {
	SessionID       string  `json:"session_id"`
	LLMInputTokens  int64   `json:"llm_input_tokens"`
	LLMOutputTokens int64   `json:"llm_output_tokens"`
	TTSCharacters   int64   `json:"tts_characters"`
	STTAudioSeconds float64 `json:"stt_audio_seconds"`
}

// UsageReporter posts session usage to the billing backend at session
// end. Reporting failures are logged and swallowed: billing lag must
// never take down the agent.
type UsageReporter struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// NewUsageReporter creates a reporter for the billing base URL. An empty
// baseURL disables reporting.
func NewUsageReporter(baseURL string, logger *slog.Logger) *UsageReporter {
	if logger == nil {
		logger = slog.Default()
	}
	endpoint := ""
	if baseURL != "" {
		endpoint = baseURL + "/ai-agents/ingest-voice-tokens"
	}
	return &UsageReporter{
		endpoint: endpoint,
		client:   httpc.Client,
		logger:   logger.With("component", "usage"),
	}
}

// Report sends the usage summary for userID. Never returns an error to
// the caller; failures are logged.
func (u *UsageReporter) Report(ctx context.Context, userID string, summary UsageSummary) {
	if u.endpoint == "" {
		return
	}

	payload := map[string]any{
		"userId":        userID,
		"usage_summary": summary,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		u.logger.Error("marshal usage payload", "error", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, bytes.NewReader(body))
	if err != nil {
		u.logger.Error("build usage request", "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := u.client.Do(req)
	if err != nil {
		u.logger.Warn("usage report failed, data may not be recorded", "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		u.logger.Warn("usage report rejected", "status", resp.StatusCode)
		return
	}
	u.logger.Info("usage summary sent", "user", userID, "session", summary.SessionID,
		"status", fmt.Sprintf("%d", resp.StatusCode))
}
