package session_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soralabs/voice-agent/pkg/session"
)

func TestUsageReporterPostsSummary(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/ai-agents/ingest-voice-tokens", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	reporter := session.NewUsageReporter(srv.URL, nil)
	reporter.Report(context.Background(), "user-42", session.UsageSummary{
		SessionID:       "sess-1",
		LLMInputTokens:  120,
		LLMOutputTokens: 80,
		TTSCharacters:   512,
		STTAudioSeconds: 33.5,
	})

	require.NotNil(t, got)
	assert.Equal(t, "user-42", got["userId"])
	summary, ok := got["usage_summary"].(map[string]any)
	require.True(t, ok, "usage_summary missing: %v", got)
	assert.Equal(t, "sess-1", summary["session_id"])
	assert.EqualValues(t, 120, summary["llm_input_tokens"])
}

func TestUsageReporterNeverFailsTheCaller(t *testing.T) {
	t.Run("server error swallowed", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		reporter := session.NewUsageReporter(srv.URL, nil)
		assert.NotPanics(t, func() {
			reporter.Report(context.Background(), "user-42", session.UsageSummary{})
		})
	})

	t.Run("disabled when no endpoint", func(t *testing.T) {
		reporter := session.NewUsageReporter("", nil)
		assert.NotPanics(t, func() {
			reporter.Report(context.Background(), "user-42", session.UsageSummary{})
		})
	})

	t.Run("unreachable endpoint swallowed", func(t *testing.T) {
		reporter := session.NewUsageReporter("http://127.0.0.1:1", nil)
		assert.NotPanics(t, func() {
			reporter.Report(context.Background(), "user-42", session.UsageSummary{})
		})
	})
}
