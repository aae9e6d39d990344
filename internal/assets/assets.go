// Package assets verifies that the model files the agent runtime needs
// are present before a session starts, downloading any that are missing.
//
// The container entry point runs this preflight once; persona and model
// resolution assume the assets are already on disk and fail fast
// otherwise.
package assets

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/soralabs/voice-agent/internal/httpc"
)

// Asset is one required model file.
type Asset struct {
	// Name identifies the asset in logs.
	Name string

	// File is the path relative to the asset directory.
	File string
}

// Required is the default asset set: the VAD model the runtime prewarms
// before accepting sessions.
func Required() []Asset {
	return []Asset{
		{Name: "silero-vad", File: "silero_vad.onnx"},
	}
}

// Manifest checks and fetches assets under a directory.
type Manifest struct {
	dir     string
	baseURL string
	assets  []Asset
	client  *http.Client
	logger  *slog.Logger
}

// NewManifest creates a manifest rooted at dir. Missing assets are
// fetched from baseURL; an empty baseURL makes missing assets fatal.
func NewManifest(dir, baseURL string, assets []Asset, logger *slog.Logger) *Manifest {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manifest{
		dir:     dir,
		baseURL: baseURL,
		assets:  assets,
		client:  httpc.Client,
		logger:  logger.With("component", "assets"),
	}
}

// Ensure verifies every asset exists, downloading the ones that don't.
// Returns the first error; a failed preflight must abort startup.
func (m *Manifest) Ensure(ctx context.Context) error {
	for _, a := range m.assets {
		path := filepath.Join(m.dir, a.File)
		if _, err := os.Stat(path); err == nil {
			m.logger.Debug("asset present", "asset", a.Name, "path", path)
			continue
		}
		if m.baseURL == "" {
			return fmt.Errorf("assets: required asset %s missing at %s and no download URL configured", a.Name, path)
		}
		if err := m.download(ctx, a, path); err != nil {
			return err
		}
	}
	return nil
}

// download fetches one asset to path, creating parent directories.
func (m *Manifest) download(ctx context.Context, a Asset, path string) error {
	url := m.baseURL + "/" + a.File
	m.logger.Info("downloading asset", "asset", a.Name, "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("assets: build request for %s: %w", a.Name, err)
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("assets: fetch %s: %w", a.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("assets: fetch %s: unexpected status %d", a.Name, resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("assets: create dir for %s: %w", a.Name, err)
	}

	// Write to a temp file first so a partial download never passes a
	// later presence check.
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+a.File+".*")
	if err != nil {
		return fmt.Errorf("assets: create temp for %s: %w", a.Name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("assets: write %s: %w", a.Name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("assets: close %s: %w", a.Name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("assets: move %s into place: %w", a.Name, err)
	}

	m.logger.Info("asset downloaded", "asset", a.Name, "path", path)
	return nil
}
