// Package backup moves the persisted simulation state in and out of the
// process: JSON files on disk, or a private GitHub gist for off-machine
// copies.
package backup

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/goccy/go-json"

	"instagrowth/pkg/config"
	"instagrowth/pkg/errors"
	"instagrowth/pkg/logger"
	"instagrowth/pkg/models"
	"instagrowth/pkg/retry"
	"instagrowth/pkg/store"
)

const (
	payloadVersion = 1
	gistFilename   = "instagrowth-backup.json"
)

// Payload is the portable backup format. Sessions are deliberately left out;
// a restore should not log anyone in.
type Payload struct {
	Version   int                     `json:"version"`
	CreatedAt time.Time               `json:"created_at"`
	Settings  models.GrowthSettings   `json:"settings"`
	Growth    *models.GrowthRecord    `json:"growth"`
	Account   *models.ProfileSnapshot `json:"account,omitempty"`
}

// Manager reads and writes backups.
type Manager struct {
	store      *store.Store
	cfg        config.BackupConfig
	httpClient *http.Client
	logger     logger.Logger
}

// NewManager creates a backup manager.
func NewManager(st *store.Store, cfg config.BackupConfig, log logger.Logger) *Manager {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Manager{
		store:      st,
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     log,
	}
}

// Export snapshots the current persisted state.
func (m *Manager) Export() *Payload {
	return &Payload{
		Version:   payloadVersion,
		CreatedAt: time.Now(),
		Settings:  m.store.Settings(),
		Growth:    m.store.GrowthData(),
		Account:   m.store.Account(),
	}
}

// Import writes a payload back into the store, replacing current state.
func (m *Manager) Import(payload *Payload) error {
	if payload.Version > payloadVersion {
		return errors.NewValidation("backup version %d is newer than this build supports", payload.Version)
	}
	if payload.Growth == nil {
		return errors.NewValidation("backup contains no growth data")
	}

	payload.Settings.Normalize()
	if err := m.store.SaveSettings(payload.Settings); err != nil {
		return err
	}
	if err := m.store.SaveGrowthData(payload.Growth); err != nil {
		return err
	}
	if payload.Account != nil {
		if err := m.store.SaveAccount(payload.Account); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile exports the current state to a JSON file.
func (m *Manager) WriteFile(path string) error {
	data, err := json.MarshalIndent(m.Export(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// ReadFile restores state from a JSON file produced by WriteFile.
func (m *Manager) ReadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return &errors.Error{Type: errors.ErrorTypeParsing, Message: fmt.Sprintf("invalid backup file: %v", err)}
	}
	return m.Import(&payload)
}

type gistRequest struct {
	Description string              `json:"description"`
	Public      bool                `json:"public"`
	Files       map[string]gistFile `json:"files"`
}

type gistFile struct {
	Content string `json:"content"`
}

type gistResponse struct {
	ID      string              `json:"id"`
	HTMLURL string              `json:"html_url"`
	Files   map[string]gistFile `json:"files"`
}

// Upload pushes the current state to a new private gist and returns its ID.
// Transient failures are retried with backoff.
func (m *Manager) Upload(ctx context.Context) (string, error) {
	if m.cfg.Token == "" {
		return "", errors.NewValidation("no backup token configured")
	}

	content, err := json.Marshal(m.Export())
	if err != nil {
		return "", err
	}
	body, err := json.Marshal(gistRequest{
		Description: "instagrowth backup " + time.Now().Format(time.RFC3339),
		Public:      false,
		Files:       map[string]gistFile{gistFilename: {Content: string(content)}},
	})
	if err != nil {
		return "", err
	}

	var gist gistResponse
	err = retry.Do(ctx, func() error {
		return m.request(ctx, http.MethodPost, m.cfg.Endpoint, body, &gist)
	}, &retry.Config{
		MaxAttempts: 3,
		Backoff:     retry.DefaultExponentialBackoff(),
		RetryIf:     retry.DefaultRetryIf,
		Logger:      m.logger,
	})
	if err != nil {
		return "", err
	}

	m.logger.InfoWithFields("backup uploaded", map[string]interface{}{
		"gist_id": gist.ID,
		"url":     gist.HTMLURL,
	})
	return gist.ID, nil
}

// Download restores state from a gist previously created by Upload.
func (m *Manager) Download(ctx context.Context, gistID string) error {
	if gistID == "" {
		return errors.NewValidation("gist id cannot be empty")
	}

	var gist gistResponse
	if err := m.request(ctx, http.MethodGet, m.cfg.Endpoint+"/"+gistID, nil, &gist); err != nil {
		return err
	}

	file, ok := gist.Files[gistFilename]
	if !ok {
		return errors.NewValidation("gist %s does not contain a backup", gistID)
	}

	var payload Payload
	if err := json.Unmarshal([]byte(file.Content), &payload); err != nil {
		return &errors.Error{Type: errors.ErrorTypeParsing, Message: fmt.Sprintf("invalid backup payload: %v", err)}
	}
	return m.Import(&payload)
}

func (m *Manager) request(ctx context.Context, method, url string, body []byte, target interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if m.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+m.cfg.Token)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return &errors.Error{Type: errors.ErrorTypeNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errType := errors.ErrorTypeUnknown
		switch {
		case resp.StatusCode == http.StatusNotFound:
			errType = errors.ErrorTypeNotFound
		case resp.StatusCode == http.StatusTooManyRequests:
			errType = errors.ErrorTypeRateLimit
		case resp.StatusCode >= 500:
			errType = errors.ErrorTypeServerError
		}
		return &errors.Error{Type: errType, Message: "backup endpoint error", Code: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &errors.Error{Type: errors.ErrorTypeNetwork, Message: err.Error()}
	}
	return json.Unmarshal(data, target)
}
