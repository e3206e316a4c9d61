// Package auth manages the local user session. There is no real
// authentication against Instagram; a "login" just binds the simulation to a
// username and starts the 24-hour session clock.
package auth

import (
	"context"
	"time"

	"instagrowth/pkg/errors"
	"instagrowth/pkg/logger"
	"instagrowth/pkg/models"
	"instagrowth/pkg/profile"
	"instagrowth/pkg/store"
)

// Manager creates, reads, and clears sessions.
type Manager struct {
	store  *store.Store
	source *profile.Source
	logger logger.Logger
	now    func() time.Time
}

// NewManager creates a session manager.
func NewManager(st *store.Store, src *profile.Source, log logger.Logger) *Manager {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Manager{store: st, source: src, logger: log, now: time.Now}
}

// Login starts a session for the given username. The handle is normalized
// and validated; if profile endpoints are reachable the account's existence
// is verified, otherwise the login proceeds on synthetic data. The target
// account in the growth settings follows the session.
func (m *Manager) Login(ctx context.Context, username string, provider models.Provider) (*models.Session, error) {
	username = profile.NormalizeUsername(username)
	if err := profile.ValidateUsername(username); err != nil {
		return nil, err
	}

	if provider != models.ProviderDemo {
		exists, err := m.source.AccountExists(ctx, username)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, &errors.Error{
				Type:    errors.ErrorTypeNotFound,
				Message: "account not found: " + username,
			}
		}
	}

	now := m.now()
	session := &models.Session{
		Username:     username,
		Provider:     provider,
		LoginTime:    now,
		LastActivity: now,
	}
	if err := m.store.SaveSession(session); err != nil {
		return nil, err
	}

	settings := m.store.Settings()
	if settings.TargetUsername != username {
		settings.TargetUsername = username
		if err := m.store.SaveSettings(settings); err != nil {
			return nil, err
		}
	}

	m.logger.InfoWithFields("logged in", map[string]interface{}{
		"username": username,
		"provider": string(provider),
	})
	return session, nil
}

// Current returns the live session, or nil when there is none or it has
// expired.
func (m *Manager) Current() *models.Session {
	return m.store.Session()
}

// Logout removes the session. The growth record and settings survive, so the
// simulation resumes where it left off on the next login.
func (m *Manager) Logout() error {
	if err := m.store.Remove(store.KeyUserSession); err != nil {
		return err
	}
	m.logger.Info("logged out")
	return nil
}
