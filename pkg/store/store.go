package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"

	"instagrowth/pkg/errors"
	"instagrowth/pkg/logger"
)

// Logical record keys, stable across versions.
const (
	KeyUserSession = "user_session"
	KeyGrowthData  = "growth_data"
	KeySettings    = "settings"
	KeyAccountData = "account_data"
)

// recordKeys is the namespaced record set removed by ClearAll.
var recordKeys = []string{KeyUserSession, KeyGrowthData, KeySettings, KeyAccountData}

// Store is a durable key->value mapping for the app's records, one JSON
// document per key under the data directory. Values are optionally
// obfuscated before hitting disk.
type Store struct {
	dir    string
	obf    *obfuscator
	logger logger.Logger
	now    func() time.Time
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the time source, used by session expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithoutObfuscation stores records as plain JSON.
func WithoutObfuscation() Option {
	return func(s *Store) { s.obf = nil }
}

// New creates a store rooted at dataDir, creating the directory if needed.
func New(dataDir string, log logger.Logger, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if log == nil {
		log = logger.GetLogger()
	}

	obf, err := newObfuscator(dataDir)
	if err != nil {
		return nil, err
	}

	s := &Store{
		dir:    dataDir,
		obf:    obf,
		logger: log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Save serializes v and writes it under key atomically. It never panics;
// failures come back as storage errors for the caller to log and absorb.
func (s *Store) Save(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.NewStorage("failed to serialize %s: %v", key, err)
	}

	if s.obf != nil {
		sealed, err := s.obf.seal(data)
		if err != nil {
			// Fall back to plain JSON rather than losing the write.
			s.logger.WithError(err).WithField("key", key).Warn("obfuscation failed, storing plain")
		} else {
			data = sealed
		}
	}

	if err := s.writeAtomic(s.path(key), data); err != nil {
		return errors.NewStorage("failed to write %s: %v", key, err)
	}

	s.logger.DebugWithFields("record saved", map[string]interface{}{
		"key":  key,
		"size": len(data),
	})
	return nil
}

// Load reads the record under key into v. It returns (false, nil) when the
// record is absent and treats undecodable payloads as absent: the store is
// not authoritative for anything that cannot be regenerated or zeroed.
func (s *Store) Load(key string, v interface{}) (bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.NewStorage("failed to read %s: %v", key, err)
	}

	if s.obf != nil {
		if plain, err := s.obf.open(data); err == nil {
			data = plain
		}
		// On error keep data as-is: the payload may predate obfuscation
		// or have been written with a rotated key and plain JSON.
	}

	if err := json.Unmarshal(data, v); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("undecodable record, treating as absent")
		return false, nil
	}
	return true, nil
}

// Remove deletes the record under key. Removing an absent record is not an
// error.
func (s *Store) Remove(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.NewStorage("failed to remove %s: %v", key, err)
	}
	return nil
}

// ClearAll deletes the entire namespaced record set.
func (s *Store) ClearAll() error {
	for _, key := range recordKeys {
		if err := s.Remove(key); err != nil {
			return err
		}
	}
	s.logger.Info("all records cleared")
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// writeAtomic writes data via a temp file and rename so a crash never
// leaves a half-written record.
func (s *Store) writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
