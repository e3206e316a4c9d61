package profile

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/coocood/freecache"
	"github.com/goccy/go-json"

	"instagrowth/pkg/config"
	"instagrowth/pkg/errors"
	"instagrowth/pkg/instagram"
	"instagrowth/pkg/logger"
	"instagrowth/pkg/models"
	"instagrowth/pkg/ratelimit"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9._]{1,30}$`)

const gateGroup = "profile"

// NormalizeUsername strips a leading @ and surrounding whitespace.
func NormalizeUsername(username string) string {
	return strings.TrimPrefix(strings.TrimSpace(username), "@")
}

// ValidateUsername checks that a username is a plausible Instagram handle.
func ValidateUsername(username string) error {
	if username == "" {
		return errors.NewValidation("username cannot be empty")
	}
	if !usernameRegex.MatchString(username) {
		return errors.NewValidation("invalid username format: " + username)
	}
	return nil
}

// Source resolves a username to a profile snapshot. It tries, in order: the
// snapshot cache, the public endpoint, each configured third-party host, and
// finally the synthetic generator. It never fails outright: when everything
// upstream is unreachable the caller still gets a generated profile, so the
// simulation can run fully offline.
type Source struct {
	client *instagram.Client
	cfg    config.InstagramConfig
	cache  *freecache.Cache
	ttl    time.Duration
	gate   *ratelimit.Gate
	logger logger.Logger
	now    func() time.Time
}

// NewSource builds a profile source from configuration.
func NewSource(cfg *config.Config, log logger.Logger) *Source {
	if log == nil {
		log = logger.GetLogger()
	}

	s := &Source{
		client: instagram.NewClient(log),
		cfg:    cfg.Instagram,
		gate:   ratelimit.NewGate(cfg.RateLimit.RequestsPerHour, cfg.RateLimit.Window),
		logger: log,
		now:    time.Now,
	}
	if cfg.Instagram.UserAgent != "" {
		s.client.SetHeader("User-Agent", cfg.Instagram.UserAgent)
	}
	if cfg.Cache.Enabled {
		s.cache = freecache.NewCache(cfg.Cache.SizeMB * 1024 * 1024)
		s.ttl = cfg.Cache.TTL
	}
	return s
}

// GetProfile returns a snapshot for the given username. It fails only on an
// invalid username; every fetch failure, a not-found answer included,
// degrades to synthetic data. Use AccountExists to probe for a real profile.
func (s *Source) GetProfile(ctx context.Context, username string) (*models.ProfileSnapshot, error) {
	username = NormalizeUsername(username)
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}

	if snapshot := s.cached(username); snapshot != nil {
		return snapshot, nil
	}

	if !s.gate.Allow(gateGroup) {
		s.logger.WarnWithFields("profile fetch budget exhausted, using synthetic data", map[string]interface{}{
			"username": username,
		})
		return s.synthetic(username), nil
	}

	snapshot, err := s.fetchChain(ctx, username)
	if err != nil {
		s.logger.WithError(err).Warn("profile fetch failed, using synthetic data")
		return s.synthetic(username), nil
	}

	s.store(username, snapshot)
	return snapshot, nil
}

// FollowerCount is a convenience wrapper for the engine's seed step.
func (s *Source) FollowerCount(ctx context.Context, username string) (int, error) {
	snapshot, err := s.GetProfile(ctx, username)
	if err != nil {
		return 0, err
	}
	return snapshot.FollowerCount, nil
}

// AccountExists reports whether a username resolves to a real profile. A
// network failure is not proof of absence, so only a definitive not-found
// answer returns false.
func (s *Source) AccountExists(ctx context.Context, username string) (bool, error) {
	username = NormalizeUsername(username)
	if err := ValidateUsername(username); err != nil {
		return false, err
	}

	if !s.gate.Allow(gateGroup) {
		return true, nil
	}

	_, err := s.fetchChain(ctx, username)
	if err != nil {
		if errors.IsNotFound(err) {
			return false, nil
		}
		return true, nil
	}
	return true, nil
}

// fetchChain tries the public endpoint, then each configured host, returning
// the first successful snapshot. A definitive not-found short-circuits the
// chain; transient errors fall through to the next fetcher.
func (s *Source) fetchChain(ctx context.Context, username string) (*models.ProfileSnapshot, error) {
	var lastErr error

	if s.cfg.PublicEndpoint != "" {
		snapshot, err := s.client.FetchPublicProfile(ctx, s.cfg.PublicEndpoint, username, s.cfg.FetchTimeout)
		if err == nil {
			return snapshot, nil
		}
		if errors.IsNotFound(err) {
			return nil, err
		}
		lastErr = err
	}

	for _, host := range s.cfg.ProfileHosts {
		if host.Key == "" {
			continue
		}
		snapshot, err := s.client.FetchHostProfile(ctx, host.URL, host.Key, host.Host, username, s.cfg.FetchTimeout)
		if err == nil {
			return snapshot, nil
		}
		if errors.IsNotFound(err) {
			return nil, err
		}
		s.logger.DebugWithFields("profile host failed, trying next", map[string]interface{}{
			"host":  host.Host,
			"error": err.Error(),
		})
		lastErr = err
	}

	if lastErr == nil {
		lastErr = &errors.Error{Type: errors.ErrorTypeNetwork, Message: "no profile endpoints configured"}
	}
	return nil, lastErr
}

func (s *Source) synthetic(username string) *models.ProfileSnapshot {
	snapshot := Synthesize(username, s.now())
	s.store(username, snapshot)
	return snapshot
}

func (s *Source) cached(username string) *models.ProfileSnapshot {
	if s.cache == nil {
		return nil
	}
	data, err := s.cache.Get([]byte(username))
	if err != nil {
		return nil
	}
	var snapshot models.ProfileSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil
	}
	snapshot.Source = models.ProfileSourceCache
	return &snapshot
}

func (s *Source) store(username string, snapshot *models.ProfileSnapshot) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	if err := s.cache.Set([]byte(username), data, int(s.ttl.Seconds())); err != nil {
		s.logger.WithError(err).Debug("failed to cache profile snapshot")
	}
}
