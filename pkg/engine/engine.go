// Package engine implements the follower growth simulation: a periodic tick
// that grows a persisted counter according to the configured rate, speed,
// and mode, with goal auto-stop and lifecycle events.
package engine

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"instagrowth/pkg/errors"
	"instagrowth/pkg/logger"
	"instagrowth/pkg/models"
	"instagrowth/pkg/profile"
	"instagrowth/pkg/scheduler"
	"instagrowth/pkg/store"
)

// Engine owns the tick loop and the persisted growth record. All public
// methods are safe for concurrent use.
type Engine struct {
	store  *store.Store
	source *profile.Source
	sched  *scheduler.Scheduler
	bus    *Bus
	clock  clock.Clock
	logger logger.Logger

	mu   sync.Mutex
	calc *calculator
}

// New creates an engine. Pass clock.New() for real time; tests inject a mock
// clock to drive ticks deterministically.
func New(st *store.Store, src *profile.Source, clk clock.Clock, log logger.Logger) *Engine {
	if clk == nil {
		clk = clock.New()
	}
	if log == nil {
		log = logger.GetLogger()
	}
	return &Engine{
		store:  st,
		source: src,
		sched:  scheduler.New(clk, log),
		bus:    NewBus(),
		clock:  clk,
		logger: log,
	}
}

// Events exposes the engine's event bus for subscribers.
func (e *Engine) Events() *Bus {
	return e.bus
}

// Running reports whether the tick loop is active.
func (e *Engine) Running() bool {
	return e.sched.Running()
}

// Start begins the simulation. On first start (or when the target account
// has changed) it captures the live follower count as the immutable
// baseline; after that the persisted counter is the single source of truth
// and live numbers are never consulted again. Starting an already-running
// engine is a no-op.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sched.Running() {
		return nil
	}

	settings := e.store.Settings()
	if settings.TargetUsername == "" {
		return errors.NewValidation("no target account configured, log in first")
	}

	record := e.store.GrowthData()
	if e.needsSeed(record, settings.TargetUsername) {
		if err := e.seed(ctx, record, settings.TargetUsername); err != nil {
			return err
		}
	}

	record.Active = true
	if err := e.store.SaveGrowthData(record); err != nil {
		return err
	}

	now := e.clock.Now()
	e.calc = newCalculator(now.UnixNano(), now)
	e.sched.Start(settings.Speed.Interval(), e.tick)

	e.logger.InfoWithFields("growth simulation started", map[string]interface{}{
		"username":          settings.TargetUsername,
		"followers_per_day": settings.FollowersPerDay,
		"speed":             string(settings.Speed),
		"mode":              string(settings.GrowthMode),
	})
	e.bus.Publish(Event{
		Type:      EventGrowthStarted,
		Timestamp: now,
		Username:  settings.TargetUsername,
		Settings:  &settings,
	})
	return nil
}

// Resume restarts the tick loop if the persisted record says a simulation
// was running when the process last exited.
func (e *Engine) Resume(ctx context.Context) error {
	if !e.store.GrowthData().Active {
		return nil
	}
	return e.Start(ctx)
}

// Stop halts the simulation. Stopping a stopped engine is a no-op; the
// stopped event fires only on an actual transition.
func (e *Engine) Stop() {
	e.mu.Lock()
	record := e.store.GrowthData()
	wasActive := record.Active
	if wasActive {
		record.Active = false
		if err := e.store.SaveGrowthData(record); err != nil {
			e.logger.WithError(err).Error("failed to persist stop")
		}
	}
	e.mu.Unlock()

	e.sched.Stop()

	if wasActive {
		e.logger.Info("growth simulation stopped")
		e.bus.Publish(Event{Type: EventGrowthStopped, Timestamp: e.clock.Now()})
	}
}

// UpdateSettings validates, persists, and announces new settings. If the
// loop is running and the speed changed, the tick cadence adjusts without a
// restart.
func (e *Engine) UpdateSettings(settings models.GrowthSettings) error {
	if settings.FollowersPerDay < 1 || settings.FollowersPerDay > 10000 {
		return errors.NewValidation("followers per day must be between 1 and 10000")
	}
	if settings.TargetGoal < 0 {
		return errors.NewValidation("target goal cannot be negative")
	}
	settings.Normalize()

	e.mu.Lock()
	defer e.mu.Unlock()

	previous := e.store.Settings()
	if settings.TargetUsername == "" {
		settings.TargetUsername = previous.TargetUsername
	}
	if err := e.store.SaveSettings(settings); err != nil {
		return err
	}

	if e.sched.Running() && settings.Speed != previous.Speed {
		e.sched.Reschedule(settings.Speed.Interval())
	}

	e.bus.Publish(Event{
		Type:      EventSettingsUpdated,
		Timestamp: e.clock.Now(),
		Settings:  &settings,
	})
	return nil
}

// Reset stops the simulation and discards the growth record entirely. The
// next start reseeds from a fresh baseline.
func (e *Engine) Reset() error {
	e.Stop()

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Remove(store.KeyGrowthData)
}

// Stats is the read model for status displays.
type Stats struct {
	Running          bool
	Username         string
	CurrentFollowers int
	InitialFollowers int
	TotalGrowth      int
	GrowthPercent    float64
	TodayGrowth      int
	DaysActive       int // whole days elapsed since the baseline capture
	FollowersPerDay  int
	Speed            models.Speed
	Mode             models.Mode
	TargetGoal       int
	GoalProgress     float64
	DaysToGoal       int
	StartedAt        time.Time
	History          []models.GrowthPoint
}

// Stats assembles the current read model from persisted state.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	settings := e.store.Settings()
	record := e.store.GrowthData()
	now := e.clock.Now()

	stats := Stats{
		Running:          e.sched.Running(),
		Username:         settings.TargetUsername,
		CurrentFollowers: record.Current.Followers,
		InitialFollowers: record.Initial.Followers,
		TotalGrowth:      record.Current.Followers - record.Initial.Followers,
		TodayGrowth:      record.TodayGrowth(now),
		FollowersPerDay:  settings.FollowersPerDay,
		Speed:            settings.Speed,
		Mode:             settings.GrowthMode,
		TargetGoal:       settings.TargetGoal,
		StartedAt:        record.Initial.Date,
		History:          append([]models.GrowthPoint(nil), record.History...),
	}

	if record.Initial.Followers > 0 {
		stats.GrowthPercent = float64(stats.TotalGrowth) / float64(record.Initial.Followers) * 100
	}
	if !record.Initial.Date.IsZero() {
		stats.DaysActive = int(now.Sub(record.Initial.Date).Hours() / 24)
	}

	if settings.TargetGoal > 0 {
		stats.GoalProgress = math.Min(100, float64(record.Current.Followers)/float64(settings.TargetGoal)*100)
		if remaining := settings.TargetGoal - record.Current.Followers; remaining > 0 && settings.FollowersPerDay > 0 {
			stats.DaysToGoal = int(math.Ceil(float64(remaining) / float64(settings.FollowersPerDay)))
		}
	}
	return stats
}

// tick advances the simulation by one step. It runs on the scheduler
// goroutine.
func (e *Engine) tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	record := e.store.GrowthData()
	if !record.Active {
		return
	}

	settings := e.store.Settings()
	now := e.clock.Now()
	amount := e.calc.amount(settings, now)

	// A quiet tick changes nothing: no history point, no write, no event.
	if amount > 0 {
		record.Current.Followers += amount
		record.History = append(record.History, models.GrowthPoint{
			Timestamp: now,
			Amount:    amount,
			Total:     record.Current.Followers,
			Speed:     settings.Speed,
			Hour:      now.Hour(),
		})
		record.Prune(now)
	}

	reached := settings.TargetGoal > 0 && record.Current.Followers >= settings.TargetGoal
	if reached {
		record.Active = false
	}

	if amount > 0 || reached {
		if err := e.store.SaveGrowthData(record); err != nil {
			e.logger.WithError(err).Error("failed to persist growth tick")
		}
	}

	if amount > 0 {
		e.bus.Publish(Event{
			Type:       EventFollowersUpdated,
			Timestamp:  now,
			Amount:     amount,
			Total:      record.Current.Followers,
			TodayTotal: record.TodayGrowth(now),
		})
	}

	if reached {
		e.logger.InfoWithFields("target goal reached", map[string]interface{}{
			"current": record.Current.Followers,
			"target":  settings.TargetGoal,
		})
		e.bus.Publish(Event{
			Type:      EventTargetReached,
			Timestamp: now,
			Current:   record.Current.Followers,
			Target:    settings.TargetGoal,
		})
		e.bus.Publish(Event{Type: EventGrowthStopped, Timestamp: now})
		// Stop the loop without waiting on our own goroutine.
		go e.sched.Stop()
	}
}

// needsSeed reports whether the baseline must be (re)captured: either it was
// never taken, or the simulation now targets a different account.
func (e *Engine) needsSeed(record *models.GrowthRecord, username string) bool {
	if !record.Seeded() {
		return true
	}
	account := e.store.Account()
	return account != nil && account.Username != username
}

// seed captures the baseline counts for the target account. The profile
// source degrades to synthetic data on any fetch failure, so this only
// fails for invalid usernames.
func (e *Engine) seed(ctx context.Context, record *models.GrowthRecord, username string) error {
	snapshot, err := e.source.GetProfile(ctx, username)
	if err != nil {
		return err
	}

	counts := models.Counts{
		Followers: snapshot.FollowerCount,
		Following: snapshot.FollowingCount,
		Posts:     snapshot.MediaCount,
	}
	record.Initial = models.InitialCounts{Counts: counts, Date: e.clock.Now()}
	record.Current = counts
	record.History = record.History[:0]

	if err := e.store.SaveAccount(snapshot); err != nil {
		e.logger.WithError(err).Warn("failed to persist account snapshot")
	}

	e.logger.InfoWithFields("baseline captured", map[string]interface{}{
		"username":  username,
		"followers": counts.Followers,
		"source":    snapshot.Source,
	})
	return nil
}
