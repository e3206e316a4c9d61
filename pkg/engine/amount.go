package engine

import (
	"math"
	"math/rand"
	"time"

	"instagrowth/pkg/models"
)

// Tuning constants for the per-tick amount model. The shape is a base rate
// scaled by mode, random jitter, a multi-hour burst cycle, time of day, and
// weekends, then clamped so no single tick exceeds 30% of the daily target.
const (
	jitterMin = 0.5
	jitterMax = 1.5

	burstCycleMin = 8 * time.Hour
	burstCycleMax = 12 * time.Hour

	burstQuietMin = 0.8
	burstQuietMax = 1.2
	burstRampMin  = 2.0
	burstRampMax  = 3.0
	burstTailMin  = 1.5
	burstTailMax  = 2.0

	peakHourBoost   = 1.8
	nightPenalty    = 0.4
	weekendBoost    = 1.2
	perTickCapOfDay = 0.3
)

// peakHours are the local hours when accounts typically see the most
// engagement: morning, lunch, and evening blocks.
var peakHours = map[int]bool{
	6: true, 7: true, 8: true, 9: true,
	12: true, 13: true, 14: true,
	19: true, 20: true, 21: true, 22: true,
}

// calculator produces the follower delta for one tick. It owns the burst
// cycle state and its own RNG so the engine's behavior is reproducible under
// a seeded source in tests.
type calculator struct {
	rng        *rand.Rand
	cycleStart time.Time
	cycleLen   time.Duration
}

func newCalculator(seed int64, start time.Time) *calculator {
	c := &calculator{rng: rand.New(rand.NewSource(seed))}
	c.resetCycle(start)
	return c
}

func (c *calculator) resetCycle(now time.Time) {
	c.cycleStart = now
	c.cycleLen = burstCycleMin + time.Duration(c.rng.Float64()*float64(burstCycleMax-burstCycleMin))
}

// amount computes the follower delta for a tick at the given instant.
func (c *calculator) amount(settings models.GrowthSettings, now time.Time) int {
	base := float64(settings.FollowersPerDay) / float64(settings.Speed.TicksPerDay())

	value := base *
		settings.GrowthMode.Multiplier() *
		c.between(jitterMin, jitterMax) *
		c.burst(now) *
		timeOfDay(now.Hour()) *
		weekend(now.Weekday())

	amount := int(math.Round(value))
	if limit := perTickCap(settings.FollowersPerDay); amount > limit {
		amount = limit
	}
	if amount < 0 {
		amount = 0
	}
	return amount
}

// perTickCap bounds any single tick to a fraction of the daily target.
func perTickCap(followersPerDay int) int {
	return int(math.Floor(perTickCapOfDay * float64(followersPerDay)))
}

// burst models organic growth arriving in waves: a quiet stretch, a steep
// ramp near the end of the cycle, and a tail that spills into the start of
// the next one.
func (c *calculator) burst(now time.Time) float64 {
	if now.Sub(c.cycleStart) >= c.cycleLen {
		c.resetCycle(now)
	}
	phase := float64(now.Sub(c.cycleStart)) / float64(c.cycleLen)

	switch {
	case phase > 0.7 && phase <= 0.9:
		return c.between(burstRampMin, burstRampMax)
	case phase > 0.9 || phase < 0.1:
		return c.between(burstTailMin, burstTailMax)
	default:
		return c.between(burstQuietMin, burstQuietMax)
	}
}

func (c *calculator) between(min, max float64) float64 {
	return min + c.rng.Float64()*(max-min)
}

func timeOfDay(hour int) float64 {
	if peakHours[hour] {
		return peakHourBoost
	}
	if hour >= 22 || hour <= 5 {
		return nightPenalty
	}
	return 1.0
}

func weekend(day time.Weekday) float64 {
	if day == time.Saturday || day == time.Sunday {
		return weekendBoost
	}
	return 1.0
}
