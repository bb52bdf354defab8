// Package telemetry accumulates per-tick manager decisions into
// windowed statistics and writes them as CSV. Nothing in here feeds
// back into the decision policies; it is reporting only.
package telemetry

import (
	"github.com/sonsonmagro/Sonsons-Player-Manager/systems"
)

// Collector accumulates events within tick windows and produces
// WindowStats.
type Collector struct {
	windowTicks     int64
	windowStartTick int64

	// Event counters for current window
	actions          [systems.ActionKindCount]int
	dispatchFailures int
	buffsApplied     int
	buffsRefreshed   int
	buffsRemoved     int

	// Per-tick metric samples for current window
	healthPct []float64
	prayerPct []float64
}

// NewCollector creates a collector with the given window length in
// ticks. Windows shorter than one tick are clamped.
func NewCollector(windowTicks int64) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowTicks: windowTicks,
		healthPct:   make([]float64, 0, windowTicks),
		prayerPct:   make([]float64, 0, windowTicks),
	}
}

// RecordAction records one fired action of the given kind.
func (c *Collector) RecordAction(kind systems.ActionKind) {
	c.actions[kind]++
}

// RecordDispatchFailure records a dispatch the host rejected.
func (c *Collector) RecordDispatchFailure() {
	c.dispatchFailures++
}

// RecordBuffEvent records one buff action.
func (c *Collector) RecordBuffEvent(ev systems.BuffEvent) {
	switch ev.Op {
	case systems.BuffRefreshed:
		c.buffsRefreshed++
	case systems.BuffRemoved:
		c.buffsRemoved++
	default:
		c.buffsApplied++
	}
}

// Sample records the tick's metric readings.
func (c *Collector) Sample(healthPct, prayerPct int) {
	c.healthPct = append(c.healthPct, float64(healthPct))
	c.prayerPct = append(c.prayerPct, float64(prayerPct))
}

// ShouldFlush reports whether the current window has elapsed.
func (c *Collector) ShouldFlush(tick int64) bool {
	return tick-c.windowStartTick >= c.windowTicks
}

// Flush produces a WindowStats for the elapsed window and resets the
// counters for the next one.
func (c *Collector) Flush(tick int64, location string) WindowStats {
	health := summarize(c.healthPct)
	prayer := summarize(c.prayerPct)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   tick,
		Location:        location,

		FoodsEaten:     c.actions[systems.ActionEatFood],
		JellyfishEaten: c.actions[systems.ActionEatJellyfish],
		PotionsDrunk:   c.actions[systems.ActionDrinkPotion],
		RestoresDrunk:  c.actions[systems.ActionDrinkRestore],
		BladeUses:      c.actions[systems.ActionUseBlade],
		ShardUses:      c.actions[systems.ActionUseShard],

		DispatchFailures: c.dispatchFailures,
		BuffsApplied:     c.buffsApplied,
		BuffsRefreshed:   c.buffsRefreshed,
		BuffsRemoved:     c.buffsRemoved,

		HealthMean: health.Mean,
		HealthStd:  health.Std,
		HealthMin:  health.Min,
		PrayerMean: prayer.Mean,
		PrayerStd:  prayer.Std,
		PrayerMin:  prayer.Min,
	}

	// Reset for next window
	c.windowStartTick = tick
	for k := range c.actions {
		c.actions[k] = 0
	}
	c.dispatchFailures = 0
	c.buffsApplied = 0
	c.buffsRefreshed = 0
	c.buffsRemoved = 0
	c.healthPct = c.healthPct[:0]
	c.prayerPct = c.prayerPct[:0]

	return stats
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int64 {
	return c.windowTicks
}
