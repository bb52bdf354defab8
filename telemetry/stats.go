package telemetry

import (
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one tick window.
type WindowStats struct {
	WindowStartTick int64  `csv:"-"`
	WindowEndTick   int64  `csv:"window_end"`
	Location        string `csv:"location"`

	// Actions during window
	FoodsEaten     int `csv:"foods_eaten"`
	JellyfishEaten int `csv:"jellyfish_eaten"`
	PotionsDrunk   int `csv:"potions_drunk"`
	RestoresDrunk  int `csv:"restores_drunk"`
	BladeUses      int `csv:"blade_uses"`
	ShardUses      int `csv:"shard_uses"`

	DispatchFailures int `csv:"dispatch_failures"`
	BuffsApplied     int `csv:"buffs_applied"`
	BuffsRefreshed   int `csv:"buffs_refreshed"`
	BuffsRemoved     int `csv:"buffs_removed"`

	// Metric distribution over the window (percent of max)
	HealthMean float64 `csv:"health_mean"`
	HealthStd  float64 `csv:"health_std"`
	HealthMin  float64 `csv:"health_min"`
	PrayerMean float64 `csv:"prayer_mean"`
	PrayerStd  float64 `csv:"prayer_std"`
	PrayerMin  float64 `csv:"prayer_min"`
}

// MetricSummary is the distribution of one metric over a window.
type MetricSummary struct {
	Mean float64
	Std  float64
	Min  float64
}

// summarize computes mean, standard deviation and minimum of the
// samples. An empty window yields zeros.
func summarize(samples []float64) MetricSummary {
	if len(samples) == 0 {
		return MetricSummary{}
	}
	mean, std := stat.MeanStdDev(samples, nil)
	if len(samples) < 2 {
		std = 0
	}
	min := samples[0]
	for _, v := range samples[1:] {
		if v < min {
			min = v
		}
	}
	return MetricSummary{Mean: mean, Std: std, Min: min}
}
