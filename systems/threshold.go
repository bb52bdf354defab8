// Package systems implements the per-tick decision policies: threshold
// evaluation, consumable classification, cooldown gating, the
// consumption cascade, special-item usage and buff management. All
// functions here are driven by the manager once per tick; none of them
// keeps ambient global state.
package systems

import (
	"fmt"

	"github.com/sonsonmagro/Sonsons-Player-Manager/state"
)

// TierKind selects how a threshold tier compares against a metric.
type TierKind uint8

const (
	// TierPercent compares against the metric's percent-of-max.
	TierPercent TierKind = iota
	// TierAbsolute compares against the metric's current value.
	TierAbsolute
)

// ParseTierKind maps a config string to a TierKind. Unknown kinds are
// a configuration error, rejected at load time.
func ParseTierKind(s string) (TierKind, error) {
	switch s {
	case "percent":
		return TierPercent, nil
	case "absolute":
		return TierAbsolute, nil
	default:
		return 0, fmt.Errorf("unknown threshold kind %q", s)
	}
}

// Tier is one threshold level. A tier triggers when the metric is at or
// below its value: lower current means more triggered.
type Tier struct {
	Kind  TierKind
	Value int
}

// EvaluateTier reports whether the tier is triggered for the metric.
// Pure: no side effects, no state. A metric with max 0 reads as 0%, so
// any positive percent tier triggers.
func EvaluateTier(m state.Metric, t Tier) bool {
	switch t.Kind {
	case TierAbsolute:
		return t.Value >= m.Current
	default:
		return t.Value >= m.Percent()
	}
}

// Tier names used by the built-in resource rules.
const (
	TierNormal   = "normal"
	TierCritical = "critical"
	TierSpecial  = "special"
)

// NamedTier pairs a tier with its configuration name.
type NamedTier struct {
	Name string
	Tier Tier
}

// ThresholdSet is the ordered collection of named tiers attached to one
// metric. Owned by configuration, read-only at runtime. Tiers are
// evaluated independently; the set assumes no ordering or exclusivity
// between them.
type ThresholdSet []NamedTier

// Tier looks up a tier by name.
func (s ThresholdSet) Tier(name string) (Tier, bool) {
	for _, nt := range s {
		if nt.Name == name {
			return nt.Tier, true
		}
	}
	return Tier{}, false
}

// Triggered evaluates the named tier against the metric. An absent
// tier never triggers.
func (s ThresholdSet) Triggered(m state.Metric, name string) bool {
	t, ok := s.Tier(name)
	if !ok {
		return false
	}
	return EvaluateTier(m, t)
}
