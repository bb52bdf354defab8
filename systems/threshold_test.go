package systems

import (
	"testing"

	"github.com/sonsonmagro/Sonsons-Player-Manager/state"
)

func TestEvaluateTierPercent(t *testing.T) {
	m := state.Metric{Current: 40, Max: 100}

	if !EvaluateTier(m, Tier{Kind: TierPercent, Value: 50}) {
		t.Error("40% at or below a 50% tier should trigger")
	}
	if EvaluateTier(m, Tier{Kind: TierPercent, Value: 25}) {
		t.Error("40% above a 25% tier should not trigger")
	}
	if !EvaluateTier(m, Tier{Kind: TierPercent, Value: 40}) {
		t.Error("tier boundary is inclusive")
	}
}

func TestEvaluateTierAbsolute(t *testing.T) {
	m := state.Metric{Current: 600, Max: 990}

	if !EvaluateTier(m, Tier{Kind: TierAbsolute, Value: 600}) {
		t.Error("600 at or below an absolute 600 tier should trigger")
	}
	if EvaluateTier(m, Tier{Kind: TierAbsolute, Value: 599}) {
		t.Error("600 above an absolute 599 tier should not trigger")
	}
}

func TestEvaluateTierZeroMax(t *testing.T) {
	// Unknown gauge reads as 0%, so any positive percent tier triggers.
	m := state.Metric{Current: 500, Max: 0}

	if !EvaluateTier(m, Tier{Kind: TierPercent, Value: 1}) {
		t.Error("zero-max metric should trigger any positive percent tier")
	}
}

func TestEvaluateTierPure(t *testing.T) {
	m := state.Metric{Current: 40, Max: 100}
	tier := Tier{Kind: TierPercent, Value: 50}

	EvaluateTier(m, tier)
	EvaluateTier(m, tier)

	if m.Current != 40 || m.Max != 100 {
		t.Errorf("metric mutated: %+v", m)
	}
	if tier.Value != 50 {
		t.Errorf("tier mutated: %+v", tier)
	}
}

func TestThresholdSetIndependentTiers(t *testing.T) {
	set := ThresholdSet{
		{Name: TierNormal, Tier: Tier{Kind: TierPercent, Value: 50}},
		{Name: TierCritical, Tier: Tier{Kind: TierPercent, Value: 25}},
		{Name: TierSpecial, Tier: Tier{Kind: TierAbsolute, Value: 7000}},
	}
	m := state.Metric{Current: 3000, Max: 9900} // 30%

	if !set.Triggered(m, TierNormal) {
		t.Error("normal tier should trigger at 30%")
	}
	if set.Triggered(m, TierCritical) {
		t.Error("critical tier should not trigger at 30%")
	}
	if !set.Triggered(m, TierSpecial) {
		t.Error("absolute special tier should trigger at 3000")
	}
}

func TestThresholdSetAbsentTier(t *testing.T) {
	set := ThresholdSet{
		{Name: TierNormal, Tier: Tier{Kind: TierPercent, Value: 30}},
	}
	m := state.Metric{Current: 0, Max: 990}

	if set.Triggered(m, TierCritical) {
		t.Error("absent tier must never trigger")
	}
}

func TestParseTierKind(t *testing.T) {
	if k, err := ParseTierKind("percent"); err != nil || k != TierPercent {
		t.Errorf("expected TierPercent, got %v (%v)", k, err)
	}
	if k, err := ParseTierKind("absolute"); err != nil || k != TierAbsolute {
		t.Errorf("expected TierAbsolute, got %v (%v)", k, err)
	}
	if _, err := ParseTierKind("fraction"); err == nil {
		t.Error("expected error for unknown kind")
	}
}
