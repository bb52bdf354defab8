// Package manager owns the per-tick evaluation sequence: snapshot,
// classification, the health and prayer rules, special items and buff
// management. A Manager is an explicit context object; all mutable
// engine state (cooldown ledger, buff phases) lives on it and is only
// ever touched by the single goroutine calling Tick.
package manager

import (
	"log/slog"

	"github.com/sonsonmagro/Sonsons-Player-Manager/config"
	"github.com/sonsonmagro/Sonsons-Player-Manager/state"
	"github.com/sonsonmagro/Sonsons-Player-Manager/systems"
	"github.com/sonsonmagro/Sonsons-Player-Manager/telemetry"
)

// Option configures a Manager at construction.
type Option func(*Manager)

// WithLocator sets the external location classifier. Location is
// informational only; it is recorded, never used as a decision input.
func WithLocator(loc state.Locator) Option {
	return func(m *Manager) { m.locate = loc }
}

// WithOutput attaches a CSV output manager for window stats and
// decision logs.
func WithOutput(om *telemetry.OutputManager) Option {
	return func(m *Manager) { m.output = om }
}

// WithBuffRules appends host-supplied buff rules (typically with
// Dynamic conditions) to the configured set.
func WithBuffRules(rules ...systems.BuffRule) Option {
	return func(m *Manager) { m.extraBuffs = append(m.extraBuffs, rules...) }
}

// WithFoodOverride replaces the critical-tier gate on solid food with
// a host-supplied override, resolved once per tick.
func WithFoodOverride(o state.Override) Option {
	return func(m *Manager) {
		m.foodOverride = o
		m.hasFoodOverride = true
	}
}

// Manager evaluates the resource and buff rules once per host tick.
type Manager struct {
	cfg  *config.Config
	prov state.Provider
	disp state.Dispatcher

	locate state.Locator
	output *telemetry.OutputManager

	ledger    *systems.Ledger
	buffs     *systems.BuffSet
	collector *telemetry.Collector

	extraBuffs      []systems.BuffRule
	foodOverride    state.Override
	hasFoodOverride bool

	// Last evaluated tick's view, for the reporting accessors.
	tick        int64
	location    string
	consumables []systems.Consumable
}

// New builds a Manager from loaded configuration and the host
// collaborators.
func New(cfg *config.Config, prov state.Provider, disp state.Dispatcher, opts ...Option) *Manager {
	m := &Manager{
		cfg:       cfg,
		prov:      prov,
		disp:      disp,
		ledger:    systems.NewLedger(),
		collector: telemetry.NewCollector(cfg.Telemetry.WindowTicks),
	}
	for _, opt := range opts {
		opt(m)
	}

	for kind, window := range cfg.Derived.Windows {
		m.ledger.SetWindow(kind, window)
	}

	rules := make([]systems.BuffRule, 0, len(cfg.Derived.BuffRules)+len(m.extraBuffs))
	rules = append(rules, cfg.Derived.BuffRules...)
	rules = append(rules, m.extraBuffs...)
	m.buffs = systems.NewBuffSet(rules)

	return m
}

// Tick runs one full evaluation. The snapshot is read once at the top
// and frozen for the whole sequence; the sequence always completes and
// never returns an error, degrading to no-ops on missing data.
func (m *Manager) Tick() {
	// 1. Freeze the host state for this tick
	snap := m.prov.Snapshot()
	if snap == nil {
		return
	}
	m.tick = snap.Tick
	if m.locate != nil {
		snap.Location = m.locate(snap)
	}
	m.location = snap.Location

	// 2. Rebuild the consumable view from scratch
	m.consumables = systems.Classify(snap.Inventory, m.cfg.Derived.Rules)

	// 3. Health rule: cascade, then the special blade
	m.manageHealth(snap)

	// 4. Prayer rule: restores, then the ritual shard
	m.managePrayer(snap)

	// 5. Buff rules, highest priority first
	events := m.buffs.Update(snap, m.prov, m.castLogged)
	for _, ev := range events {
		m.collector.RecordBuffEvent(ev)
		slog.Debug("buff action", "rule", ev.Rule, "op", ev.Op.String(), "tick", snap.Tick)
	}

	// 6. Telemetry
	m.collector.Sample(snap.Health.Percent(), snap.Prayer.Percent())
	if m.collector.ShouldFlush(snap.Tick) {
		stats := m.collector.Flush(snap.Tick, m.location)
		if err := m.output.WriteWindow(stats); err != nil {
			slog.Warn("window output failed", "error", err)
		}
	}
}

// manageHealth runs the consumption cascade when the normal tier
// triggers, allowing solid food when the situation is urgent enough
// that the adrenaline drain is acceptable, and fires the blade on the
// special tier.
func (m *Manager) manageHealth(snap *state.Snapshot) {
	set := m.cfg.Derived.HealthSet

	if set.Triggered(snap.Health, systems.TierNormal) {
		allowFood := set.Triggered(snap.Health, systems.TierCritical)
		if m.hasFoodOverride {
			allowFood = m.foodOverride.Resolve(snap)
		}
		actions := systems.RunCascade(m.consumables, m.ledger, snap.Tick, allowFood, m.useItemLogged)
		m.recordCascade(snap.Tick, actions)
	}

	if set.Triggered(snap.Health, systems.TierSpecial) {
		m.trySpecials(snap, systems.ActionUseBlade)
	}
}

// managePrayer drinks a restore when the normal tier triggers and
// fires the shard on the special tier. With no restoratives left the
// rule bails out before touching the ledger.
func (m *Manager) managePrayer(snap *state.Snapshot) {
	set := m.cfg.Derived.PrayerSet

	if set.Triggered(snap.Prayer, systems.TierNormal) {
		if systems.CountOfCategory(m.consumables, systems.CategoryRestore) == 0 {
			slog.Debug("no prayer restoratives left", "tick", snap.Tick)
		} else {
			actions := systems.RunSteps(systems.PrayerCascade, m.consumables, m.ledger, snap.Tick, m.useItemLogged)
			m.recordCascade(snap.Tick, actions)
		}
	}

	if set.Triggered(snap.Prayer, systems.TierSpecial) {
		m.trySpecials(snap, systems.ActionUseShard)
	}
}

// trySpecials fires every configured special item bound to the action
// kind. Each carries its own cooldown window in the shared ledger.
func (m *Manager) trySpecials(snap *state.Snapshot, kind systems.ActionKind) {
	for _, it := range m.cfg.Derived.Specials {
		if it.Kind != kind {
			continue
		}
		if systems.TryUseSpecial(it, m.prov, m.disp, m.ledger, snap.Tick) {
			m.collector.RecordAction(it.Kind)
			slog.Info("special item used", "item", it.Name, "tick", snap.Tick)
			if err := m.output.WriteDecision(telemetry.DecisionRecord{
				Tick:     snap.Tick,
				Action:   it.Kind.String(),
				Item:     it.Name,
				Location: m.location,
			}); err != nil {
				slog.Warn("decision output failed", "error", err)
			}
		}
	}
}

func (m *Manager) recordCascade(tick int64, actions []systems.CascadeAction) {
	for _, act := range actions {
		m.collector.RecordAction(act.Kind)
		slog.Info("consumed", "action", act.Kind.String(), "item", act.Item.Name, "tick", tick)
		if err := m.output.WriteDecision(telemetry.NewDecisionRecord(tick, act, m.location)); err != nil {
			slog.Warn("decision output failed", "error", err)
		}
	}
}

// useItemLogged dispatches an inventory action, counting rejections.
func (m *Manager) useItemLogged(id int) bool {
	if m.disp.UseItem(id) {
		return true
	}
	m.collector.RecordDispatchFailure()
	return false
}

// castLogged dispatches an ability cast, counting rejections.
func (m *Manager) castLogged(id int) bool {
	if m.disp.CastAbility(id) {
		return true
	}
	m.collector.RecordDispatchFailure()
	return false
}
