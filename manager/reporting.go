package manager

import (
	"github.com/sonsonmagro/Sonsons-Player-Manager/systems"
	"github.com/sonsonmagro/Sonsons-Player-Manager/telemetry"
)

// Read-only accessors for the presentation layer. They reflect the
// last evaluated tick and never drive decisions.

// LastTick returns the last evaluated tick.
func (m *Manager) LastTick() int64 {
	return m.tick
}

// Location returns the last classified location name.
func (m *Manager) Location() string {
	return m.location
}

// Consumables returns the classified items from the last tick.
func (m *Manager) Consumables() []systems.Consumable {
	out := make([]systems.Consumable, len(m.consumables))
	copy(out, m.consumables)
	return out
}

// Cooldowns returns the remaining cooldown per action kind, as of the
// last evaluated tick.
func (m *Manager) Cooldowns() []telemetry.CooldownView {
	views := make([]telemetry.CooldownView, 0, systems.ActionKindCount)
	for k := systems.ActionKind(0); k < systems.ActionKindCount; k++ {
		views = append(views, telemetry.CooldownView{
			Kind:      k,
			Remaining: m.ledger.Remaining(k, m.tick),
		})
	}
	return views
}

// BuffStates returns the per-rule buff views from the last tick.
func (m *Manager) BuffStates() []systems.BuffView {
	src := m.buffs.Views()
	out := make([]systems.BuffView, len(src))
	copy(out, src)
	return out
}

// TrackingTable renders the current tracking view for log output.
func (m *Manager) TrackingTable() string {
	return telemetry.FormatTracking(m.tick, m.location, m.consumables, m.Cooldowns(), m.buffs.Views())
}
