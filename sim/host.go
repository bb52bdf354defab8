package sim

import (
	"time"

	"github.com/sonsonmagro/Sonsons-Player-Manager/state"
)

// The Provider and Dispatcher implementations the manager talks to.

// Snapshot returns the frozen per-tick view of the player.
func (w *World) Snapshot() *state.Snapshot {
	vitals := w.vitalsMap.Get(w.player)
	pack := w.packMap.Get(w.player)
	presence := w.presenceMap.Get(w.player)

	slots := make([]state.InventorySlot, len(pack.Slots))
	copy(slots, pack.Slots)

	return &state.Snapshot{
		Tick:       w.tick,
		Health:     vitals.Health,
		Prayer:     vitals.Prayer,
		Adrenaline: vitals.Adrenaline,
		Summoning:  vitals.Summoning,
		InCombat:   presence.InCombat,
		Moving:     presence.Moving,
		X:          presence.X,
		Y:          presence.Y,
		Inventory:  slots,
	}
}

// HasItem reports whether the item is anywhere in the backpack.
func (w *World) HasItem(id int) bool {
	pack := w.packMap.Get(w.player)
	for _, slot := range pack.Slots {
		if slot.ID == id && slot.Count > 0 {
			return true
		}
	}
	return false
}

// HasItemEquipped reports whether the item is worn in the given slot.
func (w *World) HasItemEquipped(slot, id int) bool {
	worn := w.wornMap.Get(w.player)
	return worn.Slots[slot] == id
}

// HasStatusEffect reports whether the debuff is active.
func (w *World) HasStatusEffect(id int) bool {
	effects := w.effectsMap.Get(w.player)
	_, ok := effects.Debuffs[id]
	return ok
}

// BuffStatus returns activity and remaining duration for a buff.
func (w *World) BuffStatus(id int) state.BuffStatus {
	effects := w.effectsMap.Get(w.player)
	until, ok := effects.Buffs[id]
	if !ok {
		return state.BuffStatus{}
	}
	var remaining time.Duration
	if until > 0 && until > w.tick {
		remaining = time.Duration(until-w.tick) * w.tickDuration
	}
	return state.BuffStatus{Active: true, Remaining: remaining}
}

// UseItem consumes one inventory item. Returns false when the item is
// missing or the host randomly rejects the action, as a live client
// sometimes does.
func (w *World) UseItem(id int) bool {
	if w.rng.Float64() < rejectChance {
		return false
	}

	pack := w.packMap.Get(w.player)
	idx := -1
	for i, slot := range pack.Slots {
		if slot.ID == id && slot.Count > 0 {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	fx, ok := w.items[id]
	if !ok {
		return false
	}
	w.applyItem(fx)

	// Single-unit slots empty out; stacks just shrink.
	pack.Slots[idx].Count--
	if pack.Slots[idx].Count == 0 {
		pack.Slots[idx] = state.InventorySlot{}
	}
	return true
}

// UseEquipped activates a worn item.
func (w *World) UseEquipped(slot, id int) bool {
	if w.rng.Float64() < rejectChance {
		return false
	}
	if !w.HasItemEquipped(slot, id) {
		return false
	}
	fx, ok := w.items[id]
	if !ok {
		return false
	}
	w.applyItem(fx)
	return true
}

// CastAbility toggles or applies the ability's buff.
func (w *World) CastAbility(id int) bool {
	if w.rng.Float64() < rejectChance {
		return false
	}
	fx, ok := w.abilities[id]
	if !ok {
		return false
	}

	buffID := fx.buff
	if buffID == 0 {
		buffID = id
	}

	effects := w.effectsMap.Get(w.player)
	if fx.toggle {
		if _, active := effects.Buffs[buffID]; active {
			delete(effects.Buffs, buffID)
			return true
		}
		effects.Buffs[buffID] = 0
		return true
	}

	until := int64(0)
	if fx.duration > 0 {
		until = w.tick + fx.duration
	}
	effects.Buffs[buffID] = until
	return true
}

// applyItem applies a consumable's effect to the player's vitals.
func (w *World) applyItem(fx itemEffect) {
	vitals := w.vitalsMap.Get(w.player)
	effects := w.effectsMap.Get(w.player)

	vitals.Health.Current += fx.heal
	if vitals.Health.Current > vitals.Health.Max {
		vitals.Health.Current = vitals.Health.Max
	}

	vitals.Prayer.Current += fx.prayer
	if vitals.Prayer.Current > vitals.Prayer.Max {
		vitals.Prayer.Current = vitals.Prayer.Max
	}
	if vitals.Prayer.Current < 0 {
		vitals.Prayer.Current = 0
	}

	vitals.Adrenaline.Current += fx.adrenaline
	if vitals.Adrenaline.Current < 0 {
		vitals.Adrenaline.Current = 0
	}
	if vitals.Adrenaline.Current > vitals.Adrenaline.Max {
		vitals.Adrenaline.Current = vitals.Adrenaline.Max
	}

	if fx.debuff != 0 {
		effects.Debuffs[fx.debuff] = w.tick + fx.debuffFor
	}
}

// Health exposes the player's health gauge for assertions and logs.
func (w *World) Health() state.Metric {
	return w.vitalsMap.Get(w.player).Health
}

// Prayer exposes the player's prayer gauge for assertions and logs.
func (w *World) Prayer() state.Metric {
	return w.vitalsMap.Get(w.player).Prayer
}
