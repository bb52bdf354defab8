// Package sim is a scripted stand-in for the host environment: an ECS
// world with a single player entity under periodic combat pressure.
// It implements state.Provider and state.Dispatcher so the manager can
// be exercised end to end without a live game client.
package sim

import (
	"github.com/sonsonmagro/Sonsons-Player-Manager/state"
)

// Vitals holds the player's resource gauges.
type Vitals struct {
	Health     state.Metric
	Prayer     state.Metric
	Adrenaline state.Metric
	Summoning  state.Metric
}

// Pack is the player's backpack.
type Pack struct {
	Slots []state.InventorySlot
}

// Worn maps equipment slot to the item id worn there.
type Worn struct {
	Slots map[int]int
}

// Effects tracks active buffs and debuffs by id, each with the tick
// it expires on. Zero expiry means indefinite (toggles).
type Effects struct {
	Buffs   map[int]int64
	Debuffs map[int]int64
}

// Presence holds combat state and world position.
type Presence struct {
	InCombat bool
	Moving   bool
	X, Y     int
}
