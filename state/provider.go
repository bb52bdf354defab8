package state

import "time"

// BuffStatus is the observed status of one buff on the player.
// Remaining is zero when the host does not report a duration.
type BuffStatus struct {
	Active    bool
	Remaining time.Duration
}

// Provider supplies the manager's view of the host environment. All
// calls are synchronous and must be cheap; the manager calls Snapshot
// once per tick and the lookup methods during the same tick's
// evaluation.
type Provider interface {
	// Snapshot returns the frozen per-tick view of the player.
	Snapshot() *Snapshot

	// HasItem reports whether the item is anywhere in the backpack.
	HasItem(id int) bool

	// HasItemEquipped reports whether the item is worn in the given
	// equipment slot.
	HasItemEquipped(slot, id int) bool

	// HasStatusEffect reports whether a (de)buff with the given id is
	// active on the player.
	HasStatusEffect(id int) bool

	// BuffStatus returns activity and remaining duration for a buff.
	BuffStatus(id int) BuffStatus
}

// Dispatcher issues actions to the host. The returned bool means the
// host accepted the action, not that its effect has landed; a false
// return is a transient failure and the caller retries on a later tick.
type Dispatcher interface {
	// UseItem activates an inventory item by id.
	UseItem(id int) bool

	// UseEquipped activates a worn item in the given equipment slot.
	UseEquipped(slot, id int) bool

	// CastAbility triggers an ability or buff by id.
	CastAbility(id int) bool
}

// Locator names the player's current location from a snapshot. The
// classification itself (static radius or custom predicate) lives with
// the host; the manager records the name for reporting only.
type Locator func(*Snapshot) string
