package systems

// ActionKind enumerates every gated action the manager can take.
type ActionKind uint8

const (
	// ActionEatFood is eating solid food (drains adrenaline).
	ActionEatFood ActionKind = iota
	// ActionEatJellyfish is eating a jellyfish.
	ActionEatJellyfish
	// ActionDrinkPotion is drinking a health brew.
	ActionDrinkPotion
	// ActionDrinkRestore is drinking a prayer restorative.
	ActionDrinkRestore
	// ActionUseBlade is the health-restoring special blade.
	ActionUseBlade
	// ActionUseShard is the prayer-restoring ritual shard.
	ActionUseShard

	// ActionKindCount is the number of action kinds.
	ActionKindCount
)

func (k ActionKind) String() string {
	switch k {
	case ActionEatFood:
		return "eat_food"
	case ActionEatJellyfish:
		return "eat_jellyfish"
	case ActionDrinkPotion:
		return "drink_potion"
	case ActionDrinkRestore:
		return "drink_restore"
	case ActionUseBlade:
		return "use_blade"
	case ActionUseShard:
		return "use_shard"
	default:
		return "unknown"
	}
}

// DefaultWindow blocks an action on the tick it fired and the tick
// immediately after. Two ticks make up one logical decision interval
// on the host, so the off-by-one is intentional: recordFire at T means
// canFire is false at T and T+1 and true again at T+2.
const DefaultWindow int64 = 1

// Ledger tracks the last tick each action kind fired and the per-kind
// cooldown window. It is mutated only by successful dispatches and
// only from the single evaluation goroutine.
type Ledger struct {
	last    [ActionKindCount]int64
	windows [ActionKindCount]int64
	fired   [ActionKindCount]bool
}

// NewLedger returns a ledger with every action immediately eligible
// and every window at the default.
func NewLedger() *Ledger {
	l := &Ledger{}
	for k := range l.windows {
		l.windows[k] = DefaultWindow
	}
	return l
}

// SetWindow overrides the cooldown window for one action kind.
// Windows are expressed in ticks; values below the default are raised
// to it so no action can fire twice in one decision interval.
func (l *Ledger) SetWindow(kind ActionKind, ticks int64) {
	if ticks < DefaultWindow {
		ticks = DefaultWindow
	}
	l.windows[kind] = ticks
}

// Window returns the cooldown window for the action kind.
func (l *Ledger) Window(kind ActionKind) int64 {
	return l.windows[kind]
}

// CanFire reports whether the action kind may fire at the given tick:
// the elapsed ticks since it last fired must exceed its window.
func (l *Ledger) CanFire(kind ActionKind, tick int64) bool {
	if !l.fired[kind] {
		return true
	}
	return tick-l.last[kind] > l.windows[kind]
}

// RecordFire marks the action kind as fired at the given tick. Called
// only after the host accepted the dispatch; a rejected dispatch
// leaves the ledger untouched so the next tick retries.
func (l *Ledger) RecordFire(kind ActionKind, tick int64) {
	l.last[kind] = tick
	l.fired[kind] = true
}

// LastFired returns the tick the action kind last fired, and whether
// it has ever fired.
func (l *Ledger) LastFired(kind ActionKind) (int64, bool) {
	return l.last[kind], l.fired[kind]
}

// Remaining returns how many ticks remain until the action kind is
// eligible again, zero when it can fire now.
func (l *Ledger) Remaining(kind ActionKind, tick int64) int64 {
	if l.CanFire(kind, tick) {
		return 0
	}
	return l.last[kind] + l.windows[kind] + 1 - tick
}
