package state

// InventorySlot is one raw backpack slot as reported by the host.
// Empty slots have an empty name and zero count. Stackable slots carry
// their stack size in Count.
type InventorySlot struct {
	Name  string
	ID    int
	Count int
}

// Snapshot is the frozen view of the player for one tick. It is read at
// the start of the tick and never re-fetched mid-evaluation, so every
// policy in the same tick sees identical state.
type Snapshot struct {
	Tick int64

	Health     Metric
	Prayer     Metric
	Adrenaline Metric
	Summoning  Metric

	InCombat  bool
	Moving    bool
	Animating bool

	// World position, only used by the external location classifier.
	X, Y int

	// Location is informational: filled in by the locator callback,
	// never a decision input for the core policies.
	Location string

	Inventory []InventorySlot
}
