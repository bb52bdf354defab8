package manager

import (
	"strings"
	"testing"

	"github.com/sonsonmagro/Sonsons-Player-Manager/config"
	"github.com/sonsonmagro/Sonsons-Player-Manager/state"
	"github.com/sonsonmagro/Sonsons-Player-Manager/systems"
)

// fakeHost implements state.Provider and state.Dispatcher against a
// hand-built snapshot, recording every dispatched action.
type fakeHost struct {
	snap    *state.Snapshot
	worn    map[int]int // slot -> item id
	effects map[int]bool
	buffs   map[int]state.BuffStatus

	rejectItems bool

	itemUses  []int
	equipUses [][2]int
	casts     []int
}

func (f *fakeHost) Snapshot() *state.Snapshot { return f.snap }

func (f *fakeHost) HasItem(id int) bool {
	for _, slot := range f.snap.Inventory {
		if slot.ID == id && slot.Count > 0 {
			return true
		}
	}
	return false
}

func (f *fakeHost) HasItemEquipped(slot, id int) bool {
	return f.worn[slot] == id
}

func (f *fakeHost) HasStatusEffect(id int) bool { return f.effects[id] }

func (f *fakeHost) BuffStatus(id int) state.BuffStatus { return f.buffs[id] }

func (f *fakeHost) UseItem(id int) bool {
	if f.rejectItems {
		return false
	}
	f.itemUses = append(f.itemUses, id)
	return true
}

func (f *fakeHost) UseEquipped(slot, id int) bool {
	f.equipUses = append(f.equipUses, [2]int{slot, id})
	return true
}

func (f *fakeHost) CastAbility(id int) bool {
	f.casts = append(f.casts, id)
	return true
}

const (
	sailfishID  = 42251
	jellyfishID = 42256
	brewID      = 6685
	restoreID   = 3024
	bladeID     = 14632
	wornBladeID = 36619
)

func fullInventory() []state.InventorySlot {
	return []state.InventorySlot{
		{Name: "Sailfish", ID: sailfishID, Count: 1},
		{Name: "Blubber jellyfish", ID: jellyfishID, Count: 1},
		{Name: "Saradomin brew (4)", ID: brewID, Count: 1},
		{Name: "Super restore (4)", ID: restoreID, Count: 1},
	}
}

func newHost(snap *state.Snapshot) *fakeHost {
	return &fakeHost{
		snap:    snap,
		worn:    map[int]int{},
		effects: map[int]bool{},
		buffs:   map[int]state.BuffStatus{},
	}
}

func newManager(t *testing.T, host *fakeHost, opts ...Option) *Manager {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return New(cfg, host, host, opts...)
}

func usedItem(host *fakeHost, id int) bool {
	for _, u := range host.itemUses {
		if u == id {
			return true
		}
	}
	return false
}

func TestTickHealthyDoesNothing(t *testing.T) {
	host := newHost(&state.Snapshot{
		Tick:      1,
		Health:    state.Metric{Current: 9000, Max: 10000},
		Prayer:    state.Metric{Current: 800, Max: 990},
		Inventory: fullInventory(),
	})
	m := newManager(t, host)

	m.Tick()

	if len(host.itemUses) != 0 || len(host.equipUses) != 0 {
		t.Errorf("healthy player should use nothing, got items %v equips %v",
			host.itemUses, host.equipUses)
	}
}

func TestTickNormalHealthSkipsFood(t *testing.T) {
	host := newHost(&state.Snapshot{
		Tick:      1,
		Health:    state.Metric{Current: 4000, Max: 10000},
		Prayer:    state.Metric{Current: 800, Max: 990},
		Inventory: fullInventory(),
	})
	m := newManager(t, host)

	m.Tick()

	if usedItem(host, sailfishID) {
		t.Error("solid food must not be eaten above the critical tier")
	}
	if !usedItem(host, jellyfishID) {
		t.Error("jellyfish should be eaten at the normal tier")
	}
	if !usedItem(host, brewID) {
		t.Error("potion should be drunk at the normal tier")
	}
}

func TestTickCriticalHealthEatsEverything(t *testing.T) {
	host := newHost(&state.Snapshot{
		Tick:      1,
		Health:    state.Metric{Current: 2000, Max: 10000},
		Prayer:    state.Metric{Current: 800, Max: 990},
		Inventory: fullInventory(),
	})
	m := newManager(t, host)

	m.Tick()

	for _, id := range []int{sailfishID, jellyfishID, brewID} {
		if !usedItem(host, id) {
			t.Errorf("critical tier should consume item %d, used %v", id, host.itemUses)
		}
	}
	if usedItem(host, restoreID) {
		t.Error("restores are not part of the health cascade")
	}
}

func TestTickFoodOverride(t *testing.T) {
	host := newHost(&state.Snapshot{
		Tick:      1,
		Health:    state.Metric{Current: 4000, Max: 10000},
		Prayer:    state.Metric{Current: 800, Max: 990},
		Inventory: fullInventory(),
	})
	m := newManager(t, host, WithFoodOverride(state.Static(true)))

	m.Tick()

	if !usedItem(host, sailfishID) {
		t.Error("food override should allow solid food at the normal tier")
	}
}

func TestTickPrayerDrinksRestore(t *testing.T) {
	host := newHost(&state.Snapshot{
		Tick:      1,
		Health:    state.Metric{Current: 9000, Max: 10000},
		Prayer:    state.Metric{Current: 250, Max: 990},
		Inventory: fullInventory(),
	})
	m := newManager(t, host)

	m.Tick()

	if !usedItem(host, restoreID) {
		t.Errorf("low prayer should drink a restore, used %v", host.itemUses)
	}
	if usedItem(host, sailfishID) || usedItem(host, jellyfishID) || usedItem(host, brewID) {
		t.Error("healthy player should not touch the health cascade")
	}
}

func TestTickPrayerBailsWithoutRestores(t *testing.T) {
	snap := &state.Snapshot{
		Tick:   1,
		Health: state.Metric{Current: 9000, Max: 10000},
		Prayer: state.Metric{Current: 250, Max: 990},
		Inventory: []state.InventorySlot{
			{Name: "Sailfish", ID: sailfishID, Count: 1},
		},
	}
	host := newHost(snap)
	m := newManager(t, host)

	m.Tick()
	if len(host.itemUses) != 0 {
		t.Errorf("no restoratives should mean no dispatch, got %v", host.itemUses)
	}

	// The bail-out must not have burned the cooldown: a restore that
	// appears next tick is drunk immediately.
	snap.Tick = 2
	snap.Inventory = append(snap.Inventory,
		state.InventorySlot{Name: "Super restore (4)", ID: restoreID, Count: 1})
	m.Tick()
	if !usedItem(host, restoreID) {
		t.Error("restock should be drunk on the very next tick")
	}
}

func TestTickBladeFromBackpack(t *testing.T) {
	snap := &state.Snapshot{
		Tick:   1,
		Health: state.Metric{Current: 7000, Max: 10000},
		Prayer: state.Metric{Current: 800, Max: 990},
		Inventory: []state.InventorySlot{
			{Name: "Enhanced Excalibur", ID: bladeID, Count: 1},
		},
	}
	host := newHost(snap)
	m := newManager(t, host)

	m.Tick()
	if !usedItem(host, bladeID) {
		t.Errorf("blade should fire below its tier, used %v", host.itemUses)
	}

	// Long cooldown: the next tick must not fire again.
	snap.Tick = 2
	m.Tick()
	if n := len(host.itemUses); n != 1 {
		t.Errorf("blade fired again inside its cooldown, %d uses", n)
	}
}

func TestTickBladeFromWornSlot(t *testing.T) {
	host := newHost(&state.Snapshot{
		Tick:   1,
		Health: state.Metric{Current: 7000, Max: 10000},
		Prayer: state.Metric{Current: 800, Max: 990},
	})
	host.worn[5] = wornBladeID
	m := newManager(t, host)

	m.Tick()

	want := [2]int{5, wornBladeID}
	if len(host.equipUses) != 1 || host.equipUses[0] != want {
		t.Errorf("expected worn use %v, got %v", want, host.equipUses)
	}
}

func TestTickBuffsInCombat(t *testing.T) {
	host := newHost(&state.Snapshot{
		Tick:     1,
		Health:   state.Metric{Current: 9000, Max: 10000},
		Prayer:   state.Metric{Current: 800, Max: 990},
		InCombat: true,
	})
	m := newManager(t, host)

	m.Tick()

	cast := map[int]bool{}
	for _, id := range host.casts {
		cast[id] = true
	}
	if !cast[26093] {
		t.Errorf("overload should be cast in combat, casts %v", host.casts)
	}
	if !cast[26033] {
		t.Errorf("soul split should be cast in combat, casts %v", host.casts)
	}
	if !cast[25496] {
		t.Errorf("weapon poison should always be cast, casts %v", host.casts)
	}
}

func TestTickBuffsOutOfCombat(t *testing.T) {
	host := newHost(&state.Snapshot{
		Tick:   1,
		Health: state.Metric{Current: 9000, Max: 10000},
		Prayer: state.Metric{Current: 800, Max: 990},
	})
	m := newManager(t, host)

	m.Tick()

	for _, id := range host.casts {
		if id != 25496 {
			t.Errorf("only weapon poison should be cast out of combat, got %v", host.casts)
		}
	}
	if len(host.casts) != 1 {
		t.Errorf("expected one cast out of combat, got %v", host.casts)
	}
}

func TestTickExtraBuffRules(t *testing.T) {
	host := newHost(&state.Snapshot{
		Tick:   1,
		Health: state.Metric{Current: 9000, Max: 10000},
		Prayer: state.Metric{Current: 800, Max: 990},
	})
	m := newManager(t, host, WithBuffRules(systems.BuffRule{
		Name:      "darkness",
		AbilityID: 30007,
		Priority:  200,
		Condition: state.Static(true),
	}))

	m.Tick()

	if len(host.casts) == 0 || host.casts[0] != 30007 {
		t.Errorf("highest-priority extra rule should cast first, got %v", host.casts)
	}
}

func TestTickNilSnapshot(t *testing.T) {
	host := newHost(nil)
	m := newManager(t, host)

	// Must be a no-op, not a panic.
	m.Tick()

	if m.LastTick() != 0 {
		t.Errorf("nil snapshot should not advance the tick, got %d", m.LastTick())
	}
}

func TestReportingAccessors(t *testing.T) {
	host := newHost(&state.Snapshot{
		Tick:      42,
		Health:    state.Metric{Current: 9000, Max: 10000},
		Prayer:    state.Metric{Current: 800, Max: 990},
		X:         3294,
		Y:         3184,
		Inventory: fullInventory(),
	})
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	m := New(cfg, host, host, WithLocator(cfg.Locator()))

	m.Tick()

	if m.LastTick() != 42 {
		t.Errorf("expected tick 42, got %d", m.LastTick())
	}
	if m.Location() != "arena" {
		t.Errorf("expected arena, got %q", m.Location())
	}
	if got := len(m.Consumables()); got != 4 {
		t.Errorf("expected 4 classified consumables, got %d", got)
	}
	if got := len(m.Cooldowns()); got != int(systems.ActionKindCount) {
		t.Errorf("expected a cooldown view per action kind, got %d", got)
	}
	if got := len(m.BuffStates()); got != len(cfg.Derived.BuffRules) {
		t.Errorf("expected a view per buff rule, got %d", got)
	}

	table := m.TrackingTable()
	for _, want := range []string{"Tick 42", "arena", "Sailfish", "overload"} {
		if !strings.Contains(table, want) {
			t.Errorf("tracking table missing %q:\n%s", want, table)
		}
	}
}
