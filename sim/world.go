package sim

import (
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/sonsonmagro/Sonsons-Player-Manager/state"
)

// Combat pressure script
const (
	combatTicks = 80 // ticks of sustained damage per cycle
	restTicks   = 20 // ticks of downtime per cycle

	minHit      = 60
	maxHit      = 260
	prayerDrain = 14
	adrenGain   = 4

	rejectChance = 0.02 // host-side dispatch rejection rate
)

// itemEffect is what consuming one item does to the player.
type itemEffect struct {
	heal       int
	prayer     int
	adrenaline int   // negative for solid food drain
	debuff     int   // debuff applied on use, 0 for none
	debuffFor  int64 // debuff duration in ticks
}

// abilityEffect is what casting one ability does.
type abilityEffect struct {
	buff     int   // buff id granted, 0 = ability id
	duration int64 // ticks; 0 = indefinite until toggled
	toggle   bool
}

// World is the scripted host environment.
type World struct {
	world  *ecs.World
	player ecs.Entity

	vitalsMap   *ecs.Map1[Vitals]
	packMap     *ecs.Map1[Pack]
	wornMap     *ecs.Map1[Worn]
	effectsMap  *ecs.Map1[Effects]
	presenceMap *ecs.Map1[Presence]

	mapper *ecs.Map5[Vitals, Pack, Worn, Effects, Presence]

	rng  *rand.Rand
	tick int64

	tickDuration time.Duration

	items     map[int]itemEffect
	abilities map[int]abilityEffect
}

// NewWorld builds the scripted world with a seeded RNG so runs are
// reproducible.
func NewWorld(seed int64, tickDuration time.Duration) *World {
	world := ecs.NewWorld()

	w := &World{
		world:        world,
		vitalsMap:    ecs.NewMap1[Vitals](world),
		packMap:      ecs.NewMap1[Pack](world),
		wornMap:      ecs.NewMap1[Worn](world),
		effectsMap:   ecs.NewMap1[Effects](world),
		presenceMap:  ecs.NewMap1[Presence](world),
		mapper:       ecs.NewMap5[Vitals, Pack, Worn, Effects, Presence](world),
		rng:          rand.New(rand.NewSource(seed)),
		tickDuration: tickDuration,
		items:        defaultItems(),
		abilities:    defaultAbilities(),
	}

	w.player = w.spawnPlayer()
	return w
}

// spawnPlayer creates the managed player with a stocked backpack.
func (w *World) spawnPlayer() ecs.Entity {
	vitals := Vitals{
		Health:     state.Metric{Current: 9900, Max: 9900},
		Prayer:     state.Metric{Current: 990, Max: 990},
		Adrenaline: state.Metric{Current: 0, Max: 100},
		Summoning:  state.Metric{Current: 600, Max: 600},
	}
	pack := Pack{Slots: []state.InventorySlot{
		{Name: "Sailfish", ID: 42251, Count: 1},
		{Name: "Sailfish", ID: 42251, Count: 1},
		{Name: "Sailfish", ID: 42251, Count: 1},
		{Name: "<col=00ff80>Blubber jellyfish</col>", ID: 42256, Count: 1},
		{Name: "<col=00ff80>Blubber jellyfish</col>", ID: 42256, Count: 1},
		{Name: "<col=00ff80>Blubber jellyfish</col>", ID: 42256, Count: 1},
		{Name: "<col=00ff80>Blubber jellyfish</col>", ID: 42256, Count: 1},
		{Name: "Saradomin brew (4)", ID: 6685, Count: 1},
		{Name: "Saradomin brew (4)", ID: 6685, Count: 1},
		{Name: "Super restore (4)", ID: 3024, Count: 1},
		{Name: "Super restore (4)", ID: 3024, Count: 1},
		{Name: "Super restore (4)", ID: 3024, Count: 1},
		{Name: "Ritual shard", ID: 43358, Count: 1},
		{Name: "Coins", ID: 995, Count: 12807},
	}}
	worn := Worn{Slots: map[int]int{
		5: 36619, // blade lives on the off-hand slot
	}}
	effects := Effects{
		Buffs:   make(map[int]int64),
		Debuffs: make(map[int]int64),
	}
	presence := Presence{X: 3294, Y: 3184} // starts in the arena

	return w.mapper.NewEntity(&vitals, &pack, &worn, &effects, &presence)
}

func defaultItems() map[int]itemEffect {
	return map[int]itemEffect{
		42251: {heal: 2400, adrenaline: -10},          // sailfish
		42256: {heal: 1000},                           // blubber jellyfish
		6685:  {heal: 1300, prayer: -40},              // saradomin brew
		3024:  {prayer: 320},                          // super restore
		43358: {prayer: 360, debuff: 43359, debuffFor: 500}, // ritual shard
		14632: {heal: 1500},                           // blade, backpack variant
		36619: {heal: 1500},                           // blade, worn variant
	}
}

func defaultAbilities() map[int]abilityEffect {
	return map[int]abilityEffect{
		26093: {buff: 26094, duration: 600}, // overload
		26033: {toggle: true},               // soul split
		25496: {duration: 1000},             // weapon poison
	}
}

// Tick returns the world's current tick.
func (w *World) Tick() int64 {
	return w.tick
}

// Step advances the script by one tick: combat damage and drain
// during the combat phase, slow recovery during rest, buff and debuff
// expiry.
func (w *World) Step() {
	w.tick++

	vitals := w.vitalsMap.Get(w.player)
	effects := w.effectsMap.Get(w.player)
	presence := w.presenceMap.Get(w.player)

	phase := w.tick % (combatTicks + restTicks)
	presence.InCombat = phase < combatTicks
	presence.Moving = !presence.InCombat

	if presence.InCombat {
		hit := minHit + w.rng.Intn(maxHit-minHit+1)
		vitals.Health.Current -= hit
		if vitals.Health.Current < 0 {
			vitals.Health.Current = 0
		}

		vitals.Prayer.Current -= prayerDrain
		if vitals.Prayer.Current < 0 {
			vitals.Prayer.Current = 0
		}

		vitals.Adrenaline.Current += adrenGain
		if vitals.Adrenaline.Current > vitals.Adrenaline.Max {
			vitals.Adrenaline.Current = vitals.Adrenaline.Max
		}
	} else {
		// Wander toward the bank while resting
		presence.X += w.rng.Intn(3) - 1
		presence.Y += w.rng.Intn(3) - 1
	}

	expire(effects.Buffs, w.tick)
	expire(effects.Debuffs, w.tick)
}

// expire drops entries whose expiry tick has passed. Zero expiry
// entries are indefinite.
func expire(m map[int]int64, tick int64) {
	for id, until := range m {
		if until != 0 && until <= tick {
			delete(m, id)
		}
	}
}
