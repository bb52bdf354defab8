package systems

import (
	"sort"
	"time"

	"github.com/sonsonmagro/Sonsons-Player-Manager/state"
)

// BuffPhase is the logical state of one buff rule.
type BuffPhase uint8

const (
	// BuffInactive means the buff is down and its condition is false.
	BuffInactive BuffPhase = iota
	// BuffPending means activation was dispatched this tick.
	BuffPending
	// BuffActive means the buff is up.
	BuffActive
	// BuffExpiring means the buff dropped while its condition held.
	BuffExpiring
	// BuffToggledOff means a toggle rule dispatched its deactivation.
	BuffToggledOff
)

func (p BuffPhase) String() string {
	switch p {
	case BuffPending:
		return "pending"
	case BuffActive:
		return "active"
	case BuffExpiring:
		return "expiring"
	case BuffToggledOff:
		return "toggled_off"
	default:
		return "inactive"
	}
}

// BuffRule is one manageable buff, supplied once by configuration and
// evaluated every tick. Toggle rules must be cast a second time to
// deactivate when the condition drops while the buff is still up.
// A zero RefreshWindow disables refreshing.
type BuffRule struct {
	Name          string
	AbilityID     int // cast to apply (and to remove, for toggles)
	BuffID        int // observed buff id, 0 means same as AbilityID
	Priority      int
	Condition     state.Override
	Toggle        bool
	RefreshWindow time.Duration
}

func (r BuffRule) buffID() int {
	if r.BuffID != 0 {
		return r.BuffID
	}
	return r.AbilityID
}

// BuffOp labels what the manager did for one rule this tick.
type BuffOp uint8

const (
	// BuffApplied means the activation cast was accepted.
	BuffApplied BuffOp = iota
	// BuffRefreshed means a re-application cast inside the refresh
	// window was accepted.
	BuffRefreshed
	// BuffRemoved means a toggle rule's deactivation cast was accepted.
	BuffRemoved
)

func (o BuffOp) String() string {
	switch o {
	case BuffRefreshed:
		return "refreshed"
	case BuffRemoved:
		return "removed"
	default:
		return "applied"
	}
}

// BuffEvent records one buff action taken during a tick.
type BuffEvent struct {
	Rule string
	Op   BuffOp
}

// BuffView is the read-only reporting shape for one rule.
type BuffView struct {
	Name      string
	Phase     BuffPhase
	Active    bool
	Remaining time.Duration
}

// BuffSet evaluates a fixed set of buff rules each tick. Rules are
// held in descending priority so higher-priority rules reach the
// shared cast mechanism first; priority orders evaluation only and
// never suppresses a lower rule outright. Rules are independent state
// machines: a failed cast leaves the rule's phase unchanged and it is
// re-evaluated from the same phase next tick.
type BuffSet struct {
	rules  []BuffRule
	phases []BuffPhase
	views  []BuffView
}

// NewBuffSet builds a set from the given rules, ordered by descending
// priority. Order among equal priorities follows the input.
func NewBuffSet(rules []BuffRule) *BuffSet {
	sorted := make([]BuffRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})
	return &BuffSet{
		rules:  sorted,
		phases: make([]BuffPhase, len(sorted)),
		views:  make([]BuffView, len(sorted)),
	}
}

// Update runs every rule's state machine once against the frozen
// snapshot and returns the actions taken this tick.
func (b *BuffSet) Update(snap *state.Snapshot, prov state.Provider, cast func(id int) bool) []BuffEvent {
	var events []BuffEvent

	for i := range b.rules {
		rule := &b.rules[i]
		status := prov.BuffStatus(rule.buffID())
		want := rule.Condition.Resolve(snap)

		switch {
		case want && !status.Active:
			// The buff dropped out from under an active rule; note the
			// expiry, then reactivate along the normal path.
			if b.phases[i] == BuffActive {
				b.phases[i] = BuffExpiring
			}
			if cast(rule.AbilityID) {
				b.phases[i] = BuffActive
				events = append(events, BuffEvent{Rule: rule.Name, Op: BuffApplied})
			}

		case want && status.Active:
			b.phases[i] = BuffActive
			if rule.RefreshWindow > 0 && status.Remaining > 0 && status.Remaining <= rule.RefreshWindow {
				if cast(rule.AbilityID) {
					events = append(events, BuffEvent{Rule: rule.Name, Op: BuffRefreshed})
				}
			}

		case !want && status.Active && rule.Toggle:
			if cast(rule.AbilityID) {
				b.phases[i] = BuffInactive
				events = append(events, BuffEvent{Rule: rule.Name, Op: BuffRemoved})
			}

		default:
			// Condition false and buff down: nothing to do. Non-toggle
			// rules ride out their remaining duration here.
			if !status.Active {
				b.phases[i] = BuffInactive
			}
		}

		b.views[i] = BuffView{
			Name:      rule.Name,
			Phase:     b.phases[i],
			Active:    status.Active,
			Remaining: status.Remaining,
		}
	}
	return events
}

// Views returns the per-rule reporting state from the last Update.
// The returned slice is reused between ticks; callers must not hold it.
func (b *BuffSet) Views() []BuffView {
	return b.views
}

// Len returns the number of rules in the set.
func (b *BuffSet) Len() int {
	return len(b.rules)
}
