package systems

// CascadeStep binds one consumable category to the action kind that
// gates it.
type CascadeStep struct {
	Category Category
	Kind     ActionKind
}

// HealthCascade is the health rule's category order, highest value
// first. Solid food leads but only when the caller allows the
// adrenaline drain; jellyfish and brews follow so a safe heal and a
// brew can land together in one tick.
var HealthCascade = []CascadeStep{
	{Category: CategoryFood, Kind: ActionEatFood},
	{Category: CategoryJellyfish, Kind: ActionEatJellyfish},
	{Category: CategoryPotion, Kind: ActionDrinkPotion},
}

// PrayerCascade is the prayer rule's single restore step.
var PrayerCascade = []CascadeStep{
	{Category: CategoryRestore, Kind: ActionDrinkRestore},
}

// CascadeAction records one consumption the cascade performed.
type CascadeAction struct {
	Kind ActionKind
	Item Consumable
}

// RunCascade walks the steps in order and consumes at most one item
// per step. A step is skipped when its cooldown has not elapsed or no
// items of its category exist; a skipped step never aborts the
// cascade. Consuming from several categories in the same invocation is
// deliberate: eating only a low-intensity heal in isolation triggers
// the host's adrenaline-drain side effect, so the jellyfish and the
// brew go down together. The food step runs only when allowFood is
// set (the critical tier made the drain acceptable).
//
// On dispatch success the step's cooldown is recorded at the current
// tick; on failure nothing is recorded and there is no retry this
// tick, so the next tick's cascade attempts the step again.
func RunCascade(
	classified []Consumable,
	ledger *Ledger,
	tick int64,
	allowFood bool,
	dispatch func(id int) bool,
) []CascadeAction {
	var taken []CascadeAction

	for _, step := range HealthCascade {
		if step.Category == CategoryFood && !allowFood {
			continue
		}
		if act, ok := runStep(step, classified, ledger, tick, dispatch); ok {
			taken = append(taken, act)
		}
	}
	return taken
}

// RunSteps is the generalized cascade used by rules with their own
// category order, e.g. the prayer restore step.
func RunSteps(
	steps []CascadeStep,
	classified []Consumable,
	ledger *Ledger,
	tick int64,
	dispatch func(id int) bool,
) []CascadeAction {
	var taken []CascadeAction
	for _, step := range steps {
		if act, ok := runStep(step, classified, ledger, tick, dispatch); ok {
			taken = append(taken, act)
		}
	}
	return taken
}

func runStep(
	step CascadeStep,
	classified []Consumable,
	ledger *Ledger,
	tick int64,
	dispatch func(id int) bool,
) (CascadeAction, bool) {
	if !ledger.CanFire(step.Kind, tick) {
		return CascadeAction{}, false
	}
	item, ok := FirstOfCategory(classified, step.Category)
	if !ok {
		return CascadeAction{}, false
	}
	if !dispatch(item.ID) {
		// Transient host rejection: leave the cooldown unset so the
		// next tick retries.
		return CascadeAction{}, false
	}
	ledger.RecordFire(step.Kind, tick)
	return CascadeAction{Kind: step.Kind, Item: item}, true
}
