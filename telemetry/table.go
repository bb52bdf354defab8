package telemetry

import (
	"fmt"
	"strings"
	"time"

	"github.com/sonsonmagro/Sonsons-Player-Manager/systems"
)

// CooldownView is the reporting shape for one action kind's cooldown.
type CooldownView struct {
	Kind      systems.ActionKind
	Remaining int64 // ticks until eligible, 0 = ready
}

// FormatTracking renders the manager's current view as a fixed-width
// table for log output.
func FormatTracking(
	tick int64,
	location string,
	consumables []systems.Consumable,
	cooldowns []CooldownView,
	buffs []systems.BuffView,
) string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== Tracking @ Tick %d (%s) ===\n", tick, location)

	fmt.Fprintf(&b, "Consumables:\n")
	if len(consumables) == 0 {
		fmt.Fprintf(&b, "  (none)\n")
	}
	for _, c := range consumables {
		fmt.Fprintf(&b, "  %-24s %-10s x%d\n", c.Name, c.Category, c.Count)
	}

	fmt.Fprintf(&b, "Cooldowns:\n")
	for _, cd := range cooldowns {
		status := "ready"
		if cd.Remaining > 0 {
			status = fmt.Sprintf("%d ticks", cd.Remaining)
		}
		fmt.Fprintf(&b, "  %-24s %s\n", cd.Kind, status)
	}

	fmt.Fprintf(&b, "Buffs:\n")
	for _, bv := range buffs {
		remaining := ""
		if bv.Active && bv.Remaining > 0 {
			remaining = " " + bv.Remaining.Round(time.Second).String()
		}
		fmt.Fprintf(&b, "  %-24s %-11s%s\n", bv.Name, bv.Phase, remaining)
	}

	return b.String()
}
