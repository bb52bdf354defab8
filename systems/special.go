package systems

import (
	"github.com/sonsonmagro/Sonsons-Player-Manager/state"
)

// SpecialItem is one limited-use item and its gates. The item is valid
// from the backpack or, when EquipSlot is non-negative, from the worn
// slot; the two locations are checked separately and the equipped
// variant may carry its own id.
type SpecialItem struct {
	Name       string
	Kind       ActionKind
	ItemID     int
	EquipSlot  int // -1 when there is no worn variant
	EquipID    int // 0 means same id as ItemID
	BlockingID int // status effect that suppresses use, 0 for none
}

// TryUseSpecial fires the special item if every gate passes: the item
// is possessed, no blocking debuff is active, and the cooldown window
// has elapsed. The ledger is updated only when the host accepts the
// dispatch.
func TryUseSpecial(
	it SpecialItem,
	prov state.Provider,
	disp state.Dispatcher,
	ledger *Ledger,
	tick int64,
) bool {
	if !ledger.CanFire(it.Kind, tick) {
		return false
	}
	if it.BlockingID != 0 && prov.HasStatusEffect(it.BlockingID) {
		return false
	}

	equipID := it.EquipID
	if equipID == 0 {
		equipID = it.ItemID
	}

	var accepted bool
	switch {
	case prov.HasItem(it.ItemID):
		accepted = disp.UseItem(it.ItemID)
	case it.EquipSlot >= 0 && prov.HasItemEquipped(it.EquipSlot, equipID):
		accepted = disp.UseEquipped(it.EquipSlot, equipID)
	default:
		return false
	}

	if !accepted {
		return false
	}
	ledger.RecordFire(it.Kind, tick)
	return true
}
