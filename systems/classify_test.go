package systems

import (
	"reflect"
	"testing"

	"pgregory.net/rapid"

	"github.com/sonsonmagro/Sonsons-Player-Manager/state"
)

// testRules is a small classifier table in priority order.
func testRules() []CategoryRule {
	return []CategoryRule{
		{Category: CategoryFood, Patterns: []Pattern{{Text: "sailfish"}}},
		{Category: CategoryJellyfish, Patterns: []Pattern{{Text: "blubber jellyfish"}}},
		{Category: CategoryPotion, Patterns: []Pattern{{Text: "saradomin brew"}}},
		{Category: CategoryRestore, Patterns: []Pattern{{Text: "super restore"}, {Text: "prayer potion"}}},
	}
}

func TestStripMarkup(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Sailfish", "Sailfish"},
		{"<col=00ff80>Blubber jellyfish</col>", "Blubber jellyfish"},
		{"<str>Super restore (4)</str>", "Super restore (4)"},
		{"plain > with gt", "plain > with gt"},
	}

	for _, tc := range cases {
		if got := StripMarkup(tc.in); got != tc.want {
			t.Errorf("StripMarkup(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestMatchCategoryFirstWins(t *testing.T) {
	// A rule table where a name could match two categories: the
	// higher-priority one must claim it.
	rules := []CategoryRule{
		{Category: CategoryFood, Patterns: []Pattern{{Text: "fish"}}},
		{Category: CategoryJellyfish, Patterns: []Pattern{{Text: "jellyfish"}}},
	}

	if got := MatchCategory("Blubber jellyfish", rules); got != CategoryFood {
		t.Errorf("expected first matching category to win, got %v", got)
	}
}

func TestMatchCategoryExact(t *testing.T) {
	rules := []CategoryRule{
		{Category: CategoryRestore, Patterns: []Pattern{{Text: "super restore (4)", Exact: true}}},
	}

	if got := MatchCategory("Super restore (4)", rules); got != CategoryRestore {
		t.Errorf("exact match failed, got %v", got)
	}
	if got := MatchCategory("Super restore (3)", rules); got != CategoryNone {
		t.Errorf("exact pattern should not match other doses, got %v", got)
	}
}

func TestClassifySkipsStacksAndEmpties(t *testing.T) {
	slots := []state.InventorySlot{
		{},
		{Name: "Coins", ID: 995, Count: 12807},
		{Name: "Sailfish", ID: 42251, Count: 1},
	}

	got := Classify(slots, testRules())
	if len(got) != 1 {
		t.Fatalf("expected 1 consumable, got %d", len(got))
	}
	if got[0].Name != "Sailfish" || got[0].Category != CategoryFood {
		t.Errorf("unexpected classification: %+v", got[0])
	}
}

func TestClassifyCollapsesDuplicates(t *testing.T) {
	slots := []state.InventorySlot{
		{Name: "<col=00ff80>Blubber jellyfish</col>", ID: 42256, Count: 1},
		{Name: "Sailfish", ID: 42251, Count: 1},
		{Name: "<col=00ff80>Blubber jellyfish</col>", ID: 42256, Count: 1},
	}

	got := Classify(slots, testRules())
	if len(got) != 2 {
		t.Fatalf("expected 2 consumables, got %d: %+v", len(got), got)
	}

	// First-seen order is preserved; counts are summed.
	if got[0].Name != "Blubber jellyfish" || got[0].Count != 2 {
		t.Errorf("expected 2 jellyfish first, got %+v", got[0])
	}
	if got[1].Name != "Sailfish" || got[1].Count != 1 {
		t.Errorf("expected 1 sailfish second, got %+v", got[1])
	}
}

func TestClassifyUnmatchedDropped(t *testing.T) {
	slots := []state.InventorySlot{
		{Name: "Vial", ID: 229, Count: 1},
	}

	if got := Classify(slots, testRules()); len(got) != 0 {
		t.Errorf("expected no consumables, got %+v", got)
	}
}

// Classification is idempotent: the same snapshot always yields the
// same ordered sequence.
func TestClassifyIdempotent(t *testing.T) {
	names := []string{
		"", "Sailfish", "<col=00ff80>Blubber jellyfish</col>",
		"Saradomin brew (4)", "Super restore (4)", "Vial", "Coins",
	}
	rules := testRules()

	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 28).Draw(rt, "slots")
		slots := make([]state.InventorySlot, n)
		for i := range slots {
			name := rapid.SampledFrom(names).Draw(rt, "name")
			count := rapid.IntRange(0, 3).Draw(rt, "count")
			slots[i] = state.InventorySlot{Name: name, ID: i, Count: count}
		}

		first := Classify(slots, rules)
		second := Classify(slots, rules)

		if !reflect.DeepEqual(first, second) {
			rt.Fatalf("classification not deterministic:\n%+v\n%+v", first, second)
		}
	})
}

func TestFirstOfCategory(t *testing.T) {
	items := []Consumable{
		{Name: "Saradomin brew (4)", ID: 6685, Category: CategoryPotion, Count: 2},
		{Name: "Sailfish", ID: 42251, Category: CategoryFood, Count: 3},
	}

	it, ok := FirstOfCategory(items, CategoryFood)
	if !ok || it.ID != 42251 {
		t.Errorf("expected sailfish, got %+v (ok=%v)", it, ok)
	}
	if _, ok := FirstOfCategory(items, CategoryRestore); ok {
		t.Error("expected no restore item")
	}
}

func TestCountOfCategory(t *testing.T) {
	items := []Consumable{
		{Name: "Super restore (4)", Category: CategoryRestore, Count: 2},
		{Name: "Prayer potion (4)", Category: CategoryRestore, Count: 1},
		{Name: "Sailfish", Category: CategoryFood, Count: 3},
	}

	if got := CountOfCategory(items, CategoryRestore); got != 3 {
		t.Errorf("expected 3 restores, got %d", got)
	}
	if got := CountOfCategory(items, CategoryJellyfish); got != 0 {
		t.Errorf("expected 0 jellyfish, got %d", got)
	}
}
