package systems

import (
	"strings"

	"github.com/sonsonmagro/Sonsons-Player-Manager/state"
)

// Category is a classification bucket for consumable inventory items.
type Category uint8

const (
	// CategoryNone marks an unclassified item.
	CategoryNone Category = iota
	// CategoryFood is solid food: big heals that drain adrenaline.
	CategoryFood
	// CategoryJellyfish is combat-safe food with no adrenaline cost.
	CategoryJellyfish
	// CategoryPotion is health-restoring brews.
	CategoryPotion
	// CategoryRestore is prayer-restoring potions.
	CategoryRestore

	categoryCount
)

func (c Category) String() string {
	switch c {
	case CategoryFood:
		return "food"
	case CategoryJellyfish:
		return "jellyfish"
	case CategoryPotion:
		return "potion"
	case CategoryRestore:
		return "restore"
	default:
		return "none"
	}
}

// ParseCategory maps a config string to a Category. Unknown names are
// a configuration error, rejected at load time.
func ParseCategory(s string) (Category, error) {
	for c := CategoryFood; c < categoryCount; c++ {
		if c.String() == s {
			return c, nil
		}
	}
	return CategoryNone, &UnknownCategoryError{Name: s}
}

// UnknownCategoryError reports a category name with no enum value.
type UnknownCategoryError struct{ Name string }

func (e *UnknownCategoryError) Error() string {
	return "unknown consumable category \"" + e.Name + "\""
}

// Pattern is one name match within a category rule: substring by
// default, whole-name when Exact is set. Matching is case-insensitive.
type Pattern struct {
	Text  string
	Exact bool
}

// CategoryRule binds a category to its name patterns. Rules are held
// in priority order, highest-value category first; the first matching
// rule wins so an item is never double-classified.
type CategoryRule struct {
	Category Category
	Patterns []Pattern
}

// Consumable is one classified backpack item. Slots with identical
// name and category collapse into a single entry with summed count.
type Consumable struct {
	Name     string
	ID       int
	Category Category
	Count    int
}

// StripMarkup removes decorative <...> tag runs from an item name so
// colored or styled names match their plain patterns.
func StripMarkup(name string) string {
	if !strings.ContainsRune(name, '<') {
		return name
	}
	var b strings.Builder
	b.Grow(len(name))
	depth := 0
	for _, r := range name {
		switch {
		case r == '<':
			depth++
		case r == '>' && depth > 0:
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MatchCategory scans the rule table in priority order and returns the
// first category whose pattern matches the (markup-stripped) name, or
// CategoryNone.
func MatchCategory(name string, rules []CategoryRule) Category {
	clean := strings.ToLower(StripMarkup(name))
	for _, rule := range rules {
		for _, p := range rule.Patterns {
			pat := strings.ToLower(p.Text)
			if p.Exact {
				if clean == pat {
					return rule.Category
				}
			} else if strings.Contains(clean, pat) {
				return rule.Category
			}
		}
	}
	return CategoryNone
}

// Classify partitions the raw inventory into consumables. Only
// single-unit slots are considered: empty slots have nothing to use
// and stacked slots are counters, not items to consume. The result is
// rebuilt from scratch every tick, never patched incrementally, and is
// deterministic for identical input.
func Classify(slots []state.InventorySlot, rules []CategoryRule) []Consumable {
	var out []Consumable
	index := make(map[consumableKey]int)

	for _, slot := range slots {
		if slot.Count != 1 || slot.Name == "" {
			continue
		}
		cat := MatchCategory(slot.Name, rules)
		if cat == CategoryNone {
			continue
		}
		name := StripMarkup(slot.Name)
		key := consumableKey{name: name, category: cat}
		if i, ok := index[key]; ok {
			out[i].Count++
			continue
		}
		index[key] = len(out)
		out = append(out, Consumable{
			Name:     name,
			ID:       slot.ID,
			Category: cat,
			Count:    1,
		})
	}
	return out
}

type consumableKey struct {
	name     string
	category Category
}

// FirstOfCategory returns the first classified item of the category,
// preserving backpack order so repeated cascades pick deterministically.
func FirstOfCategory(items []Consumable, cat Category) (Consumable, bool) {
	for _, it := range items {
		if it.Category == cat {
			return it, true
		}
	}
	return Consumable{}, false
}

// CountOfCategory sums the counts of all items in the category.
func CountOfCategory(items []Consumable, cat Category) int {
	n := 0
	for _, it := range items {
		if it.Category == cat {
			n += it.Count
		}
	}
	return n
}
