package state

// Override is a configuration value that is either a fixed bool or a
// predicate over the current snapshot, an explicit tagged variant so a
// rule carries one field instead of a bool plus an optional callback.
// Resolve is called once per tick before the value is used.
type Override struct {
	dynamic func(*Snapshot) bool
	static  bool
}

// Static returns an Override with a fixed value.
func Static(v bool) Override {
	return Override{static: v}
}

// Dynamic returns an Override backed by a predicate.
func Dynamic(fn func(*Snapshot) bool) Override {
	return Override{dynamic: fn}
}

// Resolve evaluates the override against a snapshot. A nil-predicate
// (zero value or Static) resolves to the stored bool.
func (o Override) Resolve(s *Snapshot) bool {
	if o.dynamic != nil {
		return o.dynamic(s)
	}
	return o.static
}
