// Package hotkey interprets global keyboard and mouse events for a single
// push-to-talk trigger. The Processor consumes one chord snapshot at a time
// and emits a verdict; it never blocks, never throws, and holds no locks.
package hotkey

import "strings"

// ModifierKind identifies a modifier key type.
type ModifierKind string

const (
	ModCommand ModifierKind = "command"
	ModOption  ModifierKind = "option"
	ModShift   ModifierKind = "shift"
	ModControl ModifierKind = "control"
	ModFn      ModifierKind = "fn"
)

// Side pins a modifier to one physical side of the keyboard. SideEither
// matches a press of either physical key of that modifier type.
type Side string

const (
	SideEither Side = "either"
	SideLeft   Side = "left"
	SideRight  Side = "right"
)

// Modifier is one modifier key with an optional physical side.
type Modifier struct {
	Kind ModifierKind
	Side Side
}

// NewModifier builds a Modifier, defaulting the side to SideEither.
func NewModifier(kind ModifierKind, side Side) Modifier {
	if side == "" {
		side = SideEither
	}
	return Modifier{Kind: kind, Side: side}
}

// satisfies reports whether m and other denote the same modifier, treating
// SideEither on either end as a wildcard.
func (m Modifier) satisfies(other Modifier) bool {
	if m.Kind != other.Kind {
		return false
	}
	return m.Side == SideEither || other.Side == SideEither || m.Side == other.Side
}

func (m Modifier) String() string {
	if m.Side == SideEither || m.Side == "" {
		return string(m.Kind)
	}
	return string(m.Side) + " " + string(m.Kind)
}

// ModifierSet is a set of modifiers, unique by kind+side.
type ModifierSet []Modifier

// NewModifierSet builds a set, dropping duplicate kind+side entries and
// normalizing empty sides to SideEither.
func NewModifierSet(mods ...Modifier) ModifierSet {
	set := make(ModifierSet, 0, len(mods))
	for _, m := range mods {
		if m.Side == "" {
			m.Side = SideEither
		}
		if !set.contains(m) {
			set = append(set, m)
		}
	}
	return set
}

func (s ModifierSet) contains(m Modifier) bool {
	for _, have := range s {
		if have == m {
			return true
		}
	}
	return false
}

// IsEmpty reports whether no modifiers are held.
func (s ModifierSet) IsEmpty() bool { return len(s) == 0 }

// SubsetOf reports whether every modifier in s is satisfied by a distinct
// modifier in other. Exact-side pairs are claimed before wildcard pairs so
// that an either-side requirement never steals the only exact match.
func (s ModifierSet) SubsetOf(other ModifierSet) bool {
	used := make([]bool, len(other))
	pending := make([]Modifier, 0, len(s))

	for _, req := range s {
		claimed := false
		for i, got := range other {
			if used[i] || got.Kind != req.Kind {
				continue
			}
			if got.Side == req.Side {
				used[i] = true
				claimed = true
				break
			}
		}
		if !claimed {
			pending = append(pending, req)
		}
	}

	for _, req := range pending {
		claimed := false
		for i, got := range other {
			if used[i] {
				continue
			}
			if req.satisfies(got) {
				used[i] = true
				claimed = true
				break
			}
		}
		if !claimed {
			return false
		}
	}
	return true
}

// Matches reports set equality under side satisfaction: the sets are the
// same size and each modifier in s pairs with a distinct one in other.
// An extra held modifier therefore never counts as a match.
func (s ModifierSet) Matches(other ModifierSet) bool {
	return len(s) == len(other) && s.SubsetOf(other)
}

func (s ModifierSet) String() string {
	if len(s) == 0 {
		return "(none)"
	}
	parts := make([]string, 0, len(s))
	for _, m := range s {
		parts = append(parts, m.String())
	}
	return strings.Join(parts, "+")
}
