package hotkey

import "testing"

func TestModifierSetDeduplicates(t *testing.T) {
	t.Parallel()

	set := NewModifierSet(
		NewModifier(ModOption, SideLeft),
		NewModifier(ModOption, SideLeft),
		NewModifier(ModOption, SideRight),
	)
	if len(set) != 2 {
		t.Fatalf("expected 2 unique modifiers, got %d: %v", len(set), set)
	}
}

func TestModifierSetMatches(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		config  ModifierSet
		pressed ModifierSet
		want    bool
	}{
		{
			name:    "either side matches left",
			config:  NewModifierSet(NewModifier(ModOption, SideEither)),
			pressed: NewModifierSet(NewModifier(ModOption, SideLeft)),
			want:    true,
		},
		{
			name:    "either side matches right",
			config:  NewModifierSet(NewModifier(ModOption, SideEither)),
			pressed: NewModifierSet(NewModifier(ModOption, SideRight)),
			want:    true,
		},
		{
			name:    "pinned side must match exactly",
			config:  NewModifierSet(NewModifier(ModOption, SideLeft)),
			pressed: NewModifierSet(NewModifier(ModOption, SideRight)),
			want:    false,
		},
		{
			name:    "different kind never matches",
			config:  NewModifierSet(NewModifier(ModOption, SideEither)),
			pressed: NewModifierSet(NewModifier(ModCommand, SideLeft)),
			want:    false,
		},
		{
			name:    "extra pressed modifier breaks equality",
			config:  NewModifierSet(NewModifier(ModOption, SideEither)),
			pressed: NewModifierSet(NewModifier(ModOption, SideLeft), NewModifier(ModShift, SideLeft)),
			want:    false,
		},
		{
			name:    "missing pressed modifier breaks equality",
			config:  NewModifierSet(NewModifier(ModOption, SideEither), NewModifier(ModCommand, SideEither)),
			pressed: NewModifierSet(NewModifier(ModOption, SideLeft)),
			want:    false,
		},
		{
			name: "multi-modifier with mixed sides",
			config: NewModifierSet(
				NewModifier(ModOption, SideRight),
				NewModifier(ModCommand, SideEither),
			),
			pressed: NewModifierSet(
				NewModifier(ModCommand, SideLeft),
				NewModifier(ModOption, SideRight),
			),
			want: true,
		},
		{
			// The exact-side pairing must be claimed before the wildcard,
			// otherwise the either requirement steals the only exact match.
			name: "exact pairing claimed before wildcard",
			config: NewModifierSet(
				NewModifier(ModOption, SideEither),
				NewModifier(ModOption, SideLeft),
			),
			pressed: NewModifierSet(
				NewModifier(ModOption, SideLeft),
				NewModifier(ModOption, SideRight),
			),
			want: true,
		},
		{
			name:    "empty sets are equal",
			config:  NewModifierSet(),
			pressed: NewModifierSet(),
			want:    true,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.config.Matches(tc.pressed); got != tc.want {
				t.Fatalf("Matches(%v, %v) = %v, want %v", tc.config, tc.pressed, got, tc.want)
			}
		})
	}
}

func TestModifierSetSubsetOf(t *testing.T) {
	t.Parallel()

	option := NewModifierSet(NewModifier(ModOption, SideEither))
	pressed := NewModifierSet(
		NewModifier(ModOption, SideLeft),
		NewModifier(ModShift, SideLeft),
	)

	if !option.SubsetOf(pressed) {
		t.Fatalf("expected %v to be a subset of %v", option, pressed)
	}
	if pressed.SubsetOf(option) {
		t.Fatalf("did not expect %v to be a subset of %v", pressed, option)
	}
	if !NewModifierSet().SubsetOf(option) {
		t.Fatalf("empty set must be a subset of anything")
	}
}

func TestChordIsEmpty(t *testing.T) {
	t.Parallel()

	if !(Chord{}).IsEmpty() {
		t.Fatalf("zero chord must be empty")
	}
	if (Chord{Key: "a"}).IsEmpty() {
		t.Fatalf("chord with key must not be empty")
	}
	if (Chord{Modifiers: NewModifierSet(NewModifier(ModShift, SideEither))}).IsEmpty() {
		t.Fatalf("chord with modifiers must not be empty")
	}
}
