package hotkey

import "time"

// Timing windows. The floor and grace for modifier-only triggers are fixed;
// chorded triggers use the user-tunable minimum key time as their floor and
// a wider grace window, since a literal key press is already a strong
// intent signal.
const (
	modifierOnlyFloor = 300 * time.Millisecond
	modifierOnlyGrace = 300 * time.Millisecond
	chordedGrace      = 1000 * time.Millisecond

	// DoubleTapWindow is the maximum gap between a release and the next
	// matching press for the following release to latch hands-free lock.
	DoubleTapWindow = 300 * time.Millisecond
)

// Config is the trigger definition for one push-to-talk hotkey.
// A Config with Key == KeyNone is a modifier-only trigger; otherwise it is
// a chorded trigger. Callers must not supply both an empty key and an empty
// modifier set. The processor snapshots a fresh Config on every event, so
// live settings edits take effect without resetting in-flight state.
type Config struct {
	Key            Key
	Modifiers      ModifierSet
	MinimumKeyTime time.Duration
	DoubleTapOnly  bool
}

// IsModifierOnly reports whether the trigger has no literal key.
func (c Config) IsModifierOnly() bool { return c.Key == KeyNone }

func (c Config) String() string {
	return Chord{Key: c.Key, Modifiers: c.Modifiers}.String()
}

// ReleaseFloor is the minimum hold duration, measured at the moment the
// trigger's own condition is released, to treat the gesture as intentional.
func (c Config) ReleaseFloor() time.Duration {
	if c.IsModifierOnly() {
		return modifierOnlyFloor
	}
	return c.MinimumKeyTime
}

// nonMatchGrace is the window, from when holding began, during which extra
// non-matching input cancels the hold. After it, such input is ignored so
// the user can type or click while dictating.
func (c Config) nonMatchGrace() time.Duration {
	if c.IsModifierOnly() {
		return modifierOnlyGrace
	}
	return chordedGrace
}

// matches reports an exact match of the pressed chord against the trigger.
// Equality, not subset: an extra held modifier or key never matches.
func (c Config) matches(chord Chord) bool {
	if chord.Key != c.Key {
		return false
	}
	return c.Modifiers.Matches(chord.Modifiers)
}

// released reports that the trigger's own condition is no longer satisfied.
// For a modifier-only trigger, releasing any required modifier counts as a
// full release even if unrelated modifiers remain held. For a chorded
// trigger the trigger key itself must have left the chord; a different key
// appearing alongside it is extraneous input, not a release.
func (c Config) released(chord Chord) bool {
	if c.IsModifierOnly() {
		return !c.Modifiers.SubsetOf(chord.Modifiers)
	}
	return chord.Key == KeyNone
}
