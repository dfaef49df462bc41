package hotkey

// Key is a physical key identity such as "a", "f5" or "escape".
// KeyNone means no key is held, only modifiers.
type Key string

const (
	KeyNone   Key = ""
	KeyEscape Key = "escape"
	KeySpace  Key = "space"
	KeyReturn Key = "return"
	KeyTab    Key = "tab"
)

// Chord is a snapshot of everything physically pressed at one instant,
// as delivered by the input source on every keyboard transition.
type Chord struct {
	Key       Key
	Modifiers ModifierSet
}

// IsEmpty reports a fully released keyboard: no key and no modifiers.
// Only an empty chord clears the processor's dirty latch.
func (c Chord) IsEmpty() bool {
	return c.Key == KeyNone && c.Modifiers.IsEmpty()
}

// isEscape reports a bare Escape press.
func (c Chord) isEscape() bool {
	return c.Key == KeyEscape && c.Modifiers.IsEmpty()
}

func (c Chord) String() string {
	if c.Key == KeyNone {
		return c.Modifiers.String()
	}
	if c.Modifiers.IsEmpty() {
		return string(c.Key)
	}
	return c.Modifiers.String() + "+" + string(c.Key)
}
