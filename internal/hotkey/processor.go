package hotkey

import "time"

// Verdict is the single output produced for each processed event.
type Verdict string

const (
	// VerdictNone leaves the current recording state untouched.
	VerdictNone Verdict = "none"
	// VerdictStart begins audio capture.
	VerdictStart Verdict = "start"
	// VerdictStop ends capture; the decision engine then gates transcription.
	VerdictStop Verdict = "stop"
	// VerdictCancel ends capture without transcription, audibly. Only Escape
	// produces it.
	VerdictCancel Verdict = "cancel"
	// VerdictDiscard silently ends capture: the gesture was too short or
	// turned out to be unrelated input, and the triggering keys must reach
	// the foreground application untouched.
	VerdictDiscard Verdict = "discard"
)

type phase int

const (
	phaseIdle phase = iota
	phaseHolding
	phaseLocked
)

// Processor is the push-to-talk state machine for one configured trigger.
//
// It is driven by a single strictly-ordered event stream and performs no
// internal locking; callers must serialize Process and ProcessMouseClick.
// Every transition is O(1) and synchronous, so it is safe to run inside an
// OS event-tap callback. Given the same event/timestamp sequence and
// configs, a fresh Processor always reproduces the same verdict sequence.
type Processor struct {
	phase       phase
	heldSince   time.Time
	dirty       bool
	lastRelease time.Time
}

// NewProcessor returns an idle processor.
func NewProcessor() *Processor {
	return &Processor{}
}

// Locked reports whether the recording is latched hands-free.
func (p *Processor) Locked() bool {
	return p.phase == phaseLocked
}

// Process consumes one keyboard transition. The chord carries the full
// currently-pressed state, not a key-up/down delta. cfg is snapshotted per
// call so live settings edits apply immediately.
func (p *Processor) Process(chord Chord, cfg Config, now time.Time) Verdict {
	// The dirty latch suppresses everything until the keyboard is fully
	// released, preventing re-triggering mid-gesture.
	if p.dirty {
		if chord.IsEmpty() {
			p.dirty = false
		}
		return VerdictNone
	}

	if chord.isEscape() && p.phase != phaseIdle {
		p.phase = phaseIdle
		p.dirty = false
		return VerdictCancel
	}

	switch p.phase {
	case phaseIdle:
		// Only an exact match activates. A superset chord stays idle, so
		// releasing extra modifiers down to the target set cannot backslide
		// into activation.
		if cfg.matches(chord) {
			p.phase = phaseHolding
			p.heldSince = now
			return VerdictStart
		}
		return VerdictNone

	case phaseHolding:
		if cfg.released(chord) {
			return p.release(cfg, now)
		}
		if cfg.matches(chord) {
			// Re-affirmation of the held trigger, e.g. key repeat.
			return VerdictNone
		}
		return p.extraneous(cfg, now)

	default: // phaseLocked
		if cfg.matches(chord) {
			p.phase = phaseIdle
			return VerdictStop
		}
		// Unrelated input never affects a locked recording.
		return VerdictNone
	}
}

// ProcessMouseClick treats a mouse press as extraneous input that can never
// match or release the trigger. It is a no-op outside of Holding.
func (p *Processor) ProcessMouseClick(cfg Config, now time.Time) Verdict {
	if p.dirty {
		return VerdictNone
	}
	if p.phase != phaseHolding {
		return VerdictNone
	}
	return p.extraneous(cfg, now)
}

// release handles the trigger's own condition going away while holding.
func (p *Processor) release(cfg Config, now time.Time) Verdict {
	// A quick second tap latches hands-free lock before the hold-duration
	// floor applies, regardless of DoubleTapOnly (the flag only changes
	// interception policy at the boundary).
	if !p.lastRelease.IsZero() && now.Sub(p.lastRelease) < DoubleTapWindow {
		p.phase = phaseLocked
		p.lastRelease = now
		return VerdictNone
	}

	if now.Sub(p.heldSince) < cfg.ReleaseFloor() {
		// Too short to be intentional. Latch dirty; do not record the
		// release time, so a discarded tap can never seed a double-tap.
		p.dirty = true
		p.phase = phaseIdle
		return VerdictDiscard
	}

	p.phase = phaseIdle
	p.lastRelease = now
	return VerdictStop
}

// extraneous handles additional non-matching input while holding: an extra
// modifier, an unrelated key, or a mouse click.
func (p *Processor) extraneous(cfg Config, now time.Time) Verdict {
	if now.Sub(p.heldSince) >= cfg.nonMatchGrace() {
		// Past the grace window the user is dictating; let them type.
		return VerdictNone
	}

	p.dirty = true
	p.phase = phaseIdle
	if cfg.IsModifierOnly() {
		return VerdictDiscard
	}
	// Chorded triggers stop audibly; the decision engine still discards the
	// captured audio if it was too short.
	return VerdictStop
}
