package hotkey

import (
	"testing"
	"time"
)

func TestDecide(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		cfg      Config
		duration float64
		want     Decision
	}{
		{name: "modifier-only below floor", cfg: optionOnly(), duration: 0.2, want: DecisionDiscardTooShort},
		{name: "modifier-only at floor", cfg: optionOnly(), duration: 0.3, want: DecisionTranscribe},
		{name: "chorded below minimum key time", cfg: commandA(), duration: 0.1, want: DecisionDiscardTooShort},
		{name: "chorded at minimum key time", cfg: commandA(), duration: 0.2, want: DecisionTranscribe},
		{name: "chorded well past minimum", cfg: commandA(), duration: 5, want: DecisionTranscribe},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Decide(tc.cfg, at(0), at(tc.duration))
			if got != tc.want {
				t.Fatalf("Decide(%v) = %q, want %q", time.Duration(tc.duration*float64(time.Second)), got, tc.want)
			}
		})
	}
}

// The processor's verdict and the decision engine can disagree: a chorded
// mismatch inside the grace window stops audibly even though the hold had
// already cleared the minimum key time, and the engine then proceeds to
// transcription. The orchestrator honors the verdict for audibility and the
// engine for the data decision.
func TestVerdictAndDecisionCanDisagree(t *testing.T) {
	t.Parallel()

	cfg := commandA()
	p := NewProcessor()

	if got := p.Process(chordOf("a", ModCommand), cfg, at(0)); got != VerdictStart {
		t.Fatalf("start: got %q", got)
	}
	if got := p.Process(chordOf("b", ModCommand), cfg, at(0.5)); got != VerdictStop {
		t.Fatalf("mismatch stop: got %q", got)
	}
	if got := Decide(cfg, at(0), at(0.5)); got != DecisionTranscribe {
		t.Fatalf("decision: got %q, want %q", got, DecisionTranscribe)
	}
}
