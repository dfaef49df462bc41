package ports

import (
	"context"
	"io"
	"time"

	"pushmic/internal/domain"
	"pushmic/internal/hotkey"
)

// KeyHandler receives global input events from an InputSource. The source
// must deliver events from one goroutine in wall-clock order; the returned
// boolean tells the OS tap whether to swallow the event.
type KeyHandler interface {
	// HandleKey consumes one keyboard transition carrying the full
	// currently-pressed chord.
	HandleKey(chord hotkey.Chord, now time.Time) (intercept bool)
	// HandleMouseClick consumes a mouse button press. Clicks are never
	// swallowed; the return value exists for interface symmetry.
	HandleMouseClick(now time.Time) (intercept bool)
}

// InputSource is a global keyboard/mouse tap. Run blocks until ctx is done
// or the tap fails.
type InputSource interface {
	Run(ctx context.Context, handler KeyHandler) error
}

// TriggerSource supplies the live hotkey trigger definition. It is re-read
// on every input event so settings edits apply to in-flight gestures.
type TriggerSource interface {
	Trigger() hotkey.Config
}

// AudioConfig describes how the microphone should be captured.
type AudioConfig struct {
	SampleRate  int
	Channels    int
	InputFormat string
	InputDevice string
}

// AudioSession is a live capture session producing 16-bit little-endian PCM.
type AudioSession interface {
	io.ReadCloser
	Stop() error
}

// AudioCapture creates microphone capture sessions.
type AudioCapture interface {
	Start(ctx context.Context, cfg AudioConfig) (AudioSession, error)
}

// StreamingConfig describes provider-agnostic streaming settings.
type StreamingConfig struct {
	SampleRate     int
	Channels       int
	Encoding       string
	InterimResults bool
}

// StreamingSession is an active provider streaming session.
type StreamingSession interface {
	SendAudio(chunk []byte) error
	CloseSend() error
	Events() <-chan domain.TranscriptEvent
	Wait() error
	Close() error
}

// TranscriptionProvider starts streaming transcription sessions.
type TranscriptionProvider interface {
	StartStreaming(ctx context.Context, cfg StreamingConfig) (StreamingSession, error)
}

// RulesEngine transforms transcripts using deterministic rules.
type RulesEngine interface {
	Apply(text string) (string, error)
}

// Clipboard writes text into the system clipboard.
type Clipboard interface {
	SetText(ctx context.Context, text string) error
}

// SoundPlayer plays the audible recording cues. A cancelled recording is
// audible; a discarded one is silent, so there is no discard cue.
type SoundPlayer interface {
	RecordingStarted()
	RecordingStopped()
	RecordingCancelled()
}

// EventSink emits backend state and events to observers.
type EventSink interface {
	SessionStateChanged(state domain.SessionState, reason domain.SessionStateReason)
	PartialTranscript(text string)
	FinalTranscript(raw string, transformed string)
	SessionError(code domain.ErrorCode, detail string)
}
