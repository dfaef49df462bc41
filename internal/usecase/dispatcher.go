package usecase

import (
	"errors"
	"log/slog"
	"time"

	"pushmic/internal/domain"
	"pushmic/internal/hotkey"
	"pushmic/internal/ports"
)

// Recorder is the slice of the session controller the dispatcher drives.
// Start/Stop may be slow (Stop blocks on transcription); production wiring
// hides that behind AsyncRecorder so the input tap is never delayed.
type Recorder interface {
	Start() error
	Stop() error
	Abort(reason domain.SessionStateReason) error
}

// Dispatcher is the orchestration boundary between the global input tap
// and the recording session: it feeds every event through the hotkey
// processor, acts on the verdict, and answers the tap's intercept
// question. It must be driven from a single goroutine, matching the
// processor's event-stream contract.
type Dispatcher struct {
	processor *hotkey.Processor
	triggers  ports.TriggerSource
	recorder  Recorder
	sounds    ports.SoundPlayer
	events    ports.EventSink
	log       *slog.Logger

	recordingStartedAt time.Time
}

func NewDispatcher(
	triggers ports.TriggerSource,
	recorder Recorder,
	sounds ports.SoundPlayer,
	events ports.EventSink,
	log *slog.Logger,
) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{
		processor: hotkey.NewProcessor(),
		triggers:  triggers,
		recorder:  recorder,
		sounds:    sounds,
		events:    events,
		log:       log,
	}
}

// HandleKey implements ports.KeyHandler.
func (d *Dispatcher) HandleKey(chord hotkey.Chord, now time.Time) bool {
	trigger := d.triggers.Trigger()

	wasLocked := d.processor.Locked()
	verdict := d.processor.Process(chord, trigger, now)
	if !wasLocked && d.processor.Locked() {
		d.log.Debug("recording locked hands-free")
		d.events.SessionStateChanged(domain.SessionStateRecording, domain.SessionReasonRecordingLocked)
	}

	d.act(verdict, trigger, now)
	return intercept(verdict, trigger)
}

// HandleMouseClick implements ports.KeyHandler. Clicks are never swallowed.
func (d *Dispatcher) HandleMouseClick(now time.Time) bool {
	trigger := d.triggers.Trigger()
	d.act(d.processor.ProcessMouseClick(trigger, now), trigger, now)
	return false
}

func (d *Dispatcher) act(verdict hotkey.Verdict, trigger hotkey.Config, now time.Time) {
	switch verdict {
	case hotkey.VerdictStart:
		d.recordingStartedAt = now
		d.sounds.RecordingStarted()
		if err := d.recorder.Start(); err != nil {
			d.log.Error("failed to start recording", "error", err)
			d.events.SessionError(domain.ErrorCodeAudioStream, err.Error())
		}

	case hotkey.VerdictStop:
		// The verdict decides audibility; the duration check below alone
		// decides whether the audio is worth transcribing.
		d.sounds.RecordingStopped()
		if hotkey.Decide(trigger, d.recordingStartedAt, now) == hotkey.DecisionDiscardTooShort {
			if err := d.recorder.Abort(domain.SessionReasonRecordingTooShort); err != nil {
				d.logAbortErr(err)
			}
			return
		}
		if err := d.recorder.Stop(); err != nil {
			d.logAbortErr(err)
		}

	case hotkey.VerdictCancel:
		d.sounds.RecordingCancelled()
		if err := d.recorder.Abort(domain.SessionReasonRecordingCancelled); err != nil {
			d.logAbortErr(err)
		}

	case hotkey.VerdictDiscard:
		// Silent: the gesture was spurious and its keys must reach the
		// foreground application untouched.
		if err := d.recorder.Abort(domain.SessionReasonRecordingDiscarded); err != nil {
			d.logAbortErr(err)
		}
	}
}

func (d *Dispatcher) logAbortErr(err error) {
	if errors.Is(err, ErrNoActiveSession) {
		return
	}
	d.log.Error("recorder action failed", "error", err)
}

// intercept is the OS event-tap policy for a verdict. Start and Cancel
// consume their trigger; Discard never does (Option+A must still produce
// an accented character downstream); Stop follows the trigger's own
// matching rule, since bare modifiers must never block normal typing. A
// double-tap-only trigger passes its Start/Stop keystrokes through so
// single holds type normally.
func intercept(verdict hotkey.Verdict, trigger hotkey.Config) bool {
	switch verdict {
	case hotkey.VerdictStart:
		return !trigger.DoubleTapOnly
	case hotkey.VerdictStop:
		return !trigger.DoubleTapOnly && !trigger.IsModifierOnly()
	case hotkey.VerdictCancel:
		return true
	default:
		return false
	}
}
