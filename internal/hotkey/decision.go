package hotkey

import "time"

// Decision is the transcribe-or-discard outcome for a stopped recording.
type Decision string

const (
	DecisionTranscribe      Decision = "proceed_to_transcription"
	DecisionDiscardTooShort Decision = "discard_too_short"
)

// Decide re-validates the elapsed recording duration against the trigger's
// release floor. It is a second, independent check at the orchestration
// boundary so that any stop path not mediated by the Processor (e.g. a
// programmatic stop) still applies the same minimum-duration policy before
// spending effort on transcription.
func Decide(cfg Config, recordingStartedAt, now time.Time) Decision {
	if now.Sub(recordingStartedAt) >= cfg.ReleaseFloor() {
		return DecisionTranscribe
	}
	return DecisionDiscardTooShort
}
