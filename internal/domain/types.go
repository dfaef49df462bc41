package domain

// SessionState models the push-to-talk lifecycle.
type SessionState string

const (
	SessionStateIdle      SessionState = "idle"
	SessionStateRecording SessionState = "recording"
	SessionStateStopping  SessionState = "stopping"
	SessionStateError     SessionState = "error"
)

// SessionStateReason provides a structured reason for state transitions.
type SessionStateReason string

const (
	SessionReasonReady              SessionStateReason = "ready"
	SessionReasonRecordingStarted   SessionStateReason = "recording_started"
	SessionReasonRecordingRestarted SessionStateReason = "recording_restarted"
	SessionReasonRecordingLocked    SessionStateReason = "recording_locked"
	SessionReasonTranscribing       SessionStateReason = "transcribing"
	SessionReasonTranscriptCopied   SessionStateReason = "transcript_copied"
	SessionReasonClipboardFailed    SessionStateReason = "transcript_clipboard_failed"
	SessionReasonRecordingCancelled SessionStateReason = "recording_cancelled"
	SessionReasonRecordingDiscarded SessionStateReason = "recording_discarded"
	SessionReasonRecordingTooShort  SessionStateReason = "recording_too_short"
	SessionReasonNoTranscript       SessionStateReason = "no_transcript"
	SessionReasonTranscribeFailed   SessionStateReason = "transcription_failed"
	SessionReasonRulesFailed        SessionStateReason = "rules_failed"
)

// ErrorCode identifies non-fatal and fatal backend errors.
type ErrorCode string

const (
	ErrorCodeStartup       ErrorCode = "startup"
	ErrorCodeInput         ErrorCode = "input"
	ErrorCodeAudioStop     ErrorCode = "audio_stop"
	ErrorCodeAudioStream   ErrorCode = "audio_stream"
	ErrorCodeTranscription ErrorCode = "transcription"
	ErrorCodeRules         ErrorCode = "rules"
	ErrorCodeClipboard     ErrorCode = "clipboard"
	ErrorCodeConfigReload  ErrorCode = "config_reload"
)

// TranscriptKind identifies whether a stream event is partial or final text.
type TranscriptKind string

const (
	TranscriptKindPartial TranscriptKind = "partial"
	TranscriptKindFinal   TranscriptKind = "final"
)

// TranscriptEvent is incremental transcription output from a provider.
type TranscriptEvent struct {
	Kind          TranscriptKind
	Text          string
	IsSpeechFinal bool
}

// StopResult is returned once a recording is stopped and its transcript
// has been processed.
type StopResult struct {
	SessionID       string
	RawTranscript   string
	FinalTranscript string
	Copied          bool
}

// Status summarizes the current runtime status.
type Status struct {
	State     SessionState
	SessionID string
	Active    bool
	Message   string
}
