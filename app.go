package main

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"pushmic/internal/bootstrap"
	"pushmic/internal/domain"
	"pushmic/internal/notify"
)

// App owns the assembled services and observes session events, turning
// them into log lines and desktop notifications.
type App struct {
	log      *slog.Logger
	notifier *notify.Notifier

	services bootstrap.Services
}

func NewApp(configPath string, quiet bool, log *slog.Logger, notifier *notify.Notifier) (*App, error) {
	a := &App{log: log, notifier: notifier}

	services, err := bootstrap.Build(configPath, quiet, a, log)
	if err != nil {
		return nil, err
	}
	a.services = services

	a.SessionStateChanged(domain.SessionStateIdle, domain.SessionReasonReady)
	return a, nil
}

// Run blocks until ctx is done or the input source fails. The config
// watcher and the recorder worker run alongside the input loop.
func (a *App) Run(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return a.services.Store.Watch(ctx)
	})
	group.Go(func() error {
		a.services.Recorder.Run(ctx)
		return nil
	})
	group.Go(func() error {
		return a.services.Input.Run(ctx, a.services.Dispatcher)
	})

	err := group.Wait()
	if termErr := a.services.Capture.Terminate(); termErr != nil {
		a.log.Warn("failed to terminate audio", "error", termErr)
	}
	return err
}

// SessionStateChanged implements ports.EventSink.
func (a *App) SessionStateChanged(state domain.SessionState, reason domain.SessionStateReason) {
	a.log.Info(sessionReasonMessage(reason), "state", state, "reason", reason)
}

// PartialTranscript implements ports.EventSink.
func (a *App) PartialTranscript(text string) {
	a.log.Debug("partial transcript", "text", text)
}

// FinalTranscript implements ports.EventSink.
func (a *App) FinalTranscript(raw string, transformed string) {
	a.log.Info("final transcript", "raw", raw, "transformed", transformed)
	a.notifier.TranscriptReady(transformed)
}

// SessionError implements ports.EventSink.
func (a *App) SessionError(code domain.ErrorCode, detail string) {
	a.log.Error(errorMessage(code), "code", code, "detail", detail)
	a.notifier.Error(errorMessage(code))
}

func sessionReasonMessage(reason domain.SessionStateReason) string {
	switch reason {
	case domain.SessionReasonReady:
		return "ready"
	case domain.SessionReasonRecordingStarted:
		return "recording started"
	case domain.SessionReasonRecordingRestarted:
		return "recording restarted; previous capture discarded"
	case domain.SessionReasonRecordingLocked:
		return "recording locked hands-free"
	case domain.SessionReasonTranscribing:
		return "recording stopped, transcribing"
	case domain.SessionReasonTranscriptCopied:
		return "transcript copied to clipboard"
	case domain.SessionReasonClipboardFailed:
		return "transcript ready, clipboard write failed"
	case domain.SessionReasonRecordingCancelled:
		return "recording cancelled"
	case domain.SessionReasonRecordingDiscarded:
		return "recording discarded"
	case domain.SessionReasonRecordingTooShort:
		return "recording too short, discarded"
	case domain.SessionReasonNoTranscript:
		return "no transcript captured"
	case domain.SessionReasonTranscribeFailed:
		return "transcription failed"
	case domain.SessionReasonRulesFailed:
		return "rules processing failed"
	default:
		return "session state changed"
	}
}

func errorMessage(code domain.ErrorCode) string {
	switch code {
	case domain.ErrorCodeStartup:
		return "startup failed"
	case domain.ErrorCodeInput:
		return "input tap failed"
	case domain.ErrorCodeAudioStop:
		return "audio stop issue"
	case domain.ErrorCodeAudioStream:
		return "audio streaming issue"
	case domain.ErrorCodeTranscription:
		return "transcription error"
	case domain.ErrorCodeRules:
		return "rules processing failed"
	case domain.ErrorCodeClipboard:
		return "clipboard write failed"
	case domain.ErrorCodeConfigReload:
		return "configuration reload failed"
	default:
		return "unexpected error"
	}
}
