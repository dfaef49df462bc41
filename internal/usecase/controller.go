package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"pushmic/internal/domain"
	"pushmic/internal/ports"
)

var ErrNoActiveSession = errors.New("no active recording session")

// Config controls recording session behavior.
type Config struct {
	Audio          ports.AudioConfig
	Streaming      ports.StreamingConfig
	ChunkSize      int
	StreamingGrace time.Duration
}

// SessionController owns the capture/transcription session lifecycle.
// The input dispatcher drives it through the Recorder interface.
type SessionController struct {
	audio     ports.AudioCapture
	provider  ports.TranscriptionProvider
	events    ports.EventSink
	finalizer transcriptFinalizer
	log       *slog.Logger
	cfg       Config

	mu      sync.Mutex
	current *capture
}

func NewSessionController(
	audio ports.AudioCapture,
	provider ports.TranscriptionProvider,
	rules ports.RulesEngine,
	clipboard ports.Clipboard,
	events ports.EventSink,
	log *slog.Logger,
	cfg Config,
) *SessionController {
	if cfg.ChunkSize < 256 {
		cfg.ChunkSize = 4096
	}
	if log == nil {
		log = slog.Default()
	}
	return &SessionController{
		audio:     audio,
		provider:  provider,
		events:    events,
		finalizer: newTranscriptFinalizer(rules, clipboard, events),
		log:       log,
		cfg:       cfg,
	}
}

// Start begins a new capture/transcription session. An already-active
// session is torn down and its audio discarded, which is what a rapid
// double-tap needs: the second press restarts capture before the lock
// latches.
func (c *SessionController) Start(ctx context.Context) error {
	var previous *capture

	c.mu.Lock()
	if c.current != nil {
		previous = c.current
		c.current = nil
	}
	c.mu.Unlock()

	if previous != nil {
		c.teardown(previous)
	}

	sessionCtx, cancel := context.WithCancel(ctx)
	stream, err := c.provider.StartStreaming(sessionCtx, c.cfg.Streaming)
	if err != nil {
		cancel()
		return err
	}

	audioSession, err := c.audio.Start(sessionCtx, c.cfg.Audio)
	if err != nil {
		_ = stream.Close()
		cancel()
		return err
	}

	active := &capture{
		id:         uuid.NewString(),
		cancel:     cancel,
		audio:      audioSession,
		stream:     stream,
		state:      domain.SessionStateRecording,
		assembler:  newTranscriptAssembler(),
		eventsDone: make(chan struct{}),
		audioDone:  make(chan struct{}),
	}

	c.mu.Lock()
	c.current = active
	c.mu.Unlock()

	go consumeTranscriptEvents(active.stream, active.assembler, c.events, active.eventsDone)
	go pumpAudio(active.audio, active.stream, c.cfg.ChunkSize, c.events, active.audioDone)

	reason := domain.SessionReasonRecordingStarted
	if previous != nil {
		reason = domain.SessionReasonRecordingRestarted
	}
	c.log.Debug("recording started", "session", active.id, "reason", reason)
	c.events.SessionStateChanged(domain.SessionStateRecording, reason)
	return nil
}

// Stop ends the active session and returns the finalized transcript.
func (c *SessionController) Stop(ctx context.Context) (domain.StopResult, error) {
	active, err := c.getCurrent()
	if err != nil {
		return domain.StopResult{}, err
	}

	active.setState(domain.SessionStateStopping)
	c.events.SessionStateChanged(domain.SessionStateStopping, domain.SessionReasonTranscribing)

	if err := active.audio.Stop(); err != nil {
		c.events.SessionError(domain.ErrorCodeAudioStop, "failed to stop audio capture cleanly")
	}

	// Give the provider a moment to flush trailing words before the stream
	// is half-closed.
	if c.cfg.StreamingGrace > 0 {
		timer := time.NewTimer(c.cfg.StreamingGrace)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
		}
	}

	_ = active.stream.CloseSend()
	streamErr := waitForStream(active.stream, 4*time.Second)
	<-active.eventsDone
	<-active.audioDone

	raw := active.assembler.Transcript()
	if raw == "" && streamErr != nil {
		c.events.SessionError(domain.ErrorCodeTranscription, streamErr.Error())
		c.finish(active, domain.SessionStateError, domain.SessionReasonTranscribeFailed)
		return domain.StopResult{}, streamErr
	}
	if raw == "" {
		c.finish(active, domain.SessionStateIdle, domain.SessionReasonNoTranscript)
		return domain.StopResult{}, errors.New("no transcript captured")
	}

	result, reason, err := c.finalizer.Finalize(ctx, active.id, raw)
	if err != nil {
		c.finish(active, domain.SessionStateError, reason)
		return domain.StopResult{}, err
	}

	c.log.Info("transcript ready", "session", active.id, "copied", result.Copied)
	c.events.FinalTranscript(result.RawTranscript, result.FinalTranscript)
	c.finish(active, domain.SessionStateIdle, reason)
	return result, nil
}

// Abort cancels and discards the active session without transcription.
// The reason distinguishes an explicit cancel, a spurious-gesture discard,
// and a too-short recording.
func (c *SessionController) Abort(reason domain.SessionStateReason) error {
	active, err := c.getCurrent()
	if err != nil {
		return err
	}

	c.teardown(active)
	c.log.Debug("recording aborted", "session", active.id, "reason", reason)
	c.finish(active, domain.SessionStateIdle, reason)
	return nil
}

// Status returns the current backend status.
func (c *SessionController) Status() domain.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return domain.Status{State: domain.SessionStateIdle, Active: false}
	}
	state := c.current.getState()
	return domain.Status{
		State:     state,
		SessionID: c.current.id,
		Active:    state != domain.SessionStateIdle,
	}
}

func (c *SessionController) getCurrent() (*capture, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil, ErrNoActiveSession
	}
	return c.current, nil
}

func (c *SessionController) teardown(active *capture) {
	active.cancel()
	_ = active.audio.Stop()
	_ = active.stream.Close()
	<-active.eventsDone
	<-active.audioDone
}

func (c *SessionController) finish(active *capture, state domain.SessionState, reason domain.SessionStateReason) {
	active.cancel()
	active.setState(state)

	c.mu.Lock()
	if c.current == active {
		c.current = nil
	}
	c.mu.Unlock()

	c.events.SessionStateChanged(state, reason)
}
