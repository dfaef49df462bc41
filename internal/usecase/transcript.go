package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"pushmic/internal/domain"
	"pushmic/internal/ports"
)

// transcriptAssembler accumulates provider events into one raw transcript.
// Providers emit overlapping partial and final segments; the assembler
// joins the finals and falls back to the last spoken partial when the
// stream ends before a final arrives.
type transcriptAssembler struct {
	mu         sync.Mutex
	finals     []string
	lastSpoken string
}

func newTranscriptAssembler() *transcriptAssembler {
	return &transcriptAssembler{}
}

func (a *transcriptAssembler) Observe(event domain.TranscriptEvent) {
	text := strings.TrimSpace(event.Text)
	if text == "" {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastSpoken = text
	if event.Kind == domain.TranscriptKindFinal {
		a.finals = append(a.finals, text)
	}
}

func (a *transcriptAssembler) Transcript() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	joined := strings.TrimSpace(strings.Join(a.finals, " "))
	switch {
	case joined == "":
		return a.lastSpoken
	case a.lastSpoken == "" || strings.HasSuffix(joined, a.lastSpoken):
		return joined
	case len(a.lastSpoken) > len(joined):
		return strings.TrimSpace(joined + " " + a.lastSpoken)
	default:
		return joined
	}
}

func consumeTranscriptEvents(
	session ports.StreamingSession,
	assembler *transcriptAssembler,
	events ports.EventSink,
	done chan struct{},
) {
	defer close(done)

	for event := range session.Events() {
		text := strings.TrimSpace(event.Text)
		if text == "" {
			continue
		}
		assembler.Observe(event)
		if event.Kind == domain.TranscriptKindPartial {
			events.PartialTranscript(text)
		}
	}
}

// pumpAudio copies capture chunks into the provider stream until the
// capture drains or either side fails.
func pumpAudio(
	audio ports.AudioSession,
	stream ports.StreamingSession,
	chunkSize int,
	events ports.EventSink,
	done chan struct{},
) {
	defer close(done)

	if chunkSize < 256 {
		chunkSize = 4096
	}

	buf := make([]byte, chunkSize)
	for {
		n, err := audio.Read(buf)
		if n > 0 {
			if sendErr := stream.SendAudio(buf[:n]); sendErr != nil {
				events.SessionError(domain.ErrorCodeAudioStream, fmt.Sprintf("failed to stream audio: %v", sendErr))
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				events.SessionError(domain.ErrorCodeAudioStream, fmt.Sprintf("audio capture error: %v", err))
			}
			return
		}
	}
}

func waitForStream(session ports.StreamingSession, timeout time.Duration) error {
	done := make(chan error, 1)
	go func() {
		done <- session.Wait()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		_ = session.Close()
		return <-done
	}
}

// transcriptFinalizer post-processes a raw transcript: rules first, then
// the clipboard. A clipboard failure is non-fatal; the transcript is still
// returned.
type transcriptFinalizer struct {
	rules     ports.RulesEngine
	clipboard ports.Clipboard
	events    ports.EventSink
}

func newTranscriptFinalizer(rules ports.RulesEngine, clipboard ports.Clipboard, events ports.EventSink) transcriptFinalizer {
	return transcriptFinalizer{rules: rules, clipboard: clipboard, events: events}
}

func (f transcriptFinalizer) Finalize(ctx context.Context, sessionID string, raw string) (domain.StopResult, domain.SessionStateReason, error) {
	transformed, err := f.rules.Apply(raw)
	if err != nil {
		f.events.SessionError(domain.ErrorCodeRules, err.Error())
		return domain.StopResult{}, domain.SessionReasonRulesFailed, err
	}

	result := domain.StopResult{
		SessionID:       sessionID,
		RawTranscript:   raw,
		FinalTranscript: transformed,
		Copied:          true,
	}
	reason := domain.SessionReasonTranscriptCopied

	if err := f.clipboard.SetText(ctx, transformed); err != nil {
		result.Copied = false
		reason = domain.SessionReasonClipboardFailed
		f.events.SessionError(domain.ErrorCodeClipboard, "transcript ready but clipboard write failed")
	}

	return result, reason, nil
}
