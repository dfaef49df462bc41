package deepgram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"pushmic/internal/domain"
)

// keepAliveInterval keeps the websocket open during pauses in speech;
// Deepgram closes idle streams after ~10 seconds.
const keepAliveInterval = 5 * time.Second

// session is one live streaming transcription. Audio is funneled through a
// channel so the websocket only ever has a single writer, which the
// gorilla/websocket API requires.
type session struct {
	conn *websocket.Conn

	events chan domain.TranscriptEvent
	audio  chan []byte
	done   chan struct{}

	wg sync.WaitGroup

	errMu sync.Mutex
	err   error

	// sendClosed is closed by CloseSend instead of closing the audio
	// channel, so a concurrent SendAudio can never panic on a closed send.
	sendClosed chan struct{}

	closeSendOnce sync.Once
	closeOnce     sync.Once
}

func newSession(ctx context.Context, conn *websocket.Conn) *session {
	s := &session{
		conn:       conn,
		events:     make(chan domain.TranscriptEvent, 64),
		audio:      make(chan []byte, 32),
		done:       make(chan struct{}),
		sendClosed: make(chan struct{}),
	}

	s.wg.Add(2)
	go s.readLoop()
	go s.writeLoop()
	go func() {
		s.wg.Wait()
		close(s.events)
		close(s.done)
		_ = conn.Close()
	}()

	go func() {
		select {
		case <-ctx.Done():
			_ = s.Close()
		case <-s.done:
		}
	}()

	return s
}

func (s *session) SendAudio(chunk []byte) error {
	if len(chunk) == 0 {
		return nil
	}

	// Checked up front so a send after CloseSend fails even when the
	// audio buffer still has room.
	select {
	case <-s.sendClosed:
		return errors.New("audio stream is already closed")
	default:
	}

	copied := append([]byte(nil), chunk...)
	select {
	case s.audio <- copied:
		return nil
	case <-s.sendClosed:
		return errors.New("audio stream is already closed")
	case <-s.done:
		if err := s.firstErr(); err != nil {
			return err
		}
		return errors.New("session closed")
	}
}

func (s *session) CloseSend() error {
	s.closeSendOnce.Do(func() {
		close(s.sendClosed)
	})
	return nil
}

func (s *session) Events() <-chan domain.TranscriptEvent {
	return s.events
}

func (s *session) Wait() error {
	<-s.done
	return s.firstErr()
}

func (s *session) Close() error {
	s.closeOnce.Do(func() {
		_ = s.CloseSend()
		_ = s.conn.Close()
	})
	<-s.done
	return s.firstErr()
}

func (s *session) firstErr() error {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	return s.err
}

func (s *session) setErr(err error) {
	if err == nil {
		return
	}
	if websocket.IsCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseNoStatusReceived,
	) {
		return
	}

	s.errMu.Lock()
	defer s.errMu.Unlock()
	if s.err == nil {
		s.err = err
	}
}

// writeLoop is the websocket's only writer. It interleaves audio chunks
// with keepalive messages, then announces the end of the stream so the
// provider flushes its final results.
func (s *session) writeLoop() {
	defer s.wg.Done()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case chunk := <-s.audio:
			if err := s.conn.WriteMessage(websocket.BinaryMessage, chunk); err != nil {
				s.setErr(fmt.Errorf("send audio: %w", err))
				return
			}

		case <-s.sendClosed:
			if err := s.flushAudio(); err != nil {
				s.setErr(fmt.Errorf("send audio: %w", err))
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"CloseStream"}`)); err != nil {
				s.setErr(fmt.Errorf("close stream: %w", err))
			}
			return

		case <-keepAlive.C:
			if err := s.conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"KeepAlive"}`)); err != nil {
				s.setErr(fmt.Errorf("send keepalive: %w", err))
				return
			}
		}
	}
}

// flushAudio writes whatever chunks were buffered before CloseSend fired.
func (s *session) flushAudio() error {
	for {
		select {
		case chunk := <-s.audio:
			if err := s.conn.WriteMessage(websocket.BinaryMessage, chunk); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (s *session) readLoop() {
	defer s.wg.Done()

	for {
		_, payload, err := s.conn.ReadMessage()
		if err != nil {
			s.setErr(fmt.Errorf("read provider event: %w", err))
			return
		}

		event, ok, fatalErr := parseMessage(payload)
		if fatalErr != nil {
			s.setErr(fatalErr)
			return
		}
		if ok {
			s.emit(event)
		}
	}
}

// emit never blocks the read loop: a full buffer drops the event, which is
// safe because every partial is superseded and finals are re-joined from
// the accumulated results.
func (s *session) emit(event domain.TranscriptEvent) {
	select {
	case s.events <- event:
	case <-s.done:
	default:
	}
}

type listenMessage struct {
	Type        string `json:"type"`
	Message     string `json:"message"`
	IsFinal     bool   `json:"is_final"`
	SpeechFinal bool   `json:"speech_final"`

	Channel struct {
		Alternatives []struct {
			Transcript string `json:"transcript"`
		} `json:"alternatives"`
	} `json:"channel"`
}

// parseMessage decodes one websocket payload. It returns the transcript
// event and whether one was produced, or a fatal stream error.
func parseMessage(payload []byte) (domain.TranscriptEvent, bool, error) {
	var msg listenMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		// Non-JSON frames are control noise; skip them.
		return domain.TranscriptEvent{}, false, nil
	}

	if strings.EqualFold(msg.Type, "Error") {
		detail := strings.TrimSpace(msg.Message)
		if detail == "" {
			detail = "deepgram returned an unknown error"
		}
		return domain.TranscriptEvent{}, false, errors.New(detail)
	}

	var transcript string
	if len(msg.Channel.Alternatives) > 0 {
		transcript = strings.TrimSpace(msg.Channel.Alternatives[0].Transcript)
	}
	if transcript == "" {
		return domain.TranscriptEvent{}, false, nil
	}

	event := domain.TranscriptEvent{
		Text:          transcript,
		IsSpeechFinal: msg.SpeechFinal,
		Kind:          domain.TranscriptKindPartial,
	}
	if msg.IsFinal || msg.SpeechFinal {
		event.Kind = domain.TranscriptKindFinal
	}
	return event, true, nil
}
