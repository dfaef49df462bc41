package deepgram

import (
	"errors"
	"testing"

	"github.com/gorilla/websocket"

	"pushmic/internal/domain"
)

func TestParseMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		payload  string
		wantText string
		wantKind domain.TranscriptKind
		wantOK   bool
		wantErr  bool
	}{
		{
			name:     "interim result",
			payload:  `{"is_final":false,"channel":{"alternatives":[{"transcript":"hello wor"}]}}`,
			wantText: "hello wor",
			wantKind: domain.TranscriptKindPartial,
			wantOK:   true,
		},
		{
			name:     "final result",
			payload:  `{"is_final":true,"channel":{"alternatives":[{"transcript":" hello world "}]}}`,
			wantText: "hello world",
			wantKind: domain.TranscriptKindFinal,
			wantOK:   true,
		},
		{
			name:     "speech final counts as final",
			payload:  `{"is_final":false,"speech_final":true,"channel":{"alternatives":[{"transcript":"done"}]}}`,
			wantText: "done",
			wantKind: domain.TranscriptKindFinal,
			wantOK:   true,
		},
		{
			name:    "empty transcript skipped",
			payload: `{"channel":{"alternatives":[{"transcript":"   "}]}}`,
		},
		{
			name:    "metadata frame skipped",
			payload: `{"type":"Metadata","duration":1.5}`,
		},
		{
			name:    "non-json frame skipped",
			payload: `not json`,
		},
		{
			name:    "error frame is fatal",
			payload: `{"type":"Error","message":"bad model"}`,
			wantErr: true,
		},
		{
			name:    "error frame without message is fatal",
			payload: `{"type":"error"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			event, ok, err := parseMessage([]byte(tt.payload))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected a fatal error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if event.Text != tt.wantText {
				t.Fatalf("text = %q, want %q", event.Text, tt.wantText)
			}
			if event.Kind != tt.wantKind {
				t.Fatalf("kind = %s, want %s", event.Kind, tt.wantKind)
			}
		})
	}
}

// unstartedSession builds a session with its channels wired but no
// websocket loops running, for exercising the send/close handshake.
func unstartedSession(audioBuffer int) *session {
	return &session{
		audio:      make(chan []byte, audioBuffer),
		done:       make(chan struct{}),
		sendClosed: make(chan struct{}),
	}
}

func TestSessionSendAudioAfterCloseSend(t *testing.T) {
	t.Parallel()

	s := unstartedSession(1)
	if err := s.CloseSend(); err != nil {
		t.Fatalf("CloseSend: %v", err)
	}
	if err := s.SendAudio([]byte("x")); err == nil {
		t.Fatal("expected closed error")
	}
}

func TestSessionCloseSendUnblocksPendingSend(t *testing.T) {
	t.Parallel()

	s := unstartedSession(0)

	sent := make(chan error, 1)
	go func() { sent <- s.SendAudio([]byte("x")) }()

	if err := s.CloseSend(); err != nil {
		t.Fatalf("CloseSend: %v", err)
	}
	if err := <-sent; err == nil {
		t.Fatal("expected the blocked send to fail after CloseSend")
	}
}

func TestSessionSendAudioIgnoresEmptyChunk(t *testing.T) {
	t.Parallel()

	s := unstartedSession(0)
	if err := s.SendAudio(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSessionCloseSendIsIdempotent(t *testing.T) {
	t.Parallel()

	s := unstartedSession(1)
	if err := s.CloseSend(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.CloseSend(); err != nil {
		t.Fatalf("unexpected second error: %v", err)
	}
}

func TestSessionSetErrIgnoresNormalClose(t *testing.T) {
	t.Parallel()

	s := &session{}
	s.setErr(&websocket.CloseError{Code: websocket.CloseNormalClosure, Text: "closed"})
	if s.firstErr() != nil {
		t.Fatal("expected normal close to be ignored")
	}

	s.setErr(errors.New("boom"))
	if s.firstErr() == nil || s.firstErr().Error() != "boom" {
		t.Fatal("expected non-close error to be captured")
	}
}

func TestSessionSetErrFirstWins(t *testing.T) {
	t.Parallel()

	s := &session{}
	s.setErr(errors.New("first"))
	s.setErr(errors.New("second"))
	if s.firstErr() == nil || s.firstErr().Error() != "first" {
		t.Fatal("expected first error to win")
	}
}
