package usecase

import (
	"sync"

	"pushmic/internal/domain"
	"pushmic/internal/ports"
)

// capture is one live recording session.
type capture struct {
	id     string
	cancel func()
	audio  ports.AudioSession
	stream ports.StreamingSession

	stateMu sync.Mutex
	state   domain.SessionState

	assembler  *transcriptAssembler
	eventsDone chan struct{}
	audioDone  chan struct{}
}

func (s *capture) setState(state domain.SessionState) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.state = state
}

func (s *capture) getState() domain.SessionState {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.state
}
