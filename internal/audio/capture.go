// Package audio captures microphone input through PortAudio and exposes it
// as a stream of 16-bit little-endian PCM.
package audio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"

	"pushmic/internal/ports"
)

const framesPerBuffer = 1024

// Capture implements ports.AudioCapture on the default input device.
// PortAudio is initialized lazily on the first session and torn down by
// Terminate.
type Capture struct {
	log *slog.Logger

	initOnce sync.Once
	initErr  error
}

func NewCapture(log *slog.Logger) *Capture {
	if log == nil {
		log = slog.Default()
	}
	return &Capture{log: log}
}

func (c *Capture) Start(ctx context.Context, cfg ports.AudioConfig) (ports.AudioSession, error) {
	c.initOnce.Do(func() {
		c.initErr = portaudio.Initialize()
	})
	if c.initErr != nil {
		return nil, fmt.Errorf("initialize portaudio: %w", c.initErr)
	}

	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 16000
	}
	if cfg.Channels <= 0 {
		cfg.Channels = 1
	}

	frames := make([]int16, framesPerBuffer*cfg.Channels)
	stream, err := portaudio.OpenDefaultStream(cfg.Channels, 0, float64(cfg.SampleRate), framesPerBuffer, frames)
	if err != nil {
		return nil, fmt.Errorf("open input stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		_ = stream.Close()
		return nil, fmt.Errorf("start input stream: %w", err)
	}

	c.log.Debug("audio capture started", "sample_rate", cfg.SampleRate, "channels", cfg.Channels)

	pr, pw := io.Pipe()
	s := &captureSession{
		stream: stream,
		frames: frames,
		reader: pr,
		writer: pw,
		done:   make(chan struct{}),
	}
	go s.readLoop()
	go func() {
		select {
		case <-ctx.Done():
			_ = s.Stop()
		case <-s.done:
		}
	}()

	return s, nil
}

// Terminate releases PortAudio. Call once at shutdown.
func (c *Capture) Terminate() error {
	return portaudio.Terminate()
}

// captureSession streams one recording through an in-process pipe so the
// consumer sees a plain io.Reader that ends with io.EOF once Stop is called.
type captureSession struct {
	stream *portaudio.Stream
	frames []int16

	reader *io.PipeReader
	writer *io.PipeWriter

	mu      sync.Mutex
	stopped bool
	done    chan struct{}
}

func (s *captureSession) Read(p []byte) (int, error) {
	return s.reader.Read(p)
}

func (s *captureSession) readLoop() {
	defer close(s.done)

	for {
		if err := s.stream.Read(); err != nil {
			if s.isStopped() {
				s.writer.Close()
				return
			}
			// Transient overflows are dropped; anything else ends the
			// session and surfaces through the pipe.
			if err == portaudio.InputOverflowed {
				continue
			}
			s.writer.CloseWithError(fmt.Errorf("read audio frames: %w", err))
			return
		}
		if s.isStopped() {
			s.writer.Close()
			return
		}
		if _, err := s.writer.Write(encodePCM16(s.frames)); err != nil {
			// Reader side is gone.
			return
		}
	}
}

func (s *captureSession) isStopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

// Stop ends the capture. The pipe drains to io.EOF, the stream is closed,
// and remaining device buffers are discarded.
func (s *captureSession) Stop() error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.stopped = true
	s.mu.Unlock()

	err := s.stream.Stop()

	// Unblock a readLoop stuck in stream.Read, then wait for it to finish
	// before the stream handle is closed under it.
	select {
	case <-s.done:
	case <-time.After(500 * time.Millisecond):
		s.writer.Close()
	}

	if closeErr := s.stream.Close(); err == nil {
		err = closeErr
	}
	return err
}

func (s *captureSession) Close() error {
	err := s.Stop()
	_ = s.reader.Close()
	return err
}
