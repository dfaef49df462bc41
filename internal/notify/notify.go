// Package notify provides the audible recording cues and desktop
// notifications.
package notify

import "github.com/gen2brain/beeep"

const appName = "pushmic"

// Sounds implements ports.SoundPlayer with short system beeps. A discarded
// recording has no cue on purpose: spurious gestures should be invisible.
type Sounds struct {
	enabled bool
}

func NewSounds(enabled bool) *Sounds {
	return &Sounds{enabled: enabled}
}

func (s *Sounds) Enabled() bool {
	return s.enabled
}

func (s *Sounds) RecordingStarted() {
	s.beep(880)
}

func (s *Sounds) RecordingStopped() {
	s.beep(440)
}

func (s *Sounds) RecordingCancelled() {
	s.beep(220)
}

func (s *Sounds) beep(freq float64) {
	if !s.enabled {
		return
	}
	// Cue failures are not worth surfacing.
	_ = beeep.Beep(freq, 120)
}

// Notifier shows desktop notifications for errors and transcripts.
type Notifier struct {
	enabled bool
}

func NewNotifier(enabled bool) *Notifier {
	return &Notifier{enabled: enabled}
}

func (n *Notifier) TranscriptReady(text string) {
	if len(text) > 100 {
		text = text[:100] + "..."
	}
	n.notify("Transcript copied", text)
}

func (n *Notifier) Error(message string) {
	n.notify("Error", message)
}

func (n *Notifier) notify(title, message string) {
	if !n.enabled {
		return
	}
	_ = beeep.Notify(appName+": "+title, message, "")
}
