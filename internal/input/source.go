// Package input delivers global keyboard events to the recording
// dispatcher by registering the configured trigger as a system hotkey.
//
// A registered hotkey only reports its own chord going down and up, so
// this source synthesizes the full-chord transitions the dispatcher
// expects: the exact trigger chord on Keydown and an empty chord on
// Keyup. Extraneous keystrokes, Escape, and mouse clicks are invisible
// to it; platforms with a real event tap can provide a richer source
// behind the same interface.
package input

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.design/x/hotkey"

	hk "pushmic/internal/hotkey"
	"pushmic/internal/ports"
)

// Source implements ports.InputSource with golang.design/x/hotkey.
type Source struct {
	triggers ports.TriggerSource
	log      *slog.Logger
	reload   chan struct{}
}

func NewSource(triggers ports.TriggerSource, log *slog.Logger) *Source {
	if log == nil {
		log = slog.Default()
	}
	return &Source{
		triggers: triggers,
		log:      log,
		reload:   make(chan struct{}, 1),
	}
}

// NotifyReload makes Run re-register the hotkey from the current trigger.
// Call it after a configuration reload.
func (s *Source) NotifyReload() {
	select {
	case s.reload <- struct{}{}:
	default:
	}
}

// Run registers the trigger and forwards its transitions to the handler
// until ctx is done. The registration is renewed on NotifyReload.
func (s *Source) Run(ctx context.Context, handler ports.KeyHandler) error {
	for {
		trigger := s.triggers.Trigger()
		registered, err := register(trigger)
		if err != nil {
			return err
		}
		s.log.Info("hotkey registered", "trigger", trigger.String())

		again, err := s.listen(ctx, registered, trigger, handler)
		unregErr := registered.Unregister()
		if err != nil {
			return err
		}
		if unregErr != nil {
			s.log.Warn("failed to unregister hotkey", "error", unregErr)
		}
		if !again {
			return nil
		}
	}
}

// listen forwards transitions until ctx ends or a reload is requested.
// The second return value reports whether to re-register.
func (s *Source) listen(ctx context.Context, registered *hotkey.Hotkey, trigger hk.Config, handler ports.KeyHandler) (bool, error) {
	pressed := hk.Chord{Key: trigger.Key, Modifiers: trigger.Modifiers}

	for {
		select {
		case <-ctx.Done():
			return false, nil
		case <-s.reload:
			return true, nil
		case _, ok := <-registered.Keydown():
			if !ok {
				return false, nil
			}
			handler.HandleKey(pressed, time.Now())
		case _, ok := <-registered.Keyup():
			if !ok {
				return false, nil
			}
			handler.HandleKey(hk.Chord{}, time.Now())
		}
	}
}

func register(trigger hk.Config) (*hotkey.Hotkey, error) {
	mods, key, err := registration(trigger)
	if err != nil {
		return nil, err
	}
	registered := hotkey.New(mods, key)
	if err := registered.Register(); err != nil {
		return nil, fmt.Errorf("register hotkey %q: %w", trigger.String(), err)
	}
	return registered, nil
}

// registration converts the trigger into registrable codes. Modifier-only
// triggers cannot be registered; they need an event-tap source.
func registration(trigger hk.Config) ([]hotkey.Modifier, hotkey.Key, error) {
	if trigger.IsModifierOnly() {
		return nil, 0, fmt.Errorf("trigger %q has no key; modifier-only triggers need an event tap", trigger.String())
	}

	mods := make([]hotkey.Modifier, 0, len(trigger.Modifiers))
	for _, m := range trigger.Modifiers {
		mapped, ok := modifierMap[m.Kind]
		if !ok {
			return nil, 0, fmt.Errorf("modifier %q is not supported on this platform", m.Kind)
		}
		// Side pinning is not expressible in a registration; either side
		// activates.
		mods = append(mods, mapped)
	}

	key, ok := keyMap[trigger.Key]
	if !ok {
		return nil, 0, fmt.Errorf("key %q cannot be registered as a hotkey", trigger.Key)
	}
	return mods, key, nil
}
