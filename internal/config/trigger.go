package config

import (
	"errors"
	"fmt"
	"strings"

	"pushmic/internal/hotkey"
)

var modifierKinds = map[string]hotkey.ModifierKind{
	"cmd":     hotkey.ModCommand,
	"command": hotkey.ModCommand,
	"meta":    hotkey.ModCommand,
	"super":   hotkey.ModCommand,
	"win":     hotkey.ModCommand,
	"opt":     hotkey.ModOption,
	"option":  hotkey.ModOption,
	"alt":     hotkey.ModOption,
	"ctrl":    hotkey.ModControl,
	"control": hotkey.ModControl,
	"shift":   hotkey.ModShift,
	"fn":      hotkey.ModFn,
}

var keyNames = map[string]hotkey.Key{
	"space":  hotkey.KeySpace,
	"escape": hotkey.KeyEscape,
	"esc":    hotkey.KeyEscape,
	"return": hotkey.KeyReturn,
	"enter":  hotkey.KeyReturn,
	"tab":    hotkey.KeyTab,
}

// ParseTrigger turns a trigger definition like "right option" or
// "cmd+shift+space" into a hotkey configuration. Parts are joined with
// "+"; a modifier may carry a "left" or "right" prefix; at most one
// non-modifier part is allowed and becomes the chord key.
func ParseTrigger(definition string) (hotkey.Config, error) {
	parts := strings.Split(definition, "+")

	var mods []hotkey.Modifier
	var key hotkey.Key

	for _, raw := range parts {
		part := strings.ToLower(strings.TrimSpace(raw))
		if part == "" {
			return hotkey.Config{}, errors.New("trigger has an empty part")
		}

		side := hotkey.SideEither
		if rest, ok := strings.CutPrefix(part, "left "); ok {
			side = hotkey.SideLeft
			part = strings.TrimSpace(rest)
		} else if rest, ok := strings.CutPrefix(part, "right "); ok {
			side = hotkey.SideRight
			part = strings.TrimSpace(rest)
		}

		if kind, ok := modifierKinds[part]; ok {
			mods = append(mods, hotkey.NewModifier(kind, side))
			continue
		}

		if side != hotkey.SideEither {
			return hotkey.Config{}, fmt.Errorf("%q: only modifiers have sides", raw)
		}

		parsed, err := parseKey(part)
		if err != nil {
			return hotkey.Config{}, err
		}
		if key != hotkey.KeyNone {
			return hotkey.Config{}, fmt.Errorf("trigger has two keys: %q and %q", key, parsed)
		}
		key = parsed
	}

	if key == hotkey.KeyNone && len(mods) == 0 {
		return hotkey.Config{}, errors.New("empty trigger")
	}
	if key != hotkey.KeyNone && len(mods) == 0 {
		return hotkey.Config{}, fmt.Errorf("bare key %q cannot be a trigger; add a modifier", key)
	}

	return hotkey.Config{Key: key, Modifiers: hotkey.NewModifierSet(mods...)}, nil
}

func parseKey(part string) (hotkey.Key, error) {
	if named, ok := keyNames[part]; ok {
		if named == hotkey.KeyEscape {
			return hotkey.KeyNone, errors.New("escape is reserved for cancelling")
		}
		return named, nil
	}
	if len(part) == 1 && (isLetter(part[0]) || isDigit(part[0])) {
		return hotkey.Key(part), nil
	}
	return hotkey.KeyNone, fmt.Errorf("unknown trigger part %q", part)
}

func isLetter(b byte) bool { return b >= 'a' && b <= 'z' }
func isDigit(b byte) bool  { return b >= '0' && b <= '9' }
