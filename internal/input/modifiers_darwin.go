//go:build darwin

package input

import (
	"golang.design/x/hotkey"

	hk "pushmic/internal/hotkey"
)

var modifierMap = map[hk.ModifierKind]hotkey.Modifier{
	hk.ModControl: hotkey.ModCtrl,
	hk.ModShift:   hotkey.ModShift,
	hk.ModOption:  hotkey.ModOption,
	hk.ModCommand: hotkey.ModCmd,
}
