//go:build linux

package input

import (
	"golang.design/x/hotkey"

	hk "pushmic/internal/hotkey"
)

// Alt is Mod1 and Super is Mod4 on X11. Fn never reaches the X server.
var modifierMap = map[hk.ModifierKind]hotkey.Modifier{
	hk.ModControl: hotkey.ModCtrl,
	hk.ModShift:   hotkey.ModShift,
	hk.ModOption:  hotkey.Mod1,
	hk.ModCommand: hotkey.Mod4,
}
