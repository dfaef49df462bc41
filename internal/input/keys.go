package input

import (
	"golang.design/x/hotkey"

	hk "pushmic/internal/hotkey"
)

// keyMap converts trigger keys to registrable key codes. Escape is absent
// on purpose: it is reserved for cancelling a recording.
var keyMap = map[hk.Key]hotkey.Key{
	hk.KeySpace:  hotkey.KeySpace,
	hk.KeyReturn: hotkey.KeyReturn,
	hk.KeyTab:    hotkey.KeyTab,
	"a":          hotkey.KeyA,
	"b":          hotkey.KeyB,
	"c":          hotkey.KeyC,
	"d":          hotkey.KeyD,
	"e":          hotkey.KeyE,
	"f":          hotkey.KeyF,
	"g":          hotkey.KeyG,
	"h":          hotkey.KeyH,
	"i":          hotkey.KeyI,
	"j":          hotkey.KeyJ,
	"k":          hotkey.KeyK,
	"l":          hotkey.KeyL,
	"m":          hotkey.KeyM,
	"n":          hotkey.KeyN,
	"o":          hotkey.KeyO,
	"p":          hotkey.KeyP,
	"q":          hotkey.KeyQ,
	"r":          hotkey.KeyR,
	"s":          hotkey.KeyS,
	"t":          hotkey.KeyT,
	"u":          hotkey.KeyU,
	"v":          hotkey.KeyV,
	"w":          hotkey.KeyW,
	"x":          hotkey.KeyX,
	"y":          hotkey.KeyY,
	"z":          hotkey.KeyZ,
	"0":          hotkey.Key0,
	"1":          hotkey.Key1,
	"2":          hotkey.Key2,
	"3":          hotkey.Key3,
	"4":          hotkey.Key4,
	"5":          hotkey.Key5,
	"6":          hotkey.Key6,
	"7":          hotkey.Key7,
	"8":          hotkey.Key8,
	"9":          hotkey.Key9,
}
