package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pushmic/internal/hotkey"
)

func TestParseTrigger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		definition string
		wantKey    hotkey.Key
		wantMods   []hotkey.Modifier
	}{
		{
			name:       "sided modifier",
			definition: "right option",
			wantMods:   []hotkey.Modifier{{Kind: hotkey.ModOption, Side: hotkey.SideRight}},
		},
		{
			name:       "unsided modifier",
			definition: "fn",
			wantMods:   []hotkey.Modifier{{Kind: hotkey.ModFn, Side: hotkey.SideEither}},
		},
		{
			name:       "chorded with named key",
			definition: "cmd+shift+space",
			wantKey:    hotkey.KeySpace,
			wantMods: []hotkey.Modifier{
				{Kind: hotkey.ModCommand, Side: hotkey.SideEither},
				{Kind: hotkey.ModShift, Side: hotkey.SideEither},
			},
		},
		{
			name:       "chorded with letter key",
			definition: "ctrl+d",
			wantKey:    hotkey.Key("d"),
			wantMods:   []hotkey.Modifier{{Kind: hotkey.ModControl, Side: hotkey.SideEither}},
		},
		{
			name:       "aliases and mixed case",
			definition: "Left Alt + Enter",
			wantKey:    hotkey.KeyReturn,
			wantMods:   []hotkey.Modifier{{Kind: hotkey.ModOption, Side: hotkey.SideLeft}},
		},
		{
			name:       "two sided modifiers",
			definition: "left cmd+right shift",
			wantMods: []hotkey.Modifier{
				{Kind: hotkey.ModCommand, Side: hotkey.SideLeft},
				{Kind: hotkey.ModShift, Side: hotkey.SideRight},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := ParseTrigger(tt.definition)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, cfg.Key)
			assert.ElementsMatch(t, tt.wantMods, []hotkey.Modifier(cfg.Modifiers))
		})
	}
}

func TestParseTriggerErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		definition string
	}{
		{"empty", ""},
		{"blank part", "cmd++space"},
		{"bare key", "space"},
		{"two keys", "cmd+a+b"},
		{"sided key", "left space+cmd"},
		{"unknown part", "hyper+space"},
		{"escape reserved", "cmd+escape"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseTrigger(tt.definition)
			require.Error(t, err)
		})
	}
}
