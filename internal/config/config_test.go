package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pushmic/internal/hotkey"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultTrigger, cfg.Hotkey.Trigger)
	assert.Equal(t, 200, cfg.Hotkey.MinimumKeyTimeMS)
	assert.Equal(t, "nova-2", cfg.Deepgram.Model)
	assert.Equal(t, "https://api.deepgram.com/v1", cfg.Deepgram.APIBaseURL)
	assert.Equal(t, 16000, cfg.Audio.SampleRate)
	assert.Equal(t, 1, cfg.Audio.Channels)
	assert.Equal(t, 4096, cfg.Session.ChunkSize)
	assert.Equal(t, time.Second, cfg.Session.StreamingGrace())
}

func TestLoadAppliesMinimumKeyTimeFloor(t *testing.T) {
	path := writeConfig(t, `
[hotkey]
trigger = "cmd+shift+space"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	trigger, err := cfg.Hotkey.TriggerConfig()
	require.NoError(t, err)
	assert.Equal(t, 200*time.Millisecond, trigger.MinimumKeyTime)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
[hotkey]
trigger = "cmd+shift+space"
minimum_key_time_ms = 450
double_tap_only = true

[deepgram]
api_key = "dg-test"
model = "nova-3"

[audio]
sample_rate = 48000
channels = 2

[session]
chunk_size = 8192
streaming_grace_ms = 250
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "cmd+shift+space", cfg.Hotkey.Trigger)
	assert.True(t, cfg.Hotkey.DoubleTapOnly)
	assert.Equal(t, "dg-test", cfg.Deepgram.APIKey)
	assert.Equal(t, "nova-3", cfg.Deepgram.Model)
	assert.Equal(t, 48000, cfg.Audio.SampleRate)
	assert.Equal(t, 2, cfg.Audio.Channels)
	assert.Equal(t, 8192, cfg.Session.ChunkSize)
	assert.Equal(t, 250*time.Millisecond, cfg.Session.StreamingGrace())

	trigger, err := cfg.Hotkey.TriggerConfig()
	require.NoError(t, err)
	assert.Equal(t, hotkey.KeySpace, trigger.Key)
	assert.Equal(t, 450*time.Millisecond, trigger.MinimumKeyTime)
	assert.True(t, trigger.DoubleTapOnly)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[hotkey]
trigger = "left control"

[deepgram]
api_key = "from-file"
`)

	t.Setenv("PUSHMIC_TRIGGER", "right command")
	t.Setenv("DEEPGRAM_API_KEY", "from-env")
	t.Setenv("PUSHMIC_MINIMUM_KEY_TIME_MS", "600")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "right command", cfg.Hotkey.Trigger)
	assert.Equal(t, "from-env", cfg.Deepgram.APIKey)
	assert.Equal(t, 600, cfg.Hotkey.MinimumKeyTimeMS)
}

func TestLoadRejectsInvalidTrigger(t *testing.T) {
	path := writeConfig(t, `
[hotkey]
trigger = "middle option"
`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := writeConfig(t, `[hotkey`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestStoreServesAndReloadsTrigger(t *testing.T) {
	path := writeConfig(t, `
[hotkey]
trigger = "right option"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	store, err := NewStore(cfg, path, nil)
	require.NoError(t, err)

	trigger := store.Trigger()
	assert.Equal(t, hotkey.KeyNone, trigger.Key)
	assert.True(t, trigger.IsModifierOnly())

	var reloaded []Config
	store.OnReload(func(c Config) { reloaded = append(reloaded, c) })

	require.NoError(t, os.WriteFile(path, []byte(`
[hotkey]
trigger = "cmd+d"
minimum_key_time_ms = 500
`), 0o644))
	store.reload()

	trigger = store.Trigger()
	assert.Equal(t, hotkey.Key("d"), trigger.Key)
	assert.Equal(t, 500*time.Millisecond, trigger.MinimumKeyTime)
	require.Len(t, reloaded, 1)
	assert.Equal(t, "cmd+d", reloaded[0].Hotkey.Trigger)
}

func TestStoreKeepsPreviousConfigOnBadReload(t *testing.T) {
	path := writeConfig(t, `
[hotkey]
trigger = "right option"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	store, err := NewStore(cfg, path, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`
[hotkey]
trigger = "not a trigger at all"
`), 0o644))
	store.reload()

	assert.Equal(t, "right option", store.Config().Hotkey.Trigger)
	assert.True(t, store.Trigger().IsModifierOnly())
}
