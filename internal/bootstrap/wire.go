// Package bootstrap assembles the runtime dependency graph.
package bootstrap

import (
	"log/slog"

	"pushmic/internal/audio"
	"pushmic/internal/clipboard"
	"pushmic/internal/config"
	"pushmic/internal/input"
	"pushmic/internal/notify"
	"pushmic/internal/ports"
	"pushmic/internal/providers/deepgram"
	"pushmic/internal/rules"
	"pushmic/internal/usecase"
)

// Services is the assembled runtime graph.
type Services struct {
	Store      *config.Store
	Controller *usecase.SessionController
	Recorder   *usecase.AsyncRecorder
	Dispatcher *usecase.Dispatcher
	Input      *input.Source
	Capture    *audio.Capture
	Sounds     *notify.Sounds
	Config     config.Config
}

// Build wires all backend dependencies for the current runtime. The event
// sink is supplied by the caller so observers stay decoupled from wiring.
// quiet silences the audible recording cues.
func Build(configPath string, quiet bool, events ports.EventSink, log *slog.Logger) (Services, error) {
	if log == nil {
		log = slog.Default()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return Services{}, err
	}

	store, err := config.NewStore(cfg, configPath, log)
	if err != nil {
		return Services{}, err
	}

	rulesEngine, err := rules.Load(cfg.Rules.Path, cfg.Rules.IterationLimit)
	if err != nil {
		return Services{}, err
	}

	capture := audio.NewCapture(log)
	provider := deepgram.NewProvider(deepgram.Config{
		APIKey:      cfg.Deepgram.APIKey,
		APIBaseURL:  cfg.Deepgram.APIBaseURL,
		Model:       cfg.Deepgram.Model,
		Language:    cfg.Deepgram.Language,
		SmartFormat: cfg.Deepgram.SmartFormat,
	}, log)

	controller := usecase.NewSessionController(
		capture,
		provider,
		rulesEngine,
		clipboard.NewSystem(),
		events,
		log,
		usecase.Config{
			Audio: ports.AudioConfig{
				SampleRate:  cfg.Audio.SampleRate,
				Channels:    cfg.Audio.Channels,
				InputDevice: cfg.Audio.InputDevice,
			},
			Streaming: ports.StreamingConfig{
				SampleRate:     cfg.Audio.SampleRate,
				Channels:       cfg.Audio.Channels,
				Encoding:       "linear16",
				InterimResults: true,
			},
			ChunkSize:      cfg.Session.ChunkSize,
			StreamingGrace: cfg.Session.StreamingGrace(),
		},
	)

	sounds := notify.NewSounds(!quiet)
	recorder := usecase.NewAsyncRecorder(controller, log)
	dispatcher := usecase.NewDispatcher(store, recorder, sounds, events, log)

	source := input.NewSource(store, log)
	store.OnReload(func(config.Config) { source.NotifyReload() })

	return Services{
		Store:      store,
		Controller: controller,
		Recorder:   recorder,
		Dispatcher: dispatcher,
		Input:      source,
		Capture:    capture,
		Sounds:     sounds,
		Config:     cfg,
	}, nil
}
