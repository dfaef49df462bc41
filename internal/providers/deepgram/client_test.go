package deepgram

import (
	"context"
	"strings"
	"testing"

	"pushmic/internal/ports"
)

func TestNewProviderDefaults(t *testing.T) {
	t.Parallel()

	p := NewProvider(Config{}, nil)
	if p.cfg.APIBaseURL != "https://api.deepgram.com/v1" {
		t.Fatalf("unexpected base url: %q", p.cfg.APIBaseURL)
	}
	if p.cfg.Model != "nova-2" {
		t.Fatalf("unexpected model: %q", p.cfg.Model)
	}
}

func TestStartStreamingRequiresAPIKey(t *testing.T) {
	t.Parallel()

	p := NewProvider(Config{APIKey: "   "}, nil)
	if _, err := p.StartStreaming(context.Background(), ports.StreamingConfig{}); err == nil {
		t.Fatal("expected missing key error")
	}
}

func TestListenURLDefaults(t *testing.T) {
	t.Parallel()

	endpoint, err := listenURL(Config{APIBaseURL: "https://api.deepgram.com/v1", Model: "nova-2"}, ports.StreamingConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"wss://api.deepgram.com/v1/listen",
		"encoding=linear16",
		"sample_rate=16000",
		"channels=1",
		"model=nova-2",
	} {
		if !strings.Contains(endpoint, want) {
			t.Fatalf("url %s missing %q", endpoint, want)
		}
	}
}

func TestListenURLWithLanguageAndSmartFormat(t *testing.T) {
	t.Parallel()

	endpoint, err := listenURL(
		Config{APIBaseURL: "http://localhost:8080/v1", Model: "m", Language: "en-US", SmartFormat: true},
		ports.StreamingConfig{Encoding: "linear16", SampleRate: 8000, Channels: 2, InterimResults: true},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"ws://localhost:8080/v1/listen",
		"language=en-US",
		"smart_format=true",
		"interim_results=true",
		"sample_rate=8000",
	} {
		if !strings.Contains(endpoint, want) {
			t.Fatalf("url %s missing %q", endpoint, want)
		}
	}
}

func TestListenURLInvalidBase(t *testing.T) {
	t.Parallel()

	if _, err := listenURL(Config{APIBaseURL: ":// bad"}, ports.StreamingConfig{}); err == nil {
		t.Fatal("expected invalid base url error")
	}
}
