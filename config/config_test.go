package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if *cfg != *def {
		t.Fatalf("cfg = %+v, want defaults %+v", cfg, def)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("threshold_seconds: 8\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ThresholdSeconds != 8 {
		t.Fatalf("threshold = %d, want 8", cfg.ThresholdSeconds)
	}
	// Untouched keys keep their defaults.
	if cfg.ListenAddr != Default().ListenAddr {
		t.Fatalf("listen_addr = %q, want default", cfg.ListenAddr)
	}
}

func TestLoadRejectsBadThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("threshold_seconds: 7\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for threshold outside the allowed set")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := Default()
	cfg.ThresholdSeconds = 15
	cfg.Notifications = false
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *cfg {
		t.Fatalf("round trip: got %+v, want %+v", got, cfg)
	}
}

func TestValidThreshold(t *testing.T) {
	for _, s := range AllowedThresholds {
		if !ValidThreshold(s) {
			t.Fatalf("ValidThreshold(%d) = false", s)
		}
	}
	for _, s := range []int{0, -5, 7, 60} {
		if ValidThreshold(s) {
			t.Fatalf("ValidThreshold(%d) = true", s)
		}
	}
}
