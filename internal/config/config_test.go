package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolate points every XDG directory at a temporary location
func isolate(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(root, "cache"))
	for _, env := range []string{EnvDefaultDeck, EnvStateDB, EnvRevealDelay, EnvDeckLibrary} {
		t.Setenv(env, "")
	}
	return root
}

func TestLoadConfigCreatesDefaults(t *testing.T) {
	root := isolate(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.DefaultDeck != DefaultDeckName {
		t.Errorf("DefaultDeck = %q, want %q", cfg.DefaultDeck, DefaultDeckName)
	}
	if cfg.RevealDelay.Duration != DefaultRevealDelay {
		t.Errorf("RevealDelay = %v, want %v", cfg.RevealDelay, DefaultRevealDelay)
	}
	if want := filepath.Join(root, "state", "tarotdraw", "state.db"); cfg.StateDB != want {
		t.Errorf("StateDB = %q, want %q", cfg.StateDB, want)
	}

	data, err := os.ReadFile(GetConfigFilePath())
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if !strings.Contains(string(data), `default_deck = "emoji"`) {
		t.Errorf("config file = %q", data)
	}
	if !strings.Contains(string(data), `reveal_delay = "800ms"`) {
		t.Errorf("config file = %q", data)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	isolate(t)

	path := GetConfigFilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	contents := "default_deck = \"rider-waite\"\nstate_db = \"/tmp/tarot.db\"\nreveal_delay = \"2s\"\n"
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DefaultDeck != "rider-waite" || cfg.StateDB != "/tmp/tarot.db" || cfg.RevealDelay.Duration != 2*time.Second {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoadConfigMissingDelayUsesDefault(t *testing.T) {
	isolate(t)

	path := GetConfigFilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("default_deck = \"emoji\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.RevealDelay.Duration != DefaultRevealDelay {
		t.Errorf("RevealDelay = %v, want %v", cfg.RevealDelay, DefaultRevealDelay)
	}
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv(EnvDefaultDeck, "rider-waite")
	t.Setenv(EnvStateDB, "/tmp/other.db")
	t.Setenv(EnvRevealDelay, "0s")
	t.Setenv(EnvDeckLibrary, "/srv/decks")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DefaultDeck != "rider-waite" || cfg.StateDB != "/tmp/other.db" || cfg.RevealDelay.Duration != 0 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if got := GetDeckLibraryPath(); got != "/srv/decks" {
		t.Errorf("GetDeckLibraryPath = %q", got)
	}

	// Overrides are never written back
	data, _ := os.ReadFile(GetConfigFilePath())
	if strings.Contains(string(data), "rider-waite") {
		t.Errorf("env override leaked into config file: %q", data)
	}
}

func TestInvalidRevealDelay(t *testing.T) {
	isolate(t)
	t.Setenv(EnvRevealDelay, "soon")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected an error for an invalid delay")
	}
}

func TestSetDefaultDeck(t *testing.T) {
	isolate(t)

	if err := SetDefaultDeck("rider-waite"); err != nil {
		t.Fatal(err)
	}
	deck, err := GetDefaultDeck()
	if err != nil {
		t.Fatal(err)
	}
	if deck != "rider-waite" {
		t.Errorf("GetDefaultDeck = %q", deck)
	}
}

func TestGetDeckLibraryPath(t *testing.T) {
	root := isolate(t)

	if want := filepath.Join(root, "data", "tarot", "decks"); GetDeckLibraryPath() != want {
		t.Errorf("GetDeckLibraryPath = %q, want %q", GetDeckLibraryPath(), want)
	}
}
