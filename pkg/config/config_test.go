package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestConfigLoadSave(t *testing.T) {
	// Create a temporary directory to act as the user's home directory
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir) // For Windows compatibility in tests

	// 1. Test Load with no existing file
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error when loading missing config, got: %v", err)
	}
	if cfg == nil {
		t.Fatalf("expected empty config to be returned, got nil")
	}

	// 2. Modify and Save the config
	cfg.BaseURL = "https://edux.example.org/"
	cfg.CookieFile = "~/secrets/edux.cookie"
	cfg.AccentColor = "205"
	cfg.TimeoutSeconds = 30

	if err := Save(cfg); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	configPath := filepath.Join(tempDir, ".eduxctl.json")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Errorf("expected config file to be created at %s", configPath)
	}

	// 3. Test Load with existing file
	loadedCfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load existing config: %v", err)
	}
	if !reflect.DeepEqual(cfg, loadedCfg) {
		t.Errorf("loaded config does not match saved config.\nGot: %+v\nExpected: %+v", loadedCfg, cfg)
	}
}

func TestConfigLoadJSON5(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	content := `{
		// hand-edited
		base_url: "https://edux.example.org/",
		accent_color: '42',
	}`
	if err := os.WriteFile(filepath.Join(tempDir, ".eduxctl.json"), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load json5 config: %v", err)
	}
	if cfg.BaseURL != "https://edux.example.org/" || cfg.AccentColor != "42" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestConfigParseError(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	// Write invalid JSON to the config file
	configPath := filepath.Join(tempDir, ".eduxctl.json")
	if err := os.WriteFile(configPath, []byte("invalid json { content"), 0644); err != nil {
		t.Fatalf("failed to write invalid json: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Errorf("expected error when loading invalid json, got nil")
	}
}

func TestLoadEffective(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(tempDir); err != nil { // keep a stray .env out of the test
		t.Fatalf("failed to chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	if err := Save(&AppConfig{BaseURL: "https://from-file.example/", AccentColor: "42"}); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	t.Setenv(EnvBaseURL, "https://from-env.example/")
	t.Setenv(EnvCookieFile, "")
	t.Setenv(EnvHistoryFile, "")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := LoadEffective()
	if err != nil {
		t.Fatalf("LoadEffective failed: %v", err)
	}

	defaults := Defaults()
	if cfg.BaseURL != "https://from-env.example/" {
		t.Errorf("expected env to override base url, got %s", cfg.BaseURL)
	}
	if cfg.AccentColor != "42" {
		t.Errorf("expected file accent color to survive, got %s", cfg.AccentColor)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected env log level, got %s", cfg.LogLevel)
	}
	if cfg.CookieFile != defaults.CookieFile || cfg.TimeoutSeconds != defaults.TimeoutSeconds {
		t.Errorf("expected defaults for unset values, got %+v", cfg)
	}
}
