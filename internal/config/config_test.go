package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.API.BaseURL != "http://localhost:8000" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.UI.Port != 8765 {
		t.Errorf("Port = %d", cfg.UI.Port)
	}
	if cfg.FreshFor() != 5*time.Minute {
		t.Errorf("FreshFor = %v", cfg.FreshFor())
	}
	if cfg.GCIdle() != 15*time.Minute {
		t.Errorf("GCIdle = %v", cfg.GCIdle())
	}
	if cfg.APITimeout() != 15*time.Second {
		t.Errorf("APITimeout = %v", cfg.APITimeout())
	}
	if cfg.Session.File != ".desk-session" {
		t.Errorf("Session.File = %q", cfg.Session.File)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://10.0.0.5:9000")
	t.Setenv("API_KEY", "chave")
	t.Setenv("UI_PORT", "9100")
	t.Setenv("SESSION_SECRET", "segredo")

	cfg := Load()
	if cfg.API.BaseURL != "http://10.0.0.5:9000" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Key != "chave" {
		t.Errorf("Key = %q", cfg.API.Key)
	}
	if cfg.UI.Port != 9100 {
		t.Errorf("Port = %d", cfg.UI.Port)
	}
	if cfg.Session.Secret != "segredo" {
		t.Errorf("Secret = %q", cfg.Session.Secret)
	}
}
