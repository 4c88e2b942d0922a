package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  mode: release
session:
  secret: s3cret
  timeout_hours: 2
features:
  registration_enabled: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 || cfg.Server.Mode != "release" {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Session.Timeout() != 2*time.Hour {
		t.Errorf("timeout = %v, want 2h", cfg.Session.Timeout())
	}
	if !cfg.Features.RegistrationEnabled {
		t.Error("registration_enabled not read")
	}

	// defaults fill everything the file omits
	if cfg.Session.CookieName != "vlab_session" {
		t.Errorf("cookie name = %q, want default", cfg.Session.CookieName)
	}
	if cfg.Store.UsersFile != "data/users.json" {
		t.Errorf("users file = %q, want default", cfg.Store.UsersFile)
	}
	if cfg.Security.LockoutThreshold != 5 {
		t.Errorf("lockout threshold = %d, want 5", cfg.Security.LockoutThreshold)
	}
	if cfg.Features.APIEnabled {
		t.Error("api should default to disabled")
	}
}

func TestLoad_SecretRequired(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 8080\n")

	if _, err := Load(path); err == nil {
		t.Error("Load() without a session secret error = nil, want error")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("VLAB_SESSION_SECRET", "from-env")
	t.Setenv("VLAB_SERVER_PORT", "7070")

	path := writeConfig(t, "server:\n  port: 8080\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Session.Secret != "from-env" {
		t.Errorf("secret = %q, want the env value", cfg.Session.Secret)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("port = %d, want the env value 7070", cfg.Server.Port)
	}
}

func TestSessionTimeout_Default(t *testing.T) {
	var s SessionConfig
	if s.Timeout() != time.Hour {
		t.Errorf("zero timeout = %v, want 1h", s.Timeout())
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("VLAB_SESSION_SECRET", "env-only")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want default 8080", cfg.Server.Port)
	}
}
