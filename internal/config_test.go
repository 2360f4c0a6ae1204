package internal

import (
	"strings"
	"testing"

	pkgconfig "github.com/ignatij/folio/pkg/config"
)

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenMode(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: "mysecret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("token mode should be enabled")
	}

	cfg = AuthConfig{Mode: "token"}
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.CV.OutputPath() != "public/cv.pdf" {
		t.Errorf("output path = %q", cfg.CV.OutputPath())
	}
}

func TestFullConfig_SectionsValidated(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"auth", func(c *Config) { c.Auth = AuthConfig{Mode: "token"} }},
		{"port", func(c *Config) { c.App.HTTP.Port = 0 }},
		{"content root", func(c *Config) { c.Content.Root = "" }},
		{"escaping dir", func(c *Config) { c.Content.PostsDir = "../elsewhere" }},
		{"absolute dir", func(c *Config) { c.Content.ProjectsDir = "/etc" }},
		{"same dirs", func(c *Config) { c.Content.PostsDir = c.Content.ProjectsDir }},
		{"concurrency", func(c *Config) { c.Content.Concurrency = -1 }},
		{"style", func(c *Config) { c.Render.HighlightStyle = "no-such-style" }},
		{"sqlite", func(c *Config) { c.SQLite.Path = "" }},
		{"cv dir", func(c *Config) { c.CV.OutputDir = "" }},
		{"cv name", func(c *Config) { c.CV.FileName = "nested/cv.pdf" }},
		{"cv ext", func(c *Config) { c.CV.FileName = "cv.txt" }},
		{"cv profile", func(c *Config) { c.CV.Profile.Name = " " }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestExampleConfigFile_Loads(t *testing.T) {
	t.Setenv("FOLIO_AUTH_TOKEN", "")
	cfg := NewDefaultConfig()
	if err := pkgconfig.Load("../config/config.yaml", cfg); err != nil {
		t.Fatalf("load example config: %v", err)
	}
	if cfg.Content.ProjectsDir != "projects" || cfg.Content.PostsDir != "blog" {
		t.Errorf("content dirs = %q, %q", cfg.Content.ProjectsDir, cfg.Content.PostsDir)
	}
	if cfg.CV.Profile.Name == "" || len(cfg.CV.Profile.Skills) == 0 {
		t.Errorf("profile not loaded: %+v", cfg.CV.Profile)
	}
	if cfg.Auth.AuthEnabled() {
		t.Error("example config should leave auth disabled")
	}
}
