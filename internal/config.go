package internal

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/ignatij/folio/internal/content"
	"github.com/ignatij/folio/internal/cv"
	"github.com/ignatij/folio/internal/markdown"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Content ContentConfig     `yaml:"content"`
	Render  RenderConfig      `yaml:"render"`
	SQLite  SQLiteConfig      `yaml:"sqlite"`
	Auth    AuthConfig        `yaml:"auth"`
	CV      CVConfig          `yaml:"cv"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Content.Validate(); err != nil {
		return err
	}
	if err := c.Render.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	return c.CV.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// ContentConfig locates the markdown content.
type ContentConfig struct {
	Root        string `yaml:"root"`
	ProjectsDir string `yaml:"projects_dir"`
	PostsDir    string `yaml:"posts_dir"`
	Concurrency int    `yaml:"concurrency"`
}

// Validate validates the content configuration.
func (c *ContentConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Root, validation.Required),
		validation.Field(&c.ProjectsDir, validation.Required, validation.By(relativeDir)),
		validation.Field(&c.PostsDir, validation.Required, validation.By(relativeDir)),
		validation.Field(&c.Concurrency, validation.Min(0), validation.Max(64)),
	); err != nil {
		return err
	}
	if filepath.Clean(c.ProjectsDir) == filepath.Clean(c.PostsDir) {
		return errors.New("content: projects_dir and posts_dir must differ")
	}
	return nil
}

func relativeDir(value any) error {
	s, _ := value.(string)
	cleaned := filepath.Clean(s)
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return errors.New("must be a directory inside the content root")
	}
	return nil
}

// RenderConfig holds the markdown rendering options.
type RenderConfig struct {
	markdown.Options `yaml:",inline"`
}

// Validate validates the render configuration.
func (c *RenderConfig) Validate() error {
	return validation.ValidateStruct(&c.Options,
		validation.Field(&c.Options.HighlightStyle, validation.By(func(value any) error {
			s, _ := value.(string)
			if s != "" && !markdown.KnownStyle(s) {
				return fmt.Errorf("unknown highlight style %q", s)
			}
			return nil
		})),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds authentication configuration for the admin routes.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// CVConfig controls the generated CV.
type CVConfig struct {
	OutputDir string     `yaml:"output_dir"`
	FileName  string     `yaml:"file_name"`
	Profile   cv.Profile `yaml:"profile"`
}

// OutputPath returns the full path of the generated PDF.
func (c *CVConfig) OutputPath() string {
	return filepath.Join(c.OutputDir, c.FileName)
}

// Validate validates the CV configuration.
func (c *CVConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.OutputDir, validation.Required),
		validation.Field(&c.FileName, validation.Required, validation.By(func(value any) error {
			s, _ := value.(string)
			if filepath.Base(s) != s {
				return errors.New("must be a bare file name")
			}
			if !strings.EqualFold(filepath.Ext(s), ".pdf") {
				return errors.New("must end in .pdf")
			}
			return nil
		})),
		validation.Field(&c.Profile, validation.By(func(value any) error {
			p, _ := value.(cv.Profile)
			if strings.TrimSpace(p.Name) == "" {
				return errors.New("name is required")
			}
			return nil
		})),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Content: ContentConfig{
			Root:        "./content",
			ProjectsDir: content.DefaultProjectsDir,
			PostsDir:    content.DefaultPostsDir,
		},
		Render: RenderConfig{Options: markdown.DefaultOptions()},
		SQLite: SQLiteConfig{
			Path: "./folio.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
		CV: CVConfig{
			OutputDir: "./public",
			FileName:  "cv.pdf",
			Profile: cv.Profile{
				Name: "Your Name",
			},
		},
	}
}
