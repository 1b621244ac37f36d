package internal

import (
	"log/slog"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Notes   NotesConfig       `yaml:"notes"`
	Backups BackupsConfig     `yaml:"backups"`
	Exports ExportsConfig     `yaml:"exports"`
	Trash   TrashConfig       `yaml:"trash"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Notes.Validate(); err != nil {
		return err
	}
	if err := c.Backups.Validate(); err != nil {
		return err
	}
	if err := c.Exports.Validate(); err != nil {
		return err
	}
	return c.Trash.Validate()
}

// ApplicationConfig holds application-level configuration. LogFile is where
// the JSON log goes; empty keeps it on stderr so the menu owns stdout.
type ApplicationConfig struct {
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Level maps the configured level name onto its slog level.
func (c *ApplicationConfig) Level() slog.Level {
	if lvl, ok := logLevels[strings.ToLower(c.LogLevel)]; ok {
		return lvl
	}
	return slog.LevelInfo
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	// Normalise an absent level to the default.
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
	)
}

// NotesConfig locates the note collection.
type NotesConfig struct {
	Dir       string `yaml:"dir"`
	Extension string `yaml:"extension"`
}

var extensionPattern = regexp.MustCompile(`^\.[A-Za-z0-9]+$`)

// Validate validates the notes configuration.
func (c *NotesConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.Required),
		validation.Field(&c.Extension, validation.Required, validation.Match(extensionPattern)),
	)
}

// BackupsConfig controls the backup directory and retention window.
//
// RetentionDays is the age, in whole days, at which a backup is purged. The
// floor is 1: a retention of 0 would purge a backup on the day it was made.
type BackupsConfig struct {
	Dir           string `yaml:"dir"`
	RetentionDays int    `yaml:"retention_days"`
}

// Validate validates the backups configuration.
func (c *BackupsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.Required),
		validation.Field(&c.RetentionDays, validation.Required, validation.Min(1)),
	)
}

// ExportsConfig holds the per-format export directories.
type ExportsConfig struct {
	CSVDir  string `yaml:"csv_dir"`
	JSONDir string `yaml:"json_dir"`
	PDFDir  string `yaml:"pdf_dir"`
}

// Validate validates the exports configuration.
func (c *ExportsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.CSVDir, validation.Required),
		validation.Field(&c.JSONDir, validation.Required),
		validation.Field(&c.PDFDir, validation.Required),
	)
}

// TrashConfig controls where discarded notes are held. Platform selects the
// operating system trash when available; Dir is the fallback holding area.
type TrashConfig struct {
	Dir      string `yaml:"dir"`
	Platform bool   `yaml:"platform"`
}

// Validate validates the trash configuration.
func (c *TrashConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.Required),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: "info",
		},
		Notes: NotesConfig{
			Dir:       "./notes",
			Extension: ".txt",
		},
		Backups: BackupsConfig{
			Dir:           "./backups",
			RetentionDays: 1,
		},
		Exports: ExportsConfig{
			CSVDir:  "./exports/csv",
			JSONDir: "./exports/json",
			PDFDir:  "./exports/pdf",
		},
		Trash: TrashConfig{
			Dir:      "./trash",
			Platform: true,
		},
	}
}
