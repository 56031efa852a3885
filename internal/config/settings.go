package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Settings holds the user preferences read from the TOML settings file.
// Command-line flags take precedence over these values.
type Settings struct {
	Language  string         `toml:"language"`
	Encoding  string         `toml:"encoding"`
	FoldWidth bool           `toml:"fold_width"`
	Format    string         `toml:"format"`
	Gannen    bool           `toml:"gannen"`
	Server    ServerSettings `toml:"server"`
	VCard     VCardSettings  `toml:"vcard"`
}

// ServerSettings configures the local calendar server.
type ServerSettings struct {
	Port           string `toml:"port"`
	RefreshMinutes int    `toml:"refresh_minutes"`
}

// VCardSettings points at the vCard source used by the vcard command.
type VCardSettings struct {
	Path string `toml:"path"`
	URL  string `toml:"url"`
	User string `toml:"user"`
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() Settings {
	return Settings{
		Language: DefaultLanguage,
		Encoding: DefaultEncoding,
		Format:   DefaultFormat,
		Server: ServerSettings{
			Port:           DefaultPort,
			RefreshMinutes: DefaultRefreshMin,
		},
	}
}

// DefaultSettingsPath returns <user config dir>/go-wareki/config.toml.
func DefaultSettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrConfigDir, err)
	}
	return filepath.Join(dir, CmdName, SettingsFileName), nil
}

// LoadSettings reads the settings file at path, or the default path when
// path is empty. A missing file yields DefaultSettings; a malformed or
// invalid one is an error. Keys absent from the file keep their defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	if path == "" {
		p, err := DefaultSettingsPath()
		if err != nil {
			return s, nil
		}
		path = p
	}

	log := slog.With(
		LogKeyComponent, CompSettings,
		LogKeyPath, path,
	)

	if _, err := toml.DecodeFile(path, &s); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug(MsgSettingsNone)
			return DefaultSettings(), nil
		}
		return DefaultSettings(), fmt.Errorf("%s: %w", ErrSettingsLoad, err)
	}

	if err := s.Validate(); err != nil {
		return DefaultSettings(), err
	}

	log.Debug(MsgSettingsRead)
	return s, nil
}

// Validate checks the values that would otherwise fail late.
func (s Settings) Validate() error {
	if s.Format != FormatJSON && s.Format != FormatText {
		return fmt.Errorf("%s: %s: %q", ErrSettingsValue, ErrOutputFormat, s.Format)
	}
	if err := ValidatePort(s.Server.Port); err != nil {
		return fmt.Errorf("%s: %w", ErrSettingsValue, err)
	}
	return nil
}

// RefreshInterval returns the configured calendar refresh interval, falling
// back to the default when unset or not positive.
func (s Settings) RefreshInterval() time.Duration {
	minutes := s.Server.RefreshMinutes
	if minutes <= 0 {
		minutes = DefaultRefreshMin
	}
	return time.Duration(minutes) * time.Minute
}

// ValidatePort checks that port is a number between MinPort and MaxPort.
func ValidatePort(port string) error {
	if port == "" {
		return errors.New(ErrPortRequired)
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return errors.New(ErrPortNumber)
	}
	if n < MinPort || n > MaxPort {
		return errors.New(ErrPortRange)
	}
	return nil
}
