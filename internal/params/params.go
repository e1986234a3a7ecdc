// Package params resolves the runtime parameters of fuelog from an optional
// ini file in the application directory and from environment variables.
package params

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/inovacc/fuelog/internal/application"
	"gopkg.in/ini.v1"
)

// Environment variables read by Load and FromEnv.
const (
	EnvMode        = "FUELOG_ENV"
	EnvDatabaseURL = "DATABASE_URL"
	EnvLogLevel    = "FUELOG_LOG_LEVEL"
)

// ConfigFileName is the ini file looked up inside the configuration directory.
const ConfigFileName = application.ConfigFileName

// Mode is the environment mode the process runs in.
type Mode string

const (
	ModeDevelopment Mode = "development"
	ModeProduction  Mode = "production"
)

// IsDevelopment reports whether m selects verbose behaviour.
func (m Mode) IsDevelopment() bool {
	return m == ModeDevelopment
}

// IsProduction reports whether m is the production mode. Any other value,
// including the empty string, is treated as non-production.
func (m Mode) IsProduction() bool {
	return m == ModeProduction
}

func (m Mode) String() string {
	if m == "" {
		return "(unset)"
	}

	return string(m)
}

// Params holds the values fuelog needs at runtime.
type Params struct {
	// Mode is the environment mode (development, production or anything else)
	Mode Mode

	// DatabaseURL is the connection target handed verbatim to the database driver
	DatabaseURL string

	// LogLevel is the application log level (debug, info, warn, error)
	LogLevel string

	// ConfigFile is the ini file the values were read from, empty when none
	ConfigFile string
}

// FromEnv builds Params from environment variables only.
func FromEnv() Params {
	var p Params

	applyEnv(&p)

	return p
}

// Load reads the ini file from the configuration directory when it exists and
// then applies environment overrides. A missing file is not an error.
func Load() (Params, error) {
	path, err := application.ConfigFilePath()
	if err != nil {
		return Params{}, err
	}

	return LoadFile(path)
}

// LoadFile is Load with an explicit ini path.
func LoadFile(path string) (Params, error) {
	var p Params

	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Params{}, fmt.Errorf("stat config file: %w", err)
		}
	} else {
		if err := readFile(path, &p); err != nil {
			return Params{}, err
		}

		p.ConfigFile = path
	}

	applyEnv(&p)

	return p, nil
}

func readFile(path string, p *Params) error {
	cfg, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("load config file %s: %w", path, err)
	}

	p.Mode = Mode(strings.TrimSpace(cfg.Section("app").Key("env").String()))
	p.DatabaseURL = strings.TrimSpace(cfg.Section("database").Key("url").String())
	p.LogLevel = strings.TrimSpace(cfg.Section("log").Key("level").String())

	return nil
}

func applyEnv(p *Params) {
	if v, ok := os.LookupEnv(EnvMode); ok {
		p.Mode = Mode(v)
	}

	if v, ok := os.LookupEnv(EnvDatabaseURL); ok {
		p.DatabaseURL = v
	}

	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		p.LogLevel = v
	}
}
