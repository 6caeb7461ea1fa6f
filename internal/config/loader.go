package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".riskscan"

// xdgConfigFileName is the file name looked up inside XDGConfigDir.
const xdgConfigFileName = "config.yaml"

// Environment variables that override the configuration file.
const (
	EnvBackendURL = "RISKSCAN_BACKEND_URL"
	EnvProxy      = "RISKSCAN_PROXY"
	EnvTimeout    = "RISKSCAN_TIMEOUT"
)

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .riskscan configuration file.
// Pointer and string fields distinguish "not set" from zero values so that
// only settings present in the file override the defaults.
type File struct {
	// Backend configures how the backend is reached.
	Backend BackendFile `yaml:"backend,omitempty"`

	// RefreshInterval is a Go duration string such as "10s".
	RefreshInterval string `yaml:"refreshInterval,omitempty"`

	// InspectMetadata toggles the screenshot EXIF preflight check.
	InspectMetadata *bool `yaml:"inspectMetadata,omitempty"`

	// Journal toggles the local submission journal.
	Journal *bool `yaml:"journal,omitempty"`

	// JournalDir overrides the journal database directory.
	JournalDir string `yaml:"journalDir,omitempty"`

	// MaxImageSize limits the screenshot bytes searched for EXIF metadata.
	MaxImageSize *int `yaml:"maxImageSize,omitempty"`
}

// BackendFile holds the backend section of the configuration file.
type BackendFile struct {
	// URL is the backend origin.
	URL string `yaml:"url,omitempty"`

	// Proxy is an optional SOCKS5 proxy address.
	Proxy string `yaml:"proxy,omitempty"`

	// Timeout is a Go duration string; "0s" disables the timeout.
	Timeout string `yaml:"timeout,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`

	// MaxBodySize limits how many bytes of a response are read.
	MaxBodySize *int64 `yaml:"maxBodySize,omitempty"`
}

// LoadConfigFile loads a YAML configuration file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// Apply copies the settings present in the file onto cfg.
func (cf *File) Apply(cfg *Config) error {
	if cf.Backend.URL != "" {
		cfg.BackendURL = cf.Backend.URL
	}
	if cf.Backend.Proxy != "" {
		cfg.ProxyAddress = cf.Backend.Proxy
	}
	if cf.Backend.UserAgent != "" {
		cfg.UserAgent = cf.Backend.UserAgent
	}
	if cf.Backend.MaxBodySize != nil {
		cfg.MaxBodySize = *cf.Backend.MaxBodySize
	}
	if cf.Backend.Timeout != "" {
		d, err := time.ParseDuration(cf.Backend.Timeout)
		if err != nil {
			return fmt.Errorf("backend.timeout: %w", err)
		}
		cfg.Timeout = d
	}
	if cf.RefreshInterval != "" {
		d, err := time.ParseDuration(cf.RefreshInterval)
		if err != nil {
			return fmt.Errorf("refreshInterval: %w", err)
		}
		cfg.RefreshInterval = d
	}
	if cf.InspectMetadata != nil {
		cfg.InspectMetadata = *cf.InspectMetadata
	}
	if cf.Journal != nil {
		cfg.SaveToDB = *cf.Journal
	}
	if cf.JournalDir != "" {
		cfg.DBDir = cf.JournalDir
	}
	if cf.MaxImageSize != nil {
		cfg.MaxImageSize = *cf.MaxImageSize
	}
	return nil
}

// ApplyEnvironment applies RISKSCAN_* overrides using lookup, which has the
// signature of os.LookupEnv. Empty values are ignored.
func ApplyEnvironment(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvBackendURL); ok && strings.TrimSpace(v) != "" {
		cfg.BackendURL = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvProxy); ok && strings.TrimSpace(v) != "" {
		cfg.ProxyAddress = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvTimeout); ok && strings.TrimSpace(v) != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}
	return nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. .riskscan in the current directory
// 3. .riskscan in the user's home directory
// 4. config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	candidates := make([]string, 0, 3)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), xdgConfigFileName))

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
