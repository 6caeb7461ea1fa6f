package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/nao1215/riskscan/internal/backend"
)

// Default configuration values.
const (
	// DefaultBackendURL is the origin of the analysis backend.
	// The reference backend listens on port 5000.
	DefaultBackendURL = "http://127.0.0.1:5000"

	// DefaultTimeout bounds each backend request. Website analysis makes
	// the backend fetch a third-party page, so this must comfortably exceed
	// the backend's own fetch timeout.
	DefaultTimeout = 60 * time.Second

	// DefaultRefreshInterval is the period of the automatic history and
	// stats refresh.
	DefaultRefreshInterval = 10 * time.Second

	// AppName is the application name used for XDG directory paths.
	AppName = "riskscan"

	// DefaultUserAgent identifies RiskScan in HTTP requests.
	DefaultUserAgent = "RiskScan/1.0 (+https://github.com/nao1215/riskscan)"

	// DefaultMaxBodySize limits how much of a backend response is read.
	// History responses grow with every scan; 5MB holds tens of thousands
	// of entries.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultMaxImageSize limits how much of a screenshot is searched for
	// EXIF metadata.
	DefaultMaxImageSize = 5 * 1024 * 1024 // 5MB

	// DefaultJournalLimit is the number of journal records listed by default.
	DefaultJournalLimit = 20
)

// Config holds all configuration options for RiskScan.
// It is populated from defaults, the config file, the environment, and CLI
// flags, then passed explicitly to the components that need it.
type Config struct {
	// BackendURL is the backend origin (scheme, host, and optional port).
	// Endpoint paths such as /api/history are appended to it.
	BackendURL string

	// ProxyAddress is an optional SOCKS5 proxy in "host:port" format.
	// When empty, requests go directly to the backend.
	ProxyAddress string

	// Timeout is the per-request timeout. Zero disables the timeout.
	Timeout time.Duration

	// RefreshInterval is the automatic refresh period used by the watch command.
	RefreshInterval time.Duration

	// UserAgent is the User-Agent header sent with every request.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64

	// MaxImageSize is the number of screenshot bytes searched for EXIF
	// metadata.
	MaxImageSize int

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the explicitly requested configuration file.
	// If empty, the default search locations are used.
	ConfigFilePath string

	// InspectMetadata enables the EXIF preflight check on screenshots.
	InspectMetadata bool

	// SaveToDB records successful submissions in the local journal.
	SaveToDB bool

	// DBDir is the directory holding the journal database.
	// Defaults to the XDG data directory (~/.local/share/riskscan on Linux).
	DBDir string

	// JSONReport selects JSON output for history, stats, and journal listings.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile writes report output to a file instead of stdout.
	ReportFile string

	// TeeReport also prints the report to stdout when ReportFile is set.
	TeeReport bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		BackendURL:      DefaultBackendURL,
		Timeout:         DefaultTimeout,
		RefreshInterval: DefaultRefreshInterval,
		UserAgent:       DefaultUserAgent,
		MaxBodySize:     DefaultMaxBodySize,
		MaxImageSize:    DefaultMaxImageSize,
		InspectMetadata: true,
		SaveToDB:        true,
		DBDir:           XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for RiskScan.
// On Linux: ~/.local/share/riskscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for RiskScan.
// On Linux: ~/.config/riskscan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found as one of the package's sentinel errors.
func (c *Config) Validate() error {
	if !isValidBackendURL(c.BackendURL) {
		return ErrInvalidBackendURL
	}

	if c.ProxyAddress != "" {
		if err := backend.ValidateProxyAddress(c.ProxyAddress); err != nil {
			return err
		}
	}

	if c.Timeout < 0 {
		return ErrInvalidTimeout
	}

	if c.RefreshInterval <= 0 {
		return ErrInvalidInterval
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if c.MaxImageSize < 0 {
		return ErrInvalidMaxImageSize
	}

	return nil
}

// isValidBackendURL accepts absolute http(s) URLs with a host.
func isValidBackendURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}
