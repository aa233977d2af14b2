package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/CrestNiraj12/socialfeed/infra/session"
)

const (
	defaultAPIURL   = "https://localhost:44389/api"
	defaultPageSize = 10
	defaultLogLevel = "info"
)

// Config holds application-level configuration.
type Config struct {
	APIURL      string // e.g. "https://localhost:44389/api"
	SessionPath string // Path to the persisted bearer token
	PageSize    int    // Posts requested per feed page
	LogLevel    string // debug, info, warn, error
	LogFile     string // The TUI owns the terminal, so logs go here
	UIStatePath string
}

// fileConfig mirrors the optional TOML file. Environment variables win.
type fileConfig struct {
	APIURL      string `toml:"apiURL"`
	SessionPath string `toml:"sessionPath"`
	PageSize    int    `toml:"pageSize"`
	LogLevel    string `toml:"logLevel"`
	LogFile     string `toml:"logFile"`
}

// Load reads configuration from an optional TOML file and environment variables.
//
//	SOCIALFEED_CONFIG    : TOML file (default: ~/.config/socialfeed/config.toml, optional)
//	SOCIALFEED_API_URL   : API root (default: https://localhost:44389/api)
//	SOCIALFEED_SESSION   : Token file (default: ~/.config/socialfeed/socialfeed-token)
//	SOCIALFEED_PAGE_SIZE : Feed page size (default: 10)
//	SOCIALFEED_LOG_LEVEL : Log level (default: info)
//	SOCIALFEED_LOG_FILE  : Log file (default: ~/.config/socialfeed/socialfeed.log)
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("cannot determine home directory: %w", err)
	}
	dir := filepath.Join(home, ".config", "socialfeed")

	path := os.Getenv("SOCIALFEED_CONFIG")
	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, "config.toml")
	}

	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	apiURL, err := normalizeAPIURL(firstNonEmpty(os.Getenv("SOCIALFEED_API_URL"), fc.APIURL, defaultAPIURL))
	if err != nil {
		return Config{}, err
	}

	pageSize := fc.PageSize
	if raw := os.Getenv("SOCIALFEED_PAGE_SIZE"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid SOCIALFEED_PAGE_SIZE: must be a positive integer")
		}
		pageSize = n
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	logLevel := strings.ToLower(firstNonEmpty(os.Getenv("SOCIALFEED_LOG_LEVEL"), fc.LogLevel, defaultLogLevel))
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return Config{}, fmt.Errorf("invalid log level %q: use debug, info, warn, or error", logLevel)
	}

	sessionPath := firstNonEmpty(os.Getenv("SOCIALFEED_SESSION"), fc.SessionPath, filepath.Join(dir, session.FileName))

	return Config{
		APIURL:      apiURL,
		SessionPath: sessionPath,
		PageSize:    pageSize,
		LogLevel:    logLevel,
		LogFile:     firstNonEmpty(os.Getenv("SOCIALFEED_LOG_FILE"), fc.LogFile, filepath.Join(dir, "socialfeed.log")),
		UIStatePath: filepath.Join(filepath.Dir(sessionPath), "ui_state.json"),
	}, nil
}

// normalizeAPIURL requires an absolute https URL. Plain http is only allowed
// for loopback hosts so the dev server can be used locally.
func normalizeAPIURL(raw string) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid SOCIALFEED_API_URL: must be an absolute URL")
	}
	switch parsed.Scheme {
	case "https":
	case "http":
		if !isLoopback(parsed.Hostname()) {
			return "", fmt.Errorf("invalid SOCIALFEED_API_URL: http is only allowed for localhost")
		}
	default:
		return "", fmt.Errorf("invalid SOCIALFEED_API_URL: unsupported scheme %q", parsed.Scheme)
	}
	return strings.TrimRight(parsed.String(), "/"), nil
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
