// Package config provides centralized configuration management.
// Values are layered: built-in defaults, then ~/.repochat/config.yaml,
// then ~/.repochat/.env, then the process environment. CLI flags are applied
// on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultBackendURL   = "https://github-analyzer-1lbe.onrender.com"
	DefaultGitHubAPIURL = "https://api.github.com"
	DefaultSessionTTL   = 24 * time.Hour
	DefaultStore        = "sqlite"
)

// RepochatEnv holds all repochat settings.
type RepochatEnv struct {
	// BackendURL is the analysis service base URL (REPOCHAT_BACKEND_URL)
	BackendURL string

	// GitHubAPIURL is the repository metadata API base URL (REPOCHAT_GITHUB_API_URL)
	GitHubAPIURL string

	// GitHubToken is an optional bearer token for metadata calls (GITHUB_TOKEN)
	GitHubToken string

	// TabID scopes the session cache (REPOCHAT_TAB_ID). Defaults to the
	// parent shell's pid so every terminal tab gets its own cache.
	TabID string

	// HTTPTimeout bounds each HTTP call; zero leaves it to the transport (REPOCHAT_HTTP_TIMEOUT)
	HTTPTimeout time.Duration

	// SessionTTL is how long caches of other tabs survive (REPOCHAT_SESSION_TTL)
	SessionTTL time.Duration

	// AgentsEnabled turns on the per-file agent panel (REPOCHAT_AGENTS)
	AgentsEnabled bool

	// Debug mirrors log events to stderr in CLI commands (REPOCHAT_DEBUG)
	Debug bool

	// Store selects the session cache backend, sqlite or memory (REPOCHAT_STORE)
	Store string

	// DownloadDir is where the code viewer saves files (REPOCHAT_DOWNLOAD_DIR)
	DownloadDir string
}

// FileConfig is the on-disk shape of config.yaml.
type FileConfig struct {
	BackendURL    string `yaml:"backend_url"`
	GitHubAPIURL  string `yaml:"github_api_url"`
	TabID         string `yaml:"tab_id"`
	HTTPTimeout   string `yaml:"http_timeout"`
	SessionTTL    string `yaml:"session_ttl"`
	AgentsEnabled *bool  `yaml:"agents_enabled"`
	Store         string `yaml:"store"`
	DownloadDir   string `yaml:"download_dir"`
}

var (
	env     *RepochatEnv
	envErr  error
	envOnce sync.Once
)

// Env returns the singleton configuration.
// Thread-safe, loads once on first call. Problems reading the optional
// files are reported by LoadError; Env always returns usable values.
func Env() *RepochatEnv {
	envOnce.Do(func() {
		env, envErr = Load(GetPaths())
	})
	return env
}

// LoadError returns the error, if any, hit while building Env.
func LoadError() error {
	Env()
	return envErr
}

// ResetEnv resets the cached environment (for testing).
func ResetEnv() {
	envOnce = sync.Once{}
	env = nil
	envErr = nil
	pathsOnce = sync.Once{}
	paths = nil
}

// Load builds a configuration from the files under p and the process
// environment. It returns defaults plus an error when a file is malformed.
func Load(p *Paths) (*RepochatEnv, error) {
	var errs []error

	fc, err := ReadFile(p.ConfigFile)
	if err != nil {
		errs = append(errs, err)
		fc = &FileConfig{}
	}

	dotenv, err := readDotenv(p.EnvFile)
	if err != nil {
		errs = append(errs, err)
	}

	get := func(key, fromFile, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		if v := dotenv[key]; v != "" {
			return v
		}
		if fromFile != "" {
			return fromFile
		}
		return fallback
	}

	agentsDefault := "false"
	if fc.AgentsEnabled != nil {
		agentsDefault = strconv.FormatBool(*fc.AgentsEnabled)
	}

	e := &RepochatEnv{
		BackendURL:    trimSlash(get("REPOCHAT_BACKEND_URL", fc.BackendURL, DefaultBackendURL)),
		GitHubAPIURL:  trimSlash(get("REPOCHAT_GITHUB_API_URL", fc.GitHubAPIURL, DefaultGitHubAPIURL)),
		GitHubToken:   get("GITHUB_TOKEN", "", ""),
		TabID:         get("REPOCHAT_TAB_ID", fc.TabID, defaultTabID()),
		AgentsEnabled: parseBool(get("REPOCHAT_AGENTS", "", agentsDefault)),
		Debug:         parseBool(get("REPOCHAT_DEBUG", "", "")),
		Store:         get("REPOCHAT_STORE", fc.Store, DefaultStore),
		DownloadDir:   get("REPOCHAT_DOWNLOAD_DIR", fc.DownloadDir, p.Downloads),
	}

	if e.HTTPTimeout, err = parseDuration("REPOCHAT_HTTP_TIMEOUT", get("REPOCHAT_HTTP_TIMEOUT", fc.HTTPTimeout, "0s")); err != nil {
		errs = append(errs, err)
	}
	if e.SessionTTL, err = parseDuration("REPOCHAT_SESSION_TTL", get("REPOCHAT_SESSION_TTL", fc.SessionTTL, DefaultSessionTTL.String())); err != nil {
		errs = append(errs, err)
		e.SessionTTL = DefaultSessionTTL
	}

	if len(errs) > 0 {
		return e, fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return e, nil
}

// ReadFile reads config.yaml. A missing file yields an empty config.
func ReadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &FileConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &fc, nil
}

// WriteFile writes fc to path, creating the parent directory.
func WriteFile(path string, fc *FileConfig) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(fc)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func readDotenv(path string) (map[string]string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	vals, err := godotenv.Read(path)
	if err != nil {
		return map[string]string{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return vals, nil
}

func defaultTabID() string {
	if ppid := os.Getppid(); ppid > 1 {
		return fmt.Sprintf("ppid-%d", ppid)
	}
	return "tab-" + uuid.NewString()
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

func parseDuration(key, s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: negative duration %s", key, s)
	}
	return d, nil
}

func trimSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}

// Paths holds standard repochat directory paths.
type Paths struct {
	// Home is the repochat home directory (~/.repochat, or REPOCHAT_HOME)
	Home string

	// Data is the data directory (~/.repochat/data)
	Data string

	// Logs is the log directory (~/.repochat/logs)
	Logs string

	// Downloads is the default code viewer download directory (~/.repochat/downloads)
	Downloads string

	// ConfigFile is the YAML config path (~/.repochat/config.yaml)
	ConfigFile string

	// EnvFile is the .env file path (~/.repochat/.env)
	EnvFile string

	// SessionDB is the tab cache database (~/.repochat/data/sessions.db)
	SessionDB string

	// LogFile is the structured log file (~/.repochat/logs/repochat.log)
	LogFile string
}

var (
	paths     *Paths
	pathsOnce sync.Once
)

// GetPaths returns the singleton paths configuration.
func GetPaths() *Paths {
	pathsOnce.Do(func() {
		paths = NewPaths(homeDir())
	})
	return paths
}

// NewPaths lays out the standard paths under home.
func NewPaths(home string) *Paths {
	data := filepath.Join(home, "data")
	logs := filepath.Join(home, "logs")
	return &Paths{
		Home:       home,
		Data:       data,
		Logs:       logs,
		Downloads:  filepath.Join(home, "downloads"),
		ConfigFile: filepath.Join(home, "config.yaml"),
		EnvFile:    filepath.Join(home, ".env"),
		SessionDB:  filepath.Join(data, "sessions.db"),
		LogFile:    filepath.Join(logs, "repochat.log"),
	}
}

func homeDir() string {
	if h := os.Getenv("REPOCHAT_HOME"); h != "" {
		return h
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".repochat")
}

// Path returns a path under the repochat home directory.
func Path(parts ...string) string {
	p := GetPaths()
	allParts := append([]string{p.Home}, parts...)
	return filepath.Join(allParts...)
}

// EnsureDir creates a directory if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
