// Package config resolves keypub settings from TOML files and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultSiteHost   = "jiming.cleanyong.familybankbank.com"
	DefaultAPIURL     = "http://127.0.0.1:3003"
	DefaultDBFileName = "pubkeys.db"
	DefaultLogLevel   = "debug"

	fileName = ".keypub.toml"

	envConfigDir    = "KEYPUB_CONFIG_DIR"
	envTrustProject = "KEYPUB_TRUST_PROJECT_CONFIG"
	envSiteHost     = "WEBSITE_NAME"
	envAPIURL       = "KEYPUB_API_URL"
	envDBPath       = "KEYPUB_DB"
)

// Config holds the effective settings.
type Config struct {
	SiteHost string `toml:"site_host"`
	APIURL   string `toml:"api_url"`
	DBPath   string `toml:"db_path"`
	LogLevel string `toml:"log_level"`

	// TrustedProjectConfigPath is set when ./.keypub.toml was read.
	TrustedProjectConfigPath string `toml:"-"`
}

// setting binds a file key to its field and the env var that overrides it.
type setting struct {
	key   string
	env   string
	field func(*Config) *string
}

var settings = []setting{
	{key: "site_host", env: envSiteHost, field: func(c *Config) *string { return &c.SiteHost }},
	{key: "api_url", env: envAPIURL, field: func(c *Config) *string { return &c.APIURL }},
	{key: "db_path", env: envDBPath, field: func(c *Config) *string { return &c.DBPath }},
	// log_level is overridden by the CLI, which also honours --log-level.
	{key: "log_level", field: func(c *Config) *string { return &c.LogLevel }},
}

func lookup(key string) (setting, bool) {
	for _, s := range settings {
		if s.key == key {
			return s, true
		}
	}
	return setting{}, false
}

// Default returns the built-in settings. DBPath stays empty until Load
// resolves it against the working directory.
func Default() Config {
	return Config{
		SiteHost: DefaultSiteHost,
		APIURL:   DefaultAPIURL,
		LogLevel: DefaultLogLevel,
	}
}

// AllowedKeys lists the keys accepted by Get and SetKey.
func AllowedKeys() []string {
	keys := make([]string, 0, len(settings))
	for _, s := range settings {
		keys = append(keys, s.key)
	}
	return keys
}

// IsAllowedKey reports whether key names a setting.
func IsAllowedKey(key string) bool {
	_, ok := lookup(key)
	return ok
}

// Get returns the value of a setting.
func (c *Config) Get(key string) (string, error) {
	s, ok := lookup(key)
	if !ok {
		return "", fmt.Errorf("unknown key: %s", key)
	}
	return *s.field(c), nil
}

// ShareURL builds https://{host}/k/{id}.
func ShareURL(host, id string) string {
	return fmt.Sprintf("https://%s/k/%s", NormalizeSiteHost(host), id)
}

// NormalizeSiteHost strips a scheme and trailing slashes from a configured host.
func NormalizeSiteHost(host string) string {
	host = strings.TrimSpace(host)
	lower := strings.ToLower(host)
	for _, scheme := range []string{"https://", "http://"} {
		if strings.HasPrefix(lower, scheme) {
			host = host[len(scheme):]
			break
		}
	}
	host = strings.TrimRight(host, "/")
	if host == "" {
		return DefaultSiteHost
	}
	return host
}

// GlobalPath is the user-level config file, or the file in KEYPUB_CONFIG_DIR.
func GlobalPath() (string, error) {
	if dir, ok := configDirOverride(); ok {
		return filepath.Join(dir, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fileName), nil
}

// ProjectPath is ./.keypub.toml, or the file in KEYPUB_CONFIG_DIR.
func ProjectPath() (string, error) {
	if dir, ok := configDirOverride(); ok {
		return filepath.Join(dir, fileName), nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, fileName), nil
}

// SetKey writes key=value into the TOML file at path, keeping other entries.
func SetKey(path, key, value string) error {
	if !IsAllowedKey(key) {
		return fmt.Errorf("unknown key: %s", key)
	}

	entries := map[string]any{}
	if _, err := toml.DecodeFile(path, &entries); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	value = strings.TrimSpace(value)
	if key == "site_host" {
		value = NormalizeSiteHost(value)
	}
	entries[key] = value

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(entries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load layers the global file, the trusted project file and the environment
// over the defaults.
func Load() (*Config, error) {
	cfg := Default()

	if dir, ok := configDirOverride(); ok {
		if _, err := cfg.merge(filepath.Join(dir, fileName)); err != nil {
			return nil, err
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			if _, err := cfg.merge(filepath.Join(home, fileName)); err != nil {
				return nil, err
			}
		}
		if projectTrusted() {
			if cwd, err := os.Getwd(); err == nil {
				path := filepath.Join(cwd, fileName)
				read, err := cfg.merge(path)
				if err != nil {
					return nil, err
				}
				if read {
					cfg.TrustedProjectConfigPath = path
				}
			}
		}
	}

	for _, s := range settings {
		if s.env == "" {
			continue
		}
		if v := strings.TrimSpace(os.Getenv(s.env)); v != "" {
			*s.field(&cfg) = v
		}
	}

	if cfg.DBPath == "" {
		if cwd, err := os.Getwd(); err == nil {
			cfg.DBPath = filepath.Join(cwd, DefaultDBFileName)
		}
	}
	cfg.SiteHost = NormalizeSiteHost(cfg.SiteHost)

	return &cfg, nil
}

// merge decodes the file at path over c. A missing file or a directory is
// skipped and reported as not read.
func (c *Config) merge(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if info.IsDir() {
		return false, nil
	}
	if _, err := toml.DecodeFile(path, c); err != nil {
		return false, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return true, nil
}

func configDirOverride() (string, bool) {
	dir := strings.TrimSpace(os.Getenv(envConfigDir))
	return dir, dir != ""
}

func projectTrusted() bool {
	ok, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(envTrustProject)))
	return err == nil && ok
}
