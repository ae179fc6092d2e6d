package config

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vango-dev/modalhost/internal/errors"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultPort is the default inspector server port.
	DefaultPort = 7070

	// DefaultHost is the default inspector server host.
	DefaultHost = "localhost"

	// DefaultMetricsPath is where Prometheus metrics are served.
	DefaultMetricsPath = "/metrics"

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "modalhost"
)

// ConfigFileNames are the file names searched for, in order.
var ConfigFileNames = []string{"modalhost.yaml", "modalhost.yml", "modalhost.json"}

// Config represents the complete modalhost configuration.
type Config struct {
	// Host configures the modal provider.
	Host HostConfig `json:"host" yaml:"host"`

	// Server configures the inspector server.
	Server ServerConfig `json:"server" yaml:"server"`

	// Metrics configures Prometheus collectors.
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`

	// Logging configures the slog handler.
	Logging LoggingConfig `json:"logging" yaml:"logging"`

	// Render configures HTML output.
	Render RenderConfig `json:"render" yaml:"render"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// HostConfig contains provider settings.
type HostConfig struct {
	// Suspense wraps the modal layer in a loading boundary. Default: true.
	Suspense *bool `json:"suspense,omitempty" yaml:"suspense,omitempty"`

	// Fallback is the text shown while lazy modals load.
	Fallback string `json:"fallback,omitempty" yaml:"fallback,omitempty"`
}

// ServerConfig contains inspector server settings.
type ServerConfig struct {
	Host        string `json:"host,omitempty" yaml:"host,omitempty"`
	Port        int    `json:"port,omitempty" yaml:"port,omitempty"`
	Inspector   bool   `json:"inspector" yaml:"inspector"`
	Metrics     bool   `json:"metrics" yaml:"metrics"`
	MetricsPath string `json:"metricsPath,omitempty" yaml:"metricsPath,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Subsystem string `json:"subsystem,omitempty" yaml:"subsystem,omitempty"`
}

// LoggingConfig contains logger settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// RenderConfig contains HTML renderer settings.
type RenderConfig struct {
	Pretty bool `json:"pretty,omitempty" yaml:"pretty,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	suspense := true
	return &Config{
		Host: HostConfig{
			Suspense: &suspense,
		},
		Server: ServerConfig{
			Host:        DefaultHost,
			Port:        DefaultPort,
			Inspector:   true,
			Metrics:     true,
			MetricsPath: DefaultMetricsPath,
		},
		Metrics: MetricsConfig{
			Namespace: DefaultNamespace,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from the first config file found in dir.
func Load(dir string) (*Config, error) {
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("M141").
		WithDetail("No modalhost.yaml or modalhost.json found in " + dir).
		WithSuggestion("Create modalhost.yaml, or run without --config to use defaults")
}

// LoadFile reads configuration from the specified file path. Files ending
// in .json are parsed as JSON, everything else as YAML.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("M141").
				WithDetail("No config file at " + path)
		}
		return nil, errors.New("M120").Wrap(err)
	}

	cfg := New()
	if isJSON(path) {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.New("M120").
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithSuggestion("Check that the file is valid JSON")
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		e := errors.New("M120").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check indentation and that values have the documented types")
		if line := yamlErrorLine(err); line > 0 {
			e = e.WithLocation(path, line, 0)
		}
		return nil, e
	}

	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}

// yamlErrorLine extracts the line number from a yaml.v3 error message.
func yamlErrorLine(err error) int {
	msg := err.Error()
	i := strings.Index(msg, "line ")
	if i < 0 {
		return 0
	}
	rest := msg[i+len("line "):]
	end := strings.IndexFunc(rest, func(r rune) bool { return r < '0' || r > '9' })
	if end < 0 {
		end = len(rest)
	}
	n, err := strconv.Atoi(rest[:end])
	if err != nil {
		return 0
	}
	return n
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path, as JSON or YAML
// depending on the extension.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isJSON(path) {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return errors.New("M120").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("M120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Host.Suspense == nil {
		suspense := true
		c.Host.Suspense = &suspense
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.MetricsPath == "" {
		c.Server.MetricsPath = DefaultMetricsPath
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("M122").
			WithDetail("server.port must be between 0 and 65535")
	}
	if !strings.HasPrefix(c.Server.MetricsPath, "/") {
		return errors.New("M122").
			WithDetail("server.metricsPath must start with /")
	}
	if _, err := parseLevel(c.Logging.Level); err != nil {
		return errors.New("M122").WithDetail(err.Error())
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return errors.New("M122").
			WithDetail(fmt.Sprintf("logging.format %q is not text or json", c.Logging.Format))
	}
	return nil
}

// SuspenseEnabled reports whether the provider uses a suspense boundary.
func (c *Config) SuspenseEnabled() bool {
	return c.Host.Suspense == nil || *c.Host.Suspense
}

// Address returns the address string for the inspector server.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// URL returns the full URL for the inspector server.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// Logger builds a slog logger writing to w per the logging settings.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Logging.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("logging.level %q is not debug, info, warn or error", s)
	}
	return level, nil
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range ConfigFileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to find one containing a config file.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("M141").
				WithDetail("No modalhost config found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the working directory or
// its nearest parent with a config file. Without any config file the
// defaults are returned.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		if errors.HasCode(err, "M141") {
			return New(), nil
		}
		return nil, err
	}

	return Load(root)
}
