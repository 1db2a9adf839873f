package config

import (
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/events"
	"github.com/vango-dev/vtree/pkg/vdom"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "vtree.json"

	// DefaultPort is the default preview server port.
	DefaultPort = 4000

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"

	// DefaultPage is the default tree document.
	DefaultPage = "page.yaml"

	// DefaultContainer is the id of the element trees render into.
	DefaultContainer = "app"

	// DefaultSnapshotDir is the default local snapshot directory.
	DefaultSnapshotDir = "snapshots"

	// DefaultNamespace is the default metrics namespace.
	DefaultNamespace = "vtree"

	// DefaultMetricsPath is the default metrics endpoint of the preview server.
	DefaultMetricsPath = "/metrics"
)

// Config represents the complete vtree.json configuration.
type Config struct {
	// Page is the tree document rendered by `vtree render` and `vtree serve`.
	Page string `json:"page,omitempty"`

	// Container is the id of the element the tree renders into.
	Container string `json:"container,omitempty"`

	// Render contains renderer settings.
	Render RenderConfig `json:"render,omitempty"`

	// Preview contains live preview server settings.
	Preview PreviewConfig `json:"preview,omitempty"`

	// Snapshot contains snapshot export settings.
	Snapshot SnapshotConfig `json:"snapshot,omitempty"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// RenderConfig contains renderer settings.
type RenderConfig struct {
	// MaxComponentDepth bounds nested component invocations.
	MaxComponentDepth int `json:"maxComponentDepth,omitempty"`

	// Events are the event types containers delegate.
	Events []string `json:"events,omitempty"`
}

// PreviewConfig contains live preview server settings.
type PreviewConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// Watch re-renders when the tree document changes.
	Watch bool `json:"watch,omitempty"`
}

// SnapshotConfig contains snapshot export settings.
type SnapshotConfig struct {
	// Dir is the local directory snapshots are written to.
	Dir string `json:"dir,omitempty"`

	// S3 uploads snapshots to a bucket instead when Bucket is set.
	S3 S3Config `json:"s3,omitempty"`
}

// S3Config contains S3 snapshot settings.
type S3Config struct {
	Bucket   string `json:"bucket,omitempty"`
	Prefix   string `json:"prefix,omitempty"`
	Region   string `json:"region,omitempty"`
	Endpoint string `json:"endpoint,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled registers the render collectors and serves them in preview.
	Enabled bool `json:"enabled,omitempty"`

	// Namespace is the metrics namespace.
	Namespace string `json:"namespace,omitempty"`

	// Path is the preview server's metrics endpoint.
	Path string `json:"path,omitempty"`
}

// Default creates a new Config with default values.
func Default() *Config {
	return &Config{
		Page:      DefaultPage,
		Container: DefaultContainer,
		Render: RenderConfig{
			MaxComponentDepth: vdom.DefaultMaxDepth,
			Events:            append([]string(nil), events.SupportedEvents...),
		},
		Preview: PreviewConfig{
			Host:  DefaultHost,
			Port:  DefaultPort,
			Watch: true,
		},
		Snapshot: SnapshotConfig{
			Dir: DefaultSnapshotDir,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
			Path:      DefaultMetricsPath,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for vtree.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("V011").
				WithDetail("No vtree.json found in " + filepath.Dir(path)).
				WithSuggestion("Create vtree.json or run without a config to use the defaults")
		}
		return nil, errors.New("V011").Wrap(err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("V010").
			WithDetail("Failed to parse vtree.json: " + err.Error()).
			WithSuggestion("Check that vtree.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// LoadOrDefault loads vtree.json from dir, falling back to the defaults
// when the file does not exist.
func LoadOrDefault(dir string) (*Config, error) {
	if !Exists(dir) {
		cfg := Default()
		cfg.configPath = filepath.Join(dir, ConfigFileName)
		return cfg, nil
	}
	return Load(dir)
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("V010").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("V011").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Page == "" {
		c.Page = DefaultPage
	}
	if c.Container == "" {
		c.Container = DefaultContainer
	}

	// Render
	if c.Render.MaxComponentDepth == 0 {
		c.Render.MaxComponentDepth = vdom.DefaultMaxDepth
	}
	if len(c.Render.Events) == 0 {
		c.Render.Events = append([]string(nil), events.SupportedEvents...)
	}

	// Preview
	if c.Preview.Host == "" {
		c.Preview.Host = DefaultHost
	}
	if c.Preview.Port == 0 {
		c.Preview.Port = DefaultPort
	}

	// Snapshot
	if c.Snapshot.Dir == "" {
		c.Snapshot.Dir = DefaultSnapshotDir
	}

	// Metrics
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Render.MaxComponentDepth < 1 {
		return errors.New("V010").
			WithDetail("render.maxComponentDepth must be at least 1")
	}
	for _, e := range c.Render.Events {
		if strings.TrimSpace(e) == "" {
			return errors.New("V010").
				WithDetail("render.events must not contain empty entries")
		}
	}
	if c.Preview.Port < 0 || c.Preview.Port > 65535 {
		return errors.New("V010").
			WithDetail("Port must be between 0 and 65535")
	}
	if c.Snapshot.S3.Bucket != "" && c.Snapshot.S3.Region == "" {
		return errors.New("V010").
			WithDetail("snapshot.s3.region is required when a bucket is set")
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.New("V010").
			WithDetailf("metrics.path %q must start with /", c.Metrics.Path)
	}
	return nil
}

// PreviewAddress returns the address string for the preview server.
func (c *Config) PreviewAddress() string {
	return net.JoinHostPort(c.Preview.Host, strconv.Itoa(c.Preview.Port))
}

// PreviewURL returns the full URL for the preview server.
func (c *Config) PreviewURL() string {
	return "http://" + c.PreviewAddress()
}

// PagePath returns the absolute path to the tree document.
func (c *Config) PagePath() string {
	return c.resolve(c.Page)
}

// SnapshotPath returns the absolute path to the snapshot directory.
func (c *Config) SnapshotPath() string {
	return c.resolve(c.Snapshot.Dir)
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing vtree.json, or an error if not found.
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
			return "", errors.New("V011").
				WithDetail("No vtree.json found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}
