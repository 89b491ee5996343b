package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/melba-ui/melba/internal/errors"
	"github.com/melba-ui/melba/pkg/anim"
	"github.com/melba-ui/melba/pkg/position"
	"github.com/melba-ui/melba/pkg/toast"
)

const (
	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "melba.yaml"

	// DefaultAddr is the default demo server listen address.
	DefaultAddr = "localhost:8620"

	// DefaultHeartbeat is the default WebSocket ping interval.
	DefaultHeartbeat = "30s"

	// DefaultToastDuration is the default auto-dismiss delay.
	DefaultToastDuration = "5s"
)

// Config represents the complete melba.yaml configuration.
type Config struct {
	// Name is the project name.
	Name string `yaml:"name,omitempty"`

	// Version is the project version.
	Version string `yaml:"version"`

	// Server contains demo server settings.
	Server ServerConfig `yaml:"server"`

	// Toast contains toast lifecycle defaults.
	Toast ToastConfig `yaml:"toast"`

	// Anim contains animation settings.
	Anim AnimConfig `yaml:"anim"`

	// configPath stores the path where the config was loaded from.
	configPath string

	// raw holds the document as loaded, so Save can preserve keys
	// this tool does not manage.
	raw map[string]any
}

// ServerConfig contains demo server settings.
type ServerConfig struct {
	// Addr is the host:port the demo server binds to.
	Addr string `yaml:"addr"`

	// AllowShow permits connected clients to create toasts over the
	// socket. Off by default.
	AllowShow bool `yaml:"allowShow"`

	// Heartbeat is the WebSocket ping interval (e.g., "30s").
	Heartbeat string `yaml:"heartbeat"`
}

// ToastConfig contains toast lifecycle defaults.
type ToastConfig struct {
	// Position is the default screen anchor for new toasts.
	Position string `yaml:"position"`

	// Theme is the default visual theme (light, dark).
	Theme string `yaml:"theme"`

	// Type is the default toast type (info, success, warning, danger).
	Type string `yaml:"type"`

	// Duration is the auto-dismiss delay (e.g., "5s").
	Duration string `yaml:"duration"`

	// MaxVisible caps how many toasts render at once.
	MaxVisible int `yaml:"maxVisible"`

	// NewestOnTop renders the most recent toast first.
	NewestOnTop bool `yaml:"newestOnTop"`

	// PauseOnHover pauses the dismiss timer while a toast is hovered.
	PauseOnHover bool `yaml:"pauseOnHover"`

	// Dismissible shows a manual close affordance.
	Dismissible bool `yaml:"dismissible"`
}

// AnimConfig contains animation settings.
type AnimConfig struct {
	// Preset is the transition family (slide, fade, bounce, none).
	Preset string `yaml:"preset"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Version: "0.1.0",
		Server: ServerConfig{
			Addr:      DefaultAddr,
			Heartbeat: DefaultHeartbeat,
		},
		Toast: ToastConfig{
			Position:     string(position.Default),
			Theme:        string(toast.ThemeLight),
			Type:         string(toast.TypeInfo),
			Duration:     DefaultToastDuration,
			MaxVisible:   toast.DefaultMaxVisible,
			NewestOnTop:  true,
			PauseOnHover: true,
			Dismissible:  true,
		},
		Anim: AnimConfig{
			Preset: string(anim.DefaultPreset),
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for melba.yaml in the directory.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E021").
				WithDetail("No melba.yaml found in " + filepath.Dir(path)).
				WithSuggestion("Run 'melba init' to create a new project or create melba.yaml manually")
		}
		return nil, errors.New("E001").Wrap(err)
	}

	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E001").
			WithLocationFromYAML(path, err).
			WithSuggestion("Check that melba.yaml is valid YAML").
			Wrap(err)
	}

	// Keep the document as loaded so Save can round-trip keys this
	// tool does not manage.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err == nil {
		cfg.raw = raw
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path. Keys present
// in the loaded file that this tool does not manage are written back
// unchanged.
func (c *Config) SaveTo(path string) error {
	out, err := yaml.Marshal(c)
	if err != nil {
		return errors.New("E001").Wrap(err)
	}

	if c.raw != nil {
		// Round-trip the managed fields through a map and lay them
		// over the loaded document.
		var managed map[string]any
		if err := yaml.Unmarshal(out, &managed); err != nil {
			return errors.New("E001").Wrap(err)
		}
		out, err = yaml.Marshal(mergeMaps(c.raw, managed))
		if err != nil {
			return errors.New("E001").Wrap(err)
		}
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return errors.New("E001").Wrap(err)
	}

	c.configPath = path
	return nil
}

// mergeMaps lays overlay over base recursively. Nested maps merge key
// by key, anything else in overlay wins, and base keys absent from
// overlay are kept.
func mergeMaps(base, overlay map[string]any) map[string]any {
	if base == nil {
		return overlay
	}
	out := make(map[string]any, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		if bm, ok := out[k].(map[string]any); ok {
			if om, ok := v.(map[string]any); ok {
				out[k] = mergeMaps(bm, om)
				continue
			}
		}
		out[k] = v
	}
	return out
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
	if c.Version == "" {
		c.Version = "0.1.0"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.Heartbeat == "" {
		c.Server.Heartbeat = DefaultHeartbeat
	}
	if c.Toast.Position == "" {
		c.Toast.Position = string(position.Default)
	}
	if c.Toast.Theme == "" {
		c.Toast.Theme = string(toast.ThemeLight)
	}
	if c.Toast.Type == "" {
		c.Toast.Type = string(toast.TypeInfo)
	}
	if c.Toast.Duration == "" {
		c.Toast.Duration = DefaultToastDuration
	}
	if c.Toast.MaxVisible == 0 {
		c.Toast.MaxVisible = toast.DefaultMaxVisible
	}
	if c.Anim.Preset == "" {
		c.Anim.Preset = string(anim.DefaultPreset)
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	_, port, err := net.SplitHostPort(c.Server.Addr)
	if err != nil {
		return errors.New("E002").
			WithDetail(fmt.Sprintf("Cannot parse %q: %v", c.Server.Addr, err))
	}
	if n, err := strconv.Atoi(port); err != nil || n < 0 || n > 65535 {
		return errors.New("E002").
			WithDetail("Port must be between 0 and 65535")
	}

	hb, err := c.HeartbeatInterval()
	if err != nil {
		return err
	}
	if hb <= 0 {
		return errors.New("E006").
			WithDetail("Heartbeat must be positive")
	}

	if !position.Position(c.Toast.Position).Valid() {
		return errors.New("E004").
			WithDetail(fmt.Sprintf("Unknown position %q", c.Toast.Position)).
			WithSuggestion("Use one of: " + positionNames())
	}
	if !toast.Theme(c.Toast.Theme).Valid() {
		return errors.New("E007").
			WithDetail(fmt.Sprintf("Unknown theme %q", c.Toast.Theme))
	}
	if !toast.Type(c.Toast.Type).Valid() {
		return errors.New("E008").
			WithDetail(fmt.Sprintf("Unknown toast type %q", c.Toast.Type))
	}

	d, err := c.ToastDuration()
	if err != nil {
		return err
	}
	if d < 0 {
		return errors.New("E006").
			WithDetail("Toast duration cannot be negative")
	}
	if c.Toast.MaxVisible < 0 {
		return errors.New("E006").
			WithDetail("maxVisible cannot be negative")
	}

	if !anim.Preset(c.Anim.Preset).Valid() {
		return errors.New("E003").
			WithDetail(fmt.Sprintf("Unknown preset %q", c.Anim.Preset)).
			WithSuggestion("Use one of: slide, fade, bounce, none")
	}
	return nil
}

// HeartbeatInterval parses the server heartbeat setting.
func (c *Config) HeartbeatInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.Server.Heartbeat)
	if err != nil {
		return 0, errors.New("E005").
			WithDetail(fmt.Sprintf("Invalid heartbeat %q: %v", c.Server.Heartbeat, err))
	}
	return d, nil
}

// ToastDuration parses the toast auto-dismiss setting.
func (c *Config) ToastDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Toast.Duration)
	if err != nil {
		return 0, errors.New("E005").
			WithDetail(fmt.Sprintf("Invalid toast duration %q: %v", c.Toast.Duration, err))
	}
	return d, nil
}

// EngineConfig translates the file's toast and anim sections into an
// engine configuration.
func (c *Config) EngineConfig() (*toast.Config, error) {
	d, err := c.ToastDuration()
	if err != nil {
		return nil, err
	}

	cfg := toast.DefaultConfig()
	cfg.Position = position.Position(c.Toast.Position)
	cfg.Theme = toast.Theme(c.Toast.Theme)
	cfg.DefaultType = toast.Type(c.Toast.Type)
	cfg.DefaultDuration = d
	cfg.Dismissible = c.Toast.Dismissible
	cfg.MaxVisible = c.Toast.MaxVisible
	cfg.NewestOnTop = c.Toast.NewestOnTop
	cfg.PauseOnHover = c.Toast.PauseOnHover
	cfg.Preset = anim.Preset(c.Anim.Preset)
	return cfg, nil
}

// URL returns the full URL for the demo server.
func (c *Config) URL() string {
	addr := c.Server.Addr
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}

// positionNames returns the canonical placements as a comma list.
func positionNames() string {
	all := position.All()
	names := make([]string, len(all))
	for i, p := range all {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing melba.yaml, or an error if not found.
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
			return "", errors.New("E021").
				WithDetail("No melba.yaml found in " + startDir + " or any parent directory").
				WithSuggestion("Run 'melba init' to create a new project")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
