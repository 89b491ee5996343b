package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/melba-ui/melba/internal/errors"
	"github.com/melba-ui/melba/pkg/anim"
	"github.com/melba-ui/melba/pkg/position"
	"github.com/melba-ui/melba/pkg/toast"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Version != "0.1.0" {
		t.Errorf("Version = %q, want %q", cfg.Version, "0.1.0")
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.Server.AllowShow {
		t.Error("Server.AllowShow should be false by default")
	}
	if cfg.Server.Heartbeat != DefaultHeartbeat {
		t.Errorf("Server.Heartbeat = %q, want %q", cfg.Server.Heartbeat, DefaultHeartbeat)
	}
	if cfg.Toast.Position != string(position.Default) {
		t.Errorf("Toast.Position = %q, want %q", cfg.Toast.Position, position.Default)
	}
	if cfg.Toast.MaxVisible != toast.DefaultMaxVisible {
		t.Errorf("Toast.MaxVisible = %d, want %d", cfg.Toast.MaxVisible, toast.DefaultMaxVisible)
	}
	if !cfg.Toast.NewestOnTop || !cfg.Toast.PauseOnHover || !cfg.Toast.Dismissible {
		t.Error("Toast boolean policies should default to true")
	}
	if cfg.Anim.Preset != string(anim.DefaultPreset) {
		t.Errorf("Anim.Preset = %q, want %q", cfg.Anim.Preset, anim.DefaultPreset)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	// Loading a directory without melba.yaml fails
	_, err := Load(tmpDir)
	if err == nil {
		t.Error("Expected error for missing config")
	}
	if !strings.Contains(err.Error(), "E021") {
		t.Errorf("Expected E021 error, got: %v", err)
	}

	configPath := filepath.Join(tmpDir, ConfigFileName)
	configYAML := `name: demo-app
server:
  addr: "0.0.0.0:9000"
  allowShow: true
toast:
  position: top-center
  maxVisible: 3
  pauseOnHover: false
anim:
  preset: fade
`
	if err := os.WriteFile(configPath, []byte(configYAML), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Name != "demo-app" {
		t.Errorf("Name = %q, want %q", cfg.Name, "demo-app")
	}
	if cfg.Server.Addr != "0.0.0.0:9000" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, "0.0.0.0:9000")
	}
	if !cfg.Server.AllowShow {
		t.Error("Server.AllowShow should be true")
	}
	if cfg.Toast.Position != "top-center" {
		t.Errorf("Toast.Position = %q, want %q", cfg.Toast.Position, "top-center")
	}
	if cfg.Toast.MaxVisible != 3 {
		t.Errorf("Toast.MaxVisible = %d, want %d", cfg.Toast.MaxVisible, 3)
	}
	if cfg.Toast.PauseOnHover {
		t.Error("Toast.PauseOnHover should be false")
	}
	if cfg.Anim.Preset != "fade" {
		t.Errorf("Anim.Preset = %q, want %q", cfg.Anim.Preset, "fade")
	}

	// Absent keys keep their defaults
	if cfg.Version != "0.1.0" {
		t.Errorf("Version = %q, want default %q", cfg.Version, "0.1.0")
	}
	if cfg.Server.Heartbeat != DefaultHeartbeat {
		t.Errorf("Server.Heartbeat = %q, want default %q", cfg.Server.Heartbeat, DefaultHeartbeat)
	}
	if cfg.Toast.Duration != DefaultToastDuration {
		t.Errorf("Toast.Duration = %q, want default %q", cfg.Toast.Duration, DefaultToastDuration)
	}
	if !cfg.Toast.NewestOnTop {
		t.Error("Toast.NewestOnTop should keep its default")
	}
	if cfg.Path() != configPath {
		t.Errorf("Path() = %q, want %q", cfg.Path(), configPath)
	}
	if cfg.Dir() != tmpDir {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), tmpDir)
	}
}

func TestLoadFile_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)

	content := "toast:\n  maxVisible: many\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(configPath)
	if err == nil {
		t.Fatal("Expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "E001") {
		t.Errorf("Expected E001 error, got: %v", err)
	}

	me, ok := err.(*errors.MelbaError)
	if !ok {
		t.Fatalf("error type = %T, want *errors.MelbaError", err)
	}
	if me.Location == nil {
		t.Fatal("expected a location extracted from the yaml error")
	}
	if me.Location.Line != 2 {
		t.Errorf("Location.Line = %d, want %d", me.Location.Line, 2)
	}
}

func TestSave(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)

	cfg := New()
	cfg.Name = "saved-app"
	cfg.Toast.MaxVisible = 7

	// Save should fail without configPath set
	err := cfg.Save()
	if err == nil {
		t.Error("Expected error when saving without path")
	}

	// SaveTo should work
	err = cfg.SaveTo(configPath)
	if err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}

	// Reload and verify
	loaded, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if loaded.Name != "saved-app" {
		t.Errorf("Name = %q, want %q", loaded.Name, "saved-app")
	}
	if loaded.Toast.MaxVisible != 7 {
		t.Errorf("Toast.MaxVisible = %d, want %d", loaded.Toast.MaxVisible, 7)
	}

	// Now Save should work
	loaded.Toast.MaxVisible = 9
	err = loaded.Save()
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}

	reloaded, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if reloaded.Toast.MaxVisible != 9 {
		t.Errorf("Toast.MaxVisible = %d, want %d", reloaded.Toast.MaxVisible, 9)
	}
}

func TestSavePreservesUnknownKeys(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)

	configYAML := `name: demo
deploy:
  bucket: releases
server:
  addr: "localhost:9000"
  compression: zstd
`
	if err := os.WriteFile(configPath, []byte(configYAML), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	cfg.Toast.MaxVisible = 2
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("reparse error: %v", err)
	}

	deploy, ok := doc["deploy"].(map[string]any)
	if !ok {
		t.Fatal("unmanaged top-level key 'deploy' was dropped")
	}
	if deploy["bucket"] != "releases" {
		t.Errorf("deploy.bucket = %v, want %q", deploy["bucket"], "releases")
	}

	server, ok := doc["server"].(map[string]any)
	if !ok {
		t.Fatal("server section missing")
	}
	if server["compression"] != "zstd" {
		t.Errorf("unmanaged nested key server.compression = %v, want %q", server["compression"], "zstd")
	}
	if server["addr"] != "localhost:9000" {
		t.Errorf("server.addr = %v, want %q", server["addr"], "localhost:9000")
	}

	toastSec, ok := doc["toast"].(map[string]any)
	if !ok {
		t.Fatal("toast section missing")
	}
	if toastSec["maxVisible"] != 2 {
		t.Errorf("toast.maxVisible = %v, want %d", toastSec["maxVisible"], 2)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantCode string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:     "unparseable address",
			mutate:   func(c *Config) { c.Server.Addr = "nonsense" },
			wantCode: "E002",
		},
		{
			name:     "port out of range",
			mutate:   func(c *Config) { c.Server.Addr = "localhost:99999" },
			wantCode: "E002",
		},
		{
			name:     "unparseable heartbeat",
			mutate:   func(c *Config) { c.Server.Heartbeat = "sometimes" },
			wantCode: "E005",
		},
		{
			name:     "non-positive heartbeat",
			mutate:   func(c *Config) { c.Server.Heartbeat = "0s" },
			wantCode: "E006",
		},
		{
			name:     "unknown position",
			mutate:   func(c *Config) { c.Toast.Position = "center-stage" },
			wantCode: "E004",
		},
		{
			name:     "unknown theme",
			mutate:   func(c *Config) { c.Toast.Theme = "sepia" },
			wantCode: "E007",
		},
		{
			name:     "unknown toast type",
			mutate:   func(c *Config) { c.Toast.Type = "fatal" },
			wantCode: "E008",
		},
		{
			name:     "unparseable duration",
			mutate:   func(c *Config) { c.Toast.Duration = "fast" },
			wantCode: "E005",
		},
		{
			name:     "negative duration",
			mutate:   func(c *Config) { c.Toast.Duration = "-2s" },
			wantCode: "E006",
		},
		{
			name:     "negative maxVisible",
			mutate:   func(c *Config) { c.Toast.MaxVisible = -1 },
			wantCode: "E006",
		},
		{
			name:     "unknown preset",
			mutate:   func(c *Config) { c.Anim.Preset = "wobble" },
			wantCode: "E003",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Validate error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Expected a validation error")
			}
			if !strings.Contains(err.Error(), tt.wantCode) {
				t.Errorf("Expected %s error, got: %v", tt.wantCode, err)
			}
		})
	}
}

func TestEngineConfig(t *testing.T) {
	cfg := New()
	cfg.Toast.Position = "top-left"
	cfg.Toast.Duration = "8s"
	cfg.Toast.MaxVisible = 4
	cfg.Toast.PauseOnHover = false
	cfg.Anim.Preset = "bounce"

	ec, err := cfg.EngineConfig()
	if err != nil {
		t.Fatalf("EngineConfig error: %v", err)
	}

	if ec.Position != position.TopLeft {
		t.Errorf("Position = %q, want %q", ec.Position, position.TopLeft)
	}
	if ec.DefaultDuration != 8*time.Second {
		t.Errorf("DefaultDuration = %v, want %v", ec.DefaultDuration, 8*time.Second)
	}
	if ec.MaxVisible != 4 {
		t.Errorf("MaxVisible = %d, want %d", ec.MaxVisible, 4)
	}
	if ec.PauseOnHover {
		t.Error("PauseOnHover should be false")
	}
	if ec.Preset != anim.PresetBounce {
		t.Errorf("Preset = %q, want %q", ec.Preset, anim.PresetBounce)
	}
	if ec.Theme != toast.ThemeLight {
		t.Errorf("Theme = %q, want %q", ec.Theme, toast.ThemeLight)
	}
	if ec.DefaultType != toast.TypeInfo {
		t.Errorf("DefaultType = %q, want %q", ec.DefaultType, toast.TypeInfo)
	}
	if !ec.Dismissible || !ec.NewestOnTop {
		t.Error("Dismissible and NewestOnTop should keep their defaults")
	}

	cfg.Toast.Duration = "soon"
	if _, err := cfg.EngineConfig(); err == nil {
		t.Error("Expected error for unparseable duration")
	}
}

func TestHeartbeatInterval(t *testing.T) {
	cfg := New()
	cfg.Server.Heartbeat = "45s"

	d, err := cfg.HeartbeatInterval()
	if err != nil {
		t.Fatalf("HeartbeatInterval error: %v", err)
	}
	if d != 45*time.Second {
		t.Errorf("HeartbeatInterval = %v, want %v", d, 45*time.Second)
	}

	cfg.Server.Heartbeat = "often"
	if _, err := cfg.HeartbeatInterval(); err == nil {
		t.Error("Expected error for unparseable heartbeat")
	}
}

func TestURL(t *testing.T) {
	cfg := New()

	if got := cfg.URL(); got != "http://localhost:8620" {
		t.Errorf("URL = %q, want %q", got, "http://localhost:8620")
	}

	cfg.Server.Addr = ":9000"
	if got := cfg.URL(); got != "http://localhost:9000" {
		t.Errorf("URL = %q, want %q", got, "http://localhost:9000")
	}

	cfg.Server.Addr = "0.0.0.0:9000"
	if got := cfg.URL(); got != "http://0.0.0.0:9000" {
		t.Errorf("URL = %q, want %q", got, "http://0.0.0.0:9000")
	}
}

func TestExists(t *testing.T) {
	tmpDir := t.TempDir()

	if Exists(tmpDir) {
		t.Error("Exists should be false for empty directory")
	}

	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte("name: x\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if !Exists(tmpDir) {
		t.Error("Exists should be true after creating config")
	}
}

func TestFindProjectRoot(t *testing.T) {
	tmpDir := t.TempDir()
	nestedDir := filepath.Join(tmpDir, "a", "b", "c")
	if err := os.MkdirAll(nestedDir, 0755); err != nil {
		t.Fatal(err)
	}

	// Should fail when no config exists
	_, err := FindProjectRoot(nestedDir)
	if err == nil {
		t.Error("FindProjectRoot should fail when no config exists")
	}

	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte("name: x\n"), 0644); err != nil {
		t.Fatal(err)
	}

	// Should find root from nested directory
	root, err := FindProjectRoot(nestedDir)
	if err != nil {
		t.Fatalf("FindProjectRoot error: %v", err)
	}
	if root != tmpDir {
		t.Errorf("FindProjectRoot = %q, want %q", root, tmpDir)
	}

	// Should find root from middle directory
	root, err = FindProjectRoot(filepath.Join(tmpDir, "a"))
	if err != nil {
		t.Fatalf("FindProjectRoot error: %v", err)
	}
	if root != tmpDir {
		t.Errorf("FindProjectRoot = %q, want %q", root, tmpDir)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.Toast.Position != string(position.Default) {
		t.Errorf("Toast.Position = %q, want %q", cfg.Toast.Position, position.Default)
	}
	if cfg.Toast.MaxVisible != toast.DefaultMaxVisible {
		t.Errorf("Toast.MaxVisible = %d, want %d", cfg.Toast.MaxVisible, toast.DefaultMaxVisible)
	}
	if cfg.Anim.Preset != string(anim.DefaultPreset) {
		t.Errorf("Anim.Preset = %q, want %q", cfg.Anim.Preset, anim.DefaultPreset)
	}
}
