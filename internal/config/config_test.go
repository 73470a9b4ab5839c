package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test server defaults
	if cfg.Server.Addr != "127.0.0.1:8188" {
		t.Errorf("expected addr 127.0.0.1:8188, got %s", cfg.Server.Addr)
	}
	if cfg.Server.HostPath != "/host" || cfg.Server.UIPath != "/ui" {
		t.Errorf("expected socket paths /host and /ui, got %s and %s", cfg.Server.HostPath, cfg.Server.UIPath)
	}
	if cfg.Server.WriteTimeout != 5*time.Second {
		t.Errorf("expected write timeout 5s, got %v", cfg.Server.WriteTimeout)
	}

	// Test render defaults
	if cfg.Render.FPS != 30 {
		t.Errorf("expected fps 30, got %d", cfg.Render.FPS)
	}
	if cfg.Render.ShowFPS {
		t.Error("expected show_fps to be false by default")
	}

	// Test image defaults
	if cfg.Images.MaxBytes != 16<<20 {
		t.Errorf("expected max bytes 16MiB, got %d", cfg.Images.MaxBytes)
	}
	if cfg.Images.MaxPixels != 8192*8192 {
		t.Errorf("expected max pixels 8192x8192, got %d", cfg.Images.MaxPixels)
	}
	if cfg.Images.ThumbnailSize != 512 {
		t.Errorf("expected thumbnail size 512, got %d", cfg.Images.ThumbnailSize)
	}

	// Test prompt defaults
	if !cfg.Prompts.Cinematic {
		t.Error("expected cinematic prompts by default")
	}
	if cfg.Prompts.GlobalConstraints != "" {
		t.Errorf("expected built-in global constraints, got %q", cfg.Prompts.GlobalConstraints)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestFrameInterval(t *testing.T) {
	tests := []struct {
		fps  int
		want time.Duration
	}{
		{30, time.Second / 30},
		{60, time.Second / 60},
		{0, 0},
		{-1, 0},
	}
	for _, tt := range tests {
		if got := (RenderConfig{FPS: tt.fps}).FrameInterval(); got != tt.want {
			t.Errorf("FrameInterval(%d) = %v, want %v", tt.fps, got, tt.want)
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "lightrig.yaml")

	yamlContent := `
server:
  addr: "0.0.0.0:9000"
  allowed_origins: ["http://localhost:8188", "https://studio.example"]
  write_timeout: 2s

viewport:
  width: 1024
  height: 768

render:
  fps: 60

images:
  max_bytes: 1048576
  max_pixels: 4000000
  fetch_timeout: 3s
  thumbnail_size: 256

prompts:
  cinematic: false
  global_constraints: "KEEP THE POSE."

logging:
  level: "debug"
  log_file: "lightrig.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Server.Addr != "0.0.0.0:9000" {
		t.Errorf("expected addr 0.0.0.0:9000, got %s", cfg.Server.Addr)
	}
	if len(cfg.Server.AllowedOrigins) != 2 || cfg.Server.AllowedOrigins[1] != "https://studio.example" {
		t.Errorf("unexpected allowed origins %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Server.WriteTimeout != 2*time.Second {
		t.Errorf("expected write timeout 2s, got %v", cfg.Server.WriteTimeout)
	}
	// Unset keys keep their defaults
	if cfg.Server.HostPath != "/host" {
		t.Errorf("expected default host path, got %s", cfg.Server.HostPath)
	}

	if cfg.Viewport.Width != 1024 || cfg.Viewport.Height != 768 {
		t.Errorf("expected viewport 1024x768, got %dx%d", cfg.Viewport.Width, cfg.Viewport.Height)
	}
	if cfg.Render.FPS != 60 {
		t.Errorf("expected fps 60, got %d", cfg.Render.FPS)
	}

	if cfg.Images.MaxBytes != 1048576 {
		t.Errorf("expected max bytes 1048576, got %d", cfg.Images.MaxBytes)
	}
	if cfg.Images.MaxPixels != 4000000 {
		t.Errorf("expected max pixels 4000000, got %d", cfg.Images.MaxPixels)
	}
	if cfg.Images.FetchTimeout != 3*time.Second {
		t.Errorf("expected fetch timeout 3s, got %v", cfg.Images.FetchTimeout)
	}

	if cfg.Prompts.Cinematic {
		t.Error("expected cinematic to be false")
	}
	if cfg.Prompts.GlobalConstraints != "KEEP THE POSE." {
		t.Errorf("unexpected global constraints %q", cfg.Prompts.GlobalConstraints)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "lightrig.log" {
		t.Errorf("expected log file 'lightrig.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
render:
  fps: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/lightrig.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Server.Addr = "" }},
		{"relative host path", func(c *Config) { c.Server.HostPath = "host" }},
		{"shared socket path", func(c *Config) { c.Server.UIPath = c.Server.HostPath }},
		{"zero viewport", func(c *Config) { c.Viewport.Width = 0 }},
		{"negative fps", func(c *Config) { c.Render.FPS = -1 }},
		{"huge fps", func(c *Config) { c.Render.FPS = 1000 }},
		{"negative image limit", func(c *Config) { c.Images.MaxBytes = -1 }},
		{"negative pixel limit", func(c *Config) { c.Images.MaxPixels = -1 }},
		{"unknown level", func(c *Config) { c.Logging.Level = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Keep the OS config dir out of the search
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create lightrig.yaml in current directory
	configPath := filepath.Join(tmpDir, "lightrig.yaml")
	if err := os.WriteFile(configPath, []byte("render:\n  fps: 24\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find lightrig.yaml in current directory")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "lightrig.yaml")

	cfg := Default()
	cfg.Server.AllowedOrigins = []string{"https://studio.example"}
	cfg.Images.FetchTimeout = 1500 * time.Millisecond
	cfg.Prompts.GlobalConstraints = "KEEP THE POSE."

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if loaded.Images.FetchTimeout != cfg.Images.FetchTimeout {
		t.Errorf("fetch timeout %v, want %v", loaded.Images.FetchTimeout, cfg.Images.FetchTimeout)
	}
	if loaded.Prompts.GlobalConstraints != cfg.Prompts.GlobalConstraints {
		t.Errorf("global constraints %q, want %q", loaded.Prompts.GlobalConstraints, cfg.Prompts.GlobalConstraints)
	}
	if len(loaded.Server.AllowedOrigins) != 1 {
		t.Errorf("allowed origins %v", loaded.Server.AllowedOrigins)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Render.ShowFPS {
					t.Error("expected show_fps to be enabled with debug flag")
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "addr flag",
			setup: func() {
				*flagAddr = ":7000"
			},
			verify: func(cfg *Config) {
				if cfg.Server.Addr != ":7000" {
					t.Errorf("expected addr :7000, got %s", cfg.Server.Addr)
				}
			},
			teardown: func() {
				*flagAddr = ""
			},
		},
		{
			name: "fps flag",
			setup: func() {
				*flagFPS = 12
			},
			verify: func(cfg *Config) {
				if cfg.Render.FPS != 12 {
					t.Errorf("expected fps 12, got %d", cfg.Render.FPS)
				}
			},
			teardown: func() {
				*flagFPS = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			tt.setup()
			defer tt.teardown()

			// Apply flags to default config
			cfg := Default()
			applyFlags(cfg)

			// Verify
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "lightrig.yaml")

	yamlContent := `
server:
  addr: "0.0.0.0:9000"
render:
  fps: 20
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagFPS = 50
	defer func() {
		*flagConfig = ""
		*flagFPS = 0
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// FPS should be from flag (50), not file (20)
	if cfg.Render.FPS != 50 {
		t.Errorf("expected fps 50 from flag, got %d", cfg.Render.FPS)
	}

	// Addr should be from file since no flag override
	if cfg.Server.Addr != "0.0.0.0:9000" {
		t.Errorf("expected addr from file, got %s", cfg.Server.Addr)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "lightrig.yaml")
	if err := os.WriteFile(configPath, []byte("viewport:\n  width: -5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}
