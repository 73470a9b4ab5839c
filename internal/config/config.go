// Package config handles widget server configuration loading and management.
package config

import "time"

// Config holds all widget server settings.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Viewport ViewportConfig `yaml:"viewport"`
	Render   RenderConfig   `yaml:"render"`
	Images   ImagesConfig   `yaml:"images"`
	Prompts  PromptsConfig  `yaml:"prompts"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds the HTTP and websocket listener settings.
type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	HostPath       string        `yaml:"host_path"` // Websocket for the embedding host page
	UIPath         string        `yaml:"ui_path"`   // Websocket for the browser front end
	AllowedOrigins []string      `yaml:"allowed_origins"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	ReadLimit      int64         `yaml:"read_limit"` // Max inbound message size in bytes
}

// ViewportConfig is the initial widget size until the front end reports its own.
type ViewportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// RenderConfig holds animation settings.
type RenderConfig struct {
	FPS     int  `yaml:"fps"`
	ShowFPS bool `yaml:"show_fps"`
}

// ImagesConfig holds subject image loading limits.
type ImagesConfig struct {
	MaxBytes      int64         `yaml:"max_bytes"`
	MaxPixels     int64         `yaml:"max_pixels"` // Checked against the header before decoding
	FetchTimeout  time.Duration `yaml:"fetch_timeout"`
	ThumbnailSize int           `yaml:"thumbnail_size"`
}

// PromptsConfig holds relighting prompt settings.
type PromptsConfig struct {
	Cinematic         bool   `yaml:"cinematic"`
	GlobalConstraints string `yaml:"global_constraints"` // Used verbatim; empty keeps the built-in prefix
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         "127.0.0.1:8188",
			HostPath:     "/host",
			UIPath:       "/ui",
			WriteTimeout: 5 * time.Second,
			ReadLimit:    1 << 20,
		},
		Viewport: ViewportConfig{
			Width:  640,
			Height: 480,
		},
		Render: RenderConfig{
			FPS:     30,
			ShowFPS: false,
		},
		Images: ImagesConfig{
			MaxBytes:      16 << 20,
			MaxPixels:     8192 * 8192,
			FetchTimeout:  10 * time.Second,
			ThumbnailSize: 512,
		},
		Prompts: PromptsConfig{
			Cinematic: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// FrameInterval returns the animation tick period, or 0 when animation is disabled.
func (r RenderConfig) FrameInterval() time.Duration {
	if r.FPS <= 0 {
		return 0
	}
	return time.Second / time.Duration(r.FPS)
}
