package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

func (c *Config) validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr is empty", ErrInvalid)
	}
	for name, path := range map[string]string{
		"server.host_path": c.Server.HostPath,
		"server.ui_path":   c.Server.UIPath,
	} {
		if !strings.HasPrefix(path, "/") {
			return fmt.Errorf("%w: %s must start with /, got %q", ErrInvalid, name, path)
		}
	}
	if c.Server.HostPath == c.Server.UIPath {
		return fmt.Errorf("%w: host and ui sockets share path %q", ErrInvalid, c.Server.HostPath)
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("%w: viewport %dx%d", ErrInvalid, c.Viewport.Width, c.Viewport.Height)
	}
	if c.Render.FPS < 0 || c.Render.FPS > 240 {
		return fmt.Errorf("%w: render.fps %d out of range [0, 240]", ErrInvalid, c.Render.FPS)
	}
	if c.Images.MaxBytes < 0 || c.Images.MaxPixels < 0 || c.Images.ThumbnailSize < 0 {
		return fmt.Errorf("%w: images limits must not be negative", ErrInvalid)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level %q", ErrInvalid, c.Logging.Level)
	}
	return nil
}
