package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagAddr   = flag.String("addr", "", "Listen address")
	flagFPS    = flag.Int("fps", 0, "Animation frames per second")
	flagWrite  = flag.String("write-config", "", "Write the effective config to this path and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// WriteConfigPath returns the --write-config destination, empty when not requested.
func WriteConfigPath() string {
	return *flagWrite
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Render.ShowFPS = true
	}
	if *flagAddr != "" {
		cfg.Server.Addr = *flagAddr
	}
	if *flagFPS > 0 {
		cfg.Render.FPS = *flagFPS
	}
}
