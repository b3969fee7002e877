package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds the shell configuration values.
type Config struct {
	Rows          int    // Cells per side
	Width         int    // Canvas side in pixels
	BoardFile     string // Optional text layout loaded at start
	FramesPerTick int    // Recorded frames replayed per update
	Port          string // HTTP port of the board server
	LogLevel      string // logrus level name
}

// Load reads the optional .env files (".env" when none are given) and
// then the environment.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil {
		log.Debugf(".env file not found or could not be loaded: %v", err)
	}

	rows, err := getEnvAsIntWithDefault("PATHGRID_ROWS", 50)
	if err != nil {
		return Config{}, err
	}
	width, err := getEnvAsIntWithDefault("PATHGRID_WIDTH", 800)
	if err != nil {
		return Config{}, err
	}
	frames, err := getEnvAsIntWithDefault("PATHGRID_FRAMES_PER_TICK", 1)
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		Rows:          rows,
		Width:         width,
		BoardFile:     getEnvWithDefault("PATHGRID_BOARD", ""),
		FramesPerTick: frames,
		Port:          getEnvWithDefault("PORT", "8080"),
		LogLevel:      getEnvWithDefault("PATHGRID_LOG_LEVEL", "info"),
	}
	if cfg.Rows < 1 || cfg.Width < cfg.Rows {
		return Config{}, fmt.Errorf("config: PATHGRID_ROWS=%d must be >= 1 and <= PATHGRID_WIDTH=%d", cfg.Rows, cfg.Width)
	}
	if cfg.FramesPerTick < 1 {
		return Config{}, fmt.Errorf("config: PATHGRID_FRAMES_PER_TICK must be positive, got %d", cfg.FramesPerTick)
	}
	return cfg, nil
}

// ApplyLogLevel sets the logrus level, keeping the current one on a bad name.
func (c Config) ApplyLogLevel() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.Warnf("unknown log level %q, keeping %s", c.LogLevel, log.GetLevel())
		return
	}
	log.SetLevel(level)
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsIntWithDefault(key string, defaultValue int) (int, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer: %w", key, err)
	}
	return value, nil
}
