package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Media library
	MediaDir   string // Root directory scanned for photos and videos (optional)
	IgnoreFile string // $CONFIG_DIR/ignore.txt

	// Slideshow
	PhotoDurationSeconds int // Server-wide default photo display time (default: 10)
	SnapshotCacheSeconds int // Facade snapshot cache TTL, 0 disables (default: 2)

	// Scanner
	ScanIntervalMinutes int // Minutes between library rescans (default: 15)

	// Server
	ServerPort string

	// Paths
	DatabaseFile string // $CONFIG_DIR/libra.db

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Setup viper FIRST to load .env file
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = viper.ReadInConfig()

	// Set defaults
	viper.SetDefault("PHOTO_DURATION_SECONDS", 10)
	viper.SetDefault("SNAPSHOT_CACHE_SECONDS", 2)
	viper.SetDefault("SCAN_INTERVAL_MINUTES", 15)
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")

	// NOW read CONFIG_DIR from viper (which has loaded .env file)
	configDir := viper.GetString("CONFIG_DIR")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "libra")
	} else {
		// Convert relative path to absolute path
		absPath, err := filepath.Abs(configDir)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for CONFIG_DIR: %w", err)
		}
		configDir = absPath
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	mediaDir := viper.GetString("MEDIA_DIR")
	if mediaDir != "" {
		absPath, err := filepath.Abs(mediaDir)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for MEDIA_DIR: %w", err)
		}
		mediaDir = absPath
	}

	config := &Config{
		// Media library
		MediaDir:   mediaDir,
		IgnoreFile: filepath.Join(configDir, "ignore.txt"),

		// Slideshow
		PhotoDurationSeconds: viper.GetInt("PHOTO_DURATION_SECONDS"),
		SnapshotCacheSeconds: viper.GetInt("SNAPSHOT_CACHE_SECONDS"),

		// Scanner
		ScanIntervalMinutes: viper.GetInt("SCAN_INTERVAL_MINUTES"),

		// Server
		ServerPort: viper.GetString("SERVER_PORT"),

		// Paths
		DatabaseFile: filepath.Join(configDir, "libra.db"),

		// Logging
		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	// Validate
	if config.PhotoDurationSeconds <= 0 {
		return nil, fmt.Errorf("PHOTO_DURATION_SECONDS must be positive, got %d", config.PhotoDurationSeconds)
	}
	if config.ScanIntervalMinutes <= 0 {
		return nil, fmt.Errorf("SCAN_INTERVAL_MINUTES must be positive, got %d", config.ScanIntervalMinutes)
	}
	if config.SnapshotCacheSeconds < 0 {
		return nil, fmt.Errorf("SNAPSHOT_CACHE_SECONDS must not be negative, got %d", config.SnapshotCacheSeconds)
	}

	return config, nil
}
