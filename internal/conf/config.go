// config.go: settings struct and functions to load and save the FluWatch configuration.
package conf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// LogConfig contains settings for a rotating log file
type LogConfig struct {
	Enabled bool   // true to enable this log
	Path    string // path to log file
}

// DetectionSettings contains thresholds for the health classifier.
// Zero values fall back to the built-in defaults, see defaults.go.
type DetectionSettings struct {
	MinConfidence      float64 // minimum detector confidence, 0.0 disables the gate
	HeadCritical       float64 // head temperature critical threshold
	HeadFever          float64 // head temperature fever threshold
	HeadHealthyMin     float64 // lower bound of healthy head range
	BodyHealthyMin     float64 // lower bound of healthy body range
	BodyHealthyMax     float64 // upper bound of healthy body range
	BodySpreadCritical float64 // body min/max spread critical threshold
	LegCold            float64 // leg temperature low threshold
}

// SQLiteSettings contains settings for the SQLite database
type SQLiteSettings struct {
	Enabled bool   // true to enable SQLite
	Path    string // path to database file
}

// MySQLSettings contains settings for the MySQL database
type MySQLSettings struct {
	Enabled  bool   // true to enable MySQL
	Username string // MySQL username
	Password string // MySQL password
	Database string // MySQL database name
	Host     string // MySQL host
	Port     string // MySQL port
}

// OutputSettings contains settings for result storage
type OutputSettings struct {
	SQLite SQLiteSettings // SQLite database settings
	MySQL  MySQLSettings  // MySQL database settings
}

// WebServerSettings contains settings for the HTTP API server
type WebServerSettings struct {
	Enabled bool      // true to enable web server
	Port    string    // port for web server
	Debug   bool      // true to enable debug logging of requests
	Log     LogConfig // web server log settings
}

// DashboardSettings contains settings for dashboard aggregation
type DashboardSettings struct {
	TrendDays int // number of trailing calendar days in the health trend
	CacheTTL  int // dashboard stats cache TTL in seconds
}

// Settings contains all application settings
type Settings struct {
	Debug bool // true to enable debug mode

	Main struct {
		Name string    // name of this node, can be used to identify the source of analyses
		Log  LogConfig // main application log settings
	}

	Detection DetectionSettings // classifier thresholds
	Output    OutputSettings    // result storage settings
	WebServer WebServerSettings // web server settings
	Dashboard DashboardSettings // dashboard aggregation settings
}

var (
	settingsInstance *Settings
	settingsMutex    sync.RWMutex
)

// Load reads the configuration file and environment variables into Settings.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	settingsInstance = settings
	return settingsInstance, nil
}

// initViper initializes viper with default values and reads the configuration file.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	viper.SetEnvPrefix("FLUWATCH")
	viper.AutomaticEnv()

	setDefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// Config file not found, run on defaults and create one
			return createDefaultConfig(configPaths[0])
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// createDefaultConfig writes a config file populated with the current defaults.
func createDefaultConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}
	configPath := filepath.Join(configDir, "config.yaml")

	settings := &Settings{}
	if err := viper.Unmarshal(settings); err != nil {
		return fmt.Errorf("error unmarshaling default config: %w", err)
	}
	return writeSettings(settings, configPath)
}

// GetSettings returns the current settings instance
func GetSettings() *Settings {
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}

// Setting is a shorthand accessor for the current settings instance
func Setting() *Settings {
	return GetSettings()
}

// SaveSettings persists the current settings instance to the config file in use.
func SaveSettings() error {
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()

	if settingsInstance == nil {
		return fmt.Errorf("settings not loaded")
	}

	configPath := viper.ConfigFileUsed()
	if configPath == "" {
		configPaths, err := GetDefaultConfigPaths()
		if err != nil {
			return fmt.Errorf("error getting default config paths: %w", err)
		}
		configPath = filepath.Join(configPaths[0], "config.yaml")
	}

	return writeSettings(settingsInstance, configPath)
}

// writeSettings marshals settings to YAML and writes them atomically-ish via a temp file.
func writeSettings(settings *Settings, configPath string) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("error marshaling settings to YAML: %w", err)
	}

	tmpPath := configPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	if err := os.Rename(tmpPath, configPath); err != nil {
		return fmt.Errorf("error replacing config file: %w", err)
	}
	return nil
}
