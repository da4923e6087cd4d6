package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/deskrota/pkg/core/scheduler"
	"github.com/jakechorley/deskrota/pkg/utils/clock"
)

const (
	configFileBase = "deskrota_config"

	// DSNEnvVar overrides storage.dsn when set
	DSNEnvVar = "DESKROTA_DSN"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	defaultSQLitePath = "deskrota.db"
	defaultPort       = 8080
)

// WorkerConfig is one roster entry, times as "HH:MM"
type WorkerConfig struct {
	Name  string `yaml:"name" json:"name" validate:"required"`
	Start string `yaml:"start" json:"start" validate:"required,clock"`
	End   string `yaml:"end" json:"end" validate:"required,clock"`
}

// WindowConfig is one coverage window, times as "HH:MM"
type WindowConfig struct {
	Label string `yaml:"label" json:"label" validate:"required"`
	Start string `yaml:"start" json:"start" validate:"required,clock"`
	End   string `yaml:"end" json:"end" validate:"required,clock"`
}

// PolicyConfig holds slice sizing parameters in minutes
type PolicyConfig struct {
	IdealMin  int     `yaml:"idealMin" json:"idealMin" validate:"min=1"`
	IdealMax  int     `yaml:"idealMax" json:"idealMax" validate:"gtefield=IdealMin"`
	HardCap   int     `yaml:"hardCap" json:"hardCap" validate:"gtefield=IdealMax"`
	Tolerance float64 `yaml:"tolerance" json:"tolerance" validate:"gt=0,lte=1"`
	EndBuffer int     `yaml:"endBuffer" json:"endBuffer" validate:"min=0"`
}

// ThrottleConfig limits how often the sole cover of ExclusiveWindow is used
// in the ThrottledWindows
type ThrottleConfig struct {
	ExclusiveWindow  string   `yaml:"exclusiveWindow,omitempty" json:"exclusiveWindow,omitempty"`
	ThrottledWindows []string `yaml:"throttledWindows,omitempty" json:"throttledWindows,omitempty"`
}

// DayOverride changes the day's setup on dates matching RRule
type DayOverride struct {
	RRule    string         `yaml:"rrule" validate:"required"`
	Absent   []string       `yaml:"absent,omitempty"`
	Windows  []WindowConfig `yaml:"windows,omitempty" validate:"omitempty,dive"`
	Strategy string         `yaml:"strategy,omitempty" validate:"omitempty,oneof=round fair"`
}

// StorageConfig selects the persistence backend
type StorageConfig struct {
	Driver string `yaml:"driver" validate:"required,oneof=sqlite postgres"`
	DSN    string `yaml:"dsn" validate:"required"`
}

// PublishConfig points at the spreadsheet schedules are published to
type PublishConfig struct {
	SpreadsheetID string `yaml:"spreadsheetID,omitempty"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Port int `yaml:"port" validate:"min=1,max=65535"`
}

// Config represents the application configuration
type Config struct {
	Roster    []WorkerConfig `yaml:"roster,omitempty" validate:"dive"`
	Windows   []WindowConfig `yaml:"windows" validate:"required,min=1,dive"`
	Policy    PolicyConfig   `yaml:"policy"`
	Strategy  string         `yaml:"strategy" validate:"required,oneof=round fair"`
	Ordering  string         `yaml:"ordering" validate:"required,oneof=rotate random"`
	Throttle  ThrottleConfig `yaml:"throttle,omitempty"`
	Overrides []DayOverride  `yaml:"overrides,omitempty" validate:"dive"`
	Storage   StorageConfig  `yaml:"storage"`
	Publish   PublishConfig  `yaml:"publish,omitempty"`
	Server    ServerConfig   `yaml:"server,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := clock.Parse(fl.Field().String())
		return err == nil
	})
}

// Validator returns the shared validator, with the clock tag registered
func Validator() *validator.Validate {
	return validate
}

// Load loads and validates deskrota_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration for an environment
// For example, env="test" will look for "deskrota_config.test.yaml"
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML, fills defaults, applies environment overrides and validates
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	if dsn := os.Getenv(DSNEnvVar); dsn != "" {
		cfg.Storage.DSN = dsn
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if len(c.Roster) == 0 {
		c.Roster = DefaultRoster()
	}
	if c.Policy == (PolicyConfig{}) {
		c.Policy = DefaultPolicy()
	}
	if c.Strategy == "" {
		c.Strategy = string(scheduler.StrategyFair)
	}
	if c.Ordering == "" {
		c.Ordering = string(scheduler.OrderingRotate)
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverSQLite
	}
	if c.Storage.DSN == "" && c.Storage.Driver == DriverSQLite {
		c.Storage.DSN = defaultSQLitePath
	}
	if c.Server.Port == 0 {
		c.Server.Port = defaultPort
	}
}

// Validate validates the configuration struct, checks rrule syntax and makes
// sure the roster and windows are acceptable to the scheduler
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, override := range cfg.Overrides {
		if _, err := rrule.StrToRRule(override.RRule); err != nil {
			return fmt.Errorf("invalid rrule in overrides[%d]: %w", i, err)
		}
		if len(override.Windows) > 0 {
			windows, err := ToWindows(override.Windows)
			if err != nil {
				return fmt.Errorf("invalid windows in overrides[%d]: %w", i, err)
			}
			if err := scheduler.ValidateWindows(windows); err != nil {
				return fmt.Errorf("invalid windows in overrides[%d]: %w", i, err)
			}
		}
	}

	roster, err := ToWorkers(cfg.Roster)
	if err != nil {
		return fmt.Errorf("invalid roster: %w", err)
	}
	windows, err := ToWindows(cfg.Windows)
	if err != nil {
		return fmt.Errorf("invalid windows: %w", err)
	}

	if err := scheduler.Validate(scheduler.Input{
		Roster:   roster,
		Windows:  windows,
		Policy:   cfg.SchedulerPolicy(),
		Strategy: scheduler.Strategy(cfg.Strategy),
		Ordering: scheduler.OrderingRotate,
	}); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	labels := make(map[string]bool, len(windows))
	for _, window := range windows {
		labels[window.Label] = true
	}
	for _, label := range append([]string{cfg.Throttle.ExclusiveWindow}, cfg.Throttle.ThrottledWindows...) {
		if label != "" && !labels[label] {
			return fmt.Errorf("config validation failed: throttle refers to unknown window %q", label)
		}
	}

	return nil
}

// findConfigFile searches for the env's config file
func findConfigFile(env string) (string, error) {
	configFileName := configFileBase + ".yaml"
	if env != "" {
		configFileName = configFileBase + "." + env + ".yaml"
	}
	return findFile(configFileName)
}

// findFile looks for name in the current directory, then the user's home directory
func findFile(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", name)
}
