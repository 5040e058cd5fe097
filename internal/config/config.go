package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// DefaultWindowRule is the rolling generation window used for both the
// weekly duty and on-call rotations when the config does not override
// them: 52 ISO weeks from the anchor week.
const DefaultWindowRule = "FREQ=WEEKLY;COUNT=52"

// PublishConfig configures the optional Google Sheets publish target.
type PublishConfig struct {
	RotaSheetID     string `yaml:"rotaSheetID" validate:"required"`
	CredentialsFile string `yaml:"credentialsFile" validate:"required"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL string `yaml:"databaseURL" validate:"required"`

	// SlotHours is the fixed ordered set of intraday duty hours.
	SlotHours []int `yaml:"slotHours" validate:"required,min=1,dive,min=0,max=23"`

	// WeeklyDutyRule and OnCallRule are RRULE strings expanded from the
	// anchor week to produce each rotation's rolling window.
	WeeklyDutyRule string `yaml:"weeklyDutyRule,omitempty"`
	OnCallRule     string `yaml:"onCallRule,omitempty"`

	Publish *PublishConfig `yaml:"publish,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from duty_rota_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
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

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults fills in window rules and sorts the slot hours so
// generation always walks them in hour order.
func applyDefaults(cfg *Config) {
	if cfg.WeeklyDutyRule == "" {
		cfg.WeeklyDutyRule = DefaultWindowRule
	}
	if cfg.OnCallRule == "" {
		cfg.OnCallRule = DefaultWindowRule
	}
	sort.Ints(cfg.SlotHours)
}

// Validate validates the configuration struct and checks window rule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if err := validateWindowRule(cfg.WeeklyDutyRule); err != nil {
		return fmt.Errorf("invalid weeklyDutyRule: %w", err)
	}
	if err := validateWindowRule(cfg.OnCallRule); err != nil {
		return fmt.Errorf("invalid onCallRule: %w", err)
	}

	seen := make(map[int]bool)
	for _, hour := range cfg.SlotHours {
		if seen[hour] {
			return fmt.Errorf("duplicate slot hour %d", hour)
		}
		seen[hour] = true
	}

	return nil
}

// validateWindowRule checks RRULE syntax and that the rule is bounded,
// since an unbounded rule would expand into an endless window.
func validateWindowRule(rule string) error {
	opt, err := rrule.StrToROption(rule)
	if err != nil {
		return err
	}
	if opt.Count == 0 && opt.Until.IsZero() {
		return fmt.Errorf("window rule must be bounded by COUNT or UNTIL")
	}
	return nil
}

// findConfigFile searches for duty_rota_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "duty_rota_config.yaml"

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
