package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/min-coins/internal/coins"
	"github.com/eugenenazirov/min-coins/internal/report"
)

const (
	defaultSolverTimeout    = 10 * time.Second
	defaultProgressInterval = 2 * time.Second
	defaultFormat           = report.FormatTable
	defaultLogLevel         = "info"
	defaultLogEncoding      = "console"
)

// Case is one amount and denomination set to compare.
type Case struct {
	Amount        int   `yaml:"amount"`
	Denominations []int `yaml:"denominations"`
}

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > Environment variables > YAML config > Defaults
type Config struct {
	Cases            []Case
	Strategies       []string
	SolverTimeout    time.Duration
	ProgressInterval time.Duration
	Format           string
	LogLevel         string
	LogEncoding      string
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	Cases            []Case      `yaml:"cases"`
	Strategies       []string    `yaml:"strategies"`
	SolverTimeout    string      `yaml:"solver_timeout"`
	ProgressInterval string      `yaml:"progress_interval"`
	Format           string      `yaml:"format"`
	Log              yamlLogging `yaml:"log"`
}

// yamlLogging represents the log section in YAML.
type yamlLogging struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile       string
	Amount           *int
	DenominationsStr *string
	Strategies       []string
	SolverTimeout    *time.Duration
	Format           *string
	LogLevel         *string
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > Environment variables > YAML config > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		if err := applyYAMLConfig(&cfg, yamlCfg); err != nil {
			return Config{}, fmt.Errorf("apply YAML config: %w", err)
		}
	}

	if err := applyEnvConfig(&cfg); err != nil {
		return Config{}, fmt.Errorf("apply environment: %w", err)
	}

	if overrides != nil {
		if err := applyCLIOverrides(&cfg, overrides); err != nil {
			return Config{}, err
		}
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// DefaultCases returns the scenarios compared when nothing else is configured.
func DefaultCases() []Case {
	return []Case{
		{Amount: 17, Denominations: []int{5, 2, 1}},
		{Amount: 6, Denominations: []int{1, 3, 4}},
		{Amount: 11, Denominations: []int{1, 5, 6}},
		{Amount: 100, Denominations: []int{1, 5, 10, 25}},
		{Amount: 35, Denominations: []int{1, 3, 4}},
	}
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		Cases:            DefaultCases(),
		Strategies:       coins.Names(),
		SolverTimeout:    defaultSolverTimeout,
		ProgressInterval: defaultProgressInterval,
		Format:           defaultFormat,
		LogLevel:         defaultLogLevel,
		LogEncoding:      defaultLogEncoding,
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) error {
	if len(yamlCfg.Cases) > 0 {
		cfg.Cases = yamlCfg.Cases
	}

	if len(yamlCfg.Strategies) > 0 {
		cfg.Strategies = yamlCfg.Strategies
	}

	if yamlCfg.SolverTimeout != "" {
		d, err := time.ParseDuration(yamlCfg.SolverTimeout)
		if err != nil {
			return fmt.Errorf("solver_timeout: %w", err)
		}
		cfg.SolverTimeout = d
	}

	if yamlCfg.ProgressInterval != "" {
		d, err := time.ParseDuration(yamlCfg.ProgressInterval)
		if err != nil {
			return fmt.Errorf("progress_interval: %w", err)
		}
		cfg.ProgressInterval = d
	}

	if yamlCfg.Format != "" {
		cfg.Format = yamlCfg.Format
	}

	if yamlCfg.Log.Level != "" {
		cfg.LogLevel = yamlCfg.Log.Level
	}

	if yamlCfg.Log.Encoding != "" {
		cfg.LogEncoding = yamlCfg.Log.Encoding
	}

	return nil
}

// applyEnvConfig applies environment variable configuration. COINS_AMOUNT and
// COINS_DENOMINATIONS together replace the case list with a single case.
func applyEnvConfig(cfg *Config) error {
	rawAmount := strings.TrimSpace(os.Getenv("COINS_AMOUNT"))
	rawDenominations := strings.TrimSpace(os.Getenv("COINS_DENOMINATIONS"))
	if rawAmount != "" || rawDenominations != "" {
		c, err := singleCase(cfg.Cases, rawAmount, rawDenominations)
		if err != nil {
			return err
		}
		cfg.Cases = []Case{c}
	}

	if raw := strings.TrimSpace(os.Getenv("COINS_STRATEGIES")); raw != "" {
		cfg.Strategies = splitList(raw)
	}

	if raw := strings.TrimSpace(os.Getenv("COINS_SOLVER_TIMEOUT")); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			cfg.SolverTimeout = d
		}
	}

	if format := strings.TrimSpace(os.Getenv("COINS_FORMAT")); format != "" {
		cfg.Format = format
	}

	if level := strings.TrimSpace(os.Getenv("COINS_LOG_LEVEL")); level != "" {
		cfg.LogLevel = level
	}

	return nil
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) error {
	rawAmount := ""
	if overrides.Amount != nil {
		rawAmount = strconv.Itoa(*overrides.Amount)
	}
	rawDenominations := ""
	if overrides.DenominationsStr != nil {
		rawDenominations = *overrides.DenominationsStr
	}
	if rawAmount != "" || rawDenominations != "" {
		c, err := singleCase(cfg.Cases, rawAmount, rawDenominations)
		if err != nil {
			return fmt.Errorf("parse case: %w", err)
		}
		cfg.Cases = []Case{c}
	}

	if len(overrides.Strategies) > 0 {
		cfg.Strategies = overrides.Strategies
	}

	if overrides.SolverTimeout != nil && *overrides.SolverTimeout >= 0 {
		cfg.SolverTimeout = *overrides.SolverTimeout
	}

	if overrides.Format != nil && *overrides.Format != "" {
		cfg.Format = *overrides.Format
	}

	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}

	return nil
}

// singleCase builds a case from raw values, borrowing whichever half is
// missing from the first configured case.
func singleCase(current []Case, rawAmount, rawDenominations string) (Case, error) {
	var c Case
	if len(current) > 0 {
		c = current[0]
	}

	if rawAmount != "" {
		amount, err := strconv.Atoi(rawAmount)
		if err != nil {
			return Case{}, fmt.Errorf("invalid amount %q", rawAmount)
		}
		c.Amount = amount
	}

	if rawDenominations != "" {
		values, err := parseDenominations(rawDenominations)
		if err != nil {
			return Case{}, err
		}
		c.Denominations = values
	}

	return c, nil
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if len(cfg.Cases) == 0 {
		return fmt.Errorf("at least one case is required")
	}
	for i, c := range cfg.Cases {
		if c.Amount < 0 {
			return fmt.Errorf("case %d: %w", i, coins.ErrNegativeAmount)
		}
		if _, err := coins.NewDenominations(c.Denominations); err != nil {
			return fmt.Errorf("case %d: %w", i, err)
		}
	}
	for _, name := range cfg.Strategies {
		if _, err := coins.Lookup(name); err != nil {
			return err
		}
	}
	if cfg.SolverTimeout < 0 {
		return fmt.Errorf("solver timeout must be >= 0")
	}
	if err := report.CheckFormat(cfg.Format); err != nil {
		return err
	}
	return nil
}

// parseDenominations parses a comma-separated string of denominations into a slice of integers.
// It validates that all values are positive integers.
func parseDenominations(raw string) ([]int, error) {
	parts := splitList(raw)
	values := make([]int, 0, len(parts))
	for _, part := range parts {
		value, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", part)
		}
		if value <= 0 {
			return nil, fmt.Errorf("denomination must be positive, got %d", value)
		}
		values = append(values, value)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no denominations provided")
	}
	return values, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
