// Package repath holds the project-wide configuration for the repath tool
// family: pattern escape character, counter setup, terminal color policy and
// streaming delimiters. Commands load it once and pass the relevant pieces to
// the pattern engine and its collaborators.
package repath

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"unicode/utf8"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/shibukawa/repath/counter"
)

// ErrConfigValidation is returned when configuration validation fails.
var ErrConfigValidation = errors.New("configuration validation failed")

// DefaultConfigFile is the config file name looked up in the working
// directory when no --config flag is given.
const DefaultConfigFile = "repath.yaml"

// Config represents the repath configuration.
type Config struct {
	// Escape is the pattern escape character; exactly one rune.
	Escape string `yaml:"escape"`
	// Color is the terminal color policy: auto, always or never.
	Color string `yaml:"color"`
	// WorkingDir resolves relative input paths; ${VAR} references are expanded.
	WorkingDir string `yaml:"working_dir"`
	// Quote optionally re-quotes substituted values that contain whitespace.
	Quote string `yaml:"quote"`
	// ReadNul and PrintNul switch the input/output streams to NUL delimiters.
	ReadNul  bool `yaml:"read_nul"`
	PrintNul bool `yaml:"print_nul"`
	// LocalCounter and GlobalCounter configure the {c} and {C} variables.
	LocalCounter  counter.Config `yaml:"local_counter"`
	GlobalCounter counter.Config `yaml:"global_counter"`
}

func getDefaultConfig() *Config {
	return &Config{
		Escape:        "\\",
		Color:         "auto",
		LocalCounter:  counter.DefaultConfig(),
		GlobalCounter: counter.DefaultConfig(),
	}
}

// LoadConfig reads the configuration file at configPath, falling back to
// DefaultConfigFile and to built-in defaults when no file exists. A .env file
// in the current directory is loaded first so ${VAR} expansion sees it.
func LoadConfig(configPath string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, err
	}

	if configPath == "" {
		configPath = DefaultConfigFile
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return getDefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config

	if err := yaml.UnmarshalWithOptions(data, &config, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	config.WorkingDir = expandEnvVars(config.WorkingDir)

	return &config, nil
}

func applyDefaults(config *Config) {
	if config.Escape == "" {
		config.Escape = "\\"
	}

	if config.Color == "" {
		config.Color = "auto"
	}

	if config.LocalCounter == (counter.Config{}) {
		config.LocalCounter = counter.DefaultConfig()
	}

	if config.GlobalCounter == (counter.Config{}) {
		config.GlobalCounter = counter.DefaultConfig()
	}
}

func validateConfig(config *Config) error {
	if utf8.RuneCountInString(config.Escape) != 1 {
		return fmt.Errorf("%w: escape must be exactly one character, got %q", ErrConfigValidation, config.Escape)
	}

	switch config.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("%w: color must be auto, always or never, got %q", ErrConfigValidation, config.Color)
	}

	if config.Quote != "" && utf8.RuneCountInString(config.Quote) != 1 {
		return fmt.Errorf("%w: quote must be at most one character, got %q", ErrConfigValidation, config.Quote)
	}

	if config.LocalCounter.Step == 0 {
		return fmt.Errorf("%w: local_counter step must not be zero", ErrConfigValidation)
	}

	if config.GlobalCounter.Step == 0 {
		return fmt.Errorf("%w: global_counter step must not be zero", ErrConfigValidation)
	}

	return nil
}

// EscapeRune returns the configured escape character.
func (c *Config) EscapeRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Escape)

	return r
}

// QuoteRune returns the configured quote character, or zero when quoting is
// disabled.
func (c *Config) QuoteRune() rune {
	if c.Quote == "" {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(c.Quote)

	return r
}

// loadEnvFiles loads a .env file if one exists.
func loadEnvFiles() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}

	if err := godotenv.Load(".env"); err != nil {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	return nil
}

var (
	bracedVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)
	plainVarPattern  = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands environment variables in the format ${VAR} or $VAR.
func expandEnvVars(s string) string {
	s = bracedVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})

	return plainVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})
}
