package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/helpman/pkg/constants"
)

// Config holds the application configuration loaded from config files,
// environment variables, and .env files. Cobra flags override these values
// after parsing via UpdateFromFlags.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool

	// Config file
	ConfigFile string

	// Generation configuration
	BinaryName string
	OutputDir  string
	Section    int
	Title      string
	Timeout    time.Duration
	MaxDepth   int
	ReportPath string
	Homepage   string
	Repository string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra, applied via UpdateFromFlags)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.helpman.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	viper.SetDefault("output_dir", ".")
	viper.SetDefault("section", constants.DefaultManSection)
	viper.SetDefault("timeout", constants.DefaultHelpTimeout)
	viper.SetDefault("max_depth", constants.DefaultMaxDepth)

	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(".helpman")
		}
	}

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()

	config := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),

		ConfigFile: viper.ConfigFileUsed(),

		BinaryName: viper.GetString("binary_name"),
		OutputDir:  viper.GetString("output_dir"),
		Section:    viper.GetInt("section"),
		Title:      viper.GetString("title"),
		Timeout:    viper.GetDuration("timeout"),
		MaxDepth:   viper.GetInt("max_depth"),
		ReportPath: viper.GetString("report"),
		Homepage:   viper.GetString("homepage"),
		Repository: viper.GetString("repository"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	if config.Timeout <= 0 {
		config.Timeout = constants.DefaultHelpTimeout
	}
	if config.MaxDepth <= 0 {
		config.MaxDepth = constants.DefaultMaxDepth
	}

	return config, nil
}

// UpdateFromFlags updates config values from parsed command flags. This is
// called after cobra parses flags so flag values take precedence over config
// file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	envFiles := []string{
		".env",
		".env.local",
	}

	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
