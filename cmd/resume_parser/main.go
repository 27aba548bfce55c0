// Package main provides the resume_parser CLI, which turns resume files into
// structured ResumeDocument JSON and serves the same engine over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonathan/resume-structurer/internal/config"
	"github.com/jonathan/resume-structurer/internal/logger"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	logFormat  string

	// appConfig is resolved before any subcommand runs
	appConfig config.Config
)

var rootCmd = &cobra.Command{
	Use:               "resume_parser",
	Short:             "Resume Structuring Engine",
	Long:              "resume_parser converts resume text (plain text, markdown, HTML, PDF, DOCX or JSON) into a structured ResumeDocument.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: json or pretty")
}

// loadConfig resolves configuration with precedence flags > env > file > defaults,
// then initializes the logger.
func loadConfig(_ *cobra.Command, _ []string) error {
	cfg := &config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	appConfig = cfg.MergeWithDefaults(config.Config{})
	logger.Init(logger.Config{Level: appConfig.LogLevel, Format: appConfig.LogFormat})
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
