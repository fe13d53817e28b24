// Package main provides the entry point for the career guidance API server
// and its maintenance commands.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Meet-08/SIH2025-Prototype/internal/config"
	"github.com/Meet-08/SIH2025-Prototype/internal/logging"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "career_api",
	Short: "Career guidance HTTP API server",
	Long: `career_api recommends an academic stream from an aptitude quiz, explains the
recommendation with Gemini, and serves the course, career, college, and
scholarship catalog over REST.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file (defaults to CONFIG_PATH)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads configuration and initializes the global logger from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	return cfg, nil
}
