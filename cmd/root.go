package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

const version = "3.0.0"

var rootCmd = &cobra.Command{
	Use:   "cloudwarden",
	Short: "AI-Powered Cloud Security Analysis",
	Long: `CloudWarden turns raw security findings into structured, human-consumable
explanations using a locally hosted language model, degrading gracefully to
deterministic analysis when no model is reachable.`,
}

var (
	debugMode  bool
	configPath string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Configuration file path")
}

// newLogger builds the process logger honoring --debug.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
