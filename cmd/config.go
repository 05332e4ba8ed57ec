package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/novatitan/cloudwarden/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		path := configPath
		if path == "" {
			path = "cloudwarden.yaml"
		}

		if _, err := os.Stat(path); err == nil {
			fmt.Printf("Refusing to overwrite existing %s\n", path)
			return
		}

		if err := config.Save(config.Default(), path); err != nil {
			fmt.Printf("Error writing config: %v\n", err)
			return
		}
		fmt.Printf("Default configuration written to %s\n", path)
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
