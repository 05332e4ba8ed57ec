package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/novatitan/cloudwarden/pkg/agent"
	"github.com/novatitan/cloudwarden/pkg/config"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models installed on the configured AI backend",
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger()
		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}

		ctx := context.Background()
		provider := agent.NewProvider(ctx, cfg.AIAgent, config.LoadSettings(), logger)

		fmt.Printf("Fetching models from %s (%s)...\n", cfg.AIAgent.Backend, cfg.AIAgent.BaseURL)
		models, err := provider.ListModels(ctx)
		if err != nil {
			fmt.Printf("Error fetching models: %v\n", err)
			return
		}

		fmt.Println("\nInstalled models:")
		for _, m := range models {
			mark := " "
			if m == cfg.AIAgent.Model {
				mark = "*"
			}
			fmt.Printf("%s %s\n", mark, m)
		}
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
