package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/novatitan/cloudwarden/pkg/agent"
	"github.com/novatitan/cloudwarden/pkg/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check CloudWarden system status",
	Run: func(cmd *cobra.Command, args []string) {
		aiTest, _ := cmd.Flags().GetBool("ai-test")

		logger := newLogger()
		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Printf("Configuration: error: %v\n", err)
			return
		}

		fmt.Printf("CloudWarden v%s - %s\n", version, cfg.Reporting.CompanyName)
		fmt.Println("Configuration: loaded")
		fmt.Printf("AI backend: %s (%s)\n", cfg.AIAgent.Backend, cfg.AIAgent.BaseURL)

		if !aiTest {
			return
		}

		ctx := context.Background()
		provider := agent.NewProvider(ctx, cfg.AIAgent, config.LoadSettings(), logger)
		ag := agent.New(ctx, cfg.AIAgent, provider, logger)
		if ag.Available() {
			fmt.Printf("AI agent: available (model: %s)\n", ag.ResolvedModel())
		} else {
			fmt.Println("AI agent: not available")
		}
	},
}

func init() {
	statusCmd.Flags().Bool("ai-test", false, "Probe the AI agent and report availability")
	rootCmd.AddCommand(statusCmd)
}
