package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/novatitan/cloudwarden/pkg/agent"
	"github.com/novatitan/cloudwarden/pkg/config"
	"github.com/novatitan/cloudwarden/pkg/engine"
)

// AnalyzedFinding pairs a finding with its analysis in the command output.
type AnalyzedFinding struct {
	Finding  engine.Finding `json:"finding"`
	Analysis agent.Analysis `json:"analysis"`
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze security findings with the AI agent",
	Run: func(cmd *cobra.Command, args []string) {
		input, _ := cmd.Flags().GetString("input")
		output, _ := cmd.Flags().GetString("output")

		logger := newLogger()
		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}

		data, err := os.ReadFile(input)
		if err != nil {
			fmt.Printf("Error reading findings: %v\n", err)
			return
		}
		var findings []engine.Finding
		if err := json.Unmarshal(data, &findings); err != nil {
			fmt.Printf("Error parsing findings file: %v\n", err)
			return
		}

		ctx := context.Background()
		provider := agent.NewProvider(ctx, cfg.AIAgent, config.LoadSettings(), logger)
		ag := agent.New(ctx, cfg.AIAgent, provider, logger)
		if ag.Available() {
			fmt.Printf("AI agent ready (model: %s)\n", ag.ResolvedModel())
		} else {
			fmt.Println("AI agent not available - using basic analysis")
		}

		// The agent is immutable after New, so findings can be analyzed
		// concurrently; parallel_workers bounds server load.
		results := make([]AnalyzedFinding, len(findings))
		sem := make(chan struct{}, cfg.Scanning.ParallelWorkers)
		var wg sync.WaitGroup
		for i, f := range findings {
			wg.Add(1)
			go func(i int, f engine.Finding) {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()
				results[i] = AnalyzedFinding{Finding: f, Analysis: ag.Analyze(ctx, f)}
			}(i, f)
		}
		wg.Wait()

		out, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			fmt.Printf("Error encoding results: %v\n", err)
			return
		}
		if output != "" {
			if err := os.WriteFile(output, out, 0644); err != nil {
				fmt.Printf("Error writing output: %v\n", err)
				return
			}
			fmt.Printf("Results written to %s\n", output)
			return
		}
		fmt.Println(string(out))
	},
}

func init() {
	analyzeCmd.Flags().StringP("input", "i", "", "JSON file containing an array of findings")
	analyzeCmd.Flags().StringP("output", "o", "", "Write results to a file instead of stdout")
	analyzeCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(analyzeCmd)
}
