package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Z335han/bmc-banking-ai/internal/agent"
	"github.com/Z335han/bmc-banking-ai/internal/app"
	"github.com/Z335han/bmc-banking-ai/internal/config"
	"github.com/Z335han/bmc-banking-ai/internal/evaluation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newAskCmd(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	var customer string

	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Process a single customer message",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.NewApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer application.Close()

			result := application.Orchestrator.ProcessMessage(cmd.Context(), strings.Join(args, " "), customer)

			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				return json.NewEncoder(os.Stdout).Encode(result)
			}
			printResult(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&customer, "customer", agent.DefaultCustomerName, "Customer display name")
	return cmd
}

func newChatCmd(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	var customer string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Interactive support session",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.NewApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer application.Close()

			fmt.Println("Banking support assistant. Type 'exit' to quit.")
			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					break
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if line == "exit" || line == "quit" {
					break
				}

				result := application.Orchestrator.ProcessMessage(cmd.Context(), line, customer)
				printResult(result)
			}
			return scanner.Err()
		},
	}

	cmd.Flags().StringVar(&customer, "customer", agent.DefaultCustomerName, "Customer display name")
	return cmd
}

func newSeedCmd(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the sample tickets",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.NewApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer application.Close()

			if err := application.Tickets.Seed(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Sample tickets created.")
			return nil
		},
	}
}

func newReportCmd(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Generate the comprehensive evaluation report",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.NewApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer application.Close()

			rep, err := application.Reports.ComprehensiveReport(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				return json.NewEncoder(os.Stdout).Encode(rep)
			}
			printReport(rep)
			return nil
		},
	}
}

func newServeMetricsCmd(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve-metrics",
		Short: "Expose prometheus metrics over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.NewApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer application.Close()

			return application.ServeMetrics()
		},
	}
}

func printResult(result agent.OrchestrationResult) {
	if !result.Success && result.AgentPath == "" {
		fmt.Printf("Error: %s\n", result.Response)
		return
	}
	fmt.Printf("Classification: %s (confidence %.2f)\n", result.Label, result.Confidence)
	fmt.Printf("Agent Path:     %s\n", result.AgentPath)
	fmt.Printf("Response:       %s\n", result.Response)
	if result.TicketNumber != "" {
		fmt.Printf("Ticket:         %s\n", result.TicketNumber)
	}
	fmt.Printf("Time:           %dms\n", result.Elapsed.Milliseconds())
}

func printReport(rep evaluation.ComprehensiveReport) {
	fmt.Println("=== MODEL EVALUATION REPORT ===")
	fmt.Printf("Overall System Health: %s (%.1f)\n", rep.Health.Grade, rep.Health.Score)
	fmt.Printf("Classification Accuracy: %.1f%%\n", rep.Classification.AccuracyPercentage)
	fmt.Printf("Response Success Rate: %.1f%%\n", rep.ResponseQuality.SuccessRate)
	fmt.Printf("Agent Routing Accuracy: %.1f%%\n", rep.Routing.RoutingAccuracy)

	if rep.ResponseQuality.NoData {
		fmt.Println("(no interaction history yet - quality and routing sections are empty)")
	}

	categories := make([]string, 0, len(rep.Classification.CategoryPerformance))
	for c := range rep.Classification.CategoryPerformance {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	fmt.Println("\nPer-category accuracy:")
	for _, c := range categories {
		perf := rep.Classification.CategoryPerformance[c]
		fmt.Printf("  %-18s %.1f%% (%d/%d)\n", c, perf.Accuracy, perf.Correct, perf.Total)
	}

	fmt.Println("\nRecommendations:")
	for _, rec := range rep.Health.Recommendations {
		fmt.Printf("- %s\n", rec)
	}
}
