package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Z335han/bmc-banking-ai/internal/config"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load(".env")

	cfg := config.LoadFromEnv()

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	rootCmd := &cobra.Command{
		Use:   "supportctl",
		Short: "Banking support assistant - classification, routing and evaluation",
		Long: `supportctl runs the banking support pipeline from the command line.

It classifies customer messages, routes them to the feedback or query
handler, records every interaction, and scores the system offline.`,
	}

	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(
		newAskCmd(cfg, logger),
		newChatCmd(cfg, logger),
		newSeedCmd(cfg, logger),
		newReportCmd(cfg, logger),
		newServeMetricsCmd(cfg, logger),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
