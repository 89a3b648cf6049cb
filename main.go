package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"tiktok-ads-agent/cmd/cli/cmd"
)

func main() {
	// Load environment variables from .env if present (ANTHROPIC_API_KEY,
	// ADS_ACCESS_TOKEN, ...).
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
