// Package main provides the entry point for the LinkedIn Post Agent HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "post_agent",
	Short: "LinkedIn Post Agent HTTP API Server",
	Long:  "LinkedIn Post Agent composes persona-styled LinkedIn posts and publishes them through the LinkedIn REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
