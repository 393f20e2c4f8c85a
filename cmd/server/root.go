package main

import (
	"github.com/spf13/cobra"
)

var envFlag string

var rootCmd = &cobra.Command{
	Use:   "annostore",
	Short: "In-memory W3C Web Annotation store",
	Long: `annostore serves a REST API for registering annotation targets and
attaching Web Annotation documents to them. All data lives in memory.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	// Add global --env flag to all commands
	rootCmd.PersistentFlags().StringVarP(&envFlag, "env", "e", "dev", "Environment to use (dev, test, prod)")
}
