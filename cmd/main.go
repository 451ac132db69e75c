package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/corray333/backend-labs/booking/internal/app"
	"github.com/corray333/backend-labs/booking/internal/config"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "booking-svc",
	Short: "Service bookings and pastry orders API",
	// Running without a subcommand serves the API.
	Run: func(cmd *cobra.Command, args []string) {
		serveCmd.Run(cmd, args)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Run: func(cmd *cobra.Command, args []string) {
		config.MustInit()
		app.MustNewApp().Run()
	},
}

var auditorCmd = &cobra.Command{
	Use:   "auditor",
	Short: "Consume submission events into the audit log",
	Run: func(cmd *cobra.Command, args []string) {
		config.MustInit()
		app.MustNewAuditor().Run()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(auditorCmd)
	rootCmd.AddCommand(migrateCmd)
}
