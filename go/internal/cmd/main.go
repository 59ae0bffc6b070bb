package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configPath string
	port       string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "chipstore",
	Short: "The Single Chip Store screen host",
	Long: `chipstore serves the store, checkout and complete screens over WebSocket.

Each connection mounts one screen at /ws/screen?location=<path>. Session
events are published to the configured broker (log, nats or rabbitmq).`,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the screen host",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Listen port (overrides config and PORT)")
	rootCmd.AddCommand(serveCmd)
}

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("could not load .env file")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
