package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	envFile string

	rootCmd = &cobra.Command{
		Use:   "carbon-intensity-proxy",
		Short: "Postcode-scoped proxy for the UK carbon intensity API.",
		Long: `Serves regional carbon intensity history and forecasts for a UK postcode,
translating requests into the date-range queries the National Grid API expects.`,
		SilenceUsage: true,
	}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "The env file to read.")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(fetchCmd)
}

func initConfig() {
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
}
