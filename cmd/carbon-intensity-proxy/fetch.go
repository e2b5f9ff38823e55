package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/i474232898/carbon-intensity-proxy/internal/carbon"
	"github.com/i474232898/carbon-intensity-proxy/internal/carbon/upstream"
	"github.com/i474232898/carbon-intensity-proxy/internal/config"
	"github.com/i474232898/carbon-intensity-proxy/internal/observability"
)

var (
	fetchPostcode string
	fetchWindow   string

	fetchCmd = &cobra.Command{
		Use:   "fetch --postcode <postcode> [--window <window>]",
		Short: "Query the carbon intensity API once and print the response envelope",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return fetch(cmd.Context())
		},
	}
)

func init() {
	fetchCmd.Flags().StringVar(&fetchPostcode, "postcode", "", "UK postcode or outward code")
	fetchCmd.Flags().StringVar(&fetchWindow, "window", string(carbon.WindowCurrent30m),
		"One of history-7d, current-30m, forecast-48h")
	_ = fetchCmd.MarkFlagRequired("postcode")
}

func fetch(ctx context.Context) error {
	if fetchPostcode == "" {
		return &carbon.MissingParameterError{Name: "postcode"}
	}
	kind, err := carbon.ParseWindowKind(fetchWindow)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	client := upstream.NewClient(cfg.Upstream(), nil, logger)
	service := carbon.NewService(client, nil)

	data, err := service.Fetch(ctx, fetchPostcode, kind)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(carbon.Envelope(fetchPostcode, data))
}
