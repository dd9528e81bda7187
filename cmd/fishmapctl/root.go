package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/fish-stock-map-service/internal/config"
	"github.com/couchcryptid/fish-stock-map-service/internal/dataset"
	"github.com/couchcryptid/fish-stock-map-service/internal/observability"
	"github.com/couchcryptid/fish-stock-map-service/internal/pipeline"
	"github.com/couchcryptid/fish-stock-map-service/internal/render"
)

// RootCommand creates the fishmapctl command tree. Flags write straight into
// cfg, so a flag overrides the environment value it defaults to.
func RootCommand(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:          "fishmapctl",
		Short:        "Fish stock map dataset tool",
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfg.RecordsPath, "records", cfg.RecordsPath, "record table (.csv or .xlsx)")
	flags.StringVar(&cfg.RecordsSheet, "sheet", cfg.RecordsSheet, "workbook sheet (default: first sheet)")
	flags.StringVar(&cfg.RegionsPath, "regions", cfg.RegionsPath, "province boundaries (GeoJSON)")

	root.AddCommand(
		renderCommand(cfg),
		validateCommand(cfg),
		exportCommand(cfg),
	)
	return root
}

// newService loads the datasets and builds a query service without a
// classifier. Logs go to stderr so stdout stays clean for reports.
func newService(cfg *config.Config, stderr io.Writer) (*pipeline.Service, error) {
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	snapshot, err := dataset.Load(cfg.RecordsPath, cfg.RecordsSheet, cfg.RegionsPath, logger)
	if err != nil {
		return nil, err
	}
	return pipeline.New(snapshot, nil, nil, mapOptions(cfg), logger, observability.NewMetricsWith(nil)), nil
}

func mapOptions(cfg *config.Config) render.MapOptions {
	return render.MapOptions{
		TilesURL:    cfg.MapTilesURL,
		Attribution: cfg.MapAttribution,
		CenterLat:   cfg.MapCenterLat,
		CenterLon:   cfg.MapCenterLon,
		Zoom:        cfg.MapZoom,
	}
}
