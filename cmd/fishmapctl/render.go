package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/fish-stock-map-service/internal/config"
	"github.com/couchcryptid/fish-stock-map-service/internal/domain"
)

func renderCommand(cfg *config.Config) *cobra.Command {
	var (
		q   domain.Query
		out string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the status map for a filter to an HTML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := newService(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			art, err := svc.RenderMap(q)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, []byte(art.HTML), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			if art.Degraded {
				fmt.Fprintf(cmd.OutOrStdout(), "no records match the filter; wrote placeholder to %s\n", out)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s at %s: %d regions, %d without data\n",
				out, art.GeneratedAt.Format(time.RFC3339), art.Regions, art.Unmatched)
			return nil
		},
	}

	cmd.Flags().IntVar(&q.Year, "tahun", 0, "year filter")
	cmd.Flags().StringVar(&q.Province, "provinsi", "", "province filter")
	cmd.Flags().StringVar(&q.SpeciesGroup, "ikan", "", "species group filter")
	cmd.Flags().StringVarP(&out, "out", "o", "peta-kepatuhan.html", "output HTML file")
	return cmd
}
