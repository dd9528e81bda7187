// Command fishmapctl is the operator tool for the fish stock map datasets.
//
// Usage:
//
//	fishmapctl render --tahun 2023 --out peta.html
//	fishmapctl validate
//	fishmapctl export --out status-ikan.xlsx
//
// Dataset paths default to RECORDS_PATH, RECORDS_SHEET and REGIONS_PATH.
package main

import (
	"fmt"
	"os"

	"github.com/couchcryptid/fish-stock-map-service/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	if err := RootCommand(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}
