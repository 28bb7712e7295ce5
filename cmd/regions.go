package main

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/nss-cli/internal/config"
	"github.com/sells-group/nss-cli/internal/fetcher"
	"github.com/sells-group/nss-cli/internal/registry"
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "Inspect and import regional base data",
}

var regionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the regional base-year profiles",
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := initModel(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		formatRegionList(os.Stdout, env.Regions.Regions)
		return nil
	},
}

var regionsImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Download or copy a region table (CSV, XLSX or JSON) and validate it",
	Long: `Fetches a region base-data table, validates every row and writes it to
--out. Point model.regions_file at the output to use it in later runs.

Examples:
  regions import --file regions.xlsx --sheet regions --out data/regions.xlsx
  regions import --url https://example.org/regions.csv --out data/regions.csv`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		src, _ := cmd.Flags().GetString("file")
		url, _ := cmd.Flags().GetString("url")
		out, _ := cmd.Flags().GetString("out")
		sheet, _ := cmd.Flags().GetString("sheet")

		if (src == "") == (url == "") {
			return eris.New("exactly one of --file or --url is required")
		}
		if sheet == "" {
			sheet = cfg.Model.RegionsSheet
		}

		if url != "" {
			if out == "" {
				out = path.Base(url)
			}
			if _, err := downloadRegions(ctx, cfg.Fetch, url, out); err != nil {
				return err
			}
			src = out
		}

		if err := checkSheet(src, sheet); err != nil {
			return err
		}

		reg, err := registry.LoadRegionsFromFile(ctx, src, sheet)
		if err != nil {
			return err
		}
		if err := reg.Validate(); err != nil {
			return err
		}

		if out != "" && out != src {
			if !strings.EqualFold(filepath.Ext(out), filepath.Ext(src)) {
				return eris.Errorf("--out %s must keep the source extension %s", out, filepath.Ext(src))
			}
			data, err := os.ReadFile(src)
			if err != nil {
				return eris.Wrap(err, "read region table")
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return eris.Wrap(err, "write region table")
			}
		}

		zap.L().Info("regions imported",
			zap.String("command", "regions import"),
			zap.String("source", src),
			zap.String("out", out),
			zap.Int("regions", len(reg.Regions)),
		)
		formatRegionList(os.Stdout, reg.Regions)
		return nil
	},
}

// checkSheet reports the available worksheets when an XLSX source lacks sheet.
func checkSheet(src, sheet string) error {
	if !strings.EqualFold(filepath.Ext(src), ".xlsx") {
		return nil
	}
	names, err := fetcher.SheetNames(src)
	if err != nil {
		return err
	}
	if !slices.Contains(names, sheet) {
		return eris.Errorf("sheet %q not found in %s (available: %s)", sheet, src, strings.Join(names, ", "))
	}
	return nil
}

// downloadRegions fetches url into dest using the configured HTTP fetcher.
func downloadRegions(ctx context.Context, fc config.FetchConfig, url, dest string) (int64, error) {
	f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:      fc.UserAgent,
		Timeout:        time.Duration(fc.TimeoutSecs) * time.Second,
		MaxRetries:     fc.MaxRetries,
		RequestsPerSec: fc.RequestsPerSec,
	})
	n, err := f.DownloadToFile(ctx, url, dest)
	if err != nil {
		return 0, eris.Wrap(err, "download regions")
	}
	return n, nil
}

func init() {
	regionsImportCmd.Flags().String("file", "", "local region table to import")
	regionsImportCmd.Flags().String("url", "", "URL of a region table to download")
	regionsImportCmd.Flags().String("out", "", "destination path (default: URL base name)")
	regionsImportCmd.Flags().String("sheet", "", "XLSX sheet name (default model.regions_sheet)")

	regionsCmd.AddCommand(regionsListCmd)
	regionsCmd.AddCommand(regionsImportCmd)
	rootCmd.AddCommand(regionsCmd)
}
