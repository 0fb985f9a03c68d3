package main

import (
	"context"
	"fmt"

	"github.com/QTest-hq/dtsgen/internal/config"
	"github.com/QTest-hq/dtsgen/internal/fetch"
	"github.com/QTest-hq/dtsgen/internal/workspace"
	"github.com/spf13/cobra"
)

func ui5Cmd() *cobra.Command {
	var (
		header   string
		cacheDir string
		workers  int
		check    bool
	)

	cmd := &cobra.Command{
		Use:     "types-ui5 <data> [out]",
		Aliases: []string{"ui5"},
		Short:   "Generate declarations from UI5 API documents",
		Long: `Generate one declaration file per UI5 library document. <data> is either
a version ("v1.120.0", downloaded first), a library api.json file, or a folder of
them. Folder and version inputs also get an index.d.ts.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := "."
			if len(args) > 1 {
				out = args[1]
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cacheDir != "" {
				cfg.UI5.CacheDir = cacheDir
			}
			if workers > 0 {
				cfg.UI5.Workers = workers
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			result, err := workspace.ExportUI5(context.Background(), workspace.UI5Options{
				Data:   args[0],
				Out:    out,
				Header: header,
				Check:  check,
				Downloader: &fetch.Downloader{
					IndexURL: cfg.UI5.IndexURL,
					APIURL:   cfg.UI5.APIURL,
					CacheDir: cfg.UI5.CacheDir,
					Workers:  cfg.UI5.Workers,
				},
			})
			if err != nil {
				return err
			}
			return printResult(cmd, result)
		},
	}

	cmd.Flags().StringVar(&header, "header", "", "Leading comment of every generated file")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Download folder for version inputs (default $DTSGEN_CACHE_DIR)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Parallel library downloads (default $DTSGEN_DOWNLOAD_WORKERS)")
	cmd.Flags().BoolVar(&check, "check", false, "Syntax check the generated files")

	return cmd
}
