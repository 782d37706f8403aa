package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bagrikeng/tanlovbot/core/buildinfo"
	coreconfig "github.com/bagrikeng/tanlovbot/core/config"
	"github.com/bagrikeng/tanlovbot/internal/app"
	"github.com/bagrikeng/tanlovbot/internal/report"
)

func main() {
	var configPath string

	root := &cobra.Command{
		Use:     "tanlovbot",
		Short:   "Contest registration bot",
		Version: fmt.Sprintf("%s (%s)", buildinfo.Version, buildinfo.Commit),
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to config file")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the bot and the ops endpoint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := coreconfig.Load(configPath)
			if err != nil {
				return err
			}
			a, err := app.New(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.Run(ctx)
		},
	}

	var outDir string
	export := &cobra.Command{
		Use:   "export",
		Short: "Generate the xlsx report and write it to disk",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := coreconfig.Load(configPath)
			if err != nil {
				return err
			}
			exp, err := exportReport(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			path := filepath.Join(outDir, exp.Filename)
			if err := os.WriteFile(path, exp.Data, 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	export.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")

	root.AddCommand(serve, export)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func exportReport(ctx context.Context, cfg *coreconfig.Config) (report.Export, error) {
	gen, cleanup, err := app.NewReporter(cfg)
	if err != nil {
		return report.Export{}, err
	}
	defer cleanup()
	return gen.Generate(ctx)
}
