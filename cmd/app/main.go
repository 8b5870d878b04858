package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/asrvd/nexxel.dev/internal"
	"github.com/asrvd/nexxel.dev/internal/build"
	"github.com/asrvd/nexxel.dev/internal/index"
	"github.com/asrvd/nexxel.dev/internal/mcpserver"
	"github.com/asrvd/nexxel.dev/internal/render"
	"github.com/asrvd/nexxel.dev/internal/site"
	"github.com/asrvd/nexxel.dev/internal/storage"
	"github.com/asrvd/nexxel.dev/internal/store"
	pkgconfig "github.com/asrvd/nexxel.dev/pkg/config"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.Load(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

func runBuild(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))

	src, err := storage.NewFS(cfg.Content.Path)
	if err != nil {
		return fmt.Errorf("init content source: %w", err)
	}

	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init index: %w", err)
	}
	defer db.Close()

	report, err := build.Run(ctx, store.New(src), db, logger, build.Options{
		OutDir:    cmd.String("out"),
		SiteTitle: cfg.Site.Title,
		Workers:   int(cmd.Int("workers")),
	})
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}

	logger.Info("build finished",
		slog.Int("written", report.Written),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", len(report.Failures)))

	for _, f := range report.Failures {
		fmt.Fprintf(os.Stderr, "FAIL %s: %s\n", f.Path, f.Err)
	}
	if len(report.Failures) > 0 {
		return fmt.Errorf("build: %d document(s) failed to render", len(report.Failures))
	}

	return nil
}

func runMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// MCP speaks JSON-RPC on stdout; keep logs on stderr.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	src, err := storage.NewFS(cfg.Content.Path)
	if err != nil {
		return fmt.Errorf("init content source: %w", err)
	}

	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init index: %w", err)
	}
	defer db.Close()

	svc := site.NewService(store.New(src), db, render.New(), cfg.Site.Title)
	if _, err := svc.Reload(ctx, logger); err != nil {
		logger.Warn("initial load failed", slog.String("error", err.Error()))
	}

	logger.Info("Starting MCP server on stdio")
	if err := mcpserver.New(svc).ServeStdio(); err != nil {
		return fmt.Errorf("mcp server error: %w", err)
	}

	return nil
}

func main() {
	configFlag := &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "Path to config file",
		DefaultText: "config/config.yaml",
		Value:       "config/config.yaml",
		Sources:     cli.EnvVars("APP_CONFIG_FILE"),
	}

	cmd := &cli.Command{
		Name:  "nexxel",
		Usage: "Markdown article pipeline: preview server, static builds, and search",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the preview server with live reload",
				Action: runServe,
				Flags:  []cli.Flag{configFlag},
			},
			{
				Name:   "build",
				Usage:  "Render all published articles to a static output directory",
				Action: runBuild,
				Flags: []cli.Flag{
					configFlag,
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Output directory",
						Value:   "public",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Render worker count (0 = one per article)",
						Value: 0,
					},
				},
			},
			{
				Name:   "mcp",
				Usage:  "Run the MCP server on stdio for editor tooling",
				Action: runMCP,
				Flags:  []cli.Flag{configFlag},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
