package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/previewbuilder/internal/config"
	"git.home.luguber.info/inful/previewbuilder/internal/metrics"
	"git.home.luguber.info/inful/previewbuilder/internal/pipeline"
	"git.home.luguber.info/inful/previewbuilder/internal/publish"
	"git.home.luguber.info/inful/previewbuilder/internal/server/httpserver"
	"git.home.luguber.info/inful/previewbuilder/internal/toolrunner"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"config.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Serve struct{} `cmd:"" help:"Start the preview build service"`

	Build struct {
		Component string `short:"n" help:"Component identifier" required:""`
		File      string `short:"f" help:"Path to the component source file" required:""`
		Output    string `short:"o" help:"Directory published artifacts are written to" default:"./out"`
	} `cmd:"" help:"Run one build locally and write artifacts to a directory"`
}

func main() {
	ctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	config.LoadEnvFile()

	switch ctx.Command() {
	case "serve":
		if err := runServe(CLI.Config); err != nil {
			slog.Error("Serve failed", "error", err)
			os.Exit(1)
		}
	case "build":
		if err := runBuild(CLI.Config, CLI.Build.Component, CLI.Build.File, CLI.Build.Output); err != nil {
			slog.Error("Build failed", "error", err)
			os.Exit(1)
		}
	}
}

func runServe(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	publisher, err := publish.NewS3Publisher(ctx, cfg.Bucket, publish.S3Options{
		Region:   cfg.Region,
		Endpoint: cfg.StorageEndpoint,
	})
	if err != nil {
		return err
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var registry *prom.Registry
	if cfg.Metrics {
		registry = prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(registry)
	}

	p := pipeline.New(cfg, toolrunner.NewExecRunner(), publisher, recorder)
	srv := httpserver.New(cfg, p, httpserver.Options{Registry: registry})
	if err := srv.Start(ctx); err != nil {
		return err
	}

	slog.Info("Preview build service started, waiting for shutdown signal...")
	<-ctx.Done()
	slog.Info("Shutdown signal received, stopping...")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()
	return srv.Stop(stopCtx)
}

// runBuild executes the pipeline once against a local output directory. The
// object storage settings are not needed, so only the template root is
// checked; placeholder domains keep the URL rendering harmless.
func runBuild(configPath, componentID, sourceFile, outputDir string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if strings.TrimSpace(cfg.TemplateRoot) == "" {
		return fmt.Errorf("template_root must be configured for local builds")
	}
	if cfg.DistributionDomain == "" {
		cfg.DistributionDomain = "localhost"
	}
	if cfg.PreviewDomain == "" {
		cfg.PreviewDomain = "localhost"
	}

	source, err := os.ReadFile(sourceFile) // #nosec G304 -- operator-provided path
	if err != nil {
		return fmt.Errorf("failed to read component source: %w", err)
	}

	p := pipeline.New(cfg, toolrunner.NewExecRunner(), publish.NewFSPublisher(outputDir), nil)
	result, err := p.Run(context.Background(), pipeline.Request{
		ComponentID: componentID,
		SourceCode:  string(source),
	})
	if err != nil {
		return err
	}

	slog.Info("Build completed", "artifacts", len(result.Keys), "output", outputDir)
	for _, key := range result.Keys {
		fmt.Println(key)
	}
	return nil
}
