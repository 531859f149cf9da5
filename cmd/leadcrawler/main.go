// Package main wires together the lead-crawler batch binary.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/leadgenjp/bizlead-crawler/internal/api"
	"github.com/leadgenjp/bizlead-crawler/internal/batch"
	"github.com/leadgenjp/bizlead-crawler/internal/clock/system"
	"github.com/leadgenjp/bizlead-crawler/internal/config"
	"github.com/leadgenjp/bizlead-crawler/internal/crawler"
	"github.com/leadgenjp/bizlead-crawler/internal/extractor"
	"github.com/leadgenjp/bizlead-crawler/internal/loader"
	"github.com/leadgenjp/bizlead-crawler/internal/logging"
	"github.com/leadgenjp/bizlead-crawler/internal/sink"
)

func main() {
	cfgPath := flag.String("config", "", "Path to config file")
	inputPath := flag.String("input", "", "Path to the CSV target list (overrides input.path)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}
	if *inputPath != "" {
		cfg.Input.Path = *inputPath
	}
	if cfg.Input.Path == "" {
		fmt.Fprintln(os.Stderr, "no input file: set input.path or pass -input")
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("run failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	targets, err := loader.NewCSV(logger).Load(cfg.Input.Path, cfg.Crawler.MaxTargets)
	if err != nil {
		return err
	}

	clock := system.New()
	robots := crawler.NewRobotsChecker(cfg.RespectRobots(), cfg.Crawler.UserAgent, clock, logger)
	retry := crawler.NewExponentialRetryPolicy()
	fetcher, err := crawler.NewCollyFetcher(crawler.FetcherConfig{
		UserAgent:    cfg.Crawler.UserAgent,
		Timeout:      cfg.FetchTimeout(),
		MaxRedirects: cfg.Crawler.MaxRedirects,
		Concurrency:  cfg.Crawler.Concurrency,
	}, retry, logger)
	if err != nil {
		return fmt.Errorf("build fetcher: %w", err)
	}
	engine := crawler.NewEngine(robots, fetcher, extractor.New(cfg.Tables()), clock, logger)

	out, webhook, err := buildSinks(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if cerr := out.Close(closeCtx); cerr != nil {
			logger.Error("close sinks", zap.Error(cerr))
		}
	}()

	if cfg.Server.Enabled {
		ops := api.NewServer(cfg.Server.Port, logger)
		go func() {
			if serr := ops.Start(); serr != nil {
				logger.Error("ops server stopped", zap.Error(serr))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if serr := ops.Shutdown(shutdownCtx); serr != nil {
				logger.Error("ops server shutdown", zap.Error(serr))
			}
		}()
	}

	coord := batch.New(engine, out, batch.Config{
		Concurrency:     cfg.Crawler.Concurrency,
		MaxTargets:      cfg.Crawler.MaxTargets,
		ExcludePatterns: cfg.Crawler.ExcludePatterns,
	}, clock, logger)

	summary, results, runErr := coord.Run(ctx, targets)

	// Batch mode holds the whole run and exports it as one array at the end.
	if webhook != nil && cfg.Output.Webhook.BatchMode {
		sendCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if werr := webhook.SendBatch(sendCtx, results); werr != nil {
			logger.Error("webhook batch export failed", zap.Error(werr))
		}
	}

	printSummary(summary)
	return runErr
}

// buildSinks assembles the configured fan-out. The webhook sink is returned
// separately so batch mode can export after the run completes.
func buildSinks(ctx context.Context, cfg config.Config, logger *zap.Logger) (sink.Sink, *sink.Webhook, error) {
	ndjson, err := sink.NewNDJSON(cfg.Output.NDJSONPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open ndjson output: %w", err)
	}
	sinks := []sink.Sink{ndjson}

	var webhook *sink.Webhook
	if cfg.Output.Webhook.Enabled {
		webhook = sink.NewWebhook(cfg.Output.Webhook.Endpoint, logger)
		if !cfg.Output.Webhook.BatchMode {
			sinks = append(sinks, webhook)
		}
	}
	if cfg.Output.Postgres.DSN != "" {
		pg, err := sink.NewPostgres(ctx, cfg.Output.Postgres.DSN)
		if err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, pg)
	}
	if cfg.Output.PubSub.ProjectID != "" {
		ps, err := sink.NewPubSub(ctx, cfg.Output.PubSub.ProjectID, cfg.Output.PubSub.TopicID)
		if err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, ps)
	}
	if cfg.Output.LogResults {
		sinks = append(sinks, sink.NewLog(logger))
	}
	return sink.NewMulti(logger, sinks...), webhook, nil
}

func printSummary(s crawler.Summary) {
	fmt.Println("==================================================")
	fmt.Println("Crawl summary")
	fmt.Println("==================================================")
	fmt.Printf("Targets processed: %d\n", s.Total)
	fmt.Printf("Succeeded:         %d\n", s.Succeeded)
	fmt.Printf("Failed:            %d\n", s.Failed)
	fmt.Printf("Blocked:           %d\n", s.Blocked)
	fmt.Printf("Skipped:           %d\n", s.Skipped)
	fmt.Printf("Emails found:      %d\n", s.EmailsFound)
	fmt.Printf("Forms found:       %d\n", s.FormsFound)
	fmt.Printf("Companies named:   %d\n", s.CompanyNamesFound)
	fmt.Printf("Elapsed:           %s\n", s.Elapsed.Round(time.Millisecond))
}
