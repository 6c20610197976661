// Command x987scout runs the listing-collection-through-ranking pipeline
// described in internal/pipeline: a set of flag-driven subcommands over a
// static step registry, the way a small Go CLI wraps a library rather than
// re-deriving the teacher's single always-on web server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rkaplan/x987scout/internal/collector"
	"github.com/rkaplan/x987scout/internal/config"
	"github.com/rkaplan/x987scout/internal/csvio"
	"github.com/rkaplan/x987scout/internal/doctor"
	"github.com/rkaplan/x987scout/internal/logging"
	"github.com/rkaplan/x987scout/internal/options"
	"github.com/rkaplan/x987scout/internal/pipeline"
	"github.com/rkaplan/x987scout/internal/pipeline/steps"
	"github.com/rkaplan/x987scout/internal/profiles"
	"github.com/rkaplan/x987scout/internal/scraper"
	"github.com/rkaplan/x987scout/internal/schedule"
	"github.com/rkaplan/x987scout/internal/seencache"
	"github.com/rkaplan/x987scout/internal/statusserver"
	"github.com/rkaplan/x987scout/internal/vehicles"
	"github.com/rkaplan/x987scout/internal/view"
)

var log = logging.New("cli")

// stepAliases maps the short CLI command names to their pipeline.Step
// names, matching the original's run-single-step subcommands.
var stepAliases = map[string]string{
	"collect":    "collection",
	"scrape":     "scraping",
	"transform":  "transformation",
	"dedupe":     "deduplication",
	"fair_value": "fair_value",
	"rank":       "ranking",
	"view":       "view",
	"catalog":    "catalog",
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}
	command := os.Args[1]

	fs := flag.NewFlagSet(command, flag.ExitOnError)
	configPath := fs.String("config", "x987scout.toml", "path to the TOML config file")
	verbose := fs.Bool("verbose", false, "enable debug logging")
	fs.BoolVar(verbose, "v", false, "enable debug logging (shorthand)")
	headful := fs.Bool("headful", false, "force a visible browser window, overriding config")
	timestampFlag := fs.String("timestamp", "", "override the shared artifact timestamp (YYYYMMDD_HHMMSS)")
	cronExpr := fs.String("schedule", "", "repeat the pipeline on this cron expression instead of running once")
	serve := fs.Bool("serve", false, "expose a local HTTP status endpoint while running")
	serveAddr := fs.String("serve-addr", "127.0.0.1:4873", "address for --serve")
	seenCachePath := fs.String("seen-cache", "", "path to the persistent seen-listing cache (disabled if empty)")
	_ = fs.Parse(os.Args[2:])

	logging.SetVerbose(*verbose)

	if command == "doctor" {
		runDoctor(*configPath)
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal("loading config: %v", err)
	}
	if *headful {
		cfg.Scraping.Headful = true
	}

	if command == "config" {
		printConfig(cfg)
		return
	}

	registry, err := pipeline.NewRegistry(
		steps.CollectionStep{},
		steps.ScrapingStep{},
		steps.TransformationStep{},
		steps.DeduplicationStep{},
		steps.FairValueStep{},
		steps.RankingStep{},
		steps.ViewStep{Renderer: view.TableRenderer{}},
		steps.CatalogStep{},
	)
	if err != nil {
		log.Fatal("building pipeline registry: %v", err)
	}

	if command == "info" {
		printInfo(registry)
		return
	}

	rc, cleanup := buildRunContext(cfg, *timestampFlag, *seenCachePath)
	defer cleanup()

	var status *statusserver.Server
	if *serve {
		status = statusserver.New(*serveAddr)
		status.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = status.Shutdown(shutdownCtx)
		}()
	}

	runOnce := func() {
		if *timestampFlag == "" {
			rc.Timestamp = csvio.Timestamp(time.Now())
		}
		if command == "pipeline" {
			summary, err := pipeline.RunPipeline(registry, rc)
			if status != nil && summary != nil {
				status.Update(summary)
			}
			if err != nil {
				log.Error("pipeline run failed: %v", err)
			}
			return
		}

		stepName, ok := stepAliases[command]
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown command %q\n", command)
			printUsage()
			os.Exit(2)
		}
		result, err := pipeline.RunSingleStep(registry, stepName, rc)
		if err != nil {
			log.Fatal("running step %q: %v", stepName, err)
		}
		if result.IsFailure() {
			log.Error("step %q failed: %v", stepName, result.Error)
		}
	}

	if *cronExpr != "" {
		runScheduled(*cronExpr, runOnce)
		return
	}
	runOnce()
}

// loadConfig reads path, falling back to config.Default() when the file
// doesn't exist so a fresh checkout can still run `doctor`/`info` without a
// config file on disk.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Warn("no config file at %s; using built-in defaults", path)
		return config.Default(), nil
	}
	return config.Load(path)
}

// buildRunContext wires every process-wide singleton (spec §3) into one
// RunContext, and returns a cleanup func that releases the ones that own
// resources (the seen-listing cache).
func buildRunContext(cfg *config.Config, timestampOverride, seenCachePath string) (*pipeline.RunContext, func()) {
	catalog := cfg.BuildCatalog()
	if len(catalog.Models()) == 0 {
		log.Info("no [vehicles.models] configured; using the built-in model/generation/trim catalog")
		catalog = vehicles.New(vehicles.DefaultModels())
	}

	overrides := cfg.BuildOverrideTable()
	if len(overrides) == 0 {
		log.Info("no options_per_generation configured; using the built-in per-generation MSRP overrides")
		overrides = vehicles.DefaultOptionOverrides()
	}

	browserOpts := scraper.BrowserOptions{
		Headful:    cfg.Scraping.Headful,
		ChromePath: cfg.Scraping.ChromePath,
		UserAgent:  cfg.Scraping.UserAgent,
	}

	coll := collector.New(collector.Options{
		Headful:      cfg.Scraping.Headful,
		ChromePath:   cfg.Scraping.ChromePath,
		UserAgent:    cfg.Scraping.UserAgent,
		CapPerSource: cfg.Scraping.CapListings,
		PoliteDelay:  time.Duration(cfg.Scraping.PoliteDelayMS) * time.Millisecond,
	})

	scr := scraper.New(browserOpts, profiles.Default())

	var cache *seencache.Cache
	cleanup := func() {}
	if seenCachePath != "" {
		c, err := seencache.Open(seenCachePath)
		if err != nil {
			log.Warn("could not open seen-listing cache at %s: %v", seenCachePath, err)
		} else {
			cache = c
			cleanup = func() { _ = c.Close() }
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	prevCleanup := cleanup
	cleanup = func() {
		stop()
		prevCleanup()
	}

	timestamp := timestampOverride
	if timestamp == "" {
		timestamp = csvio.Timestamp(time.Now())
	}

	rc := &pipeline.RunContext{
		Ctx:             ctx,
		Config:          cfg,
		Verbose:         logging.Verbose(),
		Headful:         cfg.Scraping.Headful,
		Timestamp:       timestamp,
		Collector:       coll,
		Scraper:         scr,
		OptionsRegistry: options.Default(),
		Catalog:         catalog,
		Overrides:       overrides,
		SeenCache:       cache,
	}
	return rc, cleanup
}

// runScheduled repeats runOnce on cronExpr until interrupted, matching the
// original CLI's `--schedule` loop mode.
func runScheduled(cronExpr string, runOnce func()) {
	sched := schedule.New()
	if err := sched.ScheduleCron(cronExpr, runOnce); err != nil {
		log.Fatal("invalid --schedule expression %q: %v", cronExpr, err)
	}
	sched.Start()
	defer sched.Stop()

	log.Info("scheduled pipeline runs on %q; press Ctrl+C to stop", cronExpr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	log.Info("shutting down scheduler")
}

func runDoctor(configPath string) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Fatal("loading config: %v", err)
	}
	reports := doctor.Run(cfg.Scraping.ChromePath, cfg.Pipeline.OutputDirectory)
	fmt.Print(doctor.Summary(reports))
	if !doctor.AllOK(reports) {
		os.Exit(1)
	}
}

func printInfo(registry *pipeline.Registry) {
	fmt.Println("registered pipeline steps, in execution order:")
	for i, name := range registry.ExecutionOrder() {
		step, _ := registry.Get(name)
		fmt.Printf("  %d. %-15s %s\n", i+1, step.Name(), step.Description())
	}
}

func printConfig(cfg *config.Config) {
	fmt.Printf("pricing_mode: %s\n", cfg.PricingMode)
	fmt.Printf("search.urls: %d configured\n", len(cfg.Search.URLs))
	fmt.Printf("scraping.concurrency: %d\n", cfg.Scraping.Concurrency)
	fmt.Printf("scraping.headful: %v\n", cfg.Scraping.Headful)
	fmt.Printf("options_v2.enabled: %v\n", cfg.OptionsV2.Enabled)
	fmt.Printf("pipeline.output_directory: %s\n", cfg.Pipeline.OutputDirectory)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `x987scout - Porsche listing collection, extraction, and ranking

Usage:
  x987scout <command> [flags]

Commands:
  pipeline     run every stage in dependency order
  collect      run the collection stage alone
  scrape       run the scraping stage alone
  transform    run the transformation stage alone
  dedupe       run the deduplication stage alone
  fair_value   run the fair_value stage alone
  rank         run the ranking stage alone
  view         run the view stage alone
  catalog      run the catalog export stage alone
  info         print the registered pipeline steps and their order
  config       print the effective configuration
  doctor       check the local environment (Chrome, CPU, memory, disk)

Flags:
  -config string       path to the TOML config file (default "x987scout.toml")
  -v, -verbose         enable debug logging
  -headful             force a visible browser window
  -timestamp string    override the shared artifact timestamp
  -schedule string     repeat the pipeline on a cron expression
  -serve               expose a local HTTP status endpoint
  -serve-addr string   address for -serve (default "127.0.0.1:4873")
  -seen-cache string   path to the persistent seen-listing cache`)
}
