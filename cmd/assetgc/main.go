package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/mentora-io/assetgc/internal/catalog"
	"github.com/mentora-io/assetgc/internal/config"
	"github.com/mentora-io/assetgc/internal/deletion"
	"github.com/mentora-io/assetgc/internal/logging"
	"github.com/mentora-io/assetgc/internal/mediastore"
	s3store "github.com/mentora-io/assetgc/internal/mediastore/s3"
	"github.com/mentora-io/assetgc/internal/metrics"
	"github.com/mentora-io/assetgc/internal/registry"
	"github.com/mentora-io/assetgc/internal/sweep"
)

var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

func main() {
	// Handle version flag before subcommand parsing
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-version") {
		fmt.Printf("assetgc version %s (built %s)\n", version, buildTime)
		os.Exit(0)
	}

	// Check for subcommand
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	subcommand := os.Args[1]
	switch subcommand {
	case "sweep":
		runSweep(os.Args[2:])
	case "purge":
		runPurge(os.Args[2:])
	case "version":
		fmt.Printf("assetgc version %s (built %s, commit %s)\n", version, buildTime, gitCommit)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", subcommand)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Usage: assetgc <command> [options]

Commands:
  sweep       Scan the database and media store for orphaned assets
  purge       Delete orphan candidates that review has released
  version     Print version information

Run 'assetgc <command> --help' for more information on a command.`)
}

// loadConfig resolves the configuration for a subcommand. Any failure here
// is a setup error: nothing has been touched yet.
func loadConfig(path string) *config.Config {
	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.LoadFromPath(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

func newLogger(cfg *config.Config) *logging.Logger {
	logger := logging.Configure(cfg.Observability.LogLevel, cfg.Observability.LogFormat)
	return logger.With(map[string]any{"process": uuid.New().String()})
}

// openStores opens the database, the media store and the registry. Failures
// are setup errors (exit 2): no sweep or purge work has started.
func openStores(ctx context.Context, cfg *config.Config, logger *logging.Logger, storeMetrics *metrics.MediaStoreMetrics) (*catalog.DB, mediastore.Store, *registry.Registry) {
	db, err := catalog.Open(cfg.Database.Path)
	if err != nil {
		logger.Errorf("failed to open database", map[string]any{"error": err.Error()})
		os.Exit(2)
	}

	raw, err := s3store.New(ctx, s3store.Config{
		Bucket:          cfg.MediaStore.Bucket,
		Region:          cfg.MediaStore.Region,
		Endpoint:        cfg.MediaStore.Endpoint,
		AccessKeyID:     cfg.MediaStore.AccessKey,
		SecretAccessKey: cfg.MediaStore.SecretKey,
		UsePathStyle:    cfg.MediaStore.UsePathStyle,
	})
	if err != nil {
		db.Close()
		logger.Errorf("failed to open media store", map[string]any{"error": err.Error()})
		os.Exit(2)
	}
	store := mediastore.NewInstrumentedStore(raw, storeMetrics)

	reg := registry.New(db.DB)
	if err := reg.Migrate(); err != nil {
		store.Close()
		db.Close()
		logger.Errorf("failed to migrate registry", map[string]any{"error": err.Error()})
		os.Exit(2)
	}

	return db, store, reg
}

// startMetricsServer serves /metrics for the duration of the run when an
// address is configured. Returns a no-op closer otherwise.
func startMetricsServer(addr string, logger *logging.Logger) func() {
	if addr == "" {
		return func() {}
	}
	server := metrics.NewServer(addr)
	if err := server.Start(); err != nil {
		logger.Warnf("metrics server failed to start", map[string]any{
			"addr":  addr,
			"error": err.Error(),
		})
		return func() {}
	}
	logger.Infof("metrics server listening", map[string]any{"addr": server.Addr()})
	return func() { server.Close() }
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func runSweep(args []string) {
	fs := flag.NewFlagSet("sweep", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to configuration file")
	dryRun := fs.Bool("dry-run", false, "Report orphan candidates without recording them")
	batchSize := fs.Int("batch-size", 0, "Override document batch size for the mark phase")
	pageSize := fs.Int("page-size", 0, "Override media store listing page size")
	metricsAddr := fs.String("metrics-addr", "", "Serve Prometheus metrics on this address for the run")

	fs.Usage = func() {
		fmt.Println(`Usage: assetgc sweep [options]

Run one full orphan sweep: rebuild the live-reference set from the database,
list the entire media store, and record every unreferenced asset as an
orphan candidate pending review. Never deletes anything.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}

	cfg := loadConfig(*configPath)
	if *batchSize > 0 {
		cfg.Sweep.BatchSize = *batchSize
	}
	if *pageSize > 0 {
		cfg.Sweep.PageSize = *pageSize
	}
	if *metricsAddr != "" {
		cfg.Observability.MetricsAddr = *metricsAddr
	}

	logger := newLogger(cfg)

	ctx, cancel := signalContext()
	defer cancel()

	storeMetrics := metrics.NewMediaStoreMetrics()
	sweepMetrics := metrics.NewSweepMetrics()
	registryMetrics := metrics.NewRegistryMetrics()

	db, store, reg := openStores(ctx, cfg, logger, storeMetrics)
	defer db.Close()
	defer store.Close()

	stopMetrics := startMetricsServer(cfg.Observability.MetricsAddr, logger)
	defer stopMetrics()

	sweeper := sweep.New(db, store, reg, sweep.Config{
		BatchSize:       cfg.Sweep.BatchSize,
		PageSize:        cfg.Sweep.PageSize,
		SampleLimit:     cfg.Sweep.SampleLimit,
		ExcludedFolders: cfg.Sweep.ExcludedFolders,
		DryRun:          *dryRun,
	}, logger, sweepMetrics)

	report, err := sweeper.Run(ctx)
	if err != nil {
		logger.Errorf("sweep failed", map[string]any{"error": err.Error()})
		store.Close()
		db.Close()
		os.Exit(1)
	}

	registryMetrics.RecordInserted(report.NewlyRecorded)
	if counts, err := reg.CountByStatus(ctx); err == nil {
		registryMetrics.RecordBacklog(statusCounts(counts))
	}

	report.Write(os.Stdout)
}

func runPurge(args []string) {
	fs := flag.NewFlagSet("purge", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to configuration file")
	limit := fs.Int("limit", 100, "Maximum number of pending candidates to purge")
	allPending := fs.Bool("all-pending", false, "Purge every pending candidate regardless of --limit")
	metricsAddr := fs.String("metrics-addr", "", "Serve Prometheus metrics on this address for the run")

	fs.Usage = func() {
		fmt.Println(`Usage: assetgc purge [options]

Release pending orphan candidates for deletion: each candidate is marked
deletion_queued, its asset is deleted from the media store, and the registry
record is resolved on success or marked error on failure.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}

	cfg := loadConfig(*configPath)
	if *metricsAddr != "" {
		cfg.Observability.MetricsAddr = *metricsAddr
	}

	logger := newLogger(cfg)

	ctx, cancel := signalContext()
	defer cancel()

	storeMetrics := metrics.NewMediaStoreMetrics()
	deletionMetrics := metrics.NewDeletionMetrics()
	registryMetrics := metrics.NewRegistryMetrics()

	db, store, reg := openStores(ctx, cfg, logger, storeMetrics)
	defer db.Close()
	defer store.Close()

	stopMetrics := startMetricsServer(cfg.Observability.MetricsAddr, logger)
	defer stopMetrics()

	queue := deletion.NewQueue(store, logger, deletionMetrics, deletion.Config{
		QueueDepth: cfg.Deletion.QueueDepth,
		Workers:    cfg.Deletion.Workers,
	})
	queue.Start()
	defer queue.Stop()

	listLimit := *limit
	if *allPending {
		listLimit = 0
	}
	pending, err := reg.ListPending(ctx, listLimit)
	if err != nil {
		logger.Errorf("failed to list pending candidates", map[string]any{"error": err.Error()})
		store.Close()
		db.Close()
		os.Exit(1)
	}

	purged, failed := 0, 0
	for _, candidate := range pending {
		if ctx.Err() != nil {
			break
		}
		if err := purgeCandidate(ctx, reg, queue, candidate, logger); err != nil {
			failed++
		} else {
			purged++
		}
	}

	if counts, err := reg.CountByStatus(ctx); err == nil {
		registryMetrics.RecordBacklog(statusCounts(counts))
	}

	fmt.Printf("purged %d of %d candidates (%d failed)\n", purged, len(pending), failed)
	if failed > 0 {
		store.Close()
		db.Close()
		queue.Stop()
		os.Exit(1)
	}
}

// purgeCandidate walks one record through the release workflow:
// deletion_queued -> store deletion -> resolved, or -> error on failure.
func purgeCandidate(ctx context.Context, reg *registry.Registry, queue *deletion.Queue, candidate registry.OrphanCandidate, logger *logging.Logger) error {
	kind, ok := mediastore.ParseKind(candidate.Kind)
	if !ok {
		logger.Warnf("skipping candidate with unknown kind", map[string]any{
			"id":   candidate.ID,
			"kind": candidate.Kind,
		})
		return fmt.Errorf("unknown kind %q", candidate.Kind)
	}

	if err := reg.MarkDeletionQueued(ctx, candidate.ID); err != nil {
		// Raced with another operator or already resolved; not a purge failure.
		if errors.Is(err, registry.ErrTerminal) || errors.Is(err, registry.ErrNotFound) {
			return nil
		}
		return err
	}

	if err := queue.SubmitAndWait(ctx, []string{candidate.ID}, kind); err != nil {
		logger.Errorf("purge deletion failed", map[string]any{
			"id":    candidate.ID,
			"error": err.Error(),
		})
		if markErr := reg.MarkError(ctx, candidate.ID); markErr != nil {
			logger.Errorf("failed to mark candidate error", map[string]any{
				"id":    candidate.ID,
				"error": markErr.Error(),
			})
		}
		return err
	}

	return reg.Resolve(ctx, candidate.ID)
}

func statusCounts(counts map[registry.Status]int64) map[string]int64 {
	out := make(map[string]int64, len(counts))
	for status, n := range counts {
		out[string(status)] = n
	}
	return out
}
