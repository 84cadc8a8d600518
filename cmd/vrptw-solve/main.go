// Command vrptw-solve is the CLI entry point for the branch-and-price
// VRPTW solver: load an instance, wire logging, tracing, metrics, the
// added-path cache, and the optional run store, solve, then print or
// persist the result.
//
// Usage:
//
//	vrptw-solve -instance instance.json [-report out.xlsx] [-pdf out.pdf]
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/mmghannam/scip-routing/internal/cache"
	"github.com/mmghannam/scip-routing/internal/labeling"
	"github.com/mmghannam/scip-routing/internal/metrics"
	"github.com/mmghannam/scip-routing/internal/orchestrator"
	"github.com/mmghannam/scip-routing/internal/report"
	"github.com/mmghannam/scip-routing/internal/store"
	"github.com/mmghannam/scip-routing/internal/tracing"
	"github.com/mmghannam/scip-routing/internal/vrp"
	"github.com/mmghannam/scip-routing/pkg/config"
	"github.com/mmghannam/scip-routing/pkg/logger"
)

func main() {
	instancePath := flag.String("instance", "", "path to a JSON-encoded VRPTW instance (required)")
	excelPath := flag.String("report", "", "optional path to write an .xlsx report to")
	pdfPath := flag.String("pdf", "", "optional path to write a .pdf report to")
	flag.Parse()

	if *instancePath == "" {
		logger.Init("info")
		logger.Log.Error("missing required -instance flag")
		os.Exit(2)
	}

	cfg, err := config.LoadWithAppName("vrptw-solve")
	if err != nil {
		logger.Init("info")
		logger.Log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.InitWithConfig(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.FilePath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})

	ctx := context.Background()

	if cfg.Tracing.Enabled {
		tp, err := tracing.Init(ctx, tracing.Config{
			Enabled:     cfg.Tracing.Enabled,
			Endpoint:    cfg.Tracing.Endpoint,
			ServiceName: cfg.App.Name,
			Version:     cfg.App.Version,
			SampleRate:  cfg.Tracing.SampleRate,
		})
		if err != nil {
			logger.Log.Warn("failed to init tracing, continuing without it", "error", err)
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := tp.Shutdown(shutdownCtx); err != nil {
					logger.Log.Warn("failed to shut down tracing", "error", err)
				}
			}()
		}
	}

	metrics.Init(cfg.Metrics.Namespace, cfg.Metrics.Subsystem)
	if cfg.Metrics.Enabled {
		go func() {
			if err := metrics.StartServer(cfg.Metrics.Port); err != nil {
				logger.Log.Warn("metrics server stopped", "error", err)
			}
		}()
	}

	var registry labeling.Registry
	if cfg.Cache.Enabled && cfg.Cache.Driver == "redis" {
		redisRegistry, err := cache.NewRedisRegistry(ctx, &cfg.Cache)
		if err != nil {
			logger.Log.Warn("failed to connect to redis, falling back to in-memory registry", "error", err)
		} else {
			defer redisRegistry.Close()
			registry = redisRegistry
		}
	}
	if registry == nil {
		registry = cache.NewMemoryRegistry()
	}

	var runRepo *store.RunRepository
	if cfg.Database.AutoMigrate || cfg.Database.Host != "" {
		db, err := store.NewPostgresDB(ctx, &cfg.Database)
		if err != nil {
			logger.Log.Warn("failed to connect to database, continuing without a run store", "error", err)
		} else {
			defer db.Close()
			if err := store.RunMigrations(ctx, db.Pool(), &cfg.Database); err != nil {
				logger.Log.Warn("failed to run migrations", "error", err)
			}
			runRepo = store.NewRunRepository(db)
		}
	}

	f, err := os.Open(*instancePath)
	if err != nil {
		logger.Log.Error("failed to open instance file", "error", err)
		os.Exit(1)
	}
	instance, err := vrp.LoadInstance(f)
	f.Close()
	if err != nil {
		logger.Log.Error("failed to load instance", "error", err)
		os.Exit(1)
	}

	timeLimit := cfg.Solve.TimeLimit
	if timeLimit == 0 {
		timeLimit = 5 * time.Minute
	}

	sol, err := orchestrator.Solve(ctx, instance, orchestrator.Options{
		TimeLimit: timeLimit,
		NodeLimit: cfg.Solve.NodeLimit,
		Registry:  registry,
	})
	if err != nil {
		logger.Log.Error("solve failed", "error", err)
		os.Exit(1)
	}

	logger.Log.Info("solve complete",
		"status", sol.Status, "objective", sol.ObjVal,
		"routes", len(sol.Routes), "nodes", sol.NodesExplored, "duration", sol.Duration)

	if runRepo != nil {
		if _, err := runRepo.SaveRun(ctx, instance.Name, sol); err != nil {
			logger.Log.Warn("failed to persist solve run", "error", err)
		}
	}

	if *excelPath != "" {
		data, err := report.Excel(instance.Name, sol)
		if err != nil {
			logger.Log.Warn("failed to render excel report", "error", err)
		} else if err := os.WriteFile(*excelPath, data, 0644); err != nil {
			logger.Log.Warn("failed to write excel report", "error", err)
		}
	}

	if *pdfPath != "" {
		data, err := report.PDF(instance.Name, sol)
		if err != nil {
			logger.Log.Warn("failed to render pdf report", "error", err)
		} else if err := os.WriteFile(*pdfPath, data, 0644); err != nil {
			logger.Log.Warn("failed to write pdf report", "error", err)
		}
	}
}
