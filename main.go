package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"github.com/angas/pv-revenue-go/config"
	"github.com/angas/pv-revenue-go/database"
	"github.com/angas/pv-revenue-go/dataset"
	"github.com/angas/pv-revenue-go/logging"
	"github.com/angas/pv-revenue-go/refdata"
	"github.com/angas/pv-revenue-go/report"
	"github.com/angas/pv-revenue-go/www"
)

var Version = "?.?.?"

func main() {
	defer func() {
		if err := recover(); err != nil {
			exitWithError(slog.Default(), fmt.Errorf("application panicked: %v", err))
		} else {
			slog.Default().Info("application is shutting down...")
		}
	}()

	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cnfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consoleHandler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      cnfg.Logging.GetConsoleLevel(),
		TimeFormat: time.RFC3339,
	})
	slog.New(consoleHandler).Debug("pv-revenue is starting...", slog.String("version", Version))

	db, err := database.New(ctx, cnfg.Database.GetPath())
	if err != nil {
		panic(fmt.Sprintf("failed to open database: %v", err))
	}
	defer db.Close()

	logger := slog.New(logging.NewMultiHandler(
		consoleHandler,
		logging.NewSQLiteHandler(db, cnfg.Logging.GetDbLevel(), cnfg.Logging.GetDbAttrsFormat())))
	slog.SetDefault(logger)

	// Now we can use the logger to log database operations into the database itself
	db.SetLogger(logger.With("module", "database"))

	if err := db.PurgeLog(ctx, cnfg.Logging.GetDbMaxEntries()); err != nil {
		logger.Warn("log purge failed", slog.Any("error", err))
	}

	years := append(cnfg.Data.GetYears(), cnfg.Data.GetForecastYear())
	ref := refdata.Load(logger.With("module", "refdata"), cnfg.Data.Dir, years, cnfg.Data.GetReferenceValue())
	if len(ref.Years()) == 0 {
		panic(fmt.Sprintf("no spot price files could be loaded from %s", cnfg.Data.Dir))
	}

	projects := dataset.NewStore(dataset.LoadExamples(logger.With("module", "dataset"), cnfg.Data.Dir))
	if projects.Len() == 0 {
		logger.Warn("no example datasets found, starting with an empty project list")
	}

	builder := report.NewBuilder(logger.With("module", "report"), ref, cnfg.Data.GetForecastYear())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-ctx.Done():
			logger.Info("main context done")
		case sig := <-sigCh:
			logger.Info("received signal", slog.Any("signal", sig))
			cancel()
		}
	}()

	server := www.StartServer(db, projects, builder, cnfg.Server)
	server.Run(ctx)
}

func exitWithError(logger *slog.Logger, err error) {
	if err != nil {
		logger.Error("application shutting down with error", slog.Any("error", err))
	}

	time.Sleep(2 * time.Second)
	os.Exit(1)
}
