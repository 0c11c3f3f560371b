package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/min-coins/internal/application"
	"github.com/eugenenazirov/min-coins/internal/coins"
	"github.com/eugenenazirov/min-coins/internal/config"
	"github.com/eugenenazirov/min-coins/internal/logging"
	"github.com/eugenenazirov/min-coins/internal/report"
)

var signalNotify = signal.Notify

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "coins: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	kingpinApp := kingpin.New("coins", "Minimum coin count - compares greedy, brute-force, memoized and bottom-up strategies")
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()

	var amountSet, timeoutSet bool
	amount := kingpinApp.Flag("amount", "Amount to form (replaces configured cases)").IsSetByUser(&amountSet).Int()
	denominations := kingpinApp.Flag("denominations", "Comma-separated denominations (replaces configured cases)").String()
	strategies := kingpinApp.Flag("strategy", "Strategy to compare, repeatable").Enums(coins.Names()...)
	timeout := kingpinApp.Flag("timeout", "Per-strategy time limit (0 disables)").IsSetByUser(&timeoutSet).Duration()
	format := kingpinApp.Flag("format", "Report format").Enum(report.Formats()...)
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").String()

	kingpinApp.Command("compare", "Run every configured case through the selected strategies").Default()
	solveCmd := kingpinApp.Command("solve", "Run one strategy on the first configured case")
	solveStrategy := solveCmd.Arg("strategy", "Strategy to run").Required().Enum(coins.Names()...)

	command, err := kingpinApp.Parse(args)
	if err != nil {
		return err
	}

	overrides := &config.CLIOverrides{
		ConfigFile:       *configFile,
		DenominationsStr: denominations,
		Strategies:       *strategies,
		Format:           format,
		LogLevel:         logLevel,
	}
	if amountSet {
		overrides.Amount = amount
	}
	if timeoutSet {
		overrides.SolverTimeout = timeout
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Encoding: cfg.LogEncoding})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger, stdout)
	if err != nil {
		return err
	}

	ctx, cancel := withShutdown(context.Background(), logger)
	defer cancel()

	start := time.Now()
	switch command {
	case solveCmd.FullCommand():
		err = app.Solve(ctx, *solveStrategy)
	default:
		err = app.Compare(ctx)
	}
	logger.Debug("finished", zap.String("command", command), zap.Duration("elapsed", time.Since(start)))
	return err
}

// withShutdown returns a context cancelled on SIGINT or SIGTERM.
func withShutdown(parent context.Context, logger *zap.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-quit:
			logger.Info("interrupted, stopping", zap.Stringer("signal", sig))
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
