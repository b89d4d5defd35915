package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/PeterLuschny/FigurativePartitions/internal/application"
	"github.com/PeterLuschny/FigurativePartitions/internal/config"
	"github.com/PeterLuschny/FigurativePartitions/internal/logging"
)

var signalNotify = signal.Notify

func main() {
	overrides, err := parseFlags(os.Args[1:])
	kingpin.FatalIfError(err, "parse flags")

	cfg, err := config.Load(overrides)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	if err := app.Start(); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
}

// parseFlags turns command-line arguments into config overrides. Flags left
// unset stay nil so lower-precedence sources apply.
func parseFlags(args []string) (*config.CLIOverrides, error) {
	kingpinApp := kingpin.New("figurate-server", "Figurative Partitions - sum figurate numbers to hit a target")
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	port := kingpinApp.Flag("port", "HTTP port exposed by the service").String()
	defaultTarget := kingpinApp.Flag("default-target", "Target sum for sessions created without one").String()
	maxSessions := kingpinApp.Flag("max-sessions", "Maximum number of live puzzle sessions").Default("0").Int()
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").String()
	var metricsSet bool
	enableMetrics := kingpinApp.Flag("metrics", "Expose Prometheus metrics on /metrics (--no-metrics disables)").IsSetByUser(&metricsSet).Bool()
	rateLimitRPSFlag := kingpinApp.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	rateLimitBurstFlag := kingpinApp.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()

	if _, err := kingpinApp.Parse(args); err != nil {
		return nil, err
	}

	overrides := &config.CLIOverrides{
		ConfigFile: *configFile,
	}

	if *port != "" {
		overrides.Port = port
	}

	if *defaultTarget != "" {
		overrides.DefaultTarget = defaultTarget
	}

	if *maxSessions > 0 {
		overrides.MaxSessions = maxSessions
	}

	if *logLevel != "" {
		overrides.LogLevel = logLevel
	}

	if metricsSet {
		overrides.EnableMetrics = enableMetrics
	}

	if *rateLimitRPSFlag >= 0 {
		overrides.RateLimitRPS = rateLimitRPSFlag
	}

	if *rateLimitBurstFlag >= 0 {
		overrides.RateLimitBurst = rateLimitBurstFlag
	}

	return overrides, nil
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
