package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/PeterLuschny/FigurativePartitions/internal/config"
	"github.com/PeterLuschny/FigurativePartitions/internal/logging"
	"github.com/PeterLuschny/FigurativePartitions/internal/tui"
)

type options struct {
	overrides *config.CLIOverrides
	logFile   string
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	kingpin.FatalIfError(err, "parse flags")

	cfg, err := config.Load(opts.overrides)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel, opts.logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	model := tui.New(cfg.DefaultTarget, tui.WithLogger(logger))
	if _, err := tea.NewProgram(model).Run(); err != nil {
		logger.Error("terminal game failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, error) {
	kingpinApp := kingpin.New("figurate-play", "Figurative Partitions - make figurate numbers add up to the target")
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	target := kingpinApp.Flag("target", "Target sum of the first round").Short('t').String()
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").String()
	logFile := kingpinApp.Flag("log-file", "Write logs to this file; logging is off otherwise").String()

	if _, err := kingpinApp.Parse(args); err != nil {
		return options{}, err
	}

	overrides := &config.CLIOverrides{ConfigFile: *configFile}
	if *target != "" {
		overrides.DefaultTarget = target
	}
	if *logLevel != "" {
		overrides.LogLevel = logLevel
	}
	return options{overrides: overrides, logFile: *logFile}, nil
}

// newLogger keeps the terminal clean: without a log file nothing is logged.
func newLogger(level, path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	return logging.NewFile(level, path)
}
