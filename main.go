package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dfaith/pkg/config"
	"dfaith/pkg/content"
	"dfaith/pkg/logging"
	"dfaith/pkg/metrics"
	"dfaith/pkg/remote"
	"dfaith/pkg/rpc"
	"dfaith/pkg/server"
	"dfaith/pkg/tui"

	"go.uber.org/zap"
)

// Version should be set during build
var Version = "dev"

func main() {
	testFlag := flag.Bool("t", false, "Test configuration and exit")
	testLongFlag := flag.Bool("test", false, "Test configuration and exit")
	jsonFlag := flag.Bool("json", false, "Output test results as JSON")
	configFlag := flag.String("config", "", "Path to configuration file")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	serverFlag := flag.Bool("server", false, "Run in headless server mode")
	portFlag := flag.Int("port", 8080, "Port for API server")
	langFlag := flag.String("lang", "", "Language: de, en or pl")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("dfaith version %s\n", Version)
		os.Exit(0)
	}

	cfgInput := *configFlag
	if cfgInput == "" && len(flag.Args()) > 0 {
		cfgInput = flag.Args()[0]
	}
	path, err := config.GetConfigPath(cfgInput)
	if err != nil {
		fmt.Printf("Error determining config path: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadConfigFromFile(path)
	if err != nil {
		fmt.Printf("Error loading config from %s: %v\n", path, err)
		os.Exit(1)
	}
	if *langFlag != "" {
		cfg.Language = string(content.ParseLanguage(*langFlag))
	}

	if *testFlag || *testLongFlag {
		report := runProbe(context.Background(), cfg, path, os.Stdout, *jsonFlag)
		if !report.ValidStructure {
			os.Exit(1)
		}
		os.Exit(0)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid configuration in %s:\n%v\n", path, err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so it logs to a file.
	logPath := ""
	if !*serverFlag {
		logPath, err = config.GetLogPath(cfg)
		if err != nil {
			fmt.Printf("Error determining log path: %v\n", err)
			os.Exit(1)
		}
	}
	logger, err := logging.New(cfg.LogLevel, logPath)
	if err != nil {
		fmt.Printf("Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store := newStore(cfg, logger)
	stop := store.Start(ctx, cfg.RefreshInterval())
	defer stop()

	srv := server.NewServer(store, logger.Named("server"))

	if *serverFlag {
		fmt.Printf("Running in server mode on port %d...\n", *portFlag)
		if err := srv.Start(ctx, *portFlag); err != nil {
			logger.Error("server stopped", zap.Error(err))
		}
		return
	}

	go func() {
		if err := srv.Start(ctx, *portFlag); err != nil {
			logger.Warn("server error", zap.Error(err))
		}
	}()

	if err := tui.Start(store, cfg, Version, logger.Named("tui")); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
	}
}

func newStore(cfg config.Config, logger *zap.Logger) *metrics.Store {
	client := remote.NewClient(remote.Opts{
		BaseURL:     cfg.APIBaseURL,
		FallbackURL: cfg.LeaderboardFallbackURL,
		Timeout:     cfg.RequestTimeout(),
		Logger:      logger.Named("remote"),
	})
	return metrics.NewStore(client, metrics.Opts{
		Supply: rpc.NewSupplyReader(cfg.Chain),
		Logger: logger.Named("metrics"),
	})
}
