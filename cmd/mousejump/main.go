package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/fruitjuice088/mousejump/internal/app"
	"github.com/fruitjuice088/mousejump/internal/config"
	"github.com/fruitjuice088/mousejump/internal/hotkeys"
	"github.com/fruitjuice088/mousejump/internal/permissions"
	"github.com/fruitjuice088/mousejump/internal/version"
)

func main() {
	var (
		showVersion     = flag.Bool("version", false, "Show current version")
		showConfig      = flag.Bool("show-config", false, "Show the resolved configuration and its location")
		checkPermission = flag.Bool("check-permission", false, "Report whether Accessibility permission is granted")
		checkUpdate     = flag.Bool("check-update", false, "Check whether a newer version is published")
		configPath      = flag.String("config", "", "Path to a JSON or YAML config file")
		logLevel        = flag.String("log-level", "", "Log level: debug, info, warn or error")
		logFormat       = flag.String("log-format", "", "Log format: text or json")
		debounce        = flag.Duration("debounce", 0, "How long Option must be held alone before centering (e.g. 300ms)")
		pollInterval    = flag.Duration("poll-interval", 0, "How often Accessibility permission is re-checked (e.g. 1s)")
	)
	flag.Parse()

	if *showVersion {
		handleShowVersion()
		return
	}

	if *checkUpdate {
		handleCheckUpdate()
		return
	}

	if *checkPermission {
		handleCheckPermission()
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("❌ Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	cfg, err = applyFlags(cfg, *logLevel, *logFormat, *debounce, *pollInterval)
	if err != nil {
		fmt.Printf("❌ Invalid option: %v\n", err)
		os.Exit(2)
	}

	if *showConfig {
		handleShowConfig(cfg)
		return
	}

	daemon := app.NewDaemon(app.Options{Config: cfg})
	if err := daemon.Initialize(); err != nil {
		log.Fatalf("Failed to initialize daemon: %v", err)
	}

	if err := daemon.Run(context.Background()); err != nil {
		if errors.Is(err, hotkeys.ErrTapCreate) {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}
		log.Fatalf("Daemon error: %v", err)
	}
}

func applyFlags(cfg config.Config, logLevel, logFormat string, debounce, pollInterval time.Duration) (config.Config, error) {
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}
	if debounce != 0 {
		cfg.DebounceMS = int(debounce / time.Millisecond)
	}
	if pollInterval != 0 {
		cfg.PollIntervalMS = int(pollInterval / time.Millisecond)
	}
	return cfg, cfg.Validate()
}

func handleShowVersion() {
	fmt.Printf("MouseJump %s\n", version.VERSION)
}

func handleCheckUpdate() {
	isCurrent, newVersion, err := version.CheckVersion(context.Background(), nil, version.VERSION_URL)
	if err != nil {
		fmt.Printf("⚠️  Could not check for updates: %v\n", err)
		os.Exit(1)
	}
	if isCurrent {
		fmt.Printf("✅ MouseJump %s is up to date\n", version.VERSION)
		return
	}
	fmt.Printf(`The newest version of MouseJump is %v but the installed version on your system is %v.

%v

To get the latest features and likely bugfixes, please install the latest version by running 'go install github.com/fruitjuice088/mousejump/cmd/mousejump@main'.`+"\n", newVersion, version.VERSION, version.UPDATE_MESSAGE)
}

func handleCheckPermission() {
	result := permissions.Probe(permissions.System(os.LookupEnv))
	if result.State == permissions.StateGranted {
		fmt.Printf("✅ %s\n", result.Message)
		return
	}
	fmt.Printf("❌ %s\n", result.Message)
	fmt.Printf("💡 %s\n", result.Guidance)
	os.Exit(1)
}

func handleShowConfig(cfg config.Config) {
	fmt.Printf("📁 Config source: %s\n", cfg.Source)
	if configPath, err := config.GetConfigPath(); err == nil {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			fmt.Printf("📝 Config file %s does not exist yet\n", configPath)
		}
	}
	fmt.Println()
	fmt.Println("📋 Resolved configuration:")
	fmt.Printf("  debounce:              %v\n", cfg.Debounce())
	fmt.Printf("  poll interval:         %v\n", cfg.PollInterval())
	fmt.Printf("  desktop notifications: %v\n", cfg.DesktopNotifications)
	fmt.Printf("  beep:                  %v\n", cfg.Beep)
	fmt.Printf("  log level:             %s\n", cfg.LogLevel)
	fmt.Printf("  log format:            %s\n", cfg.LogFormat)
}
