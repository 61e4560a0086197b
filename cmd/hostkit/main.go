// Package main is the hostkit companion CLI: diagnostics and scripted
// setup for the Lodestar desktop application's OS integration. It
// controls login-launch registration, enumerates USB serial ports, and
// reports host telemetry snapshots.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lodestar-app/hostkit/internal/autolaunch"
	"github.com/lodestar-app/hostkit/internal/config"
	"github.com/lodestar-app/hostkit/internal/installid"
	"github.com/lodestar-app/hostkit/internal/serialport"
	"github.com/lodestar-app/hostkit/internal/sysinfo"
)

// appName is the identity Lodestar uses for its data directory. The
// login-launch registration derives its own name from the executable.
const appName = "Lodestar"

var (
	// version is set at build time via -ldflags.
	version = "dev"

	configPath  = flag.String("config", "", "Path to configuration file (default: the data-directory config)")
	showVersion = flag.Bool("version", false, "Show version and exit")
	login       = flag.String("login", "", "Login-launch control: on, off, status, or sync")
	listPorts   = flag.Bool("ports", false, "List USB serial ports as JSON and exit")
	showInfo    = flag.Bool("info", false, "Print a host telemetry snapshot as JSON and exit")
	watch       = flag.Bool("watch", false, "Stream telemetry snapshots until interrupted")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("hostkit %s\n", version)
		os.Exit(0)
	}

	path := *configPath
	if path == "" {
		if discovered, err := config.DefaultPath(appName); err == nil {
			path = discovered
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if id, err := installid.Load(appName); err != nil {
		logger.Warn("Install identifier unavailable", zap.Error(err))
	} else {
		logger.Debug("Install identifier", zap.String("id", id))
	}

	acted := false

	if *login != "" {
		acted = true
		if err := runLogin(*login, cfg, logger); err != nil {
			logger.Fatal("Login-launch operation failed", zap.Error(err))
		}
	}

	if *listPorts {
		acted = true
		if err := runPorts(); err != nil {
			logger.Fatal("Port enumeration failed", zap.Error(err))
		}
	}

	if *showInfo {
		acted = true
		if err := runInfo(logger); err != nil {
			logger.Fatal("Telemetry snapshot failed", zap.Error(err))
		}
	}

	if *watch {
		acted = true
		runWatch(cfg, logger)
	}

	if !acted {
		flag.Usage()
		os.Exit(2)
	}
}

// runLogin dispatches one login-launch action against the process-wide
// registry.
func runLogin(action string, cfg *config.Config, logger *zap.Logger) error {
	reg := autolaunch.Global()

	switch action {
	case "on":
		if err := reg.Enable(); err != nil {
			return err
		}
		logger.Info("Login launch enabled")
		return nil
	case "off":
		if err := reg.Disable(); err != nil {
			return err
		}
		logger.Info("Login launch disabled")
		return nil
	case "status":
		enabled, err := reg.IsEnabled()
		if err != nil {
			return err
		}
		if enabled {
			fmt.Println("enabled")
		} else {
			fmt.Println("disabled")
		}
		return nil
	case "sync":
		// Apply the configured state. Enabling surfaces errors;
		// disabling is the safe-startup path and swallows them.
		if cfg.Launch.AtLogin {
			if err := reg.Enable(); err != nil {
				return err
			}
			logger.Info("Login launch synced", zap.Bool("at_login", true))
			return nil
		}
		if err := reg.Disable(); err != nil {
			return err
		}
		logger.Info("Login launch synced", zap.Bool("at_login", false))
		return nil
	default:
		return errors.Newf("unknown login action %q (want on, off, status, or sync)", action)
	}
}

// runPorts prints the USB serial port list as JSON.
func runPorts() error {
	ports, err := serialport.List()
	if err != nil {
		return err
	}
	return printJSON(ports)
}

// runInfo prints one telemetry snapshot as JSON.
func runInfo(logger *zap.Logger) error {
	snap := sysinfo.New(logger).Collect(context.Background())
	return printJSON(snap)
}

// runWatch streams snapshots at the configured refresh interval until
// SIGINT/SIGTERM.
func runWatch(cfg *config.Config, logger *zap.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	watcher := sysinfo.NewWatcher(sysinfo.New(logger), cfg.Monitor.RefreshInterval.Duration, logger)
	watcher.OnSnapshot(func(snap sysinfo.Snapshot) {
		if err := printJSON(snap); err != nil {
			logger.Error("Failed to print snapshot", zap.Error(err))
		}
	})

	logger.Info("Watching telemetry",
		zap.Duration("refresh_interval", cfg.Monitor.RefreshInterval.Duration))
	watcher.Start(ctx)
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding JSON")
	}
	fmt.Println(string(data))
	return nil
}

// initLogger creates a zap logger based on the configuration.
// It outputs to the console and optionally a JSON log file.
func initLogger(cfg *config.Config) *zap.Logger {
	var level zapcore.Level
	switch cfg.Logging.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// Console output (human-readable), kept on stderr so JSON command
	// output stays parseable.
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stderr),
		level,
	)

	cores := []zapcore.Core{consoleCore}

	// File output (structured JSON, if configured)
	if cfg.Logging.File != "" {
		file, err := os.OpenFile(cfg.Logging.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
		if err == nil {
			fileCore := zapcore.NewCore(
				zapcore.NewJSONEncoder(encoderConfig),
				zapcore.AddSync(file),
				level,
			)
			cores = append(cores, fileCore)
		}
	}

	return zap.New(zapcore.NewTee(cores...))
}
