package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/2beens/gymlogger/internal"
	"github.com/2beens/gymlogger/internal/config"
	"github.com/2beens/gymlogger/internal/logging"
	"github.com/2beens/gymlogger/pkg"

	log "github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	closeLogs := logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        os.Getenv("SENTRY_DSN"),
		SentryServerName: "gymlogger",
	})
	defer func() {
		if err := closeLogs(); err != nil {
			fmt.Printf("close logs: %s\n", err)
		}
	}()

	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using server logs path: [%s]", cfg.LogsPath)
	log.Debugf("calendar timezone: [%s], auto progression: %t", cfg.Timezone, cfg.AutoProgressionEnabled())

	versionInfo, err := tryGetLastCommitHash()
	if err != nil {
		log.Tracef("failed to get last commit hash / version info: %s", err)
		versionInfo = "unknown"
	} else {
		log.Tracef("running version: %s", versionInfo)
	}

	apiTokenHash := os.Getenv("GYMLOG_API_TOKEN_HASH")
	if apiTokenHash == "" {
		log.Errorf("API token hash not set, use GYMLOG_API_TOKEN_HASH (cmd/seed_demo -hash-token prints one)")
	}

	honeycombEnabled := os.Getenv("HONEYCOMB_ENABLED") == "true"
	if honeycombEnabled {
		if honeycombApiKey := os.Getenv("HONEYCOMB_API_KEY"); honeycombApiKey == "" {
			log.Warnln("HONEYCOMB_API_KEY env var not set")
		}
	} else {
		log.Debugln("honeycomb tracing disabled")
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	server, err := internal.NewServer(
		context.Background(),
		internal.NewServerParams{
			Config:                  cfg,
			PostgresUser:            os.Getenv("GYMLOG_DB_USER"),
			PostgresPassword:        os.Getenv("GYMLOG_DB_PASSWORD"),
			APITokenHash:            apiTokenHash,
			VersionInfo:             versionInfo,
			HoneycombTracingEnabled: honeycombEnabled,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, shutting down ...", receivedSig)

	if err := server.GracefulShutdown(); err != nil {
		log.Errorf("graceful shutdown: %s", err)
	}
}

// tryGetLastCommitHash will try to get the last commit hash
// assumes that the built main executable is in project root
func tryGetLastCommitHash() (string, error) {
	cmd := exec.Command("/usr/bin/git", "rev-parse", "HEAD")
	stdout, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(pkg.BytesToString(stdout)), nil
}
