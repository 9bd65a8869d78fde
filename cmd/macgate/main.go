package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"

	"macgate/internal/adapter/logger"
	"macgate/internal/adapter/yamlconfig"
	"macgate/internal/digest"
	"macgate/internal/runner"
	"macgate/internal/server"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to gateway YAML config (required)")
		listen     = flag.String("listen", "", "Listen address override")
		logLevel   = flag.String("log-level", "info", "Log level (debug|info|warn|error)")
		help       = flag.Bool("help", false, "Print program usage")
	)
	flag.Parse()

	if *configPath == "" || *help {
		flag.Usage()
		os.Exit(2)
	}

	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}

	if err := run(*configPath, *listen, level); err != nil {
		logrus.WithError(err).Fatal("Failed to start gateway")
	}
}

func run(configPath, listenOverride string, level logrus.Level) error {
	settings, err := yamlconfig.Load(configPath)
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}
	logger.SetLoggerToStructured(level, settings.LogFile)

	apiKey, err := settings.ResolveAPIKey()
	if err != nil {
		return err
	}

	reg, err := settings.BuildRegistry()
	if err != nil {
		return fmt.Errorf("could not build action registry: %w", err)
	}

	log := logrus.WithField("component", "gateway")
	actionRunner := runner.New(log)

	var agg *digest.Aggregator
	if cfg := settings.Reports.EmailDigest; cfg != nil {
		agg = digest.New(reg, actionRunner, cfg.Sections(), logrus.WithField("component", "digest"))
	}

	srv := &server.Server{
		APIKey:   apiKey,
		Registry: reg,
		Runner:   actionRunner,
		Digest:   agg,
		Log:      log,
	}

	addr := settings.Listen
	if listenOverride != "" {
		addr = listenOverride
	}

	log.WithFields(logrus.Fields{
		"listen":  addr,
		"scripts": reg.Count(),
	}).Info("Gateway listening")
	return http.ListenAndServe(addr, srv.Routes())
}
