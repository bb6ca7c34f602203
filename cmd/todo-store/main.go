package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/reuben-baek/todo-store/cli"
	"github.com/reuben-baek/todo-store/config"
	"github.com/reuben-baek/todo-store/domain"
	"github.com/reuben-baek/todo-store/infra"
	"github.com/reuben-baek/todo-store/logging"
	"github.com/sirupsen/logrus"
)

func main() {
	envFile := flag.String("env-file", ".env", "optional dotenv file read before the environment")
	printMetrics := flag.Bool("metrics", false, "print store metrics to stderr on exit")
	flag.Parse()

	os.Exit(run(*envFile, *printMetrics, flag.Args()))
}

func run(envFile string, printMetrics bool, args []string) int {
	cfg, err := config.Load(envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}
	if err := logging.Setup(os.Stderr, cfg.LogLevel, cfg.LogFormat); err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	backend, err := infra.Open(ctx, cfg)
	if err != nil {
		logrus.Errorf("open store: %v", err)
		return 1
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logrus.Warnf("close store: %v", err)
		}
	}()

	registry := prometheus.NewRegistry()
	store, err := domain.NewInstrumentedStore(backend.Store, registry)
	if err != nil {
		logrus.Errorf("metrics: %v", err)
		return 1
	}

	runner := &cli.Runner{Store: store, Out: os.Stdout, ErrOut: os.Stderr}
	code := runner.Run(ctx, args)

	if printMetrics {
		families, err := registry.Gather()
		if err != nil {
			logrus.Warnf("gather metrics: %v", err)
			return code
		}
		for _, family := range families {
			if _, err := expfmt.MetricFamilyToText(os.Stderr, family); err != nil {
				logrus.Warnf("write metrics: %v", err)
			}
		}
	}
	return code
}
