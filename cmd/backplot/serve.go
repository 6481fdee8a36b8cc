package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quantlab/backplot/internal/logger"
	"github.com/quantlab/backplot/internal/metrics"
	"github.com/quantlab/backplot/internal/plotter"
	"github.com/quantlab/backplot/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve [result.json]",
	Short: "Serve a strategy result as a live dashboard",
	Long:  "Render the result once and serve the dashboard over HTTP, with health and metrics endpoints.",
	Args:  cobra.ExactArgs(1),
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	result, err := loadResult(args[0])
	if err != nil {
		return err
	}

	sch, err := cfg.BaseScheme()
	if err != nil {
		return err
	}
	p, err := plotter.New(sch, log, plotter.WithTitle(cfg.Output.Title))
	if err != nil {
		return err
	}

	reg := metrics.NewRegistry()

	started := time.Now()
	if err := p.Plot(result, plotter.Request{}); err != nil {
		reg.RecordRender("error", time.Since(started).Seconds())
		return err
	}
	doc, err := p.Render()
	if err != nil {
		reg.RecordRender("error", time.Since(started).Seconds())
		return err
	}
	reg.RecordRender("ok", time.Since(started).Seconds())
	reg.SetPanels(len(p.Figures()))

	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}

	srv := server.NewServer(server.Config{
		Host:        cfg.Server.Host,
		Port:        cfg.Server.Port,
		MetricsPath: metricsPath,
	}, doc, reg, log)

	go func() {
		if err := srv.Start(); err != nil {
			log.Error("server error", zap.Error(err))
		}
	}()

	log.Info("dashboard served",
		zap.String("strategy", result.Strategy),
		zap.String("addr", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)),
	)

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return srv.Shutdown(ctx)
}
