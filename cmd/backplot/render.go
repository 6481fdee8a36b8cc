package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quantlab/backplot/internal/archive"
	"github.com/quantlab/backplot/internal/config"
	"github.com/quantlab/backplot/internal/core"
	"github.com/quantlab/backplot/internal/logger"
	"github.com/quantlab/backplot/internal/plotter"
	"github.com/quantlab/backplot/internal/timeline"
)

var (
	renderOutput  string
	renderTitle   string
	renderOpen    bool
	renderStart   string
	renderEnd     string
	renderNumFigs int
)

var renderCmd = &cobra.Command{
	Use:   "render [result.json]",
	Short: "Render a strategy result file as an HTML dashboard",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output HTML file (overrides config)")
	renderCmd.Flags().StringVar(&renderTitle, "title", "", "document title (overrides config)")
	renderCmd.Flags().BoolVar(&renderOpen, "open", false, "open the dashboard in the default browser")
	renderCmd.Flags().StringVar(&renderStart, "start", "", "range start, bar index or YYYY-MM-DD date")
	renderCmd.Flags().StringVar(&renderEnd, "end", "", "range end, bar index (negative counts from the end) or YYYY-MM-DD date")
	renderCmd.Flags().IntVar(&renderNumFigs, "numfigs", 1, "number of output figures, must stay 1")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
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

	start, err := parseBound(renderStart)
	if err != nil {
		return fmt.Errorf("invalid --start: %w", err)
	}
	end, err := parseBound(renderEnd)
	if err != nil {
		return fmt.Errorf("invalid --end: %w", err)
	}

	p, err := buildPlotter(cfg, log)
	if err != nil {
		return err
	}

	if err := p.Plot(result, plotter.Request{
		NumFigs:     renderNumFigs,
		Interactive: true,
		Start:       start,
		End:         end,
	}); err != nil {
		return err
	}

	if err := p.Show(); err != nil {
		return err
	}

	log.Info("dashboard rendered",
		zap.String("strategy", result.Strategy),
		zap.Int("panels", len(p.Figures())),
	)
	return nil
}

func loadConfig(log *zap.Logger) (*config.Config, error) {
	if cfgFile == "" {
		log.Debug("no config file specified, using defaults")
		return config.Defaults(), nil
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func loadResult(path string) (*core.StrategyResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result file: %w", err)
	}

	var result core.StrategyResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("parsing result file: %w", err)
	}
	return &result, nil
}

// buildPlotter assembles a plotter from config plus the render flags
func buildPlotter(cfg *config.Config, log *zap.Logger) (*plotter.Plotter, error) {
	sch, err := cfg.BaseScheme()
	if err != nil {
		return nil, err
	}

	filename := cfg.Output.Filename
	if renderOutput != "" {
		filename = renderOutput
	}
	title := cfg.Output.Title
	if renderTitle != "" {
		title = renderTitle
	}

	opts := []plotter.Option{
		plotter.WithFilename(filename),
		plotter.WithTitle(title),
		plotter.WithBrowserOpen(cfg.Output.Open || renderOpen),
	}

	if cfg.Archive.Enabled {
		store, err := buildArchive(cfg)
		if err != nil {
			return nil, err
		}
		opts = append(opts, plotter.WithArchive(store, cfg.Archive.Prefix))
	}

	return plotter.New(sch, log, opts...)
}

func buildArchive(cfg *config.Config) (archive.Store, error) {
	switch cfg.Archive.Type {
	case "localfs":
		return archive.NewLocalDir(cfg.Archive.Path)
	case "s3":
		return archive.NewS3(archive.S3Config{
			Bucket:    cfg.Archive.S3.Bucket,
			Endpoint:  cfg.Archive.S3.Endpoint,
			Region:    cfg.Archive.S3.Region,
			AccessKey: cfg.Archive.S3.AccessKey,
			SecretKey: cfg.Archive.S3.SecretKey,
		})
	default:
		return nil, fmt.Errorf("unknown archive type %q", cfg.Archive.Type)
	}
}

// parseBound reads a range bound flag: empty means unbounded, an integer
// is a bar index, anything else must be a YYYY-MM-DD date.
func parseBound(s string) (timeline.Bound, error) {
	if s == "" {
		return timeline.None, nil
	}
	if i, err := strconv.Atoi(s); err == nil {
		return timeline.Index(i), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return timeline.None, fmt.Errorf("expected bar index or YYYY-MM-DD date, got %q", s)
	}
	return timeline.Date(t), nil
}
