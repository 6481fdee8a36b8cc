package main

import (
	"math"
	"math/rand"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quantlab/backplot/internal/core"
	"github.com/quantlab/backplot/internal/indicator"
	"github.com/quantlab/backplot/internal/logger"
	"github.com/quantlab/backplot/internal/plotter"
)

var (
	demoBars int
	demoSeed int64
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Render a demo dashboard from a synthetic random walk",
	RunE:  runDemo,
}

func init() {
	demoCmd.Flags().IntVar(&demoBars, "bars", 250, "number of bars to generate")
	demoCmd.Flags().Int64Var(&demoSeed, "seed", 42, "random walk seed")

	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	result := demoResult(demoBars, demoSeed)

	p, err := buildPlotter(cfg, log)
	if err != nil {
		return err
	}

	if err := p.Plot(result, plotter.Request{Interactive: true}); err != nil {
		return err
	}
	if err := p.Show(); err != nil {
		return err
	}

	log.Info("demo dashboard rendered", zap.Int("bars", demoBars))
	return nil
}

// demoResult generates a random-walk OHLCV feed with SMA, EMA and RSI
// lines and a couple of analyzer tables.
func demoResult(bars int, seed int64) *core.StrategyResult {
	rng := rand.New(rand.NewSource(seed))

	times := make([]time.Time, bars)
	open := make([]float64, bars)
	high := make([]float64, bars)
	low := make([]float64, bars)
	closes := make([]float64, bars)
	volume := make([]float64, bars)

	price := 100.0
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < bars; i++ {
		times[i] = day
		day = day.AddDate(0, 0, 1)

		open[i] = price
		price += rng.NormFloat64()
		closes[i] = price
		high[i] = math.Max(open[i], closes[i]) + rng.Float64()
		low[i] = math.Min(open[i], closes[i]) - rng.Float64()
		volume[i] = 1000 + rng.Float64()*500
	}

	cash := make([]float64, bars)
	equity := 10000.0
	for i := range cash {
		if i > 0 {
			equity += (closes[i] - closes[i-1]) * 10
		}
		cash[i] = equity
	}

	return &core.StrategyResult{
		Strategy: "demo",
		Feeds: []*core.Feed{{
			ID:     "demo-feed",
			Name:   "DEMO",
			Times:  times,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closes,
			Volume: volume,
			Plot:   core.PlotInfo{Plot: true},
		}},
		Indicators: []*core.Indicator{
			{
				ID:     "sma20",
				Name:   "SMA(20)",
				FeedID: "demo-feed",
				Lines:  []core.Series{{Name: "sma", Values: indicator.SMA(closes, 20)}},
				Plot:   &core.PlotInfo{Plot: true},
			},
			{
				ID:     "ema50",
				Name:   "EMA(50)",
				FeedID: "demo-feed",
				Lines:  []core.Series{{Name: "ema", Values: indicator.EMA(closes, 50)}},
				Plot:   &core.PlotInfo{Plot: true},
			},
			{
				ID:     "rsi14",
				Name:   "RSI(14)",
				FeedID: "demo-feed",
				Lines:  []core.Series{{Name: "rsi", Values: indicator.RSI(closes, 14)}},
				Plot:   &core.PlotInfo{Plot: true, Subplot: true},
			},
		},
		Observers: []*core.Observer{{
			ID:     "value",
			Name:   "Value",
			FeedID: "demo-feed",
			Lines:  []core.Series{{Name: "value", Values: cash}},
			Plot:   &core.PlotInfo{Plot: true, Subplot: true},
		}},
		Analyzers: []core.AnalyzerResult{
			{
				Name: "Returns",
				Rows: []core.AnalyzerRow{
					{Key: "total", Value: "12.4%"},
					{Key: "annualized", Value: "11.9%"},
				},
			},
			{
				Name: "DrawDown",
				Rows: []core.AnalyzerRow{
					{Key: "current", Value: "1.1%"},
					{Key: "longest", Value: "31 bars"},
				},
				Sections: []core.AnalyzerSection{{
					Title: "max",
					Rows: []core.AnalyzerRow{
						{Key: "drawdown", Value: "7.2%"},
						{Key: "moneydown", Value: "812.50"},
						{Key: "length", Value: "18 bars"},
					},
				}},
			},
		},
	}
}
