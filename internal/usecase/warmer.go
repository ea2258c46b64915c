package usecase

import (
	"context"
	"fmt"
	"time"

	applogger "StockSense/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Warmer recomputes watchlist predictions on a cron schedule so the prediction
// cache is filled before traffic arrives.
type Warmer struct {
	cron      *cron.Cron
	predictor *Predictor
	symbols   []string
	timeout   time.Duration
	logger    *applogger.Logger
}

func NewWarmer(predictor *Predictor, symbols []string, logger *applogger.Logger) *Warmer {
	if logger == nil {
		logger = applogger.Nop()
	}
	return &Warmer{
		cron:      cron.New(),
		predictor: predictor,
		symbols:   symbols,
		timeout:   5 * time.Minute,
		logger:    logger,
	}
}

// Schedule registers the warm-up on a standard five-field cron spec.
func (w *Warmer) Schedule(spec string) error {
	if _, err := w.cron.AddFunc(spec, func() { w.RunOnce(context.Background()) }); err != nil {
		return fmt.Errorf("register warm-up %q: %w", spec, err)
	}
	return nil
}

// RunOnce predicts every watchlist symbol and returns how many succeeded.
func (w *Warmer) RunOnce(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	start := time.Now()
	warmed := len(w.predictor.PredictMany(ctx, w.symbols))
	w.logger.Info("prediction warm-up done",
		applogger.Int("warmed", warmed),
		applogger.Int("symbols", len(w.symbols)),
		applogger.Duration("took", time.Since(start)),
	)
	return warmed
}

func (w *Warmer) Start() {
	w.cron.Start()
	w.logger.Info("warm-up scheduler started", applogger.Int("jobs", len(w.cron.Entries())))
}

// Stop halts the scheduler and waits for a running warm-up to finish.
func (w *Warmer) Stop() {
	<-w.cron.Stop().Done()
}
