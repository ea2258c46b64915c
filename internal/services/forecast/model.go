package forecast

import (
	"fmt"

	"StockSense/internal/domain/models"
	domsvc "StockSense/internal/domain/service"
)

// Option configures a Model.
type Option func(*Config)

// Config holds training parameters.
type Config struct {
	Trees        int
	MaxDepth     int
	Seed         int64
	MaxTrainRows int
	MinRows      int
}

// WithTrees sets the ensemble size.
func WithTrees(n int) Option { return func(c *Config) { c.Trees = n } }

// WithMaxDepth caps tree depth.
func WithMaxDepth(d int) Option { return func(c *Config) { c.MaxDepth = d } }

// WithSeed fixes the bootstrap PRNG seed.
func WithSeed(s int64) Option { return func(c *Config) { c.Seed = s } }

// WithMaxTrainRows limits training to the most recent n rows.
func WithMaxTrainRows(n int) Option { return func(c *Config) { c.MaxTrainRows = n } }

// WithMinRows sets the fewest rows accepted for training.
func WithMinRows(n int) Option { return func(c *Config) { c.MinRows = n } }

// Model trains a fresh forest for every call; it keeps no state between calls.
type Model struct {
	cfg Config
}

// NewModel creates a model with 50 trees of depth 12, seed 42, trained on the
// last 400 of at least 50 rows unless overridden.
func NewModel(opts ...Option) *Model {
	cfg := Config{
		Trees:        50,
		MaxDepth:     12,
		Seed:         42,
		MaxTrainRows: 400,
		MinRows:      50,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Model{cfg: cfg}
}

// Config returns the training parameters.
func (m *Model) Config() Config { return m.cfg }

// TrainAndPredict fits predictors to close on the most recent rows, both min-max
// scaled on that slice, and predicts the close for the last row in price units.
func (m *Model) TrainAndPredict(rows []models.FeatureRow) (models.BaseForecast, error) {
	if len(rows) < m.cfg.MinRows {
		return models.BaseForecast{}, fmt.Errorf("train on %d rows (need %d): %w",
			len(rows), m.cfg.MinRows, domsvc.ErrInsufficientHistory)
	}

	train := rows
	if m.cfg.MaxTrainRows > 0 && len(train) > m.cfg.MaxTrainRows {
		train = train[len(train)-m.cfg.MaxTrainRows:]
	}

	x := make([][]float64, len(train))
	y := make([][]float64, len(train))
	for i, r := range train {
		x[i] = r.Predictors()
		y[i] = []float64{r.Close}
	}

	xs := FitMinMax(x)
	ys := FitMinMax(y)
	xScaled := xs.TransformAll(x)
	yScaled := make([]float64, len(y))
	for i, v := range ys.TransformAll(y) {
		yScaled[i] = v[0]
	}

	forest, err := TrainForest(xScaled, yScaled, m.cfg.Trees, m.cfg.MaxDepth, m.cfg.Seed)
	if err != nil {
		return models.BaseForecast{}, fmt.Errorf("train forest: %w", err)
	}

	last := rows[len(rows)-1]
	pred := forest.Predict(xs.Transform(last.Predictors()))

	return models.BaseForecast{
		Prediction:     ys.Inverse(0, pred),
		LastClose:      last.Close,
		LastVolatility: last.Volatility,
	}, nil
}

var _ domsvc.Forecaster = (*Model)(nil)
