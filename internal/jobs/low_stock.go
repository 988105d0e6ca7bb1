package jobs

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"

	"stockflow/internal/repositories"
)

// LowStockMonitor periodically scans stock rows under the configured
// threshold and logs a warning per row. It is the hook point for wiring
// richer notification channels later.
type LowStockMonitor struct {
	scheduler gocron.Scheduler
	stockRepo repositories.StockRepository
	threshold int
	interval  time.Duration
	log       zerolog.Logger
}

func NewLowStockMonitor(stockRepo repositories.StockRepository, threshold int, interval time.Duration, log zerolog.Logger) (*LowStockMonitor, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	m := &LowStockMonitor{
		scheduler: scheduler,
		stockRepo: stockRepo,
		threshold: threshold,
		interval:  interval,
		log:       log,
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(m.scan, context.Background()),
		gocron.WithName("low-stock-scan"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (m *LowStockMonitor) Start() {
	m.log.Info().Int("threshold", m.threshold).Dur("interval", m.interval).Msg("starting low-stock monitor")
	m.scheduler.Start()
}

func (m *LowStockMonitor) Stop() error {
	return m.scheduler.Shutdown()
}

func (m *LowStockMonitor) scan(ctx context.Context) {
	stocks, err := m.stockRepo.ListBelowThreshold(ctx, m.threshold)
	if err != nil {
		m.log.Error().Err(err).Msg("low-stock scan failed")
		return
	}
	for _, stock := range stocks {
		m.log.Warn().
			Str("stock_id", stock.ID.String()).
			Str("product_id", stock.ProductID.String()).
			Str("location_id", stock.LocationID.String()).
			Int("quantity", stock.Quantity).
			Int("threshold", m.threshold).
			Msg("stock below threshold")
	}
}
