package scheduler

import (
	"time"

	"github.com/MPA-Digital-Solutions/TechMedis/internal/storage"
	"github.com/MPA-Digital-Solutions/TechMedis/pkg/logger"
	"github.com/robfig/cron/v3"
)

// tempFileMaxAge is how old a staging file must be before the sweeper
// considers it abandoned by an interrupted reorder.
const tempFileMaxAge = time.Hour

// TempSweepScheduler periodically removes stray temp files left in the
// uploads directory by interrupted carousel reorders.
type TempSweepScheduler struct {
	cron  *cron.Cron
	store *storage.CarouselStore
}

func NewTempSweepScheduler(store *storage.CarouselStore) *TempSweepScheduler {
	return &TempSweepScheduler{
		cron:  cron.New(),
		store: store,
	}
}

// Start schedules the sweep at the top of every hour.
func (s *TempSweepScheduler) Start() error {
	_, err := s.cron.AddFunc("0 * * * *", func() {
		removed, err := s.store.SweepTemp(tempFileMaxAge)
		if err != nil {
			logger.Error("Failed to sweep temp image files", err)
			return
		}

		if removed > 0 {
			logger.Info("Swept stray temp image files", map[string]interface{}{
				"removed": removed,
			})
		}
	})

	if err != nil {
		logger.Error("Failed to add cron job for temp file sweep", err)
		return err
	}

	s.cron.Start()
	logger.Info("Temp file sweeper started (hourly)", nil)

	return nil
}

func (s *TempSweepScheduler) Stop() {
	logger.Info("Stopping temp file sweeper...", nil)
	s.cron.Stop()
	logger.Info("Temp file sweeper stopped", nil)
}
