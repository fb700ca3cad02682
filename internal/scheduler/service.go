package scheduler

import (
	"context"
	"time"

	"github.com/qinary/brandboard/internal/cache"
	"github.com/qinary/brandboard/internal/content"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Service keeps the caches warm: a 15-minute brand refresh, and a
// once-per-minute check for local-midnight rollover that invalidates the
// day-keyed content-performance entry and recomputes it.
type Service struct {
	aggregator *content.Aggregator
	cache      *cache.Service
	limit      int
	cron       *cron.Cron
}

// NewService creates a scheduler over the aggregator and cache. limit is
// the best/worst slice size used for warmed aggregations.
func NewService(aggregator *content.Aggregator, cacheService *cache.Service, limit int) *Service {
	return &Service{
		aggregator: aggregator,
		cache:      cacheService,
		limit:      limit,
		cron:       cron.New(cron.WithSeconds()),
	}
}

// Start begins the scheduled refreshes.
func (s *Service) Start() error {
	// Brand list refresh every 15 minutes
	_, err := s.cron.AddFunc("0 */15 * * * *", func() {
		s.RefreshBrands()
	})
	if err != nil {
		return err
	}

	// Midnight rollover check every minute
	_, err = s.cron.AddFunc("0 * * * * *", func() {
		if !s.cache.RolledOver() {
			return
		}
		logrus.Info("Day rollover detected, refreshing content performance")
		s.cache.InvalidatePerformance()
		s.RefreshPerformance()
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	logrus.Info("Scheduler started (brand refresh every 15m, rollover check every 1m)")

	// Warm both caches in the background so the first request doesn't pay
	// the full fan-out.
	go func() {
		s.RefreshBrands()
		s.RefreshPerformance()
	}()

	return nil
}

// RefreshBrands re-fetches the processed brand list into the cache.
func (s *Service) RefreshBrands() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	brands, err := s.aggregator.ProcessedBrands(ctx)
	if err != nil {
		logrus.Errorf("Scheduled brand refresh failed: %v", err)
		return
	}

	s.cache.SetBrands(brands)
	logrus.Infof("Brand cache refreshed (%d brands)", len(brands))
}

// RefreshPerformance recomputes the content-performance aggregate into the
// cache.
func (s *Service) RefreshPerformance() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	perf, err := s.aggregator.Aggregate(ctx, s.limit)
	if err != nil {
		logrus.Errorf("Scheduled performance refresh failed: %v", err)
		return
	}

	s.cache.SetPerformance(perf)
	logrus.Infof("Performance cache refreshed (%d posts)", perf.PostCount)
}

// Stop stops the scheduler
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		logrus.Info("Scheduler stopped")
	}
}
