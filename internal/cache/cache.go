// Package cache holds the process's only shared mutable state: freshness-
// stamped copies of provider results. Entries are replaced whole
// (last-fetch-wins), never mutated in place, so readers always see a
// complete value.
package cache

import (
	"sync"
	"time"

	"github.com/qinary/brandboard/internal/models"
)

// Clock supplies the current time; injected so tests can drive TTL expiry
// and day rollover without sleeping.
type Clock func() time.Time

// Service caches brand lists, per-brand stats and the content-performance
// result. The performance entry is keyed by the local day string so it never
// survives midnight.
type Service struct {
	clock    Clock
	location *time.Location
	statsTTL time.Duration
	brandTTL time.Duration

	mu          sync.RWMutex
	brands      []models.ProcessedBrand
	brandsAt    time.Time
	stats       map[int64]statsEntry
	performance *models.ContentPerformance
	performDay  string
}

type statsEntry struct {
	result    models.BrandStatsResult
	fetchedAt time.Time
}

// New creates a cache service. loc controls which midnight invalidates the
// content-performance entry.
func New(clock Clock, loc *time.Location, statsTTL, brandTTL time.Duration) *Service {
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		clock:    clock,
		location: loc,
		statsTTL: statsTTL,
		brandTTL: brandTTL,
		stats:    make(map[int64]statsEntry),
	}
}

// Today returns the current local day string (YYYY-MM-DD).
func (s *Service) Today() string {
	return s.clock().In(s.location).Format("2006-01-02")
}

// Brands returns the cached brand list, or nil when absent or expired.
func (s *Service) Brands() []models.ProcessedBrand {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.brands == nil || s.clock().Sub(s.brandsAt) > s.brandTTL {
		return nil
	}
	return s.brands
}

// SetBrands replaces the cached brand list.
func (s *Service) SetBrands(brands []models.ProcessedBrand) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.brands = brands
	s.brandsAt = s.clock()
}

// Stats returns the cached stats result for one brand, or false when
// absent or expired.
func (s *Service) Stats(brandID int64) (models.BrandStatsResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.stats[brandID]
	if !ok || s.clock().Sub(entry.fetchedAt) > s.statsTTL {
		return models.BrandStatsResult{}, false
	}
	return entry.result, true
}

// SetStats replaces the cached stats result for one brand.
func (s *Service) SetStats(brandID int64, result models.BrandStatsResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats[brandID] = statsEntry{result: result, fetchedAt: s.clock()}
}

// Performance returns the cached content-performance result, or false when
// there is none for the current local day.
func (s *Service) Performance() (models.ContentPerformance, bool) {
	today := s.Today()

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.performance == nil || s.performDay != today {
		return models.ContentPerformance{}, false
	}
	return *s.performance, true
}

// SetPerformance replaces the cached content-performance result, stamping
// it with the current local day.
func (s *Service) SetPerformance(perf models.ContentPerformance) {
	today := s.Today()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.performance = &perf
	s.performDay = today
}

// RolledOver reports whether a cached performance entry exists but belongs
// to an earlier day. The scheduler polls this once per minute to catch the
// local-midnight transition.
func (s *Service) RolledOver() bool {
	today := s.Today()

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.performDay != "" && s.performDay != today
}

// InvalidatePerformance drops the content-performance entry.
func (s *Service) InvalidatePerformance() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.performance = nil
	s.performDay = ""
}
