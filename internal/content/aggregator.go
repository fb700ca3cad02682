package content

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/qinary/brandboard/internal/metricool"
	"github.com/qinary/brandboard/internal/models"
	"github.com/sirupsen/logrus"
)

// maxConcurrentFetches caps simultaneous outbound requests to the provider
// during an aggregation pass.
const maxConcurrentFetches = 10

// Aggregator orchestrates the full normalization/ranking pipeline for one
// request cycle.
type Aggregator struct {
	provider metricool.Client
	now      func() time.Time
	metrics  *Metrics
	mu       sync.RWMutex
}

// Metrics holds a snapshot of the last aggregation run.
type Metrics struct {
	LastRun         time.Time      `json:"last_run"`
	LastRunDuration string         `json:"last_run_duration"`
	TaskCount       int            `json:"task_count"`
	PostCount       int            `json:"post_count"`
	ErrorCount      int            `json:"error_count"`
	PlatformMetrics map[string]int `json:"platform_metrics"`
}

// NewAggregator creates an aggregator over the given provider client.
func NewAggregator(provider metricool.Client) *Aggregator {
	return &Aggregator{
		provider: provider,
		now:      time.Now,
		metrics: &Metrics{
			PlatformMetrics: make(map[string]int),
		},
	}
}

// fetchTask is one (brand, platform) pair to pull posts for.
type fetchTask struct {
	brand    models.ProcessedBrand
	platform models.Platform
}

// taskResult captures one task's outcome. A failed task contributes zero
// posts and never aborts its siblings.
type taskResult struct {
	posts []models.ContentPost
	err   error
}

// ProcessedBrands fetches the brand list, drops deleted and demo accounts,
// and returns the remainder as ProcessedBrands sorted by name.
func (a *Aggregator) ProcessedBrands(ctx context.Context) ([]models.ProcessedBrand, error) {
	raw, err := a.provider.FetchBrands(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching brands: %w", err)
	}

	now := a.now()
	brands := make([]models.ProcessedBrand, 0, len(raw))
	for _, b := range raw {
		if b.Deleted || b.IsDemo {
			continue
		}
		brands = append(brands, ProcessBrand(b, now))
	}

	sort.Slice(brands, func(i, j int) bool {
		return brands[i].Name < brands[j].Name
	})

	return brands, nil
}

// Aggregate runs the full pipeline: fan out post fetches across every
// (brand, platform) pair with bounded concurrency, normalize and enrich,
// drop zero-signal posts, score the survivors as one batch, and slice the
// top and bottom limit posts. A brand-list failure propagates; individual
// task failures only cost their own posts.
func (a *Aggregator) Aggregate(ctx context.Context, limit int) (models.ContentPerformance, error) {
	start := a.now()
	logrus.Info("Starting content aggregation run")

	empty := models.ContentPerformance{
		Best:      []models.ContentPost{},
		Worst:     []models.ContentPost{},
		FetchedAt: start,
	}

	brands, err := a.ProcessedBrands(ctx)
	if err != nil {
		return empty, err
	}

	var tasks []fetchTask
	for _, brand := range brands {
		for _, platform := range brand.Platforms {
			tasks = append(tasks, fetchTask{brand: brand, platform: platform})
		}
	}

	logrus.Infof("Fetching posts for %d brands, %d platform connections", len(brands), len(tasks))

	results := a.runTasks(ctx, tasks)

	var allPosts []models.ContentPost
	errorCount := 0
	for _, res := range results {
		if res.err != nil {
			errorCount++
			continue
		}
		allPosts = append(allPosts, res.posts...)
	}

	// Posts with every metric at zero carry no data and would only drag the
	// "worst" list down with noise.
	withData := allPosts[:0:0]
	for _, p := range allPosts {
		if p.HasSignal() {
			withData = append(withData, p)
		}
	}

	scored := ScorePosts(withData)
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	best := append([]models.ContentPost{}, scored[:min(limit, len(scored))]...)

	worst := []models.ContentPost{}
	if len(scored) > limit {
		tail := scored[len(scored)-min(limit, len(scored)):]
		for i := len(tail) - 1; i >= 0; i-- {
			worst = append(worst, tail[i])
		}
	}

	a.updateMetrics(scored, len(tasks), errorCount, a.now().Sub(start))

	logrus.Infof("Aggregation: %d total, %d with data, %d best / %d worst in %v",
		len(allPosts), len(scored), len(best), len(worst), a.now().Sub(start))

	return models.ContentPerformance{
		Best:      best,
		Worst:     worst,
		FetchedAt: a.now(),
		PostCount: len(scored),
	}, nil
}

// runTasks executes fetch tasks through a fixed-width worker pool, capturing
// each task's outcome independently so one failure never aborts the rest.
func (a *Aggregator) runTasks(ctx context.Context, tasks []fetchTask) []taskResult {
	results := make([]taskResult, len(tasks))
	sem := make(chan struct{}, maxConcurrentFetches)
	var wg sync.WaitGroup

	for i, task := range tasks {
		wg.Add(1)
		go func(idx int, t fetchTask) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			raw, err := a.provider.FetchPlatformPosts(ctx, t.brand.ID, t.platform)
			if err != nil {
				logrus.Errorf("Failed to fetch %s posts for brand %d: %v", t.platform, t.brand.ID, err)
				results[idx] = taskResult{err: err}
				return
			}

			posts := make([]models.ContentPost, 0, len(raw))
			for _, r := range raw {
				posts = append(posts, NormalizePost(r, t.brand, t.platform))
			}
			results[idx] = taskResult{posts: posts}
		}(i, task)
	}

	wg.Wait()
	return results
}

func (a *Aggregator) updateMetrics(posts []models.ContentPost, taskCount, errorCount int, duration time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.metrics.LastRun = a.now()
	a.metrics.LastRunDuration = duration.String()
	a.metrics.TaskCount = taskCount
	a.metrics.PostCount = len(posts)
	a.metrics.ErrorCount = errorCount

	a.metrics.PlatformMetrics = make(map[string]int)
	for _, p := range posts {
		a.metrics.PlatformMetrics[string(p.Platform)]++
	}
}

// GetMetrics returns the last run's snapshot as JSON.
func (a *Aggregator) GetMetrics() string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	data, _ := json.MarshalIndent(a.metrics, "", "  ")
	return string(data)
}
