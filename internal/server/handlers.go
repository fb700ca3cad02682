package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/qinary/brandboard/internal/display"
	"github.com/qinary/brandboard/internal/models"
	"github.com/qinary/brandboard/internal/stats"
	"github.com/sirupsen/logrus"
)

// aggregate runs one aggregation pass at the given slice size with
// instrumentation.
func (s *Server) aggregate(limit int) (models.ContentPerformance, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	start := time.Now()
	s.metrics.aggregationsTotal.Inc()

	perf, err := s.aggregator.Aggregate(ctx, limit)
	s.metrics.aggregationSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.aggregationFailures.Inc()
		return perf, err
	}

	s.metrics.lastPostCount.Set(float64(perf.PostCount))
	return perf, nil
}

// handleBrands serves the processed brand list sorted by name, optionally
// narrowed by ?q=, ?platforms= and ?statuses= filters.
func (s *Server) handleBrands(w http.ResponseWriter, r *http.Request) {
	brands := s.cache.Brands()
	if brands == nil {
		fetched, err := s.aggregator.ProcessedBrands(r.Context())
		if err != nil {
			logrus.Errorf("Failed to fetch brands: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error": "Failed to fetch brands",
			})
			return
		}
		s.cache.SetBrands(fetched)
		brands = fetched
	}

	filter := filterFromQuery(r)
	filtered := filter.Apply(brands)
	if filtered == nil {
		filtered = []models.ProcessedBrand{}
	}

	writeJSON(w, http.StatusOK, filtered)
}

func filterFromQuery(r *http.Request) display.Filter {
	filter := display.Filter{Query: r.URL.Query().Get("q")}

	if raw := r.URL.Query().Get("platforms"); raw != "" {
		for _, p := range strings.Split(raw, ",") {
			filter.Platforms = append(filter.Platforms, models.Platform(strings.TrimSpace(p)))
		}
	}
	if raw := r.URL.Query().Get("statuses"); raw != "" {
		for _, st := range strings.Split(raw, ",") {
			filter.Statuses = append(filter.Statuses, models.BrandStatus(strings.TrimSpace(st)))
		}
	}

	return filter
}

// handleBrandStats serves one brand's headline stats. Best-effort by
// contract: after id validation it always answers 200, falling back to
// estimates whenever the provider has nothing usable.
func (s *Server) handleBrandStats(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	brandID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid brand ID"})
		return
	}

	if cached, ok := s.cache.Stats(brandID); ok {
		writeJSON(w, http.StatusOK, statsPayload(cached))
		return
	}

	raw := s.provider.FetchBrandStats(r.Context(), brandID)
	posts := s.provider.FetchInstagramPosts(r.Context(), brandID)

	brand := s.lookupBrand(r.Context(), brandID)
	result := models.BrandStatsResult{
		Raw:   raw,
		Posts: len(posts),
		Stats: stats.Merge(brand, raw, int64(len(posts))),
	}
	s.cache.SetStats(brandID, result)

	writeJSON(w, http.StatusOK, statsPayload(result))
}

// statsPayload renders a stats result; cache hits and misses answer with
// the same shape.
func statsPayload(result models.BrandStatsResult) map[string]any {
	return map[string]any{
		"raw":       result.Raw,
		"posts":     result.Posts,
		"stats":     result.Stats,
		"fetchedAt": time.Now().Format(time.RFC3339),
	}
}

// lookupBrand finds the processed brand record for estimation inputs,
// degrading to a bare record carrying just the id.
func (s *Server) lookupBrand(ctx context.Context, brandID int64) models.ProcessedBrand {
	brands := s.cache.Brands()
	if brands == nil {
		fetched, err := s.aggregator.ProcessedBrands(ctx)
		if err != nil {
			logrus.Debugf("Brand lookup for %d fell back to bare record: %v", brandID, err)
			return models.ProcessedBrand{ID: brandID}
		}
		s.cache.SetBrands(fetched)
		brands = fetched
	}

	for _, b := range brands {
		if b.ID == brandID {
			return b
		}
	}
	return models.ProcessedBrand{ID: brandID}
}

// handlePerformance serves the ranked best/worst content. Always 200 with
// a structurally valid (possibly empty) payload; the TV must always be able
// to render something.
func (s *Server) handlePerformance(w http.ResponseWriter, r *http.Request) {
	limit := s.cfg.DisplayLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 50 {
		limit = 50
	}

	// The day-keyed cache entry is computed at DisplayLimit or wider; slice
	// it down rather than re-running the fan-out for smaller displays.
	if cached, ok := s.cache.Performance(); ok && limit <= s.cfg.DisplayLimit {
		writeJSON(w, http.StatusOK, sliceLimit(cached, limit))
		return
	}

	// Never compute below the default: the result also warms the day cache,
	// which must be able to serve any request up to DisplayLimit by slicing.
	fetchLimit := limit
	if fetchLimit < s.cfg.DisplayLimit {
		fetchLimit = s.cfg.DisplayLimit
	}

	perf, err := s.aggregate(fetchLimit)
	if err != nil {
		logrus.Errorf("Content performance aggregation failed: %v", err)
		writeJSON(w, http.StatusOK, models.ContentPerformance{
			Best:      []models.ContentPost{},
			Worst:     []models.ContentPost{},
			FetchedAt: time.Now(),
		})
		return
	}

	s.cache.SetPerformance(perf)
	writeJSON(w, http.StatusOK, sliceLimit(perf, limit))
}

func sliceLimit(perf models.ContentPerformance, limit int) models.ContentPerformance {
	if limit < len(perf.Best) {
		perf.Best = perf.Best[:limit]
	}
	if limit < len(perf.Worst) {
		perf.Worst = perf.Worst[:limit]
	}
	return perf
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleLogin checks the fixed credential pair and issues an opaque session
// token in an httpOnly cookie.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "Invalid request",
		})
		return
	}

	if creds.Username != s.cfg.AdminUsername || creds.Password != s.cfg.AdminPassword {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"success": false,
			"error":   "Invalid credentials",
		})
		return
	}

	token := s.sessions.Issue()
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.cfg.SessionMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// handleLogout revokes the session and clears the cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(s.cfg.SessionCookie); err == nil {
		s.sessions.Revoke(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleDisplayState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.controller.State())
}

func (s *Server) handleDisplayAdvance(w http.ResponseWriter, r *http.Request) {
	phase := s.controller.Next()
	writeJSON(w, http.StatusOK, phase)
}

func (s *Server) handleDisplayBack(w http.ResponseWriter, r *http.Request) {
	phase := s.controller.Back()
	writeJSON(w, http.StatusOK, phase)
}

func (s *Server) handleDisplaySelect(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind  display.PhaseKind `json:"kind"`
		Index int               `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request"})
		return
	}

	phase, ok := s.controller.Select(req.Kind, req.Index)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Unknown phase"})
		return
	}
	writeJSON(w, http.StatusOK, phase)
}

func (s *Server) handleDisplayHold(w http.ResponseWriter, r *http.Request) {
	var hold display.Hold
	if err := json.NewDecoder(r.Body).Decode(&hold); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request"})
		return
	}

	s.controller.SetHold(hold)
	writeJSON(w, http.StatusOK, s.controller.State())
}
