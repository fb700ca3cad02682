package display

import (
	"strings"

	"github.com/qinary/brandboard/internal/models"
)

// Filter narrows the brand grid. Empty fields pass everything; platform and
// status lists use OR logic within themselves.
type Filter struct {
	Query     string
	Platforms []models.Platform
	Statuses  []models.BrandStatus
}

// Active reports whether any filter criterion is set.
func (f Filter) Active() bool {
	return strings.TrimSpace(f.Query) != "" || len(f.Platforms) > 0 || len(f.Statuses) > 0
}

// Apply returns the brands matching the filter. An inactive filter returns
// the input unchanged.
func (f Filter) Apply(brands []models.ProcessedBrand) []models.ProcessedBrand {
	if !f.Active() {
		return brands
	}

	query := strings.ToLower(strings.TrimSpace(f.Query))

	var filtered []models.ProcessedBrand
	for _, brand := range brands {
		if query != "" && !strings.Contains(strings.ToLower(brand.Name), query) {
			continue
		}
		if len(f.Platforms) > 0 && !hasAnyPlatform(brand.Platforms, f.Platforms) {
			continue
		}
		if len(f.Statuses) > 0 && !containsStatus(f.Statuses, models.StatusForPlatforms(brand.Platforms)) {
			continue
		}
		filtered = append(filtered, brand)
	}

	return filtered
}

func hasAnyPlatform(have, want []models.Platform) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func containsStatus(statuses []models.BrandStatus, status models.BrandStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
