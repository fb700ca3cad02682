package display

import (
	"testing"

	"github.com/qinary/brandboard/internal/models"
	"github.com/stretchr/testify/assert"
)

var filterBrands = []models.ProcessedBrand{
	{ID: 1, Name: "Acme Coffee", Platforms: []models.Platform{
		models.PlatformInstagram, models.PlatformTikTok, models.PlatformYouTube,
	}},
	{ID: 2, Name: "Beta Fitness", Platforms: []models.Platform{
		models.PlatformInstagram,
	}},
	{ID: 3, Name: "Gamma Legal", Platforms: nil},
}

func TestFilter_Inactive(t *testing.T) {
	assert.False(t, Filter{}.Active())
	assert.Equal(t, filterBrands, Filter{}.Apply(filterBrands))
	assert.False(t, Filter{Query: "   "}.Active())
}

func TestFilter_Query(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected []int64
	}{
		{"Case-insensitive substring", "ACME", []int64{1}},
		{"Partial match", "fit", []int64{2}},
		{"No match", "zzz", nil},
		{"Whitespace trimmed", "  beta  ", []int64{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter{Query: tt.query}.Apply(filterBrands)
			assert.Equal(t, tt.expected, ids(got))
		})
	}
}

func TestFilter_Platforms(t *testing.T) {
	// OR logic: any selected platform qualifies.
	filter := Filter{Platforms: []models.Platform{
		models.PlatformTikTok, models.PlatformInstagram,
	}}

	assert.Equal(t, []int64{1, 2}, ids(filter.Apply(filterBrands)))
}

func TestFilter_Statuses(t *testing.T) {
	tests := []struct {
		name     string
		statuses []models.BrandStatus
		expected []int64
	}{
		{"Active only", []models.BrandStatus{models.StatusActive}, []int64{1}},
		{"Growing only", []models.BrandStatus{models.StatusGrowing}, []int64{2}},
		{"Setup only", []models.BrandStatus{models.StatusSetup}, []int64{3}},
		{"OR across statuses", []models.BrandStatus{models.StatusActive, models.StatusSetup}, []int64{1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter{Statuses: tt.statuses}.Apply(filterBrands)
			assert.Equal(t, tt.expected, ids(got))
		})
	}
}

func TestFilter_Combined(t *testing.T) {
	filter := Filter{
		Query:     "acme",
		Platforms: []models.Platform{models.PlatformInstagram},
		Statuses:  []models.BrandStatus{models.StatusActive},
	}

	assert.Equal(t, []int64{1}, ids(filter.Apply(filterBrands)))

	// All criteria must pass together.
	filter.Statuses = []models.BrandStatus{models.StatusSetup}
	assert.Nil(t, ids(filter.Apply(filterBrands)))
}

func ids(brands []models.ProcessedBrand) []int64 {
	if brands == nil {
		return nil
	}
	var out []int64
	for _, b := range brands {
		out = append(out, b.ID)
	}
	return out
}
