package stats

import (
	"testing"

	"github.com/qinary/brandboard/internal/models"
	"github.com/stretchr/testify/assert"
)

var estBrand = models.ProcessedBrand{
	ID:            4321,
	Name:          "Acme",
	Platforms:     []models.Platform{models.PlatformInstagram, models.PlatformTikTok},
	DaysSinceJoin: 200,
}

func TestEstimatedFollowers(t *testing.T) {
	// 2*1200 + 4321%5000 + 200*3.5 = 2400 + 4321 + 700
	assert.Equal(t, int64(7421), EstimatedFollowers(estBrand))
}

func TestEstimatedReach(t *testing.T) {
	// floor(7421*1.8) + 2*800
	assert.Equal(t, int64(14957), EstimatedReach(estBrand))
}

func TestEstimatedEngagement_Clamped(t *testing.T) {
	lowBrand := models.ProcessedBrand{ID: 0, Platforms: nil}
	assert.GreaterOrEqual(t, EstimatedEngagement(lowBrand), 0.8)

	highBrand := models.ProcessedBrand{
		ID:        14, // variance ceiling within the modulo band
		Platforms: models.AllPlatforms,
	}
	assert.LessOrEqual(t, EstimatedEngagement(highBrand), 8.5)
}

func TestGrowthPercent_Buckets(t *testing.T) {
	tests := []struct {
		name      string
		platforms int
		negative  bool
	}{
		{"Four platforms grows fastest", 4, false},
		{"Three platforms grows", 3, false},
		{"One platform grows slowly", 1, false},
		{"No platforms can shrink", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			brand := models.ProcessedBrand{ID: 3, Platforms: models.AllPlatforms[:tt.platforms]}
			growth := GrowthPercent(brand)
			if tt.negative {
				assert.LessOrEqual(t, growth, 0.0)
			} else {
				assert.Greater(t, growth, 0.0)
			}
		})
	}
}

func TestEstimated_Deterministic(t *testing.T) {
	assert.Equal(t, Estimated(estBrand), Estimated(estBrand))
	assert.True(t, Estimated(estBrand).IsEstimated)
}

func TestMerge(t *testing.T) {
	t.Run("Nil raw keeps estimate", func(t *testing.T) {
		merged := Merge(estBrand, nil, 0)
		assert.Equal(t, Estimated(estBrand), merged)
		assert.True(t, merged.IsEstimated)
	})

	t.Run("Real values replace estimates field by field", func(t *testing.T) {
		raw := map[string]any{
			"followers":      12000.0,
			"engagementRate": 3.4,
		}
		merged := Merge(estBrand, raw, 25)

		assert.False(t, merged.IsEstimated)
		assert.Equal(t, int64(12000), merged.Followers)
		assert.InDelta(t, 3.4, merged.Engagement, 1e-9)
		assert.Equal(t, int64(25), merged.ContentPublished)
		// Reach absent from raw: the estimate stands in.
		assert.Equal(t, EstimatedReach(estBrand), merged.Reach)
	})

	t.Run("Zero post count never overrides estimate", func(t *testing.T) {
		merged := Merge(estBrand, map[string]any{}, 0)
		assert.Equal(t, EstimatedContentPieces(estBrand), merged.ContentPublished)
	})

	t.Run("Non-numeric raw values are ignored", func(t *testing.T) {
		raw := map[string]any{"followers": "lots"}
		merged := Merge(estBrand, raw, 0)
		assert.Equal(t, EstimatedFollowers(estBrand), merged.Followers)
	})
}
