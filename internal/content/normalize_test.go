package content

import (
	"testing"

	"github.com/qinary/brandboard/internal/models"
	"github.com/stretchr/testify/assert"
)

var testBrand = models.ProcessedBrand{
	ID:      42,
	Name:    "Acme",
	Picture: "/acme.png",
}

func TestNormalizePost_Defaults(t *testing.T) {
	post := NormalizePost(models.RawPost{}, testBrand, models.PlatformInstagram)

	assert.Equal(t, int64(0), post.Likes)
	assert.Equal(t, int64(0), post.Comments)
	assert.Equal(t, int64(0), post.Shares)
	assert.Equal(t, int64(0), post.Reach)
	assert.Equal(t, 0.0, post.EngagementRate)
	assert.Equal(t, 0.0, post.Score)
	assert.Equal(t, "", post.Caption)
	assert.Equal(t, "", post.Thumbnail)
	assert.Equal(t, "", post.MediaURL)
	assert.Equal(t, "", post.Permalink)
	assert.Equal(t, "", post.PublishedAt)
	assert.Equal(t, "post", post.Type)
	assert.Equal(t, int64(42), post.BrandID)
	assert.Equal(t, "Acme", post.BrandName)
	assert.NotEmpty(t, post.ID, "fallback id must be synthesized")
}

func TestNormalizePost_EngagementRate(t *testing.T) {
	tests := []struct {
		name     string
		raw      models.RawPost
		expected float64
	}{
		{
			name:     "Standard rate",
			raw:      models.RawPost{"likes": 10.0, "comments": 5.0, "shares": 5.0, "reach": 100.0},
			expected: 20,
		},
		{
			name:     "Zero reach forces zero rate regardless of interactions",
			raw:      models.RawPost{"likes": 500.0, "comments": 50.0, "reach": 0.0},
			expected: 0,
		},
		{
			name:     "Missing reach forces zero rate",
			raw:      models.RawPost{"likes": 500.0},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := NormalizePost(tt.raw, testBrand, models.PlatformInstagram)
			assert.Equal(t, tt.expected, post.EngagementRate)
		})
	}
}

func TestNormalizePost_KeyPriority(t *testing.T) {
	// TikTok-shaped record: alternate key names resolve to the same fields.
	raw := models.RawPost{
		"likeCount":        150.0,
		"commentCount":     20.0,
		"shareCount":       30.0,
		"viewCount":        5000.0,
		"videoDescription": "tips and tricks",
		"coverImageUrl":    "https://cdn.example.com/cover.jpg",
		"shareUrl":         "https://tiktok.com/@acme/video/999",
		"videoId":          "999",
	}

	post := NormalizePost(raw, testBrand, models.PlatformTikTok)

	assert.Equal(t, int64(150), post.Likes)
	assert.Equal(t, int64(20), post.Comments)
	assert.Equal(t, int64(30), post.Shares)
	assert.Equal(t, int64(5000), post.Reach)
	assert.Equal(t, "tips and tricks", post.Caption)
	assert.Equal(t, "https://cdn.example.com/cover.jpg", post.Thumbnail)
	assert.Equal(t, "https://tiktok.com/@acme/video/999", post.Permalink)
	assert.Equal(t, "999", post.ID)
	assert.Equal(t, models.MediaTypeVideo, post.MediaType)
}

func TestNormalizePost_ProviderEmbedLinkWins(t *testing.T) {
	raw := models.RawPost{
		"videoId":   "777",
		"shareUrl":  "https://tiktok.com/@acme/video/777",
		"embedLink": "https://www.tiktok.com/embed/v2/native-777",
	}

	post := NormalizePost(raw, testBrand, models.PlatformTikTok)
	assert.Equal(t, "https://www.tiktok.com/embed/v2/native-777", post.EmbedURL)
}

func TestNormalizePost_ConstructedEmbedWithoutProviderLink(t *testing.T) {
	raw := models.RawPost{
		"postId": "abc",
		"url":    "https://instagram.com/p/abc/",
	}

	post := NormalizePost(raw, testBrand, models.PlatformInstagram)
	assert.Equal(t, "https://instagram.com/p/abc/embed/", post.EmbedURL)
}

func TestNormalizePost_Idempotent(t *testing.T) {
	raw := models.RawPost{
		"likes":   12.0,
		"reach":   300.0,
		"content": "same post",
		"url":     "https://example.com/p/1",
	}

	first := NormalizePost(raw, testBrand, models.PlatformLinkedIn)
	second := NormalizePost(raw, testBrand, models.PlatformLinkedIn)

	// Holds even without a provider id: the fallback id is a deterministic
	// hash of the record's identifying fields.
	assert.Equal(t, first, second)
}

func TestFallbackID_Deterministic(t *testing.T) {
	raw := models.RawPost{"content": "untagged", "url": "https://example.com/x"}

	a := NormalizePost(raw, testBrand, models.PlatformThreads)
	b := NormalizePost(raw, testBrand, models.PlatformThreads)
	other := NormalizePost(models.RawPost{"content": "different"}, testBrand, models.PlatformThreads)

	assert.Equal(t, a.ID, b.ID)
	assert.NotEqual(t, a.ID, other.ID)
}

func TestNormalizePost_StructuredDate(t *testing.T) {
	raw := models.RawPost{
		"postId":      "d1",
		"publishedAt": map[string]any{"dateTime": "2026-08-20T14:00:00"},
	}

	post := NormalizePost(raw, testBrand, models.PlatformFacebook)
	assert.Equal(t, "2026-08-20T14:00:00", post.PublishedAt)
}
