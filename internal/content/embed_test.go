package content

import (
	"testing"

	"github.com/qinary/brandboard/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestDetectMediaType(t *testing.T) {
	tests := []struct {
		name     string
		typeTag  string
		platform models.Platform
		expected models.MediaType
	}{
		{"Video tag", "video", models.PlatformFacebook, models.MediaTypeVideo},
		{"Reel tag", "reel", models.PlatformInstagram, models.MediaTypeVideo},
		{"Reels tag", "reels", models.PlatformInstagram, models.MediaTypeVideo},
		{"TikTok is always video", "post", models.PlatformTikTok, models.MediaTypeVideo},
		{"YouTube is always video", "", models.PlatformYouTube, models.MediaTypeVideo},
		{"Image tag", "image", models.PlatformInstagram, models.MediaTypeImage},
		{"Photo tag", "photo", models.PlatformFacebook, models.MediaTypeImage},
		{"Carousel tag", "carousel_album", models.PlatformInstagram, models.MediaTypeImage},
		{"Video beats image when both match", "video_carousel", models.PlatformInstagram, models.MediaTypeVideo},
		{"Plain post is unknown", "post", models.PlatformLinkedIn, models.MediaTypeUnknown},
		{"Empty tag is unknown", "", models.PlatformTwitter, models.MediaTypeUnknown},
		{"Case-insensitive", "VIDEO", models.PlatformFacebook, models.MediaTypeVideo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectMediaType(tt.typeTag, tt.platform))
		})
	}
}

func TestBuildEmbedURL(t *testing.T) {
	tests := []struct {
		name      string
		permalink string
		platform  models.Platform
		postID    string
		expected  string
	}{
		{
			name:      "Instagram strips trailing slash",
			permalink: "https://instagram.com/p/abc/",
			platform:  models.PlatformInstagram,
			postID:    "abc",
			expected:  "https://instagram.com/p/abc/embed/",
		},
		{
			name:      "Instagram without trailing slash",
			permalink: "https://instagram.com/p/abc",
			platform:  models.PlatformInstagram,
			postID:    "abc",
			expected:  "https://instagram.com/p/abc/embed/",
		},
		{
			name:      "TikTok uses post id",
			permalink: "https://tiktok.com/@user/video/123",
			platform:  models.PlatformTikTok,
			postID:    "123",
			expected:  "https://www.tiktok.com/embed/v2/123",
		},
		{
			name:      "TikTok without id has no embed",
			permalink: "https://tiktok.com/@user/video/123",
			platform:  models.PlatformTikTok,
			postID:    "",
			expected:  "",
		},
		{
			name:      "YouTube autoplay embed",
			permalink: "https://youtube.com/watch?v=xyz",
			platform:  models.PlatformYouTube,
			postID:    "xyz",
			expected:  "https://www.youtube.com/embed/xyz?autoplay=1&mute=1&loop=1&controls=0&playlist=xyz",
		},
		{
			name:      "Facebook URL-encodes permalink",
			permalink: "https://facebook.com/page/posts/1",
			platform:  models.PlatformFacebook,
			postID:    "1",
			expected:  "https://www.facebook.com/plugins/post.php?href=https%3A%2F%2Ffacebook.com%2Fpage%2Fposts%2F1",
		},
		{
			name:      "LinkedIn has no embed support",
			permalink: "https://linkedin.com/posts/1",
			platform:  models.PlatformLinkedIn,
			postID:    "1",
			expected:  "",
		},
		{
			name:      "Bluesky has no embed support",
			permalink: "https://bsky.app/profile/x/post/1",
			platform:  models.PlatformBluesky,
			postID:    "1",
			expected:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildEmbedURL(tt.permalink, tt.platform, tt.postID))
		})
	}
}
