package content

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/qinary/brandboard/internal/models"
)

// DetectMediaType classifies a post's media from its free-text type tag and
// platform. Ordered predicates, first match wins: anything reel- or
// video-flavored (or natively video platforms) is video, photo-flavored
// tags are image, everything else is unknown.
func DetectMediaType(typeTag string, platform models.Platform) models.MediaType {
	tag := strings.ToLower(typeTag)

	switch {
	case strings.Contains(tag, "video"),
		strings.Contains(tag, "reel"),
		platform == models.PlatformTikTok,
		platform == models.PlatformYouTube:
		return models.MediaTypeVideo
	case strings.Contains(tag, "image"),
		strings.Contains(tag, "photo"),
		strings.Contains(tag, "carousel"):
		return models.MediaTypeImage
	default:
		return models.MediaTypeUnknown
	}
}

// BuildEmbedURL derives an iframe-embeddable URL for platforms that support
// it. Returns "" for platforms without embed support; the caller falls back
// to the thumbnail or a placeholder.
func BuildEmbedURL(permalink string, platform models.Platform, postID string) string {
	switch platform {
	case models.PlatformInstagram:
		return strings.TrimSuffix(permalink, "/") + "/embed/"
	case models.PlatformTikTok:
		if postID == "" {
			return ""
		}
		return "https://www.tiktok.com/embed/v2/" + postID
	case models.PlatformYouTube:
		if postID == "" {
			return ""
		}
		return fmt.Sprintf(
			"https://www.youtube.com/embed/%s?autoplay=1&mute=1&loop=1&controls=0&playlist=%s",
			postID, postID,
		)
	case models.PlatformFacebook:
		return "https://www.facebook.com/plugins/post.php?href=" + url.QueryEscape(permalink)
	default:
		return ""
	}
}
