package content

import (
	"fmt"
	"hash/fnv"

	"github.com/qinary/brandboard/internal/models"
)

// Candidate-key tables for each canonical field, in priority order. First
// match wins. Observed v2 field names per platform:
//   Instagram posts: likes, comments, shares, reach, impressions, url, imageUrl, content, postId
//   Instagram reels: likes, comments, shares, reach, views, url, imageUrl, content, reelId
//   TikTok: likeCount, commentCount, shareCount, viewCount, shareUrl, coverImageUrl, videoDescription, videoId, embedLink
//   Facebook: reactions, comments, shares, impressions, link, picture, text, postId
//   LinkedIn: likes, comments, shares, impressions, url, picture, description, postId
//   Twitter: like, comments, retweets, impressions, url, text, postId
var (
	likesKeys     = []string{"likes", "likeCount", "reactions", "favoriteCount", "like"}
	commentsKeys  = []string{"comments", "commentCount", "replies", "replyCount"}
	sharesKeys    = []string{"shares", "shareCount", "retweets", "retweetCount", "reposts"}
	reachKeys     = []string{"reach", "impressions", "impressionsTotal", "views", "viewCount", "plays", "playCount"}
	captionKeys   = []string{"content", "text", "videoDescription", "description", "title", "caption", "message"}
	thumbnailKeys = []string{"imageUrl", "coverImageUrl", "picture", "thumbnail", "thumbnailUrl", "image", "pictureUrl", "coverImage"}
	mediaURLKeys  = []string{"mediaUrl", "videoUrl", "video_url", "media_url", "sourceUrl"}
	permalinkKeys = []string{"url", "shareUrl", "link", "permalink", "postUrl", "shortLink"}
	typeKeys      = []string{"type", "mediaType", "postType", "contentType"}
	idKeys        = []string{"postId", "reelId", "videoId", "id", "mediaId", "shortcode"}
)

// NormalizePost converts one raw provider record into a canonical
// ContentPost. Pure transform: missing fields degrade to defaults, never to
// an error. The score stays 0 until the batch is scored.
func NormalizePost(raw models.RawPost, brand models.ProcessedBrand, platform models.Platform) models.ContentPost {
	likes := int64(extractNumber(raw, likesKeys...))
	comments := int64(extractNumber(raw, commentsKeys...))
	shares := int64(extractNumber(raw, sharesKeys...))
	reach := int64(extractNumber(raw, reachKeys...))

	engagementRate := 0.0
	if reach > 0 {
		engagementRate = float64(likes+comments+shares) / float64(reach) * 100
	}

	publishedAt := extractDate(raw)

	typeTag := extractString(raw, typeKeys...)
	if typeTag == "" {
		typeTag = "post"
	}

	permalink := extractString(raw, permalinkKeys...)

	postID := extractString(raw, idKeys...)
	if postID == "" {
		postID = fallbackID(raw, brand.ID, platform, publishedAt, permalink)
	}

	// The provider hands TikTok a ready-made embed link; it always beats a
	// constructed one.
	embedURL := extractString(raw, "embedLink")
	if embedURL == "" && permalink != "" {
		embedURL = BuildEmbedURL(permalink, platform, postID)
	}

	return models.ContentPost{
		ID:             postID,
		BrandID:        brand.ID,
		BrandName:      brand.Name,
		BrandPicture:   brand.Picture,
		Platform:       platform,
		Type:           typeTag,
		Caption:        extractString(raw, captionKeys...),
		Thumbnail:      extractString(raw, thumbnailKeys...),
		MediaURL:       extractString(raw, mediaURLKeys...),
		Permalink:      permalink,
		EmbedURL:       embedURL,
		MediaType:      DetectMediaType(typeTag, platform),
		Likes:          likes,
		Comments:       comments,
		Shares:         shares,
		Reach:          reach,
		EngagementRate: engagementRate,
		Score:          0,
		PublishedAt:    publishedAt,
	}
}

// fallbackID synthesizes a stable id for records the provider ships without
// one. Hashing the available identifying fields keeps the id deterministic,
// so re-fetching the same post yields the same id across refreshes.
func fallbackID(raw models.RawPost, brandID int64, platform models.Platform, publishedAt, permalink string) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d|%s|%s|%s|%s", brandID, platform, publishedAt, permalink, extractString(raw, captionKeys...))
	return fmt.Sprintf("%d-%s-%x", brandID, platform, h.Sum64())
}
