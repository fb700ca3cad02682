package models

import "time"

// Platform identifies one of the supported social channels.
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformTwitter   Platform = "twitter"
	PlatformTikTok    Platform = "tiktok"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformYouTube   Platform = "youtube"
	PlatformThreads   Platform = "threads"
	PlatformBluesky   Platform = "bluesky"
	PlatformPinterest Platform = "pinterest"
)

// AllPlatforms lists every supported platform in the fixed check order used
// when deriving a brand's connections. Order matters: ProcessedBrand.Platforms
// follows this sequence.
var AllPlatforms = []Platform{
	PlatformInstagram,
	PlatformFacebook,
	PlatformTwitter,
	PlatformTikTok,
	PlatformLinkedIn,
	PlatformYouTube,
	PlatformThreads,
	PlatformBluesky,
	PlatformPinterest,
}

// MediaType is a coarse classification of a post's media.
type MediaType string

const (
	MediaTypeVideo   MediaType = "video"
	MediaTypeImage   MediaType = "image"
	MediaTypeUnknown MediaType = "unknown"
)

// Brand is a provider-shaped profile record. Per-platform identity fields
// matter only for presence, not value.
type Brand struct {
	ID                  int64  `json:"id"`
	UserID              int64  `json:"userId"`
	Label               string `json:"label"`
	Picture             string `json:"picture"`
	Instagram           string `json:"instagram"`
	Facebook            string `json:"facebook"`
	FacebookPageID      string `json:"facebookPageId"`
	Twitter             string `json:"twitter"`
	TikTok              string `json:"tiktok"`
	LinkedinCompany     string `json:"linkedinCompany"`
	YouTubeChannelName  string `json:"youtubeChannelName"`
	Threads             string `json:"threads"`
	ThreadsAccountName  string `json:"threadsAccountName"`
	Bluesky             string `json:"bluesky"`
	BlueskyHandle       string `json:"blueskyHandle"`
	Pinterest           string `json:"pinterest"`
	PinterestBusiness   string `json:"pinterestBusiness"`
	JoinDate            int64  `json:"joinDate"`
	FirstConnectionDate int64  `json:"firstConnectionDate"`
	Timezone            string `json:"timezone"`
	IsDemo              bool   `json:"isDemo"`
	Deleted             bool   `json:"deleted"`
}

// ProcessedBrand is the canonical brand entity derived from a Brand record.
type ProcessedBrand struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Picture       string     `json:"picture"`
	Platforms     []Platform `json:"platforms"`
	JoinDate      time.Time  `json:"joinDate"`
	DaysSinceJoin int        `json:"daysSinceJoin"`
}

// RawPost is one provider post record. The provider guarantees no fixed
// schema across platforms or API versions, so it stays an opaque field bag
// until normalization.
type RawPost map[string]any

// ContentPost is the canonical, normalized representation of one social
// media post/reel/video across any platform.
type ContentPost struct {
	ID             string    `json:"id"`
	BrandID        int64     `json:"brandId"`
	BrandName      string    `json:"brandName"`
	BrandPicture   string    `json:"brandPicture"`
	Platform       Platform  `json:"platform"`
	Type           string    `json:"type"`
	Caption        string    `json:"caption"`
	Thumbnail      string    `json:"thumbnail,omitempty"`
	MediaURL       string    `json:"mediaUrl,omitempty"`
	Permalink      string    `json:"permalink,omitempty"`
	EmbedURL       string    `json:"embedUrl,omitempty"`
	MediaType      MediaType `json:"mediaType"`
	Likes          int64     `json:"likes"`
	Comments       int64     `json:"comments"`
	Shares         int64     `json:"shares"`
	Reach          int64     `json:"reach"`
	EngagementRate float64   `json:"engagementRate"`
	Score          float64   `json:"score"`
	PublishedAt    string    `json:"publishedAt"`
}

// Interactions is the sum of likes, comments and shares.
func (p ContentPost) Interactions() int64 {
	return p.Likes + p.Comments + p.Shares
}

// HasSignal reports whether the post carries any metric data at all. Posts
// where every metric is zero are treated as "no data", not zero engagement.
func (p ContentPost) HasSignal() bool {
	return p.Interactions()+p.Reach > 0
}

// ContentPerformance is the aggregation result handed to the presentation
// layer. It is always structurally valid, possibly with empty slices.
type ContentPerformance struct {
	Best      []ContentPost `json:"best"`
	Worst     []ContentPost `json:"worst"`
	FetchedAt time.Time     `json:"fetchedAt"`
	PostCount int           `json:"postCount"`
}

// BrandStats holds the headline figures shown on a brand spotlight. When the
// provider has no usable aggregates the values fall back to deterministic
// estimates and IsEstimated is set.
type BrandStats struct {
	Followers        int64   `json:"followers"`
	Reach            int64   `json:"reach"`
	Engagement       float64 `json:"engagement"`
	ContentPublished int64   `json:"contentPublished"`
	GrowthPercent    float64 `json:"growthPercent"`
	IsEstimated      bool    `json:"isEstimated"`
}

// BrandStatsResult bundles the merged stats with the raw provider
// aggregates and sampled post count they were derived from. Cached and
// freshly computed responses share this one shape.
type BrandStatsResult struct {
	Raw   map[string]any `json:"raw"`
	Posts int            `json:"posts"`
	Stats BrandStats     `json:"stats"`
}

// BrandStatus is a coarse account health bucket derived from how many
// platforms a brand has connected.
type BrandStatus string

const (
	StatusActive  BrandStatus = "Active"
	StatusGrowing BrandStatus = "Growing"
	StatusSetup   BrandStatus = "Setup"
)

// StatusForPlatforms derives the display status from a brand's connected
// platform count: 3+ is Active, 1+ is Growing, none is Setup.
func StatusForPlatforms(platforms []Platform) BrandStatus {
	switch {
	case len(platforms) >= 3:
		return StatusActive
	case len(platforms) >= 1:
		return StatusGrowing
	default:
		return StatusSetup
	}
}
