// Command test-pipeline runs the normalization and ranking pipeline over a
// built-in sample of raw provider records and prints the resulting
// leaderboard, so the scoring can be eyeballed without provider access.
package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/qinary/brandboard/internal/content"
	"github.com/qinary/brandboard/internal/models"
)

var sampleBrand = models.ProcessedBrand{
	ID:      101,
	Name:    "Sample Brand",
	Picture: "/default-avatar.svg",
}

var samplePosts = []struct {
	platform models.Platform
	raw      models.RawPost
}{
	{models.PlatformInstagram, models.RawPost{
		"postId": "ig-1", "likes": 340.0, "comments": 25.0, "shares": 12.0,
		"reach": 8200.0, "content": "Launch day recap", "type": "image",
		"url": "https://instagram.com/p/ig-1/",
	}},
	{models.PlatformInstagram, models.RawPost{
		"reelId": "ig-2", "likes": 1200.0, "comments": 80.0, "shares": 95.0,
		"views": 45000.0, "content": "Behind the scenes reel", "type": "reel",
		"url": "https://instagram.com/reel/ig-2/",
	}},
	{models.PlatformTikTok, models.RawPost{
		"videoId": "tt-1", "likeCount": 560.0, "commentCount": 41.0,
		"shareCount": 130.0, "viewCount": 22000.0,
		"videoDescription": "Quick tips", "embedLink": "https://www.tiktok.com/embed/v2/tt-1",
	}},
	{models.PlatformFacebook, models.RawPost{
		"postId": "fb-1", "reactions": 48.0, "comments": 3.0, "shares": 1.0,
		"impressions": 1900.0, "text": "Weekly update",
		"link": "https://facebook.com/page/posts/fb-1",
	}},
	{models.PlatformTwitter, models.RawPost{
		"postId": "tw-1", "like": 4.0, "comments": 0.0, "retweets": 1.0,
		"impressions": 600.0, "text": "Short announcement",
	}},
	// No data at all: dropped by the zero-signal filter.
	{models.PlatformLinkedIn, models.RawPost{
		"postId": "li-1", "description": "Pending analytics",
	}},
}

func main() {
	fmt.Println("🏆 Brandboard - Pipeline Dry Run")
	fmt.Println("================================")

	var posts []models.ContentPost
	for _, sample := range samplePosts {
		posts = append(posts, content.NormalizePost(sample.raw, sampleBrand, sample.platform))
	}

	withData := posts[:0:0]
	for _, p := range posts {
		if p.HasSignal() {
			withData = append(withData, p)
		}
	}

	scored := content.ScorePosts(withData)
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	fmt.Printf("\n%d raw posts, %d with data\n\n", len(posts), len(scored))
	fmt.Printf("%-10s %-10s %7s %7s %7s %9s %7s %7s\n",
		"ID", "PLATFORM", "LIKES", "COMMS", "SHARES", "REACH", "ER%", "SCORE")
	fmt.Println(strings.Repeat("-", 72))

	for _, p := range scored {
		fmt.Printf("%-10s %-10s %7d %7d %7d %9d %7.2f %7.1f\n",
			p.ID, p.Platform, p.Likes, p.Comments, p.Shares, p.Reach,
			p.EngagementRate, p.Score)
	}

	fmt.Printf("\nGenerated at %s\n", time.Now().Format(time.RFC3339))
}
