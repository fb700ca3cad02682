package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/qinary/brandboard/internal/config"
	"github.com/qinary/brandboard/internal/content"
	"github.com/qinary/brandboard/internal/metricool"
	"github.com/qinary/brandboard/internal/models"
)

func main() {
	fmt.Println("🔍 Brandboard - Provider Connectivity Test")
	fmt.Println("==========================================")

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	provider := metricool.NewAPIClient(cfg.MetricoolAPIURL, cfg.MetricoolToken, cfg.UserID, cfg.MasterBlogID)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	fmt.Println("\n📡 Testing brand list...")
	fmt.Println(strings.Repeat("-", 40))

	brands, err := provider.FetchBrands(ctx)
	if err != nil {
		log.Fatalf("❌ ERROR fetching brands: %v", err)
	}

	now := time.Now()
	active := 0
	for _, b := range brands {
		if !b.Deleted && !b.IsDemo {
			active++
		}
	}
	fmt.Printf("✅ SUCCESS (%d brands, %d active)\n", len(brands), active)

	if active == 0 {
		fmt.Println("\n⚠️  No active brands to probe further")
		return
	}

	// Probe each platform of the first active brand
	var probe models.ProcessedBrand
	for _, b := range brands {
		if !b.Deleted && !b.IsDemo {
			probe = content.ProcessBrand(b, now)
			break
		}
	}

	fmt.Printf("\n📡 Testing post fetches for %q (%d platforms)...\n", probe.Name, len(probe.Platforms))
	fmt.Println(strings.Repeat("-", 40))

	for _, platform := range probe.Platforms {
		fmt.Printf("🔸 Testing %s... ", platform)
		posts, err := provider.FetchPlatformPosts(ctx, probe.ID, platform)
		if err != nil {
			fmt.Printf("❌ ERROR: %v\n", err)
			continue
		}
		fmt.Printf("✅ SUCCESS (%d posts)\n", len(posts))
	}

	fmt.Println("\n✅ Provider connectivity test completed!")
}
