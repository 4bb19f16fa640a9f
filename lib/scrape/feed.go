package scrape

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/mmcdole/gofeed"

	"git.nunosempere.com/NunoSempere/adsmonitor/lib/types"
	"git.nunosempere.com/NunoSempere/adsmonitor/lib/web"
)

// FeedListing reads the site's RSS feed instead of scraping its front page.
// The heuristics in ArticleListing break when the site redesigns; the feed
// is the stable escape hatch.
type FeedListing struct {
	client *web.Client
	parser *gofeed.Parser
	url    string
	max    int
}

func NewFeedListing(client *web.Client, feedURL string, maxArticles int) *FeedListing {
	return &FeedListing{
		client: client,
		parser: gofeed.NewParser(),
		url:    feedURL,
		max:    maxArticles,
	}
}

func (f *FeedListing) Fetch(ctx context.Context) ([]types.Candidate, error) {
	body, err := f.client.Get(ctx, f.url)
	if err != nil {
		return nil, fmt.Errorf("fetching feed %s: %w", f.url, err)
	}
	feed, err := f.parser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing feed %s: %w", f.url, err)
	}

	var candidates []types.Candidate
	for _, item := range feed.Items {
		if len(candidates) >= f.max {
			break
		}
		if item == nil {
			continue
		}
		title := collapseSpace(item.Title)
		link := strings.TrimSpace(item.Link)
		if title == "" || link == "" {
			continue
		}
		snippet := item.Description
		if snippet == "" {
			snippet = item.Content
		}
		candidates = append(candidates, types.Candidate{
			Title:   title,
			URL:     link,
			Snippet: web.StripTags(snippet),
		})
	}
	log.Printf("Found %d articles in feed %s", len(candidates), f.url)
	return candidates, nil
}
