package scrape

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"git.nunosempere.com/NunoSempere/adsmonitor/lib/types"
	"git.nunosempere.com/NunoSempere/adsmonitor/lib/web"
)

// Source produces listing candidates for one site. Implementations must
// preserve the listing's own ordering.
type Source interface {
	Fetch(ctx context.Context) ([]types.Candidate, error)
}

// ArticleListing scrapes candidates from the site's HTML front page.
type ArticleListing struct {
	client *web.Client
	url    string
	max    int
}

func NewArticleListing(client *web.Client, listingURL string, maxArticles int) *ArticleListing {
	return &ArticleListing{client: client, url: listingURL, max: maxArticles}
}

func (l *ArticleListing) Fetch(ctx context.Context) ([]types.Candidate, error) {
	body, err := l.client.Get(ctx, l.url)
	if err != nil {
		return nil, fmt.Errorf("fetching listing %s: %w", l.url, err)
	}
	candidates, err := ParseListing(body, l.url, l.max)
	if err != nil {
		return nil, err
	}
	log.Printf("Found %d articles on %s", len(candidates), web.GetDomain(l.url))
	return candidates, nil
}

// ParseListing extracts up to maxArticles candidates from listing HTML.
// Title comes from the first h2/h3/h4 inside an article element, the link
// from an anchor in that heading or anywhere in the element, the snippet
// from the first paragraph or an excerpt/description div. Elements missing
// title or link are skipped silently.
func ParseListing(body []byte, baseURL string, maxArticles int) ([]types.Candidate, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing listing html: %w", err)
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing listing url %q: %w", baseURL, err)
	}

	var candidates []types.Candidate
	doc.Find("article").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if len(candidates) >= maxArticles {
			return false
		}

		heading := s.Find("h2, h3, h4").First()
		if heading.Length() == 0 {
			return true
		}
		title := collapseSpace(heading.Text())
		if title == "" {
			return true
		}

		href, ok := heading.Find("a[href]").First().Attr("href")
		if !ok {
			href, ok = s.Find("a[href]").First().Attr("href")
		}
		if !ok {
			return true
		}
		link := resolveURL(base, href)
		if link == "" {
			return true
		}

		snippet := s.Find("p").First()
		if snippet.Length() == 0 {
			snippet = s.Find("div.excerpt, div.description").First()
		}

		candidates = append(candidates, types.Candidate{
			Title:   title,
			URL:     link,
			Snippet: collapseSpace(snippet.Text()),
		})
		return true
	})

	return candidates, nil
}

// resolveURL absolutizes a listing href. Anything that does not end up as
// http(s) is rejected.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	abs := base.ResolveReference(ref)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return ""
	}
	return abs.String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
