package web

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// Client wraps http.Get into a convenient handler that carries the fixed
// timeout and the browser User-Agent the listing site expects.
type Client struct {
	http      *http.Client
	userAgent string
}

func NewClient(timeout time.Duration, userAgent string) *Client {
	return &Client{
		http:      &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Printf("GET error: %v", err)
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("GET error: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("Status error: %v", resp.StatusCode)
		return nil, fmt.Errorf("http status %d for %s", resp.StatusCode, url)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("Error reading body: %v", err)
		return nil, err
	}
	return body, nil
}

/* Html cleanup functions */

// StripTags returns only the text content of an HTML fragment, whitespace
// collapsed. Script and style blocks are dropped wholly.
func StripTags(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var b bytes.Buffer

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// End of the document, or a parse error; return what we have.
			return strings.Join(strings.Fields(b.String()), " ")

		case html.StartTagToken:
			token := z.Token()
			if token.Data == "script" || token.Data == "style" {
				// Skip entire script or style block.
				findAndSkip(z, token.Data)
			}

		case html.TextToken:
			b.WriteString(z.Token().Data)
			b.WriteByte(' ')
		}
	}
}

func findAndSkip(z *html.Tokenizer, tagName string) {
	// Skip all tokens until the closing tag.
	depth := 1
	for depth > 0 {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// Unclosed block, nothing more to skip.
			return
		case html.StartTagToken:
			token := z.Token()
			if token.Data == tagName {
				depth++ // Nesting detected.
			}
		case html.EndTagToken:
			token := z.Token()
			if token.Data == tagName {
				depth-- // Closing tag found.
			}
		}
	}
}

func GetDomain(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return link
	}
	return u.Hostname()
}
