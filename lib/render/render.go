package render

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"strings"
	"time"

	"git.nunosempere.com/NunoSempere/adsmonitor/lib/types"
	"github.com/yuin/goldmark"
)

// Renderer turns summarized articles into the HTML digest email body
// plus a plain text alternative.
type Renderer struct {
	topic      string
	sourceName string
	sourceURL  string
	md         goldmark.Markdown
}

func New(topic, sourceName, sourceURL string) *Renderer {
	return &Renderer{
		topic:      topic,
		sourceName: sourceName,
		sourceURL:  sourceURL,
		md:         goldmark.New(),
	}
}

func (r *Renderer) Render(articles []types.SummarizedArticle, date time.Time) types.Digest {
	view := digestView{
		Topic:      r.topic,
		SourceName: r.sourceName,
		SourceURL:  r.sourceURL,
		Date:       date.Format("January 02, 2006"),
		Count:      len(articles),
	}
	for i, article := range articles {
		view.Articles = append(view.Articles, articleView{
			Index:       i + 1,
			Color:       accentColors[(i+1)%len(accentColors)],
			Title:       article.Title,
			SummaryHTML: r.summaryHTML(article.Summary),
			URL:         article.URL,
		})
	}

	var buf bytes.Buffer
	if err := digestTmpl.Execute(&buf, view); err != nil {
		log.Printf("Error rendering digest template: %v", err)
	}
	return types.Digest{
		HTML:        buf.String(),
		PlainText:   r.renderPlainText(articles, date),
		GeneratedAt: date,
	}
}

// summaryHTML converts model bullets to an HTML list. Goldmark leaves raw
// HTML out of its output, so tags smuggled into a summary never reach the
// email live.
func (r *Renderer) summaryHTML(summary string) template.HTML {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(bulletsToMarkdown(summary)), &buf); err != nil {
		log.Printf("Error converting summary markdown: %v", err)
		return template.HTML("<p>" + template.HTMLEscapeString(summary) + "</p>")
	}
	return template.HTML(buf.String())
}

// bulletsToMarkdown normalizes the bullet styles models actually emit
// (•, -, *) into markdown list items. Lines without a bullet marker
// become standalone paragraphs.
func bulletsToMarkdown(summary string) string {
	var out []string
	for _, line := range strings.Split(summary, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "•"):
			out = append(out, "- "+strings.TrimSpace(strings.TrimPrefix(line, "•")))
		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
			out = append(out, "- "+strings.TrimSpace(line[2:]))
		default:
			out = append(out, "", line, "")
		}
	}
	return strings.Join(out, "\n")
}

func (r *Renderer) renderPlainText(articles []types.SummarizedArticle, date time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎯 Your Daily %s Digest\n", r.topic)
	fmt.Fprintf(&b, "Top %d Articles from %s\n", len(articles), r.sourceName)
	fmt.Fprintf(&b, "%s\n\n", date.Format("January 02, 2006"))
	for i, article := range articles {
		fmt.Fprintf(&b, "ARTICLE %d: %s\n", i+1, article.Title)
		for _, line := range strings.Split(article.Summary, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			fmt.Fprintf(&b, "  %s\n", line)
		}
		fmt.Fprintf(&b, "  Read: %s\n\n", article.URL)
	}
	fmt.Fprintf(&b, "🤖 Powered by AI Article Monitor. Source: %s\n", r.sourceURL)
	return b.String()
}
