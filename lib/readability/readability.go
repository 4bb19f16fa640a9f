package readability

import (
	"bytes"
	"errors"
	"log"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// Extractions under this length usually mean the extractor only caught
// boilerplate.
const minReadableLength = 200

// ArticleText extracts the readable text of an article page. The readability
// algorithm runs first; when its output looks degenerate the container
// heuristic takes over.
func ArticleText(pageHTML []byte, pageURL string) (string, error) {
	parsed_url, err := url.Parse(pageURL)
	if err != nil {
		parsed_url = &url.URL{}
	}

	article, err1 := readability.FromReader(bytes.NewReader(pageHTML), parsed_url)
	if err1 == nil {
		text := normalizeText(article.TextContent)
		if len(text) >= minReadableLength {
			return text, nil
		}
		log.Println("Readability output too short, trying the container heuristic")
		err1 = errors.New("readability output too short")
	}

	text, err2 := containerText(pageHTML)
	if err2 != nil {
		log.Println("Errors in both readability AND the container heuristic")
		return "", errors.Join(err1, err2)
	}
	return text, nil
}

// containerText strips script, style, nav, footer and header elements, then
// returns the text of the most specific content container it can find:
// article, else main, else body.
func containerText(pageHTML []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(pageHTML))
	if err != nil {
		return "", err
	}
	doc.Find("script, style, nav, footer, header").Remove()

	container := doc.Find("article").First()
	if container.Length() == 0 {
		container = doc.Find("main").First()
	}
	if container.Length() == 0 {
		container = doc.Find("body").First()
	}

	text := normalizeText(container.Text())
	if text == "" {
		return "", errors.New("no article text found")
	}
	return text, nil
}

// normalizeText trims each line and drops empty ones, keeping line breaks so
// paragraph structure survives into the summarization prompt.
func normalizeText(s string) string {
	lines := strings.Split(s, "\n")
	var kept []string
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
