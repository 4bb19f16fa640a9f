package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"git.nunosempere.com/NunoSempere/adsmonitor/lib/config"
	"git.nunosempere.com/NunoSempere/adsmonitor/lib/llm"
	"git.nunosempere.com/NunoSempere/adsmonitor/lib/types"
	"git.nunosempere.com/NunoSempere/adsmonitor/lib/web"
	"golang.org/x/time/rate"
)

type fakeModel struct {
	mu      sync.Mutex
	answer  string
	err     error
	prompts []string
}

func (f *fakeModel) Complete(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func (f *fakeModel) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

const articlePage = `<!DOCTYPE html>
<html>
<head><title>Smart Bidding update</title></head>
<body>
<nav>Site navigation</nav>
<article>
<h1>Smart Bidding gets seasonality controls</h1>
<p>Google Ads is rolling out seasonality adjustments for Smart Bidding so advertisers can prepare automated strategies for short sales events without retraining the bidding models from scratch.</p>
<p>The controls let accounts declare an expected conversion rate change for a date window, and bidding reacts immediately instead of learning the spike after it has already passed.</p>
</article>
<footer>Footer boilerplate</footer>
</body>
</html>`

func articleServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/missing") {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(articlePage))
	}))
	t.Cleanup(server.Close)
	return server
}

func buildSummarizer(model llm.Client, workers, budget int) *summarizer {
	cfg := config.Config{
		Topic:             "Google Ads",
		ArticleRuneBudget: budget,
		SummaryWorkers:    workers,
	}
	client := web.NewClient(5*time.Second, "test-agent")
	return newSummarizer(cfg, client, model, rate.NewLimiter(rate.Inf, 1))
}

func rankedFor(title, url, snippet string) []types.RankedCandidate {
	return []types.RankedCandidate{{
		Candidate: types.Candidate{Title: title, URL: url, Snippet: snippet},
		Score:     9,
	}}
}

func TestSummarizeHappyPath(t *testing.T) {
	server := articleServer(t)
	model := &fakeModel{answer: "• Declare conversion rate changes ahead of sales\n• Bidding reacts immediately to the window"}
	s := buildSummarizer(model, 1, 8000)

	results := s.Summarize(context.Background(), rankedFor("Smart Bidding gets seasonality controls", server.URL+"/article", "Snippet text"))

	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].FromSnippet {
		t.Error("expected a model summary, not a snippet fallback")
	}
	if results[0].Summary != model.answer {
		t.Errorf("summary = %q", results[0].Summary)
	}
	if model.calls() != 1 {
		t.Fatalf("model calls = %d, want 1", model.calls())
	}
	prompt := model.prompts[0]
	if !strings.Contains(prompt, "Article Title: Smart Bidding gets seasonality controls") {
		t.Error("prompt missing article title")
	}
	if !strings.Contains(prompt, "seasonality adjustments for Smart Bidding") {
		t.Error("prompt missing extracted article text")
	}
	if strings.Contains(prompt, "Site navigation") || strings.Contains(prompt, "Footer boilerplate") {
		t.Error("prompt contains page chrome that extraction should have dropped")
	}
}

func TestSummarizeFetchFailureUsesSnippetWithoutModelCall(t *testing.T) {
	server := articleServer(t)
	model := &fakeModel{answer: "• should not be used"}
	s := buildSummarizer(model, 1, 8000)

	results := s.Summarize(context.Background(), rankedFor("Gone article", server.URL+"/missing", "Snippet about paid search"))

	if !results[0].FromSnippet {
		t.Fatal("expected snippet fallback for failed fetch")
	}
	if results[0].Summary != "• Snippet about paid search" {
		t.Errorf("summary = %q", results[0].Summary)
	}
	if model.calls() != 0 {
		t.Errorf("model calls = %d, want 0 for a failed fetch", model.calls())
	}
}

func TestSummarizeModelFailureUsesSnippet(t *testing.T) {
	server := articleServer(t)
	model := &fakeModel{err: errors.New("rate limited")}
	s := buildSummarizer(model, 1, 8000)

	results := s.Summarize(context.Background(), rankedFor("Smart Bidding gets seasonality controls", server.URL+"/article", "Snippet about bidding"))

	if !results[0].FromSnippet {
		t.Fatal("expected snippet fallback when the model errors")
	}
	if results[0].Summary != "• Snippet about bidding" {
		t.Errorf("summary = %q", results[0].Summary)
	}
}

func TestSummarizeNoModelUsesSnippet(t *testing.T) {
	server := articleServer(t)
	s := buildSummarizer(nil, 1, 8000)

	results := s.Summarize(context.Background(), rankedFor("Smart Bidding gets seasonality controls", server.URL+"/article", "Snippet about bidding"))

	if !results[0].FromSnippet {
		t.Fatal("expected snippet fallback without a model")
	}
}

func TestSummarizeEmptySnippetFallsBackToTitle(t *testing.T) {
	server := articleServer(t)
	model := &fakeModel{err: errors.New("rate limited")}
	s := buildSummarizer(model, 1, 8000)

	results := s.Summarize(context.Background(), rankedFor("Smart Bidding gets seasonality controls", server.URL+"/article", ""))

	if results[0].Summary != "• Smart Bidding gets seasonality controls" {
		t.Errorf("summary = %q", results[0].Summary)
	}
}

func TestSummarizeMixedFetchResults(t *testing.T) {
	server := articleServer(t)
	model := &fakeModel{answer: "• Model bullet one\n• Model bullet two"}
	s := buildSummarizer(model, 1, 8000)

	ranked := []types.RankedCandidate{
		{Candidate: types.Candidate{Title: "Works A", URL: server.URL + "/a", Snippet: "snippet a"}},
		{Candidate: types.Candidate{Title: "Broken", URL: server.URL + "/missing", Snippet: "snippet b"}},
		{Candidate: types.Candidate{Title: "Works C", URL: server.URL + "/c", Snippet: "snippet c"}},
	}
	results := s.Summarize(context.Background(), ranked)

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].FromSnippet || results[0].Summary != model.answer {
		t.Errorf("results[0] = %+v, want model summary", results[0])
	}
	if !results[1].FromSnippet || results[1].Summary != "• snippet b" {
		t.Errorf("results[1] = %+v, want snippet fallback", results[1])
	}
	if results[2].FromSnippet || results[2].Summary != model.answer {
		t.Errorf("results[2] = %+v, want model summary", results[2])
	}
	// Only the two successful fetches reach the model.
	if model.calls() != 2 {
		t.Errorf("model calls = %d, want 2", model.calls())
	}
}

func TestSummarizeKeepsRankingOrder(t *testing.T) {
	server := articleServer(t)
	model := &fakeModel{err: errors.New("rate limited")}
	s := buildSummarizer(model, 3, 8000)

	ranked := []types.RankedCandidate{
		{Candidate: types.Candidate{Title: "First pick", URL: server.URL + "/missing/1", Snippet: "one"}},
		{Candidate: types.Candidate{Title: "Second pick", URL: server.URL + "/missing/2", Snippet: "two"}},
		{Candidate: types.Candidate{Title: "Third pick", URL: server.URL + "/missing/3", Snippet: "three"}},
	}
	results := s.Summarize(context.Background(), ranked)

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, want := range []string{"First pick", "Second pick", "Third pick"} {
		if results[i].Title != want {
			t.Errorf("results[%d].Title = %q, want %q", i, results[i].Title, want)
		}
	}
}

func TestSummarizeTruncatesArticleContent(t *testing.T) {
	marker := "ZZEndMarkerZZ"
	long := strings.Repeat("Google Ads seasonality news keeps coming. ", 30) + marker
	page := "<html><body><article><p>" + long + "</p></article></body></html>"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer server.Close()

	model := &fakeModel{answer: "• ok"}
	s := buildSummarizer(model, 1, 300)

	s.Summarize(context.Background(), rankedFor("Long article", server.URL+"/article", "snippet"))

	if model.calls() != 1 {
		t.Fatalf("model calls = %d, want 1", model.calls())
	}
	if strings.Contains(model.prompts[0], marker) {
		t.Error("prompt contains text past the content budget")
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := truncateRunes("hello", 10); got != "hello" {
		t.Errorf("truncateRunes short = %q", got)
	}
	if got := truncateRunes("hello", 3); got != "hel" {
		t.Errorf("truncateRunes cut = %q", got)
	}
	// Cutting must respect rune boundaries, not bytes.
	if got := truncateRunes("héllo", 2); got != "hé" {
		t.Errorf("truncateRunes multibyte = %q", got)
	}
}
