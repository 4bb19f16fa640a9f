package main

import (
	"context"
	"log"

	"git.nunosempere.com/NunoSempere/adsmonitor/lib/config"
	"git.nunosempere.com/NunoSempere/adsmonitor/lib/llm"
	"git.nunosempere.com/NunoSempere/adsmonitor/lib/readability"
	"git.nunosempere.com/NunoSempere/adsmonitor/lib/types"
	"git.nunosempere.com/NunoSempere/adsmonitor/lib/web"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// summarizer fetches each selected article and asks the model for bullet
// insights. Any failure along the way degrades that one article to its
// listing snippet instead of sinking the digest.
type summarizer struct {
	web     *web.Client
	model   llm.Client
	limiter *rate.Limiter
	topic   string
	budget  int
	workers int
}

func newSummarizer(cfg config.Config, webClient *web.Client, model llm.Client, limiter *rate.Limiter) *summarizer {
	return &summarizer{
		web:     webClient,
		model:   model,
		limiter: limiter,
		topic:   cfg.Topic,
		budget:  cfg.ArticleRuneBudget,
		workers: cfg.SummaryWorkers,
	}
}

// Summarize works the articles with a bounded pool and returns them in
// ranking order.
func (s *summarizer) Summarize(ctx context.Context, ranked []types.RankedCandidate) []types.SummarizedArticle {
	results := make([]types.SummarizedArticle, len(ranked))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, candidate := range ranked {
		i, candidate := i, candidate
		g.Go(func() error {
			results[i] = s.summarizeOne(gctx, candidate)
			return nil
		})
	}
	_ = g.Wait() // workers degrade per article, they never return errors
	return results
}

func (s *summarizer) summarizeOne(ctx context.Context, candidate types.RankedCandidate) types.SummarizedArticle {
	body, err := s.web.Get(ctx, candidate.URL)
	if err != nil {
		log.Printf("Article fetch failed for %s: %v", candidate.URL, err)
		return s.snippetSummary(candidate)
	}
	text, err := readability.ArticleText(body, candidate.URL)
	if err != nil {
		log.Printf("Article extraction failed for %s: %v", candidate.URL, err)
		return s.snippetSummary(candidate)
	}
	text = truncateRunes(text, s.budget)

	if s.model == nil {
		return s.snippetSummary(candidate)
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return s.snippetSummary(candidate)
	}
	summary, err := llm.SummarizeArticle(ctx, s.model, s.topic, candidate.Title, text)
	if err != nil {
		log.Printf("Summary call failed for %s: %v", candidate.URL, err)
		return s.snippetSummary(candidate)
	}
	return types.SummarizedArticle{RankedCandidate: candidate, Summary: summary}
}

// snippetSummary wraps the listing snippet as the single bullet for an
// article, with the title standing in when the listing had no snippet.
func (s *summarizer) snippetSummary(candidate types.RankedCandidate) types.SummarizedArticle {
	snippet := candidate.Snippet
	if snippet == "" {
		snippet = candidate.Title
	}
	return types.SummarizedArticle{
		RankedCandidate: candidate,
		Summary:         "• " + snippet,
		FromSnippet:     true,
	}
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
