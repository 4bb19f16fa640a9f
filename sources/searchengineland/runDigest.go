package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"git.nunosempere.com/NunoSempere/adsmonitor/lib/config"
	"git.nunosempere.com/NunoSempere/adsmonitor/lib/filters"
	"git.nunosempere.com/NunoSempere/adsmonitor/lib/llm"
	"git.nunosempere.com/NunoSempere/adsmonitor/lib/mail"
	"git.nunosempere.com/NunoSempere/adsmonitor/lib/render"
	"git.nunosempere.com/NunoSempere/adsmonitor/lib/scrape"
	"git.nunosempere.com/NunoSempere/adsmonitor/lib/types"
	"git.nunosempere.com/NunoSempere/adsmonitor/lib/web"
	"golang.org/x/time/rate"
)

// Stage seams. The real components satisfy these, tests swap in fakes.
type candidateRanker interface {
	Rank(ctx context.Context, candidates []types.Candidate, top int) ([]types.RankedCandidate, error)
}

type articleSummarizer interface {
	Summarize(ctx context.Context, ranked []types.RankedCandidate) []types.SummarizedArticle
}

type digestSender interface {
	Send(ctx context.Context, digest types.Digest) error
}

type pipeline struct {
	cfg        config.Config
	listing    scrape.Source
	ranker     candidateRanker
	summarizer articleSummarizer
	renderer   *render.Renderer
	sender     digestSender
	now        func() time.Time
}

// run executes one digest cycle: fetch, dedupe, select, summarize, render,
// deliver. It always comes back with a report, never a panic or a bare error.
func (p *pipeline) run(ctx context.Context) types.RunReport {
	var report types.RunReport

	candidates, err := p.listing.Fetch(ctx)
	if err != nil {
		log.Printf("Listing fetch failed: %v", err)
	}
	candidates = filters.CollapseNearDuplicates(candidates)
	report.CandidateCount = len(candidates)
	if len(candidates) == 0 {
		report.Outcome = types.OutcomeNoCandidates
		return report
	}

	selected, method, rankErr := p.selectRelevant(ctx, candidates)
	report.Method = method
	report.RankErr = rankErr
	report.SelectedCount = len(selected)
	if len(selected) == 0 {
		report.Outcome = types.OutcomeNoRelevant
		return report
	}

	articles := p.summarizer.Summarize(ctx, selected)
	for _, article := range articles {
		if article.FromSnippet {
			report.SnippetFallbacks++
		}
	}

	digest := p.renderer.Render(articles, p.now())
	if err := p.sender.Send(ctx, digest); err != nil {
		log.Printf("Digest delivery failed: %v", err)
		report.Outcome = types.OutcomeDeliveryFailed
		report.DeliveryErr = err
		return report
	}
	report.Outcome = types.OutcomeDelivered
	return report
}

// selectRelevant asks the model to rank the first RankInput candidates. When
// that yields nothing the keyword fallback scans the whole batch, not just
// the capped prompt window.
func (p *pipeline) selectRelevant(ctx context.Context, candidates []types.Candidate) ([]types.RankedCandidate, types.SelectionMethod, error) {
	input := candidates
	if len(input) > p.cfg.RankInput {
		input = input[:p.cfg.RankInput]
	}
	ranked, err := p.ranker.Rank(ctx, input, p.cfg.TopN)
	if err == nil && len(ranked) > 0 {
		return ranked, types.SelectedByModel, nil
	}
	if err != nil {
		log.Printf("Model ranking unavailable, falling back to keywords: %v", err)
	}
	fallback := filters.KeywordSelect(candidates, p.cfg.Keywords, p.cfg.TopN)
	if len(fallback) == 0 {
		return nil, types.SelectedNone, err
	}
	return fallback, types.SelectedByKeywords, err
}

// modelRanker throttles completion calls and delegates to the llm package.
type modelRanker struct {
	client    llm.Client
	limiter   *rate.Limiter
	topic     string
	topicHint string
	siteName  string
}

func (r *modelRanker) Rank(ctx context.Context, candidates []types.Candidate, top int) ([]types.RankedCandidate, error) {
	if r.client == nil {
		return nil, fmt.Errorf("no llm client configured")
	}
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return llm.RankCandidates(ctx, r.client, r.topic, r.topicHint, r.siteName, candidates, top)
}

// fileSender writes the digest HTML to disk instead of mailing it, for
// -dry-run. The path "-" means stdout.
type fileSender struct {
	path string
}

func (f *fileSender) Send(ctx context.Context, digest types.Digest) error {
	if f.path == "-" {
		if _, err := os.Stdout.WriteString(digest.HTML); err != nil {
			return fmt.Errorf("writing digest to stdout: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(f.path, []byte(digest.HTML), 0644); err != nil {
		return fmt.Errorf("writing digest to %s: %w", f.path, err)
	}
	log.Printf("Dry run: wrote digest HTML to %s", f.path)
	return nil
}

// runDigest wires the production pipeline from configuration and runs it
// once.
func runDigest(ctx context.Context, cfg config.Config, dryRun bool, outPath string) types.RunReport {
	client := web.NewClient(cfg.HTTPTimeout, cfg.UserAgent)

	var listing scrape.Source
	if cfg.ListingSource == "rss" {
		listing = scrape.NewFeedListing(client, cfg.FeedURL, cfg.MaxListing)
	} else {
		listing = scrape.NewArticleListing(client, cfg.ListingURL, cfg.MaxListing)
	}

	limiter := rate.NewLimiter(rate.Every(cfg.ModelInterval), 1)
	model, err := llm.NewClient(llm.Settings{
		Provider: cfg.LLMProvider,
		APIKey:   cfg.LLMAPIKey,
		Model:    cfg.LLMModel,
		BaseURL:  cfg.LLMBaseURL,
	})
	if err != nil {
		// Keyword ranking and snippet summaries still work without a model.
		log.Printf("LLM client unavailable: %v", err)
	}

	var sender digestSender
	if dryRun {
		sender = &fileSender{path: outPath}
	} else {
		sender = mail.NewSender(mail.Settings{
			Host:      cfg.SMTPHost,
			Port:      cfg.SMTPPort,
			Address:   cfg.FromAddress,
			Password:  cfg.Password,
			Recipient: cfg.Recipient,
		}, cfg.Topic)
	}

	p := &pipeline{
		cfg:     cfg,
		listing: listing,
		ranker: &modelRanker{
			client:    model,
			limiter:   limiter,
			topic:     cfg.Topic,
			topicHint: cfg.TopicHint,
			siteName:  cfg.SourceName,
		},
		summarizer: newSummarizer(cfg, client, model, limiter),
		renderer:   render.New(cfg.Topic, cfg.SourceName, cfg.ListingURL),
		sender:     sender,
		now:        time.Now,
	}
	return p.run(ctx)
}
