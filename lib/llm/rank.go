package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"git.nunosempere.com/NunoSempere/adsmonitor/lib/types"
)

// jsonArrayRe grabs the first JSON-array-shaped span of a model answer.
// Answers tend to arrive wrapped in prose or markdown fences.
var jsonArrayRe = regexp.MustCompile(`(?s)\[.*\]`)

type rankEntry struct {
	Number int    `json:"number"`
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

// RankPrompt enumerates the candidates with 1-based indices and asks for the
// top picks as a JSON array of {number, score, reason} objects.
func RankPrompt(topic, topicHint, siteName string, candidates []types.Candidate, top int) string {
	var b strings.Builder

	topicLabel := topic
	if topicHint != "" {
		topicLabel = fmt.Sprintf("%s (%s)", topic, topicHint)
	}
	fmt.Fprintf(&b, "Analyze these articles from %s and identify which ones are most relevant to %s.\n\nArticles:\n", siteName, topicLabel)
	for i, candidate := range candidates {
		fmt.Fprintf(&b, "\n%d. TITLE: %s\n   SNIPPET: %s\n", i+1, candidate.Title, candidate.Snippet)
	}
	fmt.Fprintf(&b, "\nFor each article, rate its relevance to %s on a scale of 0-10:\n", topic)
	fmt.Fprintf(&b, "- 10 = Directly about %s features, updates, strategies, or news\n", topic)
	fmt.Fprintf(&b, "- 7-9 = Heavily related to %s\n", topic)
	fmt.Fprintf(&b, "- 4-6 = Mentions %s but focuses on other topics\n", topic)
	fmt.Fprintf(&b, "- 0-3 = Not relevant to %s\n", topic)
	fmt.Fprintf(&b, "\nReturn ONLY a JSON array with the top %d most relevant articles in this exact format:\n", top)
	b.WriteString("[\n  {\"number\": 1, \"score\": 10, \"reason\": \"Brief reason\"},\n  {\"number\": 5, \"score\": 9, \"reason\": \"Brief reason\"},\n  {\"number\": 3, \"score\": 8, \"reason\": \"Brief reason\"}\n]")

	return b.String()
}

// ParseRanking pulls the first JSON array out of a ranking answer and
// resolves its 1-based entries against the candidate list the prompt was
// built from. Out-of-range and repeated numbers are dropped, scores are
// clamped to 0-10, and at most top entries survive, in the model's order.
func ParseRanking(answer string, candidates []types.Candidate, top int) ([]types.RankedCandidate, error) {
	raw := jsonArrayRe.FindString(answer)
	if raw == "" {
		return nil, errors.New("no json array in ranking answer")
	}

	var entries []rankEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		log.Printf("Error unmarshalling json: %v", err)
		log.Printf("String was: %v", raw)
		return nil, err
	}

	var ranked []types.RankedCandidate
	seen := make(map[int]bool)
	for _, entry := range entries {
		if len(ranked) >= top {
			break
		}
		if entry.Number < 1 || entry.Number > len(candidates) {
			log.Printf("Dropping out-of-range ranking entry: %d", entry.Number)
			continue
		}
		if seen[entry.Number] {
			continue
		}
		seen[entry.Number] = true

		score := entry.Score
		if score < 0 {
			score = 0
		}
		if score > 10 {
			score = 10
		}
		ranked = append(ranked, types.RankedCandidate{
			Candidate: candidates[entry.Number-1],
			Score:     score,
			Reason:    strings.TrimSpace(entry.Reason),
		})
	}
	if len(ranked) == 0 {
		return nil, errors.New("ranking answer had no usable entries")
	}
	return ranked, nil
}

// RankCandidates asks the model to score the candidates and returns the top
// selections. An error here means the caller should fall back to keywords.
func RankCandidates(ctx context.Context, client Client, topic, topicHint, siteName string, candidates []types.Candidate, top int) ([]types.RankedCandidate, error) {
	if len(candidates) == 0 {
		return nil, errors.New("no candidates to rank")
	}
	answer, err := client.Complete(ctx, RankPrompt(topic, topicHint, siteName, candidates, top))
	if err != nil {
		return nil, fmt.Errorf("ranking call failed: %w", err)
	}
	return ParseRanking(answer, candidates, top)
}
