package types

import "time"

// Candidate is one article-like entry from the listing page.
type Candidate struct {
	Title   string
	URL     string
	Snippet string
}

// RankedCandidate is a candidate picked for the digest. Score runs 0-10 when
// the model did the picking; the keyword fallback leaves Score at 0 and
// Reason empty.
type RankedCandidate struct {
	Candidate
	Score  int
	Reason string
}

// SummarizedArticle carries the digest body for one candidate. FromSnippet
// marks summaries that degraded to the listing snippet.
type SummarizedArticle struct {
	RankedCandidate
	Summary     string
	FromSnippet bool
}

// Digest is the rendered artifact, both MIME alternatives of it.
type Digest struct {
	HTML        string
	PlainText   string
	GeneratedAt time.Time
}

type SelectionMethod int

const (
	SelectedNone SelectionMethod = iota
	SelectedByModel
	SelectedByKeywords
)

func (m SelectionMethod) String() string {
	switch m {
	case SelectedByModel:
		return "model"
	case SelectedByKeywords:
		return "keywords"
	default:
		return "none"
	}
}

type Outcome int

const (
	OutcomeDelivered Outcome = iota
	OutcomeDeliveryFailed
	OutcomeNoCandidates
	OutcomeNoRelevant
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDelivered:
		return "delivered"
	case OutcomeDeliveryFailed:
		return "delivery failed"
	case OutcomeNoCandidates:
		return "no candidates"
	case OutcomeNoRelevant:
		return "no relevant candidates"
	default:
		return "unknown"
	}
}

// ExitCode maps an outcome to the process exit status, so cron wrappers can
// tell "site was quiet" from "mail bounced".
func (o Outcome) ExitCode() int {
	switch o {
	case OutcomeDelivered:
		return 0
	case OutcomeNoCandidates:
		return 2
	case OutcomeNoRelevant:
		return 3
	default:
		return 1
	}
}

// RunReport is what one digest run hands back to main.
type RunReport struct {
	Outcome          Outcome
	CandidateCount   int
	SelectedCount    int
	Method           SelectionMethod
	SnippetFallbacks int
	RankErr          error
	DeliveryErr      error
}
