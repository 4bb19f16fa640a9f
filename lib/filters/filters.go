package filters

import (
	"log"
	"strings"

	"github.com/adrg/strutil/metrics"

	"git.nunosempere.com/NunoSempere/adsmonitor/lib/types"
)

// CleanTitle0 removes text after a specific marker if it appears after a minimum length
func CleanTitle0(s string, endingMarker string) string {
	// endingMarkers: "-", "|"
	result := s

	// Only crop if the title is long enough to be meaningful after cropping
	minLengthBeforeMarker := 15 // Ensure we have a meaningful title

	if pos := strings.Index(s, endingMarker); pos != -1 && pos >= minLengthBeforeMarker {
		result = s[:pos]
	}

	return result
}

// CleanTitle applies multiple cleaning operations to a title
func CleanTitle(s string) string {
	s2 := CleanTitle0(s, " – ")
	s3 := CleanTitle0(s2, " - ")
	s4 := CleanTitle0(s3, "|")
	s5 := strings.TrimSpace(s4)
	return s5
}

// isTitleSimilar checks if two titles are similar using Hamming distance
func isTitleSimilar(title1, title2 string) bool {
	// If titles are too different in length, they're probably not similar
	lenDiff := abs(len(title1) - len(title2))
	if lenDiff > 10 {
		return false
	}

	// Use Hamming distance for titles with similar length
	minLength := min(len(title1), len(title2))
	if minLength > 20 {
		hamming := metrics.NewHamming()
		// Compare the first 30 chars or the minimum length
		compareLength := min(30, minLength)
		distance := hamming.Distance(title1[:compareLength], title2[:compareLength])

		// If the distance is small enough, consider them similar
		return distance <= 5
	}

	return false
}

// CollapseNearDuplicates drops listing entries whose cleaned titles match an
// earlier entry, exactly or by similarity. Front pages tend to feature the
// same story twice. First occurrence wins, order is preserved.
func CollapseNearDuplicates(candidates []types.Candidate) []types.Candidate {
	var kept []types.Candidate
	var seenTitles []string

	for _, candidate := range candidates {
		cleaned := CleanTitle(candidate.Title)
		is_dupe := false
		for _, previous := range seenTitles {
			if strings.EqualFold(cleaned, previous) || isTitleSimilar(cleaned, previous) {
				is_dupe = true
				break
			}
		}
		if is_dupe {
			log.Printf("Skipping near-duplicate listing entry: %v", candidate.Title)
			continue
		}
		seenTitles = append(seenTitles, cleaned)
		kept = append(kept, candidate)
	}
	return kept
}

// KeywordSelect is the ranking fallback: case-insensitive substring match of
// any keyword against title plus snippet. Returns the first maxResults
// matches in listing order, with no scores attached.
func KeywordSelect(candidates []types.Candidate, keywords []string, maxResults int) []types.RankedCandidate {
	var selected []types.RankedCandidate
	for _, candidate := range candidates {
		if len(selected) >= maxResults {
			break
		}
		haystack := strings.ToLower(candidate.Title + " " + candidate.Snippet)
		for _, keyword := range keywords {
			keyword = strings.ToLower(strings.TrimSpace(keyword))
			if keyword == "" {
				continue
			}
			if strings.Contains(haystack, keyword) {
				selected = append(selected, types.RankedCandidate{Candidate: candidate})
				break
			}
		}
	}
	return selected
}

// Helper functions
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
