package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// SummarizePrompt asks for 3-4 digest bullets over the article text.
func SummarizePrompt(topic, title, content string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Summarize this article about %s in 3-4 concise bullet points. Focus on:\n", topic)
	fmt.Fprintf(&b, "- Key takeaways for %s marketers\n", topic)
	b.WriteString("- Important updates or changes\n")
	b.WriteString("- Actionable insights\n\n")
	fmt.Fprintf(&b, "Article Title: %s\n\n", title)
	fmt.Fprintf(&b, "Article Content:\n%s\n\n", content)
	b.WriteString("Provide a summary in bullet points (use • symbol).")
	return b.String()
}

// SummarizeArticle returns the model's bullet-point summary of one article.
func SummarizeArticle(ctx context.Context, client Client, topic, title, content string) (string, error) {
	answer, err := client.Complete(ctx, SummarizePrompt(topic, title, content))
	if err != nil {
		return "", fmt.Errorf("summary call failed: %w", err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", errors.New("empty summary answer")
	}
	return answer, nil
}
