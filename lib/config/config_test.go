package config

import (
	"reflect"
	"testing"
	"time"
)

// clearEnv blanks every variable FromEnv reads so ambient shell state cannot
// leak into the assertions.
func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"LISTING_URL", "LISTING_SOURCE", "LISTING_FEED_URL", "SOURCE_NAME",
		"TOPIC", "TOPIC_HINT", "TOPIC_KEYWORDS", "USER_AGENT", "HTTP_TIMEOUT",
		"MAX_LISTING_ARTICLES", "RANK_INPUT_ARTICLES", "TOP_ARTICLES",
		"ARTICLE_CHAR_BUDGET", "MODEL_CALL_INTERVAL", "SUMMARY_WORKERS",
		"LLM_PROVIDER", "LLM_API_KEY", "GEMINI_API_KEY", "LLM_MODEL", "LLM_BASE_URL",
		"SMTP_HOST", "SMTP_PORT", "GMAIL_ADDRESS", "GMAIL_APP_PASSWORD",
		"RECIPIENT_EMAIL", "LOG_PATH", "LOG_LEVEL",
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	c := FromEnv()

	if c.ListingURL != DefaultListingURL {
		t.Errorf("ListingURL = %q, want %q", c.ListingURL, DefaultListingURL)
	}
	if c.ListingSource != "html" {
		t.Errorf("ListingSource = %q, want html", c.ListingSource)
	}
	if c.HTTPTimeout != DefaultHTTPTimeout {
		t.Errorf("HTTPTimeout = %v, want %v", c.HTTPTimeout, DefaultHTTPTimeout)
	}
	if !reflect.DeepEqual(c.Keywords, DefaultKeywords) {
		t.Errorf("Keywords = %v, want defaults", c.Keywords)
	}
	if c.LLMAPIKey != PlaceholderAPIKey {
		t.Errorf("LLMAPIKey = %q, want placeholder", c.LLMAPIKey)
	}
	if c.FromAddress != PlaceholderAddress {
		t.Errorf("FromAddress = %q, want placeholder", c.FromAddress)
	}
	if c.Recipient != PlaceholderAddress {
		t.Errorf("Recipient should fall back to the sender address, got %q", c.Recipient)
	}
	if c.MaxListing != DefaultMaxListing || c.RankInput != DefaultRankInput || c.TopN != DefaultTopN {
		t.Errorf("listing caps = %d/%d/%d, want %d/%d/%d",
			c.MaxListing, c.RankInput, c.TopN, DefaultMaxListing, DefaultRankInput, DefaultTopN)
	}
	if c.SummaryWorkers != 1 {
		t.Errorf("SummaryWorkers = %d, want 1", c.SummaryWorkers)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LISTING_URL", "https://example.com/news/")
	t.Setenv("TOPIC", "Bing Ads")
	t.Setenv("TOPIC_KEYWORDS", " bing ads , microsoft advertising ,")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("GMAIL_ADDRESS", "digest@example.com")
	t.Setenv("RECIPIENT_EMAIL", "boss@example.com")
	t.Setenv("SUMMARY_WORKERS", "4")

	c := FromEnv()
	if c.ListingURL != "https://example.com/news/" {
		t.Errorf("ListingURL = %q", c.ListingURL)
	}
	if c.Topic != "Bing Ads" {
		t.Errorf("Topic = %q", c.Topic)
	}
	want := []string{"bing ads", "microsoft advertising"}
	if !reflect.DeepEqual(c.Keywords, want) {
		t.Errorf("Keywords = %v, want %v", c.Keywords, want)
	}
	if c.HTTPTimeout != 3*time.Second {
		t.Errorf("HTTPTimeout = %v, want 3s", c.HTTPTimeout)
	}
	if c.SMTPPort != 2525 {
		t.Errorf("SMTPPort = %d, want 2525", c.SMTPPort)
	}
	if c.Recipient != "boss@example.com" {
		t.Errorf("Recipient = %q", c.Recipient)
	}
	if c.SummaryWorkers != 4 {
		t.Errorf("SummaryWorkers = %d, want 4", c.SummaryWorkers)
	}
}

func TestFromEnvMalformedNumbersKeepDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("SMTP_PORT", "not-a-port")
	t.Setenv("HTTP_TIMEOUT", "soon")
	t.Setenv("SUMMARY_WORKERS", "0")

	c := FromEnv()
	if c.SMTPPort != DefaultSMTPPort {
		t.Errorf("SMTPPort = %d, want default %d", c.SMTPPort, DefaultSMTPPort)
	}
	if c.HTTPTimeout != DefaultHTTPTimeout {
		t.Errorf("HTTPTimeout = %v, want default %v", c.HTTPTimeout, DefaultHTTPTimeout)
	}
	if c.SummaryWorkers != 1 {
		t.Errorf("SummaryWorkers = %d, want clamped to 1", c.SummaryWorkers)
	}
}

func TestFromEnvAPIKeyPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	c := FromEnv()
	if c.LLMAPIKey != "gemini-key" {
		t.Errorf("LLMAPIKey = %q, want gemini-key", c.LLMAPIKey)
	}

	t.Setenv("LLM_API_KEY", "generic-key")
	c = FromEnv()
	if c.LLMAPIKey != "generic-key" {
		t.Errorf("LLM_API_KEY should win over GEMINI_API_KEY, got %q", c.LLMAPIKey)
	}
}
