package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Defaults tuned for the Search Engine Land digest. Everything here can be
// overridden through the environment, see FromEnv.
const (
	DefaultListingURL  = "https://searchengineland.com/"
	DefaultFeedURL     = "https://searchengineland.com/feed"
	DefaultSourceName  = "Search Engine Land"
	DefaultTopic       = "Google Ads"
	DefaultTopicHint   = "PPC, paid search, Google advertising"
	DefaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	DefaultHTTPTimeout = 10 * time.Second

	DefaultMaxListing        = 30
	DefaultRankInput         = 20
	DefaultTopN              = 3
	DefaultArticleRuneBudget = 8000
	DefaultModelInterval     = time.Second
	DefaultSummaryWorkers    = 1

	DefaultSMTPHost = "smtp.gmail.com"
	DefaultSMTPPort = 587

	// Placeholder secrets. A run with these still starts, fetches and ranks
	// by keyword, then fails at the provider boundary instead of at startup.
	PlaceholderAPIKey   = "your_llm_api_key_here"
	PlaceholderAddress  = "your_email@gmail.com"
	PlaceholderPassword = "your_16_char_app_password"
)

// DefaultKeywords feed the ranking fallback when the model is unavailable.
var DefaultKeywords = []string{"google ads", "google advertising", "ppc", "paid search", "google adwords"}

type Config struct {
	ListingURL    string
	ListingSource string // html or rss
	FeedURL       string
	SourceName    string
	Topic         string
	TopicHint     string
	Keywords      []string
	UserAgent     string
	HTTPTimeout   time.Duration

	MaxListing        int
	RankInput         int
	TopN              int
	ArticleRuneBudget int
	ModelInterval     time.Duration
	SummaryWorkers    int

	LLMProvider string
	LLMAPIKey   string
	LLMModel    string
	LLMBaseURL  string

	SMTPHost    string
	SMTPPort    int
	FromAddress string
	Password    string
	Recipient   string

	LogPath  string
	LogLevel string
}

// FromEnv builds the run configuration from the environment. It never fails:
// unset variables get defaults or placeholders, malformed numbers keep the
// default.
func FromEnv() Config {
	c := Config{
		ListingURL:    getenv("LISTING_URL", DefaultListingURL),
		ListingSource: getenv("LISTING_SOURCE", "html"),
		FeedURL:       getenv("LISTING_FEED_URL", DefaultFeedURL),
		SourceName:    getenv("SOURCE_NAME", DefaultSourceName),
		Topic:         getenv("TOPIC", DefaultTopic),
		TopicHint:     getenv("TOPIC_HINT", DefaultTopicHint),
		Keywords:      splitKeywords(os.Getenv("TOPIC_KEYWORDS")),
		UserAgent:     getenv("USER_AGENT", DefaultUserAgent),
		HTTPTimeout:   getenvDuration("HTTP_TIMEOUT", DefaultHTTPTimeout),

		MaxListing:        getenvInt("MAX_LISTING_ARTICLES", DefaultMaxListing),
		RankInput:         getenvInt("RANK_INPUT_ARTICLES", DefaultRankInput),
		TopN:              getenvInt("TOP_ARTICLES", DefaultTopN),
		ArticleRuneBudget: getenvInt("ARTICLE_CHAR_BUDGET", DefaultArticleRuneBudget),
		ModelInterval:     getenvDuration("MODEL_CALL_INTERVAL", DefaultModelInterval),
		SummaryWorkers:    getenvInt("SUMMARY_WORKERS", DefaultSummaryWorkers),

		LLMProvider: getenv("LLM_PROVIDER", "gemini"),
		LLMAPIKey:   getenv("GEMINI_API_KEY", PlaceholderAPIKey),
		LLMModel:    os.Getenv("LLM_MODEL"),
		LLMBaseURL:  os.Getenv("LLM_BASE_URL"),

		SMTPHost:    getenv("SMTP_HOST", DefaultSMTPHost),
		SMTPPort:    getenvInt("SMTP_PORT", DefaultSMTPPort),
		FromAddress: getenv("GMAIL_ADDRESS", PlaceholderAddress),
		Password:    getenv("GMAIL_APP_PASSWORD", PlaceholderPassword),
		Recipient:   os.Getenv("RECIPIENT_EMAIL"),

		LogPath:  os.Getenv("LOG_PATH"),
		LogLevel: getenv("LOG_LEVEL", "INFO"),
	}

	// LLM_API_KEY wins over the provider-specific name when both are set.
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.LLMAPIKey = v
	}
	if c.Recipient == "" {
		c.Recipient = c.FromAddress
	}
	if c.SummaryWorkers < 1 {
		c.SummaryWorkers = 1
	}
	if c.TopN < 1 {
		c.TopN = DefaultTopN
	}
	return c
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

// splitKeywords parses a comma-separated keyword list, keeping the default
// set when the variable is empty.
func splitKeywords(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return append([]string(nil), DefaultKeywords...)
	}
	var keywords []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			keywords = append(keywords, part)
		}
	}
	if len(keywords) == 0 {
		return append([]string(nil), DefaultKeywords...)
	}
	return keywords
}
