package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"git.nunosempere.com/NunoSempere/adsmonitor/lib/config"
	"git.nunosempere.com/NunoSempere/adsmonitor/lib/logger"
)

// Helper function to get environment variable with default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func main() {
	envFile := flag.String("env-file", ".env", "path to the env file with credentials")
	dryRun := flag.Bool("dry-run", false, "write the digest HTML to a file instead of sending email")
	outPath := flag.String("out", "digest.html", "output path for -dry-run")
	verbose := flag.Bool("v", false, "log at DEBUG level")
	flag.Parse()

	// Credentials usually live in an env file next to the binary, but a
	// plain environment (cron, containers) works too.
	if err := godotenv.Load(*envFile); err != nil {
		log.Printf("No env file at %s, relying on the environment", *envFile)
	}

	cfg := config.FromEnv()
	if *verbose {
		cfg.LogLevel = "DEBUG"
	}

	maxSize, _ := strconv.Atoi(getEnvWithDefault("LOG_MAX_SIZE", "10"))
	maxBackups, _ := strconv.Atoi(getEnvWithDefault("LOG_MAX_BACKUPS", "5"))
	maxAge, _ := strconv.Atoi(getEnvWithDefault("LOG_MAX_AGE", "30"))
	minLevel := logger.GetLogLevelFromString(cfg.LogLevel)

	lg, err := logger.NewLogger("SEARCHENGINELAND", cfg.LogPath, maxSize, maxBackups, maxAge, minLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	// Route plain log.Printf output from the lib packages into the same sink.
	log.SetOutput(lg.Writer())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lg.Info("Starting %s digest run against %s", cfg.Topic, cfg.ListingURL)
	report := runDigest(ctx, cfg, *dryRun, *outPath)
	lg.Info("Run finished: %s (candidates=%v selected=%v method=%s snippet_fallbacks=%v)",
		report.Outcome, report.CandidateCount, report.SelectedCount, report.Method, report.SnippetFallbacks)

	stop()
	os.Exit(report.Outcome.ExitCode())
}
