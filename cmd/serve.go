package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/alokemajumder/privacyhub-sub000/config"
	"github.com/alokemajumder/privacyhub-sub000/internal/analysis"
	"github.com/alokemajumder/privacyhub-sub000/internal/api"
	"github.com/alokemajumder/privacyhub-sub000/internal/cloudflare"
	"github.com/alokemajumder/privacyhub-sub000/internal/fetch"
	"github.com/alokemajumder/privacyhub-sub000/internal/firecrawl"
	"github.com/alokemajumder/privacyhub-sub000/internal/keyhealth"
	"github.com/alokemajumder/privacyhub-sub000/internal/openrouter"
	"github.com/alokemajumder/privacyhub-sub000/internal/scoring"
	"github.com/alokemajumder/privacyhub-sub000/internal/slack"
)

// serveCmd is the cobra command that starts the privacyhub API server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the privacyhub api server",
	Run: func(cmd *cobra.Command, _ []string) {
		err := serve(cmd.Context())
		cobra.CheckErr(err)
	},
}

// init registers the serve command on the root command
func init() {
	rootCmd.AddCommand(serveCmd)
}

// serve initializes dependencies and starts the privacyhub API server
func serve(ctx context.Context) error {
	cfg := config.New()
	cfg.DevMode = cfg.DevMode || k.Bool("debug")

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	scorer, keyCache, err := setupScoring(cfg)
	if err != nil {
		return fmt.Errorf("setting up scoring: %w", err)
	}

	fetcher, err := setupFetcher(cfg)
	if err != nil {
		return fmt.Errorf("setting up content retrieval: %w", err)
	}

	analyzerOpts := []analysis.AnalyzerOption{}
	if notifier := setupSlack(cfg); notifier != nil {
		analyzerOpts = append(analyzerOpts, analysis.WithNotifier(notifier))
	}

	analyzer, err := analysis.NewAnalyzer(fetch.NewDiscoverer(), fetcher, scorer, analyzerOpts...)
	if err != nil {
		return fmt.Errorf("setting up analyzer: %w", err)
	}

	handler := api.NewRouter(api.NewHandler(analyzer,
		api.WithCreditReporter(keyCache),
		api.WithDevMode(cfg.DevMode),
	))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		}
	}()

	log.Info().Str("port", cfg.Port).Msg("starting privacyhub service")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}

	return nil
}

// setupScoring builds the scoring-service client, the credential health
// cache over the configured keys, and the policy scorer on top of both.
func setupScoring(cfg *config.Config) (*scoring.Scorer, *keyhealth.Cache, error) {
	client := openrouter.New(openrouter.WithSiteIdentity(cfg.SiteURL, cfg.SiteName))

	credentials := make([]scoring.Credential, 0, len(cfg.OpenRouterKeys))
	for i, key := range cfg.OpenRouterKeys {
		credentials = append(credentials, scoring.Credential{
			Name: fmt.Sprintf("key-%d", i+1),
			Key:  key,
		})
	}

	keyCache, err := keyhealth.NewCache(client, credentials, keyhealth.WithTTL(cfg.KeyHealthTTL))
	if err != nil {
		return nil, nil, err
	}

	scorerOpts := []scoring.ScorerOption{}
	if cfg.OpenRouterModel != "" {
		scorerOpts = append(scorerOpts, scoring.WithModel(cfg.OpenRouterModel))
	}

	scorer, err := scoring.NewScorer(client, keyCache, scorerOpts...)
	if err != nil {
		return nil, nil, err
	}

	return scorer, keyCache, nil
}

// setupFetcher assembles the retrieval strategies in priority order. The
// structured-scrape and browser strategies are skipped when their services
// are unconfigured; raw HTTP is always available.
func setupFetcher(cfg *config.Config) (*fetch.Fetcher, error) {
	var strategies []fetch.Strategy

	if cfg.FirecrawlKey != "" {
		scrapeClient, err := firecrawl.New(cfg.FirecrawlKey)
		if err != nil {
			return nil, fmt.Errorf("initializing scrape client: %w", err)
		}

		strategies = append(strategies, fetch.NewStructuredScrapeStrategy(scrapeClient))
	} else {
		log.Warn().Msg("structured scraping disabled: no firecrawl key configured")
	}

	if cfg.CloudflareAccountID != "" && cfg.CloudflareAPIToken != "" {
		renderClient, err := cloudflare.New(cfg.CloudflareAccountID, cfg.CloudflareAPIToken)
		if err != nil {
			return nil, fmt.Errorf("initializing browser rendering client: %w", err)
		}

		strategies = append(strategies, fetch.NewBrowserStrategy(renderClient))
	} else {
		log.Warn().Msg("browser rendering disabled: cloudflare credentials not configured")
	}

	strategies = append(strategies, fetch.NewRawHTTPStrategy())

	return fetch.NewFetcher(strategies...)
}

// setupSlack initializes the notification client, returning nil when unconfigured
func setupSlack(cfg *config.Config) *slack.Client {
	if cfg.SlackWebhookURL == "" {
		return nil
	}

	client, err := slack.New(cfg.SlackWebhookURL, slack.WithServiceName(cfg.SiteName))
	if err != nil {
		log.Warn().Err(err).Msg("slack notifications disabled")
		return nil
	}

	return client
}
