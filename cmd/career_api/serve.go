package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Meet-08/SIH2025-Prototype/internal/config"
	"github.com/Meet-08/SIH2025-Prototype/internal/llm"
	"github.com/Meet-08/SIH2025-Prototype/internal/logging"
	"github.com/Meet-08/SIH2025-Prototype/internal/recommend"
	"github.com/Meet-08/SIH2025-Prototype/internal/server"
	"github.com/Meet-08/SIH2025-Prototype/internal/server/ratelimit"
)

const dbConnectTimeout = 10 * time.Second

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing the recommendation, student, and catalog
endpoints under /v1/api. The server shuts down gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config and PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := connect(ctx, cfg.Database.URL, cfg.Database.MaxConns)
	if err != nil {
		return err
	}
	defer database.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx); err != nil {
			return err
		}
		logging.Info().Msg("schema applied")
	}

	recommender, closeLLM, err := newRecommender(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeLLM()

	jwtCfg, err := cfg.JWT()
	if err != nil {
		return err
	}
	pwCfg, err := cfg.Password()
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Server:    cfg.Server,
		JWT:       jwtCfg,
		Password:  pwCfg,
		RateLimit: rateLimitConfig(cfg.RateLimit),
	}, database, recommender)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}

// newRecommender builds the Gemini-backed recommendation service. The
// returned func closes the LLM client.
func newRecommender(ctx context.Context, cfg *config.Config) (*recommend.Service, func(), error) {
	client, err := llm.NewClient(ctx, llmConfig(cfg.LLM), cfg.LLM.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	svc := recommend.NewService(
		recommend.NewLLMExplainer(client).WithTier(llmTier(cfg.LLM)),
		recommend.WithBreakerConfig(breakerConfig(cfg.Breaker)),
	)
	closeFn := func() {
		if err := client.Close(); err != nil {
			logging.Warn().Err(err).Msg("failed to close LLM client")
		}
	}
	return svc, closeFn, nil
}

func llmConfig(c config.LLMConfig) *llm.Config {
	out := llm.DefaultConfig()
	if c.Model != "" {
		out = out.WithModel(llm.TierStandard, c.Model)
	}
	out.Temperature = c.Temperature
	out.MaxOutputTokens = c.MaxOutputTokens
	if c.Timeout > 0 {
		out.Timeout = c.Timeout
	}
	return out
}

// llmTier returns the configured explanation tier, standard when unset.
func llmTier(c config.LLMConfig) llm.ModelTier {
	if c.Tier == "" {
		return llm.TierStandard
	}
	return llm.ModelTier(c.Tier)
}

func breakerConfig(c config.BreakerConfig) recommend.BreakerConfig {
	out := recommend.DefaultBreakerConfig()
	out.MaxRequests = c.MaxRequests
	out.Interval = c.Interval
	out.Timeout = c.Timeout
	out.FailureThreshold = c.FailureThreshold
	return out
}

func rateLimitConfig(c config.RateLimitConfig) *ratelimit.Config {
	return ratelimit.NewConfig(ratelimit.Settings{
		Enabled:         c.Enabled,
		DefaultLimit:    c.DefaultLimit,
		DefaultWindow:   c.DefaultWindow,
		CleanupInterval: c.CleanupInterval,
		Whitelist:       c.Whitelist,
		Blacklist:       c.Blacklist,
	})
}
