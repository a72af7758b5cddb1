// Command vsp is the virtual simulated patient server for psychiatric
// interview training.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	anyllmlib "github.com/mozilla-ai/any-llm-go"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Y3454R/vsp-mvp/internal/casefile"
	"github.com/Y3454R/vsp-mvp/internal/config"
	"github.com/Y3454R/vsp-mvp/internal/evaluation"
	"github.com/Y3454R/vsp-mvp/internal/health"
	"github.com/Y3454R/vsp-mvp/internal/httpapi"
	"github.com/Y3454R/vsp-mvp/internal/interview"
	"github.com/Y3454R/vsp-mvp/internal/observe"
	"github.com/Y3454R/vsp-mvp/internal/session"
	"github.com/Y3454R/vsp-mvp/pkg/provider/llm"
	"github.com/Y3454R/vsp-mvp/pkg/provider/llm/anyllm"
	"github.com/Y3454R/vsp-mvp/pkg/provider/llm/openai"
)

const version = "1.0.0"

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	// Optional .env in the working directory — convenient for development.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "vsp: config file %q not found\n", *configPath)
		} else {
			fmt.Fprintf(os.Stderr, "vsp: %v\n", err)
		}
		return 1
	}

	logger := newLogger(cfg.Server.LogLevel)
	slog.SetDefault(logger)

	slog.Info("vsp starting",
		"config", *configPath,
		"listen_addr", cfg.Server.ListenAddr,
		"llm_provider", cfg.LLM.Provider,
		"llm_model", cfg.LLM.Model,
		"cases_dir", cfg.Cases.Dir,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Telemetry providers (metrics via Prometheus bridge, traces in-process).
	otelShutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{
		ServiceName:    "vsp",
		ServiceVersion: version,
	})
	if err != nil {
		slog.Error("failed to initialise telemetry", "err", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(shutdownCtx); err != nil {
			slog.Warn("telemetry shutdown error", "err", err)
		}
	}()

	// Missing credentials are a fatal startup error, not a per-request one.
	provider, err := buildProvider(cfg.LLM)
	if err != nil {
		slog.Error("failed to build LLM provider", "err", err)
		return 1
	}
	metrics := observe.DefaultMetrics()

	cases := casefile.NewRepository(cfg.Cases.Dir)
	memory := session.NewStore()

	chatEngine, err := interview.NewEngine(interview.Config{
		Cases:       cases,
		Memory:      memory,
		Provider:    observe.InstrumentProvider(provider, metrics, "chat"),
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	})
	if err != nil {
		slog.Error("failed to build interview engine", "err", err)
		return 1
	}

	evalEngine, err := evaluation.NewEngine(evaluation.Config{
		Cases:       cases,
		Provider:    observe.InstrumentProvider(provider, metrics, "evaluation"),
		Temperature: cfg.LLM.Temperature,
	})
	if err != nil {
		slog.Error("failed to build evaluation engine", "err", err)
		return 1
	}

	// Warm the case cache so authoring mistakes surface at startup.
	if all, err := cases.LoadAll(); err != nil {
		slog.Error("failed to load cases", "err", err)
		return 1
	} else if len(all) == 0 {
		slog.Warn("no cases loaded; /chat will answer 404 for every case_id")
	}

	mux := http.NewServeMux()
	httpapi.NewServer(cases, chatEngine, evalEngine).Register(mux)
	health.New(
		health.Checker{Name: "cases", Check: func(context.Context) error {
			_, err := cases.LoadAll()
			return err
		}},
	).Register(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           observe.Middleware(metrics)(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	slog.Info("server ready — press Ctrl+C to shut down")

	select {
	case err := <-errCh:
		slog.Error("server error", "err", err)
		return 1
	case <-ctx.Done():
	}

	slog.Info("shutdown signal received, stopping…")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "err", err)
		return 1
	}
	slog.Info("goodbye")
	return 0
}

// buildProvider constructs the configured LLM backend. The "openai" provider
// uses the official SDK directly; every other name goes through the any-llm
// multi-provider adapter.
func buildProvider(cfg config.LLMConfig) (llm.Provider, error) {
	if cfg.Provider == "openai" {
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		var opts []openai.Option
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		return openai.New(apiKey, cfg.Model, opts...)
	}

	var opts []anyllmlib.Option
	if cfg.APIKey != "" {
		opts = append(opts, anyllmlib.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, anyllmlib.WithBaseURL(cfg.BaseURL))
	}
	return anyllm.New(cfg.Provider, cfg.Model, opts...)
}

func newLogger(level config.LogLevel) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
