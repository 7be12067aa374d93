package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/nene-backend/internal/adapter/llm"
	"github.com/heartmarshall/nene-backend/internal/config"
	"github.com/heartmarshall/nene-backend/internal/content"
	"github.com/heartmarshall/nene-backend/internal/service/assistant"
	"github.com/heartmarshall/nene-backend/internal/service/knowledge"
	"github.com/heartmarshall/nene-backend/internal/service/lexicon"
	"github.com/heartmarshall/nene-backend/internal/service/translator"
	"github.com/heartmarshall/nene-backend/internal/transport/middleware"
	"github.com/heartmarshall/nene-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, opens the
// record store, builds the services and serves HTTP until ctx is cancelled,
// then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("storage", cfg.Storage.Driver),
		slog.String("llm_provider", cfg.LLM.Provider),
	)

	store, closeStore, err := OpenStore(ctx, logger, cfg)
	if err != nil {
		return fmt.Errorf("open record store: %w", err)
	}
	defer closeStore()

	gw, err := llm.New(ctx, logger, cfg.LLM)
	if err != nil {
		return fmt.Errorf("create model gateway: %w", err)
	}

	c, err := Build(ctx, logger, cfg, store, gw)
	if err != nil {
		return err
	}

	return Serve(ctx, logger, cfg, c)
}

// Components are the wired services behind the HTTP surface.
type Components struct {
	Lexicon   *lexicon.Service
	Assistant *assistant.Service
	Sessions  *assistant.Sessions
	Handler   http.Handler
	limiter   *middleware.RateLimiter
}

// Build loads content and wires every service and handler.
func Build(ctx context.Context, logger *slog.Logger, cfg *config.Config, store RecordStore, gw llm.Gateway) (*Components, error) {
	kn, err := content.LoadKnowledge(cfg.Content.KnowledgePath)
	if err != nil {
		return nil, fmt.Errorf("load knowledge: %w", err)
	}
	supplement, err := content.LoadSupplement(cfg.Content.SupplementPath)
	if err != nil {
		return nil, fmt.Errorf("load supplement: %w", err)
	}

	lex := lexicon.NewService(ctx, logger, store, supplement.Words, content.FallbackRecords())
	tr := translator.NewService(lex)
	table := knowledge.NewService(kn.Answers)

	svc := assistant.NewService(logger, assistant.Deps{
		Dictionary: lex,
		Lexicon:    lex,
		Translator: tr,
		Knowledge:  table,
		Gateway:    gw,
	}, assistant.Texts{
		Instructions: kn.Instructions,
		Messages:     kn.Messages,
	}, cfg.LLM.Timeout)
	sessions := assistant.NewSessions(logger, svc)

	logger.InfoContext(ctx, "services ready", slog.Int("curated_answers", table.Len()))

	router := rest.NewRouter(rest.Handlers{
		Health:    rest.NewHealthHandler(store, cfg.Storage.Driver, lex, BuildVersion()),
		Chat:      rest.NewChatHandler(svc, sessions, logger),
		Lexicon:   rest.NewLexiconHandler(svc, lex, logger),
		Translate: rest.NewTranslateHandler(svc, logger),
	})

	var (
		limiter *middleware.RateLimiter
		limit   middleware.Middleware
	)
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(5 * time.Minute)
		limit = limiter.Limit(cfg.RateLimit.Limit, cfg.RateLimit.Window)
	}

	chain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.ForPrefix("/v1/", limit),
	)

	return &Components{
		Lexicon:   lex,
		Assistant: svc,
		Sessions:  sessions,
		Handler:   chain(router),
		limiter:   limiter,
	}, nil
}

// Close stops background helpers owned by the components.
func (c *Components) Close() {
	if c.limiter != nil {
		c.limiter.Stop()
	}
}

// Serve runs the HTTP server until ctx is done. On shutdown it stops
// accepting requests, then waits for in-flight session turns so their
// answers are not lost mid-call.
func Serve(ctx context.Context, logger *slog.Logger, cfg *config.Config, c *Components) error {
	defer c.Close()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      c.Handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		if err := c.Sessions.Wait(shutdownCtx); err != nil {
			logger.Warn("pending session turns abandoned", slog.String("error", err.Error()))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("stopped")
	return nil
}
