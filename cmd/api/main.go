package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/issac8080/aurashop/internal/config"
	"github.com/issac8080/aurashop/internal/handler"
	assistantService "github.com/issac8080/aurashop/internal/service/assistant"
	catalogService "github.com/issac8080/aurashop/internal/service/catalog"
	chatService "github.com/issac8080/aurashop/internal/service/chat"
	couponService "github.com/issac8080/aurashop/internal/service/coupon"
	orderService "github.com/issac8080/aurashop/internal/service/order"
	recommendService "github.com/issac8080/aurashop/internal/service/recommend"
	trackService "github.com/issac8080/aurashop/internal/service/track"
	walletService "github.com/issac8080/aurashop/internal/service/wallet"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := newLogger()

	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file, using system environment only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	catalog := catalogService.NewMemoryStore(catalogService.Seed())

	var chatStore chatService.Store
	if cfg.Redis.Enabled() {
		client, err := cfg.Redis.New(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer client.Close()
		chatStore = chatService.NewRedisStore(client, cfg.Chat.TranscriptTTL)
		log.Info().Msg("transcripts persisted to redis")
	} else {
		chatStore = chatService.NewMemoryStore()
		log.Info().Msg("transcripts kept in memory")
	}

	tracker, err := trackService.New(ctx, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start event tracker")
	}
	defer tracker.Close()

	wallets := walletService.NewService()
	coupons := couponService.NewService()
	orders := orderService.NewService(catalog, wallets, tracker)
	recommender := recommendService.NewService(catalog, tracker)

	var llm *assistantService.LLM
	if cfg.AI.Enabled() {
		llm, err = assistantService.NewLLM(ctx, cfg.AI)
		if err != nil {
			log.Warn().Err(err).Msg("llm unavailable, continuing with the rule engine")
			llm = nil
		} else {
			log.Info().Str("model", cfg.AI.Model).Msg("llm responder enabled")
		}
	} else {
		log.Info().Msg("ark credentials not configured, using the rule engine")
	}
	responder := assistantService.NewResponder(catalog, tracker, orders, llm, log)

	router := handler.NewRouter(handler.Services{
		Catalog:     catalog,
		Chat:        chatStore,
		Tracker:     tracker,
		Coupons:     coupons,
		Wallets:     wallets,
		Orders:      orders,
		Recommender: recommender,
		Responder:   responder,
	}, log)

	startServer(ctx, cfg.Server, router, log)
}

func newLogger() zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler, log zerolog.Logger) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Info().Str("addr", serverCfg.Addr).Msg("aurashop gateway listening")
	if err := runServer(ctx, srv); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
