package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lalith-99/teamchat/internal/api"
	"github.com/lalith-99/teamchat/internal/command"
	"github.com/lalith-99/teamchat/internal/config"
	"github.com/lalith-99/teamchat/internal/db"
	"github.com/lalith-99/teamchat/internal/netmon"
	"github.com/lalith-99/teamchat/internal/observ"
	"github.com/lalith-99/teamchat/internal/realtime/embedded"
	"github.com/lalith-99/teamchat/internal/repository/postgres"
	"github.com/lalith-99/teamchat/internal/state"
	"github.com/lalith-99/teamchat/internal/store"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "teamchat: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := observ.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.New(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer database.Close()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	defer rdb.Close()

	svc := embedded.New(embedded.Options{
		Redis:         rdb,
		Users:         postgres.NewUserStore(database.Pool()),
		Conversations: postgres.NewConversationStore(database.Pool()),
		Memberships:   postgres.NewMembershipStore(database.Pool()),
		Messages:      postgres.NewMessageStore(database.Pool()),
		JWTSecret:     cfg.JWTSecret,
		Logger:        logger,
	})
	defer svc.Close()

	st := store.New(
		state.NewAppState(cfg.DefaultConversationID),
		store.ActionLogger(logger),
	)
	defer st.Close()

	commands := command.New(svc, st, logger)
	defer commands.Close()

	monitor := netmon.New(st, logger, 0)
	go monitor.Run(ctx)

	if _, err := commands.Login(ctx, cfg.SenderID); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := commands.SyncSenderData(ctx); err != nil {
		return fmt.Errorf("sync sender data: %w", err)
	}

	server := api.NewServer(commands, st, cfg.JWTSecret, logger)
	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server.Router(cfg.Env),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 0, // the stream endpoint holds long-lived connections
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("gateway listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
