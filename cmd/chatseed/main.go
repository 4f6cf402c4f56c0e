// Command chatseed creates the Postgres schema and seeds the default
// sender, the home conversation, and a handful of demo users and rooms.
// Safe to run repeatedly.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/lalith-99/teamchat/internal/config"
	"github.com/lalith-99/teamchat/internal/db"
	"github.com/lalith-99/teamchat/internal/models"
	"github.com/lalith-99/teamchat/internal/observ"
	"github.com/lalith-99/teamchat/internal/repository/postgres"
	"go.uber.org/zap"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	email       TEXT NOT NULL DEFAULT '',
	profile_url TEXT NOT NULL DEFAULT '',
	external_id TEXT NOT NULL DEFAULT '',
	title       TEXT NOT NULL DEFAULT '',
	created     TIMESTAMPTZ NOT NULL,
	updated     TIMESTAMPTZ NOT NULL,
	etag        TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS conversations (
	id      TEXT PRIMARY KEY,
	name    TEXT NOT NULL,
	purpose TEXT NOT NULL DEFAULT '',
	created TIMESTAMPTZ NOT NULL,
	updated TIMESTAMPTZ NOT NULL,
	etag    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS memberships (
	user_id         TEXT NOT NULL REFERENCES users(id),
	conversation_id TEXT NOT NULL REFERENCES conversations(id),
	created         TIMESTAMPTZ NOT NULL,
	updated         TIMESTAMPTZ NOT NULL,
	etag            TEXT NOT NULL,
	PRIMARY KEY (user_id, conversation_id)
);

CREATE TABLE IF NOT EXISTS messages (
	conversation_id TEXT NOT NULL,
	timetoken       BIGINT NOT NULL,
	payload         JSONB NOT NULL,
	PRIMARY KEY (conversation_id, timetoken)
);
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "chatseed: %v\n", err)
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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	database, err := db.New(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer database.Close()

	if _, err := database.Pool().Exec(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	logger.Info("schema ready")

	users := postgres.NewUserStore(database.Pool())
	conversations := postgres.NewConversationStore(database.Pool())
	memberships := postgres.NewMembershipStore(database.Pool())

	seedUsers := []models.User{
		models.NewUser(cfg.SenderID, "Craig", "Staff Engineer"),
		models.NewUser("", "Dana", "Product Designer"),
		models.NewUser("", "Marcos", "Engineering Manager"),
		models.NewUser("", "Priya", "iOS Engineer"),
	}
	for _, u := range seedUsers {
		if err := users.Upsert(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Name, err)
		}
	}

	seedConvs := []models.Conversation{
		models.NewConversation(cfg.DefaultConversationID, models.PinnedConversationName, "Say hello and introduce yourself"),
		models.NewConversation("", "Announcements", "Company-wide announcements"),
		models.NewConversation("", "Mobile", "The mobile team's room"),
	}
	for _, c := range seedConvs {
		if err := conversations.Upsert(ctx, c); err != nil {
			return fmt.Errorf("seed conversation %s: %w", c.Name, err)
		}
	}

	convIDs := make([]string, 0, len(seedConvs))
	for _, c := range seedConvs {
		convIDs = append(convIDs, c.ID)
	}
	for _, u := range seedUsers {
		if _, err := memberships.Add(ctx, u.ID, convIDs); err != nil {
			return fmt.Errorf("seed memberships for %s: %w", u.Name, err)
		}
	}

	logger.Info("seed complete",
		zap.Int("users", len(seedUsers)),
		zap.Int("conversations", len(seedConvs)),
	)
	return nil
}
