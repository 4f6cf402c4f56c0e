package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lalith-99/teamchat/internal/models"
)

type ConversationStore struct {
	pool *pgxpool.Pool
}

func NewConversationStore(pool *pgxpool.Pool) *ConversationStore {
	return &ConversationStore{pool: pool}
}

func (s *ConversationStore) Get(ctx context.Context, conversationID string) (*models.Conversation, error) {
	query := `
		SELECT id, name, purpose, created, updated, etag
		FROM conversations
		WHERE id = $1`

	var c models.Conversation
	err := s.pool.QueryRow(ctx, query, conversationID).Scan(
		&c.ID,
		&c.Name,
		&c.Purpose,
		&c.Created,
		&c.Updated,
		&c.ETag,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get conversation: %w", err)
	}
	return &c, nil
}

func (s *ConversationStore) Upsert(ctx context.Context, conv models.Conversation) error {
	query := `
		INSERT INTO conversations (id, name, purpose, created, updated, etag)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			purpose = EXCLUDED.purpose,
			updated = EXCLUDED.updated,
			etag = EXCLUDED.etag`

	_, err := s.pool.Exec(ctx, query,
		conv.ID,
		conv.Name,
		conv.Purpose,
		conv.Created,
		conv.Updated,
		conv.ETag,
	)
	if err != nil {
		return fmt.Errorf("upsert conversation: %w", err)
	}
	return nil
}
