package postgres

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lalith-99/teamchat/internal/models"
)

type MessageStore struct {
	pool *pgxpool.Pool
}

func NewMessageStore(pool *pgxpool.Pool) *MessageStore {
	return &MessageStore{pool: pool}
}

func (s *MessageStore) Append(ctx context.Context, msg models.Message) error {
	payload, err := json.Marshal(msg.Payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	// Duplicate (conversation, timetoken) means a redelivery; keep the
	// first copy.
	query := `
		INSERT INTO messages (conversation_id, timetoken, payload)
		VALUES ($1, $2, $3)
		ON CONFLICT (conversation_id, timetoken) DO NOTHING`

	if _, err := s.pool.Exec(ctx, query, msg.ConversationID, int64(msg.Timetoken), payload); err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

func (s *MessageStore) ListRecent(ctx context.Context, conversationID string, limit int) ([]models.Message, error) {
	query := `
		SELECT timetoken, payload
		FROM messages
		WHERE conversation_id = $1
		ORDER BY timetoken DESC
		LIMIT $2`

	rows, err := s.pool.Query(ctx, query, conversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var (
			tt  int64
			raw []byte
		)
		if err := rows.Scan(&tt, &raw); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		var payload models.MessagePayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, fmt.Errorf("decode payload: %w", err)
		}
		messages = append(messages, models.Message{
			ConversationID: conversationID,
			Timetoken:      models.Timetoken(tt),
			Payload:        payload,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	// Query reads newest-first for the LIMIT; callers want ascending.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
