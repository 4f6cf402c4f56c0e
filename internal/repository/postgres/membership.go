package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lalith-99/teamchat/internal/models"
)

type MembershipStore struct {
	pool *pgxpool.Pool
}

func NewMembershipStore(pool *pgxpool.Pool) *MembershipStore {
	return &MembershipStore{pool: pool}
}

func (s *MembershipStore) ListForUser(ctx context.Context, userID string) ([]models.UserMembership, error) {
	query := `
		SELECT conversation_id, created, updated, etag
		FROM memberships
		WHERE user_id = $1
		ORDER BY conversation_id`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list memberships for user: %w", err)
	}
	defer rows.Close()

	var memberships []models.UserMembership
	for rows.Next() {
		var m models.UserMembership
		if err := rows.Scan(&m.ID, &m.Created, &m.Updated, &m.ETag); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate memberships: %w", err)
	}
	return memberships, nil
}

func (s *MembershipStore) ListForConversation(ctx context.Context, conversationID string) ([]models.ConversationMember, error) {
	query := `
		SELECT user_id, created, updated, etag
		FROM memberships
		WHERE conversation_id = $1
		ORDER BY user_id`

	rows, err := s.pool.Query(ctx, query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("list members for conversation: %w", err)
	}
	defer rows.Close()

	var members []models.ConversationMember
	for rows.Next() {
		var m models.ConversationMember
		if err := rows.Scan(&m.ID, &m.Created, &m.Updated, &m.ETag); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}
	return members, nil
}

func (s *MembershipStore) Add(ctx context.Context, userID string, conversationIDs []string) ([]models.UserMembership, error) {
	// Idempotent join: existing edges keep their original created/etag.
	insert := `
		INSERT INTO memberships (user_id, conversation_id, created, updated, etag)
		SELECT $1, unnest($2::text[]), now(), now(), gen_random_uuid()::text
		ON CONFLICT (user_id, conversation_id) DO NOTHING`

	if _, err := s.pool.Exec(ctx, insert, userID, conversationIDs); err != nil {
		return nil, fmt.Errorf("add memberships: %w", err)
	}

	query := `
		SELECT conversation_id, created, updated, etag
		FROM memberships
		WHERE user_id = $1 AND conversation_id = ANY($2)
		ORDER BY conversation_id`

	rows, err := s.pool.Query(ctx, query, userID, conversationIDs)
	if err != nil {
		return nil, fmt.Errorf("read added memberships: %w", err)
	}
	defer rows.Close()

	var memberships []models.UserMembership
	for rows.Next() {
		var m models.UserMembership
		if err := rows.Scan(&m.ID, &m.Created, &m.Updated, &m.ETag); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate memberships: %w", err)
	}
	return memberships, nil
}

func (s *MembershipStore) Remove(ctx context.Context, userID string, conversationIDs []string) error {
	query := `
		DELETE FROM memberships
		WHERE user_id = $1 AND conversation_id = ANY($2)`

	if _, err := s.pool.Exec(ctx, query, userID, conversationIDs); err != nil {
		return fmt.Errorf("remove memberships: %w", err)
	}
	return nil
}
