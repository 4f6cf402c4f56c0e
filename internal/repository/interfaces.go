// Package repository defines the persistence contracts backing the embedded
// messaging service: durable user/conversation metadata, the membership
// edges, and per-conversation message history keyed by timetoken.
package repository

import (
	"context"

	"github.com/lalith-99/teamchat/internal/models"
)

// UserRepository handles user metadata.
type UserRepository interface {
	// Get returns a user by id. Returns nil, nil if not found.
	Get(ctx context.Context, userID string) (*models.User, error)

	// Upsert inserts or fully replaces a user record.
	Upsert(ctx context.Context, user models.User) error
}

// ConversationRepository handles conversation metadata.
type ConversationRepository interface {
	// Get returns a conversation by id. Returns nil, nil if not found.
	Get(ctx context.Context, conversationID string) (*models.Conversation, error)

	// Upsert inserts or fully replaces a conversation record.
	Upsert(ctx context.Context, conv models.Conversation) error
}

// MembershipRepository handles the user/conversation relation. Both
// directional views read the same rows but return the two edge types the
// client keeps as separate collections.
type MembershipRepository interface {
	// ListForUser returns the user-side edges, one per conversation the
	// user belongs to.
	ListForUser(ctx context.Context, userID string) ([]models.UserMembership, error)

	// ListForConversation returns the conversation-side edges, one per
	// member user.
	ListForConversation(ctx context.Context, conversationID string) ([]models.ConversationMember, error)

	// Add joins the user to the conversations. Idempotent: joining twice
	// keeps the original edge. Returns the resulting user-side edges for
	// exactly the requested conversations.
	Add(ctx context.Context, userID string, conversationIDs []string) ([]models.UserMembership, error)

	// Remove leaves the conversations. No-op for edges that don't exist.
	Remove(ctx context.Context, userID string, conversationIDs []string) error
}

// MessageRepository handles durable message history.
type MessageRepository interface {
	// Append stores a message. A duplicate (conversation, timetoken) pair
	// is a no-op.
	Append(ctx context.Context, msg models.Message) error

	// ListRecent returns up to limit most recent messages of a
	// conversation, ascending by timetoken.
	ListRecent(ctx context.Context, conversationID string, limit int) ([]models.Message, error)
}
