package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lalith-99/teamchat/internal/models"
)

type UserStore struct {
	pool *pgxpool.Pool
}

func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

func (s *UserStore) Get(ctx context.Context, userID string) (*models.User, error) {
	query := `
		SELECT id, name, email, profile_url, external_id, title, created, updated, etag
		FROM users
		WHERE id = $1`

	var u models.User
	err := s.pool.QueryRow(ctx, query, userID).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.ProfileURL,
		&u.ExternalID,
		&u.Title,
		&u.Created,
		&u.Updated,
		&u.ETag,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (s *UserStore) Upsert(ctx context.Context, user models.User) error {
	// Full replace on conflict: user records are never field-patched.
	query := `
		INSERT INTO users (id, name, email, profile_url, external_id, title, created, updated, etag)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			profile_url = EXCLUDED.profile_url,
			external_id = EXCLUDED.external_id,
			title = EXCLUDED.title,
			updated = EXCLUDED.updated,
			etag = EXCLUDED.etag`

	_, err := s.pool.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.ProfileURL,
		user.ExternalID,
		user.Title,
		user.Created,
		user.Updated,
		user.ETag,
	)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}
