package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ozan/academix/internal/app/models"
)

// Token error types
var (
	ErrTokenNotFound = errors.New("refresh token not found")
)

// TokenRepository handles database operations for refresh tokens
type TokenRepository struct {
	db *pgxpool.Pool
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{
		db: db,
	}
}

// Create stores a refresh token for a user
func (r *TokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (user_id, token, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		token.UserID, token.Token, token.ExpiresAt,
	).Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		return fmt.Errorf("error storing refresh token: %w", err)
	}

	return nil
}

// GetByToken retrieves a refresh token by its opaque value
func (r *TokenRepository) GetByToken(ctx context.Context, tokenValue string) (*models.RefreshToken, error) {
	query := `
		SELECT id, user_id, token, expires_at, created_at
		FROM refresh_tokens
		WHERE token = $1
	`

	var token models.RefreshToken
	err := r.db.QueryRow(ctx, query, tokenValue).Scan(
		&token.ID,
		&token.UserID,
		&token.Token,
		&token.ExpiresAt,
		&token.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("error retrieving refresh token: %w", err)
	}

	return &token, nil
}

// Delete removes a refresh token, invalidating it for future refreshes
func (r *TokenRepository) Delete(ctx context.Context, tokenValue string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE token = $1`, tokenValue)
	if err != nil {
		return fmt.Errorf("error deleting refresh token: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrTokenNotFound
	}

	return nil
}

// DeleteByUser removes all refresh tokens belonging to a user
func (r *TokenRepository) DeleteByUser(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("error deleting user refresh tokens: %w", err)
	}
	return nil
}

// DeleteExpired purges refresh tokens past their expiry, returning how many
// rows were removed.
func (r *TokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at < NOW()`)
	if err != nil {
		return 0, fmt.Errorf("error purging expired refresh tokens: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
