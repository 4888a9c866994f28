package auth

import (
	"context"

	"suvarnadesk/internal/core/id"
)

// UserRepository is the storage contract for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, userID id.ID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error

	// Delete deactivates the account and keeps the row.
	Delete(ctx context.Context, userID id.ID) error

	List(ctx context.Context, filter UserFilter) ([]User, int, error)

	// Exists reports whether an account with this email exists.
	Exists(ctx context.Context, email string) (bool, error)
}

// TokenRepository is the storage contract for refresh tokens. Tokens
// are addressed by hash; the plaintext never leaves the auth service.
type TokenRepository interface {
	SaveRefreshToken(ctx context.Context, token *RefreshToken) error
	GetRefreshToken(ctx context.Context, tokenHash string) (*RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, tokenID id.ID, reason string) error
	RevokeAllUserTokens(ctx context.Context, userID id.ID, reason string) error

	// CleanupExpiredTokens deletes dead tokens and returns how many went.
	CleanupExpiredTokens(ctx context.Context) (int, error)
}

// UserFilter narrows ListUsers.
type UserFilter struct {
	Search   string
	IsActive *bool
	Role     Role
	Limit    int
	Offset   int
}
