package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suvarnadesk/internal/core/apperror"
	"suvarnadesk/internal/core/id"
)

type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeUserRepo struct {
	byID    map[id.ID]*User
	byEmail map[string]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[id.ID]*User),
		byEmail: make(map[string]*User),
	}
}

func (r *fakeUserRepo) Create(_ context.Context, user *User) error {
	u := *user
	r.byID[user.ID] = &u
	r.byEmail[user.Email] = &u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID id.ID) (*User, error) {
	u, ok := r.byID[userID]
	if !ok {
		return nil, apperror.NewNotFound("user", userID.String())
	}
	c := *u
	return &c, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, apperror.NewNotFound("user", email)
	}
	c := *u
	return &c, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *User) error {
	u := *user
	r.byID[user.ID] = &u
	r.byEmail[user.Email] = &u
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, userID id.ID) error {
	u, ok := r.byID[userID]
	if !ok {
		return apperror.NewNotFound("user", userID.String())
	}
	delete(r.byEmail, u.Email)
	delete(r.byID, userID)
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, _ UserFilter) ([]User, int, error) {
	out := make([]User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (r *fakeUserRepo) Exists(_ context.Context, email string) (bool, error) {
	_, ok := r.byEmail[email]
	return ok, nil
}

type fakeTokenRepo struct {
	byHash map[string]*RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{byHash: make(map[string]*RefreshToken)}
}

func (r *fakeTokenRepo) SaveRefreshToken(_ context.Context, token *RefreshToken) error {
	t := *token
	r.byHash[token.TokenHash] = &t
	return nil
}

func (r *fakeTokenRepo) GetRefreshToken(_ context.Context, tokenHash string) (*RefreshToken, error) {
	t, ok := r.byHash[tokenHash]
	if !ok {
		return nil, apperror.NewNotFound("refresh_token", tokenHash)
	}
	c := *t
	return &c, nil
}

func (r *fakeTokenRepo) RevokeRefreshToken(_ context.Context, tokenID id.ID, reason string) error {
	for _, t := range r.byHash {
		if t.ID == tokenID {
			now := time.Now()
			t.RevokedAt = &now
			t.RevokedReason = reason
		}
	}
	return nil
}

func (r *fakeTokenRepo) RevokeAllUserTokens(_ context.Context, userID id.ID, reason string) error {
	for _, t := range r.byHash {
		if t.UserID == userID && t.RevokedAt == nil {
			now := time.Now()
			t.RevokedAt = &now
			t.RevokedReason = reason
		}
	}
	return nil
}

func (r *fakeTokenRepo) CleanupExpiredTokens(_ context.Context) (int, error) {
	return 0, nil
}

func newTestService(users *fakeUserRepo, tokens *fakeTokenRepo) *Service {
	jwtSvc := NewJWTService(DefaultJWTConfig("test-secret"))
	return NewService(users, tokens, passthroughTxManager{}, jwtSvc, DefaultServiceConfig())
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	svc := newTestService(users, newFakeTokenRepo())

	user, err := svc.Register(ctx, RegisterRequest{
		Email:     "owner@shop.example",
		Password:  "s3cret-pass",
		FirstName: "Asha",
		Role:      RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)

	stored, err := users.GetByEmail(ctx, "owner@shop.example")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
}

func TestRegisterDefaultsToStaff(t *testing.T) {
	svc := newTestService(newFakeUserRepo(), newFakeTokenRepo())

	user, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "clerk@shop.example",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, RoleStaff, user.Role)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeUserRepo(), newFakeTokenRepo())

	_, err := svc.Register(ctx, RegisterRequest{Password: "s3cret-pass"})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.Register(ctx, RegisterRequest{Email: "x@shop.example", Password: "short"})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.Register(ctx, RegisterRequest{
		Email: "x@shop.example", Password: "s3cret-pass", Role: Role("owner"),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeUserRepo(), newFakeTokenRepo())

	_, err := svc.Register(ctx, RegisterRequest{Email: "dup@shop.example", Password: "s3cret-pass"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{Email: "dup@shop.example", Password: "s3cret-pass"})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	svc := newTestService(users, newFakeTokenRepo())

	registered, err := svc.Register(ctx, RegisterRequest{
		Email: "clerk@shop.example", Password: "s3cret-pass",
	})
	require.NoError(t, err)

	tokens, user, err := svc.Login(ctx, Credentials{Email: "clerk@shop.example", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, "Bearer", tokens.TokenType)

	stored, err := users.GetByID(ctx, registered.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLoginAt)
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	svc := newTestService(users, newFakeTokenRepo())

	registered, err := svc.Register(ctx, RegisterRequest{
		Email: "clerk@shop.example", Password: "s3cret-pass",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, Credentials{Email: "clerk@shop.example", Password: "wrong"})
	require.Error(t, err)

	stored, err := users.GetByID(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.FailedLoginAttempts)
}

func TestLoginLockout(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	svc := newTestService(users, newFakeTokenRepo())

	_, err := svc.Register(ctx, RegisterRequest{
		Email: "clerk@shop.example", Password: "s3cret-pass",
	})
	require.NoError(t, err)

	for i := 0; i < DefaultServiceConfig().MaxLoginAttempts; i++ {
		_, _, err = svc.Login(ctx, Credentials{Email: "clerk@shop.example", Password: "wrong"})
		require.Error(t, err)
	}

	// Even the correct password is rejected while the account is locked.
	_, _, err = svc.Login(ctx, Credentials{Email: "clerk@shop.example", Password: "s3cret-pass"})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)
}

func TestRefreshTokenRotation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeUserRepo(), newFakeTokenRepo())

	_, err := svc.Register(ctx, RegisterRequest{
		Email: "clerk@shop.example", Password: "s3cret-pass",
	})
	require.NoError(t, err)

	tokens, _, err := svc.Login(ctx, Credentials{Email: "clerk@shop.example", Password: "s3cret-pass"})
	require.NoError(t, err)

	fresh, err := svc.RefreshToken(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, fresh.RefreshToken)

	// The old token was revoked during rotation.
	_, err = svc.RefreshToken(ctx, tokens.RefreshToken)
	require.Error(t, err)
}

func TestLogoutRevokesTokens(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeUserRepo(), newFakeTokenRepo())

	registered, err := svc.Register(ctx, RegisterRequest{
		Email: "clerk@shop.example", Password: "s3cret-pass",
	})
	require.NoError(t, err)

	tokens, _, err := svc.Login(ctx, Credentials{Email: "clerk@shop.example", Password: "s3cret-pass"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, registered.ID))

	_, err = svc.RefreshToken(ctx, tokens.RefreshToken)
	require.Error(t, err)
}

func TestAccessTokenClaims(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeUserRepo(), newFakeTokenRepo())

	_, err := svc.Register(ctx, RegisterRequest{
		Email: "owner@shop.example", Password: "s3cret-pass", Role: RoleAdmin,
	})
	require.NoError(t, err)

	tokens, user, err := svc.Login(ctx, Credentials{Email: "owner@shop.example", Password: "s3cret-pass"})
	require.NoError(t, err)

	uc, err := svc.jwtService.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), uc.UserID)
	assert.Equal(t, user.Email, uc.Email)
	assert.True(t, uc.IsAdmin)
	assert.Contains(t, uc.Roles, "admin")
}

func TestDeactivateUser(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	svc := newTestService(users, tokens)

	registered, err := svc.Register(ctx, RegisterRequest{
		Email: "clerk@shop.example", Password: "s3cret-pass",
	})
	require.NoError(t, err)

	pair, _, err := svc.Login(ctx, Credentials{Email: "clerk@shop.example", Password: "s3cret-pass"})
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateUser(ctx, registered.ID))

	_, err = svc.RefreshToken(ctx, pair.RefreshToken)
	require.Error(t, err)

	err = svc.DeactivateUser(ctx, id.New())
	assert.True(t, apperror.IsNotFound(err))
}
