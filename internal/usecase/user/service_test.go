package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-shipping-backend/internal/config"
	domainUser "vehicle-shipping-backend/internal/domain/user"
	"vehicle-shipping-backend/internal/logger"
	appErrors "vehicle-shipping-backend/pkg/errors"
)

func init() {
	_ = logger.Init("development", "")
}

type memUserRepo struct {
	users map[uuid.UUID]*domainUser.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*domainUser.User)}
}

func (r *memUserRepo) Create(_ context.Context, u *domainUser.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domainUser.ErrUserAlreadyExists
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domainUser.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domainUser.ErrUserNotFound
	}
	return u, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domainUser.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainUser.ErrUserNotFound
}

func (r *memUserRepo) Update(_ context.Context, u *domainUser.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return domainUser.ErrUserNotFound
	}
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return domainUser.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) List(_ context.Context, _, _ int) ([]*domainUser.User, int64, error) {
	out := make([]*domainUser.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

type memTokenRepo struct {
	tokens map[string]*domainUser.RefreshToken
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: make(map[string]*domainUser.RefreshToken)}
}

func (r *memTokenRepo) Create(_ context.Context, t *domainUser.RefreshToken) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.tokens[t.Token] = t
	return nil
}

func (r *memTokenRepo) GetByToken(_ context.Context, token string) (*domainUser.RefreshToken, error) {
	t, ok := r.tokens[token]
	if !ok {
		return nil, domainUser.ErrTokenNotFound
	}
	return t, nil
}

func (r *memTokenRepo) Revoke(_ context.Context, token string) error {
	t, ok := r.tokens[token]
	if !ok {
		return domainUser.ErrTokenNotFound
	}
	now := time.Now()
	t.Revoked = true
	t.RevokedAt = &now
	return nil
}

func (r *memTokenRepo) RevokeAllForUser(_ context.Context, userID uuid.UUID) error {
	now := time.Now()
	for _, t := range r.tokens {
		if t.UserID == userID {
			t.Revoked = true
			t.RevokedAt = &now
		}
	}
	return nil
}

func (r *memTokenRepo) DeleteExpired(_ context.Context, olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan)
	for token, t := range r.tokens {
		if t.ExpiresAt.Before(cutoff) {
			delete(r.tokens, token)
		}
	}
	return nil
}

func (r *memTokenRepo) activeCountFor(userID uuid.UUID) int {
	count := 0
	for _, t := range r.tokens {
		if t.UserID == userID && t.IsActive() {
			count++
		}
	}
	return count
}

type memResetTokenRepo struct {
	tokens map[string]*domainUser.PasswordResetToken
}

func newMemResetTokenRepo() *memResetTokenRepo {
	return &memResetTokenRepo{tokens: make(map[string]*domainUser.PasswordResetToken)}
}

func (r *memResetTokenRepo) Create(_ context.Context, t *domainUser.PasswordResetToken) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.tokens[t.Token] = t
	return nil
}

func (r *memResetTokenRepo) GetByToken(_ context.Context, token string) (*domainUser.PasswordResetToken, error) {
	t, ok := r.tokens[token]
	if !ok {
		return nil, domainUser.ErrResetTokenInvalid
	}
	return t, nil
}

func (r *memResetTokenRepo) MarkUsed(_ context.Context, tokenID uuid.UUID) error {
	for _, t := range r.tokens {
		if t.ID == tokenID && !t.Used {
			t.Used = true
			return nil
		}
	}
	return domainUser.ErrResetTokenInvalid
}

func (r *memResetTokenRepo) DeleteExpired(_ context.Context, olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan)
	for token, t := range r.tokens {
		if t.ExpiresAt.Before(cutoff) || t.Used {
			delete(r.tokens, token)
		}
	}
	return nil
}

func (r *memResetTokenRepo) tokenFor(userID uuid.UUID) *domainUser.PasswordResetToken {
	for _, t := range r.tokens {
		if t.UserID == userID {
			return t
		}
	}
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:             "test-secret-key-for-user-service",
			ExpiryHours:        1,
			RefreshExpiryHours: 24,
		},
	}
}

func newTestService() (*Service, *memUserRepo, *memTokenRepo) {
	svc, users, tokens, _ := newTestServiceWithReset()
	return svc, users, tokens
}

func newTestServiceWithReset() (*Service, *memUserRepo, *memTokenRepo, *memResetTokenRepo) {
	users := newMemUserRepo()
	tokens := newMemTokenRepo()
	resets := newMemResetTokenRepo()
	return NewService(users, tokens, resets, testConfig()), users, tokens, resets
}

func validRegister() *RegisterRequest {
	return &RegisterRequest{
		Username: "dealer01",
		Email:    "dealer@example.com",
		Password: "Str0ng!Passw0rd",
		FullName: "First Dealer",
	}
}

func TestRegisterIssuesTokensAndUserRole(t *testing.T) {
	svc, users, tokens := newTestService()

	resp, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, domainUser.RoleUser, resp.User.Role)
	assert.True(t, resp.User.IsActive)

	stored, err := users.GetByEmail(context.Background(), "dealer@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "Str0ng!Passw0rd", stored.PasswordHashed, "password must be stored hashed")
	assert.Equal(t, 1, tokens.activeCountFor(stored.ID))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), validRegister())
	assert.ErrorIs(t, err, appErrors.ErrUserAlreadyExists)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc, users, _ := newTestService()

	req := validRegister()
	req.Password = "alllowercase"

	_, err := svc.Register(context.Background(), req)
	require.Error(t, err)

	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "WEAK_PASSWORD", appErr.Code)
	assert.Empty(t, users.users)
}

func TestLogin(t *testing.T) {
	svc, users, _ := newTestService()

	_, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	tests := []struct {
		name    string
		req     *LoginRequest
		wantErr error
	}{
		{
			name: "valid credentials",
			req:  &LoginRequest{Email: "dealer@example.com", Password: "Str0ng!Passw0rd"},
		},
		{
			name:    "wrong password",
			req:     &LoginRequest{Email: "dealer@example.com", Password: "WrongPassw0rd!"},
			wantErr: appErrors.ErrInvalidCredentials,
		},
		{
			name:    "unknown email",
			req:     &LoginRequest{Email: "nobody@example.com", Password: "Str0ng!Passw0rd"},
			wantErr: appErrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Login(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, resp.AccessToken)
		})
	}

	// Deactivated accounts cannot log in even with the right password.
	stored, err := users.GetByEmail(context.Background(), "dealer@example.com")
	require.NoError(t, err)
	stored.IsActive = false

	_, err = svc.Login(context.Background(), &LoginRequest{Email: "dealer@example.com", Password: "Str0ng!Passw0rd"})
	assert.ErrorIs(t, err, appErrors.ErrUserInactive)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _, tokens := newTestService()

	registered, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), &RefreshRequest{RefreshToken: registered.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	// The old token is revoked by rotation and cannot be replayed.
	old := tokens.tokens[registered.RefreshToken]
	require.NotNil(t, old)
	assert.True(t, old.Revoked)

	_, err = svc.Refresh(context.Background(), &RefreshRequest{RefreshToken: registered.RefreshToken})
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)

	// The new token still works.
	_, err = svc.Refresh(context.Background(), &RefreshRequest{RefreshToken: refreshed.RefreshToken})
	assert.NoError(t, err)
}

func TestRefreshRejectsUnknownToken(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Refresh(context.Background(), &RefreshRequest{RefreshToken: "never-issued"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
}

func TestRevokeThenRefreshFails(t *testing.T) {
	svc, _, _ := newTestService()

	registered, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(context.Background(), &RevokeRequest{RefreshToken: registered.RefreshToken}))

	_, err = svc.Refresh(context.Background(), &RefreshRequest{RefreshToken: registered.RefreshToken})
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
}

func TestChangePasswordRevokesSessions(t *testing.T) {
	svc, users, tokens := newTestService()

	registered, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)
	userID := registered.User.ID

	err = svc.ChangePassword(context.Background(), userID, &ChangePasswordRequest{
		CurrentPassword: "Str0ng!Passw0rd",
		NewPassword:     "An0ther!Passw0rd",
	})
	require.NoError(t, err)

	assert.Zero(t, tokens.activeCountFor(userID), "password change must invalidate every session")

	_, err = svc.Login(context.Background(), &LoginRequest{Email: "dealer@example.com", Password: "Str0ng!Passw0rd"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &LoginRequest{Email: "dealer@example.com", Password: "An0ther!Passw0rd"})
	assert.NoError(t, err)

	_, err = users.GetByID(context.Background(), userID)
	assert.NoError(t, err)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	svc, _, _ := newTestService()

	registered, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), registered.User.ID, &ChangePasswordRequest{
		CurrentPassword: "NotTheRight0ne!",
		NewPassword:     "An0ther!Passw0rd",
	})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestDeactivateUserRevokesSessions(t *testing.T) {
	svc, users, tokens := newTestService()

	registered, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)
	userID := registered.User.ID

	require.NoError(t, svc.DeactivateUser(context.Background(), userID))

	stored, err := users.GetByID(context.Background(), userID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
	assert.Zero(t, tokens.activeCountFor(userID))
}

func TestUpdateProfilePartial(t *testing.T) {
	svc, _, _ := newTestService()

	registered, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	phone := "+971501234567"
	resp, err := svc.UpdateProfile(context.Background(), registered.User.ID, &UpdateProfileRequest{
		PhoneNumber: &phone,
	})
	require.NoError(t, err)

	assert.Equal(t, "dealer01", resp.Username, "untouched fields keep their value")
	require.NotNil(t, resp.PhoneNumber)
	assert.Equal(t, phone, *resp.PhoneNumber)
}

func TestCleanupExpiredTokens(t *testing.T) {
	svc, _, tokens := newTestService()

	userID := uuid.New()
	stale := &domainUser.RefreshToken{
		UserID:    userID,
		Token:     "stale",
		ExpiresAt: time.Now().Add(-48 * time.Hour),
	}
	fresh := &domainUser.RefreshToken{
		UserID:    userID,
		Token:     "fresh",
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, tokens.Create(context.Background(), stale))
	require.NoError(t, tokens.Create(context.Background(), fresh))

	require.NoError(t, svc.CleanupExpiredTokens(context.Background()))

	assert.NotContains(t, tokens.tokens, "stale")
	assert.Contains(t, tokens.tokens, "fresh")
}

func TestForgotPasswordUnknownEmailStoresNothing(t *testing.T) {
	svc, _, _, resets := newTestServiceWithReset()

	// No error and no token, so callers cannot discover which emails exist.
	err := svc.ForgotPassword(context.Background(), &ForgotPasswordRequest{Email: "nobody@example.com"})
	require.NoError(t, err)
	assert.Empty(t, resets.tokens)
}

func TestResetPasswordFlow(t *testing.T) {
	svc, _, tokens, resets := newTestServiceWithReset()

	registered, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)
	userID := registered.User.ID

	require.NoError(t, svc.ForgotPassword(context.Background(), &ForgotPasswordRequest{Email: "dealer@example.com"}))

	issued := resets.tokenFor(userID)
	require.NotNil(t, issued)
	assert.False(t, issued.Used)
	assert.True(t, issued.ExpiresAt.After(time.Now()))

	err = svc.ResetPassword(context.Background(), &ResetPasswordRequest{
		Token:       issued.Token,
		NewPassword: "An0ther!Passw0rd",
	})
	require.NoError(t, err)

	assert.True(t, issued.Used, "redeemed token must burn")
	assert.Zero(t, tokens.activeCountFor(userID), "reset must invalidate every session")

	_, err = svc.Login(context.Background(), &LoginRequest{Email: "dealer@example.com", Password: "Str0ng!Passw0rd"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &LoginRequest{Email: "dealer@example.com", Password: "An0ther!Passw0rd"})
	assert.NoError(t, err)

	// A burned token cannot be replayed.
	err = svc.ResetPassword(context.Background(), &ResetPasswordRequest{
		Token:       issued.Token,
		NewPassword: "YetAn0ther!Pass",
	})
	assert.ErrorIs(t, err, domainUser.ErrResetTokenInvalid)
}

func TestResetPasswordRejectsBadTokens(t *testing.T) {
	svc, _, _, resets := newTestServiceWithReset()

	registered, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	expired := &domainUser.PasswordResetToken{
		UserID:    registered.User.ID,
		Token:     "expired-token",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, resets.Create(context.Background(), expired))

	tests := []struct {
		name  string
		token string
	}{
		{name: "never issued", token: "never-issued"},
		{name: "expired", token: "expired-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ResetPassword(context.Background(), &ResetPasswordRequest{
				Token:       tt.token,
				NewPassword: "An0ther!Passw0rd",
			})
			assert.ErrorIs(t, err, domainUser.ErrResetTokenInvalid)
		})
	}
}

func TestCleanupPurgesResetTokens(t *testing.T) {
	svc, _, _, resets := newTestServiceWithReset()

	userID := uuid.New()
	stale := &domainUser.PasswordResetToken{
		UserID:    userID,
		Token:     "stale-reset",
		ExpiresAt: time.Now().Add(-48 * time.Hour),
	}
	fresh := &domainUser.PasswordResetToken{
		UserID:    userID,
		Token:     "fresh-reset",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, resets.Create(context.Background(), stale))
	require.NoError(t, resets.Create(context.Background(), fresh))

	require.NoError(t, svc.CleanupExpiredTokens(context.Background()))

	assert.NotContains(t, resets.tokens, "stale-reset")
	assert.Contains(t, resets.tokens, "fresh-reset")
}
