package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozan/academix/internal/app/models"
	"github.com/ozan/academix/internal/pkg/apperrors"
	"github.com/ozan/academix/internal/pkg/auth"
)

func newAuthFixture() (*AuthService, *fakeUserStore, *fakeTokenStore) {
	users := newFakeUserStore()
	tokens := newFakeTokenStore()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "academix-test",
	})
	return NewAuthService(users, tokens, jwtService), users, tokens
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newAuthFixture()

	user := &models.User{Name: "Ayşe Yıldız", Email: "ayse@uni.edu", Role: models.RoleStudent}
	require.NoError(t, service.Register(ctx, user, "correct-horse-battery"))
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "correct-horse-battery", user.Password, "password must be stored hashed")

	loggedIn, tokens, err := service.Login(ctx, "ayse@uni.edu", "correct-horse-battery")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	_, _, err = service.Login(ctx, "ayse@uni.edu", "wrong-password")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, _, err = service.Login(ctx, "nobody@uni.edu", "whatever")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newAuthFixture()

	require.NoError(t, service.Register(ctx, &models.User{Name: "First", Email: "dup@uni.edu", Role: models.RoleStudent}, "password-123"))
	err := service.Register(ctx, &models.User{Name: "Second", Email: "dup@uni.edu", Role: models.RoleStudent}, "password-456")
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestLoginDisabledAccount(t *testing.T) {
	ctx := context.Background()
	service, users, _ := newAuthFixture()

	user := &models.User{Name: "Gone", Email: "gone@uni.edu", Role: models.RoleLecturer}
	require.NoError(t, service.Register(ctx, user, "password-123"))
	users.users[user.ID].IsActive = false

	_, _, err := service.Login(ctx, "gone@uni.edu", "password-123")
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestRefreshTokenRotation(t *testing.T) {
	ctx := context.Background()
	service, _, tokens := newAuthFixture()

	user := &models.User{Name: "Ayşe", Email: "ayse@uni.edu", Role: models.RoleStudent}
	require.NoError(t, service.Register(ctx, user, "password-123"))
	_, pair, err := service.Login(ctx, "ayse@uni.edu", "password-123")
	require.NoError(t, err)

	_, rotated, err := service.RefreshToken(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	// The consumed token no longer refreshes.
	_, _, err = service.RefreshToken(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	// Expired tokens are rejected and purged.
	tokens.tokens[rotated.RefreshToken].ExpiresAt = time.Now().Add(-time.Hour)
	_, _, err = service.RefreshToken(ctx, rotated.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	_, ok := tokens.tokens[rotated.RefreshToken]
	assert.False(t, ok)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newAuthFixture()

	user := &models.User{Name: "Ayşe", Email: "ayse@uni.edu", Role: models.RoleStudent}
	require.NoError(t, service.Register(ctx, user, "password-123"))
	_, pair, err := service.Login(ctx, "ayse@uni.edu", "password-123")
	require.NoError(t, err)

	require.NoError(t, service.Logout(ctx, pair.RefreshToken))
	err = service.Logout(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}

func TestListUsersByRole(t *testing.T) {
	ctx := context.Background()
	service, users, _ := newAuthFixture()

	deptA := int64(1)
	deptB := int64(2)
	users.add(&models.User{Name: "Lecturer A", Email: "a@uni.edu", Role: models.RoleLecturer, DepartmentID: &deptA, IsActive: true})
	users.add(&models.User{Name: "Lecturer B", Email: "b@uni.edu", Role: models.RoleLecturer, DepartmentID: &deptB, IsActive: true})
	users.add(&models.User{Name: "Former", Email: "f@uni.edu", Role: models.RoleLecturer, DepartmentID: &deptA, IsActive: false})
	users.add(&models.User{Name: "Student", Email: "s@uni.edu", Role: models.RoleStudent, IsActive: true})

	listed, err := service.ListUsersByRole(ctx, "lecturer", nil)
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	listed, err = service.ListUsersByRole(ctx, "lecturer", &deptA)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Lecturer A", listed[0].Name)

	_, err = service.ListUsersByRole(ctx, "dean", nil)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	service, users, _ := newAuthFixture()

	user := users.add(&models.User{Name: "Before", Email: "u@uni.edu", Role: models.RoleStudent, IsActive: true})

	updated, err := service.UpdateProfile(ctx, user.ID, "After")
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)

	stored, err := service.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", stored.Name)

	_, err = service.UpdateProfile(ctx, 999, "Ghost")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestLogoutAll(t *testing.T) {
	ctx := context.Background()
	service, _, tokens := newAuthFixture()

	user := &models.User{Name: "Ayşe", Email: "ayse@uni.edu", Role: models.RoleStudent}
	require.NoError(t, service.Register(ctx, user, "password-123"))
	_, first, err := service.Login(ctx, "ayse@uni.edu", "password-123")
	require.NoError(t, err)
	_, second, err := service.Login(ctx, "ayse@uni.edu", "password-123")
	require.NoError(t, err)
	require.Len(t, tokens.tokens, 2)

	require.NoError(t, service.LogoutAll(ctx, user.ID))
	assert.Empty(t, tokens.tokens)

	_, _, err = service.RefreshToken(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	_, _, err = service.RefreshToken(ctx, second.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}
