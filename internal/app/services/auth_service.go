package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ozan/academix/internal/app/models"
	"github.com/ozan/academix/internal/app/repositories"
	"github.com/ozan/academix/internal/pkg/apperrors"
	"github.com/ozan/academix/internal/pkg/auth"
	"github.com/ozan/academix/internal/pkg/dberrors"
	"github.com/ozan/academix/internal/pkg/logger"
	"github.com/ozan/academix/internal/pkg/validation"
)

// AuthTokens carries an issued token pair with expiry info in seconds.
type AuthTokens struct {
	AccessToken      string
	RefreshToken     string
	ExpiresIn        int
	RefreshExpiresIn int
}

// AuthService handles authentication and user registration
type AuthService struct {
	userRepo   userStore
	tokenRepo  tokenStore
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service instance
func NewAuthService(userRepo userStore, tokenRepo tokenStore, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
	}
}

// Register creates a new user account with a hashed password
func (s *AuthService) Register(ctx context.Context, user *models.User, password string) error {
	if !validation.IsValidEmail(user.Email) {
		return apperrors.NewBadRequestError("invalid email address")
	}

	if _, ok := models.ParseRole(string(user.Role)); !ok {
		return apperrors.NewBadRequestError("invalid role")
	}

	exists, err := s.userRepo.EmailExists(ctx, user.Email)
	if err != nil {
		return fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	user.Password = hashed
	user.IsActive = true

	if err := s.userRepo.Create(ctx, user); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	logger.Info().Int64("userId", user.ID).Str("role", string(user.Role)).Msg("User registered")
	return nil
}

// Login verifies credentials and issues a token pair. The refresh token is
// stored server-side for rotation and revocation.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, *AuthTokens, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("error retrieving user: %w", err)
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, nil, apperrors.ErrAccountDisabled
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		// Login still succeeds; the stamp is best-effort.
		logger.Warn().Err(err).Int64("userId", user.ID).Msg("Failed to update last login")
	}

	return user, tokens, nil
}

// RefreshToken rotates a refresh token: the presented token is consumed and a
// fresh pair is issued.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*models.User, *AuthTokens, error) {
	stored, err := s.tokenRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repositories.ErrTokenNotFound) {
			return nil, nil, apperrors.ErrTokenInvalid
		}
		return nil, nil, fmt.Errorf("error retrieving refresh token: %w", err)
	}

	if stored.IsExpired() {
		_ = s.tokenRepo.Delete(ctx, refreshToken)
		return nil, nil, apperrors.ErrTokenExpired
	}

	user, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, nil, apperrors.ErrTokenInvalid
		}
		return nil, nil, fmt.Errorf("error retrieving user: %w", err)
	}

	if !user.IsActive {
		return nil, nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenRepo.Delete(ctx, refreshToken); err != nil && !errors.Is(err, repositories.ErrTokenNotFound) {
		return nil, nil, fmt.Errorf("error consuming refresh token: %w", err)
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	return user, tokens, nil
}

// Logout revokes a refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.tokenRepo.Delete(ctx, refreshToken); err != nil {
		if errors.Is(err, repositories.ErrTokenNotFound) {
			return apperrors.ErrTokenNotFound
		}
		return fmt.Errorf("error revoking refresh token: %w", err)
	}
	return nil
}

// LogoutAll revokes every refresh token issued to the user, ending all of
// their sessions at once.
func (s *AuthService) LogoutAll(ctx context.Context, userID int64) error {
	if err := s.tokenRepo.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("error revoking refresh tokens: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user's profile
func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// ListUsersByRole returns active users holding the given role, optionally
// restricted to a department. Used by the admin directory endpoints.
func (s *AuthService) ListUsersByRole(ctx context.Context, roleValue string, departmentID *int64) ([]*models.User, error) {
	role, ok := models.ParseRole(roleValue)
	if !ok {
		return nil, apperrors.NewBadRequestError("invalid role")
	}

	users, err := s.userRepo.ListByRole(ctx, role, departmentID)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	return users, nil
}

// UpdateProfile changes the mutable fields of the caller's own profile.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, name string) (*models.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Name = name
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	return user, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*AuthTokens, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	if err := s.tokenRepo.Create(ctx, &models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: s.jwtService.RefreshTokenExpiry(),
	}); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	return &AuthTokens{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
	}, nil
}
