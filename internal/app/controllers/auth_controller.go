package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ozan/academix/internal/app/models"
	"github.com/ozan/academix/internal/app/models/dto"
	"github.com/ozan/academix/internal/app/services"
	"github.com/ozan/academix/internal/middleware"
)

// AuthController handles authentication endpoints
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new auth controller
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

func toUserResponse(user *models.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         string(user.Role),
		DepartmentID: user.DepartmentID,
	}
	if user.StudentID != nil {
		resp.StudentID = *user.StudentID
	}
	if user.EmployeeID != nil {
		resp.EmployeeID = *user.EmployeeID
	}
	return resp
}

func toTokenResponse(tokens *services.AuthTokens) dto.TokenResponse {
	return dto.TokenResponse{
		AccessToken:           tokens.AccessToken,
		TokenType:             "Bearer",
		ExpiresIn:             tokens.ExpiresIn,
		RefreshToken:          tokens.RefreshToken,
		RefreshTokenExpiresIn: tokens.RefreshExpiresIn,
	}
}

// Register creates a new user account
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	role, _ := models.ParseRole(req.Role)
	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		Role:         role,
		DepartmentID: req.DepartmentID,
	}
	if req.StudentID != "" {
		user.StudentID = &req.StudentID
	}
	if req.EmployeeID != "" {
		user.EmployeeID = &req.EmployeeID
	}

	if err := c.authService.Register(ctx.Request.Context(), user, req.Password); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, toUserResponse(user))
}

// Login authenticates a user and issues a token pair
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	user, tokens, err := c.authService.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AuthResponse{
		Token: toTokenResponse(tokens),
		User:  toUserResponse(user),
	})
}

// Refresh rotates a refresh token and issues a fresh pair
func (c *AuthController) Refresh(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	user, tokens, err := c.authService.RefreshToken(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AuthResponse{
		Token: toTokenResponse(tokens),
		User:  toUserResponse(user),
	})
}

// Logout revokes the presented refresh token
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.authService.Logout(ctx.Request.Context(), req.RefreshToken); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Logged out"})
}

// LogoutAll revokes every session of the authenticated caller
func (c *AuthController) LogoutAll(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	if err := c.authService.LogoutAll(ctx.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Logged out everywhere"})
}

// Me returns the authenticated caller's profile
func (c *AuthController) Me(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	user, err := c.authService.GetUserByID(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateMe updates the authenticated caller's profile
func (c *AuthController) UpdateMe(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	user, err := c.authService.UpdateProfile(ctx.Request.Context(), userID, req.Name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toUserResponse(user))
}

// ListUsers returns active users filtered by role, optionally by department
func (c *AuthController) ListUsers(ctx *gin.Context) {
	role := ctx.DefaultQuery("role", "lecturer")

	departmentID, ok := parseOptionalID(ctx, "departmentId")
	if !ok {
		return
	}

	users, err := c.authService.ListUsersByRole(ctx.Request.Context(), role, departmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.UserListResponse{
		Users: make([]dto.UserResponse, 0, len(users)),
		Total: len(users),
	}
	for _, user := range users {
		resp.Users = append(resp.Users, toUserResponse(user))
	}

	ctx.JSON(http.StatusOK, resp)
}
