package dto

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int    `json:"expiresIn"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int    `json:"refreshTokenExpiresIn,omitempty"`
}

// RefreshTokenRequest represents refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	Role         string `json:"role" binding:"required,oneof=admin lecturer student"`
	StudentID    string `json:"studentId,omitempty"`
	EmployeeID   string `json:"employeeId,omitempty"`
	DepartmentID *int64 `json:"departmentId,omitempty" binding:"omitempty,gt=0"`
}

// UserResponse represents basic user information
type UserResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	StudentID    string `json:"studentId,omitempty"`
	EmployeeID   string `json:"employeeId,omitempty"`
	DepartmentID *int64 `json:"departmentId,omitempty"`
}

// UpdateProfileRequest represents a profile update for the authenticated user
type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required"`
}

// UserListResponse represents a list of users
type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}
