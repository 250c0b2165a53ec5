package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims represents the JWT claims carried for an authenticated viewer.
type JWTClaims struct {
	UserID   string     `json:"user_id"`
	Email    string     `json:"email"`
	Username string     `json:"username"`
	Role     UserRole   `json:"role"`
	Status   UserStatus `json:"status"`
	OrgID    string     `json:"orgID,omitempty"`

	jwt.RegisteredClaims
}

// Viewer builds the scheduling engine's viewer context from the claims.
func (c *JWTClaims) Viewer() ViewerContext {
	return ViewerContext{
		ViewerID: c.UserID,
		Role:     c.Role.ViewerRole(),
	}
}

// LoginRequest represents the login credentials payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned on successful authentication.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
	User      *User  `json:"user"`
}
