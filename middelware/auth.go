package middelware

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"safecheck-backend/models"
	"safecheck-backend/repository"
	"safecheck-backend/utils/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTManager handles JWT token operations
type JWTManager struct {
	Config            *models.Config
	Logger            logger.Logger
	UserRepo          repository.UserRepositoryInterface
	BlacklistedTokens map[string]time.Time // tokenID -> blacklist expiry, for immediate revocation
	TokenMutex        sync.RWMutex
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(cfg *models.Config, log logger.Logger, userRepo repository.UserRepositoryInterface) *JWTManager {
	return &JWTManager{
		Config:            cfg,
		Logger:            log,
		UserRepo:          userRepo,
		BlacklistedTokens: make(map[string]time.Time),
	}
}

// GenerateToken generates a JWT token for a user
func (j *JWTManager) GenerateToken(user *models.User) (string, error) {
	claims := models.JWTClaims{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
		Role:     user.Role,
		Status:   user.Status,
		OrgID:    user.OrgID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   user.ID,
			Issuer:    j.Config.AppName,
			Audience:  jwt.ClaimStrings{j.Config.AppName},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.Config.JWTExpiresIn)),
			NotBefore: jwt.NewNumericDate(time.Now()),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(j.Config.JWTSecret))
	if err != nil {
		j.Logger.Errorf("Failed to sign JWT token: %v", err)
		return "", err
	}

	j.Logger.Debugf("Generated JWT token for user: %s", user.ID)

	return tokenString, nil
}

// validateUserStatus checks if user account is in valid state
func (j *JWTManager) validateUserStatus(user *models.User) error {
	if user.Status != models.UserStatusActive {
		return fmt.Errorf("user account is %s", user.Status)
	}

	if user.AccountLockedUntil != nil && user.AccountLockedUntil.After(time.Now()) {
		return fmt.Errorf("account is locked until %s", user.AccountLockedUntil.Format(time.RFC3339))
	}

	return nil
}

// ValidateToken validates a JWT token and returns the claims with database cross-verification
func (j *JWTManager) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Prevent algorithm confusion attacks
		if method, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		} else if method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("invalid signing algorithm: %v", method.Alg())
		}

		return []byte(j.Config.JWTSecret), nil
	})

	if err != nil {
		j.Logger.Errorf("Failed to parse JWT token: %v", err)
		return nil, err
	}

	if !token.Valid {
		j.Logger.Error("Invalid JWT token")
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok {
		j.Logger.Error("Failed to extract JWT claims")
		return nil, fmt.Errorf("invalid claims")
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		j.Logger.Error("JWT token expired")
		return nil, fmt.Errorf("token expired")
	}

	if claims.NotBefore != nil && claims.NotBefore.After(time.Now()) {
		j.Logger.Error("JWT token not yet valid")
		return nil, fmt.Errorf("token not yet valid")
	}

	j.TokenMutex.RLock()
	if expiry, exists := j.BlacklistedTokens[claims.ID]; exists && expiry.After(time.Now()) {
		j.TokenMutex.RUnlock()
		j.Logger.Error("Token is blacklisted")
		return nil, fmt.Errorf("token has been revoked")
	}
	j.TokenMutex.RUnlock()

	// Cross-verify with database
	if j.UserRepo != nil {
		dbUsers, err := j.UserRepo.GetUser(claims.UserID)
		if err != nil {
			j.Logger.Errorf("Failed to verify user in database: %v", err)
			return nil, fmt.Errorf("user verification failed")
		}

		if len(dbUsers) == 0 {
			j.Logger.Errorf("User %s not found in database", claims.UserID)
			return nil, fmt.Errorf("user not found")
		}

		if err := j.validateUserStatus(dbUsers[0]); err != nil {
			j.Logger.Errorf("User status validation failed for %s: %v", claims.UserID, err)
			return nil, err
		}
	}

	j.Logger.Debugf("Successfully validated JWT token for user: %s", claims.UserID)
	return claims, nil
}

// RevokeToken adds a token to the blacklist (logout)
func (j *JWTManager) RevokeToken(tokenID string, expiry time.Time) {
	j.TokenMutex.Lock()
	defer j.TokenMutex.Unlock()

	j.BlacklistedTokens[tokenID] = expiry

	j.Logger.Debugf("Revoked token: %s", tokenID)
}

// CleanupExpiredTokens removes expired tokens from the blacklist
func (j *JWTManager) CleanupExpiredTokens() {
	j.TokenMutex.Lock()
	defer j.TokenMutex.Unlock()

	now := time.Now()
	for tokenID, expiry := range j.BlacklistedTokens {
		if expiry.Before(now) {
			delete(j.BlacklistedTokens, tokenID)
		}
	}
}

// AuthMiddleware validates the JWT token from the Authorization header and
// places the authenticated claims and the derived viewer context on the
// request context.
func (j *JWTManager) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" {
			j.Logger.Error("Missing Authorization header")
			c.JSON(http.StatusUnauthorized, models.APIResponse{
				Status:  "error",
				Code:    http.StatusUnauthorized,
				Message: "Missing Authorization header",
				Error: &models.APIError{
					Type:    "AuthenticationError",
					Details: "Authorization header is required",
				},
			})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			j.Logger.Error("Invalid Authorization header format")
			c.JSON(http.StatusUnauthorized, models.APIResponse{
				Status:  "error",
				Code:    http.StatusUnauthorized,
				Message: "Invalid Authorization header format",
				Error: &models.APIError{
					Type:    "AuthenticationError",
					Details: "Authorization header must be in format: Bearer <token>",
				},
			})
			c.Abort()
			return
		}
		tokenString := strings.TrimSpace(parts[1])

		claims, err := j.ValidateToken(tokenString)
		if err != nil {
			j.Logger.Errorf("Token validation failed: %v", err)
			c.JSON(http.StatusUnauthorized, models.APIResponse{
				Status:  "error",
				Code:    http.StatusUnauthorized,
				Message: "Invalid or expired token",
				Error: &models.APIError{
					Type:    "AuthenticationError",
					Details: err.Error(),
				},
			})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("jwt_claims", claims)
		c.Set("viewer", claims.Viewer())

		j.Logger.Debugf("User authenticated: %s", claims.UserID)
		c.Next()
	}
}

// RequireRole middleware checks if the authenticated user has one of the
// given roles.
func (j *JWTManager) RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, exists := c.Get("jwt_claims")
		if !exists {
			j.Logger.Error("JWT claims not found in context")
			c.JSON(http.StatusUnauthorized, models.APIResponse{
				Status:  "error",
				Code:    http.StatusUnauthorized,
				Message: "Authentication required",
				Error: &models.APIError{
					Type:    "AuthenticationError",
					Details: "User not authenticated",
				},
			})
			c.Abort()
			return
		}

		jwtClaims := claims.(*models.JWTClaims)

		allowed := false
		for _, role := range roles {
			if jwtClaims.Role == role {
				allowed = true
				break
			}
		}

		if !allowed {
			j.Logger.Errorf("User %s does not have a required role: %v", jwtClaims.UserID, roles)
			c.JSON(http.StatusForbidden, models.APIResponse{
				Status:  "error",
				Code:    http.StatusForbidden,
				Message: "Insufficient permissions",
				Error: &models.APIError{
					Type:    "AuthorizationError",
					Details: fmt.Sprintf("Required role: %v", roles),
				},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// TokenValidationRequest represents the request body for token validation
type TokenValidationRequest struct {
	Token string `json:"token" binding:"required"`
}

// ValidateTokenEndpoint provides an API endpoint to validate tokens
func (j *JWTManager) ValidateTokenEndpoint(c *gin.Context) {
	var req TokenValidationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		j.Logger.Error("Failed to bind JSON:", err)
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: "Token is required in request body",
			},
		})
		return
	}

	tokenString := strings.TrimSpace(req.Token)
	if tokenString == "" {
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Empty token provided",
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: "Token cannot be empty",
			},
		})
		return
	}

	claims, err := j.ValidateToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.APIResponse{
			Status:  "error",
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired token",
			Error: &models.APIError{
				Type:    "AuthenticationError",
				Details: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Token is valid",
		Data: map[string]interface{}{
			"valid":      true,
			"user_id":    claims.UserID,
			"email":      claims.Email,
			"username":   claims.Username,
			"role":       claims.Role,
			"status":     claims.Status,
			"expires_at": claims.ExpiresAt,
			"issued_at":  claims.IssuedAt,
		},
	})
}
