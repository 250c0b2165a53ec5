package controller

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"safecheck-backend/middelware"
	"safecheck-backend/models"
	"safecheck-backend/services"
	"safecheck-backend/utils"
	"safecheck-backend/utils/logger"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	ctx         context.Context
	userService services.UserServiceInterface
	jwtManager  *middelware.JWTManager
	logger      logger.Logger
}

func NewUserController(ctx context.Context, userService services.UserServiceInterface, logger logger.Logger, jwtManager *middelware.JWTManager) *UserController {
	return &UserController{
		ctx:         ctx,
		userService: userService,
		logger:      logger,
		jwtManager:  jwtManager,
	}
}

// Register handles POST /api/v1/user/register
// @Summary Register a new user
// @Description Create a new user account
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.RegisterUser true "Registration request"
// @Success 201 {object} models.APIResponse "User registered successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Invalid registration data"
// @Failure 500 {object} models.APIResponse "Internal Server Error - Registration failed"
// @Router /user/register [post]
func (h *UserController) Register(c *gin.Context) {
	var req models.RegisterUser
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON:", err)
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Invalid request",
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: err.Error(),
			},
		})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		h.logger.Errorf("Failed to hash password: %v", err)
		c.JSON(http.StatusInternalServerError, models.APIResponse{
			Status:  "error",
			Code:    http.StatusInternalServerError,
			Message: "Failed to create user",
			Error: &models.APIError{
				Type:    "InternalError",
				Details: "password hashing failed",
			},
		})
		return
	}

	user := &models.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
		OrgID:        req.OrgID,
	}
	if req.Phone != "" {
		user.Phone = &req.Phone
	}

	created, err := h.userService.CreateUser(user)
	if err != nil {
		h.logger.Error("Failed to create user", fmt.Errorf("error: %v", err))
		c.JSON(http.StatusInternalServerError, models.APIResponse{
			Status:  "error",
			Code:    http.StatusInternalServerError,
			Message: "Failed to create user",
			Error: &models.APIError{
				Type:    "DatabaseError",
				Details: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, models.APIResponse{
		Status:  "success",
		Code:    http.StatusCreated,
		Message: "User registered successfully",
		Data:    created,
	})
}

// Login handles POST /api/v1/user/login
// @Summary Authenticate a user
// @Description Verify credentials and issue a JWT token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login credentials"
// @Success 200 {object} models.APIResponse "Token generated successfully"
// @Failure 401 {object} models.APIResponse "Unauthorized - Invalid credentials"
// @Router /user/login [post]
func (h *UserController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON:", err)
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Invalid request",
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: "Email and password are required",
			},
		})
		return
	}

	user, err := h.userService.GetUserByEmail(req.Email)
	if err != nil {
		h.logger.Errorf("Login failed for %s: %v", req.Email, err)
		c.JSON(http.StatusUnauthorized, models.APIResponse{
			Status:  "error",
			Code:    http.StatusUnauthorized,
			Message: "Invalid email or password",
			Error: &models.APIError{
				Type:    "AuthenticationError",
				Details: "Invalid email or password",
			},
		})
		return
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		h.logger.Errorf("Invalid password for %s", req.Email)
		c.JSON(http.StatusUnauthorized, models.APIResponse{
			Status:  "error",
			Code:    http.StatusUnauthorized,
			Message: "Invalid email or password",
			Error: &models.APIError{
				Type:    "AuthenticationError",
				Details: "Invalid email or password",
			},
		})
		return
	}

	token, err := h.jwtManager.GenerateToken(user)
	if err != nil {
		h.logger.Error("Token generation failed", err)
		c.JSON(http.StatusInternalServerError, models.APIResponse{
			Status:  "error",
			Code:    http.StatusInternalServerError,
			Message: "Token generation failed",
			Error: &models.APIError{
				Type:    "TokenError",
				Details: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Token generated successfully",
		Data: models.LoginResponse{
			Token:     token,
			ExpiresIn: int64(h.jwtManager.Config.JWTExpiresIn.Seconds()),
			User:      user,
		},
	})
}

// ValidateToken handles POST /api/v1/user/validate
// @Summary Validate a JWT token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body middelware.TokenValidationRequest true "Token to validate"
// @Success 200 {object} models.APIResponse "Token is valid"
// @Failure 401 {object} models.APIResponse "Unauthorized - Invalid token"
// @Router /user/validate [post]
func (h *UserController) ValidateToken(c *gin.Context) {
	h.jwtManager.ValidateTokenEndpoint(c)
}

// Logout handles POST /api/v1/user/logout
// @Summary Log out the authenticated user
// @Description Revoke the presented token
// @Tags Authentication
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse "Logged out"
// @Router /user/logout [post]
func (h *UserController) Logout(c *gin.Context) {
	value, exists := c.Get("jwt_claims")
	if !exists {
		c.JSON(http.StatusUnauthorized, models.APIResponse{
			Status:  "error",
			Code:    http.StatusUnauthorized,
			Message: "Authentication required",
			Error: &models.APIError{
				Type:    "AuthenticationError",
				Details: "User not authenticated",
			},
		})
		return
	}

	claims := value.(*models.JWTClaims)
	expiry := time.Now().Add(h.jwtManager.Config.JWTExpiresIn)
	if claims.ExpiresAt != nil {
		expiry = claims.ExpiresAt.Time
	}
	h.jwtManager.RevokeToken(claims.ID, expiry)

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Logged out successfully",
	})
}

// GetUser handles GET /api/v1/user/:id
// @Summary Get user details
// @Description Retrieve user details by ID, email or username
// @Tags User Management
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.APIResponse "User found"
// @Failure 404 {object} models.APIResponse "User not found"
// @Router /user/{id} [get]
func (h *UserController) GetUser(c *gin.Context) {
	id := c.Param("id")

	user, err := h.userService.GetUserByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, models.APIResponse{
			Status:  "error",
			Code:    http.StatusNotFound,
			Message: "User not found",
			Error: &models.APIError{
				Type:    "NotFoundError",
				Details: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "User retrieved successfully",
		Data:    user,
	})
}
