package controller

import (
	"context"
	"net/http"
	"strconv"

	"safecheck-backend/dal"
	"safecheck-backend/middelware"
	"safecheck-backend/models"
	"safecheck-backend/repository"
	"safecheck-backend/services"
	"safecheck-backend/utils/logger"
	"safecheck-backend/utils/swagger"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	User      *UserController
	Schedule  *ScheduleController
	Equipment *EquipmentController
	Check     *CheckController

	jwtManager *middelware.JWTManager
}

func NewController(ctx context.Context, cfg *models.Config, log logger.Logger) *Controller {
	dbclient, err := dal.NewDynamoDBClient(cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize DynamoDB client: %v", err)
	}

	userRepo := repository.NewUserRepository(dbclient, cfg, log)
	jwtManager := middelware.NewJWTManager(cfg, log, userRepo)

	container := services.NewService(ctx, dbclient, log, cfg)

	return &Controller{
		User:       NewUserController(ctx, container.GetUserService(), log, jwtManager),
		Schedule:   NewScheduleController(container.GetScheduleService(), log),
		Equipment:  NewEquipmentController(ctx, container.GetEquipmentService(), log),
		Check:      NewCheckController(ctx, container.GetCheckService(), log),
		jwtManager: jwtManager,
	}
}

func (c *Controller) RegisterRoutes(ctx context.Context, config *models.Config, r *gin.Engine, basePath string) error {
	v1 := r.Group(basePath)

	// Health check endpoint (no auth required)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"version": config.AppVersion,
			"service": config.AppName,
		})
	})

	// Interactive API docs (no auth required)
	v1.GET("/docs", swagger.ServeSwaggerUI(swagger.SwaggerConfig{
		Title:         config.AppName + " API",
		SwaggerDocURL: basePath + "/docs/doc.json",
	}))

	auth := c.jwtManager.AuthMiddleware()

	// User routes
	user := v1.Group("/user")
	user.POST("/register", c.User.Register)
	user.POST("/login", c.User.Login)
	user.POST("/validate", c.User.ValidateToken)
	user.POST("/logout", auth, c.User.Logout)
	user.GET("/:id", auth, c.User.GetUser)

	// Schedule routes
	schedule := v1.Group("/schedule")
	schedule.GET("", auth, c.Schedule.GetScheduleView)
	schedule.GET("/overdue-count", auth, c.Schedule.GetOverdueCount)

	// Equipment routes
	equipment := v1.Group("/equipment")
	equipment.GET("", auth, c.Equipment.ListEquipment)
	equipment.GET("/:id", auth, c.Equipment.GetEquipment)
	equipment.POST("", auth, c.jwtManager.RequireRole(models.UserRoleAdmin, models.UserRoleOwner), c.Equipment.CreateEquipment)
	equipment.PATCH("/:id", auth, c.jwtManager.RequireRole(models.UserRoleAdmin, models.UserRoleOwner), c.Equipment.UpdateEquipment)
	equipment.DELETE("/:id", auth, c.jwtManager.RequireRole(models.UserRoleAdmin, models.UserRoleOwner), c.Equipment.DeleteEquipment)

	// Safety check routes
	checks := v1.Group("/checks")
	checks.POST("", auth, c.Check.SubmitCheck)
	checks.GET("", auth, c.Check.GetCheckHistory)

	// Create HTTP server
	srv := &http.Server{
		Addr:    config.AppHost + ":" + config.AppPort,
		Handler: r,
	}
	// Start server
	log := logger.NewLogger(config.LogLevel, config.LogFormat)
	log.Infof("Starting server on %s:%s", config.AppHost, config.AppPort)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// paginationParams reads page/limit query parameters, defaulting to page 1
// with 10 items and capping limit at 100.
func paginationParams(c *gin.Context) (int, int) {
	page := 1
	limit := 10

	if pageParam := c.Query("page"); pageParam != "" {
		if p, err := strconv.Atoi(pageParam); err == nil && p > 0 {
			page = p
		}
	}

	if limitParam := c.Query("limit"); limitParam != "" {
		if l, err := strconv.Atoi(limitParam); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	return page, limit
}

// paginate slices items for the requested page and builds the pagination
// metadata block.
func paginate[T any](items []T, page, limit int) ([]T, map[string]interface{}) {
	total := len(items)
	totalPages := (total + limit - 1) / limit
	offset := (page - 1) * limit

	pageItems := []T{}
	if offset < total {
		end := offset + limit
		if end > total {
			end = total
		}
		pageItems = items[offset:end]
	}

	return pageItems, map[string]interface{}{
		"page":         page,
		"limit":        limit,
		"total":        total,
		"total_pages":  totalPages,
		"has_next":     page < totalPages,
		"has_previous": page > 1,
	}
}

// viewerFrom extracts the authenticated viewer context placed by the auth
// middleware.
func viewerFrom(c *gin.Context) (models.ViewerContext, bool) {
	value, exists := c.Get("viewer")
	if !exists {
		return models.ViewerContext{}, false
	}
	viewer, ok := value.(models.ViewerContext)
	return viewer, ok
}
