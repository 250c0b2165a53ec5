package main

import (
	"context"
	"log"

	"safecheck-backend/controller"
	"safecheck-backend/dal"
	"safecheck-backend/middelware"
	"safecheck-backend/models"
	"safecheck-backend/utils"
	"safecheck-backend/utils/logger"
	"safecheck-backend/worker"

	"github.com/gin-gonic/gin"
)

var config *models.Config

func Init() {
	var err error
	config, err = utils.GetConfig()
	if err != nil {
		log.Fatal(err)
	}
}

// @title SafeCheck Backend API
// @version 1.0
// @description Recurring safety-check scheduling backend with DynamoDB storage
// @description
// @description ## AUTHENTICATION FLOW:
// @description ### Step 1: Register User
// @description **POST /user/register** - Create an account (no token generated)
// @description `{"email": "user@example.com", "username": "rita", "password": "pass123", "first_name": "Rita", "last_name": "Okafor"}`
// @description ### Step 2: Login
// @description **POST /user/login** - Obtain a Bearer token, then pass it as `Authorization: Bearer YOUR_TOKEN`

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8082
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Authorization header using the Bearer scheme. Enter 'Bearer' [space] and then your token.
func main() {
	Init()

	appLogger := logger.NewLogger(config.LogLevel, config.LogFormat)
	appLogger.Infof("Starting %s v%s (%s)", config.AppName, config.AppVersion, config.AppEnv)

	ctx := context.Background()

	r := gin.New()
	logging := middelware.NewLoggingMiddleware(appLogger)
	r.Use(logging.StructuredLogger())
	r.Use(logging.Recovery())
	r.Use(middelware.NewCORSMiddleware(config).CORS())

	c := controller.NewController(ctx, config, appLogger)

	// Start server (this is blocking)
	go func() {
		if err := c.RegisterRoutes(ctx, config, r, config.BasePath); err != nil {
			appLogger.Fatalf("Server stopped: %v", err)
		}
	}()

	// Start the table provisioning worker in the background
	dbclient, err := dal.NewDynamoDBClient(config, appLogger)
	if err != nil {
		appLogger.Fatalf("Failed to initialize DynamoDB client for worker: %v", err)
	}

	provisioner, err := worker.NewService(ctx, config, appLogger, dbclient)
	if err != nil {
		log.Fatalf("Failed to create provisioning worker: %v", err)
	}

	if err := provisioner.StartInBackground(); err != nil {
		appLogger.Fatalf("Failed to start provisioning worker: %v", err)
	}

	// Keep main goroutine alive
	select {}
}
