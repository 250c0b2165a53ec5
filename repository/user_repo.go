package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"safecheck-backend/dal"
	"safecheck-backend/models"
	"safecheck-backend/utils"
	"safecheck-backend/utils/logger"
)

type UserRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

func NewUserRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	r.logger.Infof("Creating user: %s", user.Email)

	// Check for duplicate email
	var existingByEmail []*models.User
	err := r.db.QueryByIndex(ctx, r.config.DynamoDBTablePrefix+"_users", "email-index", "email", user.Email, &existingByEmail)
	if err == nil && len(existingByEmail) > 0 {
		return nil, errors.New("user with this email already exists")
	}

	// Check for duplicate username
	var existingByUsername []*models.User
	err = r.db.QueryByIndex(ctx, r.config.DynamoDBTablePrefix+"_users", "username-index", "username", user.Username, &existingByUsername)
	if err == nil && len(existingByUsername) > 0 {
		return nil, errors.New("user with this username already exists")
	}

	now := time.Now()
	user.ID = utils.GenerateUUID()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Status == "" {
		user.Status = models.UserStatusActive
	}
	if user.Role == "" {
		user.Role = models.UserRoleEmployee
	}

	err = r.db.PutItem(ctx, r.config.DynamoDBTablePrefix+"_users", user)
	if err != nil {
		r.logger.Errorf("Failed to create user: %v", err)
		return nil, err
	}

	r.logger.Infof("User created successfully: %s", user.ID)
	return user, nil
}

// GetUser accepts a user ID, email address or username and resolves the
// lookup strategy from the shape of the key.
func (r *UserRepository) GetUser(key string) ([]*models.User, error) {
	ctx := context.Background()

	if key == "" {
		return nil, errors.New("user key is required")
	}

	user := models.User{}
	keyType, indexName, keyName := r.determineKeyType(key)

	var config models.QueryConfig

	if keyType == "id" {
		config = models.QueryConfig{
			TableName: r.config.DynamoDBTablePrefix + "_users",
			KeyName:   "id",
			KeyValue:  key,
			KeyType:   models.StringType,
		}
	} else {
		config = models.QueryConfig{
			TableName: r.config.DynamoDBTablePrefix + "_users",
			IndexName: indexName,
			KeyName:   keyName,
			KeyValue:  key,
			KeyType:   models.StringType,
		}
	}

	r.logger.Infof("Querying %s table with %s: %s", r.config.DynamoDBTablePrefix, keyName, key)

	err := r.db.GetItem(ctx, config, &user)
	if err != nil {
		r.logger.Errorf("Failed to get user by %s: %v", keyName, err)
		return nil, fmt.Errorf("failed to get user by %s: %w", keyName, err)
	}

	if user.ID == "" {
		return nil, errors.New("user not found")
	}

	return []*models.User{&user}, nil
}

func (r *UserRepository) UpdateUser(id string, user *models.User) (*models.User, error) {
	ctx := context.Background()
	r.logger.Infof("Updating user: %s", id)

	if id == "" {
		return nil, errors.New("user ID is required")
	}

	existing, err := r.GetUser(id)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	if len(existing) == 0 {
		return nil, errors.New("user not found")
	}

	user.ID = id
	user.CreatedAt = existing[0].CreatedAt
	if user.PasswordHash == "" {
		user.PasswordHash = existing[0].PasswordHash
	}
	user.UpdatedAt = time.Now()

	err = r.db.PutItem(ctx, r.config.DynamoDBTablePrefix+"_users", user)
	if err != nil {
		r.logger.Errorf("Failed to update user: %v", err)
		return nil, err
	}

	r.logger.Infof("User updated successfully: %s", id)
	return user, nil
}

func (r *UserRepository) determineKeyType(key string) (keyType, indexName, keyName string) {
	uuidPattern := `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`
	isUUID, _ := regexp.MatchString(uuidPattern, strings.ToLower(key))

	if isUUID {
		return "id", "", "id"
	}
	if strings.Contains(key, "@") {
		return "email", "email-index", "email"
	}
	return "username", "username-index", "username"
}
