package utils

import (
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

// UtilsTestSuite defines a test suite for utils functions
type UtilsTestSuite struct {
	suite.Suite
	originalEnv map[string]string
}

// SetupTest runs before each test
func (suite *UtilsTestSuite) SetupTest() {
	suite.originalEnv = make(map[string]string)
	envVars := []string{
		"APP_NAME", "APP_VERSION", "APP_ENV", "APP_HOST", "APP_PORT",
		"JWT_SECRET", "JWT_EXPIRES_IN",
		"AWS_REGION", "AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY",
		"DYNAMODB_ENDPOINT", "DYNAMODB_TABLE_PREFIX",
		"LOG_LEVEL", "LOG_FORMAT",
		"CORS_ORIGINS", "BASEPATH",
	}

	for _, envVar := range envVars {
		suite.originalEnv[envVar] = os.Getenv(envVar)
		os.Unsetenv(envVar)
	}
}

// TearDownTest restores the environment
func (suite *UtilsTestSuite) TearDownTest() {
	for envVar, value := range suite.originalEnv {
		if value != "" {
			os.Setenv(envVar, value)
		} else {
			os.Unsetenv(envVar)
		}
	}
}

func (suite *UtilsTestSuite) TestGetConfigDefaults() {
	config, err := GetConfig()
	assert.NoError(suite.T(), err)
	require.NotNil(suite.T(), config)

	assert.Equal(suite.T(), "SafeCheck Backend", config.AppName)
	assert.Equal(suite.T(), "development", config.AppEnv)
	assert.Equal(suite.T(), "dev", config.DynamoDBTablePrefix)
	assert.Equal(suite.T(), "/api/v1", config.BasePath)
	assert.ElementsMatch(suite.T(), []string{"equipment", "safety_checks", "users"}, config.Tables)
}

func (suite *UtilsTestSuite) TestGetConfigEnvironmentOverrides() {
	os.Setenv("APP_NAME", "Test App")
	os.Setenv("APP_ENV", "staging")
	os.Setenv("AWS_REGION", "eu-west-1")
	os.Setenv("DYNAMODB_TABLE_PREFIX", "staging")
	os.Setenv("LOG_LEVEL", "debug")

	config, err := GetConfig()
	assert.NoError(suite.T(), err)
	require.NotNil(suite.T(), config)

	assert.Equal(suite.T(), "Test App", config.AppName)
	assert.Equal(suite.T(), "staging", config.AppEnv)
	assert.Equal(suite.T(), "eu-west-1", config.AWSRegion)
	assert.Equal(suite.T(), "staging", config.DynamoDBTablePrefix)
	assert.Equal(suite.T(), "debug", config.LogLevel)
}

func (suite *UtilsTestSuite) TestGetConfigProductionRequiresSecret() {
	os.Setenv("APP_ENV", "production")

	_, err := GetConfig()
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "JWT_SECRET")
}

func (suite *UtilsTestSuite) TestGetConfigJWTExpiry() {
	os.Setenv("JWT_EXPIRES_IN", "1h")

	config, err := GetConfig()
	assert.NoError(suite.T(), err)
	require.NotNil(suite.T(), config)
	assert.Equal(suite.T(), time.Hour, config.JWTExpiresIn)
}

func (suite *UtilsTestSuite) TestGenerateUUID() {
	id := GenerateUUID()
	_, err := uuid.Parse(id)
	assert.NoError(suite.T(), err)

	assert.NotEqual(suite.T(), id, GenerateUUID())
}

func (suite *UtilsTestSuite) TestHashAndCheckPassword() {
	hash, err := HashPassword("s3cret-passw0rd")
	require.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), "s3cret-passw0rd", hash)

	// Bcrypt output should verify against the original password only
	assert.NoError(suite.T(), bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret-passw0rd")))
	assert.True(suite.T(), CheckPassword(hash, "s3cret-passw0rd"))
	assert.False(suite.T(), CheckPassword(hash, "wrong-password"))
}

func TestUtilsTestSuite(t *testing.T) {
	suite.Run(t, new(UtilsTestSuite))
}
