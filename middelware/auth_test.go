package middelware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"safecheck-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type testLogger struct{}

func (testLogger) Debug(args ...interface{})                 {}
func (testLogger) Info(args ...interface{})                  {}
func (testLogger) Warn(args ...interface{})                  {}
func (testLogger) Error(args ...interface{})                 {}
func (testLogger) Debugf(format string, args ...interface{}) {}
func (testLogger) Infof(format string, args ...interface{})  {}
func (testLogger) Warnf(format string, args ...interface{})  {}
func (testLogger) Errorf(format string, args ...interface{}) {}
func (testLogger) Fatal(args ...interface{})                 {}
func (testLogger) Fatalf(format string, args ...interface{}) {}

// MockUserRepository implements repository.UserRepositoryInterface for testing
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUser(key string) ([]*models.User, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(id string, user *models.User) (*models.User, error) {
	args := m.Called(id, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type JWTManagerTestSuite struct {
	suite.Suite
	manager  *JWTManager
	userRepo *MockUserRepository
	user     *models.User
}

func (suite *JWTManagerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.userRepo = &MockUserRepository{}
	suite.manager = NewJWTManager(&models.Config{
		AppName:      "SafeCheck Backend",
		JWTSecret:    "test-secret-key-for-unit-tests",
		JWTExpiresIn: time.Hour,
	}, testLogger{}, suite.userRepo)

	suite.user = &models.User{
		ID:       "user-1",
		Email:    "officer@example.com",
		Username: "officer1",
		Role:     models.UserRoleSafetyOfficer,
		Status:   models.UserStatusActive,
	}
}

func TestJWTManagerTestSuite(t *testing.T) {
	suite.Run(t, new(JWTManagerTestSuite))
}

func (suite *JWTManagerTestSuite) TestGenerateAndValidateToken() {
	suite.userRepo.On("GetUser", "user-1").Return([]*models.User{suite.user}, nil)

	token, err := suite.manager.GenerateToken(suite.user)
	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), token)

	claims, err := suite.manager.ValidateToken(token)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "user-1", claims.UserID)
	assert.Equal(suite.T(), models.UserRoleSafetyOfficer, claims.Role)

	viewer := claims.Viewer()
	assert.Equal(suite.T(), "user-1", viewer.ViewerID)
	assert.True(suite.T(), viewer.Role.Restricted())
}

func (suite *JWTManagerTestSuite) TestValidateTokenRejectsWrongAlgorithm() {
	token := jwt.NewWithClaims(jwt.SigningMethodHS384, models.JWTClaims{UserID: "user-1"})
	signed, err := token.SignedString([]byte("test-secret-key-for-unit-tests"))
	assert.NoError(suite.T(), err)

	_, err = suite.manager.ValidateToken(signed)
	assert.Error(suite.T(), err)
}

func (suite *JWTManagerTestSuite) TestValidateTokenRejectsWrongSecret() {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, models.JWTClaims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte("some-other-secret"))
	assert.NoError(suite.T(), err)

	_, err = suite.manager.ValidateToken(signed)
	assert.Error(suite.T(), err)
}

func (suite *JWTManagerTestSuite) TestValidateTokenRejectsExpiredToken() {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, models.JWTClaims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte("test-secret-key-for-unit-tests"))
	assert.NoError(suite.T(), err)

	_, err = suite.manager.ValidateToken(signed)
	assert.Error(suite.T(), err)
}

func (suite *JWTManagerTestSuite) TestValidateTokenRejectsRevokedToken() {
	suite.userRepo.On("GetUser", "user-1").Return([]*models.User{suite.user}, nil)

	signed, err := suite.manager.GenerateToken(suite.user)
	assert.NoError(suite.T(), err)

	claims, err := suite.manager.ValidateToken(signed)
	assert.NoError(suite.T(), err)

	suite.manager.RevokeToken(claims.ID, time.Now().Add(time.Hour))

	_, err = suite.manager.ValidateToken(signed)
	assert.Error(suite.T(), err)
}

func (suite *JWTManagerTestSuite) TestValidateTokenRejectsInactiveUser() {
	suspended := *suite.user
	suspended.Status = models.UserStatusSuspended
	suite.userRepo.On("GetUser", "user-1").Return([]*models.User{&suspended}, nil)

	signed, err := suite.manager.GenerateToken(suite.user)
	assert.NoError(suite.T(), err)

	_, err = suite.manager.ValidateToken(signed)
	assert.Error(suite.T(), err)
}

func (suite *JWTManagerTestSuite) TestCleanupExpiredTokens() {
	suite.manager.RevokeToken("stale", time.Now().Add(-time.Minute))
	suite.manager.RevokeToken("fresh", time.Now().Add(time.Hour))

	suite.manager.CleanupExpiredTokens()

	suite.manager.TokenMutex.RLock()
	defer suite.manager.TokenMutex.RUnlock()
	assert.NotContains(suite.T(), suite.manager.BlacklistedTokens, "stale")
	assert.Contains(suite.T(), suite.manager.BlacklistedTokens, "fresh")
}

func (suite *JWTManagerTestSuite) serve(authHeader string, handlers ...gin.HandlerFunc) *httptest.ResponseRecorder {
	router := gin.New()
	chain := append([]gin.HandlerFunc{suite.manager.AuthMiddleware()}, handlers...)
	router.GET("/protected", append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})...)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func (suite *JWTManagerTestSuite) TestAuthMiddlewareAcceptsValidToken() {
	suite.userRepo.On("GetUser", "user-1").Return([]*models.User{suite.user}, nil)

	token, _ := suite.manager.GenerateToken(suite.user)
	recorder := suite.serve("Bearer " + token)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)
}

func (suite *JWTManagerTestSuite) TestAuthMiddlewareRejectsMissingHeader() {
	recorder := suite.serve("")
	assert.Equal(suite.T(), http.StatusUnauthorized, recorder.Code)
}

func (suite *JWTManagerTestSuite) TestAuthMiddlewareRejectsMalformedHeader() {
	recorder := suite.serve("Token abc123")
	assert.Equal(suite.T(), http.StatusUnauthorized, recorder.Code)
}

func (suite *JWTManagerTestSuite) TestRequireRoleAllowsMatchingRole() {
	suite.userRepo.On("GetUser", "user-1").Return([]*models.User{suite.user}, nil)

	token, _ := suite.manager.GenerateToken(suite.user)
	recorder := suite.serve("Bearer "+token, suite.manager.RequireRole(models.UserRoleSafetyOfficer, models.UserRoleAdmin))

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)
}

func (suite *JWTManagerTestSuite) TestRequireRoleRejectsOtherRole() {
	suite.userRepo.On("GetUser", "user-1").Return([]*models.User{suite.user}, nil)

	token, _ := suite.manager.GenerateToken(suite.user)
	recorder := suite.serve("Bearer "+token, suite.manager.RequireRole(models.UserRoleAdmin))

	assert.Equal(suite.T(), http.StatusForbidden, recorder.Code)
}
