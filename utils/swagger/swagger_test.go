package swagger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeSwaggerUI(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	config := SwaggerConfig{
		Title:         "SafeCheck Backend API",
		SwaggerDocURL: "/swagger/doc.json",
	}
	router.GET("/docs", ServeSwaggerUI(config))

	req, err := http.NewRequest("GET", "/docs", nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.Contains(t, body, "SafeCheck Backend API")
	assert.Contains(t, body, "/swagger/doc.json")
	assert.Contains(t, body, "swagger-ui-bundle.js")
}
