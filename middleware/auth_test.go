package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"smartpark/models"
	"smartpark/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", JWTAuthMiddleware(), func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": p.ID, "role": p.Role})
	})
	r.GET("/admin", JWTAuthMiddleware(), AdminOnlyMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doRequest(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := newAuthRouter()

	token, err := utils.GenerateToken("user-1", models.RoleUser, time.Hour)
	require.NoError(t, err)

	w := doRequest(r, "/whoami", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")

	w = doRequest(r, "/whoami", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, "/whoami", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminOnlyMiddleware(t *testing.T) {
	r := newAuthRouter()

	userToken, err := utils.GenerateToken("user-1", models.RoleUser, time.Hour)
	require.NoError(t, err)
	adminToken, err := utils.GenerateToken("admin-1", models.RoleAdmin, time.Hour)
	require.NoError(t, err)

	w := doRequest(r, "/admin", userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(r, "/admin", adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
}
