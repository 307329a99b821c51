package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"chatspace/backend/common"
	"chatspace/backend/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
	common.JWTSecret = "test-jwt-secret-for-middleware-tests"
	common.JWTRefreshSecret = "test-jwt-refresh-secret-for-middleware-tests"
	common.RedisEnabled = false
}

func setupTestRouter() *gin.Engine {
	router := gin.New()
	return router
}

// generateTestToken signs a token the same way the service package does.
func generateTestToken(userID int64, username string, role int) string {
	claims := service.JWTClaims{
		UserID:   userID,
		Username: username,
		Role:     role,
	}
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(24 * time.Hour))
	claims.IssuedAt = jwt.NewNumericDate(time.Now())
	claims.NotBefore = jwt.NewNumericDate(time.Now())
	claims.Issuer = "chatspace"
	claims.Subject = username

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(common.JWTSecret))
	return tokenString
}

func TestJWTAuth_NoAuthorizationHeader(t *testing.T) {
	router := setupTestRouter()
	router.GET("/protected", JWTAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	req, _ := http.NewRequest("GET", "/protected", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Authorization header is required")
}

func TestJWTAuth_InvalidFormat(t *testing.T) {
	router := setupTestRouter()
	router.GET("/protected", JWTAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "InvalidFormat token123")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Bearer")
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	router := setupTestRouter()
	router.GET("/protected", JWTAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer invalid-jwt-token")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestJWTAuth_ValidToken(t *testing.T) {
	router := setupTestRouter()
	router.GET("/protected", JWTAuth(), func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		username, _ := c.Get("username")
		role, _ := c.Get("role")
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"user_id":  userID,
			"username": username,
			"role":     role,
		})
	})

	token := generateTestToken(42, "testuser", common.RoleCommonUser)

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "testuser")
}

func TestAdminAuth_NoRole(t *testing.T) {
	router := setupTestRouter()
	router.GET("/admin", AdminAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	req, _ := http.NewRequest("GET", "/admin", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Contains(t, resp.Body.String(), "Role information not found")
}

func TestAdminAuth_InsufficientPrivileges(t *testing.T) {
	router := setupTestRouter()
	router.GET("/admin", func(c *gin.Context) {
		c.Set("role", common.RoleCommonUser)
		c.Next()
	}, AdminAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	req, _ := http.NewRequest("GET", "/admin", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.Contains(t, resp.Body.String(), "Admin privileges required")
}

func TestAdminAuth_Success(t *testing.T) {
	router := setupTestRouter()
	router.GET("/admin", func(c *gin.Context) {
		c.Set("role", common.RoleAdminUser)
		c.Next()
	}, AdminAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	req, _ := http.NewRequest("GET", "/admin", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestRootAuth_InsufficientPrivileges(t *testing.T) {
	router := setupTestRouter()
	router.GET("/root", func(c *gin.Context) {
		c.Set("role", common.RoleAdminUser)
		c.Next()
	}, RootAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	req, _ := http.NewRequest("GET", "/root", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.Contains(t, resp.Body.String(), "Root privileges required")
}

func TestRootAuth_Success(t *testing.T) {
	router := setupTestRouter()
	router.GET("/root", func(c *gin.Context) {
		c.Set("role", common.RoleRootUser)
		c.Next()
	}, RootAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	req, _ := http.NewRequest("GET", "/root", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestCriticalRateLimit(t *testing.T) {
	common.CriticalRateLimitNum = 3
	defer func() { common.CriticalRateLimitNum = 20 }()

	router := setupTestRouter()
	router.POST("/login", CriticalRateLimit(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest("POST", "/login", nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		assert.Equal(t, http.StatusOK, resp.Code)
	}

	req, _ := http.NewRequest("POST", "/login", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusTooManyRequests, resp.Code)
}
