package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"chatspace/backend/common"
	"chatspace/backend/common/i18n"
	"chatspace/backend/library/cache"
	"chatspace/backend/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	common.RedisEnabled = false
	_ = i18n.Init("../../../locales")
}

// setupTestDB points the ORM at a fresh temp database. The root account and
// its default workspace are created by InitDB.
func setupTestDB(t *testing.T) {
	t.Helper()
	common.SQLitePath = filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, model.InitDB())

	// The list cache is a process-wide singleton; entries from a previous
	// test would alias ids in the fresh database.
	listCache := cache.GetListCacheManager()
	for id := int64(1); id <= 20; id++ {
		listCache.Invalidate(cache.WorkspaceListKey(id))
		listCache.Invalidate(cache.GroupListKey(id))
		listCache.Invalidate(cache.FavoriteListKey(id))
	}
}

// authedRouter returns an engine that pretends userID passed JWT auth.
func authedRouter(userID int64, role int) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Set("lang", "en")
		c.Next()
	})
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method string, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decodeEnvelope(t *testing.T, resp *httptest.ResponseRecorder) (bool, string, json.RawMessage) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	return envelope.Success, envelope.Message, envelope.Data
}
