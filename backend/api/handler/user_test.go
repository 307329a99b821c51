package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"chatspace/backend/common"
	"chatspace/backend/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionRouter() *gin.Engine {
	router := gin.New()
	store := cookie.NewStore([]byte("test-session-secret"))
	router.Use(sessions.Sessions("session", store))
	router.Use(func(c *gin.Context) {
		c.Set("lang", "en")
		c.Next()
	})
	return router
}

func TestLogin_Success(t *testing.T) {
	setupTestDB(t)
	router := sessionRouter()
	router.POST("/auth/login", Login)

	resp := doJSON(t, router, "POST", "/auth/login", map[string]any{
		"username": "root",
		"password": "123456",
	})
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "access_token")
	assert.Contains(t, resp.Body.String(), "refresh_token")
	// The password hash must never appear in a response.
	assert.NotContains(t, resp.Body.String(), "password")
}

func TestLogin_WrongPassword(t *testing.T) {
	setupTestDB(t)
	router := sessionRouter()
	router.POST("/auth/login", Login)

	resp := doJSON(t, router, "POST", "/auth/login", map[string]any{
		"username": "root",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestLogin_DisabledUser(t *testing.T) {
	setupTestDB(t)
	router := sessionRouter()
	router.POST("/auth/login", Login)

	user := &model.User{
		Username: "banned",
		Password: "password123",
		Role:     common.RoleCommonUser,
		Status:   common.UserStatusDisabled,
	}
	require.NoError(t, user.Insert())

	resp := doJSON(t, router, "POST", "/auth/login", map[string]any{
		"username": "banned",
		"password": "password123",
	})
	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.Contains(t, resp.Body.String(), "disabled")
}

func TestRegister_CreatesDefaultWorkspace(t *testing.T) {
	setupTestDB(t)
	router := sessionRouter()
	router.POST("/auth/register", Register)

	resp := doJSON(t, router, "POST", "/auth/register", map[string]any{
		"username": "newuser",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, resp.Code)

	users, err := model.SearchUsers("newuser")
	require.NoError(t, err)
	require.Len(t, users, 1)

	count, err := model.CountWorkspacesByUserID(users[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	setupTestDB(t)
	router := sessionRouter()
	router.POST("/auth/register", Register)

	resp := doJSON(t, router, "POST", "/auth/register", map[string]any{
		"username": "root",
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Username is already taken")
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	setupTestDB(t)
	router := sessionRouter()
	router.POST("/auth/login", Login)
	router.POST("/auth/refresh", RefreshToken)

	resp := doJSON(t, router, "POST", "/auth/login", map[string]any{
		"username": "root",
		"password": "123456",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	_, _, data := decodeEnvelope(t, resp)
	var tokens struct {
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal(data, &tokens))
	require.NotEmpty(t, tokens.RefreshToken)

	resp = doJSON(t, router, "POST", "/auth/refresh", map[string]any{
		"refresh_token": tokens.RefreshToken,
	})
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "access_token")
}

func TestDeleteSelf_RemovesOwnedData(t *testing.T) {
	setupTestDB(t)

	user := &model.User{
		Username: "leaver",
		Password: "password123",
		Role:     common.RoleCommonUser,
		Status:   common.UserStatusEnabled,
	}
	require.NoError(t, user.Insert())

	workspaces, err := model.GetWorkspacesByUserID(user.ID)
	require.NoError(t, err)
	require.Len(t, workspaces, 1)
	workspace := workspaces[0]

	group := &model.WorkspaceGroup{UserID: user.ID, Name: "Work"}
	require.NoError(t, group.Insert())
	provider := &model.AIProvider{UserID: user.ID, Name: "Main", ProviderType: model.ProviderTypeOpenAI}
	require.NoError(t, provider.Insert())
	personality := &model.Personality{UserID: user.ID, Name: "Poet"}
	require.NoError(t, personality.Insert())
	favorite := &model.Favorite{
		UserID:      user.ID,
		WorkspaceID: workspace.ID,
		TargetType:  model.FavoriteTargetProvider,
		TargetID:    provider.ID,
		DisplayName: "Main",
	}
	require.NoError(t, favorite.Insert())
	session := &model.ChatSession{UserID: user.ID, WorkspaceID: workspace.ID}
	require.NoError(t, session.Insert())
	message := &model.ChatMessage{SessionID: session.ID, Role: model.MessageRoleUser, Content: "bye"}
	require.NoError(t, message.Insert())

	router := sessionRouter()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", user.ID)
		c.Set("role", user.Role)
		c.Next()
	})
	router.DELETE("/user/self", DeleteSelf)

	resp := doJSON(t, router, "DELETE", "/user/self", nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	_, err = model.GetUserById(user.ID, "en")
	assert.Error(t, err)

	count, err := model.CountWorkspacesByUserID(user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	favorites, err := model.GetFavoritesByWorkspace(workspace.ID)
	require.NoError(t, err)
	assert.Empty(t, favorites)

	chatSessions, err := model.GetChatSessionsByWorkspace(user.ID, workspace.ID)
	require.NoError(t, err)
	assert.Empty(t, chatSessions)

	messages, err := model.GetChatMessagesBySession(session.ID)
	require.NoError(t, err)
	assert.Empty(t, messages)

	groups, err := model.GetWorkspaceGroupsByUserID(user.ID)
	require.NoError(t, err)
	assert.Empty(t, groups)

	providers, err := model.GetAIProvidersByUserID(user.ID)
	require.NoError(t, err)
	assert.Empty(t, providers)

	personalities, err := model.GetPersonalitiesByUserID(user.ID)
	require.NoError(t, err)
	assert.Empty(t, personalities)
}

func TestDeleteSelf_RootRefused(t *testing.T) {
	setupTestDB(t)

	router := sessionRouter()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", int64(1))
		c.Set("role", common.RoleRootUser)
		c.Next()
	})
	router.DELETE("/user/self", DeleteSelf)

	resp := doJSON(t, router, "DELETE", "/user/self", nil)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	_, err := model.GetUserById(1, "en")
	assert.NoError(t, err)
}

func TestRefreshToken_Garbage(t *testing.T) {
	setupTestDB(t)
	router := sessionRouter()
	router.POST("/auth/refresh", RefreshToken)

	resp := doJSON(t, router, "POST", "/auth/refresh", map[string]any{
		"refresh_token": "not-a-token",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
