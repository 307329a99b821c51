package handler

import (
	"fmt"
	"net/http"
	"testing"

	"chatspace/backend/common"
	"chatspace/backend/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createProvider(t *testing.T, userID int64, name string) *model.AIProvider {
	t.Helper()
	provider := &model.AIProvider{
		UserID:       userID,
		Name:         name,
		ProviderType: model.ProviderTypeOpenAI,
		Model:        "gpt-4o",
		Enabled:      true,
	}
	require.NoError(t, provider.Insert())
	return provider
}

func TestCreateFavorite_DenormalizesTargetName(t *testing.T) {
	setupTestDB(t)
	router := authedRouter(1, common.RoleRootUser)
	router.POST("/workspaces/:id/favorites", CreateFavorite)

	scope, err := model.GetWorkspacesInScope(1, 0)
	require.NoError(t, err)
	workspaceID := scope[0].ID

	provider := createProvider(t, 1, "OpenAI main")

	resp := doJSON(t, router, "POST", fmt.Sprintf("/workspaces/%d/favorites", workspaceID), map[string]any{
		"target_type": "provider",
		"target_id":   provider.ID,
	})
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "OpenAI main")

	favorites, err := model.GetFavoritesByWorkspace(workspaceID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, 0, favorites[0].SortOrder)
}

func TestCreateFavorite_UnknownTarget(t *testing.T) {
	setupTestDB(t)
	router := authedRouter(1, common.RoleRootUser)
	router.POST("/workspaces/:id/favorites", CreateFavorite)

	scope, err := model.GetWorkspacesInScope(1, 0)
	require.NoError(t, err)

	resp := doJSON(t, router, "POST", fmt.Sprintf("/workspaces/%d/favorites", scope[0].ID), map[string]any{
		"target_type": "personality",
		"target_id":   int64(424242),
	})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestReorderFavorites(t *testing.T) {
	setupTestDB(t)
	router := authedRouter(1, common.RoleRootUser)
	router.POST("/workspaces/:id/favorites/reorder", ReorderFavorites)

	scope, err := model.GetWorkspacesInScope(1, 0)
	require.NoError(t, err)
	workspaceID := scope[0].ID

	var ids []int64
	for i := 0; i < 3; i++ {
		provider := createProvider(t, 1, fmt.Sprintf("P%d", i))
		favorite := &model.Favorite{
			UserID:      1,
			WorkspaceID: workspaceID,
			TargetType:  model.FavoriteTargetProvider,
			TargetID:    provider.ID,
			DisplayName: provider.Name,
		}
		require.NoError(t, favorite.Insert())
		ids = append(ids, favorite.ID)
	}

	resp := doJSON(t, router, "POST", fmt.Sprintf("/workspaces/%d/favorites/reorder", workspaceID), map[string]any{
		"dragged_id": ids[0],
		"target_id":  ids[2],
	})
	assert.Equal(t, http.StatusOK, resp.Code)

	favorites, err := model.GetFavoritesByWorkspace(workspaceID)
	require.NoError(t, err)
	require.Len(t, favorites, 3)
	assert.Equal(t, ids[1], favorites[0].ID)
	assert.Equal(t, ids[2], favorites[1].ID)
	assert.Equal(t, ids[0], favorites[2].ID)
	for i, f := range favorites {
		assert.Equal(t, i, f.SortOrder)
	}
}

func TestDeleteFavorite_ClosesSortGap(t *testing.T) {
	setupTestDB(t)
	router := authedRouter(1, common.RoleRootUser)
	router.DELETE("/favorites/:id", DeleteFavorite)

	scope, err := model.GetWorkspacesInScope(1, 0)
	require.NoError(t, err)
	workspaceID := scope[0].ID

	var favorites []*model.Favorite
	for i := 0; i < 3; i++ {
		provider := createProvider(t, 1, fmt.Sprintf("P%d", i))
		favorite := &model.Favorite{
			UserID:      1,
			WorkspaceID: workspaceID,
			TargetType:  model.FavoriteTargetProvider,
			TargetID:    provider.ID,
			DisplayName: provider.Name,
		}
		require.NoError(t, favorite.Insert())
		favorites = append(favorites, favorite)
	}

	resp := doJSON(t, router, "DELETE", fmt.Sprintf("/favorites/%d", favorites[1].ID), nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	remaining, err := model.GetFavoritesByWorkspace(workspaceID)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	for i, f := range remaining {
		assert.Equal(t, i, f.SortOrder)
	}
}
