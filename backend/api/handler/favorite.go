package handler

import (
	"net/http"

	"chatspace/backend/common"
	cserrors "chatspace/backend/common/errors"
	"chatspace/backend/common/i18n"
	"chatspace/backend/library/cache"
	"chatspace/backend/model"
	"chatspace/backend/service"

	"github.com/gin-gonic/gin"
)

type favoritePayload struct {
	TargetType  string `json:"target_type" validate:"required,oneof=provider personality"`
	TargetID    int64  `json:"target_id" validate:"required"`
	DisplayName string `json:"display_name"`
}

// GetWorkspaceFavorites lists a workspace's favorites, cached per workspace.
func GetWorkspaceFavorites(c *gin.Context) {
	userID := currentUserID(c)
	workspaceID, ok := paramID(c)
	if !ok {
		return
	}
	if _, err := model.GetWorkspaceByID(workspaceID, userID); err != nil {
		respDomainError(c, err)
		return
	}

	listCache := cache.GetListCacheManager()
	key := cache.FavoriteListKey(workspaceID)

	var cached []*model.Favorite
	if listCache.Get(key, &cached) {
		common.RespSuccess(c, cached)
		return
	}

	favorites, err := model.GetFavoritesByWorkspace(workspaceID)
	if err != nil {
		respDomainError(c, err)
		return
	}
	listCache.Set(key, favorites)
	common.RespSuccess(c, favorites)
}

// CreateFavorite pins a provider or personality to a workspace. The target
// must exist and belong to the caller; its name is denormalized into the
// favorite when no display name is given.
func CreateFavorite(c *gin.Context) {
	userID := currentUserID(c)
	lang := currentLang(c)
	workspaceID, ok := paramID(c)
	if !ok {
		return
	}

	var payload favoritePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := validate.Struct(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid favorite parameters", err)
		return
	}

	if _, err := model.GetWorkspaceByID(workspaceID, userID); err != nil {
		respDomainError(c, err)
		return
	}

	displayName := payload.DisplayName
	switch model.FavoriteTarget(payload.TargetType) {
	case model.FavoriteTargetProvider:
		provider, err := model.GetAIProviderByID(payload.TargetID, userID)
		if err != nil {
			respDomainError(c, err)
			return
		}
		if displayName == "" {
			displayName = provider.Name
		}
	case model.FavoriteTargetPersonality:
		personality, err := model.GetPersonalityByID(payload.TargetID, userID)
		if err != nil {
			respDomainError(c, err)
			return
		}
		if displayName == "" {
			displayName = personality.Name
		}
	}

	favorite := &model.Favorite{
		UserID:      userID,
		WorkspaceID: workspaceID,
		TargetType:  model.FavoriteTarget(payload.TargetType),
		TargetID:    payload.TargetID,
		DisplayName: displayName,
	}
	if err := favorite.Insert(); err != nil {
		common.RespError(c, http.StatusInternalServerError, i18n.Translate(cserrors.ErrInternalServer, lang), err)
		return
	}

	cache.GetListCacheManager().Invalidate(cache.FavoriteListKey(workspaceID))
	common.RespSuccess(c, favorite)
}

func DeleteFavorite(c *gin.Context) {
	userID := currentUserID(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	favorite, err := model.GetFavoriteByID(id, userID)
	if err != nil {
		respDomainError(c, err)
		return
	}
	if err := favorite.Delete(); err != nil {
		respDomainError(c, err)
		return
	}

	cache.GetListCacheManager().Invalidate(cache.FavoriteListKey(favorite.WorkspaceID))
	common.RespSuccessStr(c, "")
}

// ReorderFavorites handles a drag of one favorite onto another within a
// workspace. The cached list is patched optimistically and restored when the
// write fails.
func ReorderFavorites(c *gin.Context) {
	userID := currentUserID(c)
	workspaceID, ok := paramID(c)
	if !ok {
		return
	}

	var payload dragReorderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := validate.Struct(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "dragged_id and target_id are required", err)
		return
	}

	if _, err := model.GetWorkspaceByID(workspaceID, userID); err != nil {
		respDomainError(c, err)
		return
	}

	favorites, err := model.GetFavoritesByWorkspace(workspaceID)
	if err != nil {
		respDomainError(c, err)
		return
	}
	ids := make([]int64, len(favorites))
	for i, f := range favorites {
		ids[i] = f.ID
	}
	items := service.ComputeDragReorder(ids, payload.DraggedID, payload.TargetID)
	if items == nil {
		common.RespSuccess(c, favorites)
		return
	}

	listCache := cache.GetListCacheManager()
	key := cache.FavoriteListKey(workspaceID)
	restore := listCache.Snapshot(key)

	byID := make(map[int64]*model.Favorite, len(favorites))
	for _, f := range favorites {
		byID[f.ID] = f
	}
	patched := make([]*model.Favorite, 0, len(items))
	for _, item := range items {
		f := byID[item.ID]
		f.SortOrder = item.SortOrder
		patched = append(patched, f)
	}
	listCache.Set(key, patched)

	if err := model.ApplyFavoriteOrder(workspaceID, service.OrderedIDs(items)); err != nil {
		restore()
		respDomainError(c, err)
		return
	}
	common.RespSuccess(c, patched)
}
