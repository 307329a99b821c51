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

type groupPayload struct {
	Name     string `json:"name" validate:"required,max=100"`
	IsPinned bool   `json:"is_pinned"`
}

type groupUpdatePayload struct {
	Name     *string `json:"name"`
	IsPinned *bool   `json:"is_pinned"`
}

// groupView decorates a group with its derived workspace count.
type groupView struct {
	*model.WorkspaceGroup
	WorkspaceCount int `json:"workspace_count"`
}

func buildGroupViews(userID int64, groups []*model.WorkspaceGroup) ([]*groupView, error) {
	views := make([]*groupView, 0, len(groups))
	for _, g := range groups {
		count, err := model.CountWorkspacesInGroup(userID, g.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, &groupView{WorkspaceGroup: g, WorkspaceCount: count})
	}
	return views, nil
}

// GetWorkspaceGroups lists the caller's groups with workspace counts, cached
// per user.
func GetWorkspaceGroups(c *gin.Context) {
	userID := currentUserID(c)
	listCache := cache.GetListCacheManager()
	key := cache.GroupListKey(userID)

	var cached []*groupView
	if listCache.Get(key, &cached) {
		common.RespSuccess(c, cached)
		return
	}

	groups, err := model.GetWorkspaceGroupsByUserID(userID)
	if err != nil {
		respDomainError(c, err)
		return
	}
	views, err := buildGroupViews(userID, groups)
	if err != nil {
		respDomainError(c, err)
		return
	}
	listCache.Set(key, views)
	common.RespSuccess(c, views)
}

func GetWorkspaceGroup(c *gin.Context) {
	userID := currentUserID(c)
	id, ok := paramID(c)
	if !ok {
		return
	}
	group, err := model.GetWorkspaceGroupByID(id, userID)
	if err != nil {
		respDomainError(c, err)
		return
	}
	count, err := model.CountWorkspacesInGroup(userID, group.ID)
	if err != nil {
		respDomainError(c, err)
		return
	}
	common.RespSuccess(c, &groupView{WorkspaceGroup: group, WorkspaceCount: count})
}

func CreateWorkspaceGroup(c *gin.Context) {
	userID := currentUserID(c)
	lang := currentLang(c)

	var payload groupPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := validate.Struct(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid group parameters", err)
		return
	}

	group := &model.WorkspaceGroup{
		UserID:   userID,
		Name:     payload.Name,
		IsPinned: payload.IsPinned,
	}
	if err := group.Insert(); err != nil {
		common.RespError(c, http.StatusInternalServerError, i18n.Translate(cserrors.ErrInternalServer, lang), err)
		return
	}

	cache.GetListCacheManager().Invalidate(cache.GroupListKey(userID))
	common.RespSuccess(c, &groupView{WorkspaceGroup: group, WorkspaceCount: 0})
}

func UpdateWorkspaceGroup(c *gin.Context) {
	userID := currentUserID(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	var payload groupUpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	group, err := model.GetWorkspaceGroupByID(id, userID)
	if err != nil {
		respDomainError(c, err)
		return
	}
	if payload.Name != nil {
		group.Name = *payload.Name
	}
	if payload.IsPinned != nil {
		group.IsPinned = *payload.IsPinned
	}
	if err := group.Update(); err != nil {
		respDomainError(c, err)
		return
	}

	cache.GetListCacheManager().Invalidate(cache.GroupListKey(userID))
	common.RespSuccess(c, group)
}

// ToggleWorkspaceGroupPin flips the pinned flag of a group.
func ToggleWorkspaceGroupPin(c *gin.Context) {
	userID := currentUserID(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	group, err := model.GetWorkspaceGroupByID(id, userID)
	if err != nil {
		respDomainError(c, err)
		return
	}
	group.IsPinned = !group.IsPinned
	if err := group.Update(); err != nil {
		respDomainError(c, err)
		return
	}

	cache.GetListCacheManager().Invalidate(cache.GroupListKey(userID))
	common.RespSuccess(c, group)
}

// DeleteWorkspaceGroup removes a group. With keep_workspaces=true (the
// default) its workspaces move to the ungrouped scope; with false they are
// deleted along with their chat data.
func DeleteWorkspaceGroup(c *gin.Context) {
	userID := currentUserID(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	keepWorkspaces := c.DefaultQuery("keep_workspaces", "true") != "false"

	group, err := model.GetWorkspaceGroupByID(id, userID)
	if err != nil {
		respDomainError(c, err)
		return
	}
	if err := group.Delete(keepWorkspaces); err != nil {
		respDomainError(c, err)
		return
	}

	listCache := cache.GetListCacheManager()
	listCache.Invalidate(cache.GroupListKey(userID))
	listCache.Invalidate(cache.WorkspaceListKey(userID))
	common.RespSuccessStr(c, "")
}

// ReorderWorkspaceGroups handles a drag of one group onto another within the
// caller's group list.
func ReorderWorkspaceGroups(c *gin.Context) {
	userID := currentUserID(c)

	var payload dragReorderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := validate.Struct(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "dragged_id and target_id are required", err)
		return
	}

	if _, err := model.GetWorkspaceGroupByID(payload.DraggedID, userID); err != nil {
		respDomainError(c, err)
		return
	}
	if _, err := model.GetWorkspaceGroupByID(payload.TargetID, userID); err != nil {
		respDomainError(c, err)
		return
	}

	groups, err := model.GetWorkspaceGroupsByUserID(userID)
	if err != nil {
		respDomainError(c, err)
		return
	}
	ids := make([]int64, len(groups))
	for i, g := range groups {
		ids[i] = g.ID
	}
	items := service.ComputeDragReorder(ids, payload.DraggedID, payload.TargetID)
	if items == nil {
		common.RespSuccess(c, groups)
		return
	}
	if err := model.ApplyWorkspaceGroupOrder(userID, service.OrderedIDs(items)); err != nil {
		respDomainError(c, err)
		return
	}

	cache.GetListCacheManager().Invalidate(cache.GroupListKey(userID))
	updated, err := model.GetWorkspaceGroupsByUserID(userID)
	if err != nil {
		respDomainError(c, err)
		return
	}
	common.RespSuccess(c, updated)
}
