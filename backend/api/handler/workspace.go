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

type workspacePayload struct {
	Name           string `json:"name" validate:"required,max=100"`
	TemplateType   string `json:"template_type"`
	WorkspaceRules string `json:"workspace_rules"`
	GroupID        int64  `json:"group_id"`
}

type workspaceUpdatePayload struct {
	Name           *string `json:"name"`
	TemplateType   *string `json:"template_type"`
	WorkspaceRules *string `json:"workspace_rules"`
	IsActive       *bool   `json:"is_active"`
}

type dragReorderPayload struct {
	DraggedID int64 `json:"dragged_id" validate:"required"`
	TargetID  int64 `json:"target_id" validate:"required"`
}

type moveToGroupPayload struct {
	GroupID int64 `json:"group_id"`
}

// GetWorkspaces lists the caller's workspaces, cached per user.
func GetWorkspaces(c *gin.Context) {
	userID := currentUserID(c)
	listCache := cache.GetListCacheManager()
	key := cache.WorkspaceListKey(userID)

	var cached []*model.Workspace
	if listCache.Get(key, &cached) {
		common.RespSuccess(c, cached)
		return
	}

	workspaces, err := model.GetWorkspacesByUserID(userID)
	if err != nil {
		respDomainError(c, err)
		return
	}
	listCache.Set(key, workspaces)
	common.RespSuccess(c, workspaces)
}

func GetWorkspace(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	workspace, err := model.GetWorkspaceByID(id, currentUserID(c))
	if err != nil {
		respDomainError(c, err)
		return
	}
	common.RespSuccess(c, workspace)
}

func CreateWorkspace(c *gin.Context) {
	userID := currentUserID(c)
	lang := currentLang(c)

	var payload workspacePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := validate.Struct(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid workspace parameters", err)
		return
	}

	count, err := model.CountWorkspacesByUserID(userID)
	if err != nil {
		respDomainError(c, err)
		return
	}
	if maxCount := model.GetOptionInt(model.OptionMaxWorkspacesPerUser, 50); maxCount > 0 && count >= maxCount {
		common.RespErrorStr(c, http.StatusBadRequest, "workspace limit reached")
		return
	}
	if payload.GroupID != 0 {
		if _, err := model.GetWorkspaceGroupByID(payload.GroupID, userID); err != nil {
			respDomainError(c, err)
			return
		}
	}

	templateType := payload.TemplateType
	if templateType == "" {
		templateType = "default"
	}
	workspace := &model.Workspace{
		UserID:         userID,
		Name:           payload.Name,
		TemplateType:   templateType,
		WorkspaceRules: payload.WorkspaceRules,
		IsActive:       true,
		GroupID:        payload.GroupID,
	}
	if err := workspace.Insert(); err != nil {
		common.RespError(c, http.StatusInternalServerError, i18n.Translate(cserrors.ErrInternalServer, lang), err)
		return
	}

	listCache := cache.GetListCacheManager()
	listCache.Invalidate(cache.WorkspaceListKey(userID))
	listCache.Invalidate(cache.GroupListKey(userID))
	common.RespSuccess(c, workspace)
}

func UpdateWorkspace(c *gin.Context) {
	userID := currentUserID(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	var payload workspaceUpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	workspace, err := model.GetWorkspaceByID(id, userID)
	if err != nil {
		respDomainError(c, err)
		return
	}
	if payload.Name != nil {
		workspace.Name = *payload.Name
	}
	if payload.TemplateType != nil {
		workspace.TemplateType = *payload.TemplateType
	}
	if payload.WorkspaceRules != nil {
		workspace.WorkspaceRules = *payload.WorkspaceRules
	}
	if payload.IsActive != nil {
		workspace.IsActive = *payload.IsActive
	}
	if err := workspace.Update(); err != nil {
		respDomainError(c, err)
		return
	}

	cache.GetListCacheManager().Invalidate(cache.WorkspaceListKey(userID))
	common.RespSuccess(c, workspace)
}

// DeleteWorkspace refuses to remove the caller's last workspace.
func DeleteWorkspace(c *gin.Context) {
	userID := currentUserID(c)
	lang := currentLang(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	workspace, err := model.GetWorkspaceByID(id, userID)
	if err != nil {
		respDomainError(c, err)
		return
	}
	count, err := model.CountWorkspacesByUserID(userID)
	if err != nil {
		respDomainError(c, err)
		return
	}
	if count <= 1 {
		common.RespErrorStr(c, http.StatusBadRequest, i18n.Translate(cserrors.ErrLastWorkspace, lang))
		return
	}
	if err := workspace.DeleteCascade(); err != nil {
		respDomainError(c, err)
		return
	}

	listCache := cache.GetListCacheManager()
	listCache.Invalidate(cache.WorkspaceListKey(userID))
	listCache.Invalidate(cache.FavoriteListKey(workspace.ID))
	common.RespSuccessStr(c, "")
}

// ReorderWorkspaces handles a drag of one workspace onto another. Both must
// live in the same group scope; a cross-group drop is acknowledged without
// changing anything, since moving between groups is a separate operation.
func ReorderWorkspaces(c *gin.Context) {
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

	dragged, err := model.GetWorkspaceByID(payload.DraggedID, userID)
	if err != nil {
		respDomainError(c, err)
		return
	}
	target, err := model.GetWorkspaceByID(payload.TargetID, userID)
	if err != nil {
		respDomainError(c, err)
		return
	}
	if dragged.GroupID != target.GroupID {
		scope, err := model.GetWorkspacesInScope(userID, dragged.GroupID)
		if err != nil {
			respDomainError(c, err)
			return
		}
		common.RespSuccessWithMsg(c, "cross-group drag ignored", scope)
		return
	}

	scope, err := model.GetWorkspacesInScope(userID, dragged.GroupID)
	if err != nil {
		respDomainError(c, err)
		return
	}
	ids := make([]int64, len(scope))
	for i, w := range scope {
		ids[i] = w.ID
	}
	items := service.ComputeDragReorder(ids, payload.DraggedID, payload.TargetID)
	if items == nil {
		common.RespSuccess(c, scope)
		return
	}
	if err := model.ApplyWorkspaceOrder(userID, dragged.GroupID, service.OrderedIDs(items)); err != nil {
		respDomainError(c, err)
		return
	}

	cache.GetListCacheManager().Invalidate(cache.WorkspaceListKey(userID))
	updated, err := model.GetWorkspacesInScope(userID, dragged.GroupID)
	if err != nil {
		respDomainError(c, err)
		return
	}
	common.RespSuccess(c, updated)
}

// MoveWorkspaceToGroup patches the cached workspace list optimistically and
// rolls the patch back when the database write fails.
func MoveWorkspaceToGroup(c *gin.Context) {
	userID := currentUserID(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	var payload moveToGroupPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	workspace, err := model.GetWorkspaceByID(id, userID)
	if err != nil {
		respDomainError(c, err)
		return
	}
	if payload.GroupID != 0 {
		if _, err := model.GetWorkspaceGroupByID(payload.GroupID, userID); err != nil {
			respDomainError(c, err)
			return
		}
	}

	listCache := cache.GetListCacheManager()
	key := cache.WorkspaceListKey(userID)
	restore := listCache.Snapshot(key)

	var cached []*model.Workspace
	if listCache.Get(key, &cached) {
		for _, w := range cached {
			if w.ID == workspace.ID {
				w.GroupID = payload.GroupID
			}
		}
		listCache.Set(key, cached)
	}

	if err := model.MoveWorkspaceToGroup(workspace, payload.GroupID); err != nil {
		restore()
		respDomainError(c, err)
		return
	}

	// Sort orders shifted in two scopes; drop the patched entry so the next
	// read is authoritative.
	listCache.Invalidate(key)
	listCache.Invalidate(cache.GroupListKey(userID))
	common.RespSuccess(c, workspace)
}
