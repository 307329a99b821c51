package model

import (
	"chatspace/backend/common/errors"

	"github.com/burugo/thing"
)

// Workspace is a user-scoped container for chat sessions, favorites and
// settings. GroupID 0 means the workspace is ungrouped. SortOrder is a dense
// zero-based position within its (user, group) scope; reordering always
// rewrites the whole scope.
type Workspace struct {
	thing.BaseModel
	UserID         int64  `db:"user_id,index:idx_workspace_owner" json:"user_id"`
	Name           string `db:"name" json:"name"`
	TemplateType   string `db:"template_type" json:"template_type"`
	WorkspaceRules string `db:"workspace_rules" json:"workspace_rules"`
	IsActive       bool   `db:"is_active" json:"is_active"`
	GroupID        int64  `db:"group_id,index:idx_workspace_owner" json:"group_id"`
	SortOrder      int    `db:"sort_order" json:"sort_order"`
}

func (w *Workspace) TableName() string {
	return "workspaces"
}

var WorkspaceDB *thing.Thing[*Workspace]

func WorkspaceInit() error {
	var err error
	WorkspaceDB, err = thing.Use[*Workspace]()
	return err
}

func GetWorkspacesByUserID(userID int64) ([]*Workspace, error) {
	return WorkspaceDB.Where("user_id = ?", userID).Order("group_id ASC, sort_order ASC").Fetch(0, 1000)
}

// GetWorkspacesInScope returns the workspaces of one (user, group) scope in
// sort order. groupID 0 selects the ungrouped scope.
func GetWorkspacesInScope(userID int64, groupID int64) ([]*Workspace, error) {
	return WorkspaceDB.Where("user_id = ? AND group_id = ?", userID, groupID).Order("sort_order ASC, id ASC").Fetch(0, 1000)
}

func GetWorkspaceByID(id int64, userID int64) (*Workspace, error) {
	workspace, err := WorkspaceDB.ByID(id)
	if err != nil {
		return nil, errNew(errors.ErrWorkspaceNotFound)
	}
	if workspace.UserID != userID {
		return nil, errNew(errors.ErrWorkspaceNotFound)
	}
	return workspace, nil
}

func CountWorkspacesByUserID(userID int64) (int, error) {
	workspaces, err := WorkspaceDB.Where("user_id = ?", userID).Fetch(0, 1000)
	if err != nil {
		return 0, err
	}
	return len(workspaces), nil
}

// CreateDefaultWorkspace gives a fresh account its first workspace.
func CreateDefaultWorkspace(userID int64) error {
	name := GetOptionValue(OptionDefaultWorkspaceName)
	if name == "" {
		name = "My Workspace"
	}
	workspace := &Workspace{
		UserID:       userID,
		Name:         name,
		TemplateType: "default",
		IsActive:     true,
	}
	return workspace.Insert()
}

// Insert appends the workspace at the end of its scope.
func (w *Workspace) Insert() error {
	scope, err := GetWorkspacesInScope(w.UserID, w.GroupID)
	if err != nil {
		return err
	}
	w.SortOrder = len(scope)
	return WorkspaceDB.Save(w)
}

func (w *Workspace) Update() error {
	if w.ID == 0 {
		return errNew(errors.ErrEmptyID)
	}
	return WorkspaceDB.Save(w)
}

// DeleteCascade removes the workspace together with its favorites, chat
// sessions and messages, then closes the sort gap it leaves behind.
func (w *Workspace) DeleteCascade() error {
	if w.ID == 0 {
		return errNew(errors.ErrEmptyID)
	}
	if err := DeleteFavoritesByWorkspace(w.ID); err != nil {
		return err
	}
	if err := DeleteChatSessionsByWorkspace(w.ID); err != nil {
		return err
	}
	if err := WorkspaceDB.Delete(w); err != nil {
		return err
	}
	return renumberWorkspaceScope(w.UserID, w.GroupID)
}

// ApplyWorkspaceOrder persists a full-scope ordering: orderedIDs must contain
// exactly the IDs of the (user, group) scope; each workspace receives its
// zero-based index as the new sort order.
func ApplyWorkspaceOrder(userID int64, groupID int64, orderedIDs []int64) error {
	scope, err := GetWorkspacesInScope(userID, groupID)
	if err != nil {
		return err
	}
	if len(orderedIDs) != len(scope) {
		return errNew(errors.ErrInvalidParam)
	}
	byID := make(map[int64]*Workspace, len(scope))
	for _, w := range scope {
		byID[w.ID] = w
	}
	for idx, id := range orderedIDs {
		w, ok := byID[id]
		if !ok {
			return errNew(errors.ErrInvalidParam)
		}
		if w.SortOrder == idx {
			continue
		}
		w.SortOrder = idx
		if err := WorkspaceDB.Save(w); err != nil {
			return err
		}
	}
	return nil
}

// MoveWorkspaceToGroup moves w to targetGroupID, appending it at the end of
// the target scope and renumbering the scope it left.
func MoveWorkspaceToGroup(w *Workspace, targetGroupID int64) error {
	if w.GroupID == targetGroupID {
		return nil
	}
	oldGroupID := w.GroupID

	target, err := GetWorkspacesInScope(w.UserID, targetGroupID)
	if err != nil {
		return err
	}
	w.GroupID = targetGroupID
	w.SortOrder = len(target)
	if err := WorkspaceDB.Save(w); err != nil {
		return err
	}
	return renumberWorkspaceScope(w.UserID, oldGroupID)
}

// renumberWorkspaceScope restores dense zero-based sort orders within a
// scope, keeping the current relative order.
func renumberWorkspaceScope(userID int64, groupID int64) error {
	scope, err := GetWorkspacesInScope(userID, groupID)
	if err != nil {
		return err
	}
	for idx, w := range scope {
		if w.SortOrder == idx {
			continue
		}
		w.SortOrder = idx
		if err := WorkspaceDB.Save(w); err != nil {
			return err
		}
	}
	return nil
}
