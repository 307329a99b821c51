package model

import (
	"chatspace/backend/common/errors"

	"github.com/burugo/thing"
)

// WorkspaceGroup is a named, orderable grouping of workspaces. Pinned groups
// stay on the client's persistent tab bar.
type WorkspaceGroup struct {
	thing.BaseModel
	UserID    int64  `db:"user_id,index:idx_group_owner" json:"user_id"`
	Name      string `db:"name,index:idx_group_owner" json:"name"`
	SortOrder int    `db:"sort_order" json:"sort_order"`
	IsPinned  bool   `db:"is_pinned" json:"is_pinned"`
}

func (g *WorkspaceGroup) TableName() string {
	return "workspace_groups"
}

var WorkspaceGroupDB *thing.Thing[*WorkspaceGroup]

func WorkspaceGroupInit() error {
	var err error
	WorkspaceGroupDB, err = thing.Use[*WorkspaceGroup]()
	return err
}

func GetWorkspaceGroupsByUserID(userID int64) ([]*WorkspaceGroup, error) {
	return WorkspaceGroupDB.Where("user_id = ?", userID).Order("sort_order ASC, id ASC").Fetch(0, 1000)
}

func GetWorkspaceGroupByID(id int64, userID int64) (*WorkspaceGroup, error) {
	group, err := WorkspaceGroupDB.ByID(id)
	if err != nil {
		return nil, errNew(errors.ErrGroupNotFound)
	}
	if group.UserID != userID {
		return nil, errNew(errors.ErrGroupNotFound)
	}
	return group, nil
}

// CountWorkspacesInGroup is the derived workspace_count of a group.
func CountWorkspacesInGroup(userID int64, groupID int64) (int, error) {
	workspaces, err := GetWorkspacesInScope(userID, groupID)
	if err != nil {
		return 0, err
	}
	return len(workspaces), nil
}

// Insert appends the group at the end of the user's group list.
func (g *WorkspaceGroup) Insert() error {
	if g.UserID == 0 || g.Name == "" {
		return errNew(errors.ErrInvalidParam)
	}
	groups, err := GetWorkspaceGroupsByUserID(g.UserID)
	if err != nil {
		return err
	}
	g.SortOrder = len(groups)
	return WorkspaceGroupDB.Save(g)
}

func (g *WorkspaceGroup) Update() error {
	if g.ID == 0 {
		return errNew(errors.ErrEmptyID)
	}
	return WorkspaceGroupDB.Save(g)
}

// Delete removes the group row. When keepWorkspaces is true its members are
// moved to the ungrouped scope, appended after the existing ungrouped
// workspaces in their current relative order; otherwise the members are
// deleted with their chat data. Either way the remaining groups are
// renumbered.
func (g *WorkspaceGroup) Delete(keepWorkspaces bool) error {
	if g.ID == 0 {
		return errNew(errors.ErrEmptyID)
	}

	members, err := GetWorkspacesInScope(g.UserID, g.ID)
	if err != nil {
		return err
	}

	if keepWorkspaces {
		ungrouped, err := GetWorkspacesInScope(g.UserID, 0)
		if err != nil {
			return err
		}
		next := len(ungrouped)
		for _, w := range members {
			w.GroupID = 0
			w.SortOrder = next
			next++
			if err := WorkspaceDB.Save(w); err != nil {
				return err
			}
		}
	} else {
		for _, w := range members {
			if err := DeleteFavoritesByWorkspace(w.ID); err != nil {
				return err
			}
			if err := DeleteChatSessionsByWorkspace(w.ID); err != nil {
				return err
			}
			if err := WorkspaceDB.Delete(w); err != nil {
				return err
			}
		}
	}

	if err := WorkspaceGroupDB.Delete(g); err != nil {
		return err
	}
	return renumberWorkspaceGroups(g.UserID)
}

// ApplyWorkspaceGroupOrder persists a full ordering of the user's groups.
func ApplyWorkspaceGroupOrder(userID int64, orderedIDs []int64) error {
	groups, err := GetWorkspaceGroupsByUserID(userID)
	if err != nil {
		return err
	}
	if len(orderedIDs) != len(groups) {
		return errNew(errors.ErrInvalidParam)
	}
	byID := make(map[int64]*WorkspaceGroup, len(groups))
	for _, g := range groups {
		byID[g.ID] = g
	}
	for idx, id := range orderedIDs {
		g, ok := byID[id]
		if !ok {
			return errNew(errors.ErrInvalidParam)
		}
		if g.SortOrder == idx {
			continue
		}
		g.SortOrder = idx
		if err := WorkspaceGroupDB.Save(g); err != nil {
			return err
		}
	}
	return nil
}

func renumberWorkspaceGroups(userID int64) error {
	groups, err := GetWorkspaceGroupsByUserID(userID)
	if err != nil {
		return err
	}
	for idx, g := range groups {
		if g.SortOrder == idx {
			continue
		}
		g.SortOrder = idx
		if err := WorkspaceGroupDB.Save(g); err != nil {
			return err
		}
	}
	return nil
}
