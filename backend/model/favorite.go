package model

import (
	"chatspace/backend/common/errors"

	"github.com/burugo/thing"
)

// FavoriteTarget discriminates what a favorite points at.
type FavoriteTarget string

const (
	FavoriteTargetProvider    FavoriteTarget = "provider"
	FavoriteTargetPersonality FavoriteTarget = "personality"
)

// Favorite is a user-pinned shortcut to an AI provider or a personality,
// scoped to a workspace. SortOrder is dense and zero-based per workspace.
type Favorite struct {
	thing.BaseModel
	UserID      int64          `db:"user_id,index:idx_favorite_owner" json:"user_id"`
	WorkspaceID int64          `db:"workspace_id,index:idx_favorite_owner" json:"workspace_id"`
	TargetType  FavoriteTarget `db:"target_type" json:"target_type"`
	TargetID    int64          `db:"target_id" json:"target_id"`
	DisplayName string         `db:"display_name" json:"display_name"`
	SortOrder   int            `db:"sort_order" json:"sort_order"`
}

func (f *Favorite) TableName() string {
	return "favorites"
}

var FavoriteDB *thing.Thing[*Favorite]

func FavoriteInit() error {
	var err error
	FavoriteDB, err = thing.Use[*Favorite]()
	return err
}

func GetFavoritesByWorkspace(workspaceID int64) ([]*Favorite, error) {
	return FavoriteDB.Where("workspace_id = ?", workspaceID).Order("sort_order ASC, id ASC").Fetch(0, 1000)
}

func GetFavoriteByID(id int64, userID int64) (*Favorite, error) {
	favorite, err := FavoriteDB.ByID(id)
	if err != nil {
		return nil, errNew(errors.ErrFavoriteNotFound)
	}
	if favorite.UserID != userID {
		return nil, errNew(errors.ErrFavoriteNotFound)
	}
	return favorite, nil
}

// Insert appends the favorite at the end of its workspace's list.
func (f *Favorite) Insert() error {
	if f.UserID == 0 || f.WorkspaceID == 0 || f.TargetID == 0 {
		return errNew(errors.ErrInvalidParam)
	}
	if f.TargetType != FavoriteTargetProvider && f.TargetType != FavoriteTargetPersonality {
		return errNew(errors.ErrInvalidParam)
	}
	favorites, err := GetFavoritesByWorkspace(f.WorkspaceID)
	if err != nil {
		return err
	}
	f.SortOrder = len(favorites)
	return FavoriteDB.Save(f)
}

// Delete removes the favorite and closes the sort gap.
func (f *Favorite) Delete() error {
	if f.ID == 0 {
		return errNew(errors.ErrEmptyID)
	}
	if err := FavoriteDB.Delete(f); err != nil {
		return err
	}
	return renumberFavorites(f.WorkspaceID)
}

// ApplyFavoriteOrder persists a full ordering of a workspace's favorites.
func ApplyFavoriteOrder(workspaceID int64, orderedIDs []int64) error {
	favorites, err := GetFavoritesByWorkspace(workspaceID)
	if err != nil {
		return err
	}
	if len(orderedIDs) != len(favorites) {
		return errNew(errors.ErrInvalidParam)
	}
	byID := make(map[int64]*Favorite, len(favorites))
	for _, f := range favorites {
		byID[f.ID] = f
	}
	for idx, id := range orderedIDs {
		f, ok := byID[id]
		if !ok {
			return errNew(errors.ErrInvalidParam)
		}
		if f.SortOrder == idx {
			continue
		}
		f.SortOrder = idx
		if err := FavoriteDB.Save(f); err != nil {
			return err
		}
	}
	return nil
}

func DeleteFavoritesByWorkspace(workspaceID int64) error {
	favorites, err := GetFavoritesByWorkspace(workspaceID)
	if err != nil {
		return err
	}
	for _, f := range favorites {
		if err := FavoriteDB.Delete(f); err != nil {
			return err
		}
	}
	return nil
}

func renumberFavorites(workspaceID int64) error {
	favorites, err := GetFavoritesByWorkspace(workspaceID)
	if err != nil {
		return err
	}
	for idx, f := range favorites {
		if f.SortOrder == idx {
			continue
		}
		f.SortOrder = idx
		if err := FavoriteDB.Save(f); err != nil {
			return err
		}
	}
	return nil
}
