package model

import (
	"chatspace/backend/common"
	cserrors "chatspace/backend/common/errors"
	"chatspace/backend/common/i18n"

	"github.com/burugo/thing"
)

// User represents an account. Sensitive fields are excluded from API
// responses via json tags.
type User struct {
	thing.BaseModel
	Username    string `db:"username,unique" json:"username"`
	Password    string `db:"password" json:"-"`
	DisplayName string `db:"display_name,index" json:"display_name"`
	Role        int    `db:"role" json:"role"`
	Status      int    `db:"status" json:"status"`
	Email       string `db:"email,index" json:"email"`
}

func (u *User) TableName() string {
	return "users"
}

var UserDB *thing.Thing[*User]

func UserInit() error {
	var err error
	UserDB, err = thing.Use[*User]()
	return err
}

func GetAllUsers(startIdx int, num int) ([]*User, error) {
	return UserDB.Order("id DESC").Fetch(startIdx, num)
}

func SearchUsers(keyword string) ([]*User, error) {
	return UserDB.Where(
		"id = ? OR username LIKE ? OR email LIKE ? OR display_name LIKE ?",
		keyword, keyword+"%", keyword+"%", keyword+"%",
	).Order("id DESC").Fetch(0, 100)
}

func GetUserById(id int64, lang string) (*User, error) {
	if id == 0 {
		return nil, i18n.New(cserrors.ErrEmptyID, lang)
	}
	user, err := UserDB.ByID(id)
	if err != nil {
		return nil, i18n.Wrap(err, cserrors.ErrUserNotFound, lang)
	}
	return user, nil
}

// DeleteUserById removes the account together with everything it owns:
// workspaces with their favorites, chat sessions and messages, plus groups,
// personalities and providers.
func DeleteUserById(id int64, lang string) error {
	if id == 0 {
		return i18n.New(cserrors.ErrEmptyID, lang)
	}
	user, err := UserDB.ByID(id)
	if err != nil {
		return i18n.Wrap(err, cserrors.ErrUserNotFound, lang)
	}

	workspaces, err := GetWorkspacesByUserID(id)
	if err != nil {
		return err
	}
	for _, workspace := range workspaces {
		if err := DeleteFavoritesByWorkspace(workspace.ID); err != nil {
			return err
		}
		if err := DeleteChatSessionsByWorkspace(workspace.ID); err != nil {
			return err
		}
		if err := WorkspaceDB.Delete(workspace); err != nil {
			return err
		}
	}

	groups, err := GetWorkspaceGroupsByUserID(id)
	if err != nil {
		return err
	}
	for _, group := range groups {
		if err := WorkspaceGroupDB.Delete(group); err != nil {
			return err
		}
	}

	personalities, err := GetPersonalitiesByUserID(id)
	if err != nil {
		return err
	}
	for _, personality := range personalities {
		if err := PersonalityDB.Delete(personality); err != nil {
			return err
		}
	}

	providers, err := GetAIProvidersByUserID(id)
	if err != nil {
		return err
	}
	for _, provider := range providers {
		if err := AIProviderDB.Delete(provider); err != nil {
			return err
		}
	}

	return UserDB.Delete(user)
}

func (user *User) Insert() error {
	if user.Password != "" {
		var err error
		user.Password, err = common.Password2Hash(user.Password)
		if err != nil {
			return err
		}
	}
	if err := UserDB.Save(user); err != nil {
		return err
	}
	return CreateDefaultWorkspace(user.ID)
}

func (user *User) Update(updatePassword bool) error {
	if updatePassword {
		var err error
		user.Password, err = common.Password2Hash(user.Password)
		if err != nil {
			return err
		}
	}
	return UserDB.Save(user)
}

// ValidateAndFill checks the credentials carried by user and, on success,
// replaces user with the stored record.
func (user *User) ValidateAndFill(lang string) error {
	if user.Username == "" || user.Password == "" {
		return i18n.New(cserrors.ErrEmptyCredentials, lang)
	}
	users, err := UserDB.Where("username = ?", user.Username).Fetch(0, 1)
	if err != nil || len(users) == 0 {
		return i18n.New(cserrors.ErrInvalidCredentials, lang)
	}
	found := users[0]
	okay := common.ValidatePasswordAndHash(user.Password, found.Password)
	if !okay {
		return i18n.New(cserrors.ErrInvalidCredentials, lang)
	}
	if found.Status != common.UserStatusEnabled {
		return i18n.New(cserrors.ErrUserDisabled, lang)
	}
	*user = *found
	return nil
}

func IsEmailAlreadyTaken(email string) bool {
	users, err := UserDB.Where("email = ?", email).Fetch(0, 1)
	return err == nil && len(users) > 0
}

func IsUsernameAlreadyTaken(username string) bool {
	users, err := UserDB.Where("username = ?", username).Fetch(0, 1)
	return err == nil && len(users) > 0
}

func HasAnyUser() bool {
	users, err := UserDB.Query(thing.QueryParams{}).Fetch(0, 1)
	return err == nil && len(users) > 0
}
