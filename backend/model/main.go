package model

import (
	"chatspace/backend/common"

	"github.com/burugo/thing"
	redisCache "github.com/burugo/thing/drivers/cache/redis"
	"github.com/burugo/thing/drivers/db/sqlite"
)

func createRootAccountIfNeed() error {
	userThing, err := thing.Use[*User]()
	if err != nil {
		return err
	}
	users, err := userThing.Query(thing.QueryParams{}).Fetch(0, 1)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		common.SysLog("no user exists, create a root user for you: username is root, password is 123456")
		hashedPassword, err := common.Password2Hash("123456")
		if err != nil {
			return err
		}
		rootUser := &User{
			Username:    "root",
			Password:    hashedPassword,
			Role:        common.RoleRootUser,
			Status:      common.UserStatusEnabled,
			DisplayName: "Root User",
			Email:       "root@localhost",
		}
		if err := userThing.Save(rootUser); err != nil {
			return err
		}
		// A fresh account always starts with one workspace.
		return CreateDefaultWorkspace(rootUser.ID)
	}
	return nil
}

func InitDB() (err error) {
	dbAdapter, err := sqlite.NewSQLiteAdapter(common.SQLitePath)
	if err != nil {
		common.FatalLog(err)
		return err
	}
	var cacheClient thing.CacheClient = nil
	if common.RedisEnabled && common.RDB != nil {
		cacheClient, err = redisCache.NewClient(common.RDB, nil)
		if err != nil {
			return err
		}
	}
	thing.Configure(dbAdapter, cacheClient)

	err = thing.AutoMigrate(
		&User{}, &Option{},
		&Workspace{}, &WorkspaceGroup{},
		&Favorite{}, &Personality{}, &AIProvider{},
		&ChatSession{}, &ChatMessage{},
	)
	if err != nil {
		return err
	}

	if err := UserInit(); err != nil {
		return err
	}
	if err := OptionInit(); err != nil {
		return err
	}
	// InitOptionMapFromDB must run after OptionInit and AutoMigrate.
	if err := InitOptionMapFromDB(); err != nil {
		return err
	}
	if err := WorkspaceInit(); err != nil {
		return err
	}
	if err := WorkspaceGroupInit(); err != nil {
		return err
	}
	if err := FavoriteInit(); err != nil {
		return err
	}
	if err := PersonalityInit(); err != nil {
		return err
	}
	if err := AIProviderInit(); err != nil {
		return err
	}
	if err := ChatSessionInit(); err != nil {
		return err
	}
	if err := ChatMessageInit(); err != nil {
		return err
	}

	return createRootAccountIfNeed()
}

func CloseDB() error {
	// The ORM does not require an explicit close.
	return nil
}
