package model

import (
	"strconv"

	"chatspace/backend/common"

	"github.com/burugo/thing"
)

// Option is a system-wide key/value setting managed by root admins.
type Option struct {
	thing.BaseModel
	Key   string `db:"key,unique" json:"key"`
	Value string `db:"value" json:"value"`
}

func (o *Option) TableName() string {
	return "options"
}

var OptionDB *thing.Thing[*Option]

// OptionMap mirrors the options table in memory. Guarded by
// common.OptionMapRWMutex.
var OptionMap map[string]string

func OptionInit() error {
	var err error
	OptionDB, err = thing.Use[*Option]()
	return err
}

// Option keys understood by the server.
const (
	OptionRegisterEnabled      = "RegisterEnabled"
	OptionSetupCompleted       = "SetupCompleted"
	OptionMaxWorkspacesPerUser = "MaxWorkspacesPerUser"
	OptionDefaultWorkspaceName = "DefaultWorkspaceName"
)

func InitOptionMapFromDB() error {
	common.OptionMapRWMutex.Lock()
	OptionMap = map[string]string{
		OptionRegisterEnabled:      "true",
		OptionSetupCompleted:       "false",
		OptionMaxWorkspacesPerUser: "50",
		OptionDefaultWorkspaceName: "My Workspace",
	}
	common.OptionMapRWMutex.Unlock()

	options, err := OptionDB.All()
	if err != nil {
		return err
	}
	common.OptionMapRWMutex.Lock()
	defer common.OptionMapRWMutex.Unlock()
	for _, option := range options {
		OptionMap[option.Key] = option.Value
	}
	return nil
}

func AllOptions() ([]*Option, error) {
	return OptionDB.All()
}

// UpdateOptionValue persists key=value and refreshes the in-memory map.
func UpdateOptionValue(key string, value string) error {
	options, err := OptionDB.Where("key = ?", key).Fetch(0, 1)
	if err != nil {
		return err
	}
	var option *Option
	if len(options) > 0 {
		option = options[0]
		option.Value = value
	} else {
		option = &Option{Key: key, Value: value}
	}
	if err := OptionDB.Save(option); err != nil {
		return err
	}

	common.OptionMapRWMutex.Lock()
	defer common.OptionMapRWMutex.Unlock()
	if OptionMap == nil {
		OptionMap = make(map[string]string)
	}
	OptionMap[key] = value
	return nil
}

// GetOptionValue reads an option from the in-memory map.
func GetOptionValue(key string) string {
	common.OptionMapRWMutex.RLock()
	defer common.OptionMapRWMutex.RUnlock()
	return OptionMap[key]
}

func GetOptionBool(key string) bool {
	return GetOptionValue(key) == "true"
}

func GetOptionInt(key string, fallback int) int {
	v, err := strconv.Atoi(GetOptionValue(key))
	if err != nil {
		return fallback
	}
	return v
}
