package service

import (
	"strconv"

	"chatspace/backend/model"
)

// UpdateOption validates and persists a system option.
func UpdateOption(key string, value string) error {
	switch key {
	case model.OptionRegisterEnabled, model.OptionSetupCompleted:
		if _, err := strconv.ParseBool(value); err != nil {
			return err
		}
	case model.OptionMaxWorkspacesPerUser:
		if _, err := strconv.Atoi(value); err != nil {
			return err
		}
	}
	return model.UpdateOptionValue(key, value)
}
