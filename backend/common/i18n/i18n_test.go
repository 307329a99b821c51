package i18n

import (
	"testing"

	"chatspace/backend/common/errors"
)

func TestTranslate(t *testing.T) {
	if err := Init("../../../locales"); err != nil {
		t.Fatalf("Failed to init i18n: %v", err)
	}

	tests := []struct {
		code     string
		lang     string
		expected string
	}{
		{errors.ErrEmptyID, "en", "ID is empty"},
		{errors.ErrEmptyID, "zh", "ID 为空"},
		{errors.ErrUserNotFound, "en", "User not found"},
		{errors.ErrUserNotFound, "zh", "未找到用户"},
		{errors.ErrWorkspaceNotFound, "en", "Workspace not found"},
		{errors.ErrLastWorkspace, "zh", "无法删除最后一个工作区"},
		// Unknown languages fall back to the default language.
		{errors.ErrEmptyID, "fr", "ID is empty"},
		// Region suffixes map onto the base locale.
		{errors.ErrEmptyID, "zh-CN", "ID 为空"},
		// Unknown codes come back verbatim.
		{"UNKNOWN_ERROR", "en", "UNKNOWN_ERROR"},
	}

	for _, tt := range tests {
		result := Translate(tt.code, tt.lang)
		if result != tt.expected {
			t.Errorf("Translate(%s, %s) = %s, want %s", tt.code, tt.lang, result, tt.expected)
		}
	}
}

func TestNewError(t *testing.T) {
	if err := Init("../../../locales"); err != nil {
		t.Fatalf("Failed to init i18n: %v", err)
	}

	err := New(errors.ErrEmptyID, "en")
	if err.Error() != "ID is empty" {
		t.Errorf("New(ErrEmptyID, en).Error() = %s, want 'ID is empty'", err.Error())
	}
	if err.Code != errors.ErrEmptyID {
		t.Errorf("New(ErrEmptyID, en).Code = %s, want %s", err.Code, errors.ErrEmptyID)
	}

	err = New(errors.ErrEmptyID, "zh")
	if err.Error() != "ID 为空" {
		t.Errorf("New(ErrEmptyID, zh).Error() = %s, want 'ID 为空'", err.Error())
	}

	if !IsErrorCode(err, errors.ErrEmptyID) {
		t.Errorf("IsErrorCode(err, ErrEmptyID) = false, want true")
	}
	if IsErrorCode(err, errors.ErrUserNotFound) {
		t.Errorf("IsErrorCode(err, ErrUserNotFound) = true, want false")
	}
}
