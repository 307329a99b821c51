package model

import (
	"chatspace/backend/common/errors"

	"github.com/burugo/thing"
)

// Message roles.
const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
	MessageRoleSystem    = "system"
)

type ChatMessage struct {
	thing.BaseModel
	SessionID int64  `db:"session_id,index" json:"session_id"`
	Role      string `db:"role" json:"role"`
	Content   string `db:"content" json:"content"`
}

func (m *ChatMessage) TableName() string {
	return "chat_messages"
}

var ChatMessageDB *thing.Thing[*ChatMessage]

func ChatMessageInit() error {
	var err error
	ChatMessageDB, err = thing.Use[*ChatMessage]()
	return err
}

func GetChatMessagesBySession(sessionID int64) ([]*ChatMessage, error) {
	return ChatMessageDB.Where("session_id = ?", sessionID).Order("id ASC").Fetch(0, 10000)
}

func (m *ChatMessage) Insert() error {
	if m.SessionID == 0 || m.Content == "" {
		return errNew(errors.ErrInvalidParam)
	}
	switch m.Role {
	case MessageRoleUser, MessageRoleAssistant, MessageRoleSystem:
	default:
		return errNew(errors.ErrInvalidParam)
	}
	return ChatMessageDB.Save(m)
}

func DeleteChatMessagesBySession(sessionID int64) error {
	messages, err := GetChatMessagesBySession(sessionID)
	if err != nil {
		return err
	}
	for _, m := range messages {
		if err := ChatMessageDB.Delete(m); err != nil {
			return err
		}
	}
	return nil
}
