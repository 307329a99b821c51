package model

import (
	"chatspace/backend/common/errors"

	"github.com/burugo/thing"
	"github.com/google/uuid"
)

// ChatSession is a conversation inside a workspace. ShareToken is empty
// while the session is private; sharing mints an opaque token that grants
// read-only access without authentication.
type ChatSession struct {
	thing.BaseModel
	UserID      int64  `db:"user_id,index:idx_session_owner" json:"user_id"`
	WorkspaceID int64  `db:"workspace_id,index:idx_session_owner" json:"workspace_id"`
	Title       string `db:"title" json:"title"`
	ShareToken  string `db:"share_token,index" json:"share_token,omitempty"`
}

func (s *ChatSession) TableName() string {
	return "chat_sessions"
}

var ChatSessionDB *thing.Thing[*ChatSession]

func ChatSessionInit() error {
	var err error
	ChatSessionDB, err = thing.Use[*ChatSession]()
	return err
}

func GetChatSessionsByWorkspace(userID int64, workspaceID int64) ([]*ChatSession, error) {
	return ChatSessionDB.Where("user_id = ? AND workspace_id = ?", userID, workspaceID).Order("id DESC").Fetch(0, 1000)
}

func GetChatSessionByID(id int64, userID int64) (*ChatSession, error) {
	session, err := ChatSessionDB.ByID(id)
	if err != nil {
		return nil, errNew(errors.ErrSessionNotFound)
	}
	if session.UserID != userID {
		return nil, errNew(errors.ErrSessionNotFound)
	}
	return session, nil
}

// GetChatSessionByShareToken resolves a shared session without ownership
// checks; callers get read-only access.
func GetChatSessionByShareToken(token string) (*ChatSession, error) {
	if token == "" {
		return nil, errNew(errors.ErrSessionNotFound)
	}
	sessions, err := ChatSessionDB.Where("share_token = ?", token).Fetch(0, 1)
	if err != nil || len(sessions) == 0 {
		return nil, errNew(errors.ErrSessionNotFound)
	}
	return sessions[0], nil
}

func (s *ChatSession) Insert() error {
	if s.UserID == 0 || s.WorkspaceID == 0 {
		return errNew(errors.ErrInvalidParam)
	}
	if s.Title == "" {
		s.Title = "New Chat"
	}
	return ChatSessionDB.Save(s)
}

func (s *ChatSession) Update() error {
	if s.ID == 0 {
		return errNew(errors.ErrEmptyID)
	}
	return ChatSessionDB.Save(s)
}

// Share mints a share token if the session has none yet.
func (s *ChatSession) Share() error {
	if s.ShareToken == "" {
		s.ShareToken = uuid.New().String()
	}
	return ChatSessionDB.Save(s)
}

// Unshare revokes the share token; old links stop resolving.
func (s *ChatSession) Unshare() error {
	s.ShareToken = ""
	return ChatSessionDB.Save(s)
}

// Delete removes the session and its messages.
func (s *ChatSession) Delete() error {
	if s.ID == 0 {
		return errNew(errors.ErrEmptyID)
	}
	if err := DeleteChatMessagesBySession(s.ID); err != nil {
		return err
	}
	return ChatSessionDB.Delete(s)
}

func DeleteChatSessionsByWorkspace(workspaceID int64) error {
	sessions, err := ChatSessionDB.Where("workspace_id = ?", workspaceID).Fetch(0, 1000)
	if err != nil {
		return err
	}
	for _, s := range sessions {
		if err := DeleteChatMessagesBySession(s.ID); err != nil {
			return err
		}
		if err := ChatSessionDB.Delete(s); err != nil {
			return err
		}
	}
	return nil
}
