package handler

import (
	"net/http"
	"strconv"

	"chatspace/backend/common"
	cserrors "chatspace/backend/common/errors"
	"chatspace/backend/common/i18n"
	"chatspace/backend/model"

	"github.com/gin-gonic/gin"
)

type chatSessionPayload struct {
	WorkspaceID int64  `json:"workspace_id" validate:"required"`
	Title       string `json:"title" validate:"max=200"`
}

type chatSessionUpdatePayload struct {
	Title string `json:"title" validate:"required,max=200"`
}

type chatMessagePayload struct {
	Role    string `json:"role" validate:"required,oneof=user assistant system"`
	Content string `json:"content" validate:"required"`
}

// GetChatSessions lists the sessions of one workspace, newest first.
func GetChatSessions(c *gin.Context) {
	userID := currentUserID(c)

	workspaceID, err := strconv.ParseInt(c.Query("workspace_id"), 10, 64)
	if err != nil || workspaceID == 0 {
		common.RespErrorStr(c, http.StatusBadRequest, "workspace_id is required")
		return
	}
	if _, err := model.GetWorkspaceByID(workspaceID, userID); err != nil {
		respDomainError(c, err)
		return
	}

	sessions, err := model.GetChatSessionsByWorkspace(userID, workspaceID)
	if err != nil {
		respDomainError(c, err)
		return
	}
	common.RespSuccess(c, sessions)
}

func CreateChatSession(c *gin.Context) {
	userID := currentUserID(c)
	lang := currentLang(c)

	var payload chatSessionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := validate.Struct(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid session parameters", err)
		return
	}
	if _, err := model.GetWorkspaceByID(payload.WorkspaceID, userID); err != nil {
		respDomainError(c, err)
		return
	}

	session := &model.ChatSession{
		UserID:      userID,
		WorkspaceID: payload.WorkspaceID,
		Title:       payload.Title,
	}
	if err := session.Insert(); err != nil {
		common.RespError(c, http.StatusInternalServerError, i18n.Translate(cserrors.ErrInternalServer, lang), err)
		return
	}
	common.RespSuccess(c, session)
}

// GetChatSession returns a session together with its messages.
func GetChatSession(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	session, err := model.GetChatSessionByID(id, currentUserID(c))
	if err != nil {
		respDomainError(c, err)
		return
	}
	messages, err := model.GetChatMessagesBySession(session.ID)
	if err != nil {
		respDomainError(c, err)
		return
	}
	common.RespSuccess(c, gin.H{
		"session":  session,
		"messages": messages,
	})
}

func UpdateChatSession(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var payload chatSessionUpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := validate.Struct(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "title is required", err)
		return
	}

	session, err := model.GetChatSessionByID(id, currentUserID(c))
	if err != nil {
		respDomainError(c, err)
		return
	}
	session.Title = payload.Title
	if err := session.Update(); err != nil {
		respDomainError(c, err)
		return
	}
	common.RespSuccess(c, session)
}

func DeleteChatSession(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	session, err := model.GetChatSessionByID(id, currentUserID(c))
	if err != nil {
		respDomainError(c, err)
		return
	}
	if err := session.Delete(); err != nil {
		respDomainError(c, err)
		return
	}
	common.RespSuccessStr(c, "")
}

func CreateChatMessage(c *gin.Context) {
	lang := currentLang(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	var payload chatMessagePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := validate.Struct(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid message parameters", err)
		return
	}

	session, err := model.GetChatSessionByID(id, currentUserID(c))
	if err != nil {
		respDomainError(c, err)
		return
	}
	message := &model.ChatMessage{
		SessionID: session.ID,
		Role:      payload.Role,
		Content:   payload.Content,
	}
	if err := message.Insert(); err != nil {
		common.RespError(c, http.StatusInternalServerError, i18n.Translate(cserrors.ErrInternalServer, lang), err)
		return
	}
	common.RespSuccess(c, message)
}

// ShareChatSession mints a share token. Sharing twice returns the same token.
func ShareChatSession(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	session, err := model.GetChatSessionByID(id, currentUserID(c))
	if err != nil {
		respDomainError(c, err)
		return
	}
	if err := session.Share(); err != nil {
		respDomainError(c, err)
		return
	}
	common.RespSuccess(c, gin.H{
		"share_token": session.ShareToken,
	})
}

// UnshareChatSession revokes the share token; existing links stop working.
func UnshareChatSession(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	session, err := model.GetChatSessionByID(id, currentUserID(c))
	if err != nil {
		respDomainError(c, err)
		return
	}
	if err := session.Unshare(); err != nil {
		respDomainError(c, err)
		return
	}
	common.RespSuccessStr(c, "")
}

// GetSharedChatSession serves a shared session read-only, without
// authentication. Owner identity stays hidden.
func GetSharedChatSession(c *gin.Context) {
	token := c.Param("token")
	session, err := model.GetChatSessionByShareToken(token)
	if err != nil {
		respDomainError(c, err)
		return
	}
	messages, err := model.GetChatMessagesBySession(session.ID)
	if err != nil {
		respDomainError(c, err)
		return
	}
	common.RespSuccess(c, gin.H{
		"title":    session.Title,
		"messages": messages,
	})
}
