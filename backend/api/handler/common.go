package handler

import (
	"net/http"
	"strconv"

	"chatspace/backend/common"
	cserrors "chatspace/backend/common/errors"
	"chatspace/backend/common/i18n"

	"github.com/gin-gonic/gin"
)

func currentUserID(c *gin.Context) int64 {
	return c.GetInt64("user_id")
}

func currentLang(c *gin.Context) string {
	lang := c.GetString("lang")
	if lang == "" {
		lang = "en"
	}
	return lang
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		common.RespErrorStr(c, http.StatusBadRequest, i18n.Translate(cserrors.ErrEmptyID, currentLang(c)))
		return 0, false
	}
	return id, true
}

var domainErrorStatus = map[string]int{
	cserrors.ErrEmptyID:              http.StatusBadRequest,
	cserrors.ErrInvalidParam:         http.StatusBadRequest,
	cserrors.ErrLastWorkspace:        http.StatusBadRequest,
	cserrors.ErrGroupMismatch:        http.StatusBadRequest,
	cserrors.ErrEmailTaken:           http.StatusBadRequest,
	cserrors.ErrUsernameTaken:        http.StatusBadRequest,
	cserrors.ErrEmptyPassword:        http.StatusBadRequest,
	cserrors.ErrEmptyCredentials:     http.StatusBadRequest,
	cserrors.ErrInvalidCredentials:   http.StatusUnauthorized,
	cserrors.ErrUserDisabled:         http.StatusForbidden,
	cserrors.ErrSessionPrivate:       http.StatusForbidden,
	cserrors.ErrUserNotFound:         http.StatusNotFound,
	cserrors.ErrWorkspaceNotFound:    http.StatusNotFound,
	cserrors.ErrGroupNotFound:        http.StatusNotFound,
	cserrors.ErrFavoriteNotFound:     http.StatusNotFound,
	cserrors.ErrPersonalityNotFound:  http.StatusNotFound,
	cserrors.ErrProviderNotFound:     http.StatusNotFound,
	cserrors.ErrSessionNotFound:      http.StatusNotFound,
}

// respDomainError maps a model error code to an HTTP status and localizes the
// message. Unknown errors are reported as internal.
func respDomainError(c *gin.Context, err error) {
	lang := currentLang(c)
	code := err.Error()
	if status, ok := domainErrorStatus[code]; ok {
		common.RespErrorStr(c, status, i18n.Translate(code, lang))
		return
	}
	common.RespError(c, http.StatusInternalServerError, i18n.Translate(cserrors.ErrInternalServer, lang), err)
}
