package handler

import (
	"net/http"
	"strconv"
	"strings"

	"chatspace/backend/common"
	cserrors "chatspace/backend/common/errors"
	"chatspace/backend/common/i18n"
	"chatspace/backend/model"
	"chatspace/backend/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type registerPayload struct {
	Username    string `json:"username" validate:"required,min=3,max=30"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email" validate:"omitempty,email"`
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshPayload struct {
	RefreshToken string `json:"refresh_token"`
}

type updateSelfPayload struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email" validate:"omitempty,email"`
	Password    string `json:"password" validate:"omitempty,min=8"`
}

func Register(c *gin.Context) {
	lang := currentLang(c)
	if !model.GetOptionBool(model.OptionRegisterEnabled) {
		common.RespErrorStr(c, http.StatusForbidden, "registration is disabled by the administrator")
		return
	}

	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := validate.Struct(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid register parameters", err)
		return
	}
	if model.IsUsernameAlreadyTaken(payload.Username) {
		common.RespErrorStr(c, http.StatusBadRequest, i18n.Translate(cserrors.ErrUsernameTaken, lang))
		return
	}
	if payload.Email != "" && model.IsEmailAlreadyTaken(payload.Email) {
		common.RespErrorStr(c, http.StatusBadRequest, i18n.Translate(cserrors.ErrEmailTaken, lang))
		return
	}

	displayName := payload.DisplayName
	if displayName == "" {
		displayName = payload.Username
	}
	user := &model.User{
		Username:    payload.Username,
		Password:    payload.Password,
		DisplayName: displayName,
		Email:       payload.Email,
		Role:        common.RoleCommonUser,
		Status:      common.UserStatusEnabled,
	}
	if err := user.Insert(); err != nil {
		common.RespError(c, http.StatusInternalServerError, i18n.Translate(cserrors.ErrInternalServer, lang), err)
		return
	}
	common.RespSuccess(c, user)
}

func Login(c *gin.Context) {
	lang := currentLang(c)

	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	user := &model.User{
		Username: payload.Username,
		Password: payload.Password,
	}
	if err := user.ValidateAndFill(lang); err != nil {
		status := http.StatusUnauthorized
		if i18n.IsErrorCode(err, cserrors.ErrUserDisabled) {
			status = http.StatusForbidden
		}
		common.RespErrorStr(c, status, err.Error())
		return
	}

	setupLogin(user, c)
}

// setupLogin establishes the session and issues the token pair once
// credentials have been verified.
func setupLogin(user *model.User, c *gin.Context) {
	session := sessions.Default(c)
	session.Set("id", user.ID)
	session.Set("username", user.Username)
	session.Set("role", user.Role)
	session.Set("status", user.Status)
	if err := session.Save(); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to save session", err)
		return
	}

	accessToken, err := service.GenerateToken(user)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to generate token", err)
		return
	}
	refreshToken, err := service.GenerateRefreshToken(user)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to generate refresh token", err)
		return
	}

	common.RespSuccess(c, gin.H{
		"user":          user,
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

func Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		service.BlacklistToken(strings.TrimPrefix(authHeader, "Bearer "))
	}

	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to clear session", err)
		return
	}
	common.RespSuccessStr(c, "")
}

func RefreshToken(c *gin.Context) {
	lang := currentLang(c)

	var payload refreshPayload
	if err := c.ShouldBindJSON(&payload); err != nil || payload.RefreshToken == "" {
		common.RespErrorStr(c, http.StatusBadRequest, "refresh_token is required")
		return
	}

	claims, err := service.ValidateRefreshToken(payload.RefreshToken)
	if err != nil {
		common.RespErrorStr(c, http.StatusUnauthorized, "invalid refresh token")
		return
	}
	user, err := model.GetUserById(claims.UserID, lang)
	if err != nil {
		common.RespErrorStr(c, http.StatusUnauthorized, err.Error())
		return
	}
	if user.Status != common.UserStatusEnabled {
		common.RespErrorStr(c, http.StatusForbidden, i18n.Translate(cserrors.ErrUserDisabled, lang))
		return
	}

	accessToken, err := service.GenerateToken(user)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to generate token", err)
		return
	}
	refreshToken, err := service.GenerateRefreshToken(user)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to generate refresh token", err)
		return
	}
	common.RespSuccess(c, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

func GetSelf(c *gin.Context) {
	user, err := model.GetUserById(currentUserID(c), currentLang(c))
	if err != nil {
		common.RespErrorStr(c, http.StatusNotFound, err.Error())
		return
	}
	common.RespSuccess(c, user)
}

func UpdateSelf(c *gin.Context) {
	lang := currentLang(c)

	var payload updateSelfPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := validate.Struct(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid profile parameters", err)
		return
	}

	user, err := model.GetUserById(currentUserID(c), lang)
	if err != nil {
		common.RespErrorStr(c, http.StatusNotFound, err.Error())
		return
	}
	if payload.Email != "" && payload.Email != user.Email && model.IsEmailAlreadyTaken(payload.Email) {
		common.RespErrorStr(c, http.StatusBadRequest, i18n.Translate(cserrors.ErrEmailTaken, lang))
		return
	}

	if payload.DisplayName != "" {
		user.DisplayName = payload.DisplayName
	}
	if payload.Email != "" {
		user.Email = payload.Email
	}
	updatePassword := payload.Password != ""
	if updatePassword {
		user.Password = payload.Password
	}
	if err := user.Update(updatePassword); err != nil {
		common.RespError(c, http.StatusInternalServerError, i18n.Translate(cserrors.ErrInternalServer, lang), err)
		return
	}
	common.RespSuccess(c, user)
}

// DeleteSelf removes the caller's account. The root account cannot delete
// itself.
func DeleteSelf(c *gin.Context) {
	lang := currentLang(c)

	user, err := model.GetUserById(currentUserID(c), lang)
	if err != nil {
		common.RespErrorStr(c, http.StatusNotFound, err.Error())
		return
	}
	if user.Role == common.RoleRootUser {
		common.RespErrorStr(c, http.StatusForbidden, "root account cannot delete itself")
		return
	}
	if err := model.DeleteUserById(user.ID, lang); err != nil {
		common.RespError(c, http.StatusInternalServerError, i18n.Translate(cserrors.ErrInternalServer, lang), err)
		return
	}

	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()
	common.RespSuccessStr(c, "")
}

func GetAllUsers(c *gin.Context) {
	p, _ := strconv.Atoi(c.Query("p"))
	if p < 0 {
		p = 0
	}
	users, err := model.GetAllUsers(p*common.ItemsPerPage, common.ItemsPerPage)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, err.Error(), err)
		return
	}
	common.RespSuccess(c, users)
}

func SearchUsers(c *gin.Context) {
	keyword := c.Query("keyword")
	users, err := model.SearchUsers(keyword)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, err.Error(), err)
		return
	}
	common.RespSuccess(c, users)
}

func GetUser(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	user, err := model.GetUserById(id, currentLang(c))
	if err != nil {
		common.RespErrorStr(c, http.StatusNotFound, err.Error())
		return
	}
	myRole := c.GetInt("role")
	if myRole <= user.Role && myRole != common.RoleRootUser {
		common.RespErrorStr(c, http.StatusForbidden, "insufficient privileges to view this user")
		return
	}
	common.RespSuccess(c, user)
}

func CreateUser(c *gin.Context) {
	lang := currentLang(c)

	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := validate.Struct(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid user parameters", err)
		return
	}
	if model.IsUsernameAlreadyTaken(payload.Username) {
		common.RespErrorStr(c, http.StatusBadRequest, i18n.Translate(cserrors.ErrUsernameTaken, lang))
		return
	}

	displayName := payload.DisplayName
	if displayName == "" {
		displayName = payload.Username
	}
	user := &model.User{
		Username:    payload.Username,
		Password:    payload.Password,
		DisplayName: displayName,
		Email:       payload.Email,
		Role:        common.RoleCommonUser,
		Status:      common.UserStatusEnabled,
	}
	if err := user.Insert(); err != nil {
		common.RespError(c, http.StatusInternalServerError, i18n.Translate(cserrors.ErrInternalServer, lang), err)
		return
	}
	common.RespSuccess(c, user)
}

type manageUserPayload struct {
	Action string `json:"action" validate:"required,oneof=enable disable promote demote"`
}

// ManageUser flips a user's status or role. Admins cannot touch peers or
// superiors.
func ManageUser(c *gin.Context) {
	lang := currentLang(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	var payload manageUserPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := validate.Struct(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid manage action", err)
		return
	}

	user, err := model.GetUserById(id, lang)
	if err != nil {
		common.RespErrorStr(c, http.StatusNotFound, err.Error())
		return
	}
	myRole := c.GetInt("role")
	if myRole <= user.Role && myRole != common.RoleRootUser {
		common.RespErrorStr(c, http.StatusForbidden, "insufficient privileges to manage this user")
		return
	}

	switch payload.Action {
	case "enable":
		user.Status = common.UserStatusEnabled
	case "disable":
		user.Status = common.UserStatusDisabled
	case "promote":
		if myRole != common.RoleRootUser {
			common.RespErrorStr(c, http.StatusForbidden, "only root can promote users")
			return
		}
		user.Role = common.RoleAdminUser
	case "demote":
		if myRole != common.RoleRootUser {
			common.RespErrorStr(c, http.StatusForbidden, "only root can demote users")
			return
		}
		user.Role = common.RoleCommonUser
	}
	if err := user.Update(false); err != nil {
		common.RespError(c, http.StatusInternalServerError, i18n.Translate(cserrors.ErrInternalServer, lang), err)
		return
	}
	common.RespSuccess(c, user)
}

func DeleteUser(c *gin.Context) {
	lang := currentLang(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	user, err := model.GetUserById(id, lang)
	if err != nil {
		common.RespErrorStr(c, http.StatusNotFound, err.Error())
		return
	}
	myRole := c.GetInt("role")
	if myRole <= user.Role {
		common.RespErrorStr(c, http.StatusForbidden, "insufficient privileges to delete this user")
		return
	}
	if err := model.DeleteUserById(id, lang); err != nil {
		common.RespError(c, http.StatusInternalServerError, i18n.Translate(cserrors.ErrInternalServer, lang), err)
		return
	}
	common.RespSuccessStr(c, "")
}
