package handler

import (
	"net/http"

	"chatspace/backend/common"
	cserrors "chatspace/backend/common/errors"
	"chatspace/backend/common/i18n"
	"chatspace/backend/model"

	"github.com/gin-gonic/gin"
)

type personalityPayload struct {
	Name         string `json:"name" validate:"required,max=100"`
	Description  string `json:"description"`
	SystemPrompt string `json:"system_prompt"`
}

type personalityUpdatePayload struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	SystemPrompt *string `json:"system_prompt"`
}

func GetPersonalities(c *gin.Context) {
	personalities, err := model.GetPersonalitiesByUserID(currentUserID(c))
	if err != nil {
		respDomainError(c, err)
		return
	}
	common.RespSuccess(c, personalities)
}

func GetPersonality(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	personality, err := model.GetPersonalityByID(id, currentUserID(c))
	if err != nil {
		respDomainError(c, err)
		return
	}
	common.RespSuccess(c, personality)
}

func CreatePersonality(c *gin.Context) {
	lang := currentLang(c)

	var payload personalityPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := validate.Struct(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid personality parameters", err)
		return
	}

	personality := &model.Personality{
		UserID:       currentUserID(c),
		Name:         payload.Name,
		Description:  payload.Description,
		SystemPrompt: payload.SystemPrompt,
	}
	if err := personality.Insert(); err != nil {
		common.RespError(c, http.StatusInternalServerError, i18n.Translate(cserrors.ErrInternalServer, lang), err)
		return
	}
	common.RespSuccess(c, personality)
}

func UpdatePersonality(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var payload personalityUpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	personality, err := model.GetPersonalityByID(id, currentUserID(c))
	if err != nil {
		respDomainError(c, err)
		return
	}
	if payload.Name != nil {
		personality.Name = *payload.Name
	}
	if payload.Description != nil {
		personality.Description = *payload.Description
	}
	if payload.SystemPrompt != nil {
		personality.SystemPrompt = *payload.SystemPrompt
	}
	if err := personality.Update(); err != nil {
		respDomainError(c, err)
		return
	}
	common.RespSuccess(c, personality)
}

func DeletePersonality(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	personality, err := model.GetPersonalityByID(id, currentUserID(c))
	if err != nil {
		respDomainError(c, err)
		return
	}
	if err := personality.Delete(); err != nil {
		respDomainError(c, err)
		return
	}
	common.RespSuccessStr(c, "")
}
