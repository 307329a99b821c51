package handler

import (
	"encoding/json"
	"net/http"

	"chatspace/backend/common"
	"chatspace/backend/model"
	"chatspace/backend/service"

	"github.com/gin-gonic/gin"
)

func GetOptions(c *gin.Context) {
	options, err := model.AllOptions()
	if err != nil {
		common.RespErrorStr(c, http.StatusInternalServerError, err.Error())
		return
	}
	common.RespSuccess(c, options)
}

func UpdateOption(c *gin.Context) {
	var option model.Option
	err := json.NewDecoder(c.Request.Body).Decode(&option)
	if err != nil {
		common.RespErrorStr(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if option.Key == "" {
		common.RespErrorStr(c, http.StatusBadRequest, "option key is required")
		return
	}

	err = service.UpdateOption(option.Key, option.Value)
	if err != nil {
		common.RespErrorStr(c, http.StatusBadRequest, err.Error())
		return
	}
	common.RespSuccessStr(c, "")
}
