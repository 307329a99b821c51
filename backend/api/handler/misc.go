package handler

import (
	"chatspace/backend/common"
	"chatspace/backend/model"

	"github.com/gin-gonic/gin"
)

func GetHealth(c *gin.Context) {
	common.RespSuccessStr(c, "ok")
}

func GetStatus(c *gin.Context) {
	common.RespSuccess(c, gin.H{
		"system_name":     common.SystemName,
		"version":         common.Version,
		"start_time":      common.StartTime,
		"setup_completed": model.GetOptionBool(model.OptionSetupCompleted),
	})
}
