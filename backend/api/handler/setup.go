package handler

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"chatspace/backend/common"
	"chatspace/backend/model"

	"github.com/burugo/thing/drivers/db/sqlite"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
)

var validate = validator.New()

type testConnectionPayload struct {
	Database string `json:"database" validate:"required"`
	Redis    string `json:"redis" validate:"omitempty"`
}

type setupInitPayload struct {
	Username    string `json:"username" validate:"required,min=3,max=30"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email" validate:"omitempty,email"`
}

// setupLocked reports whether first-run setup is over. Any existing account
// counts: the bootstrap root created at first boot must lock the setup
// endpoints just like an explicit init.
func setupLocked() bool {
	return model.GetOptionBool(model.OptionSetupCompleted) || model.HasAnyUser()
}

// GetSetupStatus reports whether first-run setup has been completed.
func GetSetupStatus(c *gin.Context) {
	common.RespSuccess(c, gin.H{
		"initialized": setupLocked(),
		"version":     common.Version,
	})
}

// TestConnection verifies that the submitted storage settings are usable
// before setup commits to them. It only runs while setup is still open, and
// only probes paths inside the configured data directory.
func TestConnection(c *gin.Context) {
	if setupLocked() {
		common.RespErrorStr(c, http.StatusForbidden, "setup has already been completed")
		return
	}

	var payload testConnectionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := validate.Struct(&payload); err != nil {
		common.RespErrorStr(c, http.StatusBadRequest, "database is required")
		return
	}

	probePath, err := confineToDataDir(payload.Database)
	if err != nil {
		common.RespErrorStr(c, http.StatusBadRequest, "database path must stay inside the data directory")
		return
	}
	if err := os.MkdirAll(filepath.Dir(probePath), 0o755); err != nil {
		common.RespError(c, http.StatusBadRequest, "database path is not writable", err)
		return
	}
	adapter, err := sqlite.NewSQLiteAdapter(probePath)
	if err != nil {
		common.RespError(c, http.StatusBadRequest, "failed to open database", err)
		return
	}
	_ = adapter.Close()

	if payload.Redis != "" {
		opt, err := redis.ParseURL(payload.Redis)
		if err != nil {
			common.RespError(c, http.StatusBadRequest, "invalid redis connection string", err)
			return
		}
		client := redis.NewClient(opt)
		defer client.Close()
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			common.RespError(c, http.StatusBadRequest, "failed to connect to redis", err)
			return
		}
	}

	common.RespSuccessStr(c, "connection ok")
}

// confineToDataDir resolves a candidate database path and rejects anything
// outside the directory holding the configured database.
func confineToDataDir(candidate string) (string, error) {
	dataRoot, err := filepath.Abs(filepath.Dir(common.SQLitePath))
	if err != nil {
		return "", err
	}
	probePath := candidate
	if !filepath.IsAbs(probePath) {
		probePath = filepath.Join(dataRoot, probePath)
	}
	probePath = filepath.Clean(probePath)

	rel, err := filepath.Rel(dataRoot, probePath)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", os.ErrPermission
	}
	return probePath, nil
}

// InitSetup creates the first root account. It refuses to run once any
// account exists, including the bootstrap root.
func InitSetup(c *gin.Context) {
	if setupLocked() {
		common.RespErrorStr(c, http.StatusBadRequest, "setup has already been completed")
		return
	}

	var payload setupInitPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := validate.Struct(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid setup parameters", err)
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
		Role:        common.RoleRootUser,
		Status:      common.UserStatusEnabled,
	}
	if err := user.Insert(); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to create root account", err)
		return
	}

	if err := model.UpdateOptionValue(model.OptionSetupCompleted, "true"); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to record setup completion", err)
		return
	}
	common.RespSuccess(c, user)
}
