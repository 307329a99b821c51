package handler

import (
	"context"
	"net/http"
	"time"

	"chatspace/backend/common"
	cserrors "chatspace/backend/common/errors"
	"chatspace/backend/common/i18n"
	"chatspace/backend/model"

	"github.com/gin-gonic/gin"
)

type providerPayload struct {
	Name         string `json:"name" validate:"required,max=100"`
	ProviderType string `json:"provider_type" validate:"required,oneof=openai anthropic custom"`
	BaseURL      string `json:"base_url" validate:"omitempty,url"`
	APIKey       string `json:"api_key"`
	Model        string `json:"model"`
	Enabled      *bool  `json:"enabled"`
}

type providerUpdatePayload struct {
	Name    *string `json:"name"`
	BaseURL *string `json:"base_url" validate:"omitempty,url"`
	APIKey  *string `json:"api_key"`
	Model   *string `json:"model"`
	Enabled *bool   `json:"enabled"`
}

func GetAIProviders(c *gin.Context) {
	providers, err := model.GetAIProvidersByUserID(currentUserID(c))
	if err != nil {
		respDomainError(c, err)
		return
	}
	common.RespSuccess(c, providers)
}

func GetAIProvider(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	provider, err := model.GetAIProviderByID(id, currentUserID(c))
	if err != nil {
		respDomainError(c, err)
		return
	}
	common.RespSuccess(c, provider)
}

func CreateAIProvider(c *gin.Context) {
	lang := currentLang(c)

	var payload providerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := validate.Struct(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid provider parameters", err)
		return
	}

	enabled := true
	if payload.Enabled != nil {
		enabled = *payload.Enabled
	}
	provider := &model.AIProvider{
		UserID:       currentUserID(c),
		Name:         payload.Name,
		ProviderType: model.ProviderType(payload.ProviderType),
		BaseURL:      payload.BaseURL,
		APIKey:       payload.APIKey,
		Model:        payload.Model,
		Enabled:      enabled,
	}
	if err := provider.Insert(); err != nil {
		common.RespError(c, http.StatusInternalServerError, i18n.Translate(cserrors.ErrInternalServer, lang), err)
		return
	}
	common.RespSuccess(c, provider)
}

func UpdateAIProvider(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var payload providerUpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := validate.Struct(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid provider parameters", err)
		return
	}

	provider, err := model.GetAIProviderByID(id, currentUserID(c))
	if err != nil {
		respDomainError(c, err)
		return
	}
	if payload.Name != nil {
		provider.Name = *payload.Name
	}
	if payload.BaseURL != nil {
		provider.BaseURL = *payload.BaseURL
	}
	if payload.APIKey != nil && *payload.APIKey != "" {
		provider.APIKey = *payload.APIKey
	}
	if payload.Model != nil {
		provider.Model = *payload.Model
	}
	if payload.Enabled != nil {
		provider.Enabled = *payload.Enabled
	}
	if err := provider.Update(); err != nil {
		respDomainError(c, err)
		return
	}
	common.RespSuccess(c, provider)
}

// ToggleAIProvider flips the enabled flag.
func ToggleAIProvider(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	provider, err := model.GetAIProviderByID(id, currentUserID(c))
	if err != nil {
		respDomainError(c, err)
		return
	}
	provider.Enabled = !provider.Enabled
	if err := provider.Update(); err != nil {
		respDomainError(c, err)
		return
	}
	common.RespSuccess(c, provider)
}

// VerifyAIProvider probes the provider's base URL so users can tell a typo
// from a dead endpoint. It checks reachability only, not credentials.
func VerifyAIProvider(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	provider, err := model.GetAIProviderByID(id, currentUserID(c))
	if err != nil {
		respDomainError(c, err)
		return
	}
	if provider.BaseURL == "" {
		common.RespErrorStr(c, http.StatusBadRequest, "provider has no base URL configured")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, provider.BaseURL, nil)
	if err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid base URL", err)
		return
	}
	start := time.Now()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		common.RespErrorWithData(c, http.StatusBadGateway, "provider endpoint unreachable", gin.H{
			"reachable": false,
		})
		return
	}
	resp.Body.Close()

	common.RespSuccess(c, gin.H{
		"reachable":   true,
		"status_code": resp.StatusCode,
		"latency_ms":  time.Since(start).Milliseconds(),
	})
}

func DeleteAIProvider(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	provider, err := model.GetAIProviderByID(id, currentUserID(c))
	if err != nil {
		respDomainError(c, err)
		return
	}
	if err := provider.Delete(); err != nil {
		respDomainError(c, err)
		return
	}
	common.RespSuccessStr(c, "")
}
