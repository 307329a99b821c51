package model

import (
	"chatspace/backend/common/errors"

	"github.com/burugo/thing"
)

// ProviderType identifies the wire dialect an AI provider speaks.
type ProviderType string

const (
	ProviderTypeOpenAI    ProviderType = "openai"
	ProviderTypeAnthropic ProviderType = "anthropic"
	ProviderTypeCustom    ProviderType = "custom"
)

// AIProvider is a user-configured model endpoint. The API key never leaves
// the server.
type AIProvider struct {
	thing.BaseModel
	UserID       int64        `db:"user_id,index:idx_provider_owner" json:"user_id"`
	Name         string       `db:"name" json:"name"`
	ProviderType ProviderType `db:"provider_type" json:"provider_type"`
	BaseURL      string       `db:"base_url" json:"base_url"`
	APIKey       string       `db:"api_key" json:"-"`
	Model        string       `db:"model" json:"model"`
	Enabled      bool         `db:"enabled" json:"enabled"`
}

func (p *AIProvider) TableName() string {
	return "ai_providers"
}

var AIProviderDB *thing.Thing[*AIProvider]

func AIProviderInit() error {
	var err error
	AIProviderDB, err = thing.Use[*AIProvider]()
	return err
}

func GetAIProvidersByUserID(userID int64) ([]*AIProvider, error) {
	return AIProviderDB.Where("user_id = ?", userID).Order("id ASC").Fetch(0, 1000)
}

func GetAIProviderByID(id int64, userID int64) (*AIProvider, error) {
	provider, err := AIProviderDB.ByID(id)
	if err != nil {
		return nil, errNew(errors.ErrProviderNotFound)
	}
	if provider.UserID != userID {
		return nil, errNew(errors.ErrProviderNotFound)
	}
	return provider, nil
}

func (p *AIProvider) Insert() error {
	if p.UserID == 0 || p.Name == "" {
		return errNew(errors.ErrInvalidParam)
	}
	switch p.ProviderType {
	case ProviderTypeOpenAI, ProviderTypeAnthropic, ProviderTypeCustom:
	default:
		return errNew(errors.ErrInvalidParam)
	}
	return AIProviderDB.Save(p)
}

func (p *AIProvider) Update() error {
	if p.ID == 0 {
		return errNew(errors.ErrEmptyID)
	}
	return AIProviderDB.Save(p)
}

func (p *AIProvider) Delete() error {
	if p.ID == 0 {
		return errNew(errors.ErrEmptyID)
	}
	return AIProviderDB.Delete(p)
}
