package model

import (
	"chatspace/backend/common/errors"

	"github.com/burugo/thing"
)

// Personality is a reusable system-prompt preset applied to chat sessions.
type Personality struct {
	thing.BaseModel
	UserID       int64  `db:"user_id,index:idx_personality_owner" json:"user_id"`
	Name         string `db:"name" json:"name"`
	Description  string `db:"description" json:"description"`
	SystemPrompt string `db:"system_prompt" json:"system_prompt"`
}

func (p *Personality) TableName() string {
	return "personalities"
}

var PersonalityDB *thing.Thing[*Personality]

func PersonalityInit() error {
	var err error
	PersonalityDB, err = thing.Use[*Personality]()
	return err
}

func GetPersonalitiesByUserID(userID int64) ([]*Personality, error) {
	return PersonalityDB.Where("user_id = ?", userID).Order("id DESC").Fetch(0, 1000)
}

func GetPersonalityByID(id int64, userID int64) (*Personality, error) {
	personality, err := PersonalityDB.ByID(id)
	if err != nil {
		return nil, errNew(errors.ErrPersonalityNotFound)
	}
	if personality.UserID != userID {
		return nil, errNew(errors.ErrPersonalityNotFound)
	}
	return personality, nil
}

func (p *Personality) Insert() error {
	if p.UserID == 0 || p.Name == "" {
		return errNew(errors.ErrInvalidParam)
	}
	return PersonalityDB.Save(p)
}

func (p *Personality) Update() error {
	if p.ID == 0 {
		return errNew(errors.ErrEmptyID)
	}
	return PersonalityDB.Save(p)
}

func (p *Personality) Delete() error {
	if p.ID == 0 {
		return errNew(errors.ErrEmptyID)
	}
	return PersonalityDB.Delete(p)
}
