// file: internals/features/ai/model/prompt_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	PromptCategoryGeneral  = "GENERAL"
	PromptCategoryAnalisis = "ANALISIS"
	PromptCategoryLaporan  = "LAPORAN"
)

// Placeholder yang diganti saat chat.
const (
	PlaceholderContext     = "{context}"
	PlaceholderUserMessage = "{userMessage}"
)

type PromptModel struct {
	PromptID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:prompt_id" json:"prompt_id"`
	PromptName        string     `gorm:"type:varchar(120);not null;column:prompt_name" json:"prompt_name"`
	PromptCategory    string     `gorm:"type:varchar(20);not null;default:'GENERAL';index;column:prompt_category" json:"prompt_category"`
	PromptTemplate    string     `gorm:"type:text;not null;column:prompt_template" json:"prompt_template"`
	PromptProvider    string     `gorm:"type:varchar(20);not null;column:prompt_provider" json:"prompt_provider"`
	PromptModel       string     `gorm:"type:varchar(120);not null;column:prompt_model" json:"prompt_model"`
	PromptAPIKeyID    *uuid.UUID `gorm:"type:uuid;column:prompt_api_key_id" json:"prompt_api_key_id,omitempty"`
	PromptTemperature *float32   `gorm:"column:prompt_temperature" json:"prompt_temperature,omitempty"`
	PromptMaxTokens   *int       `gorm:"column:prompt_max_tokens" json:"prompt_max_tokens,omitempty"`
	PromptIsActive    bool       `gorm:"not null;default:true;index;column:prompt_is_active" json:"prompt_is_active"`
	PromptCreatedAt   time.Time  `gorm:"type:timestamptz;not null;autoCreateTime;column:prompt_created_at" json:"prompt_created_at"`
	PromptUpdatedAt   time.Time  `gorm:"type:timestamptz;not null;autoUpdateTime;column:prompt_updated_at" json:"prompt_updated_at"`
}

func (PromptModel) TableName() string { return "ai_prompts" }

// Fill mengganti {context} dan {userMessage} di template.
func (p PromptModel) Fill(contextJSON, userMessage string) string {
	return strings.NewReplacer(
		PlaceholderContext, contextJSON,
		PlaceholderUserMessage, userMessage,
	).Replace(p.PromptTemplate)
}
