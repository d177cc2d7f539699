// file: internals/features/ai/model/api_key_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProviderOpenAI    = "OPENAI"
	ProviderAnthropic = "ANTHROPIC"
	ProviderGemini    = "GEMINI"
)

var Providers = []string{ProviderOpenAI, ProviderAnthropic, ProviderGemini}

func IsValidProvider(p string) bool {
	for _, v := range Providers {
		if v == p {
			return true
		}
	}
	return false
}

// APIKeyModel: kredensial provider. Plaintext tidak pernah disimpan / dikirim balik;
// hanya ciphertext + hint 4 karakter terakhir.
type APIKeyModel struct {
	APIKeyID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:api_key_id" json:"api_key_id"`
	APIKeyName         string     `gorm:"type:varchar(120);not null;column:api_key_name" json:"api_key_name"`
	APIKeyProvider     string     `gorm:"type:varchar(20);not null;index;column:api_key_provider" json:"api_key_provider"`
	APIKeyEncryptedKey string     `gorm:"type:text;not null;column:api_key_encrypted_key" json:"-"`
	APIKeyHint         string     `gorm:"type:varchar(16);column:api_key_hint" json:"api_key_hint"`
	APIKeyIsActive     bool       `gorm:"not null;default:true;column:api_key_is_active" json:"api_key_is_active"`
	APIKeyCreatedBy    *uuid.UUID `gorm:"type:uuid;column:api_key_created_by" json:"api_key_created_by,omitempty"`
	APIKeyCreatedAt    time.Time  `gorm:"type:timestamptz;not null;autoCreateTime;column:api_key_created_at" json:"api_key_created_at"`
	APIKeyUpdatedAt    time.Time  `gorm:"type:timestamptz;not null;autoUpdateTime;column:api_key_updated_at" json:"api_key_updated_at"`
}

func (APIKeyModel) TableName() string { return "ai_api_keys" }
