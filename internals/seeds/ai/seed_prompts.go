package ai

import (
	"log"
	"strings"

	"tjsl_backend/internals/features/ai/model"

	"gorm.io/gorm"
)

type PromptSeed struct {
	Name        string   `yaml:"name"`
	Category    string   `yaml:"category"`
	Provider    string   `yaml:"provider"`
	Model       string   `yaml:"model"`
	Template    string   `yaml:"template"`
	Temperature *float32 `yaml:"temperature"`
	MaxTokens   *int     `yaml:"max_tokens"`
}

// SeedPrompts: API key tidak ikut di-seed, admin menambahkannya lewat /api/a/ai/api-keys.
func SeedPrompts(db *gorm.DB, inputs []PromptSeed) {
	for _, data := range inputs {
		providerName := strings.ToUpper(strings.TrimSpace(data.Provider))
		if !model.IsValidProvider(providerName) {
			log.Printf("❌ Prompt '%s': provider %q tidak dikenal, dilewati.", data.Name, data.Provider)
			continue
		}
		category := strings.ToUpper(strings.TrimSpace(data.Category))
		if category == "" {
			category = model.PromptCategoryGeneral
		}

		var n int64
		if err := db.Model(&model.PromptModel{}).Where("prompt_name = ?", data.Name).Count(&n).Error; err != nil {
			log.Printf("❌ Gagal cek prompt '%s': %v", data.Name, err)
			continue
		}
		if n > 0 {
			log.Printf("ℹ️ Prompt '%s' sudah ada, dilewati.", data.Name)
			continue
		}

		p := model.PromptModel{
			PromptName:        strings.TrimSpace(data.Name),
			PromptCategory:    category,
			PromptTemplate:    strings.TrimSpace(data.Template),
			PromptProvider:    providerName,
			PromptModel:       strings.TrimSpace(data.Model),
			PromptTemperature: data.Temperature,
			PromptMaxTokens:   data.MaxTokens,
			PromptIsActive:    true,
		}
		if err := db.Create(&p).Error; err != nil {
			log.Printf("❌ Gagal insert prompt '%s': %v", data.Name, err)
		} else {
			log.Printf("✅ Berhasil insert prompt '%s' (%s/%s)", p.PromptName, p.PromptProvider, p.PromptModel)
		}
	}
}
