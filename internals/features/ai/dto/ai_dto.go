// file: internals/features/ai/dto/ai_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tjsl_backend/internals/features/ai/model"
	"tjsl_backend/internals/features/ai/provider"
)

/* ===================== CHAT ===================== */

type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required,max=8000"`
}

type ChatRequest struct {
	Messages []ChatMessage `json:"messages" validate:"required,min=1,max=50,dive"`
}

func (r *ChatRequest) Normalize() {
	for i := range r.Messages {
		r.Messages[i].Role = strings.ToLower(strings.TrimSpace(r.Messages[i].Role))
		r.Messages[i].Content = strings.TrimSpace(r.Messages[i].Content)
	}
}

// LastIsUser: pesan terakhir harus dari user (itu yang dijawab).
func (r ChatRequest) LastIsUser() bool {
	return len(r.Messages) > 0 && r.Messages[len(r.Messages)-1].Role == provider.RoleUser
}

func (r ChatRequest) ToProviderMessages() []provider.Message {
	out := make([]provider.Message, 0, len(r.Messages))
	for _, m := range r.Messages {
		out = append(out, provider.Message{Role: m.Role, Content: m.Content})
	}
	return out
}

/* ===================== API KEY ===================== */

type CreateAPIKeyRequest struct {
	APIKeyName     string `json:"api_key_name" validate:"required,min=2,max=120"`
	APIKeyProvider string `json:"api_key_provider" validate:"required,oneof=OPENAI ANTHROPIC GEMINI"`
	APIKey         string `json:"api_key" validate:"required,min=8,max=512"`
}

func (r *CreateAPIKeyRequest) Normalize() {
	r.APIKeyName = strings.TrimSpace(r.APIKeyName)
	r.APIKeyProvider = strings.ToUpper(strings.TrimSpace(r.APIKeyProvider))
	r.APIKey = strings.TrimSpace(r.APIKey)
}

// PatchAPIKeyRequest: APIKey diisi = rotasi kunci.
type PatchAPIKeyRequest struct {
	APIKeyName     *string `json:"api_key_name" validate:"omitempty,min=2,max=120"`
	APIKeyIsActive *bool   `json:"api_key_is_active"`
	APIKey         *string `json:"api_key" validate:"omitempty,min=8,max=512"`
}

func (r *PatchAPIKeyRequest) Normalize() {
	if r.APIKeyName != nil {
		v := strings.TrimSpace(*r.APIKeyName)
		r.APIKeyName = &v
	}
	if r.APIKey != nil {
		v := strings.TrimSpace(*r.APIKey)
		r.APIKey = &v
	}
}

/* ===================== PROMPT ===================== */

type CreatePromptRequest struct {
	PromptName        string   `json:"prompt_name" validate:"required,min=2,max=120"`
	PromptCategory    string   `json:"prompt_category" validate:"omitempty,oneof=GENERAL ANALISIS LAPORAN"`
	PromptTemplate    string   `json:"prompt_template" validate:"required,max=20000"`
	PromptProvider    string   `json:"prompt_provider" validate:"required,oneof=OPENAI ANTHROPIC GEMINI"`
	PromptModel       string   `json:"prompt_model" validate:"required,max=120"`
	PromptAPIKeyID    *string  `json:"prompt_api_key_id" validate:"omitempty,uuid"`
	PromptTemperature *float32 `json:"prompt_temperature" validate:"omitempty,gte=0,lte=2"`
	PromptMaxTokens   *int     `json:"prompt_max_tokens" validate:"omitempty,gte=1,lte=32000"`
	PromptIsActive    *bool    `json:"prompt_is_active"`
}

func (r *CreatePromptRequest) Normalize() {
	r.PromptName = strings.TrimSpace(r.PromptName)
	r.PromptCategory = strings.ToUpper(strings.TrimSpace(r.PromptCategory))
	if r.PromptCategory == "" {
		r.PromptCategory = model.PromptCategoryGeneral
	}
	r.PromptTemplate = strings.TrimSpace(r.PromptTemplate)
	r.PromptProvider = strings.ToUpper(strings.TrimSpace(r.PromptProvider))
	r.PromptModel = strings.TrimSpace(r.PromptModel)
	if r.PromptAPIKeyID != nil {
		v := strings.TrimSpace(*r.PromptAPIKeyID)
		if v == "" {
			r.PromptAPIKeyID = nil
		} else {
			r.PromptAPIKeyID = &v
		}
	}
}

func (r CreatePromptRequest) ToModel() model.PromptModel {
	m := model.PromptModel{
		PromptName:        r.PromptName,
		PromptCategory:    r.PromptCategory,
		PromptTemplate:    r.PromptTemplate,
		PromptProvider:    r.PromptProvider,
		PromptModel:       r.PromptModel,
		PromptTemperature: r.PromptTemperature,
		PromptMaxTokens:   r.PromptMaxTokens,
		PromptIsActive:    true,
	}
	if r.PromptIsActive != nil {
		m.PromptIsActive = *r.PromptIsActive
	}
	if r.PromptAPIKeyID != nil {
		id := uuid.MustParse(*r.PromptAPIKeyID)
		m.PromptAPIKeyID = &id
	}
	return m
}

// PatchPromptRequest: ClearAPIKey=true melepas ikatan api key (kembali ke key aktif terbaru).
type PatchPromptRequest struct {
	PromptName        *string  `json:"prompt_name" validate:"omitempty,min=2,max=120"`
	PromptCategory    *string  `json:"prompt_category" validate:"omitempty,oneof=GENERAL ANALISIS LAPORAN"`
	PromptTemplate    *string  `json:"prompt_template" validate:"omitempty,min=1,max=20000"`
	PromptProvider    *string  `json:"prompt_provider" validate:"omitempty,oneof=OPENAI ANTHROPIC GEMINI"`
	PromptModel       *string  `json:"prompt_model" validate:"omitempty,min=1,max=120"`
	PromptAPIKeyID    *string  `json:"prompt_api_key_id" validate:"omitempty,uuid"`
	ClearAPIKey       bool     `json:"clear_api_key"`
	PromptTemperature *float32 `json:"prompt_temperature" validate:"omitempty,gte=0,lte=2"`
	PromptMaxTokens   *int     `json:"prompt_max_tokens" validate:"omitempty,gte=1,lte=32000"`
	PromptIsActive    *bool    `json:"prompt_is_active"`
}

func (r *PatchPromptRequest) Normalize() {
	trim := func(p **string, upper bool) {
		if *p == nil {
			return
		}
		v := strings.TrimSpace(**p)
		if upper {
			v = strings.ToUpper(v)
		}
		*p = &v
	}
	trim(&r.PromptName, false)
	trim(&r.PromptCategory, true)
	trim(&r.PromptTemplate, false)
	trim(&r.PromptProvider, true)
	trim(&r.PromptModel, false)
	trim(&r.PromptAPIKeyID, false)
}

// Updates: kolom yang diubah. Kosong → tidak ada perubahan.
func (r PatchPromptRequest) Updates() map[string]any {
	u := map[string]any{}
	if r.PromptName != nil {
		u["prompt_name"] = *r.PromptName
	}
	if r.PromptCategory != nil {
		u["prompt_category"] = *r.PromptCategory
	}
	if r.PromptTemplate != nil {
		u["prompt_template"] = *r.PromptTemplate
	}
	if r.PromptProvider != nil {
		u["prompt_provider"] = *r.PromptProvider
	}
	if r.PromptModel != nil {
		u["prompt_model"] = *r.PromptModel
	}
	switch {
	case r.ClearAPIKey:
		u["prompt_api_key_id"] = nil
	case r.PromptAPIKeyID != nil:
		u["prompt_api_key_id"] = uuid.MustParse(*r.PromptAPIKeyID)
	}
	if r.PromptTemperature != nil {
		u["prompt_temperature"] = *r.PromptTemperature
	}
	if r.PromptMaxTokens != nil {
		u["prompt_max_tokens"] = *r.PromptMaxTokens
	}
	if r.PromptIsActive != nil {
		u["prompt_is_active"] = *r.PromptIsActive
	}
	return u
}

/* ===================== USAGE ===================== */

type UsageLogFilter struct {
	Status   string
	Provider string
	UserID   *uuid.UUID
	From     *time.Time
	To       *time.Time
}

// UsageLogFilterFromQuery: ?status=&provider=&user_id=&from=YYYY-MM-DD&to=YYYY-MM-DD (to inklusif).
func UsageLogFilterFromQuery(c *fiber.Ctx) (UsageLogFilter, error) {
	f := UsageLogFilter{
		Status:   strings.ToUpper(strings.TrimSpace(c.Query("status"))),
		Provider: strings.ToUpper(strings.TrimSpace(c.Query("provider"))),
	}
	if f.Status != "" && f.Status != model.UsageStatusSuccess && f.Status != model.UsageStatusError {
		return f, fiber.NewError(fiber.StatusBadRequest, "status harus SUCCESS atau ERROR")
	}
	if f.Provider != "" && !model.IsValidProvider(f.Provider) {
		return f, fiber.NewError(fiber.StatusBadRequest, "provider tidak dikenal")
	}
	if s := strings.TrimSpace(c.Query("user_id")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, "user_id tidak valid")
		}
		f.UserID = &id
	}
	if s := strings.TrimSpace(c.Query("from")); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, "from harus YYYY-MM-DD")
		}
		f.From = &t
	}
	if s := strings.TrimSpace(c.Query("to")); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, "to harus YYYY-MM-DD")
		}
		t = t.AddDate(0, 0, 1)
		f.To = &t
	}
	if f.From != nil && f.To != nil && !f.To.After(*f.From) {
		return f, fiber.NewError(fiber.StatusBadRequest, "rentang tanggal tidak valid")
	}
	return f, nil
}
