// file: internals/features/ai/controller/prompt_controller.go
package controller

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"tjsl_backend/internals/features/ai/dto"
	"tjsl_backend/internals/features/ai/model"
	helper "tjsl_backend/internals/helpers"
)

// checkKeyBinding: key yang diikat harus ada dan provider-nya sama dengan prompt.
func checkKeyBinding(ctx context.Context, db *gorm.DB, keyID uuid.UUID, providerName string) error {
	var k model.APIKeyModel
	if err := db.WithContext(ctx).Where("api_key_id = ?", keyID).Take(&k).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusBadRequest, "prompt_api_key_id tidak ditemukan")
		}
		return err
	}
	if k.APIKeyProvider != providerName {
		return fiber.NewError(fiber.StatusBadRequest, "Provider API key ("+k.APIKeyProvider+") tidak sama dengan provider prompt ("+providerName+")")
	}
	return nil
}

// GET /api/a/ai/prompts?category=&is_active=
func (ctl *AIController) ListPrompts(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.UserContext()).Model(&model.PromptModel{})
	if cat := strings.ToUpper(strings.TrimSpace(c.Query("category"))); cat != "" {
		q = q.Where("prompt_category = ?", cat)
	}
	switch strings.ToLower(strings.TrimSpace(c.Query("is_active"))) {
	case "true", "1":
		q = q.Where("prompt_is_active = TRUE")
	case "false", "0":
		q = q.Where("prompt_is_active = FALSE")
	}
	var rows []model.PromptModel
	if err := q.Order("prompt_updated_at DESC").Find(&rows).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", rows)
}

func (ctl *AIController) GetPrompt(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var p model.PromptModel
	if err := ctl.DB.WithContext(c.UserContext()).Where("prompt_id = ?", id).Take(&p).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", p)
}

// POST /api/a/ai/prompts
func (ctl *AIController) CreatePrompt(c *fiber.Ctx) error {
	var req dto.CreatePromptRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	p := req.ToModel()
	if p.PromptAPIKeyID != nil {
		if err := checkKeyBinding(c.UserContext(), ctl.DB, *p.PromptAPIKeyID, p.PromptProvider); err != nil {
			return helper.FromFiberError(c, err)
		}
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&p).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Prompt berhasil dibuat", p)
}

// PATCH /api/a/ai/prompts/:id
func (ctl *AIController) PatchPrompt(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.PatchPromptRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	updates := req.Updates()
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada field yang diubah")
	}

	var p model.PromptModel
	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("prompt_id = ?", id).Take(&p).Error; err != nil {
			return err
		}
		// ikatan key dicek terhadap provider hasil akhir
		providerName := p.PromptProvider
		if req.PromptProvider != nil {
			providerName = *req.PromptProvider
		}
		keyID := p.PromptAPIKeyID
		if req.ClearAPIKey {
			keyID = nil
		} else if req.PromptAPIKeyID != nil {
			v := uuid.MustParse(*req.PromptAPIKeyID)
			keyID = &v
		}
		if keyID != nil {
			if err := checkKeyBinding(c.UserContext(), tx, *keyID, providerName); err != nil {
				return err
			}
		}

		if err := tx.Model(&model.PromptModel{}).Where("prompt_id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Where("prompt_id = ?", id).Take(&p).Error
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Prompt berhasil diperbarui", p)
}

// DELETE /api/a/ai/prompts/:id
func (ctl *AIController) DeletePrompt(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	res := ctl.DB.WithContext(c.UserContext()).Where("prompt_id = ?", id).Delete(&model.PromptModel{})
	if res.Error != nil {
		return helper.FromFiberError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Prompt tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Prompt berhasil dihapus", fiber.Map{"prompt_id": id})
}
