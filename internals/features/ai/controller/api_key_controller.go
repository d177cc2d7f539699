// file: internals/features/ai/controller/api_key_controller.go
package controller

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tjsl_backend/internals/features/ai/dto"
	"tjsl_backend/internals/features/ai/model"
	helper "tjsl_backend/internals/helpers"
	"tjsl_backend/internals/helpers/secret"
)

func (ctl *AIController) encrypt(plain string) (string, error) {
	ct, err := ctl.Cipher.Encrypt(plain)
	if err != nil {
		log.Printf("[ERROR] enkripsi api key: %v", err)
		return "", fiber.NewError(fiber.StatusServiceUnavailable, "Enkripsi API key belum dikonfigurasi (AI_ENCRYPTION_KEY)")
	}
	return ct, nil
}

// GET /api/a/ai/api-keys?provider=
func (ctl *AIController) ListAPIKeys(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.UserContext()).Model(&model.APIKeyModel{})
	if p := strings.ToUpper(strings.TrimSpace(c.Query("provider"))); p != "" {
		q = q.Where("api_key_provider = ?", p)
	}
	var rows []model.APIKeyModel
	if err := q.Order("api_key_created_at DESC").Find(&rows).Error; err != nil {
		log.Printf("[ERROR] list api key: %v", err)
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", rows)
}

// POST /api/a/ai/api-keys
func (ctl *AIController) CreateAPIKey(c *fiber.Ctx) error {
	var req dto.CreateAPIKeyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	enc, err := ctl.encrypt(req.APIKey)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	row := model.APIKeyModel{
		APIKeyName:         req.APIKeyName,
		APIKeyProvider:     req.APIKeyProvider,
		APIKeyEncryptedKey: enc,
		APIKeyHint:         secret.KeyHint(req.APIKey),
		APIKeyIsActive:     true,
	}
	if me, err := helper.GetUserIDFromToken(c); err == nil {
		row.APIKeyCreatedBy = &me
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		log.Printf("[ERROR] simpan api key: %v", err)
		return helper.FromFiberError(c, err)
	}
	log.Printf("[INFO] api key dibuat id=%s provider=%s", row.APIKeyID, row.APIKeyProvider)
	return helper.JsonCreated(c, "API key berhasil disimpan", row)
}

// PATCH /api/a/ai/api-keys/:id
func (ctl *AIController) PatchAPIKey(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.PatchAPIKeyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	updates := map[string]any{}
	if req.APIKeyName != nil {
		updates["api_key_name"] = *req.APIKeyName
	}
	if req.APIKeyIsActive != nil {
		updates["api_key_is_active"] = *req.APIKeyIsActive
	}
	if req.APIKey != nil {
		enc, err := ctl.encrypt(*req.APIKey)
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		updates["api_key_encrypted_key"] = enc
		updates["api_key_hint"] = secret.KeyHint(*req.APIKey)
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada field yang diubah")
	}

	var row model.APIKeyModel
	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.APIKeyModel{}).Where("api_key_id = ?", id).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "API key tidak ditemukan")
		}
		return tx.Where("api_key_id = ?", id).Take(&row).Error
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "API key berhasil diperbarui", row)
}

// DELETE /api/a/ai/api-keys/:id
// Prompt yang terikat ke key ini dilepas (kembali memakai key aktif terbaru).
func (ctl *AIController) DeleteAPIKey(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.PromptModel{}).
			Where("prompt_api_key_id = ?", id).
			Update("prompt_api_key_id", nil).Error; err != nil {
			return err
		}
		res := tx.Where("api_key_id = ?", id).Delete(&model.APIKeyModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "API key tidak ditemukan")
		}
		return nil
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "API key berhasil dihapus", fiber.Map{"api_key_id": id})
}
