// file: internals/features/ai/controller/chat_controller.go
package controller

import (
	"bufio"
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"tjsl_backend/internals/configs"
	"tjsl_backend/internals/features/ai/dto"
	helper "tjsl_backend/internals/helpers"
)

// POST /api/u/ai/chat
// Respons berupa text/plain yang di-stream. Setelah request lolos validasi status selalu 200;
// kegagalan provider muncul sebagai kalimat fallback di body.
func (ctl *AIController) ChatStream(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if !req.LastIsUser() {
		return helper.JsonError(c, fiber.StatusBadRequest, "Pesan terakhir harus dari user")
	}
	msgs := req.ToProviderMessages()

	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set("X-Accel-Buffering", "no")
	c.Status(fiber.StatusOK)

	svc := ctl.Chat
	timeout := configs.AIStreamTimeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		// fiber.Ctx sudah tidak valid di sini; pakai context sendiri
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		emit := func(chunk string) error {
			if _, err := w.WriteString(chunk); err != nil {
				return err
			}
			return w.Flush()
		}
		if err := svc.Chat(ctx, userID, msgs, emit); err != nil {
			log.Printf("[WARN] ai chat: klien terputus user=%s: %v", userID, err)
		}
	})
	return nil
}
