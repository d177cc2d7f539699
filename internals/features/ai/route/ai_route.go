// file: internals/features/ai/route/ai_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tjsl_backend/internals/features/ai/controller"
	"tjsl_backend/internals/features/ai/provider"
	"tjsl_backend/internals/helpers/secret"
	"tjsl_backend/internals/middlewares"
)

// Base: /api/u
func AIUserRoutes(r fiber.Router, db *gorm.DB, cipher *secret.Cipher, providers provider.Config) {
	ctl := controller.NewAIController(db, cipher, providers)

	ai := r.Group("/ai")
	ai.Post("/chat", middlewares.AIChatRateLimiter(), ctl.ChatStream)
}

// Base: /api/a
func AIAdminRoutes(r fiber.Router, db *gorm.DB, cipher *secret.Cipher, providers provider.Config) {
	ctl := controller.NewAIController(db, cipher, providers)

	ai := r.Group("/ai")

	keys := ai.Group("/api-keys")
	keys.Get("/", ctl.ListAPIKeys)
	keys.Post("/", ctl.CreateAPIKey)
	keys.Patch("/:id", ctl.PatchAPIKey)
	keys.Delete("/:id", ctl.DeleteAPIKey)

	prompts := ai.Group("/prompts")
	prompts.Get("/", ctl.ListPrompts)
	prompts.Get("/:id", ctl.GetPrompt)
	prompts.Post("/", ctl.CreatePrompt)
	prompts.Patch("/:id", ctl.PatchPrompt)
	prompts.Delete("/:id", ctl.DeletePrompt)

	ai.Get("/usage-logs", ctl.ListUsageLogs)
	ai.Get("/usage-stats", ctl.UsageStats)
}
