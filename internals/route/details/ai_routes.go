package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	aiRoute "tjsl_backend/internals/features/ai/route"
	"tjsl_backend/internals/features/ai/provider"
	"tjsl_backend/internals/helpers/secret"
)

func AIUserRoutes(private fiber.Router, db *gorm.DB, cipher *secret.Cipher, providers provider.Config) {
	aiRoute.AIUserRoutes(private, db, cipher, providers)
}

func AIAdminRoutes(admin fiber.Router, db *gorm.DB, cipher *secret.Cipher, providers provider.Config) {
	aiRoute.AIAdminRoutes(admin, db, cipher, providers)
}
