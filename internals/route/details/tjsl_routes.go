package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	tjslRoute "tjsl_backend/internals/features/tjsl/route"
	helperOSS "tjsl_backend/internals/helpers/oss"
)

func TJSLUserRoutes(private fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	tjslRoute.TJSLUserRoutes(private, db, blob)
}

func TJSLAdminRoutes(admin fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	tjslRoute.TJSLAdminRoutes(admin, db, blob)
}
