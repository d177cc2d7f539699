package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userRoute "tjsl_backend/internals/features/users/user/route"
)

// UserRoutes: manajemen user, hanya di group admin (/api/a/users).
func UserRoutes(admin fiber.Router, db *gorm.DB) {
	userRoute.UserAdminRoutes(admin, db)
}
