package middlewares

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"tjsl_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware global (urutan penting: recover paling luar).
func SetupMiddlewares(app *fiber.App, logOut io.Writer) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware(logOut))
	app.Use(GlobalRateLimiter())
}
