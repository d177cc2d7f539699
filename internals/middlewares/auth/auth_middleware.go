// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"tjsl_backend/internals/configs"
	helper "tjsl_backend/internals/helpers"
)

// ActiveChecker mengembalikan role user saat ini dari DB; gorm.ErrRecordNotFound
// kalau user tidak ada, errInactiveUser kalau dinonaktifkan.
type ActiveChecker func(ctx context.Context, userID uuid.UUID) (string, error)

func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return AuthMiddlewareWith(func() string { return configs.JWTSecret }, dbActiveChecker(db))
}

// AuthMiddlewareWith: secret dibaca per request supaya LoadEnv tidak perlu jalan duluan saat route dipasang.
func AuthMiddlewareWith(secret func() string, checkActive ActiveChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1) Ambil Authorization (atau cookie)
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}

		// 2) Parse & verifikasi JWT
		secretKey := secret()
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET kosong")
			return helper.JsonError(c, fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true, ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		}); err != nil {
			log.Println("[WARN] Gagal parse token:", err)
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		// 3) Validasi exp
		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		// 4) Ambil user_id, validasi user aktif & role terkini
		userID, err := extractUserID(claims)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}

		role, err := checkActive(c.UserContext(), userID)
		if err != nil {
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - User not found")
			case errors.Is(err, errInactiveUser):
				return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
			default:
				log.Println("[ERROR] ensureUserActive:", err)
				return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
			}
		}

		// 5) Simpan info klaim ke context
		// Role diambil dari DB, bukan dari klaim token.
		c.Locals("user_id", userID.String())
		c.Locals("userRole", strings.ToUpper(strings.TrimSpace(role)))
		storeBasicClaimsToLocals(c, claims)
		return c.Next()
	}
}
