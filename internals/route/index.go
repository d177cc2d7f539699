// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tjsl_backend/internals/configs"
	"tjsl_backend/internals/constants"
	"tjsl_backend/internals/features/ai/provider"
	helperOSS "tjsl_backend/internals/helpers/oss"
	"tjsl_backend/internals/helpers/secret"
	authMiddleware "tjsl_backend/internals/middlewares/auth"
	routeDetails "tjsl_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== AUTH =====================
	// harus terpasang sebelum group /api/a: middleware group dicocokkan per prefix
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	// ===================== DEPENDENCIES =====================
	blob := newBlobService()
	cipher := newCipher()
	providers := provider.ConfigFromEnv()

	// ===================== GROUPS =====================
	log.Println("[INFO] Setting up PRIVATE (user) group...")
	private := app.Group("/api/u", authMiddleware.AuthMiddleware(db))

	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("ini"), constants.RoleAdmin),
	)

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting User routes...")
	routeDetails.UserRoutes(admin, db)

	log.Println("[INFO] Mounting TJSL routes...")
	routeDetails.TJSLUserRoutes(private, db, blob)
	routeDetails.TJSLAdminRoutes(admin, db, blob)

	log.Println("[INFO] Mounting AI routes...")
	routeDetails.AIUserRoutes(private, db, cipher, providers)
	routeDetails.AIAdminRoutes(admin, db, cipher, providers)
}

// newBlobService: OSS opsional. Tanpa konfigurasi, upload dokumen menjawab 503.
func newBlobService() helperOSS.BlobService {
	svc, err := helperOSS.NewOSSBlobServiceFromEnv("tjsl/")
	if err != nil {
		log.Printf("[WARN] OSS tidak aktif, upload dokumen dimatikan: %v", err)
		return nil
	}
	return svc
}

// newCipher: nil bila AI_ENCRYPTION_KEY kosong/invalid; simpan & pakai API key akan ditolak.
func newCipher() *secret.Cipher {
	c, err := secret.NewCipher(configs.AIEncryptionKey)
	if err != nil {
		log.Printf("[WARN] AI_ENCRYPTION_KEY: %v", err)
		return nil
	}
	return c
}
