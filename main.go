package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"

	"tjsl_backend/internals/configs"
	database "tjsl_backend/internals/databases"
	aiModel "tjsl_backend/internals/features/ai/model"
	tjslModel "tjsl_backend/internals/features/tjsl/model"
	userModel "tjsl_backend/internals/features/users/user/model"
	middlewares "tjsl_backend/internals/middlewares"
	routes "tjsl_backend/internals/route"
	"tjsl_backend/internals/seeds"
)

// isStream: respons chat AI di-stream, jangan di-buffer oleh compress / etag.
func isStream(c *fiber.Ctx) bool {
	return strings.HasSuffix(c.Path(), "/ai/chat")
}

func main() {
	configs.LoadEnv()
	logOut := configs.SetupLogOutput()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		BodyLimit:               configs.GetInt("BODY_LIMIT_MB", 20) * 1024 * 1024,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"}, // sesuaikan dengan CIDR proxy jika perlu
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Next: isStream, Level: compress.LevelDefault})) // gzip
	app.Use(etag.New(etag.Config{Next: isStream}))                                       // 304 caching

	// 🔎 Request-ID + timeout guard
	requestTimeout := configs.GetDuration("REQUEST_TIMEOUT", 15*time.Second)
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	})

	middlewares.SetupMiddlewares(app, logOut)

	// 🔌 DB connect + pool + migrate + warm-up
	database.ConnectDB()
	database.TunePool()
	database.AutoMigrate(
		&userModel.UserModel{},
		&tjslModel.ProposalModel{},
		&tjslModel.ProgramModel{},
		&tjslModel.ReportModel{},
		&tjslModel.DocumentModel{},
		&aiModel.APIKeyModel{},
		&aiModel.PromptModel{},
		&aiModel.UsageLogModel{},
	)
	database.WarmUpQueries()

	if configs.GetEnv("RUN_SEEDS", "false") == "true" {
		seeds.RunAllSeeds(database.DB, configs.GetEnv("SEED_FILE", "internals/seeds/seed.example.yaml"))
	}

	// ✅ Routes
	routes.SetupRoutes(app, database.DB)

	// 🔒 Keep-Alive & timeout koneksi server. WriteTimeout di atas AI_STREAM_TIMEOUT supaya stream tidak terpotong.
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = configs.AIStreamTimeout + 10*time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[INFO] shutdown...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
