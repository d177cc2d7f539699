// file: internals/features/ai/controller/controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"tjsl_backend/internals/features/ai/provider"
	"tjsl_backend/internals/features/ai/repository"
	"tjsl_backend/internals/features/ai/service"
	"tjsl_backend/internals/helpers/secret"
)

type AIController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	// Cipher nil = AI_ENCRYPTION_KEY belum diset; simpan & dekripsi API key ditolak.
	Cipher *secret.Cipher
	Chat   *service.ChatService
}

func NewAIController(db *gorm.DB, cipher *secret.Cipher, providers provider.Config) *AIController {
	return &AIController{
		DB:        db,
		Validator: validator.New(),
		Cipher:    cipher,
		Chat:      service.NewChatService(repository.NewGormStore(db), cipher, providers.For),
	}
}
