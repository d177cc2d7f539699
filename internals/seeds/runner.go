package seeds

import (
	"log"

	"gorm.io/gorm"

	aiSeed "tjsl_backend/internals/seeds/ai"
	userSeed "tjsl_backend/internals/seeds/users"
)

// RunAllSeeds idempoten: data yang sudah ada (email / nama prompt) dilewati.
func RunAllSeeds(db *gorm.DB, path string) {
	f, err := LoadSeedFile(path)
	if err != nil {
		log.Printf("[WARN] seed dilewati: %v", err)
		return
	}

	//* User
	userSeed.SeedUsers(db, f.Users)

	//* AI
	aiSeed.SeedPrompts(db, f.Prompts)
}
