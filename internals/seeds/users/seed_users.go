package users

import (
	"log"
	"strings"

	"tjsl_backend/internals/constants"
	authHelper "tjsl_backend/internals/features/users/auth/helper"
	"tjsl_backend/internals/features/users/user/model"

	"gorm.io/gorm"
)

type UserSeed struct {
	UserName string `yaml:"user_name"`
	Email    string `yaml:"email"`
	FullName string `yaml:"full_name"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

func SeedUsers(db *gorm.DB, inputs []UserSeed) {
	for _, data := range inputs {
		email := strings.ToLower(strings.TrimSpace(data.Email))

		var existing model.UserModel
		if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
			log.Printf("ℹ️ User dengan email '%s' sudah ada, dilewati.", email)
			continue
		}

		// 🔐 Hash password sebelum disimpan
		hashedPassword, err := authHelper.HashPassword(data.Password)
		if err != nil {
			log.Printf("❌ Gagal hash password untuk '%s': %v", email, err)
			continue
		}

		role := strings.ToUpper(strings.TrimSpace(data.Role))
		if role != constants.RoleAdmin {
			role = constants.RoleUser
		}
		newUser := model.UserModel{
			UserName: strings.TrimSpace(data.UserName),
			Email:    email,
			FullName: strings.TrimSpace(data.FullName),
			Password: hashedPassword,
			Role:     role,
			IsActive: true,
		}

		if err := db.Create(&newUser).Error; err != nil {
			log.Printf("❌ Gagal insert user '%s': %v", email, err)
		} else {
			log.Printf("✅ Berhasil insert user '%s' (%s)", email, role)
		}
	}
}
