package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authHelper "tjsl_backend/internals/features/users/auth/helper"
	"tjsl_backend/internals/features/users/user/dto"
	"tjsl_backend/internals/features/users/user/model"
	helper "tjsl_backend/internals/helpers"
)

type UserController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{
		DB:        db,
		Validator: validator.New(),
	}
}

// ========== List ==========
// GET /api/a/users?q=&role=&is_active=&page=&per_page=
func (ctl *UserController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.UserContext()).Model(&model.UserModel{})
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("(LOWER(user_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(full_name) LIKE ?)", like, like, like)
	}
	if role := strings.ToUpper(strings.TrimSpace(c.Query("role"))); role != "" {
		q = q.Where("role = ?", role)
	}
	switch strings.ToLower(strings.TrimSpace(c.Query("is_active"))) {
	case "true", "1":
		q = q.Where("is_active = TRUE")
	case "false", "0":
		q = q.Where("is_active = FALSE")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	var rows []model.UserModel
	if err := q.Order("created_at DESC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	pg := helper.BuildPaginationFromOffset(total, p.Offset, p.Limit)
	return helper.JsonList(c, "ok", dto.FromModels(rows), &pg)
}

// ========== Detail ==========
func (ctl *UserController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var u model.UserModel
	if err := ctl.DB.WithContext(c.UserContext()).Where("id = ?", id).Take(&u).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(u))
}

// ========== Create ==========
func (ctl *UserController) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if err := authHelper.ValidatePassword(req.Password); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	hash, err := authHelper.HashPassword(req.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal hash password")
	}
	u := model.UserModel{
		UserName: req.UserName,
		Email:    req.Email,
		FullName: req.FullName,
		Password: hash,
		Role:     req.Role,
		IsActive: true,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&u).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "User name atau email sudah dipakai")
		}
		return helper.FromFiberError(c, err)
	}
	log.Printf("[INFO] user dibuat id=%s role=%s", u.ID, u.Role)
	return helper.JsonCreated(c, "User berhasil dibuat", dto.FromModel(u))
}

// ========== Patch ==========
func (ctl *UserController) Patch(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.PatchUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	// admin tidak boleh menonaktifkan / menurunkan dirinya sendiri
	if me, err := helper.GetUserIDFromToken(c); err == nil && me == id {
		if (req.IsActive != nil && !*req.IsActive) || (req.Role != nil && *req.Role != "ADMIN") {
			return helper.JsonError(c, fiber.StatusBadRequest, "Tidak bisa menonaktifkan atau menurunkan role akun sendiri")
		}
	}

	updates := map[string]any{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.Password != nil {
		if err := authHelper.ValidatePassword(*req.Password); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		hash, err := authHelper.HashPassword(*req.Password)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal hash password")
		}
		updates["password"] = hash
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada field yang diubah")
	}

	var u model.UserModel
	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.UserModel{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
		}
		return tx.Where("id = ?", id).Take(&u).Error
	})
	if err != nil {
		var fe *fiber.Error
		if !errors.As(err, &fe) && helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Email sudah dipakai")
		}
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "User berhasil diperbarui", dto.FromModel(u))
}
