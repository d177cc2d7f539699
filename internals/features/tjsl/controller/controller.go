// file: internals/features/tjsl/controller/controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tjsl_backend/internals/features/tjsl/repository"
	"tjsl_backend/internals/features/tjsl/service"
	helper "tjsl_backend/internals/helpers"
	helperOSS "tjsl_backend/internals/helpers/oss"
)

/* ============================================
   Controller
============================================ */

type TJSLController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Svc       *service.Service
}

// NewTJSLController: blob boleh nil (upload dokumen akan 503).
func NewTJSLController(db *gorm.DB, blob helperOSS.BlobService) *TJSLController {
	opts := []service.Option{}
	if blob != nil {
		opts = append(opts, service.WithBlob(blob))
	}
	return &TJSLController{
		DB:        db,
		Validator: validator.New(),
		Svc:       service.New(repository.NewGormStore(db), opts...),
	}
}

/* ============================================
   RESP/ERR helpers
============================================ */

func bindAndValidate[T any](c *fiber.Ctx, v *validator.Validate, dst *T, normalize func()) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if normalize != nil {
		normalize()
	}
	return v.Struct(dst)
}

// fail: error validasi → 400 + peta field, sisanya lewat FromFiberError.
func fail(c *fiber.Ctx, err error) error {
	if pe, ok := service.IsPayloadError(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(helper.ErrorResponse{
			Success:   false,
			Message:   pe.Msg,
			ErrorCode: "VALIDATION_ERROR",
			Errors:    pe.Fields,
		})
	}
	if len(helper.ValidationFieldErrors(err)) > 0 {
		return helper.JsonValidationError(c, err)
	}
	return helper.FromFiberError(c, err)
}

func sendPDF(c *fiber.Ctx, data []byte, filename string) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Status(fiber.StatusOK).Send(data)
}
