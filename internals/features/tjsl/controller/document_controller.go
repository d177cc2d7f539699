// file: internals/features/tjsl/controller/document_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	helper "tjsl_backend/internals/helpers"
	helperAuth "tjsl_backend/internals/helpers/auth"
	helperOSS "tjsl_backend/internals/helpers/oss"
)

// POST /api/u/programs/:id/documents (multipart: file, document_name, document_type)
func (ctl *TJSLController) UploadDocument(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}
	programID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	fh, err := helperOSS.GetFormFile(c, "file", "document")
	if err != nil {
		return fail(c, err)
	}

	d, err := ctl.Svc.UploadDocument(c.UserContext(), actor, programID,
		c.FormValue("document_name"), c.FormValue("document_type"), fh)
	if err != nil {
		return fail(c, err)
	}
	return helper.JsonCreated(c, "Dokumen berhasil diunggah", d)
}

// GET /api/u/programs/:id/documents
func (ctl *TJSLController) ListDocuments(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}
	programID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	rows, err := ctl.Svc.ListDocuments(c.UserContext(), actor, programID)
	if err != nil {
		return fail(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}
