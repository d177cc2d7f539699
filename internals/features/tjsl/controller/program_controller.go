// file: internals/features/tjsl/controller/program_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	"tjsl_backend/internals/features/tjsl/dto"
	helper "tjsl_backend/internals/helpers"
	helperAuth "tjsl_backend/internals/helpers/auth"
)

// GET /api/u/programs?status=&pillar=&q=&page=&per_page=
func (ctl *TJSLController) ListPrograms(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}
	pg := helper.ResolvePaging(c, 20, 100)
	f := dto.ProgramFilterFromQuery(c)
	f.Offset, f.Limit = pg.Offset, pg.Limit

	rows, total, err := ctl.Svc.ListPrograms(c.UserContext(), actor, f)
	if err != nil {
		return fail(c, err)
	}
	meta := helper.BuildPaginationFromOffset(total, pg.Offset, pg.Limit)
	return helper.JsonList(c, "ok", rows, &meta)
}

func (ctl *TJSLController) GetProgram(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	p, err := ctl.Svc.GetProgram(c.UserContext(), actor, id)
	if err != nil {
		return fail(c, err)
	}
	return helper.JsonOK(c, "ok", p)
}

// POST /api/a/programs/:id/complete
func (ctl *TJSLController) CompleteProgram(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	p, err := ctl.Svc.CompleteProgram(c.UserContext(), actor, id)
	if err != nil {
		return fail(c, err)
	}
	return helper.JsonUpdated(c, "Program ditandai selesai", p)
}

// GET /api/u/programs/:id/summary
func (ctl *TJSLController) ProgramSummary(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	p, sum, err := ctl.Svc.ProgramSummary(c.UserContext(), actor, id)
	if err != nil {
		return fail(c, err)
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"program": p,
		"summary": sum,
	})
}

// GET /api/u/programs/:id/lpj
func (ctl *TJSLController) ProgramLPJ(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	data, name, err := ctl.Svc.ProgramLPJ(c.UserContext(), actor, id)
	if err != nil {
		return fail(c, err)
	}
	return sendPDF(c, data, name)
}
