// file: internals/features/tjsl/controller/proposal_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	"tjsl_backend/internals/features/tjsl/dto"
	helper "tjsl_backend/internals/helpers"
	helperAuth "tjsl_backend/internals/helpers/auth"
)

/* ============================================
   CREATE
   POST /api/u/proposals
============================================ */

func (ctl *TJSLController) CreateProposal(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}
	var req dto.CreateProposalRequest
	if err := bindAndValidate(c, ctl.Validator, &req, req.Normalize); err != nil {
		return fail(c, err)
	}
	p, err := ctl.Svc.CreateProposal(c.UserContext(), actor, req)
	if err != nil {
		return fail(c, err)
	}
	return helper.JsonCreated(c, "Proposal berhasil dibuat", p)
}

/* ============================================
   LIST & DETAIL
   GET /api/u/proposals?status=&pillar=&q=&page=&per_page=
============================================ */

func (ctl *TJSLController) ListProposals(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}
	pg := helper.ResolvePaging(c, 20, 100)
	f := dto.ProposalFilterFromQuery(c)
	f.Offset, f.Limit = pg.Offset, pg.Limit

	rows, total, err := ctl.Svc.ListProposals(c.UserContext(), actor, f)
	if err != nil {
		return fail(c, err)
	}
	meta := helper.BuildPaginationFromOffset(total, pg.Offset, pg.Limit)
	return helper.JsonList(c, "ok", rows, &meta)
}

func (ctl *TJSLController) GetProposal(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	p, err := ctl.Svc.GetProposal(c.UserContext(), actor, id)
	if err != nil {
		return fail(c, err)
	}
	return helper.JsonOK(c, "ok", p)
}

/* ============================================
   PATCH / DELETE (DRAFT saja)
============================================ */

func (ctl *TJSLController) PatchProposal(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req dto.PatchProposalRequest
	if err := bindAndValidate(c, ctl.Validator, &req, req.Normalize); err != nil {
		return fail(c, err)
	}
	p, err := ctl.Svc.UpdateProposal(c.UserContext(), actor, id, req)
	if err != nil {
		return fail(c, err)
	}
	return helper.JsonUpdated(c, "Proposal berhasil diperbarui", p)
}

func (ctl *TJSLController) DeleteProposal(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := ctl.Svc.DeleteProposal(c.UserContext(), actor, id); err != nil {
		return fail(c, err)
	}
	return helper.JsonDeleted(c, "Proposal berhasil dihapus", fiber.Map{"proposal_id": id})
}

/* ============================================
   STATUS
   POST /api/u/proposals/:id/submit
   POST /api/a/proposals/:id/approve | /reject | /convert
============================================ */

func (ctl *TJSLController) SubmitProposal(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	p, err := ctl.Svc.SubmitProposal(c.UserContext(), actor, id)
	if err != nil {
		return fail(c, err)
	}
	return helper.JsonUpdated(c, "Proposal berhasil diajukan", p)
}

func (ctl *TJSLController) ApproveProposal(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	p, err := ctl.Svc.ApproveProposal(c.UserContext(), actor, id)
	if err != nil {
		return fail(c, err)
	}
	return helper.JsonUpdated(c, "Proposal disetujui", p)
}

func (ctl *TJSLController) RejectProposal(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	p, err := ctl.Svc.RejectProposal(c.UserContext(), actor, id)
	if err != nil {
		return fail(c, err)
	}
	return helper.JsonUpdated(c, "Proposal ditolak", p)
}

func (ctl *TJSLController) ConvertProposal(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req dto.ConvertProposalRequest
	if err := bindAndValidate(c, ctl.Validator, &req, nil); err != nil {
		return fail(c, err)
	}
	prog, err := ctl.Svc.ConvertProposal(c.UserContext(), actor, id, req)
	if err != nil {
		return fail(c, err)
	}
	return helper.JsonCreated(c, "Proposal berhasil dikonversi menjadi program", prog)
}

// GET /api/u/proposals/:id/tor
func (ctl *TJSLController) ProposalTOR(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	data, name, err := ctl.Svc.ProposalTOR(c.UserContext(), actor, id)
	if err != nil {
		return fail(c, err)
	}
	return sendPDF(c, data, name)
}
