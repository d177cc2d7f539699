// file: internals/features/tjsl/controller/report_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"tjsl_backend/internals/features/tjsl/dto"
	helper "tjsl_backend/internals/helpers"
	helperAuth "tjsl_backend/internals/helpers/auth"
)

// POST /api/u/programs/:id/reports
// body: { "report_type": "KEUANGAN", "report_payload": { ... } }
func (ctl *TJSLController) CreateReport(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}
	programID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req dto.CreateReportRequest
	if err := bindAndValidate(c, ctl.Validator, &req, req.Normalize); err != nil {
		return fail(c, err)
	}

	r, err := ctl.Svc.CreateReport(c.UserContext(), actor, programID, req.ReportType, req.ReportPayload)
	if err != nil {
		return fail(c, err)
	}
	return helper.JsonCreated(c, "Laporan berhasil disimpan", dto.FromReportModel(*r))
}

// GET /api/u/programs/:id/reports?type=
func (ctl *TJSLController) ListReports(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}
	programID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	reportType := strings.ToUpper(strings.TrimSpace(c.Query("type")))

	rows, err := ctl.Svc.ListReports(c.UserContext(), actor, programID, reportType)
	if err != nil {
		return fail(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromReportModels(rows), nil)
}
