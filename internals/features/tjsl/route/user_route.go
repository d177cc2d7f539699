// file: internals/features/tjsl/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tjsl_backend/internals/features/tjsl/controller"
	helperOSS "tjsl_backend/internals/helpers/oss"
)

// Base: /api/u (auth sudah terpasang di group). Akses per-resource dicek di service.
func TJSLUserRoutes(r fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	ctl := controller.NewTJSLController(db, blob)

	r.Get("/dashboard", ctl.Dashboard)

	proposals := r.Group("/proposals")
	proposals.Get("/", ctl.ListProposals)
	proposals.Post("/", ctl.CreateProposal)
	proposals.Get("/:id", ctl.GetProposal)
	proposals.Patch("/:id", ctl.PatchProposal)
	proposals.Delete("/:id", ctl.DeleteProposal)
	proposals.Post("/:id/submit", ctl.SubmitProposal)
	proposals.Get("/:id/tor", ctl.ProposalTOR)

	programs := r.Group("/programs")
	programs.Get("/", ctl.ListPrograms)
	programs.Get("/:id", ctl.GetProgram)
	programs.Get("/:id/summary", ctl.ProgramSummary)
	programs.Get("/:id/lpj", ctl.ProgramLPJ)
	programs.Get("/:id/reports", ctl.ListReports)
	programs.Post("/:id/reports", ctl.CreateReport)
	programs.Get("/:id/documents", ctl.ListDocuments)
	programs.Post("/:id/documents", ctl.UploadDocument)
}
