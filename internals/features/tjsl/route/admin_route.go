// file: internals/features/tjsl/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tjsl_backend/internals/features/tjsl/controller"
	helperOSS "tjsl_backend/internals/helpers/oss"
)

// Base: /api/a (auth + OnlyRoles ADMIN sudah terpasang di group)
func TJSLAdminRoutes(r fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	ctl := controller.NewTJSLController(db, blob)

	r.Get("/dashboard", ctl.Dashboard)

	proposals := r.Group("/proposals")
	proposals.Get("/", ctl.ListProposals)
	proposals.Post("/:id/approve", ctl.ApproveProposal)
	proposals.Post("/:id/reject", ctl.RejectProposal)
	proposals.Post("/:id/convert", ctl.ConvertProposal)

	programs := r.Group("/programs")
	programs.Get("/", ctl.ListPrograms)
	programs.Post("/:id/complete", ctl.CompleteProgram)
}
