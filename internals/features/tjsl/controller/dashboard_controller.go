// file: internals/features/tjsl/controller/dashboard_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	helper "tjsl_backend/internals/helpers"
	helperAuth "tjsl_backend/internals/helpers/auth"
)

// GET /api/u/dashboard dan /api/a/dashboard (cakupan ditentukan role)
func (ctl *TJSLController) Dashboard(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromCtx(c)
	if err != nil {
		return fail(c, err)
	}
	out, err := ctl.Svc.Dashboard(c.UserContext(), actor)
	if err != nil {
		return fail(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}
