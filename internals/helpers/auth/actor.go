package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tjsl_backend/internals/constants"
	helper "tjsl_backend/internals/helpers"
)

// LocUserRole: kunci Locals role yang diisi AuthMiddleware.
const LocUserRole = "userRole"

// Actor = identitas pemanggil yang diteruskan controller ke service.
type Actor struct {
	UserID uuid.UUID
	Role   string
}

func (a Actor) IsAdmin() bool { return a.Role == constants.RoleAdmin }

// CanActOn: admin, atau pemilik resource.
func (a Actor) CanActOn(ownerID uuid.UUID) bool {
	return a.IsAdmin() || (ownerID != uuid.Nil && a.UserID == ownerID)
}

func GetRole(c *fiber.Ctx) string {
	role, _ := c.Locals(LocUserRole).(string)
	return strings.ToUpper(strings.TrimSpace(role))
}

func ActorFromCtx(c *fiber.Ctx) (Actor, error) {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return Actor{}, err
	}
	role := GetRole(c)
	if !constants.IsValidRole(role) {
		return Actor{}, fiber.NewError(fiber.StatusForbidden, "Role tidak dikenali")
	}
	return Actor{UserID: uid, Role: role}, nil
}
