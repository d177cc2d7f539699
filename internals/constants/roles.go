package constants

import "fmt"

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess = "❌ Hanya admin yang boleh mengakses fitur %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

var (
	AllRoles = []string{
		RoleAdmin,
		RoleUser,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)
