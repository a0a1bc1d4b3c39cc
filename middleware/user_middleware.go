package middleware

import (
	"github.com/gofiber/fiber/v2"

	"dental-staff-backend/lib/access"
	authutils "dental-staff-backend/lib/utils/auth-utils"
	apimodels "dental-staff-backend/models/api"
)

func GetUserID(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if sub, exist := claims["sub"]; exist {
		if stringSub, ok := sub.(string); ok {
			return stringSub
		}
	}
	return ""
}

func GetUserName(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if name, exist := claims["name"]; exist {
		if stringName, ok := name.(string); ok {
			return stringName
		}
	}
	return ""
}

// GetUserGroups reads the raw identity-provider group list from the token and
// normalizes it into the access policy form.
func GetUserGroups(ctx *fiber.Ctx) access.Groups {
	claims := authutils.GetClaims(ctx)
	raw, exist := claims["groups"]
	if !exist {
		return access.Groups{}
	}
	values, ok := raw.([]interface{})
	if !ok {
		return access.Groups{}
	}
	names := make([]string, 0, len(values))
	for _, value := range values {
		if name, ok := value.(string); ok {
			names = append(names, name)
		}
	}
	return access.NewGroups(names)
}

// ProfessionalScopeRequired guards professional-side endpoints: any
// authenticated subject may act as a professional for their own records, but
// the token must carry a subject at all.
func ProfessionalScopeRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if GetUserID(ctx) == "" {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("operation not available"))
		}
		return ctx.Next()
	}
}

// ClinicRoleRequired guards clinic-side endpoints by group membership; the
// resource-level association check happens in the handlers.
func ClinicRoleRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		groups := GetUserGroups(ctx)
		if !groups.IsRoot() && !groups.HasClinicRole() {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("operation not available"))
		}
		return ctx.Next()
	}
}
