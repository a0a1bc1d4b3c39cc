package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"dental-staff-backend/controllers"
	authutils "dental-staff-backend/lib/utils/auth-utils"
	apimodels "dental-staff-backend/models/api"
	authapimodels "dental-staff-backend/models/api/auth"
)

type authApiController struct {
	controllers.BaseAPIController
}

func InitAuthApiRouters(app *fiber.App) {
	controller := authApiController{}
	app.Route("auth", func(router fiber.Router) {
		router.Post("token", controller.token)
	})
}

// @Summary Issue a JWT
// @Tags Authentication
// @Description Issue a signed token for the given subject and groups
// @Param	body				body		authapimodels.TokenRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=authapimodels.JWTResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/auth/token [post]
func (c *authApiController) token(ctx *fiber.Ctx) error {
	var payload authapimodels.TokenRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	token, err := authutils.GetToken(payload.Sub, payload.Name, payload.Groups)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to issue token")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(authapimodels.JWTResponse{Token: token}))
}
