package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"dental-staff-backend/controllers"
	negotiationhandler "dental-staff-backend/lib/negotiation"
	"dental-staff-backend/middleware"
	apimodels "dental-staff-backend/models/api"
	negotiationapimodels "dental-staff-backend/models/api/negotiation"
)

type negotiationApiController struct {
	controllers.BaseAPIController
}

func InitNegotiationApiRouters(app *fiber.App) {
	controller := negotiationApiController{}
	app.Route("applications/:application_id/negotiations", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post(":negotiation_id/response", controller.respond)
	})
}

// @Summary Respond in negotiation
// @Tags Negotiation
// @Description Accept, decline or counter the open negotiation
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   application_id 		path    string	true	"application ID"
// @Param   negotiation_id 		path    string	true	"negotiation ID"
// @Param	body body	 negotiationapimodels.RespondRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=negotiationapimodels.RespondResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{application_id}/negotiations/{negotiation_id}/response [post]
func (c *negotiationApiController) respond(ctx *fiber.Ctx) error {
	applicationID, err := c.GetIDByKey(ctx, "application_id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	negotiationID, err := c.GetIDByKey(ctx, "negotiation_id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload negotiationapimodels.RespondRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	groups := middleware.GetUserGroups(ctx)
	resp, err := negotiationhandler.Instance.Respond(userID, groups, applicationID, negotiationID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to respond in negotiation")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Negotiation history
// @Tags Negotiation
// @Description List negotiation rounds for an application
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   application_id 		path    string	true	"application ID"
// @Success 200 {object} apimodels.Response{data=[]negotiationapimodels.NegotiationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{application_id}/negotiations [get]
func (c *negotiationApiController) list(ctx *fiber.Ctx) error {
	applicationID, err := c.GetIDByKey(ctx, "application_id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	groups := middleware.GetUserGroups(ctx)
	list, err := negotiationhandler.Instance.ListByApplication(userID, groups, applicationID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list negotiations")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
