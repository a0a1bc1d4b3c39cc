package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"dental-staff-backend/controllers"
	invitationhandler "dental-staff-backend/lib/invitation"
	"dental-staff-backend/middleware"
	apimodels "dental-staff-backend/models/api"
	invitationapimodels "dental-staff-backend/models/api/invitation"
)

type invitationApiController struct {
	controllers.BaseAPIController
}

func InitInvitationApiRouters(app *fiber.App) {
	controller := invitationApiController{}
	app.Route("invitations", func(router fiber.Router) {
		router.Get("my", controller.listMine)
		router.Post(":id/response", controller.respond)

		router.Use(middleware.ClinicRoleRequired())
		router.Post("", controller.create)
		router.Get("job/:id", controller.listByJob)
	})
}

// @Summary Invite a professional
// @Tags Invitation
// @Description Send a targeted job offer to a professional
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 invitationapimodels.InvitationData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/invitations [post]
func (c *invitationApiController) create(ctx *fiber.Ctx) error {
	var payload invitationapimodels.InvitationData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	groups := middleware.GetUserGroups(ctx)
	id, err := invitationhandler.Instance.Create(userID, groups, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to create invitation")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Respond to invitation
// @Tags Invitation
// @Description Accept, decline or start negotiating an invitation
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"rec ID"
// @Param	body body	 invitationapimodels.RespondRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=invitationapimodels.RespondResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/invitations/{id}/response [post]
func (c *invitationApiController) respond(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload invitationapimodels.RespondRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	resp, err := invitationhandler.Instance.Respond(userID, id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to respond to invitation")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary My invitations
// @Tags Invitation
// @Description List invitations addressed to the caller
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]invitationapimodels.InvitationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/invitations/my [get]
func (c *invitationApiController) listMine(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	list, err := invitationhandler.Instance.ListMine(userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list invitations")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Invitations by job
// @Tags Invitation
// @Description List invitations sent for one job (clinic side)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"job ID"
// @Success 200 {object} apimodels.Response{data=[]invitationapimodels.InvitationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/invitations/job/{id} [get]
func (c *invitationApiController) listByJob(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	groups := middleware.GetUserGroups(ctx)
	list, err := invitationhandler.Instance.ListByJob(userID, groups, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list invitations")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
