package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"dental-staff-backend/controllers"
	clinichandler "dental-staff-backend/lib/clinic"
	"dental-staff-backend/middleware"
	apimodels "dental-staff-backend/models/api"
	clinicapimodels "dental-staff-backend/models/api/clinic"
)

type clinicApiController struct {
	controllers.BaseAPIController
}

func InitClinicApiRouters(app *fiber.App) {
	controller := clinicApiController{}
	app.Route("clinics", func(router fiber.Router) {
		router.Use(middleware.ClinicRoleRequired())

		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Route("users/:user_sub", func(userRoute fiber.Router) {
				userRoute.Put("associate", controller.associate)
				userRoute.Put("dissociate", controller.dissociate)
			})
		})
	})
}

// @Summary Create clinic
// @Tags Clinic
// @Description Register the caller's clinic profile
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 clinicapimodels.ClinicData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/clinics [post]
func (c *clinicApiController) create(ctx *fiber.Ctx) error {
	var payload clinicapimodels.ClinicData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	id, err := clinichandler.Instance.Create(userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to create clinic")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Get clinic
// @Tags Clinic
// @Description Get clinic by ID
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=clinicapimodels.ClinicView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/clinics/{id} [get]
func (c *clinicApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	groups := middleware.GetUserGroups(ctx)
	resp, err := clinichandler.Instance.GetByID(userID, groups, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get clinic")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Update clinic
// @Tags Clinic
// @Description Update clinic profile
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 clinicapimodels.ClinicData	true	"request body"
// @Param   id          		path    string	true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/clinics/{id} [put]
func (c *clinicApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload clinicapimodels.ClinicData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	groups := middleware.GetUserGroups(ctx)
	err = clinichandler.Instance.Update(userID, groups, id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to update clinic")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Associate user
// @Tags Clinic
// @Description Grant a user access to the clinic
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"rec ID"
// @Param   user_sub       		path    string	true	"user sub"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/clinics/{id}/users/{user_sub}/associate [put]
func (c *clinicApiController) associate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userSub, err := c.GetIDByKey(ctx, "user_sub")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	groups := middleware.GetUserGroups(ctx)
	err = clinichandler.Instance.AssociateUser(userID, groups, id, userSub)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to associate user with clinic")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Dissociate user
// @Tags Clinic
// @Description Revoke a user's access to the clinic
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"rec ID"
// @Param   user_sub       		path    string	true	"user sub"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/clinics/{id}/users/{user_sub}/dissociate [put]
func (c *clinicApiController) dissociate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userSub, err := c.GetIDByKey(ctx, "user_sub")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	groups := middleware.GetUserGroups(ctx)
	err = clinichandler.Instance.DissociateUser(userID, groups, id, userSub)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to dissociate user from clinic")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
