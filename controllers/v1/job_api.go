package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"dental-staff-backend/controllers"
	jobhandler "dental-staff-backend/lib/job"
	"dental-staff-backend/middleware"
	apimodels "dental-staff-backend/models/api"
	jobapimodels "dental-staff-backend/models/api/job"
)

type jobApiController struct {
	controllers.BaseAPIController
}

func InitJobApiRouters(app *fiber.App) {
	controller := jobApiController{}
	app.Route("jobs", func(router fiber.Router) {
		// readable by every authenticated user
		router.Post("list", controller.list)
		router.Get(":id", controller.get)

		// clinic-side mutations
		router.Use(middleware.ClinicRoleRequired())
		router.Post("", controller.create)
		router.Put(":id/change_status", controller.changeStatus)
		router.Delete(":id", controller.delete)
	})
}

// @Summary Create job posting
// @Tags Job
// @Description Publish a new job posting for a clinic
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 jobapimodels.JobData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/jobs [post]
func (c *jobApiController) create(ctx *fiber.Ctx) error {
	var payload jobapimodels.JobData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	groups := middleware.GetUserGroups(ctx)
	id, err := jobhandler.Instance.Create(userID, groups, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to create job posting")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Job list
// @Tags Job
// @Description List job postings with filter and pagination
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 jobapimodels.JobFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]jobapimodels.JobView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/jobs/list [post]
func (c *jobApiController) list(ctx *fiber.Ctx) error {
	var payload jobapimodels.JobFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := jobhandler.Instance.List(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list job postings")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Get job posting
// @Tags Job
// @Description Get job posting by ID
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=jobapimodels.JobView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/jobs/{id} [get]
func (c *jobApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := jobhandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get job posting")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Change job status
// @Tags Job
// @Description Move the posting through its lifecycle
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 jobapimodels.StatusChangeRequest	true	"request body"
// @Param   id          		path    string	true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/jobs/{id}/change_status [put]
func (c *jobApiController) changeStatus(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload jobapimodels.StatusChangeRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	groups := middleware.GetUserGroups(ctx)
	err = jobhandler.Instance.StatusChange(userID, groups, id, payload.Status)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to change job status")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Delete job posting
// @Tags Job
// @Description Delete a posting with no open activity
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/jobs/{id} [delete]
func (c *jobApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	groups := middleware.GetUserGroups(ctx)
	err = jobhandler.Instance.Delete(userID, groups, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to delete job posting")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
