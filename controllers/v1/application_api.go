package apiv1

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"dental-staff-backend/controllers"
	"dental-staff-backend/db"
	applicationhandler "dental-staff-backend/lib/application"
	applicationstore "dental-staff-backend/lib/application/store"
	xlsexport "dental-staff-backend/lib/export/xls"
	"dental-staff-backend/middleware"
	apimodels "dental-staff-backend/models/api"
	applicationapimodels "dental-staff-backend/models/api/application"
)

type applicationApiController struct {
	controllers.BaseAPIController
}

func InitApplicationApiRouters(app *fiber.App) {
	controller := applicationApiController{}
	app.Post("jobs/:id/apply", controller.apply)
	app.Route("applications", func(router fiber.Router) {
		router.Get("my", controller.listMine)
		router.Post("list", controller.listForJob)
		router.Post("export", controller.export)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("withdraw", controller.withdraw)
		})
	})
}

// @Summary Apply to a job
// @Tags Application
// @Description Submit an application, optionally opening a rate negotiation
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"job ID"
// @Param	body body	 applicationapimodels.ApplyRequest	true	"request body"
// @Success 201 {object} apimodels.Response{data=applicationapimodels.ApplyResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/jobs/{id}/apply [post]
func (c *applicationApiController) apply(ctx *fiber.Ctx) error {
	jobID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload applicationapimodels.ApplyRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	// the path parameter wins over a job id in the body
	payload.JobID = jobID
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	resp, err := applicationhandler.Instance.Apply(userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to submit application")
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(resp))
}

// @Summary My applications
// @Tags Application
// @Description List the caller's applications
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/my [get]
func (c *applicationApiController) listMine(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	list, err := applicationhandler.Instance.ListMine(userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list applications")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Application list
// @Tags Application
// @Description List applications for a job (clinic side)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 applicationapimodels.ApplicationFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/list [post]
func (c *applicationApiController) listForJob(ctx *fiber.Ctx) error {
	var payload applicationapimodels.ApplicationFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	groups := middleware.GetUserGroups(ctx)
	list, rowCount, err := applicationhandler.Instance.ListForJob(userID, groups, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list applications")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Export applications
// @Tags Application
// @Description Export applications for a job to xlsx (clinic side)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 applicationapimodels.ApplicationFilter	true	"request body"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/export [post]
func (c *applicationApiController) export(ctx *fiber.Ctx) error {
	var payload applicationapimodels.ApplicationFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	groups := middleware.GetUserGroups(ctx)
	// reuse the list authorization, then export raw rows
	_, _, err := applicationhandler.Instance.ListForJob(userID, groups, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to export applications")
	}
	recList, err := applicationstore.NewInstance(db.DB).List(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to export applications")
	}
	buf, err := xlsexport.Instance.ExportApplicationList(recList)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to export applications")
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "applications.xlsx"))
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}

// @Summary Get application
// @Tags Application
// @Description Get application by ID
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id} [get]
func (c *applicationApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	groups := middleware.GetUserGroups(ctx)
	resp, err := applicationhandler.Instance.GetByID(userID, groups, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get application")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Withdraw application
// @Tags Application
// @Description Withdraw the caller's own application
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id}/withdraw [put]
func (c *applicationApiController) withdraw(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	err = applicationhandler.Instance.Withdraw(userID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to withdraw application")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
