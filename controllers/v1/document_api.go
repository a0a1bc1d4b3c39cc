package apiv1

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"dental-staff-backend/controllers"
	filestorage "dental-staff-backend/lib/file-storage"
	"dental-staff-backend/middleware"
	apimodels "dental-staff-backend/models/api"
	dbmodels "dental-staff-backend/models/db"
)

type documentApiController struct {
	controllers.BaseAPIController
}

func InitDocumentApiRouters(app *fiber.App) {
	controller := documentApiController{}
	app.Route("documents", func(router fiber.Router) {
		router.Post("upload", controller.upload)
		router.Get("list/:file_type", controller.list)
		router.Get(":id", controller.download)
	})
}

// @Summary Upload document
// @Tags Document
// @Description Upload a resume, license or clinic document
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   file_type   		formData 	string	true	"RESUME/LICENSE/CLINIC_DOC"
// @Param   clinic_id   		formData 	string	false	"clinic ID for clinic documents"
// @Param   file        		formData 	file	true	"file"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/documents/upload [post]
func (c *documentApiController) upload(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("file is required"))
	}
	fileType := dbmodels.FileType(ctx.FormValue("file_type"))
	switch fileType {
	case dbmodels.FileTypeResume, dbmodels.FileTypeLicense, dbmodels.FileTypeClinicDoc:
	default:
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("unknown file type"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to read uploaded file")
	}
	defer file.Close()
	body, err := io.ReadAll(file)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to read uploaded file")
	}
	userID := middleware.GetUserID(ctx)
	id, err := filestorage.Instance.Upload(ctx.Context(), userID, ctx.FormValue("clinic_id"), fileType,
		fileHeader.Filename, fileHeader.Header.Get(fiber.HeaderContentType), body)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to upload document")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Download document
// @Tags Document
// @Description Download one of the caller's documents
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"rec ID"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/documents/{id} [get]
func (c *documentApiController) download(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	rec, body, err := filestorage.Instance.Get(ctx.Context(), userID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to download document")
	}
	ctx.Set(fiber.HeaderContentType, rec.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", rec.Name))
	return ctx.Status(fiber.StatusOK).Send(body)
}

// @Summary Document list
// @Tags Document
// @Description List the caller's documents of one type
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   file_type   		path    string	true	"RESUME/LICENSE/CLINIC_DOC"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/documents/list/{file_type} [get]
func (c *documentApiController) list(ctx *fiber.Ctx) error {
	fileType, err := c.GetIDByKey(ctx, "file_type")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	list, err := filestorage.Instance.List(userID, dbmodels.FileType(fileType))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list documents")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
