package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"dental-staff-backend/lib/apperror"
	"dental-staff-backend/middleware"
	apimodels "dental-staff-backend/models/api"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("failed to parse request body")
		return errors.New("could not read request data")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	return c.GetIDByKey(ctx, "id")
}

func (c *BaseAPIController) GetIDByKey(ctx *fiber.Ctx, key string) (string, error) {
	id := ctx.Params(key)
	if id == "" {
		return "", errors.Errorf("empty path parameter (%v)", key)
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	logger := log.
		WithField("method", ctx.Method()).
		WithField("path", ctx.Path())
	if userID := middleware.GetUserID(ctx); userID != "" {
		logger = logger.WithField("user_id", userID)
	}
	return logger
}

// SendError translates handler errors into the response envelope. Known error
// kinds keep their message; internal failures are logged and the underlying
// cause is surfaced in the envelope for operability.
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, message string) error {
	status := apperror.HTTPStatus(err)
	if status == fiber.StatusInternalServerError {
		logger.WithError(err).Error(message)
		return ctx.Status(status).JSON(apimodels.NewError(errors.Wrap(err, message).Error()))
	}
	logger.WithError(err).Warn(message)
	return ctx.Status(status).JSON(apimodels.NewError(err.Error()))
}
