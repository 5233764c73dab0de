package middleware

import (
	"errors"
	"runtime/debug"

	"medtrain/apierror"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler converts any error escaping a handler into the API error
// body {status, message, stack?}. 4xx errors report status "fail", the
// rest "error"; the stack is attached only in development.
func ErrorHandler(logger *zap.Logger, development bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var apiErr *apierror.ApiError
		if !errors.As(err, &apiErr) {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				apiErr = apierror.New(fiberErr.Code, fiberErr.Message)
			} else {
				apiErr = apierror.Internal(err.Error())
			}
		}

		logger.Error("request failed",
			zap.Int("status", apiErr.StatusCode),
			zap.String("message", apiErr.Message),
			zap.String("path", c.Path()),
		)

		body := fiber.Map{
			"status":  apiErr.Status(),
			"message": apiErr.Message,
		}
		if development {
			body["stack"] = string(debug.Stack())
		}
		return c.Status(apiErr.StatusCode).JSON(body)
	}
}

// NotFoundHandler answers unmatched routes with a generic 404 body.
func NotFoundHandler(c *fiber.Ctx) error {
	return apierror.NotFound("Resource not found: " + c.OriginalURL())
}
