package http

import (
	"errors"

	"resume-builder/internal/auth"
	"resume-builder/internal/export"
	"resume-builder/internal/model"
	"resume-builder/internal/session"
	"resume-builder/internal/usecase"
	"resume-builder/pkg/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// ErrorHandler writes every error as one JSON payload. Export failures
// carry a remedy and the fallback strategy.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var xerr *export.Error
		if errors.As(err, &xerr) {
			status := fiber.StatusUnprocessableEntity
			if xerr.Kind == export.KindInputAbsent {
				status = fiber.StatusBadRequest
			}
			body := fiber.Map{"error": xerr.Error(), "code": string(xerr.Kind), "remedy": xerr.Remedy()}
			if fb := xerr.Fallback(); fb != "" {
				body["fallback"] = fb
			}
			log.Warn().Err(err).Str("path", c.Path()).Msg("export failed")
			return c.Status(status).JSON(body)
		}

		ae := toAppError(err)
		if ae.Status >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
		}
		body := fiber.Map{"error": ae.Message, "code": ae.Code}
		if len(ae.Details) > 0 {
			body["details"] = ae.Details
		}
		return c.Status(ae.Status).JSON(body)
	}
}

func toAppError(err error) *apperr.AppError {
	var ae *apperr.AppError
	if errors.As(err, &ae) {
		return ae
	}

	var verr *model.ValidationError
	var ferr *fiber.Error
	switch {
	case errors.As(err, &verr):
		return apperr.Validation("invalid resume data", verr.Problems)
	case errors.Is(err, auth.ErrInvalidEmail), errors.Is(err, auth.ErrWeakPassword):
		return apperr.BadRequest(err.Error())
	case errors.Is(err, auth.ErrEmailTaken):
		return apperr.AlreadyExists("user")
	case errors.Is(err, auth.ErrInvalidCredentials):
		return apperr.Unauthorized(err.Error())
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenExpired), errors.Is(err, auth.ErrTokenRevoked):
		return apperr.InvalidToken(err.Error())
	case errors.Is(err, session.ErrNotFound):
		return apperr.NotFound("session")
	case errors.Is(err, session.ErrNoEntry):
		return apperr.NotFound("entry")
	case errors.Is(err, session.ErrClosed), errors.Is(err, usecase.ErrExportInProgress):
		return apperr.Conflict(err.Error())
	case errors.As(err, &ferr):
		return apperr.New(codeForStatus(ferr.Code), ferr.Message, ferr.Code)
	}
	return apperr.Internal(err)
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge, fiber.StatusUnsupportedMediaType:
		return apperr.CodeBadRequest
	case fiber.StatusUnauthorized:
		return apperr.CodeUnauthorized
	case fiber.StatusForbidden:
		return apperr.CodeForbidden
	case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
		return apperr.CodeNotFound
	case fiber.StatusConflict:
		return apperr.CodeConflict
	}
	return apperr.CodeInternalError
}
