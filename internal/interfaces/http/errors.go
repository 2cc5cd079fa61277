package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/control-stock-api/internal/application/dto"
	"github.com/jhoicas/control-stock-api/internal/domain"
	"github.com/jhoicas/control-stock-api/pkg/logger"
)

// errorStatus traduce un error de dominio a (status, cuerpo).
func errorStatus(err error) (int, dto.ErrorResponse) {
	var (
		vErr  *domain.ValidationError
		pErr  *domain.PermissionError
		nfErr *domain.NotFoundError
		fErr  *fiber.Error
	)
	switch {
	case errors.As(err, &vErr) && errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: vErr.Message, Field: vErr.Field}
	case errors.As(err, &vErr):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: vErr.Message, Field: vErr.Field}
	case errors.As(err, &pErr):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: pErr.Message}
	case errors.As(err, &nfErr):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: nfErr.Error(), Field: nfErr.Field}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "INVALID_CREDENTIALS", Message: domain.ErrInvalidCredentials.Error()}
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "DUPLICATE", Message: "email o username ya registrado"}
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "DUPLICATE", Message: domain.ErrDuplicate.Error()}
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: domain.ErrInsufficientStock.Error()}
	case errors.Is(err, domain.ErrConcurrency):
		return fiber.StatusServiceUnavailable, dto.ErrorResponse{Code: "CONCURRENCY", Message: domain.ErrConcurrency.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: domain.ErrForbidden.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: domain.ErrNotFound.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: domain.ErrUnauthorized.Error()}
	case errors.As(err, &fErr):
		return fErr.Code, dto.ErrorResponse{Code: "HTTP", Message: fErr.Message}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"}
}

// ErrorHandler handler de errores de fiber: los 5xx se registran, el cliente solo ve un mensaje genérico.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, body := errorStatus(err)
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Int("status", status).
				Msg("error en petición")
		}
		return c.Status(status).JSON(body)
	}
}
