package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mardecortez-api/internal/application/dto"
	"github.com/jhoicas/mardecortez-api/internal/domain"
	"github.com/jhoicas/mardecortez-api/pkg/logger"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// errorTable traduce errores de dominio a HTTP. El mensaje enviado es el del error
// (envuelto con detalle), que es lo que muestra el cliente.
var errorTable = []errorMapping{
	{domain.ErrEmptyOrder, fiber.StatusBadRequest, "EMPTY_ORDER"},
	{domain.ErrInvalidStatus, fiber.StatusBadRequest, "INVALID_STATUS"},
	{domain.ErrCancellationReasonRequired, fiber.StatusBadRequest, "CANCELLATION_REASON_REQUIRED"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrAdminUndeletable, fiber.StatusForbidden, "ADMIN_UNDELETABLE"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrOrderAlreadyClaimed, fiber.StatusConflict, "ORDER_ALREADY_CLAIMED"},
	{domain.ErrOrderClosed, fiber.StatusConflict, "ORDER_CLOSED"},
	{domain.ErrOrderNotCancelled, fiber.StatusConflict, "ORDER_NOT_CANCELLED"},
	{domain.ErrRequestProcessed, fiber.StatusConflict, "REQUEST_PROCESSED"},
	{domain.ErrPendingRequest, fiber.StatusConflict, "PENDING_REQUEST"},
	{domain.ErrCategoryInUse, fiber.StatusConflict, "CATEGORY_IN_USE"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
}

// respondError escribe el ErrorResponse que corresponde a err.
func respondError(c *fiber.Ctx, err error) error {
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	logger.FromContext(c.UserContext()).Error().Err(err).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func missingID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
}

// parseOptionalBody acepta cuerpo vacío (todos los campos opcionales).
func parseOptionalBody(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return c.BodyParser(out)
}
