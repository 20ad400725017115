package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mardecortez-api/internal/application/dto"
	"github.com/jhoicas/mardecortez-api/internal/application/usecase"
)

// RegistrationHandler solicitudes de registro de embarcaciones.
type RegistrationHandler struct {
	uc *usecase.RegistrationUseCase
}

// NewRegistrationHandler construye el handler.
func NewRegistrationHandler(uc *usecase.RegistrationUseCase) *RegistrationHandler {
	return &RegistrationHandler{uc: uc}
}

// Create godoc
// @Summary      Enviar solicitud de registro (público)
// @Tags         registration
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRegistrationRequest  true  "Datos de la embarcación"
// @Success      201   {object}  dto.CreateRegistrationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/registration-requests [post]
func (h *RegistrationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRegistrationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar solicitudes de registro
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pendiente | aprobado | rechazado"
// @Success      200     {array}   dto.RegistrationRequestResponse
// @Router       /api/admin/registration-requests [get]
func (h *RegistrationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar solicitud y crear la cuenta
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la solicitud"
// @Param        body  body  dto.ApproveRegistrationRequest  true  "role y password obligatorios"
// @Success      200   {object}  dto.ApproveRegistrationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/registration-requests/{id}/approve [put]
func (h *RegistrationHandler) Approve(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.ApproveRegistrationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Approve(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reject godoc
// @Summary      Rechazar solicitud
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/registration-requests/{id}/reject [put]
func (h *RegistrationHandler) Reject(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.uc.Reject(c.UserContext(), GetUserID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "solicitud rechazada"})
}
