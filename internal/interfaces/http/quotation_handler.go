package http

import (
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mardecortez-api/internal/application/dto"
	"github.com/jhoicas/mardecortez-api/internal/application/usecase"
)

// QuotationHandler carga, listado y descarga de cotizaciones PDF.
type QuotationHandler struct {
	uc *usecase.QuotationUseCase
}

// NewQuotationHandler construye el handler.
func NewQuotationHandler(uc *usecase.QuotationUseCase) *QuotationHandler {
	return &QuotationHandler{uc: uc}
}

// Upload godoc
// @Summary      Adjuntar cotización PDF a una orden tomada
// @Tags         quotations
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id      path      string  true   "ID de la orden"
// @Param        file    formData  file    true   "Cotización en PDF"
// @Param        amount  formData  string  false  "Monto cotizado"
// @Param        notes   formData  string  false  "Notas"
// @Success      201  {object}  dto.QuotationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/quotation [post]
func (h *QuotationHandler) Upload(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "el archivo es requerido (campo file)"})
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, fmt.Errorf("abrir archivo: %w", err))
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return respondError(c, fmt.Errorf("leer archivo: %w", err))
	}

	in := dto.UploadQuotationInput{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Data:        data,
		Notes:       strings.TrimSpace(c.FormValue("notes")),
	}
	if raw := strings.TrimSpace(c.FormValue("amount")); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "amount debe ser numérico"})
		}
		in.Amount = &amount
	}

	out, err := h.uc.Upload(c.UserContext(), actorFrom(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Cotizaciones de una orden
// @Tags         quotations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {array}   dto.QuotationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/quotations [get]
func (h *QuotationHandler) List(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.uc.List(c.UserContext(), actorFrom(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Download godoc
// @Summary      Descargar cotización
// @Tags         quotations
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la cotización"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotations/{id}/download [get]
func (h *QuotationHandler) Download(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	q, err := h.uc.Download(c.UserContext(), actorFrom(c), id)
	if err != nil {
		return respondError(c, err)
	}
	contentType := q.ContentType
	if contentType == "" {
		contentType = "application/pdf"
	}
	return sendFile(c, contentType, q.FileName, q.Data, true)
}
