package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mardecortez-api/internal/application/dto"
	"github.com/jhoicas/mardecortez-api/internal/domain"
	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
)

var samplePDF = []byte("%PDF-1.4\n% cotización\n")

func TestQuotationUpload_SoloProveedorQueTomoLaOrden(t *testing.T) {
	s := newOrderScene(t)
	ctx := context.Background()
	o := s.mixedOrder(t)
	in := dto.UploadQuotationInput{FileName: "cotizacion.pdf", Data: samplePDF, Amount: ptrDec("1234.567"), Notes: "vigencia 15 días"}

	_, err := s.quotations.Upload(ctx, s.supA, o.ID, in)
	assert.ErrorIs(t, err, domain.ErrForbidden, "orden sin tomar")

	_, err = s.orders.Take(ctx, s.supA, o.ID, dto.TakeOrderRequest{})
	require.NoError(t, err)

	_, err = s.quotations.Upload(ctx, s.supB, o.ID, in)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	q, err := s.quotations.Upload(ctx, s.supA, o.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "cotizacion.pdf", q.FileName)
	assert.True(t, q.Amount.Equal(dec("1234.57")))
	assert.Equal(t, "Proveedor A", q.SupplierName)

	got, err := s.orders.Get(ctx, s.client, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderReceived, got.Status, "adjuntar no cambia el estado")

	notes, err := s.notes.List(ctx, s.client.UserID)
	require.NoError(t, err)
	require.NotEmpty(t, notes)
	assert.Contains(t, notes[0].Message, "cotización")
}

func TestQuotationUpload_ValidaArchivo(t *testing.T) {
	s := newOrderScene(t)
	ctx := context.Background()
	o := s.mixedOrder(t)
	_, err := s.orders.Take(ctx, s.supA, o.ID, dto.TakeOrderRequest{})
	require.NoError(t, err)

	_, err = s.quotations.Upload(ctx, s.supA, o.ID, dto.UploadQuotationInput{FileName: "x.pdf"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "vacío")

	_, err = s.quotations.Upload(ctx, s.supA, o.ID, dto.UploadQuotationInput{FileName: "x.txt", Data: []byte("hola")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "no es PDF")

	big := append([]byte("%PDF"), []byte(strings.Repeat("x", 2048))...)
	_, err = s.quotations.Upload(ctx, s.supA, o.ID, dto.UploadQuotationInput{FileName: "x.pdf", Data: big})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "supera el límite")
}

func TestQuotationListYDownload(t *testing.T) {
	s := newOrderScene(t)
	ctx := context.Background()
	o := s.mixedOrder(t)
	_, err := s.orders.Take(ctx, s.supA, o.ID, dto.TakeOrderRequest{})
	require.NoError(t, err)
	q, err := s.quotations.Upload(ctx, s.supA, o.ID, dto.UploadQuotationInput{FileName: "../../etc/c.pdf", Data: samplePDF})
	require.NoError(t, err)
	assert.Equal(t, "c.pdf", q.FileName)

	list, err := s.quotations.List(ctx, s.client, o.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	file, err := s.quotations.Download(ctx, s.client, q.ID)
	require.NoError(t, err)
	assert.Equal(t, samplePDF, file.Data)

	outsider := s.user(t, "otro@barco.mx", "Otro", entity.RoleCliente)
	_, err = s.quotations.List(ctx, outsider, o.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = s.quotations.Download(ctx, s.supB, q.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
