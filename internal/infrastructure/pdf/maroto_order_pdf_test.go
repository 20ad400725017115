package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
	"github.com/jhoicas/mardecortez-api/internal/infrastructure/pdf"
)

func TestGenerateOrderPDF(t *testing.T) {
	price := decimal.RequireFromString("139.20")
	o := &entity.Order{
		ID:          "b3f1c2d4-0000-0000-0000-000000000000",
		OrderNumber: "ORD-20250101-B3F1C2D4",
		ClientName:  "Capitán Ruiz",
		Lines: []entity.OrderLine{
			{ProductID: "p1", ProductName: "Motor", Price: &price, Quantity: 2},
			{ProductName: "Hélice", Description: "Acero inoxidable", Quantity: 1, IsCustom: true},
		},
		Total:              decimal.RequireFromString("278.40"),
		Status:             entity.OrderCancelled,
		CancellationReason: "Sin stock",
		Notes:              "Entregar en muelle 3",
		CreatedAt:          time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
	}

	data, err := pdf.NewMarotoOrderPDF().GenerateOrderPDF(context.Background(), o)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "debe ser un PDF")
}
