package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mardecortez-api/internal/application/auth"
	"github.com/jhoicas/mardecortez-api/internal/application/dto"
	"github.com/jhoicas/mardecortez-api/internal/application/usecase"
	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
	"github.com/jhoicas/mardecortez-api/internal/infrastructure/memory"
	"github.com/jhoicas/mardecortez-api/pkg/logger"
)

// fixture arma los casos de uso sobre un store en memoria.
type fixture struct {
	store        *memory.Store
	users        *usecase.UserUseCase
	registration *usecase.RegistrationUseCase
	categories   *usecase.CategoryUseCase
	products     *usecase.ProductUseCase
	orders       *usecase.OrderUseCase
	quotations   *usecase.QuotationUseCase
	notes        *usecase.NotificationUseCase
	stats        *usecase.StatsUseCase
	pdf          *fakePDF
	exporter     *fakeExporter
}

type fakePDF struct{ calls int }

func (f *fakePDF) GenerateOrderPDF(_ context.Context, o *entity.Order) ([]byte, error) {
	f.calls++
	return []byte("%PDF-fake " + o.OrderNumber), nil
}

type fakeExporter struct{ rows int }

func (f *fakeExporter) ExportOrders(_ context.Context, orders []*entity.Order) ([]byte, error) {
	f.rows = len(orders)
	return []byte("xlsx"), nil
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.NewStore()
	log := logger.Nop()
	notes := usecase.NewNotificationUseCase(s.Notifications(), log)
	f := &fixture{store: s, notes: notes, pdf: &fakePDF{}, exporter: &fakeExporter{}}
	f.users = usecase.NewUserUseCase(s.Users())
	f.registration = usecase.NewRegistrationUseCase(s.Users(), s.RegistrationRequests(), memory.NewTxRunner(s), log)
	f.categories = usecase.NewCategoryUseCase(s.Categories(), s.Products())
	f.products = usecase.NewProductUseCase(s.Products(), s.Categories(), s.Users())
	f.orders = usecase.NewOrderUseCase(s.Orders(), s.Products(), s.Users(), notes, f.pdf, f.exporter, log)
	f.quotations = usecase.NewQuotationUseCase(s.Quotations(), s.Orders(), notes, 1024, log)
	f.stats = usecase.NewStatsUseCase(s.Users(), s.Orders(), s.Products(), s.RegistrationRequests())
	return f
}

func (f *fixture) user(t *testing.T, email, name, role string) usecase.Actor {
	t.Helper()
	u, err := auth.NewUser(email, "secreto", name, role, "")
	require.NoError(t, err)
	require.NoError(t, f.store.Users().Create(context.Background(), u))
	return usecase.Actor{UserID: u.ID, Role: u.Role}
}

func (f *fixture) category(t *testing.T, name string) string {
	t.Helper()
	c, err := f.categories.Create(context.Background(), "", dto.CreateCategoryRequest{Name: name})
	require.NoError(t, err)
	return c.Slug
}

// product crea un producto con base y ganancia porcentual, IVA por defecto.
func (f *fixture) product(t *testing.T, supplier usecase.Actor, category, name, sku string, base, profit int64) *dto.ProductResponse {
	t.Helper()
	p, err := f.products.Create(context.Background(), supplier, dto.ProductRequest{
		Name:        name,
		Category:    category,
		SKU:         sku,
		BasePrice:   decimal.NewFromInt(base),
		ProfitType:  entity.ProfitPercentage,
		ProfitValue: decimal.NewFromInt(profit),
	})
	require.NoError(t, err)
	return p
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
