package usecase

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/mardecortez-api/internal/application/dto"
	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
	"github.com/jhoicas/mardecortez-api/internal/domain/repository"
)

// StatsUseCase tablero del administrador.
type StatsUseCase struct {
	users    repository.UserRepository
	orders   repository.OrderRepository
	products repository.ProductRepository
	requests repository.RegistrationRequestRepository
}

// NewStatsUseCase construye el caso de uso.
func NewStatsUseCase(
	users repository.UserRepository,
	orders repository.OrderRepository,
	products repository.ProductRepository,
	requests repository.RegistrationRequestRepository,
) *StatsUseCase {
	return &StatsUseCase{users: users, orders: orders, products: products, requests: requests}
}

// AdminStats cuenta usuarios, órdenes, productos y solicitudes pendientes en paralelo.
// Los ingresos son la suma del total de las órdenes completadas.
func (uc *StatsUseCase) AdminStats(ctx context.Context) (*dto.AdminStatsResponse, error) {
	var out dto.AdminStatsResponse
	var revenue decimal.Decimal

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.TotalUsers, err = uc.users.Count(ctx, "")
		return err
	})
	g.Go(func() (err error) {
		out.TotalClients, err = uc.users.Count(ctx, entity.RoleCliente)
		return err
	})
	g.Go(func() (err error) {
		out.TotalSuppliers, err = uc.users.Count(ctx, entity.RoleProveedor)
		return err
	})
	g.Go(func() (err error) {
		out.TotalOrders, err = uc.orders.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.TotalProducts, err = uc.products.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.PendingRequests, err = uc.requests.Count(ctx, entity.RequestPending)
		return err
	})
	g.Go(func() (err error) {
		revenue, err = uc.orders.SumTotalByStatus(ctx, entity.OrderCompleted)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out.TotalRevenue = revenue.Round(2)
	return &out, nil
}
