// Package persistence arma los repositorios según DB_DRIVER: PostgreSQL (con migraciones)
// o el store en memoria para desarrollo y demos.
package persistence

import (
	"context"
	"fmt"

	"github.com/jhoicas/mardecortez-api/internal/application/usecase"
	"github.com/jhoicas/mardecortez-api/internal/domain/repository"
	"github.com/jhoicas/mardecortez-api/internal/infrastructure/memory"
	"github.com/jhoicas/mardecortez-api/internal/infrastructure/postgres"
	"github.com/jhoicas/mardecortez-api/pkg/config"
	"github.com/jhoicas/mardecortez-api/pkg/logger"
)

// Repositories conjunto de repositorios y el runner transaccional del registro.
type Repositories struct {
	Users                repository.UserRepository
	RegistrationRequests repository.RegistrationRequestRepository
	Categories           repository.CategoryRepository
	Products             repository.ProductRepository
	Orders               repository.OrderRepository
	Quotations           repository.QuotationRepository
	Notifications        repository.NotificationRepository
	Tx                   usecase.RegistrationTxRunner

	close func()
}

// Close libera el pool si lo hay.
func (r *Repositories) Close() {
	if r.close != nil {
		r.close()
	}
}

// Open conecta al backend configurado. Con postgres aplica las migraciones pendientes.
func Open(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*Repositories, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		log.Warn().Msg("usando store en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &Repositories{
			Users:                s.Users(),
			RegistrationRequests: s.RegistrationRequests(),
			Categories:           s.Categories(),
			Products:             s.Products(),
			Orders:               s.Orders(),
			Quotations:           s.Quotations(),
			Notifications:        s.Notifications(),
			Tx:                   memory.NewTxRunner(s),
		}, nil
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("migraciones: %w", err)
		}
		for _, name := range applied {
			log.Info().Str("migration", name).Msg("migración aplicada")
		}
		return &Repositories{
			Users:                postgres.NewUserRepository(pool),
			RegistrationRequests: postgres.NewRegistrationRequestRepository(pool),
			Categories:           postgres.NewCategoryRepository(pool),
			Products:             postgres.NewProductRepository(pool),
			Orders:               postgres.NewOrderRepository(pool),
			Quotations:           postgres.NewQuotationRepository(pool),
			Notifications:        postgres.NewNotificationRepository(pool),
			Tx:                   postgres.NewTxRunner(pool),
			close:                pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("DB_DRIVER inválido: %q", cfg.Driver)
	}
}
