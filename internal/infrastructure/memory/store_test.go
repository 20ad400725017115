package memory_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mardecortez-api/internal/domain"
	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
	"github.com/jhoicas/mardecortez-api/internal/domain/repository"
	"github.com/jhoicas/mardecortez-api/internal/infrastructure/memory"
)

func TestOrderRepo_ClaimSoloUnGanador(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	orders := s.Orders()
	require.NoError(t, orders.Create(ctx, &entity.Order{ID: "o1", ClientID: "c1", Status: entity.OrderPending, CreatedAt: time.Now()}))

	const suppliers = 20
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners []string
		losers  int
	)
	for i := 0; i < suppliers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s%d", i)
			err := orders.Claim(ctx, &entity.Order{ID: "o1", SupplierID: id, Status: entity.OrderReceived})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				winners = append(winners, id)
			case errors.Is(err, domain.ErrOrderAlreadyClaimed):
				losers++
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}(i)
	}
	wg.Wait()

	require.Len(t, winners, 1)
	assert.Equal(t, suppliers-1, losers)
	got, err := orders.GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, winners[0], got.SupplierID)
	assert.Equal(t, entity.OrderReceived, got.Status)
}

func TestOrderRepo_ClaimInexistente(t *testing.T) {
	err := memory.NewStore().Orders().Claim(context.Background(), &entity.Order{ID: "nada", SupplierID: "s1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTxRunner_RollbackRestauraTablas(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	req := &entity.RegistrationRequest{ID: "r1", Email: "barco@mar.test", Status: entity.RequestPending, CreatedAt: time.Now()}
	require.NoError(t, s.RegistrationRequests().Create(ctx, req))

	boom := errors.New("falla a mitad de la transacción")
	err := memory.NewTxRunner(s).RunRegistration(ctx, func(users repository.UserRepository, requests repository.RegistrationRequestRepository) error {
		require.NoError(t, users.Create(ctx, &entity.User{ID: "u1", Email: "barco@mar.test", Role: entity.RoleCliente}))
		now := time.Now()
		require.NoError(t, requests.UpdateStatus(ctx, &entity.RegistrationRequest{
			ID: "r1", Status: entity.RequestApproved, ProcessedBy: "admin", ProcessedAt: &now,
		}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	u, err := s.Users().GetByEmail(ctx, "barco@mar.test")
	require.NoError(t, err)
	assert.Nil(t, u, "el usuario no debe persistir")

	got, err := s.RegistrationRequests().GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, entity.RequestPending, got.Status)
}

func TestRegistrationRequestRepo_UnaPendientePorEmail(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().RegistrationRequests()
	require.NoError(t, repo.Create(ctx, &entity.RegistrationRequest{ID: "r1", Email: "a@mar.test", Status: entity.RequestPending}))
	err := repo.Create(ctx, &entity.RegistrationRequest{ID: "r2", Email: "A@MAR.test", Status: entity.RequestPending})
	assert.ErrorIs(t, err, domain.ErrPendingRequest)
}

func TestTxRunner_RollbackNoPisaEscriturasAjenas(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.RegistrationRequests().Create(ctx, &entity.RegistrationRequest{
		ID: "r1", Email: "barco@mar.test", Status: entity.RequestPending, CreatedAt: time.Now(),
	}))

	err := memory.NewTxRunner(s).RunRegistration(ctx, func(users repository.UserRepository, requests repository.RegistrationRequestRepository) error {
		require.NoError(t, users.Create(ctx, &entity.User{ID: "u1", Email: "barco@mar.test", Role: entity.RoleCliente}))

		// Otra escritura entra fuera de la transacción mientras fn está en curso.
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Users().Create(ctx, &entity.User{ID: "u-other", Email: "otro@mar.test", Role: entity.RoleProveedor}))
			now := time.Now()
			assert.NoError(t, s.RegistrationRequests().UpdateStatus(ctx, &entity.RegistrationRequest{
				ID: "r1", Status: entity.RequestRejected, ProcessedBy: "admin-2", ProcessedAt: &now,
			}))
		}()
		wg.Wait()

		now := time.Now()
		return requests.UpdateStatus(ctx, &entity.RegistrationRequest{
			ID: "r1", Status: entity.RequestApproved, ProcessedBy: "admin", ProcessedAt: &now,
		})
	})
	require.ErrorIs(t, err, domain.ErrRequestProcessed)

	other, err := s.Users().GetByID(ctx, "u-other")
	require.NoError(t, err)
	assert.NotNil(t, other, "la escritura concurrente debe sobrevivir al rollback")

	u1, err := s.Users().GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, u1)

	got, err := s.RegistrationRequests().GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, entity.RequestRejected, got.Status)
	assert.Equal(t, "admin-2", got.ProcessedBy)
}

func TestTxRunner_ContextoCancelado(t *testing.T) {
	s := memory.NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := memory.NewTxRunner(s).RunRegistration(ctx, func(repository.UserRepository, repository.RegistrationRequestRepository) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called, "fn no debe ejecutarse con el contexto cancelado")
}

func TestTxRunner_ExitoConfirmaSinError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := memory.NewStore()
	err := memory.NewTxRunner(s).RunRegistration(ctx, func(users repository.UserRepository, _ repository.RegistrationRequestRepository) error {
		require.NoError(t, users.Create(ctx, &entity.User{ID: "u1", Email: "a@mar.test", Role: entity.RoleCliente}))
		cancel()
		return nil
	})
	require.NoError(t, err, "fn ya confirmó; el runner no debe reportar fallo")

	u, err := s.Users().GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, u)
}

func TestOrderRepo_DeleteSoloCanceladas(t *testing.T) {
	ctx := context.Background()
	orders := memory.NewStore().Orders()
	require.NoError(t, orders.Create(ctx, &entity.Order{ID: "o1", ClientID: "c1", Status: entity.OrderPending, CreatedAt: time.Now()}))
	require.NoError(t, orders.Create(ctx, &entity.Order{ID: "o2", ClientID: "c1", Status: entity.OrderCancelled, CreatedAt: time.Now()}))

	assert.ErrorIs(t, orders.Delete(ctx, "o1"), domain.ErrOrderNotCancelled)
	got, err := orders.GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.NotNil(t, got)

	require.NoError(t, orders.Delete(ctx, "o2"))
	assert.ErrorIs(t, orders.Delete(ctx, "o2"), domain.ErrNotFound)
}

func TestOrderRepo_ClaimOrdenCerrada(t *testing.T) {
	ctx := context.Background()
	orders := memory.NewStore().Orders()
	for id, status := range map[string]string{"o1": entity.OrderCancelled, "o2": entity.OrderCompleted} {
		require.NoError(t, orders.Create(ctx, &entity.Order{ID: id, ClientID: "c1", Status: status, CreatedAt: time.Now()}))
		err := orders.Claim(ctx, &entity.Order{ID: id, SupplierID: "s1", Status: entity.OrderReceived})
		assert.ErrorIs(t, err, domain.ErrOrderClosed, id)

		got, err := orders.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, status, got.Status)
		assert.Empty(t, got.SupplierID)
	}
}
