package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mardecortez-api/internal/application/dto"
	"github.com/jhoicas/mardecortez-api/internal/domain"
	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
)

func validRequest() dto.CreateRegistrationRequest {
	return dto.CreateRegistrationRequest{
		BoatName:    "La Perla",
		CaptainName: "Juan Ruiz",
		Phone:       "612 555 0101",
		Email:       "Juan@LaPerla.mx",
	}
}

func TestRegistrationCreate_Pendiente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.registration.Create(ctx, validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)

	list, err := f.registration.List(ctx, entity.RequestPending)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "juan@laperla.mx", list[0].Email)

	_, err = f.registration.Create(ctx, validRequest())
	assert.ErrorIs(t, err, domain.ErrPendingRequest)
}

func TestRegistrationCreate_EmailDeUsuarioExistente(t *testing.T) {
	f := newFixture(t)
	f.user(t, "juan@laperla.mx", "Juan", entity.RoleCliente)
	_, err := f.registration.Create(context.Background(), validRequest())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegistrationCreate_CamposRequeridos(t *testing.T) {
	f := newFixture(t)
	in := validRequest()
	in.Phone = " "
	_, err := f.registration.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.registration.List(context.Background(), "otro")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegistrationApprove_ValoresPorDefecto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.user(t, "admin@mdc.mx", "Admin", entity.RoleAdmin)
	req, err := f.registration.Create(ctx, validRequest())
	require.NoError(t, err)

	out, err := f.registration.Approve(ctx, admin.UserID, req.ID, dto.ApproveRegistrationRequest{
		Role: entity.RoleCliente, Password: "secreto",
	})
	require.NoError(t, err)
	assert.Equal(t, "juan@laperla.mx", out.User.Email)
	assert.Equal(t, "Juan Ruiz", out.User.Name)
	assert.Equal(t, "La Perla", out.User.Company)
	assert.Equal(t, entity.RoleCliente, out.User.Role)

	stored, err := f.store.RegistrationRequests().GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestApproved, stored.Status)
	assert.Equal(t, admin.UserID, stored.ProcessedBy)
	assert.NotNil(t, stored.ProcessedAt)

	_, err = f.registration.Approve(ctx, admin.UserID, req.ID, dto.ApproveRegistrationRequest{Role: entity.RoleCliente, Password: "secreto"})
	assert.ErrorIs(t, err, domain.ErrRequestProcessed)
	assert.ErrorIs(t, f.registration.Reject(ctx, admin.UserID, req.ID), domain.ErrRequestProcessed)
}

func TestRegistrationApprove_SobrescribeDatos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req, err := f.registration.Create(ctx, validRequest())
	require.NoError(t, err)

	out, err := f.registration.Approve(ctx, "admin", req.ID, dto.ApproveRegistrationRequest{
		Email: "capitan@perla.mx", Name: "Capitán Juan", Company: "Perla II",
		Role: entity.RoleProveedor, Password: "secreto",
	})
	require.NoError(t, err)
	assert.Equal(t, "capitan@perla.mx", out.User.Email)
	assert.Equal(t, "Capitán Juan", out.User.Name)
	assert.Equal(t, "Perla II", out.User.Company)
	assert.Equal(t, entity.RoleProveedor, out.User.Role)
}

func TestRegistrationApprove_RequiereRolYPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req, err := f.registration.Create(ctx, validRequest())
	require.NoError(t, err)

	_, err = f.registration.Approve(ctx, "admin", req.ID, dto.ApproveRegistrationRequest{Password: "secreto"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.registration.Approve(ctx, "admin", req.ID, dto.ApproveRegistrationRequest{Role: entity.RoleCliente})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.registration.Approve(ctx, "admin", "no-existe", dto.ApproveRegistrationRequest{Role: entity.RoleCliente, Password: "secreto"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegistrationApprove_EmailOcupadoNoDejaRastro(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req, err := f.registration.Create(ctx, validRequest())
	require.NoError(t, err)
	f.user(t, "ocupado@mdc.mx", "Ocupado", entity.RoleCliente)

	_, err = f.registration.Approve(ctx, "admin", req.ID, dto.ApproveRegistrationRequest{
		Email: "ocupado@mdc.mx", Role: entity.RoleCliente, Password: "secreto",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	stored, err := f.store.RegistrationRequests().GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestPending, stored.Status)
	n, err := f.store.Users().Count(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRegistrationReject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req, err := f.registration.Create(ctx, validRequest())
	require.NoError(t, err)

	require.NoError(t, f.registration.Reject(ctx, "admin", req.ID))
	list, err := f.registration.List(ctx, entity.RequestRejected)
	require.NoError(t, err)
	require.Len(t, list, 1)

	n, err := f.store.Users().Count(ctx, "")
	require.NoError(t, err)
	assert.Zero(t, n, "rechazar no crea usuario")

	// Tras el rechazo el mismo email puede volver a solicitar.
	_, err = f.registration.Create(ctx, validRequest())
	assert.NoError(t, err)
}
