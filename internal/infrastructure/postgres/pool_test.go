package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPv4Resolver_Literales(t *testing.T) {
	r := ipv4Resolver{}
	ctx := context.Background()

	ip, err := r.lookup(ctx, "10.0.0.7")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.7", ip)

	_, err = r.lookup(ctx, "::1")
	assert.Error(t, err)
}

func TestIPv4Resolver_RewriteDSN(t *testing.T) {
	r := ipv4Resolver{}
	ctx := context.Background()

	assert.Equal(t,
		"postgres://u:p@127.0.0.1:5432/mdc?sslmode=disable",
		r.rewriteDSN(ctx, "postgres://u:p@127.0.0.1/mdc?sslmode=disable"),
		"agrega el puerto por defecto")
	assert.Equal(t,
		"postgres://u:p@[::1]:6543/mdc",
		r.rewriteDSN(ctx, "postgres://u:p@[::1]:6543/mdc"),
		"sin IPv4 el DSN queda igual")
	assert.Equal(t, "host=db user=u", r.rewriteDSN(ctx, "host=db user=u"))
}
