package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mardecortez-api/internal/domain"
	"github.com/jhoicas/mardecortez-api/internal/domain/entity"
)

// fakeQuerier responde con un CommandTag fijo y una fila fija; guarda el SQL recibido.
type fakeQuerier struct {
	tag   pgconn.CommandTag
	row   fakeRow
	execs []string
	args  [][]any
}

func (f *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, sql)
	f.args = append(f.args, args)
	return f.tag, nil
}

func (f *fakeQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	panic("no usado")
}

func (f *fakeQuerier) QueryRow(context.Context, string, ...any) pgx.Row { return f.row }

type fakeRow struct {
	vals []any
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *bool:
			*p = r.vals[i].(bool)
		case *string:
			*p = r.vals[i].(string)
		}
	}
	return nil
}

func TestOrderRepoDelete_CondicionadoACancelada(t *testing.T) {
	ctx := context.Background()

	q := &fakeQuerier{tag: pgconn.NewCommandTag("DELETE 0"), row: fakeRow{vals: []any{true}}}
	err := NewOrderRepository(q).Delete(ctx, "o1")
	assert.ErrorIs(t, err, domain.ErrOrderNotCancelled)
	require.NotEmpty(t, q.execs)
	assert.Contains(t, q.execs[0], "AND status = $2")
	assert.Equal(t, entity.OrderCancelled, q.args[0][1])

	q = &fakeQuerier{tag: pgconn.NewCommandTag("DELETE 0"), row: fakeRow{vals: []any{false}}}
	assert.ErrorIs(t, NewOrderRepository(q).Delete(ctx, "nada"), domain.ErrNotFound)

	q = &fakeQuerier{tag: pgconn.NewCommandTag("DELETE 1")}
	assert.NoError(t, NewOrderRepository(q).Delete(ctx, "o1"))
}

func TestOrderRepoClaim_DistingueCausaDelRechazo(t *testing.T) {
	ctx := context.Background()
	o := &entity.Order{ID: "o1", SupplierID: "s1", Status: entity.OrderReceived}

	q := &fakeQuerier{tag: pgconn.NewCommandTag("UPDATE 0"), row: fakeRow{vals: []any{false, entity.OrderCancelled}}}
	assert.ErrorIs(t, NewOrderRepository(q).Claim(ctx, o), domain.ErrOrderClosed)
	require.NotEmpty(t, q.execs)
	assert.Contains(t, q.execs[0], "status NOT IN ($8, $9)")

	q = &fakeQuerier{tag: pgconn.NewCommandTag("UPDATE 0"), row: fakeRow{vals: []any{true, entity.OrderReceived}}}
	assert.ErrorIs(t, NewOrderRepository(q).Claim(ctx, o), domain.ErrOrderAlreadyClaimed)

	q = &fakeQuerier{tag: pgconn.NewCommandTag("UPDATE 0"), row: fakeRow{err: pgx.ErrNoRows}}
	assert.ErrorIs(t, NewOrderRepository(q).Claim(ctx, o), domain.ErrNotFound)

	q = &fakeQuerier{tag: pgconn.NewCommandTag("UPDATE 1")}
	assert.NoError(t, NewOrderRepository(q).Claim(ctx, o))
}
