//go:build integration

package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adfinis/poweradmin-api/internal/core"
	"github.com/adfinis/poweradmin-api/internal/model"
	"github.com/adfinis/poweradmin-api/internal/testutil/containers"
)

const (
	userA int64 = 1
	userB int64 = 2
)

func countRows(t *testing.T, pg *containers.PostgresContainer, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, pg.Pool.QueryRow(context.Background(), query, args...).Scan(&n))
	return n
}

func TestIntegration_OwnershipWorkflow(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	ctx := context.Background()

	t.Run("domain create links creator", func(t *testing.T) {
		pg.Truncate(t)
		svc := core.NewServices(pg.Pool, "", "")

		d := &model.Domain{Name: "example.com"}
		require.NoError(t, svc.Domain.Create(ctx, userA, d))

		assert.Equal(t, model.DomainTypeNative, d.Type)
		assert.Equal(t, 1, countRows(t, pg,
			`SELECT count(*) FROM zones WHERE domain_id = $1 AND owner = $2 AND zone_templ_id = 0`, d.ID, userA))

		z, err := svc.Zone.GetByDomain(ctx, userA, "example.com")
		require.NoError(t, err)
		assert.Equal(t, userA, z.Owner)
	})

	t.Run("duplicate domain leaves no extra rows", func(t *testing.T) {
		pg.Truncate(t)
		svc := core.NewServices(pg.Pool, "", "")

		require.NoError(t, svc.Domain.Create(ctx, userA, &model.Domain{Name: "example.com"}))
		err := svc.Domain.Create(ctx, userB, &model.Domain{Name: "example.com"})

		var verr *core.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "name", verr.Field)
		assert.Equal(t, 1, countRows(t, pg, `SELECT count(*) FROM domains`))
		assert.Equal(t, 1, countRows(t, pg, `SELECT count(*) FROM zones`))
	})

	t.Run("zone failure rolls back domain", func(t *testing.T) {
		pg.Truncate(t)
		svc := core.NewServices(pg.Pool, "", "")

		_, err := pg.Pool.Exec(ctx, `ALTER TABLE zones ADD CONSTRAINT owner_positive CHECK (owner > 0)`)
		require.NoError(t, err)
		t.Cleanup(func() {
			_, _ = pg.Pool.Exec(context.Background(), `ALTER TABLE zones DROP CONSTRAINT owner_positive`)
		})

		err = svc.Domain.Create(ctx, -1, &model.Domain{Name: "rollback.example"})
		require.Error(t, err)
		assert.Equal(t, 0, countRows(t, pg, `SELECT count(*) FROM domains WHERE name = 'rollback.example'`))
	})

	t.Run("record ownership", func(t *testing.T) {
		pg.Truncate(t)
		svc := core.NewServices(pg.Pool, "", "")

		require.NoError(t, svc.Domain.Create(ctx, userA, &model.Domain{Name: "example.com"}))

		r := &model.Record{Domain: "example.com", Name: "www.example.com", Type: "A", Content: "192.0.2.1"}
		require.NoError(t, svc.Record.Create(ctx, userA, r))
		assert.NotZero(t, r.ID)
		assert.Equal(t, model.DefaultRecordTTL, r.TTL)

		foreign := &model.Record{Domain: "example.com", Name: "x.example.com", Type: "A", Content: "192.0.2.2"}
		assert.ErrorIs(t, svc.Record.Create(ctx, userB, foreign), core.ErrPermissionDenied)

		missing := &model.Record{Domain: "nope.example", Name: "nope.example", Type: "A", Content: "192.0.2.3"}
		var verr *core.ValidationError
		require.True(t, errors.As(svc.Record.Create(ctx, userA, missing), &verr))
		assert.Equal(t, "domain", verr.Field)

		assert.Equal(t, 1, countRows(t, pg, `SELECT count(*) FROM records`))

		r.Content = "192.0.2.10"
		require.NoError(t, svc.Record.Update(ctx, userA, r))
		got, err := svc.Record.GetByID(ctx, userA, r.ID)
		require.NoError(t, err)
		assert.Equal(t, "192.0.2.10", got.Content)

		_, err = svc.Record.GetByID(ctx, userB, r.ID)
		assert.ErrorIs(t, err, core.ErrPermissionDenied)
	})

	t.Run("lists are owner scoped", func(t *testing.T) {
		pg.Truncate(t)
		svc := core.NewServices(pg.Pool, "", "")

		for _, name := range []string{"a.example", "b.example", "c.example"} {
			require.NoError(t, svc.Domain.Create(ctx, userA, &model.Domain{Name: name}))
		}
		require.NoError(t, svc.Domain.Create(ctx, userB, &model.Domain{Name: "other.example"}))

		page, hasMore, err := svc.Domain.ListByOwner(ctx, userA, 2, "")
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.True(t, hasMore)

		rest, hasMore, err := svc.Domain.ListByOwner(ctx, userA, 2, page[1].Name)
		require.NoError(t, err)
		require.Len(t, rest, 1)
		assert.Equal(t, "c.example", rest[0].Name)
		assert.False(t, hasMore)

		zones, _, err := svc.Zone.ListByOwner(ctx, userB, 50, 0)
		require.NoError(t, err)
		require.Len(t, zones, 1)
		assert.Equal(t, "other.example", zones[0].Domain)
	})
}
