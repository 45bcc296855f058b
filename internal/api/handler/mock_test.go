package handler

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"

	"github.com/adfinis/poweradmin-api/internal/core"
)

// handlerMockDB implements core.DB for handler tests.
type handlerMockDB struct {
	mock.Mock
}

func (m *handlerMockDB) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgconn.CommandTag), args.Error(1)
}

func (m *handlerMockDB) Query(ctx context.Context, sql string, arguments ...any) (pgx.Rows, error) {
	args := m.Called(ctx, sql, arguments)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Rows), args.Error(1)
}

func (m *handlerMockDB) QueryRow(ctx context.Context, sql string, arguments ...any) pgx.Row {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgx.Row)
}

func (m *handlerMockDB) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

// handlerMockTx routes statements to the parent mock so a test can set all
// expectations in one place.
type handlerMockTx struct {
	pgx.Tx
	db     *handlerMockDB
	closed bool
}

func (t *handlerMockTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return t.db.Exec(ctx, sql, arguments...)
}

func (t *handlerMockTx) QueryRow(ctx context.Context, sql string, arguments ...any) pgx.Row {
	return t.db.QueryRow(ctx, sql, arguments...)
}

func (t *handlerMockTx) Commit(ctx context.Context) error {
	if t.closed {
		return pgx.ErrTxClosed
	}
	t.closed = true
	return nil
}

func (t *handlerMockTx) Rollback(ctx context.Context) error {
	if t.closed {
		return pgx.ErrTxClosed
	}
	t.closed = true
	return nil
}

type scanRow struct {
	scan func(dest ...any) error
}

func (r scanRow) Scan(dest ...any) error { return r.scan(dest...) }

func errRow(err error) scanRow {
	return scanRow{scan: func(...any) error { return err }}
}

func existsRow(v bool) scanRow {
	return scanRow{scan: func(dest ...any) error {
		*(dest[0].(*bool)) = v
		return nil
	}}
}

func idRow(id int64) scanRow {
	return scanRow{scan: func(dest ...any) error {
		*(dest[0].(*int64)) = id
		return nil
	}}
}

func domainRow(id int64, name, typ string) scanRow {
	return scanRow{scan: func(dest ...any) error {
		*(dest[0].(*int64)) = id
		*(dest[1].(*string)) = name
		*(dest[2].(*string)) = typ
		return nil
	}}
}

// sliceRows yields one scan function per row.
type sliceRows struct {
	pgx.Rows
	scans []func(dest ...any) error
	i     int
}

func (r *sliceRows) Next() bool { return r.i < len(r.scans) }
func (r *sliceRows) Scan(dest ...any) error {
	fn := r.scans[r.i]
	r.i++
	return fn(dest...)
}
func (r *sliceRows) Err() error { return nil }
func (r *sliceRows) Close()     {}

func sqlContaining(fragment string) any {
	return mock.MatchedBy(func(sql string) bool {
		return strings.Contains(sql, fragment)
	})
}

func newTestServices(db *handlerMockDB) *core.Services {
	return core.NewServices(db, "0123456789abcdef0123456789abcdef", "poweradmin-api")
}

var errDBDown = errors.New("connection refused")

const (
	sqlLookupDomain = "FROM domains WHERE name = $1"
	sqlOwnership    = "SELECT EXISTS (SELECT 1 FROM zones"
	sqlInsertDomain = "INSERT INTO domains"
	sqlInsertZone   = "INSERT INTO zones"
	sqlInsertRecord = "INSERT INTO records"
	sqlUpdateRecord = "UPDATE records"
	sqlGetRecord    = "WHERE r.id = $1"
)
