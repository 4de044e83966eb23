package sql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/enkigen/enki/dialect"
)

// ExecQuerier wraps the standard Exec and Query methods.
type ExecQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Driver is a database connection bound to one dialect.
type Driver struct {
	ExecQuerier
	dialect dialect.Dialect
}

// NewDriver creates a new Driver with the given dialect and connection.
func NewDriver(d dialect.Dialect, c ExecQuerier) *Driver {
	return &Driver{ExecQuerier: c, dialect: d}
}

// Open opens a database with the database/sql driver registered for d. The
// driver package must be imported by the caller.
func Open(d dialect.Dialect, source string) (*Driver, error) {
	name := d.Driver()
	if name == "" {
		return nil, fmt.Errorf("dialect/sql: no database/sql driver for %s: %w", d, dialect.ErrUnsupported)
	}
	db, err := sql.Open(name, source)
	if err != nil {
		return nil, err
	}
	return NewDriver(d, db), nil
}

// OpenDB wraps the given database/sql.DB with a Driver.
func OpenDB(d dialect.Dialect, db *sql.DB) *Driver {
	return NewDriver(d, db)
}

// DB returns the underlying *sql.DB instance, or nil when the driver wraps a
// transaction.
func (d *Driver) DB() *sql.DB {
	db, _ := d.ExecQuerier.(*sql.DB)
	return db
}

// Dialect returns the dialect the driver renders statements for.
func (d *Driver) Dialect() dialect.Dialect { return d.dialect }

// Close closes the underlying connection.
func (d *Driver) Close() error {
	if db := d.DB(); db != nil {
		return db.Close()
	}
	return nil
}
