package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/enkigen/enki/dialect"
	"github.com/enkigen/enki/dialect/hbm"
)

// StatementError reports the statement that failed.
type StatementError struct {
	Index     int // position among the statements of the run
	Statement string
	Err       error
}

// Error implements the error interface.
func (e *StatementError) Error() string {
	return fmt.Sprintf("dialect/sql: statement %d: %v: %s", e.Index, e.Err, e.Statement)
}

// Unwrap returns the driver error.
func (e *StatementError) Unwrap() error { return e.Err }

// Option configures Apply and Drop.
type Option func(*runner)

// WithLogger sets the logger for applied and slow statements.
func WithLogger(l *slog.Logger) Option {
	return func(r *runner) {
		if l != nil {
			r.log = l
		}
	}
}

// WithTx runs every statement in a single transaction. Databases with
// non-transactional DDL, like MySQL, commit each statement regardless.
func WithTx() Option {
	return func(r *runner) { r.tx = true }
}

// WithSlowThreshold sets the threshold for slow statement detection.
func WithSlowThreshold(d time.Duration) Option {
	return func(r *runner) { r.threshold = d }
}

// WithSlowStatementHook replaces the default slow statement log.
func WithSlowStatementHook(hook SlowStatementHook) Option {
	return func(r *runner) { r.hook = hook }
}

type runner struct {
	log       *slog.Logger
	tx        bool
	threshold time.Duration
	hook      SlowStatementHook
	stats     ExecStats
}

func newRunner(opts []Option) *runner {
	r := &runner{
		log:       slog.Default(),
		threshold: DefaultSlowThreshold,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.hook == nil {
		r.hook = slowStatementLog(r.log)
	}
	return r
}

// Scoped reports whether o applies to d. An object without scopes applies to
// every dialect.
func Scoped(o *hbm.DatabaseObject, d dialect.Dialect) bool {
	if len(o.Scopes) == 0 {
		return true
	}
	for _, class := range d.Scopes() {
		if o.Scoped(class) {
			return true
		}
	}
	return false
}

// Statements returns the create statements of the objects scoped to d, in
// document order.
func Statements(d dialect.Dialect, objects []*hbm.DatabaseObject) []string {
	var stmts []string
	for _, o := range objects {
		if Scoped(o, d) && o.Create.SQL != "" {
			stmts = append(stmts, o.Create.SQL)
		}
	}
	return stmts
}

// DropStatements returns the drop statements of the objects scoped to d, in
// reverse document order so that views go before the views they select from.
func DropStatements(d dialect.Dialect, objects []*hbm.DatabaseObject) []string {
	var stmts []string
	for _, o := range slices.Backward(objects) {
		if Scoped(o, d) && o.Drop.SQL != "" {
			stmts = append(stmts, o.Drop.SQL)
		}
	}
	return stmts
}

// Apply executes the create statements of the objects scoped to the dialect
// of drv. It stops at the first failing statement.
func Apply(ctx context.Context, drv *Driver, objects []*hbm.DatabaseObject, opts ...Option) (StatsSnapshot, error) {
	r := newRunner(opts)
	err := r.run(ctx, drv, Statements(drv.Dialect(), objects))
	return r.stats.Snapshot(), err
}

// Drop executes the drop statements of the objects scoped to the dialect of
// drv.
func Drop(ctx context.Context, drv *Driver, objects []*hbm.DatabaseObject, opts ...Option) (StatsSnapshot, error) {
	r := newRunner(opts)
	err := r.run(ctx, drv, DropStatements(drv.Dialect(), objects))
	return r.stats.Snapshot(), err
}

func (r *runner) run(ctx context.Context, drv *Driver, stmts []string) (rerr error) {
	var ex ExecQuerier = drv
	if r.tx {
		db := drv.DB()
		if db == nil {
			return errors.New("dialect/sql: transaction requested on a driver without *sql.DB")
		}
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("dialect/sql: begin transaction: %w", err)
		}
		defer func() {
			if rerr != nil {
				rerr = errors.Join(rerr, rollback(tx))
				return
			}
			if err := tx.Commit(); err != nil {
				rerr = fmt.Errorf("dialect/sql: commit: %w", err)
			}
		}()
		ex = tx
	}
	for i, stmt := range stmts {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		_, err := ex.ExecContext(ctx, stmt)
		r.stats.record(ctx, stmt, start, err, r.threshold, r.hook)
		if err != nil {
			return &StatementError{Index: i, Statement: stmt, Err: err}
		}
		r.log.DebugContext(ctx, "applied statement", "dialect", drv.Dialect().String(), "statement", stmt)
	}
	r.log.InfoContext(ctx, "applied database objects", "dialect", drv.Dialect().String(), "statements", len(stmts))
	return nil
}

func rollback(tx *sql.Tx) error {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("dialect/sql: rollback: %w", err)
	}
	return nil
}
