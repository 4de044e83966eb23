// Package sql applies generated database objects to a live database.
//
// The index and view DDL that Enki writes into indexes.hbm.xml is normally
// executed by Hibernate at schema creation. This package runs the same
// statements directly through database/sql, picking the create (or drop)
// statement of every object scoped to the target dialect:
//
//	drv, err := sql.Open(dialect.PostgreSQL, dsn)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer drv.Close()
//	stats, err := sql.Apply(ctx, drv, arts.Indexes.DatabaseObjects)
//
// Objects without any dialect scope apply to every dialect. Statements run in
// document order and the first failure stops the run.
package sql
