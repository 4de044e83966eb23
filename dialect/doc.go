// Package dialect describes the SQL dialects for which Enki renders raw DDL.
//
// Every dialect is a row in a single lookup table. A row carries the
// identifier quote pair, the expression that converts a numeric MOF id into
// its external "j:<16 hex digits>" form, the form of DROP INDEX, the Hibernate
// dialect classes used as dialect scopes and the database/sql driver name.
// Supporting a new database means adding a row, not a branch.
//
// # Supported Dialects
//
//   - MySQL: MySQL/MariaDB
//   - HSQLDB: HyperSQL
//   - PostgreSQL: PostgreSQL
//   - SQLite: SQLite
//
// # Usage
//
//	d, err := dialect.Parse("postgres")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	expr, err := d.MofIDExpr("t.mofId")
//
// The mapping file itself always quotes with backticks (see MappingQuote);
// Hibernate replaces them with the native quote of the configured dialect.
package dialect
