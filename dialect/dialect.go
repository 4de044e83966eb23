package dialect

import (
	"errors"
	"fmt"
	"strings"
)

// Dialect identifies a supported SQL dialect.
type Dialect uint8

// Supported dialects, in the order their DDL is emitted.
const (
	MySQL Dialect = iota + 1
	HSQLDB
	PostgreSQL
	SQLite
)

// MofIDPlaceholder marks where the id column goes in a MOF id template.
const MofIDPlaceholder = "{mofId}"

// MappingQuote is the quote Hibernate understands in mapping documents.
const MappingQuote = "`"

// ErrUnsupported is returned for dialects missing from the table.
var ErrUnsupported = errors.New("dialect: unsupported dialect")

// row is one entry of the dialect table.
type row struct {
	name    string
	aliases []string
	// open and close identifier quotes.
	quote [2]string
	// mofID converts a numeric id column into "j:" plus 16 lowercase hex
	// digits. Empty means views cannot be generated for the dialect.
	mofID string
	// dropIndex uses {index} and {table}.
	dropIndex string
	// scopes are the Hibernate dialect classes a database-object is
	// restricted to.
	scopes []string
	driver string
}

var table = [...]row{
	MySQL: {
		name:      "mysql",
		aliases:   []string{"mariadb"},
		quote:     [2]string{"`", "`"},
		mofID:     "CONCAT('j:', LPAD(LOWER(HEX({mofId})), 16, '0'))",
		dropIndex: "DROP INDEX {index} ON {table}",
		scopes: []string{
			"org.hibernate.dialect.MySQLDialect",
			"org.hibernate.dialect.MySQLInnoDBDialect",
			"org.hibernate.dialect.MySQLMyISAMDialect",
		},
		driver: "mysql",
	},
	HSQLDB: {
		name:      "hsqldb",
		aliases:   []string{"hsql"},
		quote:     [2]string{`"`, `"`},
		mofID:     "'j:' || LPAD(LOWER(RAWTOHEX({mofId})), 16, '0')",
		dropIndex: "DROP INDEX {index}",
		scopes:    []string{"org.hibernate.dialect.HSQLDialect"},
	},
	PostgreSQL: {
		name:      "postgres",
		aliases:   []string{"postgresql", "pgx"},
		quote:     [2]string{`"`, `"`},
		mofID:     "'j:' || LPAD(TO_HEX({mofId}), 16, '0')",
		dropIndex: "DROP INDEX {index}",
		scopes:    []string{"org.hibernate.dialect.PostgreSQLDialect"},
		driver:    "postgres",
	},
	SQLite: {
		name:      "sqlite",
		aliases:   []string{"sqlite3"},
		quote:     [2]string{`"`, `"`},
		// printf renders NULL as zero; outer-joined ids must stay NULL.
		mofID:     "CASE WHEN {mofId} IS NULL THEN NULL ELSE 'j:' || printf('%016x', {mofId}) END",
		dropIndex: "DROP INDEX {index}",
		scopes:    []string{"org.hibernate.community.dialect.SQLiteDialect"},
		driver:    "sqlite",
	},
}

// All returns every supported dialect in table order.
func All() []Dialect {
	out := make([]Dialect, 0, len(table)-1)
	for d := range table {
		if table[d].name != "" {
			out = append(out, Dialect(d))
		}
	}
	return out
}

// Parse returns the dialect with the given name or alias.
func Parse(s string) (Dialect, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, d := range All() {
		r := table[d]
		if r.name == s {
			return d, nil
		}
		for _, a := range r.aliases {
			if a == s {
				return d, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupported, s)
}

// FromScope returns the dialect owning the given Hibernate dialect class.
func FromScope(class string) (Dialect, bool) {
	for _, d := range All() {
		for _, s := range table[d].scopes {
			if s == class {
				return d, true
			}
		}
	}
	return 0, false
}

func (d Dialect) row() (row, error) {
	if int(d) >= len(table) || table[d].name == "" {
		return row{}, fmt.Errorf("%w: %d", ErrUnsupported, d)
	}
	return table[d], nil
}

// Valid reports whether d is a row of the dialect table.
func (d Dialect) Valid() bool {
	_, err := d.row()
	return err == nil
}

// String returns the canonical dialect name.
func (d Dialect) String() string {
	r, err := d.row()
	if err != nil {
		return fmt.Sprintf("Dialect(%d)", d)
	}
	return r.name
}

// Quote wraps an identifier in the native quote pair of the dialect.
func (d Dialect) Quote(ident string) string {
	r, err := d.row()
	if err != nil {
		return ident
	}
	return r.quote[0] + ident + r.quote[1]
}

// MofIDExpr returns the SQL expression converting the numeric id held in
// column into the external MOF id string.
func (d Dialect) MofIDExpr(column string) (string, error) {
	r, err := d.row()
	if err != nil {
		return "", err
	}
	if r.mofID == "" {
		return "", fmt.Errorf("%w: no MOF id conversion for %s", ErrUnsupported, r.name)
	}
	return strings.ReplaceAll(r.mofID, MofIDPlaceholder, column), nil
}

// CreateIndex returns the statement creating a single-column index.
func (d Dialect) CreateIndex(index, tbl, column string) string {
	return fmt.Sprintf("CREATE INDEX %s ON %s (%s)", d.Quote(index), d.Quote(tbl), d.Quote(column))
}

// DropIndex returns the statement dropping an index created by CreateIndex.
func (d Dialect) DropIndex(index, tbl string) string {
	r, err := d.row()
	if err != nil {
		return ""
	}
	return strings.NewReplacer("{index}", d.Quote(index), "{table}", d.Quote(tbl)).Replace(r.dropIndex)
}

// CreateView returns the statement creating view name from a SELECT.
func (d Dialect) CreateView(name, query string) string {
	return fmt.Sprintf("CREATE VIEW %s AS %s", d.Quote(name), query)
}

// DropView returns the statement dropping view name.
func (d Dialect) DropView(name string) string {
	return "DROP VIEW " + d.Quote(name)
}

// Scopes returns the Hibernate dialect classes of d.
func (d Dialect) Scopes() []string {
	r, err := d.row()
	if err != nil {
		return nil
	}
	return append([]string(nil), r.scopes...)
}

// Driver returns the database/sql driver name, or "" when no Go driver is
// registered for the dialect.
func (d Dialect) Driver() string {
	r, err := d.row()
	if err != nil {
		return ""
	}
	return r.driver
}
