package gen

import (
	"fmt"

	"github.com/enkigen/enki/dialect"
	"github.com/enkigen/enki/dialect/hbm"
)

// indexedColumn is a foreign key column that receives an index.
type indexedColumn struct {
	table, column string
}

// indexObjects returns one database object per indexed column and dialect.
// Each object is scoped to the Hibernate dialects of its SQL dialect, so a
// deployment on any other database skips it. Repeated columns are indexed
// once; two columns whose truncated index names coincide are an error.
func indexObjects(cols []indexedColumn, n *Names, dialects []dialect.Dialect) ([]*hbm.DatabaseObject, error) {
	if err := checkDialects(dialects); err != nil {
		return nil, err
	}
	var (
		objs []*hbm.DatabaseObject
		seen = make(map[string]indexedColumn, len(cols))
	)
	for _, c := range cols {
		name := n.Index(c.table, c.column)
		if prev, ok := seen[name]; ok {
			if prev == c {
				continue
			}
			return nil, NewSchemaError(c.table, c.column,
				fmt.Sprintf("index %q of %s.%s collides with %s.%s", name, c.table, c.column, prev.table, prev.column), nil)
		}
		seen[name] = c
		for _, d := range dialects {
			objs = append(objs, databaseObject(d,
				d.CreateIndex(name, c.table, c.column),
				d.DropIndex(name, c.table),
			))
		}
	}
	return objs, nil
}

func checkDialects(dialects []dialect.Dialect) error {
	if len(dialects) == 0 {
		return NewConfigError("dialects", nil, "at least one dialect is required")
	}
	for _, d := range dialects {
		if !d.Valid() {
			return NewDialectError(d.String(), "not in the dialect table", dialect.ErrUnsupported)
		}
	}
	return nil
}

func databaseObject(d dialect.Dialect, create, drop string) *hbm.DatabaseObject {
	obj := &hbm.DatabaseObject{
		Create: hbm.Statement{SQL: create},
		Drop:   hbm.Statement{SQL: drop},
	}
	for _, s := range d.Scopes() {
		obj.Scopes = append(obj.Scopes, &hbm.DialectScope{Name: s})
	}
	return obj
}
