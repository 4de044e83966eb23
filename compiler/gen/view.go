package gen

import (
	"fmt"
	"strings"

	"github.com/enkigen/enki/dialect"
	"github.com/enkigen/enki/dialect/hbm"
	"github.com/enkigen/enki/metamodel"
)

// classView collects what the VC_ view of a class projects.
type classView struct {
	table   string
	columns []string
	joins   []viewJoin
}

// viewJoin is a single-valued association target resolved through the link
// row of its archetype table.
type viewJoin struct {
	field  string
	table  string
	column string
}

// viewJoin returns the join resolving r, if the referenced end is single.
func (e *emitter) viewJoin(r ReferenceInfo) (viewJoin, bool) {
	ref := r.ReferencedEnd()
	if !r.IsSingle(ref) || r.Archetype().ManyToMany() {
		return viewJoin{}, false
	}
	l := layoutOf(r.Archetype())
	column := l.otherIDCol
	if ref == r.ParentEnd() {
		column = l.idCol
	}
	return viewJoin{field: r.FieldName(), table: e.names.ArchetypeTable(r.Archetype(), ""), column: column}, true
}

// viewObjects returns the VC_ view of every mapped class followed by the
// VT_ view of every generated class.
func (e *emitter) viewObjects() ([]*hbm.DatabaseObject, error) {
	var objs []*hbm.DatabaseObject
	for _, c := range e.mapped {
		name := e.names.ClassView(c)
		for _, d := range e.cfg.Dialects {
			query, err := classViewQuery(d, e.views[c])
			if err != nil {
				return nil, NewDialectError(d.String(), "cannot build view "+name, err)
			}
			objs = append(objs, databaseObject(d, d.CreateView(name, query), d.DropView(name)))
		}
	}
	for _, c := range e.model.Classes() {
		if !e.cfg.generated(c) {
			continue
		}
		var subs []string
		for _, s := range e.model.ConcreteSubtypes(c) {
			if _, ok := e.views[s]; ok {
				subs = append(subs, e.names.ClassView(s))
			}
		}
		if len(subs) == 0 {
			return nil, NewSchemaError(c.QualifiedName(), "", "cannot build a type view: no concrete subtypes", nil)
		}
		name := e.names.TypeView(c)
		columns := plainColumns(c)
		for _, d := range e.cfg.Dialects {
			objs = append(objs, databaseObject(d, d.CreateView(name, typeViewQuery(d, subs, columns)), d.DropView(name)))
		}
	}
	return objs, nil
}

// classViewQuery projects the converted MOF id, the plain columns of the
// class and the MOF ids of its single-valued association targets.
func classViewQuery(d dialect.Dialect, v *classView) (string, error) {
	id, err := d.MofIDExpr("t." + d.Quote(idName))
	if err != nil {
		return "", err
	}
	var (
		sel  = []string{id + " AS " + d.Quote(idName)}
		from = d.Quote(v.table) + " t"
	)
	for _, c := range v.columns {
		sel = append(sel, "t."+d.Quote(c)+" AS "+d.Quote(c))
	}
	for i, j := range v.joins {
		alias := fmt.Sprintf("j%d", i)
		target, err := d.MofIDExpr(alias + "." + d.Quote(j.column))
		if err != nil {
			return "", err
		}
		sel = append(sel, target+" AS "+d.Quote(j.field))
		from += fmt.Sprintf(" LEFT OUTER JOIN %s %s ON %s.%s = t.%s",
			d.Quote(j.table), alias, alias, d.Quote(idName), d.Quote(j.field))
	}
	return "SELECT " + strings.Join(sel, ", ") + " FROM " + from, nil
}

// typeViewQuery unions the class views of every concrete subtype.
func typeViewQuery(d dialect.Dialect, views, columns []string) string {
	cols := []string{d.Quote(idName)}
	for _, c := range columns {
		cols = append(cols, d.Quote(c))
	}
	sel := "SELECT " + strings.Join(cols, ", ") + " FROM "
	parts := make([]string, len(views))
	for i, v := range views {
		parts[i] = sel + d.Quote(v)
	}
	return strings.Join(parts, " UNION ALL ")
}

// plainColumns returns the single-column attributes of c.
func plainColumns(c *metamodel.Classifier) []string {
	var cols []string
	for _, a := range c.AllAttributes() {
		if !a.IsStored() {
			continue
		}
		switch Classify(a.Type, a.Multiplicity) {
		case MappingBoolean, MappingString, MappingEnumeration, MappingOtherDataType:
			cols = append(cols, FieldName(a.Name))
		}
	}
	return cols
}
