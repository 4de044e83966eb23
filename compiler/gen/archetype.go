package gen

import (
	"fmt"

	"github.com/enkigen/enki/dialect/hbm"
	"github.com/enkigen/enki/metamodel"
)

// Archetype is one of the shared table layouts storing association links.
type Archetype uint8

// Association archetypes.
const (
	OneToOneLazy Archetype = iota + 1
	OneToManyLazy
	OneToManyLazyHighCardinality
	OneToManyLazyOrdered
	ManyToManyLazy
	ManyToManyLazyOrdered
)

// Archetypes lists every archetype in emission order.
var Archetypes = []Archetype{
	OneToOneLazy,
	OneToManyLazy,
	OneToManyLazyHighCardinality,
	OneToManyLazyOrdered,
	ManyToManyLazy,
	ManyToManyLazyOrdered,
}

var archetypeNames = [...]string{
	OneToOneLazy:                 "OneToOneLazy",
	OneToManyLazy:                "OneToManyLazy",
	OneToManyLazyHighCardinality: "OneToManyLazyHighCardinality",
	OneToManyLazyOrdered:         "OneToManyLazyOrdered",
	ManyToManyLazy:               "ManyToManyLazy",
	ManyToManyLazyOrdered:        "ManyToManyLazyOrdered",
}

// String returns the archetype name.
func (a Archetype) String() string {
	if int(a) < len(archetypeNames) && archetypeNames[a] != "" {
		return archetypeNames[a]
	}
	return fmt.Sprintf("Archetype(%d)", a)
}

// ManyToMany reports whether links are stored once per direction.
func (a Archetype) ManyToMany() bool {
	return a == ManyToManyLazy || a == ManyToManyLazyOrdered
}

// AssociationInfo is the shape of one association, computed once per run.
type AssociationInfo struct {
	Association *metamodel.Association
	Kind        AssociationKind
	Archetype   Archetype
	// Parent is the single-valued end of a one-to-many, the composite end of
	// a one-to-one (or end 0), and the source end of a many-to-many.
	Parent int
	ends   [2]End
}

// End returns end 0 or 1.
func (a *AssociationInfo) End(i int) End { return a.ends[i] }

// NewAssociationInfo classifies an association.
func NewAssociationInfo(a *metamodel.Association) (*AssociationInfo, error) {
	info := &AssociationInfo{
		Association: a,
		ends:        [2]End{endOf(a.Ends[0]), endOf(a.Ends[1])},
	}
	e0, e1 := info.ends[0], info.ends[1]
	if e0.Composite && e1.Composite {
		return nil, NewAssociationError(a.QualifiedName(), e0.Name, e1.Name, "both ends are composite")
	}
	for _, e := range info.ends {
		if e.Composite && !e.Multiplicity.IsSingle() {
			return nil, NewAssociationError(a.QualifiedName(), e.Name, "",
				fmt.Sprintf("composite end has multiplicity %s; a composite must be single-valued", e.Multiplicity))
		}
	}
	info.Kind = kindOf(info.ends)
	switch info.Kind {
	case OneToOne:
		if e1.Composite {
			info.Parent = 1
		}
	case OneToMany:
		if !e0.Multiplicity.IsSingle() {
			info.Parent = 1
		}
	}
	archetype, err := selectArchetype(info.Kind, info.ends, a.Tags.Bool(metamodel.TagHighCardinality))
	if err != nil {
		return nil, NewAssociationError(a.QualifiedName(), e0.Name, e1.Name, err.Error())
	}
	info.Archetype = archetype
	return info, nil
}

// selectArchetype picks the archetype of an association. Ordering wins over
// the high cardinality tag.
func selectArchetype(kind AssociationKind, ends [2]End, highCardinality bool) (Archetype, error) {
	ordered := ends[0].Multiplicity.Ordered || ends[1].Multiplicity.Ordered
	switch kind {
	case OneToOne:
		return OneToOneLazy, nil
	case OneToMany:
		switch {
		case ordered:
			return OneToManyLazyOrdered, nil
		case highCardinality:
			return OneToManyLazyHighCardinality, nil
		default:
			return OneToManyLazy, nil
		}
	case ManyToMany:
		// kindOf never yields this; callers passing their own kind can.
		if ends[0].Multiplicity.IsSingle() || ends[1].Multiplicity.IsSingle() {
			return 0, fmt.Errorf("many-to-many association has a single-valued end")
		}
		if ordered {
			return ManyToManyLazyOrdered, nil
		}
		return ManyToManyLazy, nil
	default:
		return 0, fmt.Errorf("unknown association kind %d", kind)
	}
}

// Columns of the archetype tables.
const (
	colType       = "type"
	colReversed   = "reversed"
	colParentType = "parentType"
	colParentID   = "parentId"
	colChildType  = "childType"
	colChildID    = "childId"
	colSourceType = "sourceType"
	colSourceID   = "sourceId"
	colTargetType = "targetType"
	colTargetID   = "targetId"
)

// archetypeLayout describes the tables of one archetype.
type archetypeLayout struct {
	// owner columns stored on the link row.
	typeCol, idCol string
	// other columns stored on the link row (one-to-one) or on the element
	// rows of the collection.
	otherTypeCol, otherIDCol string
	// collection is the member name of the element collection, empty for
	// one-to-one.
	collection string
	kind       string
	lazy       string
	reversed   bool
}

func layoutOf(a Archetype) archetypeLayout {
	switch a {
	case OneToOneLazy:
		return archetypeLayout{typeCol: colParentType, idCol: colParentID, otherTypeCol: colChildType, otherIDCol: colChildID}
	case OneToManyLazy:
		return archetypeLayout{typeCol: colParentType, idCol: colParentID, otherTypeCol: colChildType, otherIDCol: colChildID,
			collection: "children", kind: hbm.Set, lazy: "true"}
	case OneToManyLazyHighCardinality:
		return archetypeLayout{typeCol: colParentType, idCol: colParentID, otherTypeCol: colChildType, otherIDCol: colChildID,
			collection: "children", kind: hbm.Bag, lazy: "extra"}
	case OneToManyLazyOrdered:
		return archetypeLayout{typeCol: colParentType, idCol: colParentID, otherTypeCol: colChildType, otherIDCol: colChildID,
			collection: "children", kind: hbm.List, lazy: "true"}
	case ManyToManyLazy:
		return archetypeLayout{typeCol: colSourceType, idCol: colSourceID, otherTypeCol: colTargetType, otherIDCol: colTargetID,
			collection: "targets", kind: hbm.Set, lazy: "true", reversed: true}
	default:
		return archetypeLayout{typeCol: colSourceType, idCol: colSourceID, otherTypeCol: colTargetType, otherIDCol: colTargetID,
			collection: "targets", kind: hbm.List, lazy: "true", reversed: true}
	}
}

// elementTable returns the collection table of an archetype, or "".
func (n *Names) elementTable(a Archetype) string {
	l := layoutOf(a)
	if l.collection == "" {
		return ""
	}
	return n.ArchetypeTable(a, "$"+InitialUpper(l.collection))
}

// archetypeClass returns the class mapping of an archetype.
func archetypeClass(a Archetype, n *Names) *hbm.Class {
	l := layoutOf(a)
	c := &hbm.Class{
		Name:  n.ArchetypeClass(a),
		Table: mq(n.ArchetypeTable(a, "")),
		Cache: &hbm.Cache{Usage: "read-write", Region: n.CacheRegion()},
		ID:    idMapping(),
	}
	c.Members = append(c.Members, &hbm.Property{Name: colType, Column: mq(colType), Type: "string", Length: enumLength, NotNull: true})
	if l.reversed {
		c.Members = append(c.Members, &hbm.Property{Name: colReversed, Column: mq(colReversed), Type: "boolean", NotNull: true})
	}
	c.Members = append(c.Members,
		&hbm.Property{Name: l.typeCol, Column: mq(l.typeCol), Type: "string", Length: enumLength},
		&hbm.Property{Name: l.idCol, Column: mq(l.idCol), Type: "long"},
	)
	otherType := &hbm.Property{Name: l.otherTypeCol, Column: mq(l.otherTypeCol), Type: "string", Length: enumLength}
	otherID := &hbm.Property{Name: l.otherIDCol, Column: mq(l.otherIDCol), Type: "long"}
	if l.collection == "" {
		c.Members = append(c.Members, otherType, otherID)
	} else {
		coll := hbm.NewCollection(l.kind, l.collection, mq(n.elementTable(a)))
		coll.Cascade = "all"
		coll.Lazy = l.lazy
		coll.Key = &hbm.Key{Column: mq(idName)}
		if l.kind == hbm.List {
			coll.ListIndex = &hbm.ListIndex{Column: mq(ordinalName)}
		}
		coll.CompositeElement = &hbm.CompositeElement{
			Class:   n.ArchetypeElement(a),
			Members: []hbm.Member{otherType, otherID},
		}
		c.Members = append(c.Members, coll)
	}
	hql := "from " + c.Name + " where type = :type"
	if l.reversed {
		hql += " and reversed = 0"
	}
	c.Queries = append(c.Queries, &hbm.Query{
		Name:        "allLinks",
		Cacheable:   true,
		CacheRegion: n.QueryCacheRegion(),
		HQL:         hql,
	})
	return c
}

// archetypeIndexes returns the indexed columns of an archetype by table.
func archetypeIndexes(a Archetype, n *Names) []indexedColumn {
	l := layoutOf(a)
	cols := []indexedColumn{{table: n.ArchetypeTable(a, ""), column: l.idCol}}
	if l.collection == "" {
		return append(cols, indexedColumn{table: n.ArchetypeTable(a, ""), column: l.otherIDCol})
	}
	return append(cols,
		indexedColumn{table: n.elementTable(a), column: idName},
		indexedColumn{table: n.elementTable(a), column: l.otherIDCol},
	)
}
