package gen

import (
	"github.com/go-openapi/inflect"

	"github.com/enkigen/enki/metamodel"
)

// AssociationKind is the shape of an association.
type AssociationKind uint8

// Association kinds.
const (
	OneToOne AssociationKind = iota + 1
	OneToMany
	ManyToMany
)

// String returns the name of the association kind.
func (k AssociationKind) String() string {
	switch k {
	case OneToOne:
		return "ONE_TO_ONE"
	case OneToMany:
		return "ONE_TO_MANY"
	case ManyToMany:
		return "MANY_TO_MANY"
	default:
		return "UNKNOWN"
	}
}

// kindOf returns the kind of an association with the given ends.
func kindOf(ends [2]End) AssociationKind {
	switch single0, single1 := ends[0].Multiplicity.IsSingle(), ends[1].Multiplicity.IsSingle(); {
	case single0 && single1:
		return OneToOne
	case single0 || single1:
		return OneToMany
	default:
		return ManyToMany
	}
}

// End is one end of an association as seen by the emitter.
type End struct {
	Name         string
	Type         *metamodel.Classifier
	Multiplicity metamodel.Multiplicity
	Composite    bool
	Changeable   bool
}

func endOf(e *metamodel.AssociationEnd) End {
	return End{
		Name:         e.Name,
		Type:         e.Type,
		Multiplicity: e.Multiplicity,
		Composite:    e.IsComposite(),
		Changeable:   e.Changeable,
	}
}

// ReferenceInfo normalizes the three ways a class refers to an association:
// an explicit reference, an association without explicit reference and a
// class-typed attribute. The exposed end is the end the class is on; the
// referenced end is the other one.
//
// The variants are *ExplicitRef, *UnreferencedRef and *ComponentRef. Only
// the first two are backed by an association, see Associated.
type ReferenceInfo interface {
	// End returns end 0 or 1.
	End(i int) End
	// Kind returns the shape of the association.
	Kind() AssociationKind
	// Archetype returns the table archetype storing the links.
	Archetype() Archetype
	// ParentEnd returns the index of the parent (or source) end.
	ParentEnd() int
	ExposedEnd() int
	ReferencedEnd() int
	IsOrdered(i int) bool
	IsSingle(i int) bool
	IsComposite(i int) bool
	// FieldName returns the Java field holding the link.
	FieldName() string
	// AccessorName returns the getter of the field.
	AccessorName() string
	// Name returns the name reported in diagnostics.
	Name() string

	sealed()
}

// Associated is implemented by the variants backed by an association.
type Associated interface {
	ReferenceInfo
	Association() *metamodel.Association
}

type refBase struct {
	ends      [2]End
	kind      AssociationKind
	archetype Archetype
	parent    int
	exposed   int
	field     string
}

func (r *refBase) End(i int) End          { return r.ends[i] }
func (r *refBase) Kind() AssociationKind  { return r.kind }
func (r *refBase) Archetype() Archetype   { return r.archetype }
func (r *refBase) ParentEnd() int         { return r.parent }
func (r *refBase) ExposedEnd() int        { return r.exposed }
func (r *refBase) ReferencedEnd() int     { return 1 - r.exposed }
func (r *refBase) IsOrdered(i int) bool   { return r.ends[i].Multiplicity.Ordered }
func (r *refBase) IsSingle(i int) bool    { return r.ends[i].Multiplicity.IsSingle() }
func (r *refBase) IsComposite(i int) bool { return r.ends[i].Composite }
func (r *refBase) FieldName() string      { return r.field }
func (r *refBase) AccessorName() string   { return AccessorName(r.field) }
func (r *refBase) sealed()                {}

func (r *refBase) fromInfo(a *AssociationInfo) {
	r.ends = a.ends
	r.kind = a.Kind
	r.archetype = a.Archetype
	r.parent = a.Parent
}

// ExplicitRef is a ReferenceInfo backed by a Reference of the class.
type ExplicitRef struct {
	refBase
	Reference *metamodel.Reference
}

// NewExplicitRef returns the ReferenceInfo of ref.
func NewExplicitRef(ref *metamodel.Reference, info *AssociationInfo) *ExplicitRef {
	r := &ExplicitRef{Reference: ref}
	r.fromInfo(info)
	r.exposed = ref.ExposedEnd.Index()
	r.field = FieldName(ref.Name)
	return r
}

// Association returns the association of the reference.
func (r *ExplicitRef) Association() *metamodel.Association { return r.Reference.Association() }

// Name returns the qualified reference name.
func (r *ExplicitRef) Name() string {
	return r.Reference.Owner.QualifiedName() + "." + r.Reference.Name
}

// UnreferencedRef is a ReferenceInfo backed by an association that no
// explicit reference covers.
type UnreferencedRef struct {
	refBase
	assoc *metamodel.Association
}

func newUnreferencedRef(info *AssociationInfo, exposed int) *UnreferencedRef {
	r := &UnreferencedRef{assoc: info.Association}
	r.fromInfo(info)
	r.exposed = exposed
	r.field = inflect.CamelizeDownFirst(info.Association.Name) + "$" + FieldName(r.ends[1-exposed].Name)
	return r
}

// Association returns the unreferenced association.
func (r *UnreferencedRef) Association() *metamodel.Association { return r.assoc }

// Name returns the qualified association name.
func (r *UnreferencedRef) Name() string { return r.assoc.QualifiedName() }

// ComponentRef is a ReferenceInfo synthesized from a class-typed attribute.
// End 0 is the owning class, end 1 the attribute type.
type ComponentRef struct {
	refBase
	Attribute *metamodel.Attribute
	// Owner is the concrete class holding the attribute.
	Owner *metamodel.Classifier
}

// NewComponentRef returns the ReferenceInfo of a class-typed attribute of
// owner, seen from the owner.
func NewComponentRef(attr *metamodel.Attribute, owner *metamodel.Classifier) *ComponentRef {
	r := &ComponentRef{Attribute: attr, Owner: owner}
	r.ends = [2]End{
		{Name: owner.Name, Type: owner, Multiplicity: metamodel.Optional, Composite: true, Changeable: true},
		{Name: attr.Name, Type: attr.Type, Multiplicity: attr.Multiplicity, Changeable: true},
	}
	r.kind = OneToMany
	r.archetype = OneToManyLazy
	if attr.Multiplicity.IsSingle() {
		r.kind = OneToOne
		r.archetype = OneToOneLazy
	} else if attr.Multiplicity.Ordered {
		r.archetype = OneToManyLazyOrdered
	}
	r.field = FieldName(attr.Name)
	return r
}

// Reversed returns the same component seen from the attribute type.
func (r *ComponentRef) Reversed() *ComponentRef {
	rev := *r
	rev.exposed = 1
	rev.field = ComponentName(r.Attribute, r.Owner)
	return &rev
}

// BaseName returns the name shared by every table and column fragment of
// the component.
func (r *ComponentRef) BaseName() string { return ComponentName(r.Attribute, r.Owner) }

// Name returns the qualified attribute name.
func (r *ComponentRef) Name() string {
	return r.Owner.QualifiedName() + "." + r.Attribute.Name
}

var (
	_ Associated    = (*ExplicitRef)(nil)
	_ Associated    = (*UnreferencedRef)(nil)
	_ ReferenceInfo = (*ComponentRef)(nil)
)
