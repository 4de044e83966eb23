package metamodel

import "strings"

// Kind is the kind of a classifier.
type Kind uint8

// Classifier kinds.
const (
	KindClass Kind = iota
	KindPrimitive
	KindEnumeration
	KindAlias
	KindStructure
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindPrimitive:
		return "primitive"
	case KindEnumeration:
		return "enumeration"
	case KindAlias:
		return "alias"
	case KindStructure:
		return "structure"
	default:
		return "invalid"
	}
}

// Visibility of a feature.
type Visibility uint8

// Visibility values.
const (
	Public Visibility = iota
	Protected
	Private
)

// Scope of a feature.
type Scope uint8

// Scope values.
const (
	InstanceLevel Scope = iota
	ClassifierLevel
)

// AggregationKind of an association end.
type AggregationKind uint8

// Aggregation kinds.
const (
	AggregationNone AggregationKind = iota
	AggregationShared
	AggregationComposite
)

type (
	// Model is a complete metamodel: an ordered list of top-level packages.
	Model struct {
		Name     string
		Packages []*Package
	}

	// Package is a MOF package.
	Package struct {
		Name         string
		Container    *Package
		Tags         Tags
		Packages     []*Package
		Classifiers  []*Classifier
		Associations []*Association
	}

	// Classifier is a class or a data type.
	Classifier struct {
		Name       string
		Kind       Kind
		Abstract   bool
		Container  *Package
		Supertypes []*Classifier
		// Attributes and References hold the classifier's own (non-inherited)
		// features in declaration order.
		Attributes []*Attribute
		References []*Reference
		// Aliased is the aliased type of a KindAlias classifier.
		Aliased *Classifier
		// Literals of a KindEnumeration classifier.
		Literals []string
		Tags     Tags
	}

	// Attribute is a typed, named feature of a classifier.
	Attribute struct {
		Name         string
		Owner        *Classifier
		Type         *Classifier
		Multiplicity Multiplicity
		Derived      bool
		Scope        Scope
		Visibility   Visibility
		Tags         Tags
	}

	// Association is a two-ended relationship between classifiers.
	Association struct {
		Name      string
		Container *Package
		Ends      [2]*AssociationEnd
		Derived   bool
		Tags      Tags
	}

	// AssociationEnd is one end of an association.
	AssociationEnd struct {
		Name         string
		Type         *Classifier
		Multiplicity Multiplicity
		Aggregation  AggregationKind
		Changeable   bool
		Navigable    bool
		Association  *Association
	}

	// Reference is a navigable accessor on a class for one association end.
	// ExposedEnd is the end typed by the owner; ReferencedEnd the end it
	// navigates to.
	Reference struct {
		Name          string
		Owner         *Classifier
		ExposedEnd    *AssociationEnd
		ReferencedEnd *AssociationEnd
		Visibility    Visibility
		Scope         Scope
	}
)

// =============================================================================
// Model
// =============================================================================

// Classifiers returns every classifier of the model in declaration order,
// walking packages depth-first.
func (m *Model) Classifiers() []*Classifier {
	var out []*Classifier
	m.walk(func(p *Package) {
		out = append(out, p.Classifiers...)
	})
	return out
}

// Classes returns every class of the model in declaration order.
func (m *Model) Classes() []*Classifier {
	var out []*Classifier
	for _, c := range m.Classifiers() {
		if c.Kind == KindClass {
			out = append(out, c)
		}
	}
	return out
}

// Associations returns every association of the model in declaration order.
func (m *Model) Associations() []*Association {
	var out []*Association
	m.walk(func(p *Package) {
		out = append(out, p.Associations...)
	})
	return out
}

// Lookup returns the classifier with the given qualified name, e.g.
// "Shop.Catalog.Widget", or nil.
func (m *Model) Lookup(qualified string) *Classifier {
	for _, c := range m.Classifiers() {
		if c.QualifiedName() == qualified {
			return c
		}
	}
	return nil
}

// ConcreteSubtypes returns the concrete classes that are kinds of c,
// including c itself, in declaration order.
func (m *Model) ConcreteSubtypes(c *Classifier) []*Classifier {
	var out []*Classifier
	for _, s := range m.Classes() {
		if !s.Abstract && s.IsKindOf(c) {
			out = append(out, s)
		}
	}
	return out
}

func (m *Model) walk(fn func(*Package)) {
	var visit func(ps []*Package)
	visit = func(ps []*Package) {
		for _, p := range ps {
			fn(p)
			visit(p.Packages)
		}
	}
	visit(m.Packages)
}

// =============================================================================
// Package
// =============================================================================

// Path returns the package names from the outermost package down to p.
func (p *Package) Path() []string {
	if p == nil {
		return nil
	}
	return append(p.Container.Path(), p.Name)
}

// QualifiedName returns the dot separated path of the package.
func (p *Package) QualifiedName() string {
	return strings.Join(p.Path(), ".")
}

// Outermost returns the top-level package containing p.
func (p *Package) Outermost() *Package {
	for p.Container != nil {
		p = p.Container
	}
	return p
}

// =============================================================================
// Classifier
// =============================================================================

// QualifiedName returns the dot separated name of the classifier.
func (c *Classifier) QualifiedName() string {
	if c.Container == nil {
		return c.Name
	}
	return c.Container.QualifiedName() + "." + c.Name
}

// IsDataType reports whether the classifier is any kind of data type.
func (c *Classifier) IsDataType() bool { return c.Kind != KindClass }

// IsConcrete reports whether the classifier is a non-abstract class.
func (c *Classifier) IsConcrete() bool { return c.Kind == KindClass && !c.Abstract }

// AllSupertypes returns the transitive supertypes of c, most general first.
// Each supertype appears once.
func (c *Classifier) AllSupertypes() []*Classifier {
	var (
		out  []*Classifier
		seen = map[*Classifier]bool{}
	)
	var visit func(*Classifier)
	visit = func(t *Classifier) {
		for _, s := range t.Supertypes {
			if seen[s] {
				continue
			}
			seen[s] = true
			visit(s)
			out = append(out, s)
		}
	}
	visit(c)
	return out
}

// IsKindOf reports whether c is other or one of its subtypes.
func (c *Classifier) IsKindOf(other *Classifier) bool {
	if c == other {
		return true
	}
	for _, s := range c.AllSupertypes() {
		if s == other {
			return true
		}
	}
	return false
}

// AllAttributes returns the inherited and own attributes of c, inherited
// first.
func (c *Classifier) AllAttributes() []*Attribute {
	var out []*Attribute
	for _, s := range c.AllSupertypes() {
		out = append(out, s.Attributes...)
	}
	return append(out, c.Attributes...)
}

// AllReferences returns the inherited and own references of c, inherited
// first.
func (c *Classifier) AllReferences() []*Reference {
	var out []*Reference
	for _, s := range c.AllSupertypes() {
		out = append(out, s.References...)
	}
	return append(out, c.References...)
}

// =============================================================================
// Features
// =============================================================================

// IsStored reports whether the attribute holds state: it is neither
// derived nor classifier-scoped.
func (a *Attribute) IsStored() bool {
	return !a.Derived && a.Scope == InstanceLevel
}

// QualifiedName returns the dot separated name of the association.
func (a *Association) QualifiedName() string {
	if a.Container == nil {
		return a.Name
	}
	return a.Container.QualifiedName() + "." + a.Name
}

// Index returns the position of the end in its association (0 or 1).
func (e *AssociationEnd) Index() int {
	if e.Association != nil && e.Association.Ends[1] == e {
		return 1
	}
	return 0
}

// Other returns the opposite end of the association.
func (e *AssociationEnd) Other() *AssociationEnd {
	return e.Association.Ends[1-e.Index()]
}

// IsComposite reports whether the end is the composite (whole) end.
func (e *AssociationEnd) IsComposite() bool {
	return e.Aggregation == AggregationComposite
}

// Association returns the association of the reference.
func (r *Reference) Association() *Association {
	return r.ReferencedEnd.Association
}
