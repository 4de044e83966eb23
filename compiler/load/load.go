package load

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/enkigen/enki/metamodel"
)

// Format of a model document.
type Format uint8

// Supported document formats.
const (
	FormatYAML Format = iota
	FormatJSON
	FormatMsgpack
)

// FormatOf returns the document format implied by the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".mpk", ".msgpack":
		return FormatMsgpack, nil
	default:
		return 0, fmt.Errorf("load: unknown model format for %q", path)
	}
}

// LoadFile reads and builds the model stored at path.
func LoadFile(path string) (*metamodel.Model, error) {
	doc, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Build(doc)
}

// ReadFile reads the document stored at path.
func ReadFile(path string) (*Document, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	doc, err := Decode(data, f)
	if err != nil {
		return nil, fmt.Errorf("load: %s: %w", path, err)
	}
	return doc, nil
}

// Decode decodes a document. Unknown keys are rejected in YAML and JSON.
func Decode(data []byte, f Format) (*Document, error) {
	doc := &Document{}
	switch f {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(doc); err != nil {
			return nil, err
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(doc); err != nil {
			return nil, err
		}
	case FormatMsgpack:
		return UnmarshalSnapshot(data)
	default:
		return nil, fmt.Errorf("unknown format %d", f)
	}
	return doc, nil
}

// primitives of the built-in PrimitiveTypes package.
var primitives = []string{"Boolean", "Integer", "Long", "Float", "Double", "String"}

type (
	builder struct {
		model        *metamodel.Model
		classifiers  map[string]*metamodel.Classifier
		associations map[string]*metamodel.Association
		datatypes    []declared[*DataType, *metamodel.Classifier]
		classes      []declared[*Class, *metamodel.Classifier]
		assocs       []declared[*Association, *metamodel.Association]
	}
	declared[D, M any] struct {
		doc   D
		model M
	}
)

// Build resolves a document into a model.
func Build(doc *Document) (*metamodel.Model, error) {
	b := &builder{
		model:        &metamodel.Model{Name: doc.Name},
		classifiers:  make(map[string]*metamodel.Classifier),
		associations: make(map[string]*metamodel.Association),
	}
	if !hasPrimitiveTypes(doc) {
		b.declarePrimitives()
	}
	for _, p := range doc.Packages {
		mp, err := b.declare(p, nil)
		if err != nil {
			return nil, err
		}
		b.model.Packages = append(b.model.Packages, mp)
	}
	for _, d := range b.datatypes {
		if err := b.resolveDataType(d.doc, d.model); err != nil {
			return nil, err
		}
	}
	for _, d := range b.datatypes {
		if err := checkAlias(d.model); err != nil {
			return nil, err
		}
	}
	for _, d := range b.classes {
		if err := b.resolveClass(d.doc, d.model); err != nil {
			return nil, err
		}
	}
	for _, d := range b.assocs {
		if err := b.resolveAssociation(d.doc, d.model); err != nil {
			return nil, err
		}
	}
	for _, d := range b.classes {
		if err := b.resolveReferences(d.doc, d.model); err != nil {
			return nil, err
		}
	}
	for _, d := range b.classes {
		for _, s := range d.model.AllSupertypes() {
			if s == d.model {
				return nil, fmt.Errorf("load: class %q inherits from itself", d.model.QualifiedName())
			}
		}
	}
	return b.model, nil
}

func hasPrimitiveTypes(doc *Document) bool {
	for _, p := range doc.Packages {
		if p.Name == metamodel.PrimitiveTypesPackage {
			return true
		}
	}
	return false
}

func (b *builder) declarePrimitives() {
	p := &metamodel.Package{Name: metamodel.PrimitiveTypesPackage}
	for _, name := range primitives {
		c := &metamodel.Classifier{Name: name, Kind: metamodel.KindPrimitive, Container: p}
		p.Classifiers = append(p.Classifiers, c)
		b.classifiers[c.QualifiedName()] = c
	}
	b.model.Packages = append(b.model.Packages, p)
}

// declare creates the package, its classifiers and associations without
// resolving any name.
func (b *builder) declare(p *Package, container *metamodel.Package) (*metamodel.Package, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("load: package without name in %q", container.QualifiedName())
	}
	mp := &metamodel.Package{Name: p.Name, Container: container, Tags: metamodel.Tags(p.Tags)}
	for _, dt := range p.DataTypes {
		kind, err := dataTypeKind(dt.Kind)
		if err != nil {
			return nil, fmt.Errorf("load: data type %q: %w", dt.Name, err)
		}
		c := &metamodel.Classifier{
			Name:      dt.Name,
			Kind:      kind,
			Container: mp,
			Literals:  dt.Literals,
			Tags:      metamodel.Tags(dt.Tags),
		}
		if err := b.add(c); err != nil {
			return nil, err
		}
		mp.Classifiers = append(mp.Classifiers, c)
		b.datatypes = append(b.datatypes, declared[*DataType, *metamodel.Classifier]{dt, c})
	}
	for _, cl := range p.Classes {
		c := &metamodel.Classifier{
			Name:      cl.Name,
			Kind:      metamodel.KindClass,
			Abstract:  cl.Abstract,
			Container: mp,
			Tags:      metamodel.Tags(cl.Tags),
		}
		if err := b.add(c); err != nil {
			return nil, err
		}
		mp.Classifiers = append(mp.Classifiers, c)
		b.classes = append(b.classes, declared[*Class, *metamodel.Classifier]{cl, c})
	}
	for _, as := range p.Associations {
		a := &metamodel.Association{
			Name:      as.Name,
			Container: mp,
			Derived:   as.Derived,
			Tags:      metamodel.Tags(as.Tags),
		}
		if _, ok := b.associations[a.QualifiedName()]; ok {
			return nil, fmt.Errorf("load: duplicate association %q", a.QualifiedName())
		}
		b.associations[a.QualifiedName()] = a
		mp.Associations = append(mp.Associations, a)
		b.assocs = append(b.assocs, declared[*Association, *metamodel.Association]{as, a})
	}
	for _, np := range p.Packages {
		nested, err := b.declare(np, mp)
		if err != nil {
			return nil, err
		}
		mp.Packages = append(mp.Packages, nested)
	}
	return mp, nil
}

func (b *builder) add(c *metamodel.Classifier) error {
	if c.Name == "" {
		return fmt.Errorf("load: classifier without name in package %q", c.Container.QualifiedName())
	}
	name := c.QualifiedName()
	if _, ok := b.classifiers[name]; ok {
		return fmt.Errorf("load: duplicate classifier %q", name)
	}
	b.classifiers[name] = c
	return nil
}

func (b *builder) resolveDataType(dt *DataType, c *metamodel.Classifier) error {
	switch c.Kind {
	case metamodel.KindAlias:
		t, err := b.lookup(dt.Aliases, c.Container)
		if err != nil {
			return fmt.Errorf("load: alias %q: %w", c.QualifiedName(), err)
		}
		c.Aliased = t
	case metamodel.KindEnumeration:
		if len(c.Literals) == 0 {
			return fmt.Errorf("load: enumeration %q has no literals", c.QualifiedName())
		}
	}
	return nil
}

// checkAlias rejects an alias whose chain of aliased types never reaches a
// non-alias type.
func checkAlias(c *metamodel.Classifier) error {
	seen := make(map[*metamodel.Classifier]bool)
	for t := c; t.Kind == metamodel.KindAlias && t.Aliased != nil; t = t.Aliased {
		if seen[t] {
			return fmt.Errorf("load: alias %q is circular", c.QualifiedName())
		}
		seen[t] = true
	}
	return nil
}

func (b *builder) resolveClass(cl *Class, c *metamodel.Classifier) error {
	for _, name := range cl.Supertypes {
		s, err := b.lookup(name, c.Container)
		if err != nil {
			return fmt.Errorf("load: class %q: supertype: %w", c.QualifiedName(), err)
		}
		if s.Kind != metamodel.KindClass {
			return fmt.Errorf("load: class %q: supertype %q is not a class", c.QualifiedName(), name)
		}
		c.Supertypes = append(c.Supertypes, s)
	}
	for _, at := range cl.Attributes {
		t, err := b.lookup(at.Type, c.Container)
		if err != nil {
			return fmt.Errorf("load: attribute %s.%s: %w", c.QualifiedName(), at.Name, err)
		}
		mult, err := metamodel.ParseMultiplicity(at.Multiplicity)
		if err != nil {
			return fmt.Errorf("load: attribute %s.%s: %w", c.QualifiedName(), at.Name, err)
		}
		mult.Ordered, mult.Unique = at.Ordered, at.Unique
		vis, err := visibility(at.Visibility)
		if err != nil {
			return fmt.Errorf("load: attribute %s.%s: %w", c.QualifiedName(), at.Name, err)
		}
		a := &metamodel.Attribute{
			Name:         at.Name,
			Owner:        c,
			Type:         t,
			Multiplicity: mult,
			Derived:      at.Derived,
			Visibility:   vis,
			Tags:         metamodel.Tags(at.Tags),
		}
		if at.Static {
			a.Scope = metamodel.ClassifierLevel
		}
		c.Attributes = append(c.Attributes, a)
	}
	return nil
}

func (b *builder) resolveAssociation(as *Association, a *metamodel.Association) error {
	if len(as.Ends) != 2 {
		return fmt.Errorf("load: association %q must have exactly two ends, has %d", a.QualifiedName(), len(as.Ends))
	}
	for i, e := range as.Ends {
		t, err := b.lookup(e.Type, a.Container)
		if err != nil {
			return fmt.Errorf("load: association %q end %q: %w", a.QualifiedName(), e.Name, err)
		}
		if t.Kind != metamodel.KindClass {
			return fmt.Errorf("load: association %q end %q: type %q is not a class", a.QualifiedName(), e.Name, e.Type)
		}
		mult, err := metamodel.ParseMultiplicity(e.Multiplicity)
		if err != nil {
			return fmt.Errorf("load: association %q end %q: %w", a.QualifiedName(), e.Name, err)
		}
		mult.Ordered, mult.Unique = e.Ordered, e.Unique
		end := &metamodel.AssociationEnd{
			Name:         e.Name,
			Type:         t,
			Multiplicity: mult,
			Changeable:   e.Changeable == nil || *e.Changeable,
			Navigable:    e.Navigable == nil || *e.Navigable,
			Association:  a,
		}
		if e.Composite {
			end.Aggregation = metamodel.AggregationComposite
		}
		a.Ends[i] = end
	}
	if a.Ends[0].Name == a.Ends[1].Name {
		return fmt.Errorf("load: association %q has two ends named %q", a.QualifiedName(), a.Ends[0].Name)
	}
	return nil
}

func (b *builder) resolveReferences(cl *Class, c *metamodel.Classifier) error {
	for _, rd := range cl.References {
		a, err := b.lookupAssociation(rd.Association, c.Container)
		if err != nil {
			return fmt.Errorf("load: reference %s.%s: %w", c.QualifiedName(), rd.Name, err)
		}
		var referenced *metamodel.AssociationEnd
		for _, e := range a.Ends {
			if e.Name == rd.End {
				referenced = e
			}
		}
		if referenced == nil {
			return fmt.Errorf("load: reference %s.%s: association %q has no end %q", c.QualifiedName(), rd.Name, a.QualifiedName(), rd.End)
		}
		exposed := referenced.Other()
		if !c.IsKindOf(exposed.Type) {
			return fmt.Errorf("load: reference %s.%s: class is not a kind of exposed end type %q", c.QualifiedName(), rd.Name, exposed.Type.QualifiedName())
		}
		vis, err := visibility(rd.Visibility)
		if err != nil {
			return fmt.Errorf("load: reference %s.%s: %w", c.QualifiedName(), rd.Name, err)
		}
		c.References = append(c.References, &metamodel.Reference{
			Name:          rd.Name,
			Owner:         c,
			ExposedEnd:    exposed,
			ReferencedEnd: referenced,
			Visibility:    vis,
		})
	}
	return nil
}

// lookup resolves a classifier name: qualified first, then relative to the
// enclosing packages, then in PrimitiveTypes.
func (b *builder) lookup(name string, scope *metamodel.Package) (*metamodel.Classifier, error) {
	if name == "" {
		return nil, fmt.Errorf("missing type name")
	}
	if c, ok := b.classifiers[name]; ok {
		return c, nil
	}
	for p := scope; p != nil; p = p.Container {
		if c, ok := b.classifiers[p.QualifiedName()+"."+name]; ok {
			return c, nil
		}
	}
	if c, ok := b.classifiers[metamodel.PrimitiveTypesPackage+"."+name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("unknown type %q", name)
}

func (b *builder) lookupAssociation(name string, scope *metamodel.Package) (*metamodel.Association, error) {
	if a, ok := b.associations[name]; ok {
		return a, nil
	}
	for p := scope; p != nil; p = p.Container {
		if a, ok := b.associations[p.QualifiedName()+"."+name]; ok {
			return a, nil
		}
	}
	return nil, fmt.Errorf("unknown association %q", name)
}

func dataTypeKind(s string) (metamodel.Kind, error) {
	switch strings.ToLower(s) {
	case "primitive":
		return metamodel.KindPrimitive, nil
	case "enumeration", "enum":
		return metamodel.KindEnumeration, nil
	case "alias":
		return metamodel.KindAlias, nil
	case "structure", "struct":
		return metamodel.KindStructure, nil
	default:
		return 0, fmt.Errorf("unknown data type kind %q", s)
	}
}

func visibility(s string) (metamodel.Visibility, error) {
	switch strings.ToLower(s) {
	case "", "public":
		return metamodel.Public, nil
	case "protected":
		return metamodel.Protected, nil
	case "private":
		return metamodel.Private, nil
	default:
		return 0, fmt.Errorf("unknown visibility %q", s)
	}
}
