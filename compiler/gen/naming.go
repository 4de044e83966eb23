package gen

import (
	"strings"
	"unicode/utf8"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/enkigen/enki/metamodel"
)

// Fixed names shared by every mapping.
const (
	idName          = "mofId"
	ordinalName     = "ordinal"
	cacheSuffix     = "ENKI"
	querySuffix     = "_QUERY"
	indexSuffix     = "Index"
	classViewPrefix = "VC_"
	typeViewPrefix  = "VT_"
	compInfix       = "$Comp$"
	enumLength      = 128
	stringCutoff    = 32768
)

// Names derives every generated identifier from the model and the
// configuration.
type Names struct {
	prefix  string
	limit   int
	impl    string
	storage string
}

// NewNames returns the naming scheme of cfg.
func NewNames(cfg *Config) *Names {
	return &Names{
		prefix:  cfg.TablePrefix,
		limit:   cfg.IdentifierLimit,
		impl:    cfg.ImplSuffix,
		storage: cfg.StoragePackage,
	}
}

// Truncate cuts s to the identifier limit.
func (n *Names) Truncate(s string) string {
	if n.limit <= 0 || utf8.RuneCountInString(s) <= n.limit {
		return s
	}
	return string([]rune(s)[:n.limit])
}

// Table returns the table of a concrete class.
func (n *Names) Table(c *metamodel.Classifier) string {
	return n.Truncate(n.prefix + tablePackageName(c.Container) + "_" + className(c))
}

// CollectionTable returns the table holding the values of field.
func (n *Names) CollectionTable(owner, field string) string {
	return n.Truncate(owner + "$" + InitialUpper(field))
}

// Index returns the name of the index on column of table.
func (n *Names) Index(table, column string) string {
	return n.Truncate(table + "_" + column + indexSuffix)
}

// CacheRegion returns the second level cache region of class mappings.
func (n *Names) CacheRegion() string { return n.prefix + cacheSuffix }

// QueryCacheRegion returns the cache region of named queries.
func (n *Names) QueryCacheRegion() string { return n.CacheRegion() + querySuffix }

// ClassView returns the VC_ view of a concrete class.
func (n *Names) ClassView(c *metamodel.Classifier) string {
	return n.Truncate(n.prefix + classViewPrefix + tablePackageName(c.Container) + "_" + className(c))
}

// TypeView returns the VT_ view of a class and its subtypes.
func (n *Names) TypeView(c *metamodel.Classifier) string {
	return n.Truncate(n.prefix + typeViewPrefix + tablePackageName(c.Container) + "_" + className(c))
}

// ArchetypeTable returns the table of an association archetype.
func (n *Names) ArchetypeTable(a Archetype, suffix string) string {
	return n.Truncate(n.prefix + "Assoc" + a.String() + suffix)
}

// ArchetypeClass returns the Java class of an association archetype.
func (n *Names) ArchetypeClass(a Archetype) string {
	return n.storage + ".Hibernate" + a.String() + "Association"
}

// ArchetypeElement returns the composite element class of an archetype.
func (n *Names) ArchetypeElement(a Archetype) string {
	return n.ArchetypeClass(a) + "$Element"
}

// Interface returns the Java interface name of c.
func (n *Names) Interface(c *metamodel.Classifier) string {
	return JavaPackage(c.Container) + "." + className(c)
}

// Implementation returns the Java implementation class name of c.
func (n *Names) Implementation(c *metamodel.Classifier) string {
	return n.Interface(c) + n.impl
}

// JavaPackage returns the Java package of p: the package prefix tag of its
// outermost package followed by the lower-cased package names.
func JavaPackage(p *metamodel.Package) string {
	var parts []string
	if prefix, ok := p.Outermost().Tags.Lookup(metamodel.TagPackagePrefix); ok && prefix != "" {
		parts = append(parts, prefix)
	}
	var chain []string
	for q := p; q != nil; q = q.Container {
		chain = append(chain, strings.ToLower(substitute(q.Name, q.Tags)))
	}
	for i := len(chain) - 1; i >= 0; i-- {
		parts = append(parts, chain[i])
	}
	return strings.Join(parts, ".")
}

// FieldName returns the Java field name of a model feature.
func FieldName(name string) string {
	if !strings.ContainsAny(name, " -_:") {
		return name
	}
	return inflect.CamelizeDownFirst(name)
}

// InitialUpper upper-cases the first letter of every word of s, leaving the
// rest untouched.
func InitialUpper(s string) string {
	return cases.Title(language.Und, cases.NoLower).String(s)
}

// AccessorName returns the getter of a field.
func AccessorName(field string) string {
	return "get" + InitialUpper(field)
}

// ComponentName returns the field through which the target of a
// class-typed attribute refers back to its owner. Owner names keep the
// fields of different owners apart.
func ComponentName(attr *metamodel.Attribute, owner *metamodel.Classifier) string {
	return FieldName(attr.Name) + compInfix + className(owner)
}

func className(c *metamodel.Classifier) string {
	return mangle(substitute(c.Name, c.Tags))
}

func tablePackageName(p *metamodel.Package) string {
	if name, ok := p.Tags.Lookup(metamodel.TagTablePackageName); ok && name != "" {
		return name
	}
	return mangle(p.Name)
}

func substitute(name string, tags metamodel.Tags) string {
	if s, ok := tags.Lookup(metamodel.TagSubstituteName); ok && s != "" {
		return s
	}
	return name
}

// mangle turns a model name into an identifier.
func mangle(name string) string {
	if !strings.ContainsAny(name, " -_:") {
		return name
	}
	return inflect.Camelize(name)
}
