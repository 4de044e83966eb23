package metamodel

import (
	"strconv"
	"strings"
)

// Tag identifiers understood by the generator.
const (
	// TagMaxLength overrides the default column length of string attributes.
	// It may be set on the attribute, its owning class or any container package.
	TagMaxLength = "enki.maxLength"
	// TagTransient marks a class or package as not persisted.
	TagTransient = "enki.transient"
	// TagHighCardinality selects extra-lazy storage for one-to-many associations.
	TagHighCardinality = "enki.highCardinality"
	// TagTablePackageName substitutes the package name used in table names.
	TagTablePackageName = "enki.tablePackageName"
	// TagPackagePrefix is the JMI package prefix of a top-level package.
	TagPackagePrefix = "javax.jmi.packagePrefix"
	// TagSubstituteName is the JMI substitute name of any model element.
	TagSubstituteName = "javax.jmi.substituteName"
)

// PrimitiveTypesPackage is the name of the built-in MOF primitive types package.
const PrimitiveTypesPackage = "PrimitiveTypes"

// Tags holds the tag values attached to a model element, keyed by tag id.
type Tags map[string]string

// Lookup returns the value of the given tag.
func (t Tags) Lookup(id string) (string, bool) {
	v, ok := t[id]
	return v, ok
}

// Bool reports whether the tag is present with a true value.
func (t Tags) Bool(id string) bool {
	v, ok := t[id]
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	return err == nil && b
}

// Int returns the integer value of the given tag. ok is false if the tag is
// absent; err is set if it is present but not an integer.
func (t Tags) Int(id string) (n int, ok bool, err error) {
	v, ok := t[id]
	if !ok {
		return 0, false, nil
	}
	n, err = strconv.Atoi(strings.TrimSpace(v))
	return n, true, err
}
