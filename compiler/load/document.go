// Package load decodes declarative model documents into a metamodel.Model.
//
// A document describes packages, classes, data types, associations and
// references by name. Decoding is done in two passes: the first creates every
// package and classifier, the second resolves type names, supertypes,
// association ends and references. The built-in PrimitiveTypes package is
// always available.
package load

// Document is a model description as it appears in YAML, JSON or msgpack.
type Document struct {
	Name     string     `json:"name,omitempty" yaml:"name,omitempty"`
	Packages []*Package `json:"packages,omitempty" yaml:"packages,omitempty"`
}

// Package describes a MOF package.
type Package struct {
	Name         string            `json:"name" yaml:"name"`
	Tags         map[string]string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Packages     []*Package        `json:"packages,omitempty" yaml:"packages,omitempty"`
	DataTypes    []*DataType       `json:"datatypes,omitempty" yaml:"datatypes,omitempty"`
	Classes      []*Class          `json:"classes,omitempty" yaml:"classes,omitempty"`
	Associations []*Association    `json:"associations,omitempty" yaml:"associations,omitempty"`
}

// DataType describes a primitive, enumeration, alias or structure type.
type DataType struct {
	Name string `json:"name" yaml:"name"`
	// Kind is one of "primitive", "enumeration", "alias" or "structure".
	Kind     string            `json:"kind" yaml:"kind"`
	Aliases  string            `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Literals []string          `json:"literals,omitempty" yaml:"literals,omitempty"`
	Tags     map[string]string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Class describes a MOF class.
type Class struct {
	Name       string            `json:"name" yaml:"name"`
	Abstract   bool              `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	Supertypes []string          `json:"supertypes,omitempty" yaml:"supertypes,omitempty"`
	Tags       map[string]string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Attributes []*Attribute      `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	References []*Reference      `json:"references,omitempty" yaml:"references,omitempty"`
}

// Attribute describes a class attribute.
type Attribute struct {
	Name         string            `json:"name" yaml:"name"`
	Type         string            `json:"type" yaml:"type"`
	Multiplicity string            `json:"multiplicity,omitempty" yaml:"multiplicity,omitempty"`
	Ordered      bool              `json:"ordered,omitempty" yaml:"ordered,omitempty"`
	Unique       bool              `json:"unique,omitempty" yaml:"unique,omitempty"`
	Derived      bool              `json:"derived,omitempty" yaml:"derived,omitempty"`
	Static       bool              `json:"static,omitempty" yaml:"static,omitempty"`
	Visibility   string            `json:"visibility,omitempty" yaml:"visibility,omitempty"`
	Tags         map[string]string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Association describes a two-ended association.
type Association struct {
	Name    string            `json:"name" yaml:"name"`
	Derived bool              `json:"derived,omitempty" yaml:"derived,omitempty"`
	Tags    map[string]string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Ends    []*End            `json:"ends" yaml:"ends"`
}

// End describes an association end.
type End struct {
	Name         string `json:"name" yaml:"name"`
	Type         string `json:"type" yaml:"type"`
	Multiplicity string `json:"multiplicity,omitempty" yaml:"multiplicity,omitempty"`
	Ordered      bool   `json:"ordered,omitempty" yaml:"ordered,omitempty"`
	Unique       bool   `json:"unique,omitempty" yaml:"unique,omitempty"`
	Composite    bool   `json:"composite,omitempty" yaml:"composite,omitempty"`
	// Changeable and Navigable default to true.
	Changeable *bool `json:"changeable,omitempty" yaml:"changeable,omitempty"`
	Navigable  *bool `json:"navigable,omitempty" yaml:"navigable,omitempty"`
}

// Reference describes a navigable reference. Association is the
// association name, qualified or relative to the class's package, and End
// the name of the referenced end.
type Reference struct {
	Name        string `json:"name" yaml:"name"`
	Association string `json:"association" yaml:"association"`
	End         string `json:"end" yaml:"end"`
	Visibility  string `json:"visibility,omitempty" yaml:"visibility,omitempty"`
}
