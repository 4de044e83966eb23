// Package metamodel describes the read-only MOF graph consumed by the
// mapping generator.
//
// A Model holds top-level packages. Packages contain classifiers (classes,
// primitive types, enumerations, aliases and structure types), nested
// packages and associations. Classes own attributes and references; a
// reference exposes one end of an association from the perspective of its
// owning class.
//
// The graph is built once, usually through compiler/load, and is never
// mutated by the generator:
//
//	model, err := load.LoadFile("model.yaml")
//	for _, c := range model.Classes() {
//	    for _, a := range c.AllAttributes() {
//	        fmt.Println(c.QualifiedName(), a.Name, a.Multiplicity)
//	    }
//	}
package metamodel
