// Package gen generates Hibernate mappings from MOF metamodels.
//
// A run has two passes over a read-only metamodel. Collect gathers the
// shape of every association and the class-typed attributes of the mapped
// classes. Emit then builds, per concrete class, a class mapping with its
// properties, collections, association links and named queries, followed by
// the shared association archetypes, index and view DDL, the properties file
// and an optional Go catalog. Write renders the artifacts to disk.
//
//	cfg, err := gen.NewConfig(
//		gen.WithTarget("out"),
//		gen.WithTablePrefix("ENKI_"),
//	)
//	if err != nil {
//		return err
//	}
//	arts, err := gen.Generate(ctx, model, cfg)
//
// # Associations
//
// Association links are not stored as foreign keys of the class tables.
// Every association is stored in one of six archetype tables chosen by its
// kind, ordering and the enki.highCardinality tag:
//
//	OneToOneLazy                  parentType, parentId, childType, childId
//	OneToManyLazy                 parent columns + set of children
//	OneToManyLazyHighCardinality  parent columns + extra-lazy bag of children
//	OneToManyLazyOrdered          parent columns + list of children
//	ManyToManyLazy                source columns, reversed + set of targets
//	ManyToManyLazyOrdered         source columns, reversed + list of targets
//
// Class-typed attributes are treated as associations between the owner and
// the attribute type. An association without an explicit reference is
// attached to the class matching one of its ends; if both ends match, the
// model must add a reference.
//
// # Errors
//
// Every failure is a *GenerationError carrying the phase it occurred in and
// wrapping a *SchemaError, *AssociationError, *ConfigError or *DialectError.
// Output of a failed run is incomplete and must be discarded.
package gen
