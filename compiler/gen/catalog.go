package gen

import (
	"github.com/dave/jennifer/jen"
)

// catalog renders the Go catalog of the mapping: the names a data-access
// layer needs to address the generated tables and queries.
func (e *emitter) catalog(initializer string) *jen.File {
	f := jen.NewFile(e.cfg.Catalog)
	f.HeaderComment("Code generated by enki. DO NOT EDIT.")

	f.Const().Defs(
		jen.Comment("Initializer is the class initializing the extent."),
		jen.Id("Initializer").Op("=").Lit(initializer),
		jen.Comment("TablePrefix is prepended to every table, view and cache region."),
		jen.Id("TablePrefix").Op("=").Lit(e.cfg.TablePrefix),
		jen.Comment("CacheRegion is the second level cache region of the mapped classes."),
		jen.Id("CacheRegion").Op("=").Lit(e.names.CacheRegion()),
		jen.Comment("QueryCacheRegion is the cache region of the named queries."),
		jen.Id("QueryCacheRegion").Op("=").Lit(e.names.QueryCacheRegion()),
	)

	f.Comment("Class is a mapped class.")
	f.Type().Id("Class").Struct(
		jen.Id("Interface").String(),
		jen.Id("Implementation").String(),
		jen.Id("Table").String(),
		jen.Id("Queries").Index().String(),
	)

	classes := make([]jen.Code, 0, len(e.mapped))
	for _, c := range e.mapped {
		classes = append(classes, jen.Values(jen.Dict{
			jen.Id("Interface"):      jen.Lit(e.names.Interface(c)),
			jen.Id("Implementation"): jen.Lit(e.names.Implementation(c)),
			jen.Id("Table"):          jen.Lit(e.names.Table(c)),
			jen.Id("Queries"):        jen.Index().String().Values(jen.Lit("allOfClass"), jen.Lit("byMofId")),
		}))
	}
	f.Comment("Classes lists the mapped classes in declaration order.")
	f.Var().Id("Classes").Op("=").Index().Id("Class").Custom(multiline, classes...)

	if e.cfg.Plugin {
		return f
	}
	f.Comment("Archetype is a shared association table.")
	f.Type().Id("Archetype").Struct(
		jen.Id("Name").String(),
		jen.Id("Class").String(),
		jen.Id("Table").String(),
	)
	archetypes := make([]jen.Code, 0, len(Archetypes))
	for _, a := range Archetypes {
		archetypes = append(archetypes, jen.Values(jen.Dict{
			jen.Id("Name"):  jen.Lit(a.String()),
			jen.Id("Class"): jen.Lit(e.names.ArchetypeClass(a)),
			jen.Id("Table"): jen.Lit(e.names.ArchetypeTable(a, "")),
		}))
	}
	f.Comment("Archetypes lists the association tables.")
	f.Var().Id("Archetypes").Op("=").Index().Id("Archetype").Custom(multiline, archetypes...)
	return f
}

// multiline renders a composite literal with one element per line.
var multiline = jen.Options{Open: "{", Close: "}", Separator: ",", Multi: true}
