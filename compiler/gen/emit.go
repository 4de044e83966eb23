package gen

import (
	"fmt"
	"log/slog"

	"github.com/dave/jennifer/jen"

	"github.com/enkigen/enki/dialect"
	"github.com/enkigen/enki/dialect/hbm"
	"github.com/enkigen/enki/metamodel"
)

// Artifacts are the outputs of a generation run, built in memory before
// anything is written.
type Artifacts struct {
	// Mapping holds the class, archetype and query mappings.
	Mapping *hbm.Mapping
	// Indexes holds the index and view DDL.
	Indexes *hbm.Mapping
	// Properties is the flat configuration read by the runtime.
	Properties Properties
	// Catalog is the Go catalog, nil unless enabled.
	Catalog *jen.File
	// CatalogPackage is the directory and package name of Catalog.
	CatalogPackage string
}

type emitter struct {
	model   *metamodel.Model
	md      *Metadata
	cfg     *Config
	names   *Names
	log     *slog.Logger
	phase   Phase
	onPhase func(Phase)

	arts    *Artifacts
	indexed []indexedColumn
	views   map[*metamodel.Classifier]*classView
	mapped  []*metamodel.Classifier
}

// Emit runs the emission pass over a model and its collected metadata.
// It has no side effects; the returned artifacts are written by Write.
func Emit(model *metamodel.Model, md *Metadata, cfg *Config) (*Artifacts, error) {
	return emit(model, md, cfg, nil)
}

func emit(model *metamodel.Model, md *Metadata, cfg *Config, onPhase func(Phase)) (*Artifacts, error) {
	e := &emitter{
		model:   model,
		md:      md,
		cfg:     cfg,
		names:   NewNames(cfg),
		log:     cfg.logger(),
		onPhase: onPhase,
		arts: &Artifacts{
			Mapping: &hbm.Mapping{Comment: generatedComment},
			Indexes: &hbm.Mapping{Comment: generatedComment},
		},
		views: make(map[*metamodel.Classifier]*classView),
	}
	if err := e.run(); err != nil {
		return nil, NewGenerationError(e.phase.String(), "", "", err)
	}
	return e.arts, nil
}

var generatedComment = []byte(" Generated by enki. DO NOT EDIT. ")

func (e *emitter) enter(p Phase) {
	e.phase = p
	e.log.Debug("generation phase", "phase", p.String())
	if e.onPhase != nil {
		e.onPhase(p)
	}
}

func (e *emitter) run() error {
	if e.cfg.TablePrefix == "" {
		e.log.Warn("no table prefix configured; the schema can hold the tables of a single metamodel")
	}
	e.enter(PhaseEmittingClasses)
	for _, c := range e.model.Classes() {
		if !c.IsConcrete() {
			continue
		}
		switch {
		case !e.cfg.Includes(c.Container):
			e.log.Info("skipping class", "class", c.QualifiedName(), "reason", "package not included")
			continue
		case e.cfg.IsTransient(c):
			e.log.Info("skipping class", "class", c.QualifiedName(), "reason", "transient")
			continue
		}
		if err := e.emitClass(c); err != nil {
			return err
		}
	}

	e.enter(PhaseEmittingArchetypes)
	e.emitTypeQueries()
	if !e.cfg.Plugin {
		for _, a := range Archetypes {
			e.arts.Mapping.Classes = append(e.arts.Mapping.Classes, archetypeClass(a, e.names))
			e.indexed = append(e.indexed, archetypeIndexes(a, e.names)...)
		}
	}

	e.enter(PhaseEmittingIndexesAndViews)
	objs, err := indexObjects(e.indexed, e.names, e.cfg.Dialects)
	if err != nil {
		return err
	}
	e.arts.Indexes.DatabaseObjects = objs
	if e.cfg.Views {
		views, err := e.viewObjects()
		if err != nil {
			return err
		}
		e.arts.Indexes.DatabaseObjects = append(e.arts.Indexes.DatabaseObjects, views...)
	}

	e.enter(PhaseEmittingProperties)
	props, err := e.properties()
	if err != nil {
		return err
	}
	e.arts.Properties = props
	if e.cfg.Catalog != "" {
		e.arts.Catalog = e.catalog(props.Get(PropInitializer))
		e.arts.CatalogPackage = e.cfg.Catalog
	}
	return nil
}

// emitClass emits the mapping of one concrete class.
func (e *emitter) emitClass(c *metamodel.Classifier) error {
	var (
		table = e.names.Table(c)
		impl  = e.names.Implementation(c)
		cls   = &hbm.Class{
			Name:  impl,
			Table: mq(table),
			Cache: e.cache(),
			ID:    idMapping(),
		}
		view = &classView{table: table}
		refs []ReferenceInfo
		seen = map[string]string{idName: "the id"}
	)
	add := func(m hbm.Member, source string) error {
		if prev, ok := seen[m.MemberName()]; ok {
			return NewSchemaError(c.QualifiedName(), source, fmt.Sprintf("field %q collides with %s", m.MemberName(), prev), nil)
		}
		seen[m.MemberName()] = source
		cls.Members = append(cls.Members, m)
		return nil
	}
	for _, a := range c.AllAttributes() {
		if !a.IsStored() {
			continue
		}
		field := FieldName(a.Name)
		var member hbm.Member
		switch mt := Classify(a.Type, a.Multiplicity); mt {
		case MappingEnumeration:
			member = &hbm.Property{Name: field, Column: mq(field), Type: "string", Length: enumLength}
			view.columns = append(view.columns, field)
		case MappingClass:
			refs = append(refs, NewComponentRef(a, c))
		case MappingString:
			n, err := e.maxLength(a)
			if err != nil {
				return err
			}
			p := &hbm.Property{Name: field, Column: mq(field)}
			p.Type, p.Length = stringType(n)
			member = p
			view.columns = append(view.columns, field)
		case MappingList, MappingCollection:
			coll, err := e.collection(table, field, a, mt)
			if err != nil {
				return err
			}
			member = coll
		case MappingBoolean, MappingOtherDataType:
			member = &hbm.Property{Name: field, Column: mq(field)}
			view.columns = append(view.columns, field)
		default:
			return NewSchemaError(a.Owner.QualifiedName(), a.Name, "unknown mapping type "+mt.String(), nil)
		}
		if member != nil {
			if err := add(member, "attribute "+a.Name); err != nil {
				return err
			}
		}
	}

	for _, r := range c.AllReferences() {
		if info := e.md.Association(r.Association()); info != nil {
			refs = append(refs, NewExplicitRef(r, info))
		}
	}
	found, unreferenced, err := FindUnreferenced(e.md.associations, c, e.md.references)
	if err != nil {
		return err
	}
	for _, a := range found {
		refs = append(refs, unreferenced[a])
	}
	for _, t := range append([]*metamodel.Classifier{c}, c.AllSupertypes()...) {
		for _, comp := range e.md.components[t] {
			refs = append(refs, comp.Reversed())
		}
	}
	for _, r := range refs {
		m := &hbm.ManyToOne{
			Name:    r.FieldName(),
			Column:  mq(r.FieldName()),
			Class:   e.names.ArchetypeClass(r.Archetype()),
			NotNull: false,
			Cascade: "save-update",
		}
		if err := add(m, r.Name()); err != nil {
			return err
		}
		if j, ok := e.viewJoin(r); ok {
			view.joins = append(view.joins, j)
		}
	}

	cls.Queries = []*hbm.Query{
		e.query("allOfClass", fmt.Sprintf("from %s as o where o.class = %s", impl, impl)),
		e.query("byMofId", fmt.Sprintf("from %s where mofId = :mofId", impl)),
	}
	e.arts.Mapping.Classes = append(e.arts.Mapping.Classes, cls)
	e.views[c] = view
	e.mapped = append(e.mapped, c)
	return nil
}

// emitTypeQueries emits one polymorphic query per class over its interface.
func (e *emitter) emitTypeQueries() {
	for _, c := range e.model.Classes() {
		if !e.cfg.generated(c) {
			continue
		}
		iface := e.names.Interface(c)
		e.arts.Mapping.Queries = append(e.arts.Mapping.Queries, e.query(iface+".allOfType", "from "+iface))
	}
}

// collection maps a multi-valued primitive attribute to a dependent table.
func (e *emitter) collection(ownerTable, field string, a *metamodel.Attribute, mt MappingType) (*hbm.Collection, error) {
	kind := hbm.Bag
	switch {
	case mt == MappingList:
		kind = hbm.List
	case a.Multiplicity.Unique:
		kind = hbm.Set
	}
	table := e.names.CollectionTable(ownerTable, field)
	coll := hbm.NewCollection(kind, field, mq(table))
	coll.Cascade = "all"
	coll.Lazy = "true"
	coll.Key = &hbm.Key{Column: mq(idName)}
	if kind == hbm.List {
		coll.ListIndex = &hbm.ListIndex{Column: mq(ordinalName)}
	}
	el := &hbm.Element{Column: mq(field), Type: elementType(a.Type), NotNull: true}
	if el.Type == "string" {
		n, err := e.maxLength(a)
		if err != nil {
			return nil, err
		}
		el.Type, el.Length = stringType(n)
	}
	coll.Element = el
	e.indexed = append(e.indexed, indexedColumn{table: table, column: idName})
	return coll, nil
}

// maxLength returns the column length of a string attribute: the max length
// tag of the attribute, its owner or the nearest container package, or the
// configured default.
func (e *emitter) maxLength(a *metamodel.Attribute) (int, error) {
	sources := []metamodel.Tags{a.Tags, a.Owner.Tags}
	for p := a.Owner.Container; p != nil; p = p.Container {
		sources = append(sources, p.Tags)
	}
	for _, tags := range sources {
		n, ok, err := tags.Int(metamodel.TagMaxLength)
		if err != nil {
			return 0, NewSchemaError(a.Owner.QualifiedName(), a.Name, "invalid "+metamodel.TagMaxLength, err)
		}
		if !ok {
			continue
		}
		if n <= 0 {
			return 0, NewSchemaError(a.Owner.QualifiedName(), a.Name, fmt.Sprintf("%s must be positive, got %d", metamodel.TagMaxLength, n), nil)
		}
		return n, nil
	}
	return e.cfg.DefaultStringLength, nil
}

// stringType returns the Hibernate type of a string column of length n.
// Long values are streamed, as some databases refuse to bind them.
func stringType(n int) (string, int) {
	if n <= stringCutoff {
		return "string", n
	}
	return "text", 0
}

func (e *emitter) cache() *hbm.Cache {
	return &hbm.Cache{Usage: "read-write", Region: e.names.CacheRegion()}
}

func (e *emitter) query(name, hql string) *hbm.Query {
	return &hbm.Query{
		Name:        name,
		Cacheable:   true,
		CacheRegion: e.names.QueryCacheRegion(),
		HQL:         hql,
	}
}

// idMapping returns the assigned mofId identifier. MOF ids are allocated
// by the repository, never by the database.
func idMapping() *hbm.ID {
	return &hbm.ID{
		Name:      idName,
		Column:    mq(idName),
		Type:      "long",
		Generator: &hbm.Generator{Class: "assigned"},
	}
}

// mq quotes an identifier for the mapping document.
func mq(s string) string {
	return dialect.MappingQuote + s + dialect.MappingQuote
}
