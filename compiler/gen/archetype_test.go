package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enkigen/enki/dialect/hbm"
	"github.com/enkigen/enki/metamodel"
)

var (
	classA = &metamodel.Classifier{Name: "A", Kind: metamodel.KindClass}
	classB = &metamodel.Classifier{Name: "B", Kind: metamodel.KindClass}
)

type endSpec struct {
	mult      metamodel.Multiplicity
	ordered   bool
	composite bool
}

func newAssociation(name string, e0, e1 endSpec, tags metamodel.Tags) *metamodel.Association {
	a := &metamodel.Association{Name: name, Tags: tags}
	for i, spec := range [2]endSpec{e0, e1} {
		m := spec.mult
		m.Ordered = spec.ordered
		end := &metamodel.AssociationEnd{
			Name:         [2]string{"a", "b"}[i],
			Type:         [2]*metamodel.Classifier{classA, classB}[i],
			Multiplicity: m,
			Changeable:   true,
			Navigable:    true,
			Association:  a,
		}
		if spec.composite {
			end.Aggregation = metamodel.AggregationComposite
		}
		a.Ends[i] = end
	}
	return a
}

func TestNewAssociationInfo(t *testing.T) {
	var (
		one  = endSpec{mult: metamodel.One}
		opt  = endSpec{mult: metamodel.Optional}
		many = endSpec{mult: metamodel.Many}
	)
	highCard := metamodel.Tags{metamodel.TagHighCardinality: "true"}
	tests := []struct {
		name      string
		e0, e1    endSpec
		tags      metamodel.Tags
		kind      AssociationKind
		archetype Archetype
		parent    int
	}{
		{"one to one", opt, one, nil, OneToOne, OneToOneLazy, 0},
		{"one to one composite end 1", opt, endSpec{mult: metamodel.One, composite: true}, nil, OneToOne, OneToOneLazy, 1},
		{"one to many", opt, many, nil, OneToMany, OneToManyLazy, 0},
		{"many to one", many, one, nil, OneToMany, OneToManyLazy, 1},
		{"composite one to many", endSpec{mult: metamodel.Optional, composite: true}, many, nil, OneToMany, OneToManyLazy, 0},
		{"ordered", opt, endSpec{mult: metamodel.Many, ordered: true}, nil, OneToMany, OneToManyLazyOrdered, 0},
		{"high cardinality", opt, many, highCard, OneToMany, OneToManyLazyHighCardinality, 0},
		{"ordered wins over high cardinality", opt, endSpec{mult: metamodel.Many, ordered: true}, highCard, OneToMany, OneToManyLazyOrdered, 0},
		{"many to many", many, many, nil, ManyToMany, ManyToManyLazy, 0},
		{"ordered many to many", endSpec{mult: metamodel.Many, ordered: true}, many, nil, ManyToMany, ManyToManyLazyOrdered, 0},
		{"many to many ignores high cardinality", many, many, highCard, ManyToMany, ManyToManyLazy, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := NewAssociationInfo(newAssociation("Assoc", tt.e0, tt.e1, tt.tags))
			require.NoError(t, err)
			assert.Equal(t, tt.kind, info.Kind)
			assert.Equal(t, tt.archetype, info.Archetype)
			assert.Equal(t, tt.parent, info.Parent)
			assert.Equal(t, "a", info.End(0).Name)
			assert.Same(t, classB, info.End(1).Type)
		})
	}
}

func TestNewAssociationInfoErrors(t *testing.T) {
	tests := []struct {
		name   string
		e0, e1 endSpec
		want   string
	}{
		{
			name: "both composite",
			e0:   endSpec{mult: metamodel.Optional, composite: true},
			e1:   endSpec{mult: metamodel.One, composite: true},
			want: "enki: association error on Assoc (a -> b): both ends are composite",
		},
		{
			name: "many-valued composite",
			e0:   endSpec{mult: metamodel.Many, composite: true},
			e1:   endSpec{mult: metamodel.One},
			want: "composite end has multiplicity 0..*",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAssociationInfo(newAssociation("Assoc", tt.e0, tt.e1, nil))
			require.Error(t, err)
			assert.True(t, IsAssociationError(err))
			assert.ErrorIs(t, err, ErrInvalidAssociation)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSelectArchetypeRejectsSingleValuedManyToMany(t *testing.T) {
	ends := [2]End{
		{Name: "a", Multiplicity: metamodel.Many},
		{Name: "b", Multiplicity: metamodel.One},
	}
	_, err := selectArchetype(ManyToMany, ends, false)
	assert.EqualError(t, err, "many-to-many association has a single-valued end")
}

func TestArchetypeString(t *testing.T) {
	assert.Equal(t, "OneToManyLazyHighCardinality", OneToManyLazyHighCardinality.String())
	assert.Equal(t, "Archetype(0)", Archetype(0).String())
	assert.Len(t, Archetypes, 6)
	assert.True(t, ManyToManyLazyOrdered.ManyToMany())
	assert.False(t, OneToManyLazyOrdered.ManyToMany())
}

func TestArchetypeClass(t *testing.T) {
	n := NewNames(testConfig(t))

	t.Run("one to one", func(t *testing.T) {
		c := archetypeClass(OneToOneLazy, n)
		assert.Equal(t, "org.eigenbase.enki.hibernate.storage.HibernateOneToOneLazyAssociation", c.Name)
		assert.Equal(t, "`ENKI_AssocOneToOneLazy`", c.Table)
		assert.Equal(t, "ENKI_ENKI", c.Cache.Region)
		assert.Equal(t, "assigned", c.ID.Generator.Class)
		var names []string
		for _, m := range c.Members {
			names = append(names, m.MemberName())
		}
		assert.Equal(t, []string{"type", "parentType", "parentId", "childType", "childId"}, names)
		assert.Equal(t, "from "+c.Name+" where type = :type", c.Query("allLinks").HQL)
	})
	t.Run("ordered one to many", func(t *testing.T) {
		c := archetypeClass(OneToManyLazyOrdered, n)
		coll, ok := c.Member("children").(*hbm.Collection)
		require.True(t, ok)
		assert.Equal(t, hbm.List, coll.Kind())
		assert.Equal(t, "`ENKI_AssocOneToManyLazyOrdered$Children`", coll.Table)
		assert.Equal(t, "`mofId`", coll.Key.Column)
		assert.Equal(t, "`ordinal`", coll.ListIndex.Column)
		assert.Equal(t, c.Name+"$Element", coll.CompositeElement.Class)
		require.Len(t, coll.CompositeElement.Members, 2)
		assert.Equal(t, "childType", coll.CompositeElement.Members[0].MemberName())
		assert.Equal(t, "childId", coll.CompositeElement.Members[1].MemberName())
		assert.Nil(t, c.Member("reversed"))
	})
	t.Run("high cardinality", func(t *testing.T) {
		coll := archetypeClass(OneToManyLazyHighCardinality, n).Member("children").(*hbm.Collection)
		assert.Equal(t, hbm.Bag, coll.Kind())
		assert.Equal(t, "extra", coll.Lazy)
		assert.Nil(t, coll.ListIndex)
	})
	t.Run("many to many", func(t *testing.T) {
		c := archetypeClass(ManyToManyLazy, n)
		coll := c.Member("targets").(*hbm.Collection)
		assert.Equal(t, hbm.Set, coll.Kind())
		assert.NotNil(t, c.Member("reversed"))
		assert.NotNil(t, c.Member("sourceId"))
		assert.Equal(t, "from "+c.Name+" where type = :type and reversed = 0", c.Query("allLinks").HQL)
		assert.Equal(t, "ENKI_ENKI_QUERY", c.Query("allLinks").CacheRegion)
	})
}

func TestArchetypeIndexes(t *testing.T) {
	n := NewNames(testConfig(t))
	assert.Equal(t, []indexedColumn{
		{table: "ENKI_AssocOneToOneLazy", column: "parentId"},
		{table: "ENKI_AssocOneToOneLazy", column: "childId"},
	}, archetypeIndexes(OneToOneLazy, n))
	assert.Equal(t, []indexedColumn{
		{table: "ENKI_AssocManyToManyLazy", column: "sourceId"},
		{table: "ENKI_AssocManyToManyLazy$Targets", column: "mofId"},
		{table: "ENKI_AssocManyToManyLazy$Targets", column: "targetId"},
	}, archetypeIndexes(ManyToManyLazy, n))
}
