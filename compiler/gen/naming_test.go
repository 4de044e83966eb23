package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	m := sampleModel(t)
	n := NewNames(testConfig(t))
	box := lookup(t, m, "Shop.Box")
	element := lookup(t, m, "Shop.Element")

	assert.Equal(t, "ENKI_Shop_Box", n.Table(box))
	assert.Equal(t, "ENKI_Shop_Box$Notes", n.CollectionTable(n.Table(box), "notes"))
	assert.Equal(t, "ENKI_Shop_Box$Notes_mofIdIndex", n.Index("ENKI_Shop_Box$Notes", "mofId"))
	assert.Equal(t, "ENKI_ENKI", n.CacheRegion())
	assert.Equal(t, "ENKI_ENKI_QUERY", n.QueryCacheRegion())
	assert.Equal(t, "ENKI_VC_Shop_Box", n.ClassView(box))
	assert.Equal(t, "ENKI_VT_Shop_Element", n.TypeView(element))
	assert.Equal(t, "ENKI_AssocOneToManyLazy", n.ArchetypeTable(OneToManyLazy, ""))
	assert.Equal(t, "ENKI_AssocOneToManyLazy$Children", n.elementTable(OneToManyLazy))
	assert.Empty(t, n.elementTable(OneToOneLazy))
	assert.Equal(t, "org.eigenbase.enki.hibernate.storage.HibernateOneToOneLazyAssociation", n.ArchetypeClass(OneToOneLazy))
	assert.Equal(t, "org.eigenbase.enki.hibernate.storage.HibernateManyToManyLazyAssociation$Element", n.ArchetypeElement(ManyToManyLazy))
	assert.Equal(t, "org.example.shop.Box", n.Interface(box))
	assert.Equal(t, "org.example.shop.BoxImpl", n.Implementation(box))
}

func TestNamesWithoutPrefix(t *testing.T) {
	m := sampleModel(t)
	cfg := testConfig(t, WithTablePrefix(""), WithImplSuffix("Hib"))
	n := NewNames(cfg)
	box := lookup(t, m, "Shop.Box")

	assert.Equal(t, "Shop_Box", n.Table(box))
	assert.Equal(t, "ENKI", n.CacheRegion())
	assert.Equal(t, "ENKI_QUERY", n.QueryCacheRegion())
	assert.Equal(t, "VC_Shop_Box", n.ClassView(box))
	assert.Equal(t, "AssocOneToOneLazy", n.ArchetypeTable(OneToOneLazy, ""))
	assert.Equal(t, "org.example.shop.BoxHib", n.Implementation(box))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		limit int
		in    string
		want  string
	}{
		{limit: 0, in: "a_very_long_identifier", want: "a_very_long_identifier"},
		{limit: 10, in: "abcdefghijkl", want: "abcdefghij"},
		{limit: 10, in: "abc", want: "abc"},
		{limit: 3, in: "ééééé", want: "ééé"},
	}
	for _, tt := range tests {
		n := &Names{limit: tt.limit}
		assert.Equal(t, tt.want, n.Truncate(tt.in))
	}

	m := sampleModel(t)
	n := NewNames(testConfig(t, WithIdentifierLimit(8)))
	assert.Equal(t, "ENKI_Sho", n.Table(lookup(t, m, "Shop.Box")))
	assert.Equal(t, "ENKI_Ass", n.ArchetypeTable(ManyToManyLazyOrdered, ""))
}

func TestFieldName(t *testing.T) {
	tests := map[string]string{
		"name":       "name",
		"taggedBy":   "taggedBy",
		"tagged_by":  "taggedBy",
		"first name": "firstName",
		"Parent-Id":  "parentId",
		"a:b":        "aB",
	}
	for in, want := range tests {
		assert.Equal(t, want, FieldName(in), in)
	}
}

func TestInitialUpper(t *testing.T) {
	assert.Equal(t, "Notes", InitialUpper("notes"))
	assert.Equal(t, "FirstName", InitialUpper("firstName"))
	assert.Equal(t, "getFirstName", AccessorName("firstName"))
}

func TestJavaPackageAndTables(t *testing.T) {
	m := buildModel(t, `
name: Nested
packages:
  - name: Outer
    tags:
      javax.jmi.packagePrefix: com.acme
    packages:
      - name: Inner
        classes:
          - name: Widget
      - name: Renamed
        tags:
          javax.jmi.substituteName: Sub
          enki.tablePackageName: RN
        classes:
          - name: order line
`)
	n := NewNames(testConfig(t))
	widget := lookup(t, m, "Outer.Inner.Widget")
	assert.Equal(t, "com.acme.outer.inner", JavaPackage(widget.Container))
	assert.Equal(t, "ENKI_Inner_Widget", n.Table(widget))

	line := lookup(t, m, "Outer.Renamed.order line")
	assert.Equal(t, "com.acme.outer.sub", JavaPackage(line.Container))
	assert.Equal(t, "ENKI_RN_OrderLine", n.Table(line))
	assert.Equal(t, "com.acme.outer.sub.OrderLineImpl", n.Implementation(line))
}

func TestComponentNamesAreDistinct(t *testing.T) {
	m := buildModel(t, `
name: Components
packages:
  - name: P
    classes:
      - name: T
      - name: A
        attributes:
          - name: target
            type: T
      - name: B
        attributes:
          - name: target
            type: T
`)
	a, b := lookup(t, m, "P.A"), lookup(t, m, "P.B")
	ca := ComponentName(attribute(t, a, "target"), a)
	cb := ComponentName(attribute(t, b, "target"), b)
	assert.Equal(t, "target$Comp$A", ca)
	assert.Equal(t, "target$Comp$B", cb)
	assert.NotEqual(t, ca, cb)

	md, err := Collect(m, testConfig(t))
	require.NoError(t, err)
	comps := md.Components(lookup(t, m, "P.T"))
	require.Len(t, comps, 2)
	assert.NotEqual(t, comps[0].BaseName(), comps[1].BaseName())
	assert.NotEqual(t, comps[0].Reversed().FieldName(), comps[1].Reversed().FieldName())
}
