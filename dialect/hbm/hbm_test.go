package hbm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *Mapping {
	list := NewCollection(List, "Notes", "ENKI_Shop_Box$Notes")
	list.Cascade = "all"
	list.Key = &Key{Column: "mofId"}
	list.ListIndex = &ListIndex{Column: "ordinal"}
	list.Element = &Element{Column: "Notes", Type: "string", Length: 128}
	return &Mapping{
		DefaultAccess: "field",
		Comment:       comment("Generated mapping"),
		Classes: []*Class{{
			Name:  "org.example.shop.BoxImpl",
			Table: "ENKI_Shop_Box",
			Cache: &Cache{Usage: "read-write", Region: "ENKI_ENKI"},
			ID:    &ID{Name: "mofId", Column: "mofId", Type: "long", Generator: &Generator{Class: "assigned"}},
			Members: []Member{
				&Property{Name: "name", Column: "name", Type: "string", Length: 128},
				&ManyToOne{Name: "items", Column: "items", Class: "org.example.Assoc", Cascade: "save-update"},
				list,
			},
			Queries: []*Query{{
				Name:        "allOfClass",
				Cacheable:   true,
				CacheRegion: "ENKI_ENKI_QUERY",
				HQL:         "from BoxImpl as o where o.class = BoxImpl",
			}},
		}},
		Queries: []*Query{{Name: "org.example.shop.Box.allOfType", HQL: "from org.example.shop.Box"}},
		DatabaseObjects: []*DatabaseObject{{
			Create: Statement{SQL: "CREATE INDEX i ON t (c)"},
			Drop:   Statement{SQL: "DROP INDEX i"},
			Scopes: []*DialectScope{{Name: "org.hibernate.dialect.HSQLDialect"}},
		}},
	}
}

func comment(s string) []byte { return []byte(" " + s + " ") }

func TestMarshal(t *testing.T) {
	b, err := Marshal(sample())
	require.NoError(t, err)
	out := string(b)

	assert.True(t, strings.HasPrefix(out, Header))
	for _, want := range []string{
		`<hibernate-mapping default-access="field">`,
		`<!-- Generated mapping -->`,
		`<class name="org.example.shop.BoxImpl" table="ENKI_Shop_Box">`,
		`<cache usage="read-write" region="ENKI_ENKI"></cache>`,
		`<generator class="assigned"></generator>`,
		`<property name="name" column="name" type="string" length="128"></property>`,
		`<many-to-one name="items" column="items" class="org.example.Assoc" not-null="false" cascade="save-update"></many-to-one>`,
		`<list name="Notes" table="ENKI_Shop_Box$Notes" cascade="all">`,
		`<list-index column="ordinal"></list-index>`,
		`<query name="allOfClass" cacheable="true" cache-region="ENKI_ENKI_QUERY"><![CDATA[from BoxImpl as o where o.class = BoxImpl]]></query>`,
		`<create><![CDATA[CREATE INDEX i ON t (c)]]></create>`,
		`<dialect-scope name="org.hibernate.dialect.HSQLDialect"></dialect-scope>`,
	} {
		assert.Contains(t, out, want)
	}

	// members keep insertion order
	assert.Less(t, strings.Index(out, `<property name="name"`), strings.Index(out, `<many-to-one`))
	assert.Less(t, strings.Index(out, `<many-to-one`), strings.Index(out, `<list `))
	// top level queries follow classes, database objects come last
	assert.Less(t, strings.Index(out, `</class>`), strings.Index(out, `allOfType`))
	assert.Less(t, strings.Index(out, `allOfType`), strings.Index(out, `<database-object>`))
}

func TestMarshalDeterministic(t *testing.T) {
	a, err := Marshal(sample())
	require.NoError(t, err)
	b, err := Marshal(sample())
	require.NoError(t, err)
	assert.Equal(t, a, b)

	var buf bytes.Buffer
	n, err := sample().WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len(a)), n)
	assert.Equal(t, a, buf.Bytes())
}

func TestLookups(t *testing.T) {
	m := sample()
	c := m.Class("org.example.shop.BoxImpl")
	require.NotNil(t, c)
	assert.Nil(t, m.Class("nope"))

	coll, ok := c.Member("Notes").(*Collection)
	require.True(t, ok)
	assert.Equal(t, List, coll.Kind())
	assert.Nil(t, c.Member("nope"))

	assert.NotNil(t, c.Query("allOfClass"))
	assert.Nil(t, c.Query("byMofId"))
	assert.NotNil(t, m.Query("org.example.shop.Box.allOfType"))

	assert.True(t, m.DatabaseObjects[0].Scoped("org.hibernate.dialect.HSQLDialect"))
	assert.False(t, m.DatabaseObjects[0].Scoped("org.hibernate.dialect.MySQLDialect"))
}

func TestCollectionKinds(t *testing.T) {
	for _, kind := range []string{List, Bag, Set} {
		t.Run(kind, func(t *testing.T) {
			c := NewCollection(kind, "f", "t")
			c.Key = &Key{Column: "mofId"}
			b, err := Marshal(&Mapping{Classes: []*Class{{Name: "C", Table: "T", Members: []Member{c}}}})
			require.NoError(t, err)
			assert.Contains(t, string(b), "<"+kind+` name="f" table="t">`)
			assert.Contains(t, string(b), "</"+kind+">")
		})
	}
}

func TestReadDatabaseObjects(t *testing.T) {
	m := sample()
	b, err := Marshal(m)
	require.NoError(t, err)

	objs, err := ReadDatabaseObjects(bytes.NewReader(b))
	require.NoError(t, err)
	require.Len(t, objs, len(m.DatabaseObjects))
	for i, o := range objs {
		assert.Equal(t, m.DatabaseObjects[i].Create.SQL, o.Create.SQL)
		assert.Equal(t, m.DatabaseObjects[i].Drop.SQL, o.Drop.SQL)
		require.Len(t, o.Scopes, len(m.DatabaseObjects[i].Scopes))
		assert.Equal(t, m.DatabaseObjects[i].Scopes[0].Name, o.Scopes[0].Name)
	}

	_, err = ReadDatabaseObjects(strings.NewReader("<not-a-mapping/>"))
	assert.Error(t, err)
}
