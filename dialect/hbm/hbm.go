// Package hbm models Hibernate XML mapping documents and renders them
// deterministically.
//
// Elements are marshaled in the order they are appended, so two documents
// built from the same input render to identical bytes.
package hbm

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

// Header is written before every document.
const Header = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE hibernate-mapping PUBLIC
    "-//Hibernate/Hibernate Mapping DTD 3.0//EN"
    "http://hibernate.sourceforge.net/hibernate-mapping-3.0.dtd">
`

type (
	// Mapping is the hibernate-mapping root element.
	Mapping struct {
		XMLName         xml.Name          `xml:"hibernate-mapping"`
		DefaultAccess   string            `xml:"default-access,attr,omitempty"`
		DefaultLazy     *bool             `xml:"default-lazy,attr,omitempty"`
		Comment         xml.Comment       `xml:",comment"`
		Classes         []*Class          `xml:"class"`
		Queries         []*Query          `xml:"query"`
		DatabaseObjects []*DatabaseObject `xml:"database-object"`
	}

	// Class maps one persistent class to a table.
	Class struct {
		XMLName xml.Name `xml:"class"`
		Name    string   `xml:"name,attr"`
		Table   string   `xml:"table,attr"`
		Lazy    *bool    `xml:"lazy,attr,omitempty"`
		Cache   *Cache
		ID      *ID
		Members []Member
		Queries []*Query
	}

	// Cache declares the second-level cache region of a class.
	Cache struct {
		XMLName xml.Name `xml:"cache"`
		Usage   string   `xml:"usage,attr"`
		Region  string   `xml:"region,attr,omitempty"`
	}

	// ID is the identifier property of a class.
	ID struct {
		XMLName   xml.Name `xml:"id"`
		Name      string   `xml:"name,attr"`
		Column    string   `xml:"column,attr,omitempty"`
		Type      string   `xml:"type,attr"`
		Generator *Generator
	}

	// Generator names the identifier generation strategy.
	Generator struct {
		XMLName xml.Name `xml:"generator"`
		Class   string   `xml:"class,attr"`
	}

	// Query is a named HQL query.
	Query struct {
		XMLName     xml.Name `xml:"query"`
		Name        string   `xml:"name,attr"`
		Cacheable   bool     `xml:"cacheable,attr,omitempty"`
		CacheRegion string   `xml:"cache-region,attr,omitempty"`
		HQL         string   `xml:",cdata"`
	}

	// DatabaseObject is auxiliary DDL executed around schema export.
	DatabaseObject struct {
		XMLName xml.Name        `xml:"database-object"`
		Create  Statement       `xml:"create"`
		Drop    Statement       `xml:"drop"`
		Scopes  []*DialectScope `xml:"dialect-scope"`
	}

	// Statement is a SQL statement kept verbatim.
	Statement struct {
		SQL string `xml:",cdata"`
	}

	// DialectScope restricts a database object to one Hibernate dialect.
	DialectScope struct {
		Name string `xml:"name,attr"`
	}
)

// Member is a property-like child of a class or composite element.
type Member interface {
	// MemberName returns the name of the mapped property.
	MemberName() string
}

type (
	// Property maps a value property to a column.
	Property struct {
		XMLName xml.Name `xml:"property"`
		Name    string   `xml:"name,attr"`
		Column  string   `xml:"column,attr,omitempty"`
		Type    string   `xml:"type,attr,omitempty"`
		Length  int      `xml:"length,attr,omitempty"`
		NotNull bool     `xml:"not-null,attr,omitempty"`
	}

	// ManyToOne maps a foreign key column to an entity.
	ManyToOne struct {
		XMLName xml.Name `xml:"many-to-one"`
		Name    string   `xml:"name,attr"`
		Column  string   `xml:"column,attr,omitempty"`
		Class   string   `xml:"class,attr"`
		NotNull bool     `xml:"not-null,attr"`
		Cascade string   `xml:"cascade,attr,omitempty"`
		Lazy    string   `xml:"lazy,attr,omitempty"`
	}

	// Collection is a list, bag or set of values stored in its own table.
	Collection struct {
		XMLName          xml.Name
		Name             string   `xml:"name,attr"`
		Table            string   `xml:"table,attr"`
		Cascade          string   `xml:"cascade,attr,omitempty"`
		Lazy             string   `xml:"lazy,attr,omitempty"`
		Key              *Key
		ListIndex        *ListIndex
		Element          *Element
		CompositeElement *CompositeElement
	}

	// Key is the foreign key of a collection table.
	Key struct {
		XMLName xml.Name `xml:"key"`
		Column  string   `xml:"column,attr"`
	}

	// ListIndex is the position column of a list.
	ListIndex struct {
		XMLName xml.Name `xml:"list-index"`
		Column  string   `xml:"column,attr"`
	}

	// Element is the value column of a collection of values.
	Element struct {
		XMLName xml.Name `xml:"element"`
		Column  string   `xml:"column,attr"`
		Type    string   `xml:"type,attr"`
		Length  int      `xml:"length,attr,omitempty"`
		NotNull bool     `xml:"not-null,attr,omitempty"`
	}

	// CompositeElement maps a collection element to a value class.
	CompositeElement struct {
		XMLName xml.Name `xml:"composite-element"`
		Class   string   `xml:"class,attr"`
		Members []Member
	}
)

// Collection kinds.
const (
	List = "list"
	Bag  = "bag"
	Set  = "set"
)

// NewCollection returns an empty collection of the given kind.
func NewCollection(kind, name, table string) *Collection {
	return &Collection{XMLName: xml.Name{Local: kind}, Name: name, Table: table}
}

// Kind returns list, bag or set.
func (c *Collection) Kind() string { return c.XMLName.Local }

func (p *Property) MemberName() string   { return p.Name }
func (m *ManyToOne) MemberName() string  { return m.Name }
func (c *Collection) MemberName() string { return c.Name }

// Member returns the member with the given name, or nil.
func (c *Class) Member(name string) Member {
	for _, m := range c.Members {
		if m.MemberName() == name {
			return m
		}
	}
	return nil
}

// Query returns the class query with the given name, or nil.
func (c *Class) Query(name string) *Query {
	for _, q := range c.Queries {
		if q.Name == name {
			return q
		}
	}
	return nil
}

// Class returns the class mapping with the given name, or nil.
func (m *Mapping) Class(name string) *Class {
	for _, c := range m.Classes {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Query returns the top level query with the given name, or nil.
func (m *Mapping) Query(name string) *Query {
	for _, q := range m.Queries {
		if q.Name == name {
			return q
		}
	}
	return nil
}

// Scoped reports whether the object is restricted to the given dialect class.
func (o *DatabaseObject) Scoped(class string) bool {
	for _, s := range o.Scopes {
		if s.Name == class {
			return true
		}
	}
	return false
}

// Bool returns a pointer to b for optional boolean attributes.
func Bool(b bool) *bool { return &b }

// WriteTo renders the document with its XML header and DOCTYPE.
func (m *Mapping) WriteTo(w io.Writer) (int64, error) {
	b, err := Marshal(m)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(b)
	return int64(n), err
}

// Marshal renders the document with its XML header and DOCTYPE.
func Marshal(m *Mapping) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("hbm: marshal mapping: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("hbm: marshal mapping: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// ReadDatabaseObjects decodes the database objects of a mapping document.
// Classes and queries are skipped.
func ReadDatabaseObjects(r io.Reader) ([]*DatabaseObject, error) {
	var doc struct {
		XMLName xml.Name          `xml:"hibernate-mapping"`
		Objects []*DatabaseObject `xml:"database-object"`
	}
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("hbm: read database objects: %w", err)
	}
	return doc.Objects, nil
}
