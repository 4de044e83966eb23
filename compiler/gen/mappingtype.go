package gen

import (
	"strings"

	"github.com/enkigen/enki/metamodel"
)

// MappingType is the classification of an attribute that selects its
// mapping fragment.
type MappingType uint8

// Mapping types.
const (
	MappingBoolean MappingType = iota + 1
	MappingString
	MappingEnumeration
	MappingOtherDataType
	MappingClass
	MappingList
	MappingCollection
)

var mappingTypeNames = [...]string{
	MappingBoolean:       "BOOLEAN",
	MappingString:        "STRING",
	MappingEnumeration:   "ENUMERATION",
	MappingOtherDataType: "OTHER_DATA_TYPE",
	MappingClass:         "CLASS",
	MappingList:          "LIST",
	MappingCollection:    "COLLECTION",
}

// String returns the name of the mapping type.
func (t MappingType) String() string {
	if int(t) < len(mappingTypeNames) && mappingTypeNames[t] != "" {
		return mappingTypeNames[t]
	}
	return "UNKNOWN"
}

// Classify returns the mapping type of a feature of type t with
// multiplicity m. Aliases classify as their aliased type.
func Classify(t *metamodel.Classifier, m metamodel.Multiplicity) MappingType {
	for t.Kind == metamodel.KindAlias && t.Aliased != nil {
		t = t.Aliased
	}
	switch t.Kind {
	case metamodel.KindPrimitive:
		if m.Upper != 1 {
			if m.Ordered {
				return MappingList
			}
			return MappingCollection
		}
		switch strings.ToLower(t.Name) {
		case "boolean":
			return MappingBoolean
		case "string":
			return MappingString
		default:
			return MappingOtherDataType
		}
	case metamodel.KindEnumeration:
		return MappingEnumeration
	case metamodel.KindClass:
		return MappingClass
	default:
		return MappingOtherDataType
	}
}

// elementType returns the Hibernate type of the values of a multi-valued
// primitive attribute.
func elementType(t *metamodel.Classifier) string {
	for t.Kind == metamodel.KindAlias && t.Aliased != nil {
		t = t.Aliased
	}
	switch strings.ToLower(t.Name) {
	case "boolean":
		return "boolean"
	case "integer":
		return "integer"
	case "long":
		return "long"
	case "float":
		return "float"
	case "double":
		return "double"
	default:
		return "string"
	}
}
