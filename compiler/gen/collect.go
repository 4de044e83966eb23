package gen

import (
	"github.com/enkigen/enki/metamodel"
)

// Metadata is the result of the collection pass. It is immutable once
// Collect returns.
type Metadata struct {
	classes      []*metamodel.Classifier
	components   map[*metamodel.Classifier][]*ComponentRef
	associations []*AssociationInfo
	byAssoc      map[*metamodel.Association]*AssociationInfo
	references   []*metamodel.Reference
	rootPackage  string
}

// Collect walks the model once and gathers what class emission needs:
// the class-typed attributes keyed by their type, the shape of every
// association and the root package.
func Collect(model *metamodel.Model, cfg *Config) (*Metadata, error) {
	md, err := collect(model, cfg)
	if err != nil {
		return nil, NewGenerationError(PhaseCollecting.String(), "", "", err)
	}
	return md, nil
}

func collect(model *metamodel.Model, cfg *Config) (*Metadata, error) {
	md := &Metadata{
		components: make(map[*metamodel.Classifier][]*ComponentRef),
		byAssoc:    make(map[*metamodel.Association]*AssociationInfo),
	}
	for _, c := range model.Classes() {
		md.references = append(md.references, c.References...)
		if !c.IsConcrete() || !cfg.generated(c) {
			continue
		}
		md.classes = append(md.classes, c)
		for _, a := range c.AllAttributes() {
			if !a.IsStored() || a.Visibility != metamodel.Public {
				continue
			}
			if Classify(a.Type, a.Multiplicity) == MappingClass {
				md.components[a.Type] = append(md.components[a.Type], NewComponentRef(a, c))
			}
		}
		if top := c.Container.Outermost(); top.Name != metamodel.PrimitiveTypesPackage {
			if name := JavaPackage(top); md.rootPackage == "" || len(name) < len(md.rootPackage) {
				md.rootPackage = name
			}
		}
	}
	for _, a := range model.Associations() {
		if a.Derived {
			continue
		}
		info, err := NewAssociationInfo(a)
		if err != nil {
			return nil, err
		}
		md.associations = append(md.associations, info)
		md.byAssoc[a] = info
	}
	return md, nil
}

// Classes returns the concrete classes to map, in declaration order.
func (md *Metadata) Classes() []*metamodel.Classifier {
	return append([]*metamodel.Classifier(nil), md.classes...)
}

// Components returns the class-typed attributes whose declared type is t.
func (md *Metadata) Components(t *metamodel.Classifier) []*ComponentRef {
	return append([]*ComponentRef(nil), md.components[t]...)
}

// Association returns the shape of a, or nil for derived associations.
func (md *Metadata) Association(a *metamodel.Association) *AssociationInfo {
	return md.byAssoc[a]
}

// Associations returns every stored association in declaration order.
func (md *Metadata) Associations() []*AssociationInfo {
	return append([]*AssociationInfo(nil), md.associations...)
}

// References returns every explicit reference of the model.
func (md *Metadata) References() []*metamodel.Reference {
	return append([]*metamodel.Reference(nil), md.references...)
}

// RootPackage returns the shortest top-level Java package of a mapped class.
func (md *Metadata) RootPackage() string { return md.rootPackage }
