package gen

import (
	"slices"

	"github.com/enkigen/enki/metamodel"
)

// FindUnreferenced returns the associations of c that no explicit reference
// covers, with the ReferenceInfo exposing each of them on c. An association
// is covered when any reference in refs points at it. The end whose type is
// c or one of its supertypes is the exposed end.
//
// An association whose two ends both match c cannot be oriented and is
// reported as an error; an explicit reference must disambiguate it.
func FindUnreferenced(
	assocs []*AssociationInfo,
	c *metamodel.Classifier,
	refs []*metamodel.Reference,
) ([]*metamodel.Association, map[*metamodel.Association]*UnreferencedRef, error) {
	covered := make(map[*metamodel.Association]bool, len(refs))
	for _, r := range refs {
		covered[r.Association()] = true
	}
	supers := c.AllSupertypes()
	matches := func(t *metamodel.Classifier) bool {
		return t == c || slices.Contains(supers, t)
	}
	var (
		found []*metamodel.Association
		infos = make(map[*metamodel.Association]*UnreferencedRef)
	)
	for _, info := range assocs {
		a := info.Association
		if covered[a] {
			continue
		}
		m0, m1 := matches(info.End(0).Type), matches(info.End(1).Type)
		var exposed int
		switch {
		case m0 && m1:
			return nil, nil, NewAssociationError(a.QualifiedName(), c.QualifiedName(), "",
				"circular association: both ends match the class; add an explicit reference")
		case m0:
			exposed = 0
		case m1:
			exposed = 1
		default:
			continue
		}
		found = append(found, a)
		infos[a] = newUnreferencedRef(info, exposed)
	}
	return found, infos, nil
}
