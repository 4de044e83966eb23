package metamodel

import (
	"fmt"
	"strconv"
	"strings"
)

// Unbounded is the upper bound of a multiplicity without limit ("*").
const Unbounded = -1

// Multiplicity is the (lower, upper, ordered, unique) quadruple of a typed
// feature or association end.
type Multiplicity struct {
	Lower   int
	Upper   int
	Ordered bool
	Unique  bool
}

// One is the 1..1 multiplicity.
var One = Multiplicity{Lower: 1, Upper: 1}

// Optional is the 0..1 multiplicity.
var Optional = Multiplicity{Lower: 0, Upper: 1}

// Many is the 0..* multiplicity.
var Many = Multiplicity{Lower: 0, Upper: Unbounded}

// IsSingle reports whether at most one value is allowed.
func (m Multiplicity) IsSingle() bool { return m.Upper == 1 }

// IsMany reports whether more than one value is allowed.
func (m Multiplicity) IsMany() bool { return m.Upper != 1 }

// String returns the multiplicity in UML notation, e.g. "0..*".
func (m Multiplicity) String() string {
	upper := "*"
	if m.Upper != Unbounded {
		upper = strconv.Itoa(m.Upper)
	}
	if m.Lower == m.Upper {
		return upper
	}
	return strconv.Itoa(m.Lower) + ".." + upper
}

// ParseMultiplicity parses the UML notation accepted by String. The empty
// string yields 1..1.
func ParseMultiplicity(s string) (Multiplicity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return One, nil
	}
	lo, hi, ok := strings.Cut(s, "..")
	if !ok {
		hi = lo
		if lo == "*" {
			lo = "0"
		}
	}
	lower, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil || lower < 0 {
		return Multiplicity{}, fmt.Errorf("invalid lower bound in multiplicity %q", s)
	}
	upper := Unbounded
	switch hi = strings.TrimSpace(hi); hi {
	case "*", "n", "N":
	default:
		if upper, err = strconv.Atoi(hi); err != nil || upper < 1 || upper < lower {
			return Multiplicity{}, fmt.Errorf("invalid upper bound in multiplicity %q", s)
		}
	}
	return Multiplicity{Lower: lower, Upper: upper}, nil
}
