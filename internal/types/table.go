package types

import "strings"

// Name is a qualified object reference: catalog.schema.object.
// Catalog and Schema are optional.
type Name struct {
	Catalog string
	Schema  string
	Object  string
}

// ParseName splits a dotted reference into its parts.
// "a" is an object, "a.b" is schema.object and "a.b.c" is catalog.schema.object.
func ParseName(s string) Name {
	parts := strings.Split(s, ".")
	switch len(parts) {
	case 1:
		return Name{Object: parts[0]}
	case 2:
		return Name{Schema: parts[0], Object: parts[1]}
	default:
		n := len(parts)
		return Name{
			Catalog: strings.Join(parts[:n-2], "."),
			Schema:  parts[n-2],
			Object:  parts[n-1],
		}
	}
}

// Parts returns the non-empty qualifiers followed by the object name.
func (n Name) Parts() []string {
	parts := make([]string, 0, 3)
	for _, p := range []string{n.Catalog, n.Schema, n.Object} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// IsZero reports whether the reference names nothing.
func (n Name) IsZero() bool {
	return n.Object == ""
}

// String returns the unquoted dotted form.
func (n Name) String() string {
	return strings.Join(n.Parts(), ".")
}
