package fields

import "atlan-sdk/core/casemap"

var catalog = casemap.New[Field]()

func register[F Field](f F) F {
	catalog.Put(f.Name(), f)
	return f
}

// Lookup returns the field for an attribute name, ignoring case.
func Lookup(name string) (Field, bool) {
	return catalog.Get(name)
}

// All returns every cataloged field ordered by attribute name.
func All() []Field {
	out := make([]Field, 0, catalog.Len())
	catalog.Range(func(_ string, f Field) bool {
		out = append(out, f)
		return true
	})
	return out
}
