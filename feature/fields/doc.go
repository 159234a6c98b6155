// Package fields catalogs the searchable attributes of catalog assets.
//
// Each field maps the attribute name used on assets to the name (or names)
// it is indexed under, and builds queries against the right one. A keyword
// index supports exact and prefix matching, a text index supports full-text
// matching, and some attributes are indexed both ways:
//
//	fields.Name.Eq("ORDERS", false)      // term on name.keyword
//	fields.Name.Match("orders")          // match on name
//	fields.QualifiedName.StartsWith(conn, false)
//
// Lookup finds a field by attribute name, ignoring case.
package fields
