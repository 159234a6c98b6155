// Package casemap provides a map keyed by strings that compares keys without regard to case.
//
// Attribute names, custom metadata names and qualified names coming back from the
// catalog do not always match the casing used by the caller. Map keeps the casing
// of the most recent write so that values can be reported back exactly as supplied.
//
// # Usage
//
//	m := casemap.New[string]()
//	m.Put("QualifiedName", "default/snowflake/123")
//	v, ok := m.Get("qualifiedname") // "default/snowflake/123", true
package casemap
