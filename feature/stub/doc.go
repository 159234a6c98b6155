// Package stub implements an in-memory catalog server.
//
// The server speaks the subset of the catalog API used by the SDK: bulk
// entity save and delete, lookup by GUID or unique attribute, index search,
// and the orchestration endpoints for workflows and their runs. It is meant
// for local development and tests; the serve command starts it and tests
// mount it on an httptest server through fiber's adaptor.
//
// Index search evaluates term, terms, prefix, wildcard, exists, match,
// range, match_all and bool clauses against stored documents. Keyword and
// text suffixes are ignored and system fields such as __guid and __state
// map onto the entity header.
package stub
