// Package query builds the Elasticsearch-style query DSL accepted by the
// catalog's index search endpoint.
//
// Every Query marshals to its JSON clause, for example:
//
//	query.Bool{
//		Filter: []query.Query{
//			query.Term{Field: "__typeName.keyword", Value: "Table"},
//			query.Prefix{Field: "qualifiedName", Value: "default/snowflake/"},
//		},
//	}
package query
