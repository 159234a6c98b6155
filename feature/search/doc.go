// Package search runs index searches against the catalog.
//
// FluentSearch composes a query from field conditions:
//
//	req := search.New().
//		AssetType(assets.TypeTable).
//		ActiveAssets().
//		Where(fields.ConnectionQualifiedName.Eq(conn, false)).
//		IncludeOnResults(fields.RowCount).
//		PageSize(50).
//		ToRequest()
//
// Service executes requests, streams every page of results, counts matches
// and resolves assets by identity.
package search
