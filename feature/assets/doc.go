// Package assets models catalog assets and their wire format.
//
// Every asset has two parts: an Entity header (type name, GUID, status, tags,
// custom metadata) serialized at the top level, and a typed attribute set
// serialized under "attributes". Typed assets such as Table or Column embed
// the common AssetAttributes and add their own fields and relationship
// references. Types that are not modelled decode into Generic, which keeps
// every attribute.
//
// Decoding dispatches on "typeName" through a registry, so a heterogeneous
// list of assets returned by the API decodes into the right Go types:
//
//	list, err := assets.DecodeList(body)
//	for _, a := range list {
//		if t, ok := a.(*assets.Table); ok {
//			// ...
//		}
//	}
//
// Attributes listed in Entity.NullFields are sent as explicit JSON nulls,
// which is how an existing value is removed on the server.
//
// Service wraps the entity endpoints of the API: bulk save, lookup by GUID or
// qualified name, soft delete, purge and restore.
package assets
