// Package utils provides common utility functions for the SDK.
// It includes helper functions for loosely-typed value conversion used when reading
// attributes of assets whose type is not modelled by the SDK.
package utils
