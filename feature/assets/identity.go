package assets

import (
	"fmt"
	"strings"
)

// identitySeparator joins type name and qualified name in Identity.String.
const identitySeparator = "::"

// Identity uniquely identifies an asset without its GUID.
type Identity struct {
	TypeName      string
	QualifiedName string
}

// IdentityOf returns the identity of an asset.
func IdentityOf(a Asset) Identity {
	return Identity{TypeName: a.Header().TypeName, QualifiedName: QualifiedNameOf(a)}
}

func (i Identity) String() string {
	return i.TypeName + identitySeparator + i.QualifiedName
}

// Key returns a map key for the identity. With caseInsensitive the
// qualified name is lower-cased; the type name is always exact.
func (i Identity) Key(caseInsensitive bool) string {
	if caseInsensitive {
		return i.TypeName + identitySeparator + strings.ToLower(i.QualifiedName)
	}
	return i.String()
}

// ParseIdentity parses the output of Identity.String.
func ParseIdentity(s string) (Identity, error) {
	typeName, qn, ok := strings.Cut(s, identitySeparator)
	if !ok || typeName == "" || qn == "" {
		return Identity{}, fmt.Errorf("invalid asset identity %q", s)
	}
	return Identity{TypeName: typeName, QualifiedName: qn}, nil
}
