package assets

import (
	"maps"

	"atlan-sdk/core/utils"

	"github.com/goccy/go-json"
)

// Generic holds an asset of a type without a dedicated model. Common
// attributes are typed; all other attributes are kept in Extra.
type Generic struct {
	Entity
	Attributes AssetAttributes
	Extra      map[string]any
}

func (g *Generic) Common() *AssetAttributes { return &g.Attributes }
func (g *Generic) AttributeSet() any        { return &g.Attributes }

// Get returns an attribute that is not part of AssetAttributes.
func (g *Generic) Get(name string) (any, bool) {
	v, ok := g.Extra[name]
	return v, ok
}

// GetString returns an extra attribute as a string.
func (g *Generic) GetString(name string) string {
	return utils.ToString(g.Extra[name])
}

// GetInt returns an extra attribute as an int.
func (g *Generic) GetInt(name string) int {
	return utils.ToInt(g.Extra[name])
}

// GetFloat returns an extra attribute as a float64.
func (g *Generic) GetFloat(name string) float64 {
	return utils.ToFloat(g.Extra[name])
}

// GetBool returns an extra attribute as a bool.
func (g *Generic) GetBool(name string) bool {
	return utils.ToBool(g.Extra[name])
}

// GetStrings returns an extra attribute as a string slice.
func (g *Generic) GetStrings(name string) []string {
	return utils.ToStrings(g.Extra[name])
}

// Set stores an attribute that is not part of AssetAttributes. Names of
// common attributes are ignored on save; set them through Attributes.
func (g *Generic) Set(name string, value any) {
	if g.Extra == nil {
		g.Extra = make(map[string]any)
	}
	g.Extra[name] = value
}

func (g *Generic) MarshalJSON() ([]byte, error) {
	body, err := json.Marshal(&g.Attributes)
	if err != nil {
		return nil, err
	}
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	known := commonAttributeNames()
	for name, value := range g.Extra {
		if _, ok := known[name]; ok {
			continue
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		fields[name] = raw
	}
	return marshalEntity(&g.Entity, fields)
}

func (g *Generic) UnmarshalJSON(data []byte) error {
	raw, err := unmarshalEntity(data, &g.Entity, &g.Attributes)
	if err != nil || isEmptyJSON(raw) {
		return err
	}
	all := make(map[string]any)
	if err := json.Unmarshal(raw, &all); err != nil {
		return err
	}
	known := commonAttributeNames()
	maps.DeleteFunc(all, func(name string, _ any) bool {
		_, ok := known[name]
		return ok
	})
	if len(all) > 0 {
		g.Extra = all
	}
	return nil
}

// Trim returns the minimal copy of an asset needed to update it: type,
// GUID, qualified name and name, plus the anchor of a glossary term.
func Trim(a Asset) Asset {
	h := a.Header()
	t := New(h.TypeName)
	t.Header().GUID = h.GUID
	src, dst := a.Common(), t.Common()
	if src.QualifiedName != nil {
		dst.QualifiedName = Ptr(*src.QualifiedName)
	}
	if src.Name != nil {
		dst.Name = Ptr(*src.Name)
	}
	if term, ok := a.(*GlossaryTerm); ok {
		if out, ok := t.(*GlossaryTerm); ok {
			out.Attributes.Anchor = term.Attributes.Anchor
		}
	}
	return t
}
