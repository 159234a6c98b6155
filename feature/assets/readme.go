package assets

import "errors"

// ReadmeAttributes are the attributes of a Readme.
type ReadmeAttributes struct {
	AssetAttributes
	Asset    *Reference   `json:"asset,omitempty"`
	SeeAlso  []*Reference `json:"seeAlso,omitempty"`
	Internal *bool        `json:"isInternal,omitempty"`
}

// Readme holds rich-text documentation for another asset. The content is
// kept in the description attribute.
type Readme struct {
	Entity
	Attributes ReadmeAttributes
}

// NewReadme builds a readme attached to an existing asset.
func NewReadme(asset Asset, content string) (*Readme, error) {
	if asset == nil {
		return nil, errors.New("readme needs an asset")
	}
	h := asset.Header()
	name := NameOf(asset)
	if h.GUID == "" || name == "" {
		return nil, errors.New("readme needs an asset with a guid and name")
	}
	r := ReadmeUpdater(h.GUID+"/readme", name+" Readme")
	r.Attributes.Asset = RefByGUID(h.TypeName, h.GUID)
	r.Attributes.Description = Ptr(content)
	return r, nil
}

// ReadmeUpdater returns the minimal readme needed to update one.
func ReadmeUpdater(qualifiedName, name string) *Readme {
	r := &Readme{Entity: Entity{TypeName: TypeReadme}}
	r.Attributes.QualifiedName = Ptr(qualifiedName)
	r.Attributes.Name = Ptr(name)
	return r
}

func (r *Readme) Common() *AssetAttributes { return &r.Attributes.AssetAttributes }
func (r *Readme) AttributeSet() any        { return &r.Attributes }

func (r *Readme) MarshalJSON() ([]byte, error) {
	return marshalEntity(&r.Entity, &r.Attributes)
}

func (r *Readme) UnmarshalJSON(data []byte) error {
	_, err := unmarshalEntity(data, &r.Entity, &r.Attributes)
	return err
}
