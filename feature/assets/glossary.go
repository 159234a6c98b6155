package assets

import "errors"

// GlossaryAttributes are the attributes of a Glossary.
type GlossaryAttributes struct {
	AssetAttributes
	ShortDescription *string      `json:"shortDescription,omitempty"`
	LongDescription  *string      `json:"longDescription,omitempty"`
	Language         *string      `json:"language,omitempty"`
	Usage            *string      `json:"usage,omitempty"`
	Terms            []*Reference `json:"terms,omitempty"`
}

// Glossary groups business terms.
type Glossary struct {
	Entity
	Attributes GlossaryAttributes
}

// NewGlossary builds a glossary to be created. The server replaces the
// placeholder qualified name with a generated one.
func NewGlossary(name string) (*Glossary, error) {
	if name == "" {
		return nil, errors.New("glossary name is required")
	}
	return GlossaryUpdater(name, name), nil
}

// GlossaryUpdater returns the minimal glossary needed to update one.
func GlossaryUpdater(qualifiedName, name string) *Glossary {
	g := &Glossary{Entity: Entity{TypeName: TypeGlossary}}
	g.Attributes.QualifiedName = Ptr(qualifiedName)
	g.Attributes.Name = Ptr(name)
	return g
}

func (g *Glossary) Common() *AssetAttributes { return &g.Attributes.AssetAttributes }
func (g *Glossary) AttributeSet() any        { return &g.Attributes }

func (g *Glossary) MarshalJSON() ([]byte, error) {
	return marshalEntity(&g.Entity, &g.Attributes)
}

func (g *Glossary) UnmarshalJSON(data []byte) error {
	_, err := unmarshalEntity(data, &g.Entity, &g.Attributes)
	return err
}

// GlossaryTermAttributes are the attributes of a GlossaryTerm.
type GlossaryTermAttributes struct {
	AssetAttributes
	ShortDescription *string      `json:"shortDescription,omitempty"`
	LongDescription  *string      `json:"longDescription,omitempty"`
	Examples         []string     `json:"examples,omitempty"`
	Abbreviation     *string      `json:"abbreviation,omitempty"`
	Usage            *string      `json:"usage,omitempty"`
	Anchor           *Reference   `json:"anchor,omitempty"`
	AssignedEntities []*Reference `json:"assignedEntities,omitempty"`
	SeeAlso          []*Reference `json:"seeAlso,omitempty"`
	Synonyms         []*Reference `json:"synonyms,omitempty"`
}

// GlossaryTerm is a business term anchored in a glossary.
type GlossaryTerm struct {
	Entity
	Attributes GlossaryTermAttributes
}

// NewGlossaryTerm builds a term anchored in the referenced glossary.
func NewGlossaryTerm(name string, glossary *Reference) (*GlossaryTerm, error) {
	if name == "" {
		return nil, errors.New("term name is required")
	}
	if glossary == nil || (glossary.GUID == "" && glossary.QualifiedName() == "") {
		return nil, errors.New("term needs a glossary reference with a guid or qualified name")
	}
	anchor := glossary.QualifiedName()
	if anchor == "" {
		anchor = glossary.GUID
	}
	t := GlossaryTermUpdater(name+"@"+anchor, name, glossary)
	return t, nil
}

// GlossaryTermUpdater returns the minimal term needed to update one. Terms
// cannot be updated without their anchor.
func GlossaryTermUpdater(qualifiedName, name string, glossary *Reference) *GlossaryTerm {
	t := &GlossaryTerm{Entity: Entity{TypeName: TypeGlossaryTerm}}
	t.Attributes.QualifiedName = Ptr(qualifiedName)
	t.Attributes.Name = Ptr(name)
	if glossary != nil {
		t.Attributes.Anchor = &Reference{TypeName: TypeGlossary, GUID: glossary.GUID, UniqueAttributes: glossary.UniqueAttributes}
	}
	return t
}

func (t *GlossaryTerm) Common() *AssetAttributes { return &t.Attributes.AssetAttributes }
func (t *GlossaryTerm) AttributeSet() any        { return &t.Attributes }

func (t *GlossaryTerm) MarshalJSON() ([]byte, error) {
	return marshalEntity(&t.Entity, &t.Attributes)
}

func (t *GlossaryTerm) UnmarshalJSON(data []byte) error {
	_, err := unmarshalEntity(data, &t.Entity, &t.Attributes)
	return err
}
