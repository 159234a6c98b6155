package assets

import "slices"

// Entity is the header shared by every asset.
type Entity struct {
	TypeName            string                    `json:"typeName" validate:"required"`
	GUID                string                    `json:"guid,omitempty"`
	Status              Status                    `json:"status,omitempty"`
	CreatedBy           string                    `json:"createdBy,omitempty"`
	UpdatedBy           string                    `json:"updatedBy,omitempty"`
	CreateTime          int64                     `json:"createTime,omitempty"`
	UpdateTime          int64                     `json:"updateTime,omitempty"`
	Version             int64                     `json:"version,omitempty"`
	IsIncomplete        *bool                     `json:"isIncomplete,omitempty"`
	Classifications     []Classification          `json:"classifications,omitempty"`
	ClassificationNames []string                  `json:"classificationNames,omitempty"`
	BusinessAttributes  map[string]map[string]any `json:"businessAttributes,omitempty"`
	MeaningNames        []string                  `json:"meaningNames,omitempty"`
	Labels              []string                  `json:"labels,omitempty"`
	CustomAttributes    map[string]string         `json:"customAttributes,omitempty"`

	// NullFields are attribute names sent as explicit nulls.
	NullFields []string `json:"-"`
}

// Header returns the entity itself so that typed assets satisfy Asset
// through embedding.
func (e *Entity) Header() *Entity {
	return e
}

// SetNull marks an attribute to be cleared on the next save.
func (e *Entity) SetNull(attribute string) {
	if !slices.Contains(e.NullFields, attribute) {
		e.NullFields = append(e.NullFields, attribute)
	}
}

// AddTag attaches an Atlan tag (classification) to the entity.
func (e *Entity) AddTag(name string, propagate bool) {
	for _, c := range e.Classifications {
		if c.TypeName == name {
			return
		}
	}
	p := propagate
	e.Classifications = append(e.Classifications, Classification{TypeName: name, Propagate: &p})
}

// SetCustomMetadata replaces the attributes of one custom metadata set.
func (e *Entity) SetCustomMetadata(set string, attributes map[string]any) {
	if e.BusinessAttributes == nil {
		e.BusinessAttributes = make(map[string]map[string]any)
	}
	e.BusinessAttributes[set] = attributes
}

// MarkIncomplete flags the entity as a partial placeholder.
func (e *Entity) MarkIncomplete() {
	v := true
	e.IsIncomplete = &v
}

// Classification is an Atlan tag assignment.
type Classification struct {
	TypeName                          string `json:"typeName"`
	EntityGUID                        string `json:"entityGuid,omitempty"`
	EntityStatus                      Status `json:"entityStatus,omitempty"`
	Propagate                         *bool  `json:"propagate,omitempty"`
	RemovePropagationsOnEntityDelete  *bool  `json:"removePropagationsOnEntityDelete,omitempty"`
	RestrictPropagationThroughLineage *bool  `json:"restrictPropagationThroughLineage,omitempty"`
}

// UniqueAttributes identifies a related asset by qualified name.
type UniqueAttributes struct {
	QualifiedName string `json:"qualifiedName"`
}

// Reference points at a related asset, either by GUID or by unique attributes.
type Reference struct {
	TypeName           string            `json:"typeName"`
	GUID               string            `json:"guid,omitempty"`
	UniqueAttributes   *UniqueAttributes `json:"uniqueAttributes,omitempty"`
	DisplayText        string            `json:"displayText,omitempty"`
	EntityStatus       Status            `json:"entityStatus,omitempty"`
	RelationshipStatus Status            `json:"relationshipStatus,omitempty"`
}

// RefByGUID references an asset by its GUID.
func RefByGUID(typeName, guid string) *Reference {
	return &Reference{TypeName: typeName, GUID: guid}
}

// RefByQualifiedName references an asset by its qualified name.
func RefByQualifiedName(typeName, qualifiedName string) *Reference {
	return &Reference{TypeName: typeName, UniqueAttributes: &UniqueAttributes{QualifiedName: qualifiedName}}
}

// QualifiedName returns the referenced qualified name, if the reference carries one.
func (r *Reference) QualifiedName() string {
	if r == nil || r.UniqueAttributes == nil {
		return ""
	}
	return r.UniqueAttributes.QualifiedName
}

// AssetAttributes are the attributes common to every asset type.
type AssetAttributes struct {
	QualifiedName            *string            `json:"qualifiedName,omitempty" validate:"required"`
	Name                     *string            `json:"name,omitempty" validate:"required"`
	DisplayName              *string            `json:"displayName,omitempty"`
	Description              *string            `json:"description,omitempty"`
	UserDescription          *string            `json:"userDescription,omitempty"`
	CertificateStatus        *CertificateStatus `json:"certificateStatus,omitempty" validate:"omitempty,oneof=VERIFIED DRAFT DEPRECATED"`
	CertificateStatusMessage *string            `json:"certificateStatusMessage,omitempty"`
	AnnouncementTitle        *string            `json:"announcementTitle,omitempty"`
	AnnouncementMessage      *string            `json:"announcementMessage,omitempty"`
	AnnouncementType         *AnnouncementType  `json:"announcementType,omitempty" validate:"omitempty,oneof=information warning issue"`
	OwnerUsers               []string           `json:"ownerUsers,omitempty"`
	OwnerGroups              []string           `json:"ownerGroups,omitempty"`
	ConnectorName            *string            `json:"connectorName,omitempty"`
	ConnectionQualifiedName  *string            `json:"connectionQualifiedName,omitempty"`
	PopularityScore          *float64           `json:"popularityScore,omitempty"`
	SourceURL                *string            `json:"sourceURL,omitempty"`
	Meanings                 []*Reference       `json:"meanings,omitempty"`
	Readme                   *Reference         `json:"readme,omitempty"`
}

// Common returns the attributes themselves so that attribute sets embedding
// AssetAttributes expose them through promotion.
func (a *AssetAttributes) Common() *AssetAttributes {
	return a
}

// Asset is implemented by every typed asset and by Generic.
type Asset interface {
	// Header returns the entity header.
	Header() *Entity
	// Common returns the attributes shared by all asset types.
	Common() *AssetAttributes
	// AttributeSet returns a pointer to the full typed attribute struct.
	AttributeSet() any
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// QualifiedNameOf returns the asset's qualified name, or "" when unset.
func QualifiedNameOf(a Asset) string {
	return deref(a.Common().QualifiedName)
}

// NameOf returns the asset's name, or "" when unset.
func NameOf(a Asset) string {
	return deref(a.Common().Name)
}

// SetCertificate certifies the asset with an optional message.
func SetCertificate(a Asset, status CertificateStatus, message string) {
	c := a.Common()
	c.CertificateStatus = &status
	if message != "" {
		c.CertificateStatusMessage = &message
	}
}

// SetAnnouncement places an announcement banner on the asset.
func SetAnnouncement(a Asset, kind AnnouncementType, title, message string) {
	c := a.Common()
	c.AnnouncementType = &kind
	c.AnnouncementTitle = &title
	if message != "" {
		c.AnnouncementMessage = &message
	}
}

// RemoveDescription clears the description on save.
func RemoveDescription(a Asset) {
	a.Common().Description = nil
	a.Header().SetNull("description")
}

// RemoveUserDescription clears the user-provided description on save.
func RemoveUserDescription(a Asset) {
	a.Common().UserDescription = nil
	a.Header().SetNull("userDescription")
}

// RemoveCertificate clears the certificate and its message on save.
func RemoveCertificate(a Asset) {
	c := a.Common()
	c.CertificateStatus = nil
	c.CertificateStatusMessage = nil
	a.Header().SetNull("certificateStatus")
	a.Header().SetNull("certificateStatusMessage")
}

// RemoveAnnouncement clears the announcement on save.
func RemoveAnnouncement(a Asset) {
	c := a.Common()
	c.AnnouncementType = nil
	c.AnnouncementTitle = nil
	c.AnnouncementMessage = nil
	a.Header().SetNull("announcementType")
	a.Header().SetNull("announcementTitle")
	a.Header().SetNull("announcementMessage")
}

// RemoveOwners clears owner users and groups on save.
func RemoveOwners(a Asset) {
	c := a.Common()
	c.OwnerUsers = nil
	c.OwnerGroups = nil
	a.Header().SetNull("ownerUsers")
	a.Header().SetNull("ownerGroups")
}
