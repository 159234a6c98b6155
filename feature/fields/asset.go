package fields

// Fields present on every asset.
var (
	GUID                    = register(NewInternalKeywordField("guid", "__guid"))
	TypeName                = register(NewInternalKeywordField("typeName", "__typeName.keyword"))
	SuperTypeNames          = register(NewInternalKeywordField("superTypeNames", "__superTypeNames.keyword"))
	Status                  = register(NewInternalKeywordField("status", "__state"))
	CreatedBy               = register(NewInternalKeywordField("createdBy", "__createdBy"))
	UpdatedBy               = register(NewInternalKeywordField("updatedBy", "__modifiedBy"))
	CreateTime              = register(NewNumericField("createTime", "__timestamp"))
	UpdateTime              = register(NewNumericField("updateTime", "__modificationTimestamp"))
	AtlanTags               = register(NewInternalKeywordField("classificationNames", "__traitNames"))
	PropagatedAtlanTags     = register(NewInternalKeywordField("propagatedClassificationNames", "__propagatedTraitNames"))
	AssignedTerms           = register(NewInternalKeywordField("meaningNames", "__meanings"))
	HasLineage              = register(NewBooleanField("hasLineage", "__hasLineage"))
	QualifiedName           = register(NewKeywordTextField("qualifiedName", "qualifiedName", "qualifiedName.text"))
	Name                    = register(NewKeywordTextField("name", "name.keyword", "name"))
	DisplayName             = register(NewKeywordTextField("displayName", "displayName.keyword", "displayName"))
	Description             = register(NewKeywordTextField("description", "description.keyword", "description"))
	UserDescription         = register(NewKeywordTextField("userDescription", "userDescription.keyword", "userDescription"))
	CertificateStatus       = register(NewKeywordTextField("certificateStatus", "certificateStatus", "certificateStatus.text"))
	AnnouncementType        = register(NewKeywordField("announcementType", "announcementType"))
	OwnerUsers              = register(NewKeywordField("ownerUsers", "ownerUsers"))
	OwnerGroups             = register(NewKeywordField("ownerGroups", "ownerGroups"))
	ConnectorName           = register(NewKeywordTextField("connectorName", "connectorName", "connectorName.text"))
	ConnectionQualifiedName = register(NewKeywordTextField("connectionQualifiedName", "connectionQualifiedName", "connectionQualifiedName.text"))
	PopularityScore         = register(NewNumericField("popularityScore", "popularityScore"))
	SourceURL               = register(NewTextField("sourceURL", "sourceURL"))
	Meanings                = register(NewRelationField("meanings"))
	Readme                  = register(NewRelationField("readme"))
)
