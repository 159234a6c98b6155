package assets

import (
	"fmt"

	"atlan-sdk/core/casemap"
)

// Status is the lifecycle state of an asset.
type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusDeleted Status = "DELETED"
)

// CertificateStatus is the certification applied to an asset.
type CertificateStatus string

const (
	CertificateVerified   CertificateStatus = "VERIFIED"
	CertificateDraft      CertificateStatus = "DRAFT"
	CertificateDeprecated CertificateStatus = "DEPRECATED"
)

// AnnouncementType is the severity of an announcement banner.
type AnnouncementType string

const (
	AnnouncementInformation AnnouncementType = "information"
	AnnouncementWarning     AnnouncementType = "warning"
	AnnouncementIssue       AnnouncementType = "issue"
)

// DeleteType selects how assets are removed.
type DeleteType string

const (
	// DeleteSoft archives assets; they can be restored.
	DeleteSoft DeleteType = "SOFT"
	// DeleteHard removes assets permanently.
	DeleteHard DeleteType = "HARD"
	// DeletePurge removes assets and their audit history.
	DeletePurge DeleteType = "PURGE"
)

// ConnectorCategory groups connector types.
type ConnectorCategory string

const (
	CategoryWarehouse   ConnectorCategory = "warehouse"
	CategoryDatabase    ConnectorCategory = "database"
	CategoryBI          ConnectorCategory = "bi"
	CategoryLake        ConnectorCategory = "lake"
	CategoryQueryEngine ConnectorCategory = "queryengine"
	CategoryObjectStore ConnectorCategory = "ObjectStore"
	CategoryCustom      ConnectorCategory = "custom"
)

// ConnectorType identifies the source system of an asset. Its value is the
// second segment of every qualified name under a connection.
type ConnectorType string

const (
	ConnectorSnowflake  ConnectorType = "snowflake"
	ConnectorPostgres   ConnectorType = "postgres"
	ConnectorMySQL      ConnectorType = "mysql"
	ConnectorBigQuery   ConnectorType = "bigquery"
	ConnectorRedshift   ConnectorType = "redshift"
	ConnectorDatabricks ConnectorType = "databricks"
	ConnectorAthena     ConnectorType = "athena"
	ConnectorTrino      ConnectorType = "trino"
	ConnectorS3         ConnectorType = "s3"
	ConnectorTableau    ConnectorType = "tableau"
	ConnectorPowerBI    ConnectorType = "powerbi"
	ConnectorLooker     ConnectorType = "looker"
	ConnectorAPI        ConnectorType = "api"
)

var connectorCategories = casemap.FromMap(map[string]ConnectorCategory{
	string(ConnectorSnowflake):  CategoryWarehouse,
	string(ConnectorPostgres):   CategoryDatabase,
	string(ConnectorMySQL):      CategoryDatabase,
	string(ConnectorBigQuery):   CategoryWarehouse,
	string(ConnectorRedshift):   CategoryWarehouse,
	string(ConnectorDatabricks): CategoryLake,
	string(ConnectorAthena):     CategoryQueryEngine,
	string(ConnectorTrino):      CategoryQueryEngine,
	string(ConnectorS3):         CategoryObjectStore,
	string(ConnectorTableau):    CategoryBI,
	string(ConnectorPowerBI):    CategoryBI,
	string(ConnectorLooker):     CategoryBI,
	string(ConnectorAPI):        CategoryCustom,
})

// Category returns the connector's category, or CategoryCustom when unknown.
func (c ConnectorType) Category() ConnectorCategory {
	if cat, ok := connectorCategories.Get(string(c)); ok {
		return cat
	}
	return CategoryCustom
}

// ParseConnectorType resolves a connector name case-insensitively.
func ParseConnectorType(name string) (ConnectorType, error) {
	key, ok := connectorCategories.Key(name)
	if !ok {
		return "", fmt.Errorf("unknown connector type %q", name)
	}
	return ConnectorType(key), nil
}

// ConnectorTypes lists every known connector type in name order.
func ConnectorTypes() []ConnectorType {
	keys := connectorCategories.Keys()
	out := make([]ConnectorType, len(keys))
	for i, k := range keys {
		out[i] = ConnectorType(k)
	}
	return out
}
