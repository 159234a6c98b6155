package assets

import (
	"errors"
	"time"
)

var now = time.Now

// ConnectionAttributes are the attributes of a Connection.
type ConnectionAttributes struct {
	AssetAttributes
	Category              *string  `json:"category,omitempty"`
	SubCategory           *string  `json:"subCategory,omitempty"`
	Host                  *string  `json:"host,omitempty"`
	Port                  *int     `json:"port,omitempty"`
	AllowQuery            *bool    `json:"allowQuery,omitempty"`
	AllowQueryPreview     *bool    `json:"allowQueryPreview,omitempty"`
	RowLimit              *int64   `json:"rowLimit,omitempty"`
	DefaultCredentialGUID *string  `json:"defaultCredentialGuid,omitempty"`
	AdminUsers            []string `json:"adminUsers,omitempty"`
	AdminGroups           []string `json:"adminGroups,omitempty"`
	AdminRoles            []string `json:"adminRoles,omitempty"`
}

// Connection is the root of every asset hierarchy crawled from one source.
type Connection struct {
	Entity
	Attributes ConnectionAttributes
}

// NewConnection builds a connection to be created. At least one admin user,
// group or role is required.
func NewConnection(name string, connector ConnectorType, adminRoles, adminGroups, adminUsers []string) (*Connection, error) {
	if name == "" {
		return nil, errors.New("connection name is required")
	}
	if connector == "" {
		return nil, errors.New("connector type is required")
	}
	if len(adminRoles) == 0 && len(adminGroups) == 0 && len(adminUsers) == 0 {
		return nil, errors.New("a connection needs at least one admin user, group or role")
	}
	qn := ConnectionQualifiedName(connector, now().Unix())
	c := &Connection{Entity: Entity{TypeName: TypeConnection}}
	c.Attributes.QualifiedName = Ptr(qn)
	c.Attributes.Name = Ptr(name)
	c.Attributes.ConnectorName = Ptr(string(connector))
	c.Attributes.Category = Ptr(string(connector.Category()))
	c.Attributes.AdminRoles = adminRoles
	c.Attributes.AdminGroups = adminGroups
	c.Attributes.AdminUsers = adminUsers
	return c, nil
}

// ConnectionUpdater returns the minimal connection needed to update one.
func ConnectionUpdater(qualifiedName, name string) *Connection {
	c := &Connection{Entity: Entity{TypeName: TypeConnection}}
	c.Attributes.QualifiedName = Ptr(qualifiedName)
	c.Attributes.Name = Ptr(name)
	return c
}

func (c *Connection) Common() *AssetAttributes { return &c.Attributes.AssetAttributes }
func (c *Connection) AttributeSet() any        { return &c.Attributes }

func (c *Connection) MarshalJSON() ([]byte, error) {
	return marshalEntity(&c.Entity, &c.Attributes)
}

func (c *Connection) UnmarshalJSON(data []byte) error {
	_, err := unmarshalEntity(data, &c.Entity, &c.Attributes)
	return err
}
