package assets

import (
	"strconv"
	"strings"
)

// Type names of the modelled assets.
const (
	TypeConnection       = "Connection"
	TypeDatabase         = "Database"
	TypeSchema           = "Schema"
	TypeTable            = "Table"
	TypeView             = "View"
	TypeMaterialisedView = "MaterialisedView"
	TypeColumn           = "Column"
	TypeGlossary         = "AtlasGlossary"
	TypeGlossaryTerm     = "AtlasGlossaryTerm"
	TypeTableauWorkbook  = "TableauWorkbook"
	TypeTableauDashboard = "TableauDashboard"
	TypeReadme           = "Readme"
)

// ConnectionQualifiedName builds the qualified name of a new connection.
// Connection names have the form default/<connector>/<epoch seconds>.
func ConnectionQualifiedName(connector ConnectorType, epochSeconds int64) string {
	return "default/" + string(connector) + "/" + strconv.FormatInt(epochSeconds, 10)
}

// ConnectionOf returns the connection prefix of a qualified name, or ""
// when the name does not start with one.
func ConnectionOf(qualifiedName string) string {
	parts := strings.SplitN(qualifiedName, "/", 4)
	if len(parts) < 3 || parts[0] != "default" {
		return ""
	}
	return strings.Join(parts[:3], "/")
}

// ConnectorOf returns the connector segment of a qualified name.
func ConnectorOf(qualifiedName string) ConnectorType {
	if ConnectionOf(qualifiedName) == "" {
		return ""
	}
	return ConnectorType(strings.Split(qualifiedName, "/")[1])
}

// ParentOf strips the last segment of a qualified name.
func ParentOf(qualifiedName string) string {
	i := strings.LastIndex(qualifiedName, "/")
	if i < 0 {
		return ""
	}
	return qualifiedName[:i]
}

// lastSegment returns the final segment of a qualified name.
func lastSegment(qualifiedName string) string {
	return qualifiedName[strings.LastIndex(qualifiedName, "/")+1:]
}

// prefix returns the first n segments of a qualified name.
func prefix(qualifiedName string, n int) string {
	parts := strings.Split(qualifiedName, "/")
	if len(parts) < n {
		return ""
	}
	return strings.Join(parts[:n], "/")
}

// stampConnection fills connector and connection attributes from a
// qualified name under a connection.
func stampConnection(a *AssetAttributes, qualifiedName string) {
	if conn := ConnectionOf(qualifiedName); conn != "" {
		a.ConnectionQualifiedName = Ptr(conn)
		a.ConnectorName = Ptr(string(ConnectorOf(qualifiedName)))
	}
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
