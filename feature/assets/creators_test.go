package assets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixClock(t *testing.T, ts time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return ts }
	t.Cleanup(func() { now = prev })
}

// TestNewConnection tests qualified name generation and admin requirements.
func TestNewConnection(t *testing.T) {
	fixClock(t, time.Unix(1700000000, 0))

	c, err := NewConnection("prod", ConnectorSnowflake, nil, []string{"admins"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "default/snowflake/1700000000", QualifiedNameOf(c))
	assert.Equal(t, "prod", NameOf(c))
	assert.Equal(t, "warehouse", *c.Attributes.Category)
	assert.Equal(t, []string{"admins"}, c.Attributes.AdminGroups)

	_, err = NewConnection("prod", ConnectorSnowflake, nil, nil, nil)
	assert.Error(t, err)
	_, err = NewConnection("", ConnectorSnowflake, []string{"r"}, nil, nil)
	assert.Error(t, err)
}

// TestSQLHierarchy tests that each level derives its parents from qualified names.
func TestSQLHierarchy(t *testing.T) {
	conn := "default/snowflake/1700000000"

	db, err := NewDatabase("ANALYTICS", conn)
	require.NoError(t, err)
	assert.Equal(t, conn+"/ANALYTICS", QualifiedNameOf(db))
	assert.Equal(t, conn, *db.Attributes.ConnectionQualifiedName)
	assert.Equal(t, "snowflake", *db.Attributes.ConnectorName)

	schema, err := NewSchema("PUBLIC", QualifiedNameOf(db))
	require.NoError(t, err)
	assert.Equal(t, conn+"/ANALYTICS/PUBLIC", QualifiedNameOf(schema))
	assert.Equal(t, "ANALYTICS", *schema.Attributes.DatabaseName)
	assert.Equal(t, QualifiedNameOf(db), schema.Attributes.Database.QualifiedName())

	table, err := NewTable("ORDERS", QualifiedNameOf(schema))
	require.NoError(t, err)
	assert.Equal(t, conn+"/ANALYTICS/PUBLIC/ORDERS", QualifiedNameOf(table))
	assert.Equal(t, "PUBLIC", *table.Attributes.SchemaName)
	assert.Equal(t, conn+"/ANALYTICS", *table.Attributes.DatabaseQualifiedName)
	assert.Equal(t, TypeSchema, table.Attributes.Schema.TypeName)

	view, err := NewView("ORDERS_V", QualifiedNameOf(schema))
	require.NoError(t, err)
	assert.Equal(t, conn+"/ANALYTICS/PUBLIC/ORDERS_V", QualifiedNameOf(view))

	col, err := NewColumn("ID", TypeTable, QualifiedNameOf(table), 1)
	require.NoError(t, err)
	assert.Equal(t, conn+"/ANALYTICS/PUBLIC/ORDERS/ID", QualifiedNameOf(col))
	assert.Equal(t, "ORDERS", *col.Attributes.TableName)
	assert.Equal(t, "PUBLIC", *col.Attributes.SchemaName)
	assert.Equal(t, 1, *col.Attributes.Order)
	assert.NotNil(t, col.Attributes.Table)
	assert.Nil(t, col.Attributes.View)

	viewCol, err := NewColumn("ID", TypeView, QualifiedNameOf(view), 1)
	require.NoError(t, err)
	assert.Equal(t, "ORDERS_V", *viewCol.Attributes.ViewName)
	assert.NotNil(t, viewCol.Attributes.View)
}

// TestSQLHierarchy_RejectsBadParents tests the qualified name checks of the creators.
func TestSQLHierarchy_RejectsBadParents(t *testing.T) {
	_, err := NewDatabase("DB", "not-a-connection")
	assert.Error(t, err)
	_, err = NewDatabase("DB", "default/snowflake/1/extra")
	assert.Error(t, err)
	_, err = NewSchema("S", "")
	assert.Error(t, err)
	_, err = NewTable("T", "default/snowflake/1/DB")
	assert.Error(t, err)
	_, err = NewColumn("C", TypeTable, "default/snowflake/1/DB/S", 1)
	assert.Error(t, err)
	_, err = NewColumn("C", "Dashboard", "default/snowflake/1/DB/S/T", 1)
	assert.Error(t, err)
}

// TestGlossaryTerm tests anchoring by GUID and by qualified name.
func TestGlossaryTerm(t *testing.T) {
	g, err := NewGlossary("Business")
	require.NoError(t, err)
	assert.Equal(t, TypeGlossary, g.TypeName)

	term, err := NewGlossaryTerm("Revenue", RefByGUID(TypeGlossary, "g-1"))
	require.NoError(t, err)
	assert.Equal(t, "Revenue@g-1", QualifiedNameOf(term))
	assert.Equal(t, "g-1", term.Attributes.Anchor.GUID)

	term, err = NewGlossaryTerm("Revenue", RefByQualifiedName(TypeGlossary, "abc123"))
	require.NoError(t, err)
	assert.Equal(t, "Revenue@abc123", QualifiedNameOf(term))

	_, err = NewGlossaryTerm("Revenue", nil)
	assert.Error(t, err)
}

// TestTableauDashboard tests site and project derivation from the workbook.
func TestTableauDashboard(t *testing.T) {
	wb := "default/tableau/1700000000/site-1/project-1/workbook-1"
	d, err := NewTableauDashboard("Sales", wb)
	require.NoError(t, err)
	assert.Equal(t, wb+"/Sales", QualifiedNameOf(d))
	assert.Equal(t, "default/tableau/1700000000/site-1", *d.Attributes.SiteQualifiedName)
	assert.Equal(t, "default/tableau/1700000000/site-1/project-1", *d.Attributes.ProjectQualifiedName)
	assert.Equal(t, "tableau", *d.Attributes.ConnectorName)
	assert.Equal(t, wb, d.Attributes.Workbook.QualifiedName())

	_, err = NewTableauDashboard("Sales", "default/tableau/1700000000/site-1/workbook-1")
	assert.Error(t, err)
}

// TestNewReadme tests that a readme needs a saved asset.
func TestNewReadme(t *testing.T) {
	table := TableUpdater("a/b/c", "ORDERS")
	_, err := NewReadme(table, "<p>hi</p>")
	assert.Error(t, err)

	table.GUID = "t-1"
	r, err := NewReadme(table, "<p>hi</p>")
	require.NoError(t, err)
	assert.Equal(t, "t-1/readme", QualifiedNameOf(r))
	assert.Equal(t, "ORDERS Readme", NameOf(r))
	assert.Equal(t, "<p>hi</p>", *r.Attributes.Description)
	assert.Equal(t, "t-1", r.Attributes.Asset.GUID)
}

// TestConnectorTypes tests case-insensitive parsing and categories.
func TestConnectorTypes(t *testing.T) {
	ct, err := ParseConnectorType("SnowFlake")
	require.NoError(t, err)
	assert.Equal(t, ConnectorSnowflake, ct)
	assert.Equal(t, CategoryBI, ConnectorTableau.Category())
	assert.Equal(t, CategoryCustom, ConnectorType("unknown").Category())

	_, err = ParseConnectorType("nope")
	assert.Error(t, err)
	assert.Contains(t, ConnectorTypes(), ConnectorPostgres)
}

// TestQualifiedNameHelpers tests connection and parent extraction.
func TestQualifiedNameHelpers(t *testing.T) {
	qn := "default/postgres/123/db/sch/tbl"
	assert.Equal(t, "default/postgres/123", ConnectionOf(qn))
	assert.Equal(t, ConnectorPostgres, ConnectorOf(qn))
	assert.Equal(t, "default/postgres/123/db/sch", ParentOf(qn))
	assert.Equal(t, "", ConnectionOf("foo/bar"))
	assert.Equal(t, ConnectorType(""), ConnectorOf("foo"))
	assert.Equal(t, "", ParentOf("foo"))
}
