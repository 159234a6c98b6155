package cmd

import (
	"testing"

	"atlan-sdk/feature/query"
	"atlan-sdk/feature/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhereClause(t *testing.T) {
	q, err := whereClause("Name=ORDERS")
	require.NoError(t, err)
	assert.Equal(t, query.Term{Field: "name.keyword", Value: "ORDERS"}, q)

	q, err = whereClause("typeName=Table")
	require.NoError(t, err)
	assert.Equal(t, query.Term{Field: "__typeName.keyword", Value: "Table"}, q)

	_, err = whereClause("name")
	assert.ErrorContains(t, err, "expected attribute=value")

	_, err = whereClause("nope=1")
	assert.ErrorContains(t, err, "unknown searchable attribute")
}

func TestDecodeCrawler(t *testing.T) {
	data := []byte(`{
		"connection": {"name": "production", "adminUsers": ["jdoe"]},
		"credential": {"authType": "basic", "username": "svc", "password": "secret"},
		"hostname": "db.internal",
		"database": "analytics"
	}`)
	b, err := crawlers["postgres"](data)
	require.NoError(t, err)

	c, ok := b.(workflow.PostgresCrawler)
	require.True(t, ok)
	assert.Equal(t, "production", c.Connection.Name)
	assert.Equal(t, []string{"jdoe"}, c.Connection.AdminUsers)
	assert.Equal(t, workflow.AuthBasic, c.Credential.AuthType)
	assert.Equal(t, "db.internal", c.Hostname)

	_, err = crawlers["snowflake"]([]byte(`[]`))
	assert.Error(t, err)
}
