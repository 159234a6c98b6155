package stub_test

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"atlan-sdk/core/middleware/rayid"
	"atlan-sdk/core/server"
	"atlan-sdk/feature/stub"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	app, err := stub.NewApp(stub.NewStore(), server.Config{ApiKey: "key", MaxPageSize: 2}, zap.NewNop())
	require.NoError(t, err)
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string, auth bool) (int, map[string]any, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth {
		req.Header.Set("Authorization", "Bearer key")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out, resp.Header.Get(rayid.Header)
}

// TestNewApp_Auth tests that the API needs the token but health does not.
func TestNewApp_Auth(t *testing.T) {
	app := newApp(t)

	status, body, ray := do(t, app, "GET", "/health", "", false)
	assert.Equal(t, 200, status)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, ray)

	status, body, _ = do(t, app, "GET", "/api/meta/entity/guid/x", "", false)
	assert.Equal(t, 401, status)
	assert.Equal(t, "ATLAN-401-00-001", body["errorCode"])
}

// TestNewApp_EntityLifecycle tests save, lookup, search and delete over HTTP.
func TestNewApp_EntityLifecycle(t *testing.T) {
	app := newApp(t)

	save := `{"entities":[
		{"typeName":"Table","guid":"-1","attributes":{"qualifiedName":"a/t1","name":"t1"}},
		{"typeName":"Table","guid":"-2","attributes":{"qualifiedName":"a/t2","name":"t2"}},
		{"typeName":"Table","guid":"-3","attributes":{"qualifiedName":"a/t3","name":"t3"}}
	]}`
	status, body, _ := do(t, app, "POST", "/api/meta/entity/bulk?replaceClassifications=false", save, true)
	require.Equal(t, 200, status)
	guid, _ := body["guidAssignments"].(map[string]any)["-1"].(string)
	require.NotEmpty(t, guid)

	status, body, _ = do(t, app, "GET", "/api/meta/entity/guid/"+guid, "", true)
	require.Equal(t, 200, status)
	assert.Equal(t, "t1", body["entity"].(map[string]any)["attributes"].(map[string]any)["name"])

	status, body, _ = do(t, app, "GET", "/api/meta/entity/uniqueAttribute/type/Table?attr:qualifiedName=a%2Ft2", "", true)
	require.Equal(t, 200, status)
	assert.Equal(t, "Table", body["entity"].(map[string]any)["typeName"])

	status, body, _ = do(t, app, "GET", "/api/meta/entity/uniqueAttribute/type/Table?attr:qualifiedName=nope", "", true)
	assert.Equal(t, 404, status)
	assert.Equal(t, "ATLAN-404-00-005", body["errorCode"])

	search := `{"dsl":{"from":0,"size":50,"query":{"prefix":{"qualifiedName":{"value":"a/"}}}}}`
	status, body, _ = do(t, app, "POST", "/api/meta/search/indexsearch", search, true)
	require.Equal(t, 200, status)
	assert.EqualValues(t, 3, body["approximateCount"])
	assert.Len(t, body["entities"], 2, "page size is clamped")

	status, body, _ = do(t, app, "DELETE", "/api/meta/entity/bulk?guid="+guid+"&deleteType=SOFT", "", true)
	require.Equal(t, 200, status)
	assert.Len(t, body["mutatedEntities"].(map[string]any)["DELETE"], 1)

	status, _, _ = do(t, app, "DELETE", "/api/meta/entity/bulk", "", true)
	assert.Equal(t, 400, status)

	status, body, _ = do(t, app, "POST", "/api/meta/entity/bulk", `{"entities":[{"typeName":"Table"}]}`, true)
	assert.Equal(t, 400, status)
	assert.Equal(t, "ATLAN-400-00-001", body["errorCode"])

	status, _, _ = do(t, app, "POST", "/api/meta/search/indexsearch", `not json`, true)
	assert.Equal(t, 400, status)
}

// TestNewApp_UnknownRoute tests the error shape of unmatched routes.
func TestNewApp_UnknownRoute(t *testing.T) {
	app := newApp(t)
	status, body, _ := do(t, app, "GET", "/api/unknown", "", true)
	assert.Equal(t, 404, status)
	assert.Equal(t, "ATLAN-404-00-000", body["errorCode"])
}
