package graph

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*fiber.App, *testAPI) {
	t.Helper()
	api := newTestAPI(t)
	app := fiber.New()
	app.Post("/graphql", Handler(api.schema))
	return app, api
}

func postGraphQL(t *testing.T, app *fiber.App, token, query string, vars map[string]interface{}) map[string]interface{} {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{"query": query, "variables": vars})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var parsed map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return parsed
}

func TestHandlerRegisterAndMe(t *testing.T) {
	app, _ := newTestApp(t)

	registered := postGraphQL(t, app, "",
		`mutation { register(name: "Ana", email: "ana@example.com", password: "senha123") { token } }`, nil)
	require.Nil(t, registered["errors"])
	token := registered["data"].(map[string]interface{})["register"].(map[string]interface{})["token"].(string)
	require.NotEmpty(t, token)

	me := postGraphQL(t, app, token, `{ me { name email } }`, nil)
	require.Nil(t, me["errors"])
	user := me["data"].(map[string]interface{})["me"].(map[string]interface{})
	assert.Equal(t, "Ana", user["name"])
}

func TestHandlerErrorShape(t *testing.T) {
	app, _ := newTestApp(t)

	result := postGraphQL(t, app, "", `{ products { id } }`, nil)
	errs := result["errors"].([]interface{})
	require.NotEmpty(t, errs)
	first := errs[0].(map[string]interface{})
	assert.Equal(t, "Não autenticado", first["message"])
	extensions := first["extensions"].(map[string]interface{})
	assert.Equal(t, "UNAUTHENTICATED", extensions["code"])
}

func TestHandlerRejectsMalformedBody(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader([]byte("not-json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
