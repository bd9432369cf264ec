package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token(_ context.Context) string { return string(s) }

func TestDoSendsAuthorizationHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{"ok": true},
		})
	}))
	defer server.Close()

	c := New(server.URL, staticToken("jwt-abc"), nil)
	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, c.Do(context.Background(), `{ ok }`, nil, &out))
	assert.True(t, out.OK)
	assert.Equal(t, "Bearer jwt-abc", gotAuth)
}

func TestDoOmitsHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]interface{}{"data": map[string]interface{}{}})
	}))
	defer server.Close()

	c := New(server.URL, staticToken(""), nil)
	require.NoError(t, c.Do(context.Background(), `{ ok }`, nil, nil))
	assert.Empty(t, gotAuth)
}

func TestDoTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	c := New(server.URL, nil, nil)
	err := c.Do(context.Background(), `{ ok }`, nil, nil)
	require.Error(t, err)
	assert.True(t, IsTransport(err))
}

func TestDoServerErrorIsTransport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := New(server.URL, nil, nil)
	err := c.Do(context.Background(), `{ ok }`, nil, nil)
	require.Error(t, err)
	assert.True(t, IsTransport(err))
}

func TestDoGraphQLErrorIsNotTransport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"errors": []map[string]interface{}{{
				"message":    "Produto não encontrado",
				"extensions": map[string]string{"code": "NOT_FOUND"},
			}},
		})
	}))
	defer server.Close()

	c := New(server.URL, nil, nil)
	err := c.Do(context.Background(), `{ product(id: "x") { id } }`, nil, nil)
	require.Error(t, err)
	assert.False(t, IsTransport(err))

	var te *Error
	require.ErrorAs(t, err, &te)
	assert.Equal(t, KindGraphQL, te.Kind)
	assert.Equal(t, "Produto não encontrado", te.Message)
	assert.Equal(t, "NOT_FOUND", te.Code)
}

func TestDoUnauthorizedClearsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	cleared := false
	c := New(server.URL, staticToken("stale-jwt"), func() { cleared = true })
	err := c.Do(context.Background(), `{ me { id } }`, nil, nil)
	require.Error(t, err)
	assert.True(t, cleared, "a 401 must invalidate the stored session")

	var te *Error
	require.ErrorAs(t, err, &te)
	assert.Equal(t, KindGraphQL, te.Kind)
	assert.Equal(t, "UNAUTHENTICATED", te.Code)
}

func TestDoSendsVariables(t *testing.T) {
	var got request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]interface{}{"data": map[string]interface{}{}})
	}))
	defer server.Close()

	c := New(server.URL, nil, nil)
	vars := map[string]interface{}{"id": "p1"}
	require.NoError(t, c.Do(context.Background(), `query ($id: ID!) { product(id: $id) { id } }`, vars, nil))
	assert.Equal(t, "p1", got.Variables["id"])
}
