package graph

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ondetemapp/ondetem/internal/auth"
	"github.com/ondetemapp/ondetem/internal/services"
	"github.com/ondetemapp/ondetem/internal/store"
)

// fakeFirebaseStrategy accepts tokens of the form "firebase:<uid>" and maps
// them to a fixed identity, standing in for the Admin SDK in tests.
type fakeFirebaseStrategy struct {
	identities map[string]*auth.Identity
}

func (s *fakeFirebaseStrategy) Verify(_ context.Context, token string) (*auth.Identity, error) {
	if identity, ok := s.identities[token]; ok {
		return identity, nil
	}
	return nil, auth.ErrNotApplicable
}

type testAPI struct {
	schema   graphql.Schema
	users    *store.MemoryUsers
	products *store.MemoryProducts
	firebase *fakeFirebaseStrategy
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	users := store.NewMemoryUsers()
	products := store.NewMemoryProducts()
	supermarkets := store.NewMemorySupermarkets()

	firebase := &fakeFirebaseStrategy{identities: map[string]*auth.Identity{}}
	verifier := auth.NewVerifier(firebase, auth.NewLegacyStrategy("test-secret"))
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)

	resolver := NewResolver(
		verifier,
		users,
		services.NewAuthService(users, issuer),
		services.NewProductService(products, nil),
		services.NewSupermarketService(supermarkets, products),
	)
	schema, err := NewSchema(resolver)
	require.NoError(t, err)

	return &testAPI{schema: schema, users: users, products: products, firebase: firebase}
}

func (a *testAPI) exec(query, token string, vars map[string]interface{}) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         a.schema,
		RequestString:  query,
		VariableValues: vars,
		Context:        WithToken(context.Background(), token),
	})
}

func (a *testAPI) register(t *testing.T, name, email, password string) string {
	t.Helper()
	result := a.exec(fmt.Sprintf(
		`mutation { register(name: %q, email: %q, password: %q) { token user { id email } } }`,
		name, email, password), "", nil)
	require.Empty(t, result.Errors)

	payload := result.Data.(map[string]interface{})["register"].(map[string]interface{})
	return payload["token"].(string)
}

func errorCode(t *testing.T, result *graphql.Result) (string, string) {
	t.Helper()
	require.NotEmpty(t, result.Errors)
	first := result.Errors[0]
	code, _ := first.Extensions["code"].(string)
	return first.Message, code
}

func TestLoginMutation(t *testing.T) {
	api := newTestAPI(t)
	api.register(t, "Ana", "ana@example.com", "senha123")

	result := api.exec(`mutation { login(email: "ana@example.com", password: "senha123") { token user { name email } } }`, "", nil)
	require.Empty(t, result.Errors)

	payload := result.Data.(map[string]interface{})["login"].(map[string]interface{})
	assert.NotEmpty(t, payload["token"])
	user := payload["user"].(map[string]interface{})
	assert.Equal(t, "Ana", user["name"])
}

func TestLoginErrorsAreUniform(t *testing.T) {
	api := newTestAPI(t)
	api.register(t, "Ana", "ana@example.com", "senha123")

	wrongPassword := api.exec(`mutation { login(email: "ana@example.com", password: "errada") { token } }`, "", nil)
	unknownEmail := api.exec(`mutation { login(email: "ninguem@example.com", password: "senha123") { token } }`, "", nil)

	msg1, code1 := errorCode(t, wrongPassword)
	msg2, code2 := errorCode(t, unknownEmail)
	assert.Equal(t, msg1, msg2, "login failures must be indistinguishable")
	assert.Equal(t, "Email ou senha inválidos", msg1)
	assert.Equal(t, codeUnauthenticated, code1)
	assert.Equal(t, codeUnauthenticated, code2)
}

func TestRegisterDuplicateEmailCode(t *testing.T) {
	api := newTestAPI(t)
	api.register(t, "Ana", "dup@example.com", "senha123")

	result := api.exec(`mutation { register(name: "Outra", email: "dup@example.com", password: "senha456") { token } }`, "", nil)
	msg, code := errorCode(t, result)
	assert.Equal(t, "Email já cadastrado", msg)
	assert.Equal(t, codeBadUserInput, code)
}

func TestProtectedQueryWithoutToken(t *testing.T) {
	api := newTestAPI(t)

	result := api.exec(`{ products { id } }`, "", nil)
	msg, code := errorCode(t, result)
	assert.Equal(t, "Não autenticado", msg)
	assert.Equal(t, codeUnauthenticated, code)
}

func TestProtectedQueryWithGarbageToken(t *testing.T) {
	api := newTestAPI(t)

	result := api.exec(`{ products { id } }`, "garbage-token", nil)
	msg, code := errorCode(t, result)
	assert.Equal(t, "Token inválido", msg)
	assert.Equal(t, codeUnauthenticated, code)
}

func TestMeWithLegacyToken(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "Ana", "ana@example.com", "senha123")

	result := api.exec(`{ me { name email } }`, token, nil)
	require.Empty(t, result.Errors)
	me := result.Data.(map[string]interface{})["me"].(map[string]interface{})
	assert.Equal(t, "Ana", me["name"])
	assert.Equal(t, "ana@example.com", me["email"])
}

func TestMeProvisionsFirebaseUser(t *testing.T) {
	api := newTestAPI(t)
	api.firebase.identities["firebase:abc"] = &auth.Identity{
		FirebaseUID: "fb-abc", Email: "nova@example.com", Name: "Nova",
	}

	result := api.exec(`{ me { name email } }`, "firebase:abc", nil)
	require.Empty(t, result.Errors)
	me := result.Data.(map[string]interface{})["me"].(map[string]interface{})
	assert.Equal(t, "Nova", me["name"])
	assert.Equal(t, 1, api.users.Count(), "first authenticated request provisions the account")
}

func TestProductRoundTrip(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "Ana", "ana@example.com", "senha123")

	created := api.exec(`mutation ($input: ProductInput!) {
		createProduct(input: $input) { id name discountPercentage supermarketId }
	}`, token, map[string]interface{}{
		"input": map[string]interface{}{
			"name":               "Arroz 5kg",
			"originalPrice":      29.90,
			"discountPrice":      19.90,
			"discountPercentage": 33,
			"supermarketId":      "8b4a2a52-0000-4000-8000-000000000001",
		},
	})
	require.Empty(t, created.Errors)
	payload := created.Data.(map[string]interface{})["createProduct"].(map[string]interface{})
	id := payload["id"].(string)
	assert.Equal(t, 33, payload["discountPercentage"])

	fetched := api.exec(`query ($id: ID!) { product(id: $id) { name discountPercentage } }`, token,
		map[string]interface{}{"id": id})
	require.Empty(t, fetched.Errors)
	product := fetched.Data.(map[string]interface{})["product"].(map[string]interface{})
	assert.Equal(t, "Arroz 5kg", product["name"])
	assert.Equal(t, 33, product["discountPercentage"])
}

func TestProductNotFoundCode(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "Ana", "ana@example.com", "senha123")

	result := api.exec(`query ($id: ID!) { product(id: $id) { name } }`, token,
		map[string]interface{}{"id": "8b4a2a52-0000-4000-8000-00000000dead"})
	msg, code := errorCode(t, result)
	assert.Equal(t, "Produto não encontrado", msg)
	assert.Equal(t, codeNotFound, code)
}

func TestDeleteSupermarketGuard(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "Ana", "ana@example.com", "senha123")

	created := api.exec(`mutation ($input: SupermarketInput!) {
		createSupermarket(input: $input) { id color }
	}`, token, map[string]interface{}{
		"input": map[string]interface{}{
			"name":      "Mercado Central",
			"latitude":  -23.55,
			"longitude": -46.63,
		},
	})
	require.Empty(t, created.Errors)
	market := created.Data.(map[string]interface{})["createSupermarket"].(map[string]interface{})
	marketID := market["id"].(string)
	assert.Equal(t, "#FF0000", market["color"])

	product := api.exec(`mutation ($input: ProductInput!) { createProduct(input: $input) { id } }`, token,
		map[string]interface{}{"input": map[string]interface{}{
			"name": "Arroz", "originalPrice": 10.0, "discountPrice": 8.0,
			"discountPercentage": 20, "supermarketId": marketID,
		}})
	require.Empty(t, product.Errors)

	blocked := api.exec(`mutation ($id: ID!) { deleteSupermarket(id: $id) }`, token,
		map[string]interface{}{"id": marketID})
	msg, code := errorCode(t, blocked)
	assert.Equal(t, "Não é possível excluir supermercado com produtos cadastrados", msg)
	assert.Equal(t, codeFailedPrecondition, code)
}

func TestUpdatePushTokenMutation(t *testing.T) {
	api := newTestAPI(t)
	token := api.register(t, "Ana", "ana@example.com", "senha123")

	result := api.exec(`mutation { updatePushToken(pushToken: "ExponentPushToken[xyz]") { pushToken } }`, token, nil)
	require.Empty(t, result.Errors)
	user := result.Data.(map[string]interface{})["updatePushToken"].(map[string]interface{})
	assert.Equal(t, "ExponentPushToken[xyz]", user["pushToken"])
}

func TestCreateOrUpdateUserRequiresToken(t *testing.T) {
	api := newTestAPI(t)

	result := api.exec(`mutation ($input: UserInput!) { createOrUpdateUser(input: $input) { id } }`, "",
		map[string]interface{}{"input": map[string]interface{}{
			"firebaseUid": "fb-1", "email": "a@b.com", "name": "A",
		}})
	msg, code := errorCode(t, result)
	assert.Equal(t, "Não autenticado", msg)
	assert.Equal(t, codeUnauthenticated, code)
}

func TestCreateOrUpdateUserSyncsProfile(t *testing.T) {
	api := newTestAPI(t)
	api.firebase.identities["firebase:abc"] = &auth.Identity{FirebaseUID: "fb-abc", Email: "sync@example.com"}

	result := api.exec(`mutation ($input: UserInput!) { createOrUpdateUser(input: $input) { name email } }`,
		"firebase:abc",
		map[string]interface{}{"input": map[string]interface{}{
			"firebaseUid": "fb-abc", "email": "Sync@Example.com", "name": "Sincronizado",
		}})
	require.Empty(t, result.Errors)
	user := result.Data.(map[string]interface{})["createOrUpdateUser"].(map[string]interface{})
	assert.Equal(t, "Sincronizado", user["name"])
	assert.Equal(t, "sync@example.com", user["email"])
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", BearerToken("Bearer abc"))
	assert.Equal(t, "abc", BearerToken("abc"))
	assert.Equal(t, "", BearerToken(""))
}
