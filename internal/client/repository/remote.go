package repository

import (
	"context"

	"github.com/ondetemapp/ondetem/internal/client/session"
	"github.com/ondetemapp/ondetem/internal/client/transport"
)

const (
	queryProducts = `query GetProducts {
  products { id name originalPrice discountPrice discountPercentage supermarketId image createdAt updatedAt }
}`
	queryProductByID = `query GetProduct($id: ID!) {
  product(id: $id) { id name originalPrice discountPrice discountPercentage supermarketId image createdAt updatedAt }
}`
	mutationCreateProduct = `mutation CreateProduct($input: ProductInput!) {
  createProduct(input: $input) { id name originalPrice discountPrice discountPercentage supermarketId image createdAt }
}`
	mutationUpdateProduct = `mutation UpdateProduct($id: ID!, $input: ProductInput!) {
  updateProduct(id: $id, input: $input) { id name originalPrice discountPrice discountPercentage supermarketId image updatedAt }
}`
	mutationDeleteProduct = `mutation DeleteProduct($id: ID!) {
  deleteProduct(id: $id)
}`

	querySupermarkets = `query GetSupermarkets {
  supermarkets { id name address description latitude longitude color createdAt updatedAt }
}`
	querySupermarketByID = `query GetSupermarket($id: ID!) {
  supermarket(id: $id) { id name address description latitude longitude color createdAt updatedAt }
}`
	mutationCreateSupermarket = `mutation CreateSupermarket($input: SupermarketInput!) {
  createSupermarket(input: $input) { id name address description latitude longitude color createdAt }
}`
	mutationUpdateSupermarket = `mutation UpdateSupermarket($id: ID!, $input: SupermarketInput!) {
  updateSupermarket(id: $id, input: $input) { id name address description latitude longitude color updatedAt }
}`
	mutationDeleteSupermarket = `mutation DeleteSupermarket($id: ID!) {
  deleteSupermarket(id: $id)
}`

	mutationLogin = `mutation Login($email: String!, $password: String!) {
  login(email: $email, password: $password) { token user { id name email } }
}`
	mutationRegister = `mutation Register($name: String!, $email: String!, $password: String!) {
  register(name: $name, email: $email, password: $password) { token user { id name email } }
}`
	queryMe = `query Me {
  me { id name email pushToken }
}`
)

// RemoteProducts is the GraphQL-backed implementation.
type RemoteProducts struct {
	client *transport.Client
}

func NewRemoteProducts(client *transport.Client) *RemoteProducts {
	return &RemoteProducts{client: client}
}

func (r *RemoteProducts) List(ctx context.Context) ([]Product, error) {
	var out struct {
		Products []Product `json:"products"`
	}
	if err := r.client.Do(ctx, queryProducts, nil, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

func (r *RemoteProducts) Get(ctx context.Context, id string) (*Product, error) {
	var out struct {
		Product *Product `json:"product"`
	}
	if err := r.client.Do(ctx, queryProductByID, map[string]interface{}{"id": id}, &out); err != nil {
		return nil, err
	}
	return out.Product, nil
}

func (r *RemoteProducts) Create(ctx context.Context, p Product) (*Product, error) {
	var out struct {
		CreateProduct *Product `json:"createProduct"`
	}
	vars := map[string]interface{}{"input": productInput(p)}
	if err := r.client.Do(ctx, mutationCreateProduct, vars, &out); err != nil {
		return nil, err
	}
	return out.CreateProduct, nil
}

func (r *RemoteProducts) Update(ctx context.Context, id string, p Product) (*Product, error) {
	var out struct {
		UpdateProduct *Product `json:"updateProduct"`
	}
	vars := map[string]interface{}{"id": id, "input": productInput(p)}
	if err := r.client.Do(ctx, mutationUpdateProduct, vars, &out); err != nil {
		return nil, err
	}
	return out.UpdateProduct, nil
}

func (r *RemoteProducts) Delete(ctx context.Context, id string) (bool, error) {
	var out struct {
		DeleteProduct bool `json:"deleteProduct"`
	}
	if err := r.client.Do(ctx, mutationDeleteProduct, map[string]interface{}{"id": id}, &out); err != nil {
		return false, err
	}
	return out.DeleteProduct, nil
}

func productInput(p Product) map[string]interface{} {
	input := map[string]interface{}{
		"name":               p.Name,
		"originalPrice":      p.OriginalPrice,
		"discountPrice":      p.DiscountPrice,
		"discountPercentage": p.DiscountPercentage,
		"supermarketId":      p.SupermarketID,
	}
	if p.Image != "" {
		input["image"] = p.Image
	}
	return input
}

// RemoteSupermarkets is the GraphQL-backed implementation.
type RemoteSupermarkets struct {
	client *transport.Client
}

func NewRemoteSupermarkets(client *transport.Client) *RemoteSupermarkets {
	return &RemoteSupermarkets{client: client}
}

func (r *RemoteSupermarkets) List(ctx context.Context) ([]Supermarket, error) {
	var out struct {
		Supermarkets []Supermarket `json:"supermarkets"`
	}
	if err := r.client.Do(ctx, querySupermarkets, nil, &out); err != nil {
		return nil, err
	}
	return out.Supermarkets, nil
}

func (r *RemoteSupermarkets) Get(ctx context.Context, id string) (*Supermarket, error) {
	var out struct {
		Supermarket *Supermarket `json:"supermarket"`
	}
	if err := r.client.Do(ctx, querySupermarketByID, map[string]interface{}{"id": id}, &out); err != nil {
		return nil, err
	}
	return out.Supermarket, nil
}

func (r *RemoteSupermarkets) Create(ctx context.Context, s Supermarket) (*Supermarket, error) {
	var out struct {
		CreateSupermarket *Supermarket `json:"createSupermarket"`
	}
	vars := map[string]interface{}{"input": supermarketInput(s)}
	if err := r.client.Do(ctx, mutationCreateSupermarket, vars, &out); err != nil {
		return nil, err
	}
	return out.CreateSupermarket, nil
}

func (r *RemoteSupermarkets) Update(ctx context.Context, id string, s Supermarket) (*Supermarket, error) {
	var out struct {
		UpdateSupermarket *Supermarket `json:"updateSupermarket"`
	}
	vars := map[string]interface{}{"id": id, "input": supermarketInput(s)}
	if err := r.client.Do(ctx, mutationUpdateSupermarket, vars, &out); err != nil {
		return nil, err
	}
	return out.UpdateSupermarket, nil
}

func (r *RemoteSupermarkets) Delete(ctx context.Context, id string) (bool, error) {
	var out struct {
		DeleteSupermarket bool `json:"deleteSupermarket"`
	}
	if err := r.client.Do(ctx, mutationDeleteSupermarket, map[string]interface{}{"id": id}, &out); err != nil {
		return false, err
	}
	return out.DeleteSupermarket, nil
}

func supermarketInput(s Supermarket) map[string]interface{} {
	input := map[string]interface{}{
		"name":      s.Name,
		"latitude":  s.Latitude,
		"longitude": s.Longitude,
	}
	if s.Address != "" {
		input["address"] = s.Address
	}
	if s.Description != "" {
		input["description"] = s.Description
	}
	if s.Color != "" {
		input["color"] = s.Color
	}
	return input
}

// AuthAPI bundles the credential operations the CLI needs.
type AuthAPI struct {
	client *transport.Client
}

func NewAuthAPI(client *transport.Client) *AuthAPI {
	return &AuthAPI{client: client}
}

type AuthPayload struct {
	Token string       `json:"token"`
	User  session.User `json:"user"`
}

func (a *AuthAPI) Login(ctx context.Context, email, password string) (*AuthPayload, error) {
	var out struct {
		Login AuthPayload `json:"login"`
	}
	vars := map[string]interface{}{"email": email, "password": password}
	if err := a.client.Do(ctx, mutationLogin, vars, &out); err != nil {
		return nil, err
	}
	return &out.Login, nil
}

func (a *AuthAPI) Register(ctx context.Context, name, email, password string) (*AuthPayload, error) {
	var out struct {
		Register AuthPayload `json:"register"`
	}
	vars := map[string]interface{}{"name": name, "email": email, "password": password}
	if err := a.client.Do(ctx, mutationRegister, vars, &out); err != nil {
		return nil, err
	}
	return &out.Register, nil
}

func (a *AuthAPI) Me(ctx context.Context) (*session.User, error) {
	var out struct {
		Me *session.User `json:"me"`
	}
	if err := a.client.Do(ctx, queryMe, nil, &out); err != nil {
		return nil, err
	}
	return out.Me, nil
}
