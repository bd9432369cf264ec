package graph

import (
	"fmt"

	"github.com/graphql-go/graphql"
	"github.com/ondetemapp/ondetem/internal/services"
)

// NewSchema builds the API schema. Field names and nullability follow the
// mobile client's queries exactly; authentication is enforced inside the
// resolvers, not declared in the schema.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"pushToken": &graphql.Field{Type: graphql.String},
			"createdAt": &graphql.Field{Type: graphql.String},
		},
	})

	productType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id":                 &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":               &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"originalPrice":      &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"discountPrice":      &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"discountPercentage": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"supermarketId":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"image":              &graphql.Field{Type: graphql.String},
			"createdAt":          &graphql.Field{Type: graphql.String},
			"updatedAt":          &graphql.Field{Type: graphql.String},
		},
	})

	supermarketType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Supermarket",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"address":     &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"latitude":    &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"longitude":   &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"color":       &graphql.Field{Type: graphql.String},
			"createdAt":   &graphql.Field{Type: graphql.String},
			"updatedAt":   &graphql.Field{Type: graphql.String},
		},
	})

	authResponseType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthResponse",
		Fields: graphql.Fields{
			"token": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"user":  &graphql.Field{Type: graphql.NewNonNull(userType)},
		},
	})

	productInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ProductInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":               &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"originalPrice":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			"discountPrice":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			"discountPercentage": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
			"supermarketId":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"image":              &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	supermarketInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SupermarketInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"address":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"latitude":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			"longitude":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			"color":       &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	userInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"firebaseUid": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"name":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"me": &graphql.Field{
				Type: userType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user, err := r.authenticate(p.Context)
					if err != nil {
						return nil, wrapError("me", err)
					}
					return userMap(user), nil
				},
			},
			"products": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(productType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := r.authenticate(p.Context); err != nil {
						return nil, wrapError("products", err)
					}
					products, err := r.products.List(p.Context)
					if err != nil {
						return nil, wrapError("products", err)
					}
					out := make([]map[string]interface{}, 0, len(products))
					for i := range products {
						out = append(out, productMap(&products[i]))
					}
					return out, nil
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := r.authenticate(p.Context); err != nil {
						return nil, wrapError("product", err)
					}
					product, err := r.products.Get(p.Context, p.Args["id"].(string))
					if err != nil {
						return nil, wrapError("product", err)
					}
					return productMap(product), nil
				},
			},
			"supermarkets": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(supermarketType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := r.authenticate(p.Context); err != nil {
						return nil, wrapError("supermarkets", err)
					}
					markets, err := r.supermarkets.List(p.Context)
					if err != nil {
						return nil, wrapError("supermarkets", err)
					}
					out := make([]map[string]interface{}, 0, len(markets))
					for i := range markets {
						out = append(out, supermarketMap(&markets[i]))
					}
					return out, nil
				},
			},
			"supermarket": &graphql.Field{
				Type: supermarketType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := r.authenticate(p.Context); err != nil {
						return nil, wrapError("supermarket", err)
					}
					market, err := r.supermarkets.Get(p.Context, p.Args["id"].(string))
					if err != nil {
						return nil, wrapError("supermarket", err)
					}
					return supermarketMap(market), nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"login": &graphql.Field{
				Type: graphql.NewNonNull(authResponseType),
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					result, err := r.authService.Login(p.Context, p.Args["email"].(string), p.Args["password"].(string))
					if err != nil {
						return nil, wrapError("login", err)
					}
					return map[string]interface{}{"token": result.Token, "user": userMap(result.User)}, nil
				},
			},
			"register": &graphql.Field{
				Type: graphql.NewNonNull(authResponseType),
				Args: graphql.FieldConfigArgument{
					"name":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					result, err := r.authService.Register(p.Context, p.Args["name"].(string), p.Args["email"].(string), p.Args["password"].(string))
					if err != nil {
						return nil, wrapError("register", err)
					}
					return map[string]interface{}{"token": result.Token, "user": userMap(result.User)}, nil
				},
			},
			"createProduct": &graphql.Field{
				Type: graphql.NewNonNull(productType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(productInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := r.authenticate(p.Context); err != nil {
						return nil, wrapError("createProduct", err)
					}
					input := productInputFrom(p.Args["input"].(map[string]interface{}))
					product, err := r.products.Create(p.Context, input)
					if err != nil {
						return nil, wrapError("createProduct", err)
					}
					return productMap(product), nil
				},
			},
			"updateProduct": &graphql.Field{
				Type: graphql.NewNonNull(productType),
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(productInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := r.authenticate(p.Context); err != nil {
						return nil, wrapError("updateProduct", err)
					}
					input := productInputFrom(p.Args["input"].(map[string]interface{}))
					product, err := r.products.Update(p.Context, p.Args["id"].(string), input)
					if err != nil {
						return nil, wrapError("updateProduct", err)
					}
					return productMap(product), nil
				},
			},
			"deleteProduct": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := r.authenticate(p.Context); err != nil {
						return nil, wrapError("deleteProduct", err)
					}
					deleted, err := r.products.Delete(p.Context, p.Args["id"].(string))
					if err != nil {
						return nil, wrapError("deleteProduct", err)
					}
					return deleted, nil
				},
			},
			"createSupermarket": &graphql.Field{
				Type: graphql.NewNonNull(supermarketType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(supermarketInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := r.authenticate(p.Context); err != nil {
						return nil, wrapError("createSupermarket", err)
					}
					input := supermarketInputFrom(p.Args["input"].(map[string]interface{}))
					market, err := r.supermarkets.Create(p.Context, input)
					if err != nil {
						return nil, wrapError("createSupermarket", err)
					}
					return supermarketMap(market), nil
				},
			},
			"updateSupermarket": &graphql.Field{
				Type: graphql.NewNonNull(supermarketType),
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(supermarketInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := r.authenticate(p.Context); err != nil {
						return nil, wrapError("updateSupermarket", err)
					}
					input := supermarketInputFrom(p.Args["input"].(map[string]interface{}))
					market, err := r.supermarkets.Update(p.Context, p.Args["id"].(string), input)
					if err != nil {
						return nil, wrapError("updateSupermarket", err)
					}
					return supermarketMap(market), nil
				},
			},
			"deleteSupermarket": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := r.authenticate(p.Context); err != nil {
						return nil, wrapError("deleteSupermarket", err)
					}
					deleted, err := r.supermarkets.Delete(p.Context, p.Args["id"].(string))
					if err != nil {
						return nil, wrapError("deleteSupermarket", err)
					}
					return deleted, nil
				},
			},
			"updatePushToken": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"pushToken": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user, err := r.authenticate(p.Context)
					if err != nil {
						return nil, wrapError("updatePushToken", err)
					}
					updated, err := r.authService.UpdatePushToken(p.Context, user, p.Args["pushToken"].(string))
					if err != nil {
						return nil, wrapError("updatePushToken", err)
					}
					return userMap(updated), nil
				},
			},
			"createOrUpdateUser": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(userInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					identity, err := r.identity(p.Context)
					if err != nil {
						return nil, wrapError("createOrUpdateUser", err)
					}
					raw := p.Args["input"].(map[string]interface{})
					input := services.UserProfileInput{
						FirebaseUID: stringArg(raw, "firebaseUid"),
						Email:       stringArg(raw, "email"),
						Name:        stringArg(raw, "name"),
					}
					user, err := r.authService.CreateOrUpdateUser(p.Context, identity, input)
					if err != nil {
						return nil, wrapError("createOrUpdateUser", err)
					}
					return userMap(user), nil
				},
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("failed to build schema: %w", err)
	}
	return schema, nil
}
