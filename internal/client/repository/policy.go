package repository

import (
	"context"
	"log/slog"
)

// SessionInfo is the slice of the session manager the policy needs.
type SessionInfo interface {
	HasSession(ctx context.Context) bool
}

// FallbackProducts prefers the remote repository while a session exists and
// silently falls back to the local mirror otherwise, favoring availability
// over consistency. Deletes are the exception: as explicit user actions,
// their remote failures are surfaced instead of swallowed.
type FallbackProducts struct {
	session SessionInfo
	remote  Products
	local   Products
}

func NewFallbackProducts(session SessionInfo, remote, local Products) *FallbackProducts {
	return &FallbackProducts{session: session, remote: remote, local: local}
}

func (r *FallbackProducts) List(ctx context.Context) ([]Product, error) {
	if !r.session.HasSession(ctx) {
		return r.local.List(ctx)
	}
	products, err := r.remote.List(ctx)
	if err != nil {
		slog.Warn("remote product list failed, using local mirror", "error", err)
		return r.local.List(ctx)
	}
	return products, nil
}

func (r *FallbackProducts) Get(ctx context.Context, id string) (*Product, error) {
	if !r.session.HasSession(ctx) {
		return r.local.Get(ctx, id)
	}
	product, err := r.remote.Get(ctx, id)
	if err != nil {
		slog.Warn("remote product fetch failed, using local mirror", "error", err)
		return r.local.Get(ctx, id)
	}
	return product, nil
}

func (r *FallbackProducts) Create(ctx context.Context, p Product) (*Product, error) {
	if !r.session.HasSession(ctx) {
		return r.local.Create(ctx, p)
	}
	created, err := r.remote.Create(ctx, p)
	if err != nil {
		slog.Warn("remote product create failed, writing local mirror", "error", err)
		return r.local.Create(ctx, p)
	}
	return created, nil
}

func (r *FallbackProducts) Update(ctx context.Context, id string, p Product) (*Product, error) {
	if !r.session.HasSession(ctx) {
		return r.local.Update(ctx, id, p)
	}
	updated, err := r.remote.Update(ctx, id, p)
	if err != nil {
		slog.Warn("remote product update failed, writing local mirror", "error", err)
		return r.local.Update(ctx, id, p)
	}
	return updated, nil
}

func (r *FallbackProducts) Delete(ctx context.Context, id string) (bool, error) {
	if !r.session.HasSession(ctx) {
		return r.local.Delete(ctx, id)
	}
	return r.remote.Delete(ctx, id)
}

// FallbackSupermarkets mirrors FallbackProducts for supermarkets.
type FallbackSupermarkets struct {
	session SessionInfo
	remote  Supermarkets
	local   Supermarkets
}

func NewFallbackSupermarkets(session SessionInfo, remote, local Supermarkets) *FallbackSupermarkets {
	return &FallbackSupermarkets{session: session, remote: remote, local: local}
}

func (r *FallbackSupermarkets) List(ctx context.Context) ([]Supermarket, error) {
	if !r.session.HasSession(ctx) {
		return r.local.List(ctx)
	}
	markets, err := r.remote.List(ctx)
	if err != nil {
		slog.Warn("remote supermarket list failed, using local mirror", "error", err)
		return r.local.List(ctx)
	}
	return markets, nil
}

func (r *FallbackSupermarkets) Get(ctx context.Context, id string) (*Supermarket, error) {
	if !r.session.HasSession(ctx) {
		return r.local.Get(ctx, id)
	}
	market, err := r.remote.Get(ctx, id)
	if err != nil {
		slog.Warn("remote supermarket fetch failed, using local mirror", "error", err)
		return r.local.Get(ctx, id)
	}
	return market, nil
}

func (r *FallbackSupermarkets) Create(ctx context.Context, s Supermarket) (*Supermarket, error) {
	if !r.session.HasSession(ctx) {
		return r.local.Create(ctx, s)
	}
	created, err := r.remote.Create(ctx, s)
	if err != nil {
		slog.Warn("remote supermarket create failed, writing local mirror", "error", err)
		return r.local.Create(ctx, s)
	}
	return created, nil
}

func (r *FallbackSupermarkets) Update(ctx context.Context, id string, s Supermarket) (*Supermarket, error) {
	if !r.session.HasSession(ctx) {
		return r.local.Update(ctx, id, s)
	}
	updated, err := r.remote.Update(ctx, id, s)
	if err != nil {
		slog.Warn("remote supermarket update failed, writing local mirror", "error", err)
		return r.local.Update(ctx, id, s)
	}
	return updated, nil
}

func (r *FallbackSupermarkets) Delete(ctx context.Context, id string) (bool, error) {
	if !r.session.HasSession(ctx) {
		return r.local.Delete(ctx, id)
	}
	return r.remote.Delete(ctx, id)
}
