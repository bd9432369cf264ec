package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorKind separates "the network/endpoint failed" from "the server
// answered with an application error". The cache/fallback layer branches on
// this tag instead of sniffing message strings.
type ErrorKind int

const (
	KindTransport ErrorKind = iota
	KindGraphQL
)

// Error is the typed failure surface of the GraphQL client.
type Error struct {
	Kind    ErrorKind
	Message string
	Code    string
	cause   error
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Code)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// IsTransport reports whether err is a transport-kind failure.
func IsTransport(err error) bool {
	var te *Error
	return errors.As(err, &te) && te.Kind == KindTransport
}

// TokenSource supplies the bearer token for outgoing requests; empty means
// no Authorization header.
type TokenSource interface {
	Token(ctx context.Context) string
}

// Client speaks GraphQL over HTTP to the single /graphql endpoint.
type Client struct {
	url            string
	httpClient     *http.Client
	tokens         TokenSource
	onUnauthorized func()
}

func New(url string, tokens TokenSource, onUnauthorized func()) *Client {
	return &Client{
		url:            url,
		httpClient:     &http.Client{Timeout: 15 * time.Second},
		tokens:         tokens,
		onUnauthorized: onUnauthorized,
	}
}

type request struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type gqlError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

// Do executes one operation and unmarshals the data payload into out.
func (c *Client) Do(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	body, err := json.Marshal(request{Query: query, Variables: variables})
	if err != nil {
		return &Error{Kind: KindTransport, Message: "failed to encode request", cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return &Error{Kind: KindTransport, Message: "failed to build request", cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindTransport, Message: "request failed", cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// A rejected credential means the stored session is stale.
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return &Error{Kind: KindGraphQL, Message: "unauthorized", Code: "UNAUTHENTICATED"}
	}
	if resp.StatusCode != http.StatusOK {
		return &Error{Kind: KindTransport, Message: fmt.Sprintf("endpoint returned status %d", resp.StatusCode)}
	}

	var parsed response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return &Error{Kind: KindTransport, Message: "failed to decode response", cause: err}
	}

	if len(parsed.Errors) > 0 {
		first := parsed.Errors[0]
		return &Error{Kind: KindGraphQL, Message: first.Message, Code: first.Extensions.Code}
	}

	if out != nil {
		if err := json.Unmarshal(parsed.Data, out); err != nil {
			return &Error{Kind: KindTransport, Message: "failed to decode data", cause: err}
		}
	}
	return nil
}
