package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Expo accepts at most 100 messages per request.
const chunkSize = 100

// Message is one push notification in Expo's wire format.
type Message struct {
	To        string                 `json:"to"`
	Sound     string                 `json:"sound"`
	Title     string                 `json:"title"`
	Body      string                 `json:"body"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Priority  string                 `json:"priority"`
	ChannelID string                 `json:"channelId"`
}

// Ticket is Expo's per-message delivery receipt.
type Ticket struct {
	Status  string `json:"status"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}

type ticketResponse struct {
	Data []Ticket `json:"data"`
}

// ExpoClient talks to the Expo push HTTP API.
type ExpoClient struct {
	httpClient *http.Client
	url        string
}

func NewExpoClient(url string, timeout time.Duration) *ExpoClient {
	return &ExpoClient{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
	}
}

// IsExpoPushToken reports whether a stored token looks like an Expo push
// token; anything else is skipped rather than sent.
func IsExpoPushToken(token string) bool {
	return (strings.HasPrefix(token, "ExponentPushToken[") ||
		strings.HasPrefix(token, "ExpoPushToken[")) &&
		strings.HasSuffix(token, "]")
}

// Send posts messages in chunks of 100 and collects the returned tickets.
// A failed chunk contributes error tickets instead of aborting the batch.
func (c *ExpoClient) Send(ctx context.Context, messages []Message) ([]Ticket, error) {
	tickets := make([]Ticket, 0, len(messages))
	for start := 0; start < len(messages); start += chunkSize {
		end := start + chunkSize
		if end > len(messages) {
			end = len(messages)
		}
		chunk := messages[start:end]

		chunkTickets, err := c.sendChunk(ctx, chunk)
		if err != nil {
			for range chunk {
				tickets = append(tickets, Ticket{Status: "error", Message: err.Error()})
			}
			continue
		}
		tickets = append(tickets, chunkTickets...)
	}
	return tickets, nil
}

func (c *ExpoClient) sendChunk(ctx context.Context, chunk []Message) ([]Ticket, error) {
	body, err := json.Marshal(chunk)
	if err != nil {
		return nil, fmt.Errorf("failed to encode push messages: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("push request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("push endpoint returned status %d", resp.StatusCode)
	}

	var parsed ticketResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode push tickets: %w", err)
	}
	return parsed.Data, nil
}
