package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ondetemapp/ondetem/internal/models"
	"github.com/ondetemapp/ondetem/internal/store"
	"gorm.io/datatypes"
)

// PushSender delivers a batch of push messages; *ExpoClient is the real one.
type PushSender interface {
	Send(ctx context.Context, messages []Message) ([]Ticket, error)
}

// Dispatcher fans out "new product" push notifications out-of-band. Mutations
// only enqueue; the consumer goroutine owns lookup, delivery and failure
// handling, and nothing here ever reaches the mutation's caller.
type Dispatcher struct {
	jobs         chan models.Product
	users        store.Users
	supermarkets store.Supermarkets
	logs         store.NotificationLogs
	sender       PushSender
	done         chan struct{}
	wg           sync.WaitGroup
}

func NewDispatcher(users store.Users, supermarkets store.Supermarkets, logs store.NotificationLogs, sender PushSender) *Dispatcher {
	return &Dispatcher{
		jobs:         make(chan models.Product, 64),
		users:        users,
		supermarkets: supermarkets,
		logs:         logs,
		sender:       sender,
		done:         make(chan struct{}),
	}
}

func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go d.run()
}

func (d *Dispatcher) Stop() {
	close(d.done)
	d.wg.Wait()
}

// ProductCreated enqueues a fan-out job. It never blocks: when the queue is
// full the notification is dropped with a warning.
func (d *Dispatcher) ProductCreated(product models.Product) {
	select {
	case d.jobs <- product:
	default:
		slog.Warn("notification queue full, dropping fan-out", "product_id", product.ID)
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for {
		select {
		case product := <-d.jobs:
			d.process(product)
		case <-d.done:
			return
		}
	}
}

func (d *Dispatcher) process(product models.Product) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("notification fan-out panicked", "product_id", product.ID, "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	marketName := "um supermercado"
	if mid, err := uuid.Parse(product.SupermarketID); err == nil {
		if market, err := d.supermarkets.ByID(ctx, mid); err == nil {
			marketName = market.Name
		}
	}

	title := "🎉 Novo Produto com Desconto!"
	body := fmt.Sprintf("%s - %d%% OFF em %s", product.Name, product.DiscountPercentage, marketName)
	data := map[string]interface{}{
		"type":          "NEW_PRODUCT",
		"productId":     product.ID.String(),
		"supermarketId": product.SupermarketID,
		"screen":        "supermarket-details",
		"params":        map[string]string{"id": product.SupermarketID},
	}

	recipients, err := d.users.WithPushTokens(ctx)
	if err != nil {
		slog.Error("failed to list push recipients", "operation", "notify.product_created", "error", err)
		return
	}

	messages := make([]Message, 0, len(recipients))
	for _, u := range recipients {
		if u.PushToken == nil || !IsExpoPushToken(*u.PushToken) {
			continue
		}
		messages = append(messages, Message{
			To:        *u.PushToken,
			Sound:     "default",
			Title:     title,
			Body:      body,
			Data:      data,
			Priority:  "high",
			ChannelID: "default",
		})
	}
	if len(messages) == 0 {
		return
	}

	tickets, err := d.sender.Send(ctx, messages)
	if err != nil {
		slog.Error("push fan-out failed", "operation", "notify.product_created", "error", err)
		return
	}

	delivered, failed := 0, 0
	for _, t := range tickets {
		if t.Status == "error" {
			failed++
		} else {
			delivered++
		}
	}
	slog.Info("push fan-out completed", "product_id", product.ID, "delivered", delivered, "failed", failed)

	d.record(ctx, product, title, body, data, len(messages), delivered, failed)
}

func (d *Dispatcher) record(ctx context.Context, product models.Product, title, body string, data map[string]interface{}, recipients, delivered, failed int) {
	if d.logs == nil {
		return
	}
	payload, err := json.Marshal(data)
	if err != nil {
		payload = []byte("{}")
	}
	entry := &models.NotificationLog{
		ID:         uuid.New(),
		ProductID:  product.ID.String(),
		Title:      title,
		Body:       body,
		Payload:    datatypes.JSON(payload),
		Recipients: recipients,
		Delivered:  delivered,
		Failed:     failed,
	}
	if err := d.logs.Create(ctx, entry); err != nil {
		slog.Error("failed to record notification log", "error", err)
	}
}
