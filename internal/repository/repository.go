package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/bakeryhq/orderdesk/internal/models"
)

// Record keys, kept from the browser storage layout so exported data stays readable
const (
	KeyProducts   = "bakery_products_v2"
	KeyClients    = "bakery_clients_v2"
	KeyOrders     = "bakery_orders_v2"
	KeyWebhookURL = "bakery_sheets_url"
)

var ErrCorruptRecord = errors.New("stored record is not valid JSON")

// Repository loads and saves whole collections. Absent records fall back to
// the seed; every save overwrites the full collection.
type Repository struct {
	kv   KV
	seed Seed
}

// New creates a repository over kv with the given seed data
func New(kv KV, seed Seed) *Repository {
	return &Repository{kv: kv, seed: seed}
}

// Products returns the stored catalog or the seed catalog
func (r *Repository) Products(ctx context.Context) ([]models.Product, error) {
	return load(ctx, r.kv, KeyProducts, r.seed.Products)
}

// SaveProducts overwrites the catalog
func (r *Repository) SaveProducts(ctx context.Context, products []models.Product) error {
	return save(ctx, r.kv, KeyProducts, products)
}

// Clients returns the stored clients or the seed clients
func (r *Repository) Clients(ctx context.Context) ([]models.Client, error) {
	return load(ctx, r.kv, KeyClients, r.seed.Clients)
}

// SaveClients overwrites the client list
func (r *Repository) SaveClients(ctx context.Context, clients []models.Client) error {
	return save(ctx, r.kv, KeyClients, clients)
}

// Orders returns the stored orders; there is no seed order book
func (r *Repository) Orders(ctx context.Context) ([]models.Order, error) {
	return load[models.Order](ctx, r.kv, KeyOrders, nil)
}

// SaveOrders overwrites the order book
func (r *Repository) SaveOrders(ctx context.Context, orders []models.Order) error {
	return save(ctx, r.kv, KeyOrders, orders)
}

// WebhookURL returns the configured sheet webhook, or "" when none was saved
func (r *Repository) WebhookURL(ctx context.Context) (string, error) {
	v, _, err := r.kv.Get(ctx, KeyWebhookURL)
	return v, err
}

// SaveWebhookURL stores the sheet webhook as plain text
func (r *Repository) SaveWebhookURL(ctx context.Context, url string) error {
	return r.kv.Put(ctx, KeyWebhookURL, url)
}

func load[T any](ctx context.Context, kv KV, key string, fallback []T) ([]T, error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		out := slices.Clone(fallback)
		if out == nil {
			out = []T{}
		}
		return out, nil
	}

	var out []T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptRecord, key, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func save[T any](ctx context.Context, kv KV, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return kv.Put(ctx, key, string(data))
}
