package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bakeryhq/orderdesk/internal/calendar"
	"github.com/bakeryhq/orderdesk/internal/models"
	"github.com/bakeryhq/orderdesk/internal/production"
	"github.com/bakeryhq/orderdesk/internal/sheets"
)

// OrderStore persists the order book
type OrderStore interface {
	Orders(ctx context.Context) ([]models.Order, error)
	SaveOrders(ctx context.Context, orders []models.Order) error
}

// ProductLister gives read access to the catalog
type ProductLister interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
}

// ClientLister gives read access to the client list
type ClientLister interface {
	ListClients(ctx context.Context) ([]models.Client, error)
}

// SyncQueue accepts the latest order book for mirroring
type SyncQueue interface {
	Enqueue(rows []sheets.Row)
}

// OrderService owns the order book. Every mutation validates, persists the
// whole collection, then hands the new state to the sync queue without
// waiting for it.
type OrderService struct {
	store    OrderStore
	products ProductLister
	clients  ClientLister
	sync     SyncQueue
	log      *slog.Logger
	now      func() time.Time

	mu     sync.RWMutex
	orders []models.Order
}

// NewOrderService loads the order book. queue may be nil when nothing
// should be mirrored.
func NewOrderService(ctx context.Context, store OrderStore, products ProductLister, clients ClientLister, queue SyncQueue, log *slog.Logger) (*OrderService, error) {
	orders, err := store.Orders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	return &OrderService{
		store:    store,
		products: products,
		clients:  clients,
		sync:     queue,
		log:      log,
		now:      time.Now,
		orders:   orders,
	}, nil
}

// ListOrders returns every order
func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneOrders(s.orders, nil), nil
}

// ListOrdersBetween returns the orders dated within [start, end]
func (s *OrderService) ListOrdersBetween(ctx context.Context, start, end string) ([]models.Order, error) {
	if !calendar.Valid(start) || !calendar.Valid(end) {
		return nil, ErrInvalidDate
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneOrders(s.orders, production.Between(start, end)), nil
}

// GetOrder returns an order by ID
func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrOrderNotFound
	}
	o := s.orders[idx].Clone()
	return &o, nil
}

// CreateOrder validates and appends a new order
func (s *OrderService) CreateOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error) {
	order, err := s.buildOrder(ctx, uuid.NewString(), req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.commit(ctx, append(cloneOrders(s.orders, nil), order)); err != nil {
		return nil, err
	}

	s.log.Info("order created", "order_id", order.ID, "client_id", order.ClientID, "date", order.Date, "items_count", len(order.Items))
	return &order, nil
}

// UpdateOrder validates req and replaces the order with the given id
func (s *OrderService) UpdateOrder(ctx context.Context, id string, req models.OrderRequest) (*models.Order, error) {
	order, err := s.buildOrder(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrOrderNotFound
	}
	next := cloneOrders(s.orders, nil)
	next[idx] = order
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	s.log.Info("order updated", "order_id", id, "date", order.Date, "items_count", len(order.Items))
	return &order, nil
}

// DeleteOrder removes exactly the order with the given id
func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(id) < 0 {
		return ErrOrderNotFound
	}
	next := cloneOrders(s.orders, func(o models.Order) bool { return o.ID != id })
	if err := s.commit(ctx, next); err != nil {
		return err
	}

	s.log.Info("order deleted", "order_id", id)
	return nil
}

// Resync hands the current order book to the sync queue
func (s *OrderService) Resync(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enqueueSyncErr(ctx, s.orders)
}

// commit persists next, makes it current and queues it for the sheet.
// Queueing under mu keeps snapshots in mutation order. Callers hold mu.
func (s *OrderService) commit(ctx context.Context, next []models.Order) error {
	if err := s.store.SaveOrders(ctx, next); err != nil {
		return fmt.Errorf("failed to save orders: %w", err)
	}
	s.orders = next
	s.enqueueSync(ctx, next)
	return nil
}

func (s *OrderService) enqueueSync(ctx context.Context, orders []models.Order) {
	if err := s.enqueueSyncErr(ctx, orders); err != nil {
		s.log.Error("failed to queue sheet sync", "error", err)
	}
}

func (s *OrderService) enqueueSyncErr(ctx context.Context, orders []models.Order) error {
	if s.sync == nil {
		return nil
	}
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}
	clients, err := s.clients.ListClients(ctx)
	if err != nil {
		return fmt.Errorf("failed to list clients: %w", err)
	}
	s.sync.Enqueue(sheets.BuildRows(orders, products, clients))
	return nil
}

// buildOrder checks req against the current catalog. Nothing is changed on failure.
func (s *OrderService) buildOrder(ctx context.Context, id string, req models.OrderRequest) (models.Order, error) {
	if req.ClientID == "" {
		return models.Order{}, ErrMissingClient
	}

	date := req.Date
	if date == "" {
		date = calendar.Today(s.now())
	}
	if !calendar.Valid(date) {
		return models.Order{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	if len(req.Items) == 0 {
		return models.Order{}, ErrEmptyOrder
	}

	clients, err := s.clients.ListClients(ctx)
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to list clients: %w", err)
	}
	if models.FindClient(clients, req.ClientID) == nil {
		return models.Order{}, fmt.Errorf("%w: %s", ErrUnknownClient, req.ClientID)
	}

	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to list products: %w", err)
	}

	for _, item := range req.Items {
		if item.ProductID == "" {
			return models.Order{}, ErrMissingProduct
		}
		if item.Quantity <= 0 || math.IsNaN(item.Quantity) || math.IsInf(item.Quantity, 0) {
			return models.Order{}, ErrInvalidQuantity
		}
		if models.FindProduct(products, item.ProductID) == nil {
			return models.Order{}, fmt.Errorf("%w: %s", ErrUnknownProduct, item.ProductID)
		}
	}

	return models.Order{
		ID:       id,
		ClientID: req.ClientID,
		Date:     date,
		Items:    slices.Clone(req.Items),
	}, nil
}

func (s *OrderService) indexOf(id string) int {
	return slices.IndexFunc(s.orders, func(o models.Order) bool { return o.ID == id })
}

// cloneOrders copies the orders accepted by keep (all when keep is nil)
func cloneOrders(orders []models.Order, keep func(models.Order) bool) []models.Order {
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if keep == nil || keep(o) {
			out = append(out, o.Clone())
		}
	}
	return out
}
