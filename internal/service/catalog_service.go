package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/bakeryhq/orderdesk/internal/models"
)

// ProductStore persists the product catalog
type ProductStore interface {
	Products(ctx context.Context) ([]models.Product, error)
	SaveProducts(ctx context.Context, products []models.Product) error
}

// ClientStore persists the client list
type ClientStore interface {
	Clients(ctx context.Context) ([]models.Client, error)
	SaveClients(ctx context.Context, clients []models.Client) error
}

// ProductService handles business logic for products
type ProductService struct {
	store    ProductStore
	mu       sync.RWMutex
	products []models.Product
}

// NewProductService loads the catalog from store
func NewProductService(ctx context.Context, store ProductStore) (*ProductService, error) {
	products, err := store.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	return &ProductService{store: store, products: products}, nil
}

// ListProducts returns all products
func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.products), nil
}

// GetProduct returns a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p := models.FindProduct(s.products, id)
	if p == nil {
		return nil, ErrProductNotFound
	}
	found := *p
	return &found, nil
}

// CreateProduct adds a product, assigning an id when none is given
func (s *ProductService) CreateProduct(ctx context.Context, p models.Product) (*models.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	} else if models.FindProduct(s.products, p.ID) != nil {
		return nil, fmt.Errorf("product %s: %w", p.ID, ErrDuplicateID)
	}

	next := append(slices.Clone(s.products), p)
	if err := s.store.SaveProducts(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save products: %w", err)
	}
	s.products = next
	return &p, nil
}

// UpdateProduct replaces the product with the same id
func (s *ProductService) UpdateProduct(ctx context.Context, p models.Product) (*models.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.products, func(existing models.Product) bool { return existing.ID == p.ID })
	if idx < 0 {
		return nil, ErrProductNotFound
	}

	next := slices.Clone(s.products)
	next[idx] = p
	if err := s.store.SaveProducts(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save products: %w", err)
	}
	s.products = next
	return &p, nil
}

// DeleteProduct removes a product. Orders referencing it are left as they
// are and show the line without a name.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if models.FindProduct(s.products, id) == nil {
		return ErrProductNotFound
	}

	next := slices.DeleteFunc(slices.Clone(s.products), func(p models.Product) bool { return p.ID == id })
	if err := s.store.SaveProducts(ctx, next); err != nil {
		return fmt.Errorf("failed to save products: %w", err)
	}
	s.products = next
	return nil
}

func validateProduct(p models.Product) error {
	if p.Name == "" {
		return ErrInvalidName
	}
	if !p.Unit.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidUnit, p.Unit)
	}
	return nil
}

// ClientService handles business logic for clients
type ClientService struct {
	store   ClientStore
	mu      sync.RWMutex
	clients []models.Client
}

// NewClientService loads the client list from store
func NewClientService(ctx context.Context, store ClientStore) (*ClientService, error) {
	clients, err := store.Clients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load clients: %w", err)
	}
	return &ClientService{store: store, clients: clients}, nil
}

// ListClients returns all clients
func (s *ClientService) ListClients(ctx context.Context) ([]models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.clients), nil
}

// GetClient returns a client by ID
func (s *ClientService) GetClient(ctx context.Context, id string) (*models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := models.FindClient(s.clients, id)
	if c == nil {
		return nil, ErrClientNotFound
	}
	found := *c
	return &found, nil
}

// CreateClient adds a client, assigning an id when none is given
func (s *ClientService) CreateClient(ctx context.Context, c models.Client) (*models.Client, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Address = strings.TrimSpace(c.Address)
	if c.Name == "" {
		return nil, ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	} else if models.FindClient(s.clients, c.ID) != nil {
		return nil, fmt.Errorf("client %s: %w", c.ID, ErrDuplicateID)
	}

	next := append(slices.Clone(s.clients), c)
	if err := s.store.SaveClients(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save clients: %w", err)
	}
	s.clients = next
	return &c, nil
}

// UpdateClient replaces the client with the same id
func (s *ClientService) UpdateClient(ctx context.Context, c models.Client) (*models.Client, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Address = strings.TrimSpace(c.Address)
	if c.Name == "" {
		return nil, ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.clients, func(existing models.Client) bool { return existing.ID == c.ID })
	if idx < 0 {
		return nil, ErrClientNotFound
	}

	next := slices.Clone(s.clients)
	next[idx] = c
	if err := s.store.SaveClients(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save clients: %w", err)
	}
	s.clients = next
	return &c, nil
}

// DeleteClient removes a client. Their orders stay and show as Desconocido.
func (s *ClientService) DeleteClient(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if models.FindClient(s.clients, id) == nil {
		return ErrClientNotFound
	}

	next := slices.DeleteFunc(slices.Clone(s.clients), func(c models.Client) bool { return c.ID == id })
	if err := s.store.SaveClients(ctx, next); err != nil {
		return fmt.Errorf("failed to save clients: %w", err)
	}
	s.clients = next
	return nil
}
