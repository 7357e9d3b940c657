package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bakeryhq/orderdesk/internal/calendar"
	"github.com/bakeryhq/orderdesk/internal/export"
	"github.com/bakeryhq/orderdesk/internal/models"
	"github.com/bakeryhq/orderdesk/internal/production"
)

// ProductionService builds production plans and export sheets from the
// current order book and catalog.
type ProductionService struct {
	orders   *OrderService
	products ProductLister
	clients  ClientLister
	now      func() time.Time
}

func NewProductionService(orders *OrderService, products ProductLister, clients ClientLister) *ProductionService {
	return &ProductionService{
		orders:   orders,
		products: products,
		clients:  clients,
		now:      time.Now,
	}
}

// Daily returns the totals for date, defaulting to today
func (s *ProductionService) Daily(ctx context.Context, date string) (production.Summary, error) {
	return s.summary(ctx, date, production.Daily)
}

// Weekly returns the totals for the Monday-to-Sunday week containing date,
// defaulting to the current week.
func (s *ProductionService) Weekly(ctx context.Context, date string) (production.Summary, error) {
	return s.summary(ctx, date, production.Weekly)
}

// OrderSheet prepares the export of a single order
func (s *ProductionService) OrderSheet(ctx context.Context, id string) (export.Sheet, error) {
	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return export.Sheet{}, err
	}
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return export.Sheet{}, fmt.Errorf("failed to list products: %w", err)
	}
	clients, err := s.clients.ListClients(ctx)
	if err != nil {
		return export.Sheet{}, fmt.Errorf("failed to list clients: %w", err)
	}
	return export.OrderSheet(*order, models.ClientName(clients, order.ClientID), products), nil
}

// DailySheet prepares the daily production export
func (s *ProductionService) DailySheet(ctx context.Context, date string) (export.Sheet, error) {
	summary, err := s.Daily(ctx, date)
	if err != nil {
		return export.Sheet{}, err
	}
	return export.DailySheet(summary)
}

// WeeklySheet prepares the weekly production export
func (s *ProductionService) WeeklySheet(ctx context.Context, date string) (export.Sheet, error) {
	summary, err := s.Weekly(ctx, date)
	if err != nil {
		return export.Sheet{}, err
	}
	return export.WeeklySheet(summary)
}

type summariser func(orders []models.Order, products []models.Product, date string) (production.Summary, error)

func (s *ProductionService) summary(ctx context.Context, date string, build summariser) (production.Summary, error) {
	if date == "" {
		date = calendar.Today(s.now())
	}
	orders, err := s.orders.ListOrders(ctx)
	if err != nil {
		return production.Summary{}, err
	}
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return production.Summary{}, fmt.Errorf("failed to list products: %w", err)
	}
	summary, err := build(orders, products, date)
	if err != nil {
		return production.Summary{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return summary, nil
}
