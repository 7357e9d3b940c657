package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakeryhq/orderdesk/internal/export"
	"github.com/bakeryhq/orderdesk/internal/models"
)

func newProductionFixture(t *testing.T) (*fixture, *ProductionService) {
	t.Helper()
	f := newFixture(t)
	ctx := context.Background()

	seed := []models.OrderRequest{
		{ClientID: "c1", Date: "2024-05-15", Items: []models.OrderItem{{ProductID: "1", Quantity: 5}, {ProductID: "2", Quantity: 1}}},
		{ClientID: "c2", Date: "2024-05-15", Items: []models.OrderItem{{ProductID: "1", Quantity: 3}}},
		{ClientID: "c3", Date: "2024-05-19", Items: []models.OrderItem{{ProductID: "3", Quantity: 24}}},
		{ClientID: "c1", Date: "2024-05-20", Items: []models.OrderItem{{ProductID: "1", Quantity: 100}}},
	}
	for _, req := range seed {
		_, err := f.orders.CreateOrder(ctx, req)
		require.NoError(t, err)
	}

	svc := NewProductionService(f.orders, f.products, f.clients)
	svc.now = func() time.Time { return time.Date(2024, 5, 15, 18, 0, 0, 0, time.UTC) }
	return f, svc
}

func TestProductionService_Daily(t *testing.T) {
	_, svc := newProductionFixture(t)
	ctx := context.Background()

	summary, err := svc.Daily(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-15", summary.Range.Start)
	assert.Equal(t, 2, summary.Orders)
	assert.Equal(t, 8.0, summary.Totals["1"])
	assert.Equal(t, 1.0, summary.Totals["2"])

	empty, err := svc.Daily(ctx, "2024-05-16")
	require.NoError(t, err)
	assert.True(t, empty.Empty())
	assert.Empty(t, empty.Totals)

	_, err = svc.Daily(ctx, "mañana")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestProductionService_Weekly(t *testing.T) {
	_, svc := newProductionFixture(t)

	summary, err := svc.Weekly(context.Background(), "2024-05-19")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-13", summary.Range.Start)
	assert.Equal(t, "2024-05-19", summary.Range.End)
	assert.Equal(t, 3, summary.Orders)
	assert.Equal(t, 8.0, summary.Totals["1"])
	assert.Equal(t, 24.0, summary.Totals["3"])
}

func TestProductionService_Sheets(t *testing.T) {
	f, svc := newProductionFixture(t)
	ctx := context.Background()

	daily, err := svc.DailySheet(ctx, "2024-05-15")
	require.NoError(t, err)
	assert.Equal(t, "produccion_diaria_2024-05-15", daily.Basename)
	assert.Len(t, daily.Rows, 2)

	_, err = svc.DailySheet(ctx, "2024-05-16")
	assert.ErrorIs(t, err, export.ErrNothingToExport)

	weekly, err := svc.WeeklySheet(ctx, "2024-05-15")
	require.NoError(t, err)
	assert.Equal(t, "produccion_semanal_2024-05-13_2024-05-19", weekly.Basename)

	orders, _ := f.orders.ListOrders(ctx)
	sheet, err := svc.OrderSheet(ctx, orders[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "pedido_Supermercado Central_2024-05-15", sheet.Basename)
	assert.Equal(t, []string{"Pan Francés", "5", "units"}, sheet.Rows[0])

	require.NoError(t, f.clients.DeleteClient(ctx, "c1"))
	sheet, err = svc.OrderSheet(ctx, orders[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "pedido_Desconocido_2024-05-15", sheet.Basename)

	_, err = svc.OrderSheet(ctx, "missing")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
