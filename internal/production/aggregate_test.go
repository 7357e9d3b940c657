package production

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakeryhq/orderdesk/internal/models"
)

func scenarioOrders() []models.Order {
	return []models.Order{
		{ID: "a", ClientID: "c1", Date: "2024-06-10", Items: []models.OrderItem{{ProductID: "p1", Quantity: 5}}},
		{ID: "b", ClientID: "c2", Date: "2024-06-10", Items: []models.OrderItem{{ProductID: "p1", Quantity: 3}, {ProductID: "p2", Quantity: 1}}},
		{ID: "c", ClientID: "c1", Date: "2024-06-11", Items: []models.OrderItem{{ProductID: "p1", Quantity: 2}}},
	}
}

func TestAggregate_OnDate(t *testing.T) {
	got := Aggregate(scenarioOrders(), OnDate("2024-06-10"))
	assert.Equal(t, Totals{"p1": 8, "p2": 1}, got)
}

func TestAggregate_OtherDatesContributeNothing(t *testing.T) {
	orders := scenarioOrders()
	for _, date := range []string{"2024-06-10", "2024-06-11", "2024-06-12"} {
		want := Totals{}
		for _, o := range orders {
			if o.Date != date {
				continue
			}
			for _, it := range o.Items {
				want[it.ProductID] += it.Quantity
			}
		}
		assert.Equal(t, want, Aggregate(orders, OnDate(date)), date)
	}
}

func TestAggregate_EmptySelection(t *testing.T) {
	got := Aggregate(scenarioOrders(), OnDate("2030-01-01"))
	require.NotNil(t, got)
	assert.Empty(t, got)

	got = Aggregate(nil, nil)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAggregate_Between(t *testing.T) {
	got := Aggregate(scenarioOrders(), Between("2024-06-10", "2024-06-16"))
	assert.Equal(t, Totals{"p1": 10, "p2": 1}, got)

	got = Aggregate(scenarioOrders(), Between("2024-06-11", "2024-06-11"))
	assert.Equal(t, Totals{"p1": 2}, got)
}

func TestAggregate_FractionalQuantities(t *testing.T) {
	orders := []models.Order{
		{Date: "2024-06-10", Items: []models.OrderItem{{ProductID: "kg", Quantity: 0.1}}},
		{Date: "2024-06-10", Items: []models.OrderItem{{ProductID: "kg", Quantity: 0.2}}},
	}
	// Plain float64 addition, no rounding.
	assert.Equal(t, 0.1+0.2, Aggregate(orders, OnDate("2024-06-10"))["kg"])
}

func TestLines(t *testing.T) {
	products := []models.Product{
		{ID: "p1", Name: "Pan Francés", Unit: models.UnitUnits},
		{ID: "p2", Name: "Mignon", Unit: models.UnitKg},
	}
	totals := Totals{"p1": 8, "p2": 1.5, "gone": 4}

	lines := Lines(totals, products)
	require.Len(t, lines, 3)

	// The deleted product sorts first with an empty name.
	assert.Equal(t, Line{ProductID: "gone", Total: 4}, lines[0])
	assert.Equal(t, Line{ProductID: "p2", ProductName: "Mignon", Total: 1.5, Unit: models.UnitKg}, lines[1])
	assert.Equal(t, Line{ProductID: "p1", ProductName: "Pan Francés", Total: 8, Unit: models.UnitUnits}, lines[2])
}

func TestDailyAndWeekly(t *testing.T) {
	products := []models.Product{{ID: "p1", Name: "Pan"}, {ID: "p2", Name: "Mignon"}}

	daily, err := Daily(scenarioOrders(), products, "2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, 2, daily.Orders)
	assert.Equal(t, "2024-06-10", daily.Range.Start)
	assert.Equal(t, "2024-06-10", daily.Range.End)
	assert.Equal(t, map[string]float64{"Pan": 8, "Mignon": 1}, daily.ByName())

	weekly, err := Weekly(scenarioOrders(), products, "2024-06-13")
	require.NoError(t, err)
	assert.Equal(t, 3, weekly.Orders)
	assert.Equal(t, "2024-06-10", weekly.Range.Start)
	assert.Equal(t, "2024-06-16", weekly.Range.End)
	assert.Equal(t, Totals{"p1": 10, "p2": 1}, weekly.Totals)

	empty, err := Weekly(scenarioOrders(), products, "2024-07-01")
	require.NoError(t, err)
	assert.True(t, empty.Empty())

	_, err = Daily(nil, nil, "yesterday")
	assert.Error(t, err)
}
