package export

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/bakeryhq/orderdesk/internal/models"
	"github.com/bakeryhq/orderdesk/internal/production"
)

var testProducts = []models.Product{
	{ID: "1", Name: "Pan Francés", Category: "Panes", Unit: models.UnitUnits},
	{ID: "2", Name: "Mignon", Category: "Panes", Unit: models.UnitKg},
}

func TestToDelimitedRows(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		rows   [][]string
		want   string
	}{
		{
			name:   "header only",
			header: []string{"Producto", "Total"},
			want:   "Producto,Total",
		},
		{
			name:   "rows joined with newlines",
			header: []string{"a", "b"},
			rows:   [][]string{{"1", "2"}, {"3", "4"}},
			want:   "a,b\n1,2\n3,4",
		},
		{
			name:   "fields are not escaped",
			header: []string{"name"},
			rows:   [][]string{{"Pan, blanco"}},
			want:   "name\nPan, blanco",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToDelimitedRows(tt.header, tt.rows))
		})
	}
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "5", FormatQuantity(5))
	assert.Equal(t, "2.5", FormatQuantity(2.5))
	assert.Equal(t, "0.30000000000000004", FormatQuantity(0.1+0.2))
	assert.Equal(t, "0.000001", FormatQuantity(1e-6))
	assert.Equal(t, "1.5e-7", FormatQuantity(1.5e-7))
	assert.Equal(t, "-1e-7", FormatQuantity(-1e-7))
	assert.Equal(t, "100000000000000000000", FormatQuantity(1e20))
	assert.Equal(t, "1e+21", FormatQuantity(1e21))
	assert.Equal(t, "1.25e+300", FormatQuantity(1.25e300))
	assert.Equal(t, "0", FormatQuantity(0))
}

func TestOrderSheet_ClientNameIsFileSafe(t *testing.T) {
	order := models.Order{ID: "o1", ClientID: "c1", Date: "2024-06-10", Items: []models.OrderItem{{ProductID: "1", Quantity: 1}}}

	tests := []struct {
		client string
		want   string
	}{
		{client: "Panadería 24/7", want: "pedido_Panadería 24_7_2024-06-10"},
		{client: `x/../../tmp\evil`, want: "pedido_x_.._.._tmp_evil_2024-06-10"},
		{client: "Bar: \"El Faro\"", want: "pedido_Bar_ _El Faro__2024-06-10"},
	}

	for _, tt := range tests {
		t.Run(tt.client, func(t *testing.T) {
			assert.Equal(t, tt.want, OrderSheet(order, tt.client, testProducts).Basename)
		})
	}
}

func TestOrderSheet(t *testing.T) {
	order := models.Order{
		ID:       "o1",
		ClientID: "c1",
		Date:     "2024-06-10",
		Items: []models.OrderItem{
			{ProductID: "1", Quantity: 12},
			{ProductID: "2", Quantity: 1.5},
			{ProductID: "deleted", Quantity: 3},
		},
	}

	a := CSV(OrderSheet(order, "Cafetería El Faro", testProducts))

	assert.Equal(t, "pedido_Cafetería El Faro_2024-06-10.csv", a.Filename)
	assert.Equal(t, ContentTypeCSV, a.ContentType)
	assert.Equal(t, "Producto,Cantidad,Unidad\nPan Francés,12,units\nMignon,1.5,kg\n,3,", string(a.Body))
}

func TestDailySheet(t *testing.T) {
	orders := []models.Order{
		{Date: "2024-06-10", Items: []models.OrderItem{{ProductID: "1", Quantity: 5}}},
		{Date: "2024-06-10", Items: []models.OrderItem{{ProductID: "1", Quantity: 3}, {ProductID: "2", Quantity: 1}}},
	}
	summary, err := production.Daily(orders, testProducts, "2024-06-10")
	require.NoError(t, err)

	sheet, err := DailySheet(summary)
	require.NoError(t, err)

	a := CSV(sheet)
	assert.Equal(t, "produccion_diaria_2024-06-10.csv", a.Filename)
	assert.Equal(t, "Producto,Total,Unidad,Fecha\nMignon,1,kg,2024-06-10\nPan Francés,8,units,2024-06-10", string(a.Body))
}

func TestDailySheet_Empty(t *testing.T) {
	summary, err := production.Daily(nil, testProducts, "2024-06-10")
	require.NoError(t, err)

	_, err = DailySheet(summary)
	assert.True(t, errors.Is(err, ErrNothingToExport))
}

func TestWeeklySheet(t *testing.T) {
	orders := []models.Order{
		{Date: "2024-06-10", Items: []models.OrderItem{{ProductID: "1", Quantity: 5}}},
		{Date: "2024-06-16", Items: []models.OrderItem{{ProductID: "1", Quantity: 2}}},
		{Date: "2024-06-17", Items: []models.OrderItem{{ProductID: "1", Quantity: 100}}},
	}
	summary, err := production.Weekly(orders, testProducts, "2024-06-12")
	require.NoError(t, err)

	sheet, err := WeeklySheet(summary)
	require.NoError(t, err)

	a := CSV(sheet)
	assert.Equal(t, "produccion_semanal_2024-06-10_2024-06-16.csv", a.Filename)
	assert.Equal(t, "Producto,Total Semanal,Unidad,Desde,Hasta\nPan Francés,7,units,2024-06-10,2024-06-16", string(a.Body))

	empty, err := production.Weekly(orders, testProducts, "2024-06-24")
	require.NoError(t, err)
	_, err = WeeklySheet(empty)
	assert.True(t, errors.Is(err, ErrNothingToExport))
}

func TestXLSX(t *testing.T) {
	sheet := Sheet{
		Title:          "Produccion diaria",
		Basename:       "produccion_diaria_2024-06-10",
		Header:         []string{"Producto", "Total", "Unidad", "Fecha"},
		Rows:           [][]string{{"Mignon", "1.5", "kg", "2024-06-10"}},
		QuantityColumn: 1,
	}

	a, err := XLSX(sheet)
	require.NoError(t, err)
	assert.Equal(t, "produccion_diaria_2024-06-10.xlsx", a.Filename)
	assert.Equal(t, ContentTypeXLSX, a.ContentType)

	f, err := excelize.OpenReader(bytes.NewReader(a.Body))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Produccion diaria")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Producto", "Total", "Unidad", "Fecha"}, rows[0])
	assert.Equal(t, []string{"Mignon", "1.5", "kg", "2024-06-10"}, rows[1])
}
