package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderDayIsDerivedFromDate(t *testing.T) {
	o := Order{ID: "o1", ClientID: "c1", Date: "2024-06-10"}
	assert.Equal(t, "Lunes", o.Day())

	// Editing the date changes the weekday with it.
	o.Date = "2024-06-14"
	assert.Equal(t, "Viernes", o.Day())
}

func TestOrderView_JSON(t *testing.T) {
	o := Order{ID: "o1", ClientID: "c1", Date: "2024-06-16", Items: []OrderItem{{ProductID: "p1", Quantity: 2.5}}}

	data, err := json.Marshal(o.View())
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"o1","clientId":"c1","date":"2024-06-16","day":"Domingo","items":[{"productId":"p1","quantity":2.5}]}`, string(data))
}

func TestOrder_LegacyDayIgnored(t *testing.T) {
	var o Order
	err := json.Unmarshal([]byte(`{"id":"o1","clientId":"c1","date":"2024-06-11","day":"Lunes","items":[]}`), &o)
	require.NoError(t, err)
	assert.Equal(t, "Martes", o.Day())
}

func TestOrderClone(t *testing.T) {
	o := Order{ID: "o1", Items: []OrderItem{{ProductID: "p1", Quantity: 1}}}
	c := o.Clone()
	c.Items[0].Quantity = 9
	assert.Equal(t, 1.0, o.Items[0].Quantity)
}

func TestLookups(t *testing.T) {
	products := []Product{{ID: "1", Name: "Mignon", Unit: UnitKg}}
	clients := []Client{{ID: "c1", Name: "Cafetería El Faro"}}

	require.NotNil(t, FindProduct(products, "1"))
	assert.Nil(t, FindProduct(products, "2"))
	assert.Equal(t, "Cafetería El Faro", ClientName(clients, "c1"))
	assert.Equal(t, UnknownClientName, ClientName(clients, "gone"))
	assert.True(t, UnitKg.Valid())
	assert.False(t, Unit("unidades").Valid())
}
