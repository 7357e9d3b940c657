package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakeryhq/orderdesk/internal/models"
)

func TestAssistantParseOrder(t *testing.T) {
	tests := []struct {
		name      string
		reply     string
		err       error
		text      string
		wantItems []models.OrderItem
		wantCalls int
	}{
		{
			name:      "matched items",
			reply:     `[{"productName":"pan francés","quantity":10},{"productName":"mignon","quantity":2.5}]`,
			text:      "10 pan francés y 2 kilos y medio de mignon",
			wantItems: []models.OrderItem{{ProductID: "1", Quantity: 10}, {ProductID: "2", Quantity: 2.5}},
			wantCalls: 1,
		},
		{
			name:      "unknown products dropped",
			reply:     `[{"productName":"baguette","quantity":3}]`,
			text:      "3 baguettes",
			wantItems: []models.OrderItem{},
			wantCalls: 1,
		},
		{
			name:      "unparseable reply",
			reply:     "Claro, aquí está tu pedido",
			text:      "lo de siempre",
			wantItems: []models.OrderItem{},
			wantCalls: 1,
		},
		{
			name:      "model failure",
			err:       errors.New("quota exceeded"),
			text:      "5 medialunas",
			wantItems: []models.OrderItem{},
			wantCalls: 1,
		},
		{
			name:      "blank text",
			text:      "   ",
			wantItems: []models.OrderItem{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &stubGenerator{reply: tt.reply, err: tt.err}
			api := newTestAPI(t, gen)

			w := api.do(t, http.MethodPost, "/api/assistant/parse", map[string]string{"text": tt.text}, "")

			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			resp := decode[parseResponse](t, w)
			assert.Equal(t, tt.wantItems, resp.Items)
			assert.Equal(t, tt.wantCalls, gen.calls)
		})
	}
}

func TestAssistantUnavailable(t *testing.T) {
	api := newTestAPI(t, nil)

	w := api.do(t, http.MethodPost, "/api/assistant/parse", map[string]string{"text": "10 panes"}, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = api.do(t, http.MethodPost, "/api/assistant/insights", map[string]string{}, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAssistantInsights(t *testing.T) {
	gen := &stubGenerator{reply: "  Empezá por la masa madre.  "}
	api := newTestAPI(t, gen)
	seedOrders(t, api)

	w := api.do(t, http.MethodPost, "/api/assistant/insights", map[string]string{"date": "2024-06-10"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[insightsResponse](t, w)
	assert.Equal(t, "Empezá por la masa madre.", resp.Text)
	assert.Equal(t, 2, resp.Summary.Orders)
	assert.Equal(t, 1, gen.calls)

	w = api.do(t, http.MethodPost, "/api/assistant/insights", map[string]string{"date": "2024-06-11"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[insightsResponse](t, w).Text)
	assert.Equal(t, 1, gen.calls)

	w = api.do(t, http.MethodPost, "/api/assistant/insights", map[string]string{"period": "monthly"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
