package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakeryhq/orderdesk/internal/models"
)

func TestListProducts(t *testing.T) {
	api := newTestAPI(t, nil)

	w := api.do(t, http.MethodGet, "/api/products", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	products := decode[[]models.Product](t, w)
	assert.Len(t, products, 6)
}

func TestGetProduct(t *testing.T) {
	tests := []struct {
		name           string
		productID      string
		expectedStatus int
		expectedName   string
	}{
		{name: "existing product", productID: "1", expectedStatus: http.StatusOK, expectedName: "Pan Francés"},
		{name: "kg product", productID: "2", expectedStatus: http.StatusOK, expectedName: "Mignon"},
		{name: "unknown product", productID: "999", expectedStatus: http.StatusNotFound},
	}

	api := newTestAPI(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(t, http.MethodGet, "/api/products/"+tt.productID, nil, "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, tt.expectedName, decode[models.Product](t, w).Name)
			}
		})
	}
}

func TestProductMutationsRequireToken(t *testing.T) {
	api := newTestAPI(t, nil)
	body := map[string]string{"name": "Chipá", "unit": "kg"}

	w := api.do(t, http.MethodPost, "/api/products", body, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(t, http.MethodDelete, "/api/products/1", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := api.unlock(t)

	w = api.do(t, http.MethodPost, "/api/products", body, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[models.Product](t, w)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.UnitKg, created.Unit)

	w = api.do(t, http.MethodPut, "/api/products/"+created.ID, map[string]string{"name": "Chipá Grande", "unit": "units"}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Chipá Grande", decode[models.Product](t, w).Name)

	w = api.do(t, http.MethodDelete, "/api/products/"+created.ID, nil, token)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = api.do(t, http.MethodDelete, "/api/products/"+created.ID, nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateProductValidation(t *testing.T) {
	api := newTestAPI(t, nil)
	token := api.unlock(t)

	tests := []struct {
		name string
		body interface{}
	}{
		{name: "bad unit", body: map[string]string{"name": "Grisines", "unit": "docenas"}},
		{name: "missing name", body: map[string]string{"unit": "kg"}},
		{name: "unknown field", body: map[string]string{"name": "Grisines", "unit": "kg", "price": "3"}},
		{name: "malformed json", body: `{"name": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(t, http.MethodPost, "/api/products", tt.body, token)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestClientEndpoints(t *testing.T) {
	api := newTestAPI(t, nil)
	token := api.unlock(t)

	w := api.do(t, http.MethodGet, "/api/clients", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Client](t, w), 3)

	w = api.do(t, http.MethodPost, "/api/clients", map[string]string{"name": "Kiosco Norte"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(t, http.MethodPost, "/api/clients", map[string]string{"name": "Kiosco Norte", "address": "Calle 1"}, token)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[models.Client](t, w)

	w = api.do(t, http.MethodGet, "/api/clients/"+created.ID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Calle 1", decode[models.Client](t, w).Address)

	w = api.do(t, http.MethodPut, "/api/clients/"+created.ID, map[string]string{"name": ""}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodDelete, "/api/clients/"+created.ID, nil, token)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
