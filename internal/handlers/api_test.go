package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/bakeryhq/orderdesk/internal/assistant"
	"github.com/bakeryhq/orderdesk/internal/repository"
	"github.com/bakeryhq/orderdesk/internal/service"
	"github.com/bakeryhq/orderdesk/internal/sheets"
	"github.com/bakeryhq/orderdesk/pkg/logger"
)

const testPIN = "0300"

var testSecret = []byte("handler-test-secret")

type stubGenerator struct {
	reply string
	err   error
	calls int
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	s.calls++
	return s.reply, s.err
}

type testAPI struct {
	handler http.Handler
	repo    *repository.Repository
	syncer  *sheets.Syncer
	orders  *service.OrderService
}

// newTestAPI builds the full router over an in-memory store. gen may be nil
// to run without the assistant.
func newTestAPI(t *testing.T, gen assistant.Generator) *testAPI {
	t.Helper()
	ctx := context.Background()
	log := logger.New("error")

	repo := repository.New(repository.NewMemoryKV(), repository.DefaultSeed())
	products, err := service.NewProductService(ctx, repo)
	require.NoError(t, err)
	clients, err := service.NewClientService(ctx, repo)
	require.NoError(t, err)

	syncer := sheets.NewSyncer(sheets.NewHTTPSender(time.Second), "", log)
	orders, err := service.NewOrderService(ctx, repo, products, clients, syncer, log)
	require.NoError(t, err)
	prod := service.NewProductionService(orders, products, clients)
	settings := service.NewSettingsService(repo, syncer, orders, log)

	var ai *assistant.Assistant
	if gen != nil {
		ai = assistant.New(gen, log)
	}

	pinHash, err := HashPIN(testPIN)
	require.NoError(t, err)

	h := NewRouter(RouterConfig{
		Logger:         log,
		TokenSecret:    testSecret,
		AllowedOrigins: []string{"*"},
		Health:         NewHealthHandler(log, syncer, ai.Available()),
		Products:       NewProductHandler(products, log),
		Clients:        NewClientHandler(clients, log),
		Orders:         NewOrderHandler(orders, prod, log),
		Production:     NewProductionHandler(prod, log),
		Assistant:      NewAssistantHandler(ai, products, prod, log),
		Sync:           NewSyncHandler(syncer, orders, log),
		Settings:       NewSettingsHandler(settings, log),
		Access:         NewAccessHandler(pinHash, testSecret, time.Hour, log),
	})

	return &testAPI{handler: h, repo: repo, syncer: syncer, orders: orders}
}

func (a *testAPI) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

func (a *testAPI) unlock(t *testing.T) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/access/unlock", map[string]string{"pin": testPIN}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp unlockResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v), w.Body.String())
	return v
}
