package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/cart"
	"github.com/your-org/pos-backend/internal/domain/catalog"
	"github.com/your-org/pos-backend/internal/domain/checkout"
	"github.com/your-org/pos-backend/internal/domain/customer"
	"github.com/your-org/pos-backend/internal/domain/order"
	"github.com/your-org/pos-backend/internal/domain/report"
	"github.com/your-org/pos-backend/internal/domain/user"
	"github.com/your-org/pos-backend/internal/infrastructure/bookkeeping"
	"github.com/your-org/pos-backend/internal/interfaces/http/routes"
	"github.com/your-org/pos-backend/internal/pkg/auth"
	"github.com/your-org/pos-backend/internal/pkg/logger"
	"github.com/your-org/pos-backend/internal/pkg/pdf"
)

const session = "till-0001"

// fakeBooks is a minimal bookkeeping API
type fakeBooks struct {
	mu        sync.Mutex
	orders    []order.CreateRequest
	lastToken string
}

func (f *fakeBooks) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.lastToken = r.Header.Get("Authorization")
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/products":
		fmt.Fprint(w, `{"data":[{"id":1,"name":"Rice","variants":[
			{"id":10,"sku":"RICE-5KG","price":"500.00","cost_price":"350.00","stock_quantity":2},
			{"id":11,"sku":"RICE-10KG","price":"700.00","cost_price":"500.00","stock_quantity":3}]}],
			"meta":{"current_page":1,"last_page":1}}`)
	case r.Method == http.MethodPost && r.URL.Path == "/api/orders":
		var req order.CreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		f.orders = append(f.orders, req)
		f.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"data":{"id":99,"invoice_number":"INV-0099","total_amount":"1700.00","status":"completed","payment_method":"cash"}}`)
	case r.Method == http.MethodGet && r.URL.Path == "/api/orders/404":
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Order not found"}`)
	default:
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"message":"unexpected request"}`)
	}
}

func newTestServer(t *testing.T) (*Server, *fakeBooks) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	books := &fakeBooks{}
	upstream := httptest.NewServer(books)
	t.Cleanup(upstream.Close)

	cfg := &config.Config{
		App:    config.AppConfig{Name: "POS Backend", Version: "test", Environment: "test"},
		Server: config.ServerConfig{Port: "0", RequestTimeout: 5 * time.Second},
		Bookkeeping: config.BookkeepingConfig{
			BaseURL:  upstream.URL + "/api",
			Timeout:  2 * time.Second,
			PerPage:  50,
			MaxPages: 2,
		},
		Cart: config.CartConfig{Store: config.CartStoreMemory, TTL: time.Hour},
		Security: config.SecurityConfig{
			CORSAllowedOrigins: []string{"http://localhost:5173"},
			CORSAllowedMethods: []string{"GET", "POST"},
			CORSAllowedHeaders: []string{"Authorization"},
			MaxBodyBytes:       1 << 20,
		},
		Receipt: config.ReceiptConfig{StoreName: "Corner Shop", Currency: "₦"},
	}
	log := logger.Discard()

	client, err := bookkeeping.NewClient(cfg, log)
	require.NoError(t, err)

	catalogService := catalog.NewService(client, cfg, log)
	cartService := cart.NewService(cart.NewMemoryRepository(), catalogService, log)
	customerService := customer.NewService(client, log)

	deps := &routes.Dependencies{
		Catalog:   catalogService,
		Carts:     cartService,
		Checkout:  checkout.NewService(cartService, client, customerService, 5*time.Second, log),
		Customers: customerService,
		Orders:    order.NewService(client, log),
		Users:     user.NewService(client, log),
		Reports:   report.NewService(client, log),
		Receipts:  pdf.NewService(cfg),
		Tokens:    auth.NewTokenInspector(cfg),
	}

	return NewServer(cfg, log, deps), books
}

func call(t *testing.T, srv *Server, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", session)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	var payload map[string]interface{}
	if w.Header().Get("Content-Type") != "" && bytes.HasPrefix(w.Body.Bytes(), []byte("{")) {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	}
	return w, payload
}

func roleToken(t *testing.T, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "7",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte("issuer-secret"))
	require.NoError(t, err)
	return signed
}

func TestHealthAndReadiness(t *testing.T) {
	srv, _ := newTestServer(t)

	w, body := call(t, srv, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", body["status"])

	w, body = call(t, srv, http.MethodGet, "/ready", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["catalog_loaded"])
}

func TestAPIRequiresBearerToken(t *testing.T) {
	srv, _ := newTestServer(t)

	w, body := call(t, srv, http.MethodGet, "/api/v1/cart", "", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "unauthorized", body["kind"])
}

func TestCartAndCheckoutFlow(t *testing.T) {
	srv, books := newTestServer(t)
	token := "opaque-personal-token"

	w, _ := call(t, srv, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{"product_id": 1, "variant_id": 10})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, session, w.Header().Get("X-Session-ID"))

	w, _ = call(t, srv, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{"product_id": 1, "variant_id": 10})
	require.Equal(t, http.StatusOK, w.Code)

	// Stock is 2, so the third unit is refused as a warning
	w, body := call(t, srv, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{"product_id": 1, "variant_id": 10})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Only 2 units available.", body["error"])
	assert.Equal(t, "warning", body["level"])

	w, body = call(t, srv, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{"variant_id": "11"})
	require.Equal(t, http.StatusOK, w.Code)

	data := body["data"].(map[string]interface{})
	totals := data["totals"].(map[string]interface{})
	assert.Equal(t, "1700", totals["total_amount"])
	assert.EqualValues(t, 2, totals["item_count"])

	w, body = call(t, srv, http.MethodPost, "/api/v1/checkout", token, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Sale completed! Invoice #INV-0099", body["message"])

	require.Len(t, books.orders, 1)
	assert.Equal(t, order.PaymentMethodCash, books.orders[0].PaymentMethod)
	assert.Len(t, books.orders[0].Items, 2)
	assert.Equal(t, "Bearer "+token, books.lastToken)

	w, body = call(t, srv, http.MethodGet, "/api/v1/cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = body["data"].(map[string]interface{})
	assert.Empty(t, data["items"])
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	srv, books := newTestServer(t)

	w, body := call(t, srv, http.MethodPost, "/api/v1/checkout", "token", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "Cart is empty", body["error"])
	assert.Empty(t, books.orders)
}

func TestInvalidRequestBody(t *testing.T) {
	srv, _ := newTestServer(t)

	w, body := call(t, srv, http.MethodPost, "/api/v1/cart/items", "token", map[string]interface{}{})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "validation", body["kind"])
}

func TestRemoteNotFoundIsMirrored(t *testing.T) {
	srv, _ := newTestServer(t)

	w, body := call(t, srv, http.MethodGet, "/api/v1/orders/404", "token", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Order not found", body["error"])
}

func TestRoleRestrictedRoutes(t *testing.T) {
	srv, _ := newTestServer(t)

	w, body := call(t, srv, http.MethodGet, "/api/v1/users", roleToken(t, "cashier"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "forbidden", body["kind"])

	w, _ = call(t, srv, http.MethodGet, "/api/v1/reports/profit-loss", roleToken(t, "cashier"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, body = call(t, srv, http.MethodGet, "/api/v1/products/sku", roleToken(t, "cashier"), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Regexp(t, `^SKU-\d{4}$`, body["data"].(map[string]interface{})["sku"])
}
