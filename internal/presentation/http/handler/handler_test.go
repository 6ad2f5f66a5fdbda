package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/trademarket-api/internal/application/service"
	"github.com/sangkips/trademarket-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zaptest.NewLogger(t)
	tm := memory.NewStore().NewTransactionManager()
	products := NewProductHandler(service.NewProductService(tm, logger))
	customers := NewCustomerHandler(service.NewCustomerService(tm, logger))
	receipts := NewReceiptHandler(service.NewReceiptService(tm, service.ReceiptOptions{}, logger))

	r := gin.New()
	r.POST("/products", products.Create)
	r.GET("/products", products.List)
	r.GET("/products/:id", products.Get)
	r.POST("/customers", customers.Create)
	r.GET("/customers/products/:productId", customers.ListByProduct)
	r.POST("/receipts", receipts.Create)
	r.GET("/receipts/period", receipts.Period)
	r.GET("/receipts/:id/sum", receipts.Sum)
	r.GET("/receipts/:id/details", receipts.Details)
	r.PUT("/receipts/:id/products/add/:productId/:quantity", receipts.AddProduct)
	r.PUT("/receipts/:id/products/remove/:productId/:quantity", receipts.RemoveProduct)
	r.PUT("/receipts/:id/checkout", receipts.CheckOut)
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.True(t, env.Success, w.Body.String())
	if out != nil {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
}

func createID(t *testing.T, r http.Handler, path string, body any) uuid.UUID {
	t.Helper()
	w := do(t, r, http.MethodPost, path, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID uuid.UUID `json:"id"`
	}
	decodeData(t, w, &created)
	return created.ID
}

func seedReceipt(t *testing.T, r http.Handler) (receiptID, productID uuid.UUID) {
	t.Helper()
	customerID := createID(t, r, "/customers", map[string]any{
		"name":           "Ada",
		"surname":        "Lovelace",
		"birth_date":     "1985-12-10T00:00:00Z",
		"discount_value": 10,
	})
	productID = createID(t, r, "/products", map[string]any{"name": "Kettle", "price": "100.00"})
	receiptID = createID(t, r, "/receipts", map[string]any{
		"customer_id":    customerID,
		"operation_date": "2024-03-15T12:00:00Z",
	})
	return receiptID, productID
}

func TestReceiptHandler_AddAndSum(t *testing.T) {
	r := newTestRouter(t)
	receiptID, productID := seedReceipt(t, r)

	w := do(t, r, http.MethodPut, "/receipts/"+receiptID.String()+"/products/add/"+productID.String()+"/3", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, r, http.MethodGet, "/receipts/"+receiptID.String()+"/sum", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sum decimal.Decimal
	decodeData(t, w, &sum)
	assert.Equal(t, "270.00", sum.StringFixed(2))

	w = do(t, r, http.MethodGet, "/receipts/"+receiptID.String()+"/details", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var lines []struct {
		Quantity          int             `json:"quantity"`
		DiscountUnitPrice decimal.Decimal `json:"discount_unit_price"`
	}
	decodeData(t, w, &lines)
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, "90.00", lines[0].DiscountUnitPrice.StringFixed(2))

	w = do(t, r, http.MethodGet, "/customers/products/"+productID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var customers []json.RawMessage
	decodeData(t, w, &customers)
	assert.Len(t, customers, 1)
}

func TestReceiptHandler_ErrorsArePlainText(t *testing.T) {
	r := newTestRouter(t)
	receiptID, productID := seedReceipt(t, r)
	base := "/receipts/" + receiptID.String() + "/products/"

	tests := []struct {
		name   string
		method string
		path   string
		code   int
		body   string
	}{
		{"unknown receipt", http.MethodGet, "/receipts/" + uuid.NewString() + "/sum", http.StatusNotFound, "Receipt not found"},
		{"malformed id", http.MethodGet, "/receipts/42/sum", http.StatusBadRequest, "Invalid receipt ID format"},
		{"zero quantity", http.MethodPut, base + "add/" + productID.String() + "/0", http.StatusBadRequest, "Quantity must be greater than zero"},
		{"text quantity", http.MethodPut, base + "add/" + productID.String() + "/many", http.StatusBadRequest, "Quantity must be a whole number"},
		{"unknown product", http.MethodPut, base + "add/" + uuid.NewString() + "/1", http.StatusNotFound, "Product not found"},
		{"line missing", http.MethodPut, base + "remove/" + productID.String() + "/1", http.StatusNotFound, "Receipt detail not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, tt.method, tt.path, nil)
			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, tt.body, w.Body.String())
			assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
		})
	}
}

func TestReceiptHandler_Period(t *testing.T) {
	r := newTestRouter(t)
	receiptID, _ := seedReceipt(t, r)

	w := do(t, r, http.MethodGet, "/receipts/period?startDate=2024-03-15&endDate=2024-03-16", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var receipts []struct {
		ID uuid.UUID `json:"id"`
	}
	decodeData(t, w, &receipts)
	require.Len(t, receipts, 1)
	assert.Equal(t, receiptID, receipts[0].ID)

	// a plain end date is midnight, so the receipt at noon falls outside
	w = do(t, r, http.MethodGet, "/receipts/period?startDate=2024-03-15&endDate=2024-03-15", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &receipts)
	assert.Empty(t, receipts)

	w = do(t, r, http.MethodGet, "/receipts/period?startDate=2024-03-15T12:00:00Z&endDate=2024-03-15T12:00:00Z", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &receipts)
	require.Len(t, receipts, 1)

	w = do(t, r, http.MethodGet, "/receipts/period?startDate=2024-03-16T00:00:00Z&endDate=2024-03-20T00:00:00Z", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &receipts)
	assert.Empty(t, receipts)

	w = do(t, r, http.MethodGet, "/receipts/period?startDate=yesterday&endDate=2024-03-20", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/receipts/period", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCustomerHandler_CreateValidation(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/customers", map[string]any{
		"name":       "Kid",
		"surname":    "Buyer",
		"birth_date": "2010-01-01T00:00:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Customer birth_date")

	w = do(t, r, http.MethodPost, "/customers", map[string]any{"surname": "Nameless"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandler_ListFilter(t *testing.T) {
	r := newTestRouter(t)
	createID(t, r, "/products", map[string]any{"name": "Apple", "price": "1.20"})
	createID(t, r, "/products", map[string]any{"name": "Cheese", "price": "7.90"})

	w := do(t, r, http.MethodGet, "/products?minPrice=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var products []struct {
		Name string `json:"name"`
	}
	decodeData(t, w, &products)
	require.Len(t, products, 1)
	assert.Equal(t, "Cheese", products[0].Name)

	w = do(t, r, http.MethodGet, "/products?maxPrice=cheap", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/products?categoryId=nope", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParseTime(t *testing.T) {
	day, err := parseTime("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), day)

	exact, err := parseTime("2024-03-15T10:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 15, 8, 0, 0, 0, time.UTC), exact)

	_, err = parseTime("15/03/2024")
	assert.Error(t, err)
}
