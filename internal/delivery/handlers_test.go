package delivery

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/paatih-qee/langspeed-motor/internal/domain"
	"github.com/paatih-qee/langspeed-motor/internal/repository"
	"github.com/paatih-qee/langspeed-motor/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  string          `json:"Status"`
	Message string          `json:"Message"`
	Data    json.RawMessage `json:"Data"`
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store := repository.NewMemoryStore()
	productHandler := NewProductHandler(usecase.NewProductUseCase(store, logger), logger)
	serviceHandler := NewServiceHandler(usecase.NewServiceUseCase(store, logger), logger)
	orderHandler := NewOrderHandler(usecase.NewOrderUseCase(store, logger), logger)

	router := gin.New()
	productHandler.RegisterRoutes(router)
	serviceHandler.RegisterRoutes(router)
	orderHandler.RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func createProduct(t *testing.T, router *gin.Engine, name string, price float64, stock int) domain.Product {
	t.Helper()
	w, env := doJSON(t, router, http.MethodPost, "/products", gin.H{"name": name, "price": price, "stock": stock})
	require.Equal(t, http.StatusCreated, w.Code)
	var p domain.Product
	require.NoError(t, json.Unmarshal(env.Data, &p))
	return p
}

func TestProductEndpoints(t *testing.T) {
	router := setupRouter(t)

	p := createProduct(t, router, "Oil Filter", 50000, 10)
	assert.NotEmpty(t, p.ProductID)

	// validation error surfaces as 400
	w, env := doJSON(t, router, http.MethodPost, "/products", gin.H{"name": "", "price": 1000, "stock": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Fail", env.Status)

	w, env = doJSON(t, router, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var products []domain.Product
	require.NoError(t, json.Unmarshal(env.Data, &products))
	require.Len(t, products, 1)
	assert.Equal(t, p.ProductID, products[0].ProductID)

	w, _ = doJSON(t, router, http.MethodPut, "/products/"+p.ProductID, gin.H{"name": "Oil Filter Premium", "price": 60000, "stock": 9})
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, router, http.MethodPut, "/products/P-404", gin.H{"name": "X", "price": 1, "stock": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, router, http.MethodDelete, "/products/"+p.ProductID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, router, http.MethodDelete, "/products/"+p.ProductID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServiceEndpoints(t *testing.T) {
	router := setupRouter(t)

	w, env := doJSON(t, router, http.MethodPost, "/services", gin.H{"name": "Tune-up", "price": 75000})
	require.Equal(t, http.StatusCreated, w.Code)
	var s domain.Service
	require.NoError(t, json.Unmarshal(env.Data, &s))
	assert.NotEmpty(t, s.ServiceID)

	w, _ = doJSON(t, router, http.MethodGet, "/services/"+s.ServiceID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, router, http.MethodGet, "/services/J-404", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderEndpoints(t *testing.T) {
	router := setupRouter(t)

	p := createProduct(t, router, "Oil Filter", 50000, 10)

	orderBody := gin.H{
		"customer_name":  "Budi Santoso",
		"customer_phone": "081234567890",
		"vehicle_type":   "Honda Vario 125",
		"plate_number":   "B 1234 ABC",
		"complaint":      "Mesin kasar saat idle",
		"lines": []gin.H{
			{"item_id": p.ProductID, "item_name": p.Name, "item_kind": "product", "quantity": 3, "price": p.Price},
		},
	}
	w, env := doJSON(t, router, http.MethodPost, "/orders", orderBody)
	require.Equal(t, http.StatusCreated, w.Code)
	var created domain.Order
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, float64(150000), created.TotalAmount)
	assert.Equal(t, domain.StatusInProgress, created.Status)

	// stock was decremented through the same surface
	w, env = doJSON(t, router, http.MethodGet, "/products/"+p.ProductID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var pAfter domain.Product
	require.NoError(t, json.Unmarshal(env.Data, &pAfter))
	assert.Equal(t, 7, pAfter.Stock)

	w, env = doJSON(t, router, http.MethodGet, "/orders/"+itoa(created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched domain.Order
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	require.Len(t, fetched.Lines, 1)
	assert.Equal(t, float64(150000), fetched.Lines[0].Subtotal)

	w, env = doJSON(t, router, http.MethodPatch, "/orders/"+itoa(created.ID)+"/status", gin.H{"status": "Completed"})
	require.Equal(t, http.StatusOK, w.Code)
	var updated domain.Order
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, domain.StatusCompleted, updated.Status)

	w, env = doJSON(t, router, http.MethodGet, "/orders?status=Completed", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var completed []domain.Order
	require.NoError(t, json.Unmarshal(env.Data, &completed))
	require.Len(t, completed, 1)

	w, _ = doJSON(t, router, http.MethodGet, "/orders/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, router, http.MethodPatch, "/orders/"+itoa(created.ID)+"/status", gin.H{"status": "Cancelled"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// missing customer fields are rejected before anything is written
	w, _ = doJSON(t, router, http.MethodPost, "/orders", gin.H{"customer_name": "", "lines": []gin.H{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func itoa(id int) string {
	return strconv.Itoa(id)
}
