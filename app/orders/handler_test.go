package orders

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Mostafalol1233/resturant/models"
)

// --- Mock Repo ---

type MockOrderRepo struct {
	Orders []models.Order
	Err    error

	lastCreatedOrder *models.Order
	lastCreatedItems []models.OrderItem
	lastStatusID     uint
	lastStatus       string
}

func (m *MockOrderRepo) CreateOrder(order *models.Order, items []models.OrderItem) error {
	m.lastCreatedOrder = order
	m.lastCreatedItems = items
	if m.Err != nil {
		return m.Err
	}
	order.ID = 1
	order.OrderNumber = "ORD-20250101-0001"
	return nil
}

func (m *MockOrderRepo) GetOrders(limit int) ([]models.Order, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if limit > 0 && limit < len(m.Orders) {
		return m.Orders[:limit], nil
	}
	return m.Orders, nil
}

func (m *MockOrderRepo) GetByID(id uint) (*models.Order, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, o := range m.Orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, models.ErrOrderNotFound
}

func (m *MockOrderRepo) GetByStatus(status string) ([]models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, models.ErrInvalidOrderStatus
	}
	var matched []models.Order
	for _, o := range m.Orders {
		if o.Status == status {
			matched = append(matched, o)
		}
	}
	return matched, nil
}

func (m *MockOrderRepo) UpdateStatus(id uint, status string) (*models.Order, error) {
	m.lastStatusID = id
	m.lastStatus = status
	if !models.ValidOrderStatus(status) {
		return nil, models.ErrInvalidOrderStatus
	}
	for i := range m.Orders {
		if m.Orders[i].ID == id {
			m.Orders[i].Status = status
			order := m.Orders[i]
			return &order, nil
		}
	}
	return nil, models.ErrOrderNotFound
}

func (m *MockOrderRepo) Delete(id uint) error {
	for _, o := range m.Orders {
		if o.ID == id {
			return nil
		}
	}
	return models.ErrOrderNotFound
}

// --- Helpers ---

func newTestOrder(id uint, status string, total float64) models.Order {
	t := decimal.NewFromFloat(total)
	return models.Order{
		ID:            id,
		OrderNumber:   "ORD-20250101-0042",
		Type:          models.OrderTypeDineIn,
		Subtotal:      t,
		Tax:           decimal.Zero,
		Total:         t,
		PaymentStatus: models.PaymentStatusPaid,
		Status:        status,
		Items: []models.OrderItem{
			{
				ID:         1,
				OrderID:    id,
				ProductID:  7,
				Product:    models.Product{ID: 7, Name: "Shawarma"},
				Quantity:   2,
				UnitPrice:  decimal.NewFromFloat(total / 2),
				TotalPrice: t,
			},
		},
	}
}

func newRouter(h *OrdersHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/api/orders", h.HandleGetAll)
	r.Post("/api/orders", h.HandleCreate)
	r.Get("/api/orders/{id}", h.HandleGet)
	r.Put("/api/orders/{id}/status", h.HandleUpdateStatus)
	r.Delete("/api/orders/{id}", h.HandleDelete)
	return r
}

// --- Tests ---

func TestHandleCreate(t *testing.T) {
	validBody := `{
		"order": {"type": "dine-in", "tableNumber": "4", "subtotal": 12, "tax": 1.2, "total": 13.2, "paymentStatus": "paid"},
		"items": [{"productId": 7, "quantity": 3, "unitPrice": 4, "totalPrice": 12}]
	}`

	testCases := []struct {
		name               string
		body               string
		repoErr            error
		expectedStatusCode int
		checkRepoCalls     func(t *testing.T, repo *MockOrderRepo)
	}{
		{
			name:               "Success",
			body:               validBody,
			expectedStatusCode: http.StatusCreated,
			checkRepoCalls: func(t *testing.T, repo *MockOrderRepo) {
				assert.Equal(t, models.OrderTypeDineIn, repo.lastCreatedOrder.Type)
				assert.Equal(t, "4", repo.lastCreatedOrder.TableNumber)
				assert.Equal(t, models.PaymentStatusPaid, repo.lastCreatedOrder.PaymentStatus)
				assert.Len(t, repo.lastCreatedItems, 1)
				assert.Equal(t, uint(7), repo.lastCreatedItems[0].ProductID)
				assert.Equal(t, 3, repo.lastCreatedItems[0].Quantity)
			},
		},
		{
			name:               "Invalid JSON",
			body:               `{broken`,
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "Empty items rejected",
			body:               `{"order": {"total": 0}, "items": []}`,
			repoErr:            models.ErrEmptyOrder,
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "Unknown product rejected",
			body:               validBody,
			repoErr:            models.ErrProductNotFound,
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "Storage failure",
			body:               validBody,
			repoErr:            errors.New("connection reset"),
			expectedStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &MockOrderRepo{Err: tc.repoErr}
			router := newRouter(NewOrdersHandler(repo))

			req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)

			if tc.expectedStatusCode == http.StatusCreated {
				var resp Order
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, "ORD-20250101-0001", resp.OrderNumber)
				assert.Equal(t, models.OrderStatusPending, resp.Status)
			}
			if tc.checkRepoCalls != nil {
				tc.checkRepoCalls(t, repo)
			}
		})
	}
}

func TestHandleGetAll(t *testing.T) {
	repo := &MockOrderRepo{Orders: []models.Order{
		newTestOrder(2, models.OrderStatusPreparing, 26.00),
		newTestOrder(1, models.OrderStatusServed, 13.20),
	}}
	router := newRouter(NewOrdersHandler(repo))

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []Order
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp, 2)
	assert.Equal(t, uint(2), resp[0].ID)
	assert.Len(t, resp[0].Items, 1)
	assert.Equal(t, "Shawarma", resp[0].Items[0].Product.Name)
	assert.Equal(t, 26.00, resp[0].Total)
}

func TestHandleGetAllByStatus(t *testing.T) {
	repo := &MockOrderRepo{Orders: []models.Order{
		newTestOrder(1, models.OrderStatusServed, 13.20),
		newTestOrder(2, models.OrderStatusPreparing, 26.00),
	}}
	router := newRouter(NewOrdersHandler(repo))

	req := httptest.NewRequest(http.MethodGet, "/api/orders?status=preparing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp []Order
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp, 1)
	assert.Equal(t, uint(2), resp[0].ID)

	req = httptest.NewRequest(http.MethodGet, "/api/orders?status=bogus", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGet(t *testing.T) {
	repo := &MockOrderRepo{Orders: []models.Order{newTestOrder(5, models.OrderStatusReady, 13.20)}}
	router := newRouter(NewOrdersHandler(repo))

	req := httptest.NewRequest(http.MethodGet, "/api/orders/5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/orders/99", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/orders/banana", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleUpdateStatus(t *testing.T) {
	testCases := []struct {
		name               string
		url                string
		body               string
		expectedStatusCode int
		expectedStatus     string
	}{
		{
			name:               "Success",
			url:                "/api/orders/5/status",
			body:               `{"status": "preparing"}`,
			expectedStatusCode: http.StatusOK,
			expectedStatus:     models.OrderStatusPreparing,
		},
		{
			name:               "Backward transition allowed",
			url:                "/api/orders/5/status",
			body:               `{"status": "pending"}`,
			expectedStatusCode: http.StatusOK,
			expectedStatus:     models.OrderStatusPending,
		},
		{
			name:               "Unknown status",
			url:                "/api/orders/5/status",
			body:               `{"status": "vanished"}`,
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "Missing order",
			url:                "/api/orders/99/status",
			body:               `{"status": "ready"}`,
			expectedStatusCode: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &MockOrderRepo{Orders: []models.Order{newTestOrder(5, models.OrderStatusServed, 13.20)}}
			router := newRouter(NewOrdersHandler(repo))

			req := httptest.NewRequest(http.MethodPut, tc.url, strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.expectedStatusCode == http.StatusOK {
				var resp Order
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, tc.expectedStatus, resp.Status)
			}
		})
	}
}

func TestHandleDelete(t *testing.T) {
	repo := &MockOrderRepo{Orders: []models.Order{newTestOrder(5, models.OrderStatusServed, 13.20)}}
	router := newRouter(NewOrdersHandler(repo))

	req := httptest.NewRequest(http.MethodDelete, "/api/orders/5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/orders/99", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
