package orders

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"

	"github.com/Mostafalol1233/resturant/app/auth"
	"github.com/Mostafalol1233/resturant/models"
)

type OrderItem struct {
	ID         uint    `json:"id"`
	ProductID  uint    `json:"productId"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	TotalPrice float64 `json:"totalPrice"`
	Product    struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	} `json:"product"`
}

type Order struct {
	ID            uint        `json:"id"`
	OrderNumber   string      `json:"orderNumber"`
	Type          string      `json:"type"`
	TableNumber   string      `json:"tableNumber,omitempty"`
	CustomerName  string      `json:"customerName,omitempty"`
	CustomerPhone string      `json:"customerPhone,omitempty"`
	Subtotal      float64     `json:"subtotal"`
	Tax           float64     `json:"tax"`
	Total         float64     `json:"total"`
	PaymentStatus string      `json:"paymentStatus"`
	Status        string      `json:"status"`
	CreatedBy     string      `json:"createdBy,omitempty"`
	Items         []OrderItem `json:"items,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
}

type CreateOrderRequest struct {
	Order struct {
		Type          string  `json:"type"`
		TableNumber   string  `json:"tableNumber"`
		CustomerName  string  `json:"customerName"`
		CustomerPhone string  `json:"customerPhone"`
		Subtotal      float64 `json:"subtotal"`
		Tax           float64 `json:"tax"`
		Total         float64 `json:"total"`
		PaymentStatus string  `json:"paymentStatus"`
	} `json:"order"`
	Items []struct {
		ProductID  uint    `json:"productId"`
		Quantity   int     `json:"quantity"`
		UnitPrice  float64 `json:"unitPrice"`
		TotalPrice float64 `json:"totalPrice"`
	} `json:"items"`
}

type OrderProvider interface {
	CreateOrder(order *models.Order, items []models.OrderItem) error
	GetOrders(limit int) ([]models.Order, error)
	GetByID(id uint) (*models.Order, error)
	GetByStatus(status string) ([]models.Order, error)
	UpdateStatus(id uint, status string) (*models.Order, error)
	Delete(id uint) error
}

type OrdersHandler struct {
	repo OrderProvider
}

func NewOrdersHandler(r OrderProvider) *OrdersHandler {
	return &OrdersHandler{
		repo: r,
	}
}

func toOrder(o models.Order) Order {
	order := Order{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		Type:          o.Type,
		TableNumber:   o.TableNumber,
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		Subtotal:      o.Subtotal.InexactFloat64(),
		Tax:           o.Tax.InexactFloat64(),
		Total:         o.Total.InexactFloat64(),
		PaymentStatus: o.PaymentStatus,
		Status:        o.Status,
		CreatedBy:     o.CreatedBy,
		CreatedAt:     o.CreatedAt,
	}
	for _, item := range o.Items {
		dto := OrderItem{
			ID:         item.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice.InexactFloat64(),
			TotalPrice: item.TotalPrice.InexactFloat64(),
		}
		dto.Product.ID = item.Product.ID
		dto.Product.Name = item.Product.Name
		order.Items = append(order.Items, dto)
	}
	return order
}

// HandleCreate accepts the order header plus its line items and runs the
// atomic creation path: header, items, stock decrements and sale ledger
// entries all commit or roll back together.
func (h *OrdersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	orderType := input.Order.Type
	if orderType == "" {
		orderType = models.OrderTypeDineIn
	}
	paymentStatus := input.Order.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = models.PaymentStatusPending
	}

	order := &models.Order{
		Type:          orderType,
		TableNumber:   input.Order.TableNumber,
		CustomerName:  input.Order.CustomerName,
		CustomerPhone: input.Order.CustomerPhone,
		Subtotal:      decimal.NewFromFloat(input.Order.Subtotal),
		Tax:           decimal.NewFromFloat(input.Order.Tax),
		Total:         decimal.NewFromFloat(input.Order.Total),
		PaymentStatus: paymentStatus,
		Status:        models.OrderStatusPending,
		CreatedBy:     auth.UserID(r.Context()),
	}

	items := make([]models.OrderItem, len(input.Items))
	for i, item := range input.Items {
		items[i] = models.OrderItem{
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  decimal.NewFromFloat(item.UnitPrice),
			TotalPrice: decimal.NewFromFloat(item.TotalPrice),
		}
	}

	if err := h.repo.CreateOrder(order, items); err != nil {
		switch {
		case errors.Is(err, models.ErrEmptyOrder),
			errors.Is(err, models.ErrInvalidQuantity),
			errors.Is(err, models.ErrProductNotFound):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "Failed to create order", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toOrder(*order))
}

// HandleGetAll lists recent orders with nested items and product snapshots.
// An optional status query narrows the listing to one status.
func (h *OrdersHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	var (
		res []models.Order
		err error
	)
	if status := r.URL.Query().Get("status"); status != "" {
		res, err = h.repo.GetByStatus(status)
		if errors.Is(err, models.ErrInvalidOrderStatus) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		limit := 0
		if lStr := r.URL.Query().Get("limit"); lStr != "" {
			if l, convErr := strconv.Atoi(lStr); convErr == nil && l > 0 {
				limit = l
			}
		}
		res, err = h.repo.GetOrders(limit)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	orders := make([]Order, len(res))
	for i, o := range res {
		orders[i] = toOrder(o)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(orders); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *OrdersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "Invalid order id", http.StatusBadRequest)
		return
	}

	order, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, models.ErrOrderNotFound) {
			http.Error(w, "Order not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(toOrder(*order)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// HandleUpdateStatus overwrites the order status. Transitions are not guarded;
// any known status value is accepted.
func (h *OrdersHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "Invalid order id", http.StatusBadRequest)
		return
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	order, err := h.repo.UpdateStatus(id, input.Status)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidOrderStatus):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, models.ErrOrderNotFound):
			http.Error(w, "Order not found", http.StatusNotFound)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(toOrder(*order)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *OrdersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "Invalid order id", http.StatusBadRequest)
		return
	}

	if err := h.repo.Delete(id); err != nil {
		if errors.Is(err, models.ErrOrderNotFound) {
			http.Error(w, "Order not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	return uint(id), err
}
