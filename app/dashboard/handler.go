package dashboard

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Mostafalol1233/resturant/models"
)

type StatsResponse struct {
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalOrders       int64   `json:"totalOrders"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	LowStockCount     int     `json:"lowStockCount"`
}

type TopProductResponse struct {
	Product struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	} `json:"product"`
	SoldQuantity int64   `json:"soldQuantity"`
	Revenue      float64 `json:"revenue"`
}

type StatsProvider interface {
	GetDailyStats(date time.Time) (*models.DailyStats, error)
	GetTopProducts(limit int, startDate, endDate time.Time) ([]models.TopProduct, error)
}

type LowStockProvider interface {
	GetLowStock() ([]models.Product, error)
}

type DashboardHandler struct {
	analytics StatsProvider
	products  LowStockProvider
}

func NewDashboardHandler(analytics StatsProvider, products LowStockProvider) *DashboardHandler {
	return &DashboardHandler{
		analytics: analytics,
		products:  products,
	}
}

// HandleGetStats returns today's paid-order aggregates plus the current
// low-stock product count.
func (h *DashboardHandler) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	date := time.Now()
	if dStr := r.URL.Query().Get("date"); dStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dStr, time.Local)
		if err != nil {
			http.Error(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		date = parsed
	}

	stats, err := h.analytics.GetDailyStats(date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	lowStock, err := h.products.GetLowStock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(StatsResponse{
		TotalRevenue:      stats.TotalRevenue.InexactFloat64(),
		TotalOrders:       stats.TotalOrders,
		AverageOrderValue: stats.AverageOrderValue.InexactFloat64(),
		LowStockCount:     len(lowStock),
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// HandleGetTopProducts ranks products by sold quantity. Optional start/end
// query parameters (YYYY-MM-DD) narrow the range; only a start date means
// that single day, neither means all time.
func (h *DashboardHandler) HandleGetTopProducts(w http.ResponseWriter, r *http.Request) {
	limit := 5
	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		if l, err := strconv.Atoi(lStr); err == nil && l > 0 {
			limit = l
		}
	}

	var startDate, endDate time.Time
	if sStr := r.URL.Query().Get("start"); sStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", sStr, time.Local)
		if err != nil {
			http.Error(w, "Invalid start date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		startDate = parsed
	}
	if eStr := r.URL.Query().Get("end"); eStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", eStr, time.Local)
		if err != nil {
			http.Error(w, "Invalid end date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		endDate = parsed
	}

	top, err := h.analytics.GetTopProducts(limit, startDate, endDate)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := make([]TopProductResponse, len(top))
	for i, tp := range top {
		response[i].Product.ID = tp.Product.ID
		response[i].Product.Name = tp.Product.Name
		response[i].SoldQuantity = tp.SoldQuantity
		response[i].Revenue = tp.Revenue.InexactFloat64()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
