package products

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"

	"github.com/Mostafalol1233/resturant/models"
)

type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID                uint     `json:"id"`
	Name              string   `json:"name"`
	Description       string   `json:"description,omitempty"`
	Price             float64  `json:"price"`
	Cost              float64  `json:"cost,omitempty"`
	CategoryID        uint     `json:"categoryId"`
	Category          Category `json:"category"`
	TrackInventory    bool     `json:"trackInventory"`
	StockQuantity     int      `json:"stockQuantity"`
	LowStockThreshold int      `json:"lowStockThreshold"`
	IsActive          bool     `json:"isActive"`
}

type ProductRequest struct {
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	Price             float64 `json:"price"`
	Cost              float64 `json:"cost"`
	CategoryID        uint    `json:"categoryId"`
	TrackInventory    bool    `json:"trackInventory"`
	StockQuantity     int     `json:"stockQuantity"`
	LowStockThreshold int     `json:"lowStockThreshold"`
}

type ProductProvider interface {
	GetProducts() ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	GetByCategory(categoryID uint) ([]models.Product, error)
	GetLowStock() ([]models.Product, error)
	Create(product *models.Product) error
	Update(id uint, fields map[string]any) (*models.Product, error)
	Delete(id uint) error
}

type ProductsHandler struct {
	repo ProductProvider
}

func NewProductsHandler(r ProductProvider) *ProductsHandler {
	return &ProductsHandler{
		repo: r,
	}
}

func toProduct(p models.Product) Product {
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		Cost:        p.Cost.InexactFloat64(),
		CategoryID:  p.CategoryID,
		Category: Category{
			ID:   p.Category.ID,
			Name: p.Category.Name,
		},
		TrackInventory:    p.TrackInventory,
		StockQuantity:     p.StockQuantity,
		LowStockThreshold: p.LowStockThreshold,
		IsActive:          p.IsActive,
	}
}

func (h *ProductsHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	var (
		res []models.Product
		err error
	)
	if categoryStr := r.URL.Query().Get("category"); categoryStr != "" {
		categoryID, convErr := strconv.ParseUint(categoryStr, 10, 32)
		if convErr != nil {
			http.Error(w, "Invalid category id", http.StatusBadRequest)
			return
		}
		res, err = h.repo.GetByCategory(uint(categoryID))
	} else {
		res, err = h.repo.GetProducts()
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	products := make([]Product, len(res))
	for i, p := range res {
		products[i] = toProduct(p)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(products); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *ProductsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	product, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(toProduct(*product)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// HandleGetLowStock lists active tracked products at or below their threshold.
func (h *ProductsHandler) HandleGetLowStock(w http.ResponseWriter, r *http.Request) {
	res, err := h.repo.GetLowStock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	products := make([]Product, len(res))
	for i, p := range res {
		products[i] = toProduct(p)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(products); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *ProductsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	if input.Name == "" || input.Price < 0 || input.CategoryID == 0 {
		http.Error(w, "Missing name, category or valid price", http.StatusBadRequest)
		return
	}

	product := &models.Product{
		Name:              input.Name,
		Description:       input.Description,
		Price:             decimal.NewFromFloat(input.Price),
		Cost:              decimal.NewFromFloat(input.Cost),
		CategoryID:        input.CategoryID,
		TrackInventory:    input.TrackInventory,
		StockQuantity:     input.StockQuantity,
		LowStockThreshold: input.LowStockThreshold,
		IsActive:          true,
	}

	if err := h.repo.Create(product); err != nil {
		http.Error(w, "Failed to create product", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toProduct(*product))
}

func (h *ProductsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	var input ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	fields := map[string]any{
		"name":                input.Name,
		"description":         input.Description,
		"price":               decimal.NewFromFloat(input.Price),
		"cost":                decimal.NewFromFloat(input.Cost),
		"category_id":         input.CategoryID,
		"track_inventory":     input.TrackInventory,
		"stock_quantity":      input.StockQuantity,
		"low_stock_threshold": input.LowStockThreshold,
	}

	product, err := h.repo.Update(id, fields)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(toProduct(*product)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *ProductsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	if err := h.repo.Delete(id); err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
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
