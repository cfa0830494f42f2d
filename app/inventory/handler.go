package inventory

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Mostafalol1233/resturant/app/auth"
	"github.com/Mostafalol1233/resturant/models"
)

type Transaction struct {
	ID        uint      `json:"id"`
	ProductID uint      `json:"productId"`
	Product   struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	} `json:"product"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	UnitCost  float64   `json:"unitCost,omitempty"`
	TotalCost float64   `json:"totalCost,omitempty"`
	Reference string    `json:"reference,omitempty"`
	CreatedBy string    `json:"createdBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type TransactionProvider interface {
	GetTransactions(productID uint) ([]models.InventoryTransaction, error)
	CreateTransaction(entry *models.InventoryTransaction) error
}

type InventoryHandler struct {
	repo TransactionProvider
}

func NewInventoryHandler(r TransactionProvider) *InventoryHandler {
	return &InventoryHandler{
		repo: r,
	}
}

func toTransaction(t models.InventoryTransaction) Transaction {
	dto := Transaction{
		ID:        t.ID,
		ProductID: t.ProductID,
		Type:      t.Type,
		Quantity:  t.Quantity,
		UnitCost:  t.UnitCost.InexactFloat64(),
		TotalCost: t.TotalCost.InexactFloat64(),
		Reference: t.Reference,
		CreatedBy: t.CreatedBy,
		CreatedAt: t.CreatedAt,
	}
	dto.Product.ID = t.Product.ID
	dto.Product.Name = t.Product.Name
	return dto
}

// HandleGetAll lists ledger entries newest first, optionally filtered by
// product id.
func (h *InventoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	var productID uint
	if pStr := r.URL.Query().Get("productId"); pStr != "" {
		p, err := strconv.ParseUint(pStr, 10, 32)
		if err != nil {
			http.Error(w, "Invalid product id", http.StatusBadRequest)
			return
		}
		productID = uint(p)
	}

	res, err := h.repo.GetTransactions(productID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	transactions := make([]Transaction, len(res))
	for i, t := range res {
		transactions[i] = toTransaction(t)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(transactions); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// HandleCreate appends a manual ledger entry (purchase, adjustment or waste)
// and applies its signed quantity to the product's stock.
func (h *InventoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ProductID uint    `json:"productId"`
		Type      string  `json:"type"`
		Quantity  int     `json:"quantity"`
		UnitCost  float64 `json:"unitCost"`
		TotalCost float64 `json:"totalCost"`
		Reference string  `json:"reference"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	entry := &models.InventoryTransaction{
		ProductID: input.ProductID,
		Type:      input.Type,
		Quantity:  input.Quantity,
		UnitCost:  decimal.NewFromFloat(input.UnitCost),
		TotalCost: decimal.NewFromFloat(input.TotalCost),
		Reference: input.Reference,
		CreatedBy: auth.UserID(r.Context()),
	}

	if err := h.repo.CreateTransaction(entry); err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidTransactionType):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, models.ErrProductNotFound):
			http.Error(w, "Product not found", http.StatusNotFound)
		default:
			http.Error(w, "Failed to create inventory transaction", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toTransaction(*entry))
}
