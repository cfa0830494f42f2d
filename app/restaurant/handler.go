package restaurant

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/Mostafalol1233/resturant/models"
)

type RestaurantResponse struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Address  string  `json:"address,omitempty"`
	Phone    string  `json:"phone,omitempty"`
	Email    string  `json:"email,omitempty"`
	TaxRate  float64 `json:"taxRate"`
	Currency string  `json:"currency"`
}

type RestaurantRequest struct {
	Name     string  `json:"name"`
	Address  string  `json:"address"`
	Phone    string  `json:"phone"`
	Email    string  `json:"email"`
	TaxRate  float64 `json:"taxRate"`
	Currency string  `json:"currency"`
}

type RestaurantProvider interface {
	Get() (*models.Restaurant, error)
	Create(restaurant *models.Restaurant) error
	Update(id uint, fields map[string]any) (*models.Restaurant, error)
}

type RestaurantHandler struct {
	repo RestaurantProvider
}

func NewRestaurantHandler(r RestaurantProvider) *RestaurantHandler {
	return &RestaurantHandler{repo: r}
}

func toRestaurant(r *models.Restaurant) RestaurantResponse {
	return RestaurantResponse{
		ID:       r.ID,
		Name:     r.Name,
		Address:  r.Address,
		Phone:    r.Phone,
		Email:    r.Email,
		TaxRate:  r.TaxRate.InexactFloat64(),
		Currency: r.Currency,
	}
}

func (h *RestaurantHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	restaurant, err := h.repo.Get()
	if err != nil {
		if errors.Is(err, models.ErrRestaurantNotFound) {
			http.Error(w, "Restaurant not configured", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(toRestaurant(restaurant)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *RestaurantHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input RestaurantRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if input.Name == "" {
		http.Error(w, "Missing restaurant name", http.StatusBadRequest)
		return
	}
	if input.Currency == "" {
		input.Currency = "USD"
	}

	restaurant := &models.Restaurant{
		Name:     input.Name,
		Address:  input.Address,
		Phone:    input.Phone,
		Email:    input.Email,
		TaxRate:  decimal.NewFromFloat(input.TaxRate),
		Currency: input.Currency,
	}
	if err := h.repo.Create(restaurant); err != nil {
		http.Error(w, "Failed to create restaurant", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toRestaurant(restaurant))
}

// HandleUpdate updates the single settings row, creating it on first save.
func (h *RestaurantHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var input RestaurantRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	existing, err := h.repo.Get()
	if errors.Is(err, models.ErrRestaurantNotFound) {
		h.createFromRequest(w, input)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	restaurant, err := h.repo.Update(existing.ID, map[string]any{
		"name":     input.Name,
		"address":  input.Address,
		"phone":    input.Phone,
		"email":    input.Email,
		"tax_rate": decimal.NewFromFloat(input.TaxRate),
		"currency": input.Currency,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(toRestaurant(restaurant)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *RestaurantHandler) createFromRequest(w http.ResponseWriter, input RestaurantRequest) {
	if input.Currency == "" {
		input.Currency = "USD"
	}
	restaurant := &models.Restaurant{
		Name:     input.Name,
		Address:  input.Address,
		Phone:    input.Phone,
		Email:    input.Email,
		TaxRate:  decimal.NewFromFloat(input.TaxRate),
		Currency: input.Currency,
	}
	if err := h.repo.Create(restaurant); err != nil {
		http.Error(w, "Failed to save restaurant", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toRestaurant(restaurant))
}
