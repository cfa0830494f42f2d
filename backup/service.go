package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/Mostafalol1233/resturant/models"
)

// Archive is the serialized form of one backup artifact.
type Archive struct {
	Timestamp time.Time   `json:"timestamp"`
	Version   string      `json:"version"`
	Data      ArchiveData `json:"data"`
}

type ArchiveData struct {
	Restaurant   *models.Restaurant            `json:"restaurant,omitempty"`
	Categories   []models.Category             `json:"categories"`
	Products     []models.Product              `json:"products"`
	Orders       []models.Order                `json:"orders"`
	Transactions []models.InventoryTransaction `json:"inventoryTransactions"`
}

type store interface {
	GetRestaurant() (*models.Restaurant, error)
	CreateRestaurant(r *models.Restaurant) error
	UpdateRestaurant(id uint, fields map[string]any) (*models.Restaurant, error)
	GetCategories() ([]models.Category, error)
	CreateCategory(c *models.Category) error
	GetProducts() ([]models.Product, error)
	CreateProduct(p *models.Product) error
	GetOrders(limit int) ([]models.Order, error)
	GetTransactions(productID uint) ([]models.InventoryTransaction, error)
}

// Repos bundles the repositories the backup service reads and restores.
type Repos struct {
	Restaurant *models.RestaurantRepository
	Categories *models.CategoriesRepository
	Products   *models.ProductsRepository
	Orders     *models.OrdersRepository
	Inventory  *models.InventoryRepository
}

func (r Repos) GetRestaurant() (*models.Restaurant, error) { return r.Restaurant.Get() }
func (r Repos) CreateRestaurant(m *models.Restaurant) error {
	return r.Restaurant.Create(m)
}
func (r Repos) UpdateRestaurant(id uint, fields map[string]any) (*models.Restaurant, error) {
	return r.Restaurant.Update(id, fields)
}
func (r Repos) GetCategories() ([]models.Category, error) { return r.Categories.GetCategories() }
func (r Repos) CreateCategory(m *models.Category) error   { return r.Categories.Create(m) }
func (r Repos) GetProducts() ([]models.Product, error)    { return r.Products.GetProducts() }
func (r Repos) CreateProduct(m *models.Product) error     { return r.Products.Create(m) }
func (r Repos) GetOrders(limit int) ([]models.Order, error) {
	return r.Orders.GetOrders(limit)
}
func (r Repos) GetTransactions(productID uint) ([]models.InventoryTransaction, error) {
	return r.Inventory.GetTransactions(productID)
}

// Service exports database snapshots to a blob store and restores them.
type Service struct {
	store store
	blobs BlobStore
}

func NewService(repos store, blobs BlobStore) *Service {
	return &Service{
		store: repos,
		blobs: blobs,
	}
}

// Create snapshots the restaurant, catalog, recent orders and the stock
// ledger into one timestamped JSON artifact and returns its name.
func (s *Service) Create() (string, error) {
	restaurant, err := s.store.GetRestaurant()
	if err != nil && !errors.Is(err, models.ErrRestaurantNotFound) {
		return "", err
	}
	categories, err := s.store.GetCategories()
	if err != nil {
		return "", err
	}
	products, err := s.store.GetProducts()
	if err != nil {
		return "", err
	}
	orders, err := s.store.GetOrders(1000)
	if err != nil {
		return "", err
	}
	transactions, err := s.store.GetTransactions(0)
	if err != nil {
		return "", err
	}

	archive := Archive{
		Timestamp: time.Now(),
		Version:   "1.0",
		Data: ArchiveData{
			Restaurant:   restaurant,
			Categories:   categories,
			Products:     products,
			Orders:       orders,
			Transactions: transactions,
		},
	}

	data, err := json.MarshalIndent(archive, "", "  ")
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("backup-%s.json",
		strings.NewReplacer(":", "-", ".", "-").Replace(archive.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z")))
	if err := s.blobs.Upload(name, data); err != nil {
		return "", err
	}
	return name, nil
}

// List returns backup artifact names, newest first.
func (s *Service) List() ([]string, error) {
	names, err := s.blobs.List()
	if err != nil {
		return nil, err
	}
	backups := make([]string, 0, len(names))
	for _, name := range names {
		if strings.HasPrefix(name, "backup-") && strings.HasSuffix(name, ".json") {
			backups = append(backups, name)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(backups)))
	return backups, nil
}

// Restore replays an artifact: the restaurant row is updated or created, and
// categories and products are re-created with rows that collide left alone.
// Orders and ledger entries are historical records and are not replayed.
func (s *Service) Restore(name string) error {
	data, err := s.blobs.Download(name)
	if err != nil {
		return err
	}

	var archive Archive
	if err := json.Unmarshal(data, &archive); err != nil {
		return fmt.Errorf("corrupt backup %s: %w", name, err)
	}

	if archive.Data.Restaurant != nil {
		existing, err := s.store.GetRestaurant()
		switch {
		case err == nil:
			restored := archive.Data.Restaurant
			if _, err := s.store.UpdateRestaurant(existing.ID, map[string]any{
				"name":     restored.Name,
				"address":  restored.Address,
				"phone":    restored.Phone,
				"email":    restored.Email,
				"tax_rate": restored.TaxRate,
				"currency": restored.Currency,
			}); err != nil {
				return err
			}
		case errors.Is(err, models.ErrRestaurantNotFound):
			restaurant := *archive.Data.Restaurant
			restaurant.ID = 0
			if err := s.store.CreateRestaurant(&restaurant); err != nil {
				return err
			}
		default:
			return err
		}
	}

	existingCategories, err := s.store.GetCategories()
	if err != nil {
		return err
	}
	categoryNames := make(map[string]bool, len(existingCategories))
	for _, c := range existingCategories {
		categoryNames[c.Name] = true
	}
	for _, c := range archive.Data.Categories {
		if categoryNames[c.Name] {
			log.Printf("backup restore: skipping existing category %q", c.Name)
			continue
		}
		category := c
		category.ID = 0
		if err := s.store.CreateCategory(&category); err != nil {
			return err
		}
	}

	existingProducts, err := s.store.GetProducts()
	if err != nil {
		return err
	}
	productNames := make(map[string]bool, len(existingProducts))
	for _, p := range existingProducts {
		productNames[p.Name] = true
	}
	for _, p := range archive.Data.Products {
		if productNames[p.Name] {
			log.Printf("backup restore: skipping existing product %q", p.Name)
			continue
		}
		product := p
		product.ID = 0
		product.Category = models.Category{}
		if err := s.store.CreateProduct(&product); err != nil {
			return err
		}
	}

	log.Printf("backup restore: %s applied", name)
	return nil
}

func (s *Service) Download(name string) ([]byte, error) {
	return s.blobs.Download(name)
}

func (s *Service) Delete(name string) error {
	return s.blobs.Delete(name)
}

// RunScheduler creates a backup every interval and prunes artifacts beyond
// keep, until the context is cancelled.
func (s *Service) RunScheduler(ctx context.Context, interval time.Duration, keep int) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			name, err := s.Create()
			if err != nil {
				log.Printf("auto backup failed: %v", err)
				continue
			}
			log.Printf("auto backup created: %s", name)

			backups, err := s.List()
			if err != nil {
				log.Printf("auto backup prune failed: %v", err)
				continue
			}
			for i := keep; i < len(backups); i++ {
				if err := s.Delete(backups[i]); err != nil {
					log.Printf("auto backup prune failed for %s: %v", backups[i], err)
				}
			}
		}
	}
}
