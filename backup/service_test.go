package backup

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mostafalol1233/resturant/models"
)

// --- Fake store ---

type fakeStore struct {
	restaurant   *models.Restaurant
	categories   []models.Category
	products     []models.Product
	orders       []models.Order
	transactions []models.InventoryTransaction

	updatedRestaurant map[string]any
}

func (f *fakeStore) GetRestaurant() (*models.Restaurant, error) {
	if f.restaurant == nil {
		return nil, models.ErrRestaurantNotFound
	}
	return f.restaurant, nil
}

func (f *fakeStore) CreateRestaurant(r *models.Restaurant) error {
	f.restaurant = r
	return nil
}

func (f *fakeStore) UpdateRestaurant(id uint, fields map[string]any) (*models.Restaurant, error) {
	f.updatedRestaurant = fields
	return f.restaurant, nil
}

func (f *fakeStore) GetCategories() ([]models.Category, error) { return f.categories, nil }

func (f *fakeStore) CreateCategory(c *models.Category) error {
	f.categories = append(f.categories, *c)
	return nil
}

func (f *fakeStore) GetProducts() ([]models.Product, error) { return f.products, nil }

func (f *fakeStore) CreateProduct(p *models.Product) error {
	f.products = append(f.products, *p)
	return nil
}

func (f *fakeStore) GetOrders(limit int) ([]models.Order, error) { return f.orders, nil }

func (f *fakeStore) GetTransactions(productID uint) ([]models.InventoryTransaction, error) {
	return f.transactions, nil
}

func seededStore() *fakeStore {
	return &fakeStore{
		restaurant: &models.Restaurant{ID: 1, Name: "Cedar House", Currency: "USD",
			TaxRate: decimal.NewFromFloat(10)},
		categories: []models.Category{{ID: 1, Name: "Mains", IsActive: true}},
		products: []models.Product{{
			ID: 1, Name: "Falafel Wrap", CategoryID: 1,
			Price: decimal.NewFromFloat(4.50), TrackInventory: true,
			StockQuantity: 10, LowStockThreshold: 5, IsActive: true,
		}},
		orders: []models.Order{{ID: 1, OrderNumber: "ORD-20250101-0001",
			Total: decimal.NewFromFloat(13.20), Status: models.OrderStatusServed}},
		transactions: []models.InventoryTransaction{{ID: 1, ProductID: 1,
			Type: models.TransactionTypeSale, Quantity: -3}},
	}
}

func newTestService(t *testing.T) (*Service, *fakeStore) {
	t.Helper()
	blobs, err := NewLocalBlobStore(t.TempDir())
	require.NoError(t, err)
	store := seededStore()
	return NewService(store, blobs), store
}

// --- Tests ---

func TestCreateAndListBackups(t *testing.T) {
	service, _ := newTestService(t)

	first, err := service.Create()
	require.NoError(t, err)
	assert.Regexp(t, `^backup-.*\.json$`, first)

	time.Sleep(5 * time.Millisecond)
	second, err := service.Create()
	require.NoError(t, err)

	backups, err := service.List()
	require.NoError(t, err)
	require.Len(t, backups, 2)
	assert.Equal(t, second, backups[0], "newest first")
	assert.Equal(t, first, backups[1])
}

func TestDownloadRoundTrip(t *testing.T) {
	service, _ := newTestService(t)

	name, err := service.Create()
	require.NoError(t, err)

	data, err := service.Download(name)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Cedar House")
	assert.Contains(t, string(data), "Falafel Wrap")
	assert.Contains(t, string(data), "ORD-20250101-0001")
}

func TestRestoreIntoEmptyDatabase(t *testing.T) {
	blobs, err := NewLocalBlobStore(t.TempDir())
	require.NoError(t, err)

	source := seededStore()
	name, err := NewService(source, blobs).Create()
	require.NoError(t, err)

	empty := &fakeStore{}
	require.NoError(t, NewService(empty, blobs).Restore(name))

	require.NotNil(t, empty.restaurant)
	assert.Equal(t, "Cedar House", empty.restaurant.Name)
	require.Len(t, empty.categories, 1)
	require.Len(t, empty.products, 1)
	assert.Equal(t, "Falafel Wrap", empty.products[0].Name)
}

func TestRestoreSkipsExistingRows(t *testing.T) {
	service, store := newTestService(t)

	name, err := service.Create()
	require.NoError(t, err)

	// Same names already present: nothing is duplicated, the restaurant row
	// is updated in place.
	require.NoError(t, service.Restore(name))
	assert.Len(t, store.categories, 1)
	assert.Len(t, store.products, 1)
	assert.NotNil(t, store.updatedRestaurant)
	assert.Equal(t, "Cedar House", store.updatedRestaurant["name"])
}

func TestRestoreMissingBackup(t *testing.T) {
	service, _ := newTestService(t)
	assert.ErrorIs(t, service.Restore("backup-nope.json"), ErrBackupNotFound)
}

func TestDeleteBackup(t *testing.T) {
	service, _ := newTestService(t)

	name, err := service.Create()
	require.NoError(t, err)
	require.NoError(t, service.Delete(name))

	backups, err := service.List()
	require.NoError(t, err)
	assert.Empty(t, backups)

	assert.ErrorIs(t, service.Delete(name), ErrBackupNotFound)
}

func TestLocalBlobStoreRejectsPathEscapes(t *testing.T) {
	blobs, err := NewLocalBlobStore(t.TempDir())
	require.NoError(t, err)

	_, err = blobs.Download("../etc/passwd")
	assert.ErrorIs(t, err, ErrBackupNotFound)
	assert.ErrorIs(t, blobs.Delete("a/b"), ErrBackupNotFound)
}
