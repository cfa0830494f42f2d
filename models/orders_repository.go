package models

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type OrdersRepository struct {
	db *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		db: db,
	}
}

// orderNumberAttempts bounds the retry loop when a generated order number
// collides with an existing one.
const orderNumberAttempts = 5

// newOrderNumber builds a human-readable order number, e.g. ORD-20250114-0042.
// Uniqueness is enforced by the database; collisions are retried by the caller.
func newOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%04d", now.Format("20060102"), rand.Intn(10000))
}

// isDuplicateKey detects a unique-constraint violation across the drivers we
// run against (postgres in production, sqlite in tests).
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// CreateOrder persists the order header, its line items, the stock decrements
// and the matching "sale" ledger entries as one transaction. Any failure rolls
// back the whole operation; there is no other write path that depletes stock
// for a sale.
//
// The monetary fields on order are taken as given and not re-derived from the
// items. Stock decrements are expressed relative to the current value so two
// concurrent sales of the same product never lose an update.
func (r *OrdersRepository) CreateOrder(order *Order, items []OrderItem) error {
	if len(items) == 0 {
		return ErrEmptyOrder
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return ErrInvalidQuantity
		}
	}

	var lastErr error
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		order.ID = 0
		order.OrderNumber = newOrderNumber(time.Now())
		if order.Status == "" {
			order.Status = OrderStatusPending
		}

		lastErr = r.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(order).Error; err != nil {
				return err
			}

			for i := range items {
				items[i].ID = 0
				items[i].OrderID = order.ID
			}
			if err := tx.Create(&items).Error; err != nil {
				return err
			}

			for _, item := range items {
				var product Product
				if err := tx.First(&product, item.ProductID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return fmt.Errorf("%w: id %d", ErrProductNotFound, item.ProductID)
					}
					return err
				}
				if !product.TrackInventory {
					continue
				}

				if err := tx.Model(&Product{}).
					Where("id = ?", item.ProductID).
					Update("stock_quantity", gorm.Expr("stock_quantity - ?", item.Quantity)).Error; err != nil {
					return err
				}

				entry := InventoryTransaction{
					ProductID: item.ProductID,
					Type:      TransactionTypeSale,
					Quantity:  -item.Quantity,
					UnitCost:  item.UnitPrice,
					TotalCost: item.TotalPrice,
					Reference: fmt.Sprintf("Order #%s", order.OrderNumber),
					CreatedBy: order.CreatedBy,
				}
				if err := tx.Create(&entry).Error; err != nil {
					return err
				}
			}

			return nil
		})

		if lastErr == nil {
			return nil
		}
		if !isDuplicateKey(lastErr) {
			return lastErr
		}
	}

	return fmt.Errorf("could not allocate a unique order number: %w", lastErr)
}

// GetOrders returns the most recent orders with their line items and product
// snapshots, newest first. A limit of 0 falls back to 50.
func (r *OrdersRepository) GetOrders(limit int) ([]Order, error) {
	if limit <= 0 {
		limit = 50
	}
	var orders []Order
	if err := r.db.
		Preload("Items.Product").
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrdersRepository) GetByID(id uint) (*Order, error) {
	var order Order
	if err := r.db.
		Preload("Items.Product").
		First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrdersRepository) GetByDateRange(start, end time.Time) ([]Order, error) {
	var orders []Order
	if err := r.db.
		Where("created_at >= ? AND created_at <= ?", start, end).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrdersRepository) GetByStatus(status string) ([]Order, error) {
	if !ValidOrderStatus(status) {
		return nil, ErrInvalidOrderStatus
	}
	var orders []Order
	if err := r.db.
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus overwrites the status of an existing order. Every status may
// move to every other status, backward moves included; repeats are no-ops
// apart from the updated timestamp.
func (r *OrdersRepository) UpdateStatus(id uint, status string) (*Order, error) {
	if !ValidOrderStatus(status) {
		return nil, ErrInvalidOrderStatus
	}

	res := r.db.Model(&Order{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrOrderNotFound
	}

	return r.GetByID(id)
}

// Delete removes an order together with its line items. Ledger entries are
// append-only and deliberately survive the order.
func (r *OrdersRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&OrderItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&Order{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrOrderNotFound
		}
		return nil
	})
}
