package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DailyStats is the revenue summary for one calendar day of paid orders.
type DailyStats struct {
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalOrders       int64           `json:"totalOrders"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
}

// TopProduct pairs a product with its sold quantity and revenue over a range.
type TopProduct struct {
	Product      Product         `json:"product"`
	SoldQuantity int64           `json:"soldQuantity"`
	Revenue      decimal.Decimal `json:"revenue"`
}

type AnalyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{
		db: db,
	}
}

// DayBounds returns the inclusive start and end of t's local calendar day.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)
	return start, end
}

// GetDailyStats aggregates paid orders created within date's local day.
// The average is computed in SQL with a COALESCE guard, so a day without a
// single paid order yields zeros rather than a division error.
func (r *AnalyticsRepository) GetDailyStats(date time.Time) (*DailyStats, error) {
	start, end := DayBounds(date)

	var stats DailyStats
	err := r.db.Model(&Order{}).
		Select(
			"COALESCE(SUM(total), 0) AS total_revenue",
			"COUNT(id) AS total_orders",
			"COALESCE(AVG(total), 0) AS average_order_value",
		).
		Where("created_at >= ? AND created_at <= ?", start, end).
		Where("payment_status = ?", PaymentStatusPaid).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetTopProducts ranks products by summed line-item quantity over the given
// range, highest first, ties broken by ascending product id. A zero end date
// with a set start date narrows the range to that start date's day; two zero
// dates mean all time. Revenue is the sum of the line items' total prices.
func (r *AnalyticsRepository) GetTopProducts(limit int, startDate, endDate time.Time) ([]TopProduct, error) {
	if limit <= 0 {
		limit = 5
	}

	query := r.db.Model(&OrderItem{}).
		Select(
			"order_items.product_id AS product_id",
			"SUM(order_items.quantity) AS sold_quantity",
			"SUM(order_items.total_price) AS revenue",
		).
		Joins("INNER JOIN orders ON orders.id = order_items.order_id")

	switch {
	case !startDate.IsZero() && !endDate.IsZero():
		query = query.Where("orders.created_at >= ? AND orders.created_at <= ?", startDate, endDate)
	case !startDate.IsZero():
		start, end := DayBounds(startDate)
		query = query.Where("orders.created_at >= ? AND orders.created_at <= ?", start, end)
	}

	var rows []struct {
		ProductID    uint
		SoldQuantity int64
		Revenue      decimal.Decimal
	}
	err := query.
		Group("order_items.product_id").
		Order("SUM(order_items.quantity) DESC, order_items.product_id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	top := make([]TopProduct, 0, len(rows))
	for _, row := range rows {
		var product Product
		if err := r.db.First(&product, row.ProductID).Error; err != nil {
			return nil, err
		}
		top = append(top, TopProduct{
			Product:      product,
			SoldQuantity: row.SoldQuantity,
			Revenue:      row.Revenue,
		})
	}
	return top, nil
}
