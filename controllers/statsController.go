package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/RAMIR007/konfort-total2/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type topProduct struct {
	ProductID uint   `json:"productId"`
	Name      string `json:"name"`
	TotalSold int    `json:"totalSold"`
}

type monthlySales struct {
	Month   time.Time `json:"month"`
	Revenue float64   `json:"revenue"`
	Orders  int       `json:"orders"`
}

// totalRevenue sums order totals over non-cancelled orders.
func totalRevenue(db *gorm.DB) (float64, error) {
	var revenue float64
	err := db.Model(&models.Order{}).
		Where("status != ?", models.OrderStatusCancelled).
		Select("COALESCE(SUM(total), 0)").
		Scan(&revenue).Error
	return revenue, err
}

// productCosts sums quantity * costPrice over items of non-cancelled orders.
func productCosts(db *gorm.DB) (float64, error) {
	var costs float64
	err := db.Model(&models.OrderItem{}).
		Joins("JOIN products ON products.id = order_items.product_id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status != ?", models.OrderStatusCancelled).
		Select("COALESCE(SUM(order_items.quantity * COALESCE(products.cost_price, 0)), 0)").
		Scan(&costs).Error
	return costs, err
}

func shippingCosts(db *gorm.DB) (float64, error) {
	var shipping float64
	err := db.Model(&models.Order{}).
		Where("status != ?", models.OrderStatusCancelled).
		Select("COALESCE(SUM(shipping_cost), 0)").
		Scan(&shipping).Error
	return shipping, err
}

// topSellingProducts returns the best sellers by units sold.
func topSellingProducts(db *gorm.DB, limit int) ([]topProduct, error) {
	var top []topProduct
	err := db.Model(&models.OrderItem{}).
		Joins("JOIN products ON products.id = order_items.product_id").
		Select("order_items.product_id AS product_id, products.name AS name, SUM(order_items.quantity) AS total_sold").
		Group("order_items.product_id, products.name").
		Order("total_sold DESC").
		Limit(limit).
		Scan(&top).Error
	return top, err
}

// salesByMonth aggregates revenue and order count per month over the last
// twelve months. Postgres-specific SQL, matching the reporting database.
func salesByMonth(db *gorm.DB) ([]monthlySales, error) {
	var sales []monthlySales
	err := db.Raw(`
		SELECT
			DATE_TRUNC('month', created_at) AS month,
			SUM(total) AS revenue,
			COUNT(*) AS orders
		FROM orders
		WHERE status != ?
			AND created_at >= NOW() - INTERVAL '12 months'
			AND deleted_at IS NULL
		GROUP BY DATE_TRUNC('month', created_at)
		ORDER BY month DESC`, models.OrderStatusCancelled).
		Scan(&sales).Error
	return sales, err
}

// GetAdminStats assembles the dashboard figures: revenue, costs, profit,
// order count, top sellers and monthly sales.
func GetAdminStats(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		revenue, err := totalRevenue(db)
		if err != nil {
			log.Println("Revenue query error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to compute statistics")
			return
		}

		costs, err := productCosts(db)
		if err != nil {
			log.Println("Costs query error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to compute statistics")
			return
		}

		shipping, err := shippingCosts(db)
		if err != nil {
			log.Println("Shipping query error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to compute statistics")
			return
		}

		var totalOrders int64
		if result := db.Model(&models.Order{}).Count(&totalOrders); result.Error != nil {
			log.Println("Order count error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to compute statistics")
			return
		}

		top, err := topSellingProducts(db, 5)
		if err != nil {
			log.Println("Top products error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to compute statistics")
			return
		}

		sales, err := salesByMonth(db)
		if err != nil {
			log.Println("Monthly sales error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to compute statistics")
			return
		}

		totalCosts := costs + shipping
		sendJSONResponse(ctx, http.StatusOK, gin.H{
			"totalRevenue":       revenue,
			"totalCosts":         totalCosts,
			"totalProfit":        revenue - totalCosts,
			"totalShippingCosts": shipping,
			"totalOrders":        totalOrders,
			"topProducts":        top,
			"salesByMonth":       sales,
		})
	}
}
