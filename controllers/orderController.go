package controllers

import (
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/RAMIR007/konfort-total2/middlewares"
	"github.com/RAMIR007/konfort-total2/models"
	"github.com/RAMIR007/konfort-total2/voucher"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// totalTolerance is the largest accepted gap between the client-asserted
// total and the server-side recomputation, the currency's natural precision.
const totalTolerance = 0.01

var (
	ErrNoItems        = errors.New("order must contain at least one item")
	ErrInvalidTotal   = errors.New("order total must be a finite number")
	ErrMissingAddress = errors.New("shipping address is required")
	ErrTotalMismatch  = errors.New("order total does not match the sum of item prices")
)

// StockError rejects a submission whose quantity exceeds what remains in
// the catalog at commit time.
type StockError struct {
	ProductID uint
	Available int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: %d available", e.ProductID, e.Available)
}

// ProductUnavailableError rejects a submission referencing a product the
// catalog does not offer (unknown or deactivated).
type ProductUnavailableError struct {
	ProductID uint
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("product %d is not available", e.ProductID)
}

type OrderItemInput struct {
	ProductID uint    `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type CreateOrderRequest struct {
	Items           []OrderItemInput `json:"items"`
	Total           float64          `json:"total"`
	ShippingAddress string           `json:"shippingAddress"`
	PaymentMethod   string           `json:"paymentMethod"`
	ShippingCost    float64          `json:"shippingCost"`
}

func generateOrderReference() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// SubmitOrder converts a cart snapshot into a durable order. Inside one
// transaction it revalidates stock against the live catalog, decrements
// it, creates the order with its items, and verifies the client total
// against the recomputed sum. Any failure rolls the whole submission
// back, leaving no rows behind.
func SubmitOrder(db *gorm.DB, userID uint, req CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrNoItems
	}
	if math.IsNaN(req.Total) || math.IsInf(req.Total, 0) {
		return nil, ErrInvalidTotal
	}
	if req.ShippingAddress == "" {
		return nil, ErrMissingAddress
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: product %d has quantity %d", ErrNoItems, item.ProductID, item.Quantity)
		}
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "efectivo"
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		var sum float64
		for _, item := range req.Items {
			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &ProductUnavailableError{ProductID: item.ProductID}
				}
				return err
			}
			if !product.IsActive {
				return &ProductUnavailableError{ProductID: item.ProductID}
			}

			// Optimistic check-then-decrement: the guarded update only
			// applies while enough stock remains, so concurrent
			// submissions cannot oversell.
			result := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return &StockError{ProductID: product.ID, Available: product.Stock}
			}

			sum += item.Price * float64(item.Quantity)
		}

		if math.Abs(sum-req.Total) > totalTolerance {
			return ErrTotalMismatch
		}

		order = models.Order{
			UserID:          userID,
			Reference:       generateOrderReference(),
			Total:           req.Total,
			Status:          models.OrderStatusPending,
			PaymentMethod:   paymentMethod,
			ShippingAddress: req.ShippingAddress,
			ShippingCost:    req.ShippingCost,
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for _, item := range req.Items {
			orderItem := models.OrderItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return fmt.Errorf("create order item: %w", err)
			}
		}

		// Re-read the composed order with purchaser and product summaries.
		return tx.Preload("User").Preload("OrderItems.Product").First(&order, order.ID).Error
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func CreateOrder(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := middlewares.CurrentUserID(ctx)
		if !ok {
			sendErrorResponse(ctx, http.StatusUnauthorized, "Authentication required")
			return
		}

		var req CreateOrderRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			log.Println("Bind error:", err)
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
			return
		}

		order, err := SubmitOrder(db, userID, req)
		if err != nil {
			var stockErr *StockError
			var unavailableErr *ProductUnavailableError
			switch {
			case errors.As(err, &stockErr):
				sendJSONResponse(ctx, http.StatusConflict, gin.H{
					"message":   stockErr.Error(),
					"productId": stockErr.ProductID,
					"available": stockErr.Available,
				})
			case errors.As(err, &unavailableErr):
				sendErrorResponse(ctx, http.StatusNotFound, unavailableErr.Error())
			case errors.Is(err, ErrNoItems), errors.Is(err, ErrInvalidTotal),
				errors.Is(err, ErrMissingAddress), errors.Is(err, ErrTotalMismatch):
				sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
			default:
				log.Println("Order submission error:", err)
				sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create order")
			}
			return
		}

		sendJSONResponse(ctx, http.StatusCreated, gin.H{"order": order})
	}
}

// GetOrders lists the caller's own orders; administrators get every order,
// paginated.
func GetOrders(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := middlewares.CurrentUserID(ctx)
		if !ok {
			sendErrorResponse(ctx, http.StatusUnauthorized, "Authentication required")
			return
		}

		query := db.Preload("OrderItems.Product").Preload("User").Order("created_at desc")
		if !middlewares.IsAdmin(ctx) {
			var orders []models.Order
			if result := query.Where("user_id = ?", userID).Find(&orders); result.Error != nil {
				log.Println(result.Error)
				sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch orders")
				return
			}
			sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
			return
		}

		page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
		if page < 1 {
			page = 1
		}
		if limit < 1 {
			limit = 15
		}
		offset := (page - 1) * limit

		var orders []models.Order
		if result := query.Limit(limit).Offset(offset).Find(&orders); result.Error != nil {
			log.Println(result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch orders")
			return
		}

		var count int64
		db.Model(&models.Order{}).Count(&count)
		totalPages := math.Ceil(float64(count) / float64(limit))

		sendJSONResponse(ctx, http.StatusOK, gin.H{
			"orders": orders,
			"metadata": gin.H{
				"total":       count,
				"currentPage": page,
				"limit":       limit,
				"hasPrevPage": page > 1,
				"hasNextPage": int(totalPages) > page,
			},
		})
	}
}

func findOrderForCaller(db *gorm.DB, ctx *gin.Context) (*models.Order, bool) {
	orderID, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return nil, false
	}

	var order models.Order
	result := db.Preload("User").Preload("OrderItems.Product").First(&order, orderID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		} else {
			log.Println(result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch order")
		}
		return nil, false
	}

	userID, _ := middlewares.CurrentUserID(ctx)
	if order.UserID != userID && !middlewares.IsAdmin(ctx) {
		sendErrorResponse(ctx, http.StatusForbidden, "You can only access your own orders")
		return nil, false
	}

	return &order, true
}

func GetOrderByID(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		order, ok := findOrderForCaller(db, ctx)
		if !ok {
			return
		}
		sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
	}
}

// DownloadVoucher regenerates the payment voucher PDF for an order. The
// document is rebuilt from the persisted snapshot, so it always matches
// the one produced at checkout.
func DownloadVoucher(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		order, ok := findOrderForCaller(db, ctx)
		if !ok {
			return
		}

		doc := voucher.BuildDocument(*order, order.User.Summary())
		pdf, err := voucher.RenderPDF(doc)
		if err != nil {
			log.Println("Voucher rendering error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to generate voucher")
			return
		}

		filename := fmt.Sprintf("vale-pago-%d.pdf", order.ID)
		ctx.Header("Content-Disposition", "attachment; filename="+filename)
		ctx.Data(http.StatusOK, "application/pdf", pdf)
	}
}

// UpdateOrderStatus moves an order through its lifecycle. Only admitted
// transitions apply: the linear progression plus cancellation from any
// non-terminal state.
func UpdateOrderStatus(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var body struct {
			Status string `json:"status" binding:"required"`
		}
		if err := ctx.ShouldBindJSON(&body); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
			return
		}

		newStatus, err := models.ParseOrderStatus(body.Status)
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
			return
		}

		orderID, err := strconv.Atoi(ctx.Param("orderId"))
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
			return
		}

		var order models.Order
		if result := db.First(&order, orderID); result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
			} else {
				log.Println(result.Error)
				sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch order")
			}
			return
		}

		if !models.CanTransition(order.Status, newStatus) {
			sendJSONResponse(ctx, http.StatusConflict, gin.H{
				"message": fmt.Sprintf("cannot move order from %s to %s", order.Status, newStatus),
			})
			return
		}

		if result := db.Model(&order).Update("status", newStatus); result.Error != nil {
			log.Println(result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update order status")
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order status updated successfully", "status": newStatus})
	}
}
