package httpserver

import (
	"context"
	"net/http"
	"time"

	"greenleaf-commerce/internal/domain"
	"greenleaf-commerce/internal/service/checkout"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Identity headers supplied by the authentication layer in front of this
// service.
const (
	headerTenantID   = "X-Tenant-ID"
	headerCustomerID = "X-Customer-ID"
	headerActor      = "X-Actor"
)

// Deps carries the services the handlers depend on.
type Deps struct {
	CartSvc       cartService
	CheckoutSvc   checkoutService
	OrderSvc      orderService
	DeliverySvc   deliveryService
	InventorySvc  inventoryService
	ComplianceSvc complianceService
}

type cartService interface {
	AddItem(ctx context.Context, tenantID, customerID, locationID, variantID string, quantity int) (*domain.Cart, error)
	Get(ctx context.Context, tenantID, customerID, locationID string) (*domain.Cart, error)
}

type checkoutService interface {
	Checkout(ctx context.Context, tenantID, customerID string, in checkout.Input) (*domain.Order, error)
}

type orderService interface {
	Get(ctx context.Context, tenantID, orderID string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, tenantID, orderID string, newStatus domain.OrderStatus, actor, note string) (*domain.Order, error)
	ListByCustomer(ctx context.Context, tenantID, customerID string) ([]domain.Order, error)
	ListByLocation(ctx context.Context, tenantID, locationID string) ([]domain.Order, error)
}

type deliveryService interface {
	Get(ctx context.Context, orderID string) (*domain.Delivery, error)
	UpdateStatus(ctx context.Context, orderID string, newStatus domain.DeliveryStatus, driverName string, eta *time.Time) (*domain.Delivery, error)
}

type inventoryService interface {
	Adjust(ctx context.Context, variantID, locationID string, delta int, actor string) (int, error)
	ListLowStock(ctx context.Context, locationID string) ([]domain.LowStockVariant, error)
}

type complianceService interface {
	GenerateDailyReport(ctx context.Context, tenantID, locationID string, date time.Time) (*domain.DailyReport, error)
	GetDailyReport(ctx context.Context, locationID string, date time.Time) (*domain.DailyReport, error)
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger), cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")
	api.Use(identityMiddleware())
	{
		api.GET("/cart", getCartHandler(deps.CartSvc))
		api.POST("/cart/items", addCartItemHandler(deps.CartSvc))
		api.POST("/checkout", checkoutHandler(deps.CheckoutSvc))
		api.GET("/orders", listOrdersHandler(deps.OrderSvc))
		api.GET("/orders/:id", getOrderHandler(deps.OrderSvc))
		api.PATCH("/orders/:id/status", updateOrderStatusHandler(deps.OrderSvc))
		api.GET("/deliveries/:orderId", getDeliveryHandler(deps.DeliverySvc))
		api.PATCH("/deliveries/:orderId/status", updateDeliveryStatusHandler(deps.DeliverySvc))
		api.GET("/inventory/low-stock", lowStockHandler(deps.InventorySvc))
		api.POST("/inventory/:variantId/adjust", adjustInventoryHandler(deps.InventorySvc))
		api.POST("/reports/daily", generateDailyReportHandler(deps.ComplianceSvc))
		api.GET("/reports/daily", getDailyReportHandler(deps.ComplianceSvc))
	}

	return router
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
		logger.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

type identityKey struct{}

type identity struct {
	TenantID   string
	CustomerID string
	Actor      string
}

// identityMiddleware requires the tenant header and stashes the caller
// identity supplied by the upstream auth layer.
func identityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := identity{
			TenantID:   c.GetHeader(headerTenantID),
			CustomerID: c.GetHeader(headerCustomerID),
			Actor:      c.GetHeader(headerActor),
		}
		if id.TenantID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing " + headerTenantID + " header"})
			return
		}
		if id.Actor == "" {
			id.Actor = id.CustomerID
		}
		ctx := context.WithValue(c.Request.Context(), identityKey{}, id)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func identityFrom(c *gin.Context) identity {
	id, _ := c.Request.Context().Value(identityKey{}).(identity)
	return id
}
