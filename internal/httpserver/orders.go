package httpserver

import (
	"net/http"

	"greenleaf-commerce/internal/domain"
	"github.com/gin-gonic/gin"
)

func getOrderHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := identityFrom(c)
		order, err := svc.Get(c.Request.Context(), id.TenantID, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func listOrdersHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := identityFrom(c)
		ctx := c.Request.Context()

		if locationID := c.Query("locationId"); locationID != "" {
			orders, err := svc.ListByLocation(ctx, id.TenantID, locationID)
			if err != nil {
				respondError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"orders": orders})
			return
		}

		customerID := c.Query("customerId")
		if customerID == "" {
			customerID = id.CustomerID
		}
		if customerID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "customerId or locationId required"})
			return
		}
		orders, err := svc.ListByCustomer(ctx, id.TenantID, customerID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

func updateOrderStatusHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := identityFrom(c)

		var req updateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := svc.UpdateStatus(c.Request.Context(), id.TenantID, c.Param("id"),
			domain.OrderStatus(req.Status), id.Actor, req.Note)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
