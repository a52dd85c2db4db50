package httpserver

import (
	"net/http"
	"time"

	"greenleaf-commerce/internal/domain"
	"github.com/gin-gonic/gin"
)

func getDeliveryHandler(svc deliveryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := svc.Get(c.Request.Context(), c.Param("orderId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	}
}

type updateDeliveryRequest struct {
	Status     string     `json:"status" binding:"required"`
	DriverName string     `json:"driverName"`
	ETA        *time.Time `json:"eta"`
}

func updateDeliveryStatusHandler(svc deliveryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateDeliveryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		d, err := svc.UpdateStatus(c.Request.Context(), c.Param("orderId"),
			domain.DeliveryStatus(req.Status), req.DriverName, req.ETA)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	}
}
