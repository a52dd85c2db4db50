package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func lowStockHandler(svc inventoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		locationID := c.Query("locationId")
		if locationID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "locationId required"})
			return
		}
		variants, err := svc.ListLowStock(c.Request.Context(), locationID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"variants": variants})
	}
}

type adjustRequest struct {
	LocationID string `json:"locationId" binding:"required"`
	Delta      int    `json:"delta" binding:"required"`
}

func adjustInventoryHandler(svc inventoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := identityFrom(c)

		var req adjustRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		quantity, err := svc.Adjust(c.Request.Context(), c.Param("variantId"), req.LocationID, req.Delta, id.Actor)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"quantity": quantity})
	}
}
