package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func getCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := identityFrom(c)
		if id.CustomerID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing " + headerCustomerID + " header"})
			return
		}
		locationID := c.Query("locationId")
		if locationID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "locationId required"})
			return
		}
		cart, err := svc.Get(c.Request.Context(), id.TenantID, id.CustomerID, locationID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

type addCartItemRequest struct {
	LocationID string `json:"locationId" binding:"required"`
	VariantID  string `json:"variantId" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required"`
}

func addCartItemHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := identityFrom(c)
		if id.CustomerID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing " + headerCustomerID + " header"})
			return
		}

		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		cart, err := svc.AddItem(c.Request.Context(), id.TenantID, id.CustomerID, req.LocationID, req.VariantID, req.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}
