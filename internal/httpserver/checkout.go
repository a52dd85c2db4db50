package httpserver

import (
	"net/http"

	"greenleaf-commerce/internal/domain"
	"greenleaf-commerce/internal/service/checkout"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type checkoutRequest struct {
	LocationID      string  `json:"locationId" binding:"required"`
	FulfillmentType string  `json:"fulfillmentType" binding:"required"`
	ContactName     string  `json:"contactName"`
	ContactEmail    string  `json:"contactEmail"`
	ContactPhone    string  `json:"contactPhone"`
	DeliveryAddress string  `json:"deliveryAddress"`
	Discount        *string `json:"discount"`
}

func checkoutHandler(svc checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := identityFrom(c)
		if id.CustomerID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing " + headerCustomerID + " header"})
			return
		}

		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		discount := decimal.Zero
		if req.Discount != nil {
			var err error
			discount, err = decimal.NewFromString(*req.Discount)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "discount: invalid amount"})
				return
			}
		}

		order, err := svc.Checkout(c.Request.Context(), id.TenantID, id.CustomerID, checkout.Input{
			LocationID:      req.LocationID,
			FulfillmentType: domain.FulfillmentType(req.FulfillmentType),
			ContactName:     req.ContactName,
			ContactEmail:    req.ContactEmail,
			ContactPhone:    req.ContactPhone,
			DeliveryAddress: req.DeliveryAddress,
			Discount:        discount,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, order)
	}
}
