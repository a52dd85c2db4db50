package httpserver

import (
	"errors"
	"net/http"

	"greenleaf-commerce/internal/domain"
	"github.com/gin-gonic/gin"
)

// respondError maps domain errors onto HTTP statuses. Validation and
// compliance denials carry enough detail to correct and retry; unexpected
// failures are presented generically.
func respondError(c *gin.Context, err error) {
	var validationErr *domain.ValidationError
	var complianceErr *domain.ComplianceError
	var transitionErr *domain.InvalidTransitionError

	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &complianceErr):
		c.JSON(http.StatusForbidden, gin.H{
			"error": complianceErr.Reason,
			"code":  complianceErr.Code,
		})
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusConflict, gin.H{
			"error": transitionErr.Error(),
			"from":  transitionErr.From,
			"to":    transitionErr.To,
		})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected error, please retry"})
	}
}
