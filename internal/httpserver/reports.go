package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func parseReportDate(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now().UTC(), true
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return time.Time{}, false
	}
	return date, true
}

func generateDailyReportHandler(svc complianceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := identityFrom(c)
		locationID := c.Query("locationId")
		if locationID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "locationId required"})
			return
		}
		date, ok := parseReportDate(c)
		if !ok {
			return
		}
		report, err := svc.GenerateDailyReport(c.Request.Context(), id.TenantID, locationID, date)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

func getDailyReportHandler(svc complianceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		locationID := c.Query("locationId")
		if locationID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "locationId required"})
			return
		}
		date, ok := parseReportDate(c)
		if !ok {
			return
		}
		report, err := svc.GetDailyReport(c.Request.Context(), locationID, date)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}
