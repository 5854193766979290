package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ramishrazaza/IndiaTravel/database"
	"github.com/ramishrazaza/IndiaTravel/services"
)

// GetPlan handles GET /api/plans/:id.
func (h *Handler) GetPlan(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing plan ID"})
		return
	}

	record, err := database.GetAIPlan(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Plan not found"})
		return
	}

	plan, err := planFromRecord(record)
	if err != nil {
		h.log.Error("stored plan is corrupt", zap.String("plan_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load plan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "plan": plan, "source": record.PlanSource})
}

// DownloadPlanPDF handles GET /api/plans/:id/pdf. The document is rendered on
// demand from the stored plan record.
func (h *Handler) DownloadPlanPDF(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing plan ID"})
		return
	}

	record, err := database.GetAIPlan(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Plan not found"})
		return
	}

	plan, err := planFromRecord(record)
	if err != nil {
		h.log.Error("stored plan is corrupt", zap.String("plan_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load plan"})
		return
	}

	pdfBytes, err := services.GeneratePDFBytes(services.PDFData{
		TravelerName: record.Name,
		Plan:         plan,
		GeneratedAt:  record.CreatedAt,
	})
	if err != nil {
		h.log.Error("PDF generation failed", zap.String("plan_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate PDF"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=indiatravel-itinerary.pdf")
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// planFromRecord rebuilds the canonical plan shape from its stored columns.
func planFromRecord(record *database.AIPlan) (*services.ItineraryPlan, error) {
	plan := &services.ItineraryPlan{
		Destination:    record.Destination,
		Days:           record.Days,
		Month:          record.Month,
		BudgetEstimate: record.BudgetEstimate,
		HotelType:      record.HotelType,
		WhatsAppLink:   record.WhatsAppLink,
		Source:         services.PlanSource(record.PlanSource),
	}
	if record.ItineraryJSON != "" {
		if err := json.Unmarshal([]byte(record.ItineraryJSON), &plan.Itinerary); err != nil {
			return nil, err
		}
	}
	if record.HighlightsJSON != "" {
		if err := json.Unmarshal([]byte(record.HighlightsJSON), &plan.Highlights); err != nil {
			return nil, err
		}
	}
	if record.TipsJSON != "" {
		if err := json.Unmarshal([]byte(record.TipsJSON), &plan.Tips); err != nil {
			return nil, err
		}
	}
	return plan, nil
}
