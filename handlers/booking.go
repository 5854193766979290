package handlers

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ramishrazaza/IndiaTravel/database"
	"github.com/ramishrazaza/IndiaTravel/services"
)

type BookingRequest struct {
	Destination   string              `json:"destination"`
	StartDate     string              `json:"startDate"`
	EndDate       string              `json:"endDate"`
	Travelers     int                 `json:"travelers"`
	Budget        string              `json:"budget"`
	TravelStyle   services.StringList `json:"travelStyle"`
	Accommodation string              `json:"accommodation"`
	Transport     string              `json:"transport"`
	Interests     services.StringList `json:"interests"`
	Name          string              `json:"name"`
	Email         string              `json:"email"`
	Phone         string              `json:"phone"`
	Message       string              `json:"message"`
}

var bookingEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SubmitBooking handles POST /api/bookings, the generic trip lead form.
func (h *Handler) SubmitBooking(c *gin.Context) {
	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	fieldErrors := map[string]string{}
	if strings.TrimSpace(req.Destination) == "" {
		fieldErrors["destination"] = "Destination is required"
	}
	if strings.TrimSpace(req.StartDate) == "" {
		fieldErrors["startDate"] = "Start date is required"
	}
	if strings.TrimSpace(req.EndDate) == "" {
		fieldErrors["endDate"] = "End date is required"
	}
	if req.Travelers <= 0 || req.Travelers > 100 {
		fieldErrors["travelers"] = "Number of travelers must be between 1 and 100"
	}
	if strings.TrimSpace(req.Budget) == "" {
		fieldErrors["budget"] = "Budget is required"
	}
	if strings.TrimSpace(req.Name) == "" {
		fieldErrors["name"] = "Name is required"
	}
	if strings.TrimSpace(req.Phone) == "" {
		fieldErrors["phone"] = "Phone is required"
	}
	if len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Please fill in all required fields",
			"errors":  fieldErrors,
		})
		return
	}

	if req.Email != "" && !bookingEmailPattern.MatchString(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Please enter a valid email address",
		})
		return
	}

	start, err1 := time.Parse("2006-01-02", req.StartDate)
	end, err2 := time.Parse("2006-01-02", req.EndDate)
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Dates must use the YYYY-MM-DD format",
		})
		return
	}
	if !end.After(start) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "End date must be after start date",
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		email = "not-provided@indiatravel.local"
	}

	booking := &database.TripBooking{
		ID:              uuid.New().String(),
		Destination:     strings.TrimSpace(req.Destination),
		TravelMonth:     req.StartDate,
		Travelers:       req.Travelers,
		BudgetRange:     req.Budget,
		TravelStyles:    joinJSON(req.TravelStyle),
		Accommodation:   orDefault(req.Accommodation, "Not specified"),
		Transport:       orDefault(req.Transport, "Not specified"),
		Interests:       joinJSON(req.Interests),
		Name:            strings.TrimSpace(req.Name),
		Email:           email,
		Phone:           strings.TrimSpace(req.Phone),
		SpecialRequests: req.Message,
		Status:          "pending",
		Priority:        "medium",
		Source:          "website",
	}

	if err := database.SaveBooking(booking); err != nil {
		h.log.Error("failed to save trip booking", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to save booking. Please try again.",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   "Thank you! Our travel experts will contact you within 24 hours.",
		"bookingId": booking.ID,
	})
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
