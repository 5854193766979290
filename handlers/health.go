package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ramishrazaza/IndiaTravel/database"
)

func (h *Handler) Health(c *gin.Context) {
	dbStatus := "ok"
	if database.DB == nil {
		dbStatus = "not initialized"
	} else if err := database.DB.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"service":  "IndiaTravel API",
		"database": dbStatus,
	})
}
