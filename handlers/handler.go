package handlers

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/ramishrazaza/IndiaTravel/services"
)

// Handler carries the dependencies shared by all HTTP handlers.
type Handler struct {
	planner *services.Planner
	log     *zap.Logger
}

func New(planner *services.Planner, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{planner: planner, log: log}
}

func joinJSON(list services.StringList) string {
	b, _ := json.Marshal([]string(list))
	return string(b)
}
