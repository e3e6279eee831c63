package handlers

import (
	"finances/internal/middleware"
	"finances/internal/services/stats"
	"finances/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type StatsHandler struct {
	service stats.Service
}

func NewStatsHandler(s stats.Service) *StatsHandler { return &StatsHandler{service: s} }

// GetStats handles GET /api/stats.
func (h *StatsHandler) GetStats(c *fiber.Ctx) error {
	view, err := h.service.GetStats(c.UserContext(), middleware.CurrentUser(c))
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "stats", view)
}
