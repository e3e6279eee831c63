package handlers

import (
	"finances/internal/middleware"
	"finances/internal/models"
	"finances/internal/services/transfer"
	"finances/internal/utils/response"
	"finances/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// TransferHandler exposes P2P transfer endpoints.
type TransferHandler struct {
	service transfer.Service
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(s transfer.Service) *TransferHandler { return &TransferHandler{service: s} }

// Transfer handles POST /api/transfer requests.
func (h *TransferHandler) Transfer(c *fiber.Ctx) error {
	var input models.TransferInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}
	if err := validation.Transfer(&input); err != nil {
		return handleError(c, err)
	}

	result, err := h.service.Transfer(c.UserContext(), middleware.CurrentUser(c), input.ToLogin, *input.Amount)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "transfer completed", result)
}
