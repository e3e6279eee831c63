package handlers

import (
	"finances/internal/models"
	"finances/internal/services/user"
	"finances/internal/utils/response"
	"finances/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	service user.Service
}

func NewUserHandler(s user.Service) *UserHandler { return &UserHandler{service: s} }

// Register handles POST /api/register.
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var input models.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}
	if err := validation.CreateUser(&input); err != nil {
		return handleError(c, err)
	}

	u, err := h.service.Register(c.UserContext(), &input)
	if err != nil {
		return handleError(c, err)
	}

	return response.Created(c, "user registered", fiber.Map{
		"user_id": u.ID,
		"login":   u.Login,
	})
}
