package handlers

import (
	"log"

	domainerrors "finances/internal/errors"
	"finances/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

var statusByCode = map[string]int{
	domainerrors.CodeInvalidRequest:     fiber.StatusBadRequest,
	domainerrors.CodeInvalidAmount:      fiber.StatusBadRequest,
	domainerrors.CodeInvalidKind:        fiber.StatusBadRequest,
	domainerrors.CodeSelfTransfer:       fiber.StatusBadRequest,
	domainerrors.CodeUnauthorized:       fiber.StatusUnauthorized,
	domainerrors.CodeNotFound:           fiber.StatusNotFound,
	domainerrors.CodeDuplicateLogin:     fiber.StatusConflict,
	domainerrors.CodeInsufficientFunds:  fiber.StatusUnprocessableEntity,
	domainerrors.CodeBudgetExceeded:     fiber.StatusUnprocessableEntity,
	domainerrors.CodeStorageUnavailable: fiber.StatusServiceUnavailable,
}

// StatusFor maps an error code to its HTTP status.
func StatusFor(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return fiber.StatusInternalServerError
}

// handleError writes err as a JSON error response. Storage failures are
// reported without their cause.
func handleError(c *fiber.Ctx, err error) error {
	code := domainerrors.Code(err)
	status := StatusFor(code)

	switch {
	case code == domainerrors.CodeStorageUnavailable:
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
		return response.ErrorWithCode(c, status, code, "storage unavailable, try again later")
	case status == fiber.StatusInternalServerError:
		log.Printf("%s %s: unexpected error: %v", c.Method(), c.Path(), err)
		return response.ServerError(c, "internal server error")
	}
	return response.ErrorWithCode(c, status, code, err.Error())
}

func invalidBody(c *fiber.Ctx) error {
	return response.ErrorWithCode(c, fiber.StatusBadRequest, domainerrors.CodeInvalidRequest, "invalid request body")
}
