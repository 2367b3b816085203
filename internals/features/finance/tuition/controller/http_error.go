// file: internals/features/finance/tuition/controller/http_error.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"lesgo_backend/internals/features/finance/tuition/service"
	helper "lesgo_backend/internals/helpers"
)

/* =======================================================
   Mapping error service → HTTP:
   - not found           → 404
   - validation sentinel → 422
   - state-conflict      → 409 (jangan retry verbatim)
   - sisanya             → 500
======================================================= */

func httpError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrPeriodNotFound),
		errors.Is(err, service.ErrWalletNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrAmountNotPositive),
		errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, service.ErrEmptyOrder),
		errors.Is(err, service.ErrNegativeAmount),
		errors.Is(err, service.ErrInvalidPaymentMethod):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	case isItemNotFound(err):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	case service.IsStateConflict(err):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
}

func isItemNotFound(err error) bool {
	var e *service.ItemNotFoundError
	return errors.As(err, &e)
}

// validationErrors meratakan error validator jadi map field → messages.
func validationErrors(err error) map[string][]string {
	out := map[string][]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			out[fe.Field()] = append(out[fe.Field()], fe.Tag())
		}
	} else if err != nil {
		out["_"] = append(out["_"], err.Error())
	}
	return out
}
