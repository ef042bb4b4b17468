package handlers

import (
	"errors"
	"log"

	"github.com/alphazero-wd/devzone/internal/services"
	"github.com/alphazero-wd/devzone/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

// errorResponse maps service failures onto status codes. Anything outside
// the known set is infrastructure trouble and surfaces as a 500 without
// leaking the cause.
func errorResponse(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidToken),
		errors.Is(err, services.ErrEmailAlreadyExists),
		errors.Is(err, services.ErrAlreadyConfirmed),
		errors.Is(err, services.ErrWrongPassword),
		errors.Is(err, services.ErrNoAvatar):
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrForbidden):
		return utils.ResponseError(ctx, fiber.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		return utils.ResponseError(ctx, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrWrongCredentials):
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	log.Printf("%s %s: %v", ctx.Method(), ctx.Path(), err)
	return utils.ResponseError(ctx, fiber.StatusInternalServerError, "something went wrong")
}
