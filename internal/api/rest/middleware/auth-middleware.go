package middleware

import (
	"strings"

	"github.com/alphazero-wd/devzone/internal/domain"
	"github.com/alphazero-wd/devzone/internal/helper"
	"github.com/alphazero-wd/devzone/internal/repository"
	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware verifies the session JWT (cookie first, Authorization
// header as fallback) and loads the user row into ctx.Locals("user").
func AuthMiddleware(auth helper.Auth, users repository.UserRepository) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := strings.TrimSpace(ctx.Cookies("access_token"))
		if tokenStr == "" {
			tokenStr = strings.TrimSpace(ctx.Get("Authorization"))
		}

		claims, err := auth.VerifyToken(tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		user, err := users.FindUserByID(ctx.Context(), claims.UserID)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		ctx.Locals("user", user)
		return ctx.Next()
	}
}

// ConfirmedOnly rejects users that have not confirmed their signup email.
// Runs after AuthMiddleware.
func ConfirmedOnly() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := CurrentUser(ctx)
		if user == nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}
		if !user.Confirmed() {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "please confirm your email first",
			})
		}
		return ctx.Next()
	}
}

// CurrentUser returns the user loaded by AuthMiddleware, or nil.
func CurrentUser(ctx *fiber.Ctx) *domain.User {
	user, ok := ctx.Locals("user").(*domain.User)
	if !ok {
		return nil
	}
	return user
}
