package handlers

import (
	"time"

	"github.com/alphazero-wd/devzone/internal/api/rest/middleware"
	"github.com/alphazero-wd/devzone/internal/dto"
	"github.com/alphazero-wd/devzone/internal/helper"
	"github.com/alphazero-wd/devzone/internal/services"
	"github.com/alphazero-wd/devzone/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

const accessTokenCookie = "access_token"

type AuthHandler struct {
	svc  services.AuthService
	auth helper.Auth
}

func NewAuthHandler(svc services.AuthService, auth helper.Auth) *AuthHandler {
	return &AuthHandler{svc: svc, auth: auth}
}

func (h *AuthHandler) SetupRoutes(app *fiber.App, authMw fiber.Handler) {
	grp := app.Group("/auth")

	grp.Post("/signup", h.Signup)
	grp.Post("/login", h.Login)
	grp.Post("/forgot-password", h.ForgotPassword)
	grp.Post("/reset-password", h.ResetPassword)

	grp.Post("/logout", authMw, h.Logout)
	grp.Get("/me", authMw, h.Me)
	grp.Post("/confirm-email", authMw, h.ConfirmEmail)
	grp.Post("/resend-confirmation", authMw, h.ResendConfirmation)
}

func (h *AuthHandler) Signup(ctx *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}
	if req.Name == "" || req.Email == "" || len(req.Password) < 6 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	user, err := h.svc.Register(ctx.Context(), req)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, user)
}

func (h *AuthHandler) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and password are required")
	}

	user, err := h.svc.Login(ctx.Context(), req.Email, req.Password)
	if err != nil {
		return errorResponse(ctx, err)
	}

	token, err := h.auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		return errorResponse(ctx, err)
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     accessTokenCookie,
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return utils.ResponseSuccess(ctx, fiber.StatusOK, user)
}

func (h *AuthHandler) Logout(ctx *fiber.Ctx) error {
	clearSessionCookie(ctx)
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (h *AuthHandler) Me(ctx *fiber.Ctx) error {
	user := middleware.CurrentUser(ctx)
	return utils.ResponseSuccess(ctx, fiber.StatusOK, user)
}

func (h *AuthHandler) ConfirmEmail(ctx *fiber.Ctx) error {
	user := middleware.CurrentUser(ctx)
	// precondition enforced here, not in the service
	if user.Confirmed() {
		return errorResponse(ctx, services.ErrAlreadyConfirmed)
	}

	var req dto.ConfirmEmailRequest
	if err := ctx.BodyParser(&req); err != nil || req.Token == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide a valid token")
	}

	if err := h.svc.ConfirmEmail(ctx.Context(), user.ID, req.Token); err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (h *AuthHandler) ResendConfirmation(ctx *fiber.Ctx) error {
	user := middleware.CurrentUser(ctx)
	if user.Confirmed() {
		return errorResponse(ctx, services.ErrAlreadyConfirmed)
	}

	if err := h.svc.SendConfirmationEmail(ctx.Context(), user); err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (h *AuthHandler) ForgotPassword(ctx *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := ctx.BodyParser(&req); err != nil || req.Email == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide a valid email")
	}

	if err := h.svc.ForgotPassword(ctx.Context(), req.Email); err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (h *AuthHandler) ResetPassword(ctx *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := ctx.BodyParser(&req); err != nil || req.Token == "" || len(req.Password) < 6 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	if err := h.svc.ResetPassword(ctx.Context(), req.Token, req.Password); err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func clearSessionCookie(ctx *fiber.Ctx) {
	ctx.Cookie(&fiber.Cookie{
		Name:     accessTokenCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
