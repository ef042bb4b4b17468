package handlers

import (
	"strings"

	"github.com/alphazero-wd/devzone/internal/api/rest/middleware"
	"github.com/alphazero-wd/devzone/internal/domain"
	"github.com/alphazero-wd/devzone/internal/dto"
	"github.com/alphazero-wd/devzone/internal/services"
	"github.com/alphazero-wd/devzone/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

const maxAvatarFileSize = 2 * 1024 * 1024 // 2MB

type SettingsHandler struct {
	svc services.SettingsService
}

func NewSettingsHandler(svc services.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

func (h *SettingsHandler) SetupRoutes(app *fiber.App, authMw fiber.Handler) {
	grp := app.Group("/settings", authMw)

	grp.Patch("/profile/name", h.UpdateName)
	grp.Patch("/account/password", h.UpdatePassword)
	grp.Delete("/account/delete", h.DeleteAccount)

	grp.Patch("/account/email", h.ChangeEmail)
	grp.Post("/account/email/confirm-change", h.ConfirmEmailChange)

	// avatars require a confirmed account
	grp.Patch("/profile/avatar", middleware.ConfirmedOnly(), h.UploadAvatar)
	grp.Delete("/profile/avatar/remove", middleware.ConfirmedOnly(), h.RemoveAvatar)
}

func (h *SettingsHandler) UpdateName(ctx *fiber.Ctx) error {
	user := middleware.CurrentUser(ctx)

	var req dto.UpdateNameRequest
	if err := ctx.BodyParser(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide a valid name")
	}

	if _, err := h.svc.UpdateName(ctx.Context(), user.ID, req.Name); err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (h *SettingsHandler) UpdatePassword(ctx *fiber.Ctx) error {
	user := middleware.CurrentUser(ctx)

	var req dto.UpdatePasswordRequest
	if err := ctx.BodyParser(&req); err != nil || req.Password == "" || len(req.NewPassword) < 6 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	if err := h.svc.UpdatePassword(ctx.Context(), user, req.Password, req.NewPassword); err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (h *SettingsHandler) DeleteAccount(ctx *fiber.Ctx) error {
	user := middleware.CurrentUser(ctx)

	var req dto.DeleteAccountRequest
	if err := ctx.BodyParser(&req); err != nil || req.Password == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide your password")
	}

	if err := h.svc.DeleteAccount(ctx.Context(), user, req.Password); err != nil {
		return errorResponse(ctx, err)
	}

	clearSessionCookie(ctx)
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (h *SettingsHandler) ChangeEmail(ctx *fiber.Ctx) error {
	user := middleware.CurrentUser(ctx)

	var req dto.UpdateEmailRequest
	if err := ctx.BodyParser(&req); err != nil || req.Email == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide a valid email")
	}

	if err := h.svc.InitEmailChange(ctx.Context(), user, req.Email); err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (h *SettingsHandler) ConfirmEmailChange(ctx *fiber.Ctx) error {
	user := middleware.CurrentUser(ctx)

	var req dto.ConfirmEmailChangeRequest
	if err := ctx.BodyParser(&req); err != nil || req.Token == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide a valid token")
	}

	side, err := domain.ParseEmailSide(req.EmailType)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.svc.ConfirmEmailChange(ctx.Context(), user, req.Token, side)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, result)
}

func (h *SettingsHandler) UploadAvatar(ctx *fiber.Ctx) error {
	user := middleware.CurrentUser(ctx)

	fileHeader, err := ctx.FormFile("avatar")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide an avatar file")
	}
	if fileHeader.Size > maxAvatarFileSize {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Avatar must be at most 2MB")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	switch contentType {
	case "image/jpeg", "image/jpg", "image/png":
	default:
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Avatar must be a jpeg or png image")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return errorResponse(ctx, err)
	}
	defer f.Close()

	data, err := utils.ReadAllLimit(f, maxAvatarFileSize)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Avatar must be at most 2MB")
	}

	if err := h.svc.UpdateAvatar(ctx.Context(), user, data); err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (h *SettingsHandler) RemoveAvatar(ctx *fiber.Ctx) error {
	user := middleware.CurrentUser(ctx)

	if err := h.svc.DeleteAvatar(ctx.Context(), user); err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}
