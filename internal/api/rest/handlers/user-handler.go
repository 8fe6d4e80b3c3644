package handlers

import (
	"github.com/ayonpaul8906/trustbridge-new/internal/api/rest/middleware"
	"github.com/ayonpaul8906/trustbridge-new/internal/dto"
	"github.com/ayonpaul8906/trustbridge-new/internal/helper"
	"github.com/ayonpaul8906/trustbridge-new/internal/helper/utils"
	"github.com/ayonpaul8906/trustbridge-new/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	svc  services.UserService
	auth helper.Auth
}

func NewUserHandler(svc services.UserService, auth helper.Auth) *UserHandler {
	return &UserHandler{svc: svc, auth: auth}
}

func (h *UserHandler) SetupRoutes(app *fiber.App) {
	user := app.Group("/api/user")

	user.Post("/login", h.Login)

	authed := user.Group("", middleware.AuthMiddleware(h.auth))
	authed.Get("/me", h.Me)
	authed.Get("/profile", h.GetProfile)
	authed.Put("/profile", h.UpdateProfile)
}

func (h *UserHandler) Login(ctx *fiber.Ctx) error {
	var requestBody dto.UserLogin
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and password are required")
	}

	user, err := h.svc.Login(requestBody)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "invalid email or password")
	}

	token, err := h.auth.GenerateToken(int(user.ID), user.Email, user.Role)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "could not generate token")
	}

	res := dto.LoginResponse{Token: token}
	if profile, perr := h.svc.GetProfile(user.ID); perr == nil {
		res.User = *profile
	} else {
		// account without a profile (partial registration) can still log in
		res.User = dto.UserProfileResponse{
			UserID: user.ID,
			Email:  user.Email,
			Role:   user.Role,
		}
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, res)
}

func (h *UserHandler) Me(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, claims)
}

func (h *UserHandler) GetProfile(ctx *fiber.Ctx) error {
	userID, ok := ctx.Locals("userID").(uint)
	if !ok || userID == 0 {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	profile, err := h.svc.GetProfile(userID)
	if err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, profile)
}

func (h *UserHandler) UpdateProfile(ctx *fiber.Ctx) error {
	userID, ok := ctx.Locals("userID").(uint)
	if !ok || userID == 0 {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	var requestBody dto.UpdateProfileRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	profile, err := h.svc.UpdateProfile(userID, requestBody)
	if err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, profile)
}
