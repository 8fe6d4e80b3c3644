package handlers

import (
	"github.com/ayonpaul8906/trustbridge-new/internal/api/rest/middleware"
	"github.com/ayonpaul8906/trustbridge-new/internal/dto"
	"github.com/ayonpaul8906/trustbridge-new/internal/helper"
	"github.com/ayonpaul8906/trustbridge-new/internal/helper/utils"
	"github.com/ayonpaul8906/trustbridge-new/internal/services"
	"github.com/gofiber/fiber/v2"
)

type LenderHandler struct {
	svc     services.LenderService
	userSvc services.UserService
	auth    helper.Auth
}

func NewLenderHandler(svc services.LenderService, userSvc services.UserService, auth helper.Auth) *LenderHandler {
	return &LenderHandler{svc: svc, userSvc: userSvc, auth: auth}
}

func (h *LenderHandler) SetupRoutes(app *fiber.App) {
	lender := app.Group("/api/lender", middleware.AuthMiddleware(h.auth))

	lender.Post("/register", h.Register)

	guarded := lender.Group("", middleware.LenderOnly(h.userSvc))
	guarded.Post("/offer", h.PostOffer)
	guarded.Get("/offers", h.ListOffers)
	guarded.Get("/borrowers", h.ListBorrowers)
}

func (h *LenderHandler) Register(ctx *fiber.Ctx) error {
	userID, ok := ctx.Locals("userID").(uint)
	if !ok || userID == 0 {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := h.svc.RegisterLender(userID); err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "lender registered")
}

func (h *LenderHandler) PostOffer(ctx *fiber.Ctx) error {
	userID, ok := ctx.Locals("userID").(uint)
	if !ok || userID == 0 {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	var requestBody dto.LenderOfferRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	res, err := h.svc.PostOffer(userID, requestBody)
	if err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, res)
}

func (h *LenderHandler) ListOffers(ctx *fiber.Ctx) error {
	userID, ok := ctx.Locals("userID").(uint)
	if !ok || userID == 0 {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	offers, err := h.svc.ListOffers(userID)
	if err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, offers)
}

func (h *LenderHandler) ListBorrowers(ctx *fiber.Ctx) error {
	borrowers, err := h.svc.ListBorrowers()
	if err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, borrowers)
}
