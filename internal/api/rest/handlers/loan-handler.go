package handlers

import (
	"strconv"

	"github.com/ayonpaul8906/trustbridge-new/internal/api/rest/middleware"
	"github.com/ayonpaul8906/trustbridge-new/internal/dto"
	"github.com/ayonpaul8906/trustbridge-new/internal/helper"
	"github.com/ayonpaul8906/trustbridge-new/internal/helper/utils"
	"github.com/ayonpaul8906/trustbridge-new/internal/services"
	"github.com/gofiber/fiber/v2"
)

type LoanHandler struct {
	svc     services.LoanService
	userSvc services.UserService
	auth    helper.Auth
}

func NewLoanHandler(svc services.LoanService, userSvc services.UserService, auth helper.Auth) *LoanHandler {
	return &LoanHandler{svc: svc, userSvc: userSvc, auth: auth}
}

func (h *LoanHandler) SetupRoutes(app *fiber.App) {
	loan := app.Group("/api/loan", middleware.AuthMiddleware(h.auth))

	loan.Post("/request", middleware.BorrowerOnly(h.userSvc), h.RequestLoan)
	loan.Get("/", h.ListLoans)
	loan.Get("/:loanID/status", h.LoanStatus)
	loan.Post("/:loanID/decision", middleware.LenderOnly(h.userSvc), h.DecideLoan)
}

func (h *LoanHandler) RequestLoan(ctx *fiber.Ctx) error {
	userID, ok := ctx.Locals("userID").(uint)
	if !ok || userID == 0 {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	var requestBody dto.LoanRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	res, err := h.svc.RequestLoan(userID, requestBody)
	if err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, res)
}

func (h *LoanHandler) ListLoans(ctx *fiber.Ctx) error {
	userID, ok := ctx.Locals("userID").(uint)
	if !ok || userID == 0 {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	loans, err := h.svc.ListLoans(userID)
	if err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, loans)
}

func (h *LoanHandler) LoanStatus(ctx *fiber.Ctx) error {
	userID, ok := ctx.Locals("userID").(uint)
	if !ok || userID == 0 {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	loanID, err := strconv.ParseUint(ctx.Params("loanID"), 10, 32)
	if err != nil || loanID == 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid loan id")
	}

	res, err := h.svc.LoanStatus(userID, uint(loanID))
	if err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, res)
}

func (h *LoanHandler) DecideLoan(ctx *fiber.Ctx) error {
	loanID, err := strconv.ParseUint(ctx.Params("loanID"), 10, 32)
	if err != nil || loanID == 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid loan id")
	}

	var requestBody dto.LoanDecisionRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "decision is required")
	}

	if err := h.svc.DecideLoan(uint(loanID), requestBody.Decision); err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "loan "+requestBody.Decision)
}
