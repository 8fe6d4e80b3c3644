package handlers

import (
	"github.com/ayonpaul8906/trustbridge-new/internal/dto"
	"github.com/ayonpaul8906/trustbridge-new/internal/helper/utils"
	"github.com/ayonpaul8906/trustbridge-new/internal/services"
	pkgutils "github.com/ayonpaul8906/trustbridge-new/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

// uploads larger than this are rejected before they reach any service
const maxUploadBytes = 10 << 20

type RegistrationHandler struct {
	svc services.RegistrationService
}

func NewRegistrationHandler(svc services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{svc: svc}
}

func (h *RegistrationHandler) SetupRoutes(app *fiber.App) {
	reg := app.Group("/api/register")

	reg.Post("/passcode/request", h.RequestPasscode)
	reg.Post("/passcode/confirm", h.ConfirmPasscode)
	reg.Post("/verify-identity", h.VerifyIdentity)
	reg.Get("/attempt", h.AttemptStatus)
	reg.Post("/submit", h.Submit)
}

func (h *RegistrationHandler) RequestPasscode(ctx *fiber.Ctx) error {
	var requestBody dto.RequestPasscodeRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email is required")
	}

	if err := h.svc.RequestPasscode(ctx.Context(), requestBody.Email); err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "passcode sent")
}

func (h *RegistrationHandler) ConfirmPasscode(ctx *fiber.Ctx) error {
	var requestBody dto.ConfirmPasscodeRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and code are required")
	}

	if err := h.svc.ConfirmPasscode(ctx.Context(), requestBody.Email, requestBody.Code); err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "passcode confirmed")
}

func (h *RegistrationHandler) VerifyIdentity(ctx *fiber.Ctx) error {
	input := dto.IdentityEvidence{
		Email:    ctx.FormValue("email"),
		FullName: ctx.FormValue("full_name"),
		Phone:    ctx.FormValue("phone"),
	}

	selfie, err := readFormFile(ctx, "selfie")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "selfie: "+err.Error())
	}
	document, err := readFormFile(ctx, "document")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "document: "+err.Error())
	}
	input.Selfie = selfie
	input.Document = document

	res, err := h.svc.VerifyIdentity(ctx.Context(), input)
	if err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, res)
}

func (h *RegistrationHandler) AttemptStatus(ctx *fiber.Ctx) error {
	email := ctx.Query("email")

	res, err := h.svc.AttemptStatus(email)
	if err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, res)
}

func (h *RegistrationHandler) Submit(ctx *fiber.Ctx) error {
	var draft dto.RegistrationDraft
	if err := ctx.BodyParser(&draft); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	res, err := h.svc.SubmitRegistration(ctx.Context(), draft)
	if err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, res)
}

func readFormFile(ctx *fiber.Ctx, field string) (dto.FileInput, error) {
	fh, err := ctx.FormFile(field)
	if err != nil {
		return dto.FileInput{}, err
	}

	f, err := fh.Open()
	if err != nil {
		return dto.FileInput{}, err
	}
	defer f.Close()

	b, err := pkgutils.ReadAllLimit(f, maxUploadBytes)
	if err != nil {
		return dto.FileInput{}, err
	}

	return dto.FileInput{Filename: fh.Filename, Bytes: b}, nil
}
