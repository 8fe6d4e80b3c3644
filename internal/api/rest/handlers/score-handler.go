package handlers

import (
	"strconv"

	"github.com/ayonpaul8906/trustbridge-new/internal/api/rest/middleware"
	"github.com/ayonpaul8906/trustbridge-new/internal/dto"
	"github.com/ayonpaul8906/trustbridge-new/internal/helper"
	"github.com/ayonpaul8906/trustbridge-new/internal/helper/utils"
	"github.com/ayonpaul8906/trustbridge-new/internal/services"
	pkgutils "github.com/ayonpaul8906/trustbridge-new/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type ScoreHandler struct {
	svc  services.TrustScoreService
	auth helper.Auth
}

func NewScoreHandler(svc services.TrustScoreService, auth helper.Auth) *ScoreHandler {
	return &ScoreHandler{svc: svc, auth: auth}
}

func (h *ScoreHandler) SetupRoutes(app *fiber.App) {
	score := app.Group("/api/score", middleware.AuthMiddleware(h.auth))

	score.Get("/", h.GetTrustScore)
	score.Post("/identity", h.ScoreIdentity)

	score.Post("/financial/documents", h.AddDocument)
	score.Get("/financial/documents", h.ListDocuments)
	score.Delete("/financial/documents/:docID", h.RemoveDocument)
	score.Post("/financial", h.ScoreFinancial)
}

func (h *ScoreHandler) ScoreIdentity(ctx *fiber.Ctx) error {
	userID, ok := ctx.Locals("userID").(uint)
	if !ok || userID == 0 {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "multipart form is required")
	}

	input := dto.IdentityScoreInput{Phone: ctx.FormValue("phone")}
	for _, fh := range form.File["documents"] {
		f, err := fh.Open()
		if err != nil {
			return utils.ResponseError(ctx, fiber.StatusBadRequest, "could not read "+fh.Filename)
		}
		b, err := pkgutils.ReadAllLimit(f, maxUploadBytes)
		f.Close()
		if err != nil {
			return utils.ResponseError(ctx, fiber.StatusBadRequest, fh.Filename+": "+err.Error())
		}
		input.Documents = append(input.Documents, dto.FileInput{
			Filename: fh.Filename,
			Bytes:    b,
		})
	}

	res, err := h.svc.ScoreIdentity(ctx.Context(), userID, input)
	if err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, res)
}

func (h *ScoreHandler) AddDocument(ctx *fiber.Ctx) error {
	userID, ok := ctx.Locals("userID").(uint)
	if !ok || userID == 0 {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	file, err := readFormFile(ctx, "document")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "document: "+err.Error())
	}

	res, err := h.svc.AddFinancialDocument(ctx.Context(), userID, file)
	if err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, res)
}

func (h *ScoreHandler) ListDocuments(ctx *fiber.Ctx) error {
	userID, ok := ctx.Locals("userID").(uint)
	if !ok || userID == 0 {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	docs, err := h.svc.ListFinancialDocuments(userID)
	if err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, docs)
}

func (h *ScoreHandler) RemoveDocument(ctx *fiber.Ctx) error {
	userID, ok := ctx.Locals("userID").(uint)
	if !ok || userID == 0 {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	docID, err := strconv.ParseUint(ctx.Params("docID"), 10, 32)
	if err != nil || docID == 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid document id")
	}

	if err := h.svc.RemoveFinancialDocument(userID, uint(docID)); err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "document removed")
}

func (h *ScoreHandler) ScoreFinancial(ctx *fiber.Ctx) error {
	userID, ok := ctx.Locals("userID").(uint)
	if !ok || userID == 0 {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	res, err := h.svc.ScoreFinancial(ctx.Context(), userID)
	if err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, res)
}

func (h *ScoreHandler) GetTrustScore(ctx *fiber.Ctx) error {
	userID, ok := ctx.Locals("userID").(uint)
	if !ok || userID == 0 {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	res, err := h.svc.GetTrustScore(userID)
	if err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, res)
}
