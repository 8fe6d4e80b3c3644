package middleware

import (
	"strings"

	"github.com/ayonpaul8906/trustbridge-new/internal/domain"
	"github.com/ayonpaul8906/trustbridge-new/internal/helper"
	"github.com/ayonpaul8906/trustbridge-new/internal/services"
	"github.com/gofiber/fiber/v2"
)

func AuthMiddleware(auth helper.Auth) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		// cookie first, then Authorization header
		tokenStr := strings.TrimSpace(ctx.Cookies("access_token"))
		if tokenStr == "" {
			tokenStr = strings.TrimSpace(ctx.Get("Authorization"))
		}

		user, err := auth.VerifyToken(tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		ctx.Locals("userID", uint(user.UserID))
		ctx.Locals("user", user)
		return ctx.Next()
	}
}

func BorrowerOnly(userSvc services.UserService) fiber.Handler {
	return requireRole(userSvc, domain.RoleBorrower, "borrower only")
}

func LenderOnly(userSvc services.UserService) fiber.Handler {
	return requireRole(userSvc, domain.RoleLender, "lender only")
}

func requireRole(userSvc services.UserService, role, message string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userID, ok := ctx.Locals("userID").(uint)
		if !ok || userID == 0 {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		has, err := userSvc.HasRole(userID, role)
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		if !has {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": message,
			})
		}

		return ctx.Next()
	}
}
