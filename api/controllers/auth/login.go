package auth_controller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/easy-cert-portal/common/util"
	"github.com/sunthewhat/easy-cert-portal/type/payload"
	"github.com/sunthewhat/easy-cert-portal/type/response"
)

func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	body := new(payload.LoginPayload)

	if err := c.BodyParser(body); err != nil {
		return response.SendFailed(c, "Failed to parse body")
	}

	if err := util.ValidateStruct(body); err != nil {
		errors := util.GetValidationErrors(err)
		return response.SendFailed(c, errors[0])
	}

	if ctrl.jwtSecret == "" || ctrl.passwordHash == "" {
		slog.Warn("Auth Login attempted while admin auth is disabled", "ip", c.IP())
		return response.SendFailed(c, "Admin authentication is not configured")
	}

	if !util.CheckPassword(body.Password, ctrl.passwordHash) {
		slog.Warn("Auth Login failed password check", "ip", c.IP())
		return response.SendUnauthorized(c, "Incorrect Password")
	}

	token, expiresAt, err := util.GenerateAuthToken(ctrl.jwtSecret, ctrl.tokenTTL)
	if err != nil {
		slog.Error("Auth Login JWT generation failed", "error", err)
		return response.SendError(c, "Failed to generate JWT Token")
	}

	slog.Info("Auth Login successful", "ip", c.IP())
	return response.SendSuccess(c, "Login Successfully", fiber.Map{
		"token":     token,
		"expiresAt": expiresAt,
	})
}
