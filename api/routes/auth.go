package routes

import (
	"github.com/gofiber/fiber/v2"
	auth_controller "github.com/sunthewhat/easy-cert-portal/api/controllers/auth"
)

func SetupAuthRoutes(router fiber.Router, ctrl *auth_controller.AuthController) {
	authGroup := router.Group("auth")

	authGroup.Post("login", ctrl.Login)
}
