package routes

import (
	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(router fiber.Router, ctrl Controllers) {
	router.Post("upload", ctrl.File.Upload)

	templateGroup := router.Group("templates")
	templateGroup.Get("", ctrl.Template.GetAll)
	templateGroup.Post("layout", ctrl.Template.SaveLayout)

	certificateGroup := router.Group("certificates")
	certificateGroup.Get("", ctrl.Certificate.GetAll)
	certificateGroup.Post("generate", ctrl.Certificate.Generate)

	mailGroup := router.Group("mail")
	mailGroup.Post("bulk", ctrl.Certificate.SendMail)
}
