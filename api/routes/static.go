package routes

import (
	"github.com/gofiber/fiber/v2"
)

// SetupStaticRoutes mounts the public read-only certificate and template
// image paths.
func SetupStaticRoutes(router fiber.Router, ctrl Controllers) {
	certificateGroup := router.Group("certificates")
	certificateGroup.Get(":fileName/pdf", ctrl.File.DownloadPDF)
	certificateGroup.Get(":fileName", ctrl.File.Download)

	router.Get("templates/:templateId/image", ctrl.Template.Image)
}
