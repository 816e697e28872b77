package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	formController "kompetensiku_backend/internals/features/evaluations/forms/controller"
)

// 📋 Routes baca form (semua user login): daftar + detail untuk layar pengisian
func EvaluationFormUserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := formController.NewEvaluationFormController(db)

	formRoutes := api.Group("/evaluation-forms")
	formRoutes.Get("/", ctrl.GetForms)
	formRoutes.Get("/:id", ctrl.GetFormByID)
}

// 🛠️ Routes authoring form (admin): create/edit/hapus grafik form
func EvaluationFormAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := formController.NewEvaluationFormController(db)

	formRoutes := api.Group("/evaluation-forms")
	formRoutes.Post("/", ctrl.CreateForm)
	formRoutes.Put("/:id", ctrl.UpdateForm)
	formRoutes.Delete("/:id", ctrl.DeleteForm)
}
