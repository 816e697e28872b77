package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kompetensiku_backend/internals/constants"
	responseController "kompetensiku_backend/internals/features/evaluations/responses/controller"
	middlewares "kompetensiku_backend/internals/middlewares"
	authMiddleware "kompetensiku_backend/internals/middlewares/auth"
)

// 📝 Routes penilaian untuk user login
func EvaluationResponseUserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := responseController.NewEvaluationResponseController(db)

	// submit batch rating (self maupun supervisor)
	api.Post("/evaluation-responses",
		middlewares.SubmitRateLimiter(),
		ctrl.SubmitRatings)

	// instruktur melihat hasil finalnya sendiri
	api.Get("/evaluation-forms/:id/my-results", ctrl.GetMyFinalView)

	// layar perbandingan: supervisor/admin melihat hasil instruktur tertentu
	api.Get("/evaluation-forms/:id/final-view/:instructor_id",
		authMiddleware.OnlyRoles(
			constants.RoleErrorSupervisor("hasil evaluasi instruktur"),
			constants.RoleSupervisor, constants.RoleAdmin,
		),
		ctrl.GetFinalView)
}
