package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	sessionController "kompetensiku_backend/internals/features/evaluations/sessions/controller"
)

// 📈 Routes progres pengisian (user login)
func EvaluationSessionUserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := sessionController.NewEvaluationSessionController(db)

	api.Get("/evaluation-sessions/status", ctrl.GetSessionStatus)
}

// 🔄 Routes admin: paksa hitung ulang status session
func EvaluationSessionAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := sessionController.NewEvaluationSessionController(db)

	api.Post("/evaluation-sessions/:id/recompute", ctrl.RecomputeSession)
}
