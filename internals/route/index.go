// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kompetensiku_backend/internals/constants"
	formRoute "kompetensiku_backend/internals/features/evaluations/forms/route"
	responseRoute "kompetensiku_backend/internals/features/evaluations/responses/route"
	sessionRoute "kompetensiku_backend/internals/features/evaluations/sessions/route"
	authMiddleware "kompetensiku_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== PRIVATE (USER) =====================
	// Semua user login: lihat form, isi penilaian, cek progres.
	log.Println("[INFO] Setting up USER group...")
	private := app.Group("/api/u", authMiddleware.AuthMiddleware())

	formRoute.EvaluationFormUserRoutes(private, db)
	responseRoute.EvaluationResponseUserRoutes(private, db)
	sessionRoute.EvaluationSessionUserRoutes(private, db)

	// ===================== ADMIN =====================
	// Authoring form + aksi maintenance (refresh status session).
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyRoles(
			constants.RoleErrorAdmin("administrasi evaluasi"),
			constants.RoleAdmin,
		),
	)

	formRoute.EvaluationFormAdminRoutes(admin, db)
	sessionRoute.EvaluationSessionAdminRoutes(admin, db)
}
