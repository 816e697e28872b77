package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupMiddlewares memasang middleware global (urutan penting:
// recovery paling luar, lalu CORS, lalu limiter).
func SetupMiddlewares(app *fiber.App) {
	// panic → 500, jangan sampai mematikan proses
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
}
