package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	healthHandler *handlers.HealthHandler,
	moderationHandler *handlers.ModerationHandler,
	detectionHandler *handlers.DetectionHandler,
) {
	api := app.Group("/api")

	api.Get("/health", healthHandler.Check)

	// Admin / service routes are registered before the limiter so bulk
	// cascades from upstream services are not throttled.
	admin := api.Group("/admin", middleware.ServiceOrJWT(cfg), middleware.AdminRequired(db, cfg))
	admin.Post("/detections/:freetId", detectionHandler.Evaluate)
	admin.Put("/detections/:freetId", detectionHandler.Reevaluate)
	admin.Get("/detections/:freetId", detectionHandler.Get)
	admin.Delete("/freets/:freetId/moderation", detectionHandler.PurgeContent)
	admin.Delete("/users/:userId/moderation", detectionHandler.PurgeAuthor)

	// Public API rate limiter: 120 req/min per IP. Feeds fetch one summary per freet.
	public := api.Group("", limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	public.Post("/filter/scan", moderationHandler.Scan)

	public.Get("/reports/:freetId", moderationHandler.Summary)
	public.Get("/reports/:freetId/:category", moderationHandler.CategoryReports)
	public.Post("/reports/:freetId/:category", middleware.JWTProtected(cfg), moderationHandler.CreateReport)
}
