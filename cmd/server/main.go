package main

import (
	"log"
	"strings"

	"merchstock-backend/internal/apparel"
	"merchstock-backend/internal/auth"
	"merchstock-backend/internal/config"
	"merchstock-backend/internal/database"
	"merchstock-backend/internal/gifts"
	"merchstock-backend/internal/ledger"
	"merchstock-backend/internal/models"
	"merchstock-backend/internal/refdata"
	"merchstock-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/register", auth.RegisterHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Gift catalog
	protected.Get("/gifts", gifts.ListGiftsHandler())
	protected.Post("/gifts", gifts.CreateGiftHandler())
	protected.Get("/gifts/:id", gifts.GetGiftHandler())
	protected.Patch("/gifts/:id", gifts.UpdateGiftHandler())
	protected.Delete("/gifts/:id", gifts.DeleteGiftHandler())
	protected.Patch("/gifts/:id/stock", stock.AdjustStockHandler(models.StockEntityGift))

	// Apparel catalog
	protected.Get("/apparel/products", apparel.ListProductsHandler())
	protected.Post("/apparel/products", apparel.CreateProductHandler())
	protected.Get("/apparel/products/:id", apparel.GetProductHandler())
	protected.Patch("/apparel/products/:id", apparel.UpdateProductHandler())
	protected.Delete("/apparel/products/:id", apparel.DeleteProductHandler())

	protected.Get("/apparel/variants", apparel.ListVariantsHandler())
	protected.Post("/apparel/variants", apparel.CreateVariantHandler())
	protected.Get("/apparel/variants/:id", apparel.GetVariantHandler())
	protected.Patch("/apparel/variants/:id", apparel.UpdateVariantHandler())
	protected.Delete("/apparel/variants/:id", apparel.DeleteVariantHandler())
	protected.Patch("/apparel/variants/:id/stock", stock.AdjustStockHandler(models.StockEntityApparelVariant))

	// Transaction ledger
	protected.Get("/transactions", ledger.ListTransactionsHandler())
	protected.Get("/transactions/export", ledger.ExportTransactionsHandler())
	protected.Get("/transactions/reconcile", ledger.ReconcileHandler())

	// Reference data (read)
	protected.Get("/gift-categories", refdata.ListGiftCategoriesHandler())
	protected.Get("/apparel-categories", refdata.ListApparelCategoriesHandler())
	protected.Get("/sizes", refdata.ListSizesHandler())
	protected.Get("/colors", refdata.ListColorsHandler())
	protected.Get("/take-reasons", refdata.ListReasonsHandler())

	// Admin routes
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	adminRoutes.Post("/gift-categories", refdata.CreateGiftCategoryHandler())
	adminRoutes.Put("/gift-categories/:id", refdata.UpdateGiftCategoryHandler())
	adminRoutes.Delete("/gift-categories/:id", refdata.DeleteGiftCategoryHandler())

	adminRoutes.Post("/apparel-categories", refdata.CreateApparelCategoryHandler())
	adminRoutes.Put("/apparel-categories/:id", refdata.UpdateApparelCategoryHandler())
	adminRoutes.Delete("/apparel-categories/:id", refdata.DeleteApparelCategoryHandler())

	adminRoutes.Post("/sizes", refdata.CreateSizeHandler())
	adminRoutes.Delete("/sizes/:id", refdata.DeleteSizeHandler())

	adminRoutes.Post("/colors", refdata.CreateColorHandler())
	adminRoutes.Delete("/colors/:id", refdata.DeleteColorHandler())

	adminRoutes.Post("/take-reasons", refdata.CreateReasonHandler())
	adminRoutes.Put("/take-reasons/:id", refdata.UpdateReasonHandler())
	adminRoutes.Delete("/take-reasons/:id", refdata.DeleteReasonHandler())

	log.Println("Server listening on port", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
