package router

import (
	"github.com/MPA-Digital-Solutions/TechMedis/config"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/app/controller"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authController       *controller.AuthController
	productController    *controller.ProductController
	categoryController   *controller.CategoryController
	clientController     *controller.ClientController
	configController     *controller.ConfigController
	revalidateController *controller.RevalidateController
	authMiddleware       *middleware.AuthMiddleware
	config               *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	categoryController *controller.CategoryController,
	clientController *controller.ClientController,
	configController *controller.ConfigController,
	revalidateController *controller.RevalidateController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:       authController,
		productController:    productController,
		categoryController:   categoryController,
		clientController:     clientController,
		configController:     configController,
		revalidateController: revalidateController,
		authMiddleware:       authMiddleware,
		config:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "TechMedis API is running",
		})
	})

	// Serve uploaded product images
	router.Static("/uploads", r.config.Uploads.Dir)

	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("", r.productController.ListProducts)
			products.GET("/:slug", middleware.PageCache(productPagePath, r.config.Redis.PageTTL), r.productController.GetProductBySlug)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", r.categoryController.ListCategories)
			categories.GET("/:category/subcategories", r.categoryController.ListSubcategories)
		}

		v1.GET("/config/whatsapp", r.configController.GetWhatsAppNumber)
		v1.POST("/contact", r.clientController.Contact)

		v1.GET("/revalidate", r.revalidateController.Liveness)
		v1.POST("/revalidate", r.revalidateController.Revalidate)

		admin := v1.Group("/admin")
		{
			admin.POST("/login", r.authController.Login)
			admin.POST("/logout", r.authController.Logout)
			admin.GET("/session", r.authController.Session)

			protected := admin.Group("", r.authMiddleware.RequireAdmin())
			{
				protected.GET("/products", r.productController.ListAllProducts)
				protected.POST("/products", r.productController.CreateProduct)
				protected.GET("/products/:id", r.productController.GetProduct)
				protected.PUT("/products/:id", r.productController.UpdateProduct)
				protected.DELETE("/products/:id", r.productController.DeleteProduct)
				protected.PATCH("/products/:id/status", r.productController.SetStatus)
				protected.POST("/products/:id/images", r.productController.AddCarouselImages)
				protected.DELETE("/products/:id/images/:index", r.productController.DeleteCarouselImage)
				protected.PUT("/products/:id/images/order", r.productController.ReorderCarousel)

				protected.GET("/clients", r.clientController.ListClients)
				protected.GET("/clients/export", r.clientController.ExportClients)
				protected.PATCH("/clients/:id/status", r.clientController.UpdateStatus)

				protected.GET("/config", r.configController.GetAll)
				protected.PUT("/config", r.configController.Update)
				protected.PUT("/config/whatsapp", r.configController.UpdateWhatsAppNumber)
				protected.GET("/config/:key", r.configController.GetByKey)
			}
		}
	}

	return router
}

// productPagePath maps a product detail request to the logical page path
// used as its cache key, matching what the revalidation endpoint drops.
func productPagePath(c *gin.Context) string {
	return "/productos/" + c.Param("slug")
}
