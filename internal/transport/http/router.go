package http

import (
	"github.com/kstarostin/campfire-store-api/config"
	"github.com/kstarostin/campfire-store-api/internal/images"
	"github.com/kstarostin/campfire-store-api/internal/metrics"
	"github.com/kstarostin/campfire-store-api/internal/models"
	"github.com/kstarostin/campfire-store-api/internal/repository"
	"github.com/kstarostin/campfire-store-api/internal/sanitize"
	"github.com/kstarostin/campfire-store-api/internal/service"
	"github.com/kstarostin/campfire-store-api/internal/transport/http/dto"
	"github.com/kstarostin/campfire-store-api/internal/transport/http/handlers"
	"github.com/kstarostin/campfire-store-api/internal/transport/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps bundles everything the route tree needs.
type Deps struct {
	Cfg     *config.Config
	Repos   *repository.Repository
	Auth    *service.AuthService
	Users   *service.UserService
	Catalog *service.CatalogService
	Carts   *service.CartService
	Lookups *service.LookupService
	Files   *images.FileStore
	Metrics *metrics.AppMetrics
	Log     *zap.Logger
	Dev     bool
}

func Router(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	r.Use(middleware.Metrics(d.Metrics))
	r.Use(middleware.Session(d.Cfg.Locale))

	resp := &handlers.Responder{Dev: d.Dev, Log: d.Log}

	authHandler := handlers.NewAuthHandler(d.Auth, d.Cfg.JWT.CookieExp, resp)
	userHandler := handlers.NewUserHandler(d.Users, d.Files, d.Cfg.Locale, resp)
	catalogHandler := handlers.NewCatalogHandler(d.Catalog, d.Files, d.Cfg.Locale, d.Cfg.Upload.MaxProductImages, resp)
	lookupHandler := handlers.NewLookupHandler(d.Lookups, resp)
	cartHandler := handlers.NewCartHandler(
		d.Carts, d.Repos.Orders, d.Repos.Entries, d.Metrics, resp,
		middleware.SubjectUser, middleware.Order,
	)

	users := &handlers.Resource[models.User]{
		Name: "user", Plural: "users",
		Crud:         d.Repos.Users.Crud(),
		Columns:      []string{"id", "name", "email", "created_at", "updated_at"},
		MaxLimit:     100,
		SanitizeMany: func(s *sanitize.Sanitizer, list []models.User) []models.User { return s.Users(list) },
		Responder:    resp,
	}
	products := &handlers.Resource[models.Product]{
		Name: "product", Plural: "products",
		Crud:         d.Repos.Products.Crud(),
		Columns:      []string{"id", "name", "slug", "manufacturer", "category_id", "created_at", "updated_at"},
		Preloads:     []string{"Category"},
		MaxLimit:     100,
		SanitizeOne:  func(s *sanitize.Sanitizer, p *models.Product) *models.Product { return s.Product(p) },
		SanitizeMany: func(s *sanitize.Sanitizer, list []models.Product) []models.Product { return s.Products(list) },
		Responder:    resp,
	}
	categories := &handlers.Resource[models.Category]{
		Name: "category", Plural: "categories",
		Crud:         d.Repos.Categories.Crud(),
		Whitelist:    catalogHandler.CategoryWhitelist(),
		Columns:      []string{"id", "code", "parent_category_id", "created_at", "updated_at"},
		Preloads:     []string{"SubCategories"},
		MaxLimit:     100,
		SanitizeOne:  func(s *sanitize.Sanitizer, c *models.Category) *models.Category { return s.Category(c) },
		SanitizeMany: func(s *sanitize.Sanitizer, list []models.Category) []models.Category { return s.Categories(list) },
		Responder:    resp,
	}
	currencies := &handlers.Resource[models.Currency]{
		Name: "currency", Plural: "currencies",
		Crud:         d.Lookups.Currencies(),
		Whitelist:    []string{"code", "nameI18n"},
		Columns:      []string{"id", "code", "created_at", "updated_at"},
		SanitizeOne:  func(s *sanitize.Sanitizer, c *models.Currency) *models.Currency { return s.Currency(c) },
		SanitizeMany: func(s *sanitize.Sanitizer, list []models.Currency) []models.Currency { return s.Currencies(list) },
		Responder:    resp,
	}
	languages := &handlers.Resource[models.Language]{
		Name: "language", Plural: "languages",
		Crud:         d.Lookups.Languages(),
		Whitelist:    []string{"code", "nameI18n"},
		Columns:      []string{"id", "code", "created_at", "updated_at"},
		SanitizeOne:  func(s *sanitize.Sanitizer, l *models.Language) *models.Language { return s.Language(l) },
		SanitizeMany: func(s *sanitize.Sanitizer, list []models.Language) []models.Language { return s.Languages(list) },
		Responder:    resp,
	}
	titles := &handlers.Resource[models.Title]{
		Name: "title", Plural: "titles",
		Crud:         d.Lookups.Titles(),
		Whitelist:    []string{"code", "nameI18n"},
		Columns:      []string{"id", "code", "created_at", "updated_at"},
		SanitizeOne:  func(s *sanitize.Sanitizer, t *models.Title) *models.Title { return s.Title(t) },
		SanitizeMany: func(s *sanitize.Sanitizer, list []models.Title) []models.Title { return s.Titles(list) },
		Responder:    resp,
	}
	subjectFilter := func(c *gin.Context) repository.Filter {
		if subject, ok := middleware.SubjectUser(c); ok {
			return repository.Filter{"user_id": subject.ID}
		}
		return repository.Filter{"user_id": nil}
	}
	carts := &handlers.Resource[models.GenericOrder]{
		Name: "cart", Plural: "carts",
		Crud:     d.Repos.Orders.Crud(),
		Columns:  []string{"id", "currency", "total", "created_at", "updated_at"},
		Preloads: []string{"Entries"},
		BaseFilter: func(c *gin.Context) repository.Filter {
			return subjectFilter(c).Merge(repository.Filter{"kind": models.KindCart})
		},
		SanitizeMany: func(s *sanitize.Sanitizer, list []models.GenericOrder) []models.GenericOrder {
			return s.GenericOrders(list)
		},
		Responder: resp,
	}
	orders := &handlers.Resource[models.GenericOrder]{
		Name: "order", Plural: "orders",
		Crud:     d.Repos.Orders.Crud(),
		Columns:  []string{"id", "currency", "total", "status", "created_at", "updated_at"},
		Preloads: []string{"Entries"},
		BaseFilter: func(c *gin.Context) repository.Filter {
			return subjectFilter(c).Merge(repository.Filter{"kind": models.KindOrder})
		},
		SanitizeMany: func(s *sanitize.Sanitizer, list []models.GenericOrder) []models.GenericOrder {
			return s.GenericOrders(list)
		},
		Responder: resp,
	}

	protect := middleware.Protect(d.Auth, resp)
	adminOnly := middleware.RestrictTo(d.Auth, resp, "admin")
	adminOrMe := middleware.RestrictTo(d.Auth, resp, "admin", "me")

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.GET("/logout", authHandler.Logout)
	}

	v1.GET("/products", products.GetAll)
	v1.GET("/products/:id", products.GetOne)
	v1.POST("/products", protect, adminOnly, catalogHandler.CreateProduct)
	v1.PATCH("/products/:id", protect, adminOnly, catalogHandler.UpdateProduct)
	v1.DELETE("/products/:id", protect, adminOnly, products.DeleteOne)
	v1.POST("/products/:id/images", protect, adminOnly, catalogHandler.UploadProductImages)

	v1.GET("/categories", categories.GetAll)
	v1.GET("/categories/:id", categories.GetOne)
	v1.POST("/categories", protect, adminOnly, categories.CreateOne)
	v1.PATCH("/categories/:id", protect, adminOnly, categories.UpdateOne)
	v1.DELETE("/categories/:id", protect, adminOnly, catalogHandler.DeleteCategory)

	for _, res := range []struct {
		path     string
		getAll   gin.HandlerFunc
		getOne   gin.HandlerFunc
		create   gin.HandlerFunc
		update   gin.HandlerFunc
		deleteFn gin.HandlerFunc
	}{
		{"/currencies", currencies.GetAll, currencies.GetOne, lookupHandler.CreateCurrency, currencies.UpdateOne, currencies.DeleteOne},
		{"/languages", languages.GetAll, languages.GetOne, lookupHandler.CreateLanguage, languages.UpdateOne, languages.DeleteOne},
		{"/titles", titles.GetAll, titles.GetOne, titles.CreateOne, titles.UpdateOne, titles.DeleteOne},
	} {
		v1.GET(res.path, res.getAll)
		v1.GET(res.path+"/:id", res.getOne)
		v1.POST(res.path, protect, adminOnly, res.create)
		v1.PATCH(res.path+"/:id", protect, adminOnly, res.update)
		v1.DELETE(res.path+"/:id", protect, adminOnly, res.deleteFn)
	}

	v1.GET("/users", protect, adminOnly, users.GetAll)
	v1.POST("/users", func(c *gin.Context) {
		c.JSON(500, dto.ErrorResponse{
			Status:  "error",
			Message: "This route is not defined! Please use /signup instead.",
		})
	})

	userGroup := v1.Group("/users/:userId", protect, adminOrMe, middleware.ResolveSubjectUser(d.Users, resp))
	{
		userGroup.GET("", userHandler.GetOne)
		userGroup.PATCH("", userHandler.Update)
		userGroup.DELETE("", userHandler.Delete)
		userGroup.POST("/photo", userHandler.UploadPhoto)
		userGroup.DELETE("/photo/:photoId", userHandler.DeletePhoto)

		userGroup.GET("/carts", carts.GetAll)
		userGroup.POST("/carts", cartHandler.CreateCart)
		cartGroup := userGroup.Group("/carts/:cartId", middleware.ResolveOrder(d.Repos.Orders, resp, "cartId", models.KindCart))
		{
			cartGroup.GET("", cartHandler.GetResolved("cart"))
			cartGroup.PATCH("", cartHandler.UpdateCart)
			cartGroup.DELETE("", cartHandler.DeleteCart)
			cartGroup.GET("/entries", cartHandler.ListEntries)
			cartGroup.POST("/entries", cartHandler.AddEntry)
			cartGroup.GET("/entries/:entryId", cartHandler.GetEntry)
			cartGroup.PATCH("/entries/:entryId", cartHandler.UpdateEntry)
			cartGroup.DELETE("/entries/:entryId", cartHandler.DeleteEntry)
		}

		userGroup.GET("/orders", orders.GetAll)
		userGroup.POST("/orders", cartHandler.PlaceOrder)
		orderGroup := userGroup.Group("/orders/:orderId", middleware.ResolveOrder(d.Repos.Orders, resp, "orderId", models.KindOrder))
		{
			orderGroup.GET("", cartHandler.GetResolved("order"))
			orderGroup.GET("/entries", cartHandler.ListEntries)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
