package routes

import (
	"log"
	"time"

	"backend/configs"
	"backend/controllers"
	"backend/middlewares"
	"backend/pkg/cache"
	"backend/pkg/eventbus"
	"backend/pkg/search"
	"backend/repository"
	"backend/services"
	"backend/ws"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	menuRepo := repository.NewMenuRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	userRepo := repository.NewUserRepository(db)
	favRepo := repository.NewFavoriteRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	postRepo := repository.NewCommunityRepository(db)

	// Optional infra: ไม่มีตัวไหนบังคับ start ไม่ได้
	var cartCache *cache.RedisCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		cartCache = cache.NewRedisCache(rdb, 24*time.Hour)
	}

	var bus *eventbus.Producer
	if len(cfg.KafkaBrokers) > 0 {
		bus = eventbus.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	}

	var esClient *elasticsearch.Client
	if cfg.ESURL != "" {
		client, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Printf("elasticsearch unavailable, menu search falls back to DB: %v", err)
		} else {
			esClient = client
		}
	}

	// Services
	cartStore := services.NewCartStore(cartCache)
	favSvc := services.NewFavoriteService(favRepo)
	orderSvc := services.NewOrderService(db, orderRepo, userRepo, cartStore)
	orderSvc.Bus = bus
	searchSvc := services.NewSearchService(menuRepo, orderRepo, favSvc, esClient)
	qr := services.PickupQR{BaseURL: cfg.PublicBaseURL}

	// Realtime
	hub := ws.NewOrderHub(orderSvc)
	orderSvc.Sink = hub
	go hub.Run()
	liveSearch := ws.NewLiveSearch(searchSvc)

	// Controllers
	authCtrl := controllers.NewAuthController(db, userRepo, cfg.JWTSecret, cfg.JWTTTL)
	menuCtrl := controllers.NewMenuController(menuRepo, reviewRepo)
	cartCtrl := controllers.NewCartController(cartStore, menuRepo)
	orderCtrl := controllers.NewOrderController(orderSvc, qr)
	favCtrl := controllers.NewFavoriteController(favSvc)
	reviewCtrl := controllers.NewReviewController(reviewRepo, menuRepo)
	communityCtrl := controllers.NewCommunityController(postRepo)
	searchCtrl := controllers.NewSearchController(searchSvc)
	adminCtrl := controllers.NewAdminController(orderSvc, menuRepo, userRepo, reviewRepo, postRepo, esClient)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}

	// Auth (protected)
	aAuth := a.Group("", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		aAuth.GET("/me", authCtrl.Me)
		aAuth.PATCH("/me", authCtrl.UpdateMe)
	}

	// Public catalog
	r.GET("/menu", menuCtrl.List)
	r.GET("/menu/featured", menuCtrl.Featured)
	r.GET("/menu/:id", menuCtrl.Detail)
	r.GET("/menu/:id/reviews", menuCtrl.ItemReviews)
	r.GET("/community", communityCtrl.List)
	// ผล search ส่วน orders/favorites ต้องรู้ identity แต่ route ยังเปิด public
	r.GET("/search", middlewares.OptionalAuthMiddleware(cfg.JWTSecret), searchCtrl.Search)

	// Cart (user)
	cart := r.Group("/cart", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		cart.GET("", cartCtrl.Get)
		cart.POST("/items", cartCtrl.Add)
		cart.PATCH("/items/:itemId", cartCtrl.UpdateQuantity)
		cart.DELETE("/items/:itemId", cartCtrl.RemoveItem)
		cart.DELETE("", cartCtrl.Clear)
		cart.PATCH("/drawer", cartCtrl.SetDrawer)
	}

	// Orders (user)
	u := r.Group("/", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		u.POST("/orders", orderCtrl.Submit)
		u.GET("/orders", orderCtrl.ListForMe)
		u.GET("/orders/:id", orderCtrl.Detail)
		u.GET("/orders/:id/qr", orderCtrl.PickupQR)

		u.GET("/favorites", favCtrl.List)
		u.POST("/favorites/:itemId/toggle", favCtrl.Toggle)

		u.POST("/reviews", reviewCtrl.Create)
		u.POST("/community", communityCtrl.Create)
		u.DELETE("/community/:id", communityCtrl.Delete)
	}

	// Realtime (token มากับ query string ได้)
	wsGroup := r.Group("/ws", middlewares.WSAuthMiddleware(cfg.JWTSecret))
	{
		wsGroup.GET("/orders", hub.HandleWebSocket)
		wsGroup.GET("/search", liveSearch.HandleWebSocket)
	}

	// Back office: staff อัปเดตสถานะได้ ที่เหลือ admin เท่านั้น
	staff := r.Group("/admin", middlewares.AuthMiddleware(cfg.JWTSecret, "staff", "admin"))
	{
		staff.GET("/orders", adminCtrl.ListOrders)
		staff.PATCH("/orders/:id/status", adminCtrl.UpdateOrderStatus)
	}

	admin := r.Group("/admin", middlewares.AuthMiddleware(cfg.JWTSecret, "admin"))
	{
		admin.GET("/dashboard", adminCtrl.Dashboard)

		admin.POST("/menu", adminCtrl.CreateMenuItem)
		admin.PATCH("/menu/:id", adminCtrl.UpdateMenuItem)
		admin.DELETE("/menu/:id", adminCtrl.DeleteMenuItem)

		admin.GET("/users", adminCtrl.ListUsers)
		admin.PATCH("/users/:id/role", adminCtrl.UpdateUserRole)

		admin.GET("/reviews", adminCtrl.ListReviews)
		admin.DELETE("/reviews/:id", adminCtrl.DeleteReview)
		admin.DELETE("/community/:id", adminCtrl.DeletePost)
	}
}
