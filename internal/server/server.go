package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	"chakula/internal/analytics"
	"chakula/internal/config"
	"chakula/internal/metrics"
)

// Server wires the HTTP API over the database. All state the handlers
// need hangs off here; nothing is package-global.
type Server struct {
	db      *gorm.DB
	cfg     *config.Config
	router  *gin.Engine
	hub     *Hub
	advisor *analytics.Advisor
}

// New builds the server and registers every route.
func New(db *gorm.DB, cfg *config.Config) *Server {
	advisor, err := analytics.NewAdvisor(cfg.OpenAIKey)
	if err != nil {
		advisor = nil
	}

	s := &Server{
		db:      db,
		cfg:     cfg,
		router:  gin.Default(),
		hub:     NewHub(),
		advisor: advisor,
	}
	go s.hub.Run()

	s.router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.CORSOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	s.router.Use(metrics.Timing())

	s.registerRoutes()
	return s
}

// Router exposes the underlying engine for http.Server and tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) registerRoutes() {
	r := s.router

	r.GET("/health", s.Health)
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"service": "chakula", "status": "ok"})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/login", s.Login)
		auth.POST("/register", s.Register)
		auth.GET("/me", s.AuthRequired(), s.Me)
	}

	// Storefront ordering and payment callbacks stay unauthenticated.
	r.POST("/orders/public", s.CreatePublicOrder)
	r.POST("/webhooks/mpesa", s.MpesaWebhook)
	r.POST("/webhooks/stripe", s.StripeWebhook)
	r.GET("/ws/orders", s.OrderEvents)

	api := r.Group("/", s.AuthRequired())
	{
		api.GET("/menu/", s.ListMenu)
		api.POST("/menu/", s.CreateMenuItem)
		api.PUT("/menu/:id", s.UpdateMenuItem)
		api.DELETE("/menu/:id", s.DeleteMenuItem)

		api.GET("/orders/", s.ListOrders)
		api.POST("/orders/", s.CreateOrder)
		api.GET("/orders/active", s.ActiveOrders)
		api.GET("/orders/:id", s.GetOrder)
		api.PATCH("/orders/:id/status", s.UpdateOrderStatus)

		api.GET("/inventory/", s.ListInventory)
		api.POST("/inventory/", s.CreateInventoryItem)
		api.POST("/inventory/:id/receive", s.ReceiveStock)
		api.POST("/inventory/:id/adjust", s.AdjustStock)

		api.GET("/reservations/", s.ListReservations)
		api.POST("/reservations/", s.CreateReservation)
		api.PATCH("/reservations/:id/status", s.UpdateReservationStatus)

		ai := api.Group("/ai")
		{
			ai.GET("/dashboard", s.AIDashboard)
			ai.GET("/menu-engineering", s.AIMenuEngineering)
			ai.GET("/revenue-forecast", s.AIRevenueForecast)
			ai.GET("/inventory-predictions", s.AIInventoryPredictions)
			ai.GET("/reservation-insights", s.AIReservationInsights)
			ai.GET("/kds-intelligence", s.AIKitchenIntelligence)
		}
	}
}

// Health reports service liveness.
func (s *Server) Health(c *gin.Context) {
	if err := s.db.DB().Ping(); err != nil {
		c.JSON(503, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"status": "ok"})
}
