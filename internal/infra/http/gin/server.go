package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"github.com/krushna001m/RentEasy-sub000/internal/infra/config"
	"github.com/krushna001m/RentEasy-sub000/internal/infra/obs"
)

type AuthHTTP interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Logout(c *gin.Context)
	Me(c *gin.Context)
}

type BookingHTTP interface {
	Confirm(c *gin.Context)
	Quote(c *gin.Context)
}

type ListingHTTP interface {
	Catalog(c *gin.Context)
	Overview(c *gin.Context)
	Create(c *gin.Context)
	UploadPhoto(c *gin.Context)
}

type HistoryHTTP interface {
	List(c *gin.Context)
	Delete(c *gin.Context)
}

type Handlers struct {
	Auth           AuthHTTP
	Booking        BookingHTTP
	Listing        ListingHTTP
	History        HistoryHTTP
	AuthMiddleware gin.HandlerFunc
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "Idempotency-Key"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))
	if h.AuthMiddleware != nil {
		router.Use(h.AuthMiddleware)
	}

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Auth != nil {
		api.POST("/auth/register", h.Auth.Register)
		api.POST("/auth/login", h.Auth.Login)
		api.POST("/auth/logout", h.Auth.Logout)
		api.GET("/auth/me", h.Auth.Me)
	}
	if h.Booking != nil {
		api.POST("/bookings/confirm", h.Booking.Confirm)
		api.GET("/bookings/quote", h.Booking.Quote)
	}
	if h.Listing != nil {
		api.GET("/listings", h.Listing.Catalog)
		api.POST("/listings", h.Listing.Create)
		api.GET("/listings/:owner/:id", h.Listing.Overview)
		api.POST("/listings/:owner/:id/photos", h.Listing.UploadPhoto)
	}
	if h.History != nil {
		meGroup := api.Group("/me")
		meGroup.GET("/history", h.History.List)
		meGroup.DELETE("/history/:key", h.History.Delete)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
