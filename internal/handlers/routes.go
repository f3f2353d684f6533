package handlers

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/people-api/internal/middleware"
)

type RouterOptions struct {
	CORSOrigins []string
	RateLimiter *middleware.RateLimiter // nil disables rate limiting
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// NewRouter wires every route of the service onto a fresh gin engine.
func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(cors.New(corsConfig(opts.CORSOrigins)))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", h.RegisterUser)
		authRoutes.POST("/login", h.Login)
	}

	people := r.Group("/people")
	if opts.RateLimiter != nil {
		people.Use(opts.RateLimiter.Limit())
	}
	{
		people.GET("/all", h.GetAllPeople)
		people.GET("/by_date/:date", h.GetPeopleByDate)
		people.DELETE("/by_date/:date", h.DeletePeopleByDate)
		people.GET("/count/total", h.MissingDateParam)
		people.GET("/count/total/:date", h.CountTotal)
		people.GET("/count/walkin", h.MissingDateParam)
		people.GET("/count/walkin/:date", h.CountWalkin)
		people.GET("/cancel", h.CancelReservation)

		// Registration is staff-only.
		people.POST("/reserve", middleware.AuthMiddleware(h.JWTSecret), h.Reserve)
	}

	return r
}
