package webserver

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/trustwire/sourcecheck/src/api/config"
	"github.com/trustwire/sourcecheck/src/evaluation"
	"github.com/trustwire/sourcecheck/src/ratelimit"
	"github.com/trustwire/sourcecheck/src/search"
)

// New wires the HTTP surface: CORS, health, and the evaluate endpoint.
func New(cfg config.Config, limiter *ratelimit.Limiter, resolver *evaluation.Resolver, searchSvc *search.Service) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	evalH := NewEvaluate(cfg, limiter, resolver)
	healthH := NewHealth(cfg, searchSvc)

	v1 := r.Group("/v1")
	{
		v1.GET("/health", healthH.Status)
		v1.POST("/evaluate", evalH.Evaluate)
	}

	return r
}
