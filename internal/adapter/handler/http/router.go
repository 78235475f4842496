package http

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/sm8ta/carsharing_microservice/docs"
	"github.com/sm8ta/carsharing_microservice/internal/config"
	"github.com/sm8ta/carsharing_microservice/internal/core/ports"
	"github.com/sm8ta/carsharing_microservice/internal/core/services"
)

type Router struct {
	router *gin.Engine
}

func NewRouter(
	cfg *config.HTTP,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
	carHandler *CarHandler,
	webHandler *WebHandler,
) (*Router, error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Binding errors name fields the way clients send them
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(services.JSONTagName)
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(logger))

	// CORS
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
	}
	origins := cfg.Origins()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
		corsConfig.AllowCredentials = true
	}
	router.Use(cors.New(corsConfig))

	tmpl, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Metrics
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Web pages
	router.GET("/", webHandler.Home)
	router.POST("/search", webHandler.Search)

	api := router.Group("/api")
	{
		api.GET("/date", webHandler.Date)
	}

	// Cars routes
	cars := api.Group("/cars")
	{
		cars.GET("", carHandler.ListCars)
		cars.POST("", carHandler.CreateCar)
		cars.GET("/:id", carHandler.GetCar)
		cars.PUT("/:id", carHandler.UpdateCar)
		cars.DELETE("/:id", carHandler.DeleteCar)
		cars.POST("/:id/trips", carHandler.AddTrip)
	}

	return &Router{router: router}, nil
}

func (r *Router) Engine() *gin.Engine {
	return r.router
}
